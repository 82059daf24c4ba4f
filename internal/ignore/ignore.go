// Package ignore implements .ttlintignore: one pattern per line, gitignore
// flavored but simpler. A trailing slash matches a directory prefix, globs
// use doublestar semantics, anything else matches the path or its basename
// exactly. Lines starting with # and blank lines are skipped.
package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

type Matcher struct {
	patterns []string
}

// Load reads the ignore file at path. A missing file yields an empty matcher
// and the stat error, which callers typically discard.
func Load(path string) (Matcher, error) {
	f, err := os.Open(path)
	if err != nil {
		return Matcher{}, err
	}
	defer f.Close()

	var pats []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		pats = append(pats, line)
	}
	return Matcher{patterns: pats}, sc.Err()
}

// Match reports whether the slash-separated relative path is ignored.
func (m Matcher) Match(rel string) bool {
	rel = strings.ReplaceAll(rel, "\\", "/")
	base := filepath.Base(rel)
	for _, p := range m.patterns {
		if strings.HasSuffix(p, "/") {
			if strings.HasPrefix(rel, p) || strings.Contains(rel, "/"+p) {
				return true
			}
			continue
		}
		if rel == p || base == p {
			return true
		}
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(p, base); ok {
			return true
		}
	}
	return false
}
