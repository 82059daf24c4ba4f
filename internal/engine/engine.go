// Package engine runs the lint pipeline over files: it resolves targets,
// reads each file, hands the bytes to internal/lint, and writes back the
// rewritten buffer in fix mode. Files are independent, so they are processed
// by a small worker pool; the diagnostic sink serializes its own writes.
package engine

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/ttlint/ttlint/internal/cache"
	"github.com/ttlint/ttlint/internal/ignore"
	"github.com/ttlint/ttlint/internal/lint"
	"github.com/ttlint/ttlint/internal/rules"
)

// Config controls a single run.
type Config struct {
	Root            string   // base directory for walks, cache, and config
	Paths           []string // explicit files and/or directories to lint
	Patterns        []string // user-supplied literal patterns
	Fix             bool
	IncludeGlobs    string // comma-separated doublestar globs (walk mode)
	ExcludeGlobs    string // comma-separated doublestar globs (walk mode)
	MaxBytes        int64  // skip walked files larger than this (0 = no limit)
	Threads         int    // worker count (0 = GOMAXPROCS)
	NoCache         bool
	DefaultExcludes bool
}

// Result summarizes a run. Bad mirrors the per-file "had at least one match"
// flags: true if any file produced any diagnostic.
type Result struct {
	Bad          bool
	FilesScanned int
	FilesFixed   int
	Duration     time.Duration
}

// target is one file to lint. Explicitly named files are forced: they bypass
// the walk-mode binary and size filters.
type target struct {
	path   string
	forced bool
}

// Run lints every target in cfg and emits diagnostics to sink. Any I/O or
// sink failure aborts the run; lint findings do not.
func Run(cfg Config, sink lint.Sink) (Result, error) {
	var res Result
	started := time.Now()

	set, err := rules.Compile(cfg.Patterns)
	if err != nil {
		return res, err
	}

	if cfg.Root == "" {
		cfg.Root = "."
	}
	targets, err := resolveTargets(cfg)
	if err != nil {
		return res, err
	}

	db := cache.DB{Entries: map[string]string{}}
	if !cfg.NoCache {
		db = cache.Load(cfg.Root, set.Fingerprint())
	}

	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	if threads > len(targets) && len(targets) > 0 {
		threads = len(targets)
	}

	var (
		mu       sync.Mutex // guards res counters, db.Entries, firstErr
		firstErr error
		wg       sync.WaitGroup
	)
	jobs := make(chan target)

	worker := func() {
		defer wg.Done()
		for t := range jobs {
			mu.Lock()
			aborted := firstErr != nil
			mu.Unlock()
			if aborted {
				continue
			}
			if err := lintOne(cfg, set, sink, t, &db, &mu, &res); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}
	}
	wg.Add(threads)
	for i := 0; i < threads; i++ {
		go worker()
	}
	for _, t := range targets {
		jobs <- t
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return res, firstErr
	}
	if !cfg.NoCache && len(db.Entries) > 0 {
		_ = cache.Save(cfg.Root, db)
	}
	res.Duration = time.Since(started)
	return res, nil
}

func lintOne(cfg Config, set *rules.Set, sink lint.Sink, t target, db *cache.DB, mu *sync.Mutex, res *Result) error {
	data, err := os.ReadFile(t.path)
	if err != nil {
		return fmt.Errorf("read %s: %w", t.path, err)
	}
	if !t.forced && looksBinary(data) {
		return nil
	}

	h := fastHash(data)
	if !cfg.NoCache {
		mu.Lock()
		clean := db.Entries[t.path] == h
		mu.Unlock()
		if clean {
			return nil
		}
	}

	bad, fixed, err := lint.Bytes(t.path, data, set, sink, cfg.Fix)
	if err != nil {
		return fmt.Errorf("lint %s: %w", t.path, err)
	}

	wrote := false
	if cfg.Fix && !bytes.Equal(fixed, data) {
		mode := os.FileMode(0644)
		if st, err := os.Stat(t.path); err == nil {
			mode = st.Mode().Perm()
		}
		if err := os.WriteFile(t.path, fixed, mode); err != nil {
			return fmt.Errorf("write %s: %w", t.path, err)
		}
		wrote = true
	}

	mu.Lock()
	res.FilesScanned++
	if bad {
		res.Bad = true
	}
	if wrote {
		res.FilesFixed++
	}
	if !bad {
		db.Entries[t.path] = h
	}
	mu.Unlock()
	return nil
}

// resolveTargets expands cfg.Paths: directories are walked with the configured
// filters, files are taken as-is.
func resolveTargets(cfg Config) ([]target, error) {
	ign, _ := ignore.Load(filepath.Join(cfg.Root, ".ttlintignore"))
	var out []target
	for _, p := range cfg.Paths {
		st, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if !st.IsDir() {
			out = append(out, target{path: p, forced: true})
			continue
		}
		if err := walk(p, cfg, ign, func(path string) {
			out = append(out, target{path: path})
		}); err != nil {
			return nil, fmt.Errorf("walk %s: %w", p, err)
		}
	}
	return out, nil
}

func fastHash(b []byte) string {
	if len(b) == 0 {
		return "0000000000000000"
	}
	sum := xxhash.Sum64(b)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}
