// Package cache persists content hashes of files that came through a check
// clean, so unchanged files can be skipped on re-runs. The cache is keyed by
// a fingerprint of the active pattern list: changing the patterns invalidates
// every entry.
package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

type DB struct {
	// Fingerprint identifies the pattern list the entries were computed under.
	Fingerprint string `json:"fingerprint"`
	// Lint target path -> content hash (xxhash hex) of a file that produced
	// no diagnostics.
	Entries map[string]string `json:"entries"`
}

func defaultPath(root string) string {
	// Prefer storing cache under .git to avoid accidental commits.
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "ttlintcache.json")
	}
	return filepath.Join(root, ".ttlintcache.json")
}

// Load reads the cache for root. Entries recorded under a different pattern
// fingerprint are discarded. A missing or corrupt cache loads empty.
func Load(root, fingerprint string) DB {
	empty := DB{Fingerprint: fingerprint, Entries: map[string]string{}}
	b, err := os.ReadFile(defaultPath(root))
	if err != nil {
		return empty
	}
	var db DB
	if err := json.Unmarshal(b, &db); err != nil {
		return empty
	}
	if db.Fingerprint != fingerprint || db.Entries == nil {
		return empty
	}
	return db
}

// Save writes the cache for root.
func Save(root string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	b, _ := json.MarshalIndent(db, "", "  ")
	return os.WriteFile(defaultPath(root), b, 0644)
}
