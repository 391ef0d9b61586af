package module

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite" // pure-Go driver registered under "sqlite"
)

// DiskCache persists each resolved module's size/mtime in a sqlite
// database, the way internal/db's db.go wraps database/sql for
// termfx-morfx's on-disk state. It does not cache the evaluated scope
// itself -- a *scope.Scope holds live Go closures that don't survive a
// process boundary -- only the metadata a future run needs to decide
// whether a module changed since it was last loaded.
type DiskCache struct {
	db *sql.DB
}

// OpenDiskCache opens (creating if necessary) the sqlite database at path.
func OpenDiskCache(path string) (*DiskCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening module cache %s: %w", path, err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS modules (
			path       TEXT PRIMARY KEY,
			size       INTEGER NOT NULL,
			mod_time   INTEGER NOT NULL,
			seen_at    INTEGER NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating module cache schema: %w", err)
	}
	return &DiskCache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *DiskCache) Close() error { return c.db.Close() }

// Check reports whether path's previously recorded size/mtime still match
// info (fresh=true), and whether a record existed at all (ok).
func (c *DiskCache) Check(path string, info os.FileInfo) (fresh bool, ok bool) {
	var size, modTime int64
	err := c.db.QueryRow(`SELECT size, mod_time FROM modules WHERE path = ?`, path).Scan(&size, &modTime)
	if err != nil {
		return false, false
	}
	return size == info.Size() && modTime == info.ModTime().Unix(), true
}

// Record upserts path's current size/mtime.
func (c *DiskCache) Record(path string, info os.FileInfo) error {
	_, err := c.db.Exec(`
		INSERT INTO modules (path, size, mod_time, seen_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET size = excluded.size, mod_time = excluded.mod_time, seen_at = excluded.seen_at
	`, path, info.Size(), info.ModTime().Unix(), time.Now().Unix())
	return err
}
