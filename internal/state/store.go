// Package state persists which extension versions have been installed, so
// update checks can compare against what is already on disk.
package state

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// InstalledExtension is one row of the install history.
type InstalledExtension struct {
	Name        string
	Version     string
	Source      string
	InstalledAt time.Time
}

// Store is a sqlite-backed install-state store.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS installed_extensions (
	name         TEXT PRIMARY KEY COLLATE NOCASE,
	version      TEXT NOT NULL,
	source       TEXT NOT NULL DEFAULT '',
	installed_at TIMESTAMP NOT NULL
);`

// Open opens (and if needed creates) the store at path. Use ":memory:" for
// an ephemeral store in tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize state database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordInstall upserts the installed version of an extension.
func (s *Store) RecordInstall(name, version, sourceName string) error {
	_, err := s.db.Exec(`
		INSERT INTO installed_extensions (name, version, source, installed_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			version = excluded.version,
			source = excluded.source,
			installed_at = excluded.installed_at`,
		name, version, sourceName, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record install of %s %s: %w", name, version, err)
	}
	return nil
}

// InstalledVersion returns the recorded version for an extension name,
// matched case-insensitively.
func (s *Store) InstalledVersion(name string) (string, bool, error) {
	var version string
	err := s.db.QueryRow(
		`SELECT version FROM installed_extensions WHERE name = ?`, name).Scan(&version)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query installed version of %s: %w", name, err)
	}
	return version, true, nil
}

// Installed lists every recorded extension, ordered by name.
func (s *Store) Installed() ([]InstalledExtension, error) {
	rows, err := s.db.Query(`
		SELECT name, version, source, installed_at
		FROM installed_extensions ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("failed to list installed extensions: %w", err)
	}
	defer rows.Close()

	var out []InstalledExtension
	for rows.Next() {
		var ext InstalledExtension
		if err := rows.Scan(&ext.Name, &ext.Version, &ext.Source, &ext.InstalledAt); err != nil {
			return nil, fmt.Errorf("failed to scan installed extension: %w", err)
		}
		out = append(out, ext)
	}
	return out, rows.Err()
}

// Remove deletes the record for an extension name.
func (s *Store) Remove(name string) error {
	_, err := s.db.Exec(`DELETE FROM installed_extensions WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to remove %s from state: %w", name, err)
	}
	return nil
}
