// Package storage keeps the pipeline's run index in SQLite: which
// source was scraped when, what each clean run produced, and a small
// metadata key/value table. The datasets themselves live in files; this
// index only answers "when did we last harvest X".
package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS scrapes (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  country TEXT NOT NULL,
  source TEXT NOT NULL,
  records INTEGER NOT NULL,
  rawRef TEXT NOT NULL,
  scrapedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_scrapes_country_source ON scrapes(country, source);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  country TEXT NOT NULL,
  records INTEGER NOT NULL,
  dropped INTEGER NOT NULL,
  exportRef TEXT,
  ranAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`
	_, err := d.conn.Exec(schema)
	return err
}

// RecordScrape notes a completed source harvest and its raw file.
func (d *DB) RecordScrape(country, source, rawRef string, records int) error {
	_, err := d.conn.Exec(
		`INSERT INTO scrapes (country, source, records, rawRef, scrapedAt) VALUES (?, ?, ?, ?, ?)`,
		country, source, records, rawRef, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// RecordRun notes a completed clean run and its export location.
func (d *DB) RecordRun(country string, records, dropped int, exportRef string) error {
	_, err := d.conn.Exec(
		`INSERT INTO runs (country, records, dropped, exportRef, ranAt) VALUES (?, ?, ?, ?, ?)`,
		country, records, dropped, exportRef, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// LastScrape returns the most recent scrape time for a source, or nil
// when the source was never harvested.
func (d *DB) LastScrape(country, source string) (*string, error) {
	row := d.conn.QueryRow(
		`SELECT scrapedAt FROM scrapes WHERE country = ? AND source = ? ORDER BY scrapedAt DESC LIMIT 1`,
		country, source,
	)
	var at string
	if err := row.Scan(&at); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &at, nil
}

// HarvestedOn reports whether a source was already scraped on the
// given UTC day. Used to skip re-harvesting a site within one day.
func (d *DB) HarvestedOn(country, source string, day time.Time) (bool, error) {
	at, err := d.LastScrape(country, source)
	if err != nil || at == nil {
		return false, err
	}
	last, err := time.Parse(time.RFC3339, *at)
	if err != nil {
		return false, nil
	}
	return last.UTC().Format("20060102") == day.UTC().Format("20060102"), nil
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(
		`INSERT INTO metadata (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	row := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key)
	var value string
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &value, nil
}
