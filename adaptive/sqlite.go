package adaptive

import (
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore is the default Store backend: a single table
// scrapling_adaptive(domain, identifier, data JSON), matching spec.md
// §6's persistence format exactly. It uses modernc.org/sqlite, a
// cgo-free driver, so the core never requires a C toolchain to persist
// fingerprints. Schema setup goes through goose rather than a hand-rolled
// CREATE TABLE IF NOT EXISTS, so future field additions to Fingerprint
// can ship as ordinary numbered migrations.
//
// A single *sql.DB is safe for concurrent save/retrieve from multiple
// goroutines; SQLite's own locking serializes concurrent writers across
// processes, with last-writer-wins semantics per (domain, identifier).
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (and migrates) a SQLite database at path. Use
// ":memory:" for an ephemeral, process-local store.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &StorageError{Op: "open", Key: path, Err: err}
	}

	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, &StorageError{Op: "migrate", Key: path, Err: err}
	}
	goose.SetBaseFS(migrationsFS)
	if err := goose.Up(db, "migrations"); err != nil {
		db.Close()
		return nil, &StorageError{Op: "migrate", Key: path, Err: err}
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) Save(domain, identifier string, fp Fingerprint) error {
	data, err := json.Marshal(fp)
	if err != nil {
		return &StorageError{Op: "save", Key: domain + "/" + identifier, Err: err}
	}

	const q = `
		INSERT INTO scrapling_adaptive (domain, identifier, data) VALUES (?, ?, ?)
		ON CONFLICT(domain, identifier) DO UPDATE SET data = excluded.data
	`
	if _, err := s.db.Exec(q, domain, identifier, string(data)); err != nil {
		return &StorageError{Op: "save", Key: domain + "/" + identifier, Err: err}
	}
	return nil
}

func (s *SQLiteStore) Retrieve(domain, identifier string) (Fingerprint, bool, error) {
	const q = `SELECT data FROM scrapling_adaptive WHERE domain = ? AND identifier = ?`

	var raw string
	err := s.db.QueryRow(q, domain, identifier).Scan(&raw)
	switch {
	case err == sql.ErrNoRows:
		return Fingerprint{}, false, nil
	case err != nil:
		return Fingerprint{}, false, &StorageError{Op: "retrieve", Key: domain + "/" + identifier, Err: err}
	}

	var fp Fingerprint
	if err := json.Unmarshal([]byte(raw), &fp); err != nil {
		return Fingerprint{}, false, &StorageError{Op: "retrieve", Key: domain + "/" + identifier, Err: fmt.Errorf("decode stored fingerprint: %w", err)}
	}
	return fp, true, nil
}

var _ Store = (*SQLiteStore)(nil)
