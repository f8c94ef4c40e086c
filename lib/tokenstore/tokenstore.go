// Package tokenstore persists bearer tokens between runs. Each session
// domain owns exactly one row keyed by namespace.
package tokenstore

import (
	"context"
	"database/sql"
	"strings"

	"fleamarket-client/lib/timezone"

	_ "embed"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

type Store struct {
	db *sql.DB
}

// Open opens (and migrates) a token database. `path` is a local sqlite
// file, ":memory:", or a libsql:// URL for a remote database.
func Open(path string) (*Store, error) {
	driver := "sqlite"
	if strings.HasPrefix(path, "libsql://") {
		driver = "libsql"
	}
	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		// see https://stackoverflow.com/questions/35804884 for why
		// sqlite writes want a single connection
		db.SetMaxOpenConns(1)
	}
	_, err = db.Exec(Schema)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func New(db *sql.DB) (*Store, error) {
	_, err := db.Exec(Schema)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the stored token for a namespace, or "" when none exists.
func (s *Store) Get(ctx context.Context, namespace string) (string, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT token FROM tokens WHERE namespace = ?`,
		namespace,
	)
	var token string
	err := row.Scan(&token)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *Store) Set(ctx context.Context, namespace, token string) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO tokens (namespace, token, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (namespace) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at`,
		namespace, token, timezone.Now().Unix(),
	)
	return err
}

func (s *Store) Delete(ctx context.Context, namespace string) error {
	_, err := s.db.ExecContext(
		ctx,
		`DELETE FROM tokens WHERE namespace = ?`,
		namespace,
	)
	return err
}
