// Package corpus is a tiny sqlite-backed fixture store. Named source
// snippets and a short description of each live in one table, so a
// table-driven test can pull fixtures by name instead of embedding long
// literal strings inline. No package outside corpus imports it.
package corpus

import (
	"database/sql"
	"fmt"
	"sync/atomic"

	_ "modernc.org/sqlite"
)

// storeSeq gives each Open call its own private in-memory database, so
// that concurrent or sequential Stores never see each other's fixtures
// through sqlite's shared page cache.
var storeSeq atomic.Uint64

// Fixture is one named source snippet recorded in the store.
type Fixture struct {
	Name        string
	Source      string
	Description string
}

// Store wraps an in-memory sqlite database holding the fixture table.
type Store struct {
	db *sql.DB
}

// Open creates a fresh in-memory store with the fixture schema applied.
func Open() (*Store, error) {
	id := storeSeq.Add(1)
	dsn := fmt.Sprintf("file:conch-corpus-%d?mode=memory&cache=shared", id)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("corpus: open: %w", err)
	}
	const schema = `
		CREATE TABLE IF NOT EXISTS fixtures (
			name        TEXT PRIMARY KEY,
			source      TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT ''
		);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("corpus: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Put inserts or replaces a named fixture.
func (s *Store) Put(f Fixture) error {
	_, err := s.db.Exec(
		`INSERT INTO fixtures (name, source, description) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET source = excluded.source, description = excluded.description`,
		f.Name, f.Source, f.Description,
	)
	if err != nil {
		return fmt.Errorf("corpus: put %q: %w", f.Name, err)
	}
	return nil
}

// Get retrieves a fixture by name.
func (s *Store) Get(name string) (Fixture, error) {
	var f Fixture
	row := s.db.QueryRow(`SELECT name, source, description FROM fixtures WHERE name = ?`, name)
	if err := row.Scan(&f.Name, &f.Source, &f.Description); err != nil {
		return Fixture{}, fmt.Errorf("corpus: get %q: %w", name, err)
	}
	return f, nil
}

// List returns every fixture, ordered by name.
func (s *Store) List() ([]Fixture, error) {
	rows, err := s.db.Query(`SELECT name, source, description FROM fixtures ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("corpus: list: %w", err)
	}
	defer rows.Close()

	var out []Fixture
	for rows.Next() {
		var f Fixture
		if err := rows.Scan(&f.Name, &f.Source, &f.Description); err != nil {
			return nil, fmt.Errorf("corpus: scan: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// SeedDefaults loads the small built-in set of lexer and parser fixtures.
func (s *Store) SeedDefaults() error {
	for _, f := range defaultFixtures {
		if err := s.Put(f); err != nil {
			return err
		}
	}
	return nil
}

var defaultFixtures = []Fixture{
	{
		Name:        "decl_basic",
		Source:      "var x: int = 1 + 2 * 3;",
		Description: "arithmetic precedence inside a var declaration",
	},
	{
		Name:        "int_suffixes",
		Source:      "2 2l 2z 2u 2ul 2uz",
		Description: "all six integer-literal width/sign families in base 10",
	},
	{
		Name:        "if_else",
		Source:      "if x > 0 { return x; } else { return -x; }",
		Description: "if/else restricted to jump statements in both arms",
	},
	{
		Name:        "for_capture",
		Source:      "for items |&item| { discard_me(item); }",
		Description: "for loop with a single reference capture",
	},
	{
		Name:        "struct_literal",
		Source:      "struct { x: int, y: int = 0 }",
		Description: "struct expression with a defaulted member",
	},
}
