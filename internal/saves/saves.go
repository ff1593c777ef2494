// Package saves keeps local saved games in a SQLite file, one row
// per save name. Game state travels as the engine's snapshot bytes.
package saves

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/zun-zs/minesweeper/internal/mines"
)

var (
	ErrBadName  = errors.New("bad save name")
	ErrNotFound = errors.New("save not found")
)

type Store struct {
	mu sync.Mutex
	db *sql.DB
}

func validName(s string) bool {
	if s == "" || len(s) > 64 {
		return false
	}
	for _, c := range s {
		switch {
		case 'a' <= c && c <= 'z':
		case 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open save file: %w", err)
	}
	return NewStore(db)
}

func NewStore(db *sql.DB) (*Store, error) {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS save (
	name		TEXT PRIMARY KEY,
	seed		TEXT NOT NULL,
	phase		TEXT NOT NULL,
	saved_at	INTEGER NOT NULL,
	state		BLOB NOT NULL
);`)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

type SaveInfo struct {
	Name    string
	Seed    string
	Phase   string
	SavedAt time.Time
}

// Put inserts a new save or overwrites an existing one. Save names
// may contain Latin letters, digits, dashes and underscores.
func (s *Store) Put(name string, g *mines.Game) error {
	if !validName(name) {
		return ErrBadName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := g.Bytes()
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
INSERT INTO save (name, seed, phase, saved_at, state)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(name)
DO UPDATE SET seed=excluded.seed, phase=excluded.phase,
	saved_at=excluded.saved_at, state=excluded.state;`,
		name, g.Seed(), g.Phase.String(), time.Now().Unix(), state)
	return err
}

// Load restores the named game. Returns [ErrNotFound] when no save
// exists under name.
func (s *Store) Load(name string) (*mines.Game, error) {
	var state []byte
	err := s.db.QueryRow(
		`SELECT state FROM save WHERE name = ?;`, name,
	).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return mines.DecodeGame(state)
}

// Delete removes a save without checking that it existed.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM save WHERE name = ?;`, name)
	return err
}

// List returns save metadata, newest first.
func (s *Store) List() ([]SaveInfo, error) {
	rows, err := s.db.Query(
		`SELECT name, seed, phase, saved_at FROM save ORDER BY saved_at DESC, name;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []SaveInfo
	for rows.Next() {
		var (
			info    SaveInfo
			savedAt int64
		)
		if err := rows.Scan(&info.Name, &info.Seed, &info.Phase, &savedAt); err != nil {
			return nil, err
		}
		info.SavedAt = time.Unix(savedAt, 0)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

func (s *Store) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT count(*) FROM save;`).Scan(&count)
	return count, err
}

func (s *Store) Close() error {
	return s.db.Close()
}
