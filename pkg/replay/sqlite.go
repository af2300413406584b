package replay

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists failure records in a SQLite database file. The
// pure Go driver keeps the engine free of cgo.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// OpenSQLite opens (and if necessary creates) the database at path.
// Use ":memory:" for an ephemeral store.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open failure database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS failures (
			id          TEXT PRIMARY KEY,
			property    TEXT NOT NULL,
			seed        TEXT NOT NULL,
			value       TEXT NOT NULL,
			shrink_path TEXT NOT NULL,
			created_at  INTEGER NOT NULL,
			UNIQUE(property, seed)
		);
		CREATE INDEX IF NOT EXISTS failures_property ON failures(property);
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create failures table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Put inserts or replaces the record for (record.Property, record.Seed).
func (s *SQLiteStore) Put(record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO failures (id, property, seed, value, shrink_path, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(property, seed) DO UPDATE SET
			value = excluded.value,
			shrink_path = excluded.shrink_path,
			created_at = excluded.created_at
	`, record.ID, record.Property, formatSeed(record.Seed),
		record.Value, formatPath(record.ShrinkPath), record.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to store failure for %s: %w", record.Property, err)
	}
	return nil
}

// List returns the records for one property, oldest first.
func (s *SQLiteStore) List(property string) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query(`
		SELECT id, property, seed, value, shrink_path, created_at
		FROM failures WHERE property = ? ORDER BY created_at
	`, property)
}

// All returns every record, oldest first.
func (s *SQLiteStore) All() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query(`
		SELECT id, property, seed, value, shrink_path, created_at
		FROM failures ORDER BY created_at
	`)
}

// Delete removes a record by ID.
func (s *SQLiteStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec(`DELETE FROM failures WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete failure %s: %w", id, err)
	}
	return nil
}

// Prune removes records created before the cutoff.
func (s *SQLiteStore) Prune(cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.Exec(`DELETE FROM failures WHERE created_at < ?`, cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to prune failures: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned failures: %w", err)
	}
	return int(n), nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) query(q string, args ...any) ([]Record, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failure query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		var (
			rec       Record
			seed      string
			path      string
			createdAt int64
		)
		if err := rows.Scan(&rec.ID, &rec.Property, &seed, &rec.Value, &path, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan failure row: %w", err)
		}
		rec.Seed, err = parseSeed(seed)
		if err != nil {
			return nil, err
		}
		rec.ShrinkPath = parsePath(path)
		rec.CreatedAt = time.Unix(0, createdAt)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failure row iteration: %w", err)
	}
	return records, nil
}

// Seeds are stored as text because SQLite integers are signed 64-bit.
func formatSeed(seed uint64) string {
	return strconv.FormatUint(seed, 10)
}

func parseSeed(s string) (uint64, error) {
	seed, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt seed %q in failure database: %w", s, err)
	}
	return seed, nil
}

func formatPath(path []int) string {
	if len(path) == 0 {
		return ""
	}
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}

func parsePath(s string) []int {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	path := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			continue
		}
		path = append(path, n)
	}
	return path
}
