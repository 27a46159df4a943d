// # internal/history/store.go
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const (
	driverName  = "sqlite"
	maxAttempts = 5
)

// ScanRecord is one persisted scan result.
type ScanRecord struct {
	ScanID        string
	ProjectKey    string
	Timestamp     time.Time
	Root          string
	ModuleCount   int
	EdgeCount     int
	CycleCount    int
	ParseFailures int
	Duration      time.Duration
	Cycles        [][]string
}

type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("history path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("history path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}

	// busy_timeout + WAL reduce lock conflicts during watch-mode churn.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite history %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite history %q: %w", cleanPath, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize sqlite schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// SaveScan persists one scan record. A missing scan id or timestamp is
// filled in; the returned id identifies the stored row.
func (s *Store) SaveScan(rec ScanRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ScanID == "" {
		rec.ScanID = uuid.NewString()
	}
	if rec.ProjectKey == "" {
		rec.ProjectKey = "default"
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	cyclesJSON, err := json.Marshal(rec.Cycles)
	if err != nil {
		return "", fmt.Errorf("encode cycles: %w", err)
	}

	query := `
INSERT INTO scans (
  scan_id, project_key, ts_utc, root, module_count, edge_count,
  cycle_count, parse_failures, duration_ms, cycles_json
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`
	err = s.withRetry("save scan", func() error {
		_, execErr := s.db.Exec(
			query,
			rec.ScanID,
			rec.ProjectKey,
			rec.Timestamp.UTC().Format(time.RFC3339Nano),
			rec.Root,
			rec.ModuleCount,
			rec.EdgeCount,
			rec.CycleCount,
			rec.ParseFailures,
			rec.Duration.Milliseconds(),
			string(cyclesJSON),
		)
		return execErr
	})
	if err != nil {
		return "", err
	}
	return rec.ScanID, nil
}

// LoadScans returns scans for a project ordered oldest first. A zero since
// loads everything.
func (s *Store) LoadScans(projectKey string, since time.Time) ([]ScanRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if projectKey == "" {
		projectKey = "default"
	}

	base := `
SELECT scan_id, project_key, ts_utc, root, module_count, edge_count,
  cycle_count, parse_failures, duration_ms, cycles_json
FROM scans
WHERE project_key = ?`
	args := []any{projectKey}
	if !since.IsZero() {
		base += " AND ts_utc >= ?"
		args = append(args, since.UTC().Format(time.RFC3339Nano))
	}
	base += " ORDER BY ts_utc ASC, scan_id ASC"

	var rows *sql.Rows
	err := s.withRetry("load scans", func() error {
		var qErr error
		rows, qErr = s.db.Query(base, args...)
		return qErr
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]ScanRecord, 0)
	for rows.Next() {
		var (
			rec        ScanRecord
			tsRaw      string
			durationMS int64
			cyclesRaw  string
		)
		if err := rows.Scan(
			&rec.ScanID,
			&rec.ProjectKey,
			&tsRaw,
			&rec.Root,
			&rec.ModuleCount,
			&rec.EdgeCount,
			&rec.CycleCount,
			&rec.ParseFailures,
			&durationMS,
			&cyclesRaw,
		); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}

		ts, err := time.Parse(time.RFC3339Nano, tsRaw)
		if err != nil {
			return nil, fmt.Errorf("parse scan timestamp %q: %w", tsRaw, err)
		}
		rec.Timestamp = ts.UTC()
		rec.Duration = time.Duration(durationMS) * time.Millisecond

		if err := json.Unmarshal([]byte(cyclesRaw), &rec.Cycles); err != nil {
			return nil, fmt.Errorf("decode cycles for scan %s: %w", rec.ScanID, err)
		}

		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}

	return records, nil
}

func (s *Store) withRetry(op string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !isLockError(err) || attempt == maxAttempts {
			break
		}
		time.Sleep(time.Duration(attempt*25) * time.Millisecond)
	}
	return fmt.Errorf("%s: %w", op, lastErr)
}

func isLockError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "busy")
}
