/*
Package sqlite provides a SQLite-backed payroll.Store.

PURPOSE:
  Persists shift records and registered holidays. Pay breakdowns are
  never stored; they are recomputed from the shift and the current policy
  so a policy change reprices history consistently.

KEY TABLES:
  shifts:   One row per worked shift (date, start, end as entered)
  holidays: Registered public holidays, one-off or recurring

INDEXES:
  - idx_shifts_date:        Month and range listings (hot path)
  - idx_holidays_unique:    No duplicate (date, name)

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. SQLite allows one writer at a
  time; the mutex keeps writers from tripping over SQLITE_BUSY.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/shifts.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  svc := payroll.NewService(store, calc, pool, logger)

MIGRATION:
  Schema is auto-migrated on New(). Tables are created if missing.

SEE ALSO:
  - payroll/shift.go: Store interface definitions
  - store/memory: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/shift-pay/calendar"
	"github.com/warp/shift-pay/payroll"
)

// Store implements payroll.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var (
	_ payroll.Store    = (*Store)(nil)
	_ payroll.Resetter = (*Store)(nil)
)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS shifts (
		id TEXT PRIMARY KEY,
		shift_date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		notes TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_shifts_date
		ON shifts(shift_date);

	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		name TEXT NOT NULL,
		recurring BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_holidays_unique
		ON holidays(date, name);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SHIFT STORE (payroll.ShiftStore interface)
// =============================================================================

// SaveShift inserts a shift or replaces the one with the same ID.
func (s *Store) SaveShift(ctx context.Context, sh payroll.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO shifts (id, shift_date, start_time, end_time, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			shift_date = excluded.shift_date,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			notes = excluded.notes
	`

	createdAt := sh.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, query,
		sh.ID,
		sh.Date.String(),
		sh.Start,
		sh.End,
		nullString(sh.Notes),
		createdAt.Format(time.RFC3339Nano),
	)
	return err
}

// GetShift retrieves a shift by ID.
func (s *Store) GetShift(ctx context.Context, id string) (*payroll.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, shift_date, start_time, end_time, notes, created_at FROM shifts WHERE id = ?",
		id,
	)
	sh, err := scanShift(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, payroll.ErrShiftNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sh, nil
}

// DeleteShift removes a shift.
func (s *Store) DeleteShift(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM shifts WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return payroll.ErrShiftNotFound
	}
	return nil
}

// ListShifts returns shifts dated within [from, to], newest first.
// Dates are stored as YYYY-MM-DD so text comparison orders them.
func (s *Store) ListShifts(ctx context.Context, from, to calendar.Date) ([]payroll.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var where []string
	var args []any
	if !from.IsZero() {
		where = append(where, "shift_date >= ?")
		args = append(args, from.String())
	}
	if !to.IsZero() {
		where = append(where, "shift_date <= ?")
		args = append(args, to.String())
	}

	query := "SELECT id, shift_date, start_time, end_time, notes, created_at FROM shifts"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY shift_date DESC, start_time DESC, created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []payroll.Shift
	for rows.Next() {
		sh, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, sh)
	}
	return shifts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanShift(row scanner) (payroll.Shift, error) {
	var sh payroll.Shift
	var date, createdAt string
	var notes sql.NullString

	if err := row.Scan(&sh.ID, &date, &sh.Start, &sh.End, &notes, &createdAt); err != nil {
		return payroll.Shift{}, err
	}

	d, err := calendar.ParseDate(date)
	if err != nil {
		return payroll.Shift{}, fmt.Errorf("shift %s: %w", sh.ID, err)
	}
	sh.Date = d
	sh.Notes = notes.String
	sh.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return sh, nil
}

// =============================================================================
// HOLIDAY STORE (payroll.HolidayStore interface)
// =============================================================================

// SaveHoliday saves a holiday to the database.
func (s *Store) SaveHoliday(ctx context.Context, h calendar.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO holidays (id, date, name, recurring, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			name = excluded.name,
			recurring = excluded.recurring
	`

	_, err := s.db.ExecContext(ctx, query,
		h.ID,
		h.Date.String(),
		h.Name,
		h.Recurring,
		time.Now().UTC().Format(time.RFC3339),
	)
	if isUniqueConstraintError(err) {
		return fmt.Errorf("%s on %s: %w", h.Name, h.Date, payroll.ErrDuplicateHoliday)
	}
	return err
}

// DeleteHoliday deletes a holiday by ID.
func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM holidays WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return payroll.ErrHolidayNotFound
	}
	return nil
}

// ListHolidays returns all holidays ordered by date.
func (s *Store) ListHolidays(ctx context.Context) ([]calendar.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, date, name, recurring FROM holidays ORDER BY date ASC, name ASC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []calendar.Holiday
	for rows.Next() {
		var h calendar.Holiday
		var dateStr string
		if err := rows.Scan(&h.ID, &dateStr, &h.Name, &h.Recurring); err != nil {
			return nil, err
		}
		d, err := calendar.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("holiday %s: %w", h.ID, err)
		}
		h.Date = d
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// Reset deletes all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM shifts; DELETE FROM holidays;")
	return err
}

// Helper functions

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
