package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// SQLiteRepository stores appointments in a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// Open creates (or reuses) the SQLite database at path and bootstraps the
// schema. An existing appointments table from an earlier deployment that
// lacks the email column is migrated additively with a backfill default.
func Open(path string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("appointment: create data dir: %w", err)
		}
	}

	// WAL mode for concurrent sessions sharing one store, busy timeout to
	// wait instead of failing.
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("appointment: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("appointment: ping database: %w", err)
	}

	repo := &SQLiteRepository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

// NewSQLiteRepository wraps an already-open database handle. The schema must
// exist; callers normally use Open.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	if db == nil {
		panic("appointment: db handle required")
	}
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) migrate() error {
	var name string
	err := r.db.QueryRow(
		`SELECT name FROM sqlite_master WHERE type='table' AND name='appointments'`,
	).Scan(&name)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := r.db.Exec(`
			CREATE TABLE appointments (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				email TEXT NOT NULL,
				date TEXT NOT NULL,
				time TEXT NOT NULL,
				purpose TEXT,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`); err != nil {
			return fmt.Errorf("appointment: create table: %w", err)
		}
	case err != nil:
		return fmt.Errorf("appointment: inspect schema: %w", err)
	default:
		if err := r.ensureEmailColumn(); err != nil {
			return err
		}
	}

	// Guards the check-then-insert race when several sessions share the
	// store: the duplicate-booking invariant is enforced here, not only by
	// the resolver's Exists pre-check. Ignore failure on legacy databases
	// that already contain duplicate rows.
	_, _ = r.db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_identity
		ON appointments (name, email, date, time)`)

	return nil
}

func (r *SQLiteRepository) ensureEmailColumn() error {
	rows, err := r.db.Query(`PRAGMA table_info(appointments)`)
	if err != nil {
		return fmt.Errorf("appointment: inspect columns: %w", err)
	}
	defer rows.Close()

	hasEmail := false
	for rows.Next() {
		var (
			cid        int
			col, ctype string
			notnull    int
			dflt       sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &col, &ctype, &notnull, &dflt, &pk); err != nil {
			return fmt.Errorf("appointment: scan column info: %w", err)
		}
		if col == "email" {
			hasEmail = true
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("appointment: iterate columns: %w", err)
	}

	if !hasEmail {
		if _, err := r.db.Exec(
			`ALTER TABLE appointments ADD COLUMN email TEXT DEFAULT 'no-email@example.com'`,
		); err != nil {
			return fmt.Errorf("appointment: add email column: %w", err)
		}
	}
	return nil
}

// Create inserts a record, mapping a uniqueness violation to ErrDuplicate.
func (r *SQLiteRepository) Create(ctx context.Context, name, email, date, clock, purpose string) (*Record, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO appointments (name, email, date, time, purpose) VALUES (?, ?, ?, ?, ?)`,
		name, email, date, clock, purpose,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("appointment: insert: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("appointment: last insert id: %w", err)
	}

	rec := &Record{ID: id}
	var storedPurpose sql.NullString
	err = r.db.QueryRowContext(ctx,
		`SELECT name, email, date, time, purpose, created_at FROM appointments WHERE id = ?`, id,
	).Scan(&rec.Name, &rec.Email, &rec.Date, &rec.Time, &storedPurpose, &rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("appointment: reload inserted row: %w", err)
	}
	rec.Purpose = storedPurpose.String
	return rec, nil
}

// Find returns records matching the query, ordered by (date, time).
func (r *SQLiteRepository) Find(ctx context.Context, q Query) ([]Record, error) {
	query := `SELECT id, name, email, date, time, purpose, created_at FROM appointments`
	var (
		conditions []string
		args       []any
	)
	if q.Name != "" {
		conditions = append(conditions, "LOWER(name) LIKE LOWER(?)")
		args = append(args, "%"+q.Name+"%")
	}
	if q.Email != "" {
		conditions = append(conditions, "LOWER(email) LIKE LOWER(?)")
		args = append(args, "%"+q.Email+"%")
	}
	if q.Date != "" {
		conditions = append(conditions, "date = ?")
		args = append(args, q.Date)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date, time"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("appointment: query: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var purpose sql.NullString
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Email, &rec.Date, &rec.Time, &purpose, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("appointment: scan row: %w", err)
		}
		rec.Purpose = purpose.String
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("appointment: iterate rows: %w", err)
	}
	return records, nil
}

// Exists reports whether a record with the exact tuple is present.
func (r *SQLiteRepository) Exists(ctx context.Context, name, email, date, clock string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM appointments WHERE name = ? AND email = ? AND date = ? AND time = ? LIMIT 1`,
		name, email, date, clock,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("appointment: exists check: %w", err)
	}
	return true, nil
}

// Delete removes a record by ID.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("appointment: delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("appointment: rows affected: %w", err)
	}
	return affected > 0, nil
}

// Close releases the underlying database handle.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
