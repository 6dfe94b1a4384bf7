// Package storage is the relational backend: records live in a SQLite
// table with one typed column per field, so normalization to core.Record
// is a straight row scan.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"budgetboard/internal/core"
	"budgetboard/internal/store"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const recordColumns = "id, project, title, description, expense_date, exact_amount, estimated, conservative, worst_case, priority, status"

func (r *SQLiteRepository) FetchAll(ctx context.Context) ([]core.Record, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+recordColumns+" FROM records ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []core.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (core.Record, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+recordColumns+" FROM records WHERE id = ?", id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Record{}, store.ErrNotFound
	}
	if err != nil {
		return core.Record{}, fmt.Errorf("get record %d: %w", id, err)
	}
	return rec, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, rec core.Record) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO records (project, title, description, expense_date, exact_amount, estimated, conservative, worst_case, priority, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Project, rec.Title, rec.Description,
		nullDate(rec.Date), nullMoney(rec.Exact), nullMoney(rec.Estimated),
		nullMoney(rec.Conservative), nullMoney(rec.WorstCase),
		rec.Priority, string(rec.Status))
	if err != nil {
		return 0, fmt.Errorf("insert record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Record saved to SQLite",
		"id", id,
		"project", rec.Project,
		"title", rec.Title)
	return id, nil
}

func (r *SQLiteRepository) UpdateStatus(ctx context.Context, id int64, status core.Status) error {
	res, err := r.db.ExecContext(ctx, "UPDATE records SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	slog.InfoContext(ctx, "Record deleted from SQLite", "id", id)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (core.Record, error) {
	var (
		rec          core.Record
		date         sql.NullString
		exactAmount  sql.NullInt64
		estimated    sql.NullInt64
		conservative sql.NullInt64
		worstCase    sql.NullInt64
		status       string
	)
	err := row.Scan(&rec.ID, &rec.Project, &rec.Title, &rec.Description,
		&date, &exactAmount, &estimated, &conservative, &worstCase,
		&rec.Priority, &status)
	if err != nil {
		return core.Record{}, err
	}

	if date.Valid {
		d, err := core.ParseExpenseDate(date.String)
		if err != nil {
			return core.Record{}, fmt.Errorf("record %d: %w", rec.ID, err)
		}
		rec.Date = d
	}
	rec.Exact = moneyPtr(exactAmount)
	rec.Estimated = moneyPtr(estimated)
	rec.Conservative = moneyPtr(conservative)
	rec.WorstCase = moneyPtr(worstCase)
	rec.Status = core.Status(status)
	return rec, nil
}

func nullDate(d core.ExpenseDate) sql.NullString {
	if d.Class == core.DateNone {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func nullMoney(m *core.Money) sql.NullInt64 {
	if m == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: m.Cents, Valid: true}
}

func moneyPtr(v sql.NullInt64) *core.Money {
	if !v.Valid {
		return nil
	}
	return &core.Money{Cents: v.Int64}
}
