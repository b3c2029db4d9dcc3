// Package storage archives row events into a local SQLite database. The
// archive is an operator-facing reconciliation trail for the dual-write
// sheet mutations; it is never consulted on the report read path.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"opsboard/internal/amqp"

	_ "modernc.org/sqlite"
)

type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(dbPath string) (*AuditRepository, error) {
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

	return &AuditRepository{db: db}, nil
}

func (r *AuditRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// RecordEvent appends one row event to the archive and returns its id.
func (r *AuditRepository) RecordEvent(ctx context.Context, e *amqp.RowEvent) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_events (sheet, op, row_ref, actor, occurred_at, cells)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Sheet, e.Op, e.RowRef, e.Actor, e.Timestamp.UTC().Format(time.RFC3339), strings.Join(e.Cells, "\t"))
	if err != nil {
		return 0, fmt.Errorf("insert audit event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Row event archived",
		"id", id,
		"sheet", e.Sheet,
		"op", e.Op,
		"row_ref", e.RowRef)
	return id, nil
}

// AuditEntry is one archived mutation.
type AuditEntry struct {
	ID         int64
	Sheet      string
	Op         string
	RowRef     string
	Actor      string
	OccurredAt time.Time
}

// ListEvents returns the newest events for a sheet, most recent first. An
// empty sheet name matches every sheet.
func (r *AuditRepository) ListEvents(ctx context.Context, sheet string, limit int) ([]AuditEntry, error) {
	if limit < 1 {
		limit = 50
	}
	query := `SELECT id, sheet, op, row_ref, actor, occurred_at FROM audit_events`
	args := []any{}
	if sheet != "" {
		query += ` WHERE sheet = ?`
		args = append(args, sheet)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var out []AuditEntry
	for rows.Next() {
		var e AuditEntry
		var occurred string
		if err := rows.Scan(&e.ID, &e.Sheet, &e.Op, &e.RowRef, &e.Actor, &occurred); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		if t, perr := time.Parse(time.RFC3339, occurred); perr == nil {
			e.OccurredAt = t
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CountEvents returns the archive size, used by the worker's startup log.
func (r *AuditRepository) CountEvents(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count audit events: %w", err)
	}
	return n, nil
}
