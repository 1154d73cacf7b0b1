package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/taskboard/internal/db"
	"github.com/alexanderramin/taskboard/internal/domain"
)

// SQLiteActivityLogRepo implements ActivityLogRepo using a SQLite database.
// The log is append-only: no update or delete operations exist.
type SQLiteActivityLogRepo struct {
	db db.DBTX
}

// NewSQLiteActivityLogRepo creates a new SQLiteActivityLogRepo.
func NewSQLiteActivityLogRepo(db db.DBTX) *SQLiteActivityLogRepo {
	return &SQLiteActivityLogRepo{db: db}
}

func (r *SQLiteActivityLogRepo) Create(ctx context.Context, a *domain.ActivityLog) error {
	query := `INSERT INTO activity_logs (id, user_id, action, target, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.UserID, a.Action, a.Target, a.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting activity log: %w", err)
	}
	return nil
}

func (r *SQLiteActivityLogRepo) GetByID(ctx context.Context, id string) (*domain.ActivityLog, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, action, target, created_at FROM activity_logs WHERE id = ?`, id)

	var a domain.ActivityLog
	var createdAtStr string
	err := row.Scan(&a.ID, &a.UserID, &a.Action, &a.Target, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("activity log %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning activity log: %w", err)
	}
	if a.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &a, nil
}

func (r *SQLiteActivityLogRepo) List(ctx context.Context, f ActivityLogFilter) ([]*domain.ActivityLog, error) {
	query := `SELECT id, user_id, action, target, created_at FROM activity_logs WHERE 1=1`
	var args []any
	if f.UserID != "" {
		query += ` AND user_id = ?`
		args = append(args, f.UserID)
	}
	if f.Action != "" {
		query += ` AND action = ?`
		args = append(args, f.Action)
	}
	query += orderClause(map[string]string{"created_at": "created_at"}, f.Order, "created_at")

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing activity logs: %w", err)
	}
	defer rows.Close()

	var logs []*domain.ActivityLog
	for rows.Next() {
		var a domain.ActivityLog
		var createdAtStr string
		if err := rows.Scan(&a.ID, &a.UserID, &a.Action, &a.Target, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning activity log row: %w", err)
		}
		if a.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		logs = append(logs, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activity logs: %w", err)
	}
	return logs, nil
}
