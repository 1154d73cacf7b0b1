package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/taskboard/internal/db"
	"github.com/alexanderramin/taskboard/internal/domain"
)

// SQLiteRecurringTaskRepo implements RecurringTaskRepo using a SQLite database.
// The todo_id UNIQUE constraint enforces at most one rule per todo.
type SQLiteRecurringTaskRepo struct {
	db db.DBTX
}

// NewSQLiteRecurringTaskRepo creates a new SQLiteRecurringTaskRepo.
func NewSQLiteRecurringTaskRepo(db db.DBTX) *SQLiteRecurringTaskRepo {
	return &SQLiteRecurringTaskRepo{db: db}
}

func (r *SQLiteRecurringTaskRepo) Create(ctx context.Context, rt *domain.RecurringTask) error {
	query := `INSERT INTO recurring_tasks (id, todo_id, frequency, start_date, end_date)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rt.ID,
		rt.TodoID,
		string(rt.Frequency),
		rt.StartDate.Format(time.RFC3339),
		nullableTimeToString(rt.EndDate, time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("inserting recurring task: %w", ErrDuplicate)
		}
		return fmt.Errorf("inserting recurring task: %w", err)
	}
	return nil
}

func (r *SQLiteRecurringTaskRepo) GetByID(ctx context.Context, id string) (*domain.RecurringTask, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, todo_id, frequency, start_date, end_date
		FROM recurring_tasks WHERE id = ?`, id)
	rt, err := scanRecurringTask(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("recurring task %s: %w", id, ErrNotFound)
	}
	return rt, err
}

func (r *SQLiteRecurringTaskRepo) GetByTodo(ctx context.Context, todoID string) (*domain.RecurringTask, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, todo_id, frequency, start_date, end_date
		FROM recurring_tasks WHERE todo_id = ?`, todoID)
	rt, err := scanRecurringTask(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("recurring task for todo %s: %w", todoID, ErrNotFound)
	}
	return rt, err
}

func (r *SQLiteRecurringTaskRepo) List(ctx context.Context, f RecurringTaskFilter) ([]*domain.RecurringTask, error) {
	query := `SELECT id, todo_id, frequency, start_date, end_date
		FROM recurring_tasks WHERE 1=1`
	var args []any
	if f.TodoID != "" {
		query += ` AND todo_id = ?`
		args = append(args, f.TodoID)
	}
	if f.Frequency != "" {
		query += ` AND frequency = ?`
		args = append(args, f.Frequency)
	}
	query += ` ORDER BY start_date`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing recurring tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.RecurringTask
	for rows.Next() {
		rt, err := scanRecurringTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recurring tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteRecurringTaskRepo) Update(ctx context.Context, rt *domain.RecurringTask) error {
	query := `UPDATE recurring_tasks SET frequency = ?, start_date = ?, end_date = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(rt.Frequency),
		rt.StartDate.Format(time.RFC3339),
		nullableTimeToString(rt.EndDate, time.RFC3339),
		rt.ID,
	)
	if err != nil {
		return fmt.Errorf("updating recurring task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating recurring task: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("recurring task %s: %w", rt.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteRecurringTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM recurring_tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting recurring task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting recurring task: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("recurring task %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanRecurringTask(scan func(...any) error) (*domain.RecurringTask, error) {
	var rt domain.RecurringTask
	var frequencyStr, startDateStr string
	var endDateStr sql.NullString

	err := scan(&rt.ID, &rt.TodoID, &frequencyStr, &startDateStr, &endDateStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning recurring task: %w", err)
	}

	rt.Frequency = domain.Frequency(frequencyStr)
	rt.EndDate = parseNullableTime(endDateStr, time.RFC3339)
	if rt.StartDate, err = time.Parse(time.RFC3339, startDateStr); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	return &rt, nil
}
