package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/taskboard/internal/db"
	"github.com/alexanderramin/taskboard/internal/domain"
)

// todoColumns is the canonical SELECT column list for todos.
const todoColumns = `id, title, description, completed, user_id, project_id,
		category_id, milestone_id, priority, due_date,
		estimated_minutes, actual_minutes, parent_id, created_at, updated_at`

// SQLiteTodoRepo implements TodoRepo using a SQLite database.
type SQLiteTodoRepo struct {
	db db.DBTX
}

// NewSQLiteTodoRepo creates a new SQLiteTodoRepo.
func NewSQLiteTodoRepo(db db.DBTX) *SQLiteTodoRepo {
	return &SQLiteTodoRepo{db: db}
}

func (r *SQLiteTodoRepo) Create(ctx context.Context, t *domain.Todo) error {
	query := `INSERT INTO todos (` + todoColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Title,
		t.Description,
		boolToInt(t.Completed),
		t.UserID,
		t.ProjectID,
		nullableStringToValue(t.CategoryID),
		nullableStringToValue(t.MilestoneID),
		string(t.Priority),
		nullableTimeToString(t.DueDate, time.RFC3339),
		nullableIntToValue(t.EstimatedMinutes),
		nullableIntToValue(t.ActualMinutes),
		nullableStringToValue(t.ParentID),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting todo: %w", err)
	}
	return r.SetTags(ctx, t.ID, t.TagIDs)
}

func (r *SQLiteTodoRepo) GetByID(ctx context.Context, id string) (*domain.Todo, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = ?`, id)

	t, err := scanTodo(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("todo %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if t.TagIDs, err = r.tagIDs(ctx, t.ID); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *SQLiteTodoRepo) List(ctx context.Context, f TodoFilter) ([]*domain.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos`
	var args []any
	if f.TagID != "" {
		query += ` JOIN todo_tags ON todo_tags.todo_id = todos.id AND todo_tags.tag_id = ?`
		args = append(args, f.TagID)
	}
	query += ` WHERE 1=1`
	if f.UserID != "" {
		query += ` AND user_id = ?`
		args = append(args, f.UserID)
	}
	if f.ProjectID != "" {
		query += ` AND project_id = ?`
		args = append(args, f.ProjectID)
	}
	if f.CategoryID != "" {
		query += ` AND category_id = ?`
		args = append(args, f.CategoryID)
	}
	if f.MilestoneID != "" {
		query += ` AND milestone_id = ?`
		args = append(args, f.MilestoneID)
	}
	if f.ParentID != "" {
		query += ` AND parent_id = ?`
		args = append(args, f.ParentID)
	}
	if f.Completed != nil {
		query += ` AND completed = ?`
		args = append(args, boolToInt(*f.Completed))
	}
	if f.Priority != "" {
		query += ` AND priority = ?`
		args = append(args, f.Priority)
	}
	if f.Search != "" {
		query += ` AND (lower(title) LIKE '%'||lower(?)||'%' OR lower(description) LIKE '%'||lower(?)||'%')`
		args = append(args, f.Search, f.Search)
	}
	query += orderClause(map[string]string{
		"due_date": "due_date", "created_at": "created_at", "updated_at": "updated_at",
	}, f.Order, "created_at")

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	defer rows.Close()

	var todos []*domain.Todo
	for rows.Next() {
		t, err := scanTodo(rows.Scan)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating todos: %w", err)
	}
	for _, t := range todos {
		if t.TagIDs, err = r.tagIDs(ctx, t.ID); err != nil {
			return nil, err
		}
	}
	return todos, nil
}

func (r *SQLiteTodoRepo) Update(ctx context.Context, t *domain.Todo) error {
	query := `UPDATE todos SET title = ?, description = ?, completed = ?, project_id = ?,
		category_id = ?, milestone_id = ?, priority = ?, due_date = ?,
		estimated_minutes = ?, actual_minutes = ?, parent_id = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title,
		t.Description,
		boolToInt(t.Completed),
		t.ProjectID,
		nullableStringToValue(t.CategoryID),
		nullableStringToValue(t.MilestoneID),
		string(t.Priority),
		nullableTimeToString(t.DueDate, time.RFC3339),
		nullableIntToValue(t.EstimatedMinutes),
		nullableIntToValue(t.ActualMinutes),
		nullableStringToValue(t.ParentID),
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating todo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating todo: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("todo %s: %w", t.ID, ErrNotFound)
	}
	return r.SetTags(ctx, t.ID, t.TagIDs)
}

func (r *SQLiteTodoRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting todo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting todo: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("todo %s: %w", id, ErrNotFound)
	}
	return nil
}

// SetTags replaces the tag set of a todo.
func (r *SQLiteTodoRepo) SetTags(ctx context.Context, todoID string, tagIDs []string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM todo_tags WHERE todo_id = ?`, todoID); err != nil {
		return fmt.Errorf("clearing todo tags: %w", err)
	}
	for _, tagID := range tagIDs {
		if _, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO todo_tags (todo_id, tag_id) VALUES (?, ?)`,
			todoID, tagID); err != nil {
			return fmt.Errorf("inserting todo tag: %w", err)
		}
	}
	return nil
}

func (r *SQLiteTodoRepo) ListSubtaskIDs(ctx context.Context, parentID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM todos WHERE parent_id = ? ORDER BY created_at`, parentID)
	if err != nil {
		return nil, fmt.Errorf("listing subtasks: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning subtask id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subtasks: %w", err)
	}
	return ids, nil
}

func (r *SQLiteTodoRepo) tagIDs(ctx context.Context, todoID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT tag_id FROM todo_tags WHERE todo_id = ? ORDER BY tag_id`, todoID)
	if err != nil {
		return nil, fmt.Errorf("listing todo tags: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning todo tag: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating todo tags: %w", err)
	}
	return ids, nil
}

func scanTodo(scan func(...any) error) (*domain.Todo, error) {
	var t domain.Todo
	var completed int
	var priorityStr, createdAtStr, updatedAtStr string
	var categoryID, milestoneID, parentID, dueDateStr sql.NullString
	var estimated, actual sql.NullInt64

	err := scan(
		&t.ID, &t.Title, &t.Description, &completed, &t.UserID, &t.ProjectID,
		&categoryID, &milestoneID, &priorityStr, &dueDateStr,
		&estimated, &actual, &parentID, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning todo: %w", err)
	}

	t.Completed = intToBool(completed)
	t.Priority = domain.Priority(priorityStr)
	t.CategoryID = nullStringToPtr(categoryID)
	t.MilestoneID = nullStringToPtr(milestoneID)
	t.ParentID = nullStringToPtr(parentID)
	t.DueDate = parseNullableTime(dueDateStr, time.RFC3339)
	t.EstimatedMinutes = nullIntToPtr(estimated)
	t.ActualMinutes = nullIntToPtr(actual)

	if t.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if t.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &t, nil
}
