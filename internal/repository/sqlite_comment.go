package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/taskboard/internal/db"
	"github.com/alexanderramin/taskboard/internal/domain"
)

// SQLiteCommentRepo implements CommentRepo using a SQLite database.
// Comments have no update path: they are immutable after creation.
type SQLiteCommentRepo struct {
	db db.DBTX
}

// NewSQLiteCommentRepo creates a new SQLiteCommentRepo.
func NewSQLiteCommentRepo(db db.DBTX) *SQLiteCommentRepo {
	return &SQLiteCommentRepo{db: db}
}

func (r *SQLiteCommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	query := `INSERT INTO comments (id, todo_id, user_id, content, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.TodoID, c.UserID, c.Content, c.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting comment: %w", err)
	}
	return nil
}

func (r *SQLiteCommentRepo) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, todo_id, user_id, content, created_at FROM comments WHERE id = ?`, id)

	var c domain.Comment
	var createdAtStr string
	err := row.Scan(&c.ID, &c.TodoID, &c.UserID, &c.Content, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("comment %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning comment: %w", err)
	}
	if c.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &c, nil
}

func (r *SQLiteCommentRepo) List(ctx context.Context, f CommentFilter) ([]*domain.Comment, error) {
	query := `SELECT id, todo_id, user_id, content, created_at FROM comments WHERE 1=1`
	var args []any
	if f.TodoID != "" {
		query += ` AND todo_id = ?`
		args = append(args, f.TodoID)
	}
	if f.UserID != "" {
		query += ` AND user_id = ?`
		args = append(args, f.UserID)
	}
	query += orderClause(map[string]string{"created_at": "created_at"}, f.Order, "created_at")

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		var c domain.Comment
		var createdAtStr string
		if err := rows.Scan(&c.ID, &c.TodoID, &c.UserID, &c.Content, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning comment row: %w", err)
		}
		if c.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		comments = append(comments, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comments: %w", err)
	}
	return comments, nil
}

func (r *SQLiteCommentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("comment %s: %w", id, ErrNotFound)
	}
	return nil
}

// SQLiteAttachmentRepo implements AttachmentRepo using a SQLite database.
type SQLiteAttachmentRepo struct {
	db db.DBTX
}

// NewSQLiteAttachmentRepo creates a new SQLiteAttachmentRepo.
func NewSQLiteAttachmentRepo(db db.DBTX) *SQLiteAttachmentRepo {
	return &SQLiteAttachmentRepo{db: db}
}

func (r *SQLiteAttachmentRepo) Create(ctx context.Context, a *domain.Attachment) error {
	query := `INSERT INTO attachments (id, todo_id, user_id, file_name, file_path, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.TodoID, a.UserID, a.FileName, a.FilePath, a.UploadedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting attachment: %w", err)
	}
	return nil
}

func (r *SQLiteAttachmentRepo) GetByID(ctx context.Context, id string) (*domain.Attachment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, todo_id, user_id, file_name, file_path, uploaded_at
		FROM attachments WHERE id = ?`, id)

	var a domain.Attachment
	var uploadedAtStr string
	err := row.Scan(&a.ID, &a.TodoID, &a.UserID, &a.FileName, &a.FilePath, &uploadedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("attachment %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning attachment: %w", err)
	}
	if a.UploadedAt, err = time.Parse(time.RFC3339, uploadedAtStr); err != nil {
		return nil, fmt.Errorf("parsing uploaded_at: %w", err)
	}
	return &a, nil
}

func (r *SQLiteAttachmentRepo) List(ctx context.Context, f AttachmentFilter) ([]*domain.Attachment, error) {
	query := `SELECT id, todo_id, user_id, file_name, file_path, uploaded_at
		FROM attachments WHERE 1=1`
	var args []any
	if f.TodoID != "" {
		query += ` AND todo_id = ?`
		args = append(args, f.TodoID)
	}
	if f.UserID != "" {
		query += ` AND user_id = ?`
		args = append(args, f.UserID)
	}
	query += orderClause(map[string]string{"uploaded_at": "uploaded_at"}, f.Order, "uploaded_at")

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing attachments: %w", err)
	}
	defer rows.Close()

	var attachments []*domain.Attachment
	for rows.Next() {
		var a domain.Attachment
		var uploadedAtStr string
		if err := rows.Scan(&a.ID, &a.TodoID, &a.UserID, &a.FileName, &a.FilePath, &uploadedAtStr); err != nil {
			return nil, fmt.Errorf("scanning attachment row: %w", err)
		}
		if a.UploadedAt, err = time.Parse(time.RFC3339, uploadedAtStr); err != nil {
			return nil, fmt.Errorf("parsing uploaded_at: %w", err)
		}
		attachments = append(attachments, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating attachments: %w", err)
	}
	return attachments, nil
}

func (r *SQLiteAttachmentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM attachments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting attachment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting attachment: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("attachment %s: %w", id, ErrNotFound)
	}
	return nil
}
