package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/taskboard/internal/db"
	"github.com/alexanderramin/taskboard/internal/domain"
)

// SQLiteTokenRepo implements TokenRepo using a SQLite database.
// Each user holds at most one bearer token, reused across logins.
type SQLiteTokenRepo struct {
	db db.DBTX
}

// NewSQLiteTokenRepo creates a new SQLiteTokenRepo.
func NewSQLiteTokenRepo(db db.DBTX) *SQLiteTokenRepo {
	return &SQLiteTokenRepo{db: db}
}

func (r *SQLiteTokenRepo) Create(ctx context.Context, key, userID string) error {
	query := `INSERT INTO auth_tokens (key, user_id, created_at) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, key, userID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting auth token: %w", err)
	}
	return nil
}

func (r *SQLiteTokenRepo) KeyForUser(ctx context.Context, userID string) (string, error) {
	var key string
	err := r.db.QueryRowContext(ctx,
		`SELECT key FROM auth_tokens WHERE user_id = ?`, userID).Scan(&key)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("auth token: %w", ErrNotFound)
		}
		return "", fmt.Errorf("looking up auth token: %w", err)
	}
	return key, nil
}

func (r *SQLiteTokenRepo) UserIDForKey(ctx context.Context, key string) (string, error) {
	var userID string
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id FROM auth_tokens WHERE key = ?`, key).Scan(&userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("auth token: %w", ErrNotFound)
		}
		return "", fmt.Errorf("looking up auth token: %w", err)
	}
	return userID, nil
}

func (r *SQLiteTokenRepo) DeleteForUser(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("deleting auth token: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting auth token: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("auth token: %w", ErrNotFound)
	}
	return nil
}

// SQLitePasswordResetRepo implements PasswordResetRepo using a SQLite database.
type SQLitePasswordResetRepo struct {
	db db.DBTX
}

// NewSQLitePasswordResetRepo creates a new SQLitePasswordResetRepo.
func NewSQLitePasswordResetRepo(db db.DBTX) *SQLitePasswordResetRepo {
	return &SQLitePasswordResetRepo{db: db}
}

func (r *SQLitePasswordResetRepo) Create(ctx context.Context, pr *domain.PasswordReset) error {
	query := `INSERT INTO password_resets (id, user_id, token_hash, expires_at, used, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		pr.ID,
		pr.UserID,
		pr.TokenHash,
		pr.ExpiresAt.Format(time.RFC3339),
		boolToInt(pr.Used),
		pr.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting password reset: %w", err)
	}
	return nil
}

// GetActive returns the unused, unexpired reset row matching the user and
// token hash. Expired and consumed rows are never returned.
func (r *SQLitePasswordResetRepo) GetActive(ctx context.Context, userID, tokenHash string) (*domain.PasswordReset, error) {
	query := `SELECT id, user_id, token_hash, expires_at, used, created_at
		FROM password_resets
		WHERE user_id = ? AND token_hash = ? AND used = 0 AND expires_at > ?`
	now := time.Now().UTC().Format(time.RFC3339)
	row := r.db.QueryRowContext(ctx, query, userID, tokenHash, now)

	var pr domain.PasswordReset
	var expiresAtStr, createdAtStr string
	var used int
	err := row.Scan(&pr.ID, &pr.UserID, &pr.TokenHash, &expiresAtStr, &used, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("password reset: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning password reset: %w", err)
	}
	pr.Used = intToBool(used)

	pr.ExpiresAt, err = time.Parse(time.RFC3339, expiresAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing expires_at: %w", err)
	}
	pr.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &pr, nil
}

func (r *SQLitePasswordResetRepo) MarkUsed(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE password_resets SET used = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("consuming password reset: %w", err)
	}
	return nil
}
