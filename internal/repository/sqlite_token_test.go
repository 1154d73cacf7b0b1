package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/testutil"
)

func TestTokenRepo_Lifecycle(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := NewSQLiteUserRepo(db)
	tokens := NewSQLiteTokenRepo(db)
	ctx := context.Background()

	user := testutil.NewTestUser("alice")
	require.NoError(t, users.Create(ctx, user))
	require.NoError(t, tokens.Create(ctx, "key-1", user.ID))

	key, err := tokens.KeyForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "key-1", key)

	userID, err := tokens.UserIDForKey(ctx, "key-1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)

	require.NoError(t, tokens.DeleteForUser(ctx, user.ID))
	_, err = tokens.KeyForUser(ctx, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = tokens.DeleteForUser(ctx, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTokenRepo_UnknownKey(t *testing.T) {
	db := testutil.NewTestDB(t)
	tokens := NewSQLiteTokenRepo(db)

	_, err := tokens.UserIDForKey(context.Background(), "bogus")
	assert.ErrorIs(t, err, ErrNotFound)
}

func newResetRow(userID, tokenHash string, expiresAt time.Time) *domain.PasswordReset {
	return &domain.PasswordReset{
		ID:        uuid.New().String(),
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
}

func TestPasswordResetRepo_GetActive(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := NewSQLiteUserRepo(db)
	resets := NewSQLitePasswordResetRepo(db)
	ctx := context.Background()

	user := testutil.NewTestUser("bob")
	require.NoError(t, users.Create(ctx, user))

	pr := newResetRow(user.ID, "hash-a", time.Now().UTC().Add(30*time.Minute))
	require.NoError(t, resets.Create(ctx, pr))

	fetched, err := resets.GetActive(ctx, user.ID, "hash-a")
	require.NoError(t, err)
	assert.Equal(t, pr.ID, fetched.ID)
	assert.False(t, fetched.Used)

	// Wrong hash does not match.
	_, err = resets.GetActive(ctx, user.ID, "hash-b")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPasswordResetRepo_ExpiredNotActive(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := NewSQLiteUserRepo(db)
	resets := NewSQLitePasswordResetRepo(db)
	ctx := context.Background()

	user := testutil.NewTestUser("carol")
	require.NoError(t, users.Create(ctx, user))

	pr := newResetRow(user.ID, "hash-x", time.Now().UTC().Add(-time.Minute))
	require.NoError(t, resets.Create(ctx, pr))

	_, err := resets.GetActive(ctx, user.ID, "hash-x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPasswordResetRepo_MarkUsed(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := NewSQLiteUserRepo(db)
	resets := NewSQLitePasswordResetRepo(db)
	ctx := context.Background()

	user := testutil.NewTestUser("dave")
	require.NoError(t, users.Create(ctx, user))

	pr := newResetRow(user.ID, "hash-y", time.Now().UTC().Add(30*time.Minute))
	require.NoError(t, resets.Create(ctx, pr))
	require.NoError(t, resets.MarkUsed(ctx, pr.ID))

	_, err := resets.GetActive(ctx, user.ID, "hash-y")
	assert.ErrorIs(t, err, ErrNotFound)
}
