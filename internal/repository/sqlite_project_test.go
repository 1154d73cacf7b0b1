package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/taskboard/internal/testutil"
)

func TestProjectRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := NewSQLiteUserRepo(db)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	owner := testutil.NewTestUser("alice")
	require.NoError(t, users.Create(ctx, owner))

	proj := testutil.NewTestProject("Garden", owner.ID, testutil.WithDescription("Backyard overhaul"))
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Garden", fetched.Name)
	assert.Equal(t, "Backyard overhaul", fetched.Description)
	assert.Equal(t, owner.ID, fetched.OwnerID)
	assert.Equal(t, []string{owner.ID}, fetched.MemberIDs)
	assert.Equal(t, proj.CreatedAt.Format(time.RFC3339), fetched.CreatedAt.Format(time.RFC3339))
}

func TestProjectRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectRepo_SetMembers(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := NewSQLiteUserRepo(db)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	owner := testutil.NewTestUser("alice")
	member := testutil.NewTestUser("bob")
	require.NoError(t, users.Create(ctx, owner))
	require.NoError(t, users.Create(ctx, member))

	proj := testutil.NewTestProject("Garden", owner.ID)
	require.NoError(t, repo.Create(ctx, proj))

	require.NoError(t, repo.SetMembers(ctx, proj.ID, []string{owner.ID, member.ID}))
	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Len(t, fetched.MemberIDs, 2)
	assert.Contains(t, fetched.MemberIDs, member.ID)

	// Replacing the set drops removed members.
	require.NoError(t, repo.SetMembers(ctx, proj.ID, []string{owner.ID}))
	fetched, err = repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{owner.ID}, fetched.MemberIDs)
}

func TestProjectRepo_List_Filters(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := NewSQLiteUserRepo(db)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	alice := testutil.NewTestUser("alice")
	bob := testutil.NewTestUser("bob")
	require.NoError(t, users.Create(ctx, alice))
	require.NoError(t, users.Create(ctx, bob))

	p1 := testutil.NewTestProject("Garden", alice.ID, testutil.WithMembers(bob.ID))
	p2 := testutil.NewTestProject("Kitchen", alice.ID)
	p3 := testutil.NewTestProject("Thesis", bob.ID)
	require.NoError(t, repo.Create(ctx, p1))
	require.NoError(t, repo.Create(ctx, p2))
	require.NoError(t, repo.Create(ctx, p3))

	byOwner, err := repo.List(ctx, ProjectFilter{OwnerID: alice.ID})
	require.NoError(t, err)
	assert.Len(t, byOwner, 2)

	byMember, err := repo.List(ctx, ProjectFilter{MemberID: bob.ID})
	require.NoError(t, err)
	assert.Len(t, byMember, 2) // owns Thesis, member of Garden

	bySearch, err := repo.List(ctx, ProjectFilter{Search: "gard"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, p1.ID, bySearch[0].ID)
}

func TestProjectRepo_List_Ordering(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := NewSQLiteUserRepo(db)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	owner := testutil.NewTestUser("alice")
	require.NoError(t, users.Create(ctx, owner))

	for _, name := range []string{"Bravo", "Alpha", "Charlie"} {
		require.NoError(t, repo.Create(ctx, testutil.NewTestProject(name, owner.ID)))
	}

	asc, err := repo.List(ctx, ProjectFilter{Order: "name"})
	require.NoError(t, err)
	require.Len(t, asc, 3)
	assert.Equal(t, "Alpha", asc[0].Name)
	assert.Equal(t, "Charlie", asc[2].Name)

	desc, err := repo.List(ctx, ProjectFilter{Order: "-name"})
	require.NoError(t, err)
	require.Len(t, desc, 3)
	assert.Equal(t, "Charlie", desc[0].Name)
}

func TestProjectRepo_UpdateAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := NewSQLiteUserRepo(db)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	owner := testutil.NewTestUser("alice")
	require.NoError(t, users.Create(ctx, owner))

	proj := testutil.NewTestProject("Garden", owner.ID)
	require.NoError(t, repo.Create(ctx, proj))

	proj.Name = "Garden v2"
	proj.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Garden v2", fetched.Name)

	require.NoError(t, repo.Delete(ctx, proj.ID))
	_, err = repo.GetByID(ctx, proj.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, proj.ID), ErrNotFound)
}
