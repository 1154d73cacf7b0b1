package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/repository"
	"github.com/alexanderramin/taskboard/internal/testutil"
)

// svcEnv wires every service over one test database, with two registered
// users: an owner and an outsider.
type svcEnv struct {
	db       *sql.DB
	perms    *Permissions
	projects ProjectService
	todos    TodoService
	owner    *domain.User
	outsider *domain.User
}

func newSvcEnv(t *testing.T) (*svcEnv, context.Context) {
	t.Helper()
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	projectRepo := repository.NewSQLiteProjectRepo(db)
	todoRepo := repository.NewSQLiteTodoRepo(db)
	perms := NewPermissions(projectRepo, todoRepo)

	env := &svcEnv{
		db:       db,
		perms:    perms,
		projects: NewProjectService(projectRepo, perms),
		todos:    NewTodoService(todoRepo, testutil.NewTestUoW(db), perms),
		owner:    testutil.NewTestUser("owner"),
		outsider: testutil.NewTestUser("outsider"),
	}
	users := repository.NewSQLiteUserRepo(db)
	require.NoError(t, users.Create(ctx, env.owner))
	require.NoError(t, users.Create(ctx, env.outsider))
	return env, ctx
}

func (e *svcEnv) createProject(t *testing.T, ctx context.Context, name string) *domain.Project {
	t.Helper()
	p := &domain.Project{Name: name}
	require.NoError(t, e.projects.Create(ctx, e.owner.ID, p))
	return p
}

func TestProjectService_CreateStampsOwner(t *testing.T) {
	env, ctx := newSvcEnv(t)

	p := &domain.Project{Name: "Garden", OwnerID: "spoofed-owner"}
	require.NoError(t, env.projects.Create(ctx, env.owner.ID, p))

	fetched, err := env.projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, env.owner.ID, fetched.OwnerID)
	assert.Contains(t, fetched.MemberIDs, env.owner.ID)
}

func TestProjectService_CreateRequiresAuth(t *testing.T) {
	env, ctx := newSvcEnv(t)

	err := env.projects.Create(ctx, "", &domain.Project{Name: "Garden"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestProjectService_CreateRequiresName(t *testing.T) {
	env, ctx := newSvcEnv(t)

	err := env.projects.Create(ctx, env.owner.ID, &domain.Project{Name: "  "})
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "name")
}

func TestProjectService_UpdateOwnerOnly(t *testing.T) {
	env, ctx := newSvcEnv(t)
	p := env.createProject(t, ctx, "Garden")

	p.Name = "Garden v2"
	err := env.projects.Update(ctx, env.outsider.ID, p)
	assert.ErrorIs(t, err, ErrForbidden)

	err = env.projects.Update(ctx, "", p)
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, env.projects.Update(ctx, env.owner.ID, p))
	fetched, err := env.projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Garden v2", fetched.Name)
}

func TestProjectService_UpdateKeepsOwnerMembership(t *testing.T) {
	env, ctx := newSvcEnv(t)
	p := env.createProject(t, ctx, "Garden")

	// Dropping the owner from the member list has no effect.
	p.MemberIDs = []string{env.outsider.ID}
	require.NoError(t, env.projects.Update(ctx, env.owner.ID, p))

	fetched, err := env.projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Contains(t, fetched.MemberIDs, env.owner.ID)
	assert.Contains(t, fetched.MemberIDs, env.outsider.ID)
	assert.Equal(t, env.owner.ID, fetched.OwnerID)
}

func TestProjectService_DeleteOwnerOnly(t *testing.T) {
	env, ctx := newSvcEnv(t)
	p := env.createProject(t, ctx, "Garden")

	assert.ErrorIs(t, env.projects.Delete(ctx, env.outsider.ID, p.ID), ErrForbidden)
	require.NoError(t, env.projects.Delete(ctx, env.owner.ID, p.ID))

	_, err := env.projects.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMilestoneService_MemberGated(t *testing.T) {
	env, ctx := newSvcEnv(t)
	p := env.createProject(t, ctx, "Garden")

	milestones := NewMilestoneService(repository.NewSQLiteMilestoneRepo(env.db), env.perms)
	m := &domain.Milestone{ProjectID: p.ID, Name: "Spring", DueDate: time.Now().UTC().AddDate(0, 1, 0)}

	assert.ErrorIs(t, milestones.Create(ctx, env.outsider.ID, m), ErrForbidden)
	require.NoError(t, milestones.Create(ctx, env.owner.ID, m))

	m.Name = "Late spring"
	assert.ErrorIs(t, milestones.Update(ctx, env.outsider.ID, m), ErrForbidden)
	require.NoError(t, milestones.Update(ctx, env.owner.ID, m))

	assert.ErrorIs(t, milestones.Delete(ctx, "", m.ID), ErrUnauthorized)
	require.NoError(t, milestones.Delete(ctx, env.owner.ID, m.ID))
}

func TestTagService_AnyAuthenticatedUser(t *testing.T) {
	env, ctx := newSvcEnv(t)

	tags := NewTagService(repository.NewSQLiteTagRepo(env.db), env.perms)
	tag := &domain.Tag{Name: "urgent"}

	assert.ErrorIs(t, tags.Create(ctx, "", tag), ErrUnauthorized)
	require.NoError(t, tags.Create(ctx, env.outsider.ID, tag))

	tag.Name = "now"
	require.NoError(t, tags.Update(ctx, env.owner.ID, tag))
	require.NoError(t, tags.Delete(ctx, env.outsider.ID, tag.ID))
}
