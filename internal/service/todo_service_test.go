package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/repository"
	"github.com/alexanderramin/taskboard/internal/testutil"
)

func TestTodoService_CreateDefaultsAndStamps(t *testing.T) {
	env, ctx := newSvcEnv(t)
	p := env.createProject(t, ctx, "Garden")

	todo := &domain.Todo{Title: "Plant tomatoes", ProjectID: p.ID, UserID: "spoofed"}
	require.NoError(t, env.todos.Create(ctx, env.owner.ID, todo))

	fetched, err := env.todos.GetByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityMedium, fetched.Priority)
	assert.Equal(t, env.owner.ID, fetched.UserID)
}

func TestTodoService_CreateWritesActivityRow(t *testing.T) {
	env, ctx := newSvcEnv(t)
	p := env.createProject(t, ctx, "Garden")

	todo := &domain.Todo{Title: "Plant tomatoes", ProjectID: p.ID}
	require.NoError(t, env.todos.Create(ctx, env.owner.ID, todo))

	logs, err := repository.NewSQLiteActivityLogRepo(env.db).List(ctx, repository.ActivityLogFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.ActionCreated, logs[0].Action)
	assert.Equal(t, "Todo: Plant tomatoes", logs[0].Target)
	assert.Equal(t, env.owner.ID, logs[0].UserID)
}

func TestTodoService_DeleteAttributesActivityToCreator(t *testing.T) {
	env, ctx := newSvcEnv(t)
	p := env.createProject(t, ctx, "Garden")
	p.MemberIDs = append(p.MemberIDs, env.outsider.ID)
	require.NoError(t, env.projects.Update(ctx, env.owner.ID, p))

	todo := &domain.Todo{Title: "Plant tomatoes", ProjectID: p.ID}
	require.NoError(t, env.todos.Create(ctx, env.owner.ID, todo))

	// A fellow member deletes; the audit row still names the creator.
	require.NoError(t, env.todos.Delete(ctx, env.outsider.ID, todo.ID))

	logs, err := repository.NewSQLiteActivityLogRepo(env.db).List(ctx,
		repository.ActivityLogFilter{Action: domain.ActionDeleted})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, env.owner.ID, logs[0].UserID)
	assert.Equal(t, "Todo: Plant tomatoes", logs[0].Target)
}

func TestTodoService_CreateRollsBackWithActivity(t *testing.T) {
	env, ctx := newSvcEnv(t)
	p := env.createProject(t, ctx, "Garden")

	// Execs inside the tx: todo insert, tag clear, activity insert. Failing
	// the activity insert must roll the todo row back too.
	boom := errors.New("boom")
	failing := &testutil.FailOnNthExecUoW{DB: env.db, FailOn: 3, Err: boom}
	todoRepo := repository.NewSQLiteTodoRepo(env.db)
	svc := NewTodoService(todoRepo, failing, env.perms)

	todo := &domain.Todo{Title: "Plant tomatoes", ProjectID: p.ID}
	err := svc.Create(ctx, env.owner.ID, todo)
	assert.ErrorIs(t, err, boom)

	todos, listErr := todoRepo.List(ctx, repository.TodoFilter{ProjectID: p.ID})
	require.NoError(t, listErr)
	assert.Empty(t, todos)

	logs, logErr := repository.NewSQLiteActivityLogRepo(env.db).List(ctx, repository.ActivityLogFilter{})
	require.NoError(t, logErr)
	assert.Empty(t, logs)
}

func TestTodoService_MembershipRequired(t *testing.T) {
	env, ctx := newSvcEnv(t)
	p := env.createProject(t, ctx, "Garden")

	todo := &domain.Todo{Title: "Plant tomatoes", ProjectID: p.ID}
	assert.ErrorIs(t, env.todos.Create(ctx, env.outsider.ID, todo), ErrForbidden)
	assert.ErrorIs(t, env.todos.Create(ctx, "", todo), ErrUnauthorized)

	require.NoError(t, env.todos.Create(ctx, env.owner.ID, todo))
	assert.ErrorIs(t, env.todos.Delete(ctx, env.outsider.ID, todo.ID), ErrForbidden)

	todo.Title = "changed"
	assert.ErrorIs(t, env.todos.Update(ctx, env.outsider.ID, todo), ErrForbidden)
}

func TestTodoService_MoveRequiresDestinationMembership(t *testing.T) {
	env, ctx := newSvcEnv(t)
	src := env.createProject(t, ctx, "Garden")

	// Destination owned by the outsider; the actor is not a member there.
	dst := &domain.Project{Name: "Thesis"}
	require.NoError(t, env.projects.Create(ctx, env.outsider.ID, dst))

	todo := &domain.Todo{Title: "Plant tomatoes", ProjectID: src.ID}
	require.NoError(t, env.todos.Create(ctx, env.owner.ID, todo))

	todo.ProjectID = dst.ID
	assert.ErrorIs(t, env.todos.Update(ctx, env.owner.ID, todo), ErrForbidden)
}

func TestTodoService_InvalidPriorityRejected(t *testing.T) {
	env, ctx := newSvcEnv(t)
	p := env.createProject(t, ctx, "Garden")

	todo := &domain.Todo{Title: "Plant tomatoes", ProjectID: p.ID, Priority: "WHENEVER"}
	err := env.todos.Create(ctx, env.owner.ID, todo)
	_, ok := AsValidationError(err)
	assert.True(t, ok)
}

func TestTodoService_AddCommentMemberOnly(t *testing.T) {
	env, ctx := newSvcEnv(t)
	p := env.createProject(t, ctx, "Garden")

	todo := &domain.Todo{Title: "Plant tomatoes", ProjectID: p.ID}
	require.NoError(t, env.todos.Create(ctx, env.owner.ID, todo))

	_, err := env.todos.AddComment(ctx, env.outsider.ID, todo.ID, "drive-by")
	assert.ErrorIs(t, err, ErrForbidden)

	c, err := env.todos.AddComment(ctx, env.owner.ID, todo.ID, "use the raised bed")
	require.NoError(t, err)
	assert.Equal(t, env.owner.ID, c.UserID)
	assert.Equal(t, todo.ID, c.TodoID)

	_, err = env.todos.AddComment(ctx, env.owner.ID, todo.ID, "   ")
	_, ok := AsValidationError(err)
	assert.True(t, ok)
}

func TestTodoService_AddAttachmentMemberOnly(t *testing.T) {
	env, ctx := newSvcEnv(t)
	p := env.createProject(t, ctx, "Garden")

	todo := &domain.Todo{Title: "Plant tomatoes", ProjectID: p.ID}
	require.NoError(t, env.todos.Create(ctx, env.owner.ID, todo))

	_, err := env.todos.AddAttachment(ctx, env.outsider.ID, todo.ID, "x.png", "attachments/x.png")
	assert.ErrorIs(t, err, ErrForbidden)

	a, err := env.todos.AddAttachment(ctx, env.owner.ID, todo.ID, "layout.png", "attachments/layout.png")
	require.NoError(t, err)
	assert.Equal(t, env.owner.ID, a.UserID)
	assert.Equal(t, "layout.png", a.FileName)
}

func TestRecurringTaskService_OneRulePerTodo(t *testing.T) {
	env, ctx := newSvcEnv(t)
	p := env.createProject(t, ctx, "Garden")

	todo := &domain.Todo{Title: "Water plants", ProjectID: p.ID}
	require.NoError(t, env.todos.Create(ctx, env.owner.ID, todo))

	svc := NewRecurringTaskService(repository.NewSQLiteRecurringTaskRepo(env.db), env.perms)
	rt := testutil.NewTestRecurringTask(todo.ID, domain.FrequencyDaily)
	rt.ID = ""
	require.NoError(t, svc.Create(ctx, env.owner.ID, rt))

	dup := testutil.NewTestRecurringTask(todo.ID, domain.FrequencyWeekly)
	dup.ID = ""
	err := svc.Create(ctx, env.owner.ID, dup)
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "todo")
}

func TestActivityLogService_ReadsRequireAuth(t *testing.T) {
	env, ctx := newSvcEnv(t)
	p := env.createProject(t, ctx, "Garden")

	todo := &domain.Todo{Title: "Plant tomatoes", ProjectID: p.ID}
	require.NoError(t, env.todos.Create(ctx, env.owner.ID, todo))

	svc := NewActivityLogService(repository.NewSQLiteActivityLogRepo(env.db), env.perms)

	_, err := svc.List(ctx, "", repository.ActivityLogFilter{})
	assert.ErrorIs(t, err, ErrUnauthorized)

	logs, err := svc.List(ctx, env.outsider.ID, repository.ActivityLogFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 1)

	_, err = svc.GetByID(ctx, "", logs[0].ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	fetched, err := svc.GetByID(ctx, env.owner.ID, logs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionCreated, fetched.Action)
}
