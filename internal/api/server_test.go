package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/taskboard/internal/repository"
	"github.com/alexanderramin/taskboard/internal/service"
	"github.com/alexanderramin/taskboard/internal/testutil"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db := testutil.NewTestDB(t)

	userRepo := repository.NewSQLiteUserRepo(db)
	tokenRepo := repository.NewSQLiteTokenRepo(db)
	resetRepo := repository.NewSQLitePasswordResetRepo(db)
	projectRepo := repository.NewSQLiteProjectRepo(db)
	todoRepo := repository.NewSQLiteTodoRepo(db)

	perms := service.NewPermissions(projectRepo, todoRepo)
	uow := testutil.NewTestUoW(db)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	server := NewServer(logger, t.TempDir(), Services{
		Auth:        service.NewAuthService(userRepo, tokenRepo, resetRepo, service.NoopMailer{}, "http://testserver", 0),
		Projects:    service.NewProjectService(projectRepo, perms),
		Milestones:  service.NewMilestoneService(repository.NewSQLiteMilestoneRepo(db), perms),
		Categories:  service.NewCategoryService(repository.NewSQLiteCategoryRepo(db), perms),
		Tags:        service.NewTagService(repository.NewSQLiteTagRepo(db), perms),
		Todos:       service.NewTodoService(todoRepo, uow, perms),
		Comments:    service.NewCommentService(repository.NewSQLiteCommentRepo(db), perms),
		Attachments: service.NewAttachmentService(repository.NewSQLiteAttachmentRepo(db), perms),
		Recurring:   service.NewRecurringTaskService(repository.NewSQLiteRecurringTaskRepo(db), perms),
		Activity:    service.NewActivityLogService(repository.NewSQLiteActivityLogRepo(db), perms),
	})

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts
}

// doJSON issues a request with an optional bearer token and decodes the JSON
// response body into out (which may be nil).
func doJSON(t *testing.T, ts *httptest.Server, method, path, token string, body, out any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func registerUser(t *testing.T, ts *httptest.Server, username string) (token, userID string) {
	t.Helper()
	var creds map[string]string
	resp := doJSON(t, ts, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "sekrit1",
	}, &creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return creds["token"], creds["user_id"]
}

func createProject(t *testing.T, ts *httptest.Server, token, name string) map[string]any {
	t.Helper()
	var project map[string]any
	resp := doJSON(t, ts, http.MethodPost, "/api/v1/projects", token, map[string]any{
		"name": name,
	}, &project)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return project
}

func TestAPI_RegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	var creds map[string]string
	resp := doJSON(t, ts, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "sekrit1",
	}, &creds)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, creds["token"])
	assert.NotEmpty(t, creds["user_id"])
	assert.Equal(t, "alice@example.com", creds["email"])

	var again map[string]string
	resp = doJSON(t, ts, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "alice", "password": "sekrit1",
	}, &again)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, creds["token"], again["token"])
}

func TestAPI_LoginBadPassword(t *testing.T) {
	ts := newTestServer(t)
	registerUser(t, ts, "alice")

	var body map[string][]string
	resp := doJSON(t, ts, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "alice", "password": "wrong",
	}, &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []string{"Unable to log in with provided credentials."}, body["non_field_errors"])
}

func TestAPI_RegisterDuplicateUsername(t *testing.T) {
	ts := newTestServer(t)
	registerUser(t, ts, "alice")

	var body map[string][]string
	resp := doJSON(t, ts, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "alice", "email": "other@example.com", "password": "sekrit1",
	}, &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "username")
}

func TestAPI_LogoutInvalidatesToken(t *testing.T) {
	ts := newTestServer(t)
	token, _ := registerUser(t, ts, "alice")

	resp := doJSON(t, ts, http.MethodPost, "/api/v1/auth/logout", token, nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	var body map[string]string
	resp = doJSON(t, ts, http.MethodGet, "/api/v1/projects", token, nil, &body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid token.", body["detail"])
}

func TestAPI_AnonymousWriteRejected(t *testing.T) {
	ts := newTestServer(t)

	var body map[string]string
	resp := doJSON(t, ts, http.MethodPost, "/api/v1/projects", "", map[string]any{
		"name": "Garden",
	}, &body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Authentication credentials were not provided.", body["detail"])
}

func TestAPI_ProjectOwnerOnlyWrites(t *testing.T) {
	ts := newTestServer(t)
	ownerToken, ownerID := registerUser(t, ts, "owner")
	otherToken, _ := registerUser(t, ts, "other")

	project := createProject(t, ts, ownerToken, "Garden")
	assert.Equal(t, ownerID, project["owner"])
	projectID := project["id"].(string)

	// Reads are open, even anonymously.
	resp := doJSON(t, ts, http.MethodGet, "/api/v1/projects/"+projectID, "", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// A non-owner cannot update or delete.
	resp = doJSON(t, ts, http.MethodPut, "/api/v1/projects/"+projectID, otherToken, map[string]any{
		"name": "Hijacked",
	}, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, ts, http.MethodDelete, "/api/v1/projects/"+projectID, otherToken, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, ts, http.MethodDelete, "/api/v1/projects/"+projectID, ownerToken, nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, ts, http.MethodGet, "/api/v1/projects/"+projectID, "", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_TodoDefaultsAndExpansion(t *testing.T) {
	ts := newTestServer(t)
	token, userID := registerUser(t, ts, "alice")
	project := createProject(t, ts, token, "Garden")

	var todo map[string]any
	resp := doJSON(t, ts, http.MethodPost, "/api/v1/todos", token, map[string]any{
		"title":   "Plant tomatoes",
		"project": project["id"],
	}, &todo)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "MEDIUM", todo["priority"])
	assert.Equal(t, userID, todo["user"])
	assert.Equal(t, false, todo["completed"])
	assert.Equal(t, []any{}, todo["tags"])
	assert.Equal(t, []any{}, todo["comments"])
	assert.Nil(t, todo["recurring_task"])
}

func TestAPI_AddCommentByNonMemberForbidden(t *testing.T) {
	ts := newTestServer(t)
	ownerToken, _ := registerUser(t, ts, "owner")
	otherToken, otherID := registerUser(t, ts, "other")
	project := createProject(t, ts, ownerToken, "Garden")

	var todo map[string]any
	resp := doJSON(t, ts, http.MethodPost, "/api/v1/todos", ownerToken, map[string]any{
		"title": "Plant tomatoes", "project": project["id"],
	}, &todo)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	todoPath := fmt.Sprintf("/api/v1/todos/%s/add_comment", todo["id"])

	resp = doJSON(t, ts, http.MethodPost, todoPath, otherToken, map[string]any{
		"content": "drive-by",
	}, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// After being added as a member, the comment is accepted.
	resp = doJSON(t, ts, http.MethodPut, "/api/v1/projects/"+project["id"].(string), ownerToken, map[string]any{
		"name":    "Garden",
		"members": []string{otherID},
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var comment map[string]any
	resp = doJSON(t, ts, http.MethodPost, todoPath, otherToken, map[string]any{
		"content": "welcome aboard",
	}, &comment)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, otherID, comment["user"])
}

func TestAPI_AddAttachmentMultipart(t *testing.T) {
	ts := newTestServer(t)
	token, userID := registerUser(t, ts, "alice")
	project := createProject(t, ts, token, "Garden")

	var todo map[string]any
	resp := doJSON(t, ts, http.MethodPost, "/api/v1/todos", token, map[string]any{
		"title": "Plant tomatoes", "project": project["id"],
	}, &todo)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "layout.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	url := fmt.Sprintf("%s/api/v1/todos/%s/add_attachment", ts.URL, todo["id"])
	req, err := http.NewRequest(http.MethodPost, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Token "+token)

	httpResp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer httpResp.Body.Close()
	require.Equal(t, http.StatusCreated, httpResp.StatusCode)

	var attachment map[string]any
	require.NoError(t, json.NewDecoder(httpResp.Body).Decode(&attachment))
	assert.Equal(t, userID, attachment["uploaded_by"])
	assert.Contains(t, attachment["file"], "layout.png")
}

func TestAPI_TodoFiltersAndOrdering(t *testing.T) {
	ts := newTestServer(t)
	token, _ := registerUser(t, ts, "alice")
	project := createProject(t, ts, token, "Garden")

	for _, body := range []map[string]any{
		{"title": "Buy seeds", "project": project["id"], "priority": "URGENT"},
		{"title": "Water plants", "project": project["id"], "completed": true},
		{"title": "Fix fence", "project": project["id"]},
	} {
		resp := doJSON(t, ts, http.MethodPost, "/api/v1/todos", token, body, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	var byPriority []map[string]any
	resp := doJSON(t, ts, http.MethodGet, "/api/v1/todos?priority=URGENT", "", nil, &byPriority)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, byPriority, 1)
	assert.Equal(t, "Buy seeds", byPriority[0]["title"])

	var completed []map[string]any
	resp = doJSON(t, ts, http.MethodGet, "/api/v1/todos?completed=true", "", nil, &completed)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, completed, 1)
	assert.Equal(t, "Water plants", completed[0]["title"])

	var searched []map[string]any
	resp = doJSON(t, ts, http.MethodGet, "/api/v1/todos?search=fence", "", nil, &searched)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, searched, 1)
	assert.Equal(t, "Fix fence", searched[0]["title"])
}

func TestAPI_ActivityLogsRequireAuth(t *testing.T) {
	ts := newTestServer(t)
	token, userID := registerUser(t, ts, "alice")
	project := createProject(t, ts, token, "Garden")

	resp := doJSON(t, ts, http.MethodPost, "/api/v1/todos", token, map[string]any{
		"title": "Plant tomatoes", "project": project["id"],
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, ts, http.MethodGet, "/api/v1/activity-logs", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var logs []map[string]any
	resp = doJSON(t, ts, http.MethodGet, "/api/v1/activity-logs", token, nil, &logs)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, logs, 1)
	assert.Equal(t, "created", logs[0]["action"])
	assert.Equal(t, "Todo: Plant tomatoes", logs[0]["target"])
	assert.Equal(t, userID, logs[0]["user"])
}

func TestAPI_ActivityLogsWriteMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)
	token, _ := registerUser(t, ts, "alice")

	resp := doJSON(t, ts, http.MethodPost, "/api/v1/activity-logs", token, map[string]any{
		"action": "created",
	}, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestAPI_RecurringTaskLifecycle(t *testing.T) {
	ts := newTestServer(t)
	token, _ := registerUser(t, ts, "alice")
	project := createProject(t, ts, token, "Garden")

	var todo map[string]any
	resp := doJSON(t, ts, http.MethodPost, "/api/v1/todos", token, map[string]any{
		"title": "Water plants", "project": project["id"],
	}, &todo)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var rt map[string]any
	resp = doJSON(t, ts, http.MethodPost, "/api/v1/recurring-tasks", token, map[string]any{
		"todo": todo["id"], "frequency": "DAILY", "start_date": "2026-09-01T00:00:00Z",
	}, &rt)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "DAILY", rt["frequency"])

	// A second rule for the same todo is rejected.
	var dup map[string][]string
	resp = doJSON(t, ts, http.MethodPost, "/api/v1/recurring-tasks", token, map[string]any{
		"todo": todo["id"], "frequency": "WEEKLY", "start_date": "2026-09-01T00:00:00Z",
	}, &dup)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, dup, "todo")

	// The todo detail view embeds the rule.
	var detail map[string]any
	resp = doJSON(t, ts, http.MethodGet, fmt.Sprintf("/api/v1/todos/%s", todo["id"]), "", nil, &detail)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, detail["recurring_task"])
}

func TestAPI_RootListsCollections(t *testing.T) {
	ts := newTestServer(t)

	var root map[string]string
	resp := doJSON(t, ts, http.MethodGet, "/api/v1/", "", nil, &root)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/api/v1/todos", root["todos"])
	assert.Equal(t, "/api/v1/projects", root["projects"])
}
