package api

import (
	"log/slog"
	"net/http"

	"github.com/alexanderramin/taskboard/internal/service"
)

// Server binds the REST surface to the entity services.
type Server struct {
	mux            *http.ServeMux
	logger         *slog.Logger
	attachmentsDir string

	auth        service.AuthService
	projects    service.ProjectService
	milestones  service.MilestoneService
	categories  service.CategoryService
	tags        service.TagService
	todos       service.TodoService
	comments    service.CommentService
	attachments service.AttachmentService
	recurring   service.RecurringTaskService
	activity    service.ActivityLogService
}

// Services bundles the dependencies of the HTTP layer.
type Services struct {
	Auth        service.AuthService
	Projects    service.ProjectService
	Milestones  service.MilestoneService
	Categories  service.CategoryService
	Tags        service.TagService
	Todos       service.TodoService
	Comments    service.CommentService
	Attachments service.AttachmentService
	Recurring   service.RecurringTaskService
	Activity    service.ActivityLogService
}

// NewServer creates the HTTP handler for the API.
func NewServer(logger *slog.Logger, attachmentsDir string, svcs Services) *Server {
	s := &Server{
		mux:            http.NewServeMux(),
		logger:         logger,
		attachmentsDir: attachmentsDir,
		auth:           svcs.Auth,
		projects:       svcs.Projects,
		milestones:     svcs.Milestones,
		categories:     svcs.Categories,
		tags:           svcs.Tags,
		todos:          svcs.Todos,
		comments:       svcs.Comments,
		attachments:    svcs.Attachments,
		recurring:      svcs.Recurring,
		activity:       svcs.Activity,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/v1/{$}", s.apiRoot)

	s.mux.HandleFunc("POST /api/v1/auth/register", s.register)
	s.mux.HandleFunc("POST /api/v1/auth/login", s.login)
	s.mux.HandleFunc("POST /api/v1/auth/logout", s.logout)
	s.mux.HandleFunc("POST /api/v1/auth/password-reset", s.passwordReset)
	s.mux.HandleFunc("POST /api/v1/auth/password-reset-confirm", s.passwordResetConfirm)

	s.mux.HandleFunc("GET /api/v1/projects", s.listProjects)
	s.mux.HandleFunc("POST /api/v1/projects", s.createProject)
	s.mux.HandleFunc("GET /api/v1/projects/{id}", s.getProject)
	s.mux.HandleFunc("PUT /api/v1/projects/{id}", s.updateProject)
	s.mux.HandleFunc("DELETE /api/v1/projects/{id}", s.deleteProject)

	s.mux.HandleFunc("GET /api/v1/milestones", s.listMilestones)
	s.mux.HandleFunc("POST /api/v1/milestones", s.createMilestone)
	s.mux.HandleFunc("GET /api/v1/milestones/{id}", s.getMilestone)
	s.mux.HandleFunc("PUT /api/v1/milestones/{id}", s.updateMilestone)
	s.mux.HandleFunc("DELETE /api/v1/milestones/{id}", s.deleteMilestone)

	s.mux.HandleFunc("GET /api/v1/categories", s.listCategories)
	s.mux.HandleFunc("POST /api/v1/categories", s.createCategory)
	s.mux.HandleFunc("GET /api/v1/categories/{id}", s.getCategory)
	s.mux.HandleFunc("PUT /api/v1/categories/{id}", s.updateCategory)
	s.mux.HandleFunc("DELETE /api/v1/categories/{id}", s.deleteCategory)

	s.mux.HandleFunc("GET /api/v1/tags", s.listTags)
	s.mux.HandleFunc("POST /api/v1/tags", s.createTag)
	s.mux.HandleFunc("GET /api/v1/tags/{id}", s.getTag)
	s.mux.HandleFunc("PUT /api/v1/tags/{id}", s.updateTag)
	s.mux.HandleFunc("DELETE /api/v1/tags/{id}", s.deleteTag)

	s.mux.HandleFunc("GET /api/v1/todos", s.listTodos)
	s.mux.HandleFunc("POST /api/v1/todos", s.createTodo)
	s.mux.HandleFunc("GET /api/v1/todos/{id}", s.getTodo)
	s.mux.HandleFunc("PUT /api/v1/todos/{id}", s.updateTodo)
	s.mux.HandleFunc("DELETE /api/v1/todos/{id}", s.deleteTodo)
	s.mux.HandleFunc("POST /api/v1/todos/{id}/add_comment", s.addComment)
	s.mux.HandleFunc("POST /api/v1/todos/{id}/add_attachment", s.addAttachment)

	s.mux.HandleFunc("GET /api/v1/comments", s.listComments)
	s.mux.HandleFunc("POST /api/v1/comments", s.createComment)
	s.mux.HandleFunc("GET /api/v1/comments/{id}", s.getComment)
	s.mux.HandleFunc("DELETE /api/v1/comments/{id}", s.deleteComment)

	s.mux.HandleFunc("GET /api/v1/attachments", s.listAttachments)
	s.mux.HandleFunc("POST /api/v1/attachments", s.createAttachment)
	s.mux.HandleFunc("GET /api/v1/attachments/{id}", s.getAttachment)
	s.mux.HandleFunc("DELETE /api/v1/attachments/{id}", s.deleteAttachment)

	s.mux.HandleFunc("GET /api/v1/recurring-tasks", s.listRecurringTasks)
	s.mux.HandleFunc("POST /api/v1/recurring-tasks", s.createRecurringTask)
	s.mux.HandleFunc("GET /api/v1/recurring-tasks/{id}", s.getRecurringTask)
	s.mux.HandleFunc("PUT /api/v1/recurring-tasks/{id}", s.updateRecurringTask)
	s.mux.HandleFunc("DELETE /api/v1/recurring-tasks/{id}", s.deleteRecurringTask)

	// The audit trail is read-only; the mux answers 405 for other verbs.
	s.mux.HandleFunc("GET /api/v1/activity-logs", s.listActivityLogs)
	s.mux.HandleFunc("GET /api/v1/activity-logs/{id}", s.getActivityLog)
}

// Handler wraps the mux with the auth and logging middleware.
func (s *Server) Handler() http.Handler {
	return withLogging(s.logger, withAuth(s.auth, s.mux))
}

func (s *Server) apiRoot(w http.ResponseWriter, r *http.Request) {
	base := "/api/v1/"
	writeJSON(w, http.StatusOK, map[string]string{
		"projects":        base + "projects",
		"milestones":      base + "milestones",
		"categories":      base + "categories",
		"tags":            base + "tags",
		"todos":           base + "todos",
		"comments":        base + "comments",
		"attachments":     base + "attachments",
		"recurring-tasks": base + "recurring-tasks",
		"activity-logs":   base + "activity-logs",
	})
}
