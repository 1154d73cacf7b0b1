package api

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/repository"
	"github.com/alexanderramin/taskboard/internal/service"
)

type todoRequest struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Completed        bool     `json:"completed"`
	Project          string   `json:"project"`
	Category         *string  `json:"category"`
	Milestone        *string  `json:"milestone"`
	Tags             []string `json:"tags"`
	Priority         string   `json:"priority"`
	DueDate          *string  `json:"due_date"`
	EstimatedMinutes *int     `json:"estimated_minutes"`
	ActualMinutes    *int     `json:"actual_minutes"`
	ParentTask       *string  `json:"parent_task"`
}

func (req *todoRequest) toDomain() (*domain.Todo, error) {
	t := &domain.Todo{
		Title:            req.Title,
		Description:      req.Description,
		Completed:        req.Completed,
		ProjectID:        req.Project,
		CategoryID:       req.Category,
		MilestoneID:      req.Milestone,
		TagIDs:           req.Tags,
		Priority:         domain.Priority(req.Priority),
		EstimatedMinutes: req.EstimatedMinutes,
		ActualMinutes:    req.ActualMinutes,
		ParentID:         req.ParentTask,
	}
	if req.DueDate != nil {
		due, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			return nil, errors.New("due_date")
		}
		t.DueDate = &due
	}
	return t, nil
}

func todoFilterFromQuery(r *http.Request) (repository.TodoFilter, error) {
	q := r.URL.Query()
	f := repository.TodoFilter{
		UserID:      q.Get("user"),
		ProjectID:   q.Get("project"),
		CategoryID:  q.Get("category"),
		MilestoneID: q.Get("milestone"),
		TagID:       q.Get("tags"),
		Priority:    q.Get("priority"),
		Search:      q.Get("search"),
		Order:       q.Get("ordering"),
	}
	if v := q.Get("completed"); v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			return f, errors.New("completed")
		}
		f.Completed = &completed
	}
	return f, nil
}

func (s *Server) listTodos(w http.ResponseWriter, r *http.Request) {
	f, err := todoFilterFromQuery(r)
	if err != nil {
		badRequest(w, err.Error(), "Invalid value.")
		return
	}
	todos, err := s.todos.List(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]todoResponse, 0, len(todos))
	for _, t := range todos {
		resp, err := s.renderTodo(r.Context(), t)
		if err != nil {
			writeError(w, err)
			return
		}
		out = append(out, resp)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createTodo(w http.ResponseWriter, r *http.Request) {
	var req todoRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "detail", "Malformed JSON body.")
		return
	}
	t, err := req.toDomain()
	if err != nil {
		badRequest(w, err.Error(), "Datetime has wrong format. Use RFC 3339.")
		return
	}
	if err := s.todos.Create(r.Context(), actorFrom(r), t); err != nil {
		writeError(w, err)
		return
	}
	resp, err := s.renderTodo(r.Context(), t)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) getTodo(w http.ResponseWriter, r *http.Request) {
	t, err := s.todos.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	resp, err := s.renderTodo(r.Context(), t)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) updateTodo(w http.ResponseWriter, r *http.Request) {
	var req todoRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "detail", "Malformed JSON body.")
		return
	}
	t, err := req.toDomain()
	if err != nil {
		badRequest(w, err.Error(), "Datetime has wrong format. Use RFC 3339.")
		return
	}
	t.ID = r.PathValue("id")
	if err := s.todos.Update(r.Context(), actorFrom(r), t); err != nil {
		writeError(w, err)
		return
	}
	resp, err := s.renderTodo(r.Context(), t)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) deleteTodo(w http.ResponseWriter, r *http.Request) {
	if err := s.todos.Delete(r.Context(), actorFrom(r), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addComment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "detail", "Malformed JSON body.")
		return
	}
	c, err := s.todos.AddComment(r.Context(), actorFrom(r), r.PathValue("id"), req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, renderComment(c))
}

// maxUploadBytes caps attachment uploads at 16 MiB.
const maxUploadBytes = 16 << 20

func (s *Server) addAttachment(w http.ResponseWriter, r *http.Request) {
	fileName, filePath, err := s.saveUpload(r)
	if err != nil {
		writeError(w, err)
		return
	}
	a, err := s.todos.AddAttachment(r.Context(), actorFrom(r), r.PathValue("id"), fileName, filePath)
	if err != nil {
		_ = os.Remove(filePath)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, renderAttachment(a))
}

// saveUpload stores the multipart "file" part under the attachments directory
// with a collision-proof name and returns the original file name and the
// stored path.
func (s *Server) saveUpload(r *http.Request) (string, string, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return "", "", service.NewValidationError("file", "No file was submitted.")
	}
	src, header, err := r.FormFile("file")
	if err != nil {
		return "", "", service.NewValidationError("file", "No file was submitted.")
	}
	defer src.Close()

	if err := os.MkdirAll(s.attachmentsDir, 0o755); err != nil {
		return "", "", err
	}
	fileName := filepath.Base(header.Filename)
	storedPath := filepath.Join(s.attachmentsDir, uuid.NewString()+"_"+fileName)
	dst, err := os.Create(storedPath)
	if err != nil {
		return "", "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(storedPath)
		return "", "", err
	}
	return fileName, storedPath, nil
}
