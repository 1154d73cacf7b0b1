package api

import (
	"net/http"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/repository"
)

type projectRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Members     []string `json:"members"`
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.ProjectFilter{
		OwnerID:  q.Get("owner"),
		MemberID: q.Get("members"),
		Search:   q.Get("search"),
		Order:    q.Get("ordering"),
	}
	projects, err := s.projects.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		resp, err := s.renderProject(r.Context(), p)
		if err != nil {
			writeError(w, err)
			return
		}
		out = append(out, resp)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "detail", "Malformed JSON body.")
		return
	}
	p := &domain.Project{
		Name:        req.Name,
		Description: req.Description,
		MemberIDs:   req.Members,
	}
	if err := s.projects.Create(r.Context(), actorFrom(r), p); err != nil {
		writeError(w, err)
		return
	}
	resp, err := s.renderProject(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.projects.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	resp, err := s.renderProject(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "detail", "Malformed JSON body.")
		return
	}
	p := &domain.Project{
		ID:          r.PathValue("id"),
		Name:        req.Name,
		Description: req.Description,
		MemberIDs:   req.Members,
	}
	if err := s.projects.Update(r.Context(), actorFrom(r), p); err != nil {
		writeError(w, err)
		return
	}
	resp, err := s.renderProject(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.projects.Delete(r.Context(), actorFrom(r), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
