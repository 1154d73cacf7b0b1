package api

import (
	"net/http"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/repository"
)

type categoryRequest struct {
	Name    string `json:"name"`
	Project string `json:"project"`
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	categories, err := s.categories.List(r.Context(), repository.CategoryFilter{
		ProjectID: q.Get("project"),
		Search:    q.Get("search"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		resp, err := s.renderCategory(r.Context(), c)
		if err != nil {
			writeError(w, err)
			return
		}
		out = append(out, resp)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "detail", "Malformed JSON body.")
		return
	}
	c := &domain.Category{Name: req.Name, ProjectID: req.Project}
	if err := s.categories.Create(r.Context(), actorFrom(r), c); err != nil {
		writeError(w, err)
		return
	}
	resp, err := s.renderCategory(r.Context(), c)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) getCategory(w http.ResponseWriter, r *http.Request) {
	c, err := s.categories.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	resp, err := s.renderCategory(r.Context(), c)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "detail", "Malformed JSON body.")
		return
	}
	c := &domain.Category{ID: r.PathValue("id"), Name: req.Name, ProjectID: req.Project}
	if err := s.categories.Update(r.Context(), actorFrom(r), c); err != nil {
		writeError(w, err)
		return
	}
	resp, err := s.renderCategory(r.Context(), c)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.categories.Delete(r.Context(), actorFrom(r), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type tagRequest struct {
	Name string `json:"name"`
}

func (s *Server) listTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.tags.List(r.Context(), repository.TagFilter{Search: r.URL.Query().Get("search")})
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]tagResponse, 0, len(tags))
	for _, t := range tags {
		resp, err := s.renderTag(r.Context(), t)
		if err != nil {
			writeError(w, err)
			return
		}
		out = append(out, resp)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createTag(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "detail", "Malformed JSON body.")
		return
	}
	t := &domain.Tag{Name: req.Name}
	if err := s.tags.Create(r.Context(), actorFrom(r), t); err != nil {
		writeError(w, err)
		return
	}
	resp, err := s.renderTag(r.Context(), t)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) getTag(w http.ResponseWriter, r *http.Request) {
	t, err := s.tags.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	resp, err := s.renderTag(r.Context(), t)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) updateTag(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "detail", "Malformed JSON body.")
		return
	}
	t := &domain.Tag{ID: r.PathValue("id"), Name: req.Name}
	if err := s.tags.Update(r.Context(), actorFrom(r), t); err != nil {
		writeError(w, err)
		return
	}
	resp, err := s.renderTag(r.Context(), t)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) deleteTag(w http.ResponseWriter, r *http.Request) {
	if err := s.tags.Delete(r.Context(), actorFrom(r), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
