package api

import (
	"net/http"
	"time"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/repository"
)

type milestoneRequest struct {
	Project string `json:"project"`
	Name    string `json:"name"`
	DueDate string `json:"due_date"`
}

func (req *milestoneRequest) toDomain(id string) (*domain.Milestone, error) {
	due, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return nil, err
	}
	return &domain.Milestone{
		ID:        id,
		ProjectID: req.Project,
		Name:      req.Name,
		DueDate:   due,
	}, nil
}

func (s *Server) listMilestones(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	milestones, err := s.milestones.List(r.Context(), repository.MilestoneFilter{
		ProjectID: q.Get("project"),
		Order:     q.Get("ordering"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]milestoneResponse, 0, len(milestones))
	for _, m := range milestones {
		resp, err := s.renderMilestone(r.Context(), m)
		if err != nil {
			writeError(w, err)
			return
		}
		out = append(out, resp)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createMilestone(w http.ResponseWriter, r *http.Request) {
	var req milestoneRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "detail", "Malformed JSON body.")
		return
	}
	m, err := req.toDomain("")
	if err != nil {
		badRequest(w, "due_date", "Date has wrong format. Use YYYY-MM-DD.")
		return
	}
	if err := s.milestones.Create(r.Context(), actorFrom(r), m); err != nil {
		writeError(w, err)
		return
	}
	resp, err := s.renderMilestone(r.Context(), m)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) getMilestone(w http.ResponseWriter, r *http.Request) {
	m, err := s.milestones.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	resp, err := s.renderMilestone(r.Context(), m)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) updateMilestone(w http.ResponseWriter, r *http.Request) {
	var req milestoneRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "detail", "Malformed JSON body.")
		return
	}
	m, err := req.toDomain(r.PathValue("id"))
	if err != nil {
		badRequest(w, "due_date", "Date has wrong format. Use YYYY-MM-DD.")
		return
	}
	if err := s.milestones.Update(r.Context(), actorFrom(r), m); err != nil {
		writeError(w, err)
		return
	}
	resp, err := s.renderMilestone(r.Context(), m)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) deleteMilestone(w http.ResponseWriter, r *http.Request) {
	if err := s.milestones.Delete(r.Context(), actorFrom(r), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
