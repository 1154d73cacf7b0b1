package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/repository"
)

type recurringTaskRequest struct {
	Todo      string  `json:"todo"`
	Frequency string  `json:"frequency"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

func (req *recurringTaskRequest) toDomain() (*domain.RecurringTask, error) {
	rt := &domain.RecurringTask{
		TodoID:    req.Todo,
		Frequency: domain.Frequency(req.Frequency),
	}
	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return nil, errors.New("start_date")
	}
	rt.StartDate = start
	if req.EndDate != nil {
		end, err := time.Parse(time.RFC3339, *req.EndDate)
		if err != nil {
			return nil, errors.New("end_date")
		}
		rt.EndDate = &end
	}
	return rt, nil
}

func (s *Server) listRecurringTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rts, err := s.recurring.List(r.Context(), repository.RecurringTaskFilter{
		TodoID:    q.Get("todo"),
		Frequency: q.Get("frequency"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]recurringTaskResponse, 0, len(rts))
	for _, rt := range rts {
		out = append(out, renderRecurringTask(rt))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createRecurringTask(w http.ResponseWriter, r *http.Request) {
	var req recurringTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "detail", "Malformed JSON body.")
		return
	}
	rt, err := req.toDomain()
	if err != nil {
		badRequest(w, err.Error(), "Datetime has wrong format. Use RFC 3339.")
		return
	}
	if err := s.recurring.Create(r.Context(), actorFrom(r), rt); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, renderRecurringTask(rt))
}

func (s *Server) getRecurringTask(w http.ResponseWriter, r *http.Request) {
	rt, err := s.recurring.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, renderRecurringTask(rt))
}

func (s *Server) updateRecurringTask(w http.ResponseWriter, r *http.Request) {
	var req recurringTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "detail", "Malformed JSON body.")
		return
	}
	rt, err := req.toDomain()
	if err != nil {
		badRequest(w, err.Error(), "Datetime has wrong format. Use RFC 3339.")
		return
	}
	rt.ID = r.PathValue("id")
	if err := s.recurring.Update(r.Context(), actorFrom(r), rt); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, renderRecurringTask(rt))
}

func (s *Server) deleteRecurringTask(w http.ResponseWriter, r *http.Request) {
	if err := s.recurring.Delete(r.Context(), actorFrom(r), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listActivityLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	logs, err := s.activity.List(r.Context(), actorFrom(r), repository.ActivityLogFilter{
		UserID: q.Get("user"),
		Action: q.Get("action"),
		Order:  q.Get("ordering"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]activityLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, renderActivityLog(l))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getActivityLog(w http.ResponseWriter, r *http.Request) {
	l, err := s.activity.GetByID(r.Context(), actorFrom(r), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, renderActivityLog(l))
}
