package api

import (
	"net/http"
	"os"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/repository"
)

type commentRequest struct {
	Todo    string `json:"todo"`
	Content string `json:"content"`
}

func (s *Server) listComments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	comments, err := s.comments.List(r.Context(), repository.CommentFilter{
		TodoID: q.Get("todo"),
		UserID: q.Get("user"),
		Order:  q.Get("ordering"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, renderComment(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "detail", "Malformed JSON body.")
		return
	}
	c := &domain.Comment{TodoID: req.Todo, Content: req.Content}
	if err := s.comments.Create(r.Context(), actorFrom(r), c); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, renderComment(c))
}

func (s *Server) getComment(w http.ResponseWriter, r *http.Request) {
	c, err := s.comments.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, renderComment(c))
}

func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) {
	if err := s.comments.Delete(r.Context(), actorFrom(r), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listAttachments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	attachments, err := s.attachments.List(r.Context(), repository.AttachmentFilter{
		TodoID: q.Get("todo"),
		UserID: q.Get("uploaded_by"),
		Order:  q.Get("ordering"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]attachmentResponse, 0, len(attachments))
	for _, a := range attachments {
		out = append(out, renderAttachment(a))
	}
	writeJSON(w, http.StatusOK, out)
}

// createAttachment is the flat collection variant of the todo add_attachment
// sub-action; the target todo arrives as a form field next to the file.
func (s *Server) createAttachment(w http.ResponseWriter, r *http.Request) {
	fileName, filePath, err := s.saveUpload(r)
	if err != nil {
		writeError(w, err)
		return
	}
	todoID := r.FormValue("todo")
	a := &domain.Attachment{TodoID: todoID, FileName: fileName, FilePath: filePath}
	if err := s.attachments.Create(r.Context(), actorFrom(r), a); err != nil {
		_ = os.Remove(filePath)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, renderAttachment(a))
}

func (s *Server) getAttachment(w http.ResponseWriter, r *http.Request) {
	a, err := s.attachments.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, renderAttachment(a))
}

func (s *Server) deleteAttachment(w http.ResponseWriter, r *http.Request) {
	if err := s.attachments.Delete(r.Context(), actorFrom(r), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
