package api

import (
	"net/http"
)

type credentialsResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "detail", "Malformed JSON body.")
		return
	}
	creds, err := s.auth.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, credentialsResponse{
		Token:  creds.Token,
		UserID: creds.UserID,
		Email:  creds.Email,
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "detail", "Malformed JSON body.")
		return
	}
	creds, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, credentialsResponse{
		Token:  creds.Token,
		UserID: creds.UserID,
		Email:  creds.Email,
	})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.Logout(r.Context(), actorFrom(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) passwordReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "detail", "Malformed JSON body.")
		return
	}
	if err := s.auth.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeError(w, err)
		return
	}
	writeDetail(w, http.StatusOK, "Password reset email has been sent.")
}

func (s *Server) passwordResetConfirm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UID         string `json:"uid"`
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "detail", "Malformed JSON body.")
		return
	}
	if err := s.auth.ConfirmPasswordReset(r.Context(), req.UID, req.Token, req.NewPassword); err != nil {
		writeError(w, err)
		return
	}
	writeDetail(w, http.StatusOK, "Password has been reset with the new password.")
}
