package server

import (
	"net/http"

	"github.com/fwtracker/backend/internal/domain"
	"github.com/fwtracker/backend/internal/service"
)

type userResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username}
}

func (s *Server) registerHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CredentialsRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	session, err := s.svc.Auth.Register(r.Context(), req)
	if err != nil {
		s.log.Warn("registration failed", "remote", clientIP(r), "err", err)
		s.respondServiceError(w, r, err)
		return
	}
	s.log.Info("user registered", "username", session.User.Username, "remote", clientIP(r))
	setSessionCookie(w, session.Token, session.ExpiresAt)
	respondWithJSON(w, http.StatusCreated, toUserResponse(session.User))
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CredentialsRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	session, err := s.svc.Auth.Login(r.Context(), req)
	if err != nil {
		s.log.Warn("login failed", "username", req.Username, "remote", clientIP(r))
		s.respondServiceError(w, r, err)
		return
	}
	s.log.Info("login", "username", session.User.Username, "remote", clientIP(r))
	setSessionCookie(w, session.Token, session.ExpiresAt)
	respondWithJSON(w, http.StatusOK, toUserResponse(session.User))
}

func (s *Server) logoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Auth.Logout(r.Context(), sessionToken(r)); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.log.Info("logout", "remote", clientIP(r))
	clearSessionCookie(w)
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (s *Server) meHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, toUserResponse(currentUser(r)))
}
