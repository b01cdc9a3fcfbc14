package server

import (
	"net/http"

	"github.com/fwtracker/backend/internal/service"
)

func (s *Server) getSharesHandler(w http.ResponseWriter, r *http.Request) {
	listID, ok := uintParam(w, r, "listID")
	if !ok {
		return
	}
	shares, err := s.svc.Shares.GetShares(r.Context(), currentUser(r).ID, listID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, shares)
}

func (s *Server) shareListHandler(w http.ResponseWriter, r *http.Request) {
	listID, ok := uintParam(w, r, "listID")
	if !ok {
		return
	}
	var req service.ShareRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	share, err := s.svc.Shares.ShareList(r.Context(), currentUser(r).ID, listID, req)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, share)
}

func (s *Server) unshareHandler(w http.ResponseWriter, r *http.Request) {
	listID, ok := uintParam(w, r, "listID")
	if !ok {
		return
	}
	shareID, ok := uintParam(w, r, "shareID")
	if !ok {
		return
	}
	if err := s.svc.Shares.Unshare(r.Context(), currentUser(r).ID, listID, shareID); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "share removed"})
}
