package server

import (
	"net/http"

	"github.com/fwtracker/backend/internal/service"
)

func (s *Server) getListsHandler(w http.ResponseWriter, r *http.Request) {
	lists, err := s.svc.Lists.GetLists(r.Context(), currentUser(r).ID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, lists)
}

func (s *Server) createListHandler(w http.ResponseWriter, r *http.Request) {
	var req service.ListRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	list, err := s.svc.Lists.CreateList(r.Context(), currentUser(r).ID, req)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, list)
}

func (s *Server) updateListHandler(w http.ResponseWriter, r *http.Request) {
	listID, ok := uintParam(w, r, "listID")
	if !ok {
		return
	}
	var req service.ListRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	list, err := s.svc.Lists.UpdateList(r.Context(), currentUser(r).ID, listID, req)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, list)
}

func (s *Server) deleteListHandler(w http.ResponseWriter, r *http.Request) {
	listID, ok := uintParam(w, r, "listID")
	if !ok {
		return
	}
	if err := s.svc.Lists.DeleteList(r.Context(), currentUser(r).ID, listID); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "list deleted"})
}

func (s *Server) sharedListsHandler(w http.ResponseWriter, r *http.Request) {
	lists, err := s.svc.Shares.SharedWithMe(r.Context(), currentUser(r).ID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, lists)
}
