package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) frameworkCatalogHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, s.svc.Frameworks.Catalog())
}

func (s *Server) getListFrameworksHandler(w http.ResponseWriter, r *http.Request) {
	listID, ok := uintParam(w, r, "listID")
	if !ok {
		return
	}
	keys, err := s.svc.Frameworks.GetListFrameworks(r.Context(), currentUser(r).ID, listID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, keys)
}

func (s *Server) attachFrameworkHandler(w http.ResponseWriter, r *http.Request) {
	listID, ok := uintParam(w, r, "listID")
	if !ok {
		return
	}
	var req struct {
		Key string `json:"key"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := s.svc.Frameworks.AttachFramework(r.Context(), currentUser(r).ID, listID, req.Key); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]string{"message": "framework attached"})
}

func (s *Server) detachFrameworkHandler(w http.ResponseWriter, r *http.Request) {
	listID, ok := uintParam(w, r, "listID")
	if !ok {
		return
	}
	key := chi.URLParam(r, "key")
	if err := s.svc.Frameworks.DetachFramework(r.Context(), currentUser(r).ID, listID, key); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "framework detached"})
}

func (s *Server) getFrameworkDataHandler(w http.ResponseWriter, r *http.Request) {
	listID, ok := uintParam(w, r, "listID")
	if !ok {
		return
	}
	key := chi.URLParam(r, "key")
	data, err := s.svc.Frameworks.GetListData(r.Context(), currentUser(r).ID, listID, key)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, data)
}

func (s *Server) setItemFrameworkDataHandler(w http.ResponseWriter, r *http.Request) {
	itemID, ok := uintParam(w, r, "itemID")
	if !ok {
		return
	}
	key := chi.URLParam(r, "key")
	var payload map[string]any
	if !s.decodeJSON(w, r, &payload) {
		return
	}
	merged, err := s.svc.Frameworks.SetItemData(r.Context(), currentUser(r).ID, itemID, key, payload)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, merged)
}

func (s *Server) batchFrameworkDataHandler(w http.ResponseWriter, r *http.Request) {
	listID, ok := uintParam(w, r, "listID")
	if !ok {
		return
	}
	key := chi.URLParam(r, "key")
	var req struct {
		Items map[string]map[string]any `json:"items"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := s.svc.Frameworks.BatchSetData(r.Context(), currentUser(r).ID, listID, key, req.Items); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "framework data updated"})
}
