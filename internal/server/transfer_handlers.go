package server

import (
	"fmt"
	"net/http"

	"github.com/fwtracker/backend/internal/service"
)

func (s *Server) exportListHandler(w http.ResponseWriter, r *http.Request) {
	listID, ok := uintParam(w, r, "listID")
	if !ok {
		return
	}
	format := r.URL.Query().Get("format")
	result, err := s.svc.Transfers.Export(r.Context(), currentUser(r).ID, listID, format)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Data)
}

func (s *Server) importListHandler(w http.ResponseWriter, r *http.Request) {
	var req service.ImportRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	list, err := s.svc.Transfers.Import(r.Context(), currentUser(r).ID, req)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, list)
}

func (s *Server) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	dashboard, err := s.svc.Dashboard.GetDashboard(r.Context(), currentUser(r).ID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, dashboard)
}
