package server

import (
	"net/http"

	"github.com/fwtracker/backend/internal/service"
)

func (s *Server) getTemplatesHandler(w http.ResponseWriter, r *http.Request) {
	templates, err := s.svc.Templates.GetTemplates(r.Context(), currentUser(r).ID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, templates)
}

func (s *Server) saveTemplateHandler(w http.ResponseWriter, r *http.Request) {
	listID, ok := uintParam(w, r, "listID")
	if !ok {
		return
	}
	var req service.TemplateRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	template, err := s.svc.Templates.SaveFromList(r.Context(), currentUser(r).ID, listID, req)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, template)
}

func (s *Server) createListFromTemplateHandler(w http.ResponseWriter, r *http.Request) {
	templateID, ok := uintParam(w, r, "templateID")
	if !ok {
		return
	}
	var req service.TemplateRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	list, err := s.svc.Templates.CreateList(r.Context(), currentUser(r).ID, templateID, req)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, list)
}

func (s *Server) deleteTemplateHandler(w http.ResponseWriter, r *http.Request) {
	templateID, ok := uintParam(w, r, "templateID")
	if !ok {
		return
	}
	if err := s.svc.Templates.DeleteTemplate(r.Context(), currentUser(r).ID, templateID); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "template deleted"})
}
