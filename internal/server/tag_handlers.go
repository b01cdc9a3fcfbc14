package server

import (
	"net/http"

	"github.com/fwtracker/backend/internal/service"
)

func (s *Server) getTagsHandler(w http.ResponseWriter, r *http.Request) {
	tags, err := s.svc.Tags.GetTags(r.Context(), currentUser(r).ID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, tags)
}

func (s *Server) createTagHandler(w http.ResponseWriter, r *http.Request) {
	var req service.TagRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	tag, err := s.svc.Tags.CreateTag(r.Context(), currentUser(r).ID, req)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, tag)
}

func (s *Server) deleteTagHandler(w http.ResponseWriter, r *http.Request) {
	tagID, ok := uintParam(w, r, "tagID")
	if !ok {
		return
	}
	if err := s.svc.Tags.DeleteTag(r.Context(), currentUser(r).ID, tagID); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "tag deleted"})
}

func (s *Server) assignTagHandler(w http.ResponseWriter, r *http.Request) {
	itemID, ok := uintParam(w, r, "itemID")
	if !ok {
		return
	}
	tagID, ok := uintParam(w, r, "tagID")
	if !ok {
		return
	}
	if err := s.svc.Tags.AssignTag(r.Context(), currentUser(r).ID, itemID, tagID); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "tag assigned"})
}

func (s *Server) removeTagHandler(w http.ResponseWriter, r *http.Request) {
	itemID, ok := uintParam(w, r, "itemID")
	if !ok {
		return
	}
	tagID, ok := uintParam(w, r, "tagID")
	if !ok {
		return
	}
	if err := s.svc.Tags.RemoveTag(r.Context(), currentUser(r).ID, itemID, tagID); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "tag removed"})
}
