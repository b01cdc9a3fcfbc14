package server

import (
	"net/http"

	"github.com/fwtracker/backend/internal/service"
)

func (s *Server) getCommentsHandler(w http.ResponseWriter, r *http.Request) {
	itemID, ok := uintParam(w, r, "itemID")
	if !ok {
		return
	}
	comments, err := s.svc.Comments.GetComments(r.Context(), currentUser(r).ID, itemID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, comments)
}

func (s *Server) createCommentHandler(w http.ResponseWriter, r *http.Request) {
	itemID, ok := uintParam(w, r, "itemID")
	if !ok {
		return
	}
	var req service.CommentRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	comment, err := s.svc.Comments.CreateComment(r.Context(), currentUser(r).ID, itemID, req)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, comment)
}

func (s *Server) deleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	commentID, ok := uintParam(w, r, "commentID")
	if !ok {
		return
	}
	if err := s.svc.Comments.DeleteComment(r.Context(), currentUser(r).ID, commentID); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}
