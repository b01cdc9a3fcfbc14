package server

import (
	"net/http"

	"github.com/fwtracker/backend/internal/service"
)

func (s *Server) getItemsHandler(w http.ResponseWriter, r *http.Request) {
	listID, ok := uintParam(w, r, "listID")
	if !ok {
		return
	}
	items, err := s.svc.Items.GetItems(r.Context(), currentUser(r).ID, listID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, items)
}

func (s *Server) createItemHandler(w http.ResponseWriter, r *http.Request) {
	listID, ok := uintParam(w, r, "listID")
	if !ok {
		return
	}
	var req service.ItemRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	item, err := s.svc.Items.CreateItem(r.Context(), currentUser(r).ID, listID, req)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, item)
}

func (s *Server) updateItemHandler(w http.ResponseWriter, r *http.Request) {
	listID, ok := uintParam(w, r, "listID")
	if !ok {
		return
	}
	itemID, ok := uintParam(w, r, "itemID")
	if !ok {
		return
	}
	var req service.ItemRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	item, err := s.svc.Items.UpdateItem(r.Context(), currentUser(r).ID, listID, itemID, req)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, item)
}

func (s *Server) deleteItemHandler(w http.ResponseWriter, r *http.Request) {
	listID, ok := uintParam(w, r, "listID")
	if !ok {
		return
	}
	itemID, ok := uintParam(w, r, "itemID")
	if !ok {
		return
	}
	if err := s.svc.Items.DeleteItem(r.Context(), currentUser(r).ID, listID, itemID); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

func (s *Server) toggleItemHandler(w http.ResponseWriter, r *http.Request) {
	listID, ok := uintParam(w, r, "listID")
	if !ok {
		return
	}
	itemID, ok := uintParam(w, r, "itemID")
	if !ok {
		return
	}
	completed, err := s.svc.Items.ToggleItem(r.Context(), currentUser(r).ID, listID, itemID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"completed": completed})
}

func (s *Server) reorderItemsHandler(w http.ResponseWriter, r *http.Request) {
	listID, ok := uintParam(w, r, "listID")
	if !ok {
		return
	}
	var req struct {
		Order []uint `json:"order"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := s.svc.Items.Reorder(r.Context(), currentUser(r).ID, listID, req.Order); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "order updated"})
}

func (s *Server) bulkDeleteItemsHandler(w http.ResponseWriter, r *http.Request) {
	listID, ok := uintParam(w, r, "listID")
	if !ok {
		return
	}
	var req struct {
		IDs []uint `json:"ids"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := s.svc.Items.BulkDelete(r.Context(), currentUser(r).ID, listID, req.IDs); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"message": "items deleted", "count": len(req.IDs)})
}

func (s *Server) bulkMoveItemsHandler(w http.ResponseWriter, r *http.Request) {
	listID, ok := uintParam(w, r, "listID")
	if !ok {
		return
	}
	var req struct {
		IDs          []uint `json:"ids"`
		TargetListID uint   `json:"target_list_id"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := s.svc.Items.BulkMove(r.Context(), currentUser(r).ID, listID, req.TargetListID, req.IDs); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"message": "items moved", "count": len(req.IDs)})
}
