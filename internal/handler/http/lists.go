// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-list-keeper/internal/service"
	"github.com/MKhiriev/go-list-keeper/internal/utils"
	"github.com/MKhiriev/go-list-keeper/models"
)

const listIDParam = "listID"

func (h *Handler) getLists(w http.ResponseWriter, r *http.Request) {
	lists, err := h.services.ListService.GetUserLists(r.Context())
	if err != nil {
		respondError(w, r, "*Handler.getLists", "error getting lists", err)
		return
	}

	utils.WriteJSON(w, lists, http.StatusOK)
}

func (h *Handler) createList(w http.ResponseWriter, r *http.Request) {
	var list models.List
	if err := utils.ReadJSON(r.Body, &list); err != nil {
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.ListService.CreateList(r.Context(), list)
	if err != nil {
		respondError(w, r, "*Handler.createList", "error creating list", err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) countLists(w http.ResponseWriter, r *http.Request) {
	count, err := h.services.ListService.CountLists(r.Context())
	if err != nil {
		respondError(w, r, "*Handler.countLists", "error counting lists", err)
		return
	}

	utils.WriteJSON(w, models.CountResponse{Count: count}, http.StatusOK)
}

func (h *Handler) getList(w http.ResponseWriter, r *http.Request) {
	listID, err := pathID(r, listIDParam)
	if err != nil {
		respondError(w, r, "*Handler.getList", "invalid list id", err)
		return
	}

	list, err := h.services.ListService.GetList(r.Context(), listID)
	if err != nil {
		respondError(w, r, "*Handler.getList", "error getting list", err)
		return
	}

	utils.WriteJSON(w, list, http.StatusOK)
}

func (h *Handler) updateList(w http.ResponseWriter, r *http.Request) {
	listID, err := pathID(r, listIDParam)
	if err != nil {
		respondError(w, r, "*Handler.updateList", "invalid list id", err)
		return
	}

	var update models.ListUpdate
	if err = utils.ReadJSON(r.Body, &update); err != nil {
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	update.ID = listID

	list, err := h.services.ListService.UpdateList(r.Context(), update)
	if err != nil {
		respondError(w, r, "*Handler.updateList", "error updating list", err)
		return
	}

	utils.WriteJSON(w, list, http.StatusOK)
}

func (h *Handler) deleteList(w http.ResponseWriter, r *http.Request) {
	listID, err := pathID(r, listIDParam)
	if err != nil {
		respondError(w, r, "*Handler.deleteList", "invalid list id", err)
		return
	}

	if err = h.services.ListService.DeleteList(r.Context(), listID); err != nil {
		respondError(w, r, "*Handler.deleteList", "error deleting list", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// updateListFields replaces the schema. A failed migration still reports
// how far it got, so the body carries the partial result next to the
// error status.
func (h *Handler) updateListFields(w http.ResponseWriter, r *http.Request) {
	update, ok := h.readFieldsUpdate(w, r, "*Handler.updateListFields")
	if !ok {
		return
	}

	result, err := h.services.ListService.UpdateListFields(r.Context(), update)
	switch {
	case err == nil:
		utils.WriteJSON(w, result, http.StatusOK)
	case errors.Is(err, service.ErrMigrationFailed):
		respondMigrationFailure(w, r, result.Migration, err)
	default:
		respondError(w, r, "*Handler.updateListFields", "error updating list fields", err)
	}
}

func (h *Handler) analyzeFields(w http.ResponseWriter, r *http.Request) {
	update, ok := h.readFieldsUpdate(w, r, "*Handler.analyzeFields")
	if !ok {
		return
	}

	changes, err := h.services.ListService.AnalyzeFields(r.Context(), update)
	if err != nil {
		respondError(w, r, "*Handler.analyzeFields", "error analyzing fields", err)
		return
	}

	utils.WriteJSON(w, changes, http.StatusOK)
}

func (h *Handler) uploadListIcon(w http.ResponseWriter, r *http.Request) {
	listID, err := pathID(r, listIDParam)
	if err != nil {
		respondError(w, r, "*Handler.uploadListIcon", "invalid list id", err)
		return
	}

	upload, err := readUpload(w, r)
	if err != nil {
		respondError(w, r, "*Handler.uploadListIcon", "error reading upload", err)
		return
	}

	list, err := h.services.ListService.UploadListIcon(r.Context(), listID, upload)
	if err != nil {
		respondError(w, r, "*Handler.uploadListIcon", "error uploading list icon", err)
		return
	}

	utils.WriteJSON(w, list, http.StatusOK)
}

func (h *Handler) readFieldsUpdate(w http.ResponseWriter, r *http.Request, fn string) (models.ListFieldsUpdate, bool) {
	listID, err := pathID(r, listIDParam)
	if err != nil {
		respondError(w, r, fn, "invalid list id", err)
		return models.ListFieldsUpdate{}, false
	}

	var update models.ListFieldsUpdate
	if err = utils.ReadJSON(r.Body, &update); err != nil {
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return models.ListFieldsUpdate{}, false
	}
	update.ListID = listID

	return update, true
}
