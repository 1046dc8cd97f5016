package http

import (
	"net/http"

	"github.com/MKhiriev/go-list-keeper/internal/utils"
	"github.com/MKhiriev/go-list-keeper/models"
)

const entryIDParam = "entryID"

func (h *Handler) getListEntries(w http.ResponseWriter, r *http.Request) {
	listID, err := pathID(r, listIDParam)
	if err != nil {
		respondError(w, r, "*Handler.getListEntries", "invalid list id", err)
		return
	}

	filter, err := entryFilter(r, listID)
	if err != nil {
		respondError(w, r, "*Handler.getListEntries", "invalid entry filter", err)
		return
	}

	entries, err := h.services.EntryService.GetListEntries(r.Context(), filter)
	if err != nil {
		respondError(w, r, "*Handler.getListEntries", "error getting entries", err)
		return
	}

	utils.WriteJSON(w, entries, http.StatusOK)
}

func (h *Handler) createEntry(w http.ResponseWriter, r *http.Request) {
	listID, err := pathID(r, listIDParam)
	if err != nil {
		respondError(w, r, "*Handler.createEntry", "invalid list id", err)
		return
	}

	var entry models.Entry
	if err = utils.ReadJSON(r.Body, &entry); err != nil {
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	entry.ListID = listID

	created, err := h.services.EntryService.CreateEntry(r.Context(), entry)
	if err != nil {
		respondError(w, r, "*Handler.createEntry", "error creating entry", err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) countEntries(w http.ResponseWriter, r *http.Request) {
	listID, err := pathID(r, listIDParam)
	if err != nil {
		respondError(w, r, "*Handler.countEntries", "invalid list id", err)
		return
	}

	count, err := h.services.EntryService.CountEntries(r.Context(), listID)
	if err != nil {
		respondError(w, r, "*Handler.countEntries", "error counting entries", err)
		return
	}

	utils.WriteJSON(w, models.CountResponse{Count: count}, http.StatusOK)
}

func (h *Handler) getRecentEntries(w http.ResponseWriter, r *http.Request) {
	limit, err := queryUint(r, "limit")
	if err != nil {
		respondError(w, r, "*Handler.getRecentEntries", "invalid limit", err)
		return
	}

	entries, err := h.services.EntryService.GetRecentEntries(r.Context(), limit)
	if err != nil {
		respondError(w, r, "*Handler.getRecentEntries", "error getting recent entries", err)
		return
	}

	utils.WriteJSON(w, entries, http.StatusOK)
}

func (h *Handler) getEntry(w http.ResponseWriter, r *http.Request) {
	entryID, err := pathID(r, entryIDParam)
	if err != nil {
		respondError(w, r, "*Handler.getEntry", "invalid entry id", err)
		return
	}

	entry, err := h.services.EntryService.GetEntry(r.Context(), entryID)
	if err != nil {
		respondError(w, r, "*Handler.getEntry", "error getting entry", err)
		return
	}

	utils.WriteJSON(w, entry, http.StatusOK)
}

func (h *Handler) updateEntry(w http.ResponseWriter, r *http.Request) {
	entryID, err := pathID(r, entryIDParam)
	if err != nil {
		respondError(w, r, "*Handler.updateEntry", "invalid entry id", err)
		return
	}

	var update models.EntryUpdate
	if err = utils.ReadJSON(r.Body, &update); err != nil {
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	update.ID = entryID

	entry, err := h.services.EntryService.UpdateEntry(r.Context(), update)
	if err != nil {
		respondError(w, r, "*Handler.updateEntry", "error updating entry", err)
		return
	}

	utils.WriteJSON(w, entry, http.StatusOK)
}

func (h *Handler) deleteEntry(w http.ResponseWriter, r *http.Request) {
	entryID, err := pathID(r, entryIDParam)
	if err != nil {
		respondError(w, r, "*Handler.deleteEntry", "invalid entry id", err)
		return
	}

	if err = h.services.EntryService.DeleteEntry(r.Context(), entryID); err != nil {
		respondError(w, r, "*Handler.deleteEntry", "error deleting entry", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getRatingDisplay(w http.ResponseWriter, r *http.Request) {
	entryID, err := pathID(r, entryIDParam)
	if err != nil {
		respondError(w, r, "*Handler.getRatingDisplay", "invalid entry id", err)
		return
	}

	display, err := h.services.EntryService.GetRatingDisplay(r.Context(), entryID)
	if err != nil {
		respondError(w, r, "*Handler.getRatingDisplay", "error computing rating", err)
		return
	}

	utils.WriteJSON(w, display, http.StatusOK)
}
