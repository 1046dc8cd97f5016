package http

import (
	"net/http"

	"github.com/MKhiriev/go-list-keeper/internal/utils"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) shareList(w http.ResponseWriter, r *http.Request) {
	listID, err := pathID(r, listIDParam)
	if err != nil {
		respondError(w, r, "*Handler.shareList", "invalid list id", err)
		return
	}

	share, err := h.services.SharingService.ShareList(r.Context(), listID)
	if err != nil {
		respondError(w, r, "*Handler.shareList", "error sharing list", err)
		return
	}

	utils.WriteJSON(w, share, http.StatusOK)
}

func (h *Handler) unshareList(w http.ResponseWriter, r *http.Request) {
	listID, err := pathID(r, listIDParam)
	if err != nil {
		respondError(w, r, "*Handler.unshareList", "invalid list id", err)
		return
	}

	if err = h.services.SharingService.UnshareList(r.Context(), listID); err != nil {
		respondError(w, r, "*Handler.unshareList", "error unsharing list", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// getSharedList is public: anyone holding the code can read the list.
func (h *Handler) getSharedList(w http.ResponseWriter, r *http.Request) {
	view, err := h.services.SharingService.GetSharedList(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		respondError(w, r, "*Handler.getSharedList", "error getting shared list", err)
		return
	}

	utils.WriteJSON(w, view, http.StatusOK)
}

func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	listID, err := pathID(r, listIDParam)
	if err != nil {
		respondError(w, r, "*Handler.subscribe", "invalid list id", err)
		return
	}

	subscription, err := h.services.SharingService.Subscribe(r.Context(), listID)
	if err != nil {
		respondError(w, r, "*Handler.subscribe", "error subscribing to list", err)
		return
	}

	utils.WriteJSON(w, subscription, http.StatusCreated)
}

func (h *Handler) unsubscribe(w http.ResponseWriter, r *http.Request) {
	listID, err := pathID(r, listIDParam)
	if err != nil {
		respondError(w, r, "*Handler.unsubscribe", "invalid list id", err)
		return
	}

	if err = h.services.SharingService.Unsubscribe(r.Context(), listID); err != nil {
		respondError(w, r, "*Handler.unsubscribe", "error unsubscribing from list", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getSubscriptions(w http.ResponseWriter, r *http.Request) {
	subscriptions, err := h.services.SharingService.GetSubscriptions(r.Context())
	if err != nil {
		respondError(w, r, "*Handler.getSubscriptions", "error getting subscriptions", err)
		return
	}

	utils.WriteJSON(w, subscriptions, http.StatusOK)
}
