package http

import (
	"net/http"

	"github.com/MKhiriev/go-list-keeper/internal/utils"
	"github.com/MKhiriev/go-list-keeper/models"
)

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.services.ProfileService.GetProfile(r.Context())
	if err != nil {
		respondError(w, r, "*Handler.getProfile", "error getting profile", err)
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}

func (h *Handler) upsertProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.Profile
	if err := utils.ReadJSON(r.Body, &profile); err != nil {
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	saved, err := h.services.ProfileService.UpsertProfile(r.Context(), profile)
	if err != nil {
		respondError(w, r, "*Handler.upsertProfile", "error saving profile", err)
		return
	}

	utils.WriteJSON(w, saved, http.StatusOK)
}

func (h *Handler) uploadAvatar(w http.ResponseWriter, r *http.Request) {
	upload, err := readUpload(w, r)
	if err != nil {
		respondError(w, r, "*Handler.uploadAvatar", "error reading upload", err)
		return
	}

	profile, err := h.services.ProfileService.UploadAvatar(r.Context(), upload)
	if err != nil {
		respondError(w, r, "*Handler.uploadAvatar", "error uploading avatar", err)
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}
