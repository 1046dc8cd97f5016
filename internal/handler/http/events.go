package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-list-keeper/internal/service"
	"github.com/MKhiriev/go-list-keeper/internal/utils"
)

// streamEvents upgrades to a websocket that receives the change events of
// the authenticated user.
func (h *Handler) streamEvents(w http.ResponseWriter, r *http.Request) {
	userID, found := utils.GetUserIDFromContext(r.Context())
	if !found {
		respondError(w, r, "*Handler.streamEvents", "no user ID was given", service.ErrNoUserID)
		return
	}

	h.hub.Serve(w, r, userID)
}

// serveFiles exposes uploaded objects under their public URLs. Directory
// listings are not served.
func (h *Handler) serveFiles() http.Handler {
	files := http.StripPrefix("/files/", http.FileServer(http.Dir(h.filesDir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
