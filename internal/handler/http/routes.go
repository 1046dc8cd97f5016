package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Use(withGZip)

		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)

		r.With(h.withETag).Get("/api/version/", h.getServerVersion)
		r.With(h.withETag).Get("/api/shared/{code}", h.getSharedList)

		r.Get("/files/*", h.serveFiles().ServeHTTP)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		// the websocket hijacks the connection, so no response wrappers here
		r.Get("/api/events", h.streamEvents)

		r.Group(func(r chi.Router) {
			r.Use(withGZip, h.withETag)

			r.Get("/api/profile", h.getProfile)
			r.Put("/api/profile", h.upsertProfile)
			r.Post("/api/profile/avatar", h.uploadAvatar)

			r.Route("/api/lists", func(r chi.Router) {
				r.Get("/", h.getLists)
				r.Post("/", h.createList)
				r.Get("/count", h.countLists)

				r.Route("/{listID}", func(r chi.Router) {
					r.Get("/", h.getList)
					r.Patch("/", h.updateList)
					r.Delete("/", h.deleteList)

					r.Put("/fields", h.updateListFields)
					r.Post("/fields/analyze", h.analyzeFields)
					r.Post("/icon", h.uploadListIcon)

					r.Get("/entries", h.getListEntries)
					r.Post("/entries", h.createEntry)
					r.Get("/entries/count", h.countEntries)

					r.Post("/share", h.shareList)
					r.Delete("/share", h.unshareList)

					r.Post("/subscription", h.subscribe)
					r.Delete("/subscription", h.unsubscribe)
				})
			})

			r.Get("/api/entries/recent", h.getRecentEntries)
			r.Route("/api/entries/{entryID}", func(r chi.Router) {
				r.Get("/", h.getEntry)
				r.Patch("/", h.updateEntry)
				r.Delete("/", h.deleteEntry)
				r.Get("/rating", h.getRatingDisplay)
			})

			r.Get("/api/migrations/{jobID}", h.getMigrationJob)
			r.Post("/api/migrations/{jobID}/resume", h.resumeMigration)

			r.Get("/api/subscriptions", h.getSubscriptions)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
