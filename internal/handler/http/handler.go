package http

import (
	"github.com/MKhiriev/go-list-keeper/internal/events"
	"github.com/MKhiriev/go-list-keeper/internal/logger"
	"github.com/MKhiriev/go-list-keeper/internal/service"
)

type Handler struct {
	services *service.Services

	// hub streams change events to websocket clients.
	hub *events.Hub

	// filesDir is served under /files/.
	filesDir string

	logger *logger.Logger
}

func NewHandler(services *service.Services, hub *events.Hub, filesDir string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		hub:      hub,
		filesDir: filesDir,
		logger:   logger,
	}
}
