// Package grpc exposes the standard grpc.health.v1 service so that
// orchestrators can probe the server without going through the REST API.
package grpc

import (
	"github.com/MKhiriev/go-list-keeper/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health service name reported next to the overall ("")
// status.
const ServiceName = "listkeeper.v1.ListKeeper"

// Handler is the root gRPC transport handler.
type Handler struct {
	health *health.Server

	logger *logger.Logger
}

// NewHandler reports SERVING from the start: handlers are only created once
// storage is connected.
func NewHandler(logger *logger.Logger) *Handler {
	h := &Handler{
		health: health.NewServer(),
		logger: logger,
	}
	h.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	h.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	logger.Debug().Msg("gRPC handler created")
	return h
}

// Register attaches the health and reflection services to s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
	reflection.Register(s)
}

// Shutdown flips every service to NOT_SERVING so that in-flight watchers see
// the server going away before it stops.
func (h *Handler) Shutdown() {
	h.logger.Info().Str("func", "*Handler.Shutdown").Msg("reporting NOT_SERVING")
	h.health.Shutdown()
}
