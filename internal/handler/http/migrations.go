package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-list-keeper/internal/logger"
	"github.com/MKhiriev/go-list-keeper/internal/service"
	"github.com/MKhiriev/go-list-keeper/internal/utils"
	"github.com/MKhiriev/go-list-keeper/models"
)

const jobIDParam = "jobID"

// migrationFailure is the body of a schema change whose migration stopped.
type migrationFailure struct {
	Error     string                 `json:"error"`
	Migration models.MigrationResult `json:"migration"`
}

func respondMigrationFailure(w http.ResponseWriter, r *http.Request, result models.MigrationResult, err error) {
	logger.FromRequest(r).Err(err).
		Str("func", "respondMigrationFailure").
		Int64("job_id", result.JobID).
		Int("migrated", result.Migrated).
		Msg("list migration failed")

	utils.WriteJSON(w, migrationFailure{Error: err.Error(), Migration: result}, statusFromError(err))
}

func (h *Handler) getMigrationJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathID(r, jobIDParam)
	if err != nil {
		respondError(w, r, "*Handler.getMigrationJob", "invalid job id", err)
		return
	}

	job, err := h.services.MigrationService.GetJob(r.Context(), jobID)
	if err != nil {
		respondError(w, r, "*Handler.getMigrationJob", "error getting migration job", err)
		return
	}

	utils.WriteJSON(w, job, http.StatusOK)
}

func (h *Handler) resumeMigration(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathID(r, jobIDParam)
	if err != nil {
		respondError(w, r, "*Handler.resumeMigration", "invalid job id", err)
		return
	}

	result, err := h.services.MigrationService.ResumeMigration(r.Context(), jobID)
	switch {
	case err == nil:
		utils.WriteJSON(w, result, http.StatusOK)
	case errors.Is(err, service.ErrMigrationFailed):
		respondMigrationFailure(w, r, result, err)
	default:
		respondError(w, r, "*Handler.resumeMigration", "error resuming migration", err)
	}
}
