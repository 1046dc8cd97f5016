package events

import (
	"context"

	"github.com/MKhiriev/go-list-keeper/internal/logger"
	"github.com/MKhiriev/go-list-keeper/models"
)

// NewLogHandler writes every event to log at info level.
func NewLogHandler(log *logger.Logger) Handler {
	return HandlerFunc(func(_ context.Context, evt models.EntityChanged) error {
		log.Info().
			Str("entity_type", string(evt.EntityType)).
			Str("action", string(evt.Action)).
			Int64("id", evt.ID).
			Int64("list_id", evt.ListID).
			Int64("user_id", evt.UserID).
			Time("occurred_at", evt.OccurredAt).
			Msg("entity changed")
		return nil
	})
}
