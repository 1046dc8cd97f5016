package service

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-list-keeper/internal/utils"
	"github.com/MKhiriev/go-list-keeper/models"
	"github.com/rs/zerolog"
)

const testUserID int64 = 1

func ptr[T any](v T) *T { return &v }

func userContext(userID int64) context.Context {
	return utils.WithUserID(zerolog.Nop().WithContext(context.Background()), userID)
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []models.EntityChanged
}

func (p *recordingPublisher) Publish(_ context.Context, evt models.EntityChanged) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func (p *recordingPublisher) published() []models.EntityChanged {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.EntityChanged(nil), p.events...)
}

func restaurantList() models.List {
	return models.List{
		ID:           7,
		UserID:       testUserID,
		Name:         "Restaurants",
		RatingType:   models.RatingStars,
		RatingConfig: models.RatingConfig{Max: 5, Step: 0.5},
		FieldDefinitions: models.FieldDefinitions{
			{ID: models.NameFieldID, Name: "Name", Type: models.FieldTypeText, Required: true},
			{ID: "2", Name: "Kind", Type: models.FieldTypeDropdown, Options: []string{"A", "B"}, Order: 1},
			{ID: "3", Name: "Price", Type: models.FieldTypeNumber, Order: 2},
		},
	}
}
