package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-list-keeper/internal/events"
	"github.com/MKhiriev/go-list-keeper/internal/logger"
	"github.com/MKhiriev/go-list-keeper/internal/rating"
	"github.com/MKhiriev/go-list-keeper/internal/store"
	"github.com/MKhiriev/go-list-keeper/internal/validators"
	"github.com/MKhiriev/go-list-keeper/models"
)

const (
	defaultRecentEntries = 10
	maxRecentEntries     = 50
)

// entryService validates entries against the schema and rating settings of
// the list they belong to.
type entryService struct {
	entryRepository store.EntryRepository
	listRepository  store.ListRepository
	publisher       events.Publisher
	validator       validators.Validator

	logger *logger.Logger
}

func NewEntryService(entryRepository store.EntryRepository, listRepository store.ListRepository, publisher events.Publisher, logger *logger.Logger) EntryService {
	return &entryService{
		entryRepository: entryRepository,
		listRepository:  listRepository,
		publisher:       publisher,
		validator:       validators.NewListValidator(),
		logger:          logger,
	}
}

func (s *entryService) CreateEntry(ctx context.Context, entry models.Entry) (models.Entry, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return models.Entry{}, err
	}

	list, err := s.ownedList(ctx, entry.ListID, userID)
	if err != nil {
		return models.Entry{}, err
	}

	entry.UserID = userID
	if entry.FieldValues == nil {
		entry.FieldValues = models.FieldValues{}
	}
	if err = s.validator.Validate(ctx, validators.EntryInput{Entry: entry, List: list}); err != nil {
		return models.Entry{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	created, err := s.entryRepository.CreateEntry(ctx, entry)
	if err != nil {
		return models.Entry{}, err
	}

	s.publish(ctx, created, models.ActionCreated)
	return created, nil
}

func (s *entryService) GetEntry(ctx context.Context, entryID int64) (models.Entry, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return models.Entry{}, err
	}
	if entryID <= 0 {
		return models.Entry{}, ErrEntryIDRequired
	}

	entry, err := s.entryRepository.GetEntry(ctx, entryID)
	if err != nil {
		return models.Entry{}, err
	}
	if entry.UserID != userID {
		return models.Entry{}, ErrForbidden
	}
	return entry, nil
}

func (s *entryService) GetListEntries(ctx context.Context, filter models.EntryFilter) ([]models.Entry, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if _, err = s.ownedList(ctx, filter.ListID, userID); err != nil {
		return nil, err
	}

	filter.UserID = userID
	return s.entryRepository.GetEntries(ctx, filter)
}

func (s *entryService) CountEntries(ctx context.Context, listID int64) (int64, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return 0, err
	}
	if _, err = s.ownedList(ctx, listID, userID); err != nil {
		return 0, err
	}

	return s.entryRepository.CountEntries(ctx, listID)
}

func (s *entryService) GetRecentEntries(ctx context.Context, limit uint64) ([]models.Entry, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	switch {
	case limit == 0:
		limit = defaultRecentEntries
	case limit > maxRecentEntries:
		limit = maxRecentEntries
	}

	return s.entryRepository.GetRecentEntries(ctx, userID, limit)
}

func (s *entryService) UpdateEntry(ctx context.Context, update models.EntryUpdate) (models.Entry, error) {
	current, err := s.GetEntry(ctx, update.ID)
	if err != nil {
		return models.Entry{}, err
	}

	list, err := s.listRepository.GetList(ctx, current.ListID)
	if err != nil {
		return models.Entry{}, err
	}

	update.UserID = current.UserID
	if err = s.validator.Validate(ctx, validators.EntryUpdateInput{Update: update, List: list}); err != nil {
		return models.Entry{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	updated, err := s.entryRepository.UpdateEntry(ctx, update)
	if err != nil {
		return models.Entry{}, err
	}

	s.publish(ctx, updated, models.ActionUpdated)
	return updated, nil
}

func (s *entryService) DeleteEntry(ctx context.Context, entryID int64) error {
	current, err := s.GetEntry(ctx, entryID)
	if err != nil {
		return err
	}

	if err = s.entryRepository.DeleteEntry(ctx, current.ID, current.UserID); err != nil {
		return err
	}

	s.publish(ctx, current, models.ActionDeleted)
	return nil
}

// GetRatingDisplay renders the rating of an entry the way its list shows
// ratings. An entry without a rating yields an explicit unset display.
func (s *entryService) GetRatingDisplay(ctx context.Context, entryID int64) (models.RatingDisplay, error) {
	entry, err := s.GetEntry(ctx, entryID)
	if err != nil {
		return models.RatingDisplay{}, err
	}

	list, err := s.listRepository.GetList(ctx, entry.ListID)
	if err != nil {
		return models.RatingDisplay{}, err
	}

	return rating.Compute(list.RatingType, list.RatingConfig, entry.Rating), nil
}

func (s *entryService) ownedList(ctx context.Context, listID, userID int64) (models.List, error) {
	if listID <= 0 {
		return models.List{}, ErrListIDRequired
	}

	list, err := s.listRepository.GetList(ctx, listID)
	if err != nil {
		return models.List{}, err
	}
	return ownedList(list, userID)
}

func (s *entryService) publish(ctx context.Context, entry models.Entry, action models.ChangeAction) {
	s.publisher.Publish(ctx, models.EntityChanged{
		EntityType: models.EntityEntry,
		Action:     action,
		ID:         entry.ID,
		ListID:     entry.ListID,
		UserID:     entry.UserID,
	})
}
