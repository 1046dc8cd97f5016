package service

import (
	"context"
	"errors"
	"strings"

	"github.com/MKhiriev/go-list-keeper/internal/events"
	"github.com/MKhiriev/go-list-keeper/internal/logger"
	"github.com/MKhiriev/go-list-keeper/internal/store"
	"github.com/MKhiriev/go-list-keeper/internal/utils"
	"github.com/MKhiriev/go-list-keeper/models"
)

const shareCodeAttempts = 3

type shareCodeGenerator interface {
	ShareCode() string
}

type sharingService struct {
	sharingRepository store.SharingRepository
	listRepository    store.ListRepository
	entryRepository   store.EntryRepository
	profileRepository store.ProfileRepository

	codes     shareCodeGenerator
	publisher events.Publisher

	logger *logger.Logger
}

func NewSharingService(storages *store.Storages, publisher events.Publisher, logger *logger.Logger) SharingService {
	return &sharingService{
		sharingRepository: storages.SharingRepository,
		listRepository:    storages.ListRepository,
		entryRepository:   storages.EntryRepository,
		profileRepository: storages.ProfileRepository,
		codes:             utils.NewUUIDGenerator(),
		publisher:         publisher,
		logger:            logger,
	}
}

// ShareList is idempotent: sharing an already shared list returns the
// existing share.
func (s *sharingService) ShareList(ctx context.Context, listID int64) (models.SharedList, error) {
	list, err := s.ownedList(ctx, listID)
	if err != nil {
		return models.SharedList{}, err
	}

	for attempt := 1; ; attempt++ {
		share, err := s.sharingRepository.CreateShare(ctx, models.SharedList{
			ListID:    list.ID,
			UserID:    list.UserID,
			ShareCode: s.codes.ShareCode(),
		})
		switch {
		case err == nil:
			s.publish(ctx, models.EntitySharedList, models.ActionCreated, share.ID, list.ID, list.UserID)
			return share, nil
		case errors.Is(err, store.ErrListAlreadyShared):
			return s.sharingRepository.GetShareByList(ctx, list.ID)
		case errors.Is(err, store.ErrShareCodeTaken) && attempt < shareCodeAttempts:
			logger.FromContext(ctx).Warn().Int("attempt", attempt).Msg("share code collision")
			continue
		default:
			return models.SharedList{}, err
		}
	}
}

func (s *sharingService) UnshareList(ctx context.Context, listID int64) error {
	list, err := s.ownedList(ctx, listID)
	if err != nil {
		return err
	}

	if err = s.sharingRepository.DeleteShare(ctx, list.ID, list.UserID); err != nil {
		return err
	}

	s.publish(ctx, models.EntitySharedList, models.ActionDeleted, list.ID, list.ID, list.UserID)
	return nil
}

// GetSharedList builds the public view of a shared list. A missing owner
// profile is not an error; the view then carries only the owner id.
func (s *sharingService) GetSharedList(ctx context.Context, code string) (models.SharedListView, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return models.SharedListView{}, ErrShareCodeEmpty
	}

	share, err := s.sharingRepository.GetShareByCode(ctx, code)
	if err != nil {
		return models.SharedListView{}, err
	}

	list, err := s.listRepository.GetList(ctx, share.ListID)
	if err != nil {
		return models.SharedListView{}, err
	}

	entries, err := s.entryRepository.GetEntries(ctx, models.EntryFilter{
		ListID:     list.ID,
		OrderBy:    models.EntryOrderRating,
		Descending: true,
	})
	if err != nil {
		return models.SharedListView{}, err
	}

	owner, err := s.profileRepository.GetProfile(ctx, list.UserID)
	if errors.Is(err, store.ErrProfileNotFound) {
		owner, err = models.Profile{UserID: list.UserID}, nil
	}
	if err != nil {
		return models.SharedListView{}, err
	}

	return models.SharedListView{List: list, Entries: entries, Owner: owner}, nil
}

// Subscribe follows a shared list of another user.
func (s *sharingService) Subscribe(ctx context.Context, listID int64) (models.ListSubscription, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return models.ListSubscription{}, err
	}
	if listID <= 0 {
		return models.ListSubscription{}, ErrListIDRequired
	}

	share, err := s.sharingRepository.GetShareByList(ctx, listID)
	if err != nil {
		return models.ListSubscription{}, err
	}
	if share.UserID == userID {
		return models.ListSubscription{}, ErrSubscribeToOwnList
	}

	subscription, err := s.sharingRepository.CreateSubscription(ctx, models.ListSubscription{
		ListID:       listID,
		SubscriberID: userID,
	})
	if err != nil {
		return models.ListSubscription{}, err
	}

	s.publish(ctx, models.EntitySubscription, models.ActionCreated, subscription.ID, listID, userID)
	return subscription, nil
}

func (s *sharingService) Unsubscribe(ctx context.Context, listID int64) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if listID <= 0 {
		return ErrListIDRequired
	}

	if err = s.sharingRepository.DeleteSubscription(ctx, listID, userID); err != nil {
		return err
	}

	s.publish(ctx, models.EntitySubscription, models.ActionDeleted, listID, listID, userID)
	return nil
}

func (s *sharingService) GetSubscriptions(ctx context.Context) ([]models.ListSubscription, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	return s.sharingRepository.GetSubscriptions(ctx, userID)
}

func (s *sharingService) ownedList(ctx context.Context, listID int64) (models.List, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return models.List{}, err
	}
	if listID <= 0 {
		return models.List{}, ErrListIDRequired
	}

	list, err := s.listRepository.GetList(ctx, listID)
	if err != nil {
		return models.List{}, err
	}
	return ownedList(list, userID)
}

func (s *sharingService) publish(ctx context.Context, entity models.EntityType, action models.ChangeAction, id, listID, userID int64) {
	s.publisher.Publish(ctx, models.EntityChanged{
		EntityType: entity,
		Action:     action,
		ID:         id,
		ListID:     listID,
		UserID:     userID,
	})
}
