package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-list-keeper/internal/events"
	"github.com/MKhiriev/go-list-keeper/internal/logger"
	"github.com/MKhiriev/go-list-keeper/internal/store"
	"github.com/MKhiriev/go-list-keeper/internal/validators"
	"github.com/MKhiriev/go-list-keeper/models"
)

type profileService struct {
	profileRepository store.ProfileRepository
	files             FileService
	publisher         events.Publisher
	validator         validators.Validator

	logger *logger.Logger
}

func NewProfileService(profileRepository store.ProfileRepository, files FileService, publisher events.Publisher, logger *logger.Logger) ProfileService {
	return &profileService{
		profileRepository: profileRepository,
		files:             files,
		publisher:         publisher,
		validator:         validators.NewProfileValidator(),
		logger:            logger,
	}
}

func (p *profileService) GetProfile(ctx context.Context) (models.Profile, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return models.Profile{}, err
	}

	return p.profileRepository.GetProfile(ctx, userID)
}

func (p *profileService) UpsertProfile(ctx context.Context, profile models.Profile) (models.Profile, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return models.Profile{}, err
	}

	profile.UserID = userID
	if err = p.validator.Validate(ctx, profile); err != nil {
		return models.Profile{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	saved, err := p.profileRepository.UpsertProfile(ctx, profile)
	if err != nil {
		return models.Profile{}, err
	}

	p.publish(ctx, saved)
	return saved, nil
}

func (p *profileService) UploadAvatar(ctx context.Context, upload models.Upload) (models.Profile, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return models.Profile{}, err
	}

	upload.Bucket = BucketAvatars
	upload.OwnerID = userID

	stored, err := p.files.Upload(ctx, upload)
	if err != nil {
		return models.Profile{}, err
	}

	profile, err := p.profileRepository.UpdateAvatar(ctx, userID, stored.PublicURL)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*profileService.UploadAvatar").
			Str("key", stored.Key).
			Msg("avatar stored but profile was not updated")
		return models.Profile{}, err
	}

	p.publish(ctx, profile)
	return profile, nil
}

func (p *profileService) publish(ctx context.Context, profile models.Profile) {
	p.publisher.Publish(ctx, models.EntityChanged{
		EntityType: models.EntityProfile,
		Action:     models.ActionUpdated,
		ID:         profile.UserID,
		UserID:     profile.UserID,
	})
}
