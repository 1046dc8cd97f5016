package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-list-keeper/internal/logger"
	"github.com/MKhiriev/go-list-keeper/models"
	"github.com/jackc/pgerrcode"
)

type profileRepository struct {
	*DB
	logger *logger.Logger
}

func NewProfileRepository(db *DB, logger *logger.Logger) ProfileRepository {
	logger.Debug().Msg("creating profile repository")
	return &profileRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *profileRepository) GetProfile(ctx context.Context, userID int64) (models.Profile, error) {
	query, args, err := buildGetProfileQuery(userID)
	if err != nil {
		return models.Profile{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryProfile(ctx, "*profileRepository.GetProfile", userID, query, args)
}

// UpsertProfile creates the profile or replaces its name and bio. An empty
// avatar URL keeps the stored one.
func (r *profileRepository) UpsertProfile(ctx context.Context, profile models.Profile) (models.Profile, error) {
	query, args, err := buildUpsertProfileQuery(profile)
	if err != nil {
		return models.Profile{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	saved, err := r.queryProfile(ctx, "*profileRepository.UpsertProfile", profile.UserID, query, args)
	if postgresError(err) == pgerrcode.ForeignKeyViolation {
		return models.Profile{}, ErrNoUserWasFound
	}
	return saved, err
}

func (r *profileRepository) UpdateAvatar(ctx context.Context, userID int64, avatarURL string) (models.Profile, error) {
	query, args, err := buildUpdateAvatarQuery(userID, avatarURL)
	if err != nil {
		return models.Profile{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryProfile(ctx, "*profileRepository.UpdateAvatar", userID, query, args)
}

func (r *profileRepository) queryProfile(ctx context.Context, funcName string, userID int64, query string, args []any) (models.Profile, error) {
	var p models.Profile
	err := r.QueryRowContext(ctx, query, args...).
		Scan(&p.UserID, &p.DisplayName, &p.AvatarURL, &p.Bio, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, ErrProfileNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Int64("user_id", userID).Msg("profile query failed")
		return models.Profile{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return p, nil
}
