package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-list-keeper/internal/logger"
	"github.com/MKhiriev/go-list-keeper/models"
	"github.com/jackc/pgerrcode"
)

// Unique constraints created by the sharing migration.
const (
	sharedListsListIDKey    = "shared_lists_list_id_key"
	sharedListsShareCodeKey = "shared_lists_share_code_key"
)

// sharingRepository covers the "shared_lists" and "list_subscriptions" tables.
type sharingRepository struct {
	*DB
	logger *logger.Logger
}

func NewSharingRepository(db *DB, logger *logger.Logger) SharingRepository {
	logger.Debug().Msg("creating sharing repository")
	return &sharingRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *sharingRepository) CreateShare(ctx context.Context, share models.SharedList) (models.SharedList, error) {
	query, args, err := buildCreateShareQuery(share)
	if err != nil {
		return models.SharedList{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanShare(r.QueryRowContext(ctx, query, args...))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sharingRepository.CreateShare").Int64("list_id", share.ListID).Msg("failed to share list")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			if constraintName(err) == sharedListsShareCodeKey {
				return models.SharedList{}, ErrShareCodeTaken
			}
			return models.SharedList{}, ErrListAlreadyShared
		case pgerrcode.ForeignKeyViolation:
			return models.SharedList{}, ErrListNotFound
		default:
			return models.SharedList{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}
	return created, nil
}

func (r *sharingRepository) GetShareByCode(ctx context.Context, code string) (models.SharedList, error) {
	return r.getShare(ctx, sq.Eq{"share_code": code})
}

func (r *sharingRepository) GetShareByList(ctx context.Context, listID int64) (models.SharedList, error) {
	return r.getShare(ctx, sq.Eq{"list_id": listID})
}

func (r *sharingRepository) DeleteShare(ctx context.Context, listID, userID int64) error {
	query, args, err := buildDeleteShareQuery(listID, userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return execAffectingOne(ctx, r.DB, "*sharingRepository.DeleteShare", ErrShareNotFound, query, args)
}

func (r *sharingRepository) CreateSubscription(ctx context.Context, subscription models.ListSubscription) (models.ListSubscription, error) {
	query, args, err := buildCreateSubscriptionQuery(subscription)
	if err != nil {
		return models.ListSubscription{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanSubscription(r.QueryRowContext(ctx, query, args...))
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*sharingRepository.CreateSubscription").
			Int64("list_id", subscription.ListID).
			Int64("subscriber_id", subscription.SubscriberID).
			Msg("failed to subscribe")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.ListSubscription{}, ErrAlreadySubscribed
		case pgerrcode.ForeignKeyViolation:
			return models.ListSubscription{}, ErrListNotFound
		default:
			return models.ListSubscription{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}
	return created, nil
}

func (r *sharingRepository) DeleteSubscription(ctx context.Context, listID, subscriberID int64) error {
	query, args, err := buildDeleteSubscriptionQuery(listID, subscriberID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return execAffectingOne(ctx, r.DB, "*sharingRepository.DeleteSubscription", ErrSubscriptionNotFound, query, args)
}

func (r *sharingRepository) GetSubscriptions(ctx context.Context, subscriberID int64) ([]models.ListSubscription, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetSubscriptionsQuery(subscriberID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sharingRepository.GetSubscriptions").Int64("subscriber_id", subscriberID).Msg("failed to query subscriptions")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	subscriptions := make([]models.ListSubscription, 0, 8)
	for rows.Next() {
		sub, scanErr := scanSubscription(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		subscriptions = append(subscriptions, sub)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return subscriptions, nil
}

func (r *sharingRepository) getShare(ctx context.Context, where sq.Eq) (models.SharedList, error) {
	query, args, err := buildGetShareQuery(where)
	if err != nil {
		return models.SharedList{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	share, err := scanShare(r.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.SharedList{}, ErrShareNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sharingRepository.getShare").Msg("failed to query share")
		return models.SharedList{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return share, nil
}

func scanShare(row rowScanner) (models.SharedList, error) {
	var s models.SharedList
	err := row.Scan(&s.ID, &s.ListID, &s.UserID, &s.ShareCode, &s.CreatedAt)
	return s, err
}

func scanSubscription(row rowScanner) (models.ListSubscription, error) {
	var s models.ListSubscription
	err := row.Scan(&s.ID, &s.ListID, &s.SubscriberID, &s.CreatedAt)
	return s, err
}
