package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-list-keeper/internal/logger"
)

var sqlite = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// responseCache stores raw API responses keyed by logical query identity,
// e.g. "list:42" or "entries:42". Entries older than ttl are misses.
type responseCache struct {
	*DB
	ttl time.Duration
	now func() time.Time
}

func NewResponseCache(db *DB, ttl time.Duration) ResponseCache {
	return &responseCache{DB: db, ttl: ttl, now: time.Now}
}

func (c *responseCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := sqlite.Select("payload", "stored_at").
		From("responses").
		Where(sq.Eq{"cache_key": key}).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		payload  []byte
		storedAt int64
	)
	err = c.QueryRowContext(ctx, query, args...).Scan(&payload, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if c.ttl > 0 && c.now().Sub(time.Unix(0, storedAt)) > c.ttl {
		logger.FromContext(ctx).Debug().Str("key", key).Msg("cached response expired")
		return nil, false, nil
	}
	return payload, true, nil
}

func (c *responseCache) Set(ctx context.Context, key string, payload []byte) error {
	query, args, err := sqlite.Insert("responses").
		Columns("cache_key", "payload", "stored_at").
		Values(key, payload, c.now().UnixNano()).
		Suffix("ON CONFLICT (cache_key) DO UPDATE SET payload = excluded.payload, stored_at = excluded.stored_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = c.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (c *responseCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	query, args, err := sqlite.Delete("responses").Where(sq.Eq{"cache_key": keys}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = c.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (c *responseCache) InvalidatePrefix(ctx context.Context, prefix string) error {
	query, args, err := sqlite.Delete("responses").
		Where(sq.Like{"cache_key": escapeLike(prefix) + "%"}).
		Suffix(`ESCAPE '\'`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = c.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (c *responseCache) Close() error {
	return c.DB.Close()
}
