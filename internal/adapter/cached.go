package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-list-keeper/internal/logger"
	"github.com/MKhiriev/go-list-keeper/internal/store"
	"github.com/MKhiriev/go-list-keeper/internal/utils"
	"github.com/MKhiriev/go-list-keeper/models"
)

// Cache keys name what a response answers, not the URL it came from. Every
// key carries the id of the logged in user, so one cache file never serves
// rows of another account.
func listsKey(userID int64) string           { return fmt.Sprintf("lists:%d", userID) }
func listKey(userID, listID int64) string    { return fmt.Sprintf("list:%d:%d", userID, listID) }
func entriesKey(userID, listID int64) string { return fmt.Sprintf("entries:%d:%d", userID, listID) }
func entryKey(userID, entryID int64) string  { return fmt.Sprintf("entry:%d:%d", userID, entryID) }
func profileKey(userID int64) string         { return fmt.Sprintf("profile:%d", userID) }

func entryKeyPrefix(userID int64) string   { return fmt.Sprintf("entry:%d:", userID) }
func entriesKeyPrefix(userID int64) string { return fmt.Sprintf("entries:%d:", userID) }

// cachedAdapter serves repeated reads from a [store.ResponseCache]. Methods it
// does not override go straight to the wrapped adapter.
//
// Cache failures never fail a call: they are logged and the request goes to
// the server.
type cachedAdapter struct {
	ServerAdapter

	cache  store.ResponseCache
	logger *logger.Logger
}

func NewCachedAdapter(next ServerAdapter, cache store.ResponseCache, logger *logger.Logger) ServerAdapter {
	return &cachedAdapter{ServerAdapter: next, cache: cache, logger: logger}
}

// userID scopes every key. Without a readable token nothing is cached.
func (c *cachedAdapter) userID() (int64, bool) {
	id, err := utils.ParseUserIDFromJWT(c.Token())
	return id, err == nil
}

func (c *cachedAdapter) GetProfile(ctx context.Context) (models.Profile, error) {
	userID, ok := c.userID()
	if !ok {
		return c.ServerAdapter.GetProfile(ctx)
	}
	return cached(ctx, c, profileKey(userID), func() (models.Profile, error) {
		return c.ServerAdapter.GetProfile(ctx)
	})
}

func (c *cachedAdapter) UpsertProfile(ctx context.Context, profile models.Profile) (models.Profile, error) {
	saved, err := c.ServerAdapter.UpsertProfile(ctx, profile)
	if err == nil {
		if userID, ok := c.userID(); ok {
			c.invalidate(ctx, profileKey(userID))
		}
	}
	return saved, err
}

func (c *cachedAdapter) GetLists(ctx context.Context) ([]models.List, error) {
	userID, ok := c.userID()
	if !ok {
		return c.ServerAdapter.GetLists(ctx)
	}
	return cached(ctx, c, listsKey(userID), func() ([]models.List, error) {
		return c.ServerAdapter.GetLists(ctx)
	})
}

func (c *cachedAdapter) GetList(ctx context.Context, listID int64) (models.List, error) {
	userID, ok := c.userID()
	if !ok {
		return c.ServerAdapter.GetList(ctx, listID)
	}
	return cached(ctx, c, listKey(userID, listID), func() (models.List, error) {
		return c.ServerAdapter.GetList(ctx, listID)
	})
}

func (c *cachedAdapter) CreateList(ctx context.Context, list models.List) (models.List, error) {
	created, err := c.ServerAdapter.CreateList(ctx, list)
	if err == nil {
		c.invalidateLists(ctx, nil)
	}
	return created, err
}

func (c *cachedAdapter) UpdateList(ctx context.Context, update models.ListUpdate) (models.List, error) {
	list, err := c.ServerAdapter.UpdateList(ctx, update)
	if err == nil {
		c.invalidateLists(ctx, func(userID int64) []string { return []string{listKey(userID, update.ID)} })
	}
	return list, err
}

func (c *cachedAdapter) UploadListIcon(ctx context.Context, listID int64, fileName string, data []byte) (models.List, error) {
	list, err := c.ServerAdapter.UploadListIcon(ctx, listID, fileName, data)
	if err == nil {
		c.invalidateLists(ctx, func(userID int64) []string { return []string{listKey(userID, listID)} })
	}
	return list, err
}

// UpdateListFields may rewrite every entry of the list, so the entry caches
// are dropped even when the migration stopped part way.
func (c *cachedAdapter) UpdateListFields(ctx context.Context, update models.ListFieldsUpdate) (models.SchemaUpdate, error) {
	result, err := c.ServerAdapter.UpdateListFields(ctx, update)
	if err == nil || result.Migration.Migrated > 0 {
		c.invalidateListContents(ctx, update.ListID)
	}
	return result, err
}

func (c *cachedAdapter) DeleteList(ctx context.Context, listID int64) error {
	if err := c.ServerAdapter.DeleteList(ctx, listID); err != nil {
		return err
	}
	c.invalidateListContents(ctx, listID)
	return nil
}

// GetEntries caches only the unfiltered listing; filtered queries always go
// to the server.
func (c *cachedAdapter) GetEntries(ctx context.Context, filter models.EntryFilter) ([]models.Entry, error) {
	userID, ok := c.userID()
	if !ok || filter != (models.EntryFilter{ListID: filter.ListID}) {
		return c.ServerAdapter.GetEntries(ctx, filter)
	}
	return cached(ctx, c, entriesKey(userID, filter.ListID), func() ([]models.Entry, error) {
		return c.ServerAdapter.GetEntries(ctx, filter)
	})
}

func (c *cachedAdapter) GetEntry(ctx context.Context, entryID int64) (models.Entry, error) {
	userID, ok := c.userID()
	if !ok {
		return c.ServerAdapter.GetEntry(ctx, entryID)
	}
	return cached(ctx, c, entryKey(userID, entryID), func() (models.Entry, error) {
		return c.ServerAdapter.GetEntry(ctx, entryID)
	})
}

func (c *cachedAdapter) CreateEntry(ctx context.Context, entry models.Entry) (models.Entry, error) {
	created, err := c.ServerAdapter.CreateEntry(ctx, entry)
	if userID, ok := c.userID(); ok && err == nil {
		c.invalidate(ctx, entriesKey(userID, entry.ListID))
	}
	return created, err
}

func (c *cachedAdapter) UpdateEntry(ctx context.Context, update models.EntryUpdate) (models.Entry, error) {
	entry, err := c.ServerAdapter.UpdateEntry(ctx, update)
	if userID, ok := c.userID(); ok && err == nil {
		c.invalidate(ctx, entryKey(userID, update.ID), entriesKey(userID, entry.ListID))
	}
	return entry, err
}

// DeleteEntry does not know the list of the entry, so every cached listing
// goes.
func (c *cachedAdapter) DeleteEntry(ctx context.Context, entryID int64) error {
	if err := c.ServerAdapter.DeleteEntry(ctx, entryID); err != nil {
		return err
	}
	if userID, ok := c.userID(); ok {
		c.invalidate(ctx, entryKey(userID, entryID))
		c.invalidatePrefix(ctx, entriesKeyPrefix(userID))
	}
	return nil
}

// StreamEvents keeps the cache in step with changes made elsewhere, e.g. by
// another device of the same user.
func (c *cachedAdapter) StreamEvents(ctx context.Context, handle func(models.EntityChanged)) error {
	return c.ServerAdapter.StreamEvents(ctx, func(evt models.EntityChanged) {
		c.ApplyEvent(ctx, evt)
		handle(evt)
	})
}

// ApplyEvent drops the cache keys a change event makes stale. Events arrive
// on the stream of their owner, so the owner id scopes the keys.
func (c *cachedAdapter) ApplyEvent(ctx context.Context, evt models.EntityChanged) {
	userID := evt.UserID
	switch evt.EntityType {
	case models.EntityList:
		c.invalidate(ctx, listKey(userID, evt.ID), listsKey(userID), entriesKey(userID, evt.ID))
		if evt.Action == models.ActionDeleted || evt.Action == models.ActionMigrated {
			c.invalidatePrefix(ctx, entryKeyPrefix(userID))
		}
	case models.EntityEntry:
		c.invalidate(ctx, entryKey(userID, evt.ID), entriesKey(userID, evt.ListID))
	case models.EntityProfile:
		c.invalidate(ctx, profileKey(userID))
	}
}

// invalidateLists drops the list overview of the current user together with
// the keys built by more.
func (c *cachedAdapter) invalidateLists(ctx context.Context, more func(userID int64) []string) {
	userID, ok := c.userID()
	if !ok {
		return
	}
	keys := []string{listsKey(userID)}
	if more != nil {
		keys = append(keys, more(userID)...)
	}
	c.invalidate(ctx, keys...)
}

// invalidateListContents drops everything cached about one list and its
// entries.
func (c *cachedAdapter) invalidateListContents(ctx context.Context, listID int64) {
	c.invalidateLists(ctx, func(userID int64) []string {
		return []string{listKey(userID, listID), entriesKey(userID, listID)}
	})
	if userID, ok := c.userID(); ok {
		c.invalidatePrefix(ctx, entryKeyPrefix(userID))
	}
}

func (c *cachedAdapter) invalidate(ctx context.Context, keys ...string) {
	if err := c.cache.Invalidate(ctx, keys...); err != nil {
		c.logger.Err(err).Str("func", "*cachedAdapter.invalidate").Strs("keys", keys).Msg("cache invalidation failed")
	}
}

func (c *cachedAdapter) invalidatePrefix(ctx context.Context, prefix string) {
	if err := c.cache.InvalidatePrefix(ctx, prefix); err != nil {
		c.logger.Err(err).Str("func", "*cachedAdapter.invalidatePrefix").Str("prefix", prefix).Msg("cache invalidation failed")
	}
}

// cached returns the payload stored under key or calls fetch and stores its
// result.
func cached[T any](ctx context.Context, c *cachedAdapter, key string, fetch func() (T, error)) (T, error) {
	log := c.logger.With().Str("func", "cached").Str("key", key).Logger()

	payload, found, err := c.cache.Get(ctx, key)
	if err != nil {
		log.Err(err).Msg("cache read failed")
	}
	if found {
		var v T
		if err = json.Unmarshal(payload, &v); err == nil {
			log.Debug().Msg("cache hit")
			return v, nil
		}
		log.Err(err).Msg("cached payload is unreadable")
	}

	v, err := fetch()
	if err != nil {
		return v, err
	}

	if payload, err = json.Marshal(v); err == nil {
		err = c.cache.Set(ctx, key, payload)
	}
	if err != nil {
		log.Err(err).Msg("cache write failed")
	}
	return v, nil
}
