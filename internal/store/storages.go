package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-list-keeper/internal/config"
	"github.com/MKhiriev/go-list-keeper/internal/logger"
)

// Storages bundles every server-side repository behind one connection.
type Storages struct {
	UserRepository         UserRepository
	ProfileRepository      ProfileRepository
	ListRepository         ListRepository
	EntryRepository        EntryRepository
	SharingRepository      SharingRepository
	MigrationJobRepository MigrationJobRepository
	ObjectStore            ObjectStore

	db *DB
}

// NewStorages connects to Postgres, applies migrations and prepares the
// object store directory.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		_ = db.Close()
		return nil, err
	}

	objects, err := NewLocalObjectStore(cfg.Files, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return newStorages(db, objects, log), nil
}

func newStorages(db *DB, objects ObjectStore, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:         NewUserRepository(db, log),
		ProfileRepository:      NewProfileRepository(db, log),
		ListRepository:         NewListRepository(db, log),
		EntryRepository:        NewEntryRepository(db, log),
		SharingRepository:      NewSharingRepository(db, log),
		MigrationJobRepository: NewMigrationJobRepository(db, log),
		ObjectStore:            objects,
		db:                     db,
	}
}

// Ping reports whether the database is reachable.
func (s *Storages) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("error pinging database: %w", err)
	}
	return nil
}

func (s *Storages) Close() error {
	return s.db.Close()
}
