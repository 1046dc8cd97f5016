package store

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-list-keeper/internal/config"
	"github.com/MKhiriev/go-list-keeper/internal/logger"
	"github.com/MKhiriev/go-list-keeper/internal/utils"
	"github.com/MKhiriev/go-list-keeper/models"
)

// localObjectStore keeps uploads under a directory that the HTTP server
// exposes at PublicBaseURL. Keys look like "<bucket>/<owner>/<uuid>.<ext>".
type localObjectStore struct {
	dir           string
	publicBaseURL string
	names         *utils.UUIDGenerator
	logger        *logger.Logger
}

func NewLocalObjectStore(cfg config.Files, logger *logger.Logger) (ObjectStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating object store dir %s: %w", cfg.Dir, err)
	}

	logger.Debug().Str("dir", cfg.Dir).Msg("creating local object store")
	return &localObjectStore{
		dir:           cfg.Dir,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		names:         utils.NewUUIDGenerator(),
		logger:        logger,
	}, nil
}

func (s *localObjectStore) Save(ctx context.Context, upload models.Upload) (models.StoredObject, error) {
	key := path.Join(upload.Bucket, strconv.FormatInt(upload.OwnerID, 10), s.names.ObjectName(upload.FileName))
	target := filepath.Join(s.dir, filepath.FromSlash(key))

	if err := ctx.Err(); err != nil {
		return models.StoredObject{}, err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return models.StoredObject{}, fmt.Errorf("%w: %s: %w", ErrObjectNotSaved, key, err)
	}
	if err := os.WriteFile(target, upload.Data, 0o644); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*localObjectStore.Save").Str("key", key).Msg("failed to write object")
		return models.StoredObject{}, fmt.Errorf("%w: %s: %w", ErrObjectNotSaved, key, err)
	}

	return models.StoredObject{
		Key:       key,
		PublicURL: s.publicBaseURL + "/" + key,
	}, nil
}

func (s *localObjectStore) Root() string {
	return s.dir
}
