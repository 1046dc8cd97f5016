package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MKhiriev/go-list-keeper/internal/config"
	"github.com/MKhiriev/go-list-keeper/internal/logger"
	"github.com/MKhiriev/go-list-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalObjectStore_Save(t *testing.T) {
	dir := t.TempDir()
	objects, err := NewLocalObjectStore(config.Files{Dir: dir, PublicBaseURL: "http://localhost:8080/files/"}, logger.Nop())
	require.NoError(t, err)

	stored, err := objects.Save(testContext(), models.Upload{
		Bucket:   "icons",
		OwnerID:  7,
		FileName: "Ramen.PNG",
		Data:     []byte("png-bytes"),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stored.Key, "icons/7/"))
	assert.True(t, strings.HasSuffix(stored.Key, ".png"))
	assert.Equal(t, "http://localhost:8080/files/"+stored.Key, stored.PublicURL)

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(stored.Key)))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
	assert.Equal(t, dir, objects.Root())
}

func TestLocalObjectStore_UniqueKeys(t *testing.T) {
	objects, err := NewLocalObjectStore(config.Files{Dir: t.TempDir()}, logger.Nop())
	require.NoError(t, err)

	upload := models.Upload{Bucket: "avatars", OwnerID: 1, FileName: "me.jpg", Data: []byte("x")}
	first, err := objects.Save(testContext(), upload)
	require.NoError(t, err)
	second, err := objects.Save(testContext(), upload)
	require.NoError(t, err)

	assert.NotEqual(t, first.Key, second.Key)
}

func TestLocalObjectStore_CancelledContext(t *testing.T) {
	objects, err := NewLocalObjectStore(config.Files{Dir: t.TempDir()}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(testContext())
	cancel()

	_, err = objects.Save(ctx, models.Upload{Bucket: "icons", OwnerID: 1, FileName: "a.png"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalObjectStore_UnwritableDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "icons")
	require.NoError(t, os.WriteFile(blocker, []byte("not a dir"), 0o644))

	objects, err := NewLocalObjectStore(config.Files{Dir: dir}, logger.Nop())
	require.NoError(t, err)

	_, err = objects.Save(testContext(), models.Upload{Bucket: "icons", OwnerID: 1, FileName: "a.png"})
	assert.ErrorIs(t, err, ErrObjectNotSaved)
}
