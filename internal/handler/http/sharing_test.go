package http

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-list-keeper/internal/service"
	"github.com/MKhiriev/go-list-keeper/internal/store"
	"github.com/MKhiriev/go-list-keeper/internal/utils"
	"github.com/MKhiriev/go-list-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestShareList(t *testing.T) {
	m, router := newTestRouter(t)
	m.sharing.EXPECT().ShareList(gomock.Any(), int64(7)).Return(models.SharedList{ListID: 7, ShareCode: "abc123"}, nil)

	rr := serve(router, newAuthRequest(t, http.MethodPost, "/api/lists/7/share", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "abc123", decode[models.SharedList](t, rr).ShareCode)
}

func TestUnshareList(t *testing.T) {
	m, router := newTestRouter(t)
	m.sharing.EXPECT().UnshareList(gomock.Any(), int64(7)).Return(store.ErrShareNotFound)

	rr := serve(router, newAuthRequest(t, http.MethodDelete, "/api/lists/7/share", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetSharedList_IsPublic(t *testing.T) {
	m, router := newTestRouter(t)
	m.sharing.EXPECT().GetSharedList(gomock.Any(), "abc123").DoAndReturn(func(ctx context.Context, _ string) (models.SharedListView, error) {
		_, found := utils.GetUserIDFromContext(ctx)
		assert.False(t, found)
		return models.SharedListView{
			List:    models.List{ID: 7, Name: "Restaurants"},
			Entries: []models.Entry{{ID: 1, Name: "Pho 24"}},
			Owner:   models.Profile{DisplayName: "Alice"},
		}, nil
	})

	rr := serve(router, newRequest(t, http.MethodGet, "/api/shared/abc123", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	view := decode[models.SharedListView](t, rr)
	assert.Equal(t, "Restaurants", view.List.Name)
	assert.Equal(t, "Alice", view.Owner.DisplayName)
}

func TestSubscriptions(t *testing.T) {
	t.Run("subscribe", func(t *testing.T) {
		m, router := newTestRouter(t)
		m.sharing.EXPECT().Subscribe(gomock.Any(), int64(7)).
			Return(models.ListSubscription{ID: 1, ListID: 7, SubscriberID: testUserID}, nil)

		rr := serve(router, newAuthRequest(t, http.MethodPost, "/api/lists/7/subscription", nil))

		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, int64(7), decode[models.ListSubscription](t, rr).ListID)
	})

	t.Run("subscribe twice", func(t *testing.T) {
		m, router := newTestRouter(t)
		m.sharing.EXPECT().Subscribe(gomock.Any(), int64(7)).
			Return(models.ListSubscription{}, fmt.Errorf("%w: list 7", store.ErrAlreadySubscribed))

		rr := serve(router, newAuthRequest(t, http.MethodPost, "/api/lists/7/subscription", nil))
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("own list", func(t *testing.T) {
		m, router := newTestRouter(t)
		m.sharing.EXPECT().Subscribe(gomock.Any(), int64(7)).Return(models.ListSubscription{}, service.ErrSubscribeToOwnList)

		rr := serve(router, newAuthRequest(t, http.MethodPost, "/api/lists/7/subscription", nil))
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("unsubscribe", func(t *testing.T) {
		m, router := newTestRouter(t)
		m.sharing.EXPECT().Unsubscribe(gomock.Any(), int64(7)).Return(nil)

		rr := serve(router, newAuthRequest(t, http.MethodDelete, "/api/lists/7/subscription", nil))
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("list", func(t *testing.T) {
		m, router := newTestRouter(t)
		m.sharing.EXPECT().GetSubscriptions(gomock.Any()).Return([]models.ListSubscription{{ID: 1}, {ID: 2}}, nil)

		rr := serve(router, newAuthRequest(t, http.MethodGet, "/api/subscriptions", nil))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, decode[[]models.ListSubscription](t, rr), 2)
	})
}

func TestMigrationJobRoutes(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		m, router := newTestRouter(t)
		m.migrations.EXPECT().GetJob(gomock.Any(), int64(11)).
			Return(models.MigrationJob{ID: 11, ListID: 7, Status: models.MigrationFailed}, nil)

		rr := serve(router, newAuthRequest(t, http.MethodGet, "/api/migrations/11", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, models.MigrationFailed, decode[models.MigrationJob](t, rr).Status)
	})

	t.Run("resume", func(t *testing.T) {
		m, router := newTestRouter(t)
		m.migrations.EXPECT().ResumeMigration(gomock.Any(), int64(11)).
			Return(models.MigrationResult{Migrated: 3, JobID: 11}, nil)

		rr := serve(router, newAuthRequest(t, http.MethodPost, "/api/migrations/11/resume", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 3, decode[models.MigrationResult](t, rr).Migrated)
	})

	t.Run("resume fails again", func(t *testing.T) {
		m, router := newTestRouter(t)
		m.migrations.EXPECT().ResumeMigration(gomock.Any(), int64(11)).
			Return(models.MigrationResult{Migrated: 1, JobID: 11}, fmt.Errorf("%w: %w", service.ErrMigrationFailed, store.ErrExecutingStatement))

		rr := serve(router, newAuthRequest(t, http.MethodPost, "/api/migrations/11/resume", nil))

		require.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, 1, decode[migrationFailure](t, rr).Migration.Migrated)
	})

	t.Run("another user's job", func(t *testing.T) {
		m, router := newTestRouter(t)
		m.migrations.EXPECT().GetJob(gomock.Any(), int64(11)).Return(models.MigrationJob{}, service.ErrForbidden)

		rr := serve(router, newAuthRequest(t, http.MethodGet, "/api/migrations/11", nil))
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}
