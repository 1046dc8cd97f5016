package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-list-keeper/internal/service"
	"github.com/MKhiriev/go-list-keeper/internal/store"
	"github.com/MKhiriev/go-list-keeper/internal/validators"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", fmt.Errorf("%w: %w", service.ErrValidation, validators.ErrEmptyEntryName), http.StatusBadRequest},
		{"bad path param", fmt.Errorf("%w: listID=\"x\"", ErrInvalidPathParam), http.StatusBadRequest},
		{"no user", service.ErrNoUserID, http.StatusUnauthorized},
		{"forbidden", service.ErrForbidden, http.StatusForbidden},
		{"wrapped not found", fmt.Errorf("get list: %w", store.ErrListNotFound), http.StatusNotFound},
		{"conflict", store.ErrShareCodeTaken, http.StatusConflict},
		{"upload wins over storage", fmt.Errorf("%w: %w", service.ErrUploadFailed, store.ErrObjectNotSaved), http.StatusBadGateway},
		{"validation wins over migration", fmt.Errorf("%w: %w", service.ErrMigrationFailed, service.ErrValidation), http.StatusBadRequest},
		{"database", store.ErrExecutingQuery, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}
