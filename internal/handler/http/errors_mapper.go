package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-list-keeper/internal/service"
	"github.com/MKhiriev/go-list-keeper/internal/store"
)

var errorStatusMap = map[error]int{
	ErrInvalidPathParam:  http.StatusBadRequest,
	ErrInvalidQueryParam: http.StatusBadRequest,
	ErrInvalidUpload:     http.StatusBadRequest,

	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrValidation:              http.StatusBadRequest,
	service.ErrListIDRequired:          http.StatusBadRequest,
	service.ErrEntryIDRequired:         http.StatusBadRequest,
	service.ErrJobIDRequired:           http.StatusBadRequest,
	service.ErrShareCodeEmpty:          http.StatusBadRequest,
	service.ErrSubscribeToOwnList:      http.StatusConflict,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrNoUserID:                http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrForbidden:               http.StatusForbidden,
	service.ErrUploadFailed:            http.StatusBadGateway,
	service.ErrMigrationFailed:         http.StatusInternalServerError,

	store.ErrLoginAlreadyExists:   http.StatusConflict,
	store.ErrNoUserWasFound:       http.StatusNotFound,
	store.ErrProfileNotFound:      http.StatusNotFound,
	store.ErrListNotFound:         http.StatusNotFound,
	store.ErrEntryNotFound:        http.StatusNotFound,
	store.ErrShareNotFound:        http.StatusNotFound,
	store.ErrSubscriptionNotFound: http.StatusNotFound,
	store.ErrMigrationJobNotFound: http.StatusNotFound,
	store.ErrListAlreadyShared:    http.StatusConflict,
	store.ErrShareCodeTaken:       http.StatusConflict,
	store.ErrAlreadySubscribed:    http.StatusConflict,
	store.ErrMigrationInProgress:  http.StatusConflict,
	store.ErrObjectNotSaved:       http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

// errorPriority resolves errors that wrap several mapped sentinels. A
// validation failure inside a migration, for example, is still a 400.
var errorPriority = []error{
	service.ErrValidation,
	service.ErrForbidden,
	service.ErrUploadFailed,
}

func statusFromError(err error) int {
	for _, target := range errorPriority {
		if errors.Is(err, target) {
			return errorStatusMap[target]
		}
	}
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
