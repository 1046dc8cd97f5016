package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrVersionIsNotSpecified = errors.New("application version is not specified")

	// ErrValidation wraps every validators error so that transports can map
	// them to one status.
	ErrValidation = errors.New("validation failed")

	ErrNoUserID        = errors.New("no user ID in context")
	ErrListIDRequired  = errors.New("list ID is required")
	ErrEntryIDRequired = errors.New("entry ID is required")
	ErrJobIDRequired   = errors.New("migration job ID is required")
	ErrShareCodeEmpty  = errors.New("share code is required")

	ErrForbidden = errors.New("access to another user's data is forbidden")

	ErrUploadFailed    = errors.New("upload failed")
	ErrMigrationFailed = errors.New("migration failed")

	ErrSubscribeToOwnList = errors.New("cannot subscribe to own list")
)
