package store

import "errors"

// Domain errors. Callers match them with [errors.Is].
var (
	ErrLoginAlreadyExists = errors.New("login already exists")
	ErrNoUserWasFound     = errors.New("no user was found")

	ErrProfileNotFound = errors.New("profile was not found")

	ErrListNotFound  = errors.New("list was not found")
	ErrEntryNotFound = errors.New("entry was not found")

	// ErrListAlreadyShared is returned when a list already has a share code.
	ErrListAlreadyShared    = errors.New("list is already shared")
	ErrShareCodeTaken       = errors.New("share code is already taken")
	ErrShareNotFound        = errors.New("shared list was not found")
	ErrAlreadySubscribed    = errors.New("already subscribed to list")
	ErrSubscriptionNotFound = errors.New("subscription was not found")

	ErrMigrationJobNotFound = errors.New("migration job was not found")

	// ErrMigrationInProgress is returned when a list already has an
	// unfinished migration job, or when a job is picked up twice.
	ErrMigrationInProgress = errors.New("migration is already in progress for list")

	ErrObjectNotSaved = errors.New("object was not saved")
)

// Low-level database errors, wrapped together with the driver error.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrExecutingStatement   = errors.New("failed to execute statement")
	ErrScanningRow          = errors.New("failed to scan row")
	ErrScanningRows         = errors.New("failed to scan rows")
)
