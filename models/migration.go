// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// MigrationStatus is the lifecycle state of a [MigrationJob].
type MigrationStatus string

const (
	MigrationPending   MigrationStatus = "pending"
	MigrationRunning   MigrationStatus = "running"
	MigrationCompleted MigrationStatus = "completed"
	MigrationFailed    MigrationStatus = "failed"
)

// IsFinished reports whether the job will not make progress on its own.
func (s MigrationStatus) IsFinished() bool {
	return s == MigrationCompleted || s == MigrationFailed
}

// MigrationJob rewrites the field values of every entry of a list after a
// breaking schema change.
//
// Entries are processed in ascending id order. Cursor is the id of the last
// successfully migrated entry, so a failed job resumes right after it.
type MigrationJob struct {
	ID     int64 `json:"id"`
	ListID int64 `json:"list_id"`
	UserID int64 `json:"user_id"`

	Status MigrationStatus `json:"status"`

	OldFields FieldDefinitions `json:"old_fields"`
	NewFields FieldDefinitions `json:"new_fields"`

	// SchemaFingerprint identifies NewFields; a job for the same list and
	// fingerprint is reused instead of started twice.
	SchemaFingerprint string `json:"schema_fingerprint"`

	Cursor   int64 `json:"cursor"`
	Migrated int   `json:"migrated"`
	Attempts int   `json:"attempts"`

	LastError string `json:"last_error,omitempty"`

	// Retryable is false when the last failure cannot go away on its own,
	// e.g. a constraint violation. The resume worker skips such jobs.
	Retryable bool `json:"retryable"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the MigrationJob model.
func (j MigrationJob) TableName() string {
	return "migration_jobs"
}

// MigrationProgress is written after every migrated entry.
type MigrationProgress struct {
	JobID     int64
	Status    MigrationStatus
	Cursor    int64
	Migrated  int
	LastError string
	Retryable bool
}

// MigrationResult is reported to callers of a schema change.
type MigrationResult struct {
	// Migrated is the number of entries rewritten by this run (0 if skipped).
	Migrated int `json:"migrated"`

	Changes []FieldChange `json:"changes"`

	// JobID is zero when no migration was necessary.
	JobID int64 `json:"job_id,omitempty"`
}

// SchemaUpdate is the outcome of replacing the schema of a list.
type SchemaUpdate struct {
	List      List            `json:"list"`
	Migration MigrationResult `json:"migration"`
}
