// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Entry is one record within a list.
type Entry struct {
	ID     int64 `json:"id"`
	ListID int64 `json:"list_id"`
	UserID int64 `json:"user_id"`

	// Name is kept outside FieldValues; the reserved field id "1" is never
	// used as a FieldValues key.
	Name string `json:"name"`

	// Rating is interpreted through the owning list's rating type.
	// Nil means the entry is not rated yet, which is distinct from zero.
	Rating *float64 `json:"rating"`

	// FieldValues holds custom field values keyed by field id.
	FieldValues FieldValues `json:"field_values"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Entry model.
func (e Entry) TableName() string {
	return "entries"
}

// EntryUpdate is a partial update of an entry. Only non-nil fields are
// written; FieldValues replaces the whole mapping.
type EntryUpdate struct {
	ID     int64 `json:"-"`
	UserID int64 `json:"-"`

	Name   *string  `json:"name,omitempty"`
	Rating *float64 `json:"rating,omitempty"`

	// ClearRating resets the rating to unset. It wins over Rating.
	ClearRating bool `json:"clear_rating,omitempty"`

	FieldValues *FieldValues `json:"field_values,omitempty"`
}

// IsEmpty reports whether the update carries no fields.
func (u EntryUpdate) IsEmpty() bool {
	return u.Name == nil && u.Rating == nil && !u.ClearRating && u.FieldValues == nil
}

// Entry ordering columns accepted by [EntryFilter.OrderBy].
const (
	EntryOrderCreatedAt = "created_at"
	EntryOrderUpdatedAt = "updated_at"
	EntryOrderRating    = "rating"
	EntryOrderName      = "name"
)

// EntryFilter selects entries of one list.
type EntryFilter struct {
	ListID int64 `json:"list_id"`
	UserID int64 `json:"-"`

	// Search matches entry names case-insensitively.
	Search string `json:"search,omitempty"`

	// MinRating keeps only entries rated at least this value.
	MinRating *float64 `json:"min_rating,omitempty"`

	OrderBy    string `json:"order_by,omitempty"`
	Descending bool   `json:"descending,omitempty"`

	Limit  uint64 `json:"limit,omitempty"`
	Offset uint64 `json:"offset,omitempty"`
}
