// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// RatingType is the display interpretation applied to the numeric rating of
// every entry of a list.
type RatingType string

const (
	RatingStars  RatingType = "stars"
	RatingPoints RatingType = "points"
	RatingScale  RatingType = "scale"
)

// IsValid reports whether r is a supported rating type.
func (r RatingType) IsValid() bool {
	switch r {
	case RatingStars, RatingPoints, RatingScale:
		return true
	default:
		return false
	}
}

// DefaultMax returns the rating maximum used when a list does not configure one.
func (r RatingType) DefaultMax() float64 {
	switch r {
	case RatingPoints:
		return 100
	case RatingScale:
		return 10
	default:
		return 5
	}
}

// RatingConfig bounds the ratings of a list. Step is optional.
type RatingConfig struct {
	Max  float64 `json:"max"`
	Step float64 `json:"step,omitempty"`
}

// Value implements [driver.Valuer].
func (c RatingConfig) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements [sql.Scanner].
func (c *RatingConfig) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*c = RatingConfig{}
		return nil
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("%w: rating config from %T", errUnsupportedScanType, src)
	}
}

// List is a user-owned collection of entries sharing one field schema and
// one rating type.
type List struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`

	Name string `json:"name"`

	RatingType   RatingType   `json:"rating_type"`
	RatingConfig RatingConfig `json:"rating_config"`

	// FieldDefinitions is the list schema. Schema changes go through the
	// migration engine before they are persisted.
	FieldDefinitions FieldDefinitions `json:"field_definitions"`

	// Icon is either an emoji or a public URL of an uploaded icon.
	Icon string `json:"icon"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectiveMax returns the configured rating maximum or the type default.
func (l List) EffectiveMax() float64 {
	if l.RatingConfig.Max > 0 {
		return l.RatingConfig.Max
	}
	return l.RatingType.DefaultMax()
}

// TableName returns the name of the database table
// associated with the List model.
func (l List) TableName() string {
	return "lists"
}

// ListUpdate is a partial update of list metadata. Only non-nil fields are
// written. The schema is changed through [ListFieldsUpdate] instead.
type ListUpdate struct {
	ID     int64 `json:"-"`
	UserID int64 `json:"-"`

	Name         *string       `json:"name,omitempty"`
	Icon         *string       `json:"icon,omitempty"`
	RatingType   *RatingType   `json:"rating_type,omitempty"`
	RatingConfig *RatingConfig `json:"rating_config,omitempty"`
}

// IsEmpty reports whether the update carries no fields.
func (u ListUpdate) IsEmpty() bool {
	return u.Name == nil && u.Icon == nil && u.RatingType == nil && u.RatingConfig == nil
}

// ListFieldsUpdate replaces the schema of a list.
type ListFieldsUpdate struct {
	ListID int64 `json:"-"`
	UserID int64 `json:"-"`

	FieldDefinitions FieldDefinitions `json:"field_definitions"`
}
