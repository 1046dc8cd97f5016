package models

// StarFill is the fill state of a single rendered star.
type StarFill string

const (
	StarFull  StarFill = "full"
	StarHalf  StarFill = "half"
	StarEmpty StarFill = "empty"
)

// RatingDisplay is the presentation-independent rendering of an entry rating.
type RatingDisplay struct {
	Type RatingType `json:"type"`

	// Unset is true when the entry has no rating. Unset is distinct from a
	// zero rating.
	Unset bool `json:"unset"`

	Value *float64 `json:"value,omitempty"`
	Max   float64  `json:"max"`

	// Stars is filled for the stars rating type only.
	Stars []StarFill `json:"stars,omitempty"`

	// Text is the verbatim value with its "/ max" suffix for points and
	// scale ratings.
	Text string `json:"text,omitempty"`
}
