// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package rating turns the single numeric rating of an entry into the
// representation declared by its list: a row of stars, points out of a
// maximum, or a position on a scale.
package rating

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/MKhiriev/go-list-keeper/models"
)

// MaxStars caps the number of rendered stars regardless of the configured max.
const MaxStars = 5

// stepTolerance absorbs float noise when checking step multiples.
const stepTolerance = 1e-9

var (
	ErrUnknownRatingType = errors.New("unknown rating type")
	ErrRatingOutOfRange  = errors.New("rating is out of range")
	ErrRatingOffStep     = errors.New("rating does not match configured step")
	ErrInvalidMax        = errors.New("rating max must be positive")
	ErrInvalidStep       = errors.New("rating step must not be negative")
)

// EffectiveMax returns cfg.Max or the default maximum of ratingType when no
// positive maximum is configured.
func EffectiveMax(ratingType models.RatingType, cfg models.RatingConfig) float64 {
	if cfg.Max > 0 {
		return cfg.Max
	}
	return ratingType.DefaultMax()
}

// Compute builds the display of rating for a list with the given rating
// type and config. A nil rating yields an unset display, which is distinct
// from a zero rating.
func Compute(ratingType models.RatingType, cfg models.RatingConfig, rating *float64) models.RatingDisplay {
	display := models.RatingDisplay{
		Type:  ratingType,
		Max:   EffectiveMax(ratingType, cfg),
		Unset: rating == nil,
	}
	if rating == nil {
		return display
	}

	value := *rating
	display.Value = &value

	switch ratingType {
	case models.RatingPoints, models.RatingScale:
		display.Text = formatNumber(value) + " / " + formatNumber(display.Max)
	default:
		display.Stars = Stars(value, display.Max)
	}

	return display
}

// Stars returns the fill of each star for rating. The number of stars is
// min(limit, MaxStars); star i is full when i+1 <= rating, half when
// i+0.5 <= rating and empty otherwise.
func Stars(rating, limit float64) []models.StarFill {
	count := int(math.Min(limit, MaxStars))
	if count < 0 {
		count = 0
	}

	stars := make([]models.StarFill, count)
	for i := range stars {
		switch idx := float64(i); {
		case idx+1 <= rating:
			stars[i] = models.StarFull
		case idx+0.5 <= rating:
			stars[i] = models.StarHalf
		default:
			stars[i] = models.StarEmpty
		}
	}
	return stars
}

// ValidateConfig checks the rating config of a list. A zero Max is accepted
// and means "use the default".
func ValidateConfig(ratingType models.RatingType, cfg models.RatingConfig) error {
	if !ratingType.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownRatingType, ratingType)
	}
	if cfg.Max < 0 || math.IsNaN(cfg.Max) || math.IsInf(cfg.Max, 0) {
		return ErrInvalidMax
	}
	if cfg.Step < 0 || math.IsNaN(cfg.Step) || math.IsInf(cfg.Step, 0) {
		return ErrInvalidStep
	}
	return nil
}

// Validate checks that rating lies within [0, max] and, when a positive
// step is configured, is a multiple of it. A nil rating is always valid.
func Validate(ratingType models.RatingType, cfg models.RatingConfig, rating *float64) error {
	if rating == nil {
		return nil
	}

	value := *rating
	limit := EffectiveMax(ratingType, cfg)
	if math.IsNaN(value) || value < 0 || value > limit {
		return fmt.Errorf("%w: %s not in [0, %s]", ErrRatingOutOfRange, formatNumber(value), formatNumber(limit))
	}

	if cfg.Step > 0 {
		steps := value / cfg.Step
		if math.Abs(steps-math.Round(steps)) > stepTolerance {
			return fmt.Errorf("%w: %s is not a multiple of %s", ErrRatingOffStep, formatNumber(value), formatNumber(cfg.Step))
		}
	}

	return nil
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
