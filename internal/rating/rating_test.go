package rating

import (
	"testing"

	"github.com/MKhiriev/go-list-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func TestCompute_Stars(t *testing.T) {
	got := Compute(models.RatingStars, models.RatingConfig{Max: 5}, ptr(3.5))

	assert.False(t, got.Unset)
	assert.Equal(t, 5.0, got.Max)
	require.NotNil(t, got.Value)
	assert.Equal(t, 3.5, *got.Value)
	assert.Equal(t, []models.StarFill{
		models.StarFull, models.StarFull, models.StarFull, models.StarHalf, models.StarEmpty,
	}, got.Stars)
	assert.Empty(t, got.Text)
}

func TestCompute_StarsUseDefaultMax(t *testing.T) {
	got := Compute(models.RatingStars, models.RatingConfig{}, ptr(1))

	assert.Equal(t, 5.0, got.Max)
	assert.Len(t, got.Stars, 5)
	assert.Equal(t, models.StarFull, got.Stars[0])
	assert.Equal(t, models.StarEmpty, got.Stars[1])
}

func TestCompute_StarCountIsCapped(t *testing.T) {
	got := Compute(models.RatingStars, models.RatingConfig{Max: 10}, ptr(10))
	assert.Len(t, got.Stars, MaxStars)

	got = Compute(models.RatingStars, models.RatingConfig{Max: 3}, ptr(2))
	assert.Equal(t, []models.StarFill{models.StarFull, models.StarFull, models.StarEmpty}, got.Stars)
}

func TestCompute_ZeroIsNotUnset(t *testing.T) {
	zero := Compute(models.RatingStars, models.RatingConfig{Max: 5}, ptr(0))
	unset := Compute(models.RatingStars, models.RatingConfig{Max: 5}, nil)

	assert.False(t, zero.Unset)
	assert.Equal(t, []models.StarFill{
		models.StarEmpty, models.StarEmpty, models.StarEmpty, models.StarEmpty, models.StarEmpty,
	}, zero.Stars)

	assert.True(t, unset.Unset)
	assert.Nil(t, unset.Value)
	assert.Nil(t, unset.Stars)
	assert.Equal(t, 5.0, unset.Max)
}

func TestCompute_PointsAndScale(t *testing.T) {
	tests := []struct {
		name       string
		ratingType models.RatingType
		cfg        models.RatingConfig
		rating     float64
		wantText   string
		wantMax    float64
	}{
		{"points default max", models.RatingPoints, models.RatingConfig{}, 85, "85 / 100", 100},
		{"points custom max", models.RatingPoints, models.RatingConfig{Max: 50}, 42.5, "42.5 / 50", 50},
		{"scale default max", models.RatingScale, models.RatingConfig{}, 7, "7 / 10", 10},
		{"scale zero", models.RatingScale, models.RatingConfig{Max: 10}, 0, "0 / 10", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.ratingType, tt.cfg, ptr(tt.rating))
			assert.Equal(t, tt.wantText, got.Text)
			assert.Equal(t, tt.wantMax, got.Max)
			assert.Nil(t, got.Stars)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		ratingType models.RatingType
		cfg        models.RatingConfig
		rating     *float64
		wantErr    error
	}{
		{"unset is valid", models.RatingStars, models.RatingConfig{}, nil, nil},
		{"within default stars max", models.RatingStars, models.RatingConfig{}, ptr(4.5), nil},
		{"above default stars max", models.RatingStars, models.RatingConfig{}, ptr(6), ErrRatingOutOfRange},
		{"negative", models.RatingPoints, models.RatingConfig{}, ptr(-1), ErrRatingOutOfRange},
		{"points at max", models.RatingPoints, models.RatingConfig{Max: 100}, ptr(100), nil},
		{"on step", models.RatingStars, models.RatingConfig{Max: 5, Step: 0.5}, ptr(3.5), nil},
		{"off step", models.RatingStars, models.RatingConfig{Max: 5, Step: 0.5}, ptr(3.3), ErrRatingOffStep},
		{"tenth step float noise", models.RatingScale, models.RatingConfig{Max: 10, Step: 0.1}, ptr(0.3), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.ratingType, tt.cfg, tt.rating)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateConfig(t *testing.T) {
	assert.NoError(t, ValidateConfig(models.RatingStars, models.RatingConfig{}))
	assert.NoError(t, ValidateConfig(models.RatingScale, models.RatingConfig{Max: 10, Step: 1}))
	assert.ErrorIs(t, ValidateConfig("emoji", models.RatingConfig{}), ErrUnknownRatingType)
	assert.ErrorIs(t, ValidateConfig(models.RatingPoints, models.RatingConfig{Max: -5}), ErrInvalidMax)
	assert.ErrorIs(t, ValidateConfig(models.RatingPoints, models.RatingConfig{Step: -1}), ErrInvalidStep)
}
