package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/MKhiriev/go-list-keeper/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

// plainTheme renders without escape codes because its output is not a TTY.
func plainTheme() *Theme {
	return NewTheme(lipgloss.NewRenderer(&bytes.Buffer{}))
}

func ptr[T any](v T) *T { return &v }

func TestTheme_Rating(t *testing.T) {
	theme := plainTheme()

	tests := []struct {
		name    string
		display models.RatingDisplay
		want    string
	}{
		{
			name:    "unset",
			display: models.RatingDisplay{Type: models.RatingStars, Unset: true, Max: 5},
			want:    notRated,
		},
		{
			name: "stars",
			display: models.RatingDisplay{
				Type:  models.RatingStars,
				Value: ptr(3.5),
				Max:   5,
				Stars: []models.StarFill{models.StarFull, models.StarFull, models.StarFull, models.StarHalf, models.StarEmpty},
			},
			want: "★★★⯪☆",
		},
		{
			name:    "points",
			display: models.RatingDisplay{Type: models.RatingPoints, Value: ptr(87.0), Max: 100, Text: "87 / 100"},
			want:    "87 / 100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, theme.Rating(tt.display))
		})
	}
}

func TestTheme_FieldValue(t *testing.T) {
	theme := plainTheme()

	tests := []struct {
		name  string
		def   models.FieldDefinition
		value models.FieldValue
		want  string
	}{
		{"null", models.FieldDefinition{Type: models.FieldTypeText}, models.NullValue(), nullGlyph},
		{"text", models.FieldDefinition{Type: models.FieldTypeText}, models.StringValue("Thai"), "Thai"},
		{"number", models.FieldDefinition{Type: models.FieldTypeNumber}, models.NumberValue(12.5), "12.5"},
		{"yes", models.FieldDefinition{Type: models.FieldTypeYesNo}, models.StringValue("yes"), "Yes"},
		{"no", models.FieldDefinition{Type: models.FieldTypeYesNo}, models.StringValue("no"), "No"},
		{"date", models.FieldDefinition{Type: models.FieldTypeDate}, models.StringValue("2024-03-01T10:00:00Z"), "2024-03-01"},
		{"free-form date", models.FieldDefinition{Type: models.FieldTypeDate}, models.StringValue("last spring"), "last spring"},
		{"multi-select", models.FieldDefinition{Type: models.FieldTypeMultiSelect}, models.ListValue("A", "B"), "A, B"},
		{"empty multi-select", models.FieldDefinition{Type: models.FieldTypeMultiSelect}, models.ListValue(), nullGlyph},
		{
			"rating field",
			models.FieldDefinition{Type: models.FieldTypeRating, RatingConfig: &models.FieldRatingConfig{Max: 10}},
			models.NumberValue(7),
			"7 / 10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, theme.FieldValue(tt.def, tt.value))
		})
	}
}

func TestTheme_EntryCard(t *testing.T) {
	theme := plainTheme()
	list := models.List{
		ID:         7,
		Name:       "Restaurants",
		RatingType: models.RatingStars,
		FieldDefinitions: models.FieldDefinitions{
			{ID: models.NameFieldID, Name: "Name", Type: models.FieldTypeText, Order: 0},
			{ID: "3", Name: "Price", Type: models.FieldTypeNumber, Order: 2},
			{ID: "2", Name: "Cuisine", Type: models.FieldTypeText, Order: 1},
		},
	}
	entry := models.Entry{
		ID:          1,
		ListID:      7,
		Name:        "Pho Bar",
		Rating:      ptr(4.0),
		FieldValues: models.FieldValues{"2": models.StringValue("Vietnamese")},
	}

	card := theme.EntryCard(list, entry)

	assert.Contains(t, card, "Pho Bar")
	assert.Contains(t, card, "★★★★☆")
	assert.Contains(t, card, "Cuisine: Vietnamese")
	assert.Contains(t, card, "Price: -")
	assert.NotContains(t, card, "Name:")
	assert.Less(t, strings.Index(card, "Cuisine"), strings.Index(card, "Price"))
}

func TestTheme_EntryCardUnrated(t *testing.T) {
	theme := plainTheme()
	list := models.List{Name: "Films", RatingType: models.RatingScale}

	assert.Contains(t, theme.EntryCard(list, models.Entry{Name: "Heat"}), notRated)
}

func TestTheme_Lists(t *testing.T) {
	theme := plainTheme()

	assert.Equal(t, "no lists yet", theme.Lists(nil))

	out := theme.Lists([]models.List{
		{ID: 1, Name: "Books", Icon: "📚", RatingType: models.RatingStars},
		{ID: 2, Name: "Wines", Icon: "https://cdn.example.com/icons/wine.png", RatingType: models.RatingPoints},
	})

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "📚 Books #1 (stars, 0 fields)", lines[0])
	assert.Equal(t, "• Wines #2 (points, 0 fields)", lines[1])
}

func TestTheme_SharedList(t *testing.T) {
	theme := plainTheme()
	view := models.SharedListView{
		List:    models.List{ID: 3, Name: "Coffee", RatingType: models.RatingPoints},
		Entries: []models.Entry{{Name: "Flat white", Rating: ptr(90.0)}},
		Owner:   models.Profile{DisplayName: "Ana"},
	}

	out := theme.SharedList(view)

	assert.Contains(t, out, "shared by Ana")
	assert.Contains(t, out, "Flat white")
	assert.Contains(t, out, "90 / 100")
}

func TestTheme_Error(t *testing.T) {
	assert.Equal(t, "error: boom", plainTheme().Error(errors.New("boom")))
}
