// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package render formats lists, entries and ratings for the terminal client.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-list-keeper/internal/rating"
	"github.com/MKhiriev/go-list-keeper/models"
	"github.com/charmbracelet/lipgloss"
)

const (
	starFullGlyph  = "★"
	starHalfGlyph  = "⯪"
	starEmptyGlyph = "☆"
	nullGlyph      = "-"
	notRated       = "not rated"
)

// Rating renders a computed rating display.
func (t *Theme) Rating(d models.RatingDisplay) string {
	if d.Unset {
		return t.muted.Render(notRated)
	}
	if d.Text == "" {
		var b strings.Builder
		for _, fill := range d.Stars {
			switch fill {
			case models.StarFull:
				b.WriteString(t.starFull.Render(starFullGlyph))
			case models.StarHalf:
				b.WriteString(t.starHalf.Render(starHalfGlyph))
			default:
				b.WriteString(t.starEmpty.Render(starEmptyGlyph))
			}
		}
		return b.String()
	}
	return t.score.Render(d.Text)
}

// FieldValue renders one stored value according to its field definition.
func (t *Theme) FieldValue(def models.FieldDefinition, v models.FieldValue) string {
	text, ok := formatValue(def, v)
	if !ok {
		return t.muted.Render(nullGlyph)
	}
	return t.value.Render(text)
}

func formatValue(def models.FieldDefinition, v models.FieldValue) (string, bool) {
	if v.IsNull() {
		return "", false
	}

	if items, ok := v.List(); ok {
		if len(items) == 0 {
			return "", false
		}
		return strings.Join(items, ", "), true
	}

	if n, ok := v.Number(); ok {
		text := strconv.FormatFloat(n, 'f', -1, 64)
		if def.Type == models.FieldTypeRating && def.RatingConfig != nil && def.RatingConfig.Max > 0 {
			text += " / " + strconv.FormatFloat(def.RatingConfig.Max, 'f', -1, 64)
		}
		return text, true
	}

	s, _ := v.Str()
	switch def.Type {
	case models.FieldTypeYesNo:
		if s == models.YesValue {
			return "Yes", true
		}
		return "No", true
	case models.FieldTypeDate:
		if ts, err := time.Parse(time.RFC3339, s); err == nil {
			return ts.Format(time.DateOnly), true
		}
	}
	return s, true
}

// ListLine is the one-line summary used in list overviews.
func (t *Theme) ListLine(list models.List) string {
	icon := list.Icon
	if strings.HasPrefix(icon, "http://") || strings.HasPrefix(icon, "https://") || icon == "" {
		icon = "•"
	}
	return fmt.Sprintf("%s %s %s %s",
		icon,
		t.title.Render(list.Name),
		t.muted.Render(fmt.Sprintf("#%d", list.ID)),
		t.label.Render(fmt.Sprintf("(%s, %d fields)", list.RatingType, len(list.FieldDefinitions.Custom()))),
	)
}

// Lists renders a list overview, one list per line.
func (t *Theme) Lists(lists []models.List) string {
	if len(lists) == 0 {
		return t.muted.Render("no lists yet")
	}
	lines := make([]string, 0, len(lists))
	for _, list := range lists {
		lines = append(lines, t.ListLine(list))
	}
	return strings.Join(lines, "\n")
}

// EntryCard renders an entry with its rating and custom fields in a box.
// Fields follow the display order of the list schema.
func (t *Theme) EntryCard(list models.List, entry models.Entry) string {
	display := rating.Compute(list.RatingType, list.RatingConfig, entry.Rating)

	rows := []string{
		t.title.Render(entry.Name) + "  " + t.Rating(display),
	}
	for _, def := range list.FieldDefinitions.Custom() {
		rows = append(rows, t.label.Render(def.Name+":")+" "+t.FieldValue(def, entry.FieldValues[def.ID]))
	}

	return t.card.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// Entries renders every entry of a list under the list header.
func (t *Theme) Entries(list models.List, entries []models.Entry) string {
	blocks := []string{t.ListLine(list)}
	if len(entries) == 0 {
		blocks = append(blocks, t.muted.Render("no entries yet"))
	}
	for _, entry := range entries {
		blocks = append(blocks, t.EntryCard(list, entry))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

// SharedList renders a public view of another user's list.
func (t *Theme) SharedList(view models.SharedListView) string {
	owner := view.Owner.DisplayName
	if owner == "" {
		owner = "unknown"
	}
	header := t.muted.Render("shared by " + owner)
	return lipgloss.JoinVertical(lipgloss.Left, header, t.Entries(view.List, view.Entries))
}

// Error renders a failure message.
func (t *Theme) Error(err error) string {
	return t.errorText.Render("error: ") + err.Error()
}
