// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fields

import (
	"testing"

	"github.com/MKhiriev/go-list-keeper/models"
	"github.com/stretchr/testify/assert"
)

func TestConvertValue(t *testing.T) {
	tests := []struct {
		name  string
		value models.FieldValue
		from  models.FieldType
		to    models.FieldType
		want  models.FieldValue
	}{
		{"null stays null", models.NullValue(), models.FieldTypeText, models.FieldTypeNumber, models.NullValue()},
		{"null dropdown to multi-select", models.NullValue(), models.FieldTypeDropdown, models.FieldTypeMultiSelect, models.NullValue()},

		{"text to number", models.StringValue("12.5"), models.FieldTypeText, models.FieldTypeNumber, models.NumberValue(12.5)},
		{"text to number with spaces", models.StringValue(" 7 "), models.FieldTypeText, models.FieldTypeNumber, models.NumberValue(7)},
		{"text to number unparseable", models.StringValue("twelve"), models.FieldTypeText, models.FieldTypeNumber, models.NullValue()},
		{"text to number NaN", models.StringValue("NaN"), models.FieldTypeText, models.FieldTypeNumber, models.NullValue()},

		{"text yes to yes-no", models.StringValue("yes"), models.FieldTypeText, models.FieldTypeYesNo, models.StringValue("yes")},
		{"text TRUE to yes-no", models.StringValue("TRUE"), models.FieldTypeText, models.FieldTypeYesNo, models.StringValue("yes")},
		{"text 1 to yes-no", models.StringValue("1"), models.FieldTypeText, models.FieldTypeYesNo, models.StringValue("yes")},
		{"text No to yes-no", models.StringValue("No"), models.FieldTypeText, models.FieldTypeYesNo, models.StringValue("no")},
		{"text false to yes-no", models.StringValue("false"), models.FieldTypeText, models.FieldTypeYesNo, models.StringValue("no")},
		{"text 0 to yes-no", models.StringValue("0"), models.FieldTypeText, models.FieldTypeYesNo, models.StringValue("no")},
		{"text nope to yes-no", models.StringValue("nope"), models.FieldTypeText, models.FieldTypeYesNo, models.NullValue()},

		{"text to dropdown passes through", models.StringValue("Thai"), models.FieldTypeText, models.FieldTypeDropdown, models.StringValue("Thai")},
		{"text to multi-select passes through", models.StringValue("Thai"), models.FieldTypeText, models.FieldTypeMultiSelect, models.StringValue("Thai")},
		{"text to date", models.StringValue("2024-01-01"), models.FieldTypeText, models.FieldTypeDate, models.NullValue()},
		{"text to rating", models.StringValue("4"), models.FieldTypeText, models.FieldTypeRating, models.NullValue()},

		{"number to text", models.NumberValue(42), models.FieldTypeNumber, models.FieldTypeText, models.StringValue("42")},
		{"fractional number to text", models.NumberValue(3.25), models.FieldTypeNumber, models.FieldTypeText, models.StringValue("3.25")},
		{"number to yes-no", models.NumberValue(1), models.FieldTypeNumber, models.FieldTypeYesNo, models.NullValue()},

		{"yes to text", models.StringValue("yes"), models.FieldTypeYesNo, models.FieldTypeText, models.StringValue("Yes")},
		{"no to text", models.StringValue("no"), models.FieldTypeYesNo, models.FieldTypeText, models.StringValue("No")},
		{"other answer to text", models.StringValue("maybe"), models.FieldTypeYesNo, models.FieldTypeText, models.StringValue("No")},

		{"date to text", models.StringValue("2024-03-01T00:00:00Z"), models.FieldTypeDate, models.FieldTypeText, models.StringValue("2024-03-01T00:00:00Z")},
		{"date to number", models.StringValue("2024-03-01"), models.FieldTypeDate, models.FieldTypeNumber, models.NullValue()},

		{"dropdown to multi-select", models.StringValue("A"), models.FieldTypeDropdown, models.FieldTypeMultiSelect, models.ListValue("A")},
		{"dropdown to text", models.StringValue("A"), models.FieldTypeDropdown, models.FieldTypeText, models.NullValue()},

		{"multi-select to dropdown", models.ListValue("B", "C"), models.FieldTypeMultiSelect, models.FieldTypeDropdown, models.StringValue("B")},
		{"multi-select scalar to dropdown", models.StringValue("B"), models.FieldTypeMultiSelect, models.FieldTypeDropdown, models.StringValue("B")},
		{"empty multi-select to dropdown", models.ListValue(), models.FieldTypeMultiSelect, models.FieldTypeDropdown, models.NullValue()},
		{"multi-select to text", models.ListValue("A"), models.FieldTypeMultiSelect, models.FieldTypeText, models.NullValue()},

		{"rating to number", models.NumberValue(4), models.FieldTypeRating, models.FieldTypeNumber, models.NullValue()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertValue(tt.value, tt.from, tt.to)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertValue_IsPure(t *testing.T) {
	input := models.ListValue("A", "B")

	first := ConvertValue(input, models.FieldTypeMultiSelect, models.FieldTypeDropdown)
	second := ConvertValue(input, models.FieldTypeMultiSelect, models.FieldTypeDropdown)

	assert.Equal(t, first, second)
	assert.Equal(t, models.ListValue("A", "B"), input, "input must not be modified")
}

func TestConvertValue_DropdownRoundTripIsNotGuaranteed(t *testing.T) {
	multi := ConvertValue(models.StringValue("A"), models.FieldTypeDropdown, models.FieldTypeMultiSelect)
	items, ok := multi.List()
	assert.True(t, ok)
	assert.Equal(t, []string{"A"}, items)

	back := ConvertValue(multi, models.FieldTypeMultiSelect, models.FieldTypeDropdown)
	assert.Equal(t, models.StringValue("A"), back)

	multiWithMore := models.ListValue("B", "A")
	assert.Equal(t, models.StringValue("B"), ConvertValue(multiWithMore, models.FieldTypeMultiSelect, models.FieldTypeDropdown))
}
