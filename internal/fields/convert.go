package fields

import (
	"math"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-list-keeper/models"
)

var (
	truthyAnswers = []string{"yes", "true", "1"}
	falsyAnswers  = []string{"no", "false", "0"}
)

// ConvertValue converts a stored value from one field type to another.
//
// The policy is lossy and one-directional: pairings that have no rule yield
// null instead of an error, and converting back does not have to restore the
// original value.
func ConvertValue(value models.FieldValue, from, to models.FieldType) models.FieldValue {
	if value.IsNull() {
		return models.NullValue()
	}

	switch from {
	case models.FieldTypeText:
		return convertText(value, to)

	case models.FieldTypeNumber:
		if to == models.FieldTypeText {
			if n, ok := value.Number(); ok {
				return models.StringValue(strconv.FormatFloat(n, 'f', -1, 64))
			}
		}

	case models.FieldTypeYesNo:
		if to == models.FieldTypeText {
			if s, _ := value.Str(); s == models.YesValue {
				return models.StringValue("Yes")
			}
			return models.StringValue("No")
		}

	case models.FieldTypeDate:
		if to == models.FieldTypeText {
			return value
		}

	case models.FieldTypeDropdown:
		if to == models.FieldTypeMultiSelect {
			if s, ok := value.Str(); ok {
				return models.ListValue(s)
			}
		}

	case models.FieldTypeMultiSelect:
		if to == models.FieldTypeDropdown {
			items, ok := value.List()
			if !ok {
				return value
			}
			if len(items) == 0 {
				return models.NullValue()
			}
			return models.StringValue(items[0])
		}
	}

	return models.NullValue()
}

func convertText(value models.FieldValue, to models.FieldType) models.FieldValue {
	switch to {
	case models.FieldTypeNumber:
		s, ok := value.Str()
		if !ok {
			return models.NullValue()
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return models.NullValue()
		}
		return models.NumberValue(n)

	case models.FieldTypeYesNo:
		s, ok := value.Str()
		if !ok {
			return models.NullValue()
		}
		answer := strings.ToLower(strings.TrimSpace(s))
		for _, yes := range truthyAnswers {
			if answer == yes {
				return models.StringValue(models.YesValue)
			}
		}
		for _, no := range falsyAnswers {
			if answer == no {
				return models.StringValue(models.NoValue)
			}
		}
		return models.NullValue()

	case models.FieldTypeDropdown, models.FieldTypeMultiSelect:
		return value
	}

	return models.NullValue()
}
