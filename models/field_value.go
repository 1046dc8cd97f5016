// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// ValueKind tags the representation held by a [FieldValue].
type ValueKind uint8

const (
	// KindNull is an empty value.
	KindNull ValueKind = iota
	// KindString holds text, dates (ISO strings), dropdown choices and
	// yes-no answers ("yes"/"no").
	KindString
	// KindNumber holds numbers and rating field values.
	KindNumber
	// KindList holds multi-select choices.
	KindList
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindList:
		return "list"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ErrInvalidFieldValue is returned when JSON input cannot be represented as a
// [FieldValue] (objects, nested arrays, arrays of non-strings).
var ErrInvalidFieldValue = errors.New("invalid field value")

// FieldValue is a tagged variant holding the value of one custom field.
//
// The zero value is null. Which kinds are acceptable for a field is decided
// by its [FieldType]; see [FieldValue.ConformsTo].
type FieldValue struct {
	kind   ValueKind
	str    string
	number float64
	list   []string
}

// NullValue returns an empty value.
func NullValue() FieldValue { return FieldValue{} }

// StringValue wraps s.
func StringValue(s string) FieldValue { return FieldValue{kind: KindString, str: s} }

// NumberValue wraps n.
func NumberValue(n float64) FieldValue { return FieldValue{kind: KindNumber, number: n} }

// ListValue wraps a copy of items.
func ListValue(items ...string) FieldValue {
	return FieldValue{kind: KindList, list: append([]string{}, items...)}
}

// Kind returns the tag of the value.
func (v FieldValue) Kind() ValueKind { return v.kind }

// IsNull reports whether the value is empty.
func (v FieldValue) IsNull() bool { return v.kind == KindNull }

// Str returns the string payload.
func (v FieldValue) Str() (string, bool) { return v.str, v.kind == KindString }

// Number returns the numeric payload.
func (v FieldValue) Number() (float64, bool) { return v.number, v.kind == KindNumber }

// List returns a copy of the list payload.
func (v FieldValue) List() ([]string, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return slices.Clone(v.list), true
}

// Equal reports whether both values have the same kind and payload.
func (v FieldValue) Equal(other FieldValue) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.number == other.number
	case KindList:
		return slices.Equal(v.list, other.list)
	default:
		return true
	}
}

// MarshalJSON encodes the value as a plain JSON null, string, number or
// array of strings.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.number)
	case KindList:
		return json.Marshal(v.list)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a plain JSON value. Booleans are accepted and stored
// as yes-no answers.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*v = NullValue()
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = StringValue(s)
	case '[':
		var raw []*string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidFieldValue, err)
		}
		items := make([]string, len(raw))
		for i, item := range raw {
			if item == nil {
				return fmt.Errorf("%w: null at position %d of a list", ErrInvalidFieldValue, i)
			}
			items[i] = *item
		}
		*v = ListValue(items...)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return err
		}
		if b {
			*v = StringValue(YesValue)
		} else {
			*v = StringValue(NoValue)
		}
	case '{':
		return fmt.Errorf("%w: objects are not supported", ErrInvalidFieldValue)
	default:
		var n float64
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidFieldValue, err)
		}
		*v = NumberValue(n)
	}

	return nil
}

// Canonical yes-no answers.
const (
	YesValue = "yes"
	NoValue  = "no"
)

// ConformsTo reports whether the value kind is acceptable for fields of type t.
// Null always conforms; whether a null is allowed is decided by
// [FieldDefinition.Required].
func (v FieldValue) ConformsTo(t FieldType) bool {
	if v.IsNull() {
		return true
	}

	switch t {
	case FieldTypeText, FieldTypeDate, FieldTypeDropdown:
		return v.kind == KindString
	case FieldTypeYesNo:
		return v.kind == KindString && (v.str == YesValue || v.str == NoValue)
	case FieldTypeNumber, FieldTypeRating:
		return v.kind == KindNumber
	case FieldTypeMultiSelect:
		return v.kind == KindList
	default:
		return false
	}
}

// FieldValues maps field ids to values. It is persisted as a JSONB column.
type FieldValues map[string]FieldValue

// Clone returns a shallow copy.
func (fv FieldValues) Clone() FieldValues {
	if fv == nil {
		return FieldValues{}
	}
	cloned := make(FieldValues, len(fv))
	for k, v := range fv {
		cloned[k] = v
	}
	return cloned
}

// Value implements [driver.Valuer].
func (fv FieldValues) Value() (driver.Value, error) {
	if fv == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(fv)
}

// Scan implements [sql.Scanner].
func (fv *FieldValues) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*fv = FieldValues{}
		return nil
	case []byte:
		return json.Unmarshal(v, fv)
	case string:
		return json.Unmarshal([]byte(v), fv)
	default:
		return fmt.Errorf("%w: field values from %T", errUnsupportedScanType, src)
	}
}
