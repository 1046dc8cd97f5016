package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldValue_UnmarshalList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{name: "choices", input: `["A","B"]`, want: []string{"A", "B"}},
		{name: "empty", input: `[]`, want: []string{}},
		{name: "empty string choice", input: `["A",""]`, want: []string{"A", ""}},
		{name: "null choice", input: `["A",null]`, wantErr: true},
		{name: "only null", input: `[null]`, wantErr: true},
		{name: "number choice", input: `["A",1]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v FieldValue
			err := json.Unmarshal([]byte(tt.input), &v)

			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidFieldValue)
				return
			}
			require.NoError(t, err)
			items, ok := v.List()
			require.True(t, ok)
			assert.Equal(t, tt.want, items)
		})
	}
}

func TestFieldValues_RejectNullChoice(t *testing.T) {
	var values FieldValues
	err := json.Unmarshal([]byte(`{"4":["Vegan",null]}`), &values)

	require.ErrorIs(t, err, ErrInvalidFieldValue)
}
