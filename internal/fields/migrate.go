package fields

import (
	"encoding/json"
	"strconv"

	"github.com/MKhiriev/go-list-keeper/models"
	"github.com/cespare/xxhash"
)

// MigrateValues rebuilds the field values of one entry for newFields.
//
//   - fields absent from oldFields start as null;
//   - fields whose type is unchanged keep their value;
//   - fields whose type changed go through [ConvertValue];
//   - fields missing from newFields are dropped.
//
// The entry name lives outside the mapping and is not touched. The input map
// is never modified.
func MigrateValues(values models.FieldValues, oldFields, newFields models.FieldDefinitions) models.FieldValues {
	oldByID := oldFields.ByID()
	migrated := make(models.FieldValues, len(newFields))

	for _, newField := range newFields {
		if newField.IsNameField() {
			continue
		}

		oldField, existed := oldByID[newField.ID]
		if !existed {
			migrated[newField.ID] = models.NullValue()
			continue
		}

		current := values[newField.ID]
		if oldField.Type == newField.Type {
			migrated[newField.ID] = current
			continue
		}

		migrated[newField.ID] = ConvertValue(current, oldField.Type, newField.Type)
	}

	return migrated
}

// Fingerprint returns a stable hash of a schema. Two schemas with the same
// fields in the same sequence produce the same fingerprint.
func Fingerprint(defs models.FieldDefinitions) string {
	payload, err := json.Marshal(defs)
	if err != nil {
		// FieldDefinitions only holds JSON-safe values
		return ""
	}
	return strconv.FormatUint(xxhash.Sum64(payload), 16)
}
