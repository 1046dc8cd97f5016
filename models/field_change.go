package models

// FieldChangeType classifies a difference between two list schemas.
type FieldChangeType string

const (
	FieldAdded       FieldChangeType = "added"
	FieldRemoved     FieldChangeType = "removed"
	FieldModified    FieldChangeType = "modified"
	FieldTypeChanged FieldChangeType = "typeChanged"
)

// FieldChange is derived by diffing two schemas. It is never persisted
// except as part of a migration job report.
type FieldChange struct {
	Type      FieldChangeType `json:"type"`
	FieldID   string          `json:"fieldId"`
	FieldName string          `json:"fieldName"`
	OldType   FieldType       `json:"oldType,omitempty"`
	NewType   FieldType       `json:"newType,omitempty"`
}

// IsBreaking reports whether stored values must be rewritten for the change.
func (c FieldChange) IsBreaking() bool {
	return c.Type == FieldRemoved || c.Type == FieldTypeChanged
}
