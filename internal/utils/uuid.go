package utils

import (
	"encoding/base64"
	"path"
	"strings"

	"github.com/google/uuid"
)

// UUIDGenerator produces trace ids, share codes and object names.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a time-ordered v7 uuid, or a random v4 one if the clock
// source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// ShareCode returns a 16-character url-safe code for a public list link.
func (g *UUIDGenerator) ShareCode() string {
	id := uuid.New()
	return base64.RawURLEncoding.EncodeToString(id[:12])
}

// ObjectName returns a unique object name that keeps the extension of
// fileName, lower-cased.
func (g *UUIDGenerator) ObjectName(fileName string) string {
	return g.Generate() + strings.ToLower(path.Ext(fileName))
}
