package internal

import (
	"fmt"

	"github.com/google/uuid"
)

// IdentifierFunc produces one opaque identifier per call.
type IdentifierFunc func() (string, error)

// NewIdentifier returns a random (version 4) UUID string.
func NewIdentifier() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate identifier: %w", err)
	}
	return id.String(), nil
}

// NewIdentifierPair draws two independent identifiers from gen.
func NewIdentifierPair(gen IdentifierFunc) (string, string, error) {
	if gen == nil {
		gen = NewIdentifier
	}
	first, err := gen()
	if err != nil {
		return "", "", err
	}
	second, err := gen()
	if err != nil {
		return "", "", err
	}
	return first, second, nil
}
