package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	SignalID     ID
	ExperimentID ID
	TranscriptID ID
	ProtocolKey  string
	SuiteKey     string
)

// String conversions for domain IDs
func (id SignalID) String() string     { return ID(id).String() }
func (id ExperimentID) String() string { return ID(id).String() }
func (id TranscriptID) String() string { return ID(id).String() }
func (k ProtocolKey) String() string   { return string(k) }
func (k SuiteKey) String() string      { return string(k) }

// ParseProtocolKey parses a string into ProtocolKey
func ParseProtocolKey(s string) (ProtocolKey, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("protocol key cannot be empty")
	}
	return ProtocolKey(strings.TrimSpace(s)), nil
}

// ParseSuiteKey parses a string into SuiteKey
func ParseSuiteKey(s string) (SuiteKey, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("suite key cannot be empty")
	}
	return SuiteKey(strings.TrimSpace(s)), nil
}
