package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Catalog errors
	ErrUnknownProtocol = errors.New("unknown protocol")
	ErrUnknownSuite    = errors.New("unknown suite")

	// Ingestion errors
	ErrUndecodable     = errors.New("undecodable transcript source")
	ErrEmptyTranscript = errors.New("transcript contains no recognizable turns")

	// Provider errors
	ErrProviderFailure = errors.New("response provider failure")
)

// NewUnknownProtocolError builds an unknown-protocol error for a key
func NewUnknownProtocolError(key ProtocolKey) error {
	return fmt.Errorf("%w: %s", ErrUnknownProtocol, key)
}

// NewUnknownSuiteError builds an unknown-suite error for a key
func NewUnknownSuiteError(key SuiteKey) error {
	return fmt.Errorf("%w: %s", ErrUnknownSuite, key)
}

// Error checking helpers
func IsCatalogError(err error) bool {
	return errors.Is(err, ErrUnknownProtocol) ||
		errors.Is(err, ErrUnknownSuite)
}

func IsIngestError(err error) bool {
	return errors.Is(err, ErrUndecodable) ||
		errors.Is(err, ErrEmptyTranscript)
}
