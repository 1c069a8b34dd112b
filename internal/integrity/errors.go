package integrity

import "errors"

var (
	// ErrIntegrity indicates that the embedded baseline no longer matches
	// its reference signature.
	ErrIntegrity = errors.New("baseline signature mismatch")

	// ErrOverrideNotFound indicates that no user override is stored.
	ErrOverrideNotFound = errors.New("user override not found")
)
