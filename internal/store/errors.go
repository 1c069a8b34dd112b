package store

import "errors"

// Common record store errors
var (
	// ErrValidation indicates a payload that does not match the
	// collection's declared shape. Nothing is written to disk.
	ErrValidation = errors.New("payload failed collection validation")

	// ErrStorage indicates a read, write or parse failure against an
	// existing collection file. A missing file is not a storage error;
	// loads of absent collections return the registered default.
	ErrStorage = errors.New("collection storage failure")

	// ErrUnknownCollection indicates a collection name that was never
	// registered with the store.
	ErrUnknownCollection = errors.New("unknown collection")
)
