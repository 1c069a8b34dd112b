package records

import "errors"

// Business outcomes surfaced directly to the caller
var (
	// ErrNotFound indicates an unknown product or bookmark id
	ErrNotFound = errors.New("record not found")

	// ErrInsufficientFunds indicates a purchase against a balance below
	// the product price; no state changes when it is returned
	ErrInsufficientFunds = errors.New("insufficient coins")
)
