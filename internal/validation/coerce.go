// Package validation normalizes loosely typed request values once at the
// API boundary, so the rest of the system only ever sees canonical types.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ProductID coerces a raw JSON id — a number or a numeric string — to
// int64. Historic clients sent both forms, so both are accepted here and
// nowhere else.
func ProductID(raw json.RawMessage) (int64, error) {
	return coerceInt(raw, "product id")
}

// Page coerces a raw JSON page value to a non-negative int. Invalid input
// is an error, never a silent zero.
func Page(raw json.RawMessage) (int, error) {
	n, err := coerceInt(raw, "page")
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("page must not be negative, got %d", n)
	}
	return int(n), nil
}

func coerceInt(raw json.RawMessage, field string) (int64, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, errors.New(field + " is required")
	}

	// Accept the quoted form by unwrapping it first.
	var quoted string
	if err := json.Unmarshal(raw, &quoted); err == nil {
		s = strings.TrimSpace(quoted)
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q is not an integer", field, s)
	}
	return n, nil
}
