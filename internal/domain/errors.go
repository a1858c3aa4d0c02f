package domain

import (
	"errors"
	"fmt"
)

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.
// Every error is a deterministic function of its input; callers fix the
// input instead of retrying.

var (
	// Input errors (surfaced verbatim to the user)
	ErrInvalidInput = errors.New("invalid input")

	// Range errors (weekday, hour index, temporal window, totals)
	ErrInvalidRange = errors.New("value out of range")

	// Configuration errors (unknown variant, malformed table)
	ErrConfiguration = errors.New("configuration error")
)

// Input error kinds reported by the name normalizer.
const (
	KindEmptyName     = "empty name"
	KindNonAlphabetic = "non-alphabetic character"
)

// ─── Typed Errors ───────────────────────────────────────────────────────────

// InvalidInputError reports a name that cannot be profiled.
type InvalidInputError struct {
	Kind  string // KindEmptyName or KindNonAlphabetic
	Input string
	Rune  rune // offending character for KindNonAlphabetic
}

func (e *InvalidInputError) Error() string {
	if e.Kind == KindNonAlphabetic && e.Rune != 0 {
		return fmt.Sprintf("%s: %q (U+%04X)", e.Kind, e.Rune, e.Rune)
	}
	return e.Kind
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// InvalidRangeError reports a numeric or temporal argument outside its bound.
type InvalidRangeError struct {
	Field string
	Value int64
	Min   int64
	Max   int64
	// Reason replaces the numeric bounds in the message when set
	// (e.g. an instant outside a sunrise/sunset window).
	Reason string
}

func (e *InvalidRangeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s out of range: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s out of range: %d not in [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

// Unwrap lets errors.Is match ErrInvalidRange.
func (e *InvalidRangeError) Unwrap() error { return ErrInvalidRange }

// ConfigurationError reports a missing or malformed lookup table.
// It is a programming/deployment error and must never be silently defaulted.
type ConfigurationError struct {
	Table  string
	Name   string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("configuration: %s %q: %s", e.Table, e.Name, e.Reason)
	}
	return fmt.Sprintf("configuration: %s: %s", e.Table, e.Reason)
}

// Unwrap lets errors.Is match ErrConfiguration.
func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// CheckRange returns an InvalidRangeError when v is outside [min, max].
func CheckRange(field string, v, min, max int) error {
	if v < min || v > max {
		return &InvalidRangeError{Field: field, Value: int64(v), Min: int64(min), Max: int64(max)}
	}
	return nil
}
