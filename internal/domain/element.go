// Package domain contains pure calculation types with ZERO infrastructure imports.
// This is the innermost ring — every other package depends on it, it depends on nothing.
package domain

import (
	"fmt"
	"strings"
)

// ─── Elements ───────────────────────────────────────────────────────────────

// Element is one of the four classical elements.
type Element string

const (
	Fire  Element = "fire"
	Water Element = "water"
	Air   Element = "air"
	Earth Element = "earth"
)

// allElements fixes the canonical iteration order used by tests and tables.
var allElements = [...]Element{Fire, Water, Air, Earth}

// Elements returns the four elements in canonical order.
func Elements() []Element {
	out := make([]Element, len(allElements))
	copy(out, allElements[:])
	return out
}

// Valid reports whether e is one of the four elements.
func (e Element) Valid() bool {
	switch e {
	case Fire, Water, Air, Earth:
		return true
	}
	return false
}

// Title returns the display form ("Fire").
func (e Element) Title() string {
	if e == "" {
		return ""
	}
	return strings.ToUpper(string(e[:1])) + string(e[1:])
}

// ParseElement parses a case-insensitive element name.
func ParseElement(s string) (Element, error) {
	e := Element(strings.ToLower(strings.TrimSpace(s)))
	if !e.Valid() {
		return "", fmt.Errorf("%w: unknown element %q", ErrInvalidInput, s)
	}
	return e, nil
}

// ─── Element Relations ──────────────────────────────────────────────────────

// Relation classifies an ordered pair of elements.
type Relation string

const (
	RelationSame          Relation = "same"
	RelationComplementary Relation = "complementary"
	RelationOpposing      Relation = "opposing"
	RelationNeutral       Relation = "neutral"
)

// Relations returns all four relation classes.
func Relations() []Relation {
	return []Relation{RelationSame, RelationComplementary, RelationOpposing, RelationNeutral}
}
