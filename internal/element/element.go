// Package element classifies totals into the four elements and holds the
// fixed relation table between elements.
//
// Both the remainder cycle and the relation table are versioned configuration.
// Getting the cyclic order wrong silently corrupts every compatibility and
// balance result downstream, so neither is ever derived inline.
package element

import (
	"fmt"
	"strings"

	"github.com/zaibaitech/asrar-sub001/internal/domain"
)

// ─── Remainder Cycle ────────────────────────────────────────────────────────

// Cycle maps the remainders 1, 2, 3, 4 (total mod 4, with 0 read as 4)
// to elements.
type Cycle struct {
	version string
	order   [4]domain.Element
}

// DefaultCycle follows the abjad order of natures: alif is fire, ba earth,
// jim air, dal water, then repeating.
var DefaultCycle = Cycle{
	version: "abjad-natures/1",
	order:   [4]domain.Element{domain.Fire, domain.Earth, domain.Air, domain.Water},
}

// NewCycle builds a cycle from four elements ordered by remainder 1..4.
// The order must be a permutation of the four elements.
func NewCycle(version string, order []domain.Element) (Cycle, error) {
	if len(order) != 4 {
		return Cycle{}, &domain.ConfigurationError{
			Table:  "element cycle",
			Name:   version,
			Reason: fmt.Sprintf("want 4 elements, got %d", len(order)),
		}
	}
	seen := make(map[domain.Element]bool, 4)
	var c Cycle
	c.version = version
	for i, e := range order {
		if !e.Valid() {
			return Cycle{}, &domain.ConfigurationError{Table: "element cycle", Name: version, Reason: fmt.Sprintf("unknown element %q", e)}
		}
		if seen[e] {
			return Cycle{}, &domain.ConfigurationError{Table: "element cycle", Name: version, Reason: fmt.Sprintf("element %q repeated", e)}
		}
		seen[e] = true
		c.order[i] = e
	}
	return c, nil
}

// ParseCycle builds a cycle from element names as found in config files.
func ParseCycle(version string, names []string) (Cycle, error) {
	order := make([]domain.Element, len(names))
	for i, n := range names {
		order[i] = domain.Element(strings.ToLower(strings.TrimSpace(n)))
	}
	return NewCycle(version, order)
}

// Version returns the cycle's configuration version.
func (c Cycle) Version() string { return c.version }

// Order returns the elements for remainders 1..4.
func (c Cycle) Order() []domain.Element {
	out := make([]domain.Element, 4)
	copy(out, c.order[:])
	return out
}

// Remainder returns total mod 4 in 1..4 (0 counts as 4). Defined for every
// integer, including negatives.
func Remainder(total int) int {
	r := total % 4
	if r < 0 {
		r += 4
	}
	if r == 0 {
		return 4
	}
	return r
}

// Classify returns the element of total. Pure and total over all integers.
func (c Cycle) Classify(total int) domain.Element {
	return c.order[Remainder(total)-1]
}

// Classify uses DefaultCycle.
func Classify(total int) domain.Element { return DefaultCycle.Classify(total) }

// ─── Qualities ──────────────────────────────────────────────────────────────

// Quality describes an element's classical temperament.
type Quality struct {
	Element domain.Element `json:"element"`
	Hot     bool           `json:"hot"`
	Moist   bool           `json:"moist"`
	Arabic  string         `json:"arabic"`
}

var qualities = map[domain.Element]Quality{
	domain.Fire:  {Element: domain.Fire, Hot: true, Moist: false, Arabic: "نار"},
	domain.Air:   {Element: domain.Air, Hot: true, Moist: true, Arabic: "هواء"},
	domain.Water: {Element: domain.Water, Hot: false, Moist: true, Arabic: "ماء"},
	domain.Earth: {Element: domain.Earth, Hot: false, Moist: false, Arabic: "تراب"},
}

// QualityOf returns the temperament of e.
func QualityOf(e domain.Element) Quality { return qualities[e] }

// Temperament renders a quality as "hot & dry".
func (q Quality) Temperament() string {
	t, m := "cold", "dry"
	if q.Hot {
		t = "hot"
	}
	if q.Moist {
		m = "moist"
	}
	return t + " & " + m
}
