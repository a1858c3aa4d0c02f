package domain

import (
	"fmt"
	"strings"
	"time"
)

// ─── Planets ────────────────────────────────────────────────────────────────

// Planet is one of the seven classical planets.
type Planet string

const (
	Saturn  Planet = "saturn"
	Jupiter Planet = "jupiter"
	Mars    Planet = "mars"
	Sun     Planet = "sun"
	Venus   Planet = "venus"
	Mercury Planet = "mercury"
	Moon    Planet = "moon"
)

// Valid reports whether p is one of the seven planets.
func (p Planet) Valid() bool {
	switch p {
	case Saturn, Jupiter, Mars, Sun, Venus, Mercury, Moon:
		return true
	}
	return false
}

// Title returns the display form ("Saturn").
func (p Planet) Title() string {
	if p == "" {
		return ""
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}

// ParsePlanet parses a case-insensitive planet name.
func ParsePlanet(s string) (Planet, error) {
	p := Planet(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: unknown planet %q", ErrInvalidInput, s)
	}
	return p, nil
}

// ─── Planetary Hours ────────────────────────────────────────────────────────

// PlanetaryHour is the ruler of one hour of one weekday.
// Derived, never stored — recomputable from a clock reading.
type PlanetaryHour struct {
	Weekday   int    `json:"weekday"`    // 0 = Sunday … 6 = Saturday
	HourIndex int    `json:"hour_index"` // 0–23
	Ruler     Planet `json:"ruler"`
	DayRuler  Planet `json:"day_ruler"`
	Night     bool   `json:"night"`

	// Start and End are set only for temporal (unequal) hours.
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// Duration returns the length of a temporal hour, or zero for fixed hours.
func (h PlanetaryHour) Duration() time.Duration {
	if h.Start == nil || h.End == nil {
		return 0
	}
	return h.End.Sub(*h.Start)
}
