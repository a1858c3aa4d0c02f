package planetary

import (
	"fmt"
	"strings"
	"time"

	"github.com/zaibaitech/asrar-sub001/internal/domain"
)

// ─── Timekeeping Modes ──────────────────────────────────────────────────────

// Mode selects how a wall-clock instant becomes an hour index.
type Mode string

const (
	// ModeFixed uses 24 equal hours.
	ModeFixed Mode = "fixed"
	// ModeTemporal uses 12 unequal day hours and 12 unequal night hours
	// derived from caller-supplied sunrise and sunset.
	ModeTemporal Mode = "temporal"
)

// Origin selects where hour 0 starts in fixed mode.
type Origin string

const (
	OriginMidnight Origin = "midnight"
	OriginSunrise  Origin = "sunrise"
)

// ParseMode parses a configured mode. Unknown values are configuration errors.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeFixed, ModeTemporal:
		return m, nil
	}
	return "", &domain.ConfigurationError{Table: "planetary mode", Name: s, Reason: "want fixed or temporal"}
}

// ParseOrigin parses a configured hour origin.
func ParseOrigin(s string) (Origin, error) {
	switch o := Origin(strings.ToLower(strings.TrimSpace(s))); o {
	case OriginMidnight, OriginSunrise:
		return o, nil
	}
	return "", &domain.ConfigurationError{Table: "planetary origin", Name: s, Reason: "want midnight or sunrise"}
}

// ─── Solar Day ──────────────────────────────────────────────────────────────

// SolarDay is one planetary day, from sunrise to the next sunrise.
// The instants come from the caller (an ephemeris or a location service);
// this package does not compute them.
type SolarDay struct {
	Sunrise     time.Time `json:"sunrise"`
	Sunset      time.Time `json:"sunset"`
	NextSunrise time.Time `json:"next_sunrise"`
}

// Validate checks that sunrise < sunset < next sunrise and that both the
// day and the night are long enough to split into 12 non-empty hours.
func (d SolarDay) Validate() error {
	if !d.Sunrise.Before(d.Sunset) {
		return &domain.InvalidRangeError{Field: "solar day", Reason: "sunset must be after sunrise"}
	}
	if !d.Sunset.Before(d.NextSunrise) {
		return &domain.InvalidRangeError{Field: "solar day", Reason: "next sunrise must be after sunset"}
	}
	if d.DayHour() <= 0 {
		return &domain.InvalidRangeError{Field: "solar day", Reason: "daylight too short for 12 hours"}
	}
	if d.NightHour() <= 0 {
		return &domain.InvalidRangeError{Field: "solar day", Reason: "night too short for 12 hours"}
	}
	return nil
}

// DayHour returns the length of one day hour.
func (d SolarDay) DayHour() time.Duration { return d.Sunset.Sub(d.Sunrise) / 12 }

// NightHour returns the length of one night hour.
func (d SolarDay) NightHour() time.Duration { return d.NextSunrise.Sub(d.Sunset) / 12 }

// Weekday returns the planetary weekday: the day starts at sunrise.
func (d SolarDay) Weekday() int { return int(d.Sunrise.Weekday()) }

// ─── Conversions ────────────────────────────────────────────────────────────
// These are the caller-side steps that turn an instant into (weekday, hour)
// before the ruler is looked up.

// FixedHourAt converts an instant to (weekday, hour) counting equal hours
// from local midnight.
func FixedHourAt(t time.Time) (weekday, hour int) {
	return int(t.Weekday()), t.Hour()
}

// FixedHourFromSunrise counts equal hours from sunrise. t must fall within
// 24 hours after sunrise.
func FixedHourFromSunrise(t, sunrise time.Time) (weekday, hour int, err error) {
	elapsed := t.Sub(sunrise)
	if elapsed < 0 || elapsed >= 24*time.Hour {
		return 0, 0, &domain.InvalidRangeError{
			Field:  "instant",
			Reason: fmt.Sprintf("%s is not within 24h after sunrise %s", t.Format(time.RFC3339), sunrise.Format(time.RFC3339)),
		}
	}
	return int(sunrise.Weekday()), int(elapsed / time.Hour), nil
}

// TemporalHourAt converts an instant to its unequal hour within day.
// Hours 0–11 divide sunrise→sunset, hours 12–23 divide sunset→next sunrise.
// An instant outside [Sunrise, NextSunrise) is an InvalidRangeError.
func TemporalHourAt(t time.Time, day SolarDay) (weekday, hour int, start, end time.Time, err error) {
	if err = day.Validate(); err != nil {
		return 0, 0, time.Time{}, time.Time{}, err
	}
	if t.Before(day.Sunrise) || !t.Before(day.NextSunrise) {
		return 0, 0, time.Time{}, time.Time{}, &domain.InvalidRangeError{
			Field: "instant",
			Reason: fmt.Sprintf("%s is outside the solar day %s – %s",
				t.Format(time.RFC3339), day.Sunrise.Format(time.RFC3339), day.NextSunrise.Format(time.RFC3339)),
		}
	}

	from, to, length, base := day.Sunrise, day.Sunset, day.DayHour(), 0
	if !t.Before(day.Sunset) {
		from, to, length, base = day.Sunset, day.NextSunrise, day.NightHour(), 12
	}

	i := int(t.Sub(from) / length)
	if i > 11 {
		// Integer division of the span can leave the last sliver past hour 11.
		i = 11
	}
	start = from.Add(time.Duration(i) * length)
	end = start.Add(length)
	if i == 11 {
		end = to
	}
	return day.Weekday(), base + i, start, end, nil
}
