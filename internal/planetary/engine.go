package planetary

import (
	"time"

	"github.com/zaibaitech/asrar-sub001/internal/domain"
)

// Engine resolves planetary hours under one configured timekeeping mode.
type Engine struct {
	mode   Mode
	origin Origin
}

// NewEngine creates an engine. Unknown modes or origins are configuration errors.
func NewEngine(mode Mode, origin Origin) (*Engine, error) {
	m, err := ParseMode(string(mode))
	if err != nil {
		return nil, err
	}
	o, err := ParseOrigin(string(origin))
	if err != nil {
		return nil, err
	}
	return &Engine{mode: m, origin: o}, nil
}

// Mode returns the engine's timekeeping mode.
func (e *Engine) Mode() Mode { return e.mode }

// Origin returns where hour 0 starts in fixed mode.
func (e *Engine) Origin() Origin { return e.origin }

// RulingPlanet returns the ruler of (weekday, hour).
func (e *Engine) RulingPlanet(weekday, hour int) (domain.Planet, error) {
	return RulingPlanet(weekday, hour)
}

// Hour returns the full planetary hour record for (weekday, hour).
func (e *Engine) Hour(weekday, hour int) (domain.PlanetaryHour, error) {
	ruler, err := RulingPlanet(weekday, hour)
	if err != nil {
		return domain.PlanetaryHour{}, err
	}
	return domain.PlanetaryHour{
		Weekday:   weekday,
		HourIndex: hour,
		Ruler:     ruler,
		DayRuler:  dayRulers[weekday],
		Night:     e.countsFromSunrise() && hour >= 12,
	}, nil
}

// DayHours returns all 24 hours of weekday.
func (e *Engine) DayHours(weekday int) ([]domain.PlanetaryHour, error) {
	if err := domain.CheckRange("weekday", weekday, 0, 6); err != nil {
		return nil, err
	}
	hours := make([]domain.PlanetaryHour, 24)
	for h := range hours {
		hr, err := e.Hour(weekday, h)
		if err != nil {
			return nil, err
		}
		hours[h] = hr
	}
	return hours, nil
}

// At resolves the planetary hour containing t. Temporal mode and fixed mode
// counted from sunrise both require day; fixed mode from midnight ignores it.
func (e *Engine) At(t time.Time, day *SolarDay) (domain.PlanetaryHour, error) {
	switch {
	case e.mode == ModeTemporal:
		if day == nil {
			return domain.PlanetaryHour{}, &domain.InvalidRangeError{Field: "solar day", Reason: "temporal mode requires sunrise and sunset"}
		}
		wd, h, start, end, err := TemporalHourAt(t, *day)
		if err != nil {
			return domain.PlanetaryHour{}, err
		}
		hr, err := e.Hour(wd, h)
		if err != nil {
			return domain.PlanetaryHour{}, err
		}
		hr.Start, hr.End = &start, &end
		return hr, nil

	case e.origin == OriginSunrise:
		if day == nil {
			return domain.PlanetaryHour{}, &domain.InvalidRangeError{Field: "solar day", Reason: "sunrise origin requires a sunrise"}
		}
		wd, h, err := FixedHourFromSunrise(t, day.Sunrise)
		if err != nil {
			return domain.PlanetaryHour{}, err
		}
		return e.Hour(wd, h)

	default:
		wd, h := FixedHourAt(t)
		return e.Hour(wd, h)
	}
}

func (e *Engine) countsFromSunrise() bool {
	return e.mode == ModeTemporal || e.origin == OriginSunrise
}
