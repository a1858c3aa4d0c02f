// Package planetary derives the ruling planet of any (weekday, hour) pair
// under the classical seven-planet cycle.
//
// The package never reads the clock. Callers pass a weekday and hour index,
// or an explicit instant plus the solar day it belongs to.
package planetary

import (
	"time"

	"github.com/zaibaitech/asrar-sub001/internal/domain"
)

// ─── Tables ─────────────────────────────────────────────────────────────────

// chaldean is the fixed descending order of the planets.
var chaldean = [7]domain.Planet{
	domain.Saturn, domain.Jupiter, domain.Mars, domain.Sun,
	domain.Venus, domain.Mercury, domain.Moon,
}

// dayRulers is indexed by weekday, 0 = Sunday.
var dayRulers = [7]domain.Planet{
	domain.Sun,     // Sunday
	domain.Moon,    // Monday
	domain.Mars,    // Tuesday
	domain.Mercury, // Wednesday
	domain.Jupiter, // Thursday
	domain.Venus,   // Friday
	domain.Saturn,  // Saturday
}

// Info is the static metadata of one planet.
type Info struct {
	Planet  domain.Planet  `json:"planet"`
	Arabic  string         `json:"arabic"`
	Element domain.Element `json:"element"`
	Day     time.Weekday   `json:"day"`
}

var planetInfo = map[domain.Planet]Info{
	domain.Saturn:  {Planet: domain.Saturn, Arabic: "زحل", Element: domain.Earth, Day: time.Saturday},
	domain.Jupiter: {Planet: domain.Jupiter, Arabic: "المشتري", Element: domain.Air, Day: time.Thursday},
	domain.Mars:    {Planet: domain.Mars, Arabic: "المريخ", Element: domain.Fire, Day: time.Tuesday},
	domain.Sun:     {Planet: domain.Sun, Arabic: "الشمس", Element: domain.Fire, Day: time.Sunday},
	domain.Venus:   {Planet: domain.Venus, Arabic: "الزهرة", Element: domain.Water, Day: time.Friday},
	domain.Mercury: {Planet: domain.Mercury, Arabic: "عطارد", Element: domain.Air, Day: time.Wednesday},
	domain.Moon:    {Planet: domain.Moon, Arabic: "القمر", Element: domain.Water, Day: time.Monday},
}

// ChaldeanOrder returns the seven planets in descending order.
func ChaldeanOrder() []domain.Planet {
	out := make([]domain.Planet, len(chaldean))
	copy(out, chaldean[:])
	return out
}

// IndexOf returns p's position in the Chaldean order, or -1.
func IndexOf(p domain.Planet) int {
	for i, c := range chaldean {
		if c == p {
			return i
		}
	}
	return -1
}

// InfoOf returns the metadata of p.
func InfoOf(p domain.Planet) Info { return planetInfo[p] }

// ElementOf returns the element associated with p.
func ElementOf(p domain.Planet) domain.Element { return planetInfo[p].Element }

// ─── Rulers ─────────────────────────────────────────────────────────────────

// DayRuler returns the planet ruling weekday (0 = Sunday … 6 = Saturday).
func DayRuler(weekday int) (domain.Planet, error) {
	if err := domain.CheckRange("weekday", weekday, 0, 6); err != nil {
		return "", err
	}
	return dayRulers[weekday], nil
}

// RulerIndex returns (index_of(dayRuler(weekday)) + hour) mod 7.
// Hour 0 is always ruled by the day's own ruler and the cycle repeats every
// seven hours regardless of day length.
func RulerIndex(weekday, hour int) (int, error) {
	ruler, err := DayRuler(weekday)
	if err != nil {
		return 0, err
	}
	if err := domain.CheckRange("hour index", hour, 0, 23); err != nil {
		return 0, err
	}
	return (IndexOf(ruler) + hour) % 7, nil
}

// RulingPlanet returns the planet ruling hour of weekday.
func RulingPlanet(weekday, hour int) (domain.Planet, error) {
	i, err := RulerIndex(weekday, hour)
	if err != nil {
		return "", err
	}
	return chaldean[i], nil
}

// DayElement returns the element of the weekday's ruler.
func DayElement(weekday int) (domain.Element, error) {
	p, err := DayRuler(weekday)
	if err != nil {
		return "", err
	}
	return ElementOf(p), nil
}

// HourElement returns the element of the hour's ruler.
func HourElement(weekday, hour int) (domain.Element, error) {
	p, err := RulingPlanet(weekday, hour)
	if err != nil {
		return "", err
	}
	return ElementOf(p), nil
}
