package calculator

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zaibaitech/asrar-sub001/internal/domain"
	"github.com/zaibaitech/asrar-sub001/internal/numerology"
	"github.com/zaibaitech/asrar-sub001/internal/planetary"
)

// Person is the input of a reading.
type Person struct {
	Name    string     `json:"name"`
	Mother  string     `json:"mother,omitempty"`
	Birth   *time.Time `json:"birth,omitempty"`
	Variant string     `json:"variant,omitempty"`
}

// Reading bundles everything known about a person at one instant: the
// profile, the planetary hour and the balance against both the day and the
// hour ruler. It is the record handed to downstream renderers.
type Reading struct {
	ID          string                 `json:"id"`
	At          time.Time              `json:"at"`
	Profile     domain.NumericProfile  `json:"profile"`
	Combined    *domain.NumericProfile `json:"combined,omitempty"` // name + mother
	Hour        domain.PlanetaryHour   `json:"hour"`
	DayBalance  domain.BalanceState    `json:"day_balance"`
	HourBalance domain.BalanceState    `json:"hour_balance"`
}

// Reading computes a reading for p at instant at. day is required in
// temporal mode and in fixed mode counted from sunrise.
func (c *Calculator) Reading(ctx context.Context, p Person, at time.Time, day *planetary.SolarDay) (Reading, error) {
	var r Reading
	err := c.observe(ctx, "reading", map[string]string{"variant": p.Variant}, func(ctx context.Context) error {
		prof, err := c.ComputeNumericProfile(ctx, p.Name, p.Variant)
		if err != nil {
			return err
		}
		if p.Birth != nil {
			if prof, err = numerology.WithLifePath(prof, *p.Birth); err != nil {
				return err
			}
		}

		hr, err := c.PlanetaryHourAt(ctx, at, day)
		if err != nil {
			return err
		}
		dayBal, err := c.balance.ForDay(prof.Element, hr.Weekday)
		if err != nil {
			return err
		}
		hourBal, err := c.balance.ForHour(prof.Element, hr.Weekday, hr.HourIndex)
		if err != nil {
			return err
		}

		r = Reading{
			ID:          uuid.NewString(),
			At:          at,
			Profile:     prof,
			Hour:        hr,
			DayBalance:  dayBal,
			HourBalance: hourBal,
		}
		if p.Mother != "" {
			comb, err := c.CombinedProfile(ctx, p.Name, p.Mother, p.Variant)
			if err != nil {
				return err
			}
			r.Combined = &comb
		}
		return nil
	})
	return r, err
}
