// Package balance scores the harmony between a person's element and a
// contextual element, usually the ruler of the current day or hour, and
// prescribes a remedy scaled to the imbalance.
package balance

import (
	"fmt"

	"github.com/zaibaitech/asrar-sub001/internal/domain"
	"github.com/zaibaitech/asrar-sub001/internal/element"
	"github.com/zaibaitech/asrar-sub001/internal/planetary"
)

// ─── Scores ─────────────────────────────────────────────────────────────────

const (
	ScoreSame          = 50
	ScoreComplementary = 90
	ScoreOpposingFire  = 30 // fire against water
	ScoreOpposingAir   = 35 // air against earth
	ScoreNeutral       = 60
)

// Calculator computes balance states over one relation table.
type Calculator struct {
	rel *element.Relations
}

// NewCalculator creates a calculator. A nil table means the classical one.
func NewCalculator(rel *element.Relations) *Calculator {
	if rel == nil {
		rel = element.DefaultRelations
	}
	return &Calculator{rel: rel}
}

var defaultCalculator = NewCalculator(nil)

// Compute uses the classical relation table.
func Compute(user, context domain.Element) (domain.BalanceState, error) {
	return defaultCalculator.Compute(user, context)
}

// Compute classifies (user, context) and derives score, dominant and
// deficit elements, severity and remedy.
//
// Opposing pairs resolve in favour of the context: the context element
// dominates and the user's own element is the deficit. Swapping the
// arguments therefore swaps dominant and deficit while keeping the score.
func (c *Calculator) Compute(user, context domain.Element) (domain.BalanceState, error) {
	if !user.Valid() {
		return domain.BalanceState{}, fmt.Errorf("%w: unknown user element %q", domain.ErrInvalidInput, user)
	}
	if !context.Valid() {
		return domain.BalanceState{}, fmt.Errorf("%w: unknown context element %q", domain.ErrInvalidInput, context)
	}

	rel := c.rel.Relate(user, context)
	var score int
	var dominant, deficit domain.Element

	switch rel {
	case domain.RelationSame:
		score, dominant, deficit = ScoreSame, user, c.rel.Opposite(user)
	case domain.RelationComplementary:
		dominant = c.rel.Dominant(user)
		score, deficit = ScoreComplementary, c.rel.Opposite(dominant)
	case domain.RelationOpposing:
		score = ScoreOpposingAir
		if user == domain.Fire || user == domain.Water {
			score = ScoreOpposingFire
		}
		dominant, deficit = context, user
	case domain.RelationNeutral:
		score, dominant, deficit = ScoreNeutral, context, c.rel.Complement(user)
	default:
		panic(fmt.Sprintf("balance: unhandled relation %q", rel))
	}

	sev := SeverityOf(score)
	lo, hi := RemedyMinutes(sev)
	return domain.BalanceState{
		Score:            score,
		UserElement:      user,
		ContextElement:   context,
		Relation:         rel,
		DominantElement:  dominant,
		DeficitElement:   deficit,
		Severity:         sev,
		RemedyMinutes:    lo,
		RemedyMaxMinutes: hi,
		Remedy:           RemedyText(deficit, sev),
	}, nil
}

// ForDay computes the balance against the ruler of weekday.
func (c *Calculator) ForDay(user domain.Element, weekday int) (domain.BalanceState, error) {
	ctx, err := planetary.DayElement(weekday)
	if err != nil {
		return domain.BalanceState{}, err
	}
	return c.Compute(user, ctx)
}

// ForHour computes the balance against the ruler of (weekday, hour).
func (c *Calculator) ForHour(user domain.Element, weekday, hour int) (domain.BalanceState, error) {
	ctx, err := planetary.HourElement(weekday, hour)
	if err != nil {
		return domain.BalanceState{}, err
	}
	return c.Compute(user, ctx)
}

// ─── Severity ───────────────────────────────────────────────────────────────

// SeverityOf bands a score: ≤30 severe, 31–60 moderate, 61–80 mild,
// ≥81 balanced.
func SeverityOf(score int) domain.Severity {
	switch {
	case score <= 30:
		return domain.SeveritySevere
	case score <= 60:
		return domain.SeverityModerate
	case score <= 80:
		return domain.SeverityMild
	default:
		return domain.SeverityBalanced
	}
}

// RemedyMinutes returns the remedy duration range for sev.
func RemedyMinutes(sev domain.Severity) (lo, hi int) {
	switch sev {
	case domain.SeveritySevere:
		return 15, 20
	case domain.SeverityModerate:
		return 5, 5
	case domain.SeverityMild:
		return 2, 2
	case domain.SeverityBalanced:
		return 0, 0
	}
	panic(fmt.Sprintf("balance: unknown severity %q", sev))
}
