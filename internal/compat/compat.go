// Package compat scores the compatibility of two numeric profiles over four
// weighted layers.
//
// Layers 1–3 are symmetric in the two persons. Layer 4 reuses the balance
// calculator with the second person as context: its percentage is symmetric
// but its dominant/deficit detail is not, and it is reported as computed.
package compat

import (
	"fmt"
	"math"
	"slices"

	"github.com/zaibaitech/asrar-sub001/internal/balance"
	"github.com/zaibaitech/asrar-sub001/internal/domain"
	"github.com/zaibaitech/asrar-sub001/internal/element"
)

// ─── Weights ────────────────────────────────────────────────────────────────

// Layer weights in percent. They sum to exactly 100; scores are accumulated
// in integer hundredths so rounding is exact.
var weightPct = [4]int{30, 40, 15, 15}

var layerNames = [4]string{"daily life", "emotional foundation", "numeric resonance", "directional dynamic"}

// Weights returns the layer weights as fractions.
func Weights() [4]float64 {
	var w [4]float64
	for i, p := range weightPct {
		w[i] = float64(p) / 100
	}
	return w
}

func checkWeights() error {
	sum := 0
	for _, p := range weightPct {
		sum += p
	}
	if sum != 100 {
		return &domain.ConfigurationError{Table: "compatibility weights", Reason: fmt.Sprintf("weights sum to %d%%, want 100%%", sum)}
	}
	return nil
}

// ─── Percentage Table ───────────────────────────────────────────────────────

// Table maps an element relation to a layer percentage.
type Table struct {
	Version     string
	Percentages map[domain.Relation]int
	// MotherDefault is layer 2's percentage when mother data is incomplete.
	MotherDefault int
}

// DefaultTable is the classical percentage table.
var DefaultTable = Table{
	Version: "classical/1",
	Percentages: map[domain.Relation]int{
		domain.RelationSame:          80,
		domain.RelationComplementary: 95,
		domain.RelationNeutral:       65,
		domain.RelationOpposing:      45,
	},
	MotherDefault: 65,
}

// Validate checks that every relation has a percentage in [0, 100] and
// that no other keys are present.
func (t Table) Validate() error {
	known := domain.Relations()
	for r := range t.Percentages {
		if !slices.Contains(known, r) {
			return &domain.ConfigurationError{Table: "compatibility percentages", Name: t.Version, Reason: fmt.Sprintf("unknown relation %q", r)}
		}
	}
	for _, r := range known {
		p, ok := t.Percentages[r]
		if !ok {
			return &domain.ConfigurationError{Table: "compatibility percentages", Name: t.Version, Reason: fmt.Sprintf("no percentage for %s", r)}
		}
		if p < 0 || p > 100 {
			return &domain.ConfigurationError{Table: "compatibility percentages", Name: t.Version, Reason: fmt.Sprintf("%s = %d, want 0–100", r, p)}
		}
	}
	if t.MotherDefault < 0 || t.MotherDefault > 100 {
		return &domain.ConfigurationError{Table: "compatibility percentages", Name: t.Version, Reason: fmt.Sprintf("mother default = %d, want 0–100", t.MotherDefault)}
	}
	return nil
}

// ─── Scorer ─────────────────────────────────────────────────────────────────

// Scorer combines the layers. Safe for concurrent use.
type Scorer struct {
	table   Table
	rel     *element.Relations
	cycle   element.Cycle
	balance *balance.Calculator
}

// NewScorer validates its tables. A nil rel means the classical relations.
func NewScorer(table Table, rel *element.Relations, cycle element.Cycle) (*Scorer, error) {
	if err := checkWeights(); err != nil {
		return nil, err
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	if rel == nil {
		rel = element.DefaultRelations
	}
	return &Scorer{table: table, rel: rel, cycle: cycle, balance: balance.NewCalculator(rel)}, nil
}

var defaultScorer = mustScorer(NewScorer(DefaultTable, nil, element.DefaultCycle))

func mustScorer(s *Scorer, err error) *Scorer {
	if err != nil {
		panic(err)
	}
	return s
}

// Score uses the default tables.
func Score(a, b domain.NumericProfile, motherA, motherB *domain.NumericProfile) (domain.CompatibilityResult, error) {
	return defaultScorer.Score(a, b, motherA, motherB)
}

// Score computes the four layers for persons a and b. Mothers are optional;
// without both of them layer 2 falls back to the table's default and the
// result's confidence drops accordingly.
func (s *Scorer) Score(a, b domain.NumericProfile, motherA, motherB *domain.NumericProfile) (domain.CompatibilityResult, error) {
	if err := checkProfile("first", &a); err != nil {
		return domain.CompatibilityResult{}, err
	}
	if err := checkProfile("second", &b); err != nil {
		return domain.CompatibilityResult{}, err
	}
	if err := checkProfile("first mother", motherA); err != nil {
		return domain.CompatibilityResult{}, err
	}
	if err := checkProfile("second mother", motherB); err != nil {
		return domain.CompatibilityResult{}, err
	}

	var pct [4]int
	var detail [4]string

	// Layer 1: the two primary elements.
	r1 := s.rel.Relate(a.Element, b.Element)
	pct[0] = s.table.Percentages[r1]
	detail[0] = fmt.Sprintf("%s + %s: %s", a.Element, b.Element, r1)

	// Layer 2: the mothers' elements.
	conf := confidence(motherA, motherB)
	if conf == domain.ConfidenceFull {
		r2 := s.rel.Relate(motherA.Element, motherB.Element)
		pct[1] = s.table.Percentages[r2]
		detail[1] = fmt.Sprintf("mothers %s + %s: %s", motherA.Element, motherB.Element, r2)
	} else {
		pct[1] = s.table.MotherDefault
		detail[1] = fmt.Sprintf("mother data %s: default %d%%", conf, s.table.MotherDefault)
	}

	// Layer 3: each element against the other's numeric category.
	catA, catB := s.cycle.Classify(a.ReducedNumber()), s.cycle.Classify(b.ReducedNumber())
	ra, rb := s.rel.Relate(a.Element, catB), s.rel.Relate(b.Element, catA)
	pct[2] = int(math.Round(float64(s.table.Percentages[ra]+s.table.Percentages[rb]) / 2))
	detail[2] = fmt.Sprintf("%s vs %s: %s; %s vs %s: %s", a.Element, catB, ra, b.Element, catA, rb)

	// Layer 4: balance of a's element with b's as context.
	dir, err := s.balance.Compute(a.Element, b.Element)
	if err != nil {
		return domain.CompatibilityResult{}, err
	}
	pct[3] = dir.Score
	detail[3] = fmt.Sprintf("%s dominant, %s deficit", dir.DominantElement, dir.DeficitElement)

	res := domain.CompatibilityResult{Confidence: conf, Directional: &dir}
	hundredths := 0
	for i := range pct {
		hundredths += pct[i] * weightPct[i]
		w := float64(weightPct[i]) / 100
		res.Layers[i] = domain.Layer{
			Name:       layerNames[i],
			Percentage: pct[i],
			Weight:     w,
			Score:      float64(pct[i]) * w,
			Detail:     detail[i],
		}
	}
	res.OverallScore = (hundredths + 50) / 100
	res.Tier = TierOf(res.OverallScore)
	return res, nil
}

func confidence(motherA, motherB *domain.NumericProfile) domain.Confidence {
	switch {
	case motherA != nil && motherB != nil:
		return domain.ConfidenceFull
	case motherA != nil || motherB != nil:
		return domain.ConfidencePartial
	default:
		return domain.ConfidenceLow
	}
}

func checkProfile(who string, p *domain.NumericProfile) error {
	if p == nil {
		return nil
	}
	if !p.Element.Valid() {
		return fmt.Errorf("%w: %s profile has no element", domain.ErrInvalidInput, who)
	}
	if p.ReducedNumber() < 1 {
		return fmt.Errorf("%w: %s profile has no reduced number", domain.ErrInvalidInput, who)
	}
	return nil
}

// ─── Tiers ──────────────────────────────────────────────────────────────────

const (
	TierExcellent   = "excellent"
	TierGood        = "good"
	TierModerate    = "moderate"
	TierChallenging = "challenging"
)

// TierOf labels an overall score: ≥80 excellent, 65–79 good, 50–64 moderate,
// below 50 challenging.
func TierOf(score int) string {
	switch {
	case score >= 80:
		return TierExcellent
	case score >= 65:
		return TierGood
	case score >= 50:
		return TierModerate
	default:
		return TierChallenging
	}
}
