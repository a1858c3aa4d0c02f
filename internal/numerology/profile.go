package numerology

import (
	"time"

	"github.com/zaibaitech/asrar-sub001/internal/abjad"
	"github.com/zaibaitech/asrar-sub001/internal/domain"
	"github.com/zaibaitech/asrar-sub001/internal/element"
	"github.com/zaibaitech/asrar-sub001/internal/planetary"
)

// Calculator builds numeric profiles. The element cycle is injected so a
// corrected table never requires a code change.
type Calculator struct {
	cycle element.Cycle
}

// NewCalculator creates a calculator using cycle for every element lookup.
func NewCalculator(cycle element.Cycle) *Calculator {
	return &Calculator{cycle: cycle}
}

// Cycle returns the calculator's element cycle.
func (c *Calculator) Cycle() element.Cycle { return c.cycle }

// defaultCalculator backs the package-level helpers.
var defaultCalculator = NewCalculator(element.DefaultCycle)

// ComputeNumericProfile profiles text under table with the default cycle.
func ComputeNumericProfile(text string, table *abjad.Table) (domain.NumericProfile, error) {
	return defaultCalculator.Profile(text, table)
}

// Profile normalizes text, sums its letters and derives every number and
// classification from the raw total. Deterministic: the same text and table
// always give the same profile.
func (c *Calculator) Profile(text string, table *abjad.Table) (domain.NumericProfile, error) {
	normalized, err := abjad.NewNormalizer(table).Normalize(text)
	if err != nil {
		return domain.NumericProfile{}, err
	}
	return c.fromNormalized(text, normalized, table)
}

// CombinedProfile profiles a name together with the mother's name, the
// traditional pairing where both totals are added before reduction.
func (c *Calculator) CombinedProfile(name, mother string, table *abjad.Table) (domain.NumericProfile, error) {
	n := abjad.NewNormalizer(table)
	nameNorm, err := n.Normalize(name)
	if err != nil {
		return domain.NumericProfile{}, err
	}
	motherNorm, err := n.Normalize(mother)
	if err != nil {
		return domain.NumericProfile{}, err
	}
	return c.fromNormalized(name+" / "+mother, nameNorm+motherNorm, table)
}

func (c *Calculator) fromNormalized(source, normalized string, table *abjad.Table) (domain.NumericProfile, error) {
	var raw, vowels, consonants, letters int
	counts := make(map[domain.Element]int, 4)
	for _, e := range domain.Elements() {
		counts[e] = 0
	}

	for _, r := range normalized {
		v, ok := table.Value(r)
		if !ok {
			return domain.NumericProfile{}, &domain.InvalidInputError{Kind: domain.KindNonAlphabetic, Input: source, Rune: r}
		}
		pos, _ := table.Position(r)
		raw += v
		letters++
		if table.IsVowel(r) {
			vowels += v
		} else {
			consonants += v
		}
		counts[c.cycle.Classify(pos)]++
	}

	red, err := Reduce(raw)
	if err != nil {
		return domain.NumericProfile{}, err
	}

	return domain.NumericProfile{
		SourceText:     source,
		NormalizedText: normalized,
		Variant:        table.Name(),
		LetterCount:    letters,
		RawTotal:       raw,
		Reduction:      red,
		Element:        c.cycle.Classify(raw),
		Numbers: domain.CoreNumbers{
			Destiny:     red,
			SoulUrge:    reducePart(vowels),
			Personality: reducePart(consonants),
		},
		LetterElements:  counts,
		DominantLetters: dominant(counts),
		Burj:            BurjOf(raw),
		Planet:          PlanetOf(raw),
	}, nil
}

// WithLifePath returns a copy of p carrying the life-path number of birth.
func WithLifePath(p domain.NumericProfile, birth time.Time) (domain.NumericProfile, error) {
	lp, err := LifePath(birth)
	if err != nil {
		return domain.NumericProfile{}, err
	}
	p.Numbers.LifePath = &lp
	return p, nil
}

// dominant returns the most frequent element; ties go to the earlier element
// in canonical order (fire, water, air, earth).
func dominant(counts map[domain.Element]int) domain.Element {
	var best domain.Element
	most := -1
	for _, e := range domain.Elements() {
		if counts[e] > most {
			best, most = e, counts[e]
		}
	}
	return best
}

// ─── Name Planet ────────────────────────────────────────────────────────────

// PlanetOf maps a raw total onto the Chaldean order: remainder 1 (mod 7) is
// Saturn, … remainder 0 is the Moon.
func PlanetOf(total int) domain.Planet {
	order := planetary.ChaldeanOrder()
	r := total % 7
	if r < 0 {
		r += 7
	}
	if r == 0 {
		r = 7
	}
	return order[r-1]
}
