package domain

// ─── Numeric Profile ────────────────────────────────────────────────────────

// Reduction is the outcome of reducing a raw total by repeated digit sums.
type Reduction struct {
	Number     int   `json:"number"`                // 1–9, or master 11/22/33
	Chain      []int `json:"chain"`                 // raw total first, final number last
	Master     bool  `json:"master"`                // Number is 11, 22 or 33
	KarmicDebt []int `json:"karmic_debt,omitempty"` // 13/14/16/19 seen along the chain
	Empty      bool  `json:"empty,omitempty"`       // nothing to reduce (e.g. no vowels)
}

// HasKarmicDebt reports whether any karmic-debt number was flagged.
func (r Reduction) HasKarmicDebt() bool { return len(r.KarmicDebt) > 0 }

// CoreNumbers groups the four named numbers. All use the same reduction;
// they differ only in which letters or date parts feed the raw total.
type CoreNumbers struct {
	Destiny     Reduction  `json:"destiny"`
	SoulUrge    Reduction  `json:"soul_urge"`
	Personality Reduction  `json:"personality"`
	LifePath    *Reduction `json:"life_path,omitempty"`
}

// Burj is the zodiacal station of a raw total (total mod 12, 0 → 12).
type Burj struct {
	Index   int     `json:"index"` // 1 = Aries … 12 = Pisces
	Name    string  `json:"name"`
	Arabic  string  `json:"arabic"`
	Element Element `json:"element"`
}

// NumericProfile is the fingerprint of one text under one letter-value variant.
// Created per calculation, never mutated afterwards.
type NumericProfile struct {
	SourceText     string      `json:"source_text"`
	NormalizedText string      `json:"normalized_text"`
	Variant        string      `json:"variant"`
	LetterCount    int         `json:"letter_count"`
	RawTotal       int         `json:"raw_total"`
	Reduction      Reduction   `json:"reduction"`
	Element        Element     `json:"element"`
	Numbers        CoreNumbers `json:"numbers"`

	// LetterElements counts the element of each letter by abjad position.
	LetterElements  map[Element]int `json:"letter_elements"`
	DominantLetters Element         `json:"dominant_letters"`

	Burj   Burj   `json:"burj"`
	Planet Planet `json:"planet"` // raw total mod 7 over the Chaldean order
}

// ReducedNumber returns the final reduced number.
func (p NumericProfile) ReducedNumber() int { return p.Reduction.Number }

// KarmicDebt returns the karmic-debt numbers flagged during reduction.
func (p NumericProfile) KarmicDebt() []int { return p.Reduction.KarmicDebt }
