package abjad

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/zaibaitech/asrar-sub001/internal/domain"
)

const (
	tatweel = '\u0640'
	zwnj    = '\u200c'
	zwj     = '\u200d'
	lrm     = '\u200e'
	rlm     = '\u200f'
	bom     = '\ufeff'
)

// Normalizer reduces raw text to the base letters of one table.
type Normalizer struct {
	table *Table
}

// NewNormalizer creates a normalizer for the given table.
func NewNormalizer(t *Table) *Normalizer {
	return &Normalizer{table: t}
}

// Table returns the active table.
func (n *Normalizer) Table() *Table { return n.table }

// Normalize strips diacritics and separators and validates the remaining
// letters against the table.
//
// Compatibility decomposition (NFKD) splits presentation forms and
// hamza-carrier letters (أ إ آ ؤ ئ) into base letter + combining mark; the
// marks are then removed together with harakat, shadda, sukun and the
// superscript alif. The table's folds map the remaining variant spellings.
func (n *Normalizer) Normalize(s string) (string, error) {
	// transform.Chain keeps state, so build one per call.
	strip := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(strip, s)
	if err != nil {
		return "", &domain.InvalidInputError{Kind: domain.KindNonAlphabetic, Input: s}
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if isSeparator(r) {
			continue
		}
		r = n.table.Fold(r)
		if !n.table.Contains(r) {
			return "", &domain.InvalidInputError{Kind: domain.KindNonAlphabetic, Input: s, Rune: r}
		}
		b.WriteRune(r)
	}

	if b.Len() == 0 {
		return "", &domain.InvalidInputError{Kind: domain.KindEmptyName, Input: s}
	}
	return b.String(), nil
}

// isSeparator reports whitespace-equivalent runes that carry no letter value.
func isSeparator(r rune) bool {
	switch r {
	case tatweel, zwnj, zwj, lrm, rlm, bom:
		return true
	}
	return unicode.IsSpace(r)
}
