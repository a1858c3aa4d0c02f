// Package abjad holds the letter-value tables and the name normalizer.
//
// A Table maps each letter of the Arabic script to its numeric value under one
// historical value-assignment system (a "variant"). Tables are loaded once,
// validated, and never mutated; everything downstream receives a *Table or a
// variant name, so switching variants is a data change, not a code change.
package abjad

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path"
	"sort"
	"unicode/utf8"

	"github.com/BurntSushi/toml"

	"github.com/zaibaitech/asrar-sub001/internal/domain"
)

// DefaultVariant is the variant used when the caller does not choose one.
const DefaultVariant = "mashriqi"

// ─── Table ──────────────────────────────────────────────────────────────────

// Letter is one entry of a table.
type Letter struct {
	Char     rune `json:"char"`
	Value    int  `json:"value"`
	Position int  `json:"position"` // 1-based abjad order
}

// Table is an immutable letter-value mapping.
type Table struct {
	name        string
	version     string
	description string
	letters     []Letter
	index       map[rune]int // rune → index into letters
	folds       map[rune]rune
	vowels      map[rune]bool
}

// Name returns the variant name.
func (t *Table) Name() string { return t.name }

// Version returns the table's data version.
func (t *Table) Version() string { return t.version }

// Description returns a human-readable description.
func (t *Table) Description() string { return t.description }

// Len returns the number of letters in the table.
func (t *Table) Len() int { return len(t.letters) }

// Letters returns a copy of the letters in abjad order.
func (t *Table) Letters() []Letter {
	out := make([]Letter, len(t.letters))
	copy(out, t.letters)
	return out
}

// Contains reports whether r is a base letter of the table.
func (t *Table) Contains(r rune) bool {
	_, ok := t.index[r]
	return ok
}

// Value returns the value of base letter r.
func (t *Table) Value(r rune) (int, bool) {
	i, ok := t.index[r]
	if !ok {
		return 0, false
	}
	return t.letters[i].Value, true
}

// Position returns the 1-based abjad position of base letter r.
func (t *Table) Position(r rune) (int, bool) {
	i, ok := t.index[r]
	if !ok {
		return 0, false
	}
	return t.letters[i].Position, true
}

// Fold maps a variant spelling onto its base letter. Unknown runes pass through.
func (t *Table) Fold(r rune) rune {
	if b, ok := t.folds[r]; ok {
		return b
	}
	return r
}

// IsVowel reports whether r is one of the table's long-vowel letters.
func (t *Table) IsVowel(r rune) bool { return t.vowels[r] }

// Sum adds the values of every letter in normalized text.
// The text must already be normalized; any rune outside the table is an
// InvalidInputError.
func (t *Table) Sum(normalized string) (int, error) {
	total := 0
	for _, r := range normalized {
		v, ok := t.Value(r)
		if !ok {
			return 0, &domain.InvalidInputError{Kind: domain.KindNonAlphabetic, Input: normalized, Rune: r}
		}
		total += v
	}
	return total, nil
}

// ─── Loading ────────────────────────────────────────────────────────────────

// tableFile is the on-disk TOML shape of a table.
type tableFile struct {
	Name        string            `toml:"name"`
	Version     string            `toml:"version"`
	Description string            `toml:"description"`
	Vowels      []string          `toml:"vowels"`
	Letters     []letterEntry     `toml:"letters"`
	Folds       map[string]string `toml:"folds"`
}

type letterEntry struct {
	Char  string `toml:"char"`
	Value int    `toml:"value"`
}

// ParseTable decodes and validates a table from TOML.
func ParseTable(data []byte) (*Table, error) {
	var f tableFile
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&f)
	if err != nil {
		return nil, &domain.ConfigurationError{Table: "letter table", Reason: err.Error()}
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, &domain.ConfigurationError{
			Table:  "letter table",
			Name:   f.Name,
			Reason: fmt.Sprintf("unknown keys %v", undecoded),
		}
	}
	return newTable(f)
}

// LoadTableFile reads a table from a TOML file on disk.
func LoadTableFile(p string) (*Table, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, &domain.ConfigurationError{Table: "letter table", Name: p, Reason: err.Error()}
	}
	return ParseTable(data)
}

func newTable(f tableFile) (*Table, error) {
	bad := func(format string, args ...any) error {
		return &domain.ConfigurationError{Table: "letter table", Name: f.Name, Reason: fmt.Sprintf(format, args...)}
	}

	if f.Name == "" {
		return nil, bad("missing name")
	}
	if len(f.Letters) == 0 {
		return nil, bad("no letters")
	}

	t := &Table{
		name:        f.Name,
		version:     f.Version,
		description: f.Description,
		letters:     make([]Letter, 0, len(f.Letters)),
		index:       make(map[rune]int, len(f.Letters)),
		folds:       make(map[rune]rune, len(f.Folds)),
		vowels:      make(map[rune]bool, len(f.Vowels)),
	}

	for i, e := range f.Letters {
		r, err := singleRune(e.Char)
		if err != nil {
			return nil, bad("letter %d: %v", i+1, err)
		}
		if _, dup := t.index[r]; dup {
			return nil, bad("duplicate letter %q", e.Char)
		}
		if e.Value <= 0 {
			return nil, bad("letter %q: value must be positive, got %d", e.Char, e.Value)
		}
		t.index[r] = len(t.letters)
		t.letters = append(t.letters, Letter{Char: r, Value: e.Value, Position: i + 1})
	}

	for from, to := range f.Folds {
		fr, err := singleRune(from)
		if err != nil {
			return nil, bad("fold %q: %v", from, err)
		}
		tr, err := singleRune(to)
		if err != nil {
			return nil, bad("fold %q: %v", from, err)
		}
		if !t.Contains(tr) {
			return nil, bad("fold %q targets unknown letter %q", from, to)
		}
		if t.Contains(fr) {
			return nil, bad("fold source %q is already a base letter", from)
		}
		t.folds[fr] = tr
	}

	for _, v := range f.Vowels {
		r, err := singleRune(v)
		if err != nil {
			return nil, bad("vowel %q: %v", v, err)
		}
		if !t.Contains(r) {
			return nil, bad("vowel %q is not a letter of the table", v)
		}
		t.vowels[r] = true
	}

	return t, nil
}

func singleRune(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("want exactly one character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// ─── Built-in Variants ──────────────────────────────────────────────────────

//go:embed tables/*.toml
var tableFS embed.FS

// builtins is decoded once at init. A malformed embedded table is a build
// defect, so loading panics loudly instead of degrading.
var builtins = mustLoadBuiltins()

func mustLoadBuiltins() map[string]*Table {
	entries, err := tableFS.ReadDir("tables")
	if err != nil {
		panic(fmt.Sprintf("abjad: read embedded tables: %v", err))
	}
	out := make(map[string]*Table, len(entries))
	for _, e := range entries {
		data, err := tableFS.ReadFile(path.Join("tables", e.Name()))
		if err != nil {
			panic(fmt.Sprintf("abjad: read %s: %v", e.Name(), err))
		}
		t, err := ParseTable(data)
		if err != nil {
			panic(fmt.Sprintf("abjad: %s: %v", e.Name(), err))
		}
		out[t.Name()] = t
	}
	if _, ok := out[DefaultVariant]; !ok {
		panic("abjad: default variant " + DefaultVariant + " missing from embedded tables")
	}
	return out
}

// Builtin returns one of the embedded variants.
func Builtin(name string) (*Table, error) {
	t, ok := builtins[name]
	if !ok {
		return nil, &domain.ConfigurationError{Table: "letter table", Name: name, Reason: "unknown variant"}
	}
	return t, nil
}

// BuiltinNames lists the embedded variants in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
