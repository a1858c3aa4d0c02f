package numerology

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/zaibaitech/asrar-sub001/internal/abjad"
	"github.com/zaibaitech/asrar-sub001/internal/domain"
)

func mashriqi(t *testing.T) *abjad.Table {
	t.Helper()
	tbl, err := abjad.Builtin("mashriqi")
	if err != nil {
		t.Fatalf("Builtin(mashriqi) error: %v", err)
	}
	return tbl
}

// ─── Reduce ─────────────────────────────────────────────────────────────────

func TestReduce(t *testing.T) {
	tests := []struct {
		n      int
		want   int
		chain  []int
		master bool
		karmic []int
	}{
		{1, 1, []int{1}, false, nil},
		{9, 9, []int{9}, false, nil},
		{10, 1, []int{10, 1}, false, nil},
		{11, 11, []int{11}, true, nil},
		{33, 33, []int{33}, true, nil},
		{38, 11, []int{38, 11}, true, nil},
		{49, 4, []int{49, 13, 4}, false, []int{13}},
		{19, 1, []int{19, 10, 1}, false, []int{19}},
		{137, 11, []int{137, 11}, true, nil},
		{9999, 9, []int{9999, 36, 9}, false, nil},
	}
	for _, tt := range tests {
		got, err := Reduce(tt.n)
		if err != nil {
			t.Fatalf("Reduce(%d) error: %v", tt.n, err)
		}
		if got.Number != tt.want {
			t.Errorf("Reduce(%d).Number = %d, want %d", tt.n, got.Number, tt.want)
		}
		if diff := cmp.Diff(tt.chain, got.Chain); diff != "" {
			t.Errorf("Reduce(%d).Chain mismatch (-want +got):\n%s", tt.n, diff)
		}
		if got.Master != tt.master {
			t.Errorf("Reduce(%d).Master = %v, want %v", tt.n, got.Master, tt.master)
		}
		if diff := cmp.Diff(tt.karmic, got.KarmicDebt); diff != "" {
			t.Errorf("Reduce(%d).KarmicDebt mismatch (-want +got):\n%s", tt.n, diff)
		}
	}
}

func TestReduce_ResultAlwaysInRange(t *testing.T) {
	for n := 1; n <= 100000; n++ {
		r, err := Reduce(n)
		if err != nil {
			t.Fatalf("Reduce(%d) error: %v", n, err)
		}
		if !(r.Number >= 1 && r.Number <= 9) && !IsMaster(r.Number) {
			t.Fatalf("Reduce(%d).Number = %d, outside {1..9, 11, 22, 33}", n, r.Number)
		}
		if r.Chain[0] != n || r.Chain[len(r.Chain)-1] != r.Number {
			t.Fatalf("Reduce(%d).Chain = %v, want to run from %d to %d", n, r.Chain, n, r.Number)
		}
	}
}

func TestReduce_RejectsNonPositive(t *testing.T) {
	for _, n := range []int{0, -1, -137} {
		_, err := Reduce(n)
		if !errors.Is(err, domain.ErrInvalidRange) {
			t.Errorf("Reduce(%d) error = %v, want ErrInvalidRange", n, err)
		}
	}
}

func TestDigitSum(t *testing.T) {
	tests := map[int]int{0: 0, 7: 7, 92: 11, 1990: 19, -45: 9}
	for n, want := range tests {
		if got := DigitSum(n); got != want {
			t.Errorf("DigitSum(%d) = %d, want %d", n, got, want)
		}
	}
}

// ─── Life Path ──────────────────────────────────────────────────────────────

func TestLifePath(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"1990-12-25", 11}, // 7 + 3 + 1
		{"2000-01-01", 4},  // 1 + 1 + 2
		{"1984-07-04", 33}, // 4 + 7 + 22, the master year is kept
	}

	for _, tt := range tests {
		d, err := time.Parse("2006-01-02", tt.date)
		if err != nil {
			t.Fatal(err)
		}
		got, err := LifePath(d)
		if err != nil {
			t.Fatalf("LifePath(%s) error: %v", tt.date, err)
		}
		if got.Number != tt.want {
			t.Errorf("LifePath(%s) = %d, want %d", tt.date, got.Number, tt.want)
		}
	}
}

func TestLifePath_ZeroTime(t *testing.T) {
	if _, err := LifePath(time.Time{}); !errors.Is(err, domain.ErrInvalidRange) {
		t.Errorf("LifePath(zero) error = %v, want ErrInvalidRange", err)
	}
}

// ─── Profiles ───────────────────────────────────────────────────────────────

func TestComputeNumericProfile_Muhammad(t *testing.T) {
	p, err := ComputeNumericProfile("مُحَمَّد", mashriqi(t))
	if err != nil {
		t.Fatalf("ComputeNumericProfile error: %v", err)
	}
	if p.NormalizedText != "محمد" {
		t.Errorf("NormalizedText = %q, want %q", p.NormalizedText, "محمد")
	}
	if p.RawTotal != 92 {
		t.Errorf("RawTotal = %d, want 92", p.RawTotal)
	}
	if p.ReducedNumber() != 11 || !p.Reduction.Master {
		t.Errorf("Reduction = %+v, want master 11", p.Reduction)
	}
	if p.LetterCount != 4 {
		t.Errorf("LetterCount = %d, want 4", p.LetterCount)
	}
	if p.Element != domain.Water {
		t.Errorf("Element = %s, want water", p.Element)
	}
	if p.Burj.Name != "Scorpio" {
		t.Errorf("Burj = %s, want Scorpio", p.Burj.Name)
	}
	if p.Planet != domain.Saturn {
		t.Errorf("Planet = %s, want saturn", p.Planet)
	}
	if !p.Numbers.SoulUrge.Empty {
		t.Errorf("SoulUrge = %+v, want empty (no long vowels)", p.Numbers.SoulUrge)
	}
	if p.Numbers.Personality.Number != 11 {
		t.Errorf("Personality = %d, want 11", p.Numbers.Personality.Number)
	}
	// م م → fire, ح د → water: a tie goes to fire.
	want := map[domain.Element]int{domain.Fire: 2, domain.Water: 2, domain.Air: 0, domain.Earth: 0}
	if diff := cmp.Diff(want, p.LetterElements); diff != "" {
		t.Errorf("LetterElements mismatch (-want +got):\n%s", diff)
	}
	if p.DominantLetters != domain.Fire {
		t.Errorf("DominantLetters = %s, want fire", p.DominantLetters)
	}
}

func TestComputeNumericProfile_Ali(t *testing.T) {
	p, err := ComputeNumericProfile("علي", mashriqi(t))
	if err != nil {
		t.Fatalf("ComputeNumericProfile error: %v", err)
	}
	if p.RawTotal != 110 || p.ReducedNumber() != 2 {
		t.Errorf("total/reduced = %d/%d, want 110/2", p.RawTotal, p.ReducedNumber())
	}
	if p.Numbers.SoulUrge.Number != 1 {
		t.Errorf("SoulUrge = %d, want 1 (ي = 10)", p.Numbers.SoulUrge.Number)
	}
	if p.Numbers.Personality.Number != 1 {
		t.Errorf("Personality = %d, want 1 (ع + ل = 100)", p.Numbers.Personality.Number)
	}
	if p.Element != domain.Earth {
		t.Errorf("Element = %s, want earth", p.Element)
	}
	if p.Burj.Name != "Taurus" {
		t.Errorf("Burj = %s, want Taurus", p.Burj.Name)
	}
	if p.Planet != domain.Venus {
		t.Errorf("Planet = %s, want venus", p.Planet)
	}
}

func TestComputeNumericProfile_Deterministic(t *testing.T) {
	tbl := mashriqi(t)
	a, err := ComputeNumericProfile("عبد الله", tbl)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ComputeNumericProfile("عبد الله", tbl)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("profiles differ (-first +second):\n%s", diff)
	}
}

func TestComputeNumericProfile_Errors(t *testing.T) {
	tbl := mashriqi(t)
	for _, in := range []string{"", "   ", "ـ"} {
		_, err := ComputeNumericProfile(in, tbl)
		var ie *domain.InvalidInputError
		if !errors.As(err, &ie) || ie.Kind != domain.KindEmptyName {
			t.Errorf("ComputeNumericProfile(%q) error = %v, want empty name", in, err)
		}
	}
	_, err := ComputeNumericProfile("Ali", tbl)
	var ie *domain.InvalidInputError
	if !errors.As(err, &ie) || ie.Kind != domain.KindNonAlphabetic {
		t.Errorf("ComputeNumericProfile(Ali) error = %v, want non-alphabetic", err)
	}
}

func TestCombinedProfile(t *testing.T) {
	p, err := defaultCalculator.CombinedProfile("علي", "فاطمة", mashriqi(t))
	if err != nil {
		t.Fatalf("CombinedProfile error: %v", err)
	}
	if p.RawTotal != 245 {
		t.Errorf("RawTotal = %d, want 245 (110 + 135)", p.RawTotal)
	}
	if p.ReducedNumber() != 11 {
		t.Errorf("ReducedNumber() = %d, want 11", p.ReducedNumber())
	}
	if p.SourceText != "علي / فاطمة" {
		t.Errorf("SourceText = %q", p.SourceText)
	}
}

func TestWithLifePath(t *testing.T) {
	p, err := ComputeNumericProfile("علي", mashriqi(t))
	if err != nil {
		t.Fatal(err)
	}
	birth := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	got, err := WithLifePath(p, birth)
	if err != nil {
		t.Fatalf("WithLifePath error: %v", err)
	}
	if got.Numbers.LifePath == nil || got.Numbers.LifePath.Number != 4 {
		t.Errorf("LifePath = %+v, want 4", got.Numbers.LifePath)
	}
	if p.Numbers.LifePath != nil {
		t.Error("WithLifePath modified its input")
	}
}

// ─── Stations and Planets ───────────────────────────────────────────────────

func TestBurjOf(t *testing.T) {
	tests := map[int]string{1: "Aries", 12: "Pisces", 13: "Aries", 0: "Pisces", 92: "Scorpio"}
	for total, want := range tests {
		if got := BurjOf(total).Name; got != want {
			t.Errorf("BurjOf(%d) = %s, want %s", total, got, want)
		}
	}
}

func TestPlanetOf(t *testing.T) {
	tests := map[int]domain.Planet{
		1: domain.Saturn, 4: domain.Sun, 7: domain.Moon, 0: domain.Moon, 8: domain.Saturn,
	}
	for total, want := range tests {
		if got := PlanetOf(total); got != want {
			t.Errorf("PlanetOf(%d) = %s, want %s", total, got, want)
		}
	}
}
