// Package numerology turns letter totals into reduced numbers and numeric
// profiles.
//
// One reduction routine serves every named number (destiny, soul urge,
// personality, life path); they differ only in which letters or date parts
// feed the raw total.
package numerology

import (
	"math"
	"time"

	"github.com/zaibaitech/asrar-sub001/internal/domain"
)

// ─── Exception Numbers ──────────────────────────────────────────────────────

// Master numbers are never reduced further.
var masterNumbers = map[int]bool{11: true, 22: true, 33: true}

// Karmic-debt numbers are flagged when seen, then reduced as usual.
var karmicDebtNumbers = map[int]bool{13: true, 14: true, 16: true, 19: true}

// IsMaster reports whether n is 11, 22 or 33.
func IsMaster(n int) bool { return masterNumbers[n] }

// IsKarmicDebt reports whether n is 13, 14, 16 or 19.
func IsKarmicDebt(n int) bool { return karmicDebtNumbers[n] }

// ─── Reduction ──────────────────────────────────────────────────────────────

// Reduce digit-sums n until a single digit 1–9 or a master number remains.
//
// Every value on the way (n included) that is a karmic-debt number is
// recorded in KarmicDebt, not only the raw total: 49 → 13 → 4 flags 13.
// Callers that want the raw total's debt alone can test
// IsKarmicDebt(Chain[0]). The final Number is still fully reduced and is
// always in {1..9, 11, 22, 33}. n must be at least 1.
func Reduce(n int) (domain.Reduction, error) {
	if n < 1 {
		return domain.Reduction{}, &domain.InvalidRangeError{Field: "total", Value: int64(n), Min: 1, Max: math.MaxInt64}
	}

	red := domain.Reduction{Chain: []int{n}}
	v := n
	for {
		if IsKarmicDebt(v) {
			red.KarmicDebt = append(red.KarmicDebt, v)
		}
		if IsMaster(v) {
			red.Master = true
			break
		}
		if v <= 9 {
			break
		}
		v = DigitSum(v)
		red.Chain = append(red.Chain, v)
	}
	red.Number = v
	return red, nil
}

// reducePart is Reduce for partial totals that may legitimately be empty,
// such as the vowels of a name written without long vowels.
func reducePart(total int) domain.Reduction {
	if total == 0 {
		return domain.Reduction{Empty: true, Chain: []int{}}
	}
	red, _ := Reduce(total)
	return red
}

// DigitSum returns the sum of the decimal digits of n (n ≥ 0).
func DigitSum(n int) int {
	if n < 0 {
		n = -n
	}
	s := 0
	for n > 0 {
		s += n % 10
		n /= 10
	}
	return s
}

// ─── Life Path ──────────────────────────────────────────────────────────────

// LifePath reduces a birth date: the day, month and year are each reduced
// (keeping master numbers), summed, and the sum reduced again.
func LifePath(birth time.Time) (domain.Reduction, error) {
	if birth.IsZero() || birth.Year() < 1 {
		return domain.Reduction{}, &domain.InvalidRangeError{Field: "birth year", Value: int64(birth.Year()), Min: 1, Max: 9999}
	}
	total := 0
	for _, part := range []int{birth.Day(), int(birth.Month()), birth.Year()} {
		r, err := Reduce(part)
		if err != nil {
			return domain.Reduction{}, err
		}
		total += r.Number
	}
	return Reduce(total)
}
