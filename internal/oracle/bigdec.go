// Package oracle numerically evaluates the generating-function system at a
// user-supplied rho, or finds rho by bisection plus fixed-point iteration
// (SPEC_FULL.md §5). Bisection on rho needs arithmetic with at least 50
// significant decimal digits to avoid stalling once the interval narrows
// past float64 resolution (SPEC_FULL.md §2); Dec below is that fixed
// precision decimal, built on math/big since no arbitrary-precision
// decimal library appears anywhere in the retrieved pack (see DESIGN.md).
// Its one multiplication hot spot uses bigfft.Mul instead of
// big.Int.Mul, the teacher's transitively-pulled
// github.com/remyoudompheng/bigfft wired directly.
package oracle

import (
	"math/big"

	"github.com/remyoudompheng/bigfft"
)

// precisionDigits is the significant-decimal-digit budget carried by every
// Dec value: comfortably above the "50 significant digits" floor named in
// the specification.
const precisionDigits = 64

var ten = big.NewInt(10)

// Dec is a fixed-precision decimal: mantissa * 10^exp, with mantissa kept
// to at most precisionDigits decimal digits after every operation.
type Dec struct {
	mantissa *big.Int
	exp      int
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(ten, big.NewInt(int64(n)), nil)
}

func digitCount(n *big.Int) int {
	if n.Sign() == 0 {
		return 1
	}
	return len(new(big.Int).Abs(n).Text(10))
}

func (d Dec) normalize() Dec {
	digits := digitCount(d.mantissa)
	if digits <= precisionDigits {
		return d
	}
	excess := digits - precisionDigits
	m := new(big.Int).Quo(d.mantissa, pow10(excess))
	return Dec{mantissa: m, exp: d.exp + excess}
}

// DecFromFloat64 converts f into a Dec, routing through big.Float at high
// working precision before truncating to precisionDigits.
func DecFromFloat64(f float64) Dec {
	const workingBits = 256
	bf := new(big.Float).SetPrec(workingBits).SetFloat64(f)
	scale := new(big.Float).SetPrec(workingBits).SetInt(pow10(precisionDigits))
	scaled := new(big.Float).SetPrec(workingBits).Mul(bf, scale)
	mant, _ := scaled.Int(nil)
	return Dec{mantissa: mant, exp: -precisionDigits}.normalize()
}

// DecZero is the additive identity.
func DecZero() Dec { return Dec{mantissa: big.NewInt(0), exp: 0} }

func align(a, b Dec) (am, bm *big.Int, exp int) {
	switch {
	case a.exp == b.exp:
		return a.mantissa, b.mantissa, a.exp
	case a.exp > b.exp:
		scale := pow10(a.exp - b.exp)
		return new(big.Int).Mul(a.mantissa, scale), b.mantissa, b.exp
	default:
		scale := pow10(b.exp - a.exp)
		return a.mantissa, new(big.Int).Mul(b.mantissa, scale), a.exp
	}
}

func (a Dec) Add(b Dec) Dec {
	am, bm, exp := align(a, b)
	return Dec{mantissa: new(big.Int).Add(am, bm), exp: exp}.normalize()
}

func (a Dec) Sub(b Dec) Dec {
	am, bm, exp := align(a, b)
	return Dec{mantissa: new(big.Int).Sub(am, bm), exp: exp}.normalize()
}

// Mul multiplies two Dec values. The mantissa product runs through
// bigfft.Mul: at precisionDigits*2 digits it is squarely in the range
// where FFT-based multiplication beats big.Int's schoolbook path, and it
// is the single operation this oracle repeats most (once per bisection
// step, for the midpoint; the doubling search uses MulInt).
func (a Dec) Mul(b Dec) Dec {
	m := bigfft.Mul(a.mantissa, b.mantissa)
	return Dec{mantissa: m, exp: a.exp + b.exp}.normalize()
}

// DivInt divides by a small positive integer, re-scaling first so the
// quotient keeps precisionDigits of significance.
func (a Dec) DivInt(n int64) Dec {
	scaled := new(big.Int).Mul(a.mantissa, pow10(precisionDigits))
	q := new(big.Int).Quo(scaled, big.NewInt(n))
	return Dec{mantissa: q, exp: a.exp - precisionDigits}.normalize()
}

// MulInt multiplies by a small integer (used for the doubling search).
func (a Dec) MulInt(n int64) Dec {
	return Dec{mantissa: new(big.Int).Mul(a.mantissa, big.NewInt(n)), exp: a.exp}.normalize()
}

// Cmp returns -1, 0 or 1 as a is less than, equal to, or greater than b.
func (a Dec) Cmp(b Dec) int {
	am, bm, _ := align(a, b)
	return am.Cmp(bm)
}

// Float64 rounds the Dec to the nearest float64, the precision the fixed-point
// Phi evaluator and branching-probability arithmetic run at once rho's
// bisection interval has converged.
func (a Dec) Float64() float64 {
	const workingBits = 256
	f := new(big.Float).SetPrec(workingBits).SetInt(a.mantissa)
	scale := new(big.Float).SetPrec(workingBits).SetInt(pow10(absInt(a.exp)))
	if a.exp < 0 {
		f.Quo(f, scale)
	} else {
		f.Mul(f, scale)
	}
	out, _ := f.Float64()
	return out
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
