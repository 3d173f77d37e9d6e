package poly

import (
	"fmt"
	"math/big"
	"strings"
)

// UniRat is a univariate polynomial over ℚ, ascending by degree. This is the
// "univariate polynomial with rational coefficients" spec.md §6 names as the
// input type to real-root enumeration, and the type a Uni collapses to once
// every parameter has a numeric model value (spec.md §4.7).
type UniRat struct {
	coeffs []*big.Rat
}

// NewUniRat builds a UniRat from ascending-degree coefficients, trimming
// trailing zeros.
func NewUniRat(coeffs []*big.Rat) UniRat {
	out := make([]*big.Rat, len(coeffs))
	for i, c := range coeffs {
		out[i] = new(big.Rat).Set(c)
	}
	u := UniRat{coeffs: out}
	u.trim()
	return u
}

func (u *UniRat) trim() {
	n := len(u.coeffs)
	for n > 0 && u.coeffs[n-1].Sign() == 0 {
		n--
	}
	u.coeffs = u.coeffs[:n]
}

// UniRatZero is the zero polynomial.
func UniRatZero() UniRat { return UniRat{} }

// UniRatConstant returns the constant polynomial c.
func UniRatConstant(c *big.Rat) UniRat {
	if c.Sign() == 0 {
		return UniRatZero()
	}
	return NewUniRat([]*big.Rat{c})
}

// IsZero reports whether u is the zero polynomial.
func (u UniRat) IsZero() bool { return len(u.coeffs) == 0 }

// Degree returns u's degree (-1 for the zero polynomial).
func (u UniRat) Degree() int { return len(u.coeffs) - 1 }

// Coeff returns the coefficient of x^i.
func (u UniRat) Coeff(i int) *big.Rat {
	if i < 0 || i >= len(u.coeffs) {
		return big.NewRat(0, 1)
	}
	return new(big.Rat).Set(u.coeffs[i])
}

// LeadingCoeff returns u's leading coefficient. Panics on the zero
// polynomial.
func (u UniRat) LeadingCoeff() *big.Rat {
	if u.IsZero() {
		panic("poly: zero polynomial has no leading coefficient")
	}
	return new(big.Rat).Set(u.coeffs[len(u.coeffs)-1])
}

// Add returns u+v.
func (u UniRat) Add(v UniRat) UniRat {
	n := max(len(u.coeffs), len(v.coeffs))
	out := make([]*big.Rat, n)
	for i := range out {
		out[i] = new(big.Rat).Add(u.Coeff(i), v.Coeff(i))
	}
	return NewUniRat(out)
}

// Sub returns u-v.
func (u UniRat) Sub(v UniRat) UniRat {
	n := max(len(u.coeffs), len(v.coeffs))
	out := make([]*big.Rat, n)
	for i := range out {
		out[i] = new(big.Rat).Sub(u.Coeff(i), v.Coeff(i))
	}
	return NewUniRat(out)
}

// ScalarMul returns c*u.
func (u UniRat) ScalarMul(c *big.Rat) UniRat {
	out := make([]*big.Rat, len(u.coeffs))
	for i, co := range u.coeffs {
		out[i] = new(big.Rat).Mul(co, c)
	}
	return NewUniRat(out)
}

// Mul returns u*v.
func (u UniRat) Mul(v UniRat) UniRat {
	if u.IsZero() || v.IsZero() {
		return UniRatZero()
	}
	out := make([]*big.Rat, u.Degree()+v.Degree()+1)
	for i := range out {
		out[i] = big.NewRat(0, 1)
	}
	for i, a := range u.coeffs {
		for j, b := range v.coeffs {
			out[i+j].Add(out[i+j], new(big.Rat).Mul(a, b))
		}
	}
	return NewUniRat(out)
}

// Derivative returns the formal derivative of u.
func (u UniRat) Derivative() UniRat {
	if u.Degree() <= 0 {
		return UniRatZero()
	}
	out := make([]*big.Rat, u.Degree())
	for i := 1; i <= u.Degree(); i++ {
		out[i-1] = new(big.Rat).Mul(u.coeffs[i], big.NewRat(int64(i), 1))
	}
	return NewUniRat(out)
}

// Eval evaluates u at x via Horner's method, mirroring the evaluation
// convention used by the RealPolynomial.At code this layer's root-isolation
// logic is grounded on.
func (u UniRat) Eval(x *big.Rat) *big.Rat {
	out := big.NewRat(0, 1)
	for i := len(u.coeffs) - 1; i >= 0; i-- {
		out.Mul(out, x)
		out.Add(out, u.coeffs[i])
	}
	return out
}

// LongDiv performs exact polynomial long division u = q*v + r with
// deg(r) < deg(v). Panics if v is zero.
func (u UniRat) LongDiv(v UniRat) (q, r UniRat) {
	if v.IsZero() {
		panic("poly: division by zero polynomial")
	}
	remCoeffs := make([]*big.Rat, len(u.coeffs))
	for i, c := range u.coeffs {
		remCoeffs[i] = new(big.Rat).Set(c)
	}
	rem := UniRat{coeffs: remCoeffs}
	rem.trim()

	if rem.Degree() < v.Degree() {
		return UniRatZero(), rem
	}

	quotCoeffs := make([]*big.Rat, rem.Degree()-v.Degree()+1)
	for i := range quotCoeffs {
		quotCoeffs[i] = big.NewRat(0, 1)
	}
	vlc := v.LeadingCoeff()

	for rem.Degree() >= v.Degree() && !rem.IsZero() {
		shift := rem.Degree() - v.Degree()
		factor := new(big.Rat).Quo(rem.LeadingCoeff(), vlc)
		quotCoeffs[shift] = factor

		shifted := make([]*big.Rat, shift+len(v.coeffs))
		for i := range shifted {
			shifted[i] = big.NewRat(0, 1)
		}
		for i, c := range v.coeffs {
			shifted[shift+i] = new(big.Rat).Mul(c, factor)
		}
		rem = rem.Sub(UniRat{coeffs: shifted})
	}

	return NewUniRat(quotCoeffs), rem
}

// GcdSignPreserving returns the monic GCD of u and v via the Euclidean
// algorithm.
func GcdSignPreserving(u, v UniRat) UniRat {
	a, b := u, v
	for !b.IsZero() {
		_, r := a.LongDiv(b)
		a, b = b, r
	}
	if a.IsZero() {
		return a
	}
	return a.ScalarMul(new(big.Rat).Inv(a.LeadingCoeff()))
}

// String renders u in a readable, non-canonical form (debug/CLI use only).
func (u UniRat) String() string {
	if u.IsZero() {
		return "0"
	}
	var b strings.Builder
	for i := len(u.coeffs) - 1; i >= 0; i-- {
		if u.coeffs[i].Sign() == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" + ")
		}
		b.WriteString(fmt.Sprintf("(%s)", u.coeffs[i].RatString()))
		if i > 0 {
			b.WriteString("*x")
			if i > 1 {
				b.WriteString(fmt.Sprintf("^%d", i))
			}
		}
	}
	return b.String()
}
