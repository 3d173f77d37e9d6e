package poly

import (
	"math/big"
	"strconv"
	"strings"

	"cadengine/internal/canon"
)

// Uni is a univariate polynomial in the distinguished variable, with
// coefficients in Multi (the "univariate polynomials in one distinguished
// variable over a coefficient ring of multivariate polynomials" of spec.md
// §2). Coefficients are stored ascending by degree, coeffs[i] being the
// coefficient of x^i — the same low-to-high convention used by
// jonathanMweiss-go-gao/field/poly.go's Polynomial type, which this layer's
// shape is grounded on, generalized from a finite-field coefficient ring to
// a multivariate-polynomial-over-ℚ coefficient ring.
type Uni struct {
	coeffs []Multi
}

// NewUni builds a Uni from ascending-degree coefficients, trimming trailing
// zero coefficients.
func NewUni(coeffs []Multi) Uni {
	u := Uni{coeffs: append([]Multi{}, coeffs...)}
	u.trim()
	return u
}

func (u *Uni) trim() {
	n := len(u.coeffs)
	for n > 0 && u.coeffs[n-1].IsZero() {
		n--
	}
	u.coeffs = u.coeffs[:n]
}

// UniZero is the zero polynomial.
func UniZero() Uni { return Uni{} }

// UniConstant returns the constant polynomial c.
func UniConstant(c Multi) Uni {
	if c.IsZero() {
		return UniZero()
	}
	return Uni{coeffs: []Multi{c}}
}

// IsZero reports whether u is the zero polynomial.
func (u Uni) IsZero() bool { return len(u.coeffs) == 0 }

// Degree returns u's degree; by convention the zero polynomial has degree -1.
func (u Uni) Degree() int { return len(u.coeffs) - 1 }

// Coeff returns the coefficient of x^i (Zero() if i is out of range).
func (u Uni) Coeff(i int) Multi {
	if i < 0 || i >= len(u.coeffs) {
		return Zero()
	}
	return u.coeffs[i]
}

// LeadingCoeff returns the coefficient of u's highest-degree term. Panics on
// the zero polynomial.
func (u Uni) LeadingCoeff() Multi {
	if u.IsZero() {
		panic("poly: zero polynomial has no leading coefficient")
	}
	return u.coeffs[len(u.coeffs)-1]
}

// Derivative returns the formal derivative of u with respect to the
// distinguished variable.
func (u Uni) Derivative() Uni {
	if u.Degree() <= 0 {
		return UniZero()
	}
	out := make([]Multi, u.Degree())
	for i := 1; i <= u.Degree(); i++ {
		out[i-1] = u.coeffs[i].ScalarMul(ratInt(i))
	}
	return NewUni(out)
}

// Add returns u+v.
func (u Uni) Add(v Uni) Uni {
	n := len(u.coeffs)
	if len(v.coeffs) > n {
		n = len(v.coeffs)
	}
	out := make([]Multi, n)
	for i := 0; i < n; i++ {
		out[i] = u.Coeff(i).Add(v.Coeff(i))
	}
	return NewUni(out)
}

// Sub returns u-v.
func (u Uni) Sub(v Uni) Uni {
	n := len(u.coeffs)
	if len(v.coeffs) > n {
		n = len(v.coeffs)
	}
	out := make([]Multi, n)
	for i := 0; i < n; i++ {
		out[i] = u.Coeff(i).Sub(v.Coeff(i))
	}
	return NewUni(out)
}

// ScalarMul returns c*u for a Multi scalar c.
func (u Uni) ScalarMul(c Multi) Uni {
	out := make([]Multi, len(u.coeffs))
	for i, co := range u.coeffs {
		out[i] = co.Mul(c)
	}
	return NewUni(out)
}

// Mul returns u*v.
func (u Uni) Mul(v Uni) Uni {
	if u.IsZero() || v.IsZero() {
		return UniZero()
	}
	out := make([]Multi, u.Degree()+v.Degree()+1)
	for i := range out {
		out[i] = Zero()
	}
	for i, a := range u.coeffs {
		for j, b := range v.coeffs {
			out[i+j] = out[i+j].Add(a.Mul(b))
		}
	}
	return NewUni(out)
}

// Reduce reduces every coefficient of u modulo basis.
func (u Uni) Reduce(basis GroebnerBasis) Uni {
	out := make([]Multi, len(u.coeffs))
	for i, c := range u.coeffs {
		out[i] = basis.Reduce(c)
	}
	return NewUni(out)
}

// Substitute replaces every coefficient's variables with the numeric values
// in model, producing a univariate polynomial over ℚ (UniRat). Used by the
// sampler once the solver has produced concrete values for every parameter
// (spec.md §4.7).
func (u Uni) Substitute(model map[string]*big.Rat) UniRat {
	out := make([]*big.Rat, len(u.coeffs))
	for i, c := range u.coeffs {
		out[i] = c.Eval(model)
	}
	return NewUniRat(out)
}

func ratInt(i int) Multi {
	return FromInt64(int64(i))
}

// Equal reports whether u and v are the same polynomial in the distinguished
// variable, coefficient by coefficient.
func (u Uni) Equal(v Uni) bool {
	return u.CanonicalKey() == v.CanonicalKey()
}

// CanonicalKey returns a deterministic digest over u's coefficient list,
// used to dedup the polynomial closure in cad/closure (spec.md §4.4).
func (u Uni) CanonicalKey() canon.Digest {
	var b strings.Builder
	for i, c := range u.coeffs {
		b.WriteString(strconv.Itoa(i))
		b.WriteByte(':')
		key := c.CanonicalKey()
		b.Write(key[:])
		b.WriteByte(';')
	}
	return canon.Sum([]byte(b.String()))
}
