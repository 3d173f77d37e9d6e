// Package normalize implements normalizePoly (spec.md §4.3): stripping
// high-order terms of a univariate-in-x polynomial whose coefficients the
// current assumption cannot yet certify are nonzero.
package normalize

import (
	"cadengine/assumption"
	"cadengine/poly"
	"cadengine/search"
	"cadengine/sign"
)

// Poly walks p's terms in descending degree. For the current highest
// remaining term, it branches: assume the coefficient nonzero and keep it as
// the true leading coefficient, or assume it is Zero and drop the term,
// continuing with what remains. The output's leading coefficient has sign at
// worst {Pos, Neg} under the returned assumption.
func Poly(p poly.Uni) search.Step[assumption.Assumption, poly.Uni] {
	if p.IsZero() || p.Degree() == 0 {
		return search.Return[assumption.Assumption, poly.Uni](p)
	}

	lc := p.LeadingCoeff()
	truncated := truncate(p)

	keepNonzero := search.Bind(
		assumption.Assume(lc, sign.SetOf(sign.Neg, sign.Pos)),
		func(struct{}) search.Step[assumption.Assumption, poly.Uni] {
			return search.Return[assumption.Assumption, poly.Uni](p)
		},
	)
	dropZero := search.Bind(
		assumption.Assume(lc, sign.SetOf(sign.Zero)),
		func(struct{}) search.Step[assumption.Assumption, poly.Uni] {
			return Poly(truncated)
		},
	)

	return search.Choice(keepNonzero, dropZero)
}

// truncate drops p's highest-degree term.
func truncate(p poly.Uni) poly.Uni {
	coeffs := make([]poly.Multi, p.Degree())
	for i := 0; i < p.Degree(); i++ {
		coeffs[i] = p.Coeff(i)
	}
	return poly.NewUni(coeffs)
}
