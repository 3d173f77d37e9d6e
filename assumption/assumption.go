// Package assumption implements the symbolic context the CAD engine's
// branch search narrows as it runs: per-coefficient-polynomial sign
// constraints plus a Gröbner basis of polynomials known to vanish
// (spec.md §3 Assumption(V), §4.2).
package assumption

import (
	"math/big"

	"cadengine/internal/canon"
	"cadengine/poly"
	"cadengine/search"
	"cadengine/sign"
)

type entry struct {
	poly    poly.Multi
	allowed sign.Set
}

// Assumption is an immutable snapshot of the search's current symbolic
// context. Forked on every sign choice, discarded on failure — never
// mutated in place (spec.md §5).
type Assumption struct {
	vars      []string
	signMap   map[canon.Digest]entry
	zeroBasis poly.GroebnerBasis
}

// New returns the empty assumption over the given parameter variables.
func New(vars []string) Assumption {
	ordered := poly.CanonicalVarOrder(vars)
	return Assumption{
		vars:      ordered,
		signMap:   map[canon.Digest]entry{},
		zeroBasis: poly.ComputeBasis(ordered, nil),
	}
}

// Vars returns the assumption's fixed parameter-variable order.
func (a Assumption) Vars() []string { return a.vars }

// ZeroBasis returns the Gröbner basis of polynomials currently known to
// vanish.
func (a Assumption) ZeroBasis() poly.GroebnerBasis { return a.zeroBasis }

// AllowedSign returns the currently feasible sign set for p (spec.md §3's
// signMap, defaulting to sign.All for polynomials not yet constrained).
func (a Assumption) AllowedSign(p poly.Multi) sign.Set {
	reduced := a.zeroBasis.Reduce(p)
	if c, ok := reduced.AsConstant(); ok {
		return sign.SetOf(sign.Of(c))
	}
	normalized, _ := normalize(reduced, a.vars)
	if e, ok := a.signMap[normalized.CanonicalKey()]; ok {
		return e.allowed
	}
	return sign.All
}

func (a Assumption) clone() Assumption {
	m := make(map[canon.Digest]entry, len(a.signMap))
	for k, v := range a.signMap {
		m[k] = v
	}
	return Assumption{vars: a.vars, signMap: m, zeroBasis: a.zeroBasis}
}

// normalize divides p through by its Grlex-leading coefficient, returning
// the normalized polynomial and the sign of the coefficient divided out
// (spec.md §4.2 step 3).
func normalize(p poly.Multi, vars []string) (poly.Multi, sign.Sign) {
	lc := p.LeadingCoeff(vars, poly.Grlex)
	s := sign.Of(lc)
	inv := invRat(lc)
	return p.ScalarMul(inv), s
}

// Assume narrows the assumption with "the sign of p lies in allowed"
// (spec.md §4.2 `assume`). It is the only place assumptions change.
func Assume(p poly.Multi, allowed sign.Set) search.Step[Assumption, struct{}] {
	return func(a Assumption) []search.Branch[Assumption, struct{}] {
		reduced := a.zeroBasis.Reduce(p)

		if c, ok := reduced.AsConstant(); ok {
			if allowed.Has(sign.Of(c)) {
				return []search.Branch[Assumption, struct{}]{{Value: struct{}{}, State: a}}
			}
			return nil
		}

		normalized, coeffSign := normalize(reduced, a.vars)
		narrowed := sign.DivSet(allowed, coeffSign)

		key := normalized.CanonicalKey()
		existing := sign.All
		if e, ok := a.signMap[key]; ok {
			existing = e.allowed
		}
		intersection := narrowed.Intersect(existing)
		if intersection.Empty() {
			return nil
		}

		if single, ok := intersection.Single(); ok && single == sign.Zero {
			next := a.clone()
			delete(next.signMap, key)
			next.zeroBasis = next.zeroBasis.WithGenerator(normalized)
			return propagateZeros(next)
		}

		next := a.clone()
		next.signMap[key] = entry{poly: normalized, allowed: intersection}
		return []search.Branch[Assumption, struct{}]{{Value: struct{}{}, State: next}}
	}
}

// propagateZeros absorbs any signMap entries that now reduce to constants
// under the (just-updated) zeroBasis, failing if one contradicts its
// allowed signs and recursing if absorbing one collapses another to
// {Zero} (spec.md §4.2 step 6). Idempotent: a second call finds nothing
// left to absorb (spec.md §8).
func propagateZeros(a Assumption) []search.Branch[Assumption, struct{}] {
	for key, e := range a.signMap {
		reduced := a.zeroBasis.Reduce(e.poly)
		if c, ok := reduced.AsConstant(); ok {
			next := a.clone()
			delete(next.signMap, key)
			if !e.allowed.Has(sign.Of(c)) {
				return nil
			}
			return propagateZeros(next)
		}
		normalized, coeffSign := normalize(reduced, a.vars)
		newKey := normalized.CanonicalKey()
		if newKey == key {
			continue
		}
		narrowed := sign.DivSet(e.allowed, coeffSign)
		existing := sign.All
		next := a.clone()
		delete(next.signMap, key)
		if old, ok := next.signMap[newKey]; ok {
			existing = old.allowed
		}
		intersection := narrowed.Intersect(existing)
		if intersection.Empty() {
			return nil
		}
		if single, ok := intersection.Single(); ok && single == sign.Zero {
			next.zeroBasis = next.zeroBasis.WithGenerator(normalized)
			return propagateZeros(next)
		}
		next.signMap[newKey] = entry{poly: normalized, allowed: intersection}
		return propagateZeros(next)
	}
	return []search.Branch[Assumption, struct{}]{{Value: struct{}{}, State: a}}
}

// SignCoeff branches on the sign of a coefficient polynomial, one
// alternative per member of {Neg, Zero, Pos}, each calling Assume and
// returning the chosen sign on success (spec.md §4.2 `signCoeff`).
func SignCoeff(c poly.Multi) search.Step[Assumption, sign.Sign] {
	alts := make([]search.Step[Assumption, sign.Sign], 0, 3)
	for _, s := range []sign.Sign{sign.Neg, sign.Zero, sign.Pos} {
		s := s
		alts = append(alts, search.Bind(Assume(c, sign.SetOf(s)), func(struct{}) search.Step[Assumption, sign.Sign] {
			return search.Return[Assumption, sign.Sign](s)
		}))
	}
	return search.Choice(alts...)
}

func invRat(r *big.Rat) *big.Rat {
	return new(big.Rat).Inv(r)
}

// Condition pairs a parameter polynomial with its currently allowed signs,
// the shape Project's emitted conditions take (spec.md §4.6 step 6's
// assumptionToConditions).
type Condition struct {
	Poly    poly.Multi
	Allowed sign.Set
}

// Conditions flattens the assumption into an explicit condition list: one
// entry per signMap constraint, plus a {Zero} entry per zeroBasis
// generator.
func (a Assumption) Conditions() []Condition {
	out := make([]Condition, 0, len(a.signMap)+len(a.zeroBasis.Generators()))
	for _, e := range a.signMap {
		out = append(out, Condition{Poly: e.poly, Allowed: e.allowed})
	}
	for _, g := range a.zeroBasis.Generators() {
		out = append(out, Condition{Poly: g, Allowed: sign.SetOf(sign.Zero)})
	}
	return out
}
