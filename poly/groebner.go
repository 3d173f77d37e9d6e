package poly

import (
	"math/big"
	"sort"
)

// GroebnerBasis is a reduced Gröbner basis under Grevlex, over a fixed
// variable order. It is the concrete collaborator behind spec.md §2's
// black-box "Gröbner basis of coefficient polynomials known to be zero".
//
// The Buchberger loop (S-polynomial generation, reduction against the
// current basis, interreduction) follows the same shape as the commutative
// core of the Buchberger implementation in the nag package referenced
// alongside this repository's other polynomial tooling, adapted from that
// package's noncommutative-word monomials and generic Field[K] coefficients
// down to this module's concrete exponent-vector monomials and *big.Rat
// coefficients.
type GroebnerBasis struct {
	vars  []string
	basis []Multi
}

// Vars returns the variable order the basis was computed against.
func (g GroebnerBasis) Vars() []string { return g.vars }

// Generators returns the basis polynomials.
func (g GroebnerBasis) Generators() []Multi { return g.basis }

// Empty reports whether the basis has no generators (the zero ideal).
func (g GroebnerBasis) Empty() bool { return len(g.basis) == 0 }

const maxBuchbergerIterations = 10000

// ComputeBasis returns the reduced Grevlex Gröbner basis generated by gens,
// using vars as the fixed variable priority order.
func ComputeBasis(vars []string, gens []Multi) GroebnerBasis {
	var g []Multi
	for _, p := range gens {
		if !p.IsZero() {
			g = append(g, monic(p, vars))
		}
	}
	g = interreduce(g, vars)

	type pair struct{ i, j int }
	var pairs []pair
	for i := 0; i < len(g); i++ {
		for j := i + 1; j < len(g); j++ {
			pairs = append(pairs, pair{i, j})
		}
	}

	for iter := 0; len(pairs) > 0 && iter < maxBuchbergerIterations; iter++ {
		p := pairs[0]
		pairs = pairs[1:]

		s := sPolynomial(g[p.i], g[p.j], vars)
		r := reduceBy(s, g, vars)
		if r.IsZero() {
			continue
		}
		r = monic(r, vars)
		for i := range g {
			pairs = append(pairs, pair{i, len(g)})
		}
		g = append(g, r)
	}

	g = interreduce(g, vars)
	sort.Slice(g, func(i, j int) bool {
		return lessBasis(g[i], g[j], vars)
	})
	return GroebnerBasis{vars: vars, basis: g}
}

func lessBasis(a, b Multi, vars []string) bool {
	am, _ := a.LeadingTerm(vars, Grevlex)
	bm, _ := b.LeadingTerm(vars, Grevlex)
	return compareMonomials(am, bm, vars, Grevlex) < 0
}

// monic divides p through by its leading coefficient so that its leading
// term is 1 under Grevlex.
func monic(p Multi, vars []string) Multi {
	lc := p.LeadingCoeff(vars, Grevlex)
	return p.ScalarMul(new(big.Rat).Inv(lc))
}

// sPolynomial computes the S-polynomial of a and b.
func sPolynomial(a, b Multi, vars []string) Multi {
	am, ac := a.LeadingTerm(vars, Grevlex)
	bm, bc := b.LeadingTerm(vars, Grevlex)
	l := am.Lcm(bm)

	aCoeff := new(big.Rat).Quo(big.NewRat(1, 1), ac)
	bCoeff := new(big.Rat).Quo(big.NewRat(1, 1), bc)

	aTerm := Multi{terms: map[string]term{am.Div(l).key(): {exp: am.Div(l), coeff: aCoeff}}}
	bTerm := Multi{terms: map[string]term{bm.Div(l).key(): {exp: bm.Div(l), coeff: bCoeff}}}

	return aTerm.Mul(a).Sub(bTerm.Mul(b))
}

const maxReduceIterations = 100000

// reduceBy performs multivariate division of p by the generators g,
// repeatedly cancelling the leading term against any generator whose
// leading monomial divides it, until no generator applies; the accumulated
// non-divisible terms form the remainder.
//
// Each step either cancels cur's leading monomial outright or moves it to
// the remainder, so cur's leading monomial strictly descends in Grevlex
// (its term count may grow); maxReduceIterations
// guards that invariant the way mr.Remainder's deg(r) < deg(q) assertion
// guards its own division loop.
func reduceBy(p Multi, g []Multi, vars []string) Multi {
	remainder := Zero()
	cur := p
	for iter := 0; !cur.IsZero(); iter++ {
		if iter >= maxReduceIterations {
			panic("poly: reduceBy exceeded maxReduceIterations, leading term failed to descend")
		}
		lm, lc := cur.LeadingTerm(vars, Grevlex)
		reduced := false
		for _, gi := range g {
			gm, gc := gi.LeadingTerm(vars, Grevlex)
			if gm.Divides(lm) {
				quotMono := gm.Div(lm)
				coeff := new(big.Rat).Quo(lc, gc)
				sub := Multi{terms: map[string]term{quotMono.key(): {exp: quotMono, coeff: coeff}}}
				cur = cur.Sub(sub.Mul(gi))
				reduced = true
				break
			}
		}
		if !reduced {
			remainder = remainder.Add(Multi{terms: map[string]term{lm.key(): {exp: lm, coeff: lc}}})
			cur = cur.Sub(Multi{terms: map[string]term{lm.key(): {exp: lm, coeff: lc}}})
		}
	}
	return remainder
}

// interreduce removes generators whose leading term is a multiple of
// another's and fully reduces each remaining generator against the rest.
func interreduce(g []Multi, vars []string) []Multi {
	if len(g) == 0 {
		return g
	}
	changed := true
	for changed {
		changed = false
		for i := 0; i < len(g); i++ {
			rest := make([]Multi, 0, len(g)-1)
			rest = append(rest, g[:i]...)
			rest = append(rest, g[i+1:]...)
			r := reduceBy(g[i], rest, vars)
			if r.IsZero() {
				g = rest
				changed = true
				break
			}
			if !r.Equal(g[i]) {
				g[i] = monic(r, vars)
				changed = true
			}
		}
	}
	return g
}

// Reduce reduces p modulo the basis, returning the remainder.
func (g GroebnerBasis) Reduce(p Multi) Multi {
	if g.Empty() {
		return p
	}
	return reduceBy(p, g.basis, g.vars)
}

// WithGenerator returns the Gröbner basis for the ideal generated by g's
// current generators together with p, recomputed from scratch. Used by
// assume (spec.md §4.2 step 6) when a polynomial collapses to {Zero}.
func (g GroebnerBasis) WithGenerator(p Multi) GroebnerBasis {
	gens := append(append([]Multi{}, g.basis...), p)
	return ComputeBasis(g.vars, gens)
}
