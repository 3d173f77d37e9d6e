// Package sample implements the sampler (spec.md §4.7): given a cell with
// symbolic endpoints and a numeric model for the parameters, it returns a
// concrete real algebraic number lying in the cell.
package sample

import (
	"errors"
	"fmt"
	"math/big"

	"cadengine/realroot"
	"cadengine/signconf"
)

// Model maps a parameter variable to a real algebraic number (spec.md §3's
// Model(V)), growing by one entry per solver level from the innermost
// level outward.
type Model map[string]*realroot.AlgebraicNumber

// ErrUnorderedEndpoints is returned when an Interval(RootOf(p,n),
// RootOf(q,m)) cell's endpoints turn out not to satisfy rₙ < rₘ once
// specialized — spec.md §4.7's "else the branch fails".
var ErrUnorderedEndpoints = errors.New("sample: interval endpoints are not ordered; branch fails")

// rationalModel flattens a Model to plain rationals, the shape
// poly.Uni.Substitute needs. It only succeeds if every entry is itself
// rational; spec.md §6 does not equip the real-algebraic-number
// collaborator with a way to substitute one irrational algebraic number
// into another polynomial's coefficients (only comparison, floor, ceil,
// and midpoint are in its interface), so that composition is out of scope
// here too.
func rationalModel(m Model) (map[string]*big.Rat, error) {
	out := make(map[string]*big.Rat, len(m))
	for v, a := range m {
		r, ok := a.RationalValue()
		if !ok {
			return nil, fmt.Errorf("sample: parameter %q is irrational; cannot specialize a downstream coefficient with it", v)
		}
		out[v] = r
	}
	return out, nil
}

// EvalPoint specializes a symbolic RootOf(p, n) point against model: p's
// coefficients are substituted to get a univariate polynomial over ℚ, which
// becomes the new minimal polynomial, and n is re-derived as its index in
// that polynomial's real roots (spec.md §9's root-index-stability note).
func EvalPoint(model Model, pt signconf.Point) (*realroot.AlgebraicNumber, error) {
	if pt.Kind != signconf.RootOf {
		panic("sample: EvalPoint requires a RootOf point")
	}
	rm, err := rationalModel(model)
	if err != nil {
		return nil, err
	}
	specialized := pt.Poly.Substitute(rm)
	roots := realroot.IsolateRoots(specialized)
	if pt.Index < 0 || pt.Index >= len(roots) {
		return nil, fmt.Errorf("sample: model specialization left %d real roots, index %d unavailable", len(roots), pt.Index)
	}
	return realroot.New(specialized, pt.Index), nil
}

// FindSample implements the table of spec.md §4.7.
func FindSample(model Model, cell signconf.Cell) (*realroot.AlgebraicNumber, error) {
	switch cell.Shape {
	case signconf.PointShape:
		if cell.At.Kind != signconf.RootOf {
			panic("sample: FindSample received a sentinel point; precondition violation")
		}
		return EvalPoint(model, cell.At)

	case signconf.IntervalShape:
		return findSampleInterval(model, cell.Lo, cell.Hi)
	}
	panic("sample: unknown cell shape")
}

func findSampleInterval(model Model, lo, hi signconf.Point) (*realroot.AlgebraicNumber, error) {
	switch {
	case lo.Kind == signconf.NegInf && hi.Kind == signconf.PosInf:
		return realroot.FromRat(big.NewRat(0, 1)), nil

	case lo.Kind == signconf.NegInf && hi.Kind == signconf.RootOf:
		rn, err := EvalPoint(model, hi)
		if err != nil {
			return nil, err
		}
		f := realroot.Floor(rn)
		return realroot.FromRat(new(big.Rat).SetInt(new(big.Int).Sub(f, big.NewInt(1)))), nil

	case lo.Kind == signconf.RootOf && hi.Kind == signconf.PosInf:
		rn, err := EvalPoint(model, lo)
		if err != nil {
			return nil, err
		}
		c := realroot.Ceil(rn)
		return realroot.FromRat(new(big.Rat).SetInt(new(big.Int).Add(c, big.NewInt(1)))), nil

	case lo.Kind == signconf.RootOf && hi.Kind == signconf.RootOf:
		rlo, err := EvalPoint(model, lo)
		if err != nil {
			return nil, err
		}
		rhi, err := EvalPoint(model, hi)
		if err != nil {
			return nil, err
		}
		if realroot.Compare(rlo, rhi) >= 0 {
			return nil, ErrUnorderedEndpoints
		}
		return realroot.FromRat(realroot.Midpoint(rlo, rhi)), nil
	}
	panic("sample: ill-formed interval endpoints")
}
