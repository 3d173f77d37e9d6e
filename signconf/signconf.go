// Package signconf implements sign-configuration construction (spec.md §3
// SignConf, §4.5): given a set of univariate polynomials, it decomposes the
// real line into alternating points and intervals annotated with every
// polynomial's sign on every cell, under the running assumption.
package signconf

import (
	"sort"

	"cadengine/assumption"
	"cadengine/closure"
	"cadengine/internal/canon"
	"cadengine/mr"
	"cadengine/normalize"
	"cadengine/poly"
	"cadengine/search"
	"cadengine/sign"
)

// PointKind distinguishes the three shapes a Point can take (spec.md §3).
type PointKind int

const (
	NegInf PointKind = iota
	PosInf
	RootOf
)

// Point is a cell endpoint: NegInf, PosInf, or the i-th real root (ascending
// order) of a univariate polynomial (spec.md §3's invariant: a RootOf is
// only minted once a sign change has established it exists).
type Point struct {
	Kind  PointKind
	Poly  poly.Uni
	Index int
}

func AtNegInf() Point                       { return Point{Kind: NegInf} }
func AtPosInf() Point                       { return Point{Kind: PosInf} }
func AtRootOf(p poly.Uni, index int) Point  { return Point{Kind: RootOf, Poly: p, Index: index} }

// Shape distinguishes a Point cell from an Interval cell.
type Shape int

const (
	PointShape Shape = iota
	IntervalShape
)

// Signs maps a polynomial (by canonical key) to its sign on a given cell.
type Signs map[canon.Digest]sign.Sign

func (s Signs) lookup(key canon.Digest) (sign.Sign, bool) {
	v, ok := s[key]
	return v, ok
}

// set returns a copy of s with key mapped to v, leaving s unmodified
// (cells are immutable snapshots, per the assumption package's discipline).
func (s Signs) set(key canon.Digest, v sign.Sign) Signs {
	out := make(Signs, len(s)+1)
	for k, sg := range s {
		out[k] = sg
	}
	out[key] = v
	return out
}

// Cell is one entry of a SignConf: a Point with a single sign map, or an
// Interval with a sign map describing every polynomial's constant sign
// throughout the open interval.
type Cell struct {
	Shape Shape
	At    Point
	Lo    Point
	Hi    Point
	Signs Signs
}

// SignOf looks up p's recorded sign on c, if any.
func (c Cell) SignOf(p poly.Uni) (sign.Sign, bool) {
	return c.Signs.lookup(p.CanonicalKey())
}

// IsSentinel reports whether c is one of the two infinite boundary points
// every SignConf starts and ends with.
func (c Cell) IsSentinel() bool {
	return c.Shape == PointShape && (c.At.Kind == NegInf || c.At.Kind == PosInf)
}

// SignConf is the full alternating decomposition, starting and ending with
// the sentinel points Point(NegInf) and Point(PosInf).
type SignConf struct {
	Cells []Cell
}

// BuildSignConf computes the sign configuration for P (spec.md §4.5):
// take the polynomial closure, sort by ascending degree, then fold each
// member through refineSignConf.
func BuildSignConf(P []poly.Uni) search.Step[assumption.Assumption, SignConf] {
	return search.Bind(closure.CollectPolynomials(P), func(pstar []poly.Uni) search.Step[assumption.Assumption, SignConf] {
		sorted := append([]poly.Uni{}, pstar...)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Degree() < sorted[j].Degree() })

		seed := SignConf{Cells: []Cell{
			{Shape: PointShape, At: AtNegInf(), Signs: Signs{}},
			{Shape: IntervalShape, Lo: AtNegInf(), Hi: AtPosInf(), Signs: Signs{}},
			{Shape: PointShape, At: AtPosInf(), Signs: Signs{}},
		}}
		return foldPolys(sorted, seed)
	})
}

func foldPolys(ps []poly.Uni, conf SignConf) search.Step[assumption.Assumption, SignConf] {
	if len(ps) == 0 {
		return search.Return[assumption.Assumption, SignConf](conf)
	}
	return search.Bind(RefineSignConf(ps[0], conf), func(next SignConf) search.Step[assumption.Assumption, SignConf] {
		return foldPolys(ps[1:], next)
	})
}

// RefineSignConf folds one polynomial into conf: every existing point is
// annotated with p's sign there, then every interval triple is inspected
// and split wherever p provably changes sign (spec.md §4.5).
func RefineSignConf(p poly.Uni, conf SignConf) search.Step[assumption.Assumption, SignConf] {
	key := p.CanonicalKey()
	return search.Bind(annotatePoints(p, key, conf.Cells), func(cells []Cell) search.Step[assumption.Assumption, SignConf] {
		return search.Return[assumption.Assumption, SignConf](SignConf{Cells: splitIntervals(p, key, cells)})
	})
}

func annotatePoints(p poly.Uni, key canon.Digest, cells []Cell) search.Step[assumption.Assumption, []Cell] {
	return annotateRec(p, key, cells, 0, nil)
}

func annotateRec(p poly.Uni, key canon.Digest, cells []Cell, idx int, acc []Cell) search.Step[assumption.Assumption, []Cell] {
	if idx == len(cells) {
		return search.Return[assumption.Assumption, []Cell](acc)
	}
	c := cells[idx]
	if c.Shape == IntervalShape {
		return annotateRec(p, key, cells, idx+1, append(append([]Cell{}, acc...), c))
	}
	return search.Bind(signAt(p, c.At, c.Signs), func(s sign.Sign) search.Step[assumption.Assumption, []Cell] {
		next := Cell{Shape: PointShape, At: c.At, Signs: c.Signs.set(key, s)}
		return annotateRec(p, key, cells, idx+1, append(append([]Cell{}, acc...), next))
	})
}

// signAt computes sign(p) at pt, using known (the accumulated sign map of
// the point being evaluated) to resolve sign(r) at roots of other members
// of the closure (spec.md §4.5's signAt).
func signAt(p poly.Uni, pt Point, known Signs) search.Step[assumption.Assumption, sign.Sign] {
	switch pt.Kind {
	case PosInf:
		return assumption.SignCoeff(p.LeadingCoeff())
	case NegInf:
		return search.Map(assumption.SignCoeff(p.LeadingCoeff()), func(s sign.Sign) sign.Sign {
			if p.Degree()%2 == 1 {
				return s.Negate()
			}
			return s
		})
	case RootOf:
		q := pt.Poly
		bm, k, r := mr.Remainder(p, q)
		return search.Bind(normalize.Poly(r), func(nr poly.Uni) search.Step[assumption.Assumption, sign.Sign] {
			var rSignStep search.Step[assumption.Assumption, sign.Sign]
			if nr.Degree() > 0 {
				rSignStep = lookupKnownSign(nr, known)
			} else {
				rSignStep = assumption.SignCoeff(nr.Coeff(0))
			}
			if k%2 == 0 {
				return rSignStep
			}
			return search.Bind(rSignStep, func(rs sign.Sign) search.Step[assumption.Assumption, sign.Sign] {
				return search.Map(assumption.SignCoeff(bm), func(bs sign.Sign) sign.Sign {
					return rs.Mul(bs)
				})
			})
		})
	}
	panic("signconf: unknown point kind")
}

func lookupKnownSign(nr poly.Uni, known Signs) search.Step[assumption.Assumption, sign.Sign] {
	if s, ok := known.lookup(nr.CanonicalKey()); ok {
		return search.Return[assumption.Assumption, sign.Sign](s)
	}
	panic("signconf: closure invariant violated, mr-remainder's sign is not present in the configuration")
}

// splitIntervals walks the annotated cells left to right, splitting every
// interval whose endpoint signs witness a sign change of p, and minting
// ascending RootOf(p, n) indices. n advances past any point already known
// to be a zero of p, keeping indices globally consistent with real root
// order (spec.md §4.5's root-indexing tie-break).
func splitIntervals(p poly.Uni, key canon.Digest, cells []Cell) []Cell {
	out := make([]Cell, 0, len(cells))
	n := 0
	for i := 0; i < len(cells); i++ {
		c := cells[i]
		if c.Shape == PointShape {
			if s, ok := c.Signs.lookup(key); ok && s == sign.Zero {
				n++
			}
			out = append(out, c)
			continue
		}

		left := out[len(out)-1]
		right := cells[i+1]
		s1, _ := left.Signs.lookup(key)
		s2, _ := right.Signs.lookup(key)

		switch {
		case s1 == s2 || s1 == sign.Zero || s2 == sign.Zero:
			keep := s1
			if s1 == sign.Zero {
				keep = s2
			}
			out = append(out, Cell{Shape: IntervalShape, Lo: c.Lo, Hi: c.Hi, Signs: c.Signs.set(key, keep)})
		default:
			rootPt := AtRootOf(p, n)
			n++
			out = append(out,
				Cell{Shape: IntervalShape, Lo: c.Lo, Hi: rootPt, Signs: c.Signs.set(key, s1)},
				Cell{Shape: PointShape, At: rootPt, Signs: c.Signs.set(key, sign.Zero)},
				Cell{Shape: IntervalShape, Lo: rootPt, Hi: c.Hi, Signs: c.Signs.set(key, s2)},
			)
		}
	}
	return out
}
