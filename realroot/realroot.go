// Package realroot implements the real-algebraic-number collaborator
// spec.md §6 treats as a black box: root counting and isolation via
// Sturm's theorem, and the comparison/floor/ceiling/midpoint operations
// the sampler needs. Grounded on the Sturm-chain shape of
// SeanJxie-polygo's sturmChain/countRootsWithinWSC/findRootWithinWSC,
// redone over exact big.Rat arithmetic in place of float64 so that
// Compare and friends are exact rather than approximate.
package realroot

import (
	"fmt"
	"math/big"

	"cadengine/poly"
	"cadengine/sign"
)

// Interval is a rational isolating interval: a single real root of some
// polynomial lies in [Lo, Hi].
type Interval struct {
	Lo, Hi *big.Rat
}

func (iv Interval) width() *big.Rat {
	return new(big.Rat).Sub(iv.Hi, iv.Lo)
}

func (iv Interval) midpoint() *big.Rat {
	return new(big.Rat).Quo(new(big.Rat).Add(iv.Lo, iv.Hi), big.NewRat(2, 1))
}

// AlgebraicNumber is a real root of MinPoly identified by its 0-based
// index in ascending order (spec.md §3's RootOf convention, §9's
// root-index-stability note). interval is a cached isolating interval,
// narrowed in place by Refine.
type AlgebraicNumber struct {
	MinPoly  poly.UniRat
	Index    int
	interval Interval
}

// FromRat wraps a rational number as a degree-1 algebraic number, letting
// rational cell endpoints (every Interval sample in spec.md §4.7's table
// except the RootOf cases) share the Model(V) representation with genuine
// irrational roots.
func FromRat(r *big.Rat) *AlgebraicNumber {
	minPoly := poly.NewUniRat([]*big.Rat{new(big.Rat).Neg(r), big.NewRat(1, 1)})
	return &AlgebraicNumber{MinPoly: minPoly, Index: 0, interval: Interval{Lo: r, Hi: r}}
}

// New builds the algebraic number that is MinPoly's index-th real root,
// isolating it immediately so every later operation starts from a valid
// interval.
func New(minPoly poly.UniRat, index int) *AlgebraicNumber {
	intervals := IsolateRoots(minPoly)
	if index < 0 || index >= len(intervals) {
		panic(fmt.Sprintf("realroot: index %d out of range, polynomial has %d real roots", index, len(intervals)))
	}
	return &AlgebraicNumber{MinPoly: minPoly, Index: index, interval: intervals[index]}
}

// Interval returns a's current isolating interval.
func (a *AlgebraicNumber) Interval() Interval { return a.interval }

// RationalValue returns a's exact value when MinPoly has degree 1,
// i.e. a is actually rational, and false otherwise.
func (a *AlgebraicNumber) RationalValue() (*big.Rat, bool) {
	if a.MinPoly.Degree() != 1 {
		return nil, false
	}
	c0 := a.MinPoly.Coeff(0)
	c1 := a.MinPoly.Coeff(1)
	root := new(big.Rat).Quo(c0, c1)
	return root.Neg(root), true
}

// Refine narrows a's isolating interval until its width is below prec.
func (a *AlgebraicNumber) Refine(prec *big.Rat) {
	if r, ok := a.RationalValue(); ok {
		a.interval = Interval{Lo: r, Hi: r}
		return
	}
	chain := sturmChain(a.MinPoly)
	for a.interval.width().Cmp(prec) >= 0 {
		a.bisect(chain)
	}
}

// bisect halves a's interval, using the Sturm chain to decide which half
// still contains the root.
func (a *AlgebraicNumber) bisect(chain []poly.UniRat) {
	mid := a.interval.midpoint()
	for i := 0; i < 64 && evalSign(a.MinPoly, mid) == sign.Zero; i++ {
		mid = new(big.Rat).Quo(new(big.Rat).Add(a.interval.Lo, mid), big.NewRat(2, 1))
	}
	leftCount := countRootsBetween(chain, a.interval.Lo, mid)
	if leftCount >= 1 {
		a.interval = Interval{Lo: a.interval.Lo, Hi: mid}
	} else {
		a.interval = Interval{Lo: mid, Hi: a.interval.Hi}
	}
}

const maxRefinements = 200

// Compare orders two algebraic numbers exactly, refining both intervals
// until they separate (or, in the degenerate case of a shared root
// reachable through two non-coprime minimal polynomials, giving up after
// maxRefinements and reporting equality).
func Compare(a, b *AlgebraicNumber) int {
	if ra, ok := a.RationalValue(); ok {
		if rb, ok2 := b.RationalValue(); ok2 {
			return ra.Cmp(rb)
		}
	}
	for i := 0; i < maxRefinements; i++ {
		ai, bi := a.interval, b.interval
		if ai.Hi.Cmp(bi.Lo) <= 0 {
			return -1
		}
		if bi.Hi.Cmp(ai.Lo) <= 0 {
			return 1
		}
		a.Refine(half(ai.width()))
		b.Refine(half(bi.width()))
	}
	return 0
}

// Floor returns ⌊a⌋.
func Floor(a *AlgebraicNumber) *big.Int {
	if r, ok := a.RationalValue(); ok {
		return floorRat(r)
	}
	for i := 0; i < maxRefinements; i++ {
		fl, fh := floorRat(a.interval.Lo), floorRat(a.interval.Hi)
		if fl.Cmp(fh) == 0 {
			return fl
		}
		a.Refine(half(a.interval.width()))
	}
	panic("realroot: Floor did not converge")
}

// Ceil returns ⌈a⌉.
func Ceil(a *AlgebraicNumber) *big.Int {
	if r, ok := a.RationalValue(); ok {
		return ceilRat(r)
	}
	for i := 0; i < maxRefinements; i++ {
		cl, ch := ceilRat(a.interval.Lo), ceilRat(a.interval.Hi)
		if cl.Cmp(ch) == 0 {
			return cl
		}
		a.Refine(half(a.interval.width()))
	}
	panic("realroot: Ceil did not converge")
}

// Midpoint returns a rational number strictly between a and b, required
// to satisfy a < b (spec.md §4.7's Interval(RootOf(p,n), RootOf(q,m))
// sample). It need not be the arithmetic average of the two algebraic
// values — any rational point separating their isolating intervals
// serves the sampler equally well.
func Midpoint(a, b *AlgebraicNumber) *big.Rat {
	for i := 0; i < maxRefinements; i++ {
		if a.interval.Hi.Cmp(b.interval.Lo) <= 0 {
			return new(big.Rat).Quo(new(big.Rat).Add(a.interval.Hi, b.interval.Lo), big.NewRat(2, 1))
		}
		a.Refine(half(a.interval.width()))
		b.Refine(half(b.interval.width()))
	}
	panic("realroot: Midpoint called on operands that are not strictly ordered")
}

// RealRootCount returns the number of distinct real roots of p.
func RealRootCount(p poly.UniRat) int {
	if p.IsZero() {
		panic("realroot: the zero polynomial has infinitely many roots")
	}
	chain := sturmChain(p)
	bound := CauchyBound(p)
	return countRootsBetween(chain, new(big.Rat).Neg(bound), bound)
}

// IsolateRoots returns one isolating interval per real root of p, in
// ascending order.
func IsolateRoots(p poly.UniRat) []Interval {
	if p.IsZero() {
		panic("realroot: the zero polynomial has infinitely many roots")
	}
	total := RealRootCount(p)
	if total == 0 {
		return nil
	}
	chain := sturmChain(p)
	bound := CauchyBound(p)
	return isolateRec(p, chain, new(big.Rat).Neg(bound), bound, total)
}

func isolateRec(p poly.UniRat, chain []poly.UniRat, lo, hi *big.Rat, expected int) []Interval {
	if expected == 0 {
		return nil
	}
	if expected == 1 {
		return []Interval{{Lo: lo, Hi: hi}}
	}
	mid := new(big.Rat).Quo(new(big.Rat).Add(lo, hi), big.NewRat(2, 1))
	for i := 0; i < 64 && evalSign(p, mid) == sign.Zero; i++ {
		mid = new(big.Rat).Quo(new(big.Rat).Add(lo, mid), big.NewRat(2, 1))
	}
	leftCount := countRootsBetween(chain, lo, mid)
	rightCount := expected - leftCount
	out := isolateRec(p, chain, lo, mid, leftCount)
	return append(out, isolateRec(p, chain, mid, hi, rightCount)...)
}

// CauchyBound returns B such that every real root of p lies in (-B, B).
func CauchyBound(p poly.UniRat) *big.Rat {
	if p.Degree() <= 0 {
		return big.NewRat(1, 1)
	}
	lc := p.LeadingCoeff()
	maxRatio := new(big.Rat)
	for i := 0; i < p.Degree(); i++ {
		c := p.Coeff(i)
		if c.Sign() == 0 {
			continue
		}
		ratio := new(big.Rat).Abs(new(big.Rat).Quo(c, lc))
		if ratio.Cmp(maxRatio) > 0 {
			maxRatio = ratio
		}
	}
	return new(big.Rat).Add(big.NewRat(1, 1), maxRatio)
}

// sturmChain builds p's Sturm sequence (p, p', and successive negated
// remainders), stopping once a term reaches degree 0.
func sturmChain(p poly.UniRat) []poly.UniRat {
	chain := []poly.UniRat{p, p.Derivative()}
	for i := 1; i < p.Degree(); i++ {
		if chain[i].Degree() <= 0 {
			break
		}
		_, rem := chain[i-1].LongDiv(chain[i])
		chain = append(chain, rem.ScalarMul(big.NewRat(-1, 1)))
	}
	return chain
}

func evalSign(p poly.UniRat, x *big.Rat) sign.Sign {
	return sign.Of(p.Eval(x))
}

func signsAt(chain []poly.UniRat, x *big.Rat) []sign.Sign {
	out := make([]sign.Sign, len(chain))
	for i, p := range chain {
		out[i] = evalSign(p, x)
	}
	return out
}

func signVariations(signs []sign.Sign) int {
	count := 0
	prev := sign.Zero
	havePrev := false
	for _, s := range signs {
		if s == sign.Zero {
			continue
		}
		if havePrev && s != prev {
			count++
		}
		prev = s
		havePrev = true
	}
	return count
}

func countRootsBetween(chain []poly.UniRat, lo, hi *big.Rat) int {
	return signVariations(signsAt(chain, lo)) - signVariations(signsAt(chain, hi))
}

func half(r *big.Rat) *big.Rat {
	return new(big.Rat).Quo(r, big.NewRat(2, 1))
}

func floorRat(r *big.Rat) *big.Int {
	return new(big.Int).Div(r.Num(), r.Denom())
}

func ceilRat(r *big.Rat) *big.Int {
	q, m := new(big.Int).DivMod(r.Num(), r.Denom(), new(big.Int))
	if m.Sign() == 0 {
		return q
	}
	return q.Add(q, big.NewInt(1))
}
