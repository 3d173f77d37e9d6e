// Package mr implements the sign-respecting pseudo-remainder mr(p, q), the
// core algebraic primitive of the CAD engine (spec.md §4.1): the data needed
// to derive the sign of p at a root of q without introducing fractions.
package mr

import (
	"cadengine/internal/modcheck"
	"cadengine/poly"
	"math/big"
	"slices"
)

// Debug enables postcondition assertions after every Remainder call
// (spec.md §7: "assertions should be preserved as runtime checks in debug
// builds... production builds may compile them out"): deg(r) < deg(q) always,
// and the exact identity via VerifyIdentity when q's leading coefficient is a
// rational constant. It is off by default.
var Debug = false

// Remainder computes the sign-respecting pseudo-remainder of p by q.
//
// Precondition: deg(p) >= deg(q) > 0; violating it is a programmer bug
// (spec.md §7) and panics rather than returning an error.
//
// Returns (bm, k, r) such that bm^k * p = q*l + r for some quotient l, with
// deg(r) < deg(q), bm the leading coefficient of q, and k = deg(p)-deg(q)+1.
func Remainder(p, q poly.Uni) (bm poly.Multi, k int, r poly.Uni) {
	if q.Degree() <= 0 {
		panic("mr: divisor must have positive degree")
	}
	if p.Degree() < q.Degree() {
		panic("mr: deg(p) < deg(q)")
	}

	bm = q.LeadingCoeff()
	k = p.Degree() - q.Degree() + 1

	rem := p
	e := k
	for !rem.IsZero() && rem.Degree() >= q.Degree() {
		e--
		shift := rem.Degree() - q.Degree()
		lc := rem.LeadingCoeff()
		rem = rem.ScalarMul(bm).Sub(shiftBy(q, shift).ScalarMul(lc))
	}
	if e > 0 {
		rem = rem.ScalarMul(powMulti(bm, e))
	}
	r = rem

	if Debug {
		if r.Degree() >= q.Degree() {
			panic("mr: postcondition violated, deg(r) >= deg(q)")
		}
		if _, ok := q.LeadingCoeff().AsConstant(); ok && !VerifyIdentity(p, q, bm, k, r) {
			panic("mr: postcondition violated, bm^k*p - r is not divisible by q")
		}
	}
	return bm, k, r
}

// shiftBy returns u * x^n.
func shiftBy(u poly.Uni, n int) poly.Uni {
	if n == 0 {
		return u
	}
	out := make([]poly.Multi, u.Degree()+1+n)
	for i := 0; i < n; i++ {
		out[i] = poly.Zero()
	}
	for i := 0; i <= u.Degree(); i++ {
		out[i+n] = u.Coeff(i)
	}
	return poly.NewUni(out)
}

func powMulti(base poly.Multi, k int) poly.Multi {
	out := poly.FromInt64(1)
	for i := 0; i < k; i++ {
		out = out.Mul(base)
	}
	return out
}

// VerifyIdentity recomputes the defining identity bm^k*p - r exactly and
// checks that it is divisible by q, i.e. that (bm, k, r) could have come
// from a correct pseudo-division of p by q. Used by tests, not by
// production callers; exact and authoritative, unlike FastReject below.
func VerifyIdentity(p, q poly.Uni, bm poly.Multi, k int, r poly.Uni) bool {
	lhs := p.ScalarMul(powMulti(bm, k)).Sub(r)
	_, rem := longDivExactCoeffs(lhs, q)
	return rem.IsZero()
}

// longDivExactCoeffs divides u by v assuming v's leading coefficient is a
// nonzero rational constant (true whenever this is used to double check an
// mr() result against a monic-under-the-assumption divisor in tests).
func longDivExactCoeffs(u, v poly.Uni) (q, r poly.Uni) {
	lc, ok := v.LeadingCoeff().AsConstant()
	if !ok || lc.Sign() == 0 {
		panic("mr: longDivExactCoeffs requires a nonzero constant leading coefficient")
	}
	inv := new(big.Rat).Inv(lc)
	rem := u
	quotCoeffs := make([]poly.Multi, 0)
	for !rem.IsZero() && rem.Degree() >= v.Degree() {
		shift := rem.Degree() - v.Degree()
		factor := rem.LeadingCoeff().ScalarMul(inv)
		for len(quotCoeffs) <= shift {
			quotCoeffs = append(quotCoeffs, poly.Zero())
		}
		quotCoeffs[shift] = factor
		rem = rem.Sub(shiftBy(v, shift).ScalarMul(factor))
	}
	return poly.NewUni(quotCoeffs), rem
}

// FastReject checks the mr identity bm^k*p == r (mod q) over a large prime
// field (internal/modcheck): it reduces the residues of bm^k*p - r modulo q
// there and reports true only if the remainder is nonzero, i.e. the identity
// is certainly violated. It applies only when p, q, r, and bm are
// all parameter-free (every coefficient a rational constant); in the
// symbolic case it always returns false (inconclusive), since reducing an
// unresolved parameter to 0 could manufacture a false violation. A false
// result never proves correctness — it only ever fails a test fast, never
// accepts a result (spec.md §7).
func FastReject(p, q, r poly.Uni, bm poly.Multi, k int) bool {
	pv, ok := numericCoeffs(p)
	if !ok {
		return false
	}
	qv, ok := numericCoeffs(q)
	if !ok {
		return false
	}
	rv, ok := numericCoeffs(r)
	if !ok {
		return false
	}
	bmc, ok := bm.AsConstant()
	if !ok {
		return false
	}
	bmv, ok := modcheck.EvalRat(bmc)
	if !ok {
		return false
	}

	// bm^k*p - r must be divisible by q: reduce it modulo q over the field.
	lcq, _ := q.LeadingCoeff().AsConstant()
	inv, ok := modcheck.EvalRat(new(big.Rat).Inv(lcq))
	n, diff, rpad := len(qv)-1, make([]uint64, len(pv)), append(rv, make([]uint64, len(pv)-len(rv))...)
	for i := range diff {
		diff[i] = modcheck.SubMod(modcheck.MulMod(modcheck.PowMod(bmv, k), pv[i]), rpad[i])
	}
	for d := len(diff) - 1; ok && d >= n; d-- {
		for j, f := 0, modcheck.MulMod(diff[d], inv); j <= n; j++ {
			diff[d-n+j] = modcheck.SubMod(diff[d-n+j], modcheck.MulMod(f, qv[j]))
		}
	}
	return ok && slices.ContainsFunc(diff, func(c uint64) bool { return c != 0 })
}

// numericCoeffs reduces u's coefficients to modular residues, failing if any
// coefficient is not a rational constant.
func numericCoeffs(u poly.Uni) ([]uint64, bool) {
	out := make([]uint64, u.Degree()+1)
	for i := range out {
		c, ok := u.Coeff(i).AsConstant()
		if !ok {
			return nil, false
		}
		v, ok := modcheck.EvalRat(c)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func evalAt(coeffsLowToHigh []uint64, x uint64) uint64 {
	out := uint64(0)
	for i := len(coeffsLowToHigh) - 1; i >= 0; i-- {
		out = modcheck.AddMod(modcheck.MulMod(out, x), coeffsLowToHigh[i])
	}
	return out
}
