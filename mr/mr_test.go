package mr

import (
	"math/big"
	"testing"

	"cadengine/poly"
)

func rat(n, d int64) *big.Rat { return big.NewRat(n, d) }

func constUni(coeffs ...int64) poly.Uni {
	cs := make([]poly.Multi, len(coeffs))
	for i, c := range coeffs {
		cs[i] = poly.FromRat(rat(c, 1))
	}
	return poly.NewUni(cs)
}

func TestRemainderIdentityNumeric(t *testing.T) {
	// p = x^3 - x, q = x^2 - 1: p is already a multiple of q, so r should be 0.
	p := constUni(0, -1, 0, 1)
	q := constUni(-1, 0, 1)
	bm, k, r := Remainder(p, q)
	if !r.IsZero() {
		t.Fatalf("expected zero remainder, got degree %d", r.Degree())
	}
	if !VerifyIdentity(p, q, bm, k, r) {
		t.Fatal("VerifyIdentity rejected a correct pseudo-remainder")
	}
}

func TestRemainderIdentityNonZero(t *testing.T) {
	// p = x^2 + 1, q = x - 1: remainder of p by q is p(1) = 2.
	p := constUni(1, 0, 1)
	q := constUni(-1, 1)
	bm, k, r := Remainder(p, q)
	if r.Degree() != 0 {
		t.Fatalf("expected constant remainder, got degree %d", r.Degree())
	}
	c, ok := r.Coeff(0).AsConstant()
	if !ok || c.Cmp(rat(2, 1)) != 0 {
		t.Fatalf("expected remainder 2, got %v", r.Coeff(0))
	}
	if !VerifyIdentity(p, q, bm, k, r) {
		t.Fatal("VerifyIdentity rejected a correct pseudo-remainder")
	}
}

func TestRemainderPanicsOnDegreeZeroDivisor(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for a constant divisor")
		}
	}()
	Remainder(constUni(1, 1), constUni(5))
}

func TestRemainderPanicsWhenDividendSmaller(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when deg(p) < deg(q)")
		}
	}()
	Remainder(constUni(1, 1), constUni(1, 1, 1))
}

func TestFastRejectCatchesCorruptedRemainder(t *testing.T) {
	p := constUni(1, 0, 1)
	q := constUni(-1, 1)
	bm, k, r := Remainder(p, q)
	corrupted := r.Add(constUni(1))
	if !FastReject(p, q, corrupted, bm, k) {
		t.Fatal("FastReject should flag a corrupted remainder")
	}
}

func TestFastRejectAcceptsCorrectRemainder(t *testing.T) {
	p := constUni(1, 0, 1)
	q := constUni(-1, 1)
	bm, k, r := Remainder(p, q)
	if FastReject(p, q, r, bm, k) {
		t.Fatal("FastReject flagged a correct remainder")
	}
}

func TestFastRejectInconclusiveOnSymbolicCoefficient(t *testing.T) {
	// A parameter coefficient makes the fast path inconclusive, never a
	// false positive.
	sym := poly.NewUni([]poly.Multi{poly.VarPoly("c"), poly.FromRat(rat(1, 1))})
	q := constUni(-1, 1)
	bm, k, r := Remainder(sym, q)
	if FastReject(sym, q, r, bm, k) {
		t.Fatal("FastReject must be inconclusive (false) for symbolic coefficients")
	}
}
