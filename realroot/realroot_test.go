package realroot

import (
	"math/big"
	"testing"

	"cadengine/poly"
)

func uniRat(coeffs ...int64) poly.UniRat {
	rs := make([]*big.Rat, len(coeffs))
	for i, c := range coeffs {
		rs[i] = big.NewRat(c, 1)
	}
	return poly.NewUniRat(rs)
}

func TestRealRootCountQuadratic(t *testing.T) {
	// x^2 - 1 has two real roots.
	p := uniRat(-1, 0, 1)
	if got := RealRootCount(p); got != 2 {
		t.Fatalf("RealRootCount(x^2-1) = %d, want 2", got)
	}
}

func TestRealRootCountNoRealRoots(t *testing.T) {
	// x^2 + 1 has no real roots.
	p := uniRat(1, 0, 1)
	if got := RealRootCount(p); got != 0 {
		t.Fatalf("RealRootCount(x^2+1) = %d, want 0", got)
	}
}

func TestIsolateRootsOrdersAscending(t *testing.T) {
	p := uniRat(-1, 0, 1) // x^2 - 1, roots at -1 and 1
	ivs := IsolateRoots(p)
	if len(ivs) != 2 {
		t.Fatalf("expected 2 isolating intervals, got %d", len(ivs))
	}
	if ivs[0].Hi.Cmp(ivs[1].Lo) > 0 {
		t.Fatal("intervals should be ascending and non-overlapping")
	}
	if ivs[0].Hi.Sign() > 0 {
		t.Fatal("first root should isolate the negative root")
	}
	if ivs[1].Lo.Sign() < 0 {
		t.Fatal("second root should isolate the positive root")
	}
}

func TestNewAndRefineConverges(t *testing.T) {
	p := uniRat(-2, 0, 1) // x^2 - 2, roots at +/- sqrt(2)
	a := New(p, 1)        // the positive root
	a.Refine(big.NewRat(1, 1000000))
	iv := a.Interval()
	width := new(big.Rat).Sub(iv.Hi, iv.Lo)
	if width.Cmp(big.NewRat(1, 1000000)) >= 0 {
		t.Fatalf("refine should shrink interval below precision, width = %s", width.RatString())
	}
	if iv.Lo.Sign() <= 0 || iv.Hi.Sign() <= 0 {
		t.Fatal("interval for the positive root of x^2-2 should stay positive")
	}
}

func TestFromRatIsRational(t *testing.T) {
	a := FromRat(big.NewRat(3, 2))
	r, ok := a.RationalValue()
	if !ok || r.Cmp(big.NewRat(3, 2)) != 0 {
		t.Fatalf("RationalValue = %v, %v, want 3/2, true", r, ok)
	}
}

func TestCompareDistinguishesRoots(t *testing.T) {
	p := uniRat(-2, 0, 1) // x^2 - 2
	neg := New(p, 0)
	pos := New(p, 1)
	if Compare(neg, pos) >= 0 {
		t.Fatal("negative root should compare less than positive root")
	}
	if Compare(pos, neg) <= 0 {
		t.Fatal("comparison should be antisymmetric")
	}
}

func TestCompareRationalFastPath(t *testing.T) {
	a := FromRat(big.NewRat(1, 2))
	b := FromRat(big.NewRat(3, 4))
	if Compare(a, b) >= 0 {
		t.Fatal("1/2 should compare less than 3/4")
	}
}

func TestFloorAndCeilOnIrrational(t *testing.T) {
	p := uniRat(-2, 0, 1) // x^2 - 2, positive root ~1.41421356
	a := New(p, 1)
	if got := Floor(a); got.Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("Floor(sqrt2) = %s, want 1", got.String())
	}
	b := New(p, 1)
	if got := Ceil(b); got.Cmp(big.NewInt(2)) != 0 {
		t.Fatalf("Ceil(sqrt2) = %s, want 2", got.String())
	}
}

func TestFloorAndCeilOnRational(t *testing.T) {
	a := FromRat(big.NewRat(7, 2)) // 3.5
	if got := Floor(a); got.Cmp(big.NewInt(3)) != 0 {
		t.Fatalf("Floor(7/2) = %s, want 3", got.String())
	}
	b := FromRat(big.NewRat(7, 2))
	if got := Ceil(b); got.Cmp(big.NewInt(4)) != 0 {
		t.Fatalf("Ceil(7/2) = %s, want 4", got.String())
	}
}

func TestMidpointSeparatesOrderedRoots(t *testing.T) {
	p := uniRat(-2, 0, 1)
	neg := New(p, 0)
	pos := New(p, 1)
	mid := Midpoint(neg, pos)
	if Compare(neg, FromRat(mid)) >= 0 {
		t.Fatal("midpoint should be strictly greater than the negative root")
	}
	if Compare(FromRat(mid), pos) >= 0 {
		t.Fatal("midpoint should be strictly less than the positive root")
	}
}

func TestCauchyBoundContainsRoots(t *testing.T) {
	p := uniRat(-100, 0, 1) // x^2 - 100, root at 10
	b := CauchyBound(p)
	if b.Cmp(big.NewRat(10, 1)) <= 0 {
		t.Fatalf("Cauchy bound %s should exceed the largest root 10", b.RatString())
	}
}
