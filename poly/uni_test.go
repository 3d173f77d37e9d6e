package poly

import (
	"math/big"
	"testing"
)

func rat64(n int64) Multi { return FromRat(big.NewRat(n, 1)) }

func TestUniDegreeAndTrim(t *testing.T) {
	u := NewUni([]Multi{rat64(1), rat64(2), Zero()})
	if u.Degree() != 1 {
		t.Fatalf("trailing zero coefficient should be trimmed, got degree %d", u.Degree())
	}
}

func TestUniZeroDegreeIsMinusOne(t *testing.T) {
	if UniZero().Degree() != -1 {
		t.Fatalf("zero polynomial should have degree -1, got %d", UniZero().Degree())
	}
}

func TestUniAddSub(t *testing.T) {
	a := NewUni([]Multi{rat64(1), rat64(2)})
	b := NewUni([]Multi{rat64(3), rat64(-2)})
	sum := a.Add(b)
	if sum.Degree() != 0 {
		t.Fatalf("(1+2x)+(3-2x) should collapse to degree 0, got %d", sum.Degree())
	}
	c, ok := sum.Coeff(0).AsConstant()
	if !ok || c.Cmp(big.NewRat(4, 1)) != 0 {
		t.Fatalf("constant term = %v, want 4", c)
	}
	diff := a.Sub(a)
	if !diff.IsZero() {
		t.Fatal("a - a should be zero")
	}
}

func TestUniMulDegreesAdd(t *testing.T) {
	a := NewUni([]Multi{rat64(0), rat64(1)})  // x
	b := NewUni([]Multi{rat64(0), rat64(1)})  // x
	got := a.Mul(b)
	if got.Degree() != 2 {
		t.Fatalf("x*x should have degree 2, got %d", got.Degree())
	}
}

func TestUniDerivative(t *testing.T) {
	// x^3 -> 3x^2
	u := NewUni([]Multi{rat64(0), rat64(0), rat64(0), rat64(1)})
	d := u.Derivative()
	if d.Degree() != 2 {
		t.Fatalf("derivative degree = %d, want 2", d.Degree())
	}
	c, ok := d.Coeff(2).AsConstant()
	if !ok || c.Cmp(big.NewRat(3, 1)) != 0 {
		t.Fatalf("leading coefficient of derivative = %v, want 3", c)
	}
}

func TestUniSubstitute(t *testing.T) {
	c := VarPoly("c")
	// u = c*x + 1
	u := NewUni([]Multi{rat64(1), c})
	got := u.Substitute(map[string]*big.Rat{"c": big.NewRat(5, 1)})
	if got.Degree() != 1 {
		t.Fatalf("substituted degree = %d, want 1", got.Degree())
	}
	if got.Coeff(1).Cmp(big.NewRat(5, 1)) != 0 {
		t.Fatalf("substituted leading coefficient = %s, want 5", got.Coeff(1).RatString())
	}
}

func TestUniEqualIgnoresTrailingZeros(t *testing.T) {
	a := NewUni([]Multi{rat64(1), rat64(2)})
	b := NewUni([]Multi{rat64(1), rat64(2), Zero()})
	if !a.Equal(b) {
		t.Fatal("trailing zero coefficients should not affect equality")
	}
}
