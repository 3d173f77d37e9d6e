package poly

import "testing"

func TestComputeBasisEmptyForNoGenerators(t *testing.T) {
	g := ComputeBasis([]string{"x", "y"}, nil)
	if !g.Empty() {
		t.Fatal("basis of the zero ideal should be empty")
	}
}

func TestComputeBasisReducesLinearSystem(t *testing.T) {
	x, y := VarPoly("x"), VarPoly("y")
	// x - 1 = 0, y - 2 = 0: the basis should let every polynomial in the
	// ideal reduce to zero, and x, y individually reduce to constants.
	g := ComputeBasis([]string{"x", "y"}, []Multi{x.Sub(FromInt64(1)), y.Sub(FromInt64(2))})
	if g.Empty() {
		t.Fatal("expected a nonempty basis")
	}
	rx := g.Reduce(x)
	c, ok := rx.AsConstant()
	if !ok || c.Sign() == 0 {
		t.Fatalf("x should reduce to the constant 1 modulo <x-1, y-2>, got %v", rx)
	}
}

func TestReduceOfZeroIdealIsIdentity(t *testing.T) {
	g := ComputeBasis([]string{"x"}, nil)
	x := VarPoly("x")
	if !g.Reduce(x).Equal(x) {
		t.Fatal("reducing modulo the zero ideal should be a no-op")
	}
}

func TestWithGeneratorExtendsIdeal(t *testing.T) {
	x, y := VarPoly("x"), VarPoly("y")
	g := ComputeBasis([]string{"x", "y"}, []Multi{x.Sub(FromInt64(1))})
	g2 := g.WithGenerator(y.Sub(FromInt64(3)))
	if g2.Reduce(y).IsZero() {
		t.Fatal("y should not reduce to zero, it should reduce to the constant 3")
	}
	c, ok := g2.Reduce(y).AsConstant()
	if !ok || c.Sign() == 0 {
		t.Fatalf("y should reduce to a nonzero constant modulo <x-1, y-3>, got %v", g2.Reduce(y))
	}
}

func TestComputeBasisCircleAndLineIsNonTrivial(t *testing.T) {
	x, y := VarPoly("x"), VarPoly("y")
	f1 := x.Mul(x).Add(y.Mul(y)).Sub(FromInt64(1))
	f2 := x.Sub(y)
	g := ComputeBasis([]string{"x", "y"}, []Multi{f1, f2})
	if g.Empty() {
		t.Fatal("expected a nonempty basis for a circle intersected with a line")
	}
}
