package solve

import (
	"math/big"
	"testing"

	"cadengine/poly"
	"cadengine/sign"
)

func TestSolveLinearFeasible(t *testing.T) {
	// x - 5 >= 0, solved for x alone: should find a sample with x >= 5.
	x := poly.VarPoly("x")
	rel := Relation{Lhs: x, Rhs: poly.FromInt64(5), Op: Ge}
	model, ok := Solve([]string{"x"}, []Relation{rel})
	if !ok {
		t.Fatal("expected x - 5 >= 0 to be satisfiable")
	}
	xv, isRat := model["x"].RationalValue()
	if !isRat || xv.Cmp(big.NewRat(5, 1)) < 0 {
		t.Fatalf("sample x = %v should be >= 5", xv)
	}
}

func TestSolveInfeasibleSingleVariable(t *testing.T) {
	// x^2 + 1 < 0 is never satisfiable.
	x := poly.VarPoly("x")
	square := x.Mul(x).Add(poly.FromInt64(1))
	rel := Relation{Lhs: square, Rhs: poly.Zero(), Op: Lt}
	_, ok := Solve([]string{"x"}, []Relation{rel})
	if ok {
		t.Fatal("expected x^2 + 1 < 0 to be unsatisfiable")
	}
}

func TestSolveSphereInterior(t *testing.T) {
	// x^2 + y^2 < 1: should find a point strictly inside the unit circle.
	x, y := poly.VarPoly("x"), poly.VarPoly("y")
	disc := x.Mul(x).Add(y.Mul(y))
	rel := Relation{Lhs: disc, Rhs: poly.FromInt64(1), Op: Lt}
	model, ok := Solve([]string{"x", "y"}, []Relation{rel})
	if !ok {
		t.Fatal("expected the open unit disk to be satisfiable")
	}
	xv, _ := model["x"].RationalValue()
	yv, _ := model["y"].RationalValue()
	sum := new(big.Rat).Add(new(big.Rat).Mul(xv, xv), new(big.Rat).Mul(yv, yv))
	if sum.Cmp(big.NewRat(1, 1)) >= 0 {
		t.Fatalf("sample (%s, %s) should lie strictly inside the unit circle", xv.RatString(), yv.RatString())
	}
}

func TestSolveEquality(t *testing.T) {
	// x - 3 = 0.
	x := poly.VarPoly("x")
	rel := Relation{Lhs: x, Rhs: poly.FromInt64(3), Op: Eq}
	model, ok := Solve([]string{"x"}, []Relation{rel})
	if !ok {
		t.Fatal("expected x = 3 to be satisfiable")
	}
	xv, isRat := model["x"].RationalValue()
	if !isRat || xv.Cmp(big.NewRat(3, 1)) != 0 {
		t.Fatalf("sample x = %v, want 3", xv)
	}
}

func TestSolveDegenerateQuadraticTouchingZero(t *testing.T) {
	// x^2 <= 0: the only solution is x = 0.
	x := poly.VarPoly("x")
	square := x.Mul(x)
	rel := Relation{Lhs: square, Rhs: poly.Zero(), Op: Le}
	model, ok := Solve([]string{"x"}, []Relation{rel})
	if !ok {
		t.Fatal("expected x^2 <= 0 to be satisfiable (at x = 0)")
	}
	xv, isRat := model["x"].RationalValue()
	if !isRat || xv.Sign() != 0 {
		t.Fatalf("sample x = %v, want 0", xv)
	}
}

func TestSignSetTable(t *testing.T) {
	if !SignSet(Lt).Has(sign.Neg) || SignSet(Lt).Has(sign.Pos) {
		t.Fatal("Lt's sign set should be exactly {Neg}")
	}
	if !SignSet(Ne).Has(sign.Neg) || !SignSet(Ne).Has(sign.Pos) || SignSet(Ne).Has(sign.Zero) {
		t.Fatal("Ne's sign set should be exactly {Neg, Pos}")
	}
}
