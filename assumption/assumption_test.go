package assumption

import (
	"math/big"
	"testing"

	"cadengine/poly"
	"cadengine/search"
	"cadengine/sign"
)

func rat(n, d int64) *big.Rat { return big.NewRat(n, d) }

func TestAssumeNarrowsAllowedSign(t *testing.T) {
	a := New([]string{"c"})
	c := poly.VarPoly("c")

	branches := search.RunM(Assume(c, sign.SetOf(sign.Pos, sign.Zero)), a)
	if len(branches) != 1 {
		t.Fatalf("expected one branch, got %d", len(branches))
	}
	got := branches[0].State.AllowedSign(c)
	if got != sign.SetOf(sign.Pos, sign.Zero) {
		t.Fatalf("allowed sign = %v, want {+,0}", got)
	}
}

func TestAssumeContradictionPrunes(t *testing.T) {
	a := New([]string{"c"})
	c := poly.VarPoly("c")

	branches := search.RunM(Assume(c, sign.SetOf(sign.Pos)), a)
	if len(branches) != 1 {
		t.Fatalf("setup: expected one branch, got %d", len(branches))
	}
	contradicted := search.RunM(Assume(c, sign.SetOf(sign.Neg)), branches[0].State)
	if len(contradicted) != 0 {
		t.Fatal("narrowing to a disjoint sign set should prune the branch")
	}
}

func TestAssumeZeroAddsToZeroBasis(t *testing.T) {
	a := New([]string{"c"})
	c := poly.VarPoly("c")

	branches := search.RunM(Assume(c, sign.SetOf(sign.Zero)), a)
	if len(branches) != 1 {
		t.Fatalf("expected one branch, got %d", len(branches))
	}
	if branches[0].State.ZeroBasis().Empty() {
		t.Fatal("assuming Zero should record c in the zero basis")
	}
}

func TestAssumeOnConstantChecksDirectly(t *testing.T) {
	a := New(nil)
	five := poly.FromRat(rat(5, 1))

	ok := search.RunM(Assume(five, sign.SetOf(sign.Pos)), a)
	if len(ok) != 1 {
		t.Fatal("5 has sign Pos, assuming Pos should succeed")
	}
	bad := search.RunM(Assume(five, sign.SetOf(sign.Neg)), a)
	if len(bad) != 0 {
		t.Fatal("5 has sign Pos, assuming Neg should prune")
	}
}

func TestSignCoeffForksThreeWays(t *testing.T) {
	a := New([]string{"c"})
	c := poly.VarPoly("c")
	branches := search.RunM(SignCoeff(c), a)
	if len(branches) != 3 {
		t.Fatalf("expected 3 branches (Neg, Zero, Pos), got %d", len(branches))
	}
	seen := map[sign.Sign]bool{}
	for _, b := range branches {
		seen[b.Value] = true
	}
	for _, s := range []sign.Sign{sign.Neg, sign.Zero, sign.Pos} {
		if !seen[s] {
			t.Fatalf("missing branch for sign %v", s)
		}
	}
}

func TestSignCoeffOnConstantForksOnlyOneWay(t *testing.T) {
	a := New(nil)
	five := poly.FromRat(rat(5, 1))
	branches := search.RunM(SignCoeff(five), a)
	if len(branches) != 1 || branches[0].Value != sign.Pos {
		t.Fatalf("expected single Pos branch for a positive constant, got %+v", branches)
	}
}

func TestConditionsReflectsSignMapAndZeroBasis(t *testing.T) {
	a := New([]string{"c", "d"})
	c, d := poly.VarPoly("c"), poly.VarPoly("d")

	b1 := search.RunM(Assume(c, sign.SetOf(sign.Pos)), a)
	b2 := search.RunM(Assume(d, sign.SetOf(sign.Zero)), b1[0].State)

	conds := b2[0].State.Conditions()
	if len(conds) != 2 {
		t.Fatalf("expected 2 conditions (one signMap entry, one zero generator), got %d", len(conds))
	}
}
