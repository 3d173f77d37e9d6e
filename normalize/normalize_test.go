package normalize

import (
	"testing"

	"cadengine/assumption"
	"cadengine/poly"
	"cadengine/search"
)

func TestPolyOnConstantLeadingCoeffIsNoop(t *testing.T) {
	// p = 1: a degree-0 (constant) polynomial has nothing to normalize.
	p := poly.NewUni([]poly.Multi{poly.FromInt64(1)})
	a := assumption.New(nil)
	branches := search.RunM(Poly(p), a)
	if len(branches) != 1 {
		t.Fatalf("expected 1 branch for a constant polynomial, got %d", len(branches))
	}
	if !branches[0].Value.Equal(p) {
		t.Fatal("constant polynomial should be returned unchanged")
	}
}

func TestPolyForksOnSymbolicLeadingCoeff(t *testing.T) {
	// p = c*x + 1, c a parameter: either c is nonzero (degree stays 1) or c
	// is Zero (degree drops to 0, leaving the constant 1).
	c := poly.VarPoly("c")
	p := poly.NewUni([]poly.Multi{poly.FromInt64(1), c})
	a := assumption.New([]string{"c"})

	branches := search.RunM(Poly(p), a)
	if len(branches) != 2 {
		t.Fatalf("expected 2 branches, got %d", len(branches))
	}

	var sawDegree1, sawDegree0 bool
	for _, b := range branches {
		switch b.Value.Degree() {
		case 1:
			sawDegree1 = true
		case 0:
			sawDegree0 = true
		}
	}
	if !sawDegree1 || !sawDegree0 {
		t.Fatalf("expected one branch keeping degree 1 and one truncating to degree 0")
	}
}

func TestPolyDropsMultipleLeadingZeroTerms(t *testing.T) {
	// p = c1*x^2 + c2*x + 1, both c1, c2 free parameters. Assuming both zero
	// must reach the constant polynomial 1.
	c1, c2 := poly.VarPoly("c1"), poly.VarPoly("c2")
	p := poly.NewUni([]poly.Multi{poly.FromInt64(1), c2, c1})
	a := assumption.New([]string{"c1", "c2"})

	branches := search.RunM(Poly(p), a)
	var foundConstant bool
	for _, b := range branches {
		if b.Value.Degree() == 0 {
			foundConstant = true
		}
	}
	if !foundConstant {
		t.Fatal("expected a branch where both leading coefficients are assumed zero")
	}
}
