package modcheck

import (
	"math/big"
	"testing"
)

func TestPointsDeterministic(t *testing.T) {
	a := Points(5)
	b := Points(5)
	if len(a) != 5 || len(b) != 5 {
		t.Fatalf("expected 5 points, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Points(5) not reproducible at index %d: %d != %d", i, a[i], b[i])
		}
	}
}

func TestPointsDistinct(t *testing.T) {
	pts := Points(8)
	seen := map[uint64]bool{}
	for _, p := range pts {
		if seen[p] {
			t.Fatalf("duplicate point %d in first 8 powers of the primitive root", p)
		}
		seen[p] = true
	}
}

func TestEvalRatRoundTrips(t *testing.T) {
	q := big.NewRat(3, 7)
	v, ok := EvalRat(q)
	if !ok {
		t.Fatal("EvalRat should succeed for a small rational")
	}
	// 3/7 mod p should equal 3 * inverse(7) mod p; recompute independently.
	mod := new(big.Int).SetUint64(modulus)
	inv := new(big.Int).ModInverse(big.NewInt(7), mod)
	want := new(big.Int).Mul(big.NewInt(3), inv)
	want.Mod(want, mod)
	if v != want.Uint64() {
		t.Fatalf("EvalRat(3/7) = %d, want %d", v, want.Uint64())
	}
}

func TestArithmeticPrimitivesAgreeWithBigInt(t *testing.T) {
	mod := new(big.Int).SetUint64(modulus)
	a, b := uint64(123456789), uint64(987654321)

	gotAdd := AddMod(a, b)
	wantAdd := new(big.Int).Mod(new(big.Int).Add(
		new(big.Int).SetUint64(a), new(big.Int).SetUint64(b)), mod)
	if gotAdd != wantAdd.Uint64() {
		t.Fatalf("AddMod = %d, want %d", gotAdd, wantAdd.Uint64())
	}

	gotMul := MulMod(a, b)
	wantMul := new(big.Int).Mod(new(big.Int).Mul(
		new(big.Int).SetUint64(a), new(big.Int).SetUint64(b)), mod)
	if gotMul != wantMul.Uint64() {
		t.Fatalf("MulMod = %d, want %d", gotMul, wantMul.Uint64())
	}

	gotSub := SubMod(b, a)
	wantSub := new(big.Int).Mod(new(big.Int).Sub(
		new(big.Int).SetUint64(b), new(big.Int).SetUint64(a)), mod)
	if gotSub != wantSub.Uint64() {
		t.Fatalf("SubMod = %d, want %d", gotSub, wantSub.Uint64())
	}

	gotPow := PowMod(a, 3)
	wantPow := new(big.Int).Mod(new(big.Int).Exp(new(big.Int).SetUint64(a), big.NewInt(3), mod), mod)
	if gotPow != wantPow.Uint64() {
		t.Fatalf("PowMod = %d, want %d", gotPow, wantPow.Uint64())
	}
}
