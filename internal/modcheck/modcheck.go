// Package modcheck supplies the prime-field arithmetic behind mr.FastReject, a
// fast, non-authoritative check of the pseudo-remainder identity: residues of
// both sides are compared modulo a large prime, and a disagreement there
// proves the exact computation has a bug. Passing the check proves nothing
// and never substitutes for the exact math/big.Rat computation in
// mr.Remainder, which always runs; FastReject is called from tests, not from
// mr.Remainder or closure.CollectPolynomials. Points additionally provides
// reproducible pseudorandom evaluation points in the field.
//
// The prime field and its generator are located the same way
// jonathanMweiss-go-gao/field/field.go locates one for its own evaluation
// domain: via lattigo's PrimitiveRoot helper, the one piece of this
// repository's lattigo dependency that has a natural home here (this package
// otherwise has nothing to do with cyclotomic-ring or NTT arithmetic, which
// is why the rest of lattigo's ring API is not used).
package modcheck

import (
	"math/big"

	"github.com/tuneinsight/lattigo/v4/ring"
)

// modulus is a 61-bit prime, large enough that a Schwartz-Zippel-style
// disagreement at a handful of points is overwhelmingly likely to reflect a
// real bug rather than an unlucky coincidence.
const modulus uint64 = 2305843009213693951 // 2^61 - 1, Mersenne prime

// Field is a pseudorandom evaluation-point source over F_modulus, generated
// by repeated powers of a primitive root.
type Field struct {
	generator uint64
}

var shared *Field

func field() *Field {
	if shared != nil {
		return shared
	}
	g, _, err := ring.PrimitiveRoot(modulus, nil)
	if err != nil {
		// modulus is a fixed, known-prime constant; PrimitiveRoot cannot
		// fail for it. A failure here is a programmer bug (wrong modulus).
		panic("modcheck: failed to locate primitive root: " + err.Error())
	}
	shared = &Field{generator: g}
	return shared
}

// Points returns n deterministic pseudorandom evaluation points in F_modulus,
// derived from successive powers of the field's primitive root so that
// repeated calls with the same n are reproducible across a test run.
func Points(n int) []uint64 {
	f := field()
	out := make([]uint64, n)
	acc := big.NewInt(1)
	gen := new(big.Int).SetUint64(f.generator)
	mod := new(big.Int).SetUint64(modulus)
	// Skip the trivial point 1 by stepping once before recording.
	acc.Mul(acc, gen)
	acc.Mod(acc, mod)
	for i := 0; i < n; i++ {
		out[i] = acc.Uint64()
		acc.Mul(acc, gen)
		acc.Mod(acc, mod)
	}
	return out
}

// EvalRat reduces a rational modulo modulus, inverting the denominator. The
// rational's denominator must be coprime to modulus, true with overwhelming
// probability for the small, fixed-prime denominators pseudo-remainder
// computations produce; on the rare exact-multiple collision EvalRat returns
// ok=false and the caller falls back to skipping the fast path.
func EvalRat(q *big.Rat) (value uint64, ok bool) {
	mod := new(big.Int).SetUint64(modulus)
	den := new(big.Int).Mod(q.Denom(), mod)
	if den.Sign() == 0 {
		return 0, false
	}
	inv := new(big.Int).ModInverse(den, mod)
	if inv == nil {
		return 0, false
	}
	num := new(big.Int).Mod(q.Num(), mod)
	num.Mul(num, inv)
	num.Mod(num, mod)
	return num.Uint64(), true
}

// AddMod, MulMod, SubMod, PowMod are the pointwise arithmetic primitives the
// fast path composes to evaluate both sides of mr's defining identity.
func AddMod(a, b uint64) uint64 {
	s := a + b
	if s >= modulus || s < a {
		return s - modulus
	}
	return s
}

func MulMod(a, b uint64) uint64 {
	prod := new(big.Int).Mul(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b))
	prod.Mod(prod, new(big.Int).SetUint64(modulus))
	return prod.Uint64()
}

func SubMod(a, b uint64) uint64 {
	if a >= b {
		return a - b
	}
	return modulus - (b - a)
}

func PowMod(a uint64, k int) uint64 {
	out := uint64(1)
	base := a % modulus
	for i := 0; i < k; i++ {
		out = MulMod(out, base)
	}
	return out
}
