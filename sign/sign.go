// Package sign implements the three-valued real sign used throughout the CAD
// engine: every polynomial evaluated at a cell carries exactly one of Neg,
// Zero, Pos, and the search branches on which of the three holds.
package sign

import (
	"fmt"
	"math/big"
)

// Sign is the sign of a real number.
type Sign int8

const (
	Neg Sign = -1
	Zero Sign = 0
	Pos  Sign = 1
)

func (s Sign) String() string {
	switch s {
	case Neg:
		return "-"
	case Zero:
		return "0"
	case Pos:
		return "+"
	default:
		panic(fmt.Sprintf("sign: invalid value %d", int8(s)))
	}
}

// Negate returns -s.
func (s Sign) Negate() Sign {
	return -s
}

// Mul returns the sign of the product of two reals with signs s and t.
func (s Sign) Mul(t Sign) Sign {
	return Sign(int8(s) * int8(t))
}

// Div returns the sign of a quotient with numerator sign s and denominator
// sign t. Dividing by zero is a precondition violation: the engine never
// forms a sign quotient with a Zero denominator (spec.md §3).
func (s Sign) Div(t Sign) Sign {
	if t == Zero {
		panic("sign: division by Zero")
	}
	return s.Mul(t)
}

// Pow returns the sign of x^k for x with sign s, k >= 0.
func (s Sign) Pow(k int) Sign {
	if k < 0 {
		panic("sign: negative exponent")
	}
	if k == 0 {
		return Pos // x^0 == 1, defined even for s == Zero by convention 0^0 == 1 here.
	}
	if s == Zero {
		return Zero
	}
	if s == Pos {
		return Pos
	}
	if k%2 == 0 {
		return Pos
	}
	return Neg
}

// Of maps a rational to its sign.
func Of(q *big.Rat) Sign {
	switch q.Sign() {
	case -1:
		return Neg
	case 0:
		return Zero
	default:
		return Pos
	}
}

// Set is a subset of {Neg, Zero, Pos}, represented as a bitmask; the empty
// set (see Empty) marks an infeasible constraint.
// The assumption state and the relational-operator table of the top-level
// solver both traffic in these sets (spec.md §3, §4.8).
type Set uint8

const (
	bitNeg Set = 1 << iota
	bitZero
	bitPos
)

// All is the unconstrained sign set.
var All = bitNeg | bitZero | bitPos

// SetOf builds a Set from individual signs.
func SetOf(signs ...Sign) Set {
	var s Set
	for _, v := range signs {
		s |= bitOf(v)
	}
	return s
}

func bitOf(s Sign) Set {
	switch s {
	case Neg:
		return bitNeg
	case Zero:
		return bitZero
	case Pos:
		return bitPos
	default:
		panic(fmt.Sprintf("sign: invalid value %d", int8(s)))
	}
}

// Has reports whether s is a member of the set.
func (set Set) Has(s Sign) bool {
	return set&bitOf(s) != 0
}

// Intersect returns the intersection of two sign sets.
func (set Set) Intersect(other Set) Set {
	return set & other
}

// Empty reports whether the set has no members.
func (set Set) Empty() bool {
	return set == 0
}

// Single reports whether the set has exactly one member and returns it.
func (set Set) Single() (Sign, bool) {
	switch set {
	case bitNeg:
		return Neg, true
	case bitZero:
		return Zero, true
	case bitPos:
		return Pos, true
	default:
		return 0, false
	}
}

// Members returns the set's elements in Neg, Zero, Pos order.
func (set Set) Members() []Sign {
	var out []Sign
	for _, s := range [...]Sign{Neg, Zero, Pos} {
		if set.Has(s) {
			out = append(out, s)
		}
	}
	return out
}

// DivSet divides every member of set by t (t != Zero) and returns the
// resulting sign set. Used by assume to rescale an allowed-sign set when a
// polynomial is normalized by dividing through by a coefficient of sign t.
func DivSet(set Set, t Sign) Set {
	var out Set
	for _, s := range set.Members() {
		out |= bitOf(s.Div(t))
	}
	return out
}

func (set Set) String() string {
	members := set.Members()
	out := make([]byte, 0, len(members))
	for _, m := range members {
		out = append(out, m.String()...)
	}
	return string(out)
}
