package poly

import (
	"sort"
	"strconv"
	"strings"
)

// Monomial is a product of variables, recorded as variable name to positive
// exponent; variables absent from the map have exponent 0. The empty
// Monomial is the constant monomial 1.
type Monomial map[string]int

// Degree returns the total degree of m.
func (m Monomial) Degree() int {
	d := 0
	for _, e := range m {
		d += e
	}
	return d
}

// Vars returns the sorted list of variables with nonzero exponent in m.
func (m Monomial) Vars() []string {
	vs := make([]string, 0, len(m))
	for v := range m {
		vs = append(vs, v)
	}
	sort.Strings(vs)
	return vs
}

// Mul returns the product monomial a*b.
func (a Monomial) Mul(b Monomial) Monomial {
	out := make(Monomial, len(a)+len(b))
	for v, e := range a {
		out[v] = e
	}
	for v, e := range b {
		out[v] += e
	}
	return out
}

// Divides reports whether a divides b (every exponent of a is <= the
// corresponding exponent of b).
func (a Monomial) Divides(b Monomial) bool {
	for v, e := range a {
		if b[v] < e {
			return false
		}
	}
	return true
}

// Div returns b / a, assuming a divides b.
func (a Monomial) Div(b Monomial) Monomial {
	out := make(Monomial, len(b))
	for v, e := range b {
		out[v] = e
	}
	for v, e := range a {
		out[v] -= e
		if out[v] == 0 {
			delete(out, v)
		}
	}
	return out
}

// Lcm returns the least common multiple monomial of a and b.
func (a Monomial) Lcm(b Monomial) Monomial {
	out := make(Monomial, len(a)+len(b))
	for v, e := range a {
		out[v] = e
	}
	for v, e := range b {
		if e > out[v] {
			out[v] = e
		}
	}
	return out
}

// Equal reports whether a and b are the same monomial.
func (a Monomial) Equal(b Monomial) bool {
	if len(a) != len(b) {
		return false
	}
	for v, e := range a {
		if b[v] != e {
			return false
		}
	}
	return true
}

// key returns a canonical string encoding of m, used both as a Go map key
// inside Multi and as raw material for the sha3 canonical digest in
// internal/canon. Variables are sorted so that equal monomials always
// produce the same key regardless of insertion order.
func (m Monomial) key() string {
	if len(m) == 0 {
		return "1"
	}
	vs := m.Vars()
	var b strings.Builder
	for i, v := range vs {
		if i > 0 {
			b.WriteByte('*')
		}
		b.WriteString(v)
		b.WriteByte('^')
		b.WriteString(strconv.Itoa(m[v]))
	}
	return b.String()
}

func varMonomial(v string) Monomial {
	return Monomial{v: 1}
}
