package poly

import (
	"math/big"
	"sort"
	"strings"

	"cadengine/internal/canon"
)

// Multi is a multivariate polynomial over the rationals, stored as a map from
// monomial key to (monomial, coefficient). This is the "coefficient ring of
// multivariate polynomials in the remaining (parameter) variables" of
// spec.md §2's polynomial layer, and the concrete type manipulated by the
// assumption state (spec.md §3 Assumption(V)).
type Multi struct {
	terms map[string]term
}

type term struct {
	exp   Monomial
	coeff *big.Rat
}

// Zero returns the zero polynomial.
func Zero() Multi {
	return Multi{terms: map[string]term{}}
}

// FromRat returns the constant polynomial q.
func FromRat(q *big.Rat) Multi {
	if q.Sign() == 0 {
		return Zero()
	}
	return Multi{terms: map[string]term{"1": {exp: Monomial{}, coeff: new(big.Rat).Set(q)}}}
}

// FromInt64 returns the constant polynomial n.
func FromInt64(n int64) Multi {
	return FromRat(big.NewRat(n, 1))
}

// VarPoly returns the degree-1 polynomial equal to the variable name.
func VarPoly(name string) Multi {
	m := varMonomial(name)
	return Multi{terms: map[string]term{m.key(): {exp: m, coeff: big.NewRat(1, 1)}}}
}

// IsZero reports whether p has no nonzero terms.
func (p Multi) IsZero() bool {
	return len(p.terms) == 0
}

// IsConstant reports whether p is a (possibly zero) constant.
func (p Multi) IsConstant() bool {
	if p.IsZero() {
		return true
	}
	if len(p.terms) != 1 {
		return false
	}
	for _, t := range p.terms {
		return t.exp.Degree() == 0
	}
	return false
}

// AsConstant returns p's value as a rational, and whether p is in fact
// constant.
func (p Multi) AsConstant() (*big.Rat, bool) {
	if p.IsZero() {
		return big.NewRat(0, 1), true
	}
	if !p.IsConstant() {
		return nil, false
	}
	for _, t := range p.terms {
		return new(big.Rat).Set(t.coeff), true
	}
	return nil, false
}

// Vars returns the sorted union of variables appearing in p with nonzero
// exponent in some term.
func (p Multi) Vars() []string {
	set := map[string]bool{}
	for _, t := range p.terms {
		for v := range t.exp {
			set[v] = true
		}
	}
	vs := make([]string, 0, len(set))
	for v := range set {
		vs = append(vs, v)
	}
	sort.Strings(vs)
	return vs
}

func cloneRat(r *big.Rat) *big.Rat { return new(big.Rat).Set(r) }

func (p Multi) clone() map[string]term {
	out := make(map[string]term, len(p.terms))
	for k, t := range p.terms {
		out[k] = term{exp: t.exp, coeff: cloneRat(t.coeff)}
	}
	return out
}

// Add returns p+q.
func (p Multi) Add(q Multi) Multi {
	out := p.clone()
	for k, t := range q.terms {
		if cur, ok := out[k]; ok {
			sum := new(big.Rat).Add(cur.coeff, t.coeff)
			if sum.Sign() == 0 {
				delete(out, k)
			} else {
				out[k] = term{exp: t.exp, coeff: sum}
			}
		} else {
			out[k] = term{exp: t.exp, coeff: cloneRat(t.coeff)}
		}
	}
	return Multi{terms: out}
}

// Neg returns -p.
func (p Multi) Neg() Multi {
	out := make(map[string]term, len(p.terms))
	for k, t := range p.terms {
		out[k] = term{exp: t.exp, coeff: new(big.Rat).Neg(t.coeff)}
	}
	return Multi{terms: out}
}

// Sub returns p-q.
func (p Multi) Sub(q Multi) Multi {
	return p.Add(q.Neg())
}

// ScalarMul returns c*p.
func (p Multi) ScalarMul(c *big.Rat) Multi {
	if c.Sign() == 0 {
		return Zero()
	}
	out := make(map[string]term, len(p.terms))
	for k, t := range p.terms {
		out[k] = term{exp: t.exp, coeff: new(big.Rat).Mul(t.coeff, c)}
	}
	return Multi{terms: out}
}

// Mul returns p*q.
func (p Multi) Mul(q Multi) Multi {
	terms := map[string]term{}
	for _, a := range p.terms {
		for _, b := range q.terms {
			m := a.exp.Mul(b.exp)
			c := new(big.Rat).Mul(a.coeff, b.coeff)
			terms = addTerm(terms, m, c)
		}
	}
	return Multi{terms: terms}
}

func addTerm(terms map[string]term, m Monomial, c *big.Rat) map[string]term {
	k := m.key()
	if cur, ok := terms[k]; ok {
		sum := new(big.Rat).Add(cur.coeff, c)
		if sum.Sign() == 0 {
			delete(terms, k)
		} else {
			terms[k] = term{exp: m, coeff: sum}
		}
	} else if c.Sign() != 0 {
		terms[k] = term{exp: m, coeff: cloneRat(c)}
	}
	return terms
}

// Equal reports whether p and q are the same polynomial (same canonical
// term set).
func (p Multi) Equal(q Multi) bool {
	return p.CanonicalKey() == q.CanonicalKey()
}

// orderedTerms returns p's terms sorted descending by order, used both for
// LeadingTerm and for canonicalization.
func (p Multi) orderedTerms(vars []string, order Order) []term {
	out := make([]term, 0, len(p.terms))
	for _, t := range p.terms {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		c := compareMonomials(out[i].exp, out[j].exp, vars, order)
		if c != 0 {
			return c > 0
		}
		return out[i].exp.key() < out[j].exp.key()
	})
	return out
}

// LeadingTerm returns p's leading monomial and coefficient under order, using
// vars as the variable priority. Panics on the zero polynomial.
func (p Multi) LeadingTerm(vars []string, order Order) (Monomial, *big.Rat) {
	if p.IsZero() {
		panic("poly: zero polynomial has no leading term")
	}
	ts := p.orderedTerms(vars, order)
	return ts[0].exp, cloneRat(ts[0].coeff)
}

// LeadingCoeff returns p's leading coefficient under order.
func (p Multi) LeadingCoeff(vars []string, order Order) *big.Rat {
	_, c := p.LeadingTerm(vars, order)
	return c
}

// Terms returns p's terms in canonical (grevlex-over-all-p's-own-vars)
// descending order, suitable for deterministic enumeration.
func (p Multi) Terms() []struct {
	Monomial Monomial
	Coeff    *big.Rat
} {
	ts := p.orderedTerms(p.Vars(), Grevlex)
	out := make([]struct {
		Monomial Monomial
		Coeff    *big.Rat
	}, len(ts))
	for i, t := range ts {
		out[i] = struct {
			Monomial Monomial
			Coeff    *big.Rat
		}{Monomial: t.exp, Coeff: cloneRat(t.coeff)}
	}
	return out
}

// CanonicalKey returns a deterministic digest of p's canonical form,
// independent of the order terms were inserted in — the map key backing
// Assumption's signMap (spec.md §9).
func (p Multi) CanonicalKey() canon.Digest {
	ts := p.orderedTerms(p.Vars(), Grevlex)
	var b strings.Builder
	for _, t := range ts {
		b.WriteString(t.exp.key())
		b.WriteByte('=')
		b.WriteString(t.coeff.RatString())
		b.WriteByte(';')
	}
	return canon.Sum([]byte(b.String()))
}

// Eval substitutes a rational value for every variable and returns the
// resulting rational. Every variable of p must appear in model.
func (p Multi) Eval(model map[string]*big.Rat) *big.Rat {
	out := big.NewRat(0, 1)
	for _, t := range p.terms {
		v := cloneRat(t.coeff)
		for name, e := range t.exp {
			x, ok := model[name]
			if !ok {
				panic("poly: missing model value for variable " + name)
			}
			for i := 0; i < e; i++ {
				v.Mul(v, x)
			}
		}
		out.Add(out, v)
	}
	return out
}

// String renders p in a readable, non-canonical form (debug/diagnostics use
// only).
func (p Multi) String() string {
	if p.IsZero() {
		return "0"
	}
	ts := p.orderedTerms(p.Vars(), Grlex)
	var b strings.Builder
	for i, t := range ts {
		if i > 0 {
			b.WriteString(" + ")
		}
		b.WriteString("(")
		b.WriteString(t.coeff.RatString())
		b.WriteString(")")
		if t.exp.Degree() > 0 {
			b.WriteString("*")
			b.WriteString(t.exp.key())
		}
	}
	return b.String()
}

// AsUni reinterprets p as a univariate polynomial in v, with coefficients
// that are themselves Multi polynomials in p's remaining variables — the
// conversion cad/solve performs on every relation before eliminating its
// head variable (spec.md §4.8).
func (p Multi) AsUni(v string) Uni {
	byDegree := map[int]map[string]term{}
	maxDeg := 0
	for _, t := range p.terms {
		d := t.exp[v]
		if d > maxDeg {
			maxDeg = d
		}
		rest := make(Monomial, len(t.exp))
		for vv, e := range t.exp {
			if vv == v {
				continue
			}
			rest[vv] = e
		}
		bucket, ok := byDegree[d]
		if !ok {
			bucket = map[string]term{}
			byDegree[d] = bucket
		}
		byDegree[d] = addTerm(bucket, rest, t.coeff)
	}

	coeffs := make([]Multi, maxDeg+1)
	for d := 0; d <= maxDeg; d++ {
		coeffs[d] = Multi{terms: byDegree[d]}
		if coeffs[d].terms == nil {
			coeffs[d] = Zero()
		}
	}
	return NewUni(coeffs)
}
