package poly

import "sort"

// CanonicalVarOrder returns vars sorted alphabetically. spec.md leaves the
// tie-break convention inside grlex/grevlex unspecified; this module fixes
// it to alphabetical order on variable name, applied consistently by every
// caller that builds a monomial order (DESIGN.md open-question decision).
func CanonicalVarOrder(vars []string) []string {
	out := append([]string{}, vars...)
	sort.Strings(out)
	return out
}

// Order is a monomial order used to pick leading terms and to drive
// Gröbner-basis reduction. spec.md fixes grlex for signMap normalization and
// grevlex for zeroBasis reduction (spec.md §3); both are graded orders that
// agree on total degree and differ only in their tie-break.
type Order int

const (
	// Grlex is the graded lexicographic order: compare total degree first,
	// then break ties by comparing exponents variable-by-variable in the
	// vars order, earlier variables dominating.
	Grlex Order = iota
	// Grevlex is the graded reverse lexicographic order: compare total
	// degree first, then break ties by comparing exponents variable-by-
	// variable from the *last* variable in the vars order backward, the *smaller*
	// exponent on the last-compared variable winning.
	Grevlex
)

// compareMonomials returns cmp.Compare(a, b) under order, using vars as the
// fixed variable priority (index 0 = highest priority). Equal-degree,
// equal-exponent monomials compare as 0.
func compareMonomials(a, b Monomial, vars []string, order Order) int {
	da, db := a.Degree(), b.Degree()
	if da != db {
		if da < db {
			return -1
		}
		return 1
	}
	switch order {
	case Grlex:
		for _, v := range vars {
			ea, eb := a[v], b[v]
			if ea != eb {
				if ea < eb {
					return -1
				}
				return 1
			}
		}
		return 0
	case Grevlex:
		for i := len(vars) - 1; i >= 0; i-- {
			v := vars[i]
			ea, eb := a[v], b[v]
			if ea != eb {
				// reverse lex: smaller exponent on the last-differing
				// variable is the *larger* monomial.
				if ea > eb {
					return -1
				}
				return 1
			}
		}
		return 0
	default:
		panic("poly: unknown monomial order")
	}
}
