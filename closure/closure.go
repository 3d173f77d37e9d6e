// Package closure implements collectPolynomials (spec.md §4.4): the
// smallest superset of a set of polynomials closed under normalization,
// formal differentiation, and pairwise pseudo-remainder, which
// buildSignConf needs so that signAt can always find the sign information
// it requires at every root of every member (spec.md §4.4's correctness
// note).
package closure

import (
	"cadengine/assumption"
	"cadengine/mr"
	"cadengine/normalize"
	"cadengine/poly"
	"cadengine/search"
)

// maxRounds bounds the fixpoint loop defensively; spec.md §5 argues
// termination from strict degree decrease, so in practice the loop exits
// long before this cap. Exceeding it signals a termination-invariant bug,
// not a legitimate large input, so it panics rather than silently
// truncating the closure.
const maxRounds = 1000

// CollectPolynomials computes P* (spec.md §4.4): P normalized, then closed
// under derivative and mr-remainder, keeping only non-constant normalized
// members.
func CollectPolynomials(P []poly.Uni) search.Step[assumption.Assumption, []poly.Uni] {
	steps := make([]search.Step[assumption.Assumption, poly.Uni], len(P))
	for i, p := range P {
		steps[i] = normalize.Poly(p)
	}
	seed := search.Sequence(steps)
	return search.Bind(seed, func(normalized []poly.Uni) search.Step[assumption.Assumption, []poly.Uni] {
		return closeFixpoint(dedupNonConstant(nil, normalized), 0)
	})
}

func closeFixpoint(set []poly.Uni, round int) search.Step[assumption.Assumption, []poly.Uni] {
	if round > maxRounds {
		panic("closure: fixpoint did not terminate within maxRounds; degree-decrease invariant violated")
	}
	return func(a assumption.Assumption) []search.Branch[assumption.Assumption, []poly.Uni] {
		candidates := generateCandidates(set)
		if len(candidates) == 0 {
			return []search.Branch[assumption.Assumption, []poly.Uni]{{Value: set, State: a}}
		}

		steps := make([]search.Step[assumption.Assumption, poly.Uni], len(candidates))
		for i, c := range candidates {
			steps[i] = normalize.Poly(c)
		}
		fold := search.Sequence(steps)

		var out []search.Branch[assumption.Assumption, []poly.Uni]
		for _, branch := range fold(a) {
			merged := dedupNonConstant(set, branch.Value)
			if len(merged) == len(set) {
				out = append(out, search.Branch[assumption.Assumption, []poly.Uni]{Value: set, State: branch.State})
				continue
			}
			out = append(out, closeFixpoint(merged, round+1)(branch.State)...)
		}
		return out
	}
}

// generateCandidates returns every derivative and every pairwise
// mr-remainder reachable from set, before normalization/dedup.
func generateCandidates(set []poly.Uni) []poly.Uni {
	var out []poly.Uni
	for _, p := range set {
		if p.Degree() > 0 {
			out = append(out, p.Derivative())
		}
	}
	for i, a := range set {
		for j, b := range set {
			if i == j {
				continue
			}
			if b.Degree() <= 0 || a.Degree() < b.Degree() {
				continue
			}
			_, _, r := mr.Remainder(a, b)
			out = append(out, r)
		}
	}
	return out
}

// dedupNonConstant merges additions into base, dropping constants and
// duplicates (by Uni.CanonicalKey), and returns the result in a
// deterministic order.
func dedupNonConstant(base, additions []poly.Uni) []poly.Uni {
	seen := map[string]bool{}
	out := make([]poly.Uni, 0, len(base)+len(additions))
	add := func(p poly.Uni) {
		if p.IsZero() || p.Degree() <= 0 {
			return
		}
		key := string(mustKey(p))
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, p)
	}
	for _, p := range base {
		add(p)
	}
	for _, p := range additions {
		add(p)
	}
	return out
}

func mustKey(p poly.Uni) []byte {
	k := p.CanonicalKey()
	return k[:]
}
