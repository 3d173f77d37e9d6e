// Package search implements the non-deterministic, stateful discipline the
// CAD engine runs in (spec.md §4.2, §5): every operation consumes a state
// snapshot, may fork into several alternatives each carrying its own
// snapshot, and may fail by producing no alternatives at all ("prune the
// branch" in spec.md §7's vocabulary). It is a depth-first search over
// explicit immutable state, not global mutation — the Continue|Prune sum
// type of spec.md §9's design notes, realized here as "a branch's slice of
// results is empty".
//
// The package is generic over the state type S so that cad/assumption can
// depend on it without a cyclic import; cad/assumption instantiates
// Step[Assumption, T].
package search

// Branch is one alternative produced by a search Step: a value together with
// the state snapshot under which it was produced.
type Branch[S, T any] struct {
	Value T
	State S
}

// Step is a non-deterministic, stateful computation: given a state, it
// returns zero or more (value, state) alternatives. An empty result is a
// pruned branch.
type Step[S, T any] func(S) []Branch[S, T]

// Return lifts a plain value into a Step that always succeeds without
// touching the state.
func Return[S, T any](v T) Step[S, T] {
	return func(s S) []Branch[S, T] {
		return []Branch[S, T]{{Value: v, State: s}}
	}
}

// Fail is the Step that prunes every branch it is run on.
func Fail[S, T any]() Step[S, T] {
	return func(S) []Branch[S, T] {
		return nil
	}
}

// Bind sequences step, feeding each of its alternatives' states into f and
// flattening the result — the monadic bind of the search discipline.
func Bind[S, T, U any](step Step[S, T], f func(T) Step[S, U]) Step[S, U] {
	return func(s S) []Branch[S, U] {
		var out []Branch[S, U]
		for _, b := range step(s) {
			out = append(out, f(b.Value)(b.State)...)
		}
		return out
	}
}

// Map transforms every successful branch's value, leaving its state alone.
func Map[S, T, U any](step Step[S, T], f func(T) U) Step[S, U] {
	return Bind(step, func(v T) Step[S, U] {
		return Return[S, U](f(v))
	})
}

// Choice runs every alternative step and concatenates their branches —
// signCoeff's three-way fork (spec.md §4.2) is Choice over three assume
// calls.
func Choice[S, T any](alts ...Step[S, T]) Step[S, T] {
	return func(s S) []Branch[S, T] {
		var out []Branch[S, T]
		for _, alt := range alts {
			out = append(out, alt(s)...)
		}
		return out
	}
}

// Sequence runs steps left to right, threading state and accumulating
// values, forking at every step that returns more than one alternative —
// used by collectPolynomials to normalize a list of polynomials.
func Sequence[S, T any](steps []Step[S, T]) Step[S, []T] {
	acc := Return[S, []T](nil)
	for _, step := range steps {
		st := step
		acc = Bind(acc, func(vs []T) Step[S, []T] {
			return Bind(st, func(v T) Step[S, []T] {
				return Return[S, []T](append(append([]T{}, vs...), v))
			})
		})
	}
	return acc
}

// RunM runs step from the given initial state and enumerates every
// successful (value, state) pair — the public entry point spec.md §4.2
// names runM.
func RunM[S, T any](step Step[S, T], initial S) []Branch[S, T] {
	return step(initial)
}
