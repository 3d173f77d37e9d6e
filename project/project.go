// Package project implements the projector (spec.md §4.6): it runs the
// sign-configuration builder over a set of univariate constraints and
// filters the resulting cells by the requested sign conditions, emitting
// one (assumption, surviving cells) branch per feasible case split.
package project

import (
	"cadengine/assumption"
	"cadengine/normalize"
	"cadengine/poly"
	"cadengine/search"
	"cadengine/sign"
	"cadengine/signconf"
)

// Constraint is one input requirement: p's sign must lie in S.
type Constraint struct {
	P poly.Uni
	S sign.Set
}

// Branch is one surviving case split: the parameter conditions that define
// it, and the cells of the eliminated variable's line that satisfy every
// constraint under those conditions (spec.md §6's documented Project
// output shape).
type Branch struct {
	Conditions []assumption.Condition
	Cells      []signconf.Cell
}

// Project runs the projector over cs (spec.md §4.6).
func Project(cs []Constraint) search.Step[assumption.Assumption, Branch] {
	var immediate, remaining []Constraint
	for _, c := range cs {
		if c.P.Degree() <= 0 {
			immediate = append(immediate, c)
		} else {
			remaining = append(remaining, c)
		}
	}

	return search.Bind(assumeImmediate(immediate, 0), func(struct{}) search.Step[assumption.Assumption, Branch] {
		polys := make([]poly.Uni, len(remaining))
		for i, c := range remaining {
			polys[i] = c.P
		}
		return search.Bind(signconf.BuildSignConf(polys), func(conf signconf.SignConf) search.Step[assumption.Assumption, Branch] {
			return normalizeRemaining(remaining, 0, nil, conf)
		})
	})
}

// assumeImmediate handles every already-degree-0 constraint by assuming its
// constant coefficient directly (spec.md §4.6 step 1).
func assumeImmediate(cs []Constraint, idx int) search.Step[assumption.Assumption, struct{}] {
	if idx == len(cs) {
		return search.Return[assumption.Assumption, struct{}](struct{}{})
	}
	return search.Bind(assumption.Assume(cs[idx].P.Coeff(0), cs[idx].S), func(struct{}) search.Step[assumption.Assumption, struct{}] {
		return assumeImmediate(cs, idx+1)
	})
}

// normalizeRemaining re-normalizes every surviving constraint (spec.md
// §4.6 step 3): constraints that collapse to a constant are assumed away
// immediately; the rest are kept to filter the sign configuration.
func normalizeRemaining(cs []Constraint, idx int, acc []Constraint, conf signconf.SignConf) search.Step[assumption.Assumption, Branch] {
	if idx == len(cs) {
		return buildBranch(acc, conf)
	}
	c := cs[idx]
	return search.Bind(normalize.Poly(c.P), func(np poly.Uni) search.Step[assumption.Assumption, Branch] {
		if np.Degree() <= 0 {
			return search.Bind(assumption.Assume(np.Coeff(0), c.S), func(struct{}) search.Step[assumption.Assumption, Branch] {
				return normalizeRemaining(cs, idx+1, acc, conf)
			})
		}
		narrowed := Constraint{P: np, S: c.S}
		return normalizeRemaining(cs, idx+1, append(append([]Constraint{}, acc...), narrowed), conf)
	})
}

// buildBranch collects every non-sentinel cell satisfying every surviving
// constraint (spec.md §4.6 steps 4-6), failing the branch if none remain.
func buildBranch(constraints []Constraint, conf signconf.SignConf) search.Step[assumption.Assumption, Branch] {
	return func(a assumption.Assumption) []search.Branch[assumption.Assumption, Branch] {
		var cells []signconf.Cell
		for _, cell := range conf.Cells {
			if cell.IsSentinel() {
				continue
			}
			if satisfies(cell, constraints) {
				cells = append(cells, cell)
			}
		}
		if len(cells) == 0 {
			return nil
		}
		branch := Branch{Conditions: a.Conditions(), Cells: cells}
		return []search.Branch[assumption.Assumption, Branch]{{Value: branch, State: a}}
	}
}

func satisfies(cell signconf.Cell, constraints []Constraint) bool {
	for _, c := range constraints {
		s, ok := cell.SignOf(c.P)
		if !ok || !c.S.Has(s) {
			return false
		}
	}
	return true
}
