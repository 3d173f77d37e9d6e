// Package solve implements the top-level recursive solver (spec.md §4.8):
// it eliminates free variables one at a time by projection, recurses on
// the residual problem, then backs concrete samples up the stack.
package solve

import (
	"cadengine/assumption"
	"cadengine/poly"
	"cadengine/project"
	"cadengine/sample"
	"cadengine/search"
	"cadengine/sign"
)

// RelOp is a relational operator between two polynomials.
type RelOp int

const (
	Le RelOp = iota
	Ge
	Lt
	Gt
	Eq
	Ne
)

// SignSet maps a relational operator to the sign set its difference must
// lie in (spec.md §4.8's table).
func SignSet(op RelOp) sign.Set {
	switch op {
	case Le:
		return sign.SetOf(sign.Neg, sign.Zero)
	case Ge:
		return sign.SetOf(sign.Pos, sign.Zero)
	case Lt:
		return sign.SetOf(sign.Neg)
	case Gt:
		return sign.SetOf(sign.Pos)
	case Eq:
		return sign.SetOf(sign.Zero)
	case Ne:
		return sign.SetOf(sign.Neg, sign.Pos)
	}
	panic("solve: unknown relational operator")
}

// Relation is one input constraint lhs `op` rhs.
type Relation struct {
	Lhs, Rhs poly.Multi
	Op       RelOp
}

// Stats accumulates diagnostic counters across a Solve run. The search
// itself stays single-threaded and free of mutable global state (spec.md
// §5); Stats is an explicit, caller-owned accumulator threaded through the
// solver's own recursion, not a hook into the search primitives.
type Stats struct {
	BranchesExplored int
	BranchesRejected int
	CellsTried       int
	SamplesFailed    int
}

// Solve decides V, C and, if satisfiable, returns a witnessing model
// (spec.md §4.8).
func Solve(vars []string, relations []Relation) (sample.Model, bool) {
	return SolveWithStats(vars, relations, &Stats{})
}

// SolveWithStats is Solve with an explicit diagnostics accumulator
// (cmd/cadsolve's -stats flag surfaces it).
func SolveWithStats(vars []string, relations []Relation, stats *Stats) (sample.Model, bool) {
	if stats == nil {
		stats = &Stats{}
	}
	conds := make([]assumption.Condition, len(relations))
	for i, r := range relations {
		conds[i] = assumption.Condition{Poly: r.Lhs.Sub(r.Rhs), Allowed: SignSet(r.Op)}
	}
	return solveVars(vars, conds, stats)
}

// solveVars is spec.md §4.8's recursion: base case checks every fully
// numeric condition directly; the recursive case projects out the head
// variable, recurses on each surviving branch's residual conditions, and
// extends the first model that works with a sample for the head variable.
func solveVars(vars []string, conds []assumption.Condition, stats *Stats) (sample.Model, bool) {
	if len(vars) == 0 {
		for _, c := range conds {
			constant, ok := c.Poly.AsConstant()
			if !ok {
				return nil, false
			}
			if !c.Allowed.Has(sign.Of(constant)) {
				return nil, false
			}
		}
		return sample.Model{}, true
	}

	head, tail := vars[0], vars[1:]
	constraints := make([]project.Constraint, len(conds))
	for i, c := range conds {
		constraints[i] = project.Constraint{P: c.Poly.AsUni(head), S: c.Allowed}
	}

	branches := search.RunM(project.Project(constraints), assumption.New(tail))
	for _, br := range branches {
		stats.BranchesExplored++
		model, ok := solveVars(tail, br.Value.Conditions, stats)
		if !ok {
			stats.BranchesRejected++
			continue
		}
		for _, cell := range br.Value.Cells {
			stats.CellsTried++
			clone := cloneModel(model)
			s, err := sample.FindSample(clone, cell)
			if err != nil {
				stats.SamplesFailed++
				continue
			}
			clone[head] = s
			return clone, true
		}
	}
	return nil, false
}

func cloneModel(m sample.Model) sample.Model {
	out := make(sample.Model, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
