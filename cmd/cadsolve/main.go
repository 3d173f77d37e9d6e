// Command cadsolve is a small CLI front end over cad/solve: read a system
// of polynomial sign constraints from JSON, decide satisfiability, and
// print a sample model or report "unsatisfiable". The engine proper treats
// CLI front-ends as out of scope (spec.md §1); this wrapper lives
// alongside it the way the teacher repo ships cmd/ntru_sign, cmd/keycheck,
// and friends around its own engine.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"

	"cadengine/poly"
	"cadengine/solve"
)

// relationFile is the on-disk JSON shape: an ordered variable list and a
// list of relations, each polynomial given as a list of terms.
type relationFile struct {
	Vars      []string       `json:"vars"`
	Relations []relationJSON `json:"relations"`
}

type relationJSON struct {
	Lhs []termJSON `json:"lhs"`
	Op  string     `json:"op"`
	Rhs []termJSON `json:"rhs"`
}

// termJSON is one monomial: a rational coefficient ("num/den" or a plain
// integer string) and an exponent map.
type termJSON struct {
	Coeff string         `json:"coeff"`
	Exp   map[string]int `json:"exp"`
}

func main() {
	in := flag.String("in", "", "input JSON constraint file (required)")
	out := flag.String("out", "", "output file (default: stdout)")
	showStats := flag.Bool("stats", false, "print branch/cell diagnostics to stderr")
	flag.Parse()

	if *in == "" {
		log.Fatal("-in is required")
	}

	raw, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("read %s: %v", *in, err)
	}
	var file relationFile
	if err := json.Unmarshal(raw, &file); err != nil {
		log.Fatalf("parse %s: %v", *in, err)
	}

	relations := make([]solve.Relation, len(file.Relations))
	for i, r := range file.Relations {
		op, err := parseOp(r.Op)
		if err != nil {
			log.Fatalf("relation %d: %v", i, err)
		}
		lhs, err := buildPoly(r.Lhs)
		if err != nil {
			log.Fatalf("relation %d lhs: %v", i, err)
		}
		rhs, err := buildPoly(r.Rhs)
		if err != nil {
			log.Fatalf("relation %d rhs: %v", i, err)
		}
		relations[i] = solve.Relation{Lhs: lhs, Rhs: rhs, Op: op}
	}

	stats := &solve.Stats{}
	model, ok := solve.SolveWithStats(file.Vars, relations, stats)

	if *showStats {
		fmt.Fprintf(os.Stderr, "branches explored: %d, rejected: %d, cells tried: %d, samples failed: %d\n",
			stats.BranchesExplored, stats.BranchesRejected, stats.CellsTried, stats.SamplesFailed)
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("create %s: %v", *out, err)
		}
		defer f.Close()
		w = f
	}

	if !ok {
		fmt.Fprintln(w, "unsatisfiable")
		return
	}
	for _, v := range file.Vars {
		a := model[v]
		if r, isRat := a.RationalValue(); isRat {
			fmt.Fprintf(w, "%s = %s\n", v, r.RatString())
			continue
		}
		fmt.Fprintf(w, "%s = root %d of %v\n", v, a.Index, a.MinPoly)
	}
}

func parseOp(s string) (solve.RelOp, error) {
	switch s {
	case "<=":
		return solve.Le, nil
	case ">=":
		return solve.Ge, nil
	case "<":
		return solve.Lt, nil
	case ">":
		return solve.Gt, nil
	case "=", "==":
		return solve.Eq, nil
	case "!=":
		return solve.Ne, nil
	}
	return 0, fmt.Errorf("unknown operator %q", s)
}

func buildPoly(terms []termJSON) (poly.Multi, error) {
	p := poly.Zero()
	for _, t := range terms {
		coeff := new(big.Rat)
		if _, ok := coeff.SetString(t.Coeff); !ok {
			return poly.Multi{}, fmt.Errorf("invalid coefficient %q", t.Coeff)
		}
		term := poly.FromRat(coeff)
		for v, e := range t.Exp {
			for i := 0; i < e; i++ {
				term = term.Mul(poly.VarPoly(v))
			}
		}
		p = p.Add(term)
	}
	return p, nil
}
