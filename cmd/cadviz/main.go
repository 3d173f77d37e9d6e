// Command cadviz renders a single cad/project.Project call as an HTML
// report: for each surviving branch, the cells of the eliminated variable as
// a scatter timeline, one point per cell, placed by cell shape. Grounded on
// Additionnals/plot_pacs_sweep.go's Scatter/Page/VisualMap shape, repointed
// from proof-size sweeps to sign-configuration cells.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"cadengine/assumption"
	"cadengine/poly"
	"cadengine/project"
	"cadengine/search"
	"cadengine/sign"
	"cadengine/signconf"
)

type relationFile struct {
	Vars      []string       `json:"vars"`
	Relations []relationJSON `json:"relations"`
}

type relationJSON struct {
	Lhs []termJSON `json:"lhs"`
	Op  string     `json:"op"`
	Rhs []termJSON `json:"rhs"`
}

type termJSON struct {
	Coeff string         `json:"coeff"`
	Exp   map[string]int `json:"exp"`
}

func main() {
	in := flag.String("in", "", "input JSON constraint file (required)")
	out := flag.String("out", "cadviz.html", "output HTML report path")
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
	if len(file.Vars) == 0 {
		log.Fatal("-in must name at least one variable (the innermost is projected)")
	}
	headVar := file.Vars[len(file.Vars)-1]
	params := file.Vars[:len(file.Vars)-1]

	constraints := make([]project.Constraint, len(file.Relations))
	for i, r := range file.Relations {
		op, err := parseSignSet(r.Op)
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
		constraints[i] = project.Constraint{P: lhs.Sub(rhs).AsUni(headVar), S: op}
	}

	branches := search.RunM(project.Project(constraints), assumption.New(params))
	if len(branches) == 0 {
		log.Fatal("projection found no satisfying branches")
	}

	page := components.NewPage().SetPageTitle(fmt.Sprintf("cadviz: projecting %s", headVar))
	for i, br := range branches {
		page.AddCharts(cellChart(headVar, i, br.Value.Cells))
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create %s: %v", *out, err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		log.Fatalf("render: %v", err)
	}
	fmt.Printf("wrote %s (%d branch(es))\n", *out, len(branches))
}

// cellChart draws one branch's surviving cells as a scatter timeline: x is
// the cell's ordinal position, y encodes its shape (0 for a point, 1 for an
// interval).
func cellChart(headVar string, branchIdx int, cells []signconf.Cell) *charts.Scatter {
	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("branch %d: surviving cells of %s (%d cell(s))", branchIdx, headVar, len(cells)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "cell order"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "shape (0 point, 1 interval)"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        -1,
			Max:        1,
			InRange:    &opts.VisualMapInRange{Color: []string{"#ef4444", "#94a3b8", "#22c55e"}},
		}),
	)

	items := make([]opts.ScatterData, len(cells))
	for i, cell := range cells {
		items[i] = opts.ScatterData{Value: []interface{}{i, encodeShape(cell)}}
	}
	sc.AddSeries("cells", items)
	return sc
}

func encodeShape(cell signconf.Cell) int {
	if cell.Shape == signconf.PointShape {
		return 0
	}
	return 1
}

func parseSignSet(op string) (sign.Set, error) {
	switch op {
	case "<=":
		return sign.SetOf(sign.Neg, sign.Zero), nil
	case ">=":
		return sign.SetOf(sign.Pos, sign.Zero), nil
	case "<":
		return sign.SetOf(sign.Neg), nil
	case ">":
		return sign.SetOf(sign.Pos), nil
	case "=", "==":
		return sign.SetOf(sign.Zero), nil
	case "!=":
		return sign.SetOf(sign.Neg, sign.Pos), nil
	}
	return sign.Set(0), fmt.Errorf("unknown operator %q", op)
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
