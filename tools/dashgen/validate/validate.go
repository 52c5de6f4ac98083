// Package validate checks generated dashboards and rules for PromQL that
// does not parse or references metrics ebaynet does not export.
package validate

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/ebaynet/tools/dashgen/rules"
)

// Result collects validation findings. Errors fail generation; warnings
// are reported only.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r *Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) merge(other Result) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Expr parses expr and checks every metric it selects against known.
// where identifies the expression in messages.
func Expr(where, expr string, known map[string]bool) Result {
	var res Result

	parsed, err := parser.ParseExpr(expr)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("%s: parsing %q: %v", where, expr, err))
		return res
	}

	selectors := 0
	parser.Inspect(parsed, func(node parser.Node, _ []parser.Node) error {
		vs, ok := node.(*parser.VectorSelector)
		if !ok {
			return nil
		}
		selectors++
		if vs.Name != "" && !known[vs.Name] {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: unknown metric %q", where, vs.Name))
		}
		return nil
	})

	if selectors == 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%s: expression selects no series", where))
	}
	return res
}

// Dashboard validates the Prometheus targets of every panel, including
// panels nested in rows.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var res Result

	check := func(row int, col int, p *dashboard.Panel) {
		for k, target := range p.Targets {
			q, ok := target.(*prometheus.Dataquery)
			if !ok {
				continue
			}
			where := fmt.Sprintf("panel %d.%d target %d", row, col, k)
			res.merge(Expr(where, q.Expr, known))
		}
	}

	for i, p := range dash.Panels {
		if p.Panel != nil {
			check(i, 0, p.Panel)
		}
		if p.RowPanel != nil {
			for j := range p.RowPanel.Panels {
				check(i, j, &p.RowPanel.Panels[j])
			}
		}
	}

	return res
}

// Rules validates every expression in pr. Recorded series names count as
// known for the rules that follow them.
func Rules(pr rules.PrometheusRule, known map[string]bool) Result {
	var res Result

	for _, g := range pr.Spec.Groups {
		for _, r := range g.Rules {
			name := r.Record
			if name == "" {
				name = r.Alert
			}
			res.merge(Expr(g.Name+"/"+name, r.Expr, known))
			if r.Record == "" {
				continue
			}
			if !known[r.Record] {
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("%s: recorded series %q is not listed as known", g.Name, r.Record))
			}
		}
	}

	return res
}
