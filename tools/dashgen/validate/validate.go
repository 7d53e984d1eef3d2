// Package validate checks generated Grafana dashboards against the set of
// metrics the proxy actually exports. Every panel query is parsed as PromQL
// and every metric selector must resolve to a known metric or recording rule.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/model/labels"
	"github.com/prometheus/prometheus/promql/parser"
)

// Result collects validation findings. Errors fail validation, warnings do not.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation passed.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

// Dashboard validates every query expression in the dashboard against the
// known metric set.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var res Result

	exprs, err := collectExprs(dash)
	if err != nil {
		res.Errors = append(res.Errors, err.Error())
		return res
	}

	for _, expr := range exprs {
		checkExpr(expr, known, &res)
	}
	return res
}

// Expr validates a single PromQL expression against the known metric set.
func Expr(expr string, known map[string]bool) Result {
	var res Result
	checkExpr(expr, known, &res)
	return res
}

func checkExpr(expr string, known map[string]bool, res *Result) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("invalid PromQL %q: %v", expr, err))
		return
	}

	names := metricNames(node)
	if len(names) == 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("expression references no metrics: %q", expr))
		return
	}

	for _, name := range names {
		if !knownMetric(name, known) {
			res.Errors = append(res.Errors, fmt.Sprintf("unknown metric %q in %q", name, expr))
		}
	}
}

// metricNames extracts every metric name referenced by vector selectors in
// the parsed expression.
func metricNames(node parser.Expr) []string {
	var names []string
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok {
			return nil
		}
		if vs.Name != "" {
			names = append(names, vs.Name)
			return nil
		}
		for _, m := range vs.LabelMatchers {
			if m.Name == labels.MetricName && m.Type == labels.MatchEqual {
				names = append(names, m.Value)
			}
		}
		return nil
	})
	return names
}

// knownMetric checks the name directly, then with histogram series suffixes
// stripped so queries over _bucket, _sum, and _count resolve to the base
// histogram name.
func knownMetric(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range []string{"_bucket", "_sum", "_count"} {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}

// collectExprs marshals the dashboard and walks the resulting JSON for every
// "expr" field. Working on the serialized form keeps this independent of the
// SDK's panel and target types.
func collectExprs(dash dashboard.Dashboard) ([]string, error) {
	data, err := json.Marshal(dash)
	if err != nil {
		return nil, fmt.Errorf("marshal dashboard: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal dashboard: %w", err)
	}

	var exprs []string
	walkExprs(doc, &exprs)
	return exprs, nil
}

func walkExprs(node any, exprs *[]string) {
	switch v := node.(type) {
	case map[string]any:
		if expr, ok := v["expr"].(string); ok && expr != "" {
			*exprs = append(*exprs, expr)
		}
		for _, child := range v {
			walkExprs(child, exprs)
		}
	case []any:
		for _, child := range v {
			walkExprs(child, exprs)
		}
	}
}
