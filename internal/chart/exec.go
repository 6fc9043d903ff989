package chart

import (
	"fmt"
	"strings"

	"github.com/lakewatch/lakewatch/internal/dataset"
)

// ExecSnippet evaluates a model-authored chart snippet against a
// restricted namespace: a private copy of the table bound to "df" and a
// plotting namespace bound to "px". Nothing else resolves — no
// filesystem, no network, no session state. After evaluation the
// namespace must bind a chart to "fig"; a missing binding or any
// evaluation error is reported in the result's Warning, never raised.
//
// The accepted statement forms are the ones models actually emit for
// this prompt family:
//
//	fig = px.line(df, x="date", y="ph", title="pH over time")
//	df = df.drop(columns=["site"])
//	import / comment / blank lines (ignored)
//
// Anything else is an evaluation error with the offending line in the
// message so the user can retry.
func ExecSnippet(code string, t *dataset.Table, opts Options) Result {
	env := &snippetEnv{df: t.Clone()}

	for _, raw := range strings.Split(code, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") ||
			strings.HasPrefix(line, "import ") || strings.HasPrefix(line, "from ") {
			continue
		}
		if err := env.eval(line); err != nil {
			return Result{Warning: fmt.Sprintf("could not generate chart: %v", err)}
		}
	}

	if env.fig == nil {
		return Result{Warning: "could not generate chart: snippet did not assign a chart to \"fig\""}
	}
	return RenderSpec(*env.fig, env.df, opts)
}

// snippetEnv is the execution namespace: the working table and the
// chart bound to fig, if any.
type snippetEnv struct {
	df  *dataset.Table
	fig *Spec
}

func (e *snippetEnv) eval(line string) error {
	// Models routinely close with fig.show(); rendering happens outside
	// the namespace, so display calls are no-ops.
	if line == "fig.show()" {
		return nil
	}

	target, expr, ok := splitAssignment(line)
	if !ok {
		return fmt.Errorf("unsupported statement %q", line)
	}

	switch {
	case strings.HasPrefix(expr, "px."):
		spec, err := e.evalPlotCall(expr)
		if err != nil {
			return err
		}
		if target != "fig" {
			// Tolerated: the binding is simply not the chart output.
			return nil
		}
		e.fig = spec
		return nil

	case strings.HasPrefix(expr, "df."):
		if target != "df" {
			return fmt.Errorf("unsupported assignment target %q", target)
		}
		return e.evalFrameCall(expr)
	}

	return fmt.Errorf("name %q is not defined in the chart namespace", firstName(expr))
}

// splitAssignment splits "name = expr" at the first top-level equals
// sign, rejecting comparison operators.
func splitAssignment(line string) (target, expr string, ok bool) {
	idx := strings.Index(line, "=")
	if idx <= 0 || (idx+1 < len(line) && line[idx+1] == '=') {
		return "", "", false
	}
	target = strings.TrimSpace(line[:idx])
	expr = strings.TrimSpace(line[idx+1:])
	if target == "" || expr == "" || strings.ContainsAny(target, " .([") {
		return "", "", false
	}
	return target, expr, true
}

// evalPlotCall evaluates px.<kind>(df, x=..., y=..., title=...).
func (e *snippetEnv) evalPlotCall(expr string) (*Spec, error) {
	name, args, err := parseCall(expr, "px.")
	if err != nil {
		return nil, err
	}

	kind := Kind(name)
	if !kind.Supported() {
		return nil, fmt.Errorf("px has no chart function %q", name)
	}

	spec := &Spec{Kind: kind}
	for i, arg := range args {
		key, val := splitKwarg(arg)
		if key == "" {
			// Sole accepted positional argument is the frame itself.
			if i == 0 && val == "df" {
				continue
			}
			return nil, fmt.Errorf("unexpected argument %q in px.%s call", arg, name)
		}
		switch key {
		case "df", "data_frame":
			// Frame keyword form; only df exists.
		case "x", "y", "title":
			sval, err := stringArg(val)
			if err != nil {
				return nil, fmt.Errorf("argument %s in px.%s call: %w", key, name, err)
			}
			switch key {
			case "x":
				spec.X = sval
			case "y":
				spec.Y = sval
			case "title":
				spec.Title = sval
			}
		case "color", "labels", "markers", "nbins":
			// Cosmetic plotly arguments without a terminal equivalent.
		default:
			return nil, fmt.Errorf("unknown argument %q in px.%s call", key, name)
		}
	}
	return spec, nil
}

// evalFrameCall evaluates the supported frame methods on the working
// copy. Mutations only ever touch the clone held by this namespace.
func (e *snippetEnv) evalFrameCall(expr string) error {
	name, args, err := parseCall(expr, "df.")
	if err != nil {
		return err
	}

	switch name {
	case "drop":
		for _, arg := range args {
			key, val := splitKwarg(arg)
			if key != "columns" {
				return fmt.Errorf("df.drop supports only the columns argument, got %q", arg)
			}
			names, err := stringList(val)
			if err != nil {
				return fmt.Errorf("df.drop columns: %w", err)
			}
			dropped, err := dropColumns(e.df, names)
			if err != nil {
				return err
			}
			e.df = dropped
		}
		return nil
	case "dropna":
		e.df = dropMissingRows(e.df)
		return nil
	case "copy":
		return nil
	}
	return fmt.Errorf("df has no supported method %q", name)
}

// parseCall splits "<prefix><name>(<args>)" into the call name and its
// comma-separated top-level arguments.
func parseCall(expr, prefix string) (name string, args []string, err error) {
	rest := strings.TrimPrefix(expr, prefix)
	open := strings.IndexByte(rest, '(')
	if open == -1 || !strings.HasSuffix(rest, ")") {
		return "", nil, fmt.Errorf("malformed call %q", expr)
	}
	name = strings.TrimSpace(rest[:open])
	inner := rest[open+1 : len(rest)-1]

	depth := 0
	inStr := byte(0)
	start := 0
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if inStr != 0 {
			if c == inStr {
				inStr = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			inStr = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}
	if tail := strings.TrimSpace(inner[start:]); tail != "" {
		args = append(args, tail)
	}
	return name, args, nil
}

// splitKwarg splits "key=value"; positional arguments return an empty
// key with the raw text as value.
func splitKwarg(arg string) (key, val string) {
	idx := strings.Index(arg, "=")
	if idx == -1 {
		return "", strings.TrimSpace(arg)
	}
	return strings.TrimSpace(arg[:idx]), strings.TrimSpace(arg[idx+1:])
}

// stringArg unquotes a single- or double-quoted literal, and also
// accepts the df["col"] indexing form models sometimes emit for axes.
func stringArg(val string) (string, error) {
	if strings.HasPrefix(val, "df[") && strings.HasSuffix(val, "]") {
		return stringArg(strings.TrimSuffix(strings.TrimPrefix(val, "df["), "]"))
	}
	if len(val) >= 2 {
		if (val[0] == '"' && val[len(val)-1] == '"') || (val[0] == '\'' && val[len(val)-1] == '\'') {
			return val[1 : len(val)-1], nil
		}
	}
	return "", fmt.Errorf("expected a quoted column name, got %q", val)
}

// stringList parses ["a", "b"] style literals.
func stringList(val string) ([]string, error) {
	if !strings.HasPrefix(val, "[") || !strings.HasSuffix(val, "]") {
		// A bare quoted name is accepted the way pandas accepts it.
		s, err := stringArg(val)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}
	inner := strings.TrimSpace(val[1 : len(val)-1])
	if inner == "" {
		return nil, nil
	}
	var out []string
	for _, part := range strings.Split(inner, ",") {
		s, err := stringArg(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func firstName(expr string) string {
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_') {
			return expr[:i]
		}
	}
	return expr
}

// dropColumns returns a copy of t without the named columns.
func dropColumns(t *dataset.Table, names []string) (*dataset.Table, error) {
	for _, n := range names {
		if !t.HasColumn(n) {
			return nil, fmt.Errorf("column %q not found in dataset", n)
		}
	}
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	var cols []dataset.Column
	for _, c := range t.Columns() {
		if drop[c.Name] {
			continue
		}
		vals := make([]dataset.Value, len(c.Values))
		copy(vals, c.Values)
		cols = append(cols, dataset.Column{Name: c.Name, Values: vals})
	}
	return dataset.New(cols)
}

// dropMissingRows returns a copy of t without rows holding any missing
// cell.
func dropMissingRows(t *dataset.Table) *dataset.Table {
	keep := make([]bool, t.NumRows())
	for i := range keep {
		keep[i] = true
		for _, v := range t.Row(i) {
			if v.IsMissing() {
				keep[i] = false
				break
			}
		}
	}
	cols := make([]dataset.Column, 0, t.NumCols())
	for _, c := range t.Columns() {
		var vals []dataset.Value
		for i, v := range c.Values {
			if keep[i] {
				vals = append(vals, v)
			}
		}
		cols = append(cols, dataset.Column{Name: c.Name, Values: vals})
	}
	out, _ := dataset.New(cols)
	return out
}
