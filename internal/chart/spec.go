// Package chart turns model replies into validated chart requests and
// renders them as terminal graphics.
package chart

import (
	"fmt"
	"strings"

	"github.com/lakewatch/lakewatch/internal/dataset"
)

// Kind identifies a chart type. Values outside the supported set are
// carried through parsing and rejected at validation time with a
// user-visible warning rather than an error.
type Kind string

const (
	KindScatter   Kind = "scatter"
	KindLine      Kind = "line"
	KindBar       Kind = "bar"
	KindHistogram Kind = "histogram"
)

// Kinds lists the supported chart types in display order.
var Kinds = []Kind{KindScatter, KindLine, KindBar, KindHistogram}

// Supported reports whether the kind is in the closed render set.
func (k Kind) Supported() bool {
	switch k {
	case KindScatter, KindLine, KindBar, KindHistogram:
		return true
	}
	return false
}

// Spec is a closed, validated description of a chart request.
type Spec struct {
	Kind  Kind
	X     string
	Y     string
	Title string
}

// Validate checks the spec against the target table: the kind must be
// supported, referenced columns must exist, and axis requirements per
// kind must hold (scatter/line/bar need x and y; histogram needs x or
// y). Validation happens here, before rendering, never inside the
// renderer.
func (s Spec) Validate(t *dataset.Table) error {
	if !s.Kind.Supported() {
		return fmt.Errorf("unsupported chart type %q", s.Kind)
	}

	if s.Kind == KindHistogram {
		if s.X == "" && s.Y == "" {
			return fmt.Errorf("histogram needs an x or y column")
		}
	} else {
		if s.X == "" {
			return fmt.Errorf("%s chart needs an x column", s.Kind)
		}
		if s.Y == "" {
			return fmt.Errorf("%s chart needs a y column", s.Kind)
		}
	}

	for _, col := range []string{s.X, s.Y} {
		if col != "" && !t.HasColumn(col) {
			return fmt.Errorf("column %q not found in dataset (columns: %s)",
				col, strings.Join(t.ColumnNames(), ", "))
		}
	}
	return nil
}
