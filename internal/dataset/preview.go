package dataset

import (
	"strings"
)

// PreviewText renders the first n rows as an aligned plain-text block,
// one header line plus one line per row. This is the form embedded in
// model prompts, so it stays free of ANSI styling.
func (t *Table) PreviewText(n int) string {
	head := t.Head(n)
	if head.NumCols() == 0 {
		return "(empty dataset)"
	}

	widths := make([]int, head.NumCols())
	for i, c := range head.cols {
		widths[i] = len(c.Name)
		for _, v := range c.Values {
			if w := len(v.Text()); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for i, c := range head.cols {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(pad(c.Name, widths[i]))
	}
	b.WriteString("\n")
	for r := 0; r < head.NumRows(); r++ {
		for i, c := range head.cols {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(pad(c.Values[r].Text(), widths[i]))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// PreviewCSV renders the first n rows as CSV with a header line.
// Cells containing commas or quotes are quoted.
func (t *Table) PreviewCSV(n int) string {
	head := t.Head(n)
	if head.NumCols() == 0 {
		return ""
	}
	var b strings.Builder
	for i, c := range head.cols {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(csvEscape(c.Name))
	}
	b.WriteString("\n")
	for r := 0; r < head.NumRows(); r++ {
		for i, c := range head.cols {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(csvEscape(c.Values[r].Text()))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func pad(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}

func csvEscape(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
