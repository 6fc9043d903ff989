package chat

import (
	"fmt"
	"strings"

	"github.com/lakewatch/lakewatch/internal/chart"
	"github.com/lakewatch/lakewatch/internal/dataset"
)

// descriptorPreamble instructs the model to answer in prose or with one
// flat JSON chart descriptor.
const descriptorPreamble = `You are a data analysis assistant for researchers working with water
quality measurements. You can summarize the dataset, explain columns and
patterns, point out nulls and outliers, and suggest visualizations.

If a chart is needed, respond with exactly one JSON object in this form:
{"type": "scatter", "x": "col1", "y": "col2", "title": "Chart title"}
where "type" is one of scatter, line, bar, histogram. Use only column
names that appear in the dataset. Otherwise reply in plain text only.`

// snippetPreamble instructs the model to answer in prose or with one
// fenced Plotly Express snippet operating on the DataFrame df.
const snippetPreamble = `You are a data analysis assistant for researchers working with water
quality measurements, analyzing a pandas DataFrame named df.

When a chart is needed, generate Python code with Plotly Express that
assigns the figure to a variable named fig, and wrap the code in triple
backticks so it can be extracted. Use only column names that appear in
the dataset. For plain questions, answer in plain text without code.`

// BuildSystemPrompt composes the fixed per-turn preamble: mode-specific
// instructions plus the dataset shape, column list, and a bounded row
// preview. The preview is a deliberate truncation — rows beyond it are
// invisible to the model.
func BuildSystemPrompt(mode chart.Mode, t *dataset.Table, previewRows int) string {
	preamble := descriptorPreamble
	if mode == chart.ModeSnippet {
		preamble = snippetPreamble
	}
	if t == nil || t.NumCols() == 0 {
		return preamble + "\n\nNo dataset is loaded yet."
	}
	return fmt.Sprintf(`%s

The dataset has %s. The columns are: %s.

Here is a preview of the data (first %d rows):
%s`,
		preamble,
		t.Shape(),
		strings.Join(t.ColumnNames(), ", "),
		previewRows,
		t.PreviewText(previewRows),
	)
}
