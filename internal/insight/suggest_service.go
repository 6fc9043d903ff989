package insight

import (
	"context"
	"fmt"
	"strings"

	"github.com/lakewatch/lakewatch/internal/chart"
	"github.com/lakewatch/lakewatch/internal/dataset"
	"github.com/lakewatch/lakewatch/internal/llm"
)

const suggestSystemPrompt = `You are a data visualization assistant for water-quality
monitoring data. The user will describe a dataframe named df.

Propose exactly 3 useful charts for this dataset. For each one, reply
with a short one-line rationale followed by a fenced python code block
that builds the figure with plotly express (px) and assigns it to a
variable named fig. Use only columns that exist in the dataframe.
Prefer px.scatter, px.line, px.bar and px.histogram.`

// suggestCount is the number of chart proposals requested from the model.
const suggestCount = 3

// Suggestion pairs a model-proposed snippet with its rendered chart,
// or a warning when the snippet could not be turned into one.
// Rationale is the model's one-line case for the chart, taken from the
// prose preceding its code block.
type Suggestion struct {
	Snippet   string
	Rationale string
	Chart     string
	Warning   string
}

// SuggestService asks the model for chart ideas and renders them.
type SuggestService struct {
	client llm.LLMClient
	opts   chart.Options
}

// NewSuggestService creates a SuggestService backed by an LLM client.
func NewSuggestService(client llm.LLMClient) *SuggestService {
	return &SuggestService{client: client, opts: chart.DefaultOptions}
}

// SetRenderOptions overrides the chart dimensions used for rendering.
func (s *SuggestService) SetRenderOptions(opts chart.Options) {
	s.opts = opts
}

// Suggest returns up to three rendered chart proposals for the table.
// Snippets that fail to execute are kept with their warning so the
// caller can still show what the model proposed.
func (s *SuggestService) Suggest(ctx context.Context, t *dataset.Table) ([]Suggestion, error) {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskSuggest,
		SystemPrompt: suggestSystemPrompt,
		UserPrompt:   suggestPrompt(t),
	})
	if err != nil {
		return nil, fmt.Errorf("chart suggestions: %w", err)
	}

	blocks := llm.FencedBlocks(resp.Text, suggestCount)
	if len(blocks) == 0 {
		return nil, fmt.Errorf("chart suggestions: %w: reply contained no code blocks", llm.ErrInvalidOutput)
	}

	out := make([]Suggestion, 0, len(blocks))
	for _, block := range blocks {
		res := chart.ExecSnippet(block.Code, t, s.opts)
		out = append(out, Suggestion{
			Snippet:   block.Code,
			Rationale: block.Preamble,
			Chart:     res.Chart,
			Warning:   res.Warning,
		})
	}
	return out, nil
}

func suggestPrompt(t *dataset.Table) string {
	var b strings.Builder
	fmt.Fprintf(&b, "df has %s.\n", t.Shape())
	fmt.Fprintf(&b, "Columns: %s\n", strings.Join(t.ColumnNames(), ", "))
	if numeric := t.NumericColumns(); len(numeric) > 0 {
		fmt.Fprintf(&b, "Numeric columns: %s\n", strings.Join(numeric, ", "))
	}
	// CSV reads more compactly than the aligned form, which matters
	// when the model has to echo column names back in code.
	fmt.Fprintf(&b, "\nSample rows (CSV):\n%s\n", t.PreviewCSV(summaryPreviewRows))
	return b.String()
}
