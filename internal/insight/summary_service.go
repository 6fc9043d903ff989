// Package insight holds the model-backed dataset analysis services:
// the expert summary of an uploaded dataset and the chart suggestion
// flow.
package insight

import (
	"context"
	"fmt"
	"strings"

	"github.com/lakewatch/lakewatch/internal/dataset"
	"github.com/lakewatch/lakewatch/internal/llm"
)

const summarySystemPrompt = `You are a senior environmental scientist reviewing data from a
freshwater monitoring station.

Write an expert-level summary with two parts:

Part 1: 6-10 analytical bullet points covering parameter
interpretation, flatlined or low-variance sensors, high missingness,
biologically implausible values (for example dissolved oxygen below
5 mg/L, pH outside 6.5-8.5, turbidity above 5 NTU), timestamp gaps,
and whether the values look trustworthy.

Part 2: an executive paragraph on the dataset's overall fitness for
analysis and recommended next steps.

Avoid generic statements about row and column counts; the reader
already has them.`

// summaryPreviewRows bounds the sample rows included in the prompt.
const summaryPreviewRows = 5

// SummaryService generates an expert narrative about a dataset.
type SummaryService struct {
	client llm.LLMClient
}

// NewSummaryService creates a SummaryService backed by an LLM client.
func NewSummaryService(client llm.LLMClient) *SummaryService {
	return &SummaryService{client: client}
}

// Summarize builds a profile of the table (sample rows, missingness,
// numeric statistics) and asks the model for a narrative. Failures are
// returned to the caller, which degrades to showing the profile alone.
func (s *SummaryService) Summarize(ctx context.Context, t *dataset.Table) (string, error) {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskSummary,
		SystemPrompt: summarySystemPrompt,
		UserPrompt:   profilePrompt(t),
	})
	if err != nil {
		return "", fmt.Errorf("dataset summary: %w", err)
	}
	return resp.Text, nil
}

// profilePrompt renders the dataset facts the summary is grounded on.
func profilePrompt(t *dataset.Table) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The dataset contains %s.\n\n", t.Shape())

	fmt.Fprintf(&b, "Sample (first %d rows):\n%s\n", summaryPreviewRows, t.PreviewText(summaryPreviewRows))

	b.WriteString("Missing values (% per column):\n")
	for _, m := range dataset.MissingSummary(t) {
		fmt.Fprintf(&b, "  %s: %.1f%%\n", m.Name, m.Pct)
	}

	stats := dataset.Describe(t)
	if len(stats) > 0 {
		b.WriteString("\nNumeric statistics (mean, std, min, max):\n")
		for _, s := range stats {
			fmt.Fprintf(&b, "  %s: mean=%.3f std=%.3f min=%.3f max=%.3f\n",
				s.Name, s.Mean, s.Std, s.Min, s.Max)
		}
	}
	return b.String()
}
