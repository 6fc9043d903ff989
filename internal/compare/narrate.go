package compare

import (
	"context"
	"fmt"

	"github.com/lakewatch/lakewatch/internal/dataset"
	"github.com/lakewatch/lakewatch/internal/llm"
)

const narrateSystemPrompt = `You are a scientific data analyst. Compare manually collected water
quality measurements against automated sensor readings from a monitoring station.

Generate a markdown table like:
| Parameter | Manual Avg | Sensor Avg | Difference | Trend |

Base the table only on the row previews you are given. After the table,
add two or three sentences on the most notable differences.`

// narrationPreviewRows bounds the preview fed to the model. The
// narration is intentionally built from row previews rather than the
// computed join, so it can disagree with the numeric table.
const narrationPreviewRows = 5

// Narrator produces a model-written comparison summary.
type Narrator struct {
	client llm.LLMClient
}

// NewNarrator creates a Narrator backed by an LLM client.
func NewNarrator(client llm.LLMClient) *Narrator {
	return &Narrator{client: client}
}

// Narrate asks the model for a per-parameter comparison table based on
// head previews of both datasets. Callers degrade to the computed
// alignment table when this fails.
func (n *Narrator) Narrate(ctx context.Context, manual, reference *dataset.Table) (string, error) {
	prompt := fmt.Sprintf(
		"Manual sample (first %d rows):\n%s\nSensor readings (first %d rows):\n%s",
		narrationPreviewRows, manual.PreviewText(narrationPreviewRows),
		narrationPreviewRows, reference.PreviewText(narrationPreviewRows),
	)

	resp, err := n.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskCompare,
		SystemPrompt: narrateSystemPrompt,
		UserPrompt:   prompt,
	})
	if err != nil {
		return "", fmt.Errorf("comparison narration: %w", err)
	}
	return resp.Text, nil
}
