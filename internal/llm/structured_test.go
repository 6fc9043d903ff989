package llm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testSpec struct {
	Type  string `json:"type"`
	X     string `json:"x"`
	Title string `json:"title"`
}

func TestExtractJSON_CleanJSON(t *testing.T) {
	raw := `{"type":"scatter","x":"ph","title":"T"}`
	result, err := ExtractJSON[testSpec](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "scatter", result.Type)
	assert.Equal(t, "ph", result.X)
}

func TestExtractJSON_FencedJSON(t *testing.T) {
	raw := "```json\n{\"type\":\"line\",\"x\":\"date\"}\n```"
	result, err := ExtractJSON[testSpec](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "line", result.Type)
}

func TestExtractJSON_SurroundingText(t *testing.T) {
	raw := "Here is your chart:\n{\"type\":\"bar\",\"x\":\"site\"}\nHope that helps!"
	result, err := ExtractJSON[testSpec](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "bar", result.Type)
}

func TestExtractJSON_NestedBraces(t *testing.T) {
	type nested struct {
		Type string            `json:"type"`
		Args map[string]string `json:"args"`
	}
	raw := `{"type":"scatter","args":{"x":"ph"}}`
	result, err := ExtractJSON[nested](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "ph", result.Args["x"])
}

func TestExtractJSON_BracesInsideStrings(t *testing.T) {
	raw := `{"type":"line","title":"pH {raw} over time"}`
	result, err := ExtractJSON[testSpec](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "pH {raw} over time", result.Title)
}

func TestExtractJSON_NoJSON(t *testing.T) {
	_, err := ExtractJSON[testSpec]("The dataset looks healthy overall.", nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_InvalidJSON(t *testing.T) {
	_, err := ExtractJSON[testSpec](`{"type":"scatter", broken}`, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_ValidatorRejects(t *testing.T) {
	raw := `{"type":"pie"}`
	_, err := ExtractJSON[testSpec](raw, func(s testSpec) error {
		if s.Type == "pie" {
			return fmt.Errorf("unsupported type %q", s.Type)
		}
		return nil
	})
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_CommentsStripped(t *testing.T) {
	raw := "{\"type\":\"line\", // the requested chart\n\"x\":\"date\"}"
	result, err := ExtractJSON[testSpec](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "date", result.X)
}

func TestFencedBlock(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "with language tag",
			in:   "Sure:\n```python\nfig = px.line(df, x=\"date\", y=\"ph\")\n```\nDone.",
			want: `fig = px.line(df, x="date", y="ph")`,
		},
		{
			name: "no language tag",
			in:   "```\nfig = px.bar(df, x=\"site\", y=\"ph\")\n```",
			want: `fig = px.bar(df, x="site", y="ph")`,
		},
		{
			name: "no fence",
			in:   "just prose, no code here",
			want: "",
		},
		{
			name: "unterminated fence",
			in:   "```python\nfig = px.line(df)",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FencedBlock(tt.in))
		})
	}
}
