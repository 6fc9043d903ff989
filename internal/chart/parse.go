package chart

import (
	"fmt"

	"github.com/lakewatch/lakewatch/internal/llm"
)

// Mode selects which reply shape the parser looks for. A deployment
// runs one mode; the two shapes are never combined in one response.
type Mode string

const (
	// ModeDescriptor expects an embedded JSON chart descriptor.
	ModeDescriptor Mode = "json"
	// ModeSnippet expects a fenced chart-construction code block.
	ModeSnippet Mode = "snippet"
)

// ParseMode maps a configuration string onto a Mode, defaulting to the
// descriptor path.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDescriptor, ModeSnippet:
		return Mode(s), nil
	case "":
		return ModeDescriptor, nil
	}
	return "", fmt.Errorf("unknown parser mode %q (want %q or %q)", s, ModeDescriptor, ModeSnippet)
}

// ParseResult is the outcome of parsing a model reply: a chart descriptor, a
// candidate snippet, or neither. "Neither" is a first-class outcome —
// the reply is plain prose and is shown verbatim.
type ParseResult struct {
	Spec    *Spec
	Snippet string
}

// None reports whether the reply parsed as plain prose.
func (r ParseResult) None() bool { return r.Spec == nil && r.Snippet == "" }

// descriptor mirrors the wire contract for the JSON path: one flat
// object, required "type", optional "x", "y", "title", all strings.
type descriptor struct {
	Type  string `json:"type"`
	X     string `json:"x"`
	Y     string `json:"y"`
	Title string `json:"title"`
}

// Parse recovers a chart request from free-form model text. It never
// fails: malformed or absent structure degrades to the None outcome.
func Parse(mode Mode, reply string) ParseResult {
	switch mode {
	case ModeSnippet:
		return ParseResult{Snippet: llm.FencedBlock(reply)}
	default:
		return ParseResult{Spec: parseDescriptor(reply)}
	}
}

// parseDescriptor extracts the first brace-delimited JSON object from
// the reply. A missing object, malformed JSON, or an absent "type" key
// all yield nil.
func parseDescriptor(reply string) *Spec {
	d, err := llm.ExtractJSON[descriptor](reply, func(d descriptor) error {
		if d.Type == "" {
			return fmt.Errorf("missing required key %q", "type")
		}
		return nil
	})
	if err != nil {
		return nil
	}
	return &Spec{Kind: Kind(d.Type), X: d.X, Y: d.Y, Title: d.Title}
}
