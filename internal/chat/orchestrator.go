package chat

import (
	"context"
	"fmt"

	"github.com/lakewatch/lakewatch/internal/chart"
	"github.com/lakewatch/lakewatch/internal/dataset"
	"github.com/lakewatch/lakewatch/internal/llm"
)

// State tracks the per-turn request cycle. There is no persistent
// "thinking" state: a failed model call returns the orchestrator to
// idle with an error turn recorded.
type State int

const (
	StateIdle State = iota
	StateAwaitingModel
)

// DefaultPreviewRows bounds the row preview embedded in the system
// prompt.
const DefaultPreviewRows = 100

// Outcome is the user-visible result of one turn. Reply always carries
// the raw model text when a round trip succeeded; Chart and Warning
// describe what the chart pipeline made of it.
type Outcome struct {
	Reply   string
	Chart   string
	Warning string
	// Failed is set when the model round trip itself failed and the
	// turn was abandoned.
	Failed bool
}

// HasChart reports whether a chart was rendered this turn.
func (o Outcome) HasChart() bool { return o.Chart != "" }

// Orchestrator owns the request/response cycle against the model
// client for a single session. It is not safe for concurrent use; the
// surrounding session accepts one in-flight request at a time.
type Orchestrator struct {
	client      llm.LLMClient
	mode        chart.Mode
	previewRows int
	renderOpts  chart.Options
	conv        *Conversation
	state       State
}

// NewOrchestrator creates an orchestrator for one session.
func NewOrchestrator(client llm.LLMClient, mode chart.Mode, previewRows int) *Orchestrator {
	if previewRows <= 0 {
		previewRows = DefaultPreviewRows
	}
	return &Orchestrator{
		client:      client,
		mode:        mode,
		previewRows: previewRows,
		renderOpts:  chart.DefaultOptions,
		conv:        NewConversation(),
	}
}

// Conversation exposes the session's turn history.
func (o *Orchestrator) Conversation() *Conversation { return o.conv }

// State returns the current request-cycle state.
func (o *Orchestrator) State() State { return o.state }

// SetRenderOptions overrides the chart size used for rendered outcomes.
func (o *Orchestrator) SetRenderOptions(opts chart.Options) { o.renderOpts = opts }

// Ask runs one full turn: append the user message, build the prompt
// from the dataset preview and history, call the model, record the
// reply, and route it through the chart pipeline. The raw reply is
// recorded as an assistant turn whether or not it parsed as a chart.
func (o *Orchestrator) Ask(ctx context.Context, t *dataset.Table, message string) Outcome {
	if o.state != StateIdle {
		return Outcome{Warning: "a model request is already in flight", Failed: true}
	}
	o.state = StateAwaitingModel
	defer func() { o.state = StateIdle }()

	// History is captured before the new user turn so the message is
	// not sent twice.
	history := o.conv.History()
	o.conv.Append(llm.RoleUser, message)

	resp, err := o.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskChat,
		SystemPrompt: BuildSystemPrompt(o.mode, t, o.previewRows),
		History:      history,
		UserPrompt:   message,
	})
	if err != nil {
		msg := fmt.Sprintf("model request failed: %v", err)
		o.conv.AppendError(msg)
		return Outcome{Warning: msg, Failed: true}
	}

	o.conv.Append(llm.RoleAssistant, resp.Text)
	return o.route(resp.Text, t)
}

// Retry re-issues the last user message without appending a new user
// turn, for the "regenerate chart" affordance: generation is
// non-deterministic, so a failed snippet may succeed on a second
// attempt.
func (o *Orchestrator) Retry(ctx context.Context, t *dataset.Table) Outcome {
	last, ok := o.lastUserMessage()
	if !ok {
		return Outcome{Warning: "nothing to retry", Failed: true}
	}
	if o.state != StateIdle {
		return Outcome{Warning: "a model request is already in flight", Failed: true}
	}
	o.state = StateAwaitingModel
	defer func() { o.state = StateIdle }()

	resp, err := o.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskChat,
		SystemPrompt: BuildSystemPrompt(o.mode, t, o.previewRows),
		History:      o.conv.History(),
		UserPrompt:   "Please try again: " + last,
	})
	if err != nil {
		msg := fmt.Sprintf("model request failed: %v", err)
		o.conv.AppendError(msg)
		return Outcome{Warning: msg, Failed: true}
	}

	o.conv.Append(llm.RoleAssistant, resp.Text)
	return o.route(resp.Text, t)
}

// route feeds a model reply through the chart parser and renderer.
// A reply that parses as plain prose is returned verbatim.
func (o *Orchestrator) route(reply string, t *dataset.Table) Outcome {
	res := chart.Parse(o.mode, reply)
	if res.None() || t == nil {
		return Outcome{Reply: reply}
	}

	var rendered chart.Result
	if res.Spec != nil {
		rendered = chart.RenderSpec(*res.Spec, t, o.renderOpts)
	} else {
		rendered = chart.ExecSnippet(res.Snippet, t, o.renderOpts)
	}
	return Outcome{Reply: reply, Chart: rendered.Chart, Warning: rendered.Warning}
}

func (o *Orchestrator) lastUserMessage() (string, bool) {
	for i := len(o.conv.turns) - 1; i >= 0; i-- {
		if o.conv.turns[i].Role == llm.RoleUser {
			return o.conv.turns[i].Content, true
		}
	}
	return "", false
}
