package llm

import (
	"fmt"
	"io"
	"time"
)

// LLMCallEvent is the per-call record handed to the Observer: which
// task ran, against which model, how long it took and how it ended.
type LLMCallEvent struct {
	Task      TaskType
	Model     string
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives one event per model round trip. The dashboard owns
// the terminal, so call logging goes through this hook instead of a
// global logger.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// LogObserver writes one line per call to w, keyed for grepping.
// Enabled via LAKEWATCH_LLM_LOG_CALLS; wired to stderr so the TUI
// frame stays clean.
type LogObserver struct {
	w io.Writer
}

func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	ts := time.Now().UTC().Format(time.RFC3339)
	status := "ok"
	if !event.Success {
		status = "err:" + event.ErrorCode
	}
	fmt.Fprintf(o.w, "[%s] model_call task=%s model=%s latency_ms=%d status=%s\n",
		ts, event.Task, event.Model, event.LatencyMs, status)
}

// NoopObserver discards every event.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}
