// Package chat owns the conversation state and the per-turn
// orchestration between the user, the model client, and the chart
// pipeline.
package chat

import (
	"time"

	"github.com/lakewatch/lakewatch/internal/llm"
)

// Turn is one entry of a conversation. Error turns record a failed
// model round trip in place of an assistant reply.
type Turn struct {
	Role    llm.Role
	Content string
	When    time.Time
	IsError bool
}

// Conversation is the append-only turn sequence owned by a session.
// It is created at session start and cleared on reset.
type Conversation struct {
	turns []Turn
}

// NewConversation returns an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{}
}

// Append adds a turn.
func (c *Conversation) Append(role llm.Role, content string) {
	c.turns = append(c.turns, Turn{Role: role, Content: content, When: time.Now().UTC()})
}

// AppendError records a failed round trip as an error turn.
func (c *Conversation) AppendError(content string) {
	c.turns = append(c.turns, Turn{Role: llm.RoleAssistant, Content: content, When: time.Now().UTC(), IsError: true})
}

// Turns returns a copy of the turn sequence.
func (c *Conversation) Turns() []Turn {
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Len returns the number of turns.
func (c *Conversation) Len() int { return len(c.turns) }

// Reset drops all turns.
func (c *Conversation) Reset() { c.turns = nil }

// History converts prior user and assistant turns into model messages.
// System notes and error turns stay local to the UI.
func (c *Conversation) History() []llm.Message {
	var msgs []llm.Message
	for _, t := range c.turns {
		if t.IsError || t.Role == llm.RoleSystem {
			continue
		}
		msgs = append(msgs, llm.Message{Role: t.Role, Content: t.Content})
	}
	return msgs
}
