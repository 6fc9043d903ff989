package llm

import (
	"context"
	"fmt"
)

// DisabledClient satisfies LLMClient when model calls are switched off
// by configuration. Every generate call fails with ErrUnavailable, so
// callers degrade the same way they do for an unreachable endpoint.
type DisabledClient struct{}

func (DisabledClient) Generate(context.Context, GenerateRequest) (*GenerateResponse, error) {
	return nil, fmt.Errorf("model calls disabled: %w", ErrUnavailable)
}

func (DisabledClient) Available(context.Context) bool { return false }
