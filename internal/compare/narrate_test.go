package compare

import (
	"context"
	"errors"
	"testing"

	"github.com/lakewatch/lakewatch/internal/dataset"
	"github.com/lakewatch/lakewatch/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	lastReq llm.GenerateRequest
	reply   string
	err     error
}

func (s *stubClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &llm.GenerateResponse{Text: s.reply}, nil
}

func (s *stubClient) Available(context.Context) bool { return true }

func TestNarrate_BuildsPreviewPrompt(t *testing.T) {
	manual := table(t, []dataset.Column{
		strCol("date", "2024-01-01"),
		numCol("ph", 7.2),
	})
	reference := table(t, []dataset.Column{
		strCol("date", "2024-01-01"),
		numCol("ph", 7.0),
	})

	stub := &stubClient{reply: "| Parameter | Manual Avg |"}
	got, err := NewNarrator(stub).Narrate(context.Background(), manual, reference)
	require.NoError(t, err)
	assert.Equal(t, "| Parameter | Manual Avg |", got)

	assert.Equal(t, llm.TaskCompare, stub.lastReq.Task)
	assert.Contains(t, stub.lastReq.UserPrompt, "7.2")
	assert.Contains(t, stub.lastReq.UserPrompt, "Sensor readings")
}

func TestNarrate_PropagatesClientError(t *testing.T) {
	stub := &stubClient{err: errors.New("connection refused")}
	_, err := NewNarrator(stub).Narrate(context.Background(),
		table(t, []dataset.Column{strCol("date", "2024-01-01")}),
		table(t, []dataset.Column{strCol("date", "2024-01-01")}))
	assert.Error(t, err)
}
