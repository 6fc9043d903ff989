package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()
	assert.Equal(t, "http://localhost:11434", cfg.Endpoint)
	assert.Equal(t, "llama3.2", cfg.Model)
	assert.True(t, cfg.Enabled)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("LAKEWATCH_LLM_ENDPOINT", "http://remote:11434")
	t.Setenv("LAKEWATCH_LLM_MODEL", "mistral")
	t.Setenv("LAKEWATCH_LLM_TIMEOUT_MS", "5000")
	t.Setenv("LAKEWATCH_LLM_MAX_RETRIES", "3")
	t.Setenv("LAKEWATCH_LLM_CHAT_TIMEOUT_MS", "12000")

	cfg := LoadConfig()
	assert.Equal(t, "http://remote:11434", cfg.Endpoint)
	assert.Equal(t, "mistral", cfg.Model)
	assert.Equal(t, 5000, cfg.TimeoutMs)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 12000, cfg.TaskTimeout(TaskChat))
}

func TestLoadConfig_InvalidEnvIgnored(t *testing.T) {
	t.Setenv("LAKEWATCH_LLM_TIMEOUT_MS", "not-a-number")
	t.Setenv("LAKEWATCH_LLM_SUMMARY_TIMEOUT_MS", "-5")

	cfg := LoadConfig()
	assert.Equal(t, DefaultConfig().TimeoutMs, cfg.TimeoutMs)
	assert.Equal(t, DefaultConfig().TaskTimeout(TaskSummary), cfg.TaskTimeout(TaskSummary))
}

func TestTaskTimeout_FallsBackToGlobal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tasks["chat"] = TaskConfig{TimeoutMs: 0}
	assert.Equal(t, cfg.TimeoutMs, cfg.TaskTimeout(TaskChat))
	assert.Equal(t, cfg.TimeoutMs, cfg.TaskTimeout(TaskType("unknown")))
}
