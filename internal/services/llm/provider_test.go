package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/valuelens/internal/common"
	"github.com/ternarybob/valuelens/internal/interfaces"
	"google.golang.org/genai"
)

func newTestFactory(defaultProvider common.LLMProvider) *ProviderFactory {
	config := common.NewDefaultConfig()
	config.LLM.DefaultProvider = defaultProvider
	return NewProviderFactory(&config.Gemini, &config.Claude, &config.LLM, arbor.NewLogger())
}

func TestDetectProvider(t *testing.T) {
	tests := []struct {
		name            string
		defaultProvider common.LLMProvider
		model           string
		want            ProviderType
	}{
		{"claude model", common.LLMProviderGemini, "claude-sonnet-4-20250514", ProviderClaude},
		{"claude prefix", common.LLMProviderGemini, "claude/claude-sonnet-4-20250514", ProviderClaude},
		{"anthropic prefix", common.LLMProviderGemini, "anthropic/whatever", ProviderClaude},
		{"gemini model", common.LLMProviderClaude, "gemini-2.5-flash", ProviderGemini},
		{"google prefix", common.LLMProviderClaude, "google/gemini-2.5-pro", ProviderGemini},
		{"upper case", common.LLMProviderGemini, "Claude-Opus", ProviderClaude},
		{"empty uses default gemini", common.LLMProviderGemini, "", ProviderGemini},
		{"empty uses default claude", common.LLMProviderClaude, "", ProviderClaude},
		{"unknown uses default", common.LLMProviderClaude, "my-model", ProviderClaude},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFactory(tt.defaultProvider)
			assert.Equal(t, tt.want, f.DetectProvider(tt.model))
		})
	}
}

func TestResolveModel(t *testing.T) {
	f := newTestFactory(common.LLMProviderGemini)

	provider, model := f.ResolveModel("")
	assert.Equal(t, ProviderGemini, provider)
	assert.Equal(t, "gemini-2.5-flash", model)

	provider, model = f.ResolveModel("claude/claude-3-5-haiku-latest")
	assert.Equal(t, ProviderClaude, provider)
	assert.Equal(t, "claude-3-5-haiku-latest", model)

	provider, model = f.ResolveModel("claude/")
	assert.Equal(t, ProviderClaude, provider)
	assert.Equal(t, "claude-sonnet-4-20250514", model)
}

func TestGenerateContent_MissingAPIKey(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	messages := []interfaces.Message{{Role: "user", Content: "hello"}}

	f := newTestFactory(common.LLMProviderGemini)
	_, err := f.GenerateContent(context.Background(), &ContentRequest{Messages: messages})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Gemini API key")

	_, err = f.GenerateContent(context.Background(), &ContentRequest{Messages: messages, Model: "claude-sonnet-4-20250514"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Anthropic API key")
}

func TestGenerateContent_InvalidMessages(t *testing.T) {
	f := newTestFactory(common.LLMProviderClaude)
	_, err := f.GenerateContent(context.Background(), &ContentRequest{
		Messages: []interfaces.Message{{Role: "system", Content: "only system"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "role 'user'")
}

func TestConvertMessages(t *testing.T) {
	messages := []interfaces.Message{
		{Role: "system", Content: "first system"},
		{Role: "user", Content: "question"},
		{Role: "assistant", Content: "answer"},
		{Role: "system", Content: "second system"},
		{Role: "tool", Content: "treated as user"},
	}

	claude, system, err := convertMessagesToClaude(messages)
	require.NoError(t, err)
	assert.Equal(t, "first system", system)
	assert.Len(t, claude, 3)

	gemini, system, err := convertMessagesToGemini(messages)
	require.NoError(t, err)
	assert.Equal(t, "first system", system)
	require.Len(t, gemini, 3)
	assert.Equal(t, genai.RoleUser, gemini[0].Role)
	assert.Equal(t, genai.RoleModel, gemini[1].Role)
	assert.Equal(t, genai.RoleUser, gemini[2].Role)

	_, _, err = convertMessagesToGemini(nil)
	assert.Error(t, err)
}

func TestConvertToGenaiSchema(t *testing.T) {
	schema, err := convertToGenaiSchema(map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"report"},
		"properties": map[string]interface{}{
			"report": map[string]interface{}{
				"type":        "string",
				"description": "Markdown evaluation",
			},
			"scores": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "number", "minimum": 0.0, "maximum": int64(10)},
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, genai.TypeObject, schema.Type)
	assert.Equal(t, []string{"report"}, schema.Required)
	require.Contains(t, schema.Properties, "report")
	assert.Equal(t, genai.TypeString, schema.Properties["report"].Type)
	assert.Equal(t, "Markdown evaluation", schema.Properties["report"].Description)
	items := schema.Properties["scores"].Items
	require.NotNil(t, items)
	assert.Equal(t, 0.0, *items.Minimum)
	assert.Equal(t, 10.0, *items.Maximum)

	empty, err := convertToGenaiSchema(nil)
	assert.NoError(t, err)
	assert.Nil(t, empty)

	_, err = convertToGenaiSchema(map[string]interface{}{"type": "tuple"})
	assert.Error(t, err)
}

func TestParseGeminiThinkingLevel(t *testing.T) {
	assert.Equal(t, genai.ThinkingLevelLow, parseGeminiThinkingLevel("low"))
	assert.Equal(t, genai.ThinkingLevelHigh, parseGeminiThinkingLevel("HIGH"))
	assert.Equal(t, genai.ThinkingLevel(""), parseGeminiThinkingLevel("extreme"))
}
