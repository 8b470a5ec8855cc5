package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/smartdine/v2/internal/infrastructure/config"
	"github.com/smartdine/v2/pkg/errors"
)

func TestNewCompletionClient(t *testing.T) {
	logger := zap.NewNop()

	// Ambient credentials would leak into the fallback lookup.
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("AZURE_OPENAI_KEY", "")
	t.Setenv("AZURE_OPENAI_ENDPOINT", "")
	t.Setenv("DASHSCOPE_API_KEY", "")

	t.Run("OpenAIWithKey_ShouldBuild", func(t *testing.T) {
		client, err := NewCompletionClient(config.AIConfig{Source: "openai", OpenAIKey: "sk-test"}, logger)

		require.NoError(t, err)
		assert.Equal(t, "openai", client.Name())
	})

	t.Run("OpenAIWithoutKey_ShouldFail", func(t *testing.T) {
		_, err := NewCompletionClient(config.AIConfig{Source: "openai"}, logger)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.CodeConfiguration))
	})

	t.Run("KeyFromEnvironment_ShouldBeAccepted", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-env")

		client, err := NewCompletionClient(config.AIConfig{Source: "openai"}, logger)

		require.NoError(t, err)
		assert.Equal(t, "openai", client.Name())
	})

	t.Run("SourceMatching_ShouldIgnoreCaseAndWhitespace", func(t *testing.T) {
		client, err := NewCompletionClient(config.AIConfig{Source: " OpenRouter ", OpenRouterKey: "or-test"}, logger)

		require.NoError(t, err)
		assert.Equal(t, "openrouter", client.Name())
	})

	t.Run("AzureWithoutEndpoint_ShouldFail", func(t *testing.T) {
		_, err := NewCompletionClient(config.AIConfig{Source: "azure", AzureKey: "az-test"}, logger)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.CodeConfiguration))
	})

	t.Run("AzureComplete_ShouldBuild", func(t *testing.T) {
		cfg := config.AIConfig{
			Source:        "azure",
			AzureKey:      "az-test",
			AzureEndpoint: "https://example.openai.azure.com",
		}

		client, err := NewCompletionClient(cfg, logger)

		require.NoError(t, err)
		assert.Equal(t, "azure", client.Name())
	})

	t.Run("QwenAlias_ShouldBuildDashScope", func(t *testing.T) {
		client, err := NewCompletionClient(config.AIConfig{Source: "qwen", DashScopeKey: "ds-test"}, logger)

		require.NoError(t, err)
		assert.Equal(t, "dashscope", client.Name())
	})

	t.Run("UnknownSource_ShouldFail", func(t *testing.T) {
		_, err := NewCompletionClient(config.AIConfig{Source: "bedrock"}, logger)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.CodeConfiguration))
	})

	t.Run("EmptySource_ShouldFail", func(t *testing.T) {
		_, err := NewCompletionClient(config.AIConfig{Source: ""}, logger)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.CodeConfiguration))
	})
}
