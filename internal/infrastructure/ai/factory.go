package ai

import (
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/smartdine/v2/internal/infrastructure/config"
	"github.com/smartdine/v2/internal/ports/outbound"
	"github.com/smartdine/v2/pkg/errors"
)

// NewCompletionClient builds the completion backend selected by the
// configuration. Construction fails with a configuration error when the
// selected backend has no credential; adding a backend means adding a
// variant here, never branching at call sites.
func NewCompletionClient(cfg config.AIConfig, logger *zap.Logger) (outbound.CompletionClient, error) {
	source := strings.ToLower(strings.TrimSpace(cfg.Source))

	switch source {
	case "openai":
		key := credential(cfg.OpenAIKey, "OPENAI_API_KEY")
		if key == "" {
			return nil, errors.NewConfigurationError("openai backend selected but no API key configured")
		}
		return NewOpenAIClient(key, logger), nil

	case "openrouter":
		key := credential(cfg.OpenRouterKey, "OPENROUTER_API_KEY")
		if key == "" {
			return nil, errors.NewConfigurationError("openrouter backend selected but no API key configured")
		}
		return NewOpenRouterClient(key, logger), nil

	case "azure":
		key := credential(cfg.AzureKey, "AZURE_OPENAI_KEY")
		endpoint := credential(cfg.AzureEndpoint, "AZURE_OPENAI_ENDPOINT")
		if key == "" || endpoint == "" {
			return nil, errors.NewConfigurationError("azure backend selected but endpoint or API key missing")
		}
		return NewAzureClient(endpoint, key, cfg.AzureAPIVersion, logger), nil

	case "dashscope", "qwen":
		key := credential(cfg.DashScopeKey, "DASHSCOPE_API_KEY")
		if key == "" {
			return nil, errors.NewConfigurationError("dashscope backend selected but no API key configured")
		}
		return NewDashScopeClient(key, logger), nil

	case "":
		return nil, errors.NewConfigurationError("no completion backend selected")

	default:
		return nil, errors.NewConfigurationError("unknown completion backend: " + source)
	}
}

func credential(configured, envVar string) string {
	if configured != "" {
		return configured
	}
	return strings.TrimSpace(os.Getenv(envVar))
}
