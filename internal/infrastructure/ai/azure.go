package ai

import (
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const defaultAzureAPIVersion = "2024-12-01-preview"

// NewAzureClient creates a client for an Azure OpenAI deployment, the
// enterprise-gateway variant. Azure also speaks the OpenAI wire
// protocol behind deployment-scoped URLs.
func NewAzureClient(endpoint, apiKey, apiVersion string, logger *zap.Logger) *OpenAIClient {
	cfg := openai.DefaultAzureConfig(apiKey, endpoint)
	if apiVersion == "" {
		apiVersion = defaultAzureAPIVersion
	}
	cfg.APIVersion = apiVersion

	return &OpenAIClient{
		name:   "azure",
		client: openai.NewClientWithConfig(cfg),
		logger: logger.Named("azure"),
	}
}
