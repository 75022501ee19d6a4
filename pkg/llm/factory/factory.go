package factory

import (
	"fmt"
	"time"

	"intellichat-be/pkg/llm"
	"intellichat-be/pkg/llm/ollama"
	"intellichat-be/pkg/llm/openai"
)

func NewProvider(providerType, modelName, baseURL, apiKey string, timeout time.Duration) (llm.Provider, error) {
	switch providerType {
	case "openai", "kluster":
		return openai.NewProvider(apiKey, baseURL, modelName, timeout), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewProvider(baseURL, modelName, timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
