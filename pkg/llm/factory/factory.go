package factory

import (
	"fmt"

	"ai-copychat-be/pkg/llm"
	"ai-copychat-be/pkg/llm/ollama"
	"ai-copychat-be/pkg/llm/openai"
)

func NewLLMProvider(providerType, modelName, baseURL, apiKey, ollamaURL string) (llm.LLMProvider, error) {
	switch providerType {
	case "openai":
		if baseURL == "" {
			return nil, fmt.Errorf("openai provider requires a base URL")
		}
		return openai.NewOpenAIProvider(baseURL, apiKey, modelName), nil
	case "ollama":
		if ollamaURL == "" {
			ollamaURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(ollamaURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
