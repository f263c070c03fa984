package factory

import (
	"fmt"

	"cv-chatbot-be/pkg/llm"
	"cv-chatbot-be/pkg/llm/cortex"
	"cv-chatbot-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, defaultModel, cortexBaseURL, cortexAPIKey, ollamaBaseURL, ollamaModel string) (llm.LLMProvider, error) {
	switch providerType {
	case "cortex":
		if cortexBaseURL == "" {
			return nil, fmt.Errorf("cortex provider requires CORTEX_BASE_URL")
		}
		return cortex.NewCortexProvider(cortexBaseURL, cortexAPIKey, defaultModel), nil
	case "ollama":
		if ollamaBaseURL == "" {
			ollamaBaseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(ollamaBaseURL, ollamaModel), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
