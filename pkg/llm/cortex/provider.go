package cortex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"cv-chatbot-be/pkg/llm"
)

// CortexProvider talks to the warehouse-hosted completion endpoint.
// Model identifiers are opaque strings forwarded as-is.
type CortexProvider struct {
	BaseURL      string
	APIKey       string
	DefaultModel string
	Client       *http.Client
}

var _ llm.LLMProvider = &CortexProvider{}

func NewCortexProvider(baseURL, apiKey, defaultModel string) *CortexProvider {
	return &CortexProvider{
		BaseURL:      baseURL,
		APIKey:       apiKey,
		DefaultModel: defaultModel,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type cortexMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type cortexCompleteRequest struct {
	Model       string          `json:"model"`
	Messages    []cortexMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
}

type cortexCompleteResponse struct {
	Choices []struct {
		Messages string `json:"messages"`
	} `json:"choices"`
}

// --- Interface Implementation ---

func (p *CortexProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{
		Temperature: 0.0, // Deterministic by default
	}
	for _, opt := range opts {
		opt(options)
	}

	messages := make([]cortexMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = "assistant"
		}
		messages[i] = cortexMessage{
			Role:    role,
			Content: msg.Content,
		}
	}

	model := p.DefaultModel
	if options.Model != "" {
		model = options.Model
	}

	reqPayload := cortexCompleteRequest{
		Model:       model,
		Messages:    messages,
		Temperature: options.Temperature,
	}
	if options.MaxTokens > 0 {
		reqPayload.MaxTokens = options.MaxTokens
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := p.BaseURL + "/api/v2/cortex/inference:complete"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("cortex request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cortex error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var cortexResp cortexCompleteResponse
	if err := json.Unmarshal(bodyBytes, &cortexResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(cortexResp.Choices) == 0 {
		return "", fmt.Errorf("cortex returned no choices")
	}

	return cortexResp.Choices[0].Messages, nil
}

func (p *CortexProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
