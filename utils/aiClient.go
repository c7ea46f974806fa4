package utils

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-resty/resty/v2"
)

// AIClient relays chat-completions requests to the hosted LLM gateway
type AIClient struct {
	BaseURL string
	APIKey  string
	Model   string
	client  *resty.Client
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
}

func NewAIClient(baseURL, apiKey, model string) *AIClient {
	return &AIClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		client:  resty.New(),
	}
}

// ChatCompletion sends the messages upstream and returns the first choice's
// text. A non-2xx upstream status is logged in full and surfaced as a
// generic error.
func (a *AIClient) ChatCompletion(messages []ChatMessage, temperature float64, maxTokens int) (string, error) {
	reqBody := chatCompletionRequest{
		Model:       a.Model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	resp, err := a.client.R().
		SetHeader("Authorization", "Bearer "+a.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post(a.BaseURL + "/chat/completions")
	if err != nil {
		return "", fmt.Errorf("failed to reach AI gateway: %v", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		log.Printf("AI gateway returned %d: %s", resp.StatusCode(), resp.String())
		return "", fmt.Errorf("AI gateway error: status %d", resp.StatusCode())
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(resp.Body(), &completion); err != nil {
		return "", fmt.Errorf("invalid AI gateway response: %v", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("AI gateway returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}
