package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"careercoach_backend/internal/config"
	"careercoach_backend/internal/util"
)

const (
	aiTemperature = 0.7
	aiMaxTokens   = 1000
)

// AIService talks to an OpenAI-compatible chat-completion endpoint. One
// request per call, no retry: a failed call aborts its pipeline stage and
// the caller decides whether that is fatal.
type AIService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether an API key is present. Callers check this
// before any network call so a missing key fails fast.
func (s *AIService) Configured() bool {
	return s.config.APIKey != ""
}

type aiChatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type chatCompletionRequest struct {
	Model       string          `json:"model"`
	Messages    []aiChatMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// contentPart is one element of a multi-part message for vision models.
type contentPart struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL *struct {
		URL string `json:"url"`
	} `json:"image_url,omitempty"`
}

// Complete sends prompt as a single user message and returns the raw text
// of the first choice.
func (s *AIService) Complete(ctx context.Context, prompt string) (string, error) {
	return s.complete(ctx, s.config.Model, aiChatMessage{Role: "user", Content: prompt})
}

func (s *AIService) complete(ctx context.Context, model string, message aiChatMessage) (string, error) {
	if !s.Configured() {
		return "", &util.ConfigurationError{Feature: "AI analysis", Missing: "AI API key"}
	}

	reqBody := chatCompletionRequest{
		Model:       model,
		Messages:    []aiChatMessage{message},
		Temperature: aiTemperature,
		MaxTokens:   aiMaxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &util.UpstreamError{Service: "AI", Message: err.Error()}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		// Prefer the endpoint's own error message over the status text.
		var errResp chatCompletionResponse
		msg := resp.Status
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != nil && errResp.Error.Message != "" {
			msg = errResp.Error.Message
		}
		return "", &util.UpstreamError{Service: "AI", Status: resp.StatusCode, Message: msg}
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", &util.DecodeError{Service: "AI", Err: err, Raw: string(body)}
	}

	if len(result.Choices) == 0 {
		return "", &util.UpstreamError{Service: "AI", Status: resp.StatusCode, Message: "no choices returned"}
	}

	return result.Choices[0].Message.Content, nil
}

// CompleteJSON runs Complete and decodes the answer into dest. Models often
// wrap JSON in Markdown code fences; those are stripped before decoding.
func (s *AIService) CompleteJSON(ctx context.Context, prompt string, dest interface{}) error {
	content, err := s.Complete(ctx, prompt)
	if err != nil {
		return err
	}

	cleaned := StripCodeFences(content)
	if err := json.Unmarshal([]byte(cleaned), dest); err != nil {
		return &util.DecodeError{Service: "AI", Err: err, Raw: cleaned}
	}
	return nil
}

// CompleteVisionJSON sends a mixed text + base64 data-URL image message to
// the vision model and decodes the JSON answer into dest.
func (s *AIService) CompleteVisionJSON(ctx context.Context, prompt string, image []byte, mimeType string, dest interface{}) error {
	model := s.config.VisionModel
	if model == "" {
		return &util.ConfigurationError{Feature: "resume analysis", Missing: "AI vision model"}
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))
	parts := []contentPart{
		{Type: "text", Text: prompt},
		{Type: "image_url", ImageURL: &struct {
			URL string `json:"url"`
		}{URL: dataURL}},
	}

	content, err := s.complete(ctx, model, aiChatMessage{Role: "user", Content: parts})
	if err != nil {
		return err
	}

	cleaned := StripCodeFences(content)
	if err := json.Unmarshal([]byte(cleaned), dest); err != nil {
		return &util.DecodeError{Service: "AI", Err: err, Raw: cleaned}
	}
	return nil
}

// StripCodeFences removes a surrounding ```json ... ``` (or bare ```)
// wrapper that chat models add around JSON answers.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
