// Package llm hides the text-generation providers behind a single
// Generator interface so callers never handle provider SDK types.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Request describes one completion call.
type Request struct {
	Prompt      string
	MaxTokens   int
	Temperature float32
	// JSONMode asks the model for a bare JSON document. Responses should
	// still go through DecodeLenient; some models wrap JSON in fences anyway.
	JSONMode bool
}

// Generator produces text for a request.
type Generator interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// ServiceError reports a failure inside the upstream LLM service, as
// opposed to a local or network one.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("LLM service returned %d: %s", e.Status, e.Message)
}

// Options selects and configures a backend for New.
type Options struct {
	Provider string // "openai" (default) or "gemini"
	BaseURL  string
	APIKey   string
	Model    string
}

// New builds the Generator named by opts.Provider.
func New(ctx context.Context, opts Options) (Generator, error) {
	switch strings.ToLower(opts.Provider) {
	case "", "openai":
		return NewOpenAI(opts.BaseURL, opts.APIKey, opts.Model), nil
	case "gemini":
		return NewGemini(ctx, opts.APIKey, opts.Model)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", opts.Provider)
	}
}

const jsonSystemPrompt = `Return ONLY valid JSON. No markdown, no code fences.`

// OpenAI talks to any OpenAI-compatible chat completion endpoint.
type OpenAI struct {
	client *openai.Client
	model  string
}

func NewOpenAI(baseURL, apiKey, model string) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	return &OpenAI{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (c *OpenAI) Complete(ctx context.Context, req Request) (string, error) {
	var messages []openai.ChatCompletionMessage
	if req.JSONMode {
		// No ResponseFormat, since not all models support json_object mode.
		// The system prompt instructs the model to return pure JSON.
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: jsonSystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", &ServiceError{Status: apiErr.HTTPStatusCode, Message: apiErr.Message}
		}
		return "", fmt.Errorf("LLM call: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
