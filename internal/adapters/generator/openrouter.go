package generator

import (
	"bookrater/internal/core/domain"
	"context"
	"fmt"
	"strings"

	"github.com/revrost/go-openrouter"
)

const (
	OpenRouterProvider     = "openrouter"
	DefaultOpenRouterModel = "google/gemini-2.0-flash-001"
)

type openRouterClient interface {
	CreateChatCompletion(ctx context.Context,
		ccr openrouter.ChatCompletionRequest) (openrouter.ChatCompletionResponse, error)
}

type OpenRouter struct {
	client openRouterClient
	model  string
}

func NewOpenRouter(apiKey, model string) (*OpenRouter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openrouter: %w", ErrMissingAPIKey)
	}
	if model == "" {
		model = DefaultOpenRouterModel
	}

	return &OpenRouter{
		model: model,
		client: openrouter.NewClient(
			apiKey,
			openrouter.WithXTitle("bookrater"),
		),
	}, nil
}

func (c *OpenRouter) Model() domain.Model {
	return domain.Model{Provider: OpenRouterProvider, Identifier: c.model}
}

func (c *OpenRouter) GenerateFromImage(ctx context.Context, prompt domain.Prompt) (domain.ModelResponse, error) {
	model := c.model
	if prompt.Model.Identifier != "" {
		model = prompt.Model.Identifier
	}

	ccr := openrouter.ChatCompletionRequest{
		Messages: []openrouter.ChatCompletionMessage{createUserMessage(prompt)},
		Model:    model,
	}

	resp, err := c.client.CreateChatCompletion(ctx, ccr)
	if err != nil {
		return domain.ModelResponse{}, fmt.Errorf("openrouter API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return domain.ModelResponse{}, domain.ErrEmptyResponse
	}

	if strings.TrimSpace(resp.Choices[0].Message.Content.Text) == "" {
		return domain.ModelResponse{}, fmt.Errorf("%w: empty message content", domain.ErrEmptyResponse)
	}

	return domain.ModelResponse{
		Response: resp.Choices[0].Message.Content.Text,
		Metadata: domain.ResponseMetadata{
			Model:            resp.Model,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

func createUserMessage(prompt domain.Prompt) openrouter.ChatCompletionMessage {
	if len(prompt.Image.Data) > 0 {
		return openrouter.ChatCompletionMessage{
			Role: openrouter.ChatMessageRoleUser,
			Content: openrouter.Content{Multi: []openrouter.ChatMessagePart{
				{
					Type: openrouter.ChatMessagePartTypeText,
					Text: prompt.Prompt,
				},
				{
					Type:     openrouter.ChatMessagePartTypeImageURL,
					ImageURL: &openrouter.ChatMessageImageURL{URL: prompt.Image.DataURL()},
				},
			},
			},
		}
	}

	return openrouter.ChatCompletionMessage{
		Role: openrouter.ChatMessageRoleUser,
		Content: openrouter.Content{
			Text: prompt.Prompt,
		},
	}
}
