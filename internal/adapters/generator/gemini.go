package generator

import (
	"bookrater/internal/core/domain"
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

const (
	GeminiProvider     = "gemini"
	DefaultGeminiModel = "gemini-2.0-flash"
)

type geminiClient interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content,
		config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini talks to the Gemini API through the genai SDK.
type Gemini struct {
	client geminiClient
	model  string
}

// NewGemini creates a Gemini API client. An empty baseURL uses the SDK default endpoint.
func NewGemini(ctx context.Context, apiKey, model, baseURL string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: %w", ErrMissingAPIKey)
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating gemini client: %w", err)
	}

	return &Gemini{client: client.Models, model: model}, nil
}

func (g *Gemini) Model() domain.Model {
	return domain.Model{Provider: GeminiProvider, Identifier: g.model}
}

func (g *Gemini) GenerateFromImage(ctx context.Context, prompt domain.Prompt) (domain.ModelResponse, error) {
	parts := []*genai.Part{{Text: prompt.Prompt}}
	if len(prompt.Image.Data) > 0 {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: prompt.Image.MIMEType, Data: prompt.Image.Data},
		})
	}

	model := g.model
	if prompt.Model.Identifier != "" {
		model = prompt.Model.Identifier
	}

	log.Debug().Str("model", model).Int("parts", len(parts)).Msg("sending gemini request")

	resp, err := g.client.GenerateContent(ctx, model, []*genai.Content{{Role: "user", Parts: parts}}, nil)
	if err != nil {
		return domain.ModelResponse{}, fmt.Errorf("gemini API error: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return domain.ModelResponse{}, err
	}

	md := domain.ResponseMetadata{Model: model}
	if resp.ModelVersion != "" {
		md.Model = resp.ModelVersion
	}
	if resp.UsageMetadata != nil {
		md.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
		md.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	}

	return domain.ModelResponse{Response: text, Metadata: md}, nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: prompt blocked: %s", domain.ErrEmptyResponse, resp.PromptFeedback.BlockReason)
		}
		return "", domain.ErrEmptyResponse
	}

	c := resp.Candidates[0]
	if c.Content == nil {
		return "", fmt.Errorf("%w: finish reason %s", domain.ErrEmptyResponse, c.FinishReason)
	}

	var sb strings.Builder
	for _, part := range c.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", fmt.Errorf("%w: no text in candidate, finish reason %s", domain.ErrEmptyResponse, c.FinishReason)
	}

	return sb.String(), nil
}
