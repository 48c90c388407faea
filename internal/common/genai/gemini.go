package genai

import (
	"context"
	"fmt"

	apperrors "daily-weather-image/internal/common/errors"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const ProviderGemini = "gemini"

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, req Request) (*Response, error) {
	model := c.client.GenerativeModel(c.model)

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return nil, apperrors.NewGenerationServiceError(ProviderGemini, err)
	}
	return fromGeminiResponse(resp, c.model)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// fromGeminiResponse maps the first candidate's parts. Gemini always replies
// with a part list, so the result is list-shaped whenever it has content.
func fromGeminiResponse(resp *genai.GenerateContentResponse, model string) (*Response, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, apperrors.NewInvalidGenerationResponseError("no candidates in response")
	}

	out := &Response{Provider: ProviderGemini, Model: model}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return out, nil
	}

	out.ListShaped = true
	for _, part := range candidate.Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			out.Parts = append(out.Parts, Part{Type: PartText, Text: string(p)})
		case genai.Blob:
			out.Parts = append(out.Parts, Part{Type: PartInlineData, Data: p.Data, MIMEType: p.MIMEType})
		}
	}
	out.Text = joinText(out.Parts)
	return out, nil
}
