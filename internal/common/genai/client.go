// Package genai talks to the text and image generation service.
package genai

import (
	"context"
	"fmt"
	"strings"

	"daily-weather-image/internal/common/config"
	httpclient "daily-weather-image/internal/common/http"
)

type PartType string

const (
	PartText       PartType = "text"
	PartImageURL   PartType = "image_url"
	PartInlineData PartType = "inline_data"
)

// Part is one typed entry of a list-shaped reply.
type Part struct {
	Type     PartType
	Text     string
	URL      string // for PartImageURL; may itself be a data: URL
	Data     []byte // for PartInlineData
	MIMEType string
}

// IsImage reports whether the part references or carries an image.
func (p Part) IsImage() bool {
	return p.Type == PartImageURL || p.Type == PartInlineData
}

// Request is a single-turn instruction.
type Request struct {
	Prompt         string
	RefreshSession bool
}

// Response is the provider-neutral reply. ListShaped is false when the service
// answered with a plain string.
type Response struct {
	Provider   string
	Model      string
	Text       string
	Parts      []Part
	ListShaped bool
}

// Client is implemented by each generation provider.
type Client interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	Close() error
}

// NewClient creates the provider selected in cfg.
func NewClient(ctx context.Context, cfg config.GenAIConfig, hc *httpclient.Client) (Client, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.Model)
	case config.ProviderOpenAI, "":
		if hc == nil {
			hc = httpclient.NewClient(config.GetDuration(cfg.Timeout))
		}
		return NewOpenAIClient(cfg.BaseURL, cfg.APIKey, cfg.Model, hc), nil
	default:
		return nil, fmt.Errorf("unknown generation provider %q", cfg.Provider)
	}
}

func joinText(parts []Part) string {
	var b strings.Builder
	for _, p := range parts {
		if p.Type == PartText {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}
