package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	apperrors "daily-weather-image/internal/common/errors"
	httpclient "daily-weather-image/internal/common/http"
	"daily-weather-image/internal/common/validation"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const ProviderOpenAI = "openai"

const maxErrorBody = 512

// envelopeSchema only pins down choices[0].message. Entries inside a
// list-shaped content are filtered by fromCompletion instead.
var envelopeSchema = validation.MustCompile(`{
  "type": "object",
  "required": ["choices"],
  "properties": {
    "model": {"type": "string"},
    "choices": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["message"],
        "properties": {
          "message": {
            "type": "object",
            "properties": {
              "content": {"type": ["string", "array", "null"]}
            }
          }
        }
      }
    }
  }
}`)

type contentItem struct {
	Type     string          `json:"type"`
	Text     string          `json:"text"`
	ImageURL json.RawMessage `json:"image_url"`
}

// OpenAIClient speaks the OpenAI-compatible chat completions protocol.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(baseURL, apiKey, model string, hc *httpclient.Client) *OpenAIClient {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
		option.WithHeader("User-Agent", httpclient.DefaultUserAgent),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(baseURL, "/")+"/"))
	}
	if hc != nil {
		opts = append(opts, option.WithHTTPClient(hc.StdClient()))
	}

	client := openai.NewClient(opts...)
	return &OpenAIClient{client: &client, model: model}
}

func (c *OpenAIClient) Generate(ctx context.Context, req Request) (*Response, error) {
	opts := []option.RequestOption{option.WithJSONSet("stream", false)}
	if req.RefreshSession {
		opts = append(opts, option.WithJSONSet("refresh_session", true))
	}

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
	}, opts...)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			excerpt := apiErr.RawJSON()
			if excerpt == "" {
				excerpt = apiErr.Message
			}
			return nil, apperrors.NewGenerationServiceError(ProviderOpenAI,
				fmt.Errorf("status %d: %s", apiErr.StatusCode, truncateUTF8(strings.TrimSpace(excerpt), maxErrorBody)))
		}
		return nil, apperrors.NewGenerationServiceError(ProviderOpenAI, err)
	}

	if err := envelopeSchema.Check([]byte(completion.RawJSON())); err != nil {
		return nil, apperrors.NewInvalidGenerationResponseError(err.Error())
	}
	return fromCompletion(completion)
}

func (c *OpenAIClient) Close() error {
	return nil
}

// parseChatResponse decodes a raw chat completion body.
func parseChatResponse(body []byte) (*Response, error) {
	if err := envelopeSchema.Check(body); err != nil {
		return nil, apperrors.NewInvalidGenerationResponseError(err.Error())
	}

	var completion openai.ChatCompletion
	if err := json.Unmarshal(body, &completion); err != nil {
		return nil, apperrors.NewInvalidGenerationResponseError(err.Error())
	}
	return fromCompletion(&completion)
}

func fromCompletion(completion *openai.ChatCompletion) (*Response, error) {
	if len(completion.Choices) == 0 {
		return nil, apperrors.NewInvalidGenerationResponseError("reply has no choices")
	}

	out := &Response{Provider: ProviderOpenAI, Model: completion.Model}
	// The SDK types content as a string; the raw field keeps list replies.
	raw := bytes.TrimSpace([]byte(completion.Choices[0].Message.JSON.Content.Raw()))

	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		return out, nil
	case raw[0] == '"':
		if err := json.Unmarshal(raw, &out.Text); err != nil {
			return nil, apperrors.NewInvalidGenerationResponseError(err.Error())
		}
		return out, nil
	case raw[0] != '[':
		return nil, apperrors.NewInvalidGenerationResponseError("content is neither text nor a list")
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, apperrors.NewInvalidGenerationResponseError(err.Error())
	}
	out.ListShaped = true
	for _, entry := range entries {
		var item contentItem
		if err := json.Unmarshal(entry, &item); err != nil {
			continue
		}
		switch item.Type {
		case "text":
			out.Parts = append(out.Parts, Part{Type: PartText, Text: item.Text})
		case "image_url":
			if url := imageURL(item.ImageURL); url != "" {
				out.Parts = append(out.Parts, Part{Type: PartImageURL, URL: url})
			}
		}
	}
	out.Text = joinText(out.Parts)
	return out, nil
}

// imageURL accepts both {"url": "..."} and a bare string.
func imageURL(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.URL
	}
	return ""
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
