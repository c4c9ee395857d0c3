package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"coverletter-backend/internal/llm"
	"coverletter-backend/internal/shared/telemetry"
	"coverletter-backend/internal/shared/util"
)

const defaultTimeout = 120 * time.Second

// Client implements llm.Client against the Gemini API.
type Client struct {
	genai   *genai.Client
	timeout time.Duration
}

// NewClient constructs a Gemini client with a per-call request timeout.
func NewClient(ctx context.Context, apiKey string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Client{genai: gc, timeout: timeout}, nil
}

// Complete sends one synchronous generation request and returns the prose text.
func (c *Client) Complete(ctx context.Context, model string, prompt string) (string, error) {
	if strings.TrimSpace(model) == "" {
		return "", &llm.Error{Kind: llm.KindModel, Model: model, Err: errors.New("model identifier is empty")}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.genai.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", classify(model, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", &llm.Error{Kind: llm.KindEmpty, Model: model, Err: errors.New("empty response content")}
	}

	telemetry.Info("llm.complete", map[string]any{
		"model":         model,
		"prompt_sha256": util.Fingerprint(prompt),
		"response_len":  len(text),
	})
	return text, nil
}

func classify(model string, err error) *llm.Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &llm.Error{Kind: llm.KindTimeout, Model: model, Err: err}
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &llm.Error{Kind: kindForStatus(apiErr.Code), Model: model, Err: err}
	}
	return &llm.Error{Kind: kindForMessage(err.Error()), Model: model, Err: err}
}

func kindForStatus(code int) llm.Kind {
	switch {
	case code == 400 || code == 401:
		return llm.KindCredential
	case code == 403:
		return llm.KindPermission
	case code == 404:
		return llm.KindModel
	case code == 429:
		return llm.KindQuota
	default:
		return llm.KindTransient
	}
}

func kindForMessage(msg string) llm.Kind {
	lowered := strings.ToLower(msg)
	switch {
	case strings.Contains(lowered, "api key"):
		return llm.KindCredential
	case strings.Contains(lowered, "permission"):
		return llm.KindPermission
	case strings.Contains(lowered, "quota"), strings.Contains(lowered, "resource exhausted"):
		return llm.KindQuota
	case strings.Contains(lowered, "not found"), strings.Contains(lowered, "is not supported"):
		return llm.KindModel
	default:
		return llm.KindTransient
	}
}

var _ llm.Client = (*Client)(nil)
