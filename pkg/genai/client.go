package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/angelmondragon/storefrontz-backend/pkg/errors"
)

const (
	defaultBaseURL             = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel               = "gemini-pro"
	errorBodyReadLimit   int64 = 1024
	defaultClientTimeout       = 20 * time.Second
)

var errAPIKeyRequired = errors.New("gemini api key is required")

// Client wraps the Gemini generateContent API used for store copywriting.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithModel overrides the default generation model.
func WithModel(model string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(model)
		if trimmed != "" {
			c.model = trimmed
		}
	}
}

// WithTimeout overrides the default HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// NewClient builds the Gemini client given an API key.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	trimmedKey := strings.TrimSpace(apiKey)
	if trimmedKey == "" {
		return nil, errAPIKeyRequired
	}

	client := &Client{
		apiKey:     trimmedKey,
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		httpClient: &http.Client{Timeout: defaultClientTimeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultClientTimeout}
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}
	if client.model == "" {
		client.model = defaultModel
	}

	return client, nil
}

// GenerateText sends a single-turn prompt and returns the first candidate's text.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	if c == nil {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "gemini client not configured")
	}
	if strings.TrimSpace(prompt) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "prompt is required")
	}

	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal generate request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.generateURL(), bytes.NewReader(payload))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build generate request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute generate request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "generate request failed")
	}

	var apiResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode generate response")
	}

	text := apiResp.firstText()
	if text == "" {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "generate response has no candidates")
	}
	return text, nil
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (r generateResponse) firstText() string {
	for _, cand := range r.Candidates {
		var sb strings.Builder
		for _, p := range cand.Content.Parts {
			sb.WriteString(p.Text)
		}
		if sb.Len() > 0 {
			return sb.String()
		}
	}
	return ""
}

func (c *Client) generateURL() string {
	base := strings.TrimRight(c.baseURL, "/")
	return fmt.Sprintf("%s/models/%s:generateContent?key=%s", base, url.PathEscape(c.model), url.QueryEscape(c.apiKey))
}

// Disabled is the TextGenerator used when no API key is configured. Every
// call fails, so the content generator serves its fallback templates.
type Disabled struct{}

// GenerateText always reports the capability as unavailable.
func (Disabled) GenerateText(context.Context, string) (string, error) {
	return "", pkgerrors.New(pkgerrors.CodeDependency, "text generation disabled: no api key configured")
}
