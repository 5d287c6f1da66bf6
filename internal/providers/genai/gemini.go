package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/clio-assist/clio/internal/domain/session"
	"github.com/clio-assist/clio/internal/infrastructure/logging"
	"github.com/clio-assist/clio/internal/infrastructure/resilience"
)

// DefaultBaseURL is the Gemini REST endpoint
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// ErrNoAPIKey is returned when the client is constructed without credentials
var ErrNoAPIKey = errors.New("gemini api key not configured")

// Config holds the generative-model settings.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Client calls the Gemini generateContent API and assembles the assistant
// prompt (tone, greeting, follow-up) around each query.
type Client struct {
	http      *resty.Client
	breaker   *resilience.Breaker
	cfg       Config
	sanitizer *bluemonday.Policy
	log       *logging.Logger
}

// New creates a Gemini client.
func New(cfg Config, log *logging.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-pro-latest"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 2
	retryClient.RetryWaitMin = time.Second
	retryClient.RetryWaitMax = 10 * time.Second
	retryClient.Logger = nil

	httpClient := resty.New().
		SetTimeout(30 * time.Second).
		SetHeader("User-Agent", "clio-assistant/1.0")
	httpClient.SetTransport(retryClient.HTTPClient.Transport)

	breaker := resilience.New("gemini", resilience.Settings{
		MaxRequests: 2,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		OnStateChange: func(name string, from, to resilience.State) {
			log.Warn("genai breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Client{
		http:      httpClient,
		breaker:   breaker,
		cfg:       cfg,
		sanitizer: bluemonday.StrictPolicy(),
		log:       log,
	}, nil
}

// Wire types for generateContent.

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
	SafetySettings   []safetySetting  `json:"safetySettings,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

func (r *generateResponse) joinText() string {
	var sb strings.Builder
	for _, c := range r.Candidates {
		for _, p := range c.Content.Parts {
			sb.WriteString(p.Text)
		}
		break
	}
	return strings.TrimSpace(sb.String())
}

var defaultSafetySettings = []safetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_NONE"},
}

// Answer generates a response for the query, with the session's recent
// exchanges as conversation context. Returned text is sanitized of HTML
// before it reaches the web UI.
func (c *Client) Answer(ctx context.Context, query string, memory []session.Exchange) (string, error) {
	payload := generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: buildPrompt(query, memory)}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			TopP:            1,
			TopK:            1,
			MaxOutputTokens: 400,
		},
		SafetySettings: defaultSafetySettings,
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.cfg.BaseURL, c.cfg.Model)

	result, err := c.breaker.Execute(func() (interface{}, error) {
		var body generateResponse
		resp, err := c.http.R().
			SetContext(ctx).
			SetHeader("x-goog-api-key", c.cfg.APIKey).
			SetBody(payload).
			SetResult(&body).
			Post(url)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("generateContent status %d", resp.StatusCode())
		}
		return &body, nil
	})
	if err != nil {
		return "", fmt.Errorf("gemini answer: %w", err)
	}

	text := result.(*generateResponse).joinText()
	if text == "" {
		return "", errors.New("gemini answer: empty response")
	}
	return c.sanitizer.Sanitize(text), nil
}
