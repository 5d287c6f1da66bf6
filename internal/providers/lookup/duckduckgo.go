package lookup

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/clio-assist/clio/internal/infrastructure/logging"
	"github.com/clio-assist/clio/internal/infrastructure/resilience"
)

// DefaultBaseURL is the DuckDuckGo instant-answer endpoint
const DefaultBaseURL = "https://api.duckduckgo.com"

// instantResponse is the subset of the instant-answer payload we consume
type instantResponse struct {
	AbstractText  string         `json:"AbstractText"`
	RelatedTopics []relatedTopic `json:"RelatedTopics"`
}

type relatedTopic struct {
	Text   string         `json:"Text"`
	Topics []relatedTopic `json:"Topics"`
}

// Client queries the DuckDuckGo instant-answer API for quick abstracts.
type Client struct {
	http    *resty.Client
	breaker *resilience.Breaker
	baseURL string
	log     *logging.Logger
}

// New creates a lookup client with retrying transport and a circuit breaker.
func New(baseURL string, log *logging.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 2
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.Logger = nil

	httpClient := resty.New().
		SetTimeout(10 * time.Second).
		SetHeader("User-Agent", "clio-assistant/1.0")
	httpClient.SetTransport(retryClient.HTTPClient.Transport)

	breaker := resilience.New("duckduckgo", resilience.Settings{
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		OnStateChange: func(name string, from, to resilience.State) {
			log.Warn("lookup breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Client{
		http:    httpClient,
		breaker: breaker,
		baseURL: baseURL,
		log:     log,
	}
}

// Instant returns a quick abstract for the query. The second return reports
// whether an answer was found; lack of an answer is not an error.
func (c *Client) Instant(ctx context.Context, query string) (string, bool, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		var body instantResponse
		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"q":             query,
				"format":        "json",
				"no_html":       "1",
				"skip_disambig": "1",
			}).
			SetResult(&body).
			Get(c.baseURL + "/")
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("instant answer status %d", resp.StatusCode())
		}
		return &body, nil
	})
	if err != nil {
		return "", false, fmt.Errorf("duckduckgo lookup: %w", err)
	}

	body := result.(*instantResponse)
	if body.AbstractText != "" {
		return body.AbstractText, true, nil
	}
	if text := firstTopicText(body.RelatedTopics); text != "" {
		return text, true, nil
	}
	return "", false, nil
}

// firstTopicText walks related topics, including nested groups, for the
// first usable snippet.
func firstTopicText(topics []relatedTopic) string {
	for _, t := range topics {
		if t.Text != "" {
			return t.Text
		}
		if nested := firstTopicText(t.Topics); nested != "" {
			return nested
		}
	}
	return ""
}
