package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clio-assist/clio/internal/infrastructure/logging"
)

func newGeminiServer(t *testing.T, replyText string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, ":generateContent")
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Contents)
		assert.Equal(t, 400, req.GenerationConfig.MaxOutputTokens)

		resp := generateResponse{
			Candidates: []candidate{{
				Content:      content{Role: "model", Parts: []part{{Text: replyText}}},
				FinishReason: "STOP",
			}},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := New(Config{APIKey: "test-key", Model: "gemini-1.5-pro-latest", BaseURL: baseURL}, logging.NewNop())
	require.NoError(t, err)
	return c
}

func TestAnswer(t *testing.T) {
	srv := newGeminiServer(t, "The capital of France is **Paris**.")

	c := newTestClient(t, srv.URL)
	text, err := c.Answer(context.Background(), "capital of France?", nil)

	require.NoError(t, err)
	assert.Equal(t, "The capital of France is **Paris**.", text)
}

func TestAnswerSanitizesHTML(t *testing.T) {
	srv := newGeminiServer(t, `Paris <script>alert("x")</script> is the capital.`)

	c := newTestClient(t, srv.URL)
	text, err := c.Answer(context.Background(), "capital of France?", nil)

	require.NoError(t, err)
	assert.NotContains(t, text, "<script>")
	assert.Contains(t, text, "Paris")
}

func TestAnswerEmptyResponse(t *testing.T) {
	srv := newGeminiServer(t, "")

	c := newTestClient(t, srv.URL)
	_, err := c.Answer(context.Background(), "anything", nil)

	assert.Error(t, err)
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(Config{}, logging.NewNop())
	assert.ErrorIs(t, err, ErrNoAPIKey)
}
