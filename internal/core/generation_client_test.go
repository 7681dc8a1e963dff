package core

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatCompletionStub(t *testing.T, status int, body string, gotRequest *chatRequest, gotHeaders *http.Header) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat/completions", r.URL.Path)
		if gotHeaders != nil {
			*gotHeaders = r.Header.Clone()
		}
		if gotRequest != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(gotRequest))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestCompleteSendsConfiguredRequest(t *testing.T) {
	var got chatRequest
	var headers http.Header
	srv := newChatCompletionStub(t, http.StatusOK,
		`{"choices":[{"message":{"role":"assistant","content":"hello"},"finish_reason":"stop"}]}`,
		&got, &headers)
	defer srv.Close()

	client := NewGenerationClient(srv.URL, "test-key", "anthropic/claude-3.5-sonnet")
	text, err := client.Complete(context.Background(), "be brief", "say hello", 0.7, 400)
	require.NoError(t, err)
	assert.Equal(t, "hello", text)

	assert.Equal(t, "Bearer test-key", headers.Get("Authorization"))
	assert.Equal(t, "application/json", headers.Get("Content-Type"))
	assert.NotEmpty(t, headers.Get("HTTP-Referer"))
	assert.NotEmpty(t, headers.Get("X-Title"))

	assert.Equal(t, "anthropic/claude-3.5-sonnet", got.Model)
	assert.Equal(t, 0.7, got.Temperature)
	assert.Equal(t, 400, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "be brief", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
}

func TestCompleteOmitsEmptySystemMessage(t *testing.T) {
	var got chatRequest
	srv := newChatCompletionStub(t, http.StatusOK,
		`{"choices":[{"message":{"role":"assistant","content":"subject"}}]}`,
		&got, nil)
	defer srv.Close()

	client := NewGenerationClient(srv.URL, "test-key", "m")
	_, err := client.Complete(context.Background(), "", "prompt", 0.8, 20)
	require.NoError(t, err)

	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
}

func TestCompleteAPIError(t *testing.T) {
	srv := newChatCompletionStub(t, http.StatusUnauthorized,
		`{"error":{"message":"invalid api key","type":"auth_error"}}`, nil, nil)
	defer srv.Close()

	client := NewGenerationClient(srv.URL, "bad-key", "m")
	_, err := client.Complete(context.Background(), "", "prompt", 0.7, 400)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestCompleteNoChoices(t *testing.T) {
	srv := newChatCompletionStub(t, http.StatusOK, `{"choices":[]}`, nil, nil)
	defer srv.Close()

	client := NewGenerationClient(srv.URL, "k", "m")
	_, err := client.Complete(context.Background(), "", "prompt", 0.7, 400)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestCompleteTransportError(t *testing.T) {
	srv := newChatCompletionStub(t, http.StatusOK, `{}`, nil, nil)
	srv.Close() // refuse connections

	client := NewGenerationClient(srv.URL, "k", "m")
	_, err := client.Complete(context.Background(), "", "prompt", 0.7, 400)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "completion request failed")
}
