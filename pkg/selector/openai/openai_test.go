package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/grovetools/ndagen/pkg/selector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSelector(t *testing.T, handler http.HandlerFunc) *Selector {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s, err := New(Options{
		BaseURL:      srv.URL + "/v1/",
		APIKey:       "test-key",
		ExtraHeaders: map[string]string{"X-Title": "ndagen"},
	})
	require.NoError(t, err)
	return s
}

func TestSelect(t *testing.T) {
	var got chatRequest
	s := newTestSelector(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "ndagen", r.Header.Get("X-Title"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"selectedClauses\":[\"Permitted Use\"]}"}}]}`))
	})

	clauses, err := s.Select(context.Background(), "Evaluating a possible acquisition.")
	require.NoError(t, err)
	assert.Equal(t, []string{"Permitted Use"}, clauses)

	assert.Equal(t, DefaultModel, got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, selector.DefaultSystemPrompt, got.Messages[0].Content)
	assert.Contains(t, got.Messages[1].Content, "Conversation Context: Evaluating a possible acquisition.")
	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, "json_schema", got.ResponseFormat.Type)
	assert.True(t, got.ResponseFormat.JSONSchema.Strict)
	assert.Contains(t, string(got.ResponseFormat.JSONSchema.Schema), "selectedClauses")
}

func TestSelectFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		timeout bool
	}{
		{name: "upstream error", status: http.StatusInternalServerError, body: `{"error":"boom"}`},
		{name: "not json", status: http.StatusOK, body: `<html>`},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`},
		{name: "schema mismatch", status: http.StatusOK, body: `{"choices":[{"message":{"content":"[\"Permitted Use\"]"}}]}`},
		{name: "timeout", timeout: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSelector(t, func(w http.ResponseWriter, r *http.Request) {
				if tt.timeout {
					<-r.Context().Done()
					return
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			clauses, err := s.Select(ctx, "context")
			assert.Nil(t, clauses)
			assert.ErrorIs(t, err, selector.ErrSelectionFailed)
		})
	}
}

func TestNewRequiresKey(t *testing.T) {
	t.Setenv("NDAGEN_TEST_OPENAI_KEY", "")
	_, err := New(Options{APIKeyEnv: "NDAGEN_TEST_OPENAI_KEY"})
	require.Error(t, err)
}

func TestEndpointPathMayBeFullURL(t *testing.T) {
	s, err := New(Options{APIKey: "k", EndpointPath: "https://example.test/openai/deployments/x/chat/completions"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/openai/deployments/x/chat/completions", s.url)
}
