// Package openai implements clause selection against any OpenAI-compatible
// chat completions endpoint using a strict json_schema response format.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/grovetools/ndagen/pkg/selector"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4.1-mini"
)

// Options configures the OpenAI-compatible selector.
type Options struct {
	BaseURL      string
	EndpointPath string
	APIKey       string
	APIKeyEnv    string
	Model        string
	SystemPrompt string
	Temperature  *float32
	Timeout      time.Duration
	ExtraHeaders map[string]string
	HTTPClient   *http.Client
}

func (o *Options) defaults() {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.EndpointPath == "" {
		o.EndpointPath = "/chat/completions"
	}
	if o.APIKeyEnv == "" {
		o.APIKeyEnv = "OPENAI_API_KEY"
	}
	if o.Model == "" {
		o.Model = DefaultModel
	}
	if o.SystemPrompt == "" {
		o.SystemPrompt = selector.DefaultSystemPrompt
	}
	if o.Timeout <= 0 {
		o.Timeout = 60 * time.Second
	}
}

// Selector asks a chat completions model which clauses fit the conversation context.
type Selector struct {
	hc     *http.Client
	url    string
	apiKey string
	model  string
	system string
	temp   *float32
	extraH map[string]string
	schema json.RawMessage
}

// New creates an OpenAI-compatible selector.
func New(opts Options) (*Selector, error) {
	opts.defaults()
	key := opts.APIKey
	if key == "" {
		key = os.Getenv(opts.APIKeyEnv)
	}
	if key == "" {
		return nil, fmt.Errorf("openai: missing api key (set %s)", opts.APIKeyEnv)
	}

	schema, err := selector.SchemaJSON()
	if err != nil {
		return nil, err
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}

	fullURL := opts.EndpointPath
	if !strings.HasPrefix(fullURL, "http://") && !strings.HasPrefix(fullURL, "https://") {
		fullURL = strings.TrimRight(opts.BaseURL, "/") + "/" + strings.TrimLeft(opts.EndpointPath, "/")
	}

	return &Selector{
		hc:     hc,
		url:    fullURL,
		apiKey: key,
		model:  opts.Model,
		system: opts.SystemPrompt,
		temp:   opts.Temperature,
		extraH: opts.ExtraHeaders,
		schema: schema,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type       string      `json:"type"`
	JSONSchema *jsonSchema `json:"json_schema,omitempty"`
}

type jsonSchema struct {
	Name   string          `json:"name"`
	Schema json.RawMessage `json:"schema"`
	Strict bool            `json:"strict"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    *float32        `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// upstreamError reports a non-2xx answer from the endpoint.
type upstreamError struct {
	status int
	msg    string
}

func (e upstreamError) Error() string {
	return fmt.Sprintf("openai upstream %d: %s", e.status, e.msg)
}

// Select sends a single chat completion request and decodes the answer.
func (s *Selector) Select(ctx context.Context, conversationContext string) ([]string, error) {
	prompt, err := selector.BuildPrompt(conversationContext)
	if err != nil {
		return nil, selector.Fail("openai", err)
	}

	body, err := json.Marshal(chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: s.system},
			{Role: "user", Content: prompt},
		},
		Temperature: s.temp,
		ResponseFormat: &responseFormat{
			Type:       "json_schema",
			JSONSchema: &jsonSchema{Name: "select_nda_clauses", Schema: s.schema, Strict: true},
		},
	})
	if err != nil {
		return nil, selector.Fail("openai", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return nil, selector.Fail("openai", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	for k, v := range s.extraH {
		req.Header.Set(k, v)
	}

	resp, err := s.hc.Do(req)
	if err != nil {
		return nil, selector.Fail("openai", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, selector.Fail("openai", err)
	}
	if resp.StatusCode/100 != 2 {
		return nil, selector.Fail("openai", upstreamError{status: resp.StatusCode, msg: strings.TrimSpace(string(data))})
	}

	var cr chatResponse
	if err := json.Unmarshal(data, &cr); err != nil {
		return nil, selector.Fail("openai", fmt.Errorf("%w: %v", selector.ErrMalformedOutput, err))
	}
	if len(cr.Choices) == 0 {
		return nil, selector.Fail("openai", fmt.Errorf("%w: no choices returned", selector.ErrMalformedOutput))
	}

	out, err := selector.Decode(cr.Choices[0].Message.Content)
	if err != nil {
		return nil, selector.Fail("openai", err)
	}
	return out.SelectedClauses, nil
}

// Model returns the model name requests are sent to.
func (s *Selector) Model() string {
	return s.model
}

var _ selector.Selector = (*Selector)(nil)
