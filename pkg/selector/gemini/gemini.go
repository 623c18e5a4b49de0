// Package gemini implements clause selection with Google's Gemini API using
// structured JSON output.
package gemini

import (
	"context"
	"fmt"
	"os"

	"github.com/grovetools/ndagen/pkg/selector"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

// Options configures the Gemini selector.
type Options struct {
	APIKey       string
	APIKeyEnv    string
	Model        string
	SystemPrompt string
	Temperature  *float32
}

// contentGenerator is the subset of *genai.Models the selector needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Selector asks a Gemini model which clauses fit the conversation context.
type Selector struct {
	models contentGenerator
	model  string
	config *genai.GenerateContentConfig
}

// New creates a Gemini-backed selector.
func New(ctx context.Context, opts Options) (*Selector, error) {
	env := opts.APIKeyEnv
	if env == "" {
		env = "GEMINI_API_KEY"
	}
	key := opts.APIKey
	if key == "" {
		key = os.Getenv(env)
	}
	if key == "" {
		return nil, fmt.Errorf("gemini: missing api key (set %s)", env)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return newWithModels(client.Models, opts), nil
}

func newWithModels(models contentGenerator, opts Options) *Selector {
	model := opts.Model
	if model == "" {
		model = DefaultModel
	}
	system := opts.SystemPrompt
	if system == "" {
		system = selector.DefaultSystemPrompt
	}
	return &Selector{
		models: models,
		model:  model,
		config: &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
			Temperature:       opts.Temperature,
			ResponseMIMEType:  "application/json",
			ResponseSchema:    responseSchema(),
		},
	}
}

// responseSchema mirrors selector.Output in Gemini's schema dialect.
func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"selectedClauses": {
				Type:        genai.TypeArray,
				Description: "The list of selected NDA clauses relevant to the conversation context.",
				Items:       &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"selectedClauses"},
	}
}

// Select sends a single structured-output request and decodes the answer.
func (s *Selector) Select(ctx context.Context, conversationContext string) ([]string, error) {
	prompt, err := selector.BuildPrompt(conversationContext)
	if err != nil {
		return nil, selector.Fail("gemini", err)
	}

	resp, err := s.models.GenerateContent(ctx, s.model, genai.Text(prompt), s.config)
	if err != nil {
		return nil, selector.Fail("gemini", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, selector.Fail("gemini", fmt.Errorf("%w: no candidates returned", selector.ErrMalformedOutput))
	}

	out, err := selector.Decode(resp.Text())
	if err != nil {
		return nil, selector.Fail("gemini", err)
	}
	return out.SelectedClauses, nil
}

// Model returns the model name requests are sent to.
func (s *Selector) Model() string {
	return s.model
}

var _ selector.Selector = (*Selector)(nil)
