package generator

import (
	"context"
	"fmt"

	"github.com/grovetools/ndagen/pkg/config"
	"github.com/grovetools/ndagen/pkg/selector"
	"github.com/grovetools/ndagen/pkg/selector/gemini"
	"github.com/grovetools/ndagen/pkg/selector/openai"
	"github.com/grovetools/ndagen/pkg/selector/static"
)

// NewSelector builds the selector named by settings.provider. baseDir
// resolves a relative settings.system_prompt path.
func NewSelector(ctx context.Context, cfg *config.NdagenConfig, baseDir string) (selector.Selector, error) {
	provider := cfg.Settings.Provider
	if provider == config.ProviderStatic {
		return static.New(cfg.Providers.Static.Clauses), nil
	}

	system, err := LoadSystemPrompt(baseDir, cfg.Settings.SystemPrompt)
	if err != nil {
		return nil, err
	}

	switch provider {
	case config.ProviderGemini:
		s, err := gemini.New(ctx, gemini.Options{
			APIKeyEnv:    cfg.Providers.Gemini.APIKeyEnv,
			Model:        cfg.ModelFor(provider),
			SystemPrompt: system,
			Temperature:  cfg.Settings.Temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini selector: %w", err)
		}
		return s, nil
	case config.ProviderOpenAI:
		s, err := openai.New(openai.Options{
			BaseURL:      cfg.Providers.OpenAI.BaseURL,
			EndpointPath: cfg.Providers.OpenAI.EndpointPath,
			APIKeyEnv:    cfg.Providers.OpenAI.APIKeyEnv,
			Model:        cfg.ModelFor(provider),
			SystemPrompt: system,
			Temperature:  cfg.Settings.Temperature,
			Timeout:      cfg.Settings.Timeout.Duration,
			ExtraHeaders: cfg.Providers.OpenAI.ExtraHeaders,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create openai selector: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", config.ErrInvalidConfig, provider)
	}
}
