package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

const ConfigFileName = "ndagen.config.yml"

// Provider names accepted in settings.provider.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderStatic = "static"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// NdagenConfig is the top-level structure of ndagen.config.yml.
type NdagenConfig struct {
	Settings  SettingsConfig  `yaml:"settings" json:"settings" jsonschema:"description=Generator-wide settings"`
	Providers ProvidersConfig `yaml:"providers,omitempty" json:"providers,omitempty"`
}

// SettingsConfig holds generator-wide settings.
type SettingsConfig struct {
	Provider     string   `yaml:"provider,omitempty" json:"provider,omitempty" jsonschema:"enum=gemini,enum=openai,enum=static"`
	Model        string   `yaml:"model,omitempty" json:"model,omitempty"`                 // Overrides the provider's model
	Temperature  *float32 `yaml:"temperature,omitempty" json:"temperature,omitempty"`     // Controls randomness (0.0 - 1.0)
	Timeout      Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`             // Bound on a single selection call, e.g. "60s"
	SystemPrompt string   `yaml:"system_prompt,omitempty" json:"system_prompt,omitempty"` // Path to system prompt file or "default" to use built-in
	LogLevel     string   `yaml:"log_level,omitempty" json:"log_level,omitempty" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
}

// ProvidersConfig holds per-provider settings.
type ProvidersConfig struct {
	Gemini GeminiConfig `yaml:"gemini,omitempty" json:"gemini,omitempty"`
	OpenAI OpenAIConfig `yaml:"openai,omitempty" json:"openai,omitempty"`
	Static StaticConfig `yaml:"static,omitempty" json:"static,omitempty"`
}

type GeminiConfig struct {
	APIKeyEnv string `yaml:"api_key_env,omitempty" json:"api_key_env,omitempty"`
	Model     string `yaml:"model,omitempty" json:"model,omitempty"`
}

type OpenAIConfig struct {
	BaseURL      string            `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	EndpointPath string            `yaml:"endpoint_path,omitempty" json:"endpoint_path,omitempty"` // Relative path or full URL
	APIKeyEnv    string            `yaml:"api_key_env,omitempty" json:"api_key_env,omitempty"`
	Model        string            `yaml:"model,omitempty" json:"model,omitempty"`
	ExtraHeaders map[string]string `yaml:"extra_headers,omitempty" json:"extra_headers,omitempty"`
}

// StaticConfig lists the clauses returned by the static provider.
type StaticConfig struct {
	Clauses []string `yaml:"clauses,omitempty" json:"clauses,omitempty"`
}

// Duration is a time.Duration written as a Go duration string.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// JSONSchema describes Duration as a string in generated schemas.
func (Duration) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Description: "Go duration string such as 30s or 2m",
		Examples:    []interface{}{"60s"},
	}
}

// Default returns the configuration used when no file is present.
func Default() *NdagenConfig {
	temp := float32(0.2)
	return &NdagenConfig{
		Settings: SettingsConfig{
			Provider:    ProviderGemini,
			Temperature: &temp,
			Timeout:     Duration{60 * time.Second},
			LogLevel:    "info",
		},
		Providers: ProvidersConfig{
			Gemini: GeminiConfig{APIKeyEnv: "GEMINI_API_KEY"},
			OpenAI: OpenAIConfig{APIKeyEnv: "OPENAI_API_KEY"},
		},
	}
}

// Load reads ndagen.config.yml from dir. A missing file yields Default().
func Load(dir string) (*NdagenConfig, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile reads a config file, layering its values over Default().
func LoadFile(path string) (*NdagenConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// Validate checks settings that would otherwise fail later at request time.
func (c *NdagenConfig) Validate() error {
	switch c.Settings.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderStatic:
	default:
		return fmt.Errorf("%w: unknown provider %q", ErrInvalidConfig, c.Settings.Provider)
	}
	if t := c.Settings.Temperature; t != nil && (*t < 0 || *t > 2) {
		return fmt.Errorf("%w: temperature %v out of range [0, 2]", ErrInvalidConfig, *t)
	}
	if c.Settings.Timeout.Duration < 0 {
		return fmt.Errorf("%w: negative timeout", ErrInvalidConfig)
	}
	return nil
}

// ModelFor resolves the model for a provider: settings.model wins over the
// provider's own model field.
func (c *NdagenConfig) ModelFor(provider string) string {
	if c.Settings.Model != "" {
		return c.Settings.Model
	}
	switch provider {
	case ProviderGemini:
		return c.Providers.Gemini.Model
	case ProviderOpenAI:
		return c.Providers.OpenAI.Model
	}
	return ""
}
