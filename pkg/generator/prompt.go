package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/grovetools/ndagen/pkg/selector"
)

// LoadSystemPrompt resolves settings.system_prompt. An empty value or
// "default" selects the built-in prompt; anything else is a file path,
// relative to baseDir when not absolute.
func LoadSystemPrompt(baseDir, setting string) (string, error) {
	setting = strings.TrimSpace(setting)
	if setting == "" || setting == "default" {
		return selector.DefaultSystemPrompt, nil
	}

	path := setting
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read system prompt %s: %w", path, err)
	}
	prompt := strings.TrimSpace(string(content))
	if prompt == "" {
		return "", fmt.Errorf("system prompt %s is empty", path)
	}
	return prompt, nil
}
