package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/grovetools/ndagen/pkg/config"
	"github.com/sirupsen/logrus"
)

//go:embed all:templates
var templatesFS embed.FS

const RequestFileName = "request.yml"

// InitOptions customizes the generated configuration.
type InitOptions struct {
	Provider string
	Model    string
}

// Init scaffolds ndagen.config.yml and an example request.yml in dir.
// Existing files are never overwritten.
func Init(dir string, opts InitOptions, logger *logrus.Logger) error {
	if opts.Provider == "" {
		opts.Provider = config.ProviderGemini
	}
	switch opts.Provider {
	case config.ProviderGemini, config.ProviderOpenAI, config.ProviderStatic:
	default:
		return fmt.Errorf("invalid provider '%s': must be gemini, openai or static", opts.Provider)
	}

	// 1. Check for existing files to prevent overwrite
	configDest := filepath.Join(dir, config.ConfigFileName)
	requestDest := filepath.Join(dir, RequestFileName)
	for _, dest := range []string{configDest, requestDest} {
		if _, err := os.Stat(dest); err == nil {
			return fmt.Errorf("%s already exists", dest)
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// 2. Render config file
	configContent, err := renderTemplate("templates/ndagen.config.yml.tmpl", opts)
	if err != nil {
		return err
	}
	logger.Debugf("Writing %s", configDest)
	if err := os.WriteFile(configDest, configContent, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", configDest, err)
	}
	logger.Infof("✓ Created configuration file: %s", config.ConfigFileName)

	// 3. Copy example request
	logger.Debugf("Copying templates/%s to %s", RequestFileName, requestDest)
	if err := copyFileFromFS("templates/"+RequestFileName, requestDest); err != nil {
		return err
	}
	logger.Infof("✓ Created request file: %s", RequestFileName)

	logger.Info("✅ ndagen initialized successfully.")
	logger.Info("   Next steps: 1. Export the API key for your provider.")
	logger.Info("               2. Edit request.yml with the parties and context.")
	logger.Info("               3. Run 'ndagen generate -r request.yml'.")

	return nil
}

func renderTemplate(src string, data interface{}) ([]byte, error) {
	content, err := templatesFS.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded file %s: %w", src, err)
	}
	tmpl, err := template.New(filepath.Base(src)).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", src, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template %s: %w", src, err)
	}
	return buf.Bytes(), nil
}

func copyFileFromFS(src, dest string) error {
	content, err := templatesFS.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read embedded file %s: %w", src, err)
	}
	if err := os.WriteFile(dest, content, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", dest, err)
	}
	return nil
}
