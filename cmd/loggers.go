package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/grovetools/ndagen/pkg/config"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// getLogger returns the logrus.Logger for use with packages that expect it
func getLogger() *logrus.Logger {
	return log
}

// configureLogger sets level and formatter on the shared logger. Logs go to
// stderr so stdout carries only the generated document.
func configureLogger(level string, jsonOutput bool) error {
	log.SetOutput(os.Stderr)
	if level != "" {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		log.SetLevel(lvl)
	}

	tty := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	if jsonOutput || !tty {
		log.SetFormatter(&logrus.JSONFormatter{})
		return nil
	}
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:   true,
		FullTimestamp: false,
	})
	return nil
}

// loadConfig reads --config or ./ndagen.config.yml and applies settings.log_level
// unless --log-level was given. It returns the directory relative paths in the
// config resolve against.
func loadConfig() (*config.NdagenConfig, string, error) {
	var (
		cfg     *config.NdagenConfig
		baseDir string
		err     error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
		baseDir = filepath.Dir(configPath)
	} else {
		baseDir, err = os.Getwd()
		if err != nil {
			return nil, "", err
		}
		cfg, err = config.Load(baseDir)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to load ndagen config: %w", err)
	}

	if logLevel == "" && cfg.Settings.LogLevel != "" {
		if err := configureLogger(cfg.Settings.LogLevel, logJSON); err != nil {
			return nil, "", err
		}
	}
	return cfg, baseDir, nil
}
