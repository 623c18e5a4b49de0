package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/grovetools/ndagen/pkg/config"
	"github.com/grovetools/ndagen/pkg/generator"
	"github.com/grovetools/ndagen/pkg/watcher"
	"github.com/grovetools/ndagen/pkg/writer"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var flags requestFlags
	var debounceMs int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the agreement whenever the request file changes",
		Long: `Generates the agreement from a request file, then watches that file and regenerates on every save. Documents are printed to stdout separated by a rule line, or rewritten in place with --output.

Each regeneration is an independent request: a failed selection is logged and the previous output stays on screen.

Example:
  ndagen watch -r request.yml --debounce 250`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.requestFile == "" {
				return fmt.Errorf("watch requires --request")
			}
			out := writer.For(flags.output, cmd.OutOrStdout(), strings.Repeat("-", 72))
			return runWatch(cmd.Context(), out, &flags, time.Duration(debounceMs)*time.Millisecond)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&debounceMs, "debounce", 200, "Debounce interval in milliseconds")
	return cmd
}

func runWatch(ctx context.Context, out writer.Writer, flags *requestFlags, debounce time.Duration) error {
	gen, cfg, err := flags.newGenerator(ctx)
	if err != nil {
		return err
	}

	w, err := watcher.New(debounce)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	if err := w.AddFile(flags.requestFile); err != nil {
		return fmt.Errorf("failed to watch %s: %w", flags.requestFile, err)
	}

	regenerate := func(path string) {
		log.WithFields(map[string]interface{}{"file": path, "output": out.Destination()}).Info("Regenerating")
		if err := generateOnce(ctx, out, flags, gen, cfg); err != nil {
			log.WithError(err).Error("Regeneration failed")
		}
	}

	regenerate(flags.requestFile)
	log.WithField("file", flags.requestFile).Info("Watching for changes")

	err = w.Run(ctx, regenerate, func(err error) {
		log.WithError(err).Warn("Watcher error")
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func generateOnce(ctx context.Context, out writer.Writer, flags *requestFlags, gen *generator.Generator, cfg *config.NdagenConfig) error {
	req, err := flags.buildRequest()
	if err != nil {
		return err
	}
	doc, err := runGeneration(ctx, gen, cfg, req)
	if err != nil {
		return err
	}
	return out.WriteDoc(doc)
}
