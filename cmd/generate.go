package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/grovetools/ndagen/pkg/config"
	"github.com/grovetools/ndagen/pkg/generator"
	"github.com/grovetools/ndagen/pkg/request"
	"github.com/grovetools/ndagen/pkg/selector"
	"github.com/grovetools/ndagen/pkg/writer"
	"github.com/spf13/cobra"
)

// requestFlags are the per-agreement inputs accepted by generate and watch.
type requestFlags struct {
	requestFile string
	disclosing  string
	receiving   string
	date        string
	context     string
	clauses     []string
	provider    string
	model       string
	output      string
}

func (f *requestFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.requestFile, "request", "r", "", "YAML request file with parties, effective date and conversation context")
	cmd.Flags().StringVar(&f.disclosing, "disclosing", "", "Disclosing party name")
	cmd.Flags().StringVar(&f.receiving, "receiving", "", "Receiving party name")
	cmd.Flags().StringVar(&f.date, "date", "", "Effective date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.context, "context", "", "Conversation context used to select clauses (10-500 characters)")
	cmd.Flags().StringSliceVar(&f.clauses, "clauses", nil, "Skip the model and include these clause names")
	cmd.Flags().StringVar(&f.provider, "provider", "", "Selector provider: gemini, openai or static (overrides settings.provider)")
	cmd.Flags().StringVar(&f.model, "model", "", "Model name (overrides settings.model)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Write the agreement to this file instead of stdout")
}

// buildRequest merges the request file, if any, with explicit flags. Flags win.
func (f *requestFlags) buildRequest() (request.Request, error) {
	var req request.Request
	if f.requestFile != "" {
		loaded, err := request.Load(f.requestFile)
		if err != nil {
			return req, err
		}
		req = *loaded
	}
	if f.disclosing != "" {
		req.DisclosingParty = f.disclosing
	}
	if f.receiving != "" {
		req.ReceivingParty = f.receiving
	}
	if f.date != "" {
		d, err := request.ParseDate(f.date)
		if err != nil {
			return req, fmt.Errorf("%w: %v", request.ErrInvalidRequest, err)
		}
		req.EffectiveDate = d
	}
	if f.context != "" {
		req.ConversationContext = f.context
	}
	return req, nil
}

// applyOverrides layers provider-related flags over the loaded config.
func (f *requestFlags) applyOverrides(cfg *config.NdagenConfig) error {
	if len(f.clauses) > 0 {
		cfg.Settings.Provider = config.ProviderStatic
		cfg.Providers.Static.Clauses = f.clauses
	} else if f.provider != "" {
		cfg.Settings.Provider = f.provider
	}
	if f.model != "" {
		cfg.Settings.Model = f.model
	}
	return cfg.Validate()
}

// newGenerator loads config, applies overrides and wires the selector.
func (f *requestFlags) newGenerator(ctx context.Context) (*generator.Generator, *config.NdagenConfig, error) {
	cfg, baseDir, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if err := f.applyOverrides(cfg); err != nil {
		return nil, nil, err
	}
	sel, err := generator.NewSelector(ctx, cfg, baseDir)
	if err != nil {
		return nil, nil, err
	}
	log.WithField("provider", cfg.Settings.Provider).Debug("Selector ready")
	return generator.New(getLogger(), sel), cfg, nil
}

// runGeneration performs one bounded generation request.
func runGeneration(ctx context.Context, gen *generator.Generator, cfg *config.NdagenConfig, req request.Request) (string, error) {
	if timeout := cfg.Settings.Timeout.Duration; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	doc, err := gen.Generate(ctx, req)
	if errors.Is(err, selector.ErrSelectionFailed) {
		log.Error("Generation failed: there was an error generating the NDA. Please try again.")
	}
	return doc, err
}

func newGenerateCmd() *cobra.Command {
	var flags requestFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a non-disclosure agreement",
		Long: `Asks the configured language model which optional clauses fit the conversation context, then assembles the agreement from the clause library and prints it to stdout.

The six baseline clauses are always included. Clause names the model invents are ignored.

Examples:
  ndagen generate --disclosing "Acme Inc." --receiving "John Doe" --date 2024-01-15 \
    --context "We will share unreleased product designs with a contractor."
  ndagen generate -r request.yml -o nda.md
  ndagen generate -r request.yml --clauses "Permitted Use" --clauses "Intellectual Property"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.buildRequest()
			if err != nil {
				return err
			}
			if err := req.Validate(); err != nil {
				return err
			}

			gen, cfg, err := flags.newGenerator(cmd.Context())
			if err != nil {
				return err
			}

			doc, err := runGeneration(cmd.Context(), gen, cfg, req)
			if err != nil {
				return err
			}

			w := writer.For(flags.output, cmd.OutOrStdout(), "")
			if err := w.WriteDoc(doc); err != nil {
				return err
			}
			if flags.output != "" {
				log.WithField("path", w.Destination()).Info("Wrote agreement")
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
