package cmd

import (
	"os"

	"github.com/grovetools/ndagen/internal/scaffold"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var opts scaffold.InitOptions

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter ndagen.config.yml and request.yml",
		Long: `Creates a default ndagen.config.yml and an example request.yml in the current directory.

It will not overwrite existing files.

Examples:
  ndagen init                              # Gemini with the default model
  ndagen init --provider openai            # Use an OpenAI-compatible endpoint
  ndagen init --model gemini-2.0-flash     # Pin a specific model`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			return scaffold.Init(cwd, opts, getLogger())
		},
	}

	cmd.Flags().StringVar(&opts.Provider, "provider", "gemini", "Selector provider: gemini, openai or static")
	cmd.Flags().StringVar(&opts.Model, "model", "", "LLM model to use for clause selection")

	return cmd
}
