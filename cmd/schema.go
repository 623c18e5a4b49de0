package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/grovetools/ndagen/pkg/config"
	"github.com/grovetools/ndagen/pkg/selector"
	"github.com/spf13/cobra"
)

func newSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print JSON schemas",
		Long:  "Prints the JSON schema of the configuration file or of the structured answer expected from the model.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the ndagen.config.yml JSON schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(config.Schema(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal config schema: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "selection",
		Short: "Print the JSON schema of the model's clause selection answer",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(selector.Schema(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal selection schema: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	})

	return cmd
}
