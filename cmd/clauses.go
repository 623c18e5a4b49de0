package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/grovetools/ndagen/pkg/nda"
	"github.com/spf13/cobra"
)

type clauseInfo struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
	Default  bool   `json:"default"`
}

func newClausesCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "clauses",
		Short: "List the clause library in document order",
		RunE: func(cmd *cobra.Command, args []string) error {
			var infos []clauseInfo
			for i, name := range nda.Clauses() {
				infos = append(infos, clauseInfo{Position: i + 1, Name: string(name), Default: nda.IsDefault(name)})
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				data, err := json.MarshalIndent(infos, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal clauses to JSON: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			for _, c := range infos {
				marker := " "
				if c.Default {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %d. %s\n", marker, c.Position, c.Name)
			}
			fmt.Fprintln(out, "\n* always included")
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the clause list as JSON")
	return cmd
}
