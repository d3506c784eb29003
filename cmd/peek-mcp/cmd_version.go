package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/d-kuro/peek-mcp/pkg/version"
)

// newVersionCmd creates a new version command
func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version information of peek-mcp including git commit, build date, and Go version.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			v := version.GetVersion()

			if jsonFlag {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(v); err != nil {
					return fmt.Errorf("error encoding version info: %w", err)
				}
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), v.String())
			}
			return nil
		},
	}

	cmd.Flags().BoolP("json", "j", false, "Output version information as JSON")
	return cmd
}
