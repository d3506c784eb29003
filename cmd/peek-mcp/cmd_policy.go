package main

import (
	"github.com/spf13/cobra"
)

func newPolicyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "policy",
		Short: "Print the effective traversal policy as YAML",
		Long: `Print the traversal policy after merging defaults, the config file and
PEEK_* environment variables. The extra_* lists are shown merged into their base lists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			out, err := cfg.PolicyYAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
