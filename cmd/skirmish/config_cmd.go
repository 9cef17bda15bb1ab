package main

import (
	"github.com/spf13/cobra"
)

// NewConfigCommand creates the config command
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective settings",
		Long: `Print the effective settings as YAML: compiled-in defaults overlaid with
the --config file. The output is a valid settings file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rootOpts.settings()
			if err != nil {
				return err
			}
			return s.Encode(cmd.OutOrStdout())
		},
	}
}
