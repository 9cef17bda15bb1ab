package main

import (
	"github.com/spf13/cobra"

	"github.com/lixenwraith/skirmish/config"
)

// RootOptions holds global flags for all commands
type RootOptions struct {
	ConfigPath string
	Verbose    bool
}

// NewRootCommand creates the skirmish command tree
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "skirmish",
		Short: "Arena skirmish simulation",
		Long: `A hero fights waves of monsters that surround it on two rings of combat slots.

Every character is driven by cooperative tasks advanced once per tick. The
arena runs headless for soak tests and metrics, or in the terminal for play.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "settings file (YAML)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewViewCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

// settings loads the settings file and applies global overrides
func (o *RootOptions) settings() (config.Settings, error) {
	s, err := config.Load(o.ConfigPath)
	if err != nil {
		return config.Settings{}, err
	}
	if o.Verbose {
		s.Log.Level = "debug"
	}
	return s, nil
}
