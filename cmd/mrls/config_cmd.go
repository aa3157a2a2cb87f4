package main

import (
	"github.com/spf13/cobra"

	"github.com/tbnorth/mrls/internal/config"
	"github.com/tbnorth/mrls/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Manage mrls configuration.

Config file: ~/.config/mrls/config.toml`,
		Example: `  mrls config init     # Create default config
  mrls config init -f  # Overwrite existing config
  mrls config show     # Show effective config`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Init(force)
			if err != nil {
				return err
			}
			output.FromContext(cmd.Context()).Printf("Created %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())
			p := output.FromContext(cmd.Context())
			p.Printf("mrconfig = %q\n", cfg.MrConfig)
			p.Printf("group_file = %q\n", cfg.GroupFile)
			p.Printf("tool = %q\n", cfg.Tool)
			p.Printf("max_inline_length = %d\n", cfg.MaxInlineLength)
			return nil
		},
	}
}
