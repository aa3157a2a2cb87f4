package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tbnorth/mrls/internal/config"
	"github.com/tbnorth/mrls/internal/log"
	"github.com/tbnorth/mrls/internal/output"
	"github.com/tbnorth/mrls/internal/selection"
)

var (
	// Global flags
	verbose bool
	quiet   bool

	useGroup string
	useAll   bool
	copyCmd  bool
)

// rootCmd is the one and only mrls command.
var rootCmd = &cobra.Command{
	Use:   "mrls [GROUP [CMD...]]",
	Short: "Generate mr commands for named groups of repositories",
	Long: `mrls is a wrapper for the mr multiple repository tool.

Plain mrls lists repositories per storage device and the groups defined in
~/.mrconfig. Groups are declared with "groups = group1 group2" lines; the
group ALL always holds every repository.

  mrls mygrp status -uno

generates a shell command that runs mr status -uno on every member of
mygrp. Under GNU screen or tmux the command is placed on your command
line waiting for enter; otherwise it is printed for copy and paste.`,
	Example: `  mrls                      # repos per device, group names
  mrls web                  # list members of group web
  mrls web status -uno      # generate mr status for group web
  mrls --use web            # pin group web for future calls
  mrls --all                # clear the pin`,
	Args:                       cobra.ArbitraryArgs,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Flags are parsed by now; attach the logger they configure.
		ctx := log.WithLogger(cmd.Context(), log.New(os.Stderr, verbose, quiet))
		cmd.SetContext(ctx)
		return nil
	},
	RunE: runRoot,
}

// Execute sets up the shared context and runs the root command.
func Execute() {
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx = config.WithConfig(ctx, &loadedCfg)
	ctx = output.WithPrinter(ctx, os.Stdout)
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, selection.ErrConflictingOptions) {
			os.Exit(10)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.Flags().StringVar(&useGroup, "use", "", "Use this GROUP for all commands implicitly; persistent until --all (except for ALL)")
	rootCmd.Flags().BoolVar(&useAll, "all", false, "Reset the effect of --use GROUP")
	rootCmd.Flags().BoolVar(&copyCmd, "copy", false, "Copy the generated command to the clipboard instead of dispatching it")

	// The trailing mr command carries its own flags (e.g. status -uno);
	// stop flag parsing at the first positional so they pass through.
	rootCmd.Flags().SetInterspersed(false)

	rootCmd.AddCommand(newConfigCmd())

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}
