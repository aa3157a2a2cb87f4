package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/tbnorth/mrls/internal/command"
	"github.com/tbnorth/mrls/internal/config"
	"github.com/tbnorth/mrls/internal/device"
	"github.com/tbnorth/mrls/internal/dispatch"
	"github.com/tbnorth/mrls/internal/group"
	"github.com/tbnorth/mrls/internal/log"
	"github.com/tbnorth/mrls/internal/mrconfig"
	"github.com/tbnorth/mrls/internal/output"
	"github.com/tbnorth/mrls/internal/selection"
)

func runRoot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	l := log.FromContext(ctx)

	// Checked before anything else: conflicting selection flags must exit
	// without touching the pin file or anything else.
	if useAll && useGroup != "" {
		return selection.ErrConflictingOptions
	}

	groupFile, err := cfg.GroupFilePath()
	if err != nil {
		return err
	}
	store := selection.NewStore(groupFile)
	l.Debug("selection state", "file", store.Describe())

	// --all runs before the mr config is read so a stale pin can be
	// cleared even when the config is missing or broken.
	groupCmd, err := clearSelection(l, store, stripDoubleDash(args))
	if err != nil {
		return err
	}

	home, err := mrconfig.Home()
	if err != nil {
		return err
	}
	mrPath, err := cfg.MrConfigPath()
	if err != nil {
		return err
	}
	entries, err := mrconfig.Load(mrPath, home)
	if err != nil {
		return err
	}

	index, counts := group.Build(entries, device.NewResolver())
	l.Debug("indexed repositories", "entries", len(entries), "groups", len(index.Names()))

	groupCmd, err = applySelection(l, store, index, groupCmd)
	if err != nil {
		return err
	}

	switch len(groupCmd) {
	case 0:
		printSummary(ctx, cfg, index, counts)
		return nil
	case 1:
		return listMembers(ctx, index, groupCmd[0])
	default:
		return runGroupCommand(ctx, cfg, index, groupCmd[0], groupCmd[1:])
	}
}

// clearSelection handles --all: the pin is removed and any positional
// arguments are dropped with a hint that plain mr was probably intended.
func clearSelection(l *log.Logger, store *selection.Store, groupCmd []string) ([]string, error) {
	if !useAll {
		return groupCmd, nil
	}

	existed, err := store.Clear()
	if err != nil {
		return nil, err
	}
	if existed {
		l.Println("Group cleared, using all repos.")
	} else {
		l.Println("No group set, already using all repos.")
	}
	if len(groupCmd) > 0 {
		l.Printf("\nmrls only sends commands to groups, did you mean\nmr %s\n\n", strings.Join(groupCmd, " "))
		groupCmd = nil
	}
	return groupCmd, nil
}

// applySelection folds the --use flag and any persisted pin into the
// positional group command.
func applySelection(l *log.Logger, store *selection.Store, index *group.Index, groupCmd []string) ([]string, error) {
	if useGroup == group.All {
		// One-shot: ALL applies to this call only, a stored pin survives.
		return append([]string{group.All}, groupCmd...), nil
	}

	if useGroup != "" {
		if err := store.Pin(useGroup); err != nil {
			return nil, err
		}
	}

	pinned, ok, err := store.Pinned()
	if err != nil {
		return nil, err
	}
	if !ok {
		return groupCmd, nil
	}

	// An explicitly named group (or ALL) overrides the pin for this call.
	if len(groupCmd) > 0 && (groupCmd[0] == group.All || isGroup(index, groupCmd[0])) {
		return groupCmd, nil
	}

	l.Printf("\nNote: use mrls --all to stop using group '%s'\n\n", pinned)
	return append([]string{pinned}, groupCmd...), nil
}

func isGroup(index *group.Index, name string) bool {
	_, ok := index.Members(name)
	return ok
}

// listMembers prints a group's member paths, one per line, in
// configuration order.
func listMembers(ctx context.Context, index *group.Index, name string) error {
	members, ok := index.Members(name)
	if !ok {
		return unknownGroupError(name, index.Names())
	}
	output.FromContext(ctx).Println(strings.Join(members, "\n"))
	return nil
}

// runGroupCommand synthesizes the shell command for the group and hands it
// to the dispatcher or the clipboard.
func runGroupCommand(ctx context.Context, cfg *config.Config, index *group.Index, name string, trailing []string) error {
	members, ok := index.Members(name)
	if !ok {
		return unknownGroupError(name, index.Names())
	}

	shellCmd, err := command.Synthesize(command.Invocation{
		Group:     name,
		Tool:      cfg.Tool,
		Paths:     members,
		Trailing:  trailing,
		MaxInline: cfg.MaxInlineLength,
	})
	if err != nil {
		return err
	}

	l := log.FromContext(ctx)
	l.Debug("synthesized command", "group", name, "members", len(members), "length", len(shellCmd))

	if copyCmd {
		if err := clipboard.WriteAll(shellCmd); err != nil {
			return fmt.Errorf("copy command to clipboard: %w", err)
		}
		l.Println("Command copied to clipboard.")
		return nil
	}

	return dispatch.Dispatch(ctx, shellCmd)
}

// stripDoubleDash removes the first literal "--" so trailing mr flags can
// be separated from the group name without reaching the generated command.
func stripDoubleDash(args []string) []string {
	for i, arg := range args {
		if arg == "--" {
			return append(append([]string{}, args[:i]...), args[i+1:]...)
		}
	}
	return args
}
