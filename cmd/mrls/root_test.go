package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/tbnorth/mrls/internal/config"
	"github.com/tbnorth/mrls/internal/group"
	"github.com/tbnorth/mrls/internal/log"
	"github.com/tbnorth/mrls/internal/output"
	"github.com/tbnorth/mrls/internal/selection"
)

// setFlags overrides the selection flags for one test. Tests using it must
// not run in parallel.
func setFlags(t *testing.T, all bool, use string) {
	t.Helper()
	oldAll, oldUse := useAll, useGroup
	useAll, useGroup = all, use
	t.Cleanup(func() { useAll, useGroup = oldAll, oldUse })
}

func testIndex() *group.Index {
	index := group.NewIndex()
	index.Append("web", "/home/u/a/repo1")
	index.Append("web", "/home/u/a/repo2")
	index.Append("dev", "/home/u/b/repo3")
	index.Append(group.All, "/home/u/a/repo1")
	index.Append(group.All, "/home/u/a/repo2")
	index.Append(group.All, "/home/u/b/repo3")
	return index
}

func testLogger() (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return log.New(&buf, false, false), &buf
}

func TestStripDoubleDash(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"no dashes", []string{"web", "status"}, []string{"web", "status"}},
		{"dash removed", []string{"web", "--", "status"}, []string{"web", "status"}},
		{"only first dash removed", []string{"--", "a", "--"}, []string{"a", "--"}},
		{"empty", nil, nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := stripDoubleDash(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("stripDoubleDash(%v) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("stripDoubleDash(%v) = %v, want %v", tt.in, got, tt.want)
				}
			}
		})
	}
}

func TestUnknownGroupError(t *testing.T) {
	t.Parallel()

	t.Run("suggests closest name", func(t *testing.T) {
		t.Parallel()
		err := unknownGroupError("wb", []string{"web", "dev", "ALL"})
		if err == nil {
			t.Fatal("unknownGroupError = nil")
		}
		if !strings.Contains(err.Error(), `"web"`) {
			t.Errorf("error %q should suggest web", err)
		}
	})

	t.Run("no suggestion when nothing ranks", func(t *testing.T) {
		t.Parallel()
		err := unknownGroupError("zzz", []string{"web"})
		if err == nil {
			t.Fatal("unknownGroupError = nil")
		}
		if strings.Contains(err.Error(), "did you mean") {
			t.Errorf("error %q should not carry a suggestion", err)
		}
	})
}

func TestApplySelection_PinPrepended(t *testing.T) {
	setFlags(t, false, "")
	store := selection.NewStore(filepath.Join(t.TempDir(), "pin"))
	if err := store.Pin("web"); err != nil {
		t.Fatal(err)
	}
	l, logged := testLogger()

	got, err := applySelection(l, store, testIndex(), []string{"status"})
	if err != nil {
		t.Fatalf("applySelection() = %v", err)
	}
	if len(got) != 2 || got[0] != "web" || got[1] != "status" {
		t.Errorf("applySelection() = %v, want [web status]", got)
	}
	if !strings.Contains(logged.String(), "mrls --all to stop using group 'web'") {
		t.Errorf("log = %q, want pin note", logged.String())
	}
}

func TestApplySelection_ExplicitGroupOverridesPin(t *testing.T) {
	setFlags(t, false, "")
	store := selection.NewStore(filepath.Join(t.TempDir(), "pin"))
	if err := store.Pin("web"); err != nil {
		t.Fatal(err)
	}
	l, _ := testLogger()

	got, err := applySelection(l, store, testIndex(), []string{"dev", "status"})
	if err != nil {
		t.Fatalf("applySelection() = %v", err)
	}
	if len(got) != 2 || got[0] != "dev" {
		t.Errorf("applySelection() = %v, want pin ignored for explicit group", got)
	}
}

func TestApplySelection_AllOverridesPinForOneCall(t *testing.T) {
	setFlags(t, false, "")
	store := selection.NewStore(filepath.Join(t.TempDir(), "pin"))
	if err := store.Pin("web"); err != nil {
		t.Fatal(err)
	}
	l, _ := testLogger()

	got, err := applySelection(l, store, testIndex(), []string{group.All, "status"})
	if err != nil {
		t.Fatalf("applySelection() = %v", err)
	}
	if got[0] != group.All {
		t.Errorf("applySelection() = %v, want ALL first", got)
	}
	if name, ok, _ := store.Pinned(); !ok || name != "web" {
		t.Errorf("pin = (%q, %v), want untouched", name, ok)
	}
}

func TestApplySelection_UsePinsAndApplies(t *testing.T) {
	setFlags(t, false, "web")
	store := selection.NewStore(filepath.Join(t.TempDir(), "pin"))
	l, _ := testLogger()

	got, err := applySelection(l, store, testIndex(), []string{"status"})
	if err != nil {
		t.Fatalf("applySelection() = %v", err)
	}
	if len(got) != 2 || got[0] != "web" {
		t.Errorf("applySelection() = %v, want [web status]", got)
	}
	if name, ok, _ := store.Pinned(); !ok || name != "web" {
		t.Errorf("pin = (%q, %v), want persisted", name, ok)
	}
}

func TestApplySelection_UseAllIsOneShot(t *testing.T) {
	setFlags(t, false, group.All)
	store := selection.NewStore(filepath.Join(t.TempDir(), "pin"))
	if err := store.Pin("web"); err != nil {
		t.Fatal(err)
	}
	l, _ := testLogger()

	got, err := applySelection(l, store, testIndex(), []string{"status"})
	if err != nil {
		t.Fatalf("applySelection() = %v", err)
	}
	if got[0] != group.All {
		t.Errorf("applySelection() = %v, want ALL applied", got)
	}
	if name, _, _ := store.Pinned(); name != "web" {
		t.Errorf("pin = %q, want stored pin preserved", name)
	}
}

func TestClearSelection_ClearsPin(t *testing.T) {
	setFlags(t, true, "")
	store := selection.NewStore(filepath.Join(t.TempDir(), "pin"))
	if err := store.Pin("web"); err != nil {
		t.Fatal(err)
	}
	l, logged := testLogger()

	got, err := clearSelection(l, store, nil)
	if err != nil {
		t.Fatalf("clearSelection() = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("clearSelection() = %v, want empty", got)
	}
	if _, ok, _ := store.Pinned(); ok {
		t.Error("pin still present after --all")
	}
	if !strings.Contains(logged.String(), "Group cleared, using all repos.") {
		t.Errorf("log = %q, want cleared message", logged.String())
	}
}

func TestClearSelection_WithoutPin(t *testing.T) {
	setFlags(t, true, "")
	store := selection.NewStore(filepath.Join(t.TempDir(), "pin"))
	l, logged := testLogger()

	if _, err := clearSelection(l, store, nil); err != nil {
		t.Fatalf("clearSelection() = %v", err)
	}
	if !strings.Contains(logged.String(), "No group set, already using all repos.") {
		t.Errorf("log = %q, want already-using-all message", logged.String())
	}
}

func TestClearSelection_DropsCommandWithHint(t *testing.T) {
	setFlags(t, true, "")
	store := selection.NewStore(filepath.Join(t.TempDir(), "pin"))
	l, logged := testLogger()

	got, err := clearSelection(l, store, []string{"status", "-uno"})
	if err != nil {
		t.Fatalf("clearSelection() = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("clearSelection() = %v, want command dropped", got)
	}
	if !strings.Contains(logged.String(), "mr status -uno") {
		t.Errorf("log = %q, want plain-mr hint", logged.String())
	}
}

func TestClearSelection_NoOpWithoutAll(t *testing.T) {
	setFlags(t, false, "")
	store := selection.NewStore(filepath.Join(t.TempDir(), "pin"))
	if err := store.Pin("web"); err != nil {
		t.Fatal(err)
	}
	l, _ := testLogger()

	got, err := clearSelection(l, store, []string{"status"})
	if err != nil {
		t.Fatalf("clearSelection() = %v", err)
	}
	if len(got) != 1 || got[0] != "status" {
		t.Errorf("clearSelection() = %v, want arguments untouched", got)
	}
	if _, ok, _ := store.Pinned(); !ok {
		t.Error("pin removed without --all")
	}
}

func TestRunRoot_ConflictingOptions(t *testing.T) {
	setFlags(t, true, "web")

	cfg := config.Default()
	cmd := &cobra.Command{}
	cmd.SetContext(config.WithConfig(context.Background(), &cfg))

	err := runRoot(cmd, nil)
	if !errors.Is(err, selection.ErrConflictingOptions) {
		t.Errorf("runRoot() = %v, want ErrConflictingOptions", err)
	}
}

func TestRunRoot_AllClearsPinWithoutConfig(t *testing.T) {
	setFlags(t, true, "")

	dir := t.TempDir()
	cfg := config.Default()
	cfg.MrConfig = filepath.Join(dir, "missing_mrconfig")
	cfg.GroupFile = filepath.Join(dir, "group")

	store := selection.NewStore(cfg.GroupFile)
	if err := store.Pin("web"); err != nil {
		t.Fatal(err)
	}

	cmd := &cobra.Command{}
	cmd.SetContext(config.WithConfig(context.Background(), &cfg))

	if err := runRoot(cmd, nil); err == nil {
		t.Fatal("runRoot() = nil, want missing-config error")
	}
	if _, ok, _ := store.Pinned(); ok {
		t.Error("stale pin survived --all with a missing mr config")
	}
}

func TestListMembers(t *testing.T) {
	t.Parallel()

	t.Run("prints members in order", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		ctx := output.WithPrinter(context.Background(), &buf)

		if err := listMembers(ctx, testIndex(), "web"); err != nil {
			t.Fatalf("listMembers() = %v", err)
		}
		want := "/home/u/a/repo1\n/home/u/a/repo2\n"
		if got := buf.String(); got != want {
			t.Errorf("listMembers() printed %q, want %q", got, want)
		}
	})

	t.Run("unknown group errors", func(t *testing.T) {
		t.Parallel()
		ctx := output.WithPrinter(context.Background(), &bytes.Buffer{})
		if err := listMembers(ctx, testIndex(), "nope"); err == nil {
			t.Error("listMembers() = nil for unknown group")
		}
	})
}

func TestPrintSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := output.WithPrinter(context.Background(), &buf)
	cfg := config.Default()

	counts := make(group.DeviceCount)
	counts.Add("/mnt/edata")
	counts.Add("/mnt/edata")
	counts.Add("/mnt/edata")
	counts.Add("/mnt/usr1")

	printSummary(ctx, &cfg, testIndex(), counts)

	got := buf.String()
	if !strings.Contains(got, "Repos. by drive:") {
		t.Errorf("summary = %q, want drive header", got)
	}
	if !strings.Contains(got, "N=3   mr -d /mnt/edata") {
		t.Errorf("summary = %q, want padded count line", got)
	}
	if !strings.Contains(got, "N=1   mr -d /mnt/usr1") {
		t.Errorf("summary = %q, want usr1 line", got)
	}
	if !strings.Contains(got, "Groups: web dev ALL") {
		t.Errorf("summary = %q, want group names in declaration order", got)
	}
}
