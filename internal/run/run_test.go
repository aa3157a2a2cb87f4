package run

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/tbnorth/mrls/internal/log"
)

func logCtx(buf *bytes.Buffer, verbose bool) context.Context {
	return log.WithLogger(context.Background(), log.New(buf, verbose, false))
}

func TestContext_Success(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := Context(logCtx(&buf, false), "true"); err != nil {
		t.Errorf("Context(true) = %v, want nil", err)
	}
}

func TestContext_StderrMessage(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := Context(logCtx(&buf, false), "sh", "-c", "echo 'bad thing' >&2; exit 1")
	if err == nil {
		t.Fatal("Context = nil, want error")
	}
	if err.Error() != "bad thing" {
		t.Errorf("Context error = %q, want %q", err.Error(), "bad thing")
	}
}

func TestContext_FailureWithoutStderr(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := Context(logCtx(&buf, false), "sh", "-c", "exit 3"); err == nil {
		t.Error("Context(exit 3) = nil, want error")
	}
}

func TestContext_Cancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Context(ctx, "sleep", "10")
	if err != context.Canceled {
		t.Errorf("Context error = %v, want context.Canceled", err)
	}
}

func TestContext_VerboseEchoesCommand(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := Context(logCtx(&buf, true), "echo", "hi"); err != nil {
		t.Fatalf("Context(echo hi) = %v", err)
	}
	if got := buf.String(); !strings.Contains(got, "$ echo hi") {
		t.Errorf("verbose log = %q, want to contain %q", got, "$ echo hi")
	}
}
