// Package dispatch delivers a synthesized command to the user.
//
// Inside GNU screen or tmux the command text is injected into the active
// session's input line, ready for the user to review and hit enter; it is
// never executed by mrls. Outside a multiplexer the command is printed to
// stdout for copy and paste.
package dispatch

import (
	"context"
	"os"
	"strings"

	"github.com/tbnorth/mrls/internal/log"
	"github.com/tbnorth/mrls/internal/output"
	"github.com/tbnorth/mrls/internal/run"
)

// Multiplexer injects literal text into an active terminal session.
type Multiplexer interface {
	Name() string
	Inject(ctx context.Context, text string) error
}

// Detect returns the surrounding terminal multiplexer, or nil when running
// in a plain terminal. Detection is by the environment markers the
// multiplexers themselves set.
func Detect() Multiplexer {
	if os.Getenv("STY") != "" {
		return screenMux{}
	}
	if os.Getenv("TMUX") != "" {
		return tmuxMux{}
	}
	return nil
}

// Dispatch hands the command to the surrounding multiplexer, falling back
// to printing it on stdout.
func Dispatch(ctx context.Context, command string) error {
	if mux := Detect(); mux != nil {
		log.FromContext(ctx).Debug("injecting command", "multiplexer", mux.Name())
		return mux.Inject(ctx, command)
	}
	output.FromContext(ctx).Println(command)
	return nil
}

// escape doubles backslashes so the injection channel passes them through
// literally instead of interpreting them as its own escapes.
func escape(text string) string {
	return strings.ReplaceAll(text, `\`, `\\`)
}

type screenMux struct{}

func (screenMux) Name() string { return "screen" }

// Inject stuffs the command into the current screen window's input line.
func (screenMux) Inject(ctx context.Context, text string) error {
	return run.Context(ctx, "screen", "-X", "stuff", escape(text))
}

type tmuxMux struct{}

func (tmuxMux) Name() string { return "tmux" }

// Inject types the command into the active tmux pane. -l sends the text
// literally, without key-name lookup.
func (tmuxMux) Inject(ctx context.Context, text string) error {
	return run.Context(ctx, "tmux", "send-keys", "-l", escape(text))
}
