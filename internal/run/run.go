// Package run executes external commands with stderr capture and verbose
// logging. mrls shells out to screen/tmux rather than speaking their control
// protocols directly; this keeps behavior identical to a user typing the
// same command.
package run

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/tbnorth/mrls/internal/log"
)

// Context executes a command, logging it when verbose. A failure returns the
// trimmed stderr text as the error message when available.
func Context(ctx context.Context, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	log.FromContext(ctx).Command(name, args...)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s", msg)
		}
		return err
	}
	return nil
}
