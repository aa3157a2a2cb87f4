package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/tbnorth/mrls/internal/config"
	"github.com/tbnorth/mrls/internal/group"
	"github.com/tbnorth/mrls/internal/output"
	"github.com/tbnorth/mrls/internal/ui"
)

// printSummary shows repository counts per device root and the defined
// group names. This is the no-argument view.
func printSummary(ctx context.Context, cfg *config.Config, index *group.Index, counts group.DeviceCount) {
	p := output.FromContext(ctx)
	theme := ui.NewTheme(useColor(p))

	p.Println(theme.Header.Render("Repos. by drive:"))
	for _, root := range counts.Roots() {
		count := theme.Count.Render(fmt.Sprintf("%-3d", counts[root]))
		p.Printf("N=%s %s -d %s \n", count, cfg.Tool, theme.Muted.Render(root))
	}
	p.Println(theme.Header.Render("Groups:") + " " + strings.Join(index.Names(), " "))
}

// useColor enables styling only when writing straight to a terminal.
func useColor(p *output.Printer) bool {
	f, ok := p.Writer().(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
