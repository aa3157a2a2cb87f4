// Package command synthesizes the shell pipeline that runs a multi-repo
// tool over every member of a group.
//
// For group "web" with members /home/u/a/repo1 and /home/u/a/repo2, the
// generated command looks like
//
//	echo '1' '2' | tr ' ' \\n | xargs -I_WEB_ mr -d /home/u/a/repo_WEB_ status
//
// The echo stage lists the member suffixes relative to their common path
// prefix, tr turns the list into lines, and xargs substitutes each line
// into one tool invocation. Commands past the inline length budget switch
// to a list file holding one full path per line.
package command

import (
	"fmt"
	"os"
	"strings"
)

// Invocation describes one group command to synthesize.
type Invocation struct {
	Group     string   // group name, used to derive the substitution token
	Tool      string   // multi-repo tool, e.g. "mr"
	Paths     []string // member repository paths in group order
	Trailing  []string // tool arguments to run on each member
	MaxInline int      // longest command rendered inline
}

// pipeline is an ordered sequence of shell stages. Stages are assembled as
// typed steps and only joined into a command line once, so quoting rules
// live in exactly one place.
type pipeline []string

func (p pipeline) render() string {
	return strings.Join(p, " | ")
}

// Synthesize builds the shell command for an invocation. The returned
// command is never executed by mrls itself.
//
// When the inline rendering exceeds inv.MaxInline characters, the member
// paths are written to a fresh temp file instead and the command reads
// them from there. The file is left for the OS temp-dir lifecycle to
// collect; the command must stay runnable after mrls exits.
func Synthesize(inv Invocation) (string, error) {
	cmd := renderInline(inv)
	if len(cmd) <= inv.MaxInline {
		return cmd, nil
	}

	listFile, err := writeListFile(inv.Paths)
	if err != nil {
		return "", err
	}
	return renderFromFile(inv, listFile), nil
}

// renderInline renders the echo | tr | xargs pipeline over common-prefix
// suffixes.
func renderInline(inv Invocation) string {
	common := CommonPrefix(inv.Paths)
	token := substitutionToken(inv.Group)

	quoted := make([]string, len(inv.Paths))
	for i, path := range inv.Paths {
		quoted[i] = quoteSuffix(path[len(common):])
	}

	p := pipeline{
		"echo " + strings.Join(quoted, " "),
		`tr ' ' \\n`,
		fmt.Sprintf("xargs -I%s %s -d %s%s %s",
			token, inv.Tool, common, token, strings.Join(inv.Trailing, " ")),
	}
	return p.render()
}

// renderFromFile renders the fallback pipeline reading full paths from a
// list file.
func renderFromFile(inv Invocation, listFile string) string {
	token := substitutionToken(inv.Group)
	p := pipeline{
		fmt.Sprintf("xargs <%s -I%s %s -d %s %s",
			listFile, token, inv.Tool, token, strings.Join(inv.Trailing, " ")),
	}
	return p.render()
}

// writeListFile writes one member path per line to a fresh temp file and
// returns its path.
func writeListFile(paths []string) (string, error) {
	f, err := os.CreateTemp("", "mrls_*.lst")
	if err != nil {
		return "", fmt.Errorf("create member list file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(strings.Join(paths, "\n") + "\n"); err != nil {
		return "", fmt.Errorf("write member list file: %w", err)
	}
	return f.Name(), nil
}

// substitutionToken derives the xargs placeholder from the group name.
// Uppercasing with underscore guards makes collisions with path text
// unlikely and tokens distinct per group.
func substitutionToken(group string) string {
	return "_" + strings.ToUpper(group) + "_"
}

// quoteSuffix single-quotes a suffix for the echo stage. Empty suffixes
// become an explicit empty-string literal so they survive word-splitting
// and still produce an invocation at the bare common prefix.
func quoteSuffix(s string) string {
	if s == "" {
		return `'""'`
	}
	return "'" + s + "'"
}

// CommonPrefix returns the longest leading substring shared by all paths.
// It is character-wise, not segment-aware, and may split inside a
// directory name; the tool invocation re-joins prefix and suffix so the
// result is unchanged either way.
func CommonPrefix(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	prefix := paths[0]
	for _, path := range paths[1:] {
		for len(prefix) > 0 && !strings.HasPrefix(path, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
		if prefix == "" {
			break
		}
	}
	return prefix
}
