// Package mrconfig reads repository declarations from an mr configuration
// file. Only two facts are extracted per section: the repository path (the
// section name, relative to the home directory) and the optional "groups"
// key, a whitespace-separated list of group tags.
package mrconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// Entry is one configured repository.
type Entry struct {
	Section string   // raw section name from the config file
	Path    string   // absolute path, symlinks not yet resolved
	Groups  []string // group tags, may be empty
}

// loadOptions matches what mr itself accepts: values may span multiple
// indented lines, ConfigParser style.
var loadOptions = ini.LoadOptions{
	AllowPythonMultilineValues: true,
	SpaceBeforeInlineComment:   true,
}

// Load reads the mr config at path and returns its repository entries in
// declaration order. Section names are joined to home unless absolute.
// A missing or unparsable file is an error; mrls cannot do anything
// useful without it.
func Load(path, home string) ([]Entry, error) {
	file, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		return nil, fmt.Errorf("read mr config %s: %w", path, err)
	}
	return entries(file, home), nil
}

// Parse reads mr config entries from raw bytes. Used by tests.
func Parse(data []byte, home string) ([]Entry, error) {
	file, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, fmt.Errorf("parse mr config: %w", err)
	}
	return entries(file, home), nil
}

func entries(file *ini.File, home string) []Entry {
	var out []Entry
	for _, section := range file.Sections() {
		name := section.Name()
		if name == ini.DefaultSection {
			continue
		}

		entry := Entry{Section: name, Path: sectionPath(name, home)}
		if section.HasKey("groups") {
			entry.Groups = strings.Fields(section.Key("groups").String())
		}
		out = append(out, entry)
	}
	return out
}

// sectionPath resolves a section name to an absolute repository path.
// mr allows absolute section names; everything else is home-relative.
func sectionPath(name, home string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(home, name)
}

// Home returns the home directory entries are resolved against.
func Home() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return home, nil
}
