package main

import (
	"fmt"

	"github.com/sahilm/fuzzy"
)

// unknownGroupError builds the error for a group name that is not defined
// in the mr config, suggesting the closest defined name when one ranks.
func unknownGroupError(name string, defined []string) error {
	if matches := fuzzy.Find(name, defined); len(matches) > 0 {
		return fmt.Errorf("unknown group %q (did you mean %q?)", name, matches[0].Str)
	}
	return fmt.Errorf("unknown group %q", name)
}
