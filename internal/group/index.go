// Package group indexes repositories by their declared group tags and by
// the storage device they live on.
package group

import (
	"sort"

	"github.com/tbnorth/mrls/internal/device"
	"github.com/tbnorth/mrls/internal/mrconfig"
)

// All is the reserved group containing every configured repository.
// A user group literally named ALL merges with it.
const All = "ALL"

// Index maps group names to member repository paths. Names keep
// first-insertion order and members keep configuration order. Duplicate
// members are kept as-is; mrls never deduplicates what the user configured.
type Index struct {
	names   []string
	members map[string][]string
}

// NewIndex returns an empty Index.
func NewIndex() *Index {
	return &Index{members: make(map[string][]string)}
}

// Append adds path as a member of the named group, creating the group on
// first use.
func (x *Index) Append(name, path string) {
	if _, ok := x.members[name]; !ok {
		x.names = append(x.names, name)
	}
	x.members[name] = append(x.members[name], path)
}

// Members returns the member paths of a group and whether it exists.
// Absent groups are distinct from empty ones.
func (x *Index) Members(name string) ([]string, bool) {
	paths, ok := x.members[name]
	return paths, ok
}

// Names returns all group names in first-insertion order.
func (x *Index) Names() []string {
	return x.names
}

// DeviceCount counts repositories per device root.
type DeviceCount map[string]int

// Add records one repository under the given device root.
func (c DeviceCount) Add(root string) {
	c[root]++
}

// Roots returns the counted device roots in sorted order.
func (c DeviceCount) Roots() []string {
	roots := make([]string, 0, len(c))
	for root := range c {
		roots = append(roots, root)
	}
	sort.Strings(roots)
	return roots
}

// Build resolves every entry and produces the group index plus per-device
// repository counts. Entries that do not resolve on this system keep the
// device.Missing sentinel as both their path and device root; they stay
// visible in the summary without being counted against a real device.
func Build(entries []mrconfig.Entry, resolver *device.Resolver) (*Index, DeviceCount) {
	index := NewIndex()
	counts := make(DeviceCount)

	for _, entry := range entries {
		root, fullPath := resolver.Resolve(entry.Path)
		counts.Add(root)

		for _, tag := range entry.Groups {
			index.Append(tag, fullPath)
		}
		index.Append(All, fullPath)
	}

	// The reserved group exists even for an empty configuration; listing
	// it is then an empty result, not an unknown-group error.
	if _, ok := index.members[All]; !ok {
		index.names = append(index.names, All)
		index.members[All] = []string{}
	}

	return index, counts
}
