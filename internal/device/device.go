// Package device locates the storage-device root of repository paths.
//
// mr can be confused by symlinks that cross devices, so mrls reports how
// many repositories live under each device's mount root. The root is found
// by resolving symlinks and walking parent directories until the device
// identifier changes.
package device

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
)

// Missing is the sentinel recorded for repositories that do not resolve on
// this system. It is counted as its own device root and never against a
// real device.
const Missing = "NOT_ON_THIS_SYSTEM"

// IDFunc reports the device identifier of a path.
type IDFunc func(path string) (uint64, error)

// Resolver walks repository paths up to their device root.
type Resolver struct {
	id IDFunc
}

// NewResolver returns a Resolver backed by filesystem stat calls.
func NewResolver() *Resolver {
	return &Resolver{id: statDevice}
}

// NewResolverFunc returns a Resolver using a custom device identifier,
// letting tests model multi-device trees.
func NewResolverFunc(id IDFunc) *Resolver {
	return &Resolver{id: id}
}

// Resolve returns the device root and the symlink-free absolute form of
// path. A path that cannot be resolved yields Missing for both values.
//
// The device root is the highest ancestor still on the same device as the
// path, or the filesystem root when the whole chain shares one device.
func (r *Resolver) Resolve(path string) (deviceRoot, fullPath string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Missing, Missing
	}
	full, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return Missing, Missing
	}
	dev, err := r.id(full)
	if err != nil {
		return Missing, Missing
	}

	root := full
	// A one-character root ("/") ends the walk regardless of device.
	for len(root) > 1 {
		parent := filepath.Dir(root)
		parentDev, err := r.id(parent)
		if err != nil || parentDev != dev {
			break
		}
		root = parent
	}
	return root, full
}

// statDevice returns the st_dev of path.
func statDevice(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, errors.New("no stat device information for " + path)
	}
	return uint64(st.Dev), nil
}
