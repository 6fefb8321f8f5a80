// Package runner discovers source files and runs the sniff pipeline over
// them concurrently.
package runner

import "github.com/yaklabco/gosniff/pkg/config"

// Options controls a multi-file run.
type Options struct {
	// Paths are the files or directories to process. Empty means ".".
	Paths []string

	// WorkingDir resolves relative Paths and glob patterns. Empty means the
	// process working directory.
	WorkingDir string

	// Extensions are the lowercase file extensions, with leading dot, picked
	// up when walking directories. Empty means config.DefaultExtensions.
	// Files named explicitly in Paths are processed whatever their extension.
	Extensions []string

	// IncludeGlobs restrict discovery to matching paths when non-empty.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files and directories. Patterns use
	// doublestar syntax relative to WorkingDir, e.g. "vendor/**".
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs caps concurrent workers. Zero or negative means GOMAXPROCS.
	Jobs int

	// Config is the configuration for this run.
	Config *config.Config
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
