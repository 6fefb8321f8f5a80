package analysis

// SortField specifies how to sort analysis results.
type SortField string

const (
	// SortByCount sorts by violation count.
	SortByCount SortField = "count"
	// SortByAlpha sorts by sniff code or path.
	SortByAlpha SortField = "alpha"
	// SortBySeverity sorts errors first, then warnings.
	SortBySeverity SortField = "severity"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortBySeverity:
		return true
	default:
		return false
	}
}

// Options configures Analyze.
type Options struct {
	// SortBy specifies how to sort BySniff and ByFile.
	SortBy SortField

	// SortDesc sorts counts highest first. Alphabetical order is always ascending.
	SortDesc bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		SortBy:   SortByCount,
		SortDesc: true,
	}
}
