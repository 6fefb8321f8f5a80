package config

import (
	"slices"
)

// Resolved is the read-only view of configuration the core engine consumes.
type Resolved struct {
	// FixMode reports whether fixes are applied.
	FixMode bool

	// MaxPasses caps the fix loop.
	MaxPasses int

	// TabWidth is used by tokenizers for column computation.
	TabWidth int

	enabled map[string]struct{}
}

// IsEnabled reports whether the sniff code is enabled for the run.
func (r Resolved) IsEnabled(code string) bool {
	_, ok := r.enabled[code]
	return ok
}

// EnabledSniffCodes returns the enabled codes in sorted order.
func (r Resolved) EnabledSniffCodes() []string {
	out := make([]string, 0, len(r.enabled))
	for code := range r.enabled {
		out = append(out, code)
	}
	slices.Sort(out)
	return out
}

// Resolved computes the engine view. defaults maps every known sniff code to
// whether it is enabled when nothing configures it.
//
// Precedence, lowest first: sniff default, sniffs.<code>.enabled, EnableSniffs,
// DisableSniffs.
func (c *Config) Resolved(defaults map[string]bool) Resolved {
	r := Resolved{
		FixMode:   c != nil && c.Fix,
		MaxPasses: c.EffectiveMaxPasses(),
		TabWidth:  c.EffectiveTabWidth(),
		enabled:   make(map[string]struct{}, len(defaults)),
	}

	for code, on := range defaults {
		if c != nil {
			if sc, ok := c.Sniffs[code]; ok && sc.Enabled != nil {
				on = *sc.Enabled
			}
			if slices.Contains(c.EnableSniffs, code) {
				on = true
			}
			if slices.Contains(c.DisableSniffs, code) {
				on = false
			}
		}
		if on {
			r.enabled[code] = struct{}{}
		}
	}

	return r
}
