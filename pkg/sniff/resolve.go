package sniff

import (
	"fmt"
	"maps"
	"slices"

	"github.com/yaklabco/gosniff/pkg/config"
)

// ResolvedSniff pairs a fresh sniff instance with its resolved configuration.
type ResolvedSniff struct {
	// Sniff is the instance used for this run.
	Sniff Sniff

	// Severity overrides the severity of every violation when non-empty.
	Severity config.Severity

	// AutoFix indicates whether fixes from this sniff may be applied.
	AutoFix bool

	// Exclude holds suppressed local and full violation codes.
	Exclude map[string]struct{}
}

// Excluded reports whether violations with the local code are suppressed.
func (rs *ResolvedSniff) Excluded(localCode string) bool {
	if len(rs.Exclude) == 0 {
		return false
	}
	if _, ok := rs.Exclude[localCode]; ok {
		return true
	}
	_, ok := rs.Exclude[rs.Sniff.Code()+"."+localCode]
	return ok
}

// ResolveSniffs instantiates the enabled sniffs in registration order and
// applies their configuration. Each call returns independent instances.
func ResolveSniffs(registry *Registry, cfg *config.Config) ([]*ResolvedSniff, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	view := cfg.Resolved(registry.Defaults())

	var resolved []*ResolvedSniff
	for _, prototype := range registry.Sniffs() {
		code := prototype.Code()
		if !view.IsEnabled(code) {
			continue
		}

		s, _ := registry.New(code)
		rs, err := resolveSniff(s, cfg)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, rs)
	}

	return resolved, nil
}

// resolveSniff resolves the configuration for a single sniff.
func resolveSniff(s Sniff, cfg *config.Config) (*ResolvedSniff, error) {
	rs := &ResolvedSniff{
		Sniff:    s,
		Severity: config.Severity(cfg.SeverityDefault),
		AutoFix:  s.CanFix(),
	}

	sc, ok := cfg.Sniffs[s.Code()]
	if ok {
		if sc.Severity != nil {
			rs.Severity = config.Severity(*sc.Severity)
		}
		if sc.AutoFix != nil {
			rs.AutoFix = *sc.AutoFix && s.CanFix()
		}
		if len(sc.Exclude) > 0 {
			rs.Exclude = make(map[string]struct{}, len(sc.Exclude))
			for _, code := range sc.Exclude {
				rs.Exclude[code] = struct{}{}
			}
		}
		if err := applyProperties(s, sc.Properties); err != nil {
			return nil, err
		}
	}

	if !rs.Severity.IsValid() {
		rs.Severity = ""
	}

	// Apply fix-sniffs filter from CLI.
	if len(cfg.FixSniffs) > 0 && !slices.Contains(cfg.FixSniffs, s.Code()) {
		rs.AutoFix = false
	}

	return rs, nil
}

// applyProperties sets properties in sorted key order.
func applyProperties(s Sniff, props map[string]any) error {
	if len(props) == 0 {
		return nil
	}

	configurable, ok := s.(Configurable)
	if !ok {
		return fmt.Errorf("%s: %w", s.Code(), ErrNotConfigurable)
	}

	for _, name := range slices.Sorted(maps.Keys(props)) {
		if err := configurable.SetProperty(name, fmt.Sprint(props[name])); err != nil {
			return fmt.Errorf("%s property %q: %w", s.Code(), name, err)
		}
	}
	return nil
}
