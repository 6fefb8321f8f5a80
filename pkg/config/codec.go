package config

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnknownConfigFormat is returned when a config file extension is not recognized.
var ErrUnknownConfigFormat = errors.New("unknown config file format")

// ToYAML serializes the configuration to YAML format.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToTOML serializes the configuration to TOML format.
func (c *Config) ToTOML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	cfg.ensureMaps()
	return cfg, nil
}

// FromTOML parses a configuration from TOML bytes.
// Keys the Config does not define are reported as an error.
func FromTOML(data []byte) (*Config, error) {
	cfg := &Config{}
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			// Sniff properties are free-form.
			if len(key) >= 3 && key[0] == "sniffs" && key[2] == "properties" {
				continue
			}
			keys = append(keys, key.String())
		}
		if len(keys) > 0 {
			return nil, fmt.Errorf("parse toml: unknown keys %s", strings.Join(keys, ", "))
		}
	}

	cfg.ensureMaps()
	return cfg, nil
}

// Decode parses config data, picking the format from the file extension.
func Decode(path string, data []byte) (*Config, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FromYAML(data)
	case ".toml":
		return FromTOML(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownConfigFormat, path)
	}
}

func (c *Config) ensureMaps() {
	if c.Sniffs == nil {
		c.Sniffs = make(map[string]SniffConfig)
	}
}

// Clone creates a deep copy of the configuration, CLI-only fields included.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Ignore = cloneStrings(c.Ignore)
	clone.Extensions = cloneStrings(c.Extensions)
	clone.EnableSniffs = cloneStrings(c.EnableSniffs)
	clone.DisableSniffs = cloneStrings(c.DisableSniffs)
	clone.FixSniffs = cloneStrings(c.FixSniffs)

	if c.Sniffs != nil {
		clone.Sniffs = make(map[string]SniffConfig, len(c.Sniffs))
		for code, sc := range c.Sniffs {
			clone.Sniffs[code] = sc.clone()
		}
	}

	return &clone
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// clone creates a deep copy of a SniffConfig.
func (sc SniffConfig) clone() SniffConfig {
	clone := SniffConfig{Exclude: cloneStrings(sc.Exclude)}

	if sc.Enabled != nil {
		enabled := *sc.Enabled
		clone.Enabled = &enabled
	}

	if sc.Severity != nil {
		severity := *sc.Severity
		clone.Severity = &severity
	}

	if sc.AutoFix != nil {
		autoFix := *sc.AutoFix
		clone.AutoFix = &autoFix
	}

	if sc.Properties != nil {
		clone.Properties = make(map[string]any, len(sc.Properties))
		maps.Copy(clone.Properties, sc.Properties) // nested values are shared
	}

	return clone
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}
