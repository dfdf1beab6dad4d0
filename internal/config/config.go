// Package config loads the watch list used by the regwatch command.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spiretechnology/go-regwatch"
	"gopkg.in/yaml.v3"
)

// Config is the root of a watch list file:
//
//	tick: 1s
//	watches:
//	  - key: HKLM\SOFTWARE\Microsoft\Windows\CurrentVersion
//	    filter: [name, last-set]
//	    subtree: true
type Config struct {
	Tick    time.Duration `yaml:"tick"`
	Watches []Watch       `yaml:"watches"`
}

// Watch describes a single key to watch.
type Watch struct {
	Key     string   `yaml:"key"`
	Filter  []string `yaml:"filter"`
	Subtree bool     `yaml:"subtree"`
}

// ParsedFilter resolves the filter names. An empty list watches every legal change.
func (w Watch) ParsedFilter() (regwatch.Filter, error) {
	if len(w.Filter) == 0 {
		return regwatch.LegalChangeFilter, nil
	}
	return regwatch.ParseFilter(w.Filter...)
}

// Load reads and validates the watch list at name within fsys.
func Load(fsys fs.FS, name string) (*Config, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("error reading config %q: %w", name, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config %q: %w", name, err)
	}
	if cfg.Tick == 0 {
		cfg.Tick = regwatch.DefaultTickDuration
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", name, err)
	}
	return &cfg, nil
}

// Validate checks that every watch names a parsable key and known filters.
func (c *Config) Validate() error {
	if c.Tick < 0 {
		return errors.New("tick must not be negative")
	}
	if len(c.Watches) == 0 {
		return errors.New("no watches configured")
	}
	for i, watch := range c.Watches {
		if _, _, err := regwatch.ParseKeyPath(watch.Key); err != nil {
			return fmt.Errorf("watch %d: %w", i, err)
		}
		if _, err := watch.ParsedFilter(); err != nil {
			return fmt.Errorf("watch %d: %w", i, err)
		}
	}
	return nil
}
