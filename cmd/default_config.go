package cmd

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	sim "github.com/invsim/invsim/sim"
)

// Scenario is a named preset in defaults.yaml. Params lists only the fields
// that differ from the top-level defaults.
type Scenario struct {
	Description string    `yaml:"description"`
	Params      yaml.Node `yaml:"params"`
}

// Config represents the full defaults.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Version   string              `yaml:"version"`
	Defaults  sim.Params          `yaml:"defaults"`
	Scenarios map[string]Scenario `yaml:"scenarios"`
}

// loadDefaultsConfig parses defaults.yaml into a Config struct.
// Uses strict field checking: typos must cause errors.
func loadDefaultsConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading defaults file %s: %w", path, err)
	}
	cfg := Config{Defaults: sim.DefaultParams()}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing defaults YAML %s: %w", path, err)
	}
	return &cfg, nil
}

// ScenarioNames returns the preset names in sorted order.
func (c *Config) ScenarioNames() []string {
	names := make([]string, 0, len(c.Scenarios))
	for name := range c.Scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveParams returns the defaults with the named scenario's overrides
// applied. An empty name returns the defaults unchanged.
func (c *Config) ResolveParams(name string) (sim.Params, error) {
	params := c.Defaults
	if name == "" {
		return params, nil
	}
	sc, ok := c.Scenarios[name]
	if !ok {
		return sim.Params{}, fmt.Errorf("unknown scenario %q; available: %v", name, c.ScenarioNames())
	}
	if sc.Params.Kind == 0 {
		return params, nil
	}
	// Re-decode the overrides strictly on top of the defaults; fields absent
	// from the scenario keep their default values.
	raw, err := yaml.Marshal(&sc.Params)
	if err != nil {
		return sim.Params{}, fmt.Errorf("scenario %q: %w", name, err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(&params); err != nil {
		return sim.Params{}, fmt.Errorf("scenario %q: %w", name, err)
	}
	return params, nil
}
