package domain

import "fmt"

// DefaultSampleSize bounds how many violations are printed per rule group.
const DefaultSampleSize = 5

// ProjectConfig holds project-level configuration loaded from .archgate.yaml.
type ProjectConfig struct {
	SourceRoot   string              `yaml:"source_root"   json:"source_root,omitempty"`
	FeaturesDir  string              `yaml:"features_dir"  json:"features_dir,omitempty"`
	ExcludePaths []string            `yaml:"exclude_paths" json:"exclude_paths,omitempty"`
	EntryPoints  []string            `yaml:"entry_points"  json:"entry_points,omitempty"`
	OrphanAllow  []string            `yaml:"orphan_allow"  json:"orphan_allow,omitempty"`
	Allow        map[string][]string `yaml:"allow"         json:"allow,omitempty"`
	DenyExternal map[string][]string `yaml:"deny_external" json:"deny_external,omitempty"`
	Samples      int                 `yaml:"samples"       json:"samples,omitempty"`
}

// DefaultConfig returns the configuration used when no .archgate.yaml exists.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		SourceRoot:  "src",
		FeaturesDir: "features",
		OrphanAllow: []string{"test-utils/", ".test.ts", ".spec.ts"},
		Samples:     DefaultSampleSize,
	}
}

// Validate checks the config for invalid values and returns a descriptive
// error. Unknown layer names are rejected rather than silently ignored so a
// typo cannot open a boundary.
func (c ProjectConfig) Validate() error {
	if c.SourceRoot == "" {
		return fmt.Errorf("source_root must not be empty")
	}
	if c.FeaturesDir == "" {
		return fmt.Errorf("features_dir must not be empty")
	}
	if c.Samples < 0 {
		return fmt.Errorf("samples must be >= 0 (got %d)", c.Samples)
	}

	for from, tos := range c.Allow {
		if !isKnownLayer(from) {
			return fmt.Errorf("unknown layer %q in allow", from)
		}
		for _, to := range tos {
			if !isKnownLayer(to) {
				return fmt.Errorf("unknown layer %q in allow[%q]", to, from)
			}
		}
		if from == string(LayerDomain) {
			return fmt.Errorf("allow[%q]: the domain layer's dependency set cannot be widened", from)
		}
	}

	for layer := range c.DenyExternal {
		if !isKnownLayer(layer) {
			return fmt.Errorf("unknown layer %q in deny_external", layer)
		}
	}

	return nil
}

// BuildLattice materializes the effective lattice: the static defaults plus
// any configured extra allow edges and external denylists.
func (c ProjectConfig) BuildLattice() *BoundaryLattice {
	l := DefaultLattice()
	for from, tos := range c.Allow {
		for _, to := range tos {
			l.Allow(Layer(from), Layer(to))
		}
	}
	for layer, pkgs := range c.DenyExternal {
		l.DenyExternal(Layer(layer), pkgs...)
	}
	return l
}

// SampleSize returns the configured per-rule sample bound, falling back to
// the default when unset.
func (c ProjectConfig) SampleSize() int {
	if c.Samples > 0 {
		return c.Samples
	}
	return DefaultSampleSize
}

func isKnownLayer(name string) bool {
	for _, l := range Layers {
		if string(l) == name {
			return true
		}
	}
	return false
}
