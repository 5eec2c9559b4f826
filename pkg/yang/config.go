package yang

// Configuration loading (spec.md §4.10): yangkit takes most of its
// runtime knobs from a YAML file rather than flags alone, mirroring
// how the teacher's sibling tools in the retrieved pack externalize
// server configuration. CLI flags (cmd/yangkit) override whatever the
// file sets.

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is yangkit's top-level configuration document.
type Config struct {
	// Paths lists directories to search for imported/included modules,
	// in search order.
	Paths []string `yaml:"paths"`

	// Watch lists directories whose *.yang files should be reloaded on
	// change when running under --watch (see watch.go).
	Watch []string `yaml:"watch"`

	// LogLevel is one of zerolog's level names ("debug", "info",
	// "warn", "error"); defaults to "info".
	LogLevel string `yaml:"log_level"`

	// MetricsAddr, if non-empty, is the listen address for the
	// Prometheus /metrics endpoint (see metrics.go).
	MetricsAddr string `yaml:"metrics_addr"`

	// IgnoreSubmoduleCircularDependencies is copied onto
	// yang.ParseOptions before any module is loaded.
	IgnoreSubmoduleCircularDependencies bool `yaml:"ignore_submodule_circular_dependencies"`

	// Format names the default output format (see cmd/yangkit's
	// formatter registry); overridden by --format.
	Format string `yaml:"format"`

	// WithDefaults is read from the "with_defaults" key. No printer
	// consults it; output is the same whichever value it holds.
	WithDefaults bool `yaml:"with_defaults"`

	// EnabledFeatures maps a module name to the if-feature names that
	// should be enabled in it at startup, via Ctx.FeaturesEnable. A
	// single entry of "*" enables every feature in that module.
	EnabledFeatures map[string][]string `yaml:"enabled_features"`

	// IncludeDisabledFeatures controls the tree/yang/yin formatters'
	// PrintOptions.IncludeDisabledFeatures; overridden by
	// --include-disabled-features.
	IncludeDisabledFeatures bool `yaml:"include_disabled_features"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{LogLevel: "info", Format: "tree"}
}

// LoadConfig reads and parses the YAML configuration document at path.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("yang: reading config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("yang: parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Apply copies the parse-affecting fields of c onto the package-level
// ParseOptions. Call it once at startup before any module is parsed.
func (c *Config) Apply() {
	ParseOptions.IgnoreSubmoduleCircularDependencies = c.IgnoreSubmoduleCircularDependencies
}
