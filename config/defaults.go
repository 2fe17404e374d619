package config

import "github.com/spf13/viper"

const (
	// DefaultSPDXPath is the bill of materials read when none is configured
	DefaultSPDXPath = "summary.spdx"
	// DefaultOverridesPath is the override file read when none is configured
	DefaultOverridesPath = "wildcards.toml"
	// FileName is the per-project config file searched for upward from the working directory
	FileName = "dep5.toml"
	// EnvPrefix prefixes environment overrides, e.g. DEP5_OUTPUT_STRICT
	EnvPrefix = "DEP5"

	DefaultDirPermissions  = 0o750
	DefaultFilePermissions = 0o644
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Two-digit year heuristics are opt-in
	v.SetDefault("years.allow_century_guess", false)
	v.SetDefault("years.allow_assuming_y2k_span", false)
	v.SetDefault("years.allow_mixed_size_implied_century_rollover", false)

	v.SetDefault("input.spdx", DefaultSPDXPath)
	v.SetDefault("input.overrides", DefaultOverridesPath)
	v.SetDefault("input.omit_no_copyright", false)

	v.SetDefault("output.path", "")
	v.SetDefault("output.strict", false)

	v.SetDefault("header.upstream_name", "")
	v.SetDefault("header.upstream_contact", "")
	v.SetDefault("header.source", "")
	v.SetDefault("header.detect_upstream", true)

	v.SetDefault("watch.debounce_ms", 300)

	v.SetDefault("log.json", false)
}
