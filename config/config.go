// Package config loads dep5 settings from defaults, TOML files and DEP5_*
// environment variables.
package config

import "github.com/teranos/dep5/years"

// Config is the full dep5 configuration.
type Config struct {
	Years  YearsConfig  `mapstructure:"years" toml:"years" json:"years" yaml:"years"`
	Input  InputConfig  `mapstructure:"input" toml:"input" json:"input" yaml:"input"`
	Output OutputConfig `mapstructure:"output" toml:"output" json:"output" yaml:"output"`
	Header HeaderConfig `mapstructure:"header" toml:"header" json:"header" yaml:"header"`
	Watch  WatchConfig  `mapstructure:"watch" toml:"watch" json:"watch" yaml:"watch"`
	Log    LogConfig    `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
}

// YearsConfig enables the heuristics for two-digit years.
type YearsConfig struct {
	AllowCenturyGuess                    bool `mapstructure:"allow_century_guess" toml:"allow_century_guess" json:"allow_century_guess" yaml:"allow_century_guess"`
	AllowAssumingY2KSpan                 bool `mapstructure:"allow_assuming_y2k_span" toml:"allow_assuming_y2k_span" json:"allow_assuming_y2k_span" yaml:"allow_assuming_y2k_span"`
	AllowMixedSizeImpliedCenturyRollover bool `mapstructure:"allow_mixed_size_implied_century_rollover" toml:"allow_mixed_size_implied_century_rollover" json:"allow_mixed_size_implied_century_rollover" yaml:"allow_mixed_size_implied_century_rollover"`
}

// InputConfig locates the bill of materials and the override file.
type InputConfig struct {
	SPDX            string `mapstructure:"spdx" toml:"spdx" json:"spdx" yaml:"spdx"`
	Overrides       string `mapstructure:"overrides" toml:"overrides" json:"overrides" yaml:"overrides"`
	OmitNoCopyright bool   `mapstructure:"omit_no_copyright" toml:"omit_no_copyright" json:"omit_no_copyright" yaml:"omit_no_copyright"`
}

// OutputConfig controls where and how strictly the copyright file is written.
type OutputConfig struct {
	Path   string `mapstructure:"path" toml:"path" json:"path" yaml:"path"` // empty = stdout
	Strict bool   `mapstructure:"strict" toml:"strict" json:"strict" yaml:"strict"`
}

// HeaderConfig fills the header paragraph when overrides carry no intro.
type HeaderConfig struct {
	UpstreamName    string `mapstructure:"upstream_name" toml:"upstream_name" json:"upstream_name" yaml:"upstream_name"`
	UpstreamContact string `mapstructure:"upstream_contact" toml:"upstream_contact" json:"upstream_contact" yaml:"upstream_contact"`
	Source          string `mapstructure:"source" toml:"source" json:"source" yaml:"source"`
	DetectUpstream  bool   `mapstructure:"detect_upstream" toml:"detect_upstream" json:"detect_upstream" yaml:"detect_upstream"`
}

// WatchConfig tunes generate --watch.
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" toml:"debounce_ms" json:"debounce_ms" yaml:"debounce_ms"`
}

// LogConfig selects the log format.
type LogConfig struct {
	JSON bool `mapstructure:"json" toml:"json" json:"json" yaml:"json"`
}

// Normalization returns the year heuristics as parser options.
func (c *Config) Normalization() years.Normalization {
	return years.Normalization{
		AllowCenturyGuess:                    c.Years.AllowCenturyGuess,
		AllowAssumingY2KSpan:                 c.Years.AllowAssumingY2KSpan,
		AllowMixedSizeImpliedCenturyRollover: c.Years.AllowMixedSizeImpliedCenturyRollover,
	}
}
