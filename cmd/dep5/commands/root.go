// Package commands holds the dep5 command-line interface.
package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/teranos/dep5/config"
	"github.com/teranos/dep5/errors"
	"github.com/teranos/dep5/logger"
)

var (
	// loaded is the configuration resolved for the running command
	loaded *config.Config
	// loadedViper backs loaded, with the command's flags bound
	loadedViper *viper.Viper
)

// flagKeys binds command-line flags to configuration keys. A flag only
// overrides the configuration when it is given explicitly.
var flagKeys = map[string]string{
	"spdx":              "input.spdx",
	"overrides":         "input.overrides",
	"omit-no-copyright": "input.omit_no_copyright",
	"output":            "output.path",
	"strict":            "output.strict",
	"upstream-name":     "header.upstream_name",
	"upstream-contact":  "header.upstream_contact",
	"source":            "header.source",
	"detect-upstream":   "header.detect_upstream",

	"allow-century-guess":                       "years.allow_century_guess",
	"allow-assuming-y2k-span":                   "years.allow_assuming_y2k_span",
	"allow-mixed-size-implied-century-rollover": "years.allow_mixed_size_implied_century_rollover",
}

// NewRootCmd builds the dep5 command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dep5",
		Short: "Generate Debian DEP5 copyright files from SPDX bills of materials",
		Long: `dep5 turns the per-file copyright and license facts of an SPDX tag-value
document into a minimal machine-readable Debian copyright file.

Files sharing a copyright statement and license are folded into directory
wildcards, statements from the same holders are merged with their years
coalesced, and hand-written overrides take precedence over generated paragraphs.

Examples:
  dep5 generate                          # summary.spdx + wildcards.toml -> stdout
  dep5 generate -o debian/copyright      # write the file
  dep5 generate --watch -o debian/copyright
  dep5 parse "Copyright 2019, 2021-2023 Jane Doe"
  dep5 diff debian/copyright             # show what would change`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
	}

	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().String("config", "", "Read configuration from this file instead of the dep5.toml cascade")
	rootCmd.PersistentFlags().Bool("json-log", false, "Emit logs as JSON")

	rootCmd.AddCommand(NewGenerateCmd())
	rootCmd.AddCommand(NewParseCmd())
	rootCmd.AddCommand(NewDiffCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())
	return rootCmd
}

// setup resolves configuration with the command's flags bound and
// initializes the global logger.
func setup(cmd *cobra.Command) error {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")
	verbosity, _ := flags.GetCount("verbose")
	jsonLog, _ := flags.GetBool("json-log")

	v, err := config.ViperFor(configPath)
	if err != nil {
		return errors.WithHint(err, "check the path given to --config")
	}
	if err := bindFlags(v, flags); err != nil {
		return err
	}
	cfg, err := config.LoadWithViper(v)
	if err != nil {
		return err
	}

	if err := logger.Initialize(jsonLog || cfg.Log.JSON, verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	if logger.ShouldOutput(verbosity, logger.OutputConfig) {
		logger.Debugw("configuration loaded",
			"files", config.ConfigFiles(),
			"verbosity", logger.LevelName(verbosity))
	}

	loaded, loadedViper = cfg, v
	return nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "failed to bind --%s", name)
		}
	}
	return nil
}

// addInputFlags registers the flags shared by commands that run the generator.
func addInputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("spdx", config.DefaultSPDXPath, "SPDX tag-value bill of materials")
	f.String("overrides", config.DefaultOverridesPath, "Override file (.toml, otherwise DEP5)")
	f.Bool("omit-no-copyright", false, "Leave out files whose copyright text is NONE or NOASSERTION")
	f.Bool("strict", false, "Fail on copyright statements that do not decompose")
	f.String("upstream-name", "", "Upstream-Name for the header paragraph")
	f.String("upstream-contact", "", "Upstream-Contact for the header paragraph")
	f.String("source", "", "Source for the header paragraph")
	f.Bool("detect-upstream", true, "Fill missing header fields from the git origin remote")
	addYearFlags(cmd)
}

func addYearFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Bool("allow-century-guess", false, "Read ascending two-digit ranges like 98-99 in the guessed century")
	f.Bool("allow-assuming-y2k-span", false, "Read descending two-digit ranges like 95-20 as 1995-2020")
	f.Bool("allow-mixed-size-implied-century-rollover", false, "Read ranges like 1998-02 as 1998-2002")
}
