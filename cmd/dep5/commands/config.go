package commands

import (
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/dep5/config"
	"github.com/teranos/dep5/errors"
)

// NewConfigCmd builds the config command and its subcommands.
func NewConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show and check dep5 configuration",
		Long: `Display and check dep5 configuration.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (DEP5_* prefix, e.g. DEP5_OUTPUT_STRICT=true)
3. Project config (dep5.toml, searched upward from the working directory)
4. User config (dep5/dep5.toml in the user config directory)
5. Default values

Examples:
  dep5 config show                    # Show current configuration
  dep5 config show --format json      # Show configuration in JSON format
  dep5 config get input.spdx          # Get specific config value
  dep5 config validate                # Validate current configuration
  dep5 config init                    # Write a dep5.toml with the defaults`,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
	showCmd.Flags().String("format", "toml", "Output format: toml, json, yaml")

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a specific configuration value",
		Long:  "Get a specific configuration value using dot notation (e.g., input.spdx, years.allow_century_guess)",
		Args:  cobra.ExactArgs(1),
		RunE:  runConfigGet,
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate current configuration",
		Args:  cobra.NoArgs,
		RunE:  runConfigValidate,
	}

	whereCmd := &cobra.Command{
		Use:   "where",
		Short: "List the configuration files that were merged",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			files := config.ConfigFiles()
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No configuration files found; using defaults and environment")
				return nil
			}
			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the resolved configuration to a dep5.toml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.FileName
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.Save(loaded, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
			return nil
		},
	}

	configCmd.AddCommand(showCmd, getCmd, validateCmd, whereCmd, initCmd)
	return configCmd
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out := cmd.OutOrStdout()

	switch format {
	case "json":
		data, err := json.MarshalIndent(loaded, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to JSON")
		}
		fmt.Fprintln(out, string(data))

	case "yaml":
		data, err := yaml.Marshal(loaded)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to YAML")
		}
		fmt.Fprintf(out, "# dep5 configuration\n%s", string(data))

	case "toml":
		data, err := toml.Marshal(loaded)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to TOML")
		}
		fmt.Fprintf(out, "# dep5 configuration\n%s", string(data))

	default:
		return errors.Wrapf(errors.ErrInvalidInput, "unsupported format: %s (supported: toml, json, yaml)", format)
	}

	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if !loadedViper.IsSet(key) {
		return errors.Wrapf(errors.ErrNotFound, "configuration key %q", key)
	}
	fmt.Fprintln(cmd.OutOrStdout(), loadedViper.Get(key))
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	if err := loaded.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration is valid")
	return nil
}
