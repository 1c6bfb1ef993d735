package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/muurk/spnavcfg/internal/config"
	"github.com/muurk/spnavcfg/internal/ui"
)

func init() {
	prefsCmd.AddCommand(prefsShowCmd)
	prefsCmd.AddCommand(prefsSetCmd)
	rootCmd.AddCommand(prefsCmd)
}

// prefsCmd groups the spnavcfg preference commands
var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "View or change spnavcfg's own preferences",
	Long: `View or change preferences of the spnavcfg tool itself.

Preferences never affect spacenavd. Available keys:
  config_path    spacenavd config file to edit when --config is not given
  output_format  default format for 'show' (detailed, compact, json, yaml, toml)
  color          true, false or auto
  no_verify      skip read-back verification after 'set' and 'reset'`,
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetPreferencesPath()
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(prefs)
		if err != nil {
			return fmt.Errorf("failed to marshal preferences: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s\n", path)
		_, err = out.Write(data)
		return err
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Change a preference (omit the value to reset it)",
	Example: `  spnavcfg prefs set config_path ~/.config/spnavrc
  spnavcfg prefs set output_format compact
  spnavcfg prefs set color auto`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value := ""
		if len(args) == 2 {
			value = args[1]
		}

		if err := prefs.Set(args[0], value); err != nil {
			return err
		}

		path, err := config.GetPreferencesPath()
		if err != nil {
			return err
		}
		if err := prefs.Save(path); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.NewSuccessResult("Preference saved",
			ui.Param{Key: args[0], Value: displayValue(value)},
			ui.Param{Key: "File", Value: path},
		).Render())
		return nil
	},
}

func displayValue(v string) string {
	if v == "" {
		return "(default)"
	}
	return v
}
