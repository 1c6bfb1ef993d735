// Spnavcfg is a command-line configurator for spacenavd.
//
// It reads and edits the daemon's configuration file (normally
// /etc/spnavrc) with the same parser the daemon uses, holding the file
// lock while doing so, and verifies every change by reading it back.
//
// Usage:
//
//	spnavcfg [command] [flags]
//
// See 'spnavcfg --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/spnavcfg/internal/cfgfile"
	"github.com/muurk/spnavcfg/internal/config"
	"github.com/muurk/spnavcfg/internal/logging"
	"github.com/muurk/spnavcfg/internal/ui"
	"github.com/muurk/spnavcfg/internal/version"
)

// Global flags
var (
	configPath string
	logLevel   string
	noColor    bool
)

// Loaded once in PersistentPreRunE.
var (
	prefs    = config.NewPreferences()
	settings = &config.Settings{OutputFormat: "detailed"}
)

func main() {
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "spnavcfg",
	Short: "spacenavd configuration utility",
	Long: `A command-line utility for viewing and editing the spacenavd configuration.

Changes are written atomically while holding the same advisory lock the
daemon takes, then read back to verify them. A failed verification
restores the previous file.`,
	Version:           version.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "spacenavd config file (default $SPNAV_CONFIG, preferences, or "+cfgfile.DefaultPath+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error, silent (default $"+logging.LogLevelEnvVar+" or warn)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(versionCmd)
}

// setup initializes logging, preferences and styling before every command.
func setup(cmd *cobra.Command, args []string) error {
	p, prefsErr := config.LoadDefault()
	if prefsErr == nil {
		prefs = p
	}

	s, err := config.NewSettingsBuilder().
		WithFlags(config.Settings{
			ConfigPath:   configPath,
			LogLevel:     logLevel,
			OutputFormat: showFormat,
		}).
		WithEnv().
		WithPreferences(prefs).
		Build()
	if err != nil {
		return err
	}
	settings = s

	if err := logging.Initialize(settings.LogLevel); err != nil {
		return err
	}
	if prefsErr != nil {
		logging.Warn("Ignoring unreadable preferences", zap.Error(prefsErr))
	}

	ui.SetColor(!noColor && prefs.UseColor(ui.IsTerminal()))
	return nil
}

// resolveConfigPath applies the lookup order --config, $SPNAV_CONFIG,
// preferences, then the system default.
func resolveConfigPath() (string, error) {
	return cfgfile.ResolvePath(settings.ConfigPath)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get()
		fmt.Fprintf(cmd.OutOrStdout(), "spnavcfg %s (%s, %s)\n", version.Full(), info.GoVersion, info.Platform)
	},
}
