package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/spnavcfg/internal/cfgfile"
	"github.com/muurk/spnavcfg/internal/config"
	"github.com/muurk/spnavcfg/internal/logging"
	"github.com/muurk/spnavcfg/internal/ui"
)

// Command flags
var (
	showFormat string
	noVerify   bool
	retries    int
	assumeYes  bool
)

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(optionsCmd)

	showCmd.Flags().StringVarP(&showFormat, "format", "f", "", "Output format ("+strings.Join(config.OutputFormats, ", ")+")")

	for _, cmd := range []*cobra.Command{setCmd, resetCmd} {
		cmd.Flags().BoolVar(&noVerify, "no-verify", false, "Skip read-back verification after saving")
		cmd.Flags().IntVar(&retries, "retries", 2, "Number of extra read-back attempts")
	}
	resetCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
}

// showCmd displays the effective configuration
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Display the configuration spacenavd would use.

Options missing from the file show their built-in defaults. If the file
cannot be read the defaults are shown and a warning is printed.`,
	Example: `  # Human-readable overview
  spnavcfg show

  # One screen summary
  spnavcfg show --format compact

  # Structured output for scripting
  spnavcfg show --format json
  spnavcfg show --format toml`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	format := settings.OutputFormat
	if err := config.ValidateOutputFormat(format); err != nil {
		return err
	}

	path, err := resolveConfigPath()
	if err != nil {
		return err
	}

	cfg, problems, loadErr := cfgfile.Inspect(path)
	out := cmd.OutOrStdout()
	human := format == "detailed" || format == "compact"

	if loadErr != nil {
		if human {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.NewWarningResult("Showing built-in defaults", hintLines(loadErr)...).Render())
		} else {
			logging.Warn("Failed to read config file, using defaults", zap.String("path", path), zap.Error(loadErr))
		}
	}

	switch format {
	case "compact":
		fmt.Fprint(out, cfg.FormatCompact())
	case "detailed":
		status := "loaded"
		if loadErr != nil {
			status = "not readable, built-in defaults"
		} else if len(problems) > 0 {
			status = fmt.Sprintf("loaded, %d line(s) skipped (see 'spnavcfg check')", len(problems))
		}
		fmt.Fprintln(out, ui.NewHeader("spacenavd configuration",
			ui.Param{Key: "File", Value: path},
			ui.Param{Key: "Status", Value: status},
		).Render())
		fmt.Fprintln(out)
		fmt.Fprint(out, cfg.FormatDetailed())
	default:
		data, err := encodeSettings(format, cfg.Settings())
		if err != nil {
			return err
		}
		if _, err := out.Write(data); err != nil {
			return err
		}
	}

	return nil
}

// getCmd prints one option
var getCmd = &cobra.Command{
	Use:   "get <option>",
	Short: "Print the effective value of one option",
	Example: `  spnavcfg get sensitivity
  spnavcfg get invert-rot`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}

		cfg, err := cfgfile.Load(path)
		if err != nil {
			logging.Debug("Reporting default value", zap.String("key", args[0]))
		}

		value, err := cfg.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

// setCmd changes one option
var setCmd = &cobra.Command{
	Use:   "set <option> <value>",
	Short: "Change one option",
	Long: `Change one option and save the configuration.

The value is parsed exactly as spacenavd parses the config file. After
saving, the file is read back and compared; on mismatch the previous file
is restored. Lines spacenavd does not recognize are not preserved.

For invert-trans and invert-rot the value lists the axes (x, y, z) that
are inverted relative to the default; use "-" for none.`,
	Example: `  spnavcfg set sensitivity 1.5
  spnavcfg set dead-zone 4
  spnavcfg set invert-rot xz
  spnavcfg set swap-yz true
  spnavcfg set led off`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

func runSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	path, err := resolveConfigPath()
	if err != nil {
		return err
	}

	cfg, err := loadForUpdate(cmd, path)
	if err != nil {
		return err
	}

	if opt, ok := cfgfile.LookupOption(key); ok && opt.Kind == "axes" {
		// Inversion is stored relative to the default, so start from it
		cfg.Invert = withDefaultInversion(cfg.Invert, key == cfgfile.KeyInvertRot)
		if value == "-" {
			value = ""
		}
	}

	if err := cfg.Set(key, value); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.NewFailureResult("Invalid value", err, hintLines(err)...).Render())
		return err
	}

	for _, warning := range cfgfile.Validate(cfg) {
		logging.Warn("Unusual value", zap.Error(warning))
	}

	return saveConfig(cmd, path, cfg, fmt.Sprintf("set %s %s", key, value))
}

// withDefaultInversion resets the translation or rotation half of inv.
func withDefaultInversion(inv [cfgfile.AxisCount]bool, rotation bool) [cfgfile.AxisCount]bool {
	def := cfgfile.DefaultInvert()
	for _, a := range cfgfile.Axes {
		if a.IsRotation() == rotation {
			inv[a] = def[a]
		}
	}
	return inv
}

// resetCmd writes the defaults
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore all options to their defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}

		if !assumeYes && !ui.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Reset configuration",
			"Every option in "+path+" returns to its default",
			"Comments and unrecognized lines are removed",
		) {
			return nil
		}

		return saveConfig(cmd, path, cfgfile.DefaultConfig(), "reset")
	},
}

// checkCmd reports problems in the config file
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report lines spacenavd would skip and unusual values",
	Long: `Parse the config file and list every line spacenavd would skip,
with the reason, followed by values outside the expected range.

Exits with a non-zero status when any problem is found.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}

		cfg, problems, err := cfgfile.Inspect(path)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.NewFailureResult("Cannot read "+path, err, hintLines(err)...).Render())
			return err
		}
		problems = append(problems, cfgfile.Validate(cfg)...)

		if len(problems) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), ui.NewSuccessResult("No problems found",
				ui.Param{Key: "File", Value: path},
				ui.Param{Key: "Summary", Value: cfg.Summary()},
			).Render())
			return nil
		}

		items := make([]string, 0, len(problems))
		for _, p := range problems {
			items = append(items, describeProblem(p))
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.NewWarningResult(fmt.Sprintf("%d problem(s) in %s", len(problems), path), items...).Render())
		return fmt.Errorf("%d problem(s) found", len(problems))
	},
}

// dumpCmd prints the canonical file text
var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the configuration in canonical config file form",
	Long: `Print the effective configuration exactly as 'set' would save it.

Useful for previewing how a hand-edited file will be normalized.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		cfg, _ := cfgfile.Load(path)
		return cfg.Encode(cmd.OutOrStdout())
	},
}

// pathCmd prints the resolved config path
var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

// optionsCmd lists the recognized options
var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the options spacenavd recognizes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, opt := range cfgfile.Options {
			fmt.Fprintf(out, "%-24s %-8s %s\n", opt.Key, opt.Kind, opt.Description)
		}
	},
}

// loadForUpdate reads the current file for modification. A missing file
// yields the defaults; any other read failure is returned so that an
// unreadable file is never replaced with defaults.
func loadForUpdate(cmd *cobra.Command, path string) (*cfgfile.Config, error) {
	cfg, problems, err := cfgfile.Inspect(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.Info("Config file does not exist yet, starting from defaults", zap.String("path", path))
			return cfg, nil
		}
		fmt.Fprintln(cmd.ErrOrStderr(), ui.NewFailureResult("Cannot read "+path, err, hintLines(err)...).Render())
		return nil, err
	}

	if len(problems) > 0 {
		items := make([]string, 0, len(problems))
		for _, p := range problems {
			items = append(items, describeProblem(p))
		}
		fmt.Fprintln(cmd.ErrOrStderr(), ui.NewWarningResult(
			fmt.Sprintf("%d unrecognized line(s) will be dropped", len(problems)), items...).Render())
	}
	return cfg, nil
}

// saveConfig writes cfg, verifying and rolling back unless disabled.
func saveConfig(cmd *cobra.Command, path string, cfg *cfgfile.Config, description string) error {
	out := cmd.OutOrStdout()

	if noVerify || prefs.NoVerify {
		if err := cfgfile.Save(path, cfg); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.NewFailureResult("Save failed", err, hintLines(err)...).Render())
			return err
		}
		fmt.Fprintln(out, ui.NewSuccessResult("Configuration saved (not verified)",
			ui.Param{Key: "File", Value: path},
			ui.Param{Key: "Summary", Value: cfg.Summary()},
		).Render())
		return nil
	}

	opts := cfgfile.DefaultVerificationOptions()
	opts.MaxRetries = retries

	result := cfgfile.NewRollbackManager(path).UpdateWithRollback(cfg, description, opts)
	if !result.Success {
		failure := ui.NewFailureResult("Configuration not applied", result.Error, hintLines(result.Error)...)
		failure.Items = result.Mismatches
		fmt.Fprintln(cmd.ErrOrStderr(), failure.Render())
		if result.Error != nil {
			return fmt.Errorf("%s: %w", description, result.Error)
		}
		return fmt.Errorf("%s: verification failed after %d attempt(s)", description, result.Attempts)
	}

	fmt.Fprintln(out, ui.NewSuccessResult("Configuration saved and verified",
		ui.Param{Key: "File", Value: path},
		ui.Param{Key: "Summary", Value: result.ActualConfig.Summary()},
		ui.Param{Key: "Attempts", Value: fmt.Sprint(result.Attempts)},
	).Render())
	return nil
}

// describeProblem formats a skipped line or validation problem for a list.
func describeProblem(err error) string {
	var cfgErr *cfgfile.ConfigError
	if !errors.As(err, &cfgErr) {
		return err.Error()
	}

	var b strings.Builder
	if cfgErr.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", cfgErr.Line)
	}
	b.WriteString(cfgErr.Message)
	if cfgErr.Key != "" && !strings.Contains(cfgErr.Message, cfgErr.Key) {
		fmt.Fprintf(&b, " (%s)", cfgErr.Key)
	}
	return b.String()
}

// hintLines turns GetTroubleshootingHint output into troubleshooting items.
func hintLines(err error) []string {
	if err == nil {
		return nil
	}

	var lines []string
	for _, line := range strings.Split(cfgfile.GetTroubleshootingHint(err), "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "• ")
		if line == "" || line == "Troubleshooting:" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
