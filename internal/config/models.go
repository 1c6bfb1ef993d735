package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Preferences represents the user's spnavcfg settings.
// These only affect the configurator; the daemon never reads them.
type Preferences struct {
	Version      int    `yaml:"version"`
	ConfigPath   string `yaml:"config_path,omitempty"`   // spnavrc to edit when --config is not given
	OutputFormat string `yaml:"output_format,omitempty"` // default for 'show --format'
	Color        *bool  `yaml:"color,omitempty"`         // nil: auto-detect terminal
	NoVerify     bool   `yaml:"no_verify,omitempty"`     // skip read-back after 'set'
}

// OutputFormats lists the accepted values for OutputFormat.
var OutputFormats = []string{"detailed", "compact", "json", "yaml", "toml"}

// Preference keys accepted by Set.
const (
	KeyConfigPath   = "config_path"
	KeyOutputFormat = "output_format"
	KeyColor        = "color"
	KeyNoVerify     = "no_verify"
)

// NewPreferences creates Preferences with default values.
func NewPreferences() *Preferences {
	return &Preferences{
		Version:      1,
		OutputFormat: "detailed",
	}
}

// UseColor reports whether styled output should be used.
// isTerminal is consulted only when the preference is unset.
func (p *Preferences) UseColor(isTerminal bool) bool {
	if p.Color != nil {
		return *p.Color
	}
	return isTerminal
}

// ValidateOutputFormat checks that format is one of OutputFormats.
func ValidateOutputFormat(format string) error {
	for _, f := range OutputFormats {
		if f == format {
			return nil
		}
	}
	return fmt.Errorf("unknown output format %q (use %s)", format, strings.Join(OutputFormats, ", "))
}

// Set updates one preference from its string form.
// An empty value resets the preference to its default.
func (p *Preferences) Set(key, value string) error {
	switch key {
	case KeyConfigPath:
		p.ConfigPath = strings.TrimSpace(value)

	case KeyOutputFormat:
		if value == "" {
			p.OutputFormat = "detailed"
			return nil
		}
		if err := ValidateOutputFormat(value); err != nil {
			return err
		}
		p.OutputFormat = value

	case KeyColor:
		if value == "" || value == "auto" {
			p.Color = nil
			return nil
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid color value (use true, false or auto): %w", err)
		}
		p.Color = &b

	case KeyNoVerify:
		if value == "" {
			p.NoVerify = false
			return nil
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid no_verify value (use true/false): %w", err)
		}
		p.NoVerify = b

	default:
		return fmt.Errorf("unknown preference %q", key)
	}

	return nil
}
