package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
)

// Settings are the options that may come from command-line flags, the
// environment or the preferences file. Empty fields are unset.
type Settings struct {
	ConfigPath   string `env:"SPNAV_CONFIG"`
	LogLevel     string `env:"SPNAV_LOG_LEVEL"`
	OutputFormat string `env:"SPNAV_FORMAT"`
}

// SettingsBuilder layers Settings sources. Layers added first take
// precedence; a later layer only fills fields still empty.
type SettingsBuilder struct {
	layers []*Settings
	err    error
}

// NewSettingsBuilder returns an empty builder.
func NewSettingsBuilder() *SettingsBuilder {
	return &SettingsBuilder{layers: make([]*Settings, 0, 3)}
}

// WithFlags adds values given on the command line.
func (b *SettingsBuilder) WithFlags(flags Settings) *SettingsBuilder {
	b.layers = append(b.layers, &flags)
	return b
}

// WithEnv adds values from SPNAV_CONFIG, SPNAV_LOG_LEVEL and SPNAV_FORMAT.
func (b *SettingsBuilder) WithEnv() *SettingsBuilder {
	var s Settings
	if err := env.Parse(&s); err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("error reading environment: %w", err))
		return b
	}
	b.layers = append(b.layers, &s)
	return b
}

// WithPreferences adds the values stored in the preferences file.
func (b *SettingsBuilder) WithPreferences(p *Preferences) *SettingsBuilder {
	if p == nil {
		return b
	}
	b.layers = append(b.layers, &Settings{
		ConfigPath:   p.ConfigPath,
		OutputFormat: p.OutputFormat,
	})
	return b
}

// Build merges the layers and fills in defaults.
func (b *SettingsBuilder) Build() (*Settings, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occurred during building settings: %w", b.err)
	}

	s := new(Settings)
	for _, layer := range b.layers {
		if err := mergo.Merge(s, layer); err != nil {
			return nil, fmt.Errorf("error merging settings: %w", err)
		}
	}

	// OutputFormat is validated by show, not here
	if s.OutputFormat == "" {
		s.OutputFormat = "detailed"
	}

	return s, nil
}
