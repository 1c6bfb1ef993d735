package main

import (
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/muurk/spnavcfg/internal/cfgfile"
)

// encodeSettings renders s in one of the structured output formats.
func encodeSettings(format string, s cfgfile.Settings) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return append(data, '\n'), nil

	case "yaml":
		data, err := yaml.Marshal(s)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return data, nil

	case "toml":
		data, err := toml.Marshal(s)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal TOML: %w", err)
		}
		return data, nil

	default:
		return nil, fmt.Errorf("unsupported structured format %q", format)
	}
}
