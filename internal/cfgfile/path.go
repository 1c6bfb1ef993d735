package cfgfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPath is where spacenavd looks for its configuration.
const DefaultPath = "/etc/spnavrc"

// ConfigPathEnvVar overrides DefaultPath when no explicit path is given.
const ConfigPathEnvVar = "SPNAV_CONFIG"

// ResolvePath picks the config file to use: the first non-blank candidate,
// then $SPNAV_CONFIG, then DefaultPath. A leading "~" is expanded and the
// result is made absolute.
func ResolvePath(candidates ...string) (string, error) {
	for _, c := range candidates {
		if strings.TrimSpace(c) != "" {
			return expandPath(c)
		}
	}
	if env := os.Getenv(ConfigPathEnvVar); strings.TrimSpace(env) != "" {
		return expandPath(env)
	}
	return DefaultPath, nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
