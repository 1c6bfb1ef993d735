package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	appName   = "spnavcfg"
	prefsFile = "config.yaml"
)

// Mutex for thread-safe file operations
var fileMutex sync.Mutex

// GetConfigDir returns the OS-appropriate configuration directory for spnavcfg.
// This follows platform conventions:
//   - Linux: $XDG_CONFIG_HOME/spnavcfg or $HOME/.config/spnavcfg
//   - macOS: $HOME/.config/spnavcfg (following XDG convention on macOS)
//   - Windows: %LOCALAPPDATA%\spnavcfg
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config", appName)

	default:
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// GetPreferencesPath returns the full path to the preferences file.
func GetPreferencesPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, prefsFile), nil
}

// LoadPreferences reads the preferences file at path.
// If the file doesn't exist, returns default preferences.
func LoadPreferences(path string) (*Preferences, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewPreferences(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read preferences file: %w", err)
	}

	prefs := NewPreferences()
	if err := yaml.Unmarshal(data, prefs); err != nil {
		return nil, fmt.Errorf("failed to parse preferences file: %w", err)
	}

	if prefs.Version != 1 {
		return nil, fmt.Errorf("unsupported preferences version: %d (expected 1)", prefs.Version)
	}
	if prefs.OutputFormat != "" {
		if err := ValidateOutputFormat(prefs.OutputFormat); err != nil {
			return nil, fmt.Errorf("invalid preferences file: %w", err)
		}
	}

	return prefs, nil
}

// LoadDefault loads preferences from GetPreferencesPath.
func LoadDefault() (*Preferences, error) {
	path, err := GetPreferencesPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences path: %w", err)
	}
	return LoadPreferences(path)
}

// Save writes the preferences to path, creating the directory if needed.
// Performs an atomic write to prevent corruption on crash.
func (p *Preferences) Save(path string) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	// Create directory with user-only permissions (0700)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	header := []byte(`# spnavcfg preferences
# These settings only affect the spnavcfg tool. Device settings live in
# the spacenavd config file (see 'spnavcfg path').

`)
	data = append(header, data...)

	// Write to temporary file first (atomic write)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary preferences file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save preferences file: %w", err)
	}

	return nil
}
