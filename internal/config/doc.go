// Package config manages spnavcfg's own user preferences.
//
// This is not the spacenavd configuration (see package cfgfile); it is a
// small YAML file remembering which spnavrc to edit and how to display it.
//
// # Preferences File Location
//
//   - Linux: $XDG_CONFIG_HOME/spnavcfg/config.yaml or $HOME/.config/spnavcfg/config.yaml
//   - macOS: $HOME/.config/spnavcfg/config.yaml
//   - Windows: %LOCALAPPDATA%\spnavcfg\config.yaml
//
// # Usage Example
//
//	prefs, err := config.LoadDefault()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := prefs.Set(config.KeyOutputFormat, "compact"); err != nil {
//	    log.Fatal(err)
//	}
//	path, _ := config.GetPreferencesPath()
//	if err := prefs.Save(path); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// Save is serialized by a package mutex and replaces the file atomically.
package config
