package cfgfile

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/muurk/spnavcfg/internal/logging"
)

// defaultFileMode is used for new config files.
const defaultFileMode os.FileMode = 0o644

// Load reads the config file at path on top of the built-in defaults.
//
// Load never fails hard. If the file cannot be opened or read it logs a warning and
// returns the defaults together with a *ConfigError of type
// ErrTypeFileUnavailable; callers may ignore that error and use the
// returned Config. Lines that cannot be applied are logged and skipped.
//
// Load holds a shared lock while reading, so it blocks while a Save is in
// progress and then reads the new contents.
func Load(path string) (*Config, error) {
	cfg, problems, err := Inspect(path)
	if err != nil {
		logging.Warn("Failed to read config file, using defaults",
			zap.String("path", path),
			zap.Error(errors.Unwrap(err)),
		)
		return cfg, err
	}

	for _, problem := range problems {
		var cfgErr *ConfigError
		if errors.As(problem, &cfgErr) {
			logging.LogSkippedLine(path, cfgErr.Line, cfgErr.Key, cfgErr.Message)
			continue
		}
		logging.Warn("Config file problem", zap.String("path", path), zap.Error(problem))
	}

	logging.Debug("Loaded config file",
		zap.String("path", path),
		zap.Int("skipped_lines", len(problems)),
	)
	return cfg, nil
}

// Inspect is Load without logging: it returns every skipped line as a
// *ConfigError alongside the resulting configuration.
func Inspect(path string) (*Config, []error, error) {
	cfg := DefaultConfig()

	lf, err := openLocked(path, os.O_RDONLY, lockShared)
	if err != nil {
		return cfg, nil, &ConfigError{
			Type:    ErrTypeFileUnavailable,
			Message: "failed to open config file, using defaults",
			Path:    path,
			Err:     err,
		}
	}
	defer lf.Close()

	problems, err := decodeInto(cfg, lf, path)
	if err != nil {
		return DefaultConfig(), nil, &ConfigError{
			Type:    ErrTypeFileUnavailable,
			Message: "failed to read config file, using defaults",
			Path:    path,
			Err:     err,
		}
	}
	return cfg, problems, nil
}

// Save writes cfg to path in canonical form.
//
// The file is exclusively locked, the new text is written to a temporary
// file in the same directory and renamed over the original, so readers see
// either the old or the new contents and never a truncated file.
func Save(path string, cfg *Config) error {
	if err := writeLocked(path, cfg.Render()); err != nil {
		logging.Error("Failed to write config file",
			zap.String("path", path),
			zap.Error(err),
		)
		return err
	}

	logging.Info("Saved config file", zap.String("path", path))
	return nil
}

// readLocked returns the raw contents of path under a shared lock.
// exists is false when the file does not exist.
func readLocked(path string) (data []byte, exists bool, err error) {
	lf, err := openLocked(path, os.O_RDONLY, lockShared)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, &ConfigError{
			Type:    ErrTypeFileUnavailable,
			Message: "failed to open config file",
			Path:    path,
			Err:     err,
		}
	}
	defer lf.Close()

	data, err = io.ReadAll(lf)
	if err != nil {
		return nil, true, &ConfigError{
			Type:    ErrTypeFileUnavailable,
			Message: "failed to read config file",
			Path:    path,
			Err:     err,
		}
	}
	return data, true, nil
}

// writeLocked atomically replaces path with data while holding an
// exclusive lock on the current file. A missing file is created by the
// rename alone, so no empty placeholder is ever visible.
func writeLocked(path string, data []byte) error {
	target := resolveTarget(path)

	perm := defaultFileMode
	if lockingSupported {
		lf, err := openLocked(target, os.O_RDWR, lockExclusive)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// nothing to lock until the rename creates it
		case err != nil:
			return &ConfigError{
				Type:    ErrTypeFileWriteFailed,
				Message: "failed to open config file for writing",
				Path:    path,
				Err:     err,
			}
		default:
			defer lf.Close()
			if fi, err := lf.Stat(); err == nil {
				perm = fi.Mode().Perm()
			}
		}
	} else if fi, err := os.Stat(target); err == nil {
		perm = fi.Mode().Perm()
	}

	if err := replaceFile(target, data, perm); err != nil {
		return &ConfigError{
			Type:    ErrTypeFileWriteFailed,
			Message: "failed to replace config file",
			Path:    path,
			Err:     err,
		}
	}
	return nil
}

// resolveTarget follows symlinks so that the file they point at is
// replaced rather than the link itself.
func resolveTarget(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return path
}

// removeLocked deletes path while holding an exclusive lock on it.
func removeLocked(path string) error {
	if lockingSupported {
		lf, err := openLocked(path, os.O_RDWR, lockExclusive)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return &ConfigError{Type: ErrTypeFileWriteFailed, Message: "failed to lock config file", Path: path, Err: err}
		}
		defer lf.Close()
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &ConfigError{Type: ErrTypeFileWriteFailed, Message: "failed to remove config file", Path: path, Err: err}
	}
	return nil
}

// swapLocked replaces path with data, or removes it when remove is set,
// but only while its content is still exactly expected. It reports whether
// the file was changed; a missing file is left alone.
func swapLocked(path string, expected, data []byte, remove bool) (bool, error) {
	target := resolveTarget(path)

	perm := defaultFileMode
	var current []byte
	if lockingSupported {
		lf, err := openLocked(target, os.O_RDWR, lockExclusive)
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		if err != nil {
			return false, &ConfigError{Type: ErrTypeFileWriteFailed, Message: "failed to lock config file", Path: path, Err: err}
		}
		defer lf.Close()

		if fi, err := lf.Stat(); err == nil {
			perm = fi.Mode().Perm()
		}
		if current, err = io.ReadAll(lf); err != nil {
			return false, &ConfigError{Type: ErrTypeFileUnavailable, Message: "failed to read config file", Path: path, Err: err}
		}
	} else {
		var err error
		current, err = os.ReadFile(target)
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		if err != nil {
			return false, &ConfigError{Type: ErrTypeFileUnavailable, Message: "failed to read config file", Path: path, Err: err}
		}
		if fi, err := os.Stat(target); err == nil {
			perm = fi.Mode().Perm()
		}
	}

	if !bytes.Equal(current, expected) {
		return false, nil
	}

	if remove {
		if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return false, &ConfigError{Type: ErrTypeFileWriteFailed, Message: "failed to remove config file", Path: path, Err: err}
		}
		return true, nil
	}
	if err := replaceFile(target, data, perm); err != nil {
		return false, &ConfigError{Type: ErrTypeFileWriteFailed, Message: "failed to replace config file", Path: path, Err: err}
	}
	return true, nil
}

// replaceFile writes data to a temporary file next to path and renames it
// into place.
func replaceFile(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			// Clean up temp file on error
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Chmod(perm); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpPath, path)
}
