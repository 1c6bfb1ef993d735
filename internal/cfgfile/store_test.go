package cfgfile

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/muurk/spnavcfg/internal/logging"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	logging.SetLogger(zap.New(core))
	t.Cleanup(func() { logging.SetLogger(zap.NewNop()) })
	return logs
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	logs := observeLogs(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent"))
	if err == nil {
		t.Fatal("Load() error = nil, want file unavailable")
	}
	if !IsFileUnavailable(err) {
		t.Errorf("IsFileUnavailable(%v) = false", err)
	}
	if cfg == nil || *cfg != *DefaultConfig() {
		t.Error("Load() of missing file did not return defaults")
	}
	if logs.FilterLevelExact(zapcore.WarnLevel).Len() != 1 {
		t.Errorf("expected one warning, got %v", logs.All())
	}
}

func TestLoad_UnreadableFileUsesDefaults(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("directories cannot be opened as files on Windows")
	}
	logs := observeLogs(t)

	// opens fine, fails on the first read
	cfg, err := Load(t.TempDir())
	if !IsFileUnavailable(err) {
		t.Fatalf("IsFileUnavailable(%v) = false", err)
	}
	if cfg == nil || *cfg != *DefaultConfig() {
		t.Error("Load() of unreadable file did not return defaults")
	}
	if logs.FilterLevelExact(zapcore.WarnLevel).Len() != 1 {
		t.Errorf("expected one warning, got %v", logs.All())
	}

	_, problems, err := Inspect(t.TempDir())
	if !IsFileUnavailable(err) {
		t.Errorf("Inspect() error = %v, want file unavailable", err)
	}
	if len(problems) != 0 {
		t.Errorf("Inspect() problems = %v, want none", problems)
	}
}

func TestLoad_ParsesFile(t *testing.T) {
	observeLogs(t)
	path := filepath.Join(t.TempDir(), "spnavrc")
	writeFile(t, path, "sensitivity = 2.0\ninvert-trans = x\nswap-yz = true\nserial = /dev/ttyS3\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Sensitivity != 2.0 {
		t.Errorf("Sensitivity = %v, want 2.0", cfg.Sensitivity)
	}
	if want := [AxisCount]bool{true, true, true, false, true, true}; cfg.Invert != want {
		t.Errorf("Invert = %v, want %v", cfg.Invert, want)
	}
	if want := [AxisCount]int{0, 1, 2, 3, 4, 5}; cfg.AxisMap != want {
		t.Errorf("AxisMap = %v, want %v", cfg.AxisMap, want)
	}
	if cfg.SerialDevice != "/dev/ttyS3" {
		t.Errorf("SerialDevice = %q", cfg.SerialDevice)
	}
}

func TestLoad_LogsSkippedLines(t *testing.T) {
	logs := observeLogs(t)
	path := filepath.Join(t.TempDir(), "spnavrc")
	writeFile(t, path, "foo = bar\ndead-zone = 6\ndead-zone = abc\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DeadZone != 6 {
		t.Errorf("DeadZone = %d, want 6", cfg.DeadZone)
	}

	skipped := logs.FilterMessage("Skipping config line").All()
	if len(skipped) != 2 {
		t.Fatalf("got %d skipped-line warnings, want 2", len(skipped))
	}
	fields := skipped[0].ContextMap()
	if fields["line"] != int64(1) || fields["key"] != "foo" || fields["path"] != path {
		t.Errorf("first warning fields = %v", fields)
	}
}

func TestLoad_FreshConfigEachCall(t *testing.T) {
	observeLogs(t)
	path := filepath.Join(t.TempDir(), "spnavrc")
	writeFile(t, path, "dead-zone = 9\n")

	first, _ := Load(path)
	first.DeadZone = 100

	writeFile(t, path, "led = off\n")
	second, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if second.DeadZone != 2 {
		t.Errorf("DeadZone = %d, want default 2 (no reuse of earlier loads)", second.DeadZone)
	}
	if first == second {
		t.Error("Load() returned the same pointer twice")
	}
}

func TestInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spnavrc")
	writeFile(t, path, "led = off\nunknown-option 1\n")

	cfg, problems, err := Inspect(path)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if cfg.LED {
		t.Error("LED = true, want false")
	}
	if len(problems) != 1 || !IsUnknownKey(problems[0]) {
		t.Fatalf("problems = %v, want one unknown key", problems)
	}
	if !strings.Contains(problems[0].Error(), path+":2") {
		t.Errorf("error %q should mention %s:2", problems[0], path)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	observeLogs(t)
	path := filepath.Join(t.TempDir(), "spnavrc")

	cfg := DefaultConfig()
	cfg.Sensitivity = 1.5
	cfg.DeadZone = 4
	cfg.Invert[RotationY] = false
	cfg.SetSwapYZ(true)
	cfg.LED = false
	cfg.SerialDevice = "/dev/ttyUSB0"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch: %v", Diff(cfg, loaded))
	}
}

func TestSave_KeepsSensitivityPrecision(t *testing.T) {
	observeLogs(t)
	path := filepath.Join(t.TempDir(), "spnavrc")

	cfg, problems := Decode(strings.NewReader("sensitivity = 1.2345\nsensitivity-rotation = 0.0004\n"))
	if len(problems) != 0 {
		t.Fatalf("Decode() problems = %v", problems)
	}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Sensitivity != 1.2345 || loaded.SensRotation != 0.0004 {
		t.Errorf("sensitivity = %v, sensitivity-rotation = %v, want 1.2345 and 0.0004",
			loaded.Sensitivity, loaded.SensRotation)
	}
	if loaded.SensTranslation != 1 {
		t.Errorf("sensitivity-translation = %v, want 1", loaded.SensTranslation)
	}
}

func TestSave_OverwritesAndLeavesNoTempFiles(t *testing.T) {
	observeLogs(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "spnavrc")
	writeFile(t, path, strings.Repeat("# long old content\n", 200))

	if err := Save(path, DefaultConfig()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != string(DefaultConfig().Render()) {
		t.Errorf("file content =\n%s", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory contains %v, want only spnavrc", names)
	}
}

func TestSave_PreservesPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on Windows")
	}
	observeLogs(t)
	path := filepath.Join(t.TempDir(), "spnavrc")
	writeFile(t, path, "led = off\n")
	if err := os.Chmod(path, 0o600); err != nil {
		t.Fatalf("Chmod: %v", err)
	}

	if err := Save(path, DefaultConfig()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if fi.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", fi.Mode().Perm())
	}
}

func TestSave_NewFileMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on Windows")
	}
	observeLogs(t)
	path := filepath.Join(t.TempDir(), "spnavrc")

	if err := Save(path, DefaultConfig()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if fi.Mode().Perm() != defaultFileMode {
		t.Errorf("mode = %v, want %v", fi.Mode().Perm(), defaultFileMode)
	}
}

func TestSave_FailedCreateLeavesNoFile(t *testing.T) {
	observeLogs(t)
	dir := t.TempDir()
	// the file name itself is legal, but the temporary name next to it
	// exceeds NAME_MAX, so the write fails after the target is checked
	path := filepath.Join(dir, strings.Repeat("s", 245))

	err := Save(path, DefaultConfig())
	if !IsWriteFailed(err) {
		t.Fatalf("Save() error = %v, want write failure", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Stat(target) error = %v, want not exist", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("directory contains %d entries, want none", len(entries))
	}
}

func TestSave_FollowsSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on Windows")
	}
	observeLogs(t)
	dir := t.TempDir()
	target := filepath.Join(dir, "real-spnavrc")
	link := filepath.Join(dir, "spnavrc")
	writeFile(t, target, "")
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("Symlink: %v", err)
	}

	cfg := DefaultConfig()
	cfg.DeadZone = 11
	if err := Save(link, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	fi, err := os.Lstat(link)
	if err != nil {
		t.Fatalf("Lstat: %v", err)
	}
	if fi.Mode()&os.ModeSymlink == 0 {
		t.Error("Save replaced the symlink with a regular file")
	}
	loaded, _ := Load(target)
	if loaded.DeadZone != 11 {
		t.Errorf("DeadZone via target = %d, want 11", loaded.DeadZone)
	}
}

func TestSave_UnwritableLocation(t *testing.T) {
	logs := observeLogs(t)
	path := filepath.Join(t.TempDir(), "missing-dir", "spnavrc")

	err := Save(path, DefaultConfig())
	if err == nil {
		t.Fatal("Save() error = nil, want failure")
	}
	if !IsWriteFailed(err) {
		t.Errorf("IsWriteFailed(%v) = false", err)
	}
	if logs.FilterLevelExact(zapcore.ErrorLevel).Len() != 1 {
		t.Errorf("expected one error log, got %v", logs.All())
	}
}
