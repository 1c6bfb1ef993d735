package cfgfile

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestRollbackManager_SnapshotAndRollback(t *testing.T) {
	observeLogs(t)
	path := filepath.Join(t.TempDir(), "spnavrc")
	original := "# hand written\nled = off\nmystery-option 3\n"
	writeFile(t, path, original)

	rm := NewRollbackManager(path)
	if err := rm.SaveSnapshot("before test"); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}
	if rm.SnapshotCount() != 1 {
		t.Fatalf("SnapshotCount() = %d, want 1", rm.SnapshotCount())
	}
	snap := rm.GetLatestSnapshot()
	if snap == nil || !snap.Existed || string(snap.Data) != original || snap.Description != "before test" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	if err := Save(path, DefaultConfig()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := rm.Rollback(); err != nil {
		t.Fatalf("Rollback() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != original {
		t.Errorf("restored content = %q, want %q", data, original)
	}
	if rm.SnapshotCount() != 0 {
		t.Errorf("SnapshotCount() = %d after rollback, want 0", rm.SnapshotCount())
	}
}

func TestRollbackManager_NoSnapshots(t *testing.T) {
	rm := NewRollbackManager(filepath.Join(t.TempDir(), "spnavrc"))
	if rm.GetLatestSnapshot() != nil {
		t.Error("GetLatestSnapshot() should be nil")
	}
	if err := rm.Rollback(); err == nil {
		t.Error("Rollback() with no snapshots should fail")
	}
}

func TestRollbackManager_MissingFileRestoresAbsence(t *testing.T) {
	observeLogs(t)
	path := filepath.Join(t.TempDir(), "spnavrc")

	rm := NewRollbackManager(path)
	if err := rm.SaveSnapshot("initial"); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}
	if rm.GetLatestSnapshot().Existed {
		t.Error("snapshot of a missing file should have Existed=false")
	}

	if err := Save(path, DefaultConfig()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := rm.Rollback(); err != nil {
		t.Fatalf("Rollback() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file should be gone after rollback, stat err = %v", err)
	}
}

func TestRollbackManager_HistoryLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spnavrc")
	writeFile(t, path, "led = off\n")

	rm := NewRollbackManager(path)
	for i := 0; i < 15; i++ {
		if err := rm.SaveSnapshot("snap"); err != nil {
			t.Fatalf("SaveSnapshot() error = %v", err)
		}
	}
	if rm.SnapshotCount() != 10 {
		t.Errorf("SnapshotCount() = %d, want 10", rm.SnapshotCount())
	}
}

func TestUpdateWithRollback(t *testing.T) {
	observeLogs(t)
	path := filepath.Join(t.TempDir(), "spnavrc")
	writeFile(t, path, "dead-zone = 3\n")

	rm := NewRollbackManager(path)

	good := DefaultConfig()
	good.DeadZone = 8
	result := rm.UpdateWithRollback(good, "set dead-zone", nil)
	if !result.Success {
		t.Fatalf("expected success, got %v", result.Error)
	}
	if cfg, _ := Load(path); cfg.DeadZone != 8 {
		t.Errorf("DeadZone = %d, want 8", cfg.DeadZone)
	}

	bad := DefaultConfig()
	bad.DeadZone = -1
	result = rm.UpdateWithRollback(bad, "set negative dead-zone", &VerificationOptions{RetryDelay: time.Millisecond})
	if result.Success {
		t.Fatal("expected failure for a value that does not read back")
	}
	if cfg, _ := Load(path); cfg.DeadZone != 8 {
		t.Errorf("DeadZone = %d after rollback, want 8", cfg.DeadZone)
	}
}

func TestUpdateWithRollback_KeepsConcurrentWrite(t *testing.T) {
	observeLogs(t)
	path := filepath.Join(t.TempDir(), "spnavrc")
	writeFile(t, path, "dead-zone = 3\n")

	// another writer replaces the file right after our save
	other := DefaultConfig()
	other.DeadZone = 12
	afterSave = func(p string) {
		if err := Save(p, other); err != nil {
			t.Errorf("concurrent Save() error = %v", err)
		}
	}
	t.Cleanup(func() { afterSave = nil })

	rm := NewRollbackManager(path)
	mine := DefaultConfig()
	mine.DeadZone = 5
	result := rm.UpdateWithRollback(mine, "set dead-zone", &VerificationOptions{RetryDelay: time.Millisecond})
	if result.Success {
		t.Fatal("expected failure when another writer replaced the file")
	}
	if !IsConflict(result.Error) {
		t.Errorf("IsConflict(%v) = false", result.Error)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != string(other.Render()) {
		t.Errorf("file content =\n%s\nwant the other writer's content", data)
	}
	if rm.SnapshotCount() != 0 {
		t.Errorf("SnapshotCount() = %d, want 0", rm.SnapshotCount())
	}
}

func TestUpdateWithRollback_SaveFailureRestoresNothing(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("needs a directory the current user cannot write to")
	}
	observeLogs(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "spnavrc")
	writeFile(t, path, "dead-zone = 3\n")
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatalf("Chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	rm := NewRollbackManager(path)
	result := rm.UpdateWithRollback(DefaultConfig(), "reset", nil)
	if result.Success || result.Attempts != 0 {
		t.Fatalf("Success = %v, Attempts = %d, want a failed save", result.Success, result.Attempts)
	}
	if !IsWriteFailed(result.Error) {
		t.Errorf("IsWriteFailed(%v) = false", result.Error)
	}
	if strings.Contains(result.Error.Error(), "rollback failed") {
		t.Errorf("error %q reports a rollback, want none attempted", result.Error)
	}
	if rm.SnapshotCount() != 0 {
		t.Errorf("SnapshotCount() = %d, want 0", rm.SnapshotCount())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "dead-zone = 3\n" {
		t.Errorf("file content = %q, want it untouched", data)
	}
}

func TestRollbackIfUnchanged(t *testing.T) {
	observeLogs(t)
	path := filepath.Join(t.TempDir(), "spnavrc")
	original := "led = off\n"
	writeFile(t, path, original)

	rm := NewRollbackManager(path)
	if err := rm.SaveSnapshot("first"); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}
	mine := DefaultConfig()
	mine.DeadZone = 6
	if err := Save(path, mine); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	restored, err := rm.RollbackIfUnchanged([]byte("something else\n"))
	if err != nil || restored {
		t.Fatalf("RollbackIfUnchanged(other) = %v, %v, want false, nil", restored, err)
	}
	if data, _ := os.ReadFile(path); string(data) != string(mine.Render()) {
		t.Errorf("file was changed despite different content:\n%s", data)
	}

	if err := rm.SaveSnapshot("second"); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}
	// the snapshot now holds mine; write something and roll it back
	writeFile(t, path, "dead-zone = 9\n")
	restored, err = rm.RollbackIfUnchanged([]byte("dead-zone = 9\n"))
	if err != nil || !restored {
		t.Fatalf("RollbackIfUnchanged(current) = %v, %v, want true, nil", restored, err)
	}
	if data, _ := os.ReadFile(path); string(data) != string(mine.Render()) {
		t.Errorf("restored content =\n%s", data)
	}
}
