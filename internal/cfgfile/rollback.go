package cfgfile

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/spnavcfg/internal/logging"
)

// Snapshot is the raw content of the config file at some point in time.
// Raw bytes are kept so that a restore also brings back hand-written
// comments and unknown options.
type Snapshot struct {
	// Path of the config file
	Path string

	// Data is the file content; nil when the file did not exist
	Data []byte

	// Existed records whether the file was present
	Existed bool

	// Timestamp when this snapshot was taken
	Timestamp time.Time

	// Description of what operation this snapshot was taken before
	Description string
}

// TakeSnapshot reads the current content of path under a shared lock.
// A missing file is not an error; restoring that snapshot removes the file.
func TakeSnapshot(path, description string) (*Snapshot, error) {
	data, existed, err := readLocked(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config for snapshot: %w", err)
	}
	return &Snapshot{
		Path:        path,
		Data:        data,
		Existed:     existed,
		Timestamp:   time.Now(),
		Description: description,
	}, nil
}

// Restore writes the snapshot back to its path.
func (s *Snapshot) Restore() error {
	logging.Info("Restoring config snapshot",
		zap.String("path", s.Path),
		zap.String("description", s.Description),
		zap.Time("taken", s.Timestamp),
	)

	if !s.Existed {
		return removeLocked(s.Path)
	}
	return writeLocked(s.Path, s.Data)
}

// RestoreIfUnchanged restores the snapshot only while the file still holds
// exactly current, and reports whether it did. Content written by someone
// else in the meantime is left in place.
func (s *Snapshot) RestoreIfUnchanged(current []byte) (bool, error) {
	restored, err := swapLocked(s.Path, current, s.Data, !s.Existed)
	if err != nil {
		return false, err
	}
	if restored {
		logging.Info("Restored config snapshot",
			zap.String("path", s.Path),
			zap.String("description", s.Description),
			zap.Time("taken", s.Timestamp),
		)
	}
	return restored, nil
}

// RollbackManager keeps a bounded history of snapshots for one config file
type RollbackManager struct {
	path string

	// snapshots stores configuration snapshots, oldest first
	snapshots []*Snapshot

	// maxSnapshots is the maximum number of snapshots to retain
	maxSnapshots int

	// mutex protects concurrent access to snapshots
	mutex sync.RWMutex
}

// NewRollbackManager creates a new rollback manager for the config file at path
func NewRollbackManager(path string) *RollbackManager {
	return &RollbackManager{
		path:         path,
		snapshots:    make([]*Snapshot, 0, 10),
		maxSnapshots: 10,
	}
}

// SaveSnapshot captures the current file content.
// This should be called before any configuration update
func (rm *RollbackManager) SaveSnapshot(description string) error {
	snapshot, err := TakeSnapshot(rm.path, description)
	if err != nil {
		return err
	}

	rm.mutex.Lock()
	defer rm.mutex.Unlock()

	rm.snapshots = append(rm.snapshots, snapshot)
	if len(rm.snapshots) > rm.maxSnapshots {
		rm.snapshots = rm.snapshots[1:]
	}

	return nil
}

// GetLatestSnapshot returns the most recent snapshot, or nil if no snapshots exist
func (rm *RollbackManager) GetLatestSnapshot() *Snapshot {
	rm.mutex.RLock()
	defer rm.mutex.RUnlock()

	if len(rm.snapshots) == 0 {
		return nil
	}
	return rm.snapshots[len(rm.snapshots)-1]
}

// SnapshotCount returns the number of retained snapshots
func (rm *RollbackManager) SnapshotCount() int {
	rm.mutex.RLock()
	defer rm.mutex.RUnlock()
	return len(rm.snapshots)
}

// Rollback restores the most recent snapshot and drops it from the history
func (rm *RollbackManager) Rollback() error {
	snapshot := rm.popSnapshot()
	if snapshot == nil {
		return fmt.Errorf("no snapshots available for rollback")
	}

	if err := snapshot.Restore(); err != nil {
		return fmt.Errorf("rollback failed: %w", err)
	}
	return nil
}

// RollbackIfUnchanged is Rollback guarded by the file content: the most
// recent snapshot is restored only if the file still holds exactly current.
// The snapshot is dropped either way.
func (rm *RollbackManager) RollbackIfUnchanged(current []byte) (bool, error) {
	snapshot := rm.popSnapshot()
	if snapshot == nil {
		return false, fmt.Errorf("no snapshots available for rollback")
	}

	restored, err := snapshot.RestoreIfUnchanged(current)
	if err != nil {
		return false, fmt.Errorf("rollback failed: %w", err)
	}
	return restored, nil
}

func (rm *RollbackManager) popSnapshot() *Snapshot {
	rm.mutex.Lock()
	defer rm.mutex.Unlock()

	if len(rm.snapshots) == 0 {
		return nil
	}
	snapshot := rm.snapshots[len(rm.snapshots)-1]
	rm.snapshots = rm.snapshots[:len(rm.snapshots)-1]
	return snapshot
}

// UpdateWithRollback snapshots the file, saves cfg and verifies it.
//
// When verification fails the snapshot is restored, but only if the file
// still holds what this update wrote. If another writer replaced it in the
// meantime its content is kept and the result carries an ErrTypeConflict
// error. A save that fails outright leaves the file untouched, so nothing
// is restored.
func (rm *RollbackManager) UpdateWithRollback(cfg *Config, description string, opts *VerificationOptions) *VerificationResult {
	if err := rm.SaveSnapshot(description); err != nil {
		return &VerificationResult{Error: err, Mismatches: []string{}}
	}

	written := cfg.Render()
	result := SaveAndVerify(rm.path, cfg, opts)
	if result.Success {
		return result
	}
	if result.Attempts == 0 {
		rm.popSnapshot()
		return result
	}

	logging.Warn("Config update not verified, rolling back",
		zap.String("path", rm.path),
		zap.Error(result.Error),
	)
	restored, err := rm.RollbackIfUnchanged(written)
	switch {
	case err != nil:
		result.Error = fmt.Errorf("%v; %w", result.Error, err)
	case !restored:
		logging.Warn("Config file was replaced by another writer, keeping its content",
			zap.String("path", rm.path),
		)
		result.Error = &ConfigError{
			Type:    ErrTypeConflict,
			Message: "config file was replaced by another writer, rollback skipped",
			Path:    rm.path,
			Err:     result.Error,
		}
	}
	return result
}
