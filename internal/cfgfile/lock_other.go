//go:build !unix

package cfgfile

import "os"

// No advisory locking outside Unix. Save still replaces the file atomically,
// so readers never see a partial file, but concurrent writers are not
// serialized.

func lockFile(f *os.File, mode lockMode, path string) error {
	return nil
}

func unlockFile(f *os.File) error {
	return nil
}

// Save skips holding the target open while renaming over it, which would
// fail with a sharing violation on Windows.
const lockingSupported = false
