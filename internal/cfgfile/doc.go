// Package cfgfile reads and writes the spacenavd configuration file.
//
// The file (normally /etc/spnavrc) is shared by the spacenavd daemon and
// configurator tools such as spnavcfg. This package turns it into a Config
// value, applies built-in defaults for anything missing or unusable, and
// writes a Config back in the canonical commented form.
//
// # File Format
//
// One option per line; key and value are separated by any run of spaces,
// tabs, ':' or '='. Lines starting with '#' are comments:
//
//	# sensitivity is multiplied with every motion (1.0 normal).
//	sensitivity = 1.500
//	dead-zone: 4
//	invert-rot yz
//	swap-yz = true
//
// Only the first token after the key is used. There is no quoting, so a
// serial device path cannot contain spaces, ':' or '='.
//
// # Options
//
//   - sensitivity, sensitivity-translation, sensitivity-rotation: numbers
//   - dead-zone: integer
//   - invert-trans, invert-rot: any of the letters x, y, z; each letter
//     inverts that axis relative to the default (not relative to earlier lines)
//   - swap-yz: boolean; true selects the identity axis map
//   - led: boolean
//   - serial: device path
//
// Booleans are true/on/yes, false/off/no, or an integer. A value counts as
// a number only when its first character is a digit, so "-1" and ".5" are
// rejected for numeric options.
//
// # Error Handling
//
// Load never fails hard. Unreadable files yield the defaults plus an
// ErrTypeFileUnavailable error. Malformed lines, unknown options and
// values of the wrong kind are logged and skipped; the affected field
// keeps its previous value. Inspect returns those per-line errors instead
// of logging them.
//
// # Concurrency
//
// Load holds a shared fcntl lock on the whole file while reading and Save
// an exclusive one while writing; both block without timeout. Save writes
// a temporary file and renames it over the original, and both operations
// re-check after locking that they hold the file the path currently names.
// On Linux open file description locks are used so that goroutines of one
// process exclude each other; on other Unix systems classic POSIX locks
// only exclude other processes. Outside Unix there is no locking, only
// atomic replacement.
//
// # Usage Example
//
//	cfg, err := cfgfile.Load(cfgfile.DefaultPath)
//	if err != nil {
//	    // defaults are in effect; err says why
//	}
//	cfg.Set(cfgfile.KeyLED, "off")
//	if err := cfgfile.Save(cfgfile.DefaultPath, cfg); err != nil {
//	    log.Fatal(err)
//	}
package cfgfile
