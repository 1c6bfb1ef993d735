package cfgfile

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/spnavcfg/internal/logging"
)

// VerificationOptions configures how SaveAndVerify re-reads the file
type VerificationOptions struct {
	// MaxRetries is the number of extra read-back attempts after the first
	// Default: 2
	MaxRetries int

	// RetryDelay is the delay between read-back attempts
	// Default: 100ms
	RetryDelay time.Duration
}

// DefaultVerificationOptions returns sensible defaults for verification
func DefaultVerificationOptions() *VerificationOptions {
	return &VerificationOptions{
		MaxRetries: 2,
		RetryDelay: 100 * time.Millisecond,
	}
}

// VerificationResult contains the results of a save-and-verify cycle
type VerificationResult struct {
	// Success indicates whether the file read back matches what was saved
	Success bool

	// Attempts is the number of read-back attempts made
	Attempts int

	// ActualConfig is the configuration read back from the file
	ActualConfig *Config

	// Mismatches lists every field that differs from the saved configuration
	Mismatches []string

	// Error is any error that occurred during save or verification
	Error error
}

// afterSave, when set, runs between the save and the first read-back.
var afterSave func(path string)

// SaveAndVerify saves cfg and reads the file back until it matches.
//
// A mismatch usually means another process (typically the daemon) wrote
// the file between our save and the read-back; last writer wins, so the
// retries only cover a writer that is still in flight.
func SaveAndVerify(path string, cfg *Config, opts *VerificationOptions) *VerificationResult {
	if opts == nil {
		opts = DefaultVerificationOptions()
	}

	result := &VerificationResult{Mismatches: []string{}}

	if err := Save(path, cfg); err != nil {
		result.Error = err
		return result
	}
	if afterSave != nil {
		afterSave(path)
	}

	for attempt := 0; attempt <= opts.MaxRetries; attempt++ {
		result.Attempts++
		if attempt > 0 {
			time.Sleep(opts.RetryDelay)
		}

		actual, problems, err := Inspect(path)
		if err != nil {
			result.Error = fmt.Errorf("attempt %d: failed to read back config: %w", attempt+1, err)
			continue
		}
		result.ActualConfig = actual

		mismatches := Diff(cfg, actual)
		if len(problems) > 0 {
			mismatches = append(mismatches, fmt.Sprintf("%d line(s) skipped while reading back", len(problems)))
		}
		result.Mismatches = mismatches

		if len(mismatches) == 0 {
			result.Success = true
			result.Error = nil
			return result
		}

		logging.Debug("Config read-back mismatch",
			zap.String("path", path),
			zap.Int("attempt", attempt+1),
			zap.Strings("mismatches", mismatches),
		)
		result.Error = fmt.Errorf("attempt %d: configuration mismatch", attempt+1)
	}

	return result
}

// Diff compares the fields the rc format can represent and describes each
// difference as "key: expected X, got Y". Sensitivities are compared
// exactly; Save writes them without losing precision.
func Diff(expected, actual *Config) []string {
	var mismatches []string

	for _, opt := range Options {
		want, _ := expected.Get(opt.Key)
		got, _ := actual.Get(opt.Key)

		same := want == got
		if w, ok := expected.floatOption(opt.Key); ok {
			g, _ := actual.floatOption(opt.Key)
			same = w == g
		}
		if !same {
			mismatches = append(mismatches, fmt.Sprintf("%s: expected %q, got %q", opt.Key, want, got))
		}
	}

	return mismatches
}

func (c *Config) floatOption(key string) (float64, bool) {
	switch key {
	case KeySensitivity:
		return c.Sensitivity, true
	case KeySensTranslation:
		return c.SensTranslation, true
	case KeySensRotation:
		return c.SensRotation, true
	default:
		return 0, false
	}
}
