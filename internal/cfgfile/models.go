package cfgfile

import "unicode/utf8"

const (
	// MaxButtons is the number of button slots in Config.ButtonMap.
	MaxButtons = 64

	// MaxPathLen bounds Config.SerialDevice, matching PATH_MAX on Linux.
	// Longer values are truncated to at most MaxPathLen-1 bytes, on a rune
	// boundary.
	MaxPathLen = 4096
)

// Built-in defaults. Arrays are values in Go, so handing these out copies them.
var (
	defaultInvert  = [AxisCount]bool{false, true, true, false, true, true}
	defaultAxisMap = [AxisCount]int{0, 2, 1, 3, 5, 4}
	identityAxes   = [AxisCount]int{0, 1, 2, 3, 4, 5}
)

const (
	defaultSensitivity = 1.0
	defaultDeadZone    = 2
)

// Config is the spacenav daemon configuration as stored in the rc file.
//
// A Config is not safe for concurrent mutation. Load always returns a fresh
// value that the caller owns.
type Config struct {
	Sensitivity     float64 // global motion multiplier
	SensTranslation float64 // extra multiplier for translation axes
	SensRotation    float64 // extra multiplier for rotation axes

	DeadZone int // motion below this magnitude is discarded as noise

	Invert  [AxisCount]bool // per-axis inversion, indexed by Axis
	AxisMap [AxisCount]int  // logical axis -> physical channel

	ButtonMap [MaxButtons]int // logical button -> reported button

	LED          bool   // device LED on/off
	SerialDevice string // serial device path; empty means auto-detect
}

// DefaultConfig returns a Config populated with the built-in defaults.
// It performs no I/O.
func DefaultConfig() *Config {
	cfg := &Config{
		Sensitivity:     defaultSensitivity,
		SensTranslation: defaultSensitivity,
		SensRotation:    defaultSensitivity,
		DeadZone:        defaultDeadZone,
		Invert:          defaultInvert,
		AxisMap:         defaultAxisMap,
		LED:             true,
	}
	for i := range cfg.ButtonMap {
		cfg.ButtonMap[i] = i
	}
	return cfg
}

// DefaultInvert returns the built-in per-axis inversion table.
func DefaultInvert() [AxisCount]bool {
	return defaultInvert
}

// DefaultAxisMap returns the built-in axis permutation (Y and Z swapped in
// both groups).
func DefaultAxisMap() [AxisCount]int {
	return defaultAxisMap
}

// Clone returns an independent copy of the configuration.
func (c *Config) Clone() *Config {
	dup := *c
	return &dup
}

// SwapYZ reports whether the axis map has Y and Z un-swapped relative to
// the default table. Only the TY slot is inspected, as the rc format
// cannot express anything finer.
func (c *Config) SwapYZ() bool {
	return c.AxisMap[TranslationY] != defaultAxisMap[TranslationY]
}

// SetSwapYZ selects between the identity axis map (true) and the default
// swapped map (false).
func (c *Config) SetSwapYZ(swap bool) {
	if swap {
		c.AxisMap = identityAxes
	} else {
		c.AxisMap = defaultAxisMap
	}
}

// InvertedFromDefault returns the letters ("x", "y", "z") of the axes in
// the given group whose inversion differs from the default. The group is
// selected by rotation: false for translation, true for rotation.
func (c *Config) InvertedFromDefault(rotation bool) string {
	first := TranslationX
	if rotation {
		first = RotationX
	}

	var letters []byte
	for a := first; a < first+3; a++ {
		if c.Invert[a] != defaultInvert[a] {
			letters = append(letters, a.Letter())
		}
	}
	return string(letters)
}

// toggleFromDefault flips each axis named in letters relative to its
// default. Repeating a letter, or a later line for the same group, does
// not flip it back.
func (c *Config) toggleFromDefault(rotation bool, letters string) {
	first := TranslationX
	if rotation {
		first = RotationX
	}
	for a := first; a < first+3; a++ {
		for i := 0; i < len(letters); i++ {
			if letters[i] == a.Letter() {
				c.Invert[a] = !defaultInvert[a]
				break
			}
		}
	}
}

// setSerialDevice stores dev, truncated so that it fits a PATH_MAX buffer.
// A multi-byte character that would be split is dropped whole.
func (c *Config) setSerialDevice(dev string) {
	if len(dev) >= MaxPathLen {
		cut := MaxPathLen - 1
		for cut > 0 && !utf8.RuneStart(dev[cut]) {
			cut--
		}
		dev = dev[:cut]
	}
	c.SerialDevice = dev
}
