package cfgfile

import "strconv"

// Option names recognized in the rc file. Matching is exact and case-sensitive.
const (
	KeyDeadZone        = "dead-zone"
	KeySensitivity     = "sensitivity"
	KeySensTranslation = "sensitivity-translation"
	KeySensRotation    = "sensitivity-rotation"
	KeyInvertTrans     = "invert-trans"
	KeyInvertRot       = "invert-rot"
	KeySwapYZ          = "swap-yz"
	KeyLED             = "led"
	KeySerial          = "serial"
)

// Option describes one recognized rc file option.
type Option struct {
	Key         string
	Kind        string
	Description string
}

// Options lists every recognized option in the order Save writes them.
var Options = []Option{
	{KeySensitivity, "number", "sensitivity is multiplied with every motion (1.0 normal)"},
	{KeySensTranslation, "number", "separate sensitivity for translation"},
	{KeySensRotation, "number", "separate sensitivity for rotation"},
	{KeyDeadZone, "integer", "any motion less than this number is discarded as noise"},
	{KeyInvertTrans, "axes", "invert translations on some axes (any of x, y, z)"},
	{KeyInvertRot, "axes", "invert rotations around some axes (any of x, y, z)"},
	{KeySwapYZ, "boolean", "swap translation along Y and Z axes"},
	{KeyLED, "boolean", "device LED on or off"},
	{KeySerial, "path", "serial device (empty: auto-detect)"},
}

// LookupOption returns the option description for key.
func LookupOption(key string) (Option, bool) {
	for _, opt := range Options {
		if opt.Key == key {
			return opt, true
		}
	}
	return Option{}, false
}

// Set applies a single option the same way a config file line would.
// On error the configuration is left unchanged.
func (c *Config) Set(key, value string) error {
	if err := c.set(key, value); err != nil {
		return err
	}
	return nil
}

func (c *Config) set(key, value string) *ConfigError {
	isNum := value != "" && isDigit(value[0])

	switch key {
	case KeyDeadZone:
		if !isNum {
			return newTypeMismatchError(key, "a number")
		}
		n, err := leadingInt(value)
		if err != nil {
			e := newTypeMismatchError(key, "a number")
			e.Err = err
			return e
		}
		c.DeadZone = n

	case KeySensitivity, KeySensTranslation, KeySensRotation:
		if !isNum {
			return newTypeMismatchError(key, "a number")
		}
		f, err := leadingFloat(value)
		if err != nil {
			e := newTypeMismatchError(key, "a number")
			e.Err = err
			return e
		}
		switch key {
		case KeySensitivity:
			c.Sensitivity = f
		case KeySensTranslation:
			c.SensTranslation = f
		default:
			c.SensRotation = f
		}

	case KeyInvertTrans:
		c.toggleFromDefault(false, value)

	case KeyInvertRot:
		c.toggleFromDefault(true, value)

	case KeySwapYZ:
		swap, err := parseBool(key, value, isNum)
		if err != nil {
			return err
		}
		c.SetSwapYZ(swap)

	case KeyLED:
		on, err := parseBool(key, value, isNum)
		if err != nil {
			return err
		}
		c.LED = on

	case KeySerial:
		c.setSerialDevice(value)

	default:
		return newUnknownKeyError(key)
	}

	return nil
}

// Get returns the effective value of an option in the form Save would write it.
// Options Save would omit are still reported (e.g. "led" -> "1").
func (c *Config) Get(key string) (string, error) {
	switch key {
	case KeyDeadZone:
		return strconv.Itoa(c.DeadZone), nil
	case KeySensitivity:
		return formatFloat(c.Sensitivity), nil
	case KeySensTranslation:
		return formatFloat(c.SensTranslation), nil
	case KeySensRotation:
		return formatFloat(c.SensRotation), nil
	case KeyInvertTrans:
		return c.InvertedFromDefault(false), nil
	case KeyInvertRot:
		return c.InvertedFromDefault(true), nil
	case KeySwapYZ:
		return strconv.FormatBool(c.SwapYZ()), nil
	case KeyLED:
		if c.LED {
			return "1", nil
		}
		return "0", nil
	case KeySerial:
		return c.SerialDevice, nil
	default:
		return "", newUnknownKeyError(key)
	}
}

// formatFloat writes f with three decimals unless that would change its
// value, in which case the shortest exact decimal form is used.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', 3, 64)
	if back, err := strconv.ParseFloat(s, 64); err == nil && back == f {
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// parseBool accepts true/on/yes and false/off/no, or any integer (non-zero is true).
func parseBool(key, value string, isNum bool) (bool, *ConfigError) {
	if isNum {
		n, err := leadingInt(value)
		if err != nil {
			e := newTypeMismatchError(key, "a boolean value")
			e.Err = err
			return false, e
		}
		return n != 0, nil
	}

	switch value {
	case "true", "on", "yes":
		return true, nil
	case "false", "off", "no":
		return false, nil
	default:
		return false, newTypeMismatchError(key, "a boolean value")
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// leadingInt parses the run of digits at the start of s, ignoring the rest
// ("12px" is 12).
func leadingInt(s string) (int, error) {
	n := 0
	for n < len(s) && isDigit(s[n]) {
		n++
	}
	return strconv.Atoi(s[:n])
}

// leadingFloat parses the longest decimal float prefix of s
// (digits, optional fraction, optional exponent).
func leadingFloat(s string) (float64, error) {
	n := 0
	for n < len(s) && isDigit(s[n]) {
		n++
	}
	if n < len(s) && s[n] == '.' {
		n++
		for n < len(s) && isDigit(s[n]) {
			n++
		}
	}
	if n < len(s) && (s[n] == 'e' || s[n] == 'E') {
		m := n + 1
		if m < len(s) && (s[m] == '+' || s[m] == '-') {
			m++
		}
		if m < len(s) && isDigit(s[m]) {
			for m < len(s) && isDigit(s[m]) {
				m++
			}
			n = m
		}
	}
	return strconv.ParseFloat(s[:n], 64)
}
