package cfgfile

import "fmt"

// ValidateSensitivity checks that a motion multiplier is positive.
// Zero or negative multipliers load fine but freeze or reverse motion,
// and a negative value does not survive a save/load cycle because it does
// not start with a digit.
func ValidateSensitivity(key string, value float64) error {
	if value <= 0 {
		return NewValidationError(key, fmt.Sprintf("sensitivity must be positive, got %.3f", value))
	}
	return nil
}

// ValidateDeadZone checks that the dead zone is not negative.
func ValidateDeadZone(deadZone int) error {
	if deadZone < 0 {
		return NewValidationError(KeyDeadZone, fmt.Sprintf("dead zone must not be negative, got %d", deadZone))
	}
	return nil
}

// ValidateAxisMap checks that the axis map is a permutation of 0..5.
func ValidateAxisMap(axisMap [AxisCount]int) error {
	var seen [AxisCount]bool
	for i, ch := range axisMap {
		if ch < 0 || ch >= AxisCount {
			return NewValidationError(KeySwapYZ, fmt.Sprintf("axis %s maps to channel %d, must be 0-%d", Axis(i), ch, AxisCount-1))
		}
		if seen[ch] {
			return NewValidationError(KeySwapYZ, fmt.Sprintf("channel %d is mapped more than once", ch))
		}
		seen[ch] = true
	}
	return nil
}

// ValidateButtonMap checks that every button maps into the button range.
func ValidateButtonMap(buttonMap [MaxButtons]int) error {
	for i, b := range buttonMap {
		if b < 0 || b >= MaxButtons {
			return NewValidationError("button-map", fmt.Sprintf("button %d maps to %d, must be 0-%d", i, b, MaxButtons-1))
		}
	}
	return nil
}

// Validate reports values the daemon would accept but that are almost
// certainly mistakes. Load never calls it: bad values pass through exactly
// as written.
// Returns a slice of validation errors (empty if valid).
func Validate(cfg *Config) []error {
	var errors []error

	if err := ValidateSensitivity(KeySensitivity, cfg.Sensitivity); err != nil {
		errors = append(errors, err)
	}
	if err := ValidateSensitivity(KeySensTranslation, cfg.SensTranslation); err != nil {
		errors = append(errors, err)
	}
	if err := ValidateSensitivity(KeySensRotation, cfg.SensRotation); err != nil {
		errors = append(errors, err)
	}
	if err := ValidateDeadZone(cfg.DeadZone); err != nil {
		errors = append(errors, err)
	}
	if err := ValidateAxisMap(cfg.AxisMap); err != nil {
		errors = append(errors, err)
	}
	if err := ValidateButtonMap(cfg.ButtonMap); err != nil {
		errors = append(errors, err)
	}

	return errors
}
