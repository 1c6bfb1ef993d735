package cfgfile

import (
	"fmt"
	"strings"
)

// Summary returns a one-line summary of the configuration
func (c *Config) Summary() string {
	serial := c.SerialDevice
	if serial == "" {
		serial = "auto"
	}
	return fmt.Sprintf("sens %.3f (T %.3f / R %.3f), dead-zone %d, swap-yz %v, led %s, serial %s",
		c.Sensitivity, c.SensTranslation, c.SensRotation, c.DeadZone, c.SwapYZ(), onOff(c.LED), serial)
}

// FormatAxes returns a table of per-axis inversion and mapping
func (c *Config) FormatAxes() string {
	var b strings.Builder

	b.WriteString("=== Axes ===\n")
	b.WriteString("Axis  Inverted  Channel\n")
	for _, a := range Axes {
		mark := ""
		if c.Invert[a] != defaultInvert[a] {
			mark = " *"
		}
		b.WriteString(fmt.Sprintf("%-4s  %-8v  %d%s\n", a, c.Invert[a], c.AxisMap[a], mark))
	}

	return b.String()
}

// FormatButtons lists buttons that are not mapped to themselves
func (c *Config) FormatButtons() string {
	var b strings.Builder

	b.WriteString("=== Buttons ===\n")
	remapped := 0
	for i, to := range c.ButtonMap {
		if to != i {
			b.WriteString(fmt.Sprintf("Button %2d -> %d\n", i, to))
			remapped++
		}
	}
	if remapped == 0 {
		b.WriteString(fmt.Sprintf("All %d buttons use the identity mapping\n", MaxButtons))
	}

	return b.String()
}

// FormatCompact returns a compact multi-line format suitable for terminal display
func (c *Config) FormatCompact() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Sensitivity: %.3f (translation %.3f, rotation %.3f)\n",
		c.Sensitivity, c.SensTranslation, c.SensRotation))
	b.WriteString(fmt.Sprintf("Dead zone:   %d\n", c.DeadZone))
	b.WriteString(fmt.Sprintf("Invert:      trans [%s] rot [%s]\n",
		dashIfEmpty(c.InvertedFromDefault(false)), dashIfEmpty(c.InvertedFromDefault(true))))
	b.WriteString(fmt.Sprintf("Swap Y/Z:    %v\n", c.SwapYZ()))
	b.WriteString(fmt.Sprintf("LED:         %s\n", onOff(c.LED)))
	b.WriteString(fmt.Sprintf("Serial:      %s\n", serialOrAuto(c.SerialDevice)))

	return b.String()
}

// FormatDetailed returns a comprehensive formatted string with all configuration details
func (c *Config) FormatDetailed() string {
	var b strings.Builder

	b.WriteString("=== Motion ===\n")
	b.WriteString(fmt.Sprintf("Sensitivity:             %.3f\n", c.Sensitivity))
	b.WriteString(fmt.Sprintf("Translation sensitivity: %.3f\n", c.SensTranslation))
	b.WriteString(fmt.Sprintf("Rotation sensitivity:    %.3f\n", c.SensRotation))
	b.WriteString(fmt.Sprintf("Dead zone:               %d\n", c.DeadZone))
	b.WriteString("\n")

	b.WriteString(c.FormatAxes())
	b.WriteString("(* differs from default)\n")
	b.WriteString("\n")

	b.WriteString(c.FormatButtons())
	b.WriteString("\n")

	b.WriteString("=== Device ===\n")
	b.WriteString(fmt.Sprintf("LED:    %s\n", onOff(c.LED)))
	b.WriteString(fmt.Sprintf("Serial: %s\n", serialOrAuto(c.SerialDevice)))

	return b.String()
}

// Settings is the flat, encoder-friendly view of a Config used by the
// structured output formats.
type Settings struct {
	Sensitivity     float64        `json:"sensitivity" yaml:"sensitivity" toml:"sensitivity"`
	SensTranslation float64        `json:"sensitivity_translation" yaml:"sensitivity_translation" toml:"sensitivity_translation"`
	SensRotation    float64        `json:"sensitivity_rotation" yaml:"sensitivity_rotation" toml:"sensitivity_rotation"`
	DeadZone        int            `json:"dead_zone" yaml:"dead_zone" toml:"dead_zone"`
	Invert          []bool         `json:"invert" yaml:"invert,flow" toml:"invert"`
	AxisMap         []int          `json:"axis_map" yaml:"axis_map,flow" toml:"axis_map"`
	SwapYZ          bool           `json:"swap_yz" yaml:"swap_yz" toml:"swap_yz"`
	LED             bool           `json:"led" yaml:"led" toml:"led"`
	SerialDevice    string         `json:"serial,omitempty" yaml:"serial,omitempty" toml:"serial,omitempty"`
	RemappedButtons map[string]int `json:"remapped_buttons,omitempty" yaml:"remapped_buttons,omitempty" toml:"remapped_buttons,omitempty"`
}

// Settings returns the encoder-friendly view of c.
func (c *Config) Settings() Settings {
	s := Settings{
		Sensitivity:     c.Sensitivity,
		SensTranslation: c.SensTranslation,
		SensRotation:    c.SensRotation,
		DeadZone:        c.DeadZone,
		Invert:          append([]bool(nil), c.Invert[:]...),
		AxisMap:         append([]int(nil), c.AxisMap[:]...),
		SwapYZ:          c.SwapYZ(),
		LED:             c.LED,
		SerialDevice:    c.SerialDevice,
	}
	for i, to := range c.ButtonMap {
		if to != i {
			if s.RemappedButtons == nil {
				s.RemappedButtons = make(map[string]int)
			}
			s.RemappedButtons[fmt.Sprint(i)] = to
		}
	}
	return s
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func serialOrAuto(dev string) string {
	if dev == "" {
		return "(auto-detect)"
	}
	return dev
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
