package cfgfile

import "fmt"

// Axis identifies one of the six degrees of freedom of the device.
// The numeric value is the index into Config.Invert and Config.AxisMap.
type Axis int

const (
	TranslationX Axis = iota
	TranslationY
	TranslationZ
	RotationX
	RotationY
	RotationZ
)

// AxisCount is the number of axes a 6-DOF device reports.
const AxisCount = 6

// Axes lists every axis in index order.
var Axes = [AxisCount]Axis{TranslationX, TranslationY, TranslationZ, RotationX, RotationY, RotationZ}

// String returns the short axis name used in diagnostics (e.g. "TX", "RZ").
func (a Axis) String() string {
	switch a {
	case TranslationX:
		return "TX"
	case TranslationY:
		return "TY"
	case TranslationZ:
		return "TZ"
	case RotationX:
		return "RX"
	case RotationY:
		return "RY"
	case RotationZ:
		return "RZ"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// IsRotation reports whether the axis belongs to the rotation group.
func (a Axis) IsRotation() bool {
	return a >= RotationX && a <= RotationZ
}

// Letter returns the lowercase coordinate letter used by the invert-trans
// and invert-rot options.
func (a Axis) Letter() byte {
	return "xyz"[int(a)%3]
}
