package cfgfile

import (
	"bytes"
	"fmt"
	"io"
)

// Render returns the canonical config file text for c.
//
// Only settings that matter are written: invert-trans and invert-rot appear
// when some axis differs from the default, led only when it is off, serial
// only when set. swap-yz is always written.
func (c *Config) Render() []byte {
	var b bytes.Buffer

	b.WriteString("# sensitivity is multiplied with every motion (1.0 normal).\n")
	fmt.Fprintf(&b, "%s = %s\n\n", KeySensitivity, formatFloat(c.Sensitivity))

	b.WriteString("# separate sensitivity for rotation and translation.\n")
	fmt.Fprintf(&b, "%s = %s\n", KeySensTranslation, formatFloat(c.SensTranslation))
	fmt.Fprintf(&b, "%s = %s\n\n", KeySensRotation, formatFloat(c.SensRotation))

	b.WriteString("# dead zone; any motion less than this number, is discarded as noise.\n")
	fmt.Fprintf(&b, "%s = %d\n\n", KeyDeadZone, c.DeadZone)

	if letters := c.InvertedFromDefault(false); letters != "" {
		b.WriteString("# invert translations on some axes.\n")
		fmt.Fprintf(&b, "%s = %s\n\n", KeyInvertTrans, letters)
	}

	if letters := c.InvertedFromDefault(true); letters != "" {
		b.WriteString("# invert rotations around some axes.\n")
		fmt.Fprintf(&b, "%s = %s\n\n", KeyInvertRot, letters)
	}

	b.WriteString("# swap translation along Y and Z axes\n")
	fmt.Fprintf(&b, "%s = %t\n\n", KeySwapYZ, c.SwapYZ())

	if !c.LED {
		b.WriteString("# disable led\n")
		fmt.Fprintf(&b, "%s = 0\n\n", KeyLED)
	}

	if c.SerialDevice != "" {
		b.WriteString("# serial device\n")
		fmt.Fprintf(&b, "%s = %s\n\n", KeySerial, c.SerialDevice)
	}

	return b.Bytes()
}

// Encode writes the canonical config file text for c to w.
func (c *Config) Encode(w io.Writer) error {
	_, err := w.Write(c.Render())
	return err
}
