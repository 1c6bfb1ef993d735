package cfgfile

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSummary(t *testing.T) {
	want := "sens 1.000 (T 1.000 / R 1.000), dead-zone 2, swap-yz false, led on, serial auto"
	if got := DefaultConfig().Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

func TestFormatCompact(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Invert[TranslationX] = true
	cfg.LED = false

	out := cfg.FormatCompact()
	for _, want := range []string{
		"Sensitivity: 1.000 (translation 1.000, rotation 1.000)",
		"Dead zone:   2",
		"Invert:      trans [x] rot [-]",
		"Swap Y/Z:    false",
		"LED:         off",
		"Serial:      (auto-detect)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatCompact() missing %q:\n%s", want, out)
		}
	}
}

func TestFormatDetailed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Invert[RotationY] = false
	cfg.ButtonMap[2] = 5
	cfg.SerialDevice = "/dev/ttyS0"

	out := cfg.FormatDetailed()
	for _, want := range []string{
		"=== Motion ===",
		"=== Axes ===",
		"RY    false     5 *",
		"TX    false     0\n",
		"Button  2 -> 5",
		"Serial: /dev/ttyS0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatDetailed() missing %q:\n%s", want, out)
		}
	}
}

func TestFormatButtons_Identity(t *testing.T) {
	out := DefaultConfig().FormatButtons()
	if !strings.Contains(out, "All 64 buttons use the identity mapping") {
		t.Errorf("FormatButtons() = %q", out)
	}
}

func TestSettings_JSON(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ButtonMap[1] = 0

	data, err := json.Marshal(cfg.Settings())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded["dead_zone"] != float64(2) {
		t.Errorf("dead_zone = %v", decoded["dead_zone"])
	}
	if _, ok := decoded["serial"]; ok {
		t.Error("empty serial should be omitted")
	}
	remapped, ok := decoded["remapped_buttons"].(map[string]any)
	if !ok || remapped["1"] != float64(0) {
		t.Errorf("remapped_buttons = %v", decoded["remapped_buttons"])
	}
}
