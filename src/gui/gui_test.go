package gui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
)

func TestHotkeyCapture(t *testing.T) {
	tests := []struct {
		name string
		keys []fyne.KeyName
		want string
	}{
		{"plain key", []fyne.KeyName{fyne.KeyF2}, "f2"},
		{"ctrl+r", []fyne.KeyName{desktop.KeyControlLeft, fyne.KeyR}, "ctrl+r"},
		{"modifier order", []fyne.KeyName{desktop.KeyShiftRight, desktop.KeyControlLeft, fyne.KeyS}, "ctrl+shift+s"},
		{"super", []fyne.KeyName{desktop.KeySuperLeft, fyne.Key1}, "win+1"},
		{"return", []fyne.KeyName{desktop.KeyAltLeft, fyne.KeyReturn}, "alt+enter"},
		{"print screen", []fyne.KeyName{desktop.KeyPrintScreen}, "printscreen"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c HotkeyCapture
			var got string
			for _, k := range tt.keys {
				if combo, ok := c.KeyDown(k); ok {
					got = combo
				}
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestHotkeyCaptureModifiersOnly(t *testing.T) {
	var c HotkeyCapture
	if _, ok := c.KeyDown(desktop.KeyControlLeft); ok {
		t.Fatal("Modifier alone must not complete a combination")
	}
	if got := c.Pending(); got != "ctrl" {
		t.Errorf("Expected pending ctrl, got %q", got)
	}
	c.KeyUp(desktop.KeyControlLeft)
	if got := c.Pending(); got != "" {
		t.Errorf("Expected nothing pending, got %q", got)
	}
	if _, ok := c.KeyDown(fyne.KeyEscape); ok {
		t.Error("Escape must not be bindable")
	}
	if c.Combo() != "" {
		t.Errorf("Expected no combo, got %q", c.Combo())
	}
}

func TestHotkeyCaptureReleaseDropsModifier(t *testing.T) {
	var c HotkeyCapture
	c.KeyDown(desktop.KeyControlLeft)
	c.KeyUp(desktop.KeyControlLeft)
	if combo, _ := c.KeyDown(fyne.KeyR); combo != "r" {
		t.Errorf("Expected released ctrl to be dropped, got %q", combo)
	}
}

func TestShowHotkeyDialog(t *testing.T) {
	app := test.NewTempApp(t)
	w := ShowHotkeyDialog(app, "ctrl+r", true, func(string) {
		t.Error("onChosen must not fire without a choice")
	})
	if w == nil {
		t.Fatal("Expected a window")
	}
	w.Close()
}
