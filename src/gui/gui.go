package gui

import (
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"floatshot/src/hotkey"
)

// HotkeyCapture turns a stream of key down/up events into a combination.
// It is complete once a non-modifier key went down.
type HotkeyCapture struct {
	mods  hotkey.Modifiers
	combo string
}

// KeyDown records a press and returns the combination when name completes
// it.
func (c *HotkeyCapture) KeyDown(name fyne.KeyName) (string, bool) {
	if setModifier(&c.mods, name, true) {
		return "", false
	}
	key := baseKeyName(name)
	if key == "" {
		return "", false
	}
	c.combo = hotkey.Compose(c.mods, key)
	return c.combo, true
}

// KeyUp records a release.
func (c *HotkeyCapture) KeyUp(name fyne.KeyName) {
	setModifier(&c.mods, name, false)
}

// Combo is the last completed combination, or "".
func (c *HotkeyCapture) Combo() string { return c.combo }

// Pending is the modifier prefix held right now, for display.
func (c *HotkeyCapture) Pending() string { return hotkey.Compose(c.mods, "") }

func setModifier(m *hotkey.Modifiers, name fyne.KeyName, down bool) bool {
	switch name {
	case desktop.KeyControlLeft, desktop.KeyControlRight:
		m.Ctrl = down
	case desktop.KeyAltLeft, desktop.KeyAltRight:
		m.Alt = down
	case desktop.KeyShiftLeft, desktop.KeyShiftRight:
		m.Shift = down
	case desktop.KeySuperLeft, desktop.KeySuperRight:
		m.Win = down
	default:
		return false
	}
	return true
}

// baseKeyName maps a toolkit key name onto the hotkey vocabulary; "" means
// the key cannot be bound.
func baseKeyName(name fyne.KeyName) string {
	switch name {
	case fyne.KeyEscape, desktop.KeyMenu, fyne.KeyUnknown:
		return ""
	case fyne.KeyReturn, fyne.KeyEnter:
		return "enter"
	case fyne.KeyPageUp:
		return "pageup"
	case fyne.KeyPageDown:
		return "pagedown"
	case desktop.KeyPrintScreen:
		return "printscreen"
	}
	return strings.ToLower(string(name))
}

// ShowHotkeyDialog asks the user for a capture hotkey. onChosen receives the
// normalized combination when OK is pressed. With allowCancel false the
// dialog offers no way out other than choosing.
func ShowHotkeyDialog(app fyne.App, current string, allowCancel bool, onChosen func(string)) fyne.Window {
	w := app.NewWindow("floatshot: choose hotkey")

	var capture HotkeyCapture
	selected := widget.NewLabel("Selected: " + current)
	ok := widget.NewButton("OK", nil)
	ok.Importance = widget.HighImportance
	ok.Disable()

	done := false
	ok.OnTapped = func() {
		combo := capture.Combo()
		if combo == "" {
			return
		}
		done = true
		log.Printf("gui: hotkey chosen %s", combo)
		w.Close()
		if onChosen != nil {
			onChosen(combo)
		}
	}

	buttons := container.NewHBox(ok)
	if allowCancel {
		buttons.Add(widget.NewButton("Cancel", func() {
			done = true
			w.Close()
		}))
	}

	w.SetContent(container.NewVBox(
		widget.NewLabel("Press the key combination that starts a capture."),
		selected,
		container.NewCenter(buttons),
	))

	if dc, isDesktop := w.Canvas().(desktop.Canvas); isDesktop {
		dc.SetOnKeyDown(func(ev *fyne.KeyEvent) {
			if combo, complete := capture.KeyDown(ev.Name); complete {
				selected.SetText("Selected: " + combo)
				ok.Enable()
				return
			}
			if pending := capture.Pending(); pending != "" {
				selected.SetText("Selected: " + pending + "+")
			}
		})
		dc.SetOnKeyUp(func(ev *fyne.KeyEvent) { capture.KeyUp(ev.Name) })
	}

	w.SetCloseIntercept(func() {
		if !allowCancel && !done {
			log.Printf("gui: hotkey dialog requires a choice")
			return
		}
		w.Close()
	})

	w.Resize(fyne.NewSize(360, 140))
	w.SetFixedSize(true)
	w.CenterOnScreen()
	w.Show()
	w.RequestFocus()
	return w
}
