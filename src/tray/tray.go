package tray

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Actions are invoked on the UI thread when a menu item is chosen.
type Actions struct {
	Capture      func()
	ChangeHotkey func()
	Quit         func()
}

// Tray is the system tray menu.
type Tray struct {
	menu    *fyne.Menu
	capture *fyne.MenuItem
}

// New builds the tray menu. It returns nil when app has no system tray.
func New(app fyne.App, hotkey string, actions Actions) *Tray {
	t := newTray(hotkey, actions)
	desk, ok := app.(desktop.App)
	if !ok {
		log.Printf("tray: system tray not supported by this driver")
		return nil
	}
	desk.SetSystemTrayIcon(Icon)
	desk.SetSystemTrayMenu(t.menu)
	log.Printf("tray: menu installed")
	return t
}

func newTray(hotkey string, actions Actions) *Tray {
	t := &Tray{}
	t.capture = fyne.NewMenuItem(captureLabel(hotkey), call("capture", actions.Capture))
	change := fyne.NewMenuItem("Change hotkey…", call("change hotkey", actions.ChangeHotkey))
	quit := fyne.NewMenuItem("Quit", call("quit", actions.Quit))
	quit.IsQuit = true
	t.menu = fyne.NewMenu("floatshot", t.capture, change, fyne.NewMenuItemSeparator(), quit)
	return t
}

// SetHotkey updates the hotkey shown next to the capture item. Must run on
// the UI thread.
func (t *Tray) SetHotkey(hotkey string) {
	if t == nil {
		return
	}
	t.capture.Label = captureLabel(hotkey)
	t.menu.Refresh()
}

func captureLabel(hotkey string) string {
	if hotkey == "" {
		return "Capture now"
	}
	return "Capture now (" + hotkey + ")"
}

func call(name string, f func()) func() {
	return func() {
		log.Printf("tray: %s", name)
		if f != nil {
			f()
		}
	}
}
