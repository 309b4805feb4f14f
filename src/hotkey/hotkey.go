package hotkey

import (
	"errors"
	"strings"
)

var (
	ErrEmptyHotkey = errors.New("hotkey: empty combination")
	ErrUnknownKey  = errors.New("hotkey: unknown key")
)

// Modifier names in their canonical output order.
var modifierOrder = []string{"ctrl", "alt", "shift", "win"}

// Modifiers is the set of modifier keys held while a base key was pressed.
type Modifiers struct {
	Ctrl  bool
	Alt   bool
	Shift bool
	Win   bool
}

// Normalize lowercases a combination like "Ctrl+Shift+S", folds modifier
// aliases and orders modifiers ctrl, alt, shift, win ahead of the base keys.
// Blank parts are dropped; an all-blank input yields "".
func Normalize(hotkeyConfig string) string {
	var mods Modifiers
	var keys []string
	for _, part := range strings.Split(strings.ToLower(hotkeyConfig), "+") {
		part = canonicalName(strings.TrimSpace(part))
		switch part {
		case "":
		case "ctrl":
			mods.Ctrl = true
		case "alt":
			mods.Alt = true
		case "shift":
			mods.Shift = true
		case "win":
			mods.Win = true
		default:
			keys = append(keys, part)
		}
	}
	return strings.Join(append(mods.names(), keys...), "+")
}

// Compose builds a normalized combination from a captured key press. key is
// ignored when it names a modifier itself.
func Compose(mods Modifiers, key string) string {
	parts := mods.names()
	key = canonicalName(strings.ToLower(strings.TrimSpace(key)))
	if key != "" && !isModifier(key) {
		parts = append(parts, key)
	}
	return strings.Join(parts, "+")
}

// Parse splits a combination into normalized key names.
func Parse(hotkeyConfig string) ([]string, error) {
	normalized := Normalize(hotkeyConfig)
	if normalized == "" {
		return nil, ErrEmptyHotkey
	}
	return strings.Split(normalized, "+"), nil
}

func (m Modifiers) names() []string {
	held := []bool{m.Ctrl, m.Alt, m.Shift, m.Win}
	var out []string
	for i, on := range held {
		if on {
			out = append(out, modifierOrder[i])
		}
	}
	return out
}

func canonicalName(name string) string {
	switch name {
	case "control", "ctl":
		return "ctrl"
	case "option", "menu":
		return "alt"
	case "cmd", "super", "meta", "command", "windows":
		return "win"
	case "return":
		return "enter"
	case "escape":
		return "esc"
	}
	return name
}

func isModifier(name string) bool {
	for _, m := range modifierOrder {
		if name == m {
			return true
		}
	}
	return false
}
