//go:build !windows

package hotkey

import (
	"log"

	gohook "github.com/robotn/gohook"
)

// Outside Windows, Rawcode carries X keysyms that change with the shift state,
// so matching uses the portable uiohook Keycode instead.
func eventCode(ev gohook.Event) uint16 { return ev.Keycode }

// hookNames maps normalized names onto gohook's keycode table names. Modifiers
// list both the left and right variants.
var hookNames = map[string][]string{
	"ctrl":        {"ctrl", "rctrl"},
	"alt":         {"alt", "ralt"},
	"shift":       {"shift", "rshift"},
	"win":         {"cmd", "rcmd"},
	"del":         {"delete"},
	"ins":         {"insert"},
	"pgup":        {"pageup"},
	"pgdn":        {"pagedown"},
	"printscreen": {"print"},
}

func keyNameToCodes(name string) []uint16 {
	aliases, ok := hookNames[name]
	if !ok {
		aliases = []string{name}
	}
	var codes []uint16
	for _, alias := range aliases {
		if code, ok := gohook.Keycode[alias]; ok {
			codes = append(codes, code)
		}
	}
	if len(codes) == 0 {
		log.Printf("WARNING: Unknown key name '%s', cannot map to keycode", name)
	}
	return codes
}
