//go:build windows

package hotkey

import (
	"log"

	gohook "github.com/robotn/gohook"
)

// On Windows the hook reports virtual-key codes in Rawcode.
func eventCode(ev gohook.Event) uint16 { return ev.Rawcode }

var namedVirtualKeys = map[string][]uint16{
	"ctrl":  {162, 163}, // VK_LCONTROL, VK_RCONTROL
	"alt":   {164, 165}, // VK_LMENU, VK_RMENU
	"shift": {160, 161}, // VK_LSHIFT, VK_RSHIFT
	"win":   {91, 92},   // VK_LWIN, VK_RWIN

	"space":       {32},
	"enter":       {13},
	"esc":         {27},
	"tab":         {9},
	"backspace":   {8},
	"delete":      {46},
	"del":         {46},
	"insert":      {45},
	"ins":         {45},
	"home":        {36},
	"end":         {35},
	"pageup":      {33},
	"pgup":        {33},
	"pagedown":    {34},
	"pgdn":        {34},
	"left":        {37},
	"up":          {38},
	"right":       {39},
	"down":        {40},
	"print":       {44}, // VK_SNAPSHOT
	"printscreen": {44},
}

// keyNameToCodes maps a normalized key name to its Windows virtual-key codes.
// Modifiers return both left and right variants.
func keyNameToCodes(name string) []uint16 {
	if codes, ok := namedVirtualKeys[name]; ok {
		return codes
	}
	if len(name) == 1 {
		switch c := name[0]; {
		case c >= 'a' && c <= 'z':
			return []uint16{uint16('A' + c - 'a')} // VK 0x41-0x5A
		case c >= '0' && c <= '9':
			return []uint16{uint16(c)} // VK 0x30-0x39
		}
	}
	if n, ok := functionKeyNumber(name); ok {
		return []uint16{uint16(111 + n)} // VK_F1 = 112
	}
	log.Printf("WARNING: Unknown key name '%s', cannot map to rawcode", name)
	return nil
}
