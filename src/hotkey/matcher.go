package hotkey

import "fmt"

type keyState struct {
	name    string
	codes   []uint16
	pressed bool
}

// matcher tracks which keys of one combination are currently held.
type matcher struct {
	combo string
	keys  []keyState
}

func newMatcher(combo string, codesFor func(string) []uint16) (*matcher, error) {
	names, err := Parse(combo)
	if err != nil {
		return nil, err
	}
	m := &matcher{combo: Normalize(combo)}
	for _, name := range names {
		codes := codesFor(name)
		if len(codes) == 0 {
			return nil, fmt.Errorf("%w: %q in %q", ErrUnknownKey, name, combo)
		}
		m.keys = append(m.keys, keyState{name: name, codes: codes})
	}
	return m, nil
}

// press records a key-down and reports whether the full combination is now
// held. States reset after firing so holding the keys triggers once.
func (m *matcher) press(code uint16) bool {
	if !m.set(code, true) {
		return false
	}
	for i := range m.keys {
		if !m.keys[i].pressed {
			return false
		}
	}
	for i := range m.keys {
		m.keys[i].pressed = false
	}
	return true
}

func (m *matcher) release(code uint16) {
	m.set(code, false)
}

func (m *matcher) set(code uint16, pressed bool) bool {
	hit := false
	for i := range m.keys {
		for _, c := range m.keys[i].codes {
			if c == code {
				m.keys[i].pressed = pressed
				hit = true
				break
			}
		}
	}
	return hit
}
