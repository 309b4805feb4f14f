package hotkey

import "strconv"

// functionKeyNumber reports n for names "f1".."f24".
func functionKeyNumber(name string) (int, bool) {
	if len(name) < 2 || name[0] != 'f' {
		return 0, false
	}
	n, err := strconv.Atoi(name[1:])
	if err != nil || n < 1 || n > 24 {
		return 0, false
	}
	return n, true
}
