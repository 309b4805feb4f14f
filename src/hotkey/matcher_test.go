package hotkey

import (
	"errors"
	"testing"
)

var fakeCodes = map[string][]uint16{
	"ctrl":  {1, 2},
	"shift": {3},
	"r":     {10},
	"f2":    {20},
}

func fakeCodesFor(name string) []uint16 { return fakeCodes[name] }

func TestMatcherFiresWhenAllHeld(t *testing.T) {
	m, err := newMatcher("Ctrl+R", fakeCodesFor)
	if err != nil {
		t.Fatal(err)
	}

	if m.press(10) {
		t.Fatal("r alone must not fire")
	}
	m.release(10)
	if m.press(2) {
		t.Fatal("right ctrl alone must not fire")
	}
	if !m.press(10) {
		t.Fatal("ctrl+r must fire")
	}
	if m.press(99) {
		t.Fatal("unrelated key must not fire")
	}
}

func TestMatcherResetsAfterFiring(t *testing.T) {
	m, err := newMatcher("ctrl+r", fakeCodesFor)
	if err != nil {
		t.Fatal(err)
	}
	m.press(1)
	if !m.press(10) {
		t.Fatal("expected first fire")
	}
	// Auto-repeat of r while ctrl is still physically held does not refire
	// until ctrl is pressed again.
	if m.press(10) {
		t.Fatal("expected no refire after reset")
	}
	m.press(1)
	if !m.press(10) {
		t.Fatal("expected fire after pressing both again")
	}
}

func TestMatcherUnknownKey(t *testing.T) {
	if _, err := newMatcher("ctrl+nope", fakeCodesFor); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("Expected ErrUnknownKey, got %v", err)
	}
	if _, err := newMatcher("", fakeCodesFor); !errors.Is(err, ErrEmptyHotkey) {
		t.Fatalf("Expected ErrEmptyHotkey, got %v", err)
	}
}
