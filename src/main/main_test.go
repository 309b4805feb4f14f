package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"floatshot/src/settings"
)

func TestResolveHotkeyFromStore(t *testing.T) {
	store := settings.New(filepath.Join(t.TempDir(), "settings.json"))
	if err := store.Save("Ctrl+Shift+S"); err != nil {
		t.Fatal(err)
	}

	combo, err := resolveHotkey(store, "alt+f1")
	if err != nil {
		t.Fatal(err)
	}
	if combo != "ctrl+shift+s" {
		t.Errorf("Expected stored hotkey, got %q", combo)
	}
}

func TestResolveHotkeyFallbackIsPersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	store := settings.New(path)

	combo, err := resolveHotkey(store, " Alt+F1 ")
	if err != nil {
		t.Fatal(err)
	}
	if combo != "alt+f1" {
		t.Errorf("Expected normalized fallback, got %q", combo)
	}
	if got, err := store.Load(); err != nil || got != "alt+f1" {
		t.Errorf("Expected fallback persisted, got %q, %v", got, err)
	}
}

func TestResolveHotkeyNeedsPrompt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := resolveHotkey(settings.New(path), "")
	if !errors.Is(err, settings.ErrNoHotkey) {
		t.Fatalf("Expected ErrNoHotkey, got %v", err)
	}
}
