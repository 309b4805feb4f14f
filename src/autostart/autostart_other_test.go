//go:build !windows

package autostart

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDesktopEntryShortcut(t *testing.T) {
	r := newTestRegistrar(t, nil)

	if _, err := r.EnsureRegistered(); err != nil {
		t.Fatalf("EnsureRegistered failed: %v", err)
	}
	if filepath.Ext(r.ShortcutPath()) != ".desktop" {
		t.Fatalf("Unexpected shortcut path %s", r.ShortcutPath())
	}

	entry, err := os.ReadFile(r.ShortcutPath())
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"[Desktop Entry]", "Name=floatshot", `Exec="` + r.LauncherPath() + `"`, "Path=" + r.ExeDir} {
		if !strings.Contains(string(entry), want) {
			t.Errorf("desktop entry missing %q:\n%s", want, entry)
		}
	}

	info, err := os.Stat(r.LauncherPath())
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0100 == 0 {
		t.Errorf("Launcher should be executable, mode %v", info.Mode())
	}
}

func TestDefaultStartupDirHonoursXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	dir, err := defaultStartupDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join("/tmp/xdg-test", "autostart") {
		t.Errorf("Unexpected startup dir %s", dir)
	}
}
