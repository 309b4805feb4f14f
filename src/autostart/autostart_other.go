//go:build !windows

package autostart

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	shortcutExt = ".desktop"
	launcherExt = ".sh"
)

// defaultStartupDir is the XDG autostart directory.
func defaultStartupDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "autostart"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "autostart"), nil
}

func launcherScript(exeDir, exeName string) string {
	return fmt.Sprintf("#!/bin/sh\ncd \"%s\" || exit 1\nexec \"./%s\"\n", exeDir, exeName)
}

func writePlatformShortcut(shortcutPath, launcherPath, workDir string) error {
	name := filepath.Base(shortcutPath)
	name = name[:len(name)-len(shortcutExt)]
	entry := fmt.Sprintf("[Desktop Entry]\nType=Application\nName=%s\nExec=\"%s\"\nPath=%s\nTerminal=false\nX-GNOME-Autostart-enabled=true\n",
		name, launcherPath, workDir)
	return os.WriteFile(shortcutPath, []byte(entry), 0644)
}
