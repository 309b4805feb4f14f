package autostart

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Registrar installs a launcher script plus a shortcut to it in the user's
// startup location so the program starts at login.
type Registrar struct {
	AppName    string
	ExeDir     string
	ExeName    string
	StartupDir string

	writeShortcut func(shortcutPath, launcherPath, workDir string) error
}

// New returns a Registrar for the running executable with platform defaults.
func New(appName string) (*Registrar, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("autostart: locate executable: %w", err)
	}
	startupDir, err := defaultStartupDir()
	if err != nil {
		return nil, fmt.Errorf("autostart: locate startup folder: %w", err)
	}
	return &Registrar{
		AppName:       appName,
		ExeDir:        filepath.Dir(exe),
		ExeName:       filepath.Base(exe),
		StartupDir:    startupDir,
		writeShortcut: writePlatformShortcut,
	}, nil
}

func (r *Registrar) ShortcutPath() string {
	return filepath.Join(r.StartupDir, r.AppName+shortcutExt)
}

func (r *Registrar) LauncherPath() string {
	return filepath.Join(r.ExeDir, "start_"+r.AppName+launcherExt)
}

// EnsureRegistered creates the launcher and shortcut unless the shortcut
// already exists. It reports whether anything was created.
func (r *Registrar) EnsureRegistered() (bool, error) {
	shortcut := r.ShortcutPath()
	if _, err := os.Stat(shortcut); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("autostart: stat %s: %w", shortcut, err)
	}

	launcher := r.LauncherPath()
	if err := os.WriteFile(launcher, []byte(launcherScript(r.ExeDir, r.ExeName)), 0755); err != nil {
		return false, fmt.Errorf("autostart: write launcher %s: %w", launcher, err)
	}
	if err := os.MkdirAll(r.StartupDir, 0755); err != nil {
		return false, fmt.Errorf("autostart: create startup folder: %w", err)
	}
	write := r.writeShortcut
	if write == nil {
		write = writePlatformShortcut
	}
	if err := write(shortcut, launcher, r.ExeDir); err != nil {
		return false, fmt.Errorf("autostart: create shortcut %s: %w", shortcut, err)
	}

	log.Printf("autostart: shortcut added at %s", shortcut)
	return true, nil
}
