package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	for _, key := range []string{"ENABLE_FILE_LOGGING", "LOG_FILE", "SETTINGS_FILE", "DEFAULT_HOTKEY", "SAVE_DIR",
		"STARTUP_DELAY_MS", "AUTOSTART", "CAPTURE_SETTLE_MS", "OVERLAY_CLOSE_DELAY_MS", "ZOOM_MIN", "ZOOM_MAX",
		"SINGLEINSTANCE_PORT", EnvFileEnvVar} {
		t.Setenv(key, "")
	}

	cfg, err := LoadWithOptions(LoadOptions{ExecDirOverride: dir})
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.EnableFileLogging {
		t.Errorf("Expected EnableFileLogging to be false")
	}
	if want := filepath.Join(dir, DefaultLogFile); cfg.LogFile != want {
		t.Errorf("Expected LogFile %q, got %q", want, cfg.LogFile)
	}
	if want := filepath.Join(dir, DefaultSettingsFile); cfg.SettingsFile != want {
		t.Errorf("Expected SettingsFile %q, got %q", want, cfg.SettingsFile)
	}
	if cfg.StartupDelay != 5*time.Second {
		t.Errorf("Expected StartupDelay 5s, got %v", cfg.StartupDelay)
	}
	if !cfg.Autostart {
		t.Errorf("Expected Autostart to default to true")
	}
	if cfg.CaptureSettle != 100*time.Millisecond {
		t.Errorf("Expected CaptureSettle 100ms, got %v", cfg.CaptureSettle)
	}
	if cfg.OverlayCloseDelay != 200*time.Millisecond {
		t.Errorf("Expected OverlayCloseDelay 200ms, got %v", cfg.OverlayCloseDelay)
	}
	if cfg.ZoomMin != 0 || cfg.ZoomMax != 0 {
		t.Errorf("Expected unbounded zoom, got min=%v max=%v", cfg.ZoomMin, cfg.ZoomMax)
	}
	if cfg.SingleInstancePort != DefaultPort {
		t.Errorf("Expected port %d, got %d", DefaultPort, cfg.SingleInstancePort)
	}
}

func TestLoadFromDotenv(t *testing.T) {
	dir := t.TempDir()
	for _, key := range []string{"ENABLE_FILE_LOGGING", "DEFAULT_HOTKEY", "AUTOSTART", "CAPTURE_SETTLE_MS", "ZOOM_MAX", "SETTINGS_FILE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	env := "ENABLE_FILE_LOGGING=true\nDEFAULT_HOTKEY=Ctrl+Shift+S\nAUTOSTART=false\nCAPTURE_SETTLE_MS=250\nZOOM_MAX=8\nSETTINGS_FILE=conf/hotkey.json\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadWithOptions(LoadOptions{ExecDirOverride: dir})
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	if !cfg.EnableFileLogging {
		t.Errorf("Expected EnableFileLogging to be true")
	}
	if cfg.DefaultHotkey != "Ctrl+Shift+S" {
		t.Errorf("Expected DefaultHotkey 'Ctrl+Shift+S', got %q", cfg.DefaultHotkey)
	}
	if cfg.Autostart {
		t.Errorf("Expected Autostart false")
	}
	if cfg.CaptureSettle != 250*time.Millisecond {
		t.Errorf("Expected CaptureSettle 250ms, got %v", cfg.CaptureSettle)
	}
	if cfg.ZoomMax != 8 {
		t.Errorf("Expected ZoomMax 8, got %v", cfg.ZoomMax)
	}
	if want := filepath.Join(dir, "conf", "hotkey.json"); cfg.SettingsFile != want {
		t.Errorf("Expected SettingsFile %q, got %q", want, cfg.SettingsFile)
	}
}

func TestProcessEnvWinsOverDotenv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("DEFAULT_HOTKEY=f2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DEFAULT_HOTKEY", "ctrl+r")

	cfg, err := LoadWithOptions(LoadOptions{ExecDirOverride: dir})
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.DefaultHotkey != "ctrl+r" {
		t.Errorf("Expected process env to win, got %q", cfg.DefaultHotkey)
	}
}

func TestInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("CAPTURE_SETTLE_MS", "soon")
	t.Setenv("SINGLEINSTANCE_PORT", "-1")
	t.Setenv("ZOOM_MIN", "-2")

	cfg, err := LoadWithOptions(LoadOptions{ExecDirOverride: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.CaptureSettle != 100*time.Millisecond {
		t.Errorf("Expected default settle, got %v", cfg.CaptureSettle)
	}
	if cfg.SingleInstancePort != DefaultPort {
		t.Errorf("Expected default port, got %d", cfg.SingleInstancePort)
	}
	if cfg.ZoomMin != 0 {
		t.Errorf("Expected default zoom min, got %v", cfg.ZoomMin)
	}
}
