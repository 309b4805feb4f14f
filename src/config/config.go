package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	AppName = "floatshot"

	EnvFileEnvVar       = "FLOATSHOT_ENV"
	DefaultLogFile      = "log.txt"
	DefaultSettingsFile = "settings.json"
	DefaultPort         = 49600
)

type LoadOptions struct {
	// ExecDirOverride replaces the executable directory when resolving
	// .env and relative paths. Used by tests.
	ExecDirOverride string
}

type Config struct {
	EnableFileLogging  bool
	LogFile            string
	SettingsFile       string
	DefaultHotkey      string
	SaveDir            string
	StartupDelay       time.Duration
	Autostart          bool
	CaptureSettle      time.Duration
	OverlayCloseDelay  time.Duration
	ZoomMin            float64
	ZoomMax            float64
	SingleInstancePort int
}

func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{})
}

func LoadWithOptions(opts LoadOptions) (*Config, error) {
	// Load configuration from sources in priority order:
	// 1) process environment
	// 2) .env in the application (executable) directory
	// 3) if not found, FLOATSHOT_ENV as a path to a config file
	execDir := resolveExecDir(opts)
	if envPath := resolveEnvPath(execDir); envPath != "" {
		// godotenv.Load never overrides variables already set in the process.
		_ = godotenv.Load(envPath)
	}

	cfg := &Config{
		EnableFileLogging:  strings.ToLower(os.Getenv("ENABLE_FILE_LOGGING")) == "true",
		LogFile:            resolvePath(execDir, getEnvWithDefault("LOG_FILE", DefaultLogFile)),
		SettingsFile:       resolvePath(execDir, getEnvWithDefault("SETTINGS_FILE", DefaultSettingsFile)),
		DefaultHotkey:      strings.TrimSpace(os.Getenv("DEFAULT_HOTKEY")),
		SaveDir:            strings.TrimSpace(os.Getenv("SAVE_DIR")),
		StartupDelay:       getEnvMillis("STARTUP_DELAY_MS", 5000),
		Autostart:          getEnvBool("AUTOSTART", true),
		CaptureSettle:      getEnvMillis("CAPTURE_SETTLE_MS", 100),
		OverlayCloseDelay:  getEnvMillis("OVERLAY_CLOSE_DELAY_MS", 200),
		ZoomMin:            getEnvFloat("ZOOM_MIN", 0),
		ZoomMax:            getEnvFloat("ZOOM_MAX", 0),
		SingleInstancePort: getEnvInt("SINGLEINSTANCE_PORT", DefaultPort),
	}

	return cfg, nil
}

// ExecDir returns the directory holding the running executable, or "." when
// it cannot be determined.
func ExecDir() string {
	execPath, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}
	return filepath.Dir(execPath)
}

func resolveExecDir(opts LoadOptions) string {
	if dir := strings.TrimSpace(opts.ExecDirOverride); dir != "" {
		return dir
	}
	return ExecDir()
}

func resolveEnvPath(execDir string) string {
	exeEnv := filepath.Join(execDir, ".env")
	if _, err := os.Stat(exeEnv); err == nil {
		return exeEnv
	}

	if alt := os.Getenv(EnvFileEnvVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}

	return ""
}

// resolvePath anchors relative paths at the executable directory so that
// reads and writes never depend on the working directory.
func resolvePath(execDir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(execDir, p)
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func getEnvMillis(key string, defaultMs int) time.Duration {
	ms := defaultMs
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			ms = n
		}
	}
	return time.Duration(ms) * time.Millisecond
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			return f
		}
	}
	return defaultValue
}
