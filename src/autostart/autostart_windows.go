//go:build windows

package autostart

import (
	"fmt"
	"runtime"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"golang.org/x/sys/windows"
)

const (
	shortcutExt = ".lnk"
	launcherExt = ".bat"

	windowStyleNormal = 1
)

func defaultStartupDir() (string, error) {
	return windows.KnownFolderPath(windows.FOLDERID_Startup, 0)
}

func launcherScript(exeDir, exeName string) string {
	return fmt.Sprintf("@echo off\r\ncd /d \"%s\"\r\nstart \"\" \"%s\"\r\n", exeDir, exeName)
}

// writePlatformShortcut creates a .lnk through the WScript.Shell automation
// object.
func writePlatformShortcut(shortcutPath, launcherPath, workDir string) error {
	// COM apartments are per OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED|ole.COINIT_SPEED_OVER_MEMORY); err != nil {
		// S_FALSE: already initialized on this thread, still balanced below.
		if oleErr, ok := err.(*ole.OleError); !ok || oleErr.Code() != 1 {
			return fmt.Errorf("CoInitializeEx: %w", err)
		}
	}
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject("WScript.Shell")
	if err != nil {
		return fmt.Errorf("create WScript.Shell: %w", err)
	}
	defer unknown.Release()

	shell, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return fmt.Errorf("query IDispatch: %w", err)
	}
	defer shell.Release()

	result, err := oleutil.CallMethod(shell, "CreateShortcut", shortcutPath)
	if err != nil {
		return fmt.Errorf("CreateShortcut: %w", err)
	}
	link := result.ToIDispatch()
	defer link.Release()

	for name, value := range map[string]any{
		"TargetPath":       launcherPath,
		"WorkingDirectory": workDir,
		"WindowStyle":      windowStyleNormal,
	} {
		if _, err := oleutil.PutProperty(link, name, value); err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
	}
	if _, err := oleutil.CallMethod(link, "Save"); err != nil {
		return fmt.Errorf("save shortcut: %w", err)
	}
	return nil
}
