//go:build windows

package screenshot

import "golang.org/x/sys/windows"

// picturesDir resolves the Pictures known folder, which users may have moved
// away from %USERPROFILE%\Pictures.
func picturesDir() (string, error) {
	return windows.KnownFolderPath(windows.FOLDERID_Pictures, 0)
}
