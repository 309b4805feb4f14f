//go:build !windows && !linux

package preview

import (
	"image"
	"log"
	"sync"

	"fyne.io/fyne/v2"
)

var placeWarning sync.Once

// placeNative cannot position or raise windows here; the window manager
// decides where previews appear.
func placeNative(fyne.Window, image.Point) {
	placeWarning.Do(func() {
		log.Printf("preview: window placement not supported on this platform")
	})
}
