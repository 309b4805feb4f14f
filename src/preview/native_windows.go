//go:build windows

package preview

import (
	"image"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver"
	"github.com/lxn/win"
)

// placeNative moves the window to pos in desktop pixels and pins it topmost.
func placeNative(w fyne.Window, pos image.Point) {
	nw, ok := w.(driver.NativeWindow)
	if !ok {
		return
	}
	nw.RunNative(func(ctx any) {
		wc, ok := ctx.(driver.WindowsWindowContext)
		if !ok || wc.HWND == 0 {
			return
		}
		if !win.SetWindowPos(win.HWND(wc.HWND), win.HWND_TOPMOST,
			int32(pos.X), int32(pos.Y), 0, 0,
			win.SWP_NOSIZE|win.SWP_NOACTIVATE|win.SWP_SHOWWINDOW) {
			log.Printf("preview: SetWindowPos failed for hwnd=%#x", wc.HWND)
		}
	})
}
