//go:build linux

package preview

import (
	"image"
	"log"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var x11 struct {
	once    sync.Once
	conn    *xgb.Conn
	root    xproto.Window
	state   xproto.Atom
	above   xproto.Atom
	initErr error
}

func x11Conn() (*xgb.Conn, error) {
	x11.once.Do(func() {
		conn, err := xgb.NewConn()
		if err != nil {
			x11.initErr = err
			return
		}
		x11.conn = conn
		x11.root = xproto.Setup(conn).DefaultScreen(conn).Root
		x11.state = internAtom(conn, "_NET_WM_STATE")
		x11.above = internAtom(conn, "_NET_WM_STATE_ABOVE")
	})
	return x11.conn, x11.initErr
}

func internAtom(conn *xgb.Conn, name string) xproto.Atom {
	reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		log.Printf("preview: intern atom %s: %v", name, err)
		return xproto.AtomNone
	}
	return reply.Atom
}

// placeNative moves the window to pos in desktop pixels, raises it and asks
// the window manager to keep it above others. Wayland sessions are left to
// the compositor.
func placeNative(w fyne.Window, pos image.Point) {
	nw, ok := w.(driver.NativeWindow)
	if !ok {
		return
	}
	nw.RunNative(func(ctx any) {
		wc, ok := ctx.(driver.X11WindowContext)
		if !ok || wc.WindowHandle == 0 {
			return
		}
		conn, err := x11Conn()
		if err != nil {
			log.Printf("preview: X11 connection: %v", err)
			return
		}
		xw := xproto.Window(wc.WindowHandle)

		err = xproto.ConfigureWindowChecked(conn, xw,
			xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowStackMode,
			[]uint32{uint32(int32(pos.X)), uint32(int32(pos.Y)), xproto.StackModeAbove}).Check()
		if err != nil {
			log.Printf("preview: configure window: %v", err)
		}

		if x11.state == xproto.AtomNone || x11.above == xproto.AtomNone {
			return
		}
		// _NET_WM_STATE_ADD = 1, source indication 1 = application.
		ev := xproto.ClientMessageEvent{
			Format: 32,
			Window: xw,
			Type:   x11.state,
			Data:   xproto.ClientMessageDataUnionData32New([]uint32{1, uint32(x11.above), 0, 1, 0}),
		}
		mask := uint32(xproto.EventMaskSubstructureRedirect | xproto.EventMaskSubstructureNotify)
		if err := xproto.SendEventChecked(conn, false, x11.root, mask, string(ev.Bytes())).Check(); err != nil {
			log.Printf("preview: set always-on-top: %v", err)
		}
	})
}
