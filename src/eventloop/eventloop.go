package eventloop

import (
	"context"
	"errors"
	"log"
	"sync"

	"fyne.io/fyne/v2"

	"floatshot/src/screenshot"
)

// Window is a live overlay or preview owned by the loop.
type Window interface {
	Close()
}

// OverlayFactory opens a selection overlay. onSelect receives a region
// worth capturing; onClosed fires once when the overlay is gone.
type OverlayFactory func(onSelect func(screenshot.Region), onClosed func()) (Window, error)

// PreviewFactory opens a floating preview for shot; onClosed fires once.
type PreviewFactory func(shot *screenshot.Shot, onClosed func()) (Window, error)

// Capturer grabs a region into a temp file.
type Capturer interface {
	Capture(region screenshot.Region) (*screenshot.Shot, error)
}

// HotkeyBinder binds a global hotkey to a callback.
type HotkeyBinder interface {
	Register(combo string, callback func()) error
}

// Dispatcher runs f on the UI thread.
type Dispatcher func(f func())

// Options wires a Loop.
type Options struct {
	Overlays OverlayFactory
	Previews PreviewFactory
	Capturer Capturer
	Hotkeys  HotkeyBinder
	// Dispatch defaults to fyne.Do.
	Dispatch Dispatcher
	// Requests carries capture requests from other launches.
	Requests <-chan struct{}
	// OnHotkeyChanged runs on the UI thread after a successful SetHotkey.
	OnHotkeyChanged func(combo string)
}

// Loop routes triggers to overlays and finished selections to previews. It
// owns the registries of live windows; they are touched only on the UI
// thread.
type Loop struct {
	opts     Options
	triggers chan struct{}

	nextID   int
	overlays map[int]Window
	previews map[int]Window

	hotkeyMu sync.Mutex
	hotkey   string
}

func New(opts Options) *Loop {
	if opts.Dispatch == nil {
		opts.Dispatch = fyne.Do
	}
	return &Loop{
		opts:     opts,
		triggers: make(chan struct{}, 4),
		overlays: make(map[int]Window),
		previews: make(map[int]Window),
	}
}

// Trigger asks for a new selection. Safe from any goroutine; extra triggers
// while the queue is full are dropped.
func (l *Loop) Trigger() {
	select {
	case l.triggers <- struct{}{}:
	default:
		log.Printf("eventloop: trigger dropped, queue full")
	}
}

// Run forwards triggers and resident requests to the UI thread until ctx
// is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	requests := l.opts.Requests
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.triggers:
			l.opts.Dispatch(l.launchOverlay)
		case _, ok := <-requests:
			if !ok {
				requests = nil
				continue
			}
			l.opts.Dispatch(l.launchOverlay)
		}
	}
}

// SetHotkey rebinds the global hotkey to Trigger. Safe from any goroutine.
func (l *Loop) SetHotkey(combo string) error {
	if l.opts.Hotkeys == nil {
		return errors.New("eventloop: no hotkey binder")
	}
	l.hotkeyMu.Lock()
	defer l.hotkeyMu.Unlock()

	if combo == l.hotkey {
		return nil
	}
	if err := l.opts.Hotkeys.Register(combo, l.Trigger); err != nil {
		return err
	}
	l.hotkey = combo
	log.Printf("eventloop: hotkey set to %s", combo)
	if l.opts.OnHotkeyChanged != nil {
		l.opts.Dispatch(func() { l.opts.OnHotkeyChanged(combo) })
	}
	return nil
}

// Hotkey returns the bound combination.
func (l *Loop) Hotkey() string {
	l.hotkeyMu.Lock()
	defer l.hotkeyMu.Unlock()
	return l.hotkey
}

// Counts reports live overlays and previews. UI thread only.
func (l *Loop) Counts() (overlays, previews int) {
	return len(l.overlays), len(l.previews)
}

// Shutdown closes every live window. Preview temp files are left on disk.
// UI thread only.
func (l *Loop) Shutdown() {
	for _, reg := range []map[int]Window{l.overlays, l.previews} {
		var live []Window
		for _, w := range reg {
			live = append(live, w)
		}
		for _, w := range live {
			w.Close()
		}
	}
}

// launchOverlay opens a new overlay per trigger. Overlays already on screen
// stay registered until their own close callback releases them.
func (l *Loop) launchOverlay() {
	if l.opts.Overlays == nil {
		log.Printf("eventloop: no overlay factory")
		return
	}

	id := l.newID()
	w, err := l.opts.Overlays(l.captureAsync, func() { l.release(l.overlays, "overlay", id) })
	if err != nil {
		log.Printf("eventloop: open overlay: %v", err)
		return
	}
	l.overlays[id] = w
	log.Printf("eventloop: overlay %d opened (%d live)", id, len(l.overlays))
}

// captureAsync grabs off the UI thread so the settle delay does not block
// the hidden overlay from leaving the screen.
func (l *Loop) captureAsync(region screenshot.Region) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in capture goroutine: %v", r)
			}
		}()
		shot, err := l.opts.Capturer.Capture(region)
		if err != nil {
			log.Printf("eventloop: capture %+v: %v", region, err)
			return
		}
		l.opts.Dispatch(func() { l.openPreview(shot) })
	}()
}

func (l *Loop) openPreview(shot *screenshot.Shot) {
	if l.opts.Previews == nil {
		log.Printf("eventloop: no preview factory")
		l.discard(shot)
		return
	}
	id := l.newID()
	w, err := l.opts.Previews(shot, func() { l.release(l.previews, "preview", id) })
	if err != nil {
		log.Printf("eventloop: open preview: %v", err)
		l.discard(shot)
		return
	}
	l.previews[id] = w
	log.Printf("eventloop: preview %d opened for %+v", id, shot.Region)
}

func (l *Loop) discard(shot *screenshot.Shot) {
	if err := screenshot.RemoveTemp(shot.Path); err != nil {
		log.Printf("eventloop: %v", err)
	}
}

func (l *Loop) release(reg map[int]Window, kind string, id int) {
	if _, ok := reg[id]; !ok {
		log.Printf("eventloop: %s %d already released", kind, id)
		return
	}
	delete(reg, id)
	log.Printf("eventloop: %s %d released", kind, id)
}

func (l *Loop) newID() int {
	l.nextID++
	return l.nextID
}
