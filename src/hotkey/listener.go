package hotkey

import (
	"log"
	"sync"

	gohook "github.com/robotn/gohook"
)

// Listener owns the process-wide keyboard hook and at most one active
// combination. The callback runs on the hook goroutine; callers must hand it
// off to their UI thread.
type Listener struct {
	mu       sync.Mutex
	active   *matcher
	callback func()
	started  bool
	closed   bool

	start func() chan gohook.Event
	stop  func()
	code  func(gohook.Event) uint16
	codes func(string) []uint16
}

// NewListener returns a Listener backed by gohook. The OS hook is installed on
// the first Register, not here.
func NewListener() *Listener {
	return &Listener{
		start: gohook.Start,
		stop:  gohook.End,
		code:  eventCode,
		codes: keyNameToCodes,
	}
}

// Register binds combo to callback, releasing any previous binding first.
func (l *Listener) Register(combo string, callback func()) error {
	m, err := newMatcher(combo, l.codes)
	if err != nil {
		return err
	}

	l.mu.Lock()
	if l.active != nil {
		log.Printf("hotkey: releasing %s", l.active.combo)
	}
	l.active = m
	l.callback = callback
	needStart := !l.started && !l.closed
	l.started = true
	l.mu.Unlock()

	log.Printf("hotkey: listener configured for %s", m.combo)
	if needStart {
		l.run()
	}
	return nil
}

// Unregister drops the active binding; the hook keeps running idle.
func (l *Listener) Unregister() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.active != nil {
		log.Printf("hotkey: releasing %s", l.active.combo)
	}
	l.active = nil
	l.callback = nil
}

// Active returns the currently bound combination, or "".
func (l *Listener) Active() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.active == nil {
		return ""
	}
	return l.active.combo
}

// Close removes the OS hook. The Listener cannot be reused afterwards.
func (l *Listener) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.active = nil
	l.callback = nil
	started := l.started
	l.mu.Unlock()

	if started {
		l.stop()
	}
}

func (l *Listener) run() {
	evChan := l.start()
	if evChan == nil {
		log.Printf("ERROR: hotkey: hook start returned nil channel")
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in hotkey goroutine: %v", r)
			}
		}()

		for ev := range evChan {
			l.handle(ev)
		}
		log.Printf("hotkey: event channel closed")
	}()
}

func (l *Listener) handle(ev gohook.Event) {
	var fire func()

	l.mu.Lock()
	if l.active != nil {
		switch ev.Kind {
		case gohook.KeyDown, gohook.KeyHold:
			if l.active.press(l.code(ev)) {
				log.Printf("hotkey: %s detected", l.active.combo)
				fire = l.callback
			}
		case gohook.KeyUp:
			l.active.release(l.code(ev))
		}
	}
	l.mu.Unlock()

	if fire != nil {
		fire()
	}
}
