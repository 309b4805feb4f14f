package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"floatshot/src/autostart"
	"floatshot/src/config"
	"floatshot/src/eventloop"
	"floatshot/src/gui"
	"floatshot/src/hotkey"
	"floatshot/src/logutil"
	"floatshot/src/notification"
	"floatshot/src/overlay"
	"floatshot/src/preview"
	"floatshot/src/screenshot"
	"floatshot/src/settings"
	"floatshot/src/singleinstance"
	"floatshot/src/tray"
)

const appID = "io.floatshot.app"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logutil.Setup(cfg.EnableFileLogging, config.ExecDir())
	if err := logutil.MarkLaunch(cfg.LogFile); err != nil {
		log.Printf("logutil: %v", err)
	}
	enableDPIAwareness()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv, err := singleinstance.Acquire(ctx, cfg.SingleInstancePort)
	switch {
	case errors.Is(err, singleinstance.ErrResidentRunning):
		log.Printf("Resident instance asked to capture, exiting")
		return
	case err != nil:
		log.Printf("singleinstance: %v; continuing without resident port", err)
	}

	if cfg.StartupDelay > 0 {
		log.Printf("Waiting %v for the desktop to settle", cfg.StartupDelay)
		time.Sleep(cfg.StartupDelay)
	}
	if cfg.Autostart {
		registerAutostart()
	}

	a, err := newApp()
	if err != nil {
		notification.ShowBlockingError("floatshot", fmt.Sprintf("Failed to start the user interface: %v", err))
		os.Exit(1)
	}

	run(ctx, cancel, a, cfg, srv)
	log.Printf("Exiting")
}

func newApp() (a fyne.App, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	a = app.NewWithID(appID)
	a.SetIcon(tray.Icon)
	return a, nil
}

func run(ctx context.Context, cancel context.CancelFunc, a fyne.App, cfg *config.Config, srv *singleinstance.Server) {
	store := settings.New(cfg.SettingsFile)
	listener := hotkey.NewListener()

	var requests <-chan struct{}
	if srv != nil {
		requests = srv.Requests()
	}

	var menu *tray.Tray
	loop := eventloop.New(eventloop.Options{
		Capturer: screenshot.NewCapturer(cfg.CaptureSettle),
		Hotkeys:  listener,
		Requests: requests,
		Overlays: func(onSelect func(screenshot.Region), onClosed func()) (eventloop.Window, error) {
			return openOverlay(a, cfg, onSelect, onClosed)
		},
		Previews: func(shot *screenshot.Shot, onClosed func()) (eventloop.Window, error) {
			return preview.Open(a, shot, preview.Options{
				ZoomMin:  cfg.ZoomMin,
				ZoomMax:  cfg.ZoomMax,
				SaveDir:  cfg.SaveDir,
				OnClosed: onClosed,
			}), nil
		},
		OnHotkeyChanged: func(combo string) { menu.SetHotkey(combo) },
	})

	bind := func(combo string) {
		go func() {
			if err := loop.SetHotkey(combo); err != nil {
				log.Printf("hotkey: failed to register %q: %v", combo, err)
				notification.ShowError("Hotkey", fmt.Sprintf("Could not register %q: %v", combo, err))
			}
		}()
	}
	choose := func(combo string) {
		if err := store.Save(combo); err != nil {
			log.Printf("settings: %v", err)
		}
		bind(combo)
	}

	menu = tray.New(a, "", tray.Actions{
		Capture: loop.Trigger,
		ChangeHotkey: func() {
			gui.ShowHotkeyDialog(a, loop.Hotkey(), true, choose)
		},
		Quit: func() {
			loop.Shutdown()
			a.Quit()
		},
	})

	a.Lifecycle().SetOnStarted(func() {
		combo, err := resolveHotkey(store, cfg.DefaultHotkey)
		if err != nil {
			log.Printf("settings: %v; asking for a hotkey", err)
			gui.ShowHotkeyDialog(a, "", false, choose)
		} else {
			log.Printf("Hotkey: %s", combo)
			bind(combo)
		}

		go func() {
			err := store.Watch(ctx, func(combo string) {
				log.Printf("settings: hotkey changed on disk to %s", combo)
				if err := loop.SetHotkey(combo); err != nil {
					log.Printf("hotkey: failed to register %q: %v", combo, err)
				}
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("settings: %v", err)
			}
		}()
		go func() {
			if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("event loop stopped: %v", err)
			}
		}()
		log.Printf("floatshot ready")
	})
	a.Lifecycle().SetOnStopped(func() {
		cancel()
		listener.Close()
		if srv != nil {
			_ = srv.Close()
		}
	})

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-ch:
			fyne.Do(a.Quit)
		case <-ctx.Done():
		}
	}()

	a.Run()
}

// openOverlay covers the primary display with a selection overlay drawn over
// a frozen copy of the screen.
func openOverlay(a fyne.App, cfg *config.Config, onSelect func(screenshot.Region), onClosed func()) (eventloop.Window, error) {
	bounds, err := screenshot.GetDisplayBounds()
	if err != nil {
		return nil, err
	}
	bg, err := screenshot.CaptureDisplay()
	if err != nil {
		log.Printf("overlay: background capture failed: %v", err)
	}
	opts := overlay.Options{
		Bounds:     bounds,
		CloseDelay: cfg.OverlayCloseDelay,
		OnSelect:   onSelect,
		OnClosed:   onClosed,
	}
	if bg != nil {
		opts.Background = bg
	}
	v := overlay.New(a, opts)
	v.Show()
	return v, nil
}

// resolveHotkey returns the stored hotkey, falling back to (and persisting)
// fallback when the store has none. The error is settings.ErrNoHotkey when
// the user must be asked.
func resolveHotkey(store *settings.Store, fallback string) (string, error) {
	combo, err := store.Load()
	if err == nil {
		return combo, nil
	}
	fallback = hotkey.Normalize(fallback)
	if fallback == "" {
		return "", err
	}
	log.Printf("settings: %v; using default hotkey %s", err, fallback)
	if serr := store.Save(fallback); serr != nil {
		log.Printf("settings: %v", serr)
	}
	return fallback, nil
}

func registerAutostart() {
	r, err := autostart.New(config.AppName)
	if err != nil {
		log.Printf("autostart: %v", err)
		return
	}
	created, err := r.EnsureRegistered()
	if err != nil {
		log.Printf("autostart: %v", err)
		return
	}
	if created {
		log.Printf("autostart: registered %s", r.ShortcutPath())
	}
}
