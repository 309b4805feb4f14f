package preview

import (
	"errors"
	"image"
	"image/color"
	"log"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/sqweek/dialog"

	"floatshot/src/clipboard"
	"floatshot/src/notification"
	"floatshot/src/screenshot"
)

// Options configures a preview Window. Nil hooks fall back to the native
// implementations.
type Options struct {
	ZoomMin  float64
	ZoomMax  float64
	SaveDir  string
	OnClosed func()

	// AskSavePath shows a save dialog starting at defaultPath and returns
	// the chosen path or dialog.ErrCancelled.
	AskSavePath func(defaultPath string) (string, error)
	CopyImage   func(png []byte) error
	// Place moves the native window to pos and keeps it above others.
	Place func(w fyne.Window, pos image.Point)
	// Dispatch runs f on the UI thread.
	Dispatch func(f func())
}

// Window is a borderless, always-on-top preview of one capture.
type Window struct {
	win   fyne.Window
	model *Model
	opts  Options

	img  *canvas.Image
	view *contentView
	ctrl bool

	saving bool
	closed bool
}

// Open creates and shows a preview for shot. Must run on the UI thread.
func Open(app fyne.App, shot *screenshot.Shot, opts Options) *Window {
	if opts.AskSavePath == nil {
		opts.AskSavePath = askSavePath
	}
	if opts.CopyImage == nil {
		opts.CopyImage = clipboard.WriteImage
	}
	if opts.Place == nil {
		opts.Place = placeNative
	}
	if opts.Dispatch == nil {
		opts.Dispatch = fyne.Do
	}

	w := &Window{
		model: NewModel(shot, NewZoom(opts.ZoomMin, opts.ZoomMax)),
		opts:  opts,
	}
	if drv, ok := app.Driver().(desktop.Driver); ok {
		w.win = drv.CreateSplashWindow()
	} else {
		w.win = app.NewWindow("floatshot preview")
	}
	w.win.SetPadded(false)

	w.img = canvas.NewImageFromImage(shot.Image)
	w.img.FillMode = canvas.ImageFillStretch
	w.img.ScaleMode = canvas.ImageScaleSmooth

	save := widget.NewButton("Save", w.Save)
	destroy := widget.NewButton("Destroy", w.Destroy)
	row := canvas.NewRectangle(color.Transparent)
	row.SetMinSize(fyne.NewSize(0, ButtonRowHeight))
	buttons := container.NewStack(row, container.NewCenter(container.NewHBox(save, destroy)))

	w.view = newContentView(w, container.NewBorder(nil, buttons, nil, nil, w.img))
	w.win.SetContent(w.view)
	w.bindKeys()
	w.win.SetOnClosed(func() { w.finish(false) })

	w.applyZoom()
	w.win.Show()
	w.opts.Place(w.win, w.model.Pos)
	log.Printf("preview: opened %s at %v", filepath.Base(shot.Path), w.model.Pos)
	return w
}

// Model exposes the preview state.
func (w *Window) Model() *Model { return w.model }

// Close closes the preview and leaves its temp file on disk, as happens
// when the program exits before the user acts.
func (w *Window) Close() { w.finish(false) }

// Destroy deletes the temp file and closes the window.
func (w *Window) Destroy() {
	log.Printf("preview: destroy %s", filepath.Base(w.model.TempPath))
	w.finish(true)
}

// Save asks for a destination and writes the original capture there. The
// dialog runs off the UI thread; cancelling leaves everything untouched.
func (w *Window) Save() {
	if w.saving || w.closed {
		return
	}
	defaultPath, err := DefaultSavePath(w.opts.SaveDir)
	if err != nil {
		log.Printf("preview: save folder: %v", err)
		defaultPath = filepath.Join(w.opts.SaveDir, screenshot.DefaultBaseName+"1"+screenshot.DefaultExt)
	}

	w.saving = true
	go func() {
		path, err := w.opts.AskSavePath(defaultPath)
		var saved string
		if err == nil {
			saved, err = w.model.SaveTo(path)
		}
		w.opts.Dispatch(func() {
			w.saving = false
			switch {
			case errors.Is(err, dialog.ErrCancelled):
				log.Printf("preview: save cancelled")
			case err != nil:
				log.Printf("preview: save failed: %v", err)
				notification.ShowError("Save failed", err.Error())
			default:
				log.Printf("preview: saved %s", saved)
			}
		})
	}()
}

// Zoom steps the display factor and resizes the window around the new
// bitmap.
func (w *Window) Zoom(up bool) {
	w.model.Zoom.Step(up)
	w.applyZoom()
}

// CopyToClipboard puts the original capture on the clipboard as PNG.
func (w *Window) CopyToClipboard() {
	data, err := screenshot.EncodePNG(w.model.Original)
	if err == nil {
		err = w.opts.CopyImage(data)
	}
	if err != nil {
		log.Printf("preview: copy to clipboard: %v", err)
		return
	}
	log.Printf("preview: copied to clipboard")
}

func (w *Window) applyZoom() {
	size := w.model.ImageSize()
	scale := w.scale()
	w.img.Image = Scale(w.model.Original, size)
	w.img.SetMinSize(fyne.NewSize(float32(size.X)/scale, float32(size.Y)/scale))
	w.img.Refresh()
	w.win.Resize(w.model.WindowSize(scale))
}

func (w *Window) bindKeys() {
	c := w.win.Canvas()
	if dc, ok := c.(desktop.Canvas); ok {
		dc.SetOnKeyDown(func(ev *fyne.KeyEvent) {
			if isCtrl(ev.Name) {
				w.ctrl = true
			}
		})
		dc.SetOnKeyUp(func(ev *fyne.KeyEvent) {
			if isCtrl(ev.Name) {
				w.ctrl = false
			}
		})
	}
	c.AddShortcut(&fyne.ShortcutCopy{}, func(fyne.Shortcut) { w.CopyToClipboard() })
}

func isCtrl(name fyne.KeyName) bool {
	return name == desktop.KeyControlLeft || name == desktop.KeyControlRight
}

// finish runs on the UI thread. Closing the window re-enters it through
// SetOnClosed, hence the flag.
func (w *Window) finish(removeTemp bool) {
	if w.closed {
		return
	}
	w.closed = true
	if removeTemp {
		if err := w.model.Destroy(); err != nil {
			log.Printf("preview: %v", err)
		}
	}
	w.win.Close()
	if w.opts.OnClosed != nil {
		w.opts.OnClosed()
	}
}

func (w *Window) scale() float32 {
	if s := w.win.Canvas().Scale(); s > 0 {
		return s
	}
	return 1
}

func (w *Window) toPixel(pos fyne.Position) image.Point {
	s := w.scale()
	return image.Pt(int(pos.X*s+0.5), int(pos.Y*s+0.5))
}

// contentView holds the whole window content, image and button row, and
// turns pointer input anywhere on it into drag and zoom. Buttons still take
// their own taps.
type contentView struct {
	widget.BaseWidget
	w       *Window
	content fyne.CanvasObject
}

var (
	_ fyne.Draggable    = (*contentView)(nil)
	_ fyne.Scrollable   = (*contentView)(nil)
	_ desktop.Hoverable = (*contentView)(nil)
	_ desktop.Mouseable = (*contentView)(nil)
)

func newContentView(w *Window, content fyne.CanvasObject) *contentView {
	v := &contentView{w: w, content: content}
	v.ExtendBaseWidget(v)
	return v
}

func (v *contentView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.content)
}

func (v *contentView) Dragged(ev *fyne.DragEvent) {
	m := v.w.model
	if !m.Dragging() {
		m.BeginDrag(v.w.toPixel(ev.Position.Subtract(ev.Dragged)))
	}
	v.w.opts.Place(v.w.win, m.DragTo(v.w.toPixel(ev.Position)))
}

func (v *contentView) DragEnd() { v.w.model.EndDrag() }

func (v *contentView) Scrolled(ev *fyne.ScrollEvent) {
	if !v.w.ctrl || ev.Scrolled.DY == 0 {
		return
	}
	v.w.Zoom(ev.Scrolled.DY > 0)
}

func (v *contentView) MouseIn(ev *desktop.MouseEvent)    { v.trackModifier(ev) }
func (v *contentView) MouseMoved(ev *desktop.MouseEvent) { v.trackModifier(ev) }
func (v *contentView) MouseOut()                         {}
func (v *contentView) MouseDown(ev *desktop.MouseEvent)  { v.trackModifier(ev) }
func (v *contentView) MouseUp(ev *desktop.MouseEvent)    { v.trackModifier(ev) }

func (v *contentView) trackModifier(ev *desktop.MouseEvent) {
	v.w.ctrl = ev.Modifier&fyne.KeyModifierControl != 0
}

func askSavePath(defaultPath string) (string, error) {
	return dialog.File().
		Filter("PNG image", "png").
		Title("Save screenshot").
		SetStartDir(filepath.Dir(defaultPath)).
		SetStartFile(filepath.Base(defaultPath)).
		Save()
}
