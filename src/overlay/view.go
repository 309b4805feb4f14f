package overlay

import (
	"image"
	"image/color"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"floatshot/src/screenshot"
)

var (
	dimColor    = color.NRGBA{A: 150}
	accentColor = color.NRGBA{R: 0, G: 120, B: 215, A: 255}
	labelColor  = color.White
)

const (
	borderWidth  = 2
	labelSize    = 10
	labelSpacing = 25
)

// Options configures a View.
type Options struct {
	// Background is the frozen desktop drawn under the dimming. nil draws
	// plain black.
	Background image.Image
	// Bounds is the covered desktop area in pixels; Bounds.Min becomes the
	// selection offset.
	Bounds     image.Rectangle
	CloseDelay time.Duration
	OnSelect   func(screenshot.Region)
	OnClosed   func()
}

// View is a full-screen selection window.
type View struct {
	win  fyne.Window
	opts Options
	sel  Selection

	surface *surface
	dims    []*canvas.Rectangle
	border  *canvas.Rectangle
	label   *canvas.Text

	closed bool
}

// New builds the overlay window on app without showing it.
func New(app fyne.App, opts Options) *View {
	v := &View{opts: opts}
	v.sel.Offset = opts.Bounds.Min

	if drv, ok := app.Driver().(desktop.Driver); ok {
		v.win = drv.CreateSplashWindow()
	} else {
		v.win = app.NewWindow("floatshot selection")
	}
	v.win.SetPadded(false)
	v.win.SetFullScreen(true)

	var bg fyne.CanvasObject
	if opts.Background != nil {
		img := canvas.NewImageFromImage(opts.Background)
		img.FillMode = canvas.ImageFillStretch
		img.ScaleMode = canvas.ImageScalePixels
		bg = img
	} else {
		bg = canvas.NewRectangle(color.Black)
	}

	v.dims = make([]*canvas.Rectangle, 4)
	objects := []fyne.CanvasObject{bg}
	for i := range v.dims {
		v.dims[i] = canvas.NewRectangle(dimColor)
		v.dims[i].Hide()
		objects = append(objects, v.dims[i])
	}

	v.border = canvas.NewRectangle(color.Transparent)
	v.border.StrokeColor = accentColor
	v.border.StrokeWidth = borderWidth
	v.border.Hide()

	v.label = canvas.NewText("", labelColor)
	v.label.TextSize = labelSize
	v.label.Hide()

	v.surface = newSurface(v)
	objects = append(objects, v.border, v.label, v.surface)

	v.win.SetContent(container.NewWithoutLayout(objects...))

	v.win.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			log.Printf("overlay: selection cancelled")
			v.sel.Cancel()
			v.finish()
		}
	})
	v.win.SetOnClosed(func() { v.finish() })

	size := v.toSize(opts.Bounds.Size())
	v.win.Resize(size)
	bg.Resize(size)
	v.surface.Resize(size)
	v.redraw()
	return v
}

// Show displays the overlay.
func (v *View) Show() { v.win.Show() }

// Close tears the overlay down; OnClosed fires once however it closes.
func (v *View) Close() { v.finish() }

// Selection exposes the gesture state.
func (v *View) Selection() *Selection { return &v.sel }

func (v *View) press(pos fyne.Position) {
	if v.sel.Press(v.toPixel(pos)) {
		v.redraw()
	}
}

func (v *View) move(pos fyne.Position) {
	if v.sel.Move(v.toPixel(pos)) {
		v.redraw()
	}
}

func (v *View) release(pos fyne.Position) {
	if v.sel.State() != StateDragging {
		return
	}
	region, ok := v.sel.Release(v.toPixel(pos))
	v.win.Hide()

	if ok {
		log.Printf("overlay: region selected %+v", region)
		if v.opts.OnSelect != nil {
			v.opts.OnSelect(region)
		}
	} else {
		log.Printf("overlay: selection too small, ignoring")
	}

	if v.opts.CloseDelay <= 0 {
		v.finish()
		return
	}
	time.AfterFunc(v.opts.CloseDelay, func() { fyne.Do(v.finish) })
}

// finish runs on the UI thread. Closing the window re-enters it through
// SetOnClosed, hence the flag.
func (v *View) finish() {
	if v.closed {
		return
	}
	v.closed = true
	if v.sel.State() != StateFinalized {
		v.sel.Cancel()
	}
	v.win.Close()
	if v.opts.OnClosed != nil {
		v.opts.OnClosed()
	}
}

func (v *View) redraw() {
	bounds := image.Rectangle{Max: v.opts.Bounds.Size()}
	sel := v.sel.Rect()
	bands := DimRects(bounds, sel)
	for i, d := range v.dims {
		if i >= len(bands) {
			d.Hide()
			continue
		}
		d.Move(v.toPos(bands[i].Min))
		d.Resize(v.toSize(bands[i].Size()))
		d.Show()
		d.Refresh()
	}

	if sel.Empty() {
		v.border.Hide()
		v.label.Hide()
		return
	}
	v.border.Move(v.toPos(sel.Min))
	v.border.Resize(v.toSize(sel.Size()))
	v.border.Show()
	v.border.Refresh()

	v.label.Text = v.sel.Label()
	pos := v.toPos(sel.Min).SubtractXY(0, labelSpacing)
	if pos.Y < 0 {
		pos.Y = 0
	}
	v.label.Move(pos)
	v.label.Show()
	v.label.Refresh()
}

func (v *View) scale() float32 {
	if s := v.win.Canvas().Scale(); s > 0 {
		return s
	}
	return 1
}

func (v *View) toPixel(pos fyne.Position) image.Point {
	s := v.scale()
	return image.Pt(int(pos.X*s+0.5), int(pos.Y*s+0.5))
}

func (v *View) toPos(p image.Point) fyne.Position {
	s := v.scale()
	return fyne.NewPos(float32(p.X)/s, float32(p.Y)/s)
}

func (v *View) toSize(p image.Point) fyne.Size {
	s := v.scale()
	return fyne.NewSize(float32(p.X)/s, float32(p.Y)/s)
}

// surface receives the pointer gesture over the whole overlay.
type surface struct {
	widget.BaseWidget
	view *View
	last fyne.Position
}

var (
	_ desktop.Mouseable  = (*surface)(nil)
	_ desktop.Cursorable = (*surface)(nil)
	_ fyne.Draggable     = (*surface)(nil)
)

func newSurface(v *View) *surface {
	s := &surface{view: v}
	s.ExtendBaseWidget(s)
	return s
}

func (s *surface) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(canvas.NewRectangle(color.Transparent))
}

func (s *surface) Cursor() desktop.Cursor { return desktop.CrosshairCursor }

func (s *surface) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	s.last = ev.Position
	s.view.press(ev.Position)
}

func (s *surface) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	s.view.release(ev.Position)
}

func (s *surface) Dragged(ev *fyne.DragEvent) {
	s.last = ev.Position
	s.view.move(ev.Position)
}

func (s *surface) DragEnd() {
	s.view.release(s.last)
}
