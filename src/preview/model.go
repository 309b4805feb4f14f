package preview

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"

	"floatshot/src/screenshot"
)

// ButtonRowHeight is the height of the Save/Destroy row in canvas units.
const ButtonRowHeight = 50

// Model is the toolkit-independent state of one preview.
type Model struct {
	Original *image.RGBA
	TempPath string
	// Pos is the window's top-left on the desktop, in pixels.
	Pos  image.Point
	Zoom Zoom

	anchor    image.Point
	dragging  bool
	destroyed bool
}

func NewModel(shot *screenshot.Shot, zoom Zoom) *Model {
	return &Model{
		Original: shot.Image,
		TempPath: shot.Path,
		Pos:      image.Pt(shot.Region.X, shot.Region.Y),
		Zoom:     zoom,
	}
}

// ImageSize is the displayed bitmap size in pixels.
func (m *Model) ImageSize() image.Point {
	return m.Zoom.ScaledSize(m.Original.Bounds().Size())
}

// WindowSize is the displayed image plus the button row, in canvas units.
func (m *Model) WindowSize(scale float32) fyne.Size {
	if scale <= 0 {
		scale = 1
	}
	img := m.ImageSize()
	return fyne.NewSize(float32(img.X)/scale, float32(img.Y)/scale+ButtonRowHeight)
}

// BeginDrag anchors a drag at a point inside the window.
func (m *Model) BeginDrag(anchor image.Point) {
	m.anchor = anchor
	m.dragging = true
}

// DragTo moves the window so the anchored point follows p, both in window
// coordinates, and returns the new position.
func (m *Model) DragTo(p image.Point) image.Point {
	if m.dragging {
		m.Pos = m.Pos.Add(p.Sub(m.anchor))
	}
	return m.Pos
}

func (m *Model) EndDrag() { m.dragging = false }

func (m *Model) Dragging() bool { return m.dragging }

// Destroy deletes the temp file. A file that is already gone is not an
// error; later calls are no-ops.
func (m *Model) Destroy() error {
	if m.destroyed {
		return nil
	}
	m.destroyed = true
	return screenshot.RemoveTemp(m.TempPath)
}

func (m *Model) Destroyed() bool { return m.destroyed }

// SaveTo writes the original capture, whatever the zoom, as PNG.
func (m *Model) SaveTo(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty save path")
	}
	if !strings.EqualFold(filepath.Ext(path), screenshot.DefaultExt) {
		path += screenshot.DefaultExt
	}
	if err := screenshot.SavePNG(m.Original, path); err != nil {
		return "", err
	}
	return path, nil
}

// DefaultSavePath is the next free screenshotN.png in dir, or in
// <Pictures>/Screenshots when dir is empty.
func DefaultSavePath(dir string) (string, error) {
	var err error
	if dir == "" {
		dir, err = screenshot.PicturesScreenshotFolder()
	} else {
		dir, err = screenshot.EnsureFolder(dir)
	}
	if err != nil {
		return "", err
	}
	return screenshot.NextAvailableFilename(dir, screenshot.DefaultBaseName, screenshot.DefaultExt), nil
}
