package overlay

import (
	"image"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"

	"floatshot/src/screenshot"
)

func mouse(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	}
}

func drag(v *View, from, to fyne.Position) {
	v.surface.MouseDown(mouse(from.X, from.Y))
	v.surface.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: to}})
	v.surface.DragEnd()
	v.surface.MouseUp(mouse(to.X, to.Y))
}

func TestViewSelectsRegion(t *testing.T) {
	app := test.NewTempApp(t)

	var selected []screenshot.Region
	closed := 0
	v := New(app, Options{
		Bounds:   image.Rect(100, 50, 900, 650),
		OnSelect: func(r screenshot.Region) { selected = append(selected, r) },
		OnClosed: func() { closed++ },
	})
	v.Show()

	drag(v, fyne.NewPos(10, 20), fyne.NewPos(110, 70))

	if len(selected) != 1 {
		t.Fatalf("Expected one selection, got %d", len(selected))
	}
	want := screenshot.Region{X: 110, Y: 70, Width: 100, Height: 50}
	if selected[0] != want {
		t.Errorf("Expected %+v, got %+v", want, selected[0])
	}
	if closed != 1 {
		t.Errorf("Expected OnClosed once, got %d", closed)
	}

	v.Close()
	if closed != 1 {
		t.Errorf("OnClosed fired again after Close")
	}
}

func TestViewTinySelectionDoesNotCapture(t *testing.T) {
	app := test.NewTempApp(t)

	selected := 0
	closed := 0
	v := New(app, Options{
		Bounds:   image.Rect(0, 0, 800, 600),
		OnSelect: func(screenshot.Region) { selected++ },
		OnClosed: func() { closed++ },
	})
	v.Show()

	drag(v, fyne.NewPos(10, 10), fyne.NewPos(13, 20))

	if selected != 0 {
		t.Errorf("3x10 selection must not capture")
	}
	if closed != 1 {
		t.Errorf("Expected OnClosed once, got %d", closed)
	}
}

func TestViewEscapeCancels(t *testing.T) {
	app := test.NewTempApp(t)

	selected := 0
	closed := 0
	v := New(app, Options{
		Bounds:   image.Rect(0, 0, 800, 600),
		OnSelect: func(screenshot.Region) { selected++ },
		OnClosed: func() { closed++ },
	})
	v.Show()

	v.surface.MouseDown(mouse(10, 10))
	v.surface.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(200, 200)}})
	v.win.Canvas().OnTypedKey()(&fyne.KeyEvent{Name: fyne.KeyEscape})

	if closed != 1 {
		t.Fatalf("Expected OnClosed once, got %d", closed)
	}
	v.surface.DragEnd()
	if selected != 0 {
		t.Errorf("Cancelled overlay must not capture")
	}
}

func TestViewLabelTracksDrag(t *testing.T) {
	app := test.NewTempApp(t)

	v := New(app, Options{Bounds: image.Rect(0, 0, 800, 600)})
	v.surface.MouseDown(mouse(100, 100))
	v.surface.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(340, 220)}})

	if v.label.Text != "240 x 120 px" {
		t.Errorf("Unexpected label %q", v.label.Text)
	}
	if !v.border.Visible() {
		t.Error("Border should be visible while dragging")
	}
	if v.label.Position().Y != 75 {
		t.Errorf("Expected label 25 units above selection, got y=%v", v.label.Position().Y)
	}
	v.Close()
}
