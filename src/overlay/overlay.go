package overlay

import (
	"fmt"
	"image"

	"floatshot/src/screenshot"
)

// State is the phase of one selection gesture.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateFinalized:
		return "finalized"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// minSelectionSpan is the largest width or height that is still treated as
// an accidental click.
const minSelectionSpan = 5

// Selection tracks one press-drag-release gesture in overlay pixel
// coordinates. Offset is the overlay's position on the desktop and is added
// to the finished region.
type Selection struct {
	Offset image.Point

	state State
	start image.Point
	end   image.Point
}

func (s *Selection) State() State { return s.state }

// Press anchors the selection. Only valid from idle.
func (s *Selection) Press(p image.Point) bool {
	if s.state != StateIdle {
		return false
	}
	s.state = StateDragging
	s.start, s.end = p, p
	return true
}

// Move updates the free corner while dragging.
func (s *Selection) Move(p image.Point) bool {
	if s.state != StateDragging {
		return false
	}
	s.end = p
	return true
}

// Release finalizes the gesture. The region is in desktop coordinates and ok
// reports whether it is large enough to capture. The second return is false
// as well when the selection was not dragging.
func (s *Selection) Release(p image.Point) (screenshot.Region, bool) {
	if s.state != StateDragging {
		return screenshot.Region{}, false
	}
	s.end = p
	s.state = StateFinalized

	r := s.Rect()
	if r.Dx() <= minSelectionSpan || r.Dy() <= minSelectionSpan {
		return screenshot.Region{}, false
	}
	r = r.Add(s.Offset)
	return screenshot.Region{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}, true
}

// Cancel finalizes without a region.
func (s *Selection) Cancel() { s.state = StateFinalized }

// Rect is the normalized selection in overlay coordinates, empty while idle.
func (s *Selection) Rect() image.Rectangle {
	if s.state == StateIdle {
		return image.Rectangle{}
	}
	return image.Rectangle{Min: s.start, Max: s.end}.Canon()
}

// Label is the live size readout drawn above the selection.
func (s *Selection) Label() string {
	r := s.Rect()
	return fmt.Sprintf("%d x %d px", r.Dx(), r.Dy())
}

// DimRects returns the parts of bounds outside sel: top, bottom, left and
// right bands. An empty sel dims the whole of bounds.
func DimRects(bounds, sel image.Rectangle) []image.Rectangle {
	sel = sel.Intersect(bounds)
	if sel.Empty() {
		return []image.Rectangle{bounds}
	}
	bands := []image.Rectangle{
		image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Max.X, sel.Min.Y),
		image.Rect(bounds.Min.X, sel.Max.Y, bounds.Max.X, bounds.Max.Y),
		image.Rect(bounds.Min.X, sel.Min.Y, sel.Min.X, sel.Max.Y),
		image.Rect(sel.Max.X, sel.Min.Y, bounds.Max.X, sel.Max.Y),
	}
	out := bands[:0]
	for _, b := range bands {
		if !b.Empty() {
			out = append(out, b)
		}
	}
	return out
}
