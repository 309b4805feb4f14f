package screenshot

import (
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/kbinani/screenshot"
)

var (
	ErrNoDisplay      = errors.New("no active displays found")
	ErrRegionTooSmall = errors.New("invalid region dimensions")
)

// Region is a rectangle in absolute desktop pixel coordinates.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Shot is one captured region: the pixels plus the temp PNG holding them.
type Shot struct {
	Image  *image.RGBA
	Path   string
	Region Region
}

// Capturer grabs screen regions into temp files.
type Capturer struct {
	// Settle is slept before grabbing so a just-hidden overlay has left
	// the screen.
	Settle  time.Duration
	TempDir string

	grab func(image.Rectangle) (*image.RGBA, error)
}

func NewCapturer(settle time.Duration) *Capturer {
	return &Capturer{Settle: settle, grab: screenshot.CaptureRect}
}

// Capture grabs region and writes it to a fresh temp PNG.
func (c *Capturer) Capture(region Region) (*Shot, error) {
	if region.Width <= 0 || region.Height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrRegionTooSmall, region.Width, region.Height)
	}

	if c.Settle > 0 {
		time.Sleep(c.Settle)
	}

	grab := c.grab
	if grab == nil {
		grab = screenshot.CaptureRect
	}
	img, err := grab(region.Rect())
	if err != nil {
		return nil, fmt.Errorf("failed to capture region: %w", err)
	}

	path := TempPath(c.TempDir)
	if err := SavePNG(img, path); err != nil {
		return nil, err
	}
	log.Printf("screenshot: captured %dx%d at (%d,%d) into %s", region.Width, region.Height, region.X, region.Y, path)
	return &Shot{Image: img, Path: path, Region: region}, nil
}

// TempPath returns a fresh, collision-free PNG path in dir (the OS temp
// directory when empty).
func TempPath(dir string) string {
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "floatshot-"+uuid.NewString()+".png")
}

// RemoveTemp deletes a temp capture. A file that is already gone is not an
// error.
func RemoveTemp(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove temp image %s: %w", path, err)
	}
	return nil
}

// CaptureDisplay captures the whole primary display.
func CaptureDisplay() (*image.RGBA, error) {
	bounds, err := GetDisplayBounds()
	if err != nil {
		return nil, err
	}
	return screenshot.CaptureRect(bounds)
}

// GetDisplayBounds returns the bounds of the primary display
func GetDisplayBounds() (image.Rectangle, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return image.Rectangle{}, ErrNoDisplay
	}
	return screenshot.GetDisplayBounds(0), nil
}
