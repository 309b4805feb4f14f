package preview

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

// ZoomStep is the factor applied per wheel notch.
const ZoomStep = 1.1

// Zoom is the display factor relative to the original capture. Min and Max
// clamp the factor only when positive.
type Zoom struct {
	Factor float64
	Min    float64
	Max    float64
}

func NewZoom(min, max float64) Zoom {
	return Zoom{Factor: 1, Min: min, Max: max}
}

// Step multiplies (up) or divides the factor by ZoomStep and returns it.
func (z *Zoom) Step(up bool) float64 {
	if up {
		z.Factor *= ZoomStep
	} else {
		z.Factor /= ZoomStep
	}
	if z.Min > 0 && z.Factor < z.Min {
		z.Factor = z.Min
	}
	if z.Max > 0 && z.Factor > z.Max {
		z.Factor = z.Max
	}
	return z.Factor
}

// ScaledSize is orig times the factor, at least 1x1.
func (z Zoom) ScaledSize(orig image.Point) image.Point {
	f := z.Factor
	if f <= 0 {
		f = 1
	}
	w := int(math.Round(float64(orig.X) * f))
	h := int(math.Round(float64(orig.Y) * f))
	return image.Pt(max(w, 1), max(h, 1))
}

// Scale resamples src to size. It always starts from src, so repeated zooms
// never accumulate resampling loss.
func Scale(src image.Image, size image.Point) *image.RGBA {
	dst := image.NewRGBA(image.Rectangle{Max: size})
	if size == src.Bounds().Size() {
		xdraw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, xdraw.Src)
		return dst
	}
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
