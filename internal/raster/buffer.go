package raster

import (
	"image"
	"math"
)

// FrameBuffer holds the rendered image as a flat RGB slice in raster order.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8 // RGB interleaved, len = W*H*3
}

// NewFrameBuffer allocates a zeroed color buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, w*h*3),
	}
}

// Row returns the RGB bytes of row y.
func (fb *FrameBuffer) Row(y int) []uint8 {
	off := y * fb.Width * 3
	return fb.Color[off : off+fb.Width*3]
}

// Image converts the buffer to an opaque NRGBA image for the image encoders.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for i, j := 0, 0; i < len(fb.Color); i, j = i+3, j+4 {
		img.Pix[j] = fb.Color[i]
		img.Pix[j+1] = fb.Color[i+1]
		img.Pix[j+2] = fb.Color[i+2]
		img.Pix[j+3] = 255
	}
	return img
}

// Saturate clamps v to [0,255] and truncates toward zero. NaN maps to 0.
func Saturate(v float64) uint8 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
