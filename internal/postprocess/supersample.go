package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample shrinks img so its longer side is targetSize, using CatmullRom
// filtering. Images already that small are returned unchanged.
func Downsample(img *image.NRGBA, targetSize int) *image.NRGBA {
	b := img.Bounds()
	if targetSize <= 0 || (b.Dx() <= targetSize && b.Dy() <= targetSize) {
		return img
	}

	w, h := targetSize, targetSize
	if b.Dx() > b.Dy() {
		h = max(1, b.Dy()*targetSize/b.Dx())
	} else if b.Dy() > b.Dx() {
		w = max(1, b.Dx()*targetSize/b.Dy())
	}

	// The render is opaque, so no premultiply pass is needed.
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
