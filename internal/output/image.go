package output

import (
	"fmt"
	"image"
	"io"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// WriteWebP encodes img as lossless WebP.
func WriteWebP(w io.Writer, img image.Image) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("output: webp encode: %w", err)
	}
	return nil
}

// WriteTGA encodes img as uncompressed TGA.
func WriteTGA(w io.Writer, img image.Image) error {
	if err := tga.Encode(w, img); err != nil {
		return fmt.Errorf("output: tga encode: %w", err)
	}
	return nil
}
