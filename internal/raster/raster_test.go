package raster

import (
	"bytes"
	"math"
	"math/rand"
	"testing"
)

func TestSaturate(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-5, 0},
		{0, 0},
		{12.9, 12},
		{13, 13},
		{254.99, 254},
		{255, 255},
		{300, 255},
		{math.Inf(1), 255},
		{math.Inf(-1), 0},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := Saturate(tt.in); got != tt.want {
			t.Errorf("Saturate(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCameraBasis(t *testing.T) {
	cam := DefaultCamera()
	if math.Abs(cam.A.Len()-pixel) > 1e-12 || math.Abs(cam.B.Len()-pixel) > 1e-12 {
		t.Fatalf("basis not pixel sized: |a|=%g |b|=%g", cam.A.Len(), cam.B.Len())
	}
	if math.Abs(cam.A.Dot(cam.B)) > 1e-15 || math.Abs(cam.A.Dot(cam.Forward)) > 1e-12 || math.Abs(cam.B.Dot(cam.Forward)) > 1e-12 {
		t.Fatalf("basis not orthogonal: %+v", cam)
	}
	// The image center looks straight down the forward axis.
	center := cam.A.Scale(Size / 2).Add(cam.B.Scale(Size / 2)).Add(cam.C)
	if center.Sub(cam.Forward).Len() > 1e-12 {
		t.Fatalf("center ray %v, want %v", center, cam.Forward)
	}
}

func TestPixelAboveBias(t *testing.T) {
	cam := DefaultCamera()
	rng := rand.New(rand.NewSource(1))
	for _, p := range [][2]int{{0, 0}, {256, 256}, {511, 511}, {100, 400}} {
		px := cam.Pixel(p[0], p[1], rng)
		for c, v := range px {
			if v < bias {
				t.Fatalf("pixel %v channel %d = %d below ambient bias", p, c, v)
			}
		}
	}
}

func TestRenderRowsIndependentOfWorkers(t *testing.T) {
	const from, to = 300, 304

	a := NewFrameBuffer(Size, Size)
	RenderRows(a, from, to, Options{Workers: 1, Seed: 99})
	b := NewFrameBuffer(Size, Size)
	RenderRows(b, from, to, Options{Workers: 4, Seed: 99})

	if !bytes.Equal(a.Color, b.Color) {
		t.Fatal("output depends on worker count")
	}

	c := NewFrameBuffer(Size, Size)
	RenderRows(c, from, to, Options{Workers: 2, Seed: 100})
	if bytes.Equal(a.Row(from), c.Row(from)) {
		t.Fatal("different seeds produced identical rows")
	}

	// Rows outside the range stay untouched.
	for _, v := range a.Row(from - 1) {
		if v != 0 {
			t.Fatal("row outside range was written")
		}
	}
	for _, v := range a.Row(from) {
		if v < bias {
			t.Fatalf("rendered byte %d below bias", v)
		}
	}
}

func TestRenderRowsClampsRange(t *testing.T) {
	fb := NewFrameBuffer(Size, Size)
	RenderRows(fb, Size-1, Size+10, Options{Workers: 1})
	if fb.Row(Size - 1)[0] == 0 {
		t.Fatal("last row not rendered")
	}
	RenderRows(fb, 5, 5, Options{})
}

func TestFrameBufferImage(t *testing.T) {
	fb := NewFrameBuffer(2, 1)
	copy(fb.Color, []uint8{10, 20, 30, 40, 50, 60})
	img := fb.Image()
	want := []uint8{10, 20, 30, 255, 40, 50, 60, 255}
	if !bytes.Equal(img.Pix, want) {
		t.Fatalf("Image pix = %v, want %v", img.Pix, want)
	}
}

func TestRowSeedDistinct(t *testing.T) {
	seen := map[int64]bool{}
	for row := 0; row < Size; row++ {
		s := RowSeed(7, row)
		if seen[s] {
			t.Fatalf("duplicate seed for row %d", row)
		}
		seen[s] = true
	}
}

func TestRenderDeterministic(t *testing.T) {
	if testing.Short() {
		t.Skip("full render")
	}
	a := Render(Options{Seed: 1})
	b := Render(Options{Seed: 1, Workers: 3})
	if !bytes.Equal(a.Color, b.Color) {
		t.Fatal("two renders with the same seed differ")
	}
}
