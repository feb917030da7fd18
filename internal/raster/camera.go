package raster

import (
	"cardtrace/internal/mathutil"
	"cardtrace/internal/scene"
	"cardtrace/internal/trace"
)

const (
	// Size is the image width and height in pixels.
	Size = 512
	// Samples is the number of rays averaged per pixel.
	Samples = 64

	bias     = 13.0
	gain     = 3.5
	aperture = 99.0
	focus    = 16.0
	pixel    = 0.002
)

// Eye is the camera focal point.
var Eye = mathutil.Vec3{17, 16, 8}

// Camera is the fixed view basis. A and B span the image plane scaled to one
// pixel, C is the offset from the eye to the plane corner.
type Camera struct {
	Forward mathutil.Vec3
	A, B, C mathutil.Vec3
}

// DefaultCamera builds the basis looking along (-6,-16,0) with z up.
func DefaultCamera() Camera {
	g := mathutil.Vec3{-6, -16, 0}.Normalize()
	a := mathutil.Up.Cross(g).Normalize().Scale(pixel)
	b := g.Cross(a).Normalize().Scale(pixel)
	c := a.Add(b).Scale(-Size / 2).Add(g)
	return Camera{Forward: g, A: a, B: b, C: c}
}

// Pixel accumulates Samples jittered rays for loop indices (xi, yi) and
// returns the saturated RGB value. The image is mirrored relative to the
// loop: pixel coordinates are Size-xi and Size-yi.
func (cam Camera) Pixel(xi, yi int, rng trace.Rand) [3]uint8 {
	x := float64(Size - xi)
	y := float64(Size - yi)

	acc := mathutil.Vec3{bias, bias, bias}
	for i := 0; i < Samples; i++ {
		t := cam.A.Scale((rng.Float64() - 0.5) * aperture).
			Add(cam.B.Scale((rng.Float64() - 0.5) * aperture))

		ux := rng.Float64()
		uy := rng.Float64()
		dir := t.Scale(-1).
			Add(cam.A.Scale(ux + x).Add(cam.B.Scale(y + uy)).Add(cam.C).Scale(focus)).
			Normalize()

		c := trace.Sample(scene.Ray{Origin: Eye.Add(t), Dir: dir}, rng)
		acc = c.Scale(gain).Add(acc)
	}
	return [3]uint8{Saturate(acc[0]), Saturate(acc[1]), Saturate(acc[2])}
}
