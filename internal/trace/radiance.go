// Package trace resolves the color seen along a ray.
package trace

import (
	"math"

	"cardtrace/internal/mathutil"
	"cardtrace/internal/scene"
)

// Rand is a uniform [0,1) source. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// MaxBounces caps the reflection chain. Near-tangent geometry could otherwise
// recurse without reaching the sky or the floor.
const MaxBounces = 64

var (
	// Light is the light position before per-sample jitter on x and y.
	Light = mathutil.Vec3{9, 9, 16}

	skyColor  = mathutil.Vec3{0.7, 0.6, 1.0}
	tileRed   = mathutil.Vec3{3, 1, 1}
	tileWhite = mathutil.Vec3{3, 3, 3}
)

// Sample returns the radiance along r. r.Dir must be normalized.
func Sample(r scene.Ray, rng Rand) mathutil.Vec3 {
	return sample(r, rng, 0)
}

func sample(r scene.Ray, rng Rand, depth int) mathutil.Vec3 {
	hit := scene.Intersect(r)
	if hit.Kind == scene.Sky {
		return Sky(r.Dir)
	}

	h := r.At(hit.Dist)
	n := hit.Normal

	// x jitter is drawn before y.
	jx := rng.Float64()
	jy := rng.Float64()
	l := Light.Add(mathutil.Vec3{jx, jy, 0}).Sub(h).Normalize()

	refl := r.Dir.Add(n.Scale(n.Dot(r.Dir) * -2))

	b := l.Dot(n)
	if b < 0 || scene.Intersect(scene.Ray{Origin: h, Dir: l}).Kind != scene.Sky {
		b = 0
	}

	if hit.Kind == scene.Floor {
		return Tile(h).Scale(b*0.2 + 0.1)
	}

	p := Specular(l.Dot(refl), b)
	spec := mathutil.Vec3{p, p, p}
	if depth+1 >= MaxBounces {
		return spec
	}
	return spec.Add(sample(scene.Ray{Origin: h, Dir: refl}, rng, depth+1).Scale(0.5))
}

// Sky is the gradient seen by a ray that escapes the scene.
func Sky(dir mathutil.Vec3) mathutil.Vec3 {
	return skyColor.Scale(math.Pow(1-dir[2], 4))
}

// Tile returns the checker color of the floor at h. The cell is red when
// ceil(x/5)+ceil(y/5) is odd.
func Tile(h mathutil.Vec3) mathutil.Vec3 {
	if (int(math.Ceil(h[0]*0.2))+int(math.Ceil(h[1]*0.2)))&1 == 1 {
		return tileRed
	}
	return tileWhite
}

// Specular raises the light/reflection cosine to the 96th power, zeroed when
// the point is unlit.
func Specular(cos, lambert float64) float64 {
	if lambert <= 0 {
		cos = 0
	}
	x := math.Pow(cos, 24)
	x *= x
	return x * x
}
