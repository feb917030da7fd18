// Package scene holds the fixed sphere field and the ray intersection test.
package scene

import (
	"math"

	"cardtrace/internal/mathutil"
)

// Rows is the sphere field. Bit k of row j places a unit sphere at (-k, 0, -j-4).
var Rows = [...]uint32{247570, 280596, 280600, 249748, 18578, 18577, 231184, 16, 16}

const (
	// Cols is the number of bits scanned per row.
	Cols = 19
	// Epsilon rejects hits at the ray origin so bounce rays don't see their own surface.
	Epsilon = 0.01
	// Far is the distance reported when nothing is hit.
	Far = 1e9
)

// Kind tags what a ray ran into.
type Kind int

const (
	Sky Kind = iota
	Floor
	Sphere
)

func (k Kind) String() string {
	switch k {
	case Floor:
		return "floor"
	case Sphere:
		return "sphere"
	default:
		return "sky"
	}
}

// Ray is an origin plus a unit direction.
type Ray struct {
	Origin mathutil.Vec3
	Dir    mathutil.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mathutil.Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// Hit is the nearest obstruction along a ray.
// Dist is meaningful for Floor and Sphere; Normal is the sphere normal, or Up otherwise.
type Hit struct {
	Kind   Kind
	Dist   float64
	Normal mathutil.Vec3
}

// Has reports whether grid cell (k, j) holds a sphere.
func Has(k, j int) bool {
	if k < 0 || k >= Cols || j < 0 || j >= len(Rows) {
		return false
	}
	return Rows[j]&(1<<uint(k)) != 0
}

// Center returns the sphere center for grid cell (k, j).
func Center(k, j int) mathutil.Vec3 {
	return mathutil.Vec3{float64(-k), 0, float64(-j - 4)}
}

// Spheres lists every sphere center in scan order.
func Spheres() []mathutil.Vec3 {
	var out []mathutil.Vec3
	for k := 0; k < Cols; k++ {
		for j := range Rows {
			if Has(k, j) {
				out = append(out, Center(k, j))
			}
		}
	}
	return out
}

// Intersect finds the nearest of the floor plane and the sphere field.
// The scan is brute force: k outer, j inner, first sphere wins exact ties.
func Intersect(r Ray) Hit {
	hit := Hit{Kind: Sky, Dist: Far, Normal: mathutil.Up}

	if d := -r.Origin[2] / r.Dir[2]; d > Epsilon {
		hit.Kind = Floor
		hit.Dist = d
	}

	for k := 0; k < Cols; k++ {
		for j := range Rows {
			if Rows[j]&(1<<uint(k)) == 0 {
				continue
			}
			p := r.Origin.Sub(Center(k, j))
			b := p.Dot(r.Dir)
			c := p.Dot(p) - 1
			q := b*b - c
			if q <= 0 {
				continue
			}
			s := -b - math.Sqrt(q)
			if s < hit.Dist && s > Epsilon {
				hit.Kind = Sphere
				hit.Dist = s
				hit.Normal = p.Add(r.Dir.Scale(s)).Normalize()
			}
		}
	}
	return hit
}
