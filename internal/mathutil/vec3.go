package mathutil

import (
	"fmt"
	"math"
)

// Vec3 is a 3-component vector (value type, stack-allocated).
// Colors reuse it as RGB.
type Vec3 [3]float64

// Up is the floor normal.
var Up = Vec3{0, 0, 1}

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

func (a Vec3) Dot(b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize scales v by 1/|v|. A zero or non-finite length is a caller bug
// and panics instead of producing NaNs downstream.
func (v Vec3) Normalize() Vec3 {
	d := v.Dot(v)
	if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		panic(fmt.Sprintf("mathutil: normalize of degenerate vector %v", v))
	}
	return v.Scale(1 / math.Sqrt(d))
}
