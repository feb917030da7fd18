package main

import (
	"fmt"
	"os"

	"cardtrace/internal/mathutil"
	"cardtrace/internal/output"
	"cardtrace/internal/scene"
)

// With no arguments, prints the sphere field and probe ray results.
// With a PPM path, prints image statistics.
func main() {
	if len(os.Args) > 1 {
		if err := inspectPPM(os.Args[1]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("Sphere field: %d rows x %d cols, %d spheres\n", len(scene.Rows), scene.Cols, len(scene.Spheres()))
	for j := range scene.Rows {
		line := make([]byte, scene.Cols)
		for k := 0; k < scene.Cols; k++ {
			line[k] = '.'
			if scene.Has(k, j) {
				line[k] = '#'
			}
		}
		fmt.Printf("  z=%-4d %s\n", -j-4, line)
	}

	probes := []scene.Ray{
		{Origin: mathutil.Vec3{0, 0, 5}, Dir: mathutil.Vec3{0, 0, -1}},
		{Origin: mathutil.Vec3{0, 0, 0}, Dir: mathutil.Vec3{0, 0, 1}},
		{Origin: mathutil.Vec3{-16, 0, -2}, Dir: mathutil.Vec3{0, 0, -1}},
	}
	fmt.Println("Probes:")
	for _, r := range probes {
		h := scene.Intersect(r)
		fmt.Printf("  %v -> %v  %-6s dist=%.4f normal=%v\n", r.Origin, r.Dir, h.Kind, h.Dist, h.Normal)
	}
}

func inspectPPM(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fb, err := output.ReadPPM(f)
	if err != nil {
		return err
	}

	var sum [3]float64
	lo := [3]uint8{255, 255, 255}
	var hi [3]uint8
	for i, v := range fb.Color {
		c := i % 3
		sum[c] += float64(v)
		lo[c] = min(lo[c], v)
		hi[c] = max(hi[c], v)
	}
	n := float64(fb.Width * fb.Height)
	fmt.Printf("%s: %dx%d\n", path, fb.Width, fb.Height)
	for c, name := range []string{"R", "G", "B"} {
		fmt.Printf("  %s: min=%d max=%d mean=%.2f\n", name, lo[c], hi[c], sum[c]/n)
	}
	return nil
}
