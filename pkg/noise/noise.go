// Package noise implements the deterministic scalar fields the planet
// shaders are built from: lattice hashing, value noise, fractal sums,
// cellular (Voronoi) distance and ridged noise.
//
// Every function is pure. The same inputs always give the same output,
// so a vertex displacement and the normal recomputed from it agree.
package noise

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Hash3 maps an integer lattice point to a value in [0, 1).
func Hash3(x, y, z int32) float64 {
	n := x + y*57 + z*113
	n = (n << 13) ^ n
	nn := n * (n*(n*15731+789221) + 1376312589)
	return float64(nn&0x7fffffff) / (1 << 31)
}

// Hash2 is Hash3 on the z=0 plane.
func Hash2(x, y int32) float64 {
	return Hash3(x, y, 0)
}

// Simple is a sine hash over continuous coordinates. Result in [0, 1).
func Simple(x, y float64) float64 {
	seed := math.Abs(math.Sin((x*12.9898 + y*78.233) * 43758.5453))
	return Fract(seed * 1000)
}

// Perlin returns smoothed value noise in [0, 1): the fractional
// position inside the lattice cell is eased with 3t²-2t³ and the eight
// corner hashes are blended trilinearly.
func Perlin(x, y, z float64) float64 {
	fx, fy, fz := math.Floor(x), math.Floor(y), math.Floor(z)
	xi, yi, zi := int32(fx), int32(fy), int32(fz)

	u := ease(x - fx)
	v := ease(y - fy)
	w := ease(z - fz)

	aaa := Hash3(xi, yi, zi)
	baa := Hash3(xi+1, yi, zi)
	aba := Hash3(xi, yi+1, zi)
	bba := Hash3(xi+1, yi+1, zi)
	aab := Hash3(xi, yi, zi+1)
	bab := Hash3(xi+1, yi, zi+1)
	abb := Hash3(xi, yi+1, zi+1)
	bbb := Hash3(xi+1, yi+1, zi+1)

	y1 := Mix(Mix(aaa, baa, u), Mix(aba, bba, u), v)
	y2 := Mix(Mix(aab, bab, u), Mix(abb, bbb, u), v)
	return Mix(y1, y2, w)
}

func ease(t float64) float64 {
	return t * t * (3 - 2*t)
}

// FBM sums octaves of Simple at doubling frequency and halving
// amplitude, starting at 0.5. The result lies in [0, 1-0.5^octaves).
// Non-positive octave counts return 0.
func FBM(x, y float64, octaves int) float64 {
	var value float64
	amplitude := 0.5
	for range max(octaves, 0) {
		value += amplitude * Simple(x, y)
		x *= 2
		y *= 2
		amplitude *= 0.5
	}
	return value
}

// FBM3D is FBM over Perlin noise.
func FBM3D(x, y, z float64, octaves int) float64 {
	var value float64
	amplitude, frequency := 0.5, 1.0
	for range max(octaves, 0) {
		value += amplitude * Perlin(x*frequency, y*frequency, z*frequency)
		frequency *= 2
		amplitude *= 0.5
	}
	return value
}

// Voronoi returns the distance from (x, y) to the nearest jittered
// feature point in the surrounding 3×3 block of cells. Each cell's
// feature point is the cell corner offset by Simple noise in [0, 1).
func Voronoi(x, y float64) float64 {
	cx, cy := math.Floor(x), math.Floor(y)
	minDist := math.Inf(1)

	for i := -1.0; i <= 1; i++ {
		for j := -1.0; j <= 1; j++ {
			fx, fy := FeaturePoint(cx+i, cy+j)
			minDist = math.Min(minDist, math.Hypot(x-fx, y-fy))
		}
	}
	return minDist
}

// FeaturePoint returns the jittered feature point of the cell whose
// lower corner is (cx, cy).
func FeaturePoint(cx, cy float64) (float64, float64) {
	return cx + Simple(cx, cy), cy + Simple(cy, cx)
}

// Ridge folds each octave of Simple noise with 1-|2n-1| before summing
// it with fBm weights. The result lies in [0, 1-0.5^octaves].
func Ridge(x, y float64, octaves int) float64 {
	var value float64
	amplitude, frequency := 0.5, 1.0
	for range max(octaves, 0) {
		n := Simple(x*frequency, y*frequency)
		value += (1 - math.Abs(2*n-1)) * amplitude
		frequency *= 2
		amplitude *= 0.5
	}
	return value
}

// Smoothstep performs Hermite interpolation of x between edge0 and
// edge1. Reversed edges (edge0 > edge1) produce a falling curve.
// Equal edges behave as a step at edge0.
func Smoothstep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// Mix linearly interpolates between a and b.
func Mix(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// Fract returns the fractional part x - floor(x).
func Fract(x float64) float64 {
	return x - math.Floor(x)
}

// Clamp returns f clamped to [low, high].
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}
