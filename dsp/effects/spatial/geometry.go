package spatial

import (
	"fmt"
	"math"
)

// Point is a position on the listening plane.
type Point struct {
	X, Y float64
}

// Geometry fixes the ear positions and the distance at which gain reaches 0.
type Geometry struct {
	LeftEar     Point
	RightEar    Point
	MaxDistance float64
}

// DefaultGeometry places the ears 20 units apart in the middle of a
// 100 × 100 field.
func DefaultGeometry() Geometry {
	return Geometry{
		LeftEar:     Point{X: 40, Y: 50},
		RightEar:    Point{X: 60, Y: 50},
		MaxDistance: 100,
	}
}

// Validate reports whether the geometry is usable.
func (g Geometry) Validate() error {
	for _, v := range []float64{g.LeftEar.X, g.LeftEar.Y, g.RightEar.X, g.RightEar.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("spatial ear position must be finite: %f", v)
		}
	}
	if g.MaxDistance <= 0 || math.IsNaN(g.MaxDistance) || math.IsInf(g.MaxDistance, 0) {
		return fmt.Errorf("spatial max distance must be > 0 and finite: %f", g.MaxDistance)
	}
	return nil
}

// Midpoint returns the point halfway between the ears.
func (g Geometry) Midpoint() Point {
	return Point{
		X: (g.LeftEar.X + g.RightEar.X) / 2,
		Y: (g.LeftEar.Y + g.RightEar.Y) / 2,
	}
}

// Distance returns the Euclidean distance between p and ear.
func Distance(p, ear Point) float64 {
	dx := p.X - ear.X
	dy := ear.Y - p.Y
	return mathSqrt(dx*dx + dy*dy)
}

// DelaySamples converts a distance to a delay length. One distance unit is
// one millisecond.
func DelaySamples(sampleRate, dist float64) float64 {
	return sampleRate / 1000 * dist
}

// Gain returns the linear attenuation for dist. It is not clamped: beyond
// maxDistance the gain turns negative.
func Gain(maxDistance, dist float64) float64 {
	return (maxDistance - dist) / maxDistance
}
