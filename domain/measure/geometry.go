package measure

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// PathLength returns the total length of a polyline in pixel units.
// Closed paths with at least three vertices include the segment back to
// the first vertex. Fewer than two vertices yield 0.
func PathLength(points []Point, closed bool) float64 {
	if len(points) < 2 {
		return 0
	}
	segments := make([]float64, 0, len(points))
	for i := 1; i < len(points); i++ {
		segments = append(segments, Distance(points[i-1], points[i]))
	}
	if closed && len(points) >= 3 {
		segments = append(segments, Distance(points[len(points)-1], points[0]))
	}
	return floats.Sum(segments)
}

// PolygonArea returns the area enclosed by points using the shoelace
// formula. Fewer than three vertices yield 0.
func PolygonArea(points []Point) float64 {
	if len(points) < 3 {
		return 0
	}
	area := 0.0
	for i, p := range points {
		q := points[(i+1)%len(points)]
		area += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(area) / 2
}

// CanCloseLoop reports whether points can form a closed polygon.
func CanCloseLoop(points []Point) bool { return len(points) >= 3 }
