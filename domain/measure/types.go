package measure

import "math"

// Point is an immutable coordinate in image pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CalibrationPair holds the zero to two points that define the scale
// reference segment. Adding a third point restarts the pair. The zero
// value is an empty pair and ready to use.
type CalibrationPair struct {
	points []Point
}

// Add records a calibration point. If the pair is already complete the
// prior points are discarded and the pair restarts with p.
func (c *CalibrationPair) Add(p Point) {
	if c == nil {
		return
	}
	if len(c.points) >= 2 {
		c.points = c.points[:0]
	}
	c.points = append(c.points, p)
}

// Len returns the number of recorded points (0..2).
func (c *CalibrationPair) Len() int {
	if c == nil {
		return 0
	}
	return len(c.points)
}

// Complete reports whether both reference points have been picked.
func (c *CalibrationPair) Complete() bool { return c.Len() == 2 }

// Points returns a copy of the recorded points.
func (c *CalibrationPair) Points() []Point {
	if c == nil || len(c.points) == 0 {
		return nil
	}
	out := make([]Point, len(c.points))
	copy(out, c.points)
	return out
}

// PixelLength returns the Euclidean distance between the two reference
// points, or 0 when the pair is incomplete.
func (c *CalibrationPair) PixelLength() float64 {
	if !c.Complete() {
		return 0
	}
	return Distance(c.points[0], c.points[1])
}

// Reset discards any recorded points.
func (c *CalibrationPair) Reset() {
	if c != nil {
		c.points = c.points[:0]
	}
}

// Path is the ordered vertex sequence being measured, optionally closed
// into a polygon. Invariant: closed is only ever set while the path holds
// at least three vertices; removals that drop below three force it open.
// The zero value is an empty open path.
type Path struct {
	vertices []Point
	closed   bool
}

// AddVertex appends p to the path. Adding to a closed path discards all
// vertices and starts a new open path containing only p. The return value
// reports whether the path was restarted.
func (p *Path) AddVertex(pt Point) (restarted bool) {
	if p == nil {
		return false
	}
	if p.closed {
		p.vertices = p.vertices[:0]
		p.closed = false
		restarted = true
	}
	p.vertices = append(p.vertices, pt)
	return restarted
}

// RemoveLast drops the most recently added vertex. It is a no-op on an
// empty path. Dropping below three vertices forces the path open.
func (p *Path) RemoveLast() bool {
	if p == nil || len(p.vertices) == 0 {
		return false
	}
	p.vertices = p.vertices[:len(p.vertices)-1]
	if len(p.vertices) < 3 {
		p.closed = false
	}
	return true
}

// Close marks the path as a closed polygon. Effective only when the path
// holds at least three vertices and is not already closed.
func (p *Path) Close() bool {
	if p == nil || p.closed || len(p.vertices) < 3 {
		return false
	}
	p.closed = true
	return true
}

// Clear discards all vertices and opens the path.
func (p *Path) Clear() {
	if p == nil {
		return
	}
	p.vertices = p.vertices[:0]
	p.closed = false
}

// Len returns the vertex count.
func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return len(p.vertices)
}

// Closed reports whether the path forms a closed polygon.
func (p *Path) Closed() bool { return p != nil && p.closed }

// Vertices returns a copy of the vertex sequence.
func (p *Path) Vertices() []Point {
	if p == nil || len(p.vertices) == 0 {
		return nil
	}
	out := make([]Point, len(p.vertices))
	copy(out, p.vertices)
	return out
}

// Scale converts pixel distances into real-world units. It is never left
// in an invalid state: candidate values are validated before mutation.
type Scale struct {
	UnitName      string  `json:"unit_name"`
	UnitsPerPixel float64 `json:"units_per_pixel"`
}

// DefaultScale returns the pixel identity scale.
func DefaultScale() Scale { return Scale{UnitName: UnitPixels, UnitsPerPixel: 1} }

// SetUnitsPerPixel overrides the conversion factor. Non-finite or
// non-positive candidates are rejected and leave the scale unchanged.
func (s *Scale) SetUnitsPerPixel(v float64) bool {
	if s == nil || !validUnitsPerPixel(v) {
		return false
	}
	s.UnitsPerPixel = v
	return true
}

// SetUnitName switches the active unit. Selecting pixels pins the
// conversion factor back to 1.
func (s *Scale) SetUnitName(name string) {
	if s == nil {
		return
	}
	s.UnitName = name
	if name == UnitPixels {
		s.UnitsPerPixel = 1
	}
}

func validUnitsPerPixel(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
