package measure

import (
	"math"
	"testing"
)

func TestCalibrationPair_RestartsOnThirdPoint(t *testing.T) {
	var c CalibrationPair
	c.Add(Point{0, 0})
	c.Add(Point{100, 0})
	if !c.Complete() || !almostEqual(c.PixelLength(), 100) {
		t.Fatalf("expected complete pair of length 100, got len=%d length=%v", c.Len(), c.PixelLength())
	}
	// A third point discards both and restarts the pair.
	c.Add(Point{5, 5})
	if c.Len() != 1 || c.Complete() {
		t.Fatalf("expected restarted pair with one point, got %d", c.Len())
	}
	pts := c.Points()
	if len(pts) != 1 || pts[0] != (Point{5, 5}) {
		t.Fatalf("unexpected surviving points: %v", pts)
	}
}

func TestCalibrationPair_PixelLengthIncomplete(t *testing.T) {
	var c CalibrationPair
	c.Add(Point{3, 4})
	if l := c.PixelLength(); l != 0 {
		t.Fatalf("incomplete pair should report 0, got %v", l)
	}
}

func TestPath_AddVertexOnClosedRestarts(t *testing.T) {
	var p Path
	p.AddVertex(Point{0, 0})
	p.AddVertex(Point{10, 0})
	p.AddVertex(Point{10, 10})
	if !p.Close() {
		t.Fatalf("close should succeed with three vertices")
	}
	restarted := p.AddVertex(Point{50, 50})
	if !restarted || p.Len() != 1 || p.Closed() {
		t.Fatalf("expected fresh open path of length 1, got len=%d closed=%v", p.Len(), p.Closed())
	}
	if v := p.Vertices(); v[0] != (Point{50, 50}) {
		t.Fatalf("new path should contain only the new vertex, got %v", v)
	}
}

func TestPath_RemoveLastForcesOpen(t *testing.T) {
	var p Path
	for _, pt := range []Point{{0, 0}, {10, 0}, {10, 10}} {
		p.AddVertex(pt)
	}
	p.Close()
	if !p.RemoveLast() {
		t.Fatalf("remove should report success")
	}
	if p.Closed() {
		t.Fatalf("path below three vertices must not stay closed")
	}
	if p.Len() != 2 {
		t.Fatalf("expected 2 vertices, got %d", p.Len())
	}
	// Draining the path is a terminal no-op.
	p.RemoveLast()
	p.RemoveLast()
	if p.RemoveLast() {
		t.Fatalf("remove on empty path must be a no-op")
	}
}

func TestPath_CloseRequiresThreeVertices(t *testing.T) {
	var p Path
	p.AddVertex(Point{0, 0})
	p.AddVertex(Point{1, 0})
	if p.Close() {
		t.Fatalf("close must fail with fewer than three vertices")
	}
	p.AddVertex(Point{1, 1})
	if !p.Close() {
		t.Fatalf("close should succeed with three vertices")
	}
	if p.Close() {
		t.Fatalf("close on an already closed path must be a no-op")
	}
}

func TestScale_SetUnitsPerPixelValidation(t *testing.T) {
	s := DefaultScale()
	for _, bad := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if s.SetUnitsPerPixel(bad) {
			t.Fatalf("candidate %v should be rejected", bad)
		}
		if s.UnitsPerPixel != 1 {
			t.Fatalf("rejected candidate must leave scale unchanged, got %v", s.UnitsPerPixel)
		}
	}
	if !s.SetUnitsPerPixel(0.5) || s.UnitsPerPixel != 0.5 {
		t.Fatalf("valid candidate should apply, got %v", s.UnitsPerPixel)
	}
}

func TestScale_PixelUnitPinsFactor(t *testing.T) {
	s := DefaultScale()
	s.SetUnitName("cm")
	s.SetUnitsPerPixel(0.25)
	s.SetUnitName(UnitPixels)
	if s.UnitsPerPixel != 1 {
		t.Fatalf("selecting px must force units-per-pixel back to 1, got %v", s.UnitsPerPixel)
	}
}
