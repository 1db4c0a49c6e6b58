package overlay

import (
	"testing"

	"github.com/tvoss/image-measure-go/domain/measure"
)

func TestBuild_Empty(t *testing.T) {
	if s := Build(nil, nil, false); !s.Empty() {
		t.Fatalf("no inputs should build an empty scene: %+v", s)
	}
}

func TestBuild_OpenPath(t *testing.T) {
	verts := []measure.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	s := Build(nil, verts, false)
	if s.Fill != nil {
		t.Fatalf("open path must not fill")
	}
	if len(s.Segments) != 2 {
		t.Fatalf("expected 2 segments for 3 open vertices, got %d", len(s.Segments))
	}
	if len(s.Markers) != 3 {
		t.Fatalf("expected a marker per vertex, got %d", len(s.Markers))
	}
	for _, seg := range s.Segments {
		if seg.Dashed {
			t.Fatalf("path segments must be solid")
		}
	}
}

func TestBuild_ClosedLoopFillsAndCloses(t *testing.T) {
	verts := []measure.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	s := Build(nil, verts, true)
	if s.Fill == nil || len(s.Fill.Vertices) != 3 {
		t.Fatalf("closed loop should carry a fill polygon: %+v", s.Fill)
	}
	if len(s.Segments) != 3 {
		t.Fatalf("closed triangle should draw 3 segments, got %d", len(s.Segments))
	}
	last := s.Segments[2]
	if last.From != verts[2] || last.To != verts[0] {
		t.Fatalf("closing segment should join last to first: %+v", last)
	}
}

func TestBuild_CalibrationDashedSegment(t *testing.T) {
	calib := []measure.Point{{X: 0, Y: 0}, {X: 100, Y: 0}}
	s := Build(calib, nil, false)
	if len(s.Segments) != 1 || !s.Segments[0].Dashed {
		t.Fatalf("complete pair should draw one dashed segment: %+v", s.Segments)
	}
	if len(s.Markers) != 2 || s.Markers[0].Radius != CalibrationMarkerRadius {
		t.Fatalf("expected two calibration markers: %+v", s.Markers)
	}
}

func TestScaled(t *testing.T) {
	s := Build([]measure.Point{{X: 2, Y: 4}, {X: 6, Y: 8}}, []measure.Point{{X: 10, Y: 20}, {X: 30, Y: 40}, {X: 50, Y: 0}}, true)
	half := s.Scaled(0.5)
	if half.Fill == nil || half.Fill.Vertices[1] != (measure.Point{X: 15, Y: 20}) {
		t.Fatalf("fill vertices should scale: %+v", half.Fill)
	}
	if half.Markers[0].At != (measure.Point{X: 5, Y: 10}) {
		t.Fatalf("marker position should scale: %+v", half.Markers[0])
	}
	if half.Markers[0].Radius != s.Markers[0].Radius {
		t.Fatalf("marker radius must keep screen size")
	}
	if half.Segments[0].Width != s.Segments[0].Width {
		t.Fatalf("stroke width must keep screen size")
	}
}

func TestBuild_SingleCalibrationPointNoSegment(t *testing.T) {
	s := Build([]measure.Point{{X: 5, Y: 5}}, nil, false)
	if len(s.Segments) != 0 || len(s.Markers) != 1 {
		t.Fatalf("one point draws a lone marker: %+v", s)
	}
}
