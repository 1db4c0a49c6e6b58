// Package overlay builds the drawable scene for the measurement preview:
// calibration markers, the traced polyline and the filled loop region. The
// scene is pure data in natural image coordinates; rendering and coordinate
// mapping happen elsewhere.
package overlay

import (
	"image/color"

	"github.com/tvoss/image-measure-go/domain/measure"
)

const (
	CalibrationMarkerRadius = 6
	VertexMarkerRadius      = 5
	SegmentWidth            = 2
)

var (
	calibrationColor = color.NRGBA{R: 0xdc, G: 0x35, B: 0x45, A: 0xff}
	pathColor        = color.NRGBA{R: 0x28, G: 0xa7, B: 0x45, A: 0xff}
	fillColor        = color.NRGBA{R: 0x28, G: 0xa7, B: 0x45, A: 0x40}
)

// Marker is a filled disc at a picked point.
type Marker struct {
	At     measure.Point
	Radius float64
	Fill   color.NRGBA
}

// Segment is a stroked line between two points. Dashed segments render
// with a 6-on 4-off pattern.
type Segment struct {
	From   measure.Point
	To     measure.Point
	Width  float64
	Dashed bool
	Stroke color.NRGBA
}

// Polygon is a filled region bounded by the traced loop.
type Polygon struct {
	Vertices []measure.Point
	Fill     color.NRGBA
}

// Scene is the full overlay draw list, back to front: fill, segments,
// markers.
type Scene struct {
	Fill     *Polygon
	Segments []Segment
	Markers  []Marker
}

// Scaled returns a copy of the scene with every coordinate multiplied by
// factor. Marker radii, stroke widths and dash patterns keep their
// on-screen size.
func (s Scene) Scaled(factor float64) Scene {
	if factor == 1 {
		return s
	}
	at := func(p measure.Point) measure.Point {
		return measure.Point{X: p.X * factor, Y: p.Y * factor}
	}
	out := Scene{}
	if s.Fill != nil {
		verts := make([]measure.Point, len(s.Fill.Vertices))
		for i, p := range s.Fill.Vertices {
			verts[i] = at(p)
		}
		out.Fill = &Polygon{Vertices: verts, Fill: s.Fill.Fill}
	}
	for _, seg := range s.Segments {
		seg.From, seg.To = at(seg.From), at(seg.To)
		out.Segments = append(out.Segments, seg)
	}
	for _, mk := range s.Markers {
		mk.At = at(mk.At)
		out.Markers = append(out.Markers, mk)
	}
	return out
}

// Empty reports whether the scene has nothing to draw.
func (s Scene) Empty() bool {
	return s.Fill == nil && len(s.Segments) == 0 && len(s.Markers) == 0
}

// Build assembles the scene for the current calibration points and traced
// path. Calibration renders as red discs joined by a dashed segment once
// both points exist; the path renders as a green polyline with vertex
// discs, closed and filled when it forms a loop.
func Build(calibration []measure.Point, vertices []measure.Point, closed bool) Scene {
	var scene Scene

	if closed && len(vertices) >= 3 {
		scene.Fill = &Polygon{Vertices: append([]measure.Point(nil), vertices...), Fill: fillColor}
	}
	for i := 1; i < len(vertices); i++ {
		scene.Segments = append(scene.Segments, Segment{
			From:   vertices[i-1],
			To:     vertices[i],
			Width:  SegmentWidth,
			Stroke: pathColor,
		})
	}
	if closed && len(vertices) >= 3 {
		scene.Segments = append(scene.Segments, Segment{
			From:   vertices[len(vertices)-1],
			To:     vertices[0],
			Width:  SegmentWidth,
			Stroke: pathColor,
		})
	}
	if len(calibration) == 2 {
		scene.Segments = append(scene.Segments, Segment{
			From:   calibration[0],
			To:     calibration[1],
			Width:  SegmentWidth,
			Dashed: true,
			Stroke: calibrationColor,
		})
	}

	for _, p := range vertices {
		scene.Markers = append(scene.Markers, Marker{At: p, Radius: VertexMarkerRadius, Fill: pathColor})
	}
	for _, p := range calibration {
		scene.Markers = append(scene.Markers, Marker{At: p, Radius: CalibrationMarkerRadius, Fill: calibrationColor})
	}
	return scene
}
