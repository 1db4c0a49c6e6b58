package images

import (
	"image"
	"image/color"
	"testing"

	"github.com/tvoss/image-measure-go/domain/measure"
	"github.com/tvoss/image-measure-go/ui/overlay"
)

func whiteBase(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
		}
	}
	return img
}

func TestCompose_EmptySceneCopiesBase(t *testing.T) {
	base := whiteBase(20, 20)
	out := Compose(base, overlay.Scene{})
	if out == nil || out.Bounds() != base.Bounds() {
		t.Fatalf("expected same-size copy")
	}
	if out.RGBAAt(10, 10) != base.RGBAAt(10, 10) {
		t.Fatalf("empty scene should leave pixels untouched")
	}
	// Must be a copy, not the same buffer.
	out.SetRGBA(0, 0, color.RGBA{0, 0, 0, 255})
	if base.RGBAAt(0, 0) == out.RGBAAt(0, 0) {
		t.Fatalf("compose must not alias the base image")
	}
}

func TestCompose_MarkerCoversCenter(t *testing.T) {
	base := whiteBase(40, 40)
	scene := overlay.Scene{Markers: []overlay.Marker{{
		At:     measure.Point{X: 20, Y: 20},
		Radius: 5,
		Fill:   color.NRGBA{R: 255, A: 255},
	}}}
	out := Compose(base, scene)
	got := out.RGBAAt(20, 20)
	if got.R < 200 || got.G > 50 {
		t.Fatalf("marker center should be red, got %+v", got)
	}
	if edge := out.RGBAAt(2, 2); edge.G < 200 {
		t.Fatalf("far corner should stay white, got %+v", edge)
	}
}

func TestCompose_SegmentStrokesMidpoint(t *testing.T) {
	base := whiteBase(40, 40)
	scene := overlay.Scene{Segments: []overlay.Segment{{
		From:   measure.Point{X: 0, Y: 20},
		To:     measure.Point{X: 40, Y: 20},
		Width:  2,
		Stroke: color.NRGBA{G: 128, A: 255},
	}}}
	out := Compose(base, scene)
	if got := out.RGBAAt(20, 20); got.R > 200 {
		t.Fatalf("midpoint should be stroked, got %+v", got)
	}
}

func TestCompose_DashedSegmentHasGaps(t *testing.T) {
	base := whiteBase(60, 20)
	scene := overlay.Scene{Segments: []overlay.Segment{{
		From:   measure.Point{X: 0, Y: 10},
		To:     measure.Point{X: 60, Y: 10},
		Width:  2,
		Dashed: true,
		Stroke: color.NRGBA{R: 255, A: 255},
	}}}
	out := Compose(base, scene)
	// 6-on 4-off: x=2 falls inside the first dash, x=8 inside the first gap.
	if on := out.RGBAAt(2, 10); on.G > 200 {
		t.Fatalf("dash-on pixel should be stroked, got %+v", on)
	}
	if off := out.RGBAAt(8, 10); off.G < 200 {
		t.Fatalf("dash-off pixel should stay white, got %+v", off)
	}
}

func TestCompose_PolygonFillIsTranslucent(t *testing.T) {
	base := whiteBase(40, 40)
	scene := overlay.Scene{Fill: &overlay.Polygon{
		Vertices: []measure.Point{{X: 5, Y: 5}, {X: 35, Y: 5}, {X: 35, Y: 35}, {X: 5, Y: 35}},
		Fill:     color.NRGBA{G: 255, A: 0x40},
	}}
	out := Compose(base, scene)
	got := out.RGBAAt(20, 20)
	// Translucent green over white: green stays high, red and blue drop.
	if got.G < 200 || got.R > 230 {
		t.Fatalf("fill should tint interior, got %+v", got)
	}
	if outside := out.RGBAAt(2, 2); outside.R < 250 {
		t.Fatalf("outside should stay white, got %+v", outside)
	}
}

func TestFitPreview(t *testing.T) {
	small := whiteBase(100, 50)
	if got := FitPreview(small, 200, 200); got != image.Image(small) {
		t.Fatalf("image already within bounds should pass through")
	}
	big := whiteBase(800, 400)
	scaled := FitPreview(big, 400, 400)
	b := scaled.Bounds()
	if b.Dx() != 400 || b.Dy() != 200 {
		t.Fatalf("expected 400x200 fit, got %dx%d", b.Dx(), b.Dy())
	}
}
