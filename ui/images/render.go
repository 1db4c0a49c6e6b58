package images

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/tvoss/image-measure-go/domain/measure"
	"github.com/tvoss/image-measure-go/ui/overlay"
)

// Compose renders the overlay scene onto a copy of base and returns the
// result. Scene coordinates are interpreted in base's pixel space, so the
// caller maps them before drawing when the preview is scaled.
func Compose(base image.Image, scene overlay.Scene) *image.RGBA {
	if base == nil {
		return nil
	}
	b := base.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), base, b.Min, draw.Src)

	if scene.Fill != nil && len(scene.Fill.Vertices) >= 3 {
		fillPolygon(dst, scene.Fill.Vertices, scene.Fill.Fill)
	}
	for _, seg := range scene.Segments {
		drawSegment(dst, seg)
	}
	for _, mk := range scene.Markers {
		fillDisc(dst, mk.At, mk.Radius, mk.Fill)
	}
	return dst
}

func rasterize(dst *image.RGBA, c color.NRGBA, trace func(z *vector.Rasterizer)) {
	z := vector.NewRasterizer(dst.Bounds().Dx(), dst.Bounds().Dy())
	trace(z)
	z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

func fillPolygon(dst *image.RGBA, vertices []measure.Point, c color.NRGBA) {
	rasterize(dst, c, func(z *vector.Rasterizer) {
		z.MoveTo(float32(vertices[0].X), float32(vertices[0].Y))
		for _, p := range vertices[1:] {
			z.LineTo(float32(p.X), float32(p.Y))
		}
		z.ClosePath()
	})
}

const (
	dashOn  = 6.0
	dashOff = 4.0
)

func drawSegment(dst *image.RGBA, seg overlay.Segment) {
	length := measure.Distance(seg.From, seg.To)
	if length == 0 {
		return
	}
	if !seg.Dashed {
		strokeLine(dst, seg.From, seg.To, seg.Width, seg.Stroke)
		return
	}
	ux := (seg.To.X - seg.From.X) / length
	uy := (seg.To.Y - seg.From.Y) / length
	for pos := 0.0; pos < length; pos += dashOn + dashOff {
		end := math.Min(pos+dashOn, length)
		from := measure.Point{X: seg.From.X + ux*pos, Y: seg.From.Y + uy*pos}
		to := measure.Point{X: seg.From.X + ux*end, Y: seg.From.Y + uy*end}
		strokeLine(dst, from, to, seg.Width, seg.Stroke)
	}
}

// strokeLine fills the rectangle swept by a line of the given width.
func strokeLine(dst *image.RGBA, from, to measure.Point, width float64, c color.NRGBA) {
	length := measure.Distance(from, to)
	if length == 0 {
		return
	}
	if width <= 0 {
		width = 1
	}
	// Half-width normal to the direction of travel.
	nx := -(to.Y - from.Y) / length * width / 2
	ny := (to.X - from.X) / length * width / 2
	rasterize(dst, c, func(z *vector.Rasterizer) {
		z.MoveTo(float32(from.X+nx), float32(from.Y+ny))
		z.LineTo(float32(to.X+nx), float32(to.Y+ny))
		z.LineTo(float32(to.X-nx), float32(to.Y-ny))
		z.LineTo(float32(from.X-nx), float32(from.Y-ny))
		z.ClosePath()
	})
}

func fillDisc(dst *image.RGBA, at measure.Point, radius float64, c color.NRGBA) {
	if radius <= 0 {
		return
	}
	const steps = 24
	rasterize(dst, c, func(z *vector.Rasterizer) {
		z.MoveTo(float32(at.X+radius), float32(at.Y))
		for i := 1; i <= steps; i++ {
			a := 2 * math.Pi * float64(i) / steps
			z.LineTo(float32(at.X+radius*math.Cos(a)), float32(at.Y+radius*math.Sin(a)))
		}
		z.ClosePath()
	})
}
