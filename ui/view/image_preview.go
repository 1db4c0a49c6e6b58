package view

import (
	"image"

	"github.com/tvoss/image-measure-go/domain/measure"
	"github.com/tvoss/image-measure-go/ui/images"
	"github.com/tvoss/image-measure-go/ui/overlay"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ImagePreview shows the working image with the measurement overlay and
// reports the display geometry used to map clicks back into image space.
type ImagePreview interface {
	Show(img image.Image)
	Overlay(scene overlay.Scene)
	DisplayRect() measure.DisplayRect
	Widget() *LabelWidget
	Reset()
}

type imagePreview struct {
	label *LabelWidget
	maxW  int
	maxH  int

	preview   image.Image // scaled copy currently on screen
	factor    float64     // preview pixels per natural pixel
	scene     overlay.Scene
	prevPhoto *Img // last Tk photo image instance
}

// Internal state tracks the current photo so we can dispose the old image
// before replacing it, preventing accumulation of off-screen image data.

// NewImagePreview creates the preview label and grids it at the given row.
func NewImagePreview(row, maxW, maxH int) ImagePreview {
	placeholder := image.NewRGBA(image.Rect(0, 0, 480, 300))
	photo := NewPhoto(Data(images.EncodePNG(placeholder)))
	label := Label(Image(photo), Borderwidth(1), Relief("sunken"))
	Grid(label, Row(row), Column(0), Columnspan(5), Padx("0.4m"), Pady("0.4m"))
	return &imagePreview{label: label, maxW: maxW, maxH: maxH, prevPhoto: photo}
}

// Show installs a new base image, scaled to fit the preview bounds, and
// clears the overlay.
func (v *imagePreview) Show(img image.Image) {
	if v == nil || v.label == nil || img == nil {
		return
	}
	natural := img.Bounds().Dx()
	scaled := images.FitPreview(img, v.maxW, v.maxH)
	v.preview = scaled
	v.factor = 1
	if natural > 0 {
		v.factor = float64(scaled.Bounds().Dx()) / float64(natural)
	}
	v.scene = overlay.Scene{}
	v.render()
}

// Overlay recomposites the current image with a new scene. Scene
// coordinates are in natural image space.
func (v *imagePreview) Overlay(scene overlay.Scene) {
	if v == nil || v.preview == nil {
		return
	}
	v.scene = scene
	v.render()
}

func (v *imagePreview) render() {
	composed := images.Compose(v.preview, v.scene.Scaled(v.factor))
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	photo := NewPhoto(Data(images.EncodePNG(composed)))
	v.prevPhoto = photo
	v.label.Configure(Image(photo))
}

// DisplayRect returns the on-screen image rectangle in label coordinates.
func (v *imagePreview) DisplayRect() measure.DisplayRect {
	if v == nil || v.preview == nil {
		return measure.DisplayRect{}
	}
	b := v.preview.Bounds()
	return measure.DisplayRect{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// Widget exposes the underlying label for event binding.
func (v *imagePreview) Widget() *LabelWidget {
	if v == nil {
		return nil
	}
	return v.label
}

func (v *imagePreview) Reset() {
	if v == nil || v.label == nil {
		return
	}
	v.preview = nil
	v.scene = overlay.Scene{}
	placeholder := image.NewRGBA(image.Rect(0, 0, 480, 300))
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	v.prevPhoto = NewPhoto(Data(images.EncodePNG(placeholder)))
	v.label.Configure(Image(v.prevPhoto))
}
