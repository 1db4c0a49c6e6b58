package presenter

import (
	"bytes"
	"context"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/tvoss/image-measure-go/remote"
	"github.com/tvoss/image-measure-go/ui/images"
	"github.com/tvoss/image-measure-go/ui/model"
	"github.com/tvoss/image-measure-go/ui/overlay"
)

// Uploader narrows what the presenter needs from the remote client.
type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (remote.UploadResult, error)
}

// CaptureSource grabs a screenshot to measure on.
type CaptureSource interface {
	Grab() (image.Image, error)
}

// UploadView displays the loaded image and upload status.
type UploadView interface {
	ShowImage(img image.Image)
	UpdateOverlay(scene overlay.Scene)
	SetInstructions(string)
	SetTotal(string)
	SetUploadBusy(bool)
	SetUploadError(string)
}

type uploadDone struct {
	img    image.Image
	result remote.UploadResult
	err    error
}

// UploadPresenter loads images into the session: from disk or from a
// screen capture. Only one upload runs at a time; completions queue on a
// channel until Tick applies them on the UI thread.
type UploadPresenter struct {
	logger *slog.Logger
	model  *model.MeasurementModel
	client Uploader
	source CaptureSource
	view   UploadView

	done chan uploadDone
}

func NewUploadPresenter(logger *slog.Logger, m *model.MeasurementModel, client Uploader, source CaptureSource, view UploadView) *UploadPresenter {
	return &UploadPresenter{
		logger: logger,
		model:  m,
		client: client,
		source: source,
		view:   view,
		done:   make(chan uploadDone, 4),
	}
}

// LoadFile reads, decodes and uploads an image file from disk.
func (p *UploadPresenter) LoadFile(path string) {
	if p == nil || p.model == nil || p.client == nil || p.view == nil {
		return
	}
	if path == "" || p.model.Uploading() {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		p.fail("could not read file: " + err.Error())
		return
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		p.fail("bad file type")
		return
	}
	p.begin(img, filepath.Base(path), data)
}

// CaptureScreen grabs the screen and uploads it as the working image.
func (p *UploadPresenter) CaptureScreen() {
	if p == nil || p.model == nil || p.client == nil || p.view == nil {
		return
	}
	if p.source == nil || p.model.Uploading() {
		return
	}
	img, err := p.source.Grab()
	if err != nil {
		p.fail("screen capture failed: " + err.Error())
		return
	}
	name := "capture-" + uuid.New().String() + ".png"
	p.begin(img, name, images.EncodePNG(img))
}

// Tick applies finished uploads on the UI thread.
func (p *UploadPresenter) Tick() {
	if p == nil || p.model == nil || p.view == nil {
		return
	}
	for {
		select {
		case d := <-p.done:
			p.apply(d)
		default:
			return
		}
	}
}

func (p *UploadPresenter) begin(img image.Image, filename string, data []byte) {
	p.model.SetUploading(true)
	p.model.SetUploadError("")
	p.view.SetUploadBusy(true)
	p.view.SetUploadError("")
	go func() {
		result, err := p.client.Upload(context.Background(), filename, bytes.NewReader(data))
		p.done <- uploadDone{img: img, result: result, err: err}
	}()
}

func (p *UploadPresenter) apply(d uploadDone) {
	p.model.SetUploading(false)
	p.view.SetUploadBusy(false)
	if d.err != nil {
		if p.logger != nil {
			p.logger.Warn("upload failed", "error", d.err)
		}
		p.model.SetUploadError(d.err.Error())
		p.view.SetUploadError(d.err.Error())
		return
	}
	b := d.img.Bounds()
	p.model.SetImage(d.result.URL, float64(b.Dx()), float64(b.Dy()))
	if p.logger != nil {
		p.logger.Info("image loaded", "url", d.result.URL, "width", b.Dx(), "height", b.Dy())
	}
	p.view.ShowImage(d.img)
	p.view.UpdateOverlay(overlay.Scene{})
	p.view.SetInstructions(p.model.Instructions())
	p.view.SetTotal(p.model.FormattedTotal())
}

func (p *UploadPresenter) fail(msg string) {
	p.model.SetUploadError(msg)
	p.view.SetUploadError(msg)
}
