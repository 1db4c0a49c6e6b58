package presenter

import (
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/tvoss/image-measure-go/remote"
	"github.com/tvoss/image-measure-go/ui/model"
	"github.com/tvoss/image-measure-go/ui/overlay"
)

type uploaderStub struct {
	mu     sync.Mutex
	names  []string
	result remote.UploadResult
	err    error
	gate   chan struct{}
}

func (u *uploaderStub) Upload(ctx context.Context, filename string, r io.Reader) (remote.UploadResult, error) {
	u.mu.Lock()
	u.names = append(u.names, filename)
	result, err, gate := u.result, u.err, u.gate
	u.mu.Unlock()
	if gate != nil {
		<-gate
	}
	io.Copy(io.Discard, r)
	return result, err
}

func (u *uploaderStub) calls() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.names)
}

var _ Uploader = (*uploaderStub)(nil)

type sourceStub struct {
	img image.Image
	err error
}

func (s *sourceStub) Grab() (image.Image, error) { return s.img, s.err }

var _ CaptureSource = (*sourceStub)(nil)

type uploadViewStub struct {
	shown        image.Image
	scene        overlay.Scene
	instructions string
	total        string
	busy         bool
	err          string
}

func (v *uploadViewStub) ShowImage(img image.Image)     { v.shown = img }
func (v *uploadViewStub) UpdateOverlay(s overlay.Scene) { v.scene = s }
func (v *uploadViewStub) SetInstructions(s string)      { v.instructions = s }
func (v *uploadViewStub) SetTotal(s string)             { v.total = s }
func (v *uploadViewStub) SetUploadBusy(b bool)          { v.busy = b }
func (v *uploadViewStub) SetUploadError(s string)       { v.err = s }

var _ UploadView = (*uploadViewStub)(nil)

func writeTempPNG(t *testing.T, w, h int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return path
}

func waitUpload(t *testing.T, p *UploadPresenter, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		p.Tick()
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestUploadPresenter_LoadFile(t *testing.T) {
	m := model.NewMeasurementModel()
	up := &uploaderStub{result: remote.UploadResult{URL: "/uploads/abc.png", Filename: "plan.png"}}
	view := &uploadViewStub{}
	p := NewUploadPresenter(testLogger, m, up, nil, view)

	p.LoadFile(writeTempPNG(t, 64, 32))
	if !m.Uploading() || !view.busy {
		t.Fatalf("upload should be marked in flight")
	}

	waitUpload(t, p, "upload to apply", func() bool { return view.shown != nil && !view.busy })

	if m.ImageURL() != "/uploads/abc.png" {
		t.Fatalf("model should record the served URL, got %q", m.ImageURL())
	}
	if w, h := m.NaturalSize(); w != 64 || h != 32 {
		t.Fatalf("natural size should come from the decoded image: %vx%v", w, h)
	}
	if up.names[0] != "plan.png" {
		t.Fatalf("expected base filename, got %q", up.names[0])
	}
	if !view.scene.Empty() || view.total != "0.00 px" {
		t.Fatalf("fresh image should reset overlay and total: %+v %q", view.scene, view.total)
	}
}

func TestUploadPresenter_BadFileRejectedLocally(t *testing.T) {
	m := model.NewMeasurementModel()
	up := &uploaderStub{}
	view := &uploadViewStub{}
	p := NewUploadPresenter(testLogger, m, up, nil, view)

	path := filepath.Join(t.TempDir(), "notes.txt")
	os.WriteFile(path, []byte("plain text"), 0o644)
	p.LoadFile(path)

	if up.calls() != 0 {
		t.Fatalf("undecodable file must not be uploaded")
	}
	if view.err != "bad file type" || m.UploadError() != "bad file type" {
		t.Fatalf("expected 'bad file type', got %q / %q", view.err, m.UploadError())
	}
}

func TestUploadPresenter_ServerErrorSurfacedVerbatim(t *testing.T) {
	m := model.NewMeasurementModel()
	up := &uploaderStub{err: errors.New("bad file type")}
	view := &uploadViewStub{}
	p := NewUploadPresenter(testLogger, m, up, nil, view)

	p.LoadFile(writeTempPNG(t, 8, 8))
	waitUpload(t, p, "error to surface", func() bool { return view.err != "" && !view.busy })

	if view.err != "bad file type" {
		t.Fatalf("expected verbatim server detail, got %q", view.err)
	}
	if m.ImageLoaded() {
		t.Fatalf("failed upload must not install an image")
	}
}

func TestUploadPresenter_SingleFlight(t *testing.T) {
	m := model.NewMeasurementModel()
	gate := make(chan struct{})
	up := &uploaderStub{result: remote.UploadResult{URL: "/uploads/abc.png"}, gate: gate}
	view := &uploadViewStub{}
	p := NewUploadPresenter(testLogger, m, up, nil, view)

	first := writeTempPNG(t, 8, 8)
	p.LoadFile(first)
	p.LoadFile(first) // ignored while the first is in flight
	if up.calls() != 1 {
		t.Fatalf("second load should be ignored, calls=%d", up.calls())
	}
	close(gate)
	waitUpload(t, p, "first upload to finish", func() bool { return !view.busy && view.shown != nil })
}

func TestUploadPresenter_CaptureScreen(t *testing.T) {
	m := model.NewMeasurementModel()
	up := &uploaderStub{result: remote.UploadResult{URL: "/uploads/cap.png"}}
	view := &uploadViewStub{}
	src := &sourceStub{img: image.NewRGBA(image.Rect(0, 0, 16, 16))}
	p := NewUploadPresenter(testLogger, m, up, src, view)

	p.CaptureScreen()
	waitUpload(t, p, "capture upload to apply", func() bool { return view.shown != nil })

	if m.ImageURL() != "/uploads/cap.png" {
		t.Fatalf("capture should install the uploaded image, got %q", m.ImageURL())
	}
	if len(up.names) != 1 || filepath.Ext(up.names[0]) != ".png" {
		t.Fatalf("capture should upload a png, got %v", up.names)
	}
}

func TestUploadPresenter_CaptureFailure(t *testing.T) {
	m := model.NewMeasurementModel()
	up := &uploaderStub{}
	view := &uploadViewStub{}
	src := &sourceStub{err: errors.New("no display")}
	p := NewUploadPresenter(testLogger, m, up, src, view)

	p.CaptureScreen()
	if up.calls() != 0 || view.err == "" {
		t.Fatalf("grab failure should surface locally: calls=%d err=%q", up.calls(), view.err)
	}
}
