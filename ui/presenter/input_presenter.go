package presenter

import (
	"log/slog"

	"github.com/tvoss/image-measure-go/domain/measure"
	"github.com/tvoss/image-measure-go/ui/model"
	"github.com/tvoss/image-measure-go/ui/overlay"
)

// MeasureScheduler requests a debounced re-measure after a mutation.
type MeasureScheduler interface{ Schedule() }

// EditorView is what the input presenter needs from the editing surface.
type EditorView interface {
	ImageDisplayRect() measure.DisplayRect
	UpdateOverlay(scene overlay.Scene)
	SetInstructions(string)
	SetTotal(string)
}

// InputPresenter routes pointer and control input into model mutations,
// refreshing the overlay and scheduling measurements as geometry changes.
type InputPresenter struct {
	logger    *slog.Logger
	model     *model.MeasurementModel
	scheduler MeasureScheduler
	view      EditorView
}

func NewInputPresenter(logger *slog.Logger, m *model.MeasurementModel, scheduler MeasureScheduler, view EditorView) *InputPresenter {
	return &InputPresenter{logger: logger, model: m, scheduler: scheduler, view: view}
}

// Click handles a primary click at device coordinates relative to the
// displayed image. Clicks outside a usable mapping are dropped; a click
// while idle starts path tracing with the clicked point.
func (p *InputPresenter) Click(deviceX, deviceY float64) {
	if p == nil || p.model == nil || p.view == nil {
		return
	}
	if !p.model.ImageLoaded() {
		return
	}
	w, h := p.model.NaturalSize()
	pt, ok := measure.MapToImage(deviceX, deviceY, p.view.ImageDisplayRect(), w, h)
	if !ok {
		if p.logger != nil {
			p.logger.Debug("click ignored: no usable display mapping", "x", deviceX, "y", deviceY)
		}
		return
	}
	switch p.model.Mode() {
	case measure.ModeScale:
		p.model.AddCalibrationPoint(pt)
	case measure.ModePath:
		p.model.AddVertex(pt)
		p.schedule()
	default:
		p.model.SetMode(measure.ModePath)
		p.model.AddVertex(pt)
		p.schedule()
	}
	p.refresh()
}

// RightClick removes the most recent path vertex.
func (p *InputPresenter) RightClick() {
	if p == nil || p.model == nil {
		return
	}
	if p.model.RemoveLastVertex() {
		p.schedule()
		p.refresh()
	}
}

// SetMode switches the interaction mode.
func (p *InputPresenter) SetMode(mode measure.Mode) {
	if p == nil || p.model == nil {
		return
	}
	p.model.SetMode(mode)
	p.refresh()
}

// ClosePath closes the traced loop when eligible.
func (p *InputPresenter) ClosePath() {
	if p == nil || p.model == nil {
		return
	}
	if p.model.ClosePath() {
		p.schedule()
		p.refresh()
	}
}

// Reset clears all measurement state for the loaded image.
func (p *InputPresenter) Reset() {
	if p == nil || p.model == nil {
		return
	}
	p.model.Reset()
	p.schedule()
	p.refresh()
}

// UnitSelected applies a unit choice and re-measures under the new unit.
func (p *InputPresenter) UnitSelected(name string) {
	if p == nil || p.model == nil {
		return
	}
	p.model.SetUnitName(name)
	p.schedule()
	p.refresh()
}

// UnitsPerPixelEntered applies a direct conversion factor entry.
func (p *InputPresenter) UnitsPerPixelEntered(value string) {
	if p == nil || p.model == nil {
		return
	}
	if p.model.SetUnitsPerPixel(value) {
		p.schedule()
	}
	p.refresh()
}

// DistanceEntered completes calibration with the real-world distance.
func (p *InputPresenter) DistanceEntered(value string) {
	if p == nil || p.model == nil {
		return
	}
	if p.model.SetRealWorldDistance(value) {
		p.schedule()
	}
	p.refresh()
}

func (p *InputPresenter) schedule() {
	if p.scheduler != nil {
		p.scheduler.Schedule()
	}
}

func (p *InputPresenter) refresh() {
	if p.view == nil {
		return
	}
	p.view.UpdateOverlay(overlay.Build(p.model.Calibration(), p.model.PathVertices(), p.model.PathClosed()))
	p.view.SetInstructions(p.model.Instructions())
	p.view.SetTotal(p.model.FormattedTotal())
}
