package presenter

import (
	"context"
	"log/slog"
	"time"

	"github.com/tvoss/image-measure-go/domain/measure"
	"github.com/tvoss/image-measure-go/remote"
	"github.com/tvoss/image-measure-go/ui/model"
)

// MeasureClient narrows what the presenter needs from the remote client.
type MeasureClient interface {
	Measure(ctx context.Context, req remote.MeasureRequest) (*measure.Measurement, error)
}

// MeasureView displays the measurement readout and request status.
type MeasureView interface {
	SetTotal(string)
	SetMeasureBusy(bool)
	SetMeasureError(string)
}

// MeasureConfig carries the request behaviour knobs.
type MeasureConfig struct {
	Debounce              time.Duration
	Persist               bool
	DiscardStaleResponses bool
	SessionID             string
}

type measureDone struct {
	seq    uint64
	result *measure.Measurement
	err    error
}

// MeasurePresenter debounces geometry changes into measurement requests
// and applies completions back onto the model.
//
// Schedule arms (or re-arms) a single quiet-period timer; the timer only
// marks the request due. All model access happens in Tick on the UI
// thread: a due mark launches the request goroutine, and finished
// requests queue on an internal channel until Tick drains them. By
// default the last completion to arrive wins; with
// DiscardStaleResponses only the most recently launched request may
// apply.
type MeasurePresenter struct {
	logger *slog.Logger
	model  *model.MeasurementModel
	client MeasureClient
	view   MeasureView
	clock  Clock
	cfg    MeasureConfig

	pending Timer
	due     chan struct{}
	done    chan measureDone
	seq     uint64
}

func NewMeasurePresenter(logger *slog.Logger, m *model.MeasurementModel, client MeasureClient, view MeasureView, clock Clock, cfg MeasureConfig) *MeasurePresenter {
	if cfg.Debounce <= 0 {
		cfg.Debounce = 200 * time.Millisecond
	}
	return &MeasurePresenter{
		logger: logger,
		model:  m,
		client: client,
		view:   view,
		clock:  clock,
		cfg:    cfg,
		due:    make(chan struct{}, 1),
		done:   make(chan measureDone, 16),
	}
}

// Schedule (re)arms the debounce timer. Repeated calls within the quiet
// period coalesce into a single request.
func (p *MeasurePresenter) Schedule() {
	if p == nil || p.clock == nil {
		return
	}
	if p.pending != nil {
		p.pending.Stop()
	}
	p.pending = p.clock.AfterFunc(p.cfg.Debounce, func() {
		select {
		case p.due <- struct{}{}:
		default:
		}
	})
}

// Tick drives the presenter from the UI thread: launch a due request and
// apply any finished ones.
func (p *MeasurePresenter) Tick() {
	if p == nil || p.model == nil || p.view == nil {
		return
	}
	select {
	case <-p.due:
		p.launch()
	default:
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

// launch snapshots the model and starts the request goroutine. A path
// below two vertices clears the readout, the busy flag and any standing
// error without a network call.
func (p *MeasurePresenter) launch() {
	vertices := p.model.PathVertices()
	if len(vertices) < 2 {
		p.model.ClearResult()
		p.model.SetMeasuring(false)
		p.model.SetMeasureError("")
		p.view.SetTotal(p.model.FormattedTotal())
		p.view.SetMeasureError("")
		p.view.SetMeasureBusy(false)
		return
	}
	scale := p.model.Scale()
	req := remote.MeasureRequest{
		Points: vertices,
		Closed: p.model.PathClosed(),
		Scale: remote.ScalePayload{
			UnitName:      scale.UnitName,
			UnitsPerPixel: scale.UnitsPerPixel,
		},
		SessionID: p.cfg.SessionID,
		Persist:   p.cfg.Persist,
	}

	p.seq++
	seq := p.seq
	p.model.SetMeasuring(true)
	p.model.SetMeasureError("")
	p.view.SetMeasureBusy(true)
	p.view.SetMeasureError("")

	go func() {
		result, err := p.client.Measure(context.Background(), req)
		p.done <- measureDone{seq: seq, result: result, err: err}
	}()
}

func (p *MeasurePresenter) apply(d measureDone) {
	if p.cfg.DiscardStaleResponses && d.seq != p.seq {
		if p.logger != nil {
			p.logger.Debug("discarding stale measurement response", "seq", d.seq, "latest", p.seq)
		}
		return
	}
	if d.err != nil {
		if p.logger != nil {
			p.logger.Warn("measurement request failed", "error", d.err)
		}
		p.model.ClearResult()
		p.model.SetMeasureError(d.err.Error())
	} else {
		p.model.SetResult(d.result)
		p.model.SetMeasureError("")
	}
	if d.seq == p.seq {
		p.model.SetMeasuring(false)
	}
	p.view.SetTotal(p.model.FormattedTotal())
	p.view.SetMeasureError(p.model.MeasureError())
	p.view.SetMeasureBusy(p.model.Measuring())
}
