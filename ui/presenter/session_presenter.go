package presenter

import (
	"time"

	"github.com/tvoss/image-measure-go/domain/measure"
	"github.com/tvoss/image-measure-go/ui/model"
)

// ModeSource reports the active interaction mode.
type ModeSource interface{ Mode() measure.Mode }

// SessionView displays formatted session and total durations.
type SessionView interface {
	SetSession(session, total time.Duration)
}

// SessionPresenter accumulates active measuring time (scale picking or
// path tracing) and pushes the formatted durations to the view.
type SessionPresenter struct {
	sess *model.SessionModel
	mode ModeSource
	view SessionView
}

// NewSessionPresenter returns a new SessionPresenter.
func NewSessionPresenter(sess *model.SessionModel, mode ModeSource, view SessionView) *SessionPresenter {
	return &SessionPresenter{sess: sess, mode: mode, view: view}
}

// Tick updates the presenter: advance the session model and push values to the view.
func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.mode == nil || p.view == nil {
		return
	}
	p.sess.OnTick(p.mode.Mode() != measure.ModeIdle, now)
	s, t := p.sess.Values()
	p.view.SetSession(s, t)
}
