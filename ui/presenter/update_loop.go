package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// It drains the async presenters (measure, upload), advances the session
// clock and invokes a scheduler callback for the next tick. The zero
// value is usable (methods are nil-safe).
type Loop struct {
	Session  *SessionPresenter
	Measure  *MeasurePresenter
	Upload   *UploadPresenter
	Schedule func()
}

func NewLoop(sess *SessionPresenter, meas *MeasurePresenter, up *UploadPresenter, schedule func()) *Loop {
	return &Loop{Session: sess, Measure: meas, Upload: up, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	if l.Measure != nil {
		l.Measure.Tick()
	}
	if l.Upload != nil {
		l.Upload.Tick()
	}
	if l.Session != nil {
		l.Session.Tick(now)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
