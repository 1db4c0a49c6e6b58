package model

import (
	"time"
)

// SessionModel tracks how long the user has been actively measuring (scale
// picking or path tracing) and the accumulated active time across the run.
// It is decoupled from the UI; presenters should poll Values() and update
// views. The zero value is ready to use.
type SessionModel struct {
	active       bool
	activeStart  time.Time
	lastDuration time.Duration
	accumulated  time.Duration
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnTick updates the model using the current measuring state and timestamp.
// Call periodically (for example, from a presenter tick).
func (m *SessionModel) OnTick(measuring bool, now time.Time) {
	if m == nil {
		return
	}
	if measuring {
		if !m.active { // transition off -> on
			m.active = true
			m.activeStart = now
			m.lastDuration = 0
		}
		m.lastDuration = now.Sub(m.activeStart)
	} else if m.active { // transition on -> off
		m.lastDuration = now.Sub(m.activeStart)
		m.accumulated += m.lastDuration
		m.active = false
	}
}

// Values returns the current session duration and the total accumulated
// duration. The total includes the ongoing session when active.
func (m *SessionModel) Values() (session, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	session = m.lastDuration
	total = m.accumulated
	if m.active {
		total += session
	}
	return
}
