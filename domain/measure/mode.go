package measure

// Mode governs how pointer input on the measurement canvas is interpreted.
type Mode int

const (
	ModeIdle  Mode = iota // clicks extend the path (implicit trace start)
	ModeScale             // clicks pick calibration points
	ModePath              // clicks extend the traced path
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeScale:
		return "scale"
	case ModePath:
		return "path"
	default:
		return "unknown"
	}
}
