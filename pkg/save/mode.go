package save

// Mode is the orchestrator's position in the save or load state machine.
type Mode int

const (
	ModeIdle Mode = iota
	ModeSaveBegin
	ModeSaveWrite
	ModeSaveClose
	ModeLoadBegin
	ModeLoadRead
	ModeLoadClose
)

// String returns a human-readable representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "Idle"
	case ModeSaveBegin:
		return "SaveBegin"
	case ModeSaveWrite:
		return "SaveWrite"
	case ModeSaveClose:
		return "SaveClose"
	case ModeLoadBegin:
		return "LoadBegin"
	case ModeLoadRead:
		return "LoadRead"
	case ModeLoadClose:
		return "LoadClose"
	default:
		return "Unknown"
	}
}

// IsSave reports whether m belongs to the save family.
func (m Mode) IsSave() bool {
	return m == ModeSaveBegin || m == ModeSaveWrite || m == ModeSaveClose
}

// IsLoad reports whether m belongs to the load family.
func (m Mode) IsLoad() bool {
	return m == ModeLoadBegin || m == ModeLoadRead || m == ModeLoadClose
}

// next returns the mode that follows m when its step completes. The last
// step of either family is followed by ModeIdle.
func (m Mode) next() Mode {
	switch m {
	case ModeSaveBegin:
		return ModeSaveWrite
	case ModeSaveWrite:
		return ModeSaveClose
	case ModeLoadBegin:
		return ModeLoadRead
	case ModeLoadRead:
		return ModeLoadClose
	default:
		return ModeIdle
	}
}
