package watch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// SlotStatus is the last verification outcome of one slot.
type SlotStatus struct {
	Result    string    `json:"result"`
	Error     string    `json:"error,omitempty"`
	Bytes     int       `json:"bytes"`
	CheckedAt time.Time `json:"checked_at"`
}

// Status maps slot names to their last verification outcome.
type Status struct {
	Slots map[string]SlotStatus `json:"slots"`
}

// StatusFile persists Status as JSON.
type StatusFile struct {
	path string
}

// NewStatusFile returns a StatusFile stored at path.
func NewStatusFile(path string) *StatusFile {
	return &StatusFile{path: path}
}

// Path returns the location of the status file.
func (f *StatusFile) Path() string { return f.path }

// Load reads the status from disk.
// Returns an empty status and nil error if no status file exists.
func (f *StatusFile) Load() (Status, error) {
	st := Status{Slots: map[string]SlotStatus{}}
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return st, nil
		}
		return st, err
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return Status{Slots: map[string]SlotStatus{}}, err
	}
	if st.Slots == nil {
		st.Slots = map[string]SlotStatus{}
	}
	return st, nil
}

// Save persists the status atomically (write to temp file, then rename).
func (f *StatusFile) Save(st Status) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// Record stores ev as the latest outcome for its slot.
func (f *StatusFile) Record(ev Event, at time.Time) error {
	st, err := f.Load()
	if err != nil {
		return err
	}
	s := SlotStatus{
		Result:    ev.Result.String(),
		Bytes:     ev.Bytes,
		CheckedAt: at.UTC(),
	}
	if ev.Err != nil {
		s.Error = ev.Err.Error()
	}
	st.Slots[ev.File] = s
	return f.Save(st)
}
