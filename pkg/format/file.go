package format

import "fmt"

// Encode returns the complete on-disk form of payload.
func Encode(payload []byte) ([]byte, error) {
	h, err := NewHeader(payload)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, HeaderSize+len(payload))
	out = append(out, h.Seal()...)
	out = append(out, payload...)
	Obfuscate(out[HeaderSize:])
	return out, nil
}

// Decode validates a complete save file and returns its plaintext payload.
// raw is not modified.
func Decode(raw []byte) ([]byte, error) {
	h, err := OpenHeader(raw)
	if err != nil {
		return nil, err
	}
	payload := Obfuscated(raw[HeaderSize:])
	if err := h.Validate(int64(len(raw)), payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Report describes a save file, valid or not.
type Report struct {
	Header   Header
	FileSize int64
	// Computed is the checksum of the de-obfuscated payload as stored.
	Computed uint32
	// Err is nil when the file is valid.
	Err error
}

// Valid reports whether the file passed every check.
func (r Report) Valid() bool { return r.Err == nil }

func (r Report) String() string {
	verdict := "valid"
	if r.Err != nil {
		verdict = "invalid: " + r.Err.Error()
	}
	return fmt.Sprintf("magic=%#08x/%#08x size=%d file=%d checksum=%#08x computed=%#08x %s",
		r.Header.Magic1, r.Header.Magic2, r.Header.Size, r.FileSize,
		r.Header.Checksum, r.Computed, verdict)
}

// Inspect decodes as much of raw as it can without stopping at the first
// failed check.
func Inspect(raw []byte) Report {
	r := Report{FileSize: int64(len(raw))}
	h, err := OpenHeader(raw)
	if err != nil {
		r.Err = err
		return r
	}
	r.Header = h
	payload := Obfuscated(raw[HeaderSize:])
	r.Computed = Checksum(payload)
	r.Err = h.Validate(r.FileSize, payload)
	return r
}
