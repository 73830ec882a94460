package format

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// Magic1 is the first header identifier, 'prot'.
	Magic1 uint32 = 'p'<<24 | 'r'<<16 | 'o'<<8 | 't'

	// Magic2 is the second header identifier, 'save'.
	Magic2 uint32 = 's'<<24 | 'a'<<16 | 'v'<<8 | 'e'

	// HeaderSize is the encoded size of Header in bytes.
	HeaderSize = 16

	// MaxFileSize is the largest file the 32-bit size field can describe.
	MaxFileSize = 1<<32 - 1
)

// Validation errors. Load paths wrap these, so check with errors.Is.
var (
	ErrBadMagic         = errors.New("format: bad magic")
	ErrSizeMismatch     = errors.New("format: recorded size does not match file size")
	ErrChecksumMismatch = errors.New("format: checksum mismatch")
	ErrTruncated        = errors.New("format: file smaller than header")
	ErrTooLarge         = errors.New("format: payload exceeds 32-bit size field")
)

// Header is the fixed record at the start of every save file.
type Header struct {
	Magic1   uint32
	Magic2   uint32
	Size     uint32
	Checksum uint32
}

// NewHeader builds the header describing payload.
func NewHeader(payload []byte) (Header, error) {
	if int64(len(payload)) > MaxFileSize-HeaderSize {
		return Header{}, ErrTooLarge
	}
	return Header{
		Magic1:   Magic1,
		Magic2:   Magic2,
		Size:     uint32(HeaderSize + len(payload)),
		Checksum: Checksum(payload),
	}, nil
}

// PayloadSize returns the payload length the header records.
func (h Header) PayloadSize() int {
	if h.Size < HeaderSize {
		return 0
	}
	return int(h.Size) - HeaderSize
}

// MarshalBinary encodes the header in plaintext.
func (h Header) MarshalBinary() ([]byte, error) {
	b := make([]byte, HeaderSize)
	h.put(b)
	return b, nil
}

func (h Header) put(b []byte) {
	binary.LittleEndian.PutUint32(b[0:4], h.Magic1)
	binary.LittleEndian.PutUint32(b[4:8], h.Magic2)
	binary.LittleEndian.PutUint32(b[8:12], h.Size)
	binary.LittleEndian.PutUint32(b[12:16], h.Checksum)
}

// UnmarshalBinary decodes a plaintext header.
func (h *Header) UnmarshalBinary(b []byte) error {
	if len(b) < HeaderSize {
		return ErrTruncated
	}
	h.Magic1 = binary.LittleEndian.Uint32(b[0:4])
	h.Magic2 = binary.LittleEndian.Uint32(b[4:8])
	h.Size = binary.LittleEndian.Uint32(b[8:12])
	h.Checksum = binary.LittleEndian.Uint32(b[12:16])
	return nil
}

// Seal returns the obfuscated on-disk form of the header.
func (h Header) Seal() []byte {
	b := make([]byte, HeaderSize)
	h.put(b)
	Obfuscate(b)
	return b
}

// OpenHeader de-obfuscates and decodes an on-disk header. b is not modified.
func OpenHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, ErrTruncated
	}
	plain := Obfuscated(b[:HeaderSize])
	var h Header
	if err := h.UnmarshalBinary(plain); err != nil {
		return Header{}, err
	}
	return h, nil
}

// Validate checks the header against the real file size and the
// de-obfuscated payload. Checks run in order: magic, size, checksum.
func (h Header) Validate(fileSize int64, payload []byte) error {
	if h.Magic1 != Magic1 || h.Magic2 != Magic2 {
		return fmt.Errorf("%w: got %#08x %#08x", ErrBadMagic, h.Magic1, h.Magic2)
	}
	if int64(h.Size) != fileSize {
		return fmt.Errorf("%w: header says %d, file is %d", ErrSizeMismatch, h.Size, fileSize)
	}
	if sum := Checksum(payload); sum != h.Checksum {
		return fmt.Errorf("%w: header says %#08x, payload sums to %#08x", ErrChecksumMismatch, h.Checksum, sum)
	}
	return nil
}
