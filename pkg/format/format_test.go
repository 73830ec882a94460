package format

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want uint32
	}{
		{"empty", nil, 0},
		{"single", []byte{0x7f}, 0x7f},
		{"widened", []byte{0xff, 0xff}, 0x1fe},
		{"sequence", []byte{1, 2, 3, 4}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Checksum(tt.in))
		})
	}
}

func TestChecksum_Deterministic(t *testing.T) {
	b := bytes.Repeat([]byte{0xde, 0xad, 0xbe, 0xef}, 1024)
	require.Equal(t, Checksum(b), Checksum(b))
}

func TestChecksum_DetectsSingleByteChange(t *testing.T) {
	b := []byte("a perfectly ordinary save payload")
	before := Checksum(b)
	b[5]++
	assert.NotEqual(t, before, Checksum(b))
}

func TestChecksum_Wraparound(t *testing.T) {
	// 16843010 * 0xff == 1<<32 + 254
	b := bytes.Repeat([]byte{0xff}, 16843010)
	assert.Equal(t, uint32(254), Checksum(b))
}

func TestObfuscate_Involution(t *testing.T) {
	for _, n := range []int{0, 1, 2, 15, 16, 17, 31, 64, 1023} {
		orig := make([]byte, n)
		for i := range orig {
			orig[i] = byte(i * 7)
		}
		b := append([]byte(nil), orig...)
		Obfuscate(b)
		if n > 0 {
			assert.NotEqual(t, orig, b, "length %d should change", n)
		}
		Obfuscate(b)
		assert.Equal(t, orig, b, "length %d", n)
	}
}

func TestObfuscated_LeavesInputAlone(t *testing.T) {
	in := []byte{1, 2, 3}
	out := Obfuscated(in)
	assert.Equal(t, []byte{1, 2, 3}, in)
	assert.NotEqual(t, in, out)
}

func TestHeader_SealOpen(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03, 0x04}
	h, err := NewHeader(payload)
	require.NoError(t, err)
	assert.Equal(t, uint32(HeaderSize+4), h.Size)
	assert.Equal(t, uint32(10), h.Checksum)
	assert.Equal(t, 4, h.PayloadSize())

	sealed := h.Seal()
	require.Len(t, sealed, HeaderSize)
	plain, _ := h.MarshalBinary()
	assert.NotEqual(t, plain, sealed)

	got, err := OpenHeader(sealed)
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestHeader_MagicPacking(t *testing.T) {
	assert.Equal(t, uint32(0x70726f74), Magic1)
	assert.Equal(t, uint32(0x73617665), Magic2)
}

func TestEncodeDecode(t *testing.T) {
	payload := []byte("slot data")
	raw, err := Encode(payload)
	require.NoError(t, err)
	require.Len(t, raw, HeaderSize+len(payload))
	assert.NotEqual(t, payload, raw[HeaderSize:])

	got, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestDecode_Rejects(t *testing.T) {
	payload := []byte{9, 8, 7, 6, 5}
	good, err := Encode(payload)
	require.NoError(t, err)

	flip := func(off int) []byte {
		b := append([]byte(nil), good...)
		b[off] ^= 0x01
		return b
	}

	tests := []struct {
		name string
		raw  []byte
		want error
	}{
		{"magic1", flip(0), ErrBadMagic},
		{"magic2", flip(7), ErrBadMagic},
		{"size field", flip(8), ErrSizeMismatch},
		{"checksum field", flip(12), ErrChecksumMismatch},
		{"payload", flip(HeaderSize + 2), ErrChecksumMismatch},
		{"truncated payload", good[:len(good)-1], ErrSizeMismatch},
		{"truncated header", good[:HeaderSize-1], ErrTruncated},
		{"empty", nil, ErrTruncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.raw)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestInspect(t *testing.T) {
	raw, err := Encode([]byte{1, 1, 1})
	require.NoError(t, err)

	r := Inspect(raw)
	assert.True(t, r.Valid())
	assert.Equal(t, uint32(3), r.Computed)
	assert.Contains(t, r.String(), "valid")

	raw[HeaderSize] ^= 0xff
	r = Inspect(raw)
	assert.False(t, r.Valid())
	assert.ErrorIs(t, r.Err, ErrChecksumMismatch)
	assert.Equal(t, Magic1, r.Header.Magic1)
}
