package save_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/gamesave/pkg/fileio"
	"github.com/bft-labs/gamesave/pkg/format"
	"github.com/bft-labs/gamesave/pkg/platform"
	"github.com/bft-labs/gamesave/pkg/save"
	"github.com/bft-labs/gamesave/pkg/storage"
)

var _ save.Backend = (*storage.FileBackend)(nil)

type results struct {
	saves []save.Result
	loads []save.Result
	errs  []error
}

func (r *results) cb() save.CallbackFuncs {
	return save.CallbackFuncs{
		Save:  func(res save.Result) { r.saves = append(r.saves, res) },
		Load:  func(res save.Result) { r.loads = append(r.loads, res) },
		Error: func(err error) { r.errs = append(r.errs, err) },
	}
}

func newOrchestrator(fs fileio.FS) *save.Orchestrator {
	return save.New("game", storage.New(storage.WithFS(fs), storage.WithPlatform(platform.Linux)))
}

func readFile(t *testing.T, fs fileio.FS, p string) []byte {
	t.Helper()
	f, err := fs.Open(p)
	require.NoError(t, err)
	defer f.Close()
	b, err := io.ReadAll(f)
	require.NoError(t, err)
	return b
}

func writeFile(t *testing.T, fs fileio.FS, p string, b []byte) {
	t.Helper()
	f, err := fs.Create(p)
	require.NoError(t, err)
	_, err = f.Write(b)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func TestSaveThenLoad(t *testing.T) {
	fs := fileio.Memory()
	o := newOrchestrator(fs)
	r := &results{}

	require.NoError(t, o.StartSave([]byte{0x01, 0x02, 0x03, 0x04}, r.cb(), "slot1.sav"))
	for i := 0; i < 3; i++ {
		o.Update()
	}
	assert.Equal(t, []save.Result{save.Success}, r.saves)
	assert.False(t, o.IsWorking())

	raw := readFile(t, fs, "game/slot1.sav")
	require.Len(t, raw, 20)
	h, err := format.OpenHeader(raw)
	require.NoError(t, err)
	assert.Equal(t, format.Header{Magic1: format.Magic1, Magic2: format.Magic2, Size: 20, Checksum: 10}, h)

	var dst []byte
	require.NoError(t, o.StartLoad(&dst, r.cb(), "slot1.sav"))
	for i := 0; i < 3; i++ {
		o.Update()
	}
	assert.Equal(t, []save.Result{save.Success}, r.loads)
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, dst)
	assert.Empty(t, r.errs)
}

func TestLoad_TamperedSizeField(t *testing.T) {
	fs := fileio.Memory()
	o := newOrchestrator(fs)
	r := &results{}

	require.NoError(t, o.StartSave([]byte{0x01, 0x02, 0x03, 0x04}, r.cb(), "slot1.sav"))
	require.NoError(t, save.Drive(testContext(t), o, 0))

	raw := readFile(t, fs, "game/slot1.sav")
	raw[8] ^= 0x01
	writeFile(t, fs, "game/slot1.sav", raw)

	dst := []byte("previous")
	require.NoError(t, o.StartLoad(&dst, r.cb(), "slot1.sav"))
	for i := 0; i < 10; i++ {
		o.Update()
	}
	assert.Equal(t, []save.Result{save.Failure}, r.loads)
	assert.Nil(t, dst)
	require.Len(t, r.errs, 1)
	assert.ErrorIs(t, r.errs[0], format.ErrSizeMismatch)
}

func TestLoad_Corruption(t *testing.T) {
	payload := bytes.Repeat([]byte("level=3;hp=97;"), 20)
	good, err := format.Encode(payload)
	require.NoError(t, err)

	tests := []struct {
		name string
		raw  []byte
		want error
	}{
		{"empty", nil, storage.ErrEmptyFile},
		{"header only", good[:format.HeaderSize], format.ErrTruncated},
		{"truncated", good[:len(good)/2], format.ErrSizeMismatch},
		{"extended", append(append([]byte(nil), good...), 0), format.ErrSizeMismatch},
		{"payload bit", func() []byte { b := append([]byte(nil), good...); b[100] ^= 0x10; return b }(), format.ErrChecksumMismatch},
	}
	// Every byte of both magic fields.
	for off := 0; off < 8; off++ {
		b := append([]byte(nil), good...)
		b[off]++
		tests = append(tests, struct {
			name string
			raw  []byte
			want error
		}{fmt.Sprintf("magic byte %d", off), b, format.ErrBadMagic})
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := fileio.Memory()
			writeFile(t, fs, "game/s.sav", tt.raw)
			o := newOrchestrator(fs)
			r := &results{}

			dst := []byte("x")
			require.NoError(t, o.StartLoad(&dst, r.cb(), "s.sav"))
			require.NoError(t, save.Drive(testContext(t), o, 0))

			assert.Equal(t, []save.Result{save.Failure}, r.loads)
			assert.Nil(t, dst)
			require.Len(t, r.errs, 1)
			assert.ErrorIs(t, r.errs[0], tt.want)
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	o := newOrchestrator(fileio.Memory())
	r := &results{}
	var dst []byte
	require.NoError(t, o.StartLoad(&dst, r.cb(), "none.sav"))
	o.Update()
	assert.False(t, o.IsWorking())
	assert.Equal(t, []save.Result{save.Failure}, r.loads)
	assert.ErrorIs(t, r.errs[0], storage.ErrNotFound)
}

func TestRoundTrip_RandomPayloads(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	fs := fileio.Memory()
	o := newOrchestrator(fs)

	for _, n := range []int{1, 15, 16, 17, 255, 4096, 65537} {
		payload := make([]byte, n)
		rng.Read(payload)
		r := &results{}

		require.NoError(t, o.StartSave(payload, r.cb(), "rt.sav"))
		require.NoError(t, save.Drive(testContext(t), o, 0))

		var dst []byte
		require.NoError(t, o.StartLoad(&dst, r.cb(), "rt.sav"))
		require.NoError(t, save.Drive(testContext(t), o, 0))

		require.Equal(t, []save.Result{save.Success}, r.saves, "size %d", n)
		require.Equal(t, []save.Result{save.Success}, r.loads, "size %d", n)
		require.Equal(t, payload, dst, "size %d", n)
	}
}

func TestOverwriteShrinks(t *testing.T) {
	fs := fileio.Memory()
	o := newOrchestrator(fs)
	r := &results{}

	require.NoError(t, o.StartSave(make([]byte, 100), r.cb(), "s.sav"))
	require.NoError(t, save.Drive(testContext(t), o, 0))
	require.NoError(t, o.StartSave([]byte{5}, r.cb(), "s.sav"))
	require.NoError(t, save.Drive(testContext(t), o, 0))

	assert.Len(t, readFile(t, fs, "game/s.sav"), format.HeaderSize+1)

	var dst []byte
	require.NoError(t, o.StartLoad(&dst, r.cb(), "s.sav"))
	require.NoError(t, save.Drive(testContext(t), o, 0))
	assert.Equal(t, []byte{5}, dst)
}

func TestDiskRoundTrip(t *testing.T) {
	b := storage.New(storage.WithRoot(t.TempDir()))
	o := save.New("game", b)
	r := &results{}

	require.NoError(t, o.StartSave([]byte("on disk"), r.cb(), "d.sav"))
	require.NoError(t, save.Drive(testContext(t), o, 0))
	var dst []byte
	require.NoError(t, o.StartLoad(&dst, r.cb(), "d.sav"))
	require.NoError(t, save.Drive(testContext(t), o, 0))

	assert.Equal(t, []byte("on disk"), dst)
}

// testContext mirrors testing.T.Context (Go 1.24+): a context cancelled
// just before the test's Cleanup functions run.
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
