package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/pawndev/noodle/pkg/noodle/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

type fakeCore struct {
	NullCore
	runs      atomic.Int64
	writes    atomic.Int64
	writeErr  error
	samples   []uint32
	requested atomic.Int64
	mu        sync.Mutex
}

func (f *fakeCore) RunFrame() {
	f.runs.Inc()
	time.Sleep(time.Millisecond)
}

func (f *fakeCore) WriteSaves() error {
	f.writes.Inc()
	return f.writeErr
}

func (f *fakeCore) Samples(count int) []uint32 {
	f.requested.Store(int64(count))
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.samples
}

func TestDescribeBindings(t *testing.T) {
	b := DefaultBindings()
	assert.Equal(t, "A", b.Describe(KeyA))
	assert.Equal(t, "L, R, Menu", b.Describe(KeyMenu))
	assert.Equal(t, "None", b.Describe(KeyFastHold))

	b[KeyScreenSwap] = constants.ButtonA | constants.ButtonB | constants.ButtonX | constants.ButtonY |
		constants.ButtonL | constants.ButtonR | constants.ButtonZL | constants.ButtonZR |
		constants.ButtonPlus | constants.ButtonMinus
	assert.Equal(t, "A, B, X, Y, L, R, ZL, ZR, ...", b.Describe(KeyScreenSwap))
}

func TestKeys(t *testing.T) {
	keys := Keys()
	require.Len(t, keys, int(KeyCount))
	assert.Equal(t, "Select Button", KeySelect.Label())
	assert.True(t, KeyY.Emulated())
	assert.False(t, KeyMenu.Emulated())

	k, ok := KeyByID("fast_toggle")
	require.True(t, ok)
	assert.Equal(t, KeyFastToggle, k)
	_, ok = KeyByID("turbo")
	assert.False(t, ok)
	assert.Equal(t, "", Key(99).ID())
}

func TestSaveTypes(t *testing.T) {
	assert.Len(t, SaveTypes(false), 10)
	assert.Len(t, SaveTypes(true), 6)
	assert.Equal(t, SaveType{"FLASH 8192KB", 0x800000}, NDSSaveTypes[9])
	assert.Equal(t, SaveType{"SRAM 32KB", 0x8000}, GBASaveTypes[3])
}

func TestRunnerStartStop(t *testing.T) {
	c := &fakeCore{}
	r := NewRunner(c, nil)
	r.SetSaveInterval(5 * time.Millisecond)

	assert.NoError(t, r.Stop())

	r.Start(context.Background())
	r.Start(context.Background())
	assert.True(t, r.Running())

	assert.Eventually(t, func() bool {
		return c.runs.Load() > 0 && c.writes.Load() > 0
	}, time.Second, time.Millisecond)

	require.NoError(t, r.Stop())
	assert.False(t, r.Running())

	writes, runs := c.writes.Load(), c.runs.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, writes, c.writes.Load())
	assert.Equal(t, runs, c.runs.Load())
}

func TestRunnerFlushesOnStop(t *testing.T) {
	c := &fakeCore{}
	r := NewRunner(c, nil)
	r.SetSaveInterval(time.Hour)

	r.Start(context.Background())
	require.NoError(t, r.Stop())
	assert.Equal(t, int64(1), c.writes.Load())
}

func TestRunnerKeepsRunningAfterSaveError(t *testing.T) {
	c := &fakeCore{writeErr: errors.New("disk full")}
	r := NewRunner(c, nil)
	r.SetSaveInterval(5 * time.Millisecond)

	r.Start(context.Background())
	assert.Eventually(t, func() bool { return c.writes.Load() > 0 }, time.Second, time.Millisecond)

	runs := c.runs.Load()
	assert.Eventually(t, func() bool { return c.runs.Load() > runs+5 }, time.Second, time.Millisecond)
	assert.Eventually(t, func() bool { return c.writes.Load() > 1 }, time.Second, time.Millisecond)
	assert.True(t, r.Running())

	err := r.Stop()
	assert.ErrorIs(t, err, c.writeErr)
	assert.False(t, r.Running())
}

func TestAudioResampler(t *testing.T) {
	c := &fakeCore{samples: []uint32{1, 2, 3, 4, 5, 6, 7, 8}}
	r := NewRunner(c, nil)
	a := NewAudioResampler(r)

	buf := make([]uint32, 4)
	a.Fill(buf, 48000)
	assert.Equal(t, []uint32{0, 0, 0, 0}, buf)

	r.Start(context.Background())
	defer r.Stop()

	a.Fill(buf, 32768)
	assert.Equal(t, int64(4), c.requested.Load())
	assert.Equal(t, []uint32{1, 3, 5, 7}, buf)

	big := make([]uint32, 1024)
	a.Fill(big, 48000)
	assert.Equal(t, int64(1024*32768/48000), c.requested.Load())

	require.NoError(t, r.Stop())
	a.Fill(buf, 48000)
	assert.Equal(t, []uint32{8, 8, 8, 8}, buf)
}

func TestAudioResamplerWithoutCore(t *testing.T) {
	r := NewRunner(nil, nil)
	r.running.Store(true)
	a := NewAudioResampler(r)
	a.lastSample.Store(9)

	buf := make([]uint32, 3)
	assert.NotPanics(t, func() { a.Fill(buf, 48000) })
	assert.Equal(t, []uint32{9, 9, 9}, buf)
}

func writeFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	return path
}

func TestFileBooterErrors(t *testing.T) {
	dir := t.TempDir()
	rom := writeFile(t, dir, "game.nds", 16)
	gba := writeFile(t, dir, "game.gba", 16)
	bios9 := writeFile(t, dir, "bios9.bin", 16)
	bios7 := writeFile(t, dir, "bios7.bin", 16)
	smallFirm := writeFile(t, dir, "small.bin", 16)
	firm := writeFile(t, dir, "firmware.bin", minFirmwareSize)

	tests := []struct {
		name   string
		booter FileBooter
		nds    string
		gba    string
		kind   BootErrorKind
		ok     bool
	}{
		{name: "no rom", booter: FileBooter{}, kind: BootErrorROM},
		{name: "missing rom", booter: FileBooter{}, nds: filepath.Join(dir, "nope.nds"), kind: BootErrorROM},
		{name: "directory rom", booter: FileBooter{}, nds: dir, kind: BootErrorROM},
		{name: "missing bios", booter: FileBooter{BIOS9: bios9}, nds: rom, kind: BootErrorBIOS},
		{name: "missing gba bios", booter: FileBooter{}, gba: gba, kind: BootErrorBIOS},
		{name: "small firmware", booter: FileBooter{BIOS9: bios9, BIOS7: bios7, Firmware: smallFirm}, nds: rom, kind: BootErrorFirmware},
		{name: "direct boot skips firmware", booter: FileBooter{BIOS9: bios9, BIOS7: bios7, DirectBoot: true}, nds: rom, ok: true},
		{name: "firmware boot", booter: FileBooter{BIOS9: bios9, BIOS7: bios7, Firmware: firm}, nds: rom, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := tt.booter.Boot(tt.nds, tt.gba)
			if tt.ok {
				require.NoError(t, err)
				assert.NotNil(t, c)
				return
			}
			be, ok := AsBootError(err)
			require.True(t, ok, "expected BootError, got %v", err)
			assert.Equal(t, tt.kind, be.Kind)
		})
	}
}

func TestFileBooterUsesFactory(t *testing.T) {
	dir := t.TempDir()
	gba := writeFile(t, dir, "game.gba", 16)
	bios := writeFile(t, dir, "gba_bios.bin", 16)

	var got ROMSet
	b := FileBooter{GBABIOS: bios, New: func(set ROMSet) (Core, error) {
		got = set
		return &fakeCore{}, nil
	}}
	_, err := b.Boot("", gba)
	require.NoError(t, err)
	assert.Equal(t, gba, got.GBA)
	assert.Equal(t, bios, got.GBABIOS)
}

func TestNullCoreSavesAndStates(t *testing.T) {
	dir := t.TempDir()
	rom := writeFile(t, dir, "game.nds", 16)

	c, err := NewNullCore(ROMSet{NDS: rom})
	require.NoError(t, err)
	assert.False(t, c.GBAMode())

	_, w, h := c.Framebuffer()
	assert.Equal(t, 256, w)
	assert.Equal(t, 384, h)

	require.NoError(t, c.WriteSaves())
	assert.NoFileExists(t, filepath.Join(dir, "game.sav"))

	require.NoError(t, c.ResizeSave(0x200))
	require.NoError(t, c.WriteSaves())
	data, err := os.ReadFile(filepath.Join(dir, "game.sav"))
	require.NoError(t, err)
	assert.Len(t, data, 0x200)

	assert.Equal(t, StateFileMissing, c.CheckState())
	assert.Error(t, c.LoadState())
	require.NoError(t, c.SaveState())
	assert.Equal(t, StateOK, c.CheckState())
	require.NoError(t, c.LoadState())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "game.noo"), []byte("JUNKJUNK"), 0o644))
	assert.Equal(t, StateBadFormat, c.CheckState())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "game.noo"), []byte("NOOD\x02\x00\x00\x00"), 0o644))
	assert.Equal(t, StateBadVersion, c.CheckState())

	reopened, err := NewNullCore(ROMSet{NDS: rom})
	require.NoError(t, err)
	require.NoError(t, reopened.ResizeSave(0x100))
	require.NoError(t, reopened.WriteSaves())
	data, err = os.ReadFile(filepath.Join(dir, "game.sav"))
	require.NoError(t, err)
	assert.Len(t, data, 0x100)
}

func TestNullCoreKeys(t *testing.T) {
	c, err := NewNullCore(ROMSet{GBA: "game.gba"})
	require.NoError(t, err)
	assert.True(t, c.GBAMode())

	c.PressKey(KeyA)
	c.PressKey(KeyStart)
	assert.Equal(t, uint32(1<<KeyA|1<<KeyStart), c.Keys())
	c.ReleaseKey(KeyA)
	assert.Equal(t, uint32(1<<KeyStart), c.Keys())
}

func TestRunnerSetCore(t *testing.T) {
	r := NewRunner(nil, nil)
	r.Start(context.Background())
	assert.False(t, r.Running())

	first := &fakeCore{}
	require.NoError(t, r.SetCore(first))
	r.Start(context.Background())
	assert.ErrorIs(t, r.SetCore(&fakeCore{}), ErrRunning)
	assert.Same(t, first, r.Core())

	require.NoError(t, r.Stop())
	second := &fakeCore{}
	require.NoError(t, r.SetCore(second))
	assert.Same(t, second, r.Core())
}
