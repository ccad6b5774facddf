package core

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/atomic"
)

const (
	frameTime    = time.Second / 60
	stateMagic   = "NOOD"
	stateVersion = uint32(1)
)

// NullCore stands in when no emulator is linked. It shows a blank screen,
// plays silence and keeps the save and state files for the loaded ROM.
type NullCore struct {
	gba       bool
	savePath  string
	statePath string

	keys      atomic.Uint32
	limiter   atomic.Bool
	frames    atomic.Int64
	fps       atomic.Int64
	lastCount time.Time

	mu        sync.Mutex
	save      []byte
	saveDirty bool
}

func NewNullCore(set ROMSet) (*NullCore, error) {
	rom := set.NDS
	if rom == "" {
		rom = set.GBA
	}
	base := strings.TrimSuffix(rom, filepath.Ext(rom))

	c := &NullCore{
		gba:       set.NDS == "",
		savePath:  base + ".sav",
		statePath: base + ".noo",
		lastCount: time.Now(),
	}
	c.limiter.Store(true)

	data, err := os.ReadFile(c.savePath)
	switch {
	case err == nil:
		c.save = data
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, &BootError{Kind: BootErrorROM, Path: c.savePath, Err: err}
	}
	return c, nil
}

func (c *NullCore) RunFrame() {
	if c.limiter.Load() {
		time.Sleep(frameTime)
	}
	c.frames.Inc()
	if now := time.Now(); now.Sub(c.lastCount) >= time.Second {
		c.fps.Store(c.frames.Swap(0))
		c.lastCount = now
	}
}

func (c *NullCore) Framebuffer() ([]uint32, int, int) {
	w, h := 256, 192*2
	if c.gba {
		w, h = 240, 160
	}
	pixels := make([]uint32, w*h)
	for i := range pixels {
		pixels[i] = 0xFF000000
	}
	return pixels, w, h
}

func (c *NullCore) FPS() int {
	return int(c.fps.Load())
}

func (c *NullCore) GBAMode() bool {
	return c.gba
}

func (c *NullCore) PressKey(k Key) {
	c.keys.Store(c.keys.Load() | 1<<uint(k))
}

func (c *NullCore) ReleaseKey(k Key) {
	c.keys.Store(c.keys.Load() &^ (1 << uint(k)))
}

// Keys returns the pressed key mask, one bit per Key.
func (c *NullCore) Keys() uint32 {
	return c.keys.Load()
}

func (c *NullCore) PressScreen(x, y int) {}

func (c *NullCore) ReleaseScreen() {}

func (c *NullCore) SetFPSLimiter(enabled bool) {
	c.limiter.Store(enabled)
}

func (c *NullCore) Samples(count int) []uint32 {
	return make([]uint32, count)
}

func (c *NullCore) WriteSaves() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.saveDirty {
		return nil
	}
	if err := writeFileAtomic(c.savePath, c.save); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	c.saveDirty = false
	return nil
}

func (c *NullCore) ResizeSave(size int) error {
	if size < 0 {
		return fmt.Errorf("invalid save size %d", size)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	resized := make([]byte, size)
	for i := range resized {
		resized[i] = 0xFF
	}
	copy(resized, c.save)
	c.save = resized
	c.saveDirty = true
	return nil
}

func (c *NullCore) CheckState() StateStatus {
	data, err := os.ReadFile(c.statePath)
	if err != nil {
		return StateFileMissing
	}
	if len(data) < 8 || string(data[:4]) != stateMagic {
		return StateBadFormat
	}
	if binary.LittleEndian.Uint32(data[4:8]) != stateVersion {
		return StateBadVersion
	}
	return StateOK
}

func (c *NullCore) SaveState() error {
	c.mu.Lock()
	var buf bytes.Buffer
	buf.WriteString(stateMagic)
	_ = binary.Write(&buf, binary.LittleEndian, stateVersion)
	buf.Write(c.save)
	c.mu.Unlock()

	if err := writeFileAtomic(c.statePath, buf.Bytes()); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

func (c *NullCore) LoadState() error {
	if status := c.CheckState(); status != StateOK {
		return fmt.Errorf("load state: %s", status)
	}
	data, err := os.ReadFile(c.statePath)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.save = append([]byte(nil), data[8:]...)
	c.saveDirty = true
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
