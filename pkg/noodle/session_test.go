package noodle

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/pawndev/noodle/pkg/noodle/config"
	"github.com/pawndev/noodle/pkg/noodle/constants"
	"github.com/pawndev/noodle/pkg/noodle/core"
	"github.com/pawndev/noodle/pkg/noodle/i18n"
	"github.com/pawndev/noodle/pkg/noodle/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCore struct {
	mu          sync.Mutex
	gba         bool
	state       core.StateStatus
	pressed     map[core.Key]bool
	everPressed map[core.Key]bool
	savedStates int
	loaded      int
	resized     []int
	writes      int
	limiter     bool
}

func newFakeCore(gba bool) *fakeCore {
	return &fakeCore{
		gba:         gba,
		state:       core.StateFileMissing,
		pressed:     map[core.Key]bool{},
		everPressed: map[core.Key]bool{},
	}
}

func (c *fakeCore) RunFrame() { time.Sleep(time.Millisecond) }

func (c *fakeCore) Framebuffer() ([]uint32, int, int) {
	return make([]uint32, 256*384), 256, 384
}

func (c *fakeCore) FPS() int      { return 60 }
func (c *fakeCore) GBAMode() bool { return c.gba }

func (c *fakeCore) PressKey(k core.Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pressed[k] = true
	c.everPressed[k] = true
}

func (c *fakeCore) ReleaseKey(k core.Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pressed[k] = false
}

func (c *fakeCore) PressScreen(x, y int) {}
func (c *fakeCore) ReleaseScreen()       {}

func (c *fakeCore) SetFPSLimiter(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.limiter = enabled
}

func (c *fakeCore) Samples(count int) []uint32 { return make([]uint32, count) }

func (c *fakeCore) WriteSaves() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writes++
	return nil
}

func (c *fakeCore) ResizeSave(size int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resized = append(c.resized, size)
	return nil
}

func (c *fakeCore) CheckState() core.StateStatus { return c.state }

func (c *fakeCore) SaveState() error {
	c.savedStates++
	c.state = core.StateOK
	return nil
}

func (c *fakeCore) LoadState() error {
	c.loaded++
	return nil
}

func (c *fakeCore) wasPressed(k core.Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.everPressed[k]
}

type fakeBooter struct {
	err   error
	boots int
	nds   string
	gba   string
	cores []*fakeCore
}

func (b *fakeBooter) Boot(nds, gba string) (core.Core, error) {
	b.boots++
	b.nds, b.gba = nds, gba
	if b.err != nil {
		return nil, b.err
	}
	c := newFakeCore(nds == "")
	b.cores = append(b.cores, c)
	return c, nil
}

func newTestSession(t *testing.T, booter *fakeBooter, frames ...inputFrame) (*Session, *fakeRenderer) {
	t.Helper()
	ctx, renderer, _ := newTestContext(t, frames...)

	s, err := NewSession(ctx, SessionOptions{
		Config:     config.Default(),
		ConfigPath: filepath.Join(t.TempDir(), config.DefaultFilename),
		Booter:     booter,
		BasePath:   t.TempDir(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, renderer
}

// loadedSession has a stopped core attached, as after pausing.
func loadedSession(t *testing.T, booter *fakeBooter, frames ...inputFrame) (*Session, *fakeCore, *fakeRenderer) {
	t.Helper()
	s, renderer := newTestSession(t, booter, frames...)
	c := newFakeCore(false)
	require.NoError(t, s.runner.SetCore(c))
	s.ndsPath = "game.nds"
	return s, c, renderer
}

func downs(n int) []inputFrame {
	var out []inputFrame
	for i := 0; i < n; i++ {
		out = append(out, press(constants.ButtonDown)...)
	}
	return out
}

func writeROM(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("rom"), 0o644))
	return path
}

func TestSetPathIgnoresOtherFiles(t *testing.T) {
	booter := &fakeBooter{}
	s, _ := newTestSession(t, booter)

	result, err := s.SetPath("/roms/readme.txt")
	require.NoError(t, err)
	assert.Equal(t, PathIgnored, result)
	assert.Zero(t, booter.boots)
}

func TestSetPathBootsAndStarts(t *testing.T) {
	booter := &fakeBooter{}
	s, _ := newTestSession(t, booter)

	result, err := s.SetPath("/roms/Game.NDS")
	require.NoError(t, err)
	assert.Equal(t, PathLoaded, result)
	assert.Equal(t, "/roms/Game.NDS", booter.nds)
	assert.True(t, s.Runner().Running())
	assert.True(t, booter.cores[0].limiter)
}

func TestSetPathAsksToKeepOtherROM(t *testing.T) {
	booter := &fakeBooter{}
	s, renderer := newTestSession(t, booter, script(press(constants.ButtonB), press(constants.ButtonA))...)
	s.gbaPath = "/roms/old.gba"

	_, err := s.SetPath("/roms/new.nds")
	require.NoError(t, err)
	assert.True(t, renderer.drewText("Load the previous GBA ROM alongside this ROM?"))
	assert.True(t, renderer.drewText("Starting the emulator..."))
	nds, gba := s.ROMPaths()
	assert.Equal(t, "/roms/new.nds", nds)
	assert.Empty(t, gba)

	_, err = s.SetPath("/roms/other.gba")
	require.NoError(t, err)
	nds, gba = s.ROMPaths()
	assert.Equal(t, "/roms/new.nds", nds)
	assert.Equal(t, "/roms/other.gba", gba)
	assert.Equal(t, "/roms/new.nds", booter.nds)
}

func TestSetPathBootErrors(t *testing.T) {
	tests := []struct {
		kind  core.BootErrorKind
		title string
	}{
		{core.BootErrorBIOS, "Error Loading BIOS"},
		{core.BootErrorFirmware, "Error Loading Firmware"},
		{core.BootErrorROM, "Error Loading ROM"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			booter := &fakeBooter{err: &core.BootError{Kind: tt.kind, Path: "x"}}
			s, renderer := newTestSession(t, booter, press(constants.ButtonA)...)

			result, err := s.SetPath("/roms/game.nds")
			require.NoError(t, err)
			assert.Equal(t, PathFailed, result)
			assert.True(t, renderer.drewText(tt.title))
			nds, _ := s.ROMPaths()
			assert.Empty(t, nds)
			assert.False(t, s.Runner().Running())
		})
	}
}

func TestBootErrorMentionsConfigFile(t *testing.T) {
	booter := &fakeBooter{err: &core.BootError{Kind: core.BootErrorBIOS}}
	s, renderer := newTestSession(t, booter, press(constants.ButtonA)...)

	_, err := s.SetPath("/roms/game.nds")
	require.NoError(t, err)
	assert.True(t, renderer.drewText("You can modify the path settings in the noodle.toml file."))
}

func TestFileBrowserLoadsROMFromSubdirectory(t *testing.T) {
	booter := &fakeBooter{}
	s, _ := newTestSession(t, booter, script(press(constants.ButtonA), press(constants.ButtonA))...)
	base := s.CurrentPath()
	writeROM(t, filepath.Join(base, "readme.txt"))
	writeROM(t, filepath.Join(base, "games", "zelda.nds"))
	rom := writeROM(t, filepath.Join(base, "games", "Alpha.gba"))

	require.NoError(t, s.FileBrowser())
	_, gba := s.ROMPaths()
	assert.Equal(t, rom, gba)
	assert.Equal(t, filepath.Join(base, "games"), s.CurrentPath())
	assert.True(t, s.Runner().Running())
}

func TestFileBrowserBackAndExit(t *testing.T) {
	booter := &fakeBooter{}
	s, _ := newTestSession(t, booter, script(
		press(constants.ButtonB),
		press(constants.ButtonA),
		press(constants.ButtonB),
		press(constants.ButtonStart),
	)...)
	base := s.CurrentPath()
	require.NoError(t, os.Mkdir(filepath.Join(base, "empty"), 0o755))

	err := s.FileBrowser()
	assert.ErrorIs(t, err, ErrExit)
	assert.Equal(t, base, s.CurrentPath())
	assert.Zero(t, booter.boots)
}

func TestFileBrowserStaysAfterFailedBoot(t *testing.T) {
	booter := &fakeBooter{err: &core.BootError{Kind: core.BootErrorROM}}
	s, _ := newTestSession(t, booter, script(
		press(constants.ButtonA),
		press(constants.ButtonA),
		press(constants.ButtonStart),
	)...)
	writeROM(t, filepath.Join(s.CurrentPath(), "broken.nds"))

	assert.ErrorIs(t, s.FileBrowser(), ErrExit)
	assert.Equal(t, 1, booter.boots)
}

func TestSettingsMenuCyclesAndSaves(t *testing.T) {
	s, _ := newTestSession(t, &fakeBooter{}, script(
		press(constants.ButtonA),
		downs(4),
		press(constants.ButtonA),
		press(constants.ButtonB),
	)...)

	require.NoError(t, s.SettingsMenu())
	assert.Equal(t, 0, s.Config().Emulation.DirectBoot)
	assert.Equal(t, 2, s.Config().Emulation.Threaded3D)

	saved, err := config.Load(s.cfgPath)
	require.NoError(t, err)
	assert.Equal(t, 0, saved.Emulation.DirectBoot)
	assert.Equal(t, 2, saved.Emulation.Threaded3D)
}

func TestSettingsMenuSwitchesTheme(t *testing.T) {
	s, _ := newTestSession(t, &fakeBooter{}, script(
		downs(len(settings)-2),
		press(constants.ButtonA),
		press(constants.ButtonB),
	)...)

	require.NoError(t, s.SettingsMenu())
	assert.Equal(t, "light", s.Config().UI.Theme)
	assert.Equal(t, internal.LightTheme, s.ctx.Theme())
}

func TestSettingValueOutOfRange(t *testing.T) {
	cfg := config.Default()
	cfg.Emulation.ScreenGap = 9
	st := settings[14]
	require.Equal(t, "Screen Gap", localize(st.label))
	assert.Equal(t, "None", st.value(cfg))
}

func TestSettingsMenuFollowsLanguage(t *testing.T) {
	require.NoError(t, i18n.InitDefault("es"))
	t.Cleanup(i18n.Reset)

	s, renderer := newTestSession(t, &fakeBooter{}, press(constants.ButtonB)...)
	require.NoError(t, s.SettingsMenu())
	assert.True(t, renderer.drewText("Arranque directo"))
	assert.True(t, renderer.drewText("Activado"))
	assert.False(t, renderer.drewText("Direct Boot"))
}

func TestControlsMenuRemapsAndClears(t *testing.T) {
	s, renderer := newTestSession(t, &fakeBooter{}, script(
		press(constants.ButtonA),
		press(constants.ButtonY),
		press(constants.ButtonDown),
		press(constants.ButtonX),
		press(constants.ButtonB),
	)...)

	require.NoError(t, s.ControlsMenu())
	assert.True(t, renderer.drewText("Remap A Button"))
	b := s.Bindings()
	assert.Equal(t, constants.ButtonA|constants.ButtonY, b[core.KeyA])
	assert.Equal(t, constants.ButtonNone, b[core.KeyB])
	assert.Equal(t, []string{"A", "Y"}, s.Config().Bindings["a"])
	assert.Equal(t, []string{}, s.Config().Bindings["b"])
}

func TestPauseMenuBackResumes(t *testing.T) {
	s, _, _ := loadedSession(t, &fakeBooter{}, press(constants.ButtonB)...)

	require.NoError(t, s.PauseMenu())
	assert.True(t, s.Runner().Running())
}

func TestPauseMenuSaveState(t *testing.T) {
	s, c, renderer := loadedSession(t, &fakeBooter{}, script(
		downs(2),
		press(constants.ButtonA),
		press(constants.ButtonA),
	)...)

	require.NoError(t, s.PauseMenu())
	assert.Equal(t, 1, c.savedStates)
	assert.True(t, renderer.drewText("Saving and loading states is dangerous and can lead to data loss."))
	assert.True(t, s.Runner().Running())
}

func TestPauseMenuSaveStateCancelled(t *testing.T) {
	s, c, renderer := loadedSession(t, &fakeBooter{}, script(
		downs(2),
		press(constants.ButtonA),
		press(constants.ButtonB),
		press(constants.ButtonB),
	)...)
	c.state = core.StateOK

	require.NoError(t, s.PauseMenu())
	assert.Zero(t, c.savedStates)
	assert.True(t, renderer.drewText("Do you want to overwrite the saved state with the current state? This can't be undone!"))
}

func TestPauseMenuLoadStateErrors(t *testing.T) {
	tests := []struct {
		status core.StateStatus
		text   string
	}{
		{core.StateFileMissing, "The state file doesn't exist or couldn't be opened."},
		{core.StateBadFormat, "The state file doesn't have a valid format."},
		{core.StateBadVersion, "The state file isn't compatible with this version of the emulator."},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			s, c, renderer := loadedSession(t, &fakeBooter{}, script(
				downs(3),
				press(constants.ButtonA),
				press(constants.ButtonA),
				press(constants.ButtonB),
			)...)
			c.state = tt.status

			require.NoError(t, s.PauseMenu())
			assert.Zero(t, c.loaded)
			assert.True(t, renderer.drewText(tt.text))
			assert.True(t, s.Runner().Running())
		})
	}
}

func TestPauseMenuLoadState(t *testing.T) {
	s, c, _ := loadedSession(t, &fakeBooter{}, script(
		downs(3),
		press(constants.ButtonA),
		press(constants.ButtonA),
	)...)
	c.state = core.StateOK

	require.NoError(t, s.PauseMenu())
	assert.Equal(t, 1, c.loaded)
	assert.True(t, s.Runner().Running())
}

func TestPauseMenuRestart(t *testing.T) {
	booter := &fakeBooter{}
	s, c, _ := loadedSession(t, booter, script(downs(1), press(constants.ButtonA))...)

	require.NoError(t, s.PauseMenu())
	assert.Equal(t, 1, booter.boots)
	assert.Equal(t, "game.nds", booter.nds)
	assert.NotSame(t, c, s.Runner().Core())
	assert.True(t, s.Runner().Running())
}

func TestPauseMenuChangeSaveType(t *testing.T) {
	booter := &fakeBooter{}
	s, c, renderer := loadedSession(t, booter, script(
		downs(4),
		press(constants.ButtonA),
		downs(2),
		press(constants.ButtonA),
		press(constants.ButtonA),
	)...)

	require.NoError(t, s.PauseMenu())
	assert.True(t, renderer.drewText("Are you sure? This may result in data loss!"))
	assert.Equal(t, []int{0x2000}, c.resized)
	assert.Equal(t, 1, booter.boots)
	assert.True(t, s.Runner().Running())
}

func TestSaveTypeMenuListsGBATypes(t *testing.T) {
	s, renderer := newTestSession(t, &fakeBooter{}, script(
		downs(3),
		press(constants.ButtonA),
		press(constants.ButtonB),
		press(constants.ButtonB),
	)...)
	c := newFakeCore(true)
	require.NoError(t, s.runner.SetCore(c))

	changed, err := s.SaveTypeMenu()
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, c.resized)
	assert.True(t, renderer.drewText("SRAM 32KB"))
	assert.False(t, renderer.drewText("FRAM 32KB"))
}

func TestRunForwardsKeysAndPauses(t *testing.T) {
	booter := &fakeBooter{}
	s, _ := newTestSession(t, booter, script(
		press(constants.ButtonA),
		[]inputFrame{{held: constants.ButtonA}, {held: constants.ButtonA}, {}},
		press(constants.ButtonL),
		press(constants.ButtonB),
		[]inputFrame{{}, {}},
	)...)
	writeROM(t, filepath.Join(s.CurrentPath(), "game.nds"))

	require.NoError(t, s.Run(context.Background()))
	require.Len(t, booter.cores, 1)
	assert.True(t, booter.cores[0].wasPressed(core.KeyA))
	assert.False(t, s.Runner().Running())
}

func TestRunExitFromBrowser(t *testing.T) {
	s, _ := newTestSession(t, &fakeBooter{}, press(constants.ButtonStart)...)
	assert.NoError(t, s.Run(context.Background()))
}

func TestFastForwardHotkeys(t *testing.T) {
	s, c, _ := loadedSession(t, &fakeBooter{})
	s.bindings[core.KeyFastHold] = constants.ButtonZR
	s.bindings[core.KeyFastToggle] = constants.ButtonZL
	s.bindings[core.KeyScreenSwap] = constants.ButtonMinus

	require.NoError(t, s.handleHotkeys(c, constants.ButtonZR, constants.ButtonZR))
	assert.Equal(t, 0, s.cfg.Emulation.FPSLimiter)
	assert.False(t, c.limiter)

	require.NoError(t, s.handleHotkeys(c, constants.ButtonNone, constants.ButtonNone))
	assert.Equal(t, 1, s.cfg.Emulation.FPSLimiter)
	assert.True(t, c.limiter)

	require.NoError(t, s.handleHotkeys(c, constants.ButtonZL, constants.ButtonZL))
	assert.Equal(t, 0, s.cfg.Emulation.FPSLimiter)
	require.NoError(t, s.handleHotkeys(c, constants.ButtonNone, constants.ButtonNone))
	assert.Equal(t, 0, s.cfg.Emulation.FPSLimiter)
	require.NoError(t, s.handleHotkeys(c, constants.ButtonZL, constants.ButtonZL))
	assert.Equal(t, 1, s.cfg.Emulation.FPSLimiter)

	require.NoError(t, s.handleHotkeys(c, constants.ButtonMinus, constants.ButtonMinus))
	assert.Equal(t, 1, s.cfg.Emulation.ScreenSizing)
	require.NoError(t, s.handleHotkeys(c, constants.ButtonMinus, constants.ButtonMinus))
	assert.Equal(t, 2, s.cfg.Emulation.ScreenSizing)
}
