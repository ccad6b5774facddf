package noodle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pawndev/noodle/pkg/noodle/constants"
	"github.com/pawndev/noodle/pkg/noodle/internal"
	"github.com/pawndev/noodle/pkg/noodle/ndsicon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowseSortsAndReleasesIcons(t *testing.T) {
	dir := t.TempDir()
	writeROM(t, filepath.Join(dir, "b.nds"))
	writeROM(t, filepath.Join(dir, "A.gba"))
	writeROM(t, filepath.Join(dir, "notes.txt"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "c"), 0o755))

	ctx, renderer, _ := newTestContext(t, script(press(constants.ButtonDown), press(constants.ButtonA))...)

	res, err := Browse(ctx, dir, 0)
	require.NoError(t, err)
	assert.Equal(t, BrowseResult{
		Action: BrowseActionSelected,
		Path:   filepath.Join(dir, "b.nds"),
		Index:  1,
	}, res)

	assert.Len(t, renderer.destroyed, 1, "ROM icon released")
	assert.Len(t, renderer.textures, 2, "folder and file icons stay cached")
}

func TestBrowseItems(t *testing.T) {
	dir := t.TempDir()
	writeROM(t, filepath.Join(dir, "game10.nds"))
	writeROM(t, filepath.Join(dir, "game9.nds"))
	writeROM(t, filepath.Join(dir, "Zed.GBA"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "saves"), 0o755))

	ctx, _, _ := newTestContext(t)
	entries, err := listDirectory(ctx, dir)
	require.NoError(t, err)
	defer releaseEntries(ctx, entries)

	var names []string
	for _, e := range entries {
		names = append(names, e.item.Name)
	}
	assert.Equal(t, []string{"game9.nds", "game10.nds", "saves", "Zed.GBA"}, names)

	assert.Equal(t, ndsicon.Size, entries[0].item.IconSize)
	assert.True(t, entries[0].owned)
	assert.True(t, entries[2].isDir)
	assert.Equal(t, ctx.FolderIcon(), entries[2].item.Icon)
	assert.Equal(t, internal.IconSize, entries[3].item.IconSize)
	assert.Equal(t, ctx.FileIcon(), entries[3].item.Icon)
}

func TestBrowseActions(t *testing.T) {
	tests := []struct {
		button constants.Button
		action BrowseAction
	}{
		{constants.ButtonB, BrowseActionBack},
		{constants.ButtonX, BrowseActionSettings},
		{constants.ButtonStart, BrowseActionExit},
	}
	for _, tt := range tests {
		t.Run(tt.button.GetName(), func(t *testing.T) {
			ctx, renderer, _ := newTestContext(t, press(tt.button)...)
			res, err := Browse(ctx, t.TempDir(), 0)
			require.NoError(t, err)
			assert.Equal(t, tt.action, res.Action)
			assert.True(t, renderer.drewText(browserTitle))
		})
	}
}

func TestBrowseEmptyDirectoryIgnoresA(t *testing.T) {
	ctx, _, _ := newTestContext(t, script(press(constants.ButtonA), press(constants.ButtonB))...)
	res, err := Browse(ctx, t.TempDir(), 0)
	require.NoError(t, err)
	assert.Equal(t, BrowseActionBack, res.Action)
}

func TestBrowseMissingDirectory(t *testing.T) {
	ctx, _, _ := newTestContext(t)
	_, err := Browse(ctx, filepath.Join(t.TempDir(), "gone"), 0)
	assert.Error(t, err)
}

func TestBrowseShutdown(t *testing.T) {
	ctx, _, _ := newTestContext(t)
	ctx.Shutdown()
	_, err := Browse(ctx, t.TempDir(), 0)
	assert.ErrorIs(t, err, ErrShutdown)
}
