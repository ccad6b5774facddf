package noodle

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pawndev/noodle/pkg/noodle/constants"
	"github.com/pawndev/noodle/pkg/noodle/internal"
	"github.com/pawndev/noodle/pkg/noodle/ndsicon"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const browserTitle = "NooDS"

// BrowseResult is what the user did in one directory listing.
type BrowseResult struct {
	Action BrowseAction
	// Path is the chosen entry when Action is BrowseActionSelected.
	Path  string
	IsDir bool
	Index int
}

type browserEntry struct {
	item  MenuItem
	isDir bool
	owned bool
}

// Browse lists dir's subdirectories and ROMs and blocks until one is chosen
// or an action button is pressed. ROM icons are released before it returns.
func Browse(ctx *Context, dir string, index int) (BrowseResult, error) {
	for {
		entries, err := listDirectory(ctx, dir)
		if err != nil {
			return BrowseResult{}, err
		}

		menuItems := make([]MenuItem, len(entries))
		for i, e := range entries {
			menuItems[i] = e.item
		}

		sel, err := RunMenu(ctx, MenuOptions{
			Title:      browserTitle,
			Items:      menuItems,
			Index:      index,
			ActionX:    localize(msgSettings),
			ActionPlus: localize(msgExit),
		})
		releaseEntries(ctx, entries)
		if err != nil {
			return BrowseResult{}, err
		}

		switch {
		case sel.Pressed.Has(constants.ButtonA):
			if len(entries) == 0 {
				index = 0
				continue
			}
			e := entries[sel.Index]
			return BrowseResult{
				Action: BrowseActionSelected,
				Path:   filepath.Join(dir, e.item.Name),
				IsDir:  e.isDir,
				Index:  sel.Index,
			}, nil
		case sel.Pressed.Has(constants.ButtonB):
			return BrowseResult{Action: BrowseActionBack, Index: sel.Index}, nil
		case sel.Pressed.Has(constants.ButtonX):
			return BrowseResult{Action: BrowseActionSettings, Index: sel.Index}, nil
		case sel.Pressed.Has(constants.ButtonStart):
			return BrowseResult{Action: BrowseActionExit, Index: sel.Index}, nil
		}
		index = sel.Index
	}
}

func listDirectory(ctx *Context, dir string) ([]browserEntry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var entries []browserEntry
	for _, de := range dirEntries {
		name := de.Name()
		path := filepath.Join(dir, name)

		info, err := os.Stat(path)
		if err != nil {
			ctx.logger.Debug("Skipping unreadable entry", "path", path, "error", err)
			continue
		}

		switch {
		case info.IsDir():
			entries = append(entries, browserEntry{
				item:  MenuItem{Name: name, Icon: ctx.FolderIcon(), IconSize: internal.IconSize},
				isDir: true,
			})
		case hasExt(name, ".nds"):
			entries = append(entries, romEntry(ctx, name, path))
		case hasExt(name, ".gba"):
			entries = append(entries, browserEntry{
				item: MenuItem{Name: name, Icon: ctx.FileIcon(), IconSize: internal.IconSize},
			})
		}
	}

	sortEntries(entries)
	return entries, nil
}

func romEntry(ctx *Context, name, path string) browserEntry {
	icon, err := ndsicon.DecodeFile(path)
	if err != nil {
		ctx.logger.Debug("No banner icon", "path", path, "error", err)
	}
	tex, err := ctx.renderer.CreateTexture(icon, ndsicon.Size, ndsicon.Size)
	if err != nil {
		ctx.logger.Error("Failed to create ROM icon", "path", path, "error", err)
		return browserEntry{item: MenuItem{Name: name}}
	}
	return browserEntry{
		item:  MenuItem{Name: name, Icon: tex, IconSize: ndsicon.Size},
		owned: true,
	}
}

func releaseEntries(ctx *Context, entries []browserEntry) {
	for _, e := range entries {
		if e.owned {
			ctx.renderer.DestroyTexture(e.item.Icon)
		}
	}
}

func sortEntries(entries []browserEntry) {
	c := collate.New(language.Und, collate.IgnoreCase, collate.Numeric)
	slices.SortStableFunc(entries, func(a, b browserEntry) int {
		return c.CompareString(a.item.Name, b.item.Name)
	})
}

func hasExt(name, ext string) bool {
	return strings.EqualFold(filepath.Ext(name), ext)
}
