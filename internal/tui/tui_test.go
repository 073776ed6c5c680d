package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/snaptile/internal/config"
	"github.com/1broseidon/snaptile/internal/ipc"
	"github.com/1broseidon/snaptile/internal/tiling"
)

type fakeClient struct {
	running bool
	reloads int
}

func (c *fakeClient) GetStatus() (*ipc.StatusData, error) {
	if !c.running {
		return nil, errors.New("daemon not running")
	}
	return &ipc.StatusData{DaemonRunning: true, SessionActive: true}, nil
}

func (c *fakeClient) Reload() error {
	c.reloads++
	return nil
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func loadTemp(t *testing.T) (string, *config.LoadResult) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	res, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	return path, res
}

func TestDiffConfigs_ListsChangedOptions(t *testing.T) {
	original := config.DefaultConfig()
	current := cloneConfig(original)
	current.ColumnSize = 32
	current.Keys[config.TileEnter] = "Mod4-t"

	changes, err := diffConfigs(original, current)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []optionChange{
		{path: "column_size", before: "64", after: "32"},
		{path: "keys." + config.TileEnter, before: "Mod4-Return", after: "Mod4-t"},
	}
	if len(changes) != len(want) {
		t.Fatalf("expected %d changes, got %+v", len(want), changes)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Fatalf("expected %+v at %d, got %+v", want[i], i, changes[i])
		}
	}
}

func TestDiffConfigs_NoChanges(t *testing.T) {
	cfg := config.DefaultConfig()
	changes, err := diffConfigs(cfg, cloneConfig(cfg))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(changes) != 0 {
		t.Fatalf("expected no changes, got %+v", changes)
	}
}

func TestDiffConfigs_ExplicitHalfGap(t *testing.T) {
	original := config.DefaultConfig()
	current := cloneConfig(original)
	current.GapInnerHalf = 3

	changes, err := diffConfigs(original, current)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(changes) != 1 || changes[0].path != "gap_inner_half" || changes[0].before != "" || changes[0].after != "3" {
		t.Fatalf("expected gap_inner_half added, got %+v", changes)
	}
}

func TestCloneConfig_IsDeep(t *testing.T) {
	cfg := config.DefaultConfig()
	clone := cloneConfig(cfg)
	clone.Keys[config.TileEnter] = "Mod4-t"
	if cfg.Keys[config.TileEnter] != "Mod4-Return" {
		t.Fatalf("expected original keys untouched, got %q", cfg.Keys[config.TileEnter])
	}
}

func TestGeneralTab_ApplyForm(t *testing.T) {
	cfg := config.DefaultConfig()
	g := NewGeneralTab(cfg)
	g.loadFields()
	g.fColumnSize = "48"
	g.fGapOuter = "4"
	g.fHintColor = "#112233"
	g.fActiveHint = false

	if err := g.applyForm(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ColumnSize != 48 || cfg.GapOuter != 4 || cfg.HintColor != "#112233" || cfg.ActiveHint {
		t.Fatalf("expected form values applied, got %+v", cfg)
	}
}

func TestGeneralTab_ApplyFormRejectsInvalidGrid(t *testing.T) {
	cfg := config.DefaultConfig()
	g := NewGeneralTab(cfg)
	g.loadFields()
	g.fColumnSize = "32"
	g.fGapOuter = "40"

	if err := g.applyForm(); err == nil {
		t.Fatalf("expected validation error")
	}
	if cfg.ColumnSize != 64 || cfg.GapOuter != 2 {
		t.Fatalf("expected config unchanged, got column_size=%d gap_outer=%d", cfg.ColumnSize, cfg.GapOuter)
	}
}

func TestGeneralTab_ApplyFormRejectsGarbage(t *testing.T) {
	cfg := config.DefaultConfig()
	g := NewGeneralTab(cfg)
	g.loadFields()
	g.fScale = "big"

	if err := g.applyForm(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestFieldValidators(t *testing.T) {
	if validatePositive("0") == nil || validatePositive("12") != nil {
		t.Fatalf("unexpected validatePositive results")
	}
	if validateNonNegative("-1") == nil || validateNonNegative("0") != nil {
		t.Fatalf("unexpected validateNonNegative results")
	}
	if validateScale("0") == nil || validateScale("1.5") != nil {
		t.Fatalf("unexpected validateScale results")
	}
	if validateColor("teal") == nil || validateColor("#48b9c7") != nil {
		t.Fatalf("unexpected validateColor results")
	}
}

func TestKeysTab_SetAndResetBinding(t *testing.T) {
	cfg := config.DefaultConfig()
	k := NewKeysTab(cfg)

	k.setBinding(config.TileEnter, "Mod4-t")
	if cfg.Keys[config.TileEnter] != "Mod4-t" {
		t.Fatalf("expected override stored, got %q", cfg.Keys[config.TileEnter])
	}

	var found bool
	for _, it := range buildKeyItems(cfg) {
		item := it.(keyItem)
		if item.name == config.TileEnter {
			found = true
			if !item.overridden || item.sequence != "Mod4-t" {
				t.Fatalf("expected overridden item, got %+v", item)
			}
		} else if item.overridden {
			t.Fatalf("expected %s at its default", item.name)
		}
	}
	if !found {
		t.Fatalf("expected %s listed", config.TileEnter)
	}

	k.resetBinding(config.TileEnter)
	if cfg.Keys[config.TileEnter] != "Mod4-Return" {
		t.Fatalf("expected default restored, got %q", cfg.Keys[config.TileEnter])
	}
}

func TestBuildKeyItems_ListsEveryBindingSorted(t *testing.T) {
	items := buildKeyItems(config.DefaultConfig())
	if len(items) != len(config.DefaultKeys()) {
		t.Fatalf("expected %d items, got %d", len(config.DefaultKeys()), len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i-1].(keyItem).name >= items[i].(keyItem).name {
			t.Fatalf("expected sorted names, got %q before %q", items[i-1].(keyItem).name, items[i].(keyItem).name)
		}
	}
}

func TestDescribeBinding(t *testing.T) {
	if got := describeBinding("tile-resize-up"); got != "Session: resize the overlay up" {
		t.Fatalf("expected resize description, got %q", got)
	}
	if got := describeBinding(config.FocusLeft); !strings.Contains(got, "left") {
		t.Fatalf("expected focus description, got %q", got)
	}
}

func TestPreviewTiles_SnapToGridWithGaps(t *testing.T) {
	cfg := config.DefaultConfig()
	rects := previewTiles(cfg)
	if len(rects) != 3 {
		t.Fatalf("expected 3 sample tiles, got %d", len(rects))
	}

	// 1920x1080 with 64px cells: 30 columns, 16 rows; outer gap 2, inner 1 per side.
	want := tiling.Rect{X: 2, Y: 2, Width: 15*64 - 3, Height: 16*64 - 4}
	if rects[0] != want {
		t.Fatalf("expected %v, got %v", want, rects[0])
	}
	for _, r := range rects {
		if !previewMonitor.Contains(r) {
			t.Fatalf("expected %v inside the monitor", r)
		}
	}
}

func TestRenderGridPreview_Dimensions(t *testing.T) {
	lines := renderGridPreview(config.DefaultConfig(), 40, 12)
	if len(lines) != 12 {
		t.Fatalf("expected 12 lines, got %d", len(lines))
	}
	for i, l := range lines {
		if n := utf8.RuneCountInString(l); n != 40 {
			t.Fatalf("expected 40 runes on line %d, got %d", i, n)
		}
	}
	if !strings.HasPrefix(lines[0], "╔") {
		t.Fatalf("expected border, got %q", lines[0])
	}
	if !strings.Contains(strings.Join(lines, "\n"), "┌") {
		t.Fatalf("expected at least one tile drawn")
	}
}

func TestSummarizeGrid(t *testing.T) {
	if got := summarizeGrid(config.DefaultConfig()); !strings.HasPrefix(got, "30×16 cells") {
		t.Fatalf("expected 30×16 cells, got %q", got)
	}
}

func TestModel_TabSwitching(t *testing.T) {
	path, res := loadTemp(t)
	m := newModelFromResult(path, res, nil)

	next, _ := m.Update(key("tab"))
	if got := next.(model).activeTab; got != TabKeys {
		t.Fatalf("expected keys tab, got %v", got)
	}
	next, _ = next.(model).Update(key("1"))
	if got := next.(model).activeTab; got != TabGeneral {
		t.Fatalf("expected grid tab, got %v", got)
	}
}

func TestModel_SaveWritesFileAndReloadsDaemon(t *testing.T) {
	path, res := loadTemp(t)
	client := &fakeClient{running: true}
	m := newModelFromResult(path, res, client)
	if !m.daemonConnected || !m.sessionActive {
		t.Fatalf("expected daemon status picked up")
	}

	m.result.Config.ColumnSize = 32

	next, _ := m.Update(key("ctrl+s"))
	m = next.(model)
	if m.saveOverlay.phase != savePreview {
		t.Fatalf("expected save preview, got phase %d", m.saveOverlay.phase)
	}

	next, _ = m.Update(key("enter"))
	m = next.(model)
	if !m.saveOverlay.SaveSucceeded() {
		t.Fatalf("expected save to succeed, got %v", m.saveOverlay.err)
	}
	if client.reloads != 1 {
		t.Fatalf("expected daemon reload, got %d", client.reloads)
	}
	if m.originalConfig.ColumnSize != 32 {
		t.Fatalf("expected snapshot updated after save")
	}

	saved, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("unexpected reload error: %v", err)
	}
	if saved.Config.ColumnSize != 32 {
		t.Fatalf("expected saved column_size 32, got %d", saved.Config.ColumnSize)
	}
}

func TestModel_SaveWithoutChanges(t *testing.T) {
	path, res := loadTemp(t)
	m := newModelFromResult(path, res, nil)

	next, _ := m.Update(key("ctrl+s"))
	m = next.(model)
	if m.saveOverlay.phase != saveResult || m.saveOverlay.err == nil {
		t.Fatalf("expected no-changes result, got phase %d err %v", m.saveOverlay.phase, m.saveOverlay.err)
	}
}
