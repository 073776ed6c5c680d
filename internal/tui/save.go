package tui

import (
	"fmt"
	"maps"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/snaptile/internal/config"
)

type savePhase int

const (
	saveHidden  savePhase = iota
	savePreview           // listing changes, awaiting confirm
	saveResult            // showing outcome message
)

// optionChange is one option whose value differs from the file on disk.
// An empty before or after means the option is unset on that side.
type optionChange struct {
	path   string
	before string
	after  string
}

// SaveOverlay manages the save preview and confirmation workflow.
type SaveOverlay struct {
	phase     savePhase
	changes   []optionChange
	err       error
	reloadErr error
	reloaded  bool
	scroll    int
}

// Active reports whether the overlay is visible.
func (s SaveOverlay) Active() bool {
	return s.phase != saveHidden
}

// Show lists the changes between original and current and opens the preview.
func (s *SaveOverlay) Show(original, current *config.Config) {
	s.err = nil
	s.reloadErr = nil
	s.reloaded = false
	s.scroll = 0

	changes, err := diffConfigs(original, current)
	switch {
	case err != nil:
		s.phase = saveResult
		s.err = err
	case len(changes) == 0:
		s.phase = saveResult
		s.err = fmt.Errorf("no changes to save")
	default:
		s.changes = changes
		s.phase = savePreview
	}
}

// SaveSucceeded reports whether the last save wrote the file.
func (s SaveOverlay) SaveSucceeded() bool {
	return s.phase == saveResult && s.err == nil
}

// Update handles input while the overlay is active.
func (s SaveOverlay) Update(msg tea.Msg, cfg *config.Config, path string, client daemonClient, connected bool) SaveOverlay {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return s
	}

	switch s.phase {
	case savePreview:
		switch km.String() {
		case "esc", "n":
			s.phase = saveHidden
		case "enter", "y":
			s.err = cfg.SaveTo(path)
			if s.err == nil && connected && client != nil {
				s.reloadErr = client.Reload()
				s.reloaded = s.reloadErr == nil
			}
			s.phase = saveResult
		case "up", "k":
			if s.scroll > 0 {
				s.scroll--
			}
		case "down", "j":
			if s.scroll < len(s.changes)-1 {
				s.scroll++
			}
		}
	case saveResult:
		s.phase = saveHidden
	}
	return s
}

// View renders the overlay centered in the content area.
func (s SaveOverlay) View(width, height int) string {
	var body string
	boxW := clamp(width-8, 30, 80)
	switch s.phase {
	case savePreview:
		body = s.previewBody(boxW-6, height-10)
	case saveResult:
		boxW = clamp(width-8, 30, 60)
		body = s.resultBody()
	default:
		return ""
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Width(boxW).
		Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func (s SaveOverlay) previewBody(innerW, rows int) string {
	rows = max(rows, 3)
	off := min(s.scroll, max(len(s.changes)-rows, 0))
	end := min(off+rows, len(s.changes))

	pathW := 0
	for _, c := range s.changes {
		pathW = max(pathW, len(c.path))
	}
	pathW = min(pathW, innerW/2)

	pathStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Width(pathW + 2)
	oldStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	newStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	lines := make([]string, 0, end-off)
	for _, c := range s.changes[off:end] {
		before, after := c.before, c.after
		if before == "" {
			before = "(unset)"
		}
		if after == "" {
			after = "(unset)"
		}
		lines = append(lines, pathStyle.Render(c.path)+oldStyle.Render(before)+dimStyle.Render(" → ")+newStyle.Render(after))
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).
		Render(fmt.Sprintf("Save Config: %d pending change(s)", len(s.changes)))
	footer := dimStyle.Render("enter/y: save  esc/n: cancel  j/k: scroll")
	return title + "\n\n" + strings.Join(lines, "\n") + "\n\n" + footer
}

func (s SaveOverlay) resultBody() string {
	okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	var msg string
	switch {
	case s.err != nil:
		msg = errStyle.Render("Error: " + s.err.Error())
	case s.reloadErr != nil:
		msg = okStyle.Render("Config saved") + "\n" + warnStyle.Render("Daemon reload failed: "+s.reloadErr.Error())
	case s.reloaded:
		msg = okStyle.Render("Config saved") + "\n" + okStyle.Render("Daemon reloaded")
	default:
		msg = okStyle.Render("Config saved")
	}
	return msg + "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("press any key to dismiss")
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// diffConfigs compares the YAML forms of two configs option by option.
// Nested maps such as keys are compared per entry under dotted paths.
func diffConfigs(original, current *config.Config) ([]optionChange, error) {
	if original == nil || current == nil {
		return nil, nil
	}
	before, err := flattenConfig(original)
	if err != nil {
		return nil, err
	}
	after, err := flattenConfig(current)
	if err != nil {
		return nil, err
	}

	var changes []optionChange
	for path, v := range after {
		if before[path] != v {
			changes = append(changes, optionChange{path: path, before: before[path], after: v})
		}
	}
	for path, v := range before {
		if _, ok := after[path]; !ok {
			changes = append(changes, optionChange{path: path, before: v})
		}
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].path < changes[j].path })
	return changes, nil
}

func flattenConfig(cfg *config.Config) (map[string]string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to read config back: %w", err)
	}
	out := make(map[string]string)
	flattenInto(out, "", tree)
	return out, nil
}

func flattenInto(out map[string]string, prefix string, tree map[string]any) {
	for k, v := range tree {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			flattenInto(out, path, sub)
			continue
		}
		out[path] = fmt.Sprint(v)
	}
}

// cloneConfig returns a copy that shares no maps with cfg.
func cloneConfig(cfg *config.Config) *config.Config {
	if cfg == nil {
		return nil
	}
	clone := *cfg
	clone.Keys = maps.Clone(cfg.Keys)
	return &clone
}
