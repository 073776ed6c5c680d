package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/snaptile/internal/config"
)

// keyItem is a list item representing one binding.
type keyItem struct {
	name       string
	sequence   string
	overridden bool
}

func (i keyItem) Title() string {
	if i.overridden {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Render("★") + " " + i.name
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("✓") + " " + i.name
}

func (i keyItem) Description() string {
	if i.overridden {
		return i.sequence + " | customized"
	}
	return i.sequence
}

func (i keyItem) FilterValue() string { return i.name }

// KeysTab is the sub-model for the key bindings tab.
type KeysTab struct {
	list   list.Model
	cfg    *config.Config
	width  int
	height int

	// Edit mode
	editing   bool
	textInput textinput.Model
}

// NewKeysTab creates a new KeysTab from the loaded config.
func NewKeysTab(cfg *config.Config) KeysTab {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("15")).
		BorderForeground(lipgloss.Color("62"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("250")).
		BorderForeground(lipgloss.Color("62"))

	l := list.New(buildKeyItems(cfg), delegate, 0, 0)
	l.Title = "Key Bindings"
	l.Styles.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("62")).
		Padding(0, 1)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)

	ti := textinput.New()
	ti.Placeholder = "e.g. Mod4-Return, Shift-Left"
	ti.CharLimit = 64

	return KeysTab{
		list:      l,
		cfg:       cfg,
		textInput: ti,
	}
}

// Init implements tea.Model.
func (k KeysTab) Init() tea.Cmd { return nil }

// Update handles messages for the keys tab.
func (k KeysTab) Update(msg tea.Msg) (KeysTab, tea.Cmd) {
	if k.editing {
		return k.updateEditing(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		k.width = msg.Width
		k.height = msg.Height
		k.list.SetSize(k.listWidth(), k.height)
		return k, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "e", "enter":
			if item, ok := k.list.SelectedItem().(keyItem); ok {
				k.editing = true
				k.textInput.SetValue(item.sequence)
				k.textInput.CursorEnd()
				k.textInput.Focus()
				return k, textinput.Blink
			}
			return k, nil
		case "x", "delete":
			if item, ok := k.list.SelectedItem().(keyItem); ok {
				k.resetBinding(item.name)
				k.list.SetItems(buildKeyItems(k.cfg))
			}
			return k, nil
		}
	}

	var cmd tea.Cmd
	k.list, cmd = k.list.Update(msg)
	return k, cmd
}

func (k KeysTab) updateEditing(msg tea.Msg) (KeysTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			value := strings.TrimSpace(k.textInput.Value())
			if item, ok := k.list.SelectedItem().(keyItem); ok && value != "" {
				k.setBinding(item.name, value)
				k.list.SetItems(buildKeyItems(k.cfg))
			}
			k.editing = false
			k.textInput.Blur()
			return k, nil
		case "esc":
			k.editing = false
			k.textInput.Blur()
			return k, nil
		}
	case tea.WindowSizeMsg:
		k.width = msg.Width
		k.height = msg.Height
		return k, nil
	}

	var cmd tea.Cmd
	k.textInput, cmd = k.textInput.Update(msg)
	return k, cmd
}

func (k KeysTab) listWidth() int {
	w := k.width * 2 / 5
	if w < 20 {
		w = 20
	}
	return w
}

// setBinding stores seq for name. Setting a binding back to its default
// removes the override.
func (k *KeysTab) setBinding(name, seq string) {
	if k.cfg == nil {
		return
	}
	if config.DefaultKeys()[name] == seq {
		k.resetBinding(name)
		return
	}
	if k.cfg.Keys == nil {
		k.cfg.Keys = make(map[string]string)
	}
	k.cfg.Keys[name] = seq
}

func (k *KeysTab) resetBinding(name string) {
	if k.cfg == nil || k.cfg.Keys == nil {
		return
	}
	if def, ok := config.DefaultKeys()[name]; ok {
		k.cfg.Keys[name] = def
		return
	}
	delete(k.cfg.Keys, name)
}

// View implements tea.Model.
func (k KeysTab) View() string {
	if k.width == 0 || k.height == 0 {
		return ""
	}

	leftWidth := k.listWidth()
	rightWidth := k.width - leftWidth
	if rightWidth < 10 {
		rightWidth = 10
	}

	var leftContent string
	if k.editing {
		inputStyle := lipgloss.NewStyle().Padding(0, 1).Width(leftWidth)
		prompt := lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Render("Key sequence:") + "\n" +
			k.textInput.View() + "\n" +
			lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("enter: confirm  esc: cancel")
		inputBlock := inputStyle.Render(prompt)
		listHeight := k.height - lipgloss.Height(inputBlock)
		if listHeight < 1 {
			listHeight = 1
		}
		k.list.SetSize(leftWidth, listHeight)
		leftContent = inputBlock + "\n" + k.list.View()
	} else {
		leftContent = k.list.View()
	}

	left := lipgloss.NewStyle().
		Width(leftWidth).
		Height(k.height).
		Render(leftContent)

	var right string
	if item, ok := k.list.SelectedItem().(keyItem); ok {
		right = renderKeyDetail(item, rightWidth, k.height)
	} else {
		right = lipgloss.NewStyle().
			Width(rightWidth).
			Height(k.height).
			Foreground(lipgloss.Color("241")).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No bindings")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// buildKeyItems lists every binding in name order, defaults filled in.
func buildKeyItems(cfg *config.Config) []list.Item {
	if cfg == nil {
		return nil
	}
	defaults := config.DefaultKeys()
	sequences := cfg.Sequences()

	names := make([]string, 0, len(sequences))
	for name := range sequences {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]list.Item, 0, len(names))
	for _, name := range names {
		items = append(items, keyItem{
			name:       name,
			sequence:   sequences[name],
			overridden: sequences[name] != defaults[name],
		})
	}
	return items
}

var keyDescriptions = map[string]string{
	config.TileEnter:         "Start a tiling session on the focused window",
	config.FocusLeft:         "Focus the nearest window to the left",
	config.FocusDown:         "Focus the nearest window below",
	config.FocusUp:           "Focus the nearest window above",
	config.FocusRight:        "Focus the nearest window to the right",
	"tile-accept":            "Apply the previewed placement",
	"tile-reject":            "Leave the session without moving anything",
	"management-orientation": "Toggle the orientation of the focused fork",
}

func describeBinding(name string) string {
	if d, ok := keyDescriptions[name]; ok {
		return d
	}
	for _, prefix := range []string{"tile-move-", "tile-resize-", "tile-swap-"} {
		if dir, ok := strings.CutPrefix(name, prefix); ok {
			verb := strings.TrimSuffix(strings.TrimPrefix(prefix, "tile-"), "-")
			return "Session: " + verb + " the overlay " + dir
		}
	}
	return "binding"
}

// renderKeyDetail renders the right-side detail pane for the selected binding.
func renderKeyDetail(item keyItem, width, height int) string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	b.WriteString(titleStyle.Render(item.name))
	b.WriteString("\n\n")
	b.WriteString(describeBinding(item.name))
	b.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("248")).Width(12)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	b.WriteString(labelStyle.Render("sequence:"))
	b.WriteString(valueStyle.Render(item.sequence))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("default:"))
	b.WriteString(valueStyle.Render(config.DefaultKeys()[item.name]))
	b.WriteString("\n\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	b.WriteString(helpStyle.Render("e: edit  x: reset to default"))

	style := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 2).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(lipgloss.Color("236"))

	return style.Render(b.String())
}
