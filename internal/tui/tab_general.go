package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/snaptile/internal/config"
)

// GeneralTab is the sub-model for the grid settings tab.
type GeneralTab struct {
	cfg *config.Config

	// Display dimensions
	width  int
	height int

	// Edit mode
	editing bool
	form    *huh.Form
	err     error

	// Form-bound values (strings for huh, converted on submit)
	fColumnSize   string
	fRowSize      string
	fGapInner     string
	fGapOuter     string
	fScale        string
	fHintColor    string
	fOverlayColor string
	fLogLevel     string
	fActiveHint   bool
	fAutoTile     bool
}

// NewGeneralTab creates a GeneralTab from the loaded config.
func NewGeneralTab(cfg *config.Config) GeneralTab {
	return GeneralTab{cfg: cfg}
}

// Init implements tea.Model.
func (g GeneralTab) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (g GeneralTab) Update(msg tea.Msg) (GeneralTab, tea.Cmd) {
	if g.editing {
		return g.updateEditing(msg)
	}
	return g.updateDisplay(msg)
}

func (g GeneralTab) updateDisplay(msg tea.Msg) (GeneralTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "e" {
			g.startEditing()
			return g, g.form.Init()
		}
	case tea.WindowSizeMsg:
		g.width = msg.Width
		g.height = msg.Height
	}
	return g, nil
}

func (g GeneralTab) updateEditing(msg tea.Msg) (GeneralTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" {
			g.editing = false
			g.form = nil
			return g, nil
		}
	case tea.WindowSizeMsg:
		g.width = msg.Width
		g.height = msg.Height
	}

	form, cmd := g.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		g.form = f
	}

	if g.form.State == huh.StateCompleted {
		g.err = g.applyForm()
		g.editing = false
		g.form = nil
		return g, nil
	}

	return g, cmd
}

func (g *GeneralTab) loadFields() {
	cfg := g.cfg
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	g.fColumnSize = strconv.Itoa(cfg.ColumnSize)
	g.fRowSize = strconv.Itoa(cfg.RowSize)
	g.fGapInner = strconv.Itoa(cfg.GapInner)
	g.fGapOuter = strconv.Itoa(cfg.GapOuter)
	g.fScale = strconv.FormatFloat(cfg.Scale, 'f', -1, 64)
	g.fHintColor = cfg.HintColor
	g.fOverlayColor = cfg.OverlayColor
	g.fLogLevel = cfg.LogLevel
	g.fActiveHint = cfg.ActiveHint
	g.fAutoTile = cfg.AutoTile
}

func (g *GeneralTab) startEditing() {
	g.loadFields()
	g.err = nil

	levelOpts := []huh.Option[string]{
		huh.NewOption("debug", "debug"),
		huh.NewOption("info", "info"),
		huh.NewOption("warn", "warn"),
		huh.NewOption("error", "error"),
	}

	w := g.width - 4
	if w < 40 {
		w = 40
	}

	g.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("column_size").
				Title("Column Size").
				Description("Nominal grid column width in pixels").
				Validate(validatePositive).
				Value(&g.fColumnSize),

			huh.NewInput().
				Key("row_size").
				Title("Row Size").
				Description("Nominal grid row height in pixels").
				Validate(validatePositive).
				Value(&g.fRowSize),

			huh.NewInput().
				Key("gap_inner").
				Title("Inner Gap").
				Description("Pixels between neighboring tiles").
				Validate(validateNonNegative).
				Value(&g.fGapInner),

			huh.NewInput().
				Key("gap_outer").
				Title("Outer Gap").
				Description("Pixels between tiles and the monitor edge").
				Validate(validateNonNegative).
				Value(&g.fGapOuter),

			huh.NewInput().
				Key("scale").
				Title("Scale").
				Description("Display density applied to sizes and gaps").
				Validate(validateScale).
				Value(&g.fScale),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Key("active_hint").
				Title("Active Hint").
				Description("Draw a border around the focused window").
				Value(&g.fActiveHint),

			huh.NewInput().
				Key("hint_color").
				Title("Hint Color").
				Validate(validateColor).
				Value(&g.fHintColor),

			huh.NewInput().
				Key("overlay_color").
				Title("Overlay Color").
				Validate(validateColor).
				Value(&g.fOverlayColor),

			huh.NewConfirm().
				Key("auto_tile").
				Title("Auto Tile").
				Description("No effect yet: no auto-tiler ships with the daemon, it stays in manual mode").
				Value(&g.fAutoTile),

			huh.NewSelect[string]().
				Key("log_level").
				Title("Log Level").
				Options(levelOpts...).
				Value(&g.fLogLevel),
		),
	).WithWidth(w).WithShowHelp(true).WithShowErrors(true)

	g.editing = true
}

// applyForm writes the form values into the config if the result validates.
func (g *GeneralTab) applyForm() error {
	if g.cfg == nil {
		return nil
	}

	next := *g.cfg
	var err error
	if next.ColumnSize, err = strconv.Atoi(strings.TrimSpace(g.fColumnSize)); err != nil {
		return fmt.Errorf("column_size: %w", err)
	}
	if next.RowSize, err = strconv.Atoi(strings.TrimSpace(g.fRowSize)); err != nil {
		return fmt.Errorf("row_size: %w", err)
	}
	if next.GapInner, err = strconv.Atoi(strings.TrimSpace(g.fGapInner)); err != nil {
		return fmt.Errorf("gap_inner: %w", err)
	}
	if next.GapOuter, err = strconv.Atoi(strings.TrimSpace(g.fGapOuter)); err != nil {
		return fmt.Errorf("gap_outer: %w", err)
	}
	if next.Scale, err = strconv.ParseFloat(strings.TrimSpace(g.fScale), 64); err != nil {
		return fmt.Errorf("scale: %w", err)
	}
	next.GapInnerHalf = 0
	next.HintColor = strings.TrimSpace(g.fHintColor)
	next.OverlayColor = strings.TrimSpace(g.fOverlayColor)
	next.LogLevel = g.fLogLevel
	next.ActiveHint = g.fActiveHint
	next.AutoTile = g.fAutoTile

	if err := next.Validate(); err != nil {
		return err
	}
	*g.cfg = next
	return nil
}

func validatePositive(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive integer")
	}
	return nil
}

func validateNonNegative(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return fmt.Errorf("must be zero or more")
	}
	return nil
}

func validateScale(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

func validateColor(s string) error {
	_, err := config.ParseColor(strings.TrimSpace(s))
	return err
}

// View implements tea.Model.
func (g GeneralTab) View() string {
	if g.editing && g.form != nil {
		return g.viewEditing()
	}
	return g.viewDisplay()
}

func (g GeneralTab) viewDisplay() string {
	cfg := g.cfg
	if cfg == nil {
		style := lipgloss.NewStyle().
			Width(g.width).
			Height(g.height).
			Foreground(lipgloss.Color("241")).
			Align(lipgloss.Center, lipgloss.Center)
		return style.Render("No config loaded")
	}

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")).
		Width(16).
		Align(lipgloss.Right).
		PaddingRight(2)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Bold(true)

	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}
	swatch := func(color string) string {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("■ ") + valueStyle.Render(color)
	}

	lines := []string{
		row("Grid", fmt.Sprintf("%d×%d px", cfg.ColumnSize, cfg.RowSize)),
		row("Gaps", fmt.Sprintf("inner:%d outer:%d", cfg.GapInner, cfg.GapOuter)),
		row("Scale", strconv.FormatFloat(cfg.Scale, 'f', -1, 64)),
		"",
		row("Active Hint", strconv.FormatBool(cfg.ActiveHint)),
		labelStyle.Render("Hint Color") + swatch(cfg.HintColor),
		labelStyle.Render("Overlay Color") + swatch(cfg.OverlayColor),
		row("Auto Tile", strconv.FormatBool(cfg.AutoTile)),
		row("Log Level", cfg.LogLevel),
		"",
		dimStyle.Render("  Press 'e' to edit settings"),
	}
	if g.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
		lines = append(lines, "", errStyle.Render("  "+g.err.Error()))
	}

	leftWidth := g.width / 2
	if leftWidth < 40 {
		leftWidth = 40
	}
	left := lipgloss.NewStyle().
		Width(leftWidth).
		Height(g.height).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))

	previewWidth := g.width - leftWidth - 4
	previewHeight := g.height - 4
	preview := renderGridPreview(cfg, previewWidth, previewHeight)
	right := lipgloss.NewStyle().
		Padding(1, 1).
		Render(summarizeGrid(cfg) + "\n" + strings.Join(preview, "\n"))

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (g GeneralTab) viewEditing() string {
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("62")).
		Bold(true).
		Render("Editing Grid Settings") +
		lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Render("  (esc to cancel)")

	content := header + "\n\n" + g.form.View()

	style := lipgloss.NewStyle().
		Width(g.width).
		Height(g.height).
		Padding(1, 2)

	return style.Render(content)
}
