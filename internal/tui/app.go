package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/snaptile/internal/config"
	"github.com/1broseidon/snaptile/internal/ipc"
)

// daemonClient is the part of the IPC client the editor uses.
type daemonClient interface {
	GetStatus() (*ipc.StatusData, error)
	Reload() error
}

// model is the root bubbletea model for the TUI.
type model struct {
	configPath string
	result     *config.LoadResult
	client     daemonClient

	// Tab navigation
	activeTab Tab

	// Sub-models
	generalTab GeneralTab
	keysTab    KeysTab

	// Save overlay
	originalConfig *config.Config
	saveOverlay    SaveOverlay

	// Daemon state
	daemonConnected bool
	sessionActive   bool

	// Terminal dimensions
	width  int
	height int
}

func newModel(configPath string) (model, error) {
	if configPath == "" {
		path, err := config.DefaultConfigPath()
		if err != nil {
			return model{}, err
		}
		configPath = path
	}

	res, err := config.LoadFromPath(configPath)
	if err != nil {
		return model{}, err
	}
	return newModelFromResult(configPath, res, ipc.NewClient()), nil
}

func newModelFromResult(configPath string, res *config.LoadResult, client daemonClient) model {
	m := model{
		configPath:     configPath,
		result:         res,
		client:         client,
		activeTab:      TabGeneral,
		originalConfig: cloneConfig(res.Config),
	}
	m.refreshDaemonStatus()

	m.generalTab = NewGeneralTab(res.Config)
	m.keysTab = NewKeysTab(res.Config)
	return m
}

func (m *model) refreshDaemonStatus() {
	if m.client == nil {
		m.daemonConnected = false
		return
	}
	status, err := m.client.GetStatus()
	if err != nil {
		m.daemonConnected = false
		m.sessionActive = false
		return
	}
	m.daemonConnected = true
	m.sessionActive = status.SessionActive
}

func (m model) capturing() bool {
	return (m.activeTab == TabGeneral && m.generalTab.editing) ||
		(m.activeTab == TabKeys && m.keysTab.editing)
}

// resize forwards the content area size to every tab.
func (m model) resize() model {
	h := m.height - 4
	if h < 1 {
		h = 1
	}
	subMsg := tea.WindowSizeMsg{Width: m.width, Height: h}
	m.generalTab, _ = m.generalTab.Update(subMsg)
	m.keysTab, _ = m.keysTab.Update(subMsg)
	return m
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		return m.resize(), nil
	}

	// Save overlay captures all input when active
	if m.saveOverlay.Active() {
		if km, ok := msg.(tea.KeyMsg); ok {
			if km.String() == "ctrl+c" {
				return m, tea.Quit
			}
			prevPhase := m.saveOverlay.phase
			m.saveOverlay = m.saveOverlay.Update(km, m.result.Config, m.configPath, m.client, m.daemonConnected)
			if prevPhase == savePreview && m.saveOverlay.SaveSucceeded() {
				m.originalConfig = cloneConfig(m.result.Config)
			}
		}
		return m, nil
	}

	// ctrl+s triggers save overlay from any context (including form editing)
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+s" {
		m.saveOverlay.Show(m.originalConfig, m.result.Config)
		return m, nil
	}

	// When a sub-model captures input, delegate all messages to it
	if m.capturing() {
		if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+c" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		switch m.activeTab {
		case TabGeneral:
			m.generalTab, cmd = m.generalTab.Update(msg)
		case TabKeys:
			m.keysTab, cmd = m.keysTab.Update(msg)
		}
		return m, cmd
	}

	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
			return m, nil
		case "1":
			m.activeTab = TabGeneral
			return m, nil
		case "2":
			m.activeTab = TabKeys
			return m, nil
		case "r":
			m.refreshDaemonStatus()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.activeTab {
	case TabGeneral:
		m.generalTab, cmd = m.generalTab.Update(msg)
	case TabKeys:
		m.keysTab, cmd = m.keysTab.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	statusBar := renderStatusBar(m.daemonConnected, m.sessionActive, m.configPath, m.width)
	tabBar := renderTabBar(m.activeTab, m.width)
	helpBar := renderHelpBar(m.width)

	usedHeight := lipgloss.Height(statusBar) + lipgloss.Height(tabBar) + lipgloss.Height(helpBar)
	contentHeight := m.height - usedHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	var content string
	if m.saveOverlay.Active() {
		content = m.saveOverlay.View(m.width, contentHeight)
	} else {
		switch m.activeTab {
		case TabGeneral:
			content = m.generalTab.View()
		case TabKeys:
			content = m.keysTab.View()
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		tabBar,
		content,
		helpBar,
	)
}
