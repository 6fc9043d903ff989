package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lakewatch/lakewatch/internal/cli/formatter"
)

// datasetChangedMsg is broadcast to every tab after a different upload
// is selected on the preview tab.
type datasetChangedMsg struct{}

// appModel is the root bubbletea Model for the dashboard. It manages
// the four tabs and routes input to the active one.
type appModel struct {
	state    *SharedState
	tabs     []View
	active   int
	quitting bool
}

func newAppModel(app *App) appModel {
	state := &SharedState{App: app}
	return appModel{
		state: state,
		tabs: []View{
			newPreviewView(state),
			newChatView(state),
			newChartsView(state),
			newCompareView(state),
		},
	}
}

func (m *appModel) activeView() View { return m.tabs[m.active] }

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	return m.activeView().Init()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		// Every tab needs the new size, not just the visible one.
		var cmds []tea.Cmd
		for i, v := range m.tabs {
			updated, cmd := v.Update(msg)
			m.tabs[i] = updated.(View)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case datasetChangedMsg:
		// Broadcast so chat history, charts and comparisons reset
		// against the new dataset.
		var cmds []tea.Cmd
		for i, v := range m.tabs {
			updated, cmd := v.Update(msg)
			m.tabs[i] = updated.(View)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			m.active = (m.active + 1) % len(m.tabs)
			return m, m.activeView().Init()
		case "shift+tab":
			m.active = (m.active - 1 + len(m.tabs)) % len(m.tabs)
			return m, m.activeView().Init()
		}
	}

	updated, cmd := m.activeView().Update(msg)
	m.tabs[m.active] = updated.(View)
	return m, cmd
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.tabBar())
	b.WriteString("\n\n")

	content := m.activeView().View()
	b.WriteString(content)

	// Pad so the help bar sits at the bottom.
	lines := strings.Count(content, "\n") + 1
	for i := lines; i < m.state.ContentHeight(); i++ {
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.helpBar())
	return b.String()
}

// ── chrome ───────────────────────────────────────────────────────────────────

var (
	styleTabActive   = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	styleTabInactive = lipgloss.NewStyle().Foreground(formatter.ColorDim)
)

func (m appModel) tabBar() string {
	labels := make([]string, len(m.tabs))
	for i, v := range m.tabs {
		label := v.Title()
		if i == m.active {
			labels[i] = styleTabActive.Render("[ " + label + " ]")
		} else {
			labels[i] = styleTabInactive.Render("  " + label + "  ")
		}
	}
	bar := strings.Join(labels, " ")
	if m.state.Filename != "" {
		bar += "  " + formatter.Dim(m.state.Filename)
	}
	return bar
}

func (m appModel) helpBar() string {
	hints := []string{"tab: switch", "ctrl+c: quit"}
	for _, b := range m.activeView().ShortHelp() {
		hints = append(hints, b.Help().Key+": "+b.Help().Desc)
	}
	return formatter.Dim(strings.Join(hints, " · "))
}
