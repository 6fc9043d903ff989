package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID identifies each tab of the dashboard.
type ViewID int

const (
	ViewPreview ViewID = iota
	ViewChat
	ViewCharts
	ViewCompare
)

// View is the interface that all dashboard tabs must implement.
// It extends tea.Model with navigation and help metadata.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding // key hints shown in the bottom bar
	Title() string            // tab label
}
