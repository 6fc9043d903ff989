package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lakewatch/lakewatch/internal/cli/formatter"
	"github.com/lakewatch/lakewatch/internal/compare"
	"github.com/lakewatch/lakewatch/internal/dataset"
	"github.com/lakewatch/lakewatch/internal/store"
)

// ── messages ─────────────────────────────────────────────────────────────────

// stationsLoadedMsg signals that the station list has been loaded.
type stationsLoadedMsg struct {
	stations []*store.Station
	err      error
}

// comparisonLoadedMsg carries the alignment of the selected upload
// against a station's readings.
type comparisonLoadedMsg struct {
	station   *store.Station
	result    *compare.Result
	reference *dataset.Table
	err       error
}

// narrationLoadedMsg carries the model's comparison narrative.
type narrationLoadedMsg struct {
	text string
	err  error
}

// ── view ─────────────────────────────────────────────────────────────────────

// compareView aligns the selected upload against a station's sensor
// readings by shared timestamps and shows per-parameter averages and
// trends. "n" asks the model to narrate the comparison.
type compareView struct {
	state *SharedState

	stations []*store.Station
	loading  bool
	err      error
	cursor   int

	station   *store.Station
	result    *compare.Result
	refTable  *dataset.Table
	comparing bool

	narration        string
	narrationLoading bool
	narrationErr     error

	vp viewport.Model
}

func newCompareView(state *SharedState) *compareView {
	return &compareView{state: state, loading: true, vp: viewport.New(0, 0)}
}

func (v *compareView) ID() ViewID    { return ViewCompare }
func (v *compareView) Title() string { return "Compare" }

func (v *compareView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "compare")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "narrate")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *compareView) Init() tea.Cmd {
	if v.stations == nil {
		return v.loadStations()
	}
	return nil
}

func (v *compareView) loadStations() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		stations, err := app.Sensors.ListStations(context.Background())
		return stationsLoadedMsg{stations: stations, err: err}
	}
}

func (v *compareView) runComparison(st *store.Station) tea.Cmd {
	app := v.state.App
	manual := v.state.Table
	return func() tea.Msg {
		reference, err := app.Sensors.FindByStation(context.Background(), st.ID)
		if err != nil {
			return comparisonLoadedMsg{station: st, err: err}
		}
		result, err := compare.Align(manual, reference)
		return comparisonLoadedMsg{station: st, result: result, reference: reference, err: err}
	}
}

func (v *compareView) loadNarration() tea.Cmd {
	app := v.state.App
	manual := v.state.Table
	reference := v.refTable
	return func() tea.Msg {
		text, err := app.Narrator.Narrate(context.Background(), manual, reference)
		return narrationLoadedMsg{text: text, err: err}
	}
}

func (v *compareView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		v.vp.Width = msg.Width
		v.vp.Height = v.state.ContentHeight()
		v.refreshViewport()
		return v, nil

	case datasetChangedMsg:
		v.station = nil
		v.result = nil
		v.refTable = nil
		v.narration = ""
		v.narrationErr = nil
		v.refreshViewport()
		return v, nil

	case stationsLoadedMsg:
		v.loading = false
		v.err = msg.err
		v.stations = msg.stations
		if v.cursor >= len(v.stations) {
			v.cursor = 0
		}
		v.refreshViewport()
		return v, nil

	case comparisonLoadedMsg:
		v.comparing = false
		v.station = msg.station
		v.result = msg.result
		v.err = msg.err
		v.narration = ""
		v.narrationErr = nil
		// Keep the reference table so narration can reuse it.
		v.refTable = msg.reference
		v.refreshViewport()
		return v, nil

	case narrationLoadedMsg:
		v.narrationLoading = false
		v.narration = msg.text
		v.narrationErr = msg.err
		v.refreshViewport()
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
			v.refreshViewport()
		case "down", "j":
			if v.cursor < len(v.stations)-1 {
				v.cursor++
			}
			v.refreshViewport()
		case "enter":
			if len(v.stations) > 0 && v.state.HasDataset() && !v.comparing {
				v.comparing = true
				return v, v.runComparison(v.stations[v.cursor])
			}
		case "n":
			if v.result != nil && v.refTable != nil && !v.narrationLoading {
				v.narrationLoading = true
				return v, v.loadNarration()
			}
		case "r":
			v.loading = true
			return v, v.loadStations()
		case "pgup", "pgdown":
			var cmd tea.Cmd
			v.vp, cmd = v.vp.Update(msg)
			return v, cmd
		}
	}
	return v, nil
}

func (v *compareView) refreshViewport() {
	v.vp.SetContent(v.renderContent())
}

func (v *compareView) renderContent() string {
	if v.loading {
		return formatter.Dim("loading stations...")
	}
	if !v.state.HasDataset() {
		return formatter.Dim("select an upload on the Preview tab first")
	}

	var b strings.Builder
	b.WriteString(formatter.Header("Stations"))
	b.WriteString("\n")
	if len(v.stations) == 0 {
		b.WriteString(formatter.Dim("no stations; run lakewatch seed for demo data"))
		return b.String()
	}
	for i, st := range v.stations {
		marker := "  "
		line := st.Name
		if st.Lake != "" {
			line += " " + formatter.Dim("("+st.Lake+")")
		}
		if i == v.cursor {
			marker = formatter.StyleHeader.Render("> ")
		}
		b.WriteString(marker + line + "\n")
	}

	if v.comparing {
		b.WriteString("\n" + formatter.Dim("aligning series..."))
	}
	if v.err != nil {
		b.WriteString("\n" + formatter.StyleRed.Render("comparison failed: "+v.err.Error()))
	}

	if v.result != nil {
		b.WriteString("\n")
		b.WriteString(formatter.Header("Comparison vs " + v.station.Name))
		b.WriteString("\n")
		b.WriteString(formatter.Dim(fmt.Sprintf("joined on %q / %q",
			v.result.DateColumnManual, v.result.DateColumnReference)))
		b.WriteString("\n\n")

		rows := make([][]string, 0, len(v.result.Parameters))
		for _, p := range v.result.Parameters {
			rows = append(rows, []string{
				p.Parameter,
				trimStat(p.ManualAvg),
				trimStat(p.ReferenceAvg),
				trimStat(p.Difference),
				formatter.TrendIndicator(p.Trend),
				fmt.Sprintf("%d", len(p.Series)),
			})
		}
		b.WriteString(formatter.RenderTable(
			[]string{"Parameter", "Manual Avg", "Sensor Avg", "Diff", "Trend", "Shared"}, rows))
	}

	if v.narrationLoading {
		b.WriteString("\n" + formatter.Dim("asking the model to narrate..."))
	}
	if v.narrationErr != nil {
		b.WriteString("\n" + formatter.StyleRed.Render("narration unavailable: "+v.narrationErr.Error()))
	}
	if v.narration != "" {
		b.WriteString("\n")
		b.WriteString(formatter.Header("Narrative"))
		b.WriteString("\n")
		b.WriteString(renderMarkdown(v.narration, v.state.Width-4))
	}
	return b.String()
}

func (v *compareView) View() string {
	return v.vp.View()
}
