package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/lakewatch/lakewatch/internal/chart"
	"github.com/lakewatch/lakewatch/internal/cli/formatter"
	"github.com/lakewatch/lakewatch/internal/insight"
)

// ── messages ─────────────────────────────────────────────────────────────────

// suggestionsLoadedMsg carries model-proposed charts for the gallery.
type suggestionsLoadedMsg struct {
	suggestions []insight.Suggestion
	err         error
}

// ── view ─────────────────────────────────────────────────────────────────────

// galleryEntry is one chart in the gallery with its provenance label
// and, for suggested charts, the model's case for it.
type galleryEntry struct {
	label     string
	rationale string
	chart     string
	warning   string
}

// chartsView is the chart gallery tab: build charts by hand with a
// form, or ask the model for suggestions.
type chartsView struct {
	state *SharedState

	gallery []galleryEntry
	vp      viewport.Model

	// Manual chart builder form, active while building.
	form     *huh.Form
	building bool
	formKind string
	formX    string
	formY    string
	formT    string

	suggesting bool
	suggestErr error
}

func newChartsView(state *SharedState) *chartsView {
	return &chartsView{state: state, vp: viewport.New(0, 0)}
}

func (v *chartsView) ID() ViewID    { return ViewCharts }
func (v *chartsView) Title() string { return "Charts" }

func (v *chartsView) ShortHelp() []key.Binding {
	if v.building {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new chart")),
		key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "suggest")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear")),
	}
}

func (v *chartsView) Init() tea.Cmd {
	if v.building && v.form != nil {
		return v.form.Init()
	}
	return nil
}

func (v *chartsView) loadSuggestions() tea.Cmd {
	app := v.state.App
	table := v.state.Table
	width := v.state.Width
	return func() tea.Msg {
		app.Suggest.SetRenderOptions(chartSize(width))
		suggestions, err := app.Suggest.Suggest(context.Background(), table)
		return suggestionsLoadedMsg{suggestions: suggestions, err: err}
	}
}

// newBuilderForm builds the manual chart form from the current columns.
func (v *chartsView) newBuilderForm() *huh.Form {
	cols := v.state.Table.ColumnNames()
	numeric := v.state.Table.NumericColumns()

	kindOptions := make([]huh.Option[string], 0, len(chart.Kinds))
	for _, k := range chart.Kinds {
		kindOptions = append(kindOptions, huh.NewOption(string(k), string(k)))
	}
	xOptions := make([]huh.Option[string], 0, len(cols))
	for _, c := range cols {
		xOptions = append(xOptions, huh.NewOption(c, c))
	}
	yOptions := make([]huh.Option[string], 0, len(numeric)+1)
	yOptions = append(yOptions, huh.NewOption("(none)", ""))
	for _, c := range numeric {
		yOptions = append(yOptions, huh.NewOption(c, c))
	}

	v.formKind, v.formX, v.formY, v.formT = string(chart.KindScatter), "", "", ""

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Chart type").Options(kindOptions...).Value(&v.formKind),
			huh.NewSelect[string]().Title("X column").Options(xOptions...).Value(&v.formX),
			huh.NewSelect[string]().Title("Y column").Options(yOptions...).Value(&v.formY),
			huh.NewInput().Title("Title (optional)").Value(&v.formT),
		),
	).WithTheme(lakewatchHuhTheme()).WithShowHelp(false)
}

func (v *chartsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		v.vp.Width = msg.Width
		v.vp.Height = v.state.ContentHeight()
		v.refreshViewport()
		return v, nil

	case datasetChangedMsg:
		v.gallery = nil
		v.building = false
		v.form = nil
		v.suggestErr = nil
		v.refreshViewport()
		return v, nil

	case suggestionsLoadedMsg:
		v.suggesting = false
		v.suggestErr = msg.err
		for i, s := range msg.suggestions {
			label := "suggested"
			if len(msg.suggestions) > 1 {
				label = "suggested " + string(rune('1'+i))
			}
			v.gallery = append(v.gallery, galleryEntry{
				label:     label,
				rationale: s.Rationale,
				chart:     s.Chart,
				warning:   s.Warning,
			})
		}
		v.refreshViewport()
		v.vp.GotoBottom()
		return v, nil

	case tea.KeyMsg:
		if v.building {
			return v.updateForm(msg)
		}
		switch msg.String() {
		case "n":
			if v.state.HasDataset() {
				v.form = v.newBuilderForm()
				v.building = true
				return v, v.form.Init()
			}
		case "g":
			if v.state.HasDataset() && !v.suggesting {
				v.suggesting = true
				return v, v.loadSuggestions()
			}
		case "x":
			v.gallery = nil
			v.suggestErr = nil
			v.refreshViewport()
		case "up", "down", "pgup", "pgdown", "k", "j":
			var cmd tea.Cmd
			v.vp, cmd = v.vp.Update(msg)
			return v, cmd
		}
	}
	return v, nil
}

func (v *chartsView) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		v.building = false
		v.form = nil
		return v, nil
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		v.building = false
		v.form = nil
		spec := chart.Spec{
			Kind:  chart.Kind(v.formKind),
			X:     v.formX,
			Y:     v.formY,
			Title: v.formT,
		}
		res := chart.RenderSpec(spec, v.state.Table, chartSize(v.state.Width))
		v.gallery = append(v.gallery, galleryEntry{
			label: "manual", chart: res.Chart, warning: res.Warning,
		})
		v.refreshViewport()
		v.vp.GotoBottom()
		return v, nil
	}
	return v, cmd
}

func (v *chartsView) refreshViewport() {
	v.vp.SetContent(v.renderGallery())
}

func (v *chartsView) renderGallery() string {
	if !v.state.HasDataset() {
		return formatter.Dim("select an upload on the Preview tab first")
	}
	if len(v.gallery) == 0 && v.suggestErr == nil {
		return formatter.Dim("no charts yet; press n to build one or g for suggestions")
	}

	var b strings.Builder
	if v.suggestErr != nil {
		b.WriteString(formatter.StyleRed.Render("suggestions unavailable: "+v.suggestErr.Error()) + "\n\n")
	}
	for _, e := range v.gallery {
		b.WriteString(formatter.Header(e.label))
		b.WriteString("\n")
		if e.rationale != "" {
			b.WriteString(renderMarkdown(e.rationale, v.state.Width-4) + "\n")
		}
		if e.chart != "" {
			b.WriteString(e.chart + "\n")
		}
		if e.warning != "" {
			b.WriteString(formatter.StyleYellow.Render(e.warning) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (v *chartsView) View() string {
	if v.building && v.form != nil {
		return v.form.View()
	}
	var b strings.Builder
	b.WriteString(v.vp.View())
	if v.suggesting {
		b.WriteString("\n" + formatter.Dim("asking the model for chart ideas..."))
	}
	return b.String()
}
