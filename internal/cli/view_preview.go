package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lakewatch/lakewatch/internal/chart"
	"github.com/lakewatch/lakewatch/internal/cli/formatter"
	"github.com/lakewatch/lakewatch/internal/dataset"
	"github.com/lakewatch/lakewatch/internal/store"
)

// previewRows is how many sample rows the preview pane shows.
const previewRows = 8

// ── messages ─────────────────────────────────────────────────────────────────

// uploadsLoadedMsg signals that the upload list has been loaded.
type uploadsLoadedMsg struct {
	uploads []*store.Upload
	err     error
}

// uploadPickedMsg signals that an upload's payload has been loaded.
type uploadPickedMsg struct {
	upload *store.Upload
	err    error
}

// summaryLoadedMsg carries the model-written dataset summary.
type summaryLoadedMsg struct {
	text string
	err  error
}

// ── view ─────────────────────────────────────────────────────────────────────

// previewView is the home tab: pick an upload on the left, inspect its
// sample rows, completeness and statistics on the right. "s" asks the
// model for an expert summary.
type previewView struct {
	state   *SharedState
	uploads []*store.Upload
	loading bool
	err     error

	cursor int

	// outlierIdx indexes the numeric column whose outliers are
	// plotted; -1 hides the section.
	outlierIdx int

	summary        string
	summaryLoading bool
	summaryErr     error
}

func newPreviewView(state *SharedState) *previewView {
	return &previewView{state: state, loading: true, outlierIdx: -1}
}

func (v *previewView) ID() ViewID    { return ViewPreview }
func (v *previewView) Title() string { return "Preview" }

func (v *previewView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "summary")),
		key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "outliers")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *previewView) Init() tea.Cmd {
	cmds := []tea.Cmd{v.loadUploads()}
	// A file passed on the command line is opened right away.
	if name := v.state.App.StartFilename; name != "" && v.state.Filename == "" {
		cmds = append(cmds, v.pickUpload(name))
	}
	return tea.Batch(cmds...)
}

func (v *previewView) loadUploads() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		uploads, err := app.Uploads.List(context.Background())
		return uploadsLoadedMsg{uploads: uploads, err: err}
	}
}

func (v *previewView) pickUpload(filename string) tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		u, err := app.Uploads.FindByFilename(context.Background(), filename)
		return uploadPickedMsg{upload: u, err: err}
	}
}

func (v *previewView) loadSummary() tea.Cmd {
	app := v.state.App
	table := v.state.Table
	return func() tea.Msg {
		text, err := app.Summary.Summarize(context.Background(), table)
		return summaryLoadedMsg{text: text, err: err}
	}
}

func (v *previewView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case uploadsLoadedMsg:
		v.loading = false
		v.err = msg.err
		v.uploads = msg.uploads
		if v.cursor >= len(v.uploads) {
			v.cursor = 0
		}
		return v, nil

	case uploadPickedMsg:
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.state.Filename = msg.upload.Filename
		v.state.Table = msg.upload.Table
		v.summary = ""
		v.summaryErr = nil
		v.outlierIdx = -1
		return v, func() tea.Msg { return datasetChangedMsg{} }

	case summaryLoadedMsg:
		v.summaryLoading = false
		v.summary = msg.text
		v.summaryErr = msg.err
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.uploads)-1 {
				v.cursor++
			}
		case "enter":
			if len(v.uploads) > 0 {
				return v, v.pickUpload(v.uploads[v.cursor].Filename)
			}
		case "s":
			if v.state.HasDataset() && !v.summaryLoading {
				v.summaryLoading = true
				return v, v.loadSummary()
			}
		case "o":
			// Cycle through the numeric columns and back to off.
			if v.state.HasDataset() {
				if n := len(v.state.Table.NumericColumns()); n > 0 {
					v.outlierIdx++
					if v.outlierIdx >= n {
						v.outlierIdx = -1
					}
				}
			}
		case "r":
			v.loading = true
			return v, v.loadUploads()
		}
	}
	return v, nil
}

func (v *previewView) View() string {
	if v.loading {
		return formatter.Dim("loading uploads...")
	}
	if v.err != nil {
		return formatter.StyleRed.Render("error: " + v.err.Error())
	}

	left := v.renderUploadList()
	right := v.renderDetail()
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "   ", right)
}

func (v *previewView) renderUploadList() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Uploads"))
	b.WriteString("\n")
	if len(v.uploads) == 0 {
		b.WriteString(formatter.Dim("none yet; run lakewatch import"))
		return b.String()
	}
	for i, u := range v.uploads {
		marker := "  "
		line := fmt.Sprintf("%s (%d rows)", u.Filename, u.RowCount)
		if i == v.cursor {
			marker = formatter.StyleHeader.Render("> ")
			line = formatter.Bold(line)
		}
		if u.Filename == v.state.Filename {
			line += formatter.StyleGreen.Render(" ●")
		}
		b.WriteString(marker + line + "\n")
	}
	return b.String()
}

func (v *previewView) renderDetail() string {
	if !v.state.HasDataset() {
		return formatter.Dim("select an upload to preview it")
	}
	t := v.state.Table

	var b strings.Builder
	b.WriteString(formatter.Header(v.state.Filename))
	b.WriteString("\n")
	b.WriteString(formatter.Dim(t.Shape()))
	b.WriteString("\n\n")

	b.WriteString(renderSampleRows(t, previewRows))
	b.WriteString("\n")

	b.WriteString(formatter.Header("Completeness"))
	b.WriteString("\n")
	for _, m := range dataset.MissingSummary(t) {
		bar := formatter.RenderMissingBar(1-m.Pct/100, 12)
		b.WriteString(fmt.Sprintf("%-20s %s\n", m.Name, bar))
	}

	if stats := dataset.Describe(t); len(stats) > 0 {
		b.WriteString("\n")
		b.WriteString(formatter.Header("Statistics"))
		b.WriteString("\n")
		rows := make([][]string, 0, len(stats))
		for _, s := range stats {
			rows = append(rows, []string{
				s.Name,
				trimStat(s.Mean), trimStat(s.Std), trimStat(s.Min), trimStat(s.Max),
			})
		}
		b.WriteString(formatter.RenderTable(
			[]string{"Column", "Mean", "Std", "Min", "Max"}, rows))
	}

	if v.outlierIdx >= 0 {
		b.WriteString("\n")
		b.WriteString(v.renderOutliers())
	}

	if v.summaryLoading {
		b.WriteString("\n" + formatter.Dim("asking the model for a summary..."))
	}
	if v.summaryErr != nil {
		b.WriteString("\n" + formatter.StyleRed.Render("summary unavailable: "+v.summaryErr.Error()))
	}
	if v.summary != "" {
		b.WriteString("\n")
		b.WriteString(formatter.Header("Expert summary"))
		b.WriteString("\n")
		b.WriteString(renderMarkdown(v.summary, v.state.Width/2))
	}
	return b.String()
}

// renderOutliers plots the selected numeric column over the dataset's
// date column with IQR-flagged readings highlighted.
func (v *previewView) renderOutliers() string {
	t := v.state.Table
	numeric := t.NumericColumns()
	if v.outlierIdx >= len(numeric) {
		return ""
	}
	param := numeric[v.outlierIdx]

	var b strings.Builder
	b.WriteString(formatter.Header("Outliers"))
	b.WriteString("\n")

	dateCol, ok := dataset.InferDateColumn(t)
	if !ok {
		b.WriteString(formatter.Dim("no date or time column to plot against"))
		return b.String()
	}
	s, ok := dataset.DetectOutliers(t, param)
	if !ok {
		b.WriteString(formatter.Dim(fmt.Sprintf("not enough numeric values in %q", param)))
		return b.String()
	}

	opts := chartSize(v.state.Width / 2)
	res := chart.RenderOutlierSeries(t, dateCol, param, s.Flags, opts)
	if res.Warning != "" {
		b.WriteString(formatter.StyleYellow.Render(res.Warning))
		return b.String()
	}
	b.WriteString(res.Chart)
	b.WriteString("\n")
	b.WriteString(formatter.Dim(fmt.Sprintf("%d flagged outside [%s, %s]; o cycles columns",
		s.Count, trimStat(s.Lower), trimStat(s.Upper))))
	return b.String()
}

// renderSampleRows renders the first n rows as an aligned table.
func renderSampleRows(t *dataset.Table, n int) string {
	if n > t.NumRows() {
		n = t.NumRows()
	}
	cells := make([][]string, n)
	for r := 0; r < n; r++ {
		row := t.Row(r)
		cells[r] = make([]string, len(row))
		for c, val := range row {
			cells[r][c] = val.Text()
		}
	}
	return formatter.RenderDataTable(t.ColumnNames(), cells, n)
}

func trimStat(f float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", f), "0"), ".")
}
