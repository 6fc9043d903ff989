package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lakewatch/lakewatch/internal/chart"
	"github.com/lakewatch/lakewatch/internal/chat"
	"github.com/lakewatch/lakewatch/internal/cli/formatter"
)

// ── messages ─────────────────────────────────────────────────────────────────

// chatRepliedMsg carries the outcome of one conversation turn.
type chatRepliedMsg struct {
	outcome chat.Outcome
}

// ── view ─────────────────────────────────────────────────────────────────────

// chatEntry is one rendered element of the transcript: a user message,
// an assistant reply with an optional chart, or an error notice.
type chatEntry struct {
	fromUser bool
	text     string
	chart    string
	warning  string
	isError  bool
}

// chatView is the chat-with-your-data tab. Messages go through the
// orchestrator; replies arrive as prose, a rendered chart, or both.
type chatView struct {
	state *SharedState
	orch  *chat.Orchestrator

	input      textinput.Model
	transcript []chatEntry
	vp         viewport.Model
	waiting    bool
}

func newChatView(state *SharedState) *chatView {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "ask about the dataset, or request a chart"
	ti.CharLimit = 500
	ti.Focus()

	return &chatView{
		state: state,
		orch:  state.App.NewChat(),
		input: ti,
		vp:    viewport.New(0, 0),
	}
}

func (v *chatView) ID() ViewID    { return ViewChat }
func (v *chatView) Title() string { return "Chat" }

func (v *chatView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "retry")),
		key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
	}
}

func (v *chatView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *chatView) ask(message string) tea.Cmd {
	orch := v.orch
	table := v.state.Table
	return func() tea.Msg {
		return chatRepliedMsg{outcome: orch.Ask(context.Background(), table, message)}
	}
}

func (v *chatView) retry() tea.Cmd {
	orch := v.orch
	table := v.state.Table
	return func() tea.Msg {
		return chatRepliedMsg{outcome: orch.Retry(context.Background(), table)}
	}
}

func (v *chatView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		v.vp.Width = msg.Width
		v.vp.Height = v.state.ContentHeight() - 2
		v.input.Width = msg.Width - 4
		v.orch.SetRenderOptions(chartSize(msg.Width))
		v.refreshViewport()
		return v, nil

	case datasetChangedMsg:
		// A different dataset invalidates the running conversation.
		v.orch = v.state.App.NewChat()
		v.orch.SetRenderOptions(chartSize(v.state.Width))
		v.transcript = nil
		v.waiting = false
		v.refreshViewport()
		return v, nil

	case chatRepliedMsg:
		v.waiting = false
		o := msg.outcome
		if o.Failed {
			v.transcript = append(v.transcript, chatEntry{text: o.Warning, isError: true})
		} else {
			v.transcript = append(v.transcript, chatEntry{
				text:    o.Reply,
				chart:   o.Chart,
				warning: o.Warning,
			})
		}
		v.refreshViewport()
		v.vp.GotoBottom()
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			text := strings.TrimSpace(v.input.Value())
			if text == "" || v.waiting {
				return v, nil
			}
			if !v.state.HasDataset() {
				v.transcript = append(v.transcript, chatEntry{
					text: "no dataset selected; pick one on the Preview tab", isError: true,
				})
				v.refreshViewport()
				return v, nil
			}
			v.input.Reset()
			v.waiting = true
			v.transcript = append(v.transcript, chatEntry{fromUser: true, text: text})
			v.refreshViewport()
			v.vp.GotoBottom()
			return v, v.ask(text)
		case "ctrl+r":
			if !v.waiting && len(v.transcript) > 0 {
				v.waiting = true
				return v, v.retry()
			}
			return v, nil
		case "ctrl+l":
			v.orch.Conversation().Reset()
			v.transcript = nil
			v.refreshViewport()
			return v, nil
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			v.vp, cmd = v.vp.Update(msg)
			return v, cmd
		}

		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	return v, nil
}

func (v *chatView) refreshViewport() {
	v.vp.SetContent(v.renderTranscript())
}

func (v *chatView) renderTranscript() string {
	if len(v.transcript) == 0 {
		return formatter.Dim("ask a question, or try: plot ph over time")
	}

	width := v.vp.Width
	var b strings.Builder
	for _, e := range v.transcript {
		switch {
		case e.fromUser:
			b.WriteString(formatter.StyleBlue.Render("you") + " " + e.text + "\n")
		case e.isError:
			b.WriteString(formatter.StyleRed.Render("model error: "+e.text) + "\n")
		default:
			if e.chart != "" {
				b.WriteString(e.chart + "\n")
			} else {
				b.WriteString(renderMarkdown(e.text, width) + "\n")
			}
			if e.warning != "" {
				b.WriteString(formatter.StyleYellow.Render(e.warning) + "\n")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (v *chatView) View() string {
	var b strings.Builder
	b.WriteString(v.vp.View())
	b.WriteString("\n")
	if v.waiting {
		b.WriteString(formatter.Dim("thinking..."))
		b.WriteString("\n")
	}
	b.WriteString(v.input.View())
	return b.String()
}

// chartSize fits chart rendering to the terminal width.
func chartSize(width int) chart.Options {
	opts := chart.DefaultOptions
	if width > 20 {
		opts.Width = width - 14
	}
	if opts.Width > 90 {
		opts.Width = 90
	}
	return opts
}
