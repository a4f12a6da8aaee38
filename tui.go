package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"voxkey/appctx"
	"voxkey/control"
)

// TUI message types
type voiceMsg control.VoiceState
type panelMsg control.PanelState
type grammarMsg bool
type contextMsg appctx.Context
type routedMsg struct {
	Text    string
	Outcome Outcome
	Command string
}

type tuiModel struct {
	app           *App
	voice         control.VoiceState
	panel         control.PanelState
	grammar       bool
	context       appctx.Context
	lastText      string
	lastOutcome   Outcome
	lastCommand   string
	msgCount      int
	width, height int
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	idleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	groupStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	sayStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	doesStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	arrowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
	boldHelp    = lipgloss.NewStyle().Foreground(lipgloss.Color("239")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	panelBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
)

func newTUIModel(app *App) tuiModel {
	v, p := app.ctl.States()
	return tuiModel{
		app:     app,
		voice:   v,
		panel:   p,
		grammar: app.router.Grammar(),
		context: app.monitor.Context(),
	}
}

func NewTUIProgram(app *App, opts ...tea.ProgramOption) *tea.Program {
	return tea.NewProgram(newTUIModel(app), append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
}

// tuiObservers forwards every channel of app to send.
type tuiObservers struct {
	voice   *control.Observer[control.VoiceState]
	panel   *control.Observer[control.PanelState]
	grammar *control.Observer[bool]
	context *control.Observer[appctx.Context]
}

func attachTUI(app *App, send func(tea.Msg)) *tuiObservers {
	o := &tuiObservers{
		voice:   control.NewObserver("tui", func(v control.VoiceState) { send(voiceMsg(v)) }),
		panel:   control.NewObserver("tui", func(p control.PanelState) { send(panelMsg(p)) }),
		grammar: control.NewObserver("tui", func(on bool) { send(grammarMsg(on)) }),
		context: control.NewObserver("tui", func(c appctx.Context) { send(contextMsg(c)) }),
	}
	app.ctl.RegisterVoice(o.voice)
	app.ctl.RegisterShortcuts(o.panel)
	app.router.RegisterGrammar(o.grammar)
	app.monitor.Register(o.context)
	app.router.OnRoute(func(text string, out Outcome) {
		cmd, _ := app.engine.LastCommand()
		send(routedMsg{Text: text, Outcome: out, Command: cmd})
	})
	return o
}

func (o *tuiObservers) detach(app *App) {
	app.ctl.UnregisterVoice(o.voice)
	app.ctl.UnregisterShortcuts(o.panel)
	app.router.UnregisterGrammar(o.grammar)
	app.monitor.Unregister(o.context)
	app.router.OnRoute(nil)
}

func (m tuiModel) Init() tea.Cmd {
	return nil
}

// do runs fn outside the event loop; observers it triggers send messages
// back into the loop, which would block if called from Update.
func do(fn func()) tea.Cmd {
	return func() tea.Msg {
		fn()
		return nil
	}
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "v":
			return m, do(func() { m.app.ctl.ToggleVoice() })
		case "s":
			return m, do(func() { m.app.ctl.ToggleShortcuts() })
		case "g":
			return m, do(func() { m.app.router.ToggleGrammar() })
		case "1", "2", "3", "4":
			mode := control.Mode(msg.String()[0] - '1')
			return m, do(func() { m.app.ctl.SetMode(mode) })
		}

	case voiceMsg:
		m.voice = control.VoiceState(msg)

	case panelMsg:
		m.panel = control.PanelState(msg)

	case grammarMsg:
		m.grammar = bool(msg)

	case contextMsg:
		m.context = appctx.Context(msg)

	case routedMsg:
		if msg.Outcome == Dropped {
			break
		}
		m.msgCount++
		m.lastText = msg.Text
		m.lastOutcome = msg.Outcome
		if msg.Outcome == Executed {
			m.lastCommand = msg.Command
		}
	}
	return m, nil
}

func (m tuiModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("voxkey") + " " + idleStyle.Render(version) + "\n\n")

	if m.voice == control.Active {
		b.WriteString(activeStyle.Render("● LISTENING"))
	} else {
		b.WriteString(idleStyle.Render("○ PAUSED"))
	}
	if m.grammar {
		b.WriteString("  " + warnStyle.Render("[grammar]"))
	}
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("mode: %s   app: %s", control.DeriveMode(m.voice, m.panel), m.context)) + "\n")

	if m.lastText != "" {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("#%d %s", m.msgCount, m.lastOutcome)) + "\n")
		for _, line := range wrapText(m.lastText, m.wrapWidth()) {
			b.WriteString(doesStyle.Render(line) + "\n")
		}
		if m.lastCommand != "" {
			b.WriteString(labelStyle.Render("last command: ") + sayStyle.Render(m.lastCommand) + "\n")
		}
	}

	if m.panel == control.Visible {
		b.WriteString("\n" + panelBorder.Render(renderShortcuts(m.context)) + "\n")
	}

	b.WriteString("\n")
	hk := m.app.keys
	b.WriteString(boldHelp.Render(hk.Voice.String()) + helpStyle.Render(" voice  ") +
		boldHelp.Render(hk.Shortcuts.String()) + helpStyle.Render(" shortcuts  ") +
		boldHelp.Render(hk.Grammar.String()) + helpStyle.Render(" grammar") + "\n")
	b.WriteString(helpStyle.Render("v/s/g toggle · 1 both · 2 voice · 3 shortcuts · 4 none · q quit"))
	return b.String()
}

func (m tuiModel) wrapWidth() int {
	if m.width <= 4 {
		return 60
	}
	return m.width - 2
}

func renderShortcuts(c appctx.Context) string {
	var b strings.Builder
	b.WriteString(groupStyle.Render(strings.ToUpper(c.String()+" shortcuts")))
	for _, g := range shortcutsFor(c) {
		b.WriteString("\n\n" + groupStyle.Render(g.Title))
		for _, s := range g.Entries {
			b.WriteString("\n  " + sayStyle.Render(fmt.Sprintf("%q", s.Say)) + arrowStyle.Render(" → ") + doesStyle.Render(s.Does))
		}
	}
	return b.String()
}

func wrapText(text string, width int) []string {
	if len(text) == 0 {
		return []string{""}
	}
	if width <= 0 {
		width = 1
	}

	var lines []string
	for len(text) > width {
		// Find last space within width
		splitAt := width
		for i := width; i > 0; i-- {
			if text[i] == ' ' {
				splitAt = i
				break
			}
		}
		lines = append(lines, text[:splitAt])
		text = strings.TrimLeft(text[splitAt:], " ")
	}
	if len(text) > 0 {
		lines = append(lines, text)
	}
	return lines
}
