package main

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/germanamz/abacus/pkg/calculator"
	"github.com/germanamz/abacus/pkg/config"
	"github.com/germanamz/abacus/pkg/tape"
)

// pressDuration is how long a keypad key stays highlighted.
const pressDuration = 150 * time.Millisecond

// appModel is the root bubbletea model. It reads the engine only through
// snapshots and drives it only through the handler.
type appModel struct {
	ctx       context.Context
	engine    *calculator.Engine
	handler   calculator.Handler
	tape      *tape.Tape
	snapshot  calculator.Snapshot
	keys      keyMap
	help      help.Model
	tapeView  viewport.Model
	statusBar statusBarModel
	theme     string
	showTape  bool
	showHelp  bool
	pressed   string
	bridge    *bridge
	width     int
	height    int
}

func newAppModel(ctx context.Context, eng *calculator.Engine, h calculator.Handler, t *tape.Tape, ui config.UIConfig) appModel {
	snap := eng.Snapshot()

	return appModel{
		ctx:       ctx,
		engine:    eng,
		handler:   h,
		tape:      t,
		snapshot:  snap,
		keys:      newKeyMap(),
		help:      help.New(),
		tapeView:  viewport.New(tapeWidth, 8),
		statusBar: statusBarModel{snapshot: snap},
		theme:     ui.Theme,
		showTape:  ui.ShowTape && t != nil,
	}
}

func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		initMarkdownRenderer(m.theme, min(msg.Width-4, 80))
		m.recalcLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case programReadyMsg:
		m.bridge = startBridge(m.ctx, msg.program, m.engine.Events())
		return m, nil

	case engineEventMsg:
		m.handleEvent(msg.event)
		return m, nil

	case releaseKeyMsg:
		if m.pressed == msg.label {
			m.pressed = ""
		}
		return m, nil
	}

	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.bridge != nil {
			m.bridge.stop()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Tape):
		if m.tape != nil {
			m.showTape = !m.showTape
			m.recalcLayout()
		}
		return m, nil
	}

	if m.showHelp {
		// Keys do not reach the engine while help is open.
		if msg.Type == tea.KeyEsc {
			m.showHelp = false
		}
		return m, nil
	}

	a, err := calculator.ParseAction(msg.String())
	if err != nil {
		return m, nil
	}

	return m.dispatch(a)
}

// dispatch applies a to the engine synchronously; the engine never blocks.
// A rejected action leaves the engine unchanged and is reported on the error
// line until the next accepted action.
func (m appModel) dispatch(a calculator.Action) (tea.Model, tea.Cmd) {
	snap, err := m.handler.Handle(m.ctx, a)

	m.statusBar.lastErr = err
	m.snapshot = snap
	m.statusBar.snapshot = m.snapshot

	label := keyLabel(a)
	m.pressed = label

	return m, tea.Tick(pressDuration, func(time.Time) tea.Msg {
		return releaseKeyMsg{label: label}
	})
}

func (m *appModel) handleEvent(ev calculator.Event) {
	// Events can trail the synchronous dispatch, so redraw from the engine
	// rather than from the event's own snapshot.
	m.snapshot = m.engine.Snapshot()
	m.statusBar.snapshot = m.snapshot

	entry, ok := tape.FromEvent(ev)
	if !ok {
		return
	}

	m.statusBar.evaluations++

	if m.tape != nil {
		m.tape.Add(entry)
		m.refreshTape()
	}
}

func (m *appModel) refreshTape() {
	entries := m.tape.Entries()
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = padLeft(e.String(), m.tapeView.Width)
	}
	m.tapeView.SetContent(strings.Join(lines, "\n"))
	m.tapeView.GotoBottom()
}

func (m *appModel) recalcLayout() {
	if m.height == 0 {
		return
	}
	// Tape panel matches the calculator height: display(5) + keypad(4 rows of 3).
	m.tapeView.Height = max(min(m.height-4, 15), 1)
	if m.tape != nil {
		m.refreshTape()
	}
}

func (m appModel) View() string {
	if m.showHelp {
		return lipgloss.JoinVertical(lipgloss.Left,
			renderMarkdown(helpMarkdown),
			dimStyle.Render(" press ? or esc to close"),
		)
	}

	calc := lipgloss.JoinVertical(lipgloss.Left,
		renderDisplay(m.snapshot, displayWidth),
		renderKeypad(m.pressed),
	)

	body := calc
	if m.showTape {
		body = lipgloss.JoinHorizontal(lipgloss.Top, calc, " ", renderTape(m.tapeView.View()))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		body,
		m.statusBar.View(),
		m.help.View(m.keys),
	)
}
