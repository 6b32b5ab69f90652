package main

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/germanamz/abacus/pkg/calculator"
	"github.com/germanamz/abacus/pkg/config"
	"github.com/germanamz/abacus/pkg/tape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, opts ...calculator.Option) appModel {
	t.Helper()

	eng := calculator.New(opts...)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ui := config.Default().UI

	m := newAppModel(context.Background(), eng, newHandler(eng, log), tape.New(10), ui)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	return updated.(appModel)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m appModel, keys ...string) appModel {
	for _, k := range keys {
		updated, _ := m.Update(keyMsg(k))
		m = updated.(appModel)
	}
	return m
}

func TestModelDigitsAndEvaluate(t *testing.T) {
	m := newTestModel(t)

	m = press(m, "7", "8", "9", "+", "4", "5", "6")
	assert.Equal(t, int64(456), m.snapshot.Display)
	assert.Equal(t, calculator.Second, m.snapshot.Focus)
	assert.Contains(t, m.View(), "456")

	m = press(m, "enter")
	assert.Equal(t, int64(1245), m.snapshot.Display)
	assert.Equal(t, calculator.First, m.snapshot.Focus)
	assert.Contains(t, m.View(), "1245")
}

func TestModelRejectionShowsErrorAndRecovers(t *testing.T) {
	m := newTestModel(t)

	m = press(m, "8", "/", "=")
	require.ErrorIs(t, m.statusBar.lastErr, calculator.ErrDivisionByZero)
	assert.Contains(t, m.View(), "division by zero")
	assert.Equal(t, int64(8), m.snapshot.A)

	m = press(m, "2", "=")
	assert.NoError(t, m.statusBar.lastErr)
	assert.Equal(t, int64(4), m.snapshot.Display)
	assert.NotContains(t, m.View(), "division by zero")
}

func TestModelClear(t *testing.T) {
	m := newTestModel(t)

	m = press(m, "5", "x", "3", "esc")
	assert.Equal(t, int64(0), m.snapshot.A)
	assert.Equal(t, int64(0), m.snapshot.B)
	assert.Equal(t, calculator.Multiply, m.snapshot.Operator)

	m = newTestModel(t, calculator.WithClearResetsOperator(true))
	m = press(m, "5", "x", "c")
	assert.Equal(t, calculator.Add, m.snapshot.Operator)
}

func TestModelIgnoresUnknownKeys(t *testing.T) {
	m := newTestModel(t)

	m = press(m, "4", "z", "%")
	assert.Equal(t, int64(4), m.snapshot.Display)
	assert.NoError(t, m.statusBar.lastErr)
}

func TestModelPressedHighlight(t *testing.T) {
	m := newTestModel(t)

	updated, cmd := m.Update(keyMsg("7"))
	m = updated.(appModel)
	assert.Equal(t, "7", m.pressed)
	require.NotNil(t, cmd)

	updated, _ = m.Update(releaseKeyMsg{label: "8"})
	m = updated.(appModel)
	assert.Equal(t, "7", m.pressed, "stale release must not clear a newer press")

	updated, _ = m.Update(releaseKeyMsg{label: "7"})
	m = updated.(appModel)
	assert.Empty(t, m.pressed)
}

func TestModelHelpToggle(t *testing.T) {
	m := newTestModel(t)

	m = press(m, "?")
	assert.True(t, m.showHelp)

	m = press(m, "9")
	assert.Equal(t, int64(0), m.snapshot.Display, "keys do not reach the engine while help is open")

	m = press(m, "esc")
	assert.False(t, m.showHelp)

	m = press(m, "?", "?")
	assert.False(t, m.showHelp)
}

func TestModelTapeToggle(t *testing.T) {
	m := newTestModel(t)
	require.True(t, m.showTape)
	assert.Contains(t, m.View(), "tape")

	m = press(m, "t")
	assert.False(t, m.showTape)
	assert.NotContains(t, m.View(), "tape")
}

func TestModelNoTapeWhenDisabled(t *testing.T) {
	eng := calculator.New()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := newAppModel(context.Background(), eng, newHandler(eng, log), nil, config.Default().UI)

	assert.False(t, m.showTape)
	m = press(m, "t")
	assert.False(t, m.showTape)
}

func TestModelQuit(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			m := newTestModel(t)
			_, cmd := m.Update(keyMsg(k))
			require.NotNil(t, cmd)
			_, ok := cmd().(tea.QuitMsg)
			assert.True(t, ok)
		})
	}
}

// recordingSender collects the messages the bridge sends.
type recordingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recordingSender) Send(msg tea.Msg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recordingSender) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.msgs)
}

func (r *recordingSender) take() []tea.Msg {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.msgs
	r.msgs = nil
	return out
}

func TestBridgeFeedsTape(t *testing.T) {
	m := newTestModel(t)
	rec := &recordingSender{}

	b := startBridge(context.Background(), rec, m.engine.Events())

	m = press(m, "6", "*", "7", "=")

	require.Eventually(t, func() bool { return rec.len() == 4 }, time.Second, 5*time.Millisecond)
	b.stop()
	b.wait()

	for _, msg := range rec.take() {
		updated, _ := m.Update(msg)
		m = updated.(appModel)
	}

	require.Equal(t, 1, m.tape.Len())
	assert.Equal(t, "6 * 7 = 42", m.tape.Entries()[0].String())
	assert.Equal(t, 1, m.statusBar.evaluations)
	assert.Contains(t, m.View(), "6 * 7 = 42")
}

func TestBridgeStopsOnCancel(t *testing.T) {
	eng := calculator.New()
	rec := &recordingSender{}

	b := startBridge(context.Background(), rec, eng.Events())
	b.stop()
	b.wait()

	require.NoError(t, eng.PressDigit(1))
	assert.Equal(t, 0, rec.len())
}

// busySender blocks in Send like a tea.Program whose event loop is inside
// Update. Closing exited releases it the way program shutdown does.
type busySender struct {
	entered chan struct{}
	exited  chan struct{}
	unread  chan tea.Msg
	once    sync.Once
}

func newBusySender() *busySender {
	return &busySender{
		entered: make(chan struct{}),
		exited:  make(chan struct{}),
		unread:  make(chan tea.Msg),
	}
}

func (s *busySender) Send(msg tea.Msg) {
	s.once.Do(func() { close(s.entered) })
	select {
	case s.unread <- msg:
	case <-s.exited:
	}
}

func TestQuitDoesNotWaitOnBlockedBridge(t *testing.T) {
	m := newTestModel(t)
	busy := newBusySender()

	m.bridge = startBridge(context.Background(), busy, m.engine.Events())

	m = press(m, "7")

	select {
	case <-busy.entered:
	case <-time.After(time.Second):
		t.Fatal("bridge never forwarded the event")
	}

	done := make(chan tea.Cmd, 1)
	go func() {
		_, cmd := m.Update(keyMsg("q"))
		done <- cmd
	}()

	select {
	case cmd := <-done:
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	case <-time.After(2 * time.Second):
		t.Fatal("quit blocked on the bridge")
	}

	close(busy.exited)

	waited := make(chan struct{})
	go func() {
		m.bridge.wait()
		close(waited)
	}()

	select {
	case <-waited:
	case <-time.After(2 * time.Second):
		t.Fatal("bridge did not exit after the program stopped")
	}

	// The watcher unsubscribed on exit.
	require.NoError(t, m.engine.PressDigit(8))
	assert.Equal(t, 0, m.engine.Events().Subscribers())
}
