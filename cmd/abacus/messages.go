package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/germanamz/abacus/pkg/calculator"
)

// engineEventMsg delivers one engine transition from the bridge goroutine.
type engineEventMsg struct {
	event calculator.Event
}

// programReadyMsg passes the *tea.Program to the model so it can start the bridge.
type programReadyMsg struct {
	program *tea.Program
}

// releaseKeyMsg ends the pressed highlight of a keypad key.
type releaseKeyMsg struct {
	label string
}
