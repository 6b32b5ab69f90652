package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/germanamz/abacus/pkg/calculator"
)

const (
	// displayWidth is the number of cells available to the display value.
	displayWidth = 22
	// tapeWidth is the inner width of the tape panel.
	tapeWidth = 28
)

// keypadRows is the key layout, operator column on the right.
var keypadRows = [][]string{
	{"7", "8", "9", "/"},
	{"4", "5", "6", "*"},
	{"1", "2", "3", "-"},
	{"0", "AC", "=", "+"},
}

// keyLabel returns the keypad label an action corresponds to.
func keyLabel(a calculator.Action) string {
	return a.String()
}

func isOperatorLabel(label string) bool {
	switch label {
	case "/", "*", "-", "+", "=":
		return true
	}
	return false
}

// renderDisplay draws the display panel: an indicator line with the focused
// operand and pending operator, then the right-aligned display value.
func renderDisplay(s calculator.Snapshot, width int) string {
	focus := "A"
	if s.Focus == calculator.Second {
		focus = "B"
	}

	left := indicatorStyle.Render(focus)
	right := indicatorStyle.Render(s.Operator.Symbol())
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	indicators := left + strings.Repeat(" ", gap) + right

	// The accumulator stays visible while B is being entered.
	acc := ""
	if s.Focus == calculator.Second {
		acc = fitDisplay(s.A, width)
	}

	return displayStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		indicators,
		dimStyle.Render(padLeft(acc, width)),
		displayValueStyle.Render(fitDisplay(s.Display, width)),
	))
}

// renderKeypad draws the key grid, highlighting pressed.
func renderKeypad(pressed string) string {
	rows := make([]string, len(keypadRows))
	for i, row := range keypadRows {
		keys := make([]string, len(row))
		for j, label := range row {
			style := keyStyle
			switch {
			case label == pressed:
				style = pressedKeyStyle
			case isOperatorLabel(label):
				style = operatorKeyStyle
			}
			keys[j] = style.Render(label)
		}
		rows[i] = lipgloss.JoinHorizontal(lipgloss.Top, keys...)
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderTape frames the tape viewport.
func renderTape(content string) string {
	return tapeStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		tapeTitleStyle.Render("tape"),
		content,
	))
}
