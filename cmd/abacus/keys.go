package main

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds the bindings that are not keypad input. Digits and operators
// are matched through calculator.ParseAction instead.
type keyMap struct {
	Digits    key.Binding
	Operators key.Binding
	Equals    key.Binding
	Clear     key.Binding
	Tape      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var _ help.KeyMap = keyMap{}

func newKeyMap() keyMap {
	return keyMap{
		Digits: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("0-9", "digit"),
		),
		Operators: key.NewBinding(
			key.WithKeys("+", "-", "*", "x", "/"),
			key.WithHelp("+-*/", "operator"),
		),
		Equals: key.NewBinding(
			key.WithKeys("=", "enter"),
			key.WithHelp("=/enter", "evaluate"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c", "esc"),
			key.WithHelp("c/esc", "clear"),
		),
		Tape: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tape"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Digits, k.Operators, k.Equals, k.Clear, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Digits, k.Operators, k.Equals, k.Clear},
		{k.Tape, k.Help, k.Quit},
	}
}

// helpMarkdown is rendered with glamour when the help panel is open.
const helpMarkdown = `# abacus

A two-operand integer calculator.

| Key | Action |
| --- | --- |
| ` + "`0`-`9`" + ` | append a digit to the operand with focus |
| ` + "`+ - * /`" + ` | select the operator, move focus to B |
| ` + "`=`, `enter`" + ` | evaluate A op B into A |
| ` + "`c`, `esc`" + ` | clear both operands |
| ` + "`t`" + ` | show or hide the tape |
| ` + "`?`" + ` | close this help |
| ` + "`q`, `ctrl+c`" + ` | quit |

Division truncates toward zero. Division by zero and results outside the
64-bit range are rejected and leave the calculator unchanged.
`
