package main

import (
	"fmt"
	"strings"

	"github.com/germanamz/abacus/pkg/calculator"
)

// statusBarModel shows the engine registers and how many evaluations ran.
type statusBarModel struct {
	snapshot    calculator.Snapshot
	evaluations int
	lastErr     error
}

func (m statusBarModel) View() string {
	parts := []string{
		fmt.Sprintf("A=%d", m.snapshot.A),
		fmt.Sprintf("B=%d", m.snapshot.B),
		"op " + m.snapshot.Operator.Symbol(),
		"focus " + m.snapshot.Focus.String(),
	}
	if m.evaluations > 0 {
		parts = append(parts, fmt.Sprintf("%d evaluated", m.evaluations))
	}

	line := " " + strings.Join(parts, " · ")
	if m.lastErr != nil {
		return statusStyle.Render(line) + "  " + errorStyle.Render(m.lastErr.Error())
	}

	return statusStyle.Render(line)
}
