package main

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/joho/godotenv"
	"github.com/mattn/go-runewidth"
)

// mdRenderer renders markdown to terminal-formatted output.
var mdRenderer *glamour.TermRenderer

func initMarkdownRenderer(theme string, width int) {
	if width <= 0 {
		width = 60
	}
	if theme != "light" {
		theme = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return
	}
	mdRenderer = r
}

// renderMarkdown converts markdown text to terminal-formatted output.
func renderMarkdown(text string) string {
	if mdRenderer == nil {
		return text
	}
	out, err := mdRenderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// padLeft right-aligns s in a field of width terminal cells.
func padLeft(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}

// fitDisplay formats v for a display of width cells. Values too wide to
// fit are shown with a leading ellipsis so the least significant digits
// stay visible.
func fitDisplay(v int64, width int) string {
	s := strconv.FormatInt(v, 10)
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return padLeft(s, width)
	}
	return runewidth.TruncateLeft(s, runewidth.StringWidth(s)-width+1, "…")
}
