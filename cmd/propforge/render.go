package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/propforge/propforge/pkg/replay"
	"golang.org/x/term"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	idStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	seedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	labelStyle  = lipgloss.NewStyle().Bold(true)
)

// colorEnabled resolves the color setting against the terminal.
func colorEnabled(setting string) bool {
	switch setting {
	case "always":
		return true
	case "never":
		return false
	default:
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}

// renderRecordTable renders failure records as an aligned table.
func renderRecordTable(records []replay.Record, colorSetting string) string {
	color := colorEnabled(colorSetting)
	style := func(s lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return s.Render(text)
	}

	widths := []int{8, 30, 20, 19}
	header := []string{"ID", "PROPERTY", "SEED", "RECORDED"}

	// Pad before styling so ANSI escapes do not break the alignment.
	pad := func(text string, width int) string {
		if len(text) > width {
			return text[:width-3] + "..."
		}
		return text + strings.Repeat(" ", width-len(text))
	}

	var sb strings.Builder
	for i, h := range header {
		sb.WriteString(style(headerStyle, pad(h, widths[i])))
		sb.WriteString("  ")
	}
	sb.WriteString("\n")

	for _, rec := range records {
		id := rec.ID
		if len(id) > 8 {
			id = id[:8]
		}
		sb.WriteString(style(idStyle, pad(id, widths[0])))
		sb.WriteString("  ")
		sb.WriteString(pad(rec.Property, widths[1]))
		sb.WriteString("  ")
		sb.WriteString(style(seedStyle, pad(fmt.Sprintf("%d", rec.Seed), widths[2])))
		sb.WriteString("  ")
		sb.WriteString(rec.CreatedAt.Format("2006-01-02 15:04:05"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderRecordDetail renders one record in full.
func renderRecordDetail(rec replay.Record, colorSetting string) string {
	color := colorEnabled(colorSetting)
	label := func(text string) string {
		if !color {
			return text
		}
		return labelStyle.Render(text)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", label("ID:"), rec.ID)
	fmt.Fprintf(&sb, "%s %s\n", label("Property:"), rec.Property)
	fmt.Fprintf(&sb, "%s %d\n", label("Seed:"), rec.Seed)
	fmt.Fprintf(&sb, "%s %s\n", label("Recorded:"), rec.CreatedAt.Format("2006-01-02 15:04:05"))
	if len(rec.ShrinkPath) > 0 {
		path := make([]string, len(rec.ShrinkPath))
		for i, p := range rec.ShrinkPath {
			path[i] = fmt.Sprintf("%d", p)
		}
		fmt.Fprintf(&sb, "%s %s\n", label("Shrink path:"), strings.Join(path, " → "))
	}
	fmt.Fprintf(&sb, "%s\n%s\n", label("Counterexample:"), rec.Value)
	return sb.String()
}
