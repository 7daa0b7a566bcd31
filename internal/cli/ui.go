package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorWhite = lipgloss.Color("255")
	colorDim   = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleLabel   = lipgloss.NewStyle().Foreground(colorDim).Width(16)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
)

func printTitle(w io.Writer, s string) {
	fmt.Fprintln(w, styleTitle.Render(s))
}

func printField(w io.Writer, label string, value any) {
	var v string
	switch value.(type) {
	case int, int64, uint64, float64:
		v = styleNumber.Render(fmt.Sprint(value))
	default:
		v = styleValue.Render(fmt.Sprint(value))
	}
	fmt.Fprintln(w, styleLabel.Render(label)+" "+v)
}

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleSuccess.Render("✓ ")+fmt.Sprintf(format, args...))
}
