package console

import (
	"os"

	"charm.land/lipgloss/v2"
)

// Enabled controls whether the style helpers emit color. It defaults to
// whether stdout is a terminal.
var Enabled = IsTerminal(os.Stdout)

var (
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	fileStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	commandStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

func render(style lipgloss.Style, s string) string {
	if !Enabled {
		return s
	}
	return style.Render(s)
}

// Name styles a variable name.
func Name(s string) string { return render(nameStyle, s) }

// Value styles a variable value.
func Value(s string) string { return render(valueStyle, s) }

// File styles a file path.
func File(s string) string { return render(fileStyle, s) }

// Command styles a command line or option.
func Command(s string) string { return render(commandStyle, s) }

// Error styles an error marker or offending snippet.
func Error(s string) string { return render(errorStyle, s) }
