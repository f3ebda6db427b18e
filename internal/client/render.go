package client

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Faint(true)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// printer renders command output.
type printer struct {
	out io.Writer
}

func (p printer) title(s string) {
	fmt.Fprintln(p.out, titleStyle.Render(s))
}

func (p printer) field(label string, value any) {
	fmt.Fprintf(p.out, "%s %v\n", labelStyle.Render(label+":"), value)
}

func (p printer) line(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p printer) list(items []string) {
	for _, item := range items {
		fmt.Fprintln(p.out, "  • "+item)
	}
}

func (p printer) box(lines ...string) {
	fmt.Fprintln(p.out, boxStyle.Render(strings.Join(lines, "\n")))
}

func (p printer) failure(err error) {
	fmt.Fprintln(p.out, errorStyle.Render("error: ")+err.Error())
}
