// Package report prints the launcher's human-readable status lines.
//
// Styling is decided per writer: terminals get colors, pipes and files get
// plain text.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Reporter writes status to stdout and problems to stderr.
type Reporter struct {
	stdout io.Writer
	stderr io.Writer

	info  lipgloss.Style
	hint  lipgloss.Style
	block lipgloss.Style
	warn  lipgloss.Style
	fail  lipgloss.Style
}

// New returns a Reporter writing to the given streams.
func New(stdout, stderr io.Writer) *Reporter {
	out := lipgloss.NewRenderer(stdout)
	errOut := lipgloss.NewRenderer(stderr)
	return &Reporter{
		stdout: stdout,
		stderr: stderr,
		info:   out.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		hint:   out.NewStyle().Foreground(lipgloss.Color("244")),
		block:  out.NewStyle().PaddingLeft(2),
		warn:   errOut.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		fail:   errOut.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
}

// Infof prints a status line to stdout.
func (r *Reporter) Infof(format string, args ...any) {
	fmt.Fprintln(r.stdout, r.info.Render(fmt.Sprintf(format, args...)))
}

// Warnf prints a warning to stderr.
func (r *Reporter) Warnf(format string, args ...any) {
	fmt.Fprintln(r.stderr, r.warn.Render("warning:"), fmt.Sprintf(format, args...))
}

// Errorf prints an error to stderr.
func (r *Reporter) Errorf(format string, args ...any) {
	fmt.Fprintln(r.stderr, r.fail.Render("error:"), fmt.Sprintf(format, args...))
}

// Hint prints a heading followed by indented suggestion lines.
func (r *Reporter) Hint(heading string, lines ...string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(r.stdout, heading)
	for _, l := range lines {
		fmt.Fprintln(r.stdout, r.hint.Render("  $ "+l))
	}
}

// Block prints captured command output indented under a title. Empty output
// prints nothing.
func (r *Reporter) Block(title, body string) {
	body = strings.TrimRight(body, "\n")
	if strings.TrimSpace(body) == "" {
		return
	}
	fmt.Fprintln(r.stdout, title)
	fmt.Fprintln(r.stdout, r.block.Render(body))
}
