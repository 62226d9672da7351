package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"zygr/frontend-go/pkg/diagnostics"
	"zygr/frontend-go/pkg/driver"
)

// renderer prints diagnostics as path:row:col lines. Styles degrade to plain
// text when w is not a terminal.
type renderer struct {
	w       io.Writer
	path    lipgloss.Style
	pos     lipgloss.Style
	kind    lipgloss.Style
	failure lipgloss.Style
	success lipgloss.Style
}

func newRenderer(w io.Writer) *renderer {
	r := lipgloss.NewRenderer(w)
	return &renderer{
		w:       w,
		path:    r.NewStyle().Bold(true),
		pos:     r.NewStyle().Faint(true),
		kind:    r.NewStyle().Foreground(lipgloss.Color("9")),
		failure: r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		success: r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
	}
}

func (r *renderer) diagnostics(path string, errs []diagnostics.CompilerError) {
	for _, err := range errs {
		fmt.Fprintf(r.w, "%s:%s: %s %s\n",
			r.path.Render(path),
			r.pos.Render(fmt.Sprintf("%d:%d", err.Row, err.Col)),
			err.Message,
			r.kind.Render("["+string(err.Kind)+"]"),
		)
	}
}

func (r *renderer) report(report *driver.Report) {
	for _, file := range report.Files {
		r.diagnostics(file.Path, file.Errors)
	}
	totals := report.Totals
	if totals.Errors == 0 {
		fmt.Fprintln(r.w, r.success.Render(fmt.Sprintf("no errors in %s", plural(totals.Files, "file"))))
		return
	}
	summary := fmt.Sprintf("%s in %s (%s checked)",
		plural(totals.Errors, "error"),
		plural(totals.FilesWithErrors, "file"),
		plural(totals.Files, "file"),
	)
	if report.Truncated {
		summary += ", output truncated"
	}
	fmt.Fprintln(r.w, r.failure.Render(summary))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
