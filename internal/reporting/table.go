package reporting

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/athena-sanity/athena/internal/status"
)

// ANSI foreground sequences per status name, used only on terminals.
var statusColors = map[string]string{
	status.Success.Name():   "\x1b[32m",
	status.Warning.Name():   "\x1b[33m",
	status.Error.Name():     "\x1b[31m",
	status.Exception.Name(): "\x1b[35m",
	status.Skipped.Name():   "\x1b[90m",
	status.Aborted.Name():   "\x1b[90m",
}

const colorReset = "\x1b[0m"

// WriteTable renders the report as an aligned text table. Color is applied
// only when w is os.Stdout or os.Stderr attached to a terminal.
func WriteTable(w io.Writer, report *Report) {
	colorize := isTerminal(w)

	nameWidth := runewidth.StringWidth("PROCESSOR")
	statusWidth := runewidth.StringWidth("STATUS")
	for _, pr := range report.Processors {
		if wd := runewidth.StringWidth(pr.Name); wd > nameWidth {
			nameWidth = wd
		}
		if wd := runewidth.StringWidth(pr.Status); wd > statusWidth {
			statusWidth = wd
		}
	}

	fmt.Fprintf(w, "Blueprint: %s\n\n", report.Blueprint)
	fmt.Fprintf(w, "%s  %s  %s\n",
		pad("PROCESSOR", nameWidth), pad("STATUS", statusWidth), "FINDINGS")

	for _, pr := range report.Processors {
		statusCell := pad(pr.Status, statusWidth)
		if colorize {
			if seq, ok := statusColors[pr.Status]; ok {
				statusCell = seq + statusCell + colorReset
			}
		}

		detail := fmt.Sprintf("%d", len(pr.Feedback))
		if pr.SkipReason != "" {
			detail = pr.SkipReason
		}
		fmt.Fprintf(w, "%s  %s  %s\n", pad(pr.Name, nameWidth), statusCell, detail)

		for _, fb := range pr.Feedback {
			target := fb.Target
			if target != "" {
				target += ": "
			}
			fmt.Fprintf(w, "%s    - %s%s\n", strings.Repeat(" ", nameWidth), target, fb.Message)
		}
	}

	d := report.Digest
	fmt.Fprintf(w, "\n%d processors: %d success, %d warning, %d error, %d exception, %d skipped, %d aborted (%dms)\n",
		d.Total, d.Success, d.Warning, d.Error, d.Exception, d.Skipped, d.Aborted, report.DurationMs)
}

func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
