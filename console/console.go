// Package console renders emitted incidents to the terminal. It is one
// implementation of the watcher's presentation boundary.
package console

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"statuswatch/types"
)

// Color palette
const (
	colorProvider  = "#7D56F4"
	colorService   = "#FAFAFA"
	colorStatus    = "#04B575"
	colorTimestamp = "#626262"
)

var (
	providerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorProvider))

	serviceStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorService))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorStatus))

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorTimestamp))
)

// Printer writes one block per incident:
//
//	[2025-11-03 14:32:00] OPENAI  API - Chat Completions
//	  Degraded performance due to upstream issue
type Printer struct {
	out io.Writer
}

// NewPrinter creates a printer. A nil writer defaults to stdout.
func NewPrinter(out io.Writer) *Printer {
	if out == nil {
		out = os.Stdout
	}
	return &Printer{out: out}
}

// Emit renders one incident. Safe for concurrent provider cycles: each
// incident is written with a single Fprint call.
func (p *Printer) Emit(inc types.Incident) {
	line := fmt.Sprintf("%s %s  %s\n  %s\n",
		timestampStyle.Render("["+displayTime(inc)+"]"),
		providerStyle.Render(inc.Provider),
		serviceStyle.Render(inc.Service),
		statusStyle.Render(inc.Status),
	)
	fmt.Fprint(p.out, line)
}

// displayTime prefers the parsed instant and falls back to the
// provider-supplied text, which may be absent entirely.
func displayTime(inc types.Incident) string {
	if !inc.At.IsZero() {
		return inc.At.Format(time.DateTime)
	}
	if inc.Timestamp != "" {
		return inc.Timestamp
	}
	return "unknown time"
}

// Banner prints the startup header listing the monitored providers.
func (p *Printer) Banner(providers []string, interval time.Duration) {
	title := providerStyle.Render("statuswatch")
	fmt.Fprintf(p.out, "%s watching %d provider(s), polling every %s\n", title, len(providers), interval)
	for _, key := range providers {
		fmt.Fprintf(p.out, "  - %s\n", key)
	}
}
