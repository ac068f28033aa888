// Package render formats export results for people reading a terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/atinylittleshell/rgr/internal/completion"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
)

const (
	ColorGreen = lipgloss.Color("10")
	ColorGray  = lipgloss.Color("8")
)

var (
	HeaderStyle = lipgloss.NewStyle().Bold(true)
	CellStyle   = lipgloss.NewStyle().Padding(0, 1)
	BorderStyle = lipgloss.NewStyle().Foreground(ColorGray)
	TitleStyle  = lipgloss.NewStyle().Foreground(ColorGreen)
)

// Summary renders one table row per artifact, followed by the stamp and
// man pages when present.
func Summary(report *completion.Report, manPages []string) string {
	rows := make([][]string, 0, len(report.Artifacts))
	var total uint64
	for _, a := range report.Artifacts {
		rows = append(rows, []string{a.Dialect.String(), a.Path, humanize.Bytes(uint64(a.Size))})
		total += uint64(a.Size)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(BorderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle.Inherit(CellStyle)
			}
			return CellStyle
		}).
		Headers("SHELL", "FILE", "SIZE").
		Rows(rows...)

	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("%s completions (%d files, %s)", report.Program, len(report.Artifacts), humanize.Bytes(total))))
	b.WriteString("\n")
	b.WriteString(t.Render())
	b.WriteString("\n")
	if report.StampFile != "" {
		fmt.Fprintf(&b, "stamp: %s\n", report.StampFile)
	}
	if len(manPages) > 0 {
		fmt.Fprintf(&b, "man pages: %s\n", strings.Join(manPages, ", "))
	}
	return b.String()
}
