package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/archgate/archgate/internal/domain"
)

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success).Bold(true)
	failStyle     = lipgloss.NewStyle().Foreground(danger).Bold(true)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	ruleStyle     = lipgloss.NewStyle().Bold(true).Foreground(accent)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport renders a RunReport for the terminal: a pass/fail banner, one
// section per rule group with its bounded sample, and the overflow count per
// group.
func RenderReport(report *domain.RunReport) string {
	var b strings.Builder

	title := headerStyle.Render("archgate")
	subtitle := dimStyle.Render("Architecture Boundary Audit")

	var verdict string
	if report.Passed {
		verdict = passStyle.Render("PASS")
	} else {
		verdict = failStyle.Render(fmt.Sprintf("FAIL  %d violations", report.Total))
	}

	meta := dimStyle.Render(fmt.Sprintf("%d files · %d edges", report.FilesScanned, report.EdgeCount))
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + verdict + "\n" + meta))
	b.WriteString("\n\n")

	if report.Passed {
		b.WriteString("  " + passStyle.Render("No violations found.") + "\n")
		return b.String()
	}

	for i, group := range report.Groups {
		renderGroup(&b, group)
		if i < len(report.Groups)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n")
	b.WriteString("  " + failStyle.Render(fmt.Sprintf("%d violations across %d rules", report.Total, len(report.Groups))))
	b.WriteString("\n")

	return b.String()
}

func renderGroup(b *strings.Builder, group domain.RuleGroup) {
	b.WriteString(fmt.Sprintf("  %s %s\n",
		ruleStyle.Render(group.RuleID),
		dimStyle.Render(fmt.Sprintf("(%d)", group.Total)),
	))

	for _, v := range group.Sample {
		loc := v.File
		if v.Line > 0 {
			loc = fmt.Sprintf("%s:%d", v.File, v.Line)
		}
		if loc != "" {
			b.WriteString(fmt.Sprintf("    %s %s\n", failStyle.Render("●"), fileStyle.Render(loc)))
			b.WriteString(fmt.Sprintf("      %s\n", dimStyle.Render(v.Message)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", failStyle.Render("●"), dimStyle.Render(v.Message)))
		}
	}

	if group.Overflow > 0 {
		b.WriteString("    " + faintStyle.Render(fmt.Sprintf("… and %d more", group.Overflow)) + "\n")
	}
}

// RenderLattice prints the effective boundary lattice, one layer per line.
func RenderLattice(lattice *domain.BoundaryLattice) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Boundary Lattice") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for _, layer := range domain.Layers {
		allowed := lattice.AllowedFor(layer)
		names := make([]string, len(allowed))
		for i, a := range allowed {
			names[i] = string(a)
		}
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			ruleStyle.Render(padRight(string(layer), 16)),
			dimStyle.Render("→"),
			strings.Join(names, ", "),
		))
	}
	b.WriteString("\n")
	b.WriteString("  " + dimStyle.Render("domain additionally denies every external package.") + "\n")
	return b.String()
}

// RenderGraph prints layer-level dependency edges with violation marks.
func RenderGraph(edges []domain.LayerEdge) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Layer Dependencies") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	if len(edges) == 0 {
		b.WriteString("  " + dimStyle.Render("No internal layer edges found.") + "\n")
		return b.String()
	}

	for _, e := range edges {
		mark := passStyle.Render("✓")
		if !e.Allowed {
			mark = failStyle.Render("✗")
		}
		b.WriteString(fmt.Sprintf("  %s %s %s %s  %s\n",
			mark,
			padRight(string(e.From), 16),
			dimStyle.Render("→"),
			padRight(string(e.To), 16),
			dimStyle.Render(fmt.Sprintf("%d imports", e.Count)),
		))
	}
	return b.String()
}

// RenderHistory formats past audit runs for terminal output.
func RenderHistory(entries []domain.HistoryEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No audit history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Audit History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for _, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}

		verdict := passStyle.Render("pass")
		if !e.Passed {
			verdict = failStyle.Render(fmt.Sprintf("fail (%d)", e.Total))
		}

		ts := e.Timestamp
		if len(ts) > 10 {
			ts = ts[:10]
		}

		b.WriteString(fmt.Sprintf("  %s  %s  %s\n",
			dimStyle.Render(ts),
			faintStyle.Render(hash),
			verdict,
		))
	}

	return b.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
