package inspect

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Render renders the card summary to a string
func Render(data *Data) string {
	sections := []string{
		renderTitle(data),
		renderHeader(data),
		renderStructure(data),
		renderNuisances(data),
		renderFiles(data),
	}
	if len(data.Params) > 0 {
		sections = append(sections, renderParams(data))
	}
	return strings.Join(sections, "\n\n") + "\n"
}

func renderTitle(data *Data) string {
	path := data.Path
	if path == "" {
		path = "(in memory)"
	}
	return titleStyle.Render("Card: ") + valueStyle.Render(path)
}

func renderHeader(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Header:"))
	for _, line := range data.Header {
		b.WriteString("\n   " + subtleStyle.Render(line))
	}
	return b.String()
}

func renderStructure(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Structure:") + "\n")
	b.WriteString("   " + keyStyle.Render("Bins: ") + valueStyle.Render(fmt.Sprintf("%d", len(data.Bins))) +
		" " + subtleStyle.Render(strings.Join(data.Bins, ", ")) + "\n")
	b.WriteString("   " + keyStyle.Render("Processes: ") + valueStyle.Render(fmt.Sprintf("%d", len(data.Processes))))
	for _, p := range data.Processes {
		b.WriteString(fmt.Sprintf("\n      %s %s", valueStyle.Render(p.Name), subtleStyle.Render("(id "+p.ID+")")))
	}
	return b.String()
}

func renderNuisances(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render(fmt.Sprintf("Nuisances (%d):", len(data.Nuisances))))
	if len(data.Nuisances) == 0 {
		b.WriteString("\n   " + subtleStyle.Render("none"))
		return b.String()
	}

	width := 0
	for _, n := range data.Nuisances {
		if len(n.Name) > width {
			width = len(n.Name)
		}
	}
	for _, n := range data.Nuisances {
		b.WriteString(fmt.Sprintf("\n   %s %s %s",
			keyStyle.Render(fmt.Sprintf("%-*s", width, n.Name)),
			valueStyle.Render(fmt.Sprintf("%-6s", n.Type)),
			subtleStyle.Render(fmt.Sprintf("affects %d column(s)", n.Affects))))
	}
	return b.String()
}

func renderFiles(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Workspace files:"))
	if len(data.Files) == 0 {
		b.WriteString("\n   " + subtleStyle.Render("none"))
		return b.String()
	}
	for _, f := range data.Files {
		status := errorStyle.Render("✗ missing")
		if f.Exists {
			status = successStyle.Render("✓ " + formatBytes(f.Size))
		}
		b.WriteString(fmt.Sprintf("\n   %s %s", valueStyle.Render(f.Ref), status))
		if f.Resolved != f.Ref {
			b.WriteString(" " + subtleStyle.Render(f.Resolved))
		}
	}
	return b.String()
}

func renderParams(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Parameters:"))
	for _, line := range data.Params {
		b.WriteString("\n   " + subtleStyle.Render(line))
	}
	return b.String()
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
