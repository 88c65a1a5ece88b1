package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/descoped/script-utils/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // Orange

	panelStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("63"))
)

func (m AppModel) View() string {
	if m.Loading {
		return "\n  Scanning shell config files... please wait.\n"
	}
	if m.Err != nil {
		return fmt.Sprintf("\n  Error: %v\n", m.Err)
	}

	width := m.WindowSize.Width
	height := m.WindowSize.Height

	netWidth := width - 6
	if netWidth < 20 {
		netWidth = 20
	}
	leftWidth := netWidth / 2
	rightWidth := netWidth - leftWidth

	boxHeight := height - 6
	if boxHeight < 6 {
		boxHeight = 6
	}
	interiorHeight := boxHeight - 2
	if interiorHeight < 2 {
		interiorHeight = 2
	}

	left := m.renderEntryList(interiorHeight)

	var right string
	if m.ShowDiagnostics {
		right = m.renderDiagnostics()
	} else {
		right = m.renderDetails()
	}

	leftPanel := panelStyle.Width(leftWidth).Height(boxHeight).Render(left)
	rightPanel := panelStyle.Width(rightWidth).Height(boxHeight).Render(right)

	body := lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, rightPanel)

	var footer string
	if m.InputMode {
		footer = "  Filter: " + m.InputBuffer.View()
	} else {
		footer = dimStyle.Render("  ↑/↓ select · / filter · d diagnostics · q quit")
	}

	return titleStyle.Render("  pathscan — computed PATH") + "\n" + body + "\n" + footer
}

func (m AppModel) renderEntryList(visible int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("PATH Entries"))
	b.WriteString("\n\n")

	items := visible - 2
	if items < 1 {
		items = 1
	}
	start := 0
	if len(m.FilteredIndices) > items && m.SelectedIdx >= items/2 {
		start = m.SelectedIdx - items/2
	}
	end := start + items
	if end > len(m.FilteredIndices) {
		end = len(m.FilteredIndices)
	}

	for pos := start; pos < end; pos++ {
		entry := m.Result.Entries[m.FilteredIndices[pos]]
		icon := model.IconOK
		if entry.IsDuplicate {
			icon = model.IconDuplicate
		}
		if entry.Missing {
			icon = model.IconMissing
		}
		line := fmt.Sprintf("%s %s", icon, entry.Path)
		if pos == m.SelectedIdx {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString(normalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if len(m.FilteredIndices) == 0 {
		b.WriteString(dimStyle.Render("  no matching entries"))
	}
	return b.String()
}

func (m AppModel) renderDetails() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Details"))
	b.WriteString("\n\n")

	if m.SelectedIdx >= len(m.FilteredIndices) {
		b.WriteString(dimStyle.Render("nothing selected"))
		return b.String()
	}
	entry := m.Result.Entries[m.FilteredIndices[m.SelectedIdx]]

	b.WriteString(normalStyle.Render(entry.Path) + "\n")
	if entry.Missing {
		b.WriteString(warnStyle.Render("directory does not exist") + "\n")
	}
	b.WriteString(fmt.Sprintf("added %d time(s)\n\n", entry.Count))

	for _, p := range entry.Provenance {
		b.WriteString(fmt.Sprintf("%s:%d\n", p.File, p.Line))
		ctx := model.GetLineContext(p.File, p.Line)
		if ctx.ErrorMsg != "" {
			b.WriteString(dimStyle.Render("  "+ctx.ErrorMsg) + "\n")
			continue
		}
		for _, l := range ctx.Before {
			b.WriteString(dimStyle.Render("  "+l) + "\n")
		}
		b.WriteString(selectedStyle.Render("  "+ctx.Target) + "\n")
		for _, l := range ctx.After {
			b.WriteString(dimStyle.Render("  "+l) + "\n")
		}
		b.WriteString("\n")
	}

	if entry.IsDuplicate {
		first := entry.First()
		b.WriteString(warnStyle.Render(fmt.Sprintf(
			"Duplicate: first added at %s:%d. Later additions are redundant.",
			first.File, first.Line)))
	}
	return b.String()
}

func (m AppModel) renderDiagnostics() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Diagnostics"))
	b.WriteString("\n\n")

	if len(m.Result.Diagnostics) == 0 {
		b.WriteString(dimStyle.Render("no warnings"))
		return b.String()
	}
	for _, d := range m.Result.Diagnostics {
		b.WriteString(warnStyle.Render("• ") + normalStyle.Render(d) + "\n")
	}

	if len(m.Result.UndefinedVars) > 0 {
		b.WriteString("\n" + titleStyle.Render("Undefined variables") + "\n")
		for _, v := range m.Result.UndefinedVars {
			b.WriteString(fmt.Sprintf("  $%s (%d reference(s))\n", v.Name, v.Count))
		}
	}
	return b.String()
}
