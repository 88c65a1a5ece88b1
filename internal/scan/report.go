package scan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/descoped/script-utils/internal/model"
)

// GenerateReport renders a plain-text diagnostic report for an analysis.
// Plain text so it can be saved to a file unchanged; coloring is the
// logger's job, not the report's.
func GenerateReport(result model.AnalysisResult, verbose bool) string {
	var b strings.Builder

	b.WriteString("PATH Analysis Report\n")
	b.WriteString("====================\n\n")

	b.WriteString(fmt.Sprintf("Files scanned (%d):\n", len(result.FilesVisited)))
	for i, f := range result.FilesVisited {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, f))
	}
	b.WriteString("\n")

	b.WriteString("Computed PATH entries:\n")
	table := tablewriter.NewWriter(&b)
	table.SetHeader([]string{"", "Directory", "Added", "First Added At"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	for _, e := range result.Entries {
		icon := model.IconOK
		if e.IsDuplicate {
			icon = model.IconDuplicate
		}
		if e.Missing {
			icon = model.IconMissing
		}
		first := e.First()
		table.Append([]string{
			icon,
			e.Path,
			strconv.Itoa(e.Count) + "x",
			fmt.Sprintf("%s:%d", first.File, first.Line),
		})
	}
	table.Render()
	b.WriteString("\n")

	if dupes := result.Duplicates(); len(dupes) > 0 {
		b.WriteString(fmt.Sprintf("Duplicate entries (%d):\n", len(dupes)))
		for _, e := range dupes {
			b.WriteString(fmt.Sprintf("  %s %s added %d times:\n", model.IconDuplicate, e.Path, e.Count))
			for _, p := range e.Provenance {
				b.WriteString(fmt.Sprintf("      %s:%d\n", p.File, p.Line))
			}
		}
		b.WriteString("\n")
	}

	if len(result.UndefinedVars) > 0 {
		b.WriteString("Variables referenced but never defined:\n")
		for _, v := range result.UndefinedVars {
			b.WriteString(fmt.Sprintf("  $%s (%d reference(s))\n", v.Name, v.Count))
		}
		b.WriteString("\n")
	}

	b.WriteString("Final PATH (statically computed from config files):\n")
	b.WriteString("  " + emptyAs(result.ComputedPath, "<empty>") + "\n\n")
	b.WriteString("Live PATH (current process environment):\n")
	b.WriteString("  " + emptyAs(result.LivePath, "<empty>") + "\n")
	if result.ComputedPath != result.LivePath {
		b.WriteString("\nNote: live and computed PATH differ. Session-specific entries\n")
		b.WriteString("(virtualenvs, version managers, tool shims) are the usual cause.\n")
	}

	if verbose && len(result.Diagnostics) > 0 {
		b.WriteString(fmt.Sprintf("\nDiagnostics (%d):\n", len(result.Diagnostics)))
		for _, d := range result.Diagnostics {
			b.WriteString("  - " + d + "\n")
		}
	}

	return b.String()
}

func emptyAs(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
