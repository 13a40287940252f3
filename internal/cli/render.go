package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/cratescope/pkg/features"
)

// featureSet formats an enabled feature set for display, e.g. "{derive, default}".
func featureSet(names []string) string {
	return "{" + strings.Join(names, ", ") + "}"
}

// renderRows writes the query result to w.
//
// Plain mode emits one tab-separated line per row for scripts and tests;
// styled mode renders a lipgloss table. An empty result renders nothing in
// plain mode and a dim notice in styled mode - either way it is a normal
// outcome, not an error.
func renderRows(w io.Writer, rows []features.Row, plain bool) {
	if plain {
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s\n", r.Package, r.Dependency, featureSet(r.Features))
		}
		renderWarnings(w, rows, plain)
		return
	}

	if len(rows) == 0 {
		fmt.Fprintln(w, styleDim.Render("no matching dependencies"))
		return
	}

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		kind := ""
		if r.Kind != "normal" {
			kind = r.Kind
		}
		data = append(data, []string{r.Package, r.Dependency, r.Constraint, kind, featureSet(r.Features)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Package", "Dependency", "Constraint", "Kind", "Features").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			switch col {
			case 0:
				return stylePackage
			case 2, 3:
				return styleDim
			case 4:
				return styleFeature
			default:
				return styleValue
			}
		})

	fmt.Fprintln(w, t.Render())
	renderWarnings(w, rows, plain)
}

// renderWarnings reports unresolved feature-group targets, once per package.
// Warnings are annotations: they never affect the exit code.
func renderWarnings(w io.Writer, rows []features.Row, plain bool) {
	seen := map[string]bool{}
	for _, r := range rows {
		if seen[r.Package] || len(r.Warnings) == 0 {
			continue
		}
		seen[r.Package] = true
		for _, warning := range r.Warnings {
			if plain {
				fmt.Fprintf(w, "# %s: %s\n", r.Package, warning)
			} else {
				fmt.Fprintln(w, styleWarning.Render(fmt.Sprintf("%s %s: %s", iconWarning, r.Package, warning)))
			}
		}
	}
}
