package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/danieljhkim/gridnav/internal/grid"
	"github.com/danieljhkim/gridnav/internal/metrics"
)

var (
	// out is where command output goes; commands point it at cmd.OutOrStdout()
	out io.Writer = os.Stdout

	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	valueColor   = color.New(color.FgHiBlack)
	dimColor     = color.New(color.FgHiBlack)
	pathColor    = color.New(color.FgGreen, color.Bold)
	blockedColor = color.New(color.FgRed, color.Bold)
)

// PrintSection prints a section header
func PrintSection(title string) {
	fmt.Fprintln(out)
	_, _ = headerColor.Fprintf(out, "▸ %s\n", title)
	fmt.Fprintln(out)
}

// PrintSubsection prints a subsection header
func PrintSubsection(title string) {
	_, _ = infoColor.Fprintf(out, "  %s\n", title)
}

// PrintSuccess prints a success message with a checkmark
func PrintSuccess(msg string) {
	_, _ = successColor.Fprintf(out, "✓ %s\n", msg)
}

// PrintWarning prints a warning message with a warning symbol
func PrintWarning(msg string) {
	_, _ = warningColor.Fprintf(out, "⚠ %s\n", msg)
}

// PrintLabelValue prints a label-value pair with proper formatting
func PrintLabelValue(label, value string) {
	_, _ = labelColor.Fprintf(out, "  %s: ", label)
	_, _ = valueColor.Fprintln(out, value)
}

// PrintList prints a list of items with bullet points
func PrintList(items []string, indent int) {
	indentStr := strings.Repeat("  ", indent)
	for _, item := range items {
		_, _ = infoColor.Fprintf(out, "%s• %s\n", indentStr, item)
	}
}

// PrintTable prints a simple column table
func PrintTable(headers []string, rows [][]string) {
	if len(headers) == 0 || len(rows) == 0 {
		return
	}

	colWidths := make([]int, len(headers))
	for i, header := range headers {
		colWidths[i] = len(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(colWidths) && len(cell) > colWidths[i] {
				colWidths[i] = len(cell)
			}
		}
	}

	fmt.Fprint(out, "  ")
	for i, header := range headers {
		if i > 0 {
			fmt.Fprint(out, "  ")
		}
		_, _ = headerColor.Fprintf(out, "%-*s", colWidths[i], header)
	}
	fmt.Fprintln(out)

	fmt.Fprint(out, "  ")
	for i, width := range colWidths {
		if i > 0 {
			fmt.Fprint(out, "  ")
		}
		fmt.Fprint(out, strings.Repeat("-", width))
	}
	fmt.Fprintln(out)

	for _, row := range rows {
		fmt.Fprint(out, "  ")
		for i, cell := range row {
			if i >= len(colWidths) {
				break
			}
			if i > 0 {
				fmt.Fprint(out, "  ")
			}
			_, _ = valueColor.Fprintf(out, "%-*s", colWidths[i], cell)
		}
		fmt.Fprintln(out)
	}
}

// PrintEmptyState prints a message when there's no data to show
func PrintEmptyState(msg string) {
	_, _ = dimColor.Fprintf(out, "  %s\n", msg)
}

// PrintCount prints a count with proper formatting
func PrintCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// FormatCells joins cells with sep, e.g. "(0,0) -> (0,1)".
func FormatCells(cells []grid.Cell, sep string) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c.String()
	}
	return strings.Join(parts, sep)
}

// gridView marks cells of interest when rendering a grid.
type gridView struct {
	start, goal *grid.Cell
	path        map[grid.Cell]bool
	blocked     map[grid.Cell]bool
}

// RenderGrid draws g with S and G at the endpoints, path cells highlighted,
// discovered barriers as X and known barriers as #.
func RenderGrid(g *grid.Grid, start, goal grid.Cell, path []grid.Cell, blocked []grid.Cell) string {
	v := gridView{
		start:   &start,
		goal:    &goal,
		path:    make(map[grid.Cell]bool, len(path)),
		blocked: make(map[grid.Cell]bool, len(blocked)),
	}
	for _, c := range path {
		v.path[c] = true
	}
	for _, c := range blocked {
		v.blocked[c] = true
	}

	var b strings.Builder
	for r := 0; r < g.Rows(); r++ {
		b.WriteString("  ")
		for c := 0; c < g.Cols(); c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(v.cell(g, grid.At(r, c)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (v gridView) cell(g *grid.Grid, c grid.Cell) string {
	switch {
	case v.start != nil && c == *v.start:
		return pathColor.Sprint("S")
	case v.goal != nil && c == *v.goal:
		return pathColor.Sprint("G")
	case v.blocked[c]:
		return blockedColor.Sprint("X")
	case g.IsBarrier(c):
		return dimColor.Sprint("#")
	}
	value, _ := g.Value(c)
	if v.path[c] {
		return pathColor.Sprintf("%d", value)
	}
	return fmt.Sprintf("%d", value)
}

// PrintGrid prints a rendered grid.
func PrintGrid(g *grid.Grid, start, goal grid.Cell, path []grid.Cell, blocked []grid.Cell) {
	fmt.Fprint(out, RenderGrid(g, start, goal, path, blocked))
}

// PrintMetrics prints gathered metric samples as a table.
func PrintMetrics(samples []metrics.Sample) {
	if len(samples) == 0 {
		PrintEmptyState("No metrics recorded")
		return
	}
	rows := make([][]string, 0, len(samples))
	for _, s := range samples {
		rows = append(rows, []string{s.Name, metrics.FormatLabels(s.Labels), fmt.Sprintf("%g", s.Value)})
	}
	PrintTable([]string{"METRIC", "LABELS", "VALUE"}, rows)
}
