package console

import (
	"strings"

	"charm.land/lipgloss/v2"
)

type tableChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical, cross                string
	tLeft, tRight, tTop, tBottom               string
}

var (
	lineChars  = tableChars{"┌", "┐", "└", "┘", "─", "│", "┼", "├", "┤", "┬", "┴"}
	asciiChars = tableChars{"+", "+", "+", "+", "-", "|", "+", "|", "|", "-", "-"}
)

// FormatTable renders headers and data as a bordered table.
// data is a flat list of cells; its length should be a multiple of len(headers).
// Cell widths are measured without ANSI sequences, so styled cells line up.
func FormatTable(headers []string, data []string, useLineChars bool) string {
	cols := len(headers)
	if cols == 0 {
		return ""
	}

	colWidths := make([]int, cols)
	for i, h := range headers {
		colWidths[i] = max(colWidths[i], lipgloss.Width(h))
	}
	for i, d := range data {
		colWidths[i%cols] = max(colWidths[i%cols], lipgloss.Width(d))
	}

	cs := asciiChars
	if useLineChars {
		cs = lineChars
	}

	var top, middle, bottom strings.Builder
	top.WriteString(cs.topLeft)
	middle.WriteString(cs.tLeft)
	bottom.WriteString(cs.bottomLeft)
	for i, width := range colWidths {
		dashes := strings.Repeat(cs.horizontal, width+2)
		top.WriteString(dashes)
		middle.WriteString(dashes)
		bottom.WriteString(dashes)
		if i < cols-1 {
			top.WriteString(cs.tTop)
			middle.WriteString(cs.cross)
			bottom.WriteString(cs.tBottom)
		} else {
			top.WriteString(cs.topRight)
			middle.WriteString(cs.tRight)
			bottom.WriteString(cs.bottomRight)
		}
	}

	var out strings.Builder
	writeRow := func(items []string) {
		out.WriteString(cs.vertical)
		for i, item := range items {
			out.WriteString(" ")
			out.WriteString(item)
			out.WriteString(strings.Repeat(" ", colWidths[i]-lipgloss.Width(item)))
			out.WriteString(" ")
			out.WriteString(cs.vertical)
		}
		out.WriteString("\n")
	}

	out.WriteString(top.String() + "\n")
	writeRow(headers)
	out.WriteString(middle.String() + "\n")
	for i := 0; i < len(data); i += cols {
		row := make([]string, cols)
		copy(row, data[i:min(i+cols, len(data))])
		writeRow(row)
	}
	out.WriteString(bottom.String() + "\n")
	return out.String()
}
