package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table formats rows into aligned columns. Widths are measured in terminal
// cells, so cells may hold styled (ANSI) or wide text.
type Table struct {
	headers   []string
	rows      [][]string
	padding   int
	maxWidths map[int]int // maximum width per column index, 0 = no limit
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:   headers,
		rows:      make([][]string, 0),
		padding:   2,
		maxWidths: make(map[int]int),
	}
}

// SetColumnMaxWidth wraps text in a column at word boundaries once it is
// wider than maxWidth.
func (t *Table) SetColumnMaxWidth(colIndex int, maxWidth int) {
	t.maxWidths[colIndex] = maxWidth
}

// AddRow adds a row, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	normalised := make([]string, len(t.headers))
	copy(normalised, row)
	t.rows = append(t.rows, normalised)
}

// Render returns the table as a string, one line per row plus a header and separator.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	cells := make([][][]string, len(t.rows))
	for r, row := range t.rows {
		cells[r] = make([][]string, len(row))
		for c, cell := range row {
			cells[r][c] = wrapText(cell, t.maxWidths[c])
		}
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range cells {
		for c, lines := range row {
			for _, line := range lines {
				widths[c] = max(widths[c], lipgloss.Width(line))
			}
		}
	}

	gap := strings.Repeat(" ", t.padding)
	var b strings.Builder

	writeLine := func(parts []string) {
		b.WriteString(strings.TrimRight(strings.Join(parts, gap), " "))
		b.WriteString("\n")
	}

	parts := make([]string, len(t.headers))
	for i, h := range t.headers {
		parts[i] = padRight(h, widths[i])
	}
	writeLine(parts)

	for i, w := range widths {
		parts[i] = strings.Repeat("-", w)
	}
	writeLine(parts)

	for _, row := range cells {
		height := 1
		for _, lines := range row {
			height = max(height, len(lines))
		}
		for l := 0; l < height; l++ {
			for c := range t.headers {
				text := ""
				if l < len(row[c]) {
					text = row[c][l]
				}
				parts[c] = padRight(text, widths[c])
			}
			writeLine(parts)
		}
	}

	return b.String()
}

// padRight pads s with spaces to width cells. Wider strings are returned unchanged.
func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// wrapText splits text into lines no wider than width, breaking at spaces
// and splitting words that are wider than a whole line. Width <= 0 disables wrapping.
func wrapText(text string, width int) []string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var lines []string
	current := ""
	for _, word := range words {
		for lipgloss.Width(word) > width {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			head, rest := splitWidth(word, width)
			lines = append(lines, head)
			word = rest
		}

		switch {
		case current == "":
			current = word
		case lipgloss.Width(current)+1+lipgloss.Width(word) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}

	return lines
}

// splitWidth cuts s after the longest prefix that fits in width cells. At
// least one rune is always taken, so a character wider than width still
// makes progress.
func splitWidth(s string, width int) (head, rest string) {
	used := 0
	for i, r := range s {
		w := lipgloss.Width(string(r))
		if i > 0 && used+w > width {
			return s[:i], s[i:]
		}
		used += w
	}
	return s, ""
}
