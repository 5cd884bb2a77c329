package output

import (
	"bytes"
	"io"
	"regexp"
	"strings"

	"github.com/rivo/uniseg"
)

// kColumnGap is the number of spaces between two table columns.
const kColumnGap = 2

var kColorEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// table buffers the tab-separated rows written by fill and prints them aligned.
func (p *StdPrinter) table(fill func(w io.Writer) error) error {
	var buf bytes.Buffer
	if err := fill(&buf); err != nil {
		return err
	}
	return alignColumns(p.Out, buf.String())
}

// alignColumns pads every tab-terminated cell of text to the widest cell of its column.
// Widths are measured in terminal cells with color escapes removed, so painted cells line up
// with plain ones.
func alignColumns(w io.Writer, text string) error {
	if text == "" {
		return nil
	}

	rows := strings.Split(text, "\n")
	cells := make([][]string, len(rows))
	var widths []int
	for i, row := range rows {
		cells[i] = strings.Split(row, "\t")
		for j, cell := range cells[i][:len(cells[i])-1] {
			if j == len(widths) {
				widths = append(widths, 0)
			}
			widths[j] = max(widths[j], cellWidth(cell))
		}
	}

	var b strings.Builder
	for i, row := range cells {
		if i > 0 {
			b.WriteByte('\n')
		}
		last := len(row) - 1
		for j, cell := range row {
			b.WriteString(cell)
			if j < last {
				b.WriteString(strings.Repeat(" ", widths[j]-cellWidth(cell)+kColumnGap))
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// cellWidth is the number of terminal cells s occupies once color escapes are removed.
func cellWidth(s string) int {
	return uniseg.StringWidth(kColorEscape.ReplaceAllString(s, ""))
}
