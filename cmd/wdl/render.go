package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/colorstring"
	"github.com/rivo/uniseg"
	"golang.org/x/term"

	"github.com/powellquiring/wordleguess/word"
)

// renderer draws rounds as colored tiles on a terminal and as emoji everywhere else
type renderer struct {
	colorize colorstring.Colorize
}

func newRenderer(mode string, out *os.File) (renderer, error) {
	var enabled bool
	switch mode {
	case "auto", "":
		enabled = term.IsTerminal(int(out.Fd()))
	case "always":
		enabled = true
	case "never":
	default:
		return renderer{}, fmt.Errorf("color must be auto, always or never, not %q", mode)
	}
	return renderer{colorize: colorstring.Colorize{
		Colors:  colorstring.DefaultColors,
		Disable: !enabled,
		Reset:   true,
	}}, nil
}

func (r renderer) enabled() bool {
	return !r.colorize.Disable
}

var tileBackground = map[byte]string{'r': "_dark_gray_", 'y': "_yellow_", 'g': "_green_"}

// round is one guess: tiles on a terminal, otherwise the word followed by emoji
func (r renderer) round(round word.Round) string {
	if !r.enabled() {
		return round.Word().String() + " " + round.Feedback().String()
	}
	var b strings.Builder
	for _, c := range round {
		fmt.Fprintf(&b, "[%s][bold][white] %s [reset]", tileBackground[c.Feedback.Color()], c.Letter)
	}
	return r.colorize.Color(b.String())
}

func (r renderer) highlight(s string) string {
	return r.colorize.Color("[bold]" + s)
}

// table pads every column to its widest cell measured in terminal cells
func table(rows [][]string) string {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i == len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], uniseg.StringWidth(cell))
		}
	}
	var b strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			b.WriteString(cell)
			if i < len(row)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-uniseg.StringWidth(cell)+1))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// grid lays cells out perRow to a line
func grid(cells []string, perRow int) string {
	var rows [][]string
	for start := 0; start < len(cells); start += perRow {
		rows = append(rows, cells[start:min(start+perRow, len(cells))])
	}
	return table(rows)
}
