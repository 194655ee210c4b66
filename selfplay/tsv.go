package selfplay

import (
	"bufio"
	"fmt"
	"io"

	"github.com/powellquiring/wordleguess/guesser"
	"github.com/powellquiring/wordleguess/word"
)

// spreadsheets read a bare FALSE as a boolean
var falseWord = word.MustParse("FALSE")

func quoted(w word.Word) string {
	if w == falseWord {
		return `"'` + w.String() + `"`
	}
	return `"` + w.String() + `"`
}

// WriteTSV writes one row per game in a form spreadsheets import directly
func WriteTSV(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(`"Word"` + "\t" + `"Success"` + "\t" + `"Turns"`)
	for turn := 1; turn <= guesser.MaxTurns; turn++ {
		fmt.Fprintf(bw, "\t\"Turn %d word\"", turn)
	}
	for _, r := range records {
		if r.Success {
			fmt.Fprintf(bw, "\n%s\tTRUE\t%d", quoted(r.Secret), r.Turns())
		} else {
			fmt.Fprintf(bw, "\n%s\tFALSE\t#N/A", quoted(r.Secret))
		}
		for _, g := range r.Guesses {
			bw.WriteString("\t" + quoted(g))
		}
	}
	bw.WriteByte('\n')
	return bw.Flush()
}
