package selfplay

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/powellquiring/wordleguess/guesser"
	"github.com/powellquiring/wordleguess/word"
)

// Summary of a set of self-played games.  The turn statistics only cover won games.
type Summary struct {
	Games          int
	Won            int
	Lost           int
	WinProbability float64
	Min            int
	Max            int
	Range          int
	Mean           float64
	Q1             int
	Median         int
	Q3             int
	IQR            int
	// WinsPerTurn[i] is the number of games won on turn i+1
	WinsPerTurn [guesser.MaxTurns]int
}

func Summarize(records []Record) Summary {
	s := Summary{Games: len(records)}
	var turns []int
	for _, r := range records {
		if r.Success {
			turns = append(turns, r.Turns())
			s.WinsPerTurn[r.Turns()-1]++
		}
	}
	s.Won = len(turns)
	s.Lost = s.Games - s.Won
	if s.Games > 0 {
		s.WinProbability = float64(s.Won) / float64(s.Games)
	}
	if len(turns) == 0 {
		return s
	}
	slices.Sort(turns)
	s.Min = turns[0]
	s.Max = turns[len(turns)-1]
	s.Range = s.Max - s.Min
	sum := 0
	for _, t := range turns {
		sum += t
	}
	s.Mean = float64(sum) / float64(len(turns))
	s.Q1 = turns[len(turns)/4]
	s.Median = turns[len(turns)/2]
	s.Q3 = turns[3*len(turns)/4]
	s.IQR = s.Q3 - s.Q1
	return s
}

const barScale = 42

var turnColors = [guesser.MaxTurns + 1]string{"🟪", "🟦", "🟩", "🟨", "🟧", "🟥", "⬜"}

func bar(tile string, n, most int) string {
	filled := 0
	if most > 0 {
		filled = int(math.Round(barScale * float64(n) / float64(most)))
	}
	return strings.Repeat(tile, filled) + strings.Repeat("⬛", barScale-filled)
}

// Write prints the summary followed by bar charts of the wins per turn
func (s Summary) Write(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "games won: %d\ngames lost: %d\nwin probability: %.4f\n", s.Won, s.Lost, s.WinProbability)
	if s.Won > 0 {
		fmt.Fprintf(&b, "min turns: %d\nmax turns: %d\nrange: %d\nmean: %.4f\nQ1: %d\nmedian: %d\nQ3: %d\nIQR: %d\n",
			s.Min, s.Max, s.Range, s.Mean, s.Q1, s.Median, s.Q3, s.IQR)
	}

	counts := append(s.WinsPerTurn[:], s.Lost)
	most := slices.Max(counts)
	b.WriteString("\nwins per turn:\n")
	for turn, n := range counts {
		label := "L"
		if turn < guesser.MaxTurns {
			label = fmt.Sprint(turn + 1)
		}
		fmt.Fprintf(&b, "%s: %5d %s\n", label, n, bar(turnColors[turn], n, most))
	}

	b.WriteString("\nprobability of winning on a turn:\n")
	for turn, n := range s.WinsPerTurn {
		p := 0.0
		if s.Games > 0 {
			p = float64(n) / float64(s.Games)
		}
		fmt.Fprintf(&b, "%d: %.3f %s\n", turn+1, p, bar("🟩", n, s.Games))
	}

	b.WriteString("\nprobability of winning on a turn, given that turn has been reached:\n")
	contestants := s.Games
	for turn, n := range s.WinsPerTurn {
		if contestants == 0 {
			fmt.Fprintf(&b, "%d: no data, always won before this turn\n", turn+1)
			continue
		}
		p := float64(n) / float64(contestants)
		fmt.Fprintf(&b, "%d: %.3f %s\n", turn+1, p, bar("🟩", n, contestants))
		contestants -= n
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Board is the emoji grid of a game, one line per guess
func Board(feedback []word.WordFeedback) string {
	var b strings.Builder
	for _, f := range feedback {
		b.WriteString(f.String())
		b.WriteByte('\n')
	}
	return b.String()
}
