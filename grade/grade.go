package grade

import (
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/powellquiring/wordleguess/word"
)

// Grade is the feedback for guess when the answer is secret.  Each slot is graded
// on its own: Confirmed when the letters match, Required when the secret has the
// letter anywhere, otherwise Excluded.  Repeated letters are not counted down.
func Grade(secret, guess word.Word) word.WordFeedback {
	var ret word.WordFeedback
	for i, g := range guess {
		f := word.Excluded
		if secret[i] == g {
			f = word.Confirmed
		} else if secret.Contains(g) {
			f = word.Required
		}
		ret = ret*3 + word.WordFeedback(f)
	}
	return ret
}

// Strategy selects how Many computes the matrix.  All strategies produce identical output.
type Strategy int

const (
	Sequential Strategy = iota
	Parallel
	Vector
)

var strategyNames = []string{"sequential", "parallel", "vector"}

func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

func ParseStrategy(s string) (Strategy, error) {
	for i, name := range strategyNames {
		if strings.EqualFold(s, name) {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown strategy %q, expected one of %s", s, strings.Join(strategyNames, ", "))
}

// MaxWorkers caps the parallel strategy
const MaxWorkers = 8

// Workers is the default worker count for the parallel strategy
func Workers() int {
	return min(runtime.GOMAXPROCS(0), MaxWorkers)
}

// Scratch holds the matrix buffer between calls.  One call at a time.
type Scratch struct {
	matrix []word.WordFeedback
}

func (s *Scratch) grow(n int) []word.WordFeedback {
	if cap(s.matrix) < n {
		s.matrix = make([]word.WordFeedback, n)
	}
	s.matrix = s.matrix[:n]
	return s.matrix
}

// Matrix is row major, one row per guess and one column per word
type Matrix struct {
	Cells []word.WordFeedback
	Cols  int
}

func (m Matrix) Row(g int) []word.WordFeedback {
	return m.Cells[g*m.Cols : (g+1)*m.Cols]
}

func (m Matrix) At(g, w int) word.WordFeedback {
	return m.Cells[g*m.Cols+w]
}

// Evaluator computes feedback for every guess against every word
type Evaluator struct {
	Strategy Strategy
	Workers  int // parallel only, 0 means Workers()
}

// Many grades each guess against each word taken as the secret:
// At(g, w) == Grade(words[w], guesses[g]).  The result aliases scratch when it is not nil.
func (e Evaluator) Many(guesses, words []word.Word, scratch *Scratch) Matrix {
	if scratch == nil {
		scratch = &Scratch{}
	}
	m := Matrix{Cells: scratch.grow(len(guesses) * len(words)), Cols: len(words)}
	if len(m.Cells) == 0 {
		return m
	}
	switch e.Strategy {
	case Sequential:
		sequential(guesses, words, m.Cells)
	case Parallel:
		e.parallel(guesses, words, m.Cells)
	case Vector:
		vector(guesses, words, m.Cells)
	default:
		panic("unknown grading strategy: " + e.Strategy.String())
	}
	return m
}

func sequential(guesses, words []word.Word, out []word.WordFeedback) {
	i := 0
	for _, g := range guesses {
		for _, w := range words {
			out[i] = Grade(w, g)
			i++
		}
	}
}

// parallel splits the guesses into contiguous chunks, each worker owns the rows of its chunk
func (e Evaluator) parallel(guesses, words []word.Word, out []word.WordFeedback) {
	workers := e.Workers
	if workers <= 0 {
		workers = Workers()
	}
	workers = min(workers, MaxWorkers, len(guesses))
	chunk := (len(guesses) + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < len(guesses); start += chunk {
		end := min(start+chunk, len(guesses))
		g.Go(func() error {
			sequential(guesses[start:end], words, out[start*len(words):end*len(words)])
			return nil
		})
	}
	_ = g.Wait()
}
