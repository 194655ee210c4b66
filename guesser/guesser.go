package guesser

import (
	"slices"

	"github.com/rs/zerolog"

	"github.com/powellquiring/wordleguess/dictionary"
	"github.com/powellquiring/wordleguess/grade"
	"github.com/powellquiring/wordleguess/matcher"
	"github.com/powellquiring/wordleguess/word"
)

// MaxTurns is the number of guesses in a game
const MaxTurns = 6

// Guesser holds everything known about one secret.  Not safe for concurrent use.
type Guesser struct {
	dict       *dictionary.Dictionary
	cfg        Config
	know       matcher.Knowledge
	candidates []word.Word

	// scratch reused by the probe selector
	scratch grade.Scratch
	row     []word.WordFeedback
	parts   partitionScratch
	ranked  MinHeap[probe]
}

// New starts a guesser with every dictionary word as a candidate.  buf is reused for the
// candidate list when it is not nil, see Recycle.
func New(dict *dictionary.Dictionary, cfg Config, buf []word.Word) *Guesser {
	g := &Guesser{
		dict:       dict,
		cfg:        cfg,
		candidates: dict.Candidates(buf),
		ranked:     MinHeap[probe]{less: lessProbe},
	}
	dictionary.SortByFrequency(g.candidates)
	return g
}

func (g *Guesser) narrate() *zerolog.Event {
	if !g.cfg.Verbose {
		return nil
	}
	return g.cfg.Logger.Debug()
}

// Guess is the word to play on turn, false when no candidate is left
func (g *Guesser) Guess(turn int) (word.Word, bool) {
	if len(g.candidates) == 0 {
		return word.Word{}, false
	}
	if turn == 1 && g.cfg.Opener != nil {
		return g.cfg.Opener.Pick(g.candidates), true
	}
	return g.candidates[0], true
}

// Suggestion is the current best guess without the opener policy
func (g *Guesser) Suggestion() (word.Word, bool) {
	return g.Guess(0)
}

// Candidates are the words still consistent with the feedback, best first.  The first
// entry may be a probe that is not itself a candidate.  The slice is owned by the guesser.
func (g *Guesser) Candidates() []word.Word {
	return g.candidates
}

// Prune drops the candidates that contradict the knowledge, reorders the rest and, late in
// the game, may put a probe word in front
func (g *Guesser) Prune(turn int) {
	before := len(g.candidates)
	g.candidates = matcher.New(g.candidates).Matching(&g.know, g.candidates)
	dictionary.SortByFrequency(g.candidates)
	g.narrate().Int("turn", turn).Int("before", before).Int("after", len(g.candidates)).Msg("pruned")

	n := len(g.candidates)
	if MaxTurns-turn >= MaxTurns || n < probeMinCandidates || n > probeMaxCandidates {
		return
	}
	p, ok := g.selectProbe()
	if !ok {
		return
	}
	if i := slices.Index(g.candidates, p); i >= 0 {
		g.candidates = slices.Delete(g.candidates, i, i+1)
	}
	g.candidates = slices.Insert(g.candidates, 0, p)
}

// Recycle hands the candidate buffer back for the next game, the guesser must not be used
// afterwards
func (g *Guesser) Recycle() []word.Word {
	buf := g.candidates[:0]
	g.candidates = nil
	return buf
}
