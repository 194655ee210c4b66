package guesser

import (
	"math/rand/v2"
	"sync"

	"github.com/rs/zerolog"

	"github.com/powellquiring/wordleguess/grade"
	"github.com/powellquiring/wordleguess/word"
)

// Config is built once by the caller and shared by every game
type Config struct {
	// Verbose logs each deduction at debug level
	Verbose bool
	// HardMode restricts probe words to words consistent with everything known
	HardMode  bool
	Evaluator grade.Evaluator
	// Opener picks the turn 1 guess, nil means the first candidate
	Opener OpenerPolicy
	Logger zerolog.Logger
}

func DefaultConfig() Config {
	return Config{
		Evaluator: grade.Evaluator{Strategy: grade.Parallel},
		Opener:    FirstCandidate{},
		Logger:    zerolog.Nop(),
	}
}

// OpenerPolicy chooses the first guess of a game from the ordered candidates
type OpenerPolicy interface {
	Pick(candidates []word.Word) word.Word
}

type FirstCandidate struct{}

func (FirstCandidate) Pick(candidates []word.Word) word.Word {
	return candidates[0]
}

// RandomTop picks uniformly from the first N candidates.  It is safe for concurrent use,
// one RandomTop is shared by every game built from a Config.
type RandomTop struct {
	N    int
	Rand *rand.Rand

	mu sync.Mutex
}

// OpenerTop is the number of openers RandomTop chooses from by default
const OpenerTop = 8

func NewRandomTop(seed uint64) *RandomTop {
	return &RandomTop{N: OpenerTop, Rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *RandomTop) Pick(candidates []word.Word) word.Word {
	n := min(r.N, len(candidates))
	if n <= 1 {
		return candidates[0]
	}
	r.mu.Lock()
	i := r.Rand.IntN(n)
	r.mu.Unlock()
	return candidates[i]
}
