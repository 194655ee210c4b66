package guesser

import (
	"errors"
	"fmt"

	"github.com/powellquiring/wordleguess/word"
)

var (
	// ErrExhausted means no candidate is consistent with the feedback
	ErrExhausted = errors.New("no candidate words left")
	ErrGameOver  = errors.New("game is over")
	ErrNoGuess   = errors.New("no guess is waiting for feedback")
)

// State of a Game.  Won, Lost, Exhausted and Failed are terminal.
type State int

const (
	AwaitingGuess State = iota
	AwaitingFeedback
	Won
	Lost
	Exhausted
	Failed
)

var stateNames = []string{"awaiting guess", "awaiting feedback", "won", "lost", "exhausted", "failed"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

func (s State) Over() bool {
	return s >= Won
}

// Turn is one played round
type Turn struct {
	Guess      word.Word
	Feedback   word.WordFeedback
	Candidates int // left after the round
}

// Game drives a Guesser through at most MaxTurns rounds
type Game struct {
	g       *Guesser
	turn    int
	state   State
	pending word.Word
	history []Turn
	err     error
}

func NewGame(g *Guesser) *Game {
	return &Game{g: g, turn: 1}
}

func (gm *Game) Guesser() *Guesser { return gm.g }
func (gm *Game) State() State      { return gm.state }
func (gm *Game) History() []Turn   { return gm.history }

// Turn is the 1 based number of the round being played
func (gm *Game) Turn() int { return gm.turn }

// Err is the reason the game failed
func (gm *Game) Err() error { return gm.err }

// Next is the guess for the current turn.  Calling it again before Submit returns the
// same word.
func (gm *Game) Next() (word.Word, error) {
	switch gm.state {
	case AwaitingFeedback:
		return gm.pending, nil
	case AwaitingGuess:
	case Exhausted:
		return word.Word{}, ErrExhausted
	default:
		return word.Word{}, fmt.Errorf("%w: %s", ErrGameOver, gm.state)
	}
	w, ok := gm.g.Guess(gm.turn)
	if !ok {
		gm.state = Exhausted
		return word.Word{}, ErrExhausted
	}
	gm.pending = w
	gm.state = AwaitingFeedback
	return w, nil
}

// Submit is the feedback for the word returned by Next
func (gm *Game) Submit(f word.WordFeedback) (State, error) {
	if gm.state != AwaitingFeedback {
		if gm.state.Over() {
			return gm.state, fmt.Errorf("%w: %s", ErrGameOver, gm.state)
		}
		return gm.state, ErrNoGuess
	}
	return gm.Play(word.RoundOf(gm.pending, f))
}

// Play records a round whose guess may differ from the suggestion
func (gm *Game) Play(round word.Round) (State, error) {
	if gm.state.Over() {
		return gm.state, fmt.Errorf("%w: %s", ErrGameOver, gm.state)
	}
	f := round.Feedback()
	if err := gm.g.Analyze(round); err != nil {
		gm.record(round)
		gm.state = Failed
		gm.err = err
		return gm.state, err
	}
	if f.Won() {
		gm.record(round)
		gm.state = Won
		return gm.state, nil
	}
	gm.g.Prune(gm.turn)
	gm.record(round)
	switch {
	case len(gm.g.Candidates()) == 0:
		gm.state = Exhausted
	case gm.turn >= MaxTurns:
		gm.state = Lost
	default:
		gm.turn++
		gm.state = AwaitingGuess
	}
	return gm.state, nil
}

func (gm *Game) record(round word.Round) {
	gm.history = append(gm.history, Turn{
		Guess:      round.Word(),
		Feedback:   round.Feedback(),
		Candidates: len(gm.g.Candidates()),
	})
}
