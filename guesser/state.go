package guesser

import (
	"errors"
	"fmt"
	"slices"

	"github.com/powellquiring/wordleguess/bitset"
	"github.com/powellquiring/wordleguess/matcher"
	"github.com/powellquiring/wordleguess/word"
)

// ErrContradiction means the feedback received so far can not describe any word
var ErrContradiction = errors.New("contradictory feedback")

func compareRequirement(r matcher.Requirement, l word.Letter) int {
	return int(r.Letter) - int(l)
}

func (g *Guesser) required(l word.Letter) (int, bool) {
	return slices.BinarySearchFunc(g.know.Required, l, compareRequirement)
}

func (g *Guesser) confirm(slot int, l word.Letter) error {
	if c := g.know.Confirmed[slot]; c != nil {
		if *c != l {
			return fmt.Errorf("%w: slot %d is %s, can not also be %s", ErrContradiction, slot+1, *c, l)
		}
		return nil
	}
	g.know.Confirmed[slot] = &l
	g.know.Excluded = g.know.Excluded.Without(int(l))
	g.narrate().Str("letter", l.String()).Int("slot", slot+1).Msg("confirmed")
	return nil
}

// pigeonhole promotes the required letter at index i to confirmed when only one
// slot is left for it
func (g *Guesser) pigeonhole(i int) (bool, error) {
	r := g.know.Required[i]
	possible := g.know.Open(r)
	if possible.Empty() {
		return false, fmt.Errorf("%w: no slot left for %s", ErrContradiction, r.Letter)
	}
	slot, ok := possible.Single()
	if !ok {
		return false, nil
	}
	g.narrate().Str("letter", r.Letter.String()).Int("slot", slot+1).Msg("only one slot left")
	if err := g.confirm(slot, r.Letter); err != nil {
		return false, err
	}
	g.know.Required = slices.Delete(g.know.Required, i, i+1)
	return true, nil
}

func (g *Guesser) exclude(slot int, l word.Letter) {
	if i, ok := g.required(l); ok {
		// feedback from a counting grader, the letter is in the word but not here
		g.know.Required[i].Forbidden = g.know.Required[i].Forbidden.With(slot)
		return
	}
	for _, c := range g.know.Confirmed {
		if c != nil && *c == l {
			return
		}
	}
	if !g.know.Excluded.Has(int(l)) {
		g.narrate().Str("letter", l.String()).Msg("excluded")
	}
	g.know.Excluded = g.know.Excluded.With(int(l))
}

func (g *Guesser) require(slot int, l word.Letter) error {
	g.know.Excluded = g.know.Excluded.Without(int(l))
	i, ok := g.required(l)
	if !ok {
		g.know.Required = slices.Insert(g.know.Required, i, matcher.Requirement{Letter: l})
		g.narrate().Str("letter", l.String()).Msg("required")
	}
	g.know.Required[i].Forbidden = g.know.Required[i].Forbidden.With(slot)
	_, err := g.pigeonhole(i)
	return err
}

// Analyze folds one round of feedback into the constraints
func (g *Guesser) Analyze(round word.Round) error {
	guess := round.Word()
	if !round.Feedback().Won() {
		g.candidates = slices.DeleteFunc(g.candidates, func(w word.Word) bool { return w == guess })
	}
	for slot, clue := range round {
		switch clue.Feedback {
		case word.Excluded:
			g.exclude(slot, clue.Letter)
		case word.Required:
			if err := g.require(slot, clue.Letter); err != nil {
				return err
			}
		case word.Confirmed:
			if err := g.confirm(slot, clue.Letter); err != nil {
				return err
			}
			if i, ok := g.required(clue.Letter); ok {
				g.know.Required = slices.Delete(g.know.Required, i, i+1)
			}
		}
	}
	return g.drain()
}

// drain repeats pigeonhole deduction until a pass changes nothing
func (g *Guesser) drain() error {
	for {
		promoted := false
		for i := 0; i < len(g.know.Required); i++ {
			p, err := g.pigeonhole(i)
			if err != nil {
				return err
			}
			if p {
				promoted = true
				break
			}
		}
		if !promoted {
			return nil
		}
	}
}

// Knowledge is a copy of the constraints learned so far
func (g *Guesser) Knowledge() matcher.Knowledge {
	k := g.know
	k.Required = slices.Clone(g.know.Required)
	return k
}

// Excluded is the set of letters known to be absent
func (g *Guesser) Excluded() bitset.Letters {
	return g.know.Excluded
}

// ConfirmedWord is the secret once every slot is confirmed
func (g *Guesser) ConfirmedWord() (word.Word, bool) {
	var w word.Word
	for i, c := range g.know.Confirmed {
		if c == nil {
			return w, false
		}
		w[i] = *c
	}
	return w, true
}
