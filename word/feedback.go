package word

import (
	"fmt"
	"strings"
)

// LetterFeedback is ordered Excluded < Required < Confirmed
type LetterFeedback uint8

const (
	Excluded LetterFeedback = iota
	Required
	Confirmed
)

func LetterFeedbackFromByte(b byte) (LetterFeedback, error) {
	switch b {
	case '_', '.', 'r', 'R', 'b', 'B':
		return Excluded, nil
	case '?', 'y', 'Y':
		return Required, nil
	case '+', 'g', 'G':
		return Confirmed, nil
	}
	return 0, fmt.Errorf("%w: symbol %q", ErrInvalidFeedback, b)
}

// String is the emoji tile
func (f LetterFeedback) String() string {
	switch f {
	case Excluded:
		return "⬜"
	case Required:
		return "🟨"
	case Confirmed:
		return "🟩"
	}
	panic(fmt.Sprintf("Can not parse LetterFeedback: %d", uint8(f)))
}

// Color is the single letter r, y or g
func (f LetterFeedback) Color() byte {
	return "ryg"[f]
}

// Symbol is the interactive input symbol _, ? or +
func (f LetterFeedback) Symbol() byte {
	return "_?+"[f]
}

// WordFeedback is the five slot feedback as a base 3 number, slot 0 most significant.
// All 243 values 0..242 are valid.
type WordFeedback uint8

const (
	FeedbackValues = 243
	AllConfirmed   = WordFeedback(FeedbackValues - 1)
)

var pow3 = [Length]WordFeedback{81, 27, 9, 3, 1}

func NewWordFeedback(slots [Length]LetterFeedback) WordFeedback {
	var ret WordFeedback
	for _, s := range slots {
		ret = ret*3 + WordFeedback(s)
	}
	return ret
}

func (f WordFeedback) Slot(i int) LetterFeedback {
	return LetterFeedback((f / pow3[i]) % 3)
}

func (f WordFeedback) Slots() [Length]LetterFeedback {
	var ret [Length]LetterFeedback
	for i := range ret {
		ret[i] = f.Slot(i)
	}
	return ret
}

func (f WordFeedback) Won() bool {
	return f == AllConfirmed
}

func (f WordFeedback) String() string {
	var sb strings.Builder
	for _, s := range f.Slots() {
		sb.WriteString(s.String())
	}
	return sb.String()
}

// Colors formats as rygrr
func (f WordFeedback) Colors() string {
	var b [Length]byte
	for i, s := range f.Slots() {
		b[i] = s.Color()
	}
	return string(b[:])
}

// Symbols formats as _?+__
func (f WordFeedback) Symbols() string {
	var b [Length]byte
	for i, s := range f.Slots() {
		b[i] = s.Symbol()
	}
	return string(b[:])
}

// ParseFeedback reads five symbols, either _?+ or ryg
func ParseFeedback(s string) (WordFeedback, error) {
	if len(s) != Length {
		return 0, fmt.Errorf("%w: %q must have %d symbols", ErrInvalidFeedback, s, Length)
	}
	var slots [Length]LetterFeedback
	for i := range Length {
		f, err := LetterFeedbackFromByte(s[i])
		if err != nil {
			return 0, err
		}
		slots[i] = f
	}
	return NewWordFeedback(slots), nil
}

// Clue is one guessed letter and its feedback
type Clue struct {
	Letter   Letter
	Feedback LetterFeedback
}

// Round is the feedback for one guess, slot by slot
type Round [Length]Clue

func RoundOf(guess Word, f WordFeedback) Round {
	var r Round
	for i := range r {
		r[i] = Clue{Letter: guess[i], Feedback: f.Slot(i)}
	}
	return r
}

func (r Round) Word() Word {
	var w Word
	for i, c := range r {
		w[i] = c.Letter
	}
	return w
}

func (r Round) Feedback() WordFeedback {
	var slots [Length]LetterFeedback
	for i, c := range r {
		slots[i] = c.Feedback
	}
	return NewWordFeedback(slots)
}

// ParseRound reads "crate +?__+" style input, the separator is optional
func ParseRound(line string) (Round, error) {
	fields := strings.Fields(line)
	var guess, fb string
	switch len(fields) {
	case 1:
		if len(fields[0]) != 2*Length {
			return Round{}, fmt.Errorf("%w: %q is not a word followed by feedback", ErrInvalidFeedback, line)
		}
		guess, fb = fields[0][:Length], fields[0][Length:]
	case 2:
		guess, fb = fields[0], fields[1]
	default:
		return Round{}, fmt.Errorf("%w: %q is not a word followed by feedback", ErrInvalidFeedback, line)
	}
	w, err := Parse(guess)
	if err != nil {
		return Round{}, err
	}
	f, err := ParseFeedback(fb)
	if err != nil {
		return Round{}, err
	}
	return RoundOf(w, f), nil
}
