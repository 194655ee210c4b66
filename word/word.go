package word

import (
	"errors"
	"fmt"

	"github.com/powellquiring/wordleguess/bitset"
)

// Length is the number of letters in every word
const Length = 5

var (
	ErrInvalidWord     = errors.New("invalid word")
	ErrInvalidFeedback = errors.New("invalid feedback")
)

// Letter is the ordinal of an uppercase ASCII letter, A=0 .. Z=25
type Letter uint8

const Letters = 26

func LetterFromByte(b byte) (Letter, error) {
	switch {
	case b >= 'A' && b <= 'Z':
		return Letter(b - 'A'), nil
	case b >= 'a' && b <= 'z':
		return Letter(b - 'a'), nil
	}
	return 0, fmt.Errorf("%w: byte %q is not a letter", ErrInvalidWord, b)
}

// Index is the stable 0..25 ordinal
func (l Letter) Index() int {
	return int(l)
}

func (l Letter) Byte() byte {
	return byte(l) + 'A'
}

func (l Letter) String() string {
	return string(l.Byte())
}

// Word is a validated five letter word.  The zero value is "AAAAA".
type Word [Length]Letter

// FromBytes validates raw bytes, case insensitive
func FromBytes(b []byte) (Word, error) {
	var w Word
	if len(b) != Length {
		return w, fmt.Errorf("%w: %q has %d letters", ErrInvalidWord, b, len(b))
	}
	for i, c := range b {
		l, err := LetterFromByte(c)
		if err != nil {
			return Word{}, fmt.Errorf("%w: %q", ErrInvalidWord, b)
		}
		w[i] = l
	}
	return w, nil
}

func Parse(s string) (Word, error) {
	return FromBytes([]byte(s))
}

// MustParse is for literals known to be valid
func MustParse(s string) Word {
	w, err := Parse(s)
	if err != nil {
		panic(err.Error())
	}
	return w
}

func MustParseAll(ss ...string) []Word {
	ret := make([]Word, 0, len(ss))
	for _, s := range ss {
		ret = append(ret, MustParse(s))
	}
	return ret
}

func (w Word) Bytes() [Length]byte {
	var b [Length]byte
	for i, l := range w {
		b[i] = l.Byte()
	}
	return b
}

func (w Word) String() string {
	b := w.Bytes()
	return string(b[:])
}

func (w Word) Contains(l Letter) bool {
	for _, c := range w {
		if c == l {
			return true
		}
	}
	return false
}

// LetterSet is the set of distinct letters in the word
func (w Word) LetterSet() bitset.Letters {
	var s bitset.Letters
	for _, l := range w {
		s = s.With(int(l))
	}
	return s
}

// Unique is true when all five letters are different
func (w Word) Unique() bool {
	return w.LetterSet().Count() == Length
}

func Strings(words []Word) []string {
	ret := make([]string, 0, len(words))
	for _, w := range words {
		ret = append(ret, w.String())
	}
	return ret
}
