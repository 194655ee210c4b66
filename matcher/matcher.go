package matcher

import (
	"github.com/bits-and-blooms/bitset"

	wbits "github.com/powellquiring/wordleguess/bitset"
	"github.com/powellquiring/wordleguess/word"
)

/*
letters[0][A] all words whose first letter is an A, [1] second letter is an A, ...
contains[A] all words with an A anywhere

a word is represented by its index into words
*/
type Matcher struct {
	words    []word.Word
	letters  [word.Length][word.Letters]*bitset.BitSet
	contains [word.Letters]*bitset.BitSet
}

// Requirement is a letter known to be in the word but not at any of the Forbidden slots
type Requirement struct {
	Letter    word.Letter
	Forbidden wbits.Positions
}

// Knowledge is everything learned about the secret so far
type Knowledge struct {
	Confirmed [word.Length]*word.Letter // nil when the slot is open
	Excluded  wbits.Letters
	Required  []Requirement
}

// ConfirmedElsewhere is the set of slots confirmed to a letter other than l
func (k *Knowledge) ConfirmedElsewhere(l word.Letter) wbits.Positions {
	var p wbits.Positions
	for i, c := range k.Confirmed {
		if c != nil && *c != l {
			p = p.With(i)
		}
	}
	return p
}

// Open is the set of slots where a required letter may still go
func (k *Knowledge) Open(r Requirement) wbits.Positions {
	return r.Forbidden.Union(k.ConfirmedElsewhere(r.Letter)).Complement()
}

// Known is every letter that has been excluded, required or confirmed
func (k *Knowledge) Known() wbits.Letters {
	known := k.Excluded
	for _, r := range k.Required {
		known = known.With(int(r.Letter))
	}
	for _, c := range k.Confirmed {
		if c != nil {
			known = known.With(int(*c))
		}
	}
	return known
}

// Match is the single word version of Matching
func Match(w word.Word, k *Knowledge) bool {
	for i, c := range k.Confirmed {
		if c != nil && w[i] != *c {
			return false
		}
	}
	if w.LetterSet().Intersect(k.Excluded) != 0 {
		return false
	}
	for _, r := range k.Required {
		open := k.Open(r)
		found := false
		for i := range open.All() {
			if w[i] == r.Letter {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func New(words []word.Word) *Matcher {
	ret := &Matcher{words: words}
	n := uint(len(words))
	for l := range word.Letters {
		ret.contains[l] = bitset.New(n)
		for i := range word.Length {
			ret.letters[i][l] = bitset.New(n)
		}
	}
	for w, wd := range words {
		for i, l := range wd {
			ret.letters[i][l].Set(uint(w))
			ret.contains[l].Set(uint(w))
		}
	}
	return ret
}

func (m *Matcher) Len() int {
	return len(m.words)
}

// Matching returns the words consistent with k in their original order.  The result is
// appended to buf which may alias the matcher's words, they are consumed in order.
func (m *Matcher) Matching(k *Knowledge, buf []word.Word) []word.Word {
	ret := bitset.New(uint(len(m.words)))
	for i := range m.words {
		ret.Set(uint(i))
	}
	// greens restrict the starting point to words with the matching letter
	for i, c := range k.Confirmed {
		if c != nil {
			ret.InPlaceIntersection(m.letters[i][*c])
		}
	}
	// excluded letters remove every word containing them
	for l := range k.Excluded.All() {
		ret.InPlaceDifference(m.contains[l])
	}
	// required letters must appear in at least one open slot
	inOpen := bitset.New(uint(len(m.words)))
	for _, r := range k.Required {
		inOpen.ClearAll()
		for i := range k.Open(r).All() {
			inOpen.InPlaceUnion(m.letters[i][r.Letter])
		}
		ret.InPlaceIntersection(inOpen)
	}
	indices := make([]uint, ret.Count())
	_, indices = ret.NextSetMany(0, indices)
	buf = buf[:0]
	for _, index := range indices {
		buf = append(buf, m.words[index])
	}
	return buf
}
