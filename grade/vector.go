package grade

import (
	"github.com/powellquiring/wordleguess/word"
)

/*
The vector strategy grades all five slots at once.  A word is packed into a uint64 with
one byte lane per slot holding letter+1 (lanes 5..7 are zero).  Equal letters leave a
zero lane in secret^guess.  Lane values are below 0x80 so adding 0x7f to every lane sets
the lane's high bit exactly when the lane is non zero, without carrying into the next lane.
The five high bits are gathered into a 5 bit confirmed mask with one multiply.

Presence is tested against the secret's 26 bit letter mask.  The confirmed and present masks
index a table of the 1024 possible feedback values.
*/

const (
	lanesLow7   = 0x7f7f7f7f7f7f7f7f
	lanesHigh5  = 0x0000008080808080
	gatherBytes = 0x0102040810204080
)

type packed struct {
	lanes   uint64
	letters uint32
	word    word.Word
}

func pack(w word.Word) packed {
	var p packed
	for i, l := range w {
		p.lanes |= uint64(l+1) << (8 * i)
		p.letters |= 1 << l
	}
	p.word = w
	return p
}

// confirmedMask has bit i set when slot i matches
func confirmedMask(secret, guess uint64) uint {
	x := secret ^ guess
	zero := ^(x + lanesLow7) & lanesHigh5
	return uint(((zero >> 7) * gatherBytes) >> 56)
}

// presentMask has bit i set when the letter of guess slot i is anywhere in secret
func presentMask(secretLetters uint32, guess word.Word) uint {
	return uint(secretLetters>>guess[0]&1) |
		uint(secretLetters>>guess[1]&1)<<1 |
		uint(secretLetters>>guess[2]&1)<<2 |
		uint(secretLetters>>guess[3]&1)<<3 |
		uint(secretLetters>>guess[4]&1)<<4
}

var feedbackTable = func() [1 << (2 * word.Length)]word.WordFeedback {
	var t [1 << (2 * word.Length)]word.WordFeedback
	for confirmed := range 1 << word.Length {
		for present := range 1 << word.Length {
			var slots [word.Length]word.LetterFeedback
			for i := range word.Length {
				switch {
				case confirmed&(1<<i) != 0:
					slots[i] = word.Confirmed
				case present&(1<<i) != 0:
					slots[i] = word.Required
				}
			}
			t[confirmed<<word.Length|present] = word.NewWordFeedback(slots)
		}
	}
	return t
}()

func gradePacked(secret, guess packed) word.WordFeedback {
	return feedbackTable[confirmedMask(secret.lanes, guess.lanes)<<word.Length|presentMask(secret.letters, guess.word)]
}

func vector(guesses, words []word.Word, out []word.WordFeedback) {
	secrets := make([]packed, len(words))
	for i, w := range words {
		secrets[i] = pack(w)
	}
	i := 0
	for _, g := range guesses {
		pg := pack(g)
		for _, s := range secrets {
			out[i] = gradePacked(s, pg)
			i++
		}
	}
}
