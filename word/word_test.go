package word

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	for _, s := range []string{"CRATE", "REACT", "ZZZZZ", "AAAAA", "QUERY"} {
		w, err := Parse(s)
		require.NoError(t, err)
		b := w.Bytes()
		assert.Equal(t, s, string(b[:]))
		assert.Equal(t, s, w.String())
	}
}

func TestLowercase(t *testing.T) {
	w, err := Parse("crate")
	require.NoError(t, err)
	assert.Equal(t, MustParse("CRATE"), w)
}

func TestInvalid(t *testing.T) {
	for _, s := range []string{"", "CRAT", "CRATES", "CR4TE", "CRA E", "CRÄTE", "crat\n"} {
		_, err := Parse(s)
		assert.ErrorIs(t, err, ErrInvalidWord, s)
	}
	assert.Panics(t, func() { MustParse("nope") })
}

func TestLetter(t *testing.T) {
	l, err := LetterFromByte('c')
	require.NoError(t, err)
	assert.Equal(t, 2, l.Index())
	assert.Equal(t, "C", l.String())
	_, err = LetterFromByte('[')
	assert.ErrorIs(t, err, ErrInvalidWord)
}

func TestUnique(t *testing.T) {
	assert.True(t, MustParse("CRATE").Unique())
	assert.False(t, MustParse("SPEED").Unique())
	assert.Equal(t, "ACERT", MustParse("REACT").LetterSet().String())
	assert.True(t, MustParse("REACT").Contains(MustParse("TTTTT")[0]))
}

func TestWordFeedback(t *testing.T) {
	assert := assert.New(t)
	fb := NewWordFeedback([Length]LetterFeedback{Required, Required, Confirmed, Required, Required})
	assert.Equal(WordFeedback(1*81+1*27+2*9+1*3+1), fb)
	assert.Equal(Confirmed, fb.Slot(2))
	assert.Equal("yygyy", fb.Colors())
	assert.Equal("??+??", fb.Symbols())
	assert.False(fb.Won())
	assert.True(NewWordFeedback([Length]LetterFeedback{Confirmed, Confirmed, Confirmed, Confirmed, Confirmed}).Won())
	assert.Equal(WordFeedback(0), NewWordFeedback([Length]LetterFeedback{}))

	for v := range FeedbackValues {
		f := WordFeedback(v)
		assert.Equal(f, NewWordFeedback(f.Slots()))
	}
}

func TestParseFeedback(t *testing.T) {
	f, err := ParseFeedback("_?+ry")
	require.NoError(t, err)
	assert.Equal(t, [Length]LetterFeedback{Excluded, Required, Confirmed, Excluded, Required}, f.Slots())
	_, err = ParseFeedback("_?+r")
	assert.ErrorIs(t, err, ErrInvalidFeedback)
	_, err = ParseFeedback("_?+rx")
	assert.ErrorIs(t, err, ErrInvalidFeedback)
}

func TestParseRound(t *testing.T) {
	for _, line := range []string{"react ??+??", "REACT??+??", "  react   yygyy "} {
		r, err := ParseRound(line)
		require.NoError(t, err, line)
		assert.Equal(t, MustParse("REACT"), r.Word())
		assert.Equal(t, Clue{Letter: MustParse("AAAAA")[0], Feedback: Confirmed}, r[2])
		assert.Equal(t, "??+??", r.Feedback().Symbols())
	}
	_, err := ParseRound("react")
	assert.ErrorIs(t, err, ErrInvalidFeedback)
	_, err = ParseRound("re4ct ??+??")
	assert.ErrorIs(t, err, ErrInvalidWord)
	_, err = ParseRound("react ??+? ?")
	assert.Error(t, err)
}
