package guesser

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powellquiring/wordleguess/dictionary"
	"github.com/powellquiring/wordleguess/grade"
	"github.com/powellquiring/wordleguess/word"
)

func W(s string) word.Word {
	return word.MustParse(s)
}

func L(c byte) word.Letter {
	l, err := word.LetterFromByte(c)
	if err != nil {
		panic(err)
	}
	return l
}

func round(t *testing.T, line string) word.Round {
	t.Helper()
	r, err := word.ParseRound(line)
	require.NoError(t, err)
	return r
}

func newGuesser() *Guesser {
	return New(dictionary.Default(), DefaultConfig(), nil)
}

func confirmedCount(g *Guesser) int {
	n := 0
	for _, c := range g.know.Confirmed {
		if c != nil {
			n++
		}
	}
	return n
}

func TestNewOrdersByFrequency(t *testing.T) {
	g := newGuesser()
	assert.Len(t, g.Candidates(), dictionary.Default().Len())
	first, ok := g.Suggestion()
	require.True(t, ok)
	assert.True(t, first.Unique())
}

func TestPigeonhole(t *testing.T) {
	g := newGuesser()
	require.NoError(t, g.Analyze(round(t, "ELBOW ?____")))
	require.NoError(t, g.Analyze(round(t, "DEBUG _?___")))
	assert.Nil(t, g.know.Confirmed[4])
	require.Len(t, g.know.Required, 1)
	assert.Equal(t, "{1,2}", g.know.Required[0].Forbidden.String())

	require.NoError(t, g.Analyze(round(t, "SHEEP __??_")))
	require.NotNil(t, g.know.Confirmed[4])
	assert.Equal(t, L('E'), *g.know.Confirmed[4])
	assert.Empty(t, g.know.Required)
}

// confirming B leaves A a single open slot, which only the drain pass notices
func TestPigeonholeCascade(t *testing.T) {
	g := newGuesser()
	require.NoError(t, g.Analyze(round(t, "ABCDE ??___")))
	require.NoError(t, g.Analyze(round(t, "BAFGH ??___")))
	require.NoError(t, g.Analyze(round(t, "FGABI __??_")))
	assert.Zero(t, confirmedCount(g))
	require.Len(t, g.know.Required, 2)

	require.NoError(t, g.Analyze(round(t, "JKBLM __?__")))
	require.NotNil(t, g.know.Confirmed[4])
	assert.Equal(t, L('B'), *g.know.Confirmed[4])
	require.NotNil(t, g.know.Confirmed[3])
	assert.Equal(t, L('A'), *g.know.Confirmed[3])
	assert.Empty(t, g.know.Required)
	assert.Equal(t, 2, confirmedCount(g))
}

func TestPigeonholeConfirmedElsewhere(t *testing.T) {
	g := newGuesser()
	require.NoError(t, g.Analyze(round(t, "STAMP +____")))
	require.NoError(t, g.Analyze(round(t, "BEGIN _?___")))
	require.NoError(t, g.Analyze(round(t, "ACHED ___?_")))
	assert.Nil(t, g.know.Confirmed[4])
	assert.Equal(t, "{3,5}", g.know.Open(g.know.Required[0]).String())

	require.NoError(t, g.Analyze(round(t, "TREND __?__")))
	require.NotNil(t, g.know.Confirmed[4])
	assert.Equal(t, L('E'), *g.know.Confirmed[4])
}

func TestContradiction(t *testing.T) {
	g := newGuesser()
	require.NoError(t, g.Analyze(round(t, "ABCDX ++++_")))
	err := g.Analyze(round(t, "XXXXE ____?"))
	assert.ErrorIs(t, err, ErrContradiction)

	g = newGuesser()
	require.NoError(t, g.Analyze(round(t, "CRATE +____")))
	assert.ErrorIs(t, g.Analyze(round(t, "BRINE +____")), ErrContradiction)
}

func TestExcludedLetterAlreadyKnown(t *testing.T) {
	g := newGuesser()
	require.NoError(t, g.Analyze(round(t, "CRATE ?____")))
	// a counting grader marks the second C excluded, it must stay required
	require.NoError(t, g.Analyze(round(t, "COCOA __?__")))
	assert.False(t, g.Excluded().Has(int(L('C'))))
	require.NotEmpty(t, g.know.Required)
	assert.Equal(t, L('C'), g.know.Required[0].Letter)
	assert.True(t, g.know.Required[0].Forbidden.Has(0))
	assert.True(t, g.know.Required[0].Forbidden.Has(2))

	require.NoError(t, g.Analyze(round(t, "SLATE ____+")))
	require.NoError(t, g.Analyze(round(t, "EERIE ____+")))
	assert.False(t, g.Excluded().Has(int(L('E'))))
}

func TestExcludedAndRequiredScenario(t *testing.T) {
	g := newGuesser()
	require.NoError(t, g.Analyze(round(t, "QZXJK _____")))
	require.NoError(t, g.Analyze(round(t, "SQZXJ ?____")))
	g.Prune(2)
	require.NotEmpty(t, g.Candidates())
	for _, w := range g.Candidates() {
		assert.NotEqual(t, L('S'), w[0], w.String())
		for _, c := range []byte("QZXJK") {
			assert.False(t, w.Contains(L(c)), w.String())
		}
	}
}

func TestPruneKeepsOrder(t *testing.T) {
	g := newGuesser()
	require.NoError(t, g.Analyze(round(t, "CRATE _____")))
	g.Prune(1)
	c := g.Candidates()
	require.Greater(t, len(c), probeMaxCandidates)
	for _, w := range c {
		assert.False(t, w.Contains(L('A')), w.String())
	}
	sorted := slices.Clone(c)
	dictionary.SortByFrequency(sorted)
	assert.Equal(t, sorted, c)
}

// play runs one honest game and checks the properties that must hold every turn
func play(t *testing.T, dict *dictionary.Dictionary, cfg Config, secret word.Word) State {
	t.Helper()
	gm := NewGame(New(dict, cfg, nil))
	confirmed := 0
	for !gm.State().Over() {
		guess, err := gm.Next()
		require.NoError(t, err, secret.String())
		state, err := gm.Submit(grade.Grade(secret, guess))
		require.NoError(t, err, secret.String())
		if state == Won {
			assert.Equal(t, secret, guess)
			break
		}
		require.Contains(t, gm.Guesser().Candidates(), secret, "turn %d", gm.Turn())
		n := confirmedCount(gm.Guesser())
		require.GreaterOrEqual(t, n, confirmed)
		confirmed = n
	}
	return gm.State()
}

func TestSecretPreservation(t *testing.T) {
	dict := dictionary.Default()
	won := 0
	played := 0
	for i := 0; i < dict.Len(); i += 11 {
		state := play(t, dict, DefaultConfig(), dict.At(i))
		require.Contains(t, []State{Won, Lost}, state)
		played++
		if state == Won {
			won++
		}
	}
	assert.Greater(t, float64(won)/float64(played), 0.7)
}

func TestSecretPreservationHardMode(t *testing.T) {
	dict := dictionary.Default()
	cfg := DefaultConfig()
	cfg.HardMode = true
	cfg.Evaluator = grade.Evaluator{Strategy: grade.Vector}
	for i := 5; i < dict.Len(); i += 37 {
		state := play(t, dict, cfg, dict.At(i))
		assert.Contains(t, []State{Won, Lost}, state)
	}
}

func TestProbeSoundness(t *testing.T) {
	g := newGuesser()
	g.candidates = word.MustParseAll("CATCH", "MATCH", "WATCH", "HATCH", "LATCH", "PATCH")
	dictionary.SortByFrequency(g.candidates)
	p, ok := g.selectProbe()
	require.True(t, ok)
	checkSound(t, g, p)

	r := rand.New(rand.NewPCG(1, 2))
	words := dictionary.Default().Words()
	for range 50 {
		n := probeMinCandidates + r.IntN(probeMaxCandidates-probeMinCandidates+1)
		g.candidates = g.candidates[:0]
		for _, i := range r.Perm(len(words))[:n] {
			g.candidates = append(g.candidates, words[i])
		}
		dictionary.SortByFrequency(g.candidates)
		if p, ok := g.selectProbe(); ok {
			checkSound(t, g, p)
		}
	}
}

func checkSound(t *testing.T, g *Guesser, p word.Word) {
	t.Helper()
	var s partitionScratch
	organic := s.partition(g.organicRow(nil))
	row := make([]word.WordFeedback, 0, len(g.candidates))
	for _, c := range g.candidates {
		row = append(row, grade.Grade(c, p))
	}
	probed := s.partition(row)
	assert.LessOrEqual(t, probed.largest, organic.largest, p.String())
	assert.True(t, probed.buckets > organic.buckets ||
		probed.largest < organic.largest ||
		probed.spread < organic.spread, p.String())
}

func TestProbeGoesFirst(t *testing.T) {
	g := newGuesser()
	// every ATCH word is a candidate, CATCH can not tell them apart
	require.NoError(t, g.Analyze(round(t, "BATCH _++++")))
	g.Prune(2)
	c := g.Candidates()
	require.NotEmpty(t, c)
	assert.NotEqual(t, "ATCH", c[0].String()[1:])
	for _, w := range c[1:] {
		assert.Equal(t, "ATCH", w.String()[1:])
	}
}

func TestPartition(t *testing.T) {
	var s partitionScratch
	p := s.partition([]word.WordFeedback{1, 1, 2, 7, 7, 7})
	assert.Equal(t, partition{buckets: 3, largest: 3, spread: 4 + 1 + 9, cost: 16 + 1 + 81}, p)
	assert.Equal(t, [word.FeedbackValues]int{}, s.counts)
}

func TestBeats(t *testing.T) {
	organic := partition{buckets: 3, largest: 3, spread: 14}
	assert.True(t, partition{buckets: 4, largest: 3, spread: 12}.beats(organic))
	assert.False(t, partition{buckets: 5, largest: 4, spread: 18}.beats(organic))
	assert.False(t, partition{buckets: 2, largest: 2, spread: 8}.beats(organic))
	assert.True(t, partition{buckets: 3, largest: 2, spread: 12}.beats(organic))
	assert.True(t, partition{buckets: 3, largest: 3, spread: 12}.beats(organic))
	assert.False(t, organic.beats(organic))
}

func TestRecycle(t *testing.T) {
	dict := dictionary.Default()
	g := New(dict, DefaultConfig(), nil)
	first := &g.Candidates()[0]
	buf := g.Recycle()
	assert.Empty(t, buf)
	g = New(dict, DefaultConfig(), buf)
	assert.Same(t, first, &g.Candidates()[0])
	assert.Len(t, g.Candidates(), dict.Len())
}

func TestRandomTopDeterministic(t *testing.T) {
	candidates := dictionary.Default().Words()
	a, b := NewRandomTop(42), NewRandomTop(42)
	for range 20 {
		w := a.Pick(candidates)
		assert.Equal(t, w, b.Pick(candidates))
		assert.Contains(t, candidates[:OpenerTop], w)
	}
	assert.Equal(t, candidates[0], a.Pick(candidates[:1]))
}
