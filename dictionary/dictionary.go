package dictionary

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	mapset "github.com/deckarep/golang-set"

	"github.com/powellquiring/wordleguess/word"
)

var ErrEmpty = errors.New("dictionary has no words")

//go:embed words.txt
var embeddedWords string

// Dictionary is the validated, frequency ordered word list.  It is never modified after Load.
type Dictionary struct {
	words       []word.Word
	wordToIndex map[word.Word]int
}

var (
	defaultOnce sync.Once
	defaultDict *Dictionary
)

// Default is the embedded word list, loaded once
func Default() *Dictionary {
	defaultOnce.Do(func() {
		d, err := Load(strings.NewReader(embeddedWords))
		if err != nil {
			panic("embedded word list: " + err.Error())
		}
		defaultDict = d
	})
	return defaultDict
}

// Open loads a word list file
func Open(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Load reads one word per line.  Blank lines and lines starting with # are skipped,
// duplicates are dropped and the result is sorted by SortByFrequency.
func Load(r io.Reader) (*Dictionary, error) {
	seen := mapset.NewThreadUnsafeSet()
	words := []word.Word{}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		s := strings.TrimSpace(scanner.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		w, err := word.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if seen.Add(w) {
			words = append(words, w)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return New(words)
}

// New takes ownership of words, which must already be unique
func New(words []word.Word) (*Dictionary, error) {
	if len(words) == 0 {
		return nil, ErrEmpty
	}
	SortByFrequency(words)
	ret := &Dictionary{words: words, wordToIndex: make(map[word.Word]int, len(words))}
	for i, w := range words {
		if _, ok := ret.wordToIndex[w]; ok {
			return nil, fmt.Errorf("duplicate word: %s", w)
		}
		ret.wordToIndex[w] = i
	}
	return ret, nil
}

func (d *Dictionary) Len() int {
	return len(d.words)
}

// Words is the ordered list.  Callers must not modify it.
func (d *Dictionary) Words() []word.Word {
	return d.words
}

func (d *Dictionary) At(i int) word.Word {
	return d.words[i]
}

func (d *Dictionary) Index(w word.Word) (int, bool) {
	i, ok := d.wordToIndex[w]
	return i, ok
}

func (d *Dictionary) Contains(w word.Word) bool {
	_, ok := d.wordToIndex[w]
	return ok
}

// Candidates copies the ordered words into buf, reusing its storage
func (d *Dictionary) Candidates(buf []word.Word) []word.Word {
	return append(buf[:0], d.words...)
}

// Frequency is the count of each letter at each position
type Frequency [word.Length][word.Letters]int

func CountFrequency(words []word.Word) *Frequency {
	var f Frequency
	for _, w := range words {
		for i, l := range w {
			f[i][l]++
		}
	}
	return &f
}

func (f *Frequency) Score(w word.Word) int {
	score := 0
	for i, l := range w {
		score += f[i][l]
	}
	return score
}

// SortByFrequency orders words by the sum of their positional letter frequencies,
// highest first, with the words of five different letters ahead of the rest.
// Frequencies are counted over words itself.  Ties keep their order.
func SortByFrequency(words []word.Word) {
	f := CountFrequency(words)
	type scored struct {
		w      word.Word
		score  int
		unique bool
	}
	s := make([]scored, len(words))
	for i, w := range words {
		s[i] = scored{w, f.Score(w), w.Unique()}
	}
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].unique != s[j].unique {
			return s[i].unique
		}
		return s[i].score > s[j].score
	})
	for i := range s {
		words[i] = s[i].w
	}
}
