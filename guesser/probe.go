package guesser

import (
	"container/heap"

	"github.com/powellquiring/wordleguess/grade"
	"github.com/powellquiring/wordleguess/matcher"
	"github.com/powellquiring/wordleguess/word"
)

const (
	// probes are only considered for candidate counts in this range
	probeMinCandidates = 3
	probeMaxCandidates = word.Letters
	// number of ranked probes compared against the organic guess
	probeTop = 5
	// a probe must split the candidates into more buckets than this
	probeMinBuckets = 2
)

// MinHeap is a generic min-heap for use with container/heap
type MinHeap[T any] struct {
	data []T
	less func(a, b T) bool
}

func (h *MinHeap[T]) Len() int           { return len(h.data) }
func (h *MinHeap[T]) Less(i, j int) bool { return h.less(h.data[i], h.data[j]) }
func (h *MinHeap[T]) Swap(i, j int)      { h.data[i], h.data[j] = h.data[j], h.data[i] }

func (h *MinHeap[T]) Push(x any) {
	h.data = append(h.data, x.(T))
}

func (h *MinHeap[T]) Pop() any {
	n := len(h.data)
	item := h.data[n-1]
	h.data = h.data[0 : n-1]
	return item
}

func (h *MinHeap[T]) reset() {
	clear(h.data)
	h.data = h.data[:0]
}

// partition summarizes how a guess splits the candidates by feedback
type partition struct {
	buckets int
	largest int
	// spread is the sum over candidates of the size of their bucket, the expected
	// number of candidates left times the candidate count
	spread int
	// cost is the sum of bucket sizes to the fourth power, it punishes large buckets
	cost int
}

type probe struct {
	index  int // into the dictionary
	word   word.Word
	reuse  int
	unique bool
	partition
}

func lessProbe(a, b probe) bool {
	if a.reuse != b.reuse {
		return a.reuse < b.reuse
	}
	if a.buckets != b.buckets {
		return a.buckets > b.buckets
	}
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	if a.unique != b.unique {
		return a.unique
	}
	return a.index < b.index
}

// beats is true when p is at least as good as o in the worst case and strictly better
// on bucket count, largest bucket or spread, in that order
func (p partition) beats(o partition) bool {
	if p.largest > o.largest {
		return false
	}
	if p.buckets != o.buckets {
		return p.buckets > o.buckets
	}
	if p.largest != o.largest {
		return p.largest < o.largest
	}
	return p.spread < o.spread
}

// partitionScratch counts bucket sizes, touched remembers which counters to clear
type partitionScratch struct {
	counts  [word.FeedbackValues]int
	touched []word.WordFeedback
}

func (s *partitionScratch) partition(row []word.WordFeedback) partition {
	s.touched = s.touched[:0]
	for _, f := range row {
		if s.counts[f] == 0 {
			s.touched = append(s.touched, f)
		}
		s.counts[f]++
	}
	p := partition{buckets: len(s.touched)}
	for _, f := range s.touched {
		n := s.counts[f]
		s.counts[f] = 0
		p.largest = max(p.largest, n)
		p.spread += n * n
		p.cost += n * n * n * n
	}
	return p
}

func (g *Guesser) organicRow(buf []word.WordFeedback) []word.WordFeedback {
	buf = buf[:0]
	organic := g.candidates[0]
	for _, c := range g.candidates {
		buf = append(buf, grade.Grade(c, organic))
	}
	return buf
}

// selectProbe looks for a dictionary word that splits the candidates better than the
// first candidate does
func (g *Guesser) selectProbe() (word.Word, bool) {
	words := g.dict.Words()
	m := g.cfg.Evaluator.Many(words, g.candidates, &g.scratch)
	g.row = g.organicRow(g.row)
	organic := g.parts.partition(g.row)
	known := g.know.Known()

	g.ranked.reset()
	for i, w := range words {
		if g.cfg.HardMode && !matcher.Match(w, &g.know) {
			continue
		}
		part := g.parts.partition(m.Row(i))
		if part.buckets <= probeMinBuckets {
			continue
		}
		letters := w.LetterSet()
		g.ranked.data = append(g.ranked.data, probe{
			index:     i,
			word:      w,
			reuse:     letters.Intersect(known).Count(),
			unique:    letters.Count() == word.Length,
			partition: part,
		})
	}
	heap.Init(&g.ranked)
	for range min(probeTop, g.ranked.Len()) {
		p := heap.Pop(&g.ranked).(probe)
		if p.beats(organic) {
			g.narrate().
				Str("probe", p.word.String()).
				Str("organic", g.candidates[0].String()).
				Int("buckets", p.buckets).
				Int("organicBuckets", organic.buckets).
				Int("largest", p.largest).
				Int("organicLargest", organic.largest).
				Msg("probe beats first candidate")
			return p.word, true
		}
	}
	return word.Word{}, false
}
