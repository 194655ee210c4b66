package bitset

import (
	"iter"
	"math/bits"
	"strconv"
	"strings"
)

// Slots is the number of positions in a word
const Slots = 5

// allPositions has a bit for every slot
const allPositions Positions = 1<<Slots - 1

// Positions is a set of slot indices 0..4
type Positions uint8

func PositionOf(i int) Positions {
	if i < 0 || i >= Slots {
		panic("position out of range: " + strconv.Itoa(i))
	}
	return 1 << i
}

func (p Positions) Has(i int) bool {
	return p&PositionOf(i) != 0
}

func (p Positions) With(i int) Positions {
	return p | PositionOf(i)
}

func (p Positions) Union(o Positions) Positions {
	return p | o
}

// Complement within the five slots
func (p Positions) Complement() Positions {
	return ^p & allPositions
}

func (p Positions) Count() int {
	return bits.OnesCount8(uint8(p))
}

func (p Positions) Empty() bool {
	return p == 0
}

// Single returns the only slot in the set
func (p Positions) Single() (int, bool) {
	if p.Count() != 1 {
		return 0, false
	}
	return bits.TrailingZeros8(uint8(p)), true
}

// All iterates the slots in ascending order
func (p Positions) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for v := uint8(p); v != 0; v &= v - 1 {
			if !yield(bits.TrailingZeros8(v)) {
				return
			}
		}
	}
}

// String is 1 based: {1,3}
func (p Positions) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	sep := ""
	for i := range p.All() {
		sb.WriteString(sep)
		sb.WriteString(strconv.Itoa(i + 1))
		sep = ","
	}
	sb.WriteByte('}')
	return sb.String()
}

// LetterCount is the size of the alphabet
const LetterCount = 26

// Letters is a set of letter ordinals 0..25, iteration is alphabetical
type Letters uint32

func (l Letters) Has(i int) bool {
	return l&(1<<i) != 0
}

func (l Letters) With(i int) Letters {
	if i < 0 || i >= LetterCount {
		panic("letter out of range: " + strconv.Itoa(i))
	}
	return l | 1<<i
}

func (l Letters) Without(i int) Letters {
	return l &^ (1 << i)
}

func (l Letters) Union(o Letters) Letters {
	return l | o
}

func (l Letters) Intersect(o Letters) Letters {
	return l & o
}

func (l Letters) Count() int {
	return bits.OnesCount32(uint32(l))
}

func (l Letters) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for v := uint32(l); v != 0; v &= v - 1 {
			if !yield(bits.TrailingZeros32(v)) {
				return
			}
		}
	}
}

func (l Letters) String() string {
	var sb strings.Builder
	for i := range l.All() {
		sb.WriteByte(byte('A' + i))
	}
	return sb.String()
}
