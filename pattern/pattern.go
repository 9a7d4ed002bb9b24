// Package pattern defines the threat patterns of free-style gomoku and
// a multi-pattern matcher for finding them in line strings.
package pattern

import (
	"strings"
	"sync"

	"github.com/yifanzh/gomoku/board"
)

// Line glyphs. Every board line is projected to a string over this
// alphabet; '?' is the sentinel padded onto both ends of a line.
const (
	Empty      byte = '-'
	BlackStone byte = 'x'
	WhiteStone byte = 'o'
	Edge       byte = '?'
)

const (
	// MaxPatternLen bounds every concrete pattern string.
	MaxPatternLen = 7
	// BlockSize is the side of the density kernel window.
	BlockSize = 2*3 + 1
	// TargetLen is the widest stretch of a line one move can influence.
	TargetLen = 2*MaxPatternLen - 1
)

// GlyphOf returns the line glyph for a cell state.
func GlyphOf(p board.Player) byte {
	switch p {
	case board.Black:
		return BlackStone
	case board.White:
		return WhiteStone
	default:
		return Empty
	}
}

// Type ranks threat patterns in ascending strength. "Live" shapes have
// both flanks open, "Dead" ones are blocked on one side.
type Type uint8

const (
	DeadOne Type = iota
	LiveOne
	DeadTwo
	LiveTwo
	DeadThree
	LiveThree
	DeadFour
	LiveFour
	Five

	NumTypes
)

var typeNames = [NumTypes]string{
	"DeadOne", "LiveOne", "DeadTwo", "LiveTwo",
	"DeadThree", "LiveThree", "DeadFour", "LiveFour", "Five",
}

func (t Type) String() string {
	if t < NumTypes {
		return typeNames[t]
	}
	return "Unknown"
}

// Pattern is one concrete matchable threat shape: the glyph string as
// it appears on a line, the side it favours, its type, its score, and
// the offset within Str of the key slot — the cell the pattern is
// tallied on, usually the critical empty square whose filling would
// realise the threat.
type Pattern struct {
	Str     string
	Favour  board.Player
	Type    Type
	Score   int
	KeySlot int
}

// Proto is a pattern prototype before expansion. Prototypes are
// written from Black's point of view, left to right, with:
//
//	x  favoured stone
//	o  blocking stone (the builder also admits the board edge)
//	-  cell that must be empty
//	^  cell that must be empty; marks the key slot
//	_  cell that must be empty or the board edge
//
// The builder generates the mirrored and the colour-reversed variants
// automatically.
type Proto struct {
	Str   string
	Type  Type
	Score int
}

// protoTable is the shipped threat table. Shapes and relative weights
// follow the usual free-style taxonomy: a straight live three scores
// above a broken one, blocked shapes fall off sharply, and anything
// below a three is tie-breaking noise.
var protoTable = []Proto{
	{"xxxxx", Five, 1000000},

	{"-xxxx-", LiveFour, 100000},

	{"oxxxx^", DeadFour, 15000},
	{"x^xxx", DeadFour, 12000},
	{"xx^xx", DeadFour, 12000},

	{"-xxx^-", LiveThree, 2500},
	{"-x^xx-", LiveThree, 2000},

	{"oxxx^-", DeadThree, 400},
	{"ox^xx-", DeadThree, 400},
	{"oxx^x-", DeadThree, 400},
	{"o^xxx-", DeadThree, 300},

	{"-xx^-", LiveTwo, 200},
	{"-x^x-", LiveTwo, 150},

	{"oxx^-", DeadTwo, 60},
	{"ox^x-", DeadTwo, 60},
	{"o^xx-", DeadTwo, 50},

	{"-x^__", LiveOne, 30},
	{"ox^__", DeadOne, 10},
}

// DefaultTable returns a copy of the shipped prototype table.
func DefaultTable() []Proto {
	table := make([]Proto, len(protoTable))
	copy(table, protoTable)
	return table
}

// ApplyScoreOverrides returns a copy of protos with per-type scores
// replaced. Keys are Type names ("LiveThree"); unknown keys are
// ignored.
func ApplyScoreOverrides(protos []Proto, overrides map[string]int) []Proto {
	out := make([]Proto, len(protos))
	copy(out, protos)
	for i := range out {
		if score, ok := overrides[out[i].Type.String()]; ok {
			out[i].Score = score
		}
	}
	return out
}

var (
	defaultOnce     sync.Once
	defaultSearcher *Searcher
)

// Default returns the process-wide searcher built from the shipped
// table.
func Default() *Searcher {
	defaultOnce.Do(func() {
		defaultSearcher = NewSearcher(protoTable)
	})
	return defaultSearcher
}

func reverseString(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

func swapColours(s string) string {
	return strings.Map(func(r rune) rune {
		switch byte(r) {
		case BlackStone:
			return rune(WhiteStone)
		case WhiteStone:
			return rune(BlackStone)
		}
		return r
	}, s)
}

// keySlotOf locates the key slot: the '^' marker if present, else the
// favoured stone closest to the pattern centre.
func keySlotOf(s string, favour board.Player) int {
	if idx := strings.IndexByte(s, '^'); idx >= 0 {
		return idx
	}
	g := GlyphOf(favour)
	best, bestDist := 0, int(^uint(0)>>1)
	for i := 0; i < len(s); i++ {
		if s[i] != g {
			continue
		}
		d := 2*i - (len(s) - 1)
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
