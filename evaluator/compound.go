package evaluator

import (
	"math/bits"

	"github.com/yifanzh/gomoku/board"
	"github.com/yifanzh/gomoku/pattern"
)

// Compound is a composite threat: two single-pattern occurrences
// keyed on the same cell along distinct directions. Composites are
// derived from the per-direction presence bits rather than matched
// directly, which keeps the pattern table small.
type Compound uint8

const (
	DoubleThree Compound = iota
	FourThree
	DoubleFour

	NumCompounds
)

// BaseScore is the shared score a composite contributes, once per
// cell and favour it is present on. It sits between a live three and
// a dead four: a fork forces the defence even when neither component
// alone would.
const BaseScore = 20000

func (c Compound) String() string {
	switch c {
	case DoubleThree:
		return "DoubleThree"
	case FourThree:
		return "FourThree"
	default:
		return "DoubleFour"
	}
}

// compoundComponents lists the single-pattern types whose presence
// changes require re-deriving composites at a cell.
var compoundComponents = []pattern.Type{pattern.LiveThree, pattern.DeadFour, pattern.LiveFour}

func isCompoundComponent(t pattern.Type) bool {
	return t == pattern.LiveThree || t == pattern.DeadFour || t == pattern.LiveFour
}

// compoundPresent decides presence from the favour's direction masks:
// fours covers DeadFour and LiveFour, threes covers LiveThree.
func compoundPresent(c Compound, fours, threes uint32) bool {
	switch c {
	case DoubleThree:
		return bits.OnesCount32(threes) >= 2
	case FourThree:
		return fours != 0 && threes != 0 && bits.OnesCount32(fours|threes) >= 2
	default:
		return bits.OnesCount32(fours) >= 2
	}
}

// refreshCompounds re-derives every composite at the cell for the
// favour and applies BaseScore on presence flips. Idempotent, so
// duplicate dirty entries for one move are harmless.
func (e *Evaluator) refreshCompounds(cell board.Position, favour board.Player) {
	fours := e.patternDist[pattern.DeadFour][cell].DirMask(favour) |
		e.patternDist[pattern.LiveFour][cell].DirMask(favour)
	threes := e.patternDist[pattern.LiveThree][cell].DirMask(favour)

	for c := Compound(0); c < NumCompounds; c++ {
		rec := &e.compoundDist[c][cell]
		had := rec.Count(favour) > 0
		present := compoundPresent(c, fours, threes)
		if present == had {
			continue
		}
		if present {
			rec.AddCount(favour, 1)
			e.addScore(cell, favour, BaseScore)
		} else {
			rec.AddCount(favour, -1)
			e.addScore(cell, favour, -BaseScore)
		}
	}
}
