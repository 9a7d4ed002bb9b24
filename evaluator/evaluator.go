// Package evaluator maintains an incrementally updated appraisal of a
// gomoku position: per-cell threat-pattern distributions, composite
// threats, score vectors, and a stone-density field, all kept in
// lockstep with the board across apply and revert.
package evaluator

import (
	"github.com/yifanzh/gomoku/board"
	"github.com/yifanzh/gomoku/boardmap"
	"github.com/yifanzh/gomoku/pattern"
)

// densityRadius is the reach of the density kernel; weights fall off
// linearly with Chebyshev distance.
const densityRadius = (pattern.BlockSize - 1) / 2

// side maps a colour to a two-slot array index, Black first.
func side(p board.Player) int {
	if p == board.Black {
		return 0
	}
	return 1
}

type dirtyKey struct {
	cell   board.Position
	favour board.Player
}

// Evaluator owns the board it scores. All mutation flows through
// ApplyMove and RevertMoves; each move re-scans only the four lines
// crossing it, so the cost is independent of game length. Not safe
// for concurrent writes; clone one per worker instead.
type Evaluator struct {
	bmap     *boardmap.BoardMap
	searcher *pattern.Searcher

	patternDist  [pattern.NumTypes][board.BoardSize]Record
	compoundDist [NumCompounds][board.BoardSize]Record
	scores       [NumGroups][board.BoardSize]int
	density      [2][board.BoardSize]int
	fives        [2]int

	dirty []dirtyKey
}

// New builds an evaluator over an empty board using the shared
// default pattern searcher.
func New() *Evaluator {
	return NewWithSearcher(pattern.Default())
}

// NewWithSearcher is New with a caller-supplied pattern table.
func NewWithSearcher(s *pattern.Searcher) *Evaluator {
	return &Evaluator{
		bmap:     boardmap.New(),
		searcher: s,
	}
}

// Board exposes the driven board. Read-only: mutating it directly
// desynchronises every distribution.
func (e *Evaluator) Board() *board.Board {
	return e.bmap.Board()
}

// Map exposes the underlying board map, mainly for its hash and
// history accessors.
func (e *Evaluator) Map() *boardmap.BoardMap {
	return e.bmap
}

// ApplyMove plays move, returning the board's verdict: the next side
// to move, None when the move ends the game, or the current side
// unchanged when the move is invalid (in which case nothing moved).
func (e *Evaluator) ApplyMove(move board.Position) board.Player {
	prev := e.bmap.Board().CurPlayer()
	result := e.bmap.ApplyMove(move)
	if result == prev {
		return result
	}
	e.updateLines(move, pattern.Empty, pattern.GlyphOf(prev))
	e.addDensity(move, prev, +1)
	return result
}

// RevertMove undoes the most recent move.
func (e *Evaluator) RevertMove() board.Player {
	return e.RevertMoves(1)
}

// RevertMoves undoes up to count moves in LIFO order and returns the
// side then to move.
func (e *Evaluator) RevertMoves(count int) board.Player {
	for i := 0; i < count; i++ {
		move, owner, ok := e.bmap.RevertLast()
		if !ok {
			break
		}
		e.updateLines(move, pattern.GlyphOf(owner), pattern.Empty)
		e.addDensity(move, owner, -1)
	}
	return e.bmap.Board().CurPlayer()
}

// CheckGameEnd reports whether the position is terminal: a five on
// the board for either colour, or no empty cell left.
func (e *Evaluator) CheckGameEnd() bool {
	return e.fives[0] > 0 || e.fives[1] > 0 ||
		e.bmap.Board().Count(board.None) == 0
}

// Reset restores the empty position, reusing allocations.
func (e *Evaluator) Reset() {
	e.bmap.Reset()
	e.patternDist = [pattern.NumTypes][board.BoardSize]Record{}
	e.compoundDist = [NumCompounds][board.BoardSize]Record{}
	e.scores = [NumGroups][board.BoardSize]int{}
	e.density = [2][board.BoardSize]int{}
	e.fives = [2]int{}
	e.dirty = e.dirty[:0]
}

// SyncWithBoard adopts the configuration of src and rebuilds every
// distribution from scratch. Pattern state depends only on the final
// configuration, so the unknown true move order does not matter.
func (e *Evaluator) SyncWithBoard(src *board.Board) {
	e.Reset()
	e.bmap.SyncWithBoard(src)

	e.dirty = e.dirty[:0]
	for i := 0; i < boardmap.NumLines; i++ {
		glyphs, origin, dir := e.bmap.Line(i)
		e.scanLine(glyphs, 0, origin, 1, dir, +1)
	}
	e.flushDirty()

	for pos := board.Position(0); pos < board.BoardSize; pos++ {
		if owner := e.bmap.Board().StoneAt(pos); owner != board.None {
			e.addDensity(pos, owner, +1)
		}
	}
}

// Copy returns an independent deep clone sharing only the immutable
// pattern searcher.
func (e *Evaluator) Copy() *Evaluator {
	c := *e
	c.bmap = e.bmap.Copy()
	c.dirty = nil
	return &c
}

// Scores returns the per-cell score vector of the (favour,
// perspective) group. The slice aliases internal state; treat it as
// read-only.
func (e *Evaluator) Scores(favour, perspective board.Player) []int {
	return e.scores[Group(favour, perspective)][:]
}

// ScoreAt is the cell's entry in the group's score vector.
func (e *Evaluator) ScoreAt(cell board.Position, favour, perspective board.Player) int {
	return e.scores[Group(favour, perspective)][cell]
}

// Density returns the colour's density field. Read-only aliasing, as
// with Scores.
func (e *Evaluator) Density(colour board.Player) []int {
	return e.density[side(colour)][:]
}

// PatternCount is the number of type-t occurrences keyed on cell that
// favour the given side.
func (e *Evaluator) PatternCount(t pattern.Type, cell board.Position, favour board.Player) int {
	if t == pattern.Five {
		return 0
	}
	return e.patternDist[t][cell].Count(favour)
}

// CompoundCount is 1 when the composite is present on cell for the
// favour, else 0.
func (e *Evaluator) CompoundCount(c Compound, cell board.Position, favour board.Player) int {
	return e.compoundDist[c][cell].Count(favour)
}

// Evaluate collapses the score vectors into one number from the given
// perspective: everything favouring it minus everything favouring the
// opponent.
func (e *Evaluator) Evaluate(perspective board.Player) int {
	mine := e.scores[Group(perspective, perspective)]
	theirs := e.scores[Group(perspective.Opponent(), perspective)]
	total := 0
	for i := 0; i < board.BoardSize; i++ {
		total += mine[i] - theirs[i]
	}
	return total
}

// updateLines re-scans the four lines through move after its glyph
// changed from oldGlyph to newGlyph. Each line is scanned twice over
// the window the move can influence: once with the old glyph
// substituted back, retracting every before-state match, then with
// the new glyph, admitting every after-state match. Matches untouched
// by the change appear in both scans and cancel exactly.
func (e *Evaluator) updateLines(move board.Position, oldGlyph, newGlyph byte) {
	e.dirty = e.dirty[:0]
	for _, dir := range board.Directions {
		line, idx := e.bmap.LineView(move, dir)
		lo := idx - (pattern.MaxPatternLen - 1)
		if lo < 0 {
			lo = 0
		}
		hi := idx + pattern.MaxPatternLen
		if hi > len(line) {
			hi = len(line)
		}
		line[idx] = oldGlyph
		e.scanLine(line[lo:hi], lo, move, idx, dir, -1)
		line[idx] = newGlyph
		e.scanLine(line[lo:hi], lo, move, idx, dir, +1)
	}
	e.flushDirty()
}

// scanLine feeds a window of a line to the matcher and applies every
// occurrence with the given sign. anchor/anchorIdx tie the window's
// glyph indices back to board coordinates.
func (e *Evaluator) scanLine(window []byte, lo int, anchor board.Position, anchorIdx int, dir board.Direction, delta int) {
	e.searcher.Find(window, func(p *pattern.Pattern, end int) bool {
		keyIdx := lo + end - len(p.Str) + p.KeySlot
		cell, ok := board.Shift(anchor, keyIdx-anchorIdx, dir)
		if !ok {
			return true
		}
		e.applyMatch(p, cell, dir, delta)
		return true
	})
}

func (e *Evaluator) applyMatch(p *pattern.Pattern, cell board.Position, dir board.Direction, delta int) {
	if p.Type == pattern.Five {
		e.fives[side(p.Favour)] += delta
	} else {
		rec := &e.patternDist[p.Type][cell]
		on := delta > 0
		rec.SetDir(Group(p.Favour, board.Black), dir, on)
		rec.SetDir(Group(p.Favour, board.White), dir, on)
		rec.AddCount(p.Favour, delta)
		if isCompoundComponent(p.Type) {
			e.dirty = append(e.dirty, dirtyKey{cell: cell, favour: p.Favour})
		}
	}
	e.addScore(cell, p.Favour, delta*p.Score)
}

// addScore credits both perspective groups of the favour: a threat is
// worth the same whether it is mine to press or yours to answer.
func (e *Evaluator) addScore(cell board.Position, favour board.Player, delta int) {
	e.scores[Group(favour, board.Black)][cell] += delta
	e.scores[Group(favour, board.White)][cell] += delta
}

func (e *Evaluator) flushDirty() {
	for _, d := range e.dirty {
		e.refreshCompounds(d.cell, d.favour)
	}
	e.dirty = e.dirty[:0]
}

// addDensity folds the kernel centred on move into the colour's
// density field.
func (e *Evaluator) addDensity(move board.Position, colour board.Player, delta int) {
	x, y := move.X(), move.Y()
	s := side(colour)
	for dy := -densityRadius; dy <= densityRadius; dy++ {
		ny := y + dy
		if ny < 0 || ny >= board.Height {
			continue
		}
		for dx := -densityRadius; dx <= densityRadius; dx++ {
			nx := x + dx
			if nx < 0 || nx >= board.Width {
				continue
			}
			cheb := abs(dx)
			if ady := abs(dy); ady > cheb {
				cheb = ady
			}
			w := densityRadius + 1 - cheb
			e.density[s][board.NewPosition(nx, ny)] += delta * w
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
