// Package boardmap couples a Board with the per-direction line-string
// projections the pattern matcher consumes, keeping both plus a
// Zobrist key consistent across apply and revert.
package boardmap

import (
	"github.com/rs/zerolog/log"

	"github.com/yifanzh/gomoku/board"
	"github.com/yifanzh/gomoku/pattern"
	"github.com/yifanzh/gomoku/zobrist"
)

// NumLines counts every line over the four directions: Height rows,
// Width columns, and Width+Height-1 diagonals each way.
const NumLines = 3*(board.Width+board.Height) - 2

const (
	horizontalBase = 0
	verticalBase   = board.Height
	leftDiagBase   = verticalBase + board.Width
	rightDiagBase  = leftDiagBase + board.Width + board.Height - 1
)

// ParseIndex maps a cell and direction to the line holding it and the
// cell's interior offset within that line. The mapping is analytic; no
// lookup table is needed for a square board.
func ParseIndex(pos board.Position, dir board.Direction) (line, offset int) {
	x, y := pos.X(), pos.Y()
	switch dir {
	case board.Horizontal:
		return horizontalBase + y, x
	case board.Vertical:
		return verticalBase + x, y
	case board.LeftDiag:
		// Lines of constant y-x, from the top-right corner down.
		return leftDiagBase + (y - x) + (board.Width - 1), min(x, y)
	default:
		// Lines of constant x+y.
		s := x + y
		y0 := 0
		if s > board.Width-1 {
			y0 = s - (board.Width - 1)
		}
		return rightDiagBase + s, y - y0
	}
}

// lineLength is the interior length of the given line.
func lineLength(line int) int {
	switch {
	case line < verticalBase:
		return board.Width
	case line < leftDiagBase:
		return board.Height
	case line < rightDiagBase:
		d := line - leftDiagBase - (board.Width - 1) // y - x
		return board.Width - abs(d)
	default:
		s := line - rightDiagBase
		return board.Width - abs(s-(board.Width-1))
	}
}

// lineOrigin returns the board position of the line's interior offset
// zero and the direction it runs in.
func lineOrigin(line int) (board.Position, board.Direction) {
	switch {
	case line < verticalBase:
		return board.NewPosition(0, line-horizontalBase), board.Horizontal
	case line < leftDiagBase:
		return board.NewPosition(line-verticalBase, 0), board.Vertical
	case line < rightDiagBase:
		d := line - leftDiagBase - (board.Width - 1) // y - x
		if d >= 0 {
			return board.NewPosition(0, d), board.LeftDiag
		}
		return board.NewPosition(-d, 0), board.LeftDiag
	default:
		s := line - rightDiagBase
		if s <= board.Width-1 {
			return board.NewPosition(s, 0), board.RightDiag
		}
		return board.NewPosition(board.Width-1, s-(board.Width-1)), board.RightDiag
	}
}

// BoardMap owns a Board plus the line strings and hash derived from
// it. Lines are stored padded: one '?' sentinel at each end, interior
// glyphs starting at index 1.
type BoardMap struct {
	board   *board.Board
	lines   [NumLines][]byte
	hash    zobrist.Key
	history []board.Position
}

func New() *BoardMap {
	bm := &BoardMap{
		board:   board.NewBoard(),
		history: make([]board.Position, 0, board.BoardSize),
	}
	for i := 0; i < NumLines; i++ {
		bm.lines[i] = make([]byte, lineLength(i)+2)
	}
	bm.clearLines()
	return bm
}

// Board exposes the owned board, read-only by convention: callers must
// mutate only through the BoardMap (or the evaluator above it).
func (bm *BoardMap) Board() *board.Board {
	return bm.board
}

// Hash is the Zobrist key of the current position.
func (bm *BoardMap) Hash() zobrist.Key {
	return bm.hash
}

// MoveCount is the depth of the apply history.
func (bm *BoardMap) MoveCount() int {
	return len(bm.history)
}

// LastMove returns the most recently applied position, or
// NonePosition when the history is empty.
func (bm *BoardMap) LastMove() board.Position {
	if len(bm.history) == 0 {
		return board.NonePosition
	}
	return bm.history[len(bm.history)-1]
}

// History returns the applied moves oldest first, as a copy.
func (bm *BoardMap) History() []board.Position {
	return append([]board.Position(nil), bm.history...)
}

// LineView returns the padded line holding pos along dir, together
// with pos's glyph index within it. The slice aliases internal
// storage; callers must treat it as immutable between moves.
func (bm *BoardMap) LineView(pos board.Position, dir board.Direction) ([]byte, int) {
	line, offset := ParseIndex(pos, dir)
	return bm.lines[line], offset + 1
}

// Line returns line i's padded glyphs plus the board position and
// direction of its interior offset zero, for whole-board scans.
func (bm *BoardMap) Line(i int) ([]byte, board.Position, board.Direction) {
	origin, dir := lineOrigin(i)
	return bm.lines[i], origin, dir
}

// ApplyMove forwards to the board and, when the move is accepted,
// updates the four crossing lines, the hash, and the history. The
// return value is the board's: the next side to move, or the caller
// unchanged when the move was invalid.
func (bm *BoardMap) ApplyMove(move board.Position) board.Player {
	return bm.Apply(move, true)
}

// Apply is ApplyMove with the board's victory scan optional.
func (bm *BoardMap) Apply(move board.Position, checkVictory bool) board.Player {
	prev := bm.board.CurPlayer()
	result := bm.board.Apply(move, checkVictory)
	if result == prev {
		return result
	}
	bm.setGlyph(move, pattern.GlyphOf(prev))
	bm.hash = zobrist.ToggleStone(bm.hash, move, prev)
	bm.history = append(bm.history, move)
	return result
}

// RevertLast undoes the most recent applied move, returning it and
// its owner. ok is false when the history is empty.
func (bm *BoardMap) RevertLast() (move board.Position, owner board.Player, ok bool) {
	if len(bm.history) == 0 {
		return board.NonePosition, board.None, false
	}
	move = bm.history[len(bm.history)-1]
	bm.history = bm.history[:len(bm.history)-1]
	owner = bm.board.StoneAt(move)
	bm.board.RevertMove(move)
	bm.setGlyph(move, pattern.Empty)
	bm.hash = zobrist.ToggleStone(bm.hash, move, owner)
	return move, owner, true
}

// RevertMoves undoes up to count moves in LIFO order and returns the
// side to move afterwards.
func (bm *BoardMap) RevertMoves(count int) board.Player {
	for i := 0; i < count; i++ {
		if _, _, ok := bm.RevertLast(); !ok {
			break
		}
	}
	return bm.board.CurPlayer()
}

// Reset restores the empty position, reusing all allocations.
func (bm *BoardMap) Reset() {
	bm.board.Reset()
	bm.clearLines()
	bm.hash = 0
	bm.history = bm.history[:0]
}

// SyncWithBoard adopts the configuration of src wholesale: board copy,
// lines and hash rebuilt from occupancy, history synthesised in an
// alternating order (pattern state depends only on the final
// configuration, not on move order).
func (bm *BoardMap) SyncWithBoard(src *board.Board) {
	bm.Reset()
	*bm.board = *src

	var blacks, whites []board.Position
	for pos := board.Position(0); pos < board.BoardSize; pos++ {
		switch owner := src.StoneAt(pos); owner {
		case board.Black:
			blacks = append(blacks, pos)
			bm.setGlyph(pos, pattern.BlackStone)
		case board.White:
			whites = append(whites, pos)
			bm.setGlyph(pos, pattern.WhiteStone)
		}
	}
	bm.hash = zobrist.FromBoard(src)

	if d := len(blacks) - len(whites); d < 0 || d > 1 {
		log.Warn().Int("black", len(blacks)).Int("white", len(whites)).
			Msg("syncing from a board with an impossible stone count")
	}
	for i := 0; i < len(blacks) || i < len(whites); i++ {
		if i < len(blacks) {
			bm.history = append(bm.history, blacks[i])
		}
		if i < len(whites) {
			bm.history = append(bm.history, whites[i])
		}
	}
}

// Copy returns an independent deep copy sharing nothing with bm.
func (bm *BoardMap) Copy() *BoardMap {
	c := &BoardMap{
		board:   bm.board.Copy(),
		hash:    bm.hash,
		history: append(make([]board.Position, 0, cap(bm.history)), bm.history...),
	}
	for i := range bm.lines {
		c.lines[i] = append([]byte(nil), bm.lines[i]...)
	}
	return c
}

func (bm *BoardMap) setGlyph(pos board.Position, glyph byte) {
	for _, dir := range board.Directions {
		line, offset := ParseIndex(pos, dir)
		bm.lines[line][offset+1] = glyph
	}
}

func (bm *BoardMap) clearLines() {
	for i := range bm.lines {
		line := bm.lines[i]
		line[0] = pattern.Edge
		line[len(line)-1] = pattern.Edge
		for j := 1; j < len(line)-1; j++ {
			line[j] = pattern.Empty
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
