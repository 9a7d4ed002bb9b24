package board

import (
	"errors"

	"lukechampine.com/frand"
)

// ErrBoardFull is returned by RandomMove when no empty cell remains.
// Callers should have noticed the game ending first.
var ErrBoardFull = errors.New("board: no legal moves remain")

// Board is the canonical game state: one occupancy array per stone
// state (White/None/Black) plus counts, the side to move, and the
// winner. It contains no reference types, so a value copy is a deep
// copy and two boards compare equal with ==.
//
// All mutation goes through ApplyMove and RevertMove.
type Board struct {
	curPlayer Player
	winner    Player
	states    [3][BoardSize]bool
	counts    [3]int
}

func NewBoard() *Board {
	b := &Board{}
	b.Reset()
	return b
}

// Reset restores the empty starting position with Black to move.
func (b *Board) Reset() {
	*b = Board{curPlayer: Black, winner: None}
	for i := 0; i < BoardSize; i++ {
		b.states[None.Index()][i] = true
	}
	b.counts[None.Index()] = BoardSize
}

// Copy returns an independent deep copy.
func (b *Board) Copy() *Board {
	c := *b
	return &c
}

func (b *Board) CurPlayer() Player { return b.curPlayer }
func (b *Board) Winner() Player    { return b.winner }

// Count returns how many cells are in the given state.
func (b *Board) Count(p Player) int {
	return b.counts[p.Index()]
}

// HasState reports whether pos is in the given state's occupancy set.
func (b *Board) HasState(p Player, pos Position) bool {
	return b.states[p.Index()][pos]
}

// StoneAt returns the colour of the stone at pos, or None.
func (b *Board) StoneAt(pos Position) Player {
	switch {
	case b.states[Black.Index()][pos]:
		return Black
	case b.states[White.Index()][pos]:
		return White
	default:
		return None
	}
}

// Status is a snapshot of whether the game has ended, who moves next,
// and who won. CurPlayer is None exactly when the game is over.
type Status struct {
	End       bool
	CurPlayer Player
	Winner    Player
}

func (b *Board) Status() Status {
	return Status{
		End:       b.curPlayer == None,
		CurPlayer: b.curPlayer,
		Winner:    b.winner,
	}
}

// CheckMove reports whether move is on the board and the cell is
// empty. Renju forbidden-move rules (double-three etc. for Black)
// would hook in here; free-style gomoku has none.
func (b *Board) CheckMove(move Position) bool {
	return move.InBounds() && b.states[None.Index()][move]
}

// ApplyMove places a stone for the side to move. It returns the side
// that should move next: the opponent on success, the caller unchanged
// when the move is invalid (out of range, occupied, or game over), or
// None when this move ended the game — read Winner for the result.
func (b *Board) ApplyMove(move Position) Player {
	return b.Apply(move, true)
}

// Apply is ApplyMove with the victory scan optional; callers that
// maintain their own terminal detection (the evaluator's sync path)
// skip it.
func (b *Board) Apply(move Position, checkVictory bool) Player {
	if b.curPlayer == None || !b.CheckMove(move) {
		return b.curPlayer
	}
	b.setState(move, None, b.curPlayer)
	switch {
	case checkVictory && b.hasRunThrough(move, b.curPlayer):
		b.winner = b.curPlayer
		b.curPlayer = None
	case b.counts[None.Index()] == 0:
		b.winner = None
		b.curPlayer = None
	default:
		b.curPlayer = -b.curPlayer
	}
	return b.curPlayer
}

// RevertMove removes the stone at move and gives the turn back. When
// the game had ended the turn returns to the removed stone's owner and
// the winner is cleared; otherwise the turn simply flips. Reverting an
// empty or out-of-range cell is a no-op returning the current side.
func (b *Board) RevertMove(move Position) Player {
	if !move.InBounds() {
		return b.curPlayer
	}
	owner := b.StoneAt(move)
	if owner == None {
		return b.curPlayer
	}
	b.setState(move, owner, None)
	if b.curPlayer == None {
		b.winner = None
		b.curPlayer = owner
	} else {
		b.curPlayer = -b.curPlayer
	}
	return b.curPlayer
}

// RandomMove draws uniformly from the empty cells.
func (b *Board) RandomMove() (Position, error) {
	empty := b.counts[None.Index()]
	if empty == 0 {
		return NonePosition, ErrBoardFull
	}
	n := frand.Intn(empty)
	for pos := Position(0); pos < BoardSize; pos++ {
		if b.states[None.Index()][pos] {
			if n == 0 {
				return pos, nil
			}
			n--
		}
	}
	return NonePosition, ErrBoardFull
}

// CheckGameEnd reports whether the game is over assuming move was the
// last stone placed: either a five-or-longer run through move, or a
// full board.
func (b *Board) CheckGameEnd(move Position) bool {
	if b.counts[None.Index()] == 0 {
		return true
	}
	if !move.InBounds() {
		return false
	}
	player := b.StoneAt(move)
	if player == None {
		return false
	}
	return b.hasRunThrough(move, player)
}

// hasRunThrough scans outward from move along each direction counting
// the run of player's stones that includes move. Overlines count; this
// is free-style gomoku.
func (b *Board) hasRunThrough(move Position, player Player) bool {
	for _, dir := range Directions {
		run := 1
		for _, sense := range [2]int{-1, 1} {
			for k := 1; k < MaxRenju; k++ {
				pos, ok := Shift(move, k*sense, dir)
				if !ok || !b.states[player.Index()][pos] {
					break
				}
				run++
			}
		}
		if run >= MaxRenju {
			return true
		}
	}
	return false
}

func (b *Board) setState(pos Position, from, to Player) {
	b.states[from.Index()][pos] = false
	b.counts[from.Index()]--
	b.states[to.Index()][pos] = true
	b.counts[to.Index()]++
}
