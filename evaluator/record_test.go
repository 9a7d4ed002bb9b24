package evaluator

import (
	"testing"

	"github.com/matryer/is"

	"github.com/yifanzh/gomoku/board"
)

func TestGroupIndexing(t *testing.T) {
	is := is.New(t)

	is.Equal(Group(board.Black, board.Black), 3)
	is.Equal(Group(board.Black, board.White), 2)
	is.Equal(Group(board.White, board.Black), 1)
	is.Equal(Group(board.White, board.White), 0)
}

func TestRecordDirBits(t *testing.T) {
	is := is.New(t)

	var r Record
	g := Group(board.Black, board.Black)
	r.SetDir(g, board.Vertical, true)
	r.SetDir(g, board.LeftDiag, true)

	is.True(r.HasDir(g, board.Vertical))
	is.True(r.HasDir(g, board.LeftDiag))
	is.True(!r.HasDir(g, board.Horizontal))
	is.True(!r.HasDir(Group(board.White, board.White), board.Vertical))

	is.Equal(r.DirMask(board.Black), uint32(1<<board.Vertical|1<<board.LeftDiag))
	is.Equal(r.DirCount(board.Black), 2)
	is.Equal(r.DirMask(board.White), uint32(0))

	r.SetDir(g, board.Vertical, false)
	is.Equal(r.DirCount(board.Black), 1)
}

func TestRecordCounts(t *testing.T) {
	is := is.New(t)

	var r Record
	r.AddCount(board.Black, 3)
	r.AddCount(board.White, 1)
	is.Equal(r.Count(board.Black), 3)
	is.Equal(r.Count(board.White), 1)

	r.AddCount(board.Black, -2)
	is.Equal(r.Count(board.Black), 1)

	// Counts and direction bits must not bleed into each other.
	r.SetDir(Group(board.Black, board.Black), board.RightDiag, true)
	is.Equal(r.Count(board.Black), 1)
	is.Equal(r.Count(board.White), 1)
}

func TestCompoundPresence(t *testing.T) {
	is := is.New(t)

	h := uint32(1 << board.Horizontal)
	v := uint32(1 << board.Vertical)

	is.True(compoundPresent(DoubleThree, 0, h|v))
	is.True(!compoundPresent(DoubleThree, 0, h))
	is.True(compoundPresent(FourThree, h, v))
	is.True(!compoundPresent(FourThree, h, h)) // same direction is one line, not a fork
	is.True(!compoundPresent(FourThree, h, 0))
	is.True(compoundPresent(DoubleFour, h|v, 0))
	is.True(!compoundPresent(DoubleFour, v, h))
}
