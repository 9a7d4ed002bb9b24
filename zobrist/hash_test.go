package zobrist

import (
	"testing"

	"github.com/matryer/is"

	"github.com/yifanzh/gomoku/board"
)

func TestToggleIsItsOwnInverse(t *testing.T) {
	is := is.New(t)

	key := Key(0)
	k1 := ToggleStone(key, board.NewPosition(7, 7), board.Black)
	is.True(k1 != key) // adding a stone must change the key
	k2 := ToggleStone(k1, board.NewPosition(7, 7), board.Black)
	is.Equal(k2, key)

	is.Equal(ToggleStone(key, board.NewPosition(3, 3), board.None), key)
}

func TestIncrementalMatchesFromScratch(t *testing.T) {
	is := is.New(t)

	b := board.NewBoard()
	key := FromBoard(b)
	is.Equal(key, Key(0))

	moves := []board.Position{
		board.NewPosition(7, 7), board.NewPosition(8, 8), board.NewPosition(6, 6),
	}
	for _, m := range moves {
		player := b.CurPlayer()
		b.ApplyMove(m)
		key = ToggleStone(key, m, player)
		is.Equal(key, FromBoard(b))
	}
}

func TestTranspositionsHashEqual(t *testing.T) {
	is := is.New(t)

	// Two move orders reaching the same configuration.
	b1 := board.NewBoard()
	b1.ApplyMove(board.NewPosition(7, 7))  // black
	b1.ApplyMove(board.NewPosition(0, 0))  // white
	b1.ApplyMove(board.NewPosition(8, 8))  // black
	b1.ApplyMove(board.NewPosition(14, 0)) // white

	b2 := board.NewBoard()
	b2.ApplyMove(board.NewPosition(8, 8))
	b2.ApplyMove(board.NewPosition(14, 0))
	b2.ApplyMove(board.NewPosition(7, 7))
	b2.ApplyMove(board.NewPosition(0, 0))

	is.Equal(FromBoard(b1), FromBoard(b2))

	b2.RevertMove(board.NewPosition(0, 0))
	is.True(FromBoard(b1) != FromBoard(b2))
}
