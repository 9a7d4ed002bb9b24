package evaluator

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/require"

	"github.com/yifanzh/gomoku/board"
	"github.com/yifanzh/gomoku/pattern"
	"github.com/yifanzh/gomoku/zobrist"
)

func xy(x, y int) board.Position {
	return board.NewPosition(x, y)
}

// statesEqual compares every distribution but not the board map.
func statesEqual(a, b *Evaluator) bool {
	return a.patternDist == b.patternDist &&
		a.compoundDist == b.compoundDist &&
		a.scores == b.scores &&
		a.density == b.density &&
		a.fives == b.fives
}

func mustApply(t *testing.T, e *Evaluator, moves ...board.Position) {
	t.Helper()
	for _, m := range moves {
		prev := e.Board().CurPlayer()
		require.NotEqual(t, prev, e.ApplyMove(m), "move %s rejected", m)
	}
}

func chebyshev(a, b board.Position) int {
	dx := a.X() - b.X()
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y() - b.Y()
	if dy < 0 {
		dy = -dy
	}
	if dy > dx {
		return dy
	}
	return dx
}

func TestScoreLocality(t *testing.T) {
	is := is.New(t)

	e := New()
	centre := xy(7, 7)
	mustApply(t, e, centre)

	players := []board.Player{board.Black, board.White}
	for cell := board.Position(0); cell < board.BoardSize; cell++ {
		if chebyshev(cell, centre) <= pattern.MaxPatternLen-1 {
			continue
		}
		for _, favour := range players {
			for _, persp := range players {
				is.Equal(e.ScoreAt(cell, favour, persp), 0)
			}
			is.Equal(e.Density(favour)[cell], 0)
		}
	}

	// The move itself must have left traces nearby.
	is.Equal(e.Density(board.Black)[centre], 4)
	total := 0
	for _, v := range e.Scores(board.Black, board.Black) {
		total += v
	}
	is.True(total > 0)
}

func TestApplyRevertRestoresZeroState(t *testing.T) {
	is := is.New(t)

	fresh := New()
	e := New()
	moves := []board.Position{
		xy(7, 7), xy(8, 8), xy(6, 8), xy(8, 6), xy(5, 7),
		xy(9, 9), xy(7, 5), xy(4, 4), xy(10, 10), xy(6, 6),
	}
	mustApply(t, e, moves...)

	is.Equal(e.RevertMoves(len(moves)), board.Black)
	is.True(statesEqual(e, fresh))
	is.True(*e.Board() == *fresh.Board())
	is.Equal(e.Map().Hash(), zobrist.Key(0))
}

func TestInvalidMoveChangesNothing(t *testing.T) {
	is := is.New(t)

	e := New()
	mustApply(t, e, xy(7, 7))
	snapshot := e.Copy()

	// Occupied, then out of range; both leave White to move.
	is.Equal(e.ApplyMove(xy(7, 7)), board.White)
	is.Equal(e.ApplyMove(board.Position(-5)), board.White)
	is.True(statesEqual(e, snapshot))
	is.Equal(e.Map().Hash(), snapshot.Map().Hash())
}

func TestBoardAgreement(t *testing.T) {
	is := is.New(t)

	e := New()
	shadow := board.NewBoard()
	moves := []board.Position{
		xy(3, 3), xy(3, 4), xy(4, 4), xy(3, 5), xy(5, 5),
		xy(3, 5), // invalid replay, both must reject it
		xy(3, 6), xy(6, 6), xy(3, 7),
	}
	for _, m := range moves {
		is.Equal(e.ApplyMove(m), shadow.ApplyMove(m))
		is.Equal(e.Board().Status(), shadow.Status())
		is.Equal(e.Board().Count(board.None), shadow.Count(board.None))
	}
}

func TestDiagonalFiveEndsGame(t *testing.T) {
	is := is.New(t)

	e := New()
	moves := []board.Position{
		xy(3, 3), xy(3, 4), xy(4, 4), xy(3, 5), xy(5, 5),
		xy(3, 6), xy(6, 6), xy(3, 7), xy(7, 7),
	}
	for i, m := range moves {
		result := e.ApplyMove(m)
		if i < len(moves)-1 {
			is.True(result != board.None)
			is.True(!e.CheckGameEnd())
		} else {
			is.Equal(result, board.None)
		}
	}
	is.True(e.CheckGameEnd())
	is.Equal(e.Board().Winner(), board.Black)
	is.Equal(e.Board().CurPlayer(), board.None)

	// Undoing the winning stone reopens the game for Black.
	is.Equal(e.RevertMove(), board.Black)
	is.True(!e.CheckGameEnd())
	is.Equal(e.Board().Winner(), board.None)

	e.RevertMoves(len(moves) - 1)
	is.True(statesEqual(e, New()))
}

func TestDrawFillEndsGame(t *testing.T) {
	is := is.New(t)

	e := New()
	for j := 0; j < board.Height; j++ {
		y := 2 * j
		if j > 7 {
			y = 2*(j-7) - 1
		}
		for x := 0; x < board.Width; x++ {
			prev := e.Board().CurPlayer()
			is.True(e.ApplyMove(xy(x, y)) != prev)
		}
	}
	is.True(e.CheckGameEnd())
	is.Equal(e.Board().Winner(), board.None)
	is.Equal(e.Board().CurPlayer(), board.None)
	is.Equal(e.fives[0], 0)
	is.Equal(e.fives[1], 0)

	_, err := e.Board().RandomMove()
	is.True(err != nil)
}

func TestLiveThreeDistribution(t *testing.T) {
	is := is.New(t)

	// Black builds xxx on row 7 with both flanks open; White answers
	// far away.
	e := New()
	mustApply(t, e, xy(6, 7), xy(0, 0), xy(7, 7), xy(2, 14), xy(8, 7))

	// The straight three is keyed on the empty extension squares.
	is.Equal(e.PatternCount(pattern.LiveThree, xy(5, 7), board.Black), 1)
	is.Equal(e.PatternCount(pattern.LiveThree, xy(9, 7), board.Black), 1)
	is.Equal(e.PatternCount(pattern.LiveThree, xy(7, 7), board.Black), 0)
	is.True(e.ScoreAt(xy(9, 7), board.Black, board.Black) > 0)
	is.True(e.Evaluate(board.Black) > 0)
	is.Equal(e.Evaluate(board.White), -e.Evaluate(board.Black))
}

func TestDoubleThreeCompound(t *testing.T) {
	is := is.New(t)

	// Two open threes whose extension squares meet at (9,7): one on
	// row 7, one on column 9. White replies are scattered and inert.
	e := New()
	mustApply(t, e,
		xy(6, 7), xy(0, 0),
		xy(7, 7), xy(2, 0),
		xy(8, 7), xy(0, 14),
		xy(9, 4), xy(2, 14),
		xy(9, 5), xy(14, 0),
		xy(9, 6),
	)

	fork := xy(9, 7)
	is.Equal(e.PatternCount(pattern.LiveThree, fork, board.Black), 2)
	is.Equal(e.CompoundCount(DoubleThree, fork, board.Black), 1)
	is.Equal(e.CompoundCount(DoubleThree, fork, board.White), 0)
	is.Equal(e.CompoundCount(FourThree, fork, board.Black), 0)
	is.Equal(e.CompoundCount(DoubleFour, fork, board.Black), 0)
	is.True(e.ScoreAt(fork, board.Black, board.Black) >= BaseScore)

	// Undoing the second three dissolves the fork.
	e.RevertMoves(2)
	is.Equal(e.CompoundCount(DoubleThree, fork, board.Black), 0)
	is.True(e.ScoreAt(fork, board.Black, board.Black) < BaseScore)
}

func TestSyncWithBoardMatchesIncremental(t *testing.T) {
	is := is.New(t)

	e := New()
	mustApply(t, e,
		xy(7, 7), xy(8, 8), xy(6, 8), xy(8, 6), xy(5, 7),
		xy(9, 9), xy(7, 5), xy(4, 4), xy(10, 10), xy(6, 6),
	)

	synced := New()
	synced.SyncWithBoard(e.Board())

	is.True(statesEqual(synced, e))
	is.True(*synced.Board() == *e.Board())
	is.Equal(synced.Map().Hash(), e.Map().Hash())
	is.Equal(synced.Map().MoveCount(), e.Map().MoveCount())

	// The synced evaluator keeps evolving correctly.
	prev := synced.Board().CurPlayer()
	is.True(synced.ApplyMove(xy(0, 7)) != prev)
	synced.RevertMove()
	is.True(statesEqual(synced, e))
}

func TestCopyIsIndependent(t *testing.T) {
	is := is.New(t)

	e := New()
	mustApply(t, e, xy(7, 7), xy(8, 8))

	c := e.Copy()
	is.True(statesEqual(c, e))

	mustApply(t, c, xy(6, 6))
	is.True(!statesEqual(c, e))
	is.Equal(e.Map().MoveCount(), 2)
	is.Equal(e.Board().StoneAt(xy(6, 6)), board.None)
}

func BenchmarkApplyRevert(b *testing.B) {
	e := New()
	e.ApplyMove(xy(7, 7))
	e.ApplyMove(xy(8, 8))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.ApplyMove(xy(6, 6))
		e.ApplyMove(xy(9, 9))
		e.RevertMoves(2)
	}
}
