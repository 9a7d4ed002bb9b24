// Package zobrist provides the advisory 64-bit position hash used for
// transposition caches.
// https://en.wikipedia.org/wiki/Zobrist_hashing
package zobrist

import (
	"lukechampine.com/frand"

	"github.com/yifanzh/gomoku/board"
)

const bignum = 1<<63 - 2

// Key is a position hash. Equal positions always hash equal within a
// process; collisions across distinct positions are the consumer's
// problem.
type Key uint64

// posTable holds one random constant per (cell, colour), drawn once at
// startup so every board map in the process agrees on keys.
var posTable [board.BoardSize][2]uint64

func init() {
	for i := range posTable {
		posTable[i][0] = frand.Uint64n(bignum) + 1
		posTable[i][1] = frand.Uint64n(bignum) + 1
	}
}

func colourIndex(p board.Player) int {
	if p == board.Black {
		return 1
	}
	return 0
}

// ToggleStone adds or removes player's stone at pos; the operation is
// its own inverse. Toggling None is a no-op.
func ToggleStone(key Key, pos board.Position, player board.Player) Key {
	if player == board.None {
		return key
	}
	return key ^ Key(posTable[pos][colourIndex(player)])
}

// FromBoard computes the key of a board position from scratch.
func FromBoard(b *board.Board) Key {
	var key Key
	for pos := board.Position(0); pos < board.BoardSize; pos++ {
		key = ToggleStone(key, pos, b.StoneAt(pos))
	}
	return key
}
