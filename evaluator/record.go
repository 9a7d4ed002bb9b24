package evaluator

import (
	"math/bits"

	"github.com/yifanzh/gomoku/board"
)

// NumGroups is the number of (favour, perspective) pairs.
const NumGroups = 4

// Group indexes the score vectors by (favour, perspective).
func Group(favour, perspective board.Player) int {
	g := 0
	if favour == board.Black {
		g |= 2
	}
	if perspective == board.Black {
		g |= 1
	}
	return g
}

// Record tallies, for one cell and one pattern type, which directions
// carry an occurrence keyed on the cell and how many occurrences each
// side owns in total.
//
// Layout: bits 0..15 hold four direction bits per group, bit
// group*4 + direction; bits 16..23 count White's occurrences, bits
// 24..31 Black's.
type Record uint32

func dirBit(group int, dir board.Direction) Record {
	return 1 << (uint(group*board.NumDirections) + uint(dir))
}

// HasDir reports whether the group has an occurrence along dir.
func (r Record) HasDir(group int, dir board.Direction) bool {
	return r&dirBit(group, dir) != 0
}

// SetDir sets or clears the group's bit for dir.
func (r *Record) SetDir(group int, dir board.Direction, on bool) {
	if on {
		*r |= dirBit(group, dir)
	} else {
		*r &^= dirBit(group, dir)
	}
}

// DirMask returns the four direction bits of the favour's own-view
// group, the one compound detection reads.
func (r Record) DirMask(favour board.Player) uint32 {
	shift := uint(Group(favour, favour) * board.NumDirections)
	return uint32(r>>shift) & 0xf
}

// DirCount is the number of distinct directions in DirMask.
func (r Record) DirCount(favour board.Player) int {
	return bits.OnesCount32(r.DirMask(favour))
}

func countShift(p board.Player) uint {
	if p == board.Black {
		return 24
	}
	return 16
}

// Count returns the side's occurrence tally.
func (r Record) Count(p board.Player) int {
	return int(r>>countShift(p)) & 0xff
}

// AddCount adjusts the side's occurrence tally by delta.
func (r *Record) AddCount(p board.Player, delta int) {
	shift := countShift(p)
	n := (int(*r>>shift) & 0xff) + delta
	*r = *r&^(0xff<<shift) | Record(n&0xff)<<shift
}
