package board

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	Width  = 15
	Height = 15
	// BoardSize is the number of cells.
	BoardSize = Width * Height
	// MaxRenju is the run length that ends the game.
	MaxRenju = 5
)

// Position is a cell index, y*Width + x. NonePosition marks "no
// position".
type Position int16

const NonePosition Position = -1

func NewPosition(x, y int) Position {
	return Position(y*Width + x)
}

func (p Position) X() int {
	return int(p) % Width
}

func (p Position) Y() int {
	return int(p) / Width
}

func (p Position) InBounds() bool {
	return p >= 0 && p < BoardSize
}

// String renders the position in column-letter, row-number form
// ("H8"); columns run A..O left to right, rows 1..15 top to bottom.
func (p Position) String() string {
	if !p.InBounds() {
		return "--"
	}
	return fmt.Sprintf("%c%d", 'A'+p.X(), p.Y()+1)
}

// ParsePosition parses the notation produced by Position.String.
func ParsePosition(s string) (Position, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 {
		return NonePosition, fmt.Errorf("badly formatted position %q", s)
	}
	x := int(s[0] - 'A')
	row, err := strconv.Atoi(s[1:])
	if err != nil {
		return NonePosition, fmt.Errorf("badly formatted position %q", s)
	}
	y := row - 1
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return NonePosition, fmt.Errorf("position %q is off the board", s)
	}
	return NewPosition(x, y), nil
}

// Direction is one of the four line orientations on the board.
type Direction uint8

const (
	Horizontal Direction = iota
	Vertical
	LeftDiag
	RightDiag

	NumDirections = 4
)

// Directions lists all four orientations for iteration.
var Directions = [NumDirections]Direction{Horizontal, Vertical, LeftDiag, RightDiag}

// Delta unpacks the direction into unit x/y steps.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Horizontal:
		return 1, 0
	case Vertical:
		return 0, 1
	case LeftDiag:
		return 1, 1
	default:
		return -1, 1
	}
}

func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case LeftDiag:
		return "left-diagonal"
	default:
		return "right-diagonal"
	}
}

// Shift walks offset steps along dir from p. The boolean reports
// whether the result is still on the board.
func Shift(p Position, offset int, dir Direction) (Position, bool) {
	dx, dy := dir.Delta()
	x := p.X() + offset*dx
	y := p.Y() + offset*dy
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return NonePosition, false
	}
	return NewPosition(x, y), true
}
