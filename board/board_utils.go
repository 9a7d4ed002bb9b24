package board

import (
	"fmt"
	"strings"
)

// ToDisplayText renders the board as a plain-text grid with column
// letters and row numbers matching Position.String notation.
func (b *Board) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString("\n   ")
	for i := 0; i < Width; i++ {
		sb.WriteByte(byte('A' + i))
		sb.WriteByte(' ')
	}
	sb.WriteString("\n   " + strings.Repeat("-", Width*2) + "\n")
	for y := 0; y < Height; y++ {
		sb.WriteString(fmt.Sprintf("%2d|", y+1))
		for x := 0; x < Width; x++ {
			switch b.StoneAt(NewPosition(x, y)) {
			case Black:
				sb.WriteString("x ")
			case White:
				sb.WriteString("o ")
			default:
				sb.WriteString(". ")
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("   " + strings.Repeat("-", Width*2) + "\n")
	return sb.String()
}
