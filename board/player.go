package board

// Player is a stone colour, or None for an empty cell. The numeric
// values are load-bearing: negating a Player yields the opponent, and
// the product of a perspective and the winner is the final score.
type Player int8

const (
	White Player = -1
	None  Player = 0
	Black Player = 1
)

// Opponent returns the other colour. None's opponent is None.
func (p Player) Opponent() Player {
	return -p
}

// Index maps a Player to its slot in the per-state arrays:
// 0 - White, 1 - None, 2 - Black.
func (p Player) Index() int {
	return int(p) + 1
}

func (p Player) String() string {
	switch p {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return "None"
	}
}

// FinalScore scores a finished game from player's point of view:
// positive for a win, negative for a loss, zero for a draw.
func FinalScore(player, winner Player) float64 {
	return float64(player) * float64(winner)
}
