// Package automatic runs unattended bot-vs-bot games for data
// collection: self-play batches, CSV game logs, and log analysis.
package automatic

import (
	"fmt"

	"github.com/yifanzh/gomoku/board"
	"github.com/yifanzh/gomoku/evaluator"
	"github.com/yifanzh/gomoku/pattern"
)

// Bot selects the move policy both sides use during self-play.
type Bot uint8

const (
	// RandomBot plays uniformly random legal moves.
	RandomBot Bot = iota
	// GreedyBot maximises the evaluator's cell score, attack plus
	// defence, with stone density as the tie-break.
	GreedyBot
)

func BotFromName(name string) (Bot, error) {
	switch name {
	case "", "random":
		return RandomBot, nil
	case "greedy":
		return GreedyBot, nil
	}
	return RandomBot, fmt.Errorf("unknown bot %q", name)
}

func (b Bot) String() string {
	if b == GreedyBot {
		return "greedy"
	}
	return "random"
}

// GameRunner drives one evaluator through full games and reports each
// result on logchan as a CSV line.
type GameRunner struct {
	ev      *evaluator.Evaluator
	bot     Bot
	logchan chan string
}

func NewGameRunner(logchan chan string, searcher *pattern.Searcher, bot Bot) *GameRunner {
	return &GameRunner{
		ev:      evaluator.NewWithSearcher(searcher),
		bot:     bot,
		logchan: logchan,
	}
}

// PlayGame plays one full game from the empty board and logs
// "gameID,winner,moves".
func (r *GameRunner) PlayGame(id int) error {
	r.ev.Reset()
	moves := 0
	for !r.ev.CheckGameEnd() {
		move, err := r.pickMove()
		if err != nil {
			return err
		}
		prev := r.ev.Board().CurPlayer()
		if r.ev.ApplyMove(move) == prev {
			return fmt.Errorf("game %d: bot picked invalid move %s", id, move)
		}
		moves++
	}
	if r.logchan != nil {
		r.logchan <- fmt.Sprintf("%d,%s,%d\n", id, r.ev.Board().Winner(), moves)
	}
	return nil
}

func (r *GameRunner) pickMove() (board.Position, error) {
	if r.bot == RandomBot {
		return r.ev.Board().RandomMove()
	}
	return r.pickGreedyMove()
}

// pickGreedyMove scans the empty cells for the highest combined score
// for and against the side to move; the density field breaks ties so
// early moves cluster instead of wandering.
func (r *GameRunner) pickGreedyMove() (board.Position, error) {
	b := r.ev.Board()
	cur := b.CurPlayer()
	opp := cur.Opponent()

	best := board.NonePosition
	bestScore, bestDensity := -1, -1
	for pos := board.Position(0); pos < board.BoardSize; pos++ {
		if !b.HasState(board.None, pos) {
			continue
		}
		score := r.ev.ScoreAt(pos, cur, cur) + r.ev.ScoreAt(pos, opp, cur)
		density := r.ev.Density(cur)[pos] + r.ev.Density(opp)[pos]
		if score > bestScore || (score == bestScore && density > bestDensity) {
			best, bestScore, bestDensity = pos, score, density
		}
	}
	if best == board.NonePosition {
		return board.NonePosition, board.ErrBoardFull
	}
	if bestScore == 0 && bestDensity == 0 {
		// Empty board: nothing to be greedy about.
		return b.RandomMove()
	}
	return best, nil
}
