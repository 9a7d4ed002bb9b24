package automatic

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/require"

	"github.com/yifanzh/gomoku/board"
	"github.com/yifanzh/gomoku/config"
	"github.com/yifanzh/gomoku/pattern"
)

func TestPlayGameReachesTerminalState(t *testing.T) {
	is := is.New(t)

	logChan := make(chan string, 1)
	r := NewGameRunner(logChan, pattern.Default(), RandomBot)
	is.NoErr(r.PlayGame(7))

	// The runner's board must have finished the game.
	is.Equal(r.ev.Board().CurPlayer(), board.None)
	is.True(r.ev.CheckGameEnd())

	line := <-logChan
	fields := strings.Split(strings.TrimSpace(line), ",")
	is.Equal(len(fields), 3)
	is.Equal(fields[0], "7")
	is.True(fields[1] == "Black" || fields[1] == "White" || fields[1] == "None")
}

func TestGreedyBotFinishesGames(t *testing.T) {
	is := is.New(t)

	r := NewGameRunner(nil, pattern.Default(), GreedyBot)
	is.NoErr(r.PlayGame(0))
	is.True(r.ev.CheckGameEnd())
}

func TestSelfPlayBatch(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "games.csv")
	cfg := &config.Config{}

	err := StartSelfPlayGames(context.Background(), cfg, 4, 2, RandomBot, logPath)
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 5) // header plus one line per game
	require.Equal(t, "gameID,winner,moves", lines[0])
	require.EqualValues(t, 4, SelfPlayCounter.Value())

	stats, err := AnalyzeLogFile(logPath)
	require.NoError(t, err)
	require.Contains(t, stats, "Games played: 4")
	require.Contains(t, stats, "Game length mean:")
}

func TestBotFromName(t *testing.T) {
	is := is.New(t)

	bot, err := BotFromName("greedy")
	is.NoErr(err)
	is.Equal(bot, GreedyBot)

	bot, err = BotFromName("")
	is.NoErr(err)
	is.Equal(bot, RandomBot)

	_, err = BotFromName("stockfish")
	is.True(err != nil)
}
