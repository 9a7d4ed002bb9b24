package config

import (
	"testing"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)

	cfg, err := Load()
	is.NoErr(err)
	is.Equal(cfg.Debug, false)
	is.Equal(cfg.SelfPlayGames, 1000)
	is.Equal(cfg.SelfPlayThreads, 4)
	is.True(cfg.GameLogPath != "")
}

func TestEnvOverrides(t *testing.T) {
	is := is.New(t)

	t.Setenv("GOMOKU_DEBUG", "true")
	t.Setenv("GOMOKU_SELFPLAY_GAMES", "25")
	t.Setenv("GOMOKU_SELFPLAY_THREADS", "2")

	cfg, err := Load()
	is.NoErr(err)
	is.Equal(cfg.Debug, true)
	is.Equal(cfg.SelfPlayGames, 25)
	is.Equal(cfg.SelfPlayThreads, 2)
}
