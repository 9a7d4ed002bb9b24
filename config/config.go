// Package config loads runtime settings from an optional gomoku.yaml
// file and GOMOKU_* environment variables, env winning over file.
package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Debug bool

	SelfPlayGames   int
	SelfPlayThreads int
	GameLogPath     string

	// ScoreOverrides replaces pattern-type scores in the shipped
	// threat table, keyed by type name ("LiveThree").
	ScoreOverrides map[string]int
}

// Load reads the configuration. A missing config file is fine; a
// malformed one is not.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("debug", false)
	v.SetDefault("selfplay.games", 1000)
	v.SetDefault("selfplay.threads", 4)
	v.SetDefault("selfplay.logfile", "/tmp/gomoku-games.csv")

	v.SetEnvPrefix("gomoku")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("gomoku")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{
		Debug:           v.GetBool("debug"),
		SelfPlayGames:   v.GetInt("selfplay.games"),
		SelfPlayThreads: v.GetInt("selfplay.threads"),
		GameLogPath:     v.GetString("selfplay.logfile"),
	}
	if err := v.UnmarshalKey("scores", &cfg.ScoreOverrides); err != nil {
		return nil, err
	}
	return cfg, nil
}
