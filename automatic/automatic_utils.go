package automatic

import (
	"context"
	"errors"
	"expvar"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/yifanzh/gomoku/config"
	"github.com/yifanzh/gomoku/pattern"
)

var (
	SelfPlayCounter *expvar.Int
	IsPlaying       *expvar.Int
)

func init() {
	SelfPlayCounter = expvar.NewInt("selfPlayCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

// StartSelfPlayGames plays numGames bot-vs-bot games across the given
// number of worker goroutines and writes one CSV line per game to
// outputFilename. It blocks until the batch finishes or ctx is
// cancelled.
func StartSelfPlayGames(ctx context.Context, cfg *config.Config, numGames, threads int,
	bot Bot, outputFilename string) error {

	if IsPlaying.Value() > 0 {
		return errors.New("games are already being played, please wait till complete")
	}
	if threads < 1 {
		threads = 1
	}

	logfile, err := os.Create(outputFilename)
	if err != nil {
		return err
	}
	log.Debug().Int("games", numGames).Int("threads", threads).
		Str("bot", bot.String()).Msg("starting self-play")

	searcher := pattern.Default()
	if len(cfg.ScoreOverrides) > 0 {
		searcher = pattern.NewSearcher(
			pattern.ApplyScoreOverrides(pattern.DefaultTable(), cfg.ScoreOverrides))
	}

	SelfPlayCounter.Set(0)
	jobs := make(chan int, 100)
	logChan := make(chan string, 100)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < threads; i++ {
		g.Go(func() error {
			r := NewGameRunner(logChan, searcher, bot)
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for id := range jobs {
				if err := r.PlayGame(id); err != nil {
					return err
				}
				SelfPlayCounter.Add(1)
			}
			return nil
		})
	}
	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < numGames; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				log.Info().Msg("got stop signal, aborting self-play")
				return ctx.Err()
			}
			if (i+1)%1000 == 0 {
				log.Debug().Int("queued", i+1).Msg("queueing jobs")
			}
		}
		return nil
	})

	writerDone := make(chan error, 1)
	go func() {
		_, werr := logfile.WriteString("gameID,winner,moves\n")
		for msg := range logChan {
			if _, err := logfile.WriteString(msg); err != nil {
				werr = err
			}
		}
		writerDone <- werr
	}()

	err = g.Wait()
	close(logChan)
	werr := <-writerDone
	if cerr := logfile.Close(); werr == nil {
		werr = cerr
	}
	if err != nil {
		return err
	}
	log.Info().Int64("played", SelfPlayCounter.Value()).Msg("all games finished")
	return werr
}
