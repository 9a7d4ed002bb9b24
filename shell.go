package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/yifanzh/gomoku/automatic"
	"github.com/yifanzh/gomoku/board"
	"github.com/yifanzh/gomoku/config"
	"github.com/yifanzh/gomoku/evaluator"
	"github.com/yifanzh/gomoku/pattern"
)

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// gameRecord is the on-disk form of a game: the moves in played
// order, in board notation ("H8").
type gameRecord struct {
	Moves []string `yaml:"moves"`
}

type shell struct {
	ev  *evaluator.Evaluator
	cfg *config.Config
}

func newShell(cfg *config.Config) *shell {
	searcher := pattern.Default()
	if len(cfg.ScoreOverrides) > 0 {
		searcher = pattern.NewSearcher(
			pattern.ApplyScoreOverrides(pattern.DefaultTable(), cfg.ScoreOverrides))
	}
	return &shell{ev: evaluator.NewWithSearcher(searcher), cfg: cfg}
}

func (sh *shell) play(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("play needs at least one position, e.g. `play H8`")
	}
	for _, arg := range args {
		pos, err := board.ParsePosition(arg)
		if err != nil {
			return "", err
		}
		prev := sh.ev.Board().CurPlayer()
		if sh.ev.ApplyMove(pos) == prev {
			return "", fmt.Errorf("%s is not a legal move", pos)
		}
	}
	return sh.display(), nil
}

func (sh *shell) undo(args []string) (string, error) {
	n := 1
	if len(args) > 0 {
		var err error
		if n, err = strconv.Atoi(args[0]); err != nil || n < 1 {
			return "", fmt.Errorf("undo takes a positive count")
		}
	}
	if sh.ev.Map().MoveCount() == 0 {
		return "", fmt.Errorf("nothing to undo")
	}
	sh.ev.RevertMoves(n)
	return sh.display(), nil
}

func (sh *shell) display() string {
	b := sh.ev.Board()
	out := b.ToDisplayText()
	status := b.Status()
	switch {
	case !status.End:
		out += fmt.Sprintf("%s to move (move %d, hash %x)\n",
			status.CurPlayer, sh.ev.Map().MoveCount()+1, sh.ev.Map().Hash())
	case status.Winner == board.None:
		out += "Game over: draw\n"
	default:
		out += fmt.Sprintf("Game over: %s wins\n", status.Winner)
	}
	return out
}

// scores lists the highest-scored empty cells from the side to move's
// perspective, attack and defence separately.
func (sh *shell) scores(args []string) (string, error) {
	persp := sh.ev.Board().CurPlayer()
	if persp == board.None {
		persp = board.Black
	}
	if len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case "black":
			persp = board.Black
		case "white":
			persp = board.White
		default:
			return "", fmt.Errorf("scores takes `black` or `white`")
		}
	}
	opp := persp.Opponent()

	type entry struct {
		pos             board.Position
		attack, defence int
	}
	var entries []entry
	for pos := board.Position(0); pos < board.BoardSize; pos++ {
		a := sh.ev.ScoreAt(pos, persp, persp)
		d := sh.ev.ScoreAt(pos, opp, persp)
		if a != 0 || d != 0 {
			entries = append(entries, entry{pos, a, d})
		}
	}
	if len(entries) == 0 {
		return "no scored cells yet\n", nil
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].attack+entries[i].defence > entries[j].attack+entries[j].defence
	})
	if len(entries) > 10 {
		entries = entries[:10]
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "top cells for %s (total %d):\n", persp, sh.ev.Evaluate(persp))
	for _, e := range entries {
		fmt.Fprintf(&sb, "  %-3s attack %-7d defence %d\n", e.pos, e.attack, e.defence)
	}
	return sb.String(), nil
}

func (sh *shell) density(args []string) (string, error) {
	colour := board.Black
	if len(args) > 0 && strings.EqualFold(args[0], "white") {
		colour = board.White
	}
	field := sh.ev.Density(colour)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s density:\n", colour)
	for y := 0; y < board.Height; y++ {
		for x := 0; x < board.Width; x++ {
			fmt.Fprintf(&sb, "%3d", field[board.NewPosition(x, y)])
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func (sh *shell) random() (string, error) {
	if sh.ev.Board().Status().End {
		return "", fmt.Errorf("the game is over")
	}
	move, err := sh.ev.Board().RandomMove()
	if err != nil {
		return "", err
	}
	sh.ev.ApplyMove(move)
	return fmt.Sprintf("played %s\n%s", move, sh.display()), nil
}

// rollout estimates the side to move's chances by playing random
// games to the end from the current position.
func (sh *shell) rollout(args []string) (string, error) {
	n := 100
	if len(args) > 0 {
		var err error
		if n, err = strconv.Atoi(args[0]); err != nil || n < 1 {
			return "", fmt.Errorf("rollout takes a positive game count")
		}
	}
	persp := sh.ev.Board().CurPlayer()
	if persp == board.None {
		return "", fmt.Errorf("the game is over")
	}
	score := 0.0
	for i := 0; i < n; i++ {
		c := sh.ev.Copy()
		for !c.CheckGameEnd() {
			move, err := c.Board().RandomMove()
			if err != nil {
				return "", err
			}
			c.ApplyMove(move)
		}
		// Win 1, draw 0.5, loss 0.
		score += (board.FinalScore(persp, c.Board().Winner()) + 1) / 2
	}
	return fmt.Sprintf("%s scores %.1f/%d over random playouts\n", persp, score, n), nil
}

func (sh *shell) save(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("save takes a file path")
	}
	record := gameRecord{}
	for _, move := range sh.ev.Map().History() {
		record.Moves = append(record.Moves, move.String())
	}
	data, err := yaml.Marshal(&record)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(args[0], data, 0644); err != nil {
		return "", err
	}
	return fmt.Sprintf("saved %d moves to %s\n", len(record.Moves), args[0]), nil
}

func (sh *shell) load(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("load takes a file path")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	var record gameRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		return "", err
	}
	sh.ev.Reset()
	for i, move := range record.Moves {
		pos, err := board.ParsePosition(move)
		if err != nil {
			sh.ev.Reset()
			return "", fmt.Errorf("move %d: %w", i+1, err)
		}
		prev := sh.ev.Board().CurPlayer()
		if sh.ev.ApplyMove(pos) == prev {
			sh.ev.Reset()
			return "", fmt.Errorf("move %d (%s) is not legal", i+1, pos)
		}
	}
	return sh.display(), nil
}

func (sh *shell) autoplay(args []string) (string, error) {
	games := sh.cfg.SelfPlayGames
	threads := sh.cfg.SelfPlayThreads
	bot := automatic.RandomBot
	var err error
	if len(args) > 0 {
		if games, err = strconv.Atoi(args[0]); err != nil || games < 1 {
			return "", fmt.Errorf("autoplay takes a positive game count")
		}
	}
	if len(args) > 1 {
		if threads, err = strconv.Atoi(args[1]); err != nil || threads < 1 {
			return "", fmt.Errorf("thread count must be positive")
		}
	}
	if len(args) > 2 {
		if bot, err = automatic.BotFromName(args[2]); err != nil {
			return "", err
		}
	}
	err = automatic.StartSelfPlayGames(context.Background(), sh.cfg, games, threads,
		bot, sh.cfg.GameLogPath)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("played %d games, log written to %s\n", games, sh.cfg.GameLogPath), nil
}

func (sh *shell) execute(cmd string, args []string) (string, error) {
	switch cmd {
	case "play":
		return sh.play(args)
	case "undo":
		return sh.undo(args)
	case "show":
		return sh.display(), nil
	case "scores":
		return sh.scores(args)
	case "density":
		return sh.density(args)
	case "random":
		return sh.random()
	case "rollout":
		return sh.rollout(args)
	case "save":
		return sh.save(args)
	case "load":
		return sh.load(args)
	case "autoplay":
		return sh.autoplay(args)
	case "analyze":
		if len(args) != 1 {
			return "", fmt.Errorf("analyze takes a log file path")
		}
		return automatic.AnalyzeLogFile(args[0])
	case "reset":
		sh.ev.Reset()
		return sh.display(), nil
	default:
		return "", fmt.Errorf("unknown command %q; try `help`", cmd)
	}
}

func shellLoop(cfg *config.Config, sig chan os.Signal) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mgomoku>\033[0m ",
		HistoryFile:     "/tmp/gomoku_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})

	if err != nil {
		panic(err)
	}
	defer l.Close()

	sh := newShell(cfg)
	showMessage(sh.display(), l.Stderr())

readlineLoop:
	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		switch {
		case line == "bye" || line == "exit":
			sig <- syscall.SIGINT
			break readlineLoop
		case strings.HasPrefix(line, "help"):
			if line == "help" {
				usage(l.Stderr())
			} else {
				usageTopic(l.Stderr(), strings.TrimSpace(line[len("help"):]))
			}
		case line == "":
		default:
			fields, err := shellquote.Split(line)
			if err != nil {
				showMessage("Error: "+err.Error(), l.Stderr())
				continue
			}
			out, err := sh.execute(fields[0], fields[1:])
			if err != nil {
				showMessage("Error: "+err.Error(), l.Stderr())
				continue
			}
			showMessage(out, l.Stderr())
		}
	}
	log.Debug().Msg("exiting readline loop")
}
