package automatic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"gonum.org/v1/gonum/stat"

	"github.com/yifanzh/gomoku/board"
)

// AnalyzeLogFile reads a self-play CSV file and spits out a bunch of
// statistics: result split, game-length moments, and a length
// histogram.
func AnalyzeLogFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	r := csv.NewReader(file)

	// Record looks like:
	// gameID,winner,moves

	var lengths []float64
	wins := map[string]int{}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if record[0] == "gameID" {
			// this is the header line
			continue
		}
		moves, err := strconv.Atoi(record[2])
		if err != nil {
			return "", err
		}
		wins[record[1]]++
		lengths = append(lengths, float64(moves))
	}
	games := len(lengths)
	if games == 0 {
		return "", fmt.Errorf("%s holds no games", filepath)
	}

	pct := func(n int) float64 { return 100.0 * float64(n) / float64(games) }
	var sb strings.Builder
	fmt.Fprintf(&sb, "Games played: %d\n", games)
	fmt.Fprintf(&sb, "Black wins: %d (%.3f%%)\n", wins[board.Black.String()], pct(wins[board.Black.String()]))
	fmt.Fprintf(&sb, "White wins: %d (%.3f%%)\n", wins[board.White.String()], pct(wins[board.White.String()]))
	fmt.Fprintf(&sb, "Draws: %d (%.3f%%)\n", wins[board.None.String()], pct(wins[board.None.String()]))
	fmt.Fprintf(&sb, "Game length mean: %.3f  stdev: %.3f\n",
		stat.Mean(lengths, nil), stat.StdDev(lengths, nil))

	sb.WriteString("Game length distribution:\n")
	hist := histogram.Hist(9, lengths)
	if err := histogram.Fprint(&sb, hist, histogram.Linear(40)); err != nil {
		return "", err
	}
	return sb.String(), nil
}
