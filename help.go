package main

import "io"

const usageText = `commands:
play <pos>... - play one or more moves, e.g. play H8 I9
undo [n] - take back the last n moves (default 1)
show - display the board
scores [black|white] - top scored cells for a side
density [black|white] - stone density field for a colour
random - play a random legal move
rollout [n] - estimate chances with n random playouts (default 100)
save <file> / load <file> - write or read a game record
autoplay [games] [threads] [bot] - run a self-play batch
analyze <file> - statistics for a self-play log
reset - start a new game
exit - leave the shell
`

var helpTopics = map[string]string{
	"play": `play <pos>...
Positions use column letter A-O and row number 1-15, e.g. H8 is the
centre. Several positions can be given to play out a sequence.
`,
	"scores": `scores [black|white]
Lists the ten highest-scored cells from the given side's point of
view. "attack" is the value of the side's own threats through the
cell, "defence" the value of the opponent threats it would answer.
`,
	"rollout": `rollout [n]
Plays n uniformly random games to the end from the current position
and reports the side to move's average result (win 1, draw 0.5).
`,
	"autoplay": `autoplay [games] [threads] [bot]
Plays bot-vs-bot games in parallel and appends one CSV line per game
to the configured log file. Bots: random (default), greedy.
`,
}

func usage(w io.Writer) {
	io.WriteString(w, usageText)
}

func usageTopic(w io.Writer, topic string) {
	text, ok := helpTopics[topic]
	if !ok {
		io.WriteString(w, "There is no help text for the topic "+topic+"\n")
		return
	}
	io.WriteString(w, text)
}
