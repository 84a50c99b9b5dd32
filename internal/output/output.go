// Package output formats checkers games for people and programs: board
// diagrams, turn transcripts and JSON state.
package output

import (
	"fmt"
	"io"

	"github.com/lgbarn/checkers-go/internal/checkers"
	"github.com/lgbarn/checkers-go/internal/engine"
)

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
			o.needsSpace = false
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// Record is a game transcript: the position play started from, the turns
// applied since, and the game they produced.
type Record struct {
	Start string
	Turns []engine.TurnResult
	Game  *engine.Game
}

// NewRecord starts a transcript of g from its current position.
func NewRecord(g *engine.Game) *Record {
	return &Record{Start: g.Position(), Game: g}
}

// Add appends a resolved turn. Its signature matches engine.WithTurnCallback.
func (r *Record) Add(_ *engine.Game, t engine.TurnResult) {
	r.Turns = append(r.Turns, t)
}

// Result returns the result token: "2-0" when Black won, "0-2" when Red
// won, "1-1" for a draw and "*" while the game runs.
func Result(g *engine.Game) string {
	if g.IsDraw() {
		return "1-1"
	}
	w, ok := g.Winner()
	switch {
	case !ok:
		return "*"
	case w == checkers.Black:
		return "2-0"
	default:
		return "0-2"
	}
}

// OutputRecord writes the transcript as a header block followed by the
// numbered turns, wrapped at maxLineLength:
//
//	[Start "B:B0,1,2,3:R28,29,30,31"]
//	[Size "8"]
//	[Result "2-0"]
//
//	1. 9-13 22-18 2. 13x22 ...
func OutputRecord(w io.Writer, r *Record, maxLineLength int) {
	fmt.Fprintf(w, "[Start \"%s\"]\n", r.Start)
	fmt.Fprintf(w, "[Size \"%d\"]\n", r.Game.Config().BoardSize)
	fmt.Fprintf(w, "[Result \"%s\"]\n", Result(r.Game))
	fmt.Fprintln(w)
	outputTurns(w, r, maxLineLength)
	fmt.Fprintln(w)
}

// outputTurns writes the numbered turn list and the result token.
func outputTurns(w io.Writer, r *Record, maxLineLength int) {
	ow := NewOutputWriter(w, maxLineLength)

	moveNum := 1
	isBlack := len(r.Start) == 0 || r.Start[0] == checkers.Black.Letter()
	for i, t := range r.Turns {
		if isBlack {
			ow.Write(fmt.Sprintf("%d.", moveNum))
		} else if i == 0 {
			// Red to move at start
			ow.Write(fmt.Sprintf("%d...", moveNum))
		}
		ow.Write(t.String())

		if !isBlack {
			moveNum++
		}
		isBlack = !isBlack
	}
	ow.Write(Result(r.Game))
	ow.NewLine()
}
