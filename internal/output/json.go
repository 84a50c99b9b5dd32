package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/lgbarn/checkers-go/internal/checkers"
	"github.com/lgbarn/checkers-go/internal/engine"
	"github.com/lgbarn/checkers-go/internal/hashing"
)

// Status values in JSONGame.
const (
	StatusBlackToMove = "black_to_move"
	StatusRedToMove   = "red_to_move"
	StatusOver        = "over"
)

// JSONGame represents a game state in JSON format.
type JSONGame struct {
	Position  string      `json:"fen"`
	BoardSize int         `json:"boardSize"`
	Turn      string      `json:"turn"`
	Status    string      `json:"status"`
	Winner    string      `json:"winner,omitempty"` // "black", "red" or "draw"
	Turns     int         `json:"turns"`
	Hash      string      `json:"hash"`
	Pieces    []JSONPiece `json:"pieces"`

	// Transcript fields, set by RecordToJSON only.
	Start  string   `json:"start,omitempty"`
	Moves  []string `json:"moves,omitempty"`
	Result string   `json:"result,omitempty"`
}

// JSONPiece represents one piece in JSON format.
type JSONPiece struct {
	Tile   int    `json:"tile"`
	Colour string `json:"colour"`
	King   bool   `json:"king,omitempty"`
	Row    int    `json:"row"`
	Column int    `json:"column"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

func colourName(c checkers.Colour) string {
	return strings.ToLower(c.String())
}

// GameToJSON converts a game's current state to JSON format.
func GameToJSON(g *engine.Game) *JSONGame {
	board := g.Board()
	jg := &JSONGame{
		Position:  g.Position(),
		BoardSize: board.Size(),
		Turn:      colourName(g.Turn()),
		Turns:     g.TurnCount(),
		Hash:      fmt.Sprintf("%016x", hashing.GenerateZobristHash(g)),
		Pieces:    make([]JSONPiece, 0, board.OccupiedCount()),
	}

	switch g.State() {
	case engine.BlackToMove:
		jg.Status = StatusBlackToMove
	case engine.RedToMove:
		jg.Status = StatusRedToMove
	default:
		jg.Status = StatusOver
		if w, ok := g.Winner(); ok {
			jg.Winner = colourName(w)
		} else {
			jg.Winner = "draw"
		}
	}

	for _, c := range []checkers.Colour{checkers.Black, checkers.Red} {
		for _, p := range g.Player(c).Pieces() {
			jg.Pieces = append(jg.Pieces, JSONPiece{
				Tile:   int(p.Position),
				Colour: colourName(p.Owner),
				King:   p.King,
				Row:    board.Row(p.Position),
				Column: board.Column(p.Position),
			})
		}
	}
	sort.Slice(jg.Pieces, func(i, j int) bool { return jg.Pieces[i].Tile < jg.Pieces[j].Tile })
	return jg
}

// RecordToJSON converts a transcript to JSON format: the final state plus
// the starting position, the turns in notation and the result token.
func RecordToJSON(r *Record) *JSONGame {
	jg := GameToJSON(r.Game)
	jg.Start = r.Start
	jg.Result = Result(r.Game)
	jg.Moves = make([]string, len(r.Turns))
	for i, t := range r.Turns {
		jg.Moves[i] = t.String()
	}
	return jg
}

// OutputGameJSON writes a single game state in indented JSON format.
func OutputGameJSON(w io.Writer, g *engine.Game) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(GameToJSON(g))
}
