package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/checkers-go/internal/checkers"
	"github.com/lgbarn/checkers-go/internal/engine"
)

// RenderBoard draws g as text. Each playable tile shows its piece letter
// (b, r, B, R) or, when empty, its tile index so players can read off
// moves. Red is at the top unless invert is set, in which case the board is
// turned around and Black is at the top.
func RenderBoard(w io.Writer, g *engine.Game, invert bool) error {
	board := g.Board()
	size := board.Size()
	letters := make(map[checkers.TileIndex]byte)
	for _, c := range []checkers.Colour{checkers.Black, checkers.Red} {
		for _, p := range g.Player(c).Pieces() {
			letters[p.Position] = p.Letter()
		}
	}

	width := len(fmt.Sprint(board.NumTiles() - 1))
	border := "+" + strings.Repeat("-", size*(width+2)) + "+\n"

	var sb strings.Builder
	sb.WriteString(border)
	for r := 0; r < size; r++ {
		row := size - 1 - r
		if invert {
			row = r
		}
		sb.WriteByte('|')
		for c := 0; c < size; c++ {
			col := c
			if invert {
				col = size - 1 - c
			}
			tile, ok := board.TileAt(row, col)
			switch {
			case !ok:
				sb.WriteString(strings.Repeat(" ", width+2))
			case letters[tile] != 0:
				fmt.Fprintf(&sb, " %*c ", width, letters[tile])
			default:
				fmt.Fprintf(&sb, " %*d ", width, tile)
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	fmt.Fprintf(&sb, "%s\n", Status(g))

	_, err := io.WriteString(w, sb.String())
	return err
}

// Status describes whose turn it is or how the game ended.
func Status(g *engine.Game) string {
	switch {
	case g.IsDraw():
		return fmt.Sprintf("Draw after %d turns", g.TurnCount())
	case g.IsOver():
		w, _ := g.Winner()
		return fmt.Sprintf("%s wins after %d turns", w, g.TurnCount())
	default:
		return fmt.Sprintf("%s to move (turn %d)", g.Turn(), g.TurnCount()+1)
	}
}
