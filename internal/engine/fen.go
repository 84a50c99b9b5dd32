package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lgbarn/checkers-go/internal/checkers"
	"github.com/lgbarn/checkers-go/internal/config"
	"github.com/lgbarn/checkers-go/internal/errors"
)

// Position strings describe a game in three colon-separated fields: the side
// to move, Black's pieces and Red's pieces. Pieces are tile indices in
// ascending order with a K prefix for kings:
//
//	B:B0,1,2,K9:R13,K30
//
// A side with no pieces is written as just its letter ("R").

// Position returns the position string for the game.
func (g *Game) Position() string {
	var sb strings.Builder
	sb.WriteByte(g.turn.Letter())
	for _, c := range []checkers.Colour{checkers.Black, checkers.Red} {
		sb.WriteByte(':')
		sb.WriteByte(c.Letter())

		pieces := g.players[c].Pieces()
		sort.Slice(pieces, func(i, j int) bool { return pieces[i].Position < pieces[j].Position })
		for i, p := range pieces {
			if i > 0 {
				sb.WriteByte(',')
			}
			if p.King {
				sb.WriteByte('K')
			}
			sb.WriteString(p.Position.String())
		}
	}
	return sb.String()
}

// ParsePosition creates a game from a position string. The game starts its
// turn count at zero and is immediately evaluated, so a side to move with no
// legal action makes the game Terminal at once.
func ParsePosition(cfg config.GameConfig, s string) (*Game, error) {
	g, err := newEmptyGame(cfg)
	if err != nil {
		return nil, err
	}

	fields := strings.Split(strings.TrimSpace(s), ":")
	if len(fields) != 3 {
		return nil, &errors.PositionError{
			Err: errors.ErrInvalidPosition, Field: "position",
			Got: s, Expected: "three colon-separated fields",
		}
	}

	turn, err := parseSide(fields[0])
	if err != nil {
		return nil, &errors.PositionError{Err: errors.ErrInvalidPosition, Field: "side to move", Got: fields[0], Expected: "B or R"}
	}
	g.turn = turn

	for i, c := range []checkers.Colour{checkers.Black, checkers.Red} {
		if err := g.parsePieces(c, fields[i+1]); err != nil {
			return nil, err
		}
	}
	g.evaluate()
	return g, nil
}

func parseSide(s string) (checkers.Colour, error) {
	switch s {
	case "B":
		return checkers.Black, nil
	case "R":
		return checkers.Red, nil
	default:
		return checkers.Black, errors.ErrInvalidPosition
	}
}

// parsePieces reads one side's piece list and places the pieces.
func (g *Game) parsePieces(c checkers.Colour, field string) error {
	field = strings.TrimSpace(field)
	name := c.String() + " pieces"
	if field == "" || field[0] != c.Letter() {
		return &errors.PositionError{Err: errors.ErrInvalidPosition, Field: name, Got: field, Expected: string(c.Letter()) + " prefix"}
	}
	list := field[1:]
	if list == "" {
		return nil
	}

	for _, item := range strings.Split(list, ",") {
		king := strings.HasPrefix(item, "K")
		n, err := strconv.Atoi(strings.TrimPrefix(item, "K"))
		if err != nil {
			return &errors.PositionError{Err: errors.ErrInvalidPosition, Field: name, Got: item, Expected: "tile index"}
		}
		tile := checkers.TileIndex(n)
		switch {
		case !g.board.TileExists(tile):
			return &errors.PositionError{Err: errors.ErrInvalidPosition, Field: name, Got: item,
				Expected: fmt.Sprintf("tile below %d", g.board.NumTiles())}
		case g.board.IsOccupied(tile):
			return &errors.PositionError{Err: errors.ErrInvalidPosition, Field: name, Got: item, Expected: "unoccupied tile"}
		case !king && g.board.IsCrownTile(c, tile):
			return &errors.PositionError{Err: errors.ErrInvalidPosition, Field: name, Got: item, Expected: "king on the crowning row"}
		}
		g.players[c].addPiece(tile, king)
		g.board.SetOccupied(tile, true)
	}
	return nil
}
