package engine

import (
	"context"
	"fmt"

	"github.com/lgbarn/checkers-go/internal/checkers"
)

// Outcome is the result of a game.
type Outcome struct {
	Winner checkers.Colour
	Draw   bool
	Over   bool
	Turns  int
}

// String returns "Black wins", "Red wins", "draw" or "in progress".
func (o Outcome) String() string {
	switch {
	case !o.Over:
		return "in progress"
	case o.Draw:
		return "draw"
	default:
		return o.Winner.String() + " wins"
	}
}

// Play drives g to Terminal, asking black and red for their turns in order.
// Any strategy error or rejected action stops play and is returned; the
// caller decides whether a human gets another try.
func Play(ctx context.Context, g *Game, black, red Strategy, opts ...TurnOption) (Outcome, error) {
	o := buildTurnOptions(opts)
	for !g.IsOver() {
		if err := ctx.Err(); err != nil {
			return g.Outcome(), err
		}

		s := black
		if g.Turn() == checkers.Red {
			s = red
		}
		action, err := s.ChooseTurn(ctx, g)
		if err != nil {
			return g.Outcome(), fmt.Errorf("%s turn %d: %w", g.Turn(), g.TurnCount()+1, err)
		}

		applied, err := g.ResolveTurn(action, opts...)
		if err != nil {
			return g.Outcome(), err
		}
		if o.onTurn != nil {
			o.onTurn(g, applied)
		}
	}
	return g.Outcome(), nil
}
