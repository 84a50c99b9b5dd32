package engine

import (
	"context"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/lgbarn/checkers-go/internal/checkers"
)

// Strategy chooses a side's action for a turn. Implementations include the
// random agent, console input and a network peer.
type Strategy interface {
	// ChooseTurn returns the action for the side to move in g. It must not
	// mutate g.
	ChooseTurn(ctx context.Context, g *Game) (TurnResult, error)

	// Automated reports whether the strategy plays without human input.
	Automated() bool
}

// RandomStrategy picks uniformly among the legal actions, honouring forced
// capture and chain continuation. It is not safe for concurrent use.
type RandomStrategy struct {
	rng    *rand.Rand
	logger zerolog.Logger
}

// NewRandomStrategy creates a random agent with a deterministic seed. It
// logs nothing until given a logger with WithLogger.
func NewRandomStrategy(seed int64) *RandomStrategy {
	return &RandomStrategy{rng: rand.New(rand.NewSource(seed)), logger: zerolog.Nop()}
}

// WithLogger sets the logger that receives a debug event per turn.
func (r *RandomStrategy) WithLogger(l zerolog.Logger) *RandomStrategy {
	r.logger = l
	return r
}

// Automated always returns true.
func (r *RandomStrategy) Automated() bool { return true }

type pieceMove struct {
	from checkers.TileIndex
	to   checkers.TileIndex
}

type pieceJump struct {
	from checkers.TileIndex
	jump checkers.Jump
}

// ChooseTurn picks a random action. If the side can capture, a random jump
// is chosen and then the same piece keeps jumping at random until the chain
// ends. Otherwise a random simple move is chosen.
func (r *RandomStrategy) ChooseTurn(ctx context.Context, g *Game) (TurnResult, error) {
	if err := ctx.Err(); err != nil {
		return TurnResult{}, err
	}
	if g.IsOver() {
		return Loss(), nil
	}

	active, opponent := g.Player(g.Turn()), g.Player(g.Turn().Opposite())
	r.logger.Debug().
		Str("colour", g.Turn().String()).
		Int("score", active.Score()).
		Int("opponent_score", opponent.Score()).
		Msg("random agent turn")

	if !active.CanCapture(g.board, opponent) {
		var moves []pieceMove
		for _, piece := range active.pieces {
			for _, to := range LegalMoves(g.board, piece) {
				moves = append(moves, pieceMove{from: piece.Position, to: to})
			}
		}
		if len(moves) == 0 {
			return Loss(), nil
		}
		m := moves[r.rng.Intn(len(moves))]
		return Move(m.from, m.to), nil
	}

	var jumps []pieceJump
	for _, piece := range active.pieces {
		for _, j := range LegalJumps(g.board, piece, opponent.Tiles()) {
			jumps = append(jumps, pieceJump{from: piece.Position, jump: j})
		}
	}
	first := jumps[r.rng.Intn(len(jumps))]

	scratch := g.Clone()
	sOpp := scratch.players[scratch.turn.Opposite()]
	piece := scratch.players[scratch.turn].PieceAt(first.from)

	chain := checkers.Chain{first.jump}
	crowned := ApplyJump(scratch.board, piece, sOpp, first.jump)
	for !crowned {
		next := LegalJumps(scratch.board, piece, sOpp.Tiles())
		if len(next) == 0 {
			break
		}
		j := next[r.rng.Intn(len(next))]
		chain = append(chain, j)
		crowned = ApplyJump(scratch.board, piece, sOpp, j)
	}
	return Capture(first.from, chain), nil
}
