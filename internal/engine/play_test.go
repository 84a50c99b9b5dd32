package engine_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lgbarn/checkers-go/internal/checkers"
	"github.com/lgbarn/checkers-go/internal/engine"
	"github.com/lgbarn/checkers-go/internal/errors"
	"github.com/lgbarn/checkers-go/internal/testutil"
)

func TestPlay_RandomGameInvariants(t *testing.T) {
	for _, size := range []int{4, 6, 8, 10} {
		for seed := int64(1); seed <= 5; seed++ {
			g := testutil.MustNewGame(t, size, 400)
			kings := make(map[*checkers.Piece]bool)

			onTurn := func(g *engine.Game, applied engine.TurnResult) {
				testutil.AssertOccupancyMirrors(t, g)
				for _, c := range []checkers.Colour{checkers.Black, checkers.Red} {
					for _, p := range g.Player(c).Pieces() {
						if kings[p] && !p.King {
							t.Fatalf("piece on %d lost its crown", p.Position)
						}
						if p.King {
							kings[p] = true
						}
						if !p.King && g.Board().IsCrownTile(p.Owner, p.Position) {
							t.Fatalf("%s man on crowning tile %d", p.Owner, p.Position)
						}
					}
				}
			}

			black := engine.NewRandomStrategy(seed)
			red := engine.NewRandomStrategy(seed + 1000)
			out, err := engine.Play(context.Background(), g, black, red, engine.WithTurnCallback(onTurn))
			if err != nil {
				t.Fatalf("size %d seed %d: Play() error = %v", size, seed, err)
			}
			if !out.Over {
				t.Fatalf("size %d seed %d: game not over", size, seed)
			}
			if !out.Draw {
				// The loser has no legal action left.
				loser := g.Player(out.Winner.Opposite())
				testutil.AssertFalse(t, loser.HasAnyMove(g.Board(), g.Player(out.Winner)))
			}
		}
	}
}

func TestPlay_Deterministic(t *testing.T) {
	play := func() engine.Snapshot {
		g := testutil.MustNewGame(t, 8, 300)
		_, err := engine.Play(context.Background(), g, engine.NewRandomStrategy(7), engine.NewRandomStrategy(8))
		testutil.AssertNoError(t, err)
		return g.Snapshot()
	}
	testutil.AssertEqual(t, play(), play(), "same seeds give the same game")
}

func TestPlay_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := testutil.MustNewGame(t, 8, 0)
	_, err := engine.Play(ctx, g, engine.NewRandomStrategy(1), engine.NewRandomStrategy(2))
	testutil.AssertTrue(t, errors.Is(err, context.Canceled), "error = %v", err)
	testutil.AssertEqual(t, g.TurnCount(), 0)
}

func TestPlay_AlreadyOver(t *testing.T) {
	g := testutil.MustPosition(t, 8, "B:B:R20")
	out, err := engine.Play(context.Background(), g, engine.NewRandomStrategy(1), engine.NewRandomStrategy(2))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, out, engine.Outcome{Winner: checkers.Red, Over: true})
	testutil.AssertEqual(t, out.String(), "Red wins")
}

func TestRandomStrategy_ForcedCapture(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		g := testutil.MustPosition(t, 8, "B:B0,9:R12,13,22")
		action, err := engine.NewRandomStrategy(seed).ChooseTurn(context.Background(), g)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, action.Kind, engine.ActionChain, "seed %d", seed)

		legal := false
		for _, a := range g.LegalActions() {
			if a.String() == action.String() {
				legal = true
			}
		}
		testutil.AssertTrue(t, legal, "seed %d chose %s", seed, action)
	}
}

func TestRandomStrategy_ChainIsMaximal(t *testing.T) {
	g := testutil.MustPosition(t, 8, "B:B1:R5,14,31")
	before := g.Snapshot()

	action, err := engine.NewRandomStrategy(3).ChooseTurn(context.Background(), g)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, action.String(), "1x10x19")
	testutil.AssertEqual(t, g.Snapshot(), before, "choosing does not mutate the game")
}

func TestRandomStrategy_StopsOnCrowning(t *testing.T) {
	g := testutil.MustPosition(t, 8, "B:B20:R25,26")
	for seed := int64(0); seed < 8; seed++ {
		action, err := engine.NewRandomStrategy(seed).ChooseTurn(context.Background(), g)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, action.String(), "20x29", "seed %d", seed)
	}
}

func TestRandomStrategy_Logger(t *testing.T) {
	g := testutil.MustNewGame(t, 6, 0)

	var buf bytes.Buffer
	agent := engine.NewRandomStrategy(1).WithLogger(zerolog.New(&buf))
	_, err := agent.ChooseTurn(context.Background(), g)
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, buf.String(), `"colour":"Black"`)
	testutil.AssertContains(t, buf.String(), `"message":"random agent turn"`)
}

func TestRandomStrategy_LossWhenStuck(t *testing.T) {
	g := testutil.MustPosition(t, 8, "B:B11:R14,15,18")
	action, err := engine.NewRandomStrategy(1).ChooseTurn(context.Background(), g)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, action.Kind, engine.ActionLoss)
	testutil.AssertTrue(t, engine.NewRandomStrategy(1).Automated())
}
