package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/checkers-go/internal/checkers"
	"github.com/lgbarn/checkers-go/internal/engine"
)

// AssertOccupancyMirrors fails if the board's occupancy flags differ from
// the tiles held by the two players, or if two pieces share a tile.
func AssertOccupancyMirrors(t testing.TB, g *engine.Game) {
	t.Helper()
	held := make([]bool, g.Board().NumTiles())
	for _, c := range []checkers.Colour{checkers.Black, checkers.Red} {
		for _, tile := range g.Player(c).Tiles() {
			if held[tile] {
				t.Errorf("two pieces on tile %d in %s", tile, g.Position())
				return
			}
			held[tile] = true
		}
	}
	if diff := cmp.Diff(held, g.Board().Occupancy()); diff != "" {
		t.Errorf("occupancy does not mirror pieces in %s (-pieces +board):\n%s", g.Position(), diff)
	}
}

// AssertSameGame fails if two games differ in turn, pieces, occupancy or
// result.
func AssertSameGame(t testing.TB, got, want *engine.Game, msgAndArgs ...interface{}) {
	t.Helper()
	if diff := cmp.Diff(want.Snapshot(), got.Snapshot()); diff != "" {
		fail(t, msgAndArgs, "game %s differs from %s (-want +got):\n%s", got.Position(), want.Position(), diff)
	}
}

// AssertPosition fails if g is not in the given position.
func AssertPosition(t testing.TB, g *engine.Game, want string, msgAndArgs ...interface{}) {
	t.Helper()
	if got := g.Position(); got != want {
		fail(t, msgAndArgs, "position %s, want %s", got, want)
	}
}
