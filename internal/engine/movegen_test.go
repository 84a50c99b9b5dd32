package engine_test

import (
	"testing"

	"github.com/lgbarn/checkers-go/internal/checkers"
	"github.com/lgbarn/checkers-go/internal/engine"
	"github.com/lgbarn/checkers-go/internal/testutil"
)

func tiles(ts ...int) []checkers.TileIndex {
	out := make([]checkers.TileIndex, len(ts))
	for i, t := range ts {
		out[i] = checkers.TileIndex(t)
	}
	return out
}

func TestPossibleNeighbors(t *testing.T) {
	tests := []struct {
		name  string
		pos   string
		tile  checkers.TileIndex
		owner checkers.Colour
		want  []checkers.TileIndex
	}{
		{"black man even row", "B:B9:R31", 9, checkers.Black, tiles(12, 13)},
		{"black man odd row", "B:B13:R31", 13, checkers.Black, tiles(17, 18)},
		{"black man left edge", "B:B8:R31", 8, checkers.Black, tiles(12)},
		{"black man right edge", "B:B7:R31", 7, checkers.Black, tiles(11)},
		{"red man odd row", "R:B0:R13", 13, checkers.Red, tiles(9, 10)},
		{"red man even row", "R:B0:R18", 18, checkers.Red, tiles(13, 14)},
		{"black king", "B:BK13:R31", 13, checkers.Black, tiles(17, 18, 9, 10)},
		{"red king on back row", "R:B0:RK28", 28, checkers.Red, tiles(24, 25)},
		{"black man home corner", "B:B0:R31", 0, checkers.Black, tiles(4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testutil.MustPosition(t, 8, tt.pos)
			piece := g.Player(tt.owner).PieceAt(tt.tile)
			if piece == nil {
				t.Fatalf("no piece on %d", tt.tile)
			}
			testutil.AssertEqual(t, engine.PossibleNeighbors(g.Board(), piece), tt.want)
		})
	}
}

func TestLegalMoves(t *testing.T) {
	tests := []struct {
		name string
		pos  string
		tile checkers.TileIndex
		want []checkers.TileIndex
	}{
		{"both open", "B:B9:R31", 9, tiles(12, 13)},
		{"one blocked by own piece", "B:B9,13:R31", 9, tiles(12)},
		{"one blocked by opponent", "B:B9:R12", 9, tiles(13)},
		{"fully blocked", "B:B0,4:R31", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testutil.MustPosition(t, 8, tt.pos)
			piece := g.Player(checkers.Black).PieceAt(tt.tile)
			testutil.AssertEqual(t, engine.LegalMoves(g.Board(), piece), tt.want)
		})
	}
}

func TestLegalJumps(t *testing.T) {
	tests := []struct {
		name string
		pos  string
		tile checkers.TileIndex
		want []checkers.Jump
	}{
		{
			name: "single jump up right",
			pos:  "B:B9:R13",
			tile: 9,
			want: []checkers.Jump{{Captured: 13, Landing: 18}},
		},
		{
			name: "two jumps",
			pos:  "B:B9:R12,13",
			tile: 9,
			want: []checkers.Jump{{Captured: 12, Landing: 16}, {Captured: 13, Landing: 18}},
		},
		{
			name: "landing occupied",
			pos:  "B:B9,18:R13",
			tile: 9,
			want: nil,
		},
		{
			name: "captured piece on side edge",
			pos:  "B:B11:R15",
			tile: 11,
			want: nil,
		},
		{
			name: "captured piece on back row",
			pos:  "B:BK24:R28",
			tile: 24,
			want: nil,
		},
		{
			name: "own piece not captured",
			pos:  "B:B9,13:R31",
			tile: 9,
			want: nil,
		},
		{
			name: "men do not capture backwards",
			pos:  "B:B18:R13",
			tile: 18,
			want: nil,
		},
		{
			name: "kings capture backwards",
			pos:  "B:BK18:R13,14",
			tile: 18,
			want: []checkers.Jump{{Captured: 13, Landing: 9}, {Captured: 14, Landing: 11}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testutil.MustPosition(t, 8, tt.pos)
			piece := g.Player(checkers.Black).PieceAt(tt.tile)
			got := engine.LegalJumps(g.Board(), piece, g.Player(checkers.Red).Tiles())
			testutil.AssertEqual(t, got, tt.want)
		})
	}
}

func TestApplyMove(t *testing.T) {
	g := testutil.MustPosition(t, 8, "B:B9:R31")
	piece := g.Player(checkers.Black).PieceAt(9)

	crowned := engine.ApplyMove(g.Board(), piece, 13)

	testutil.AssertFalse(t, crowned, "man moving to row 3 is not crowned")
	testutil.AssertEqual(t, piece.Position, checkers.TileIndex(13))
	testutil.AssertFalse(t, g.Board().IsOccupied(9), "source cleared")
	testutil.AssertTrue(t, g.Board().IsOccupied(13), "destination set")
}

func TestApplyMove_Crowns(t *testing.T) {
	tests := []struct {
		name        string
		pos         string
		colour      checkers.Colour
		from        checkers.TileIndex
		to          checkers.TileIndex
		wantCrowned bool
		wantKing    bool
	}{
		{"black reaches row 7", "B:B25:R6", checkers.Black, 25, 29, true, true},
		{"red reaches row 0", "R:BK31:R6", checkers.Red, 6, 2, true, true},
		{"black stays a man", "B:B21:R6", checkers.Black, 21, 25, false, false},
		{"king is not crowned again", "R:B25:RK6", checkers.Red, 6, 2, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testutil.MustPosition(t, 8, tt.pos)
			piece := g.Player(tt.colour).PieceAt(tt.from)
			got := engine.ApplyMove(g.Board(), piece, tt.to)
			testutil.AssertEqual(t, got, tt.wantCrowned, "crowned")
			testutil.AssertEqual(t, piece.King, tt.wantKing, "king")
		})
	}
}

func TestApplyMove_OccupiedPanics(t *testing.T) {
	g := testutil.MustPosition(t, 8, "B:B9,13:R31")
	piece := g.Player(checkers.Black).PieceAt(9)

	defer func() {
		if r := recover(); r == nil {
			t.Error("ApplyMove onto an occupied tile should panic")
		}
	}()
	engine.ApplyMove(g.Board(), piece, 13)
}

func TestApplyJump(t *testing.T) {
	g := testutil.MustPosition(t, 8, "B:B9:R13,31")
	black, red := g.Player(checkers.Black), g.Player(checkers.Red)
	piece := black.PieceAt(9)

	crowned := engine.ApplyJump(g.Board(), piece, red, checkers.Jump{Captured: 13, Landing: 18})

	testutil.AssertFalse(t, crowned)
	testutil.AssertEqual(t, piece.Position, checkers.TileIndex(18))
	testutil.AssertEqual(t, red.Tiles(), tiles(31))
	testutil.AssertFalse(t, g.Board().IsOccupied(9), "source cleared")
	testutil.AssertFalse(t, g.Board().IsOccupied(13), "captured tile cleared")
	testutil.AssertTrue(t, g.Board().IsOccupied(18), "landing set")
}

func TestApplyChain_HopCallback(t *testing.T) {
	g := testutil.MustPosition(t, 8, "B:B1:R5,14,31")
	piece := g.Player(checkers.Black).PieceAt(1)
	chain := checkers.Chain{{Captured: 5, Landing: 10}, {Captured: 14, Landing: 19}}

	var hops []checkers.Jump
	crowned := engine.ApplyChain(g.Board(), piece, g.Player(checkers.Red), chain, func(j checkers.Jump) {
		hops = append(hops, j)
	})

	testutil.AssertFalse(t, crowned)
	testutil.AssertEqual(t, hops, []checkers.Jump{{Captured: 5, Landing: 10}}, "callback runs between hops only")
	testutil.AssertEqual(t, piece.Position, checkers.TileIndex(19))
	testutil.AssertEqual(t, g.Player(checkers.Red).Tiles(), tiles(31))
	testutil.AssertEqual(t, g.Board().OccupiedCount(), 2)
}

func TestApplyChain_NilCallback(t *testing.T) {
	g := testutil.MustPosition(t, 8, "B:B1:R5,14,31")
	piece := g.Player(checkers.Black).PieceAt(1)
	chain := checkers.Chain{{Captured: 5, Landing: 10}, {Captured: 14, Landing: 19}}

	engine.ApplyChain(g.Board(), piece, g.Player(checkers.Red), chain, nil)
	testutil.AssertEqual(t, piece.Position, checkers.TileIndex(19))
}
