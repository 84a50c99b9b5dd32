package engine_test

import (
	"context"
	"testing"

	"github.com/lgbarn/checkers-go/internal/engine"
	"github.com/lgbarn/checkers-go/internal/testutil"
)

var benchPositions = map[string]string{
	"Initial":   "B:B0,1,2,3,4,5,6,7,8,9,10,11:R20,21,22,23,24,25,26,27,28,29,30,31",
	"Midgame":   "B:B1,2,5,9,10,11,14:R12,13,17,22,25,26,29",
	"Kings":     "R:BK9,K18,27:RK13,K14,21",
	"MultiJump": "B:B1:R5,14,22,31",
}

func BenchmarkParsePosition(b *testing.B) {
	cfg := testutil.GameConfig(8, 0)
	for name, pos := range benchPositions {
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				engine.ParsePosition(cfg, pos)
			}
		})
	}
}

func BenchmarkLegalActions(b *testing.B) {
	for name, pos := range benchPositions {
		b.Run(name, func(b *testing.B) {
			g := testutil.MustPosition(b, 8, pos)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				g.LegalActions()
			}
		})
	}
}

func BenchmarkRandomGame(b *testing.B) {
	for i := 0; i < b.N; i++ {
		g := testutil.MustNewGame(b, 8, 500)
		engine.Play(context.Background(), g, engine.NewRandomStrategy(int64(i)), engine.NewRandomStrategy(int64(i)+1))
	}
}
