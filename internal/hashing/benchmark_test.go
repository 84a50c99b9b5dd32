package hashing

import (
	"testing"

	"github.com/lgbarn/checkers-go/internal/testutil"
)

var benchPositions = map[string]string{
	"Initial": "B:B0,1,2,3,4,5,6,7,8,9,10,11:R20,21,22,23,24,25,26,27,28,29,30,31",
	"Midgame": "B:B1,2,5,9,10,11,14:R12,13,17,22,25,26,29",
	"Endgame": "R:BK9,K18:RK13",
}

func BenchmarkGenerateZobristHash(b *testing.B) {
	for name, pos := range benchPositions {
		b.Run(name, func(b *testing.B) {
			g := testutil.MustPosition(b, 8, pos)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				GenerateZobristHash(g)
			}
		})
	}
}

func BenchmarkWeakHash(b *testing.B) {
	for name, pos := range benchPositions {
		b.Run(name, func(b *testing.B) {
			g := testutil.MustPosition(b, 8, pos)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				WeakHash(g)
			}
		})
	}
}

func BenchmarkDuplicateDetector_CheckAndAdd(b *testing.B) {
	g := testutil.MustPosition(b, 8, benchPositions["Midgame"])
	d := NewDuplicateDetector(false)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.CheckAndAdd(g)
	}
}
