// Package testutil provides shared test utilities for the checkers-go project.
// These utilities reduce code duplication across test files and provide
// consistent test setup helpers.
package testutil

import (
	"testing"

	"github.com/lgbarn/checkers-go/internal/config"
	"github.com/lgbarn/checkers-go/internal/engine"
)

// GameConfig returns a game configuration for the given board size and
// turn limit.
func GameConfig(size, turnLimit int) config.GameConfig {
	cfg := config.NewGameConfig()
	cfg.BoardSize = size
	cfg.TurnLimit = turnLimit
	return *cfg
}

// ParseTestPosition parses a position string on a board of the given size,
// or returns nil if it is not valid. Use this for tests where a parse
// failure is an acceptable outcome.
func ParseTestPosition(size int, pos string) *engine.Game {
	g, err := engine.ParsePosition(GameConfig(size, 0), pos)
	if err != nil {
		return nil
	}
	return g
}

// MustPosition parses a position string on a board of the given size.
// It calls t.Fatal if the position is invalid.
func MustPosition(t testing.TB, size int, pos string) *engine.Game {
	t.Helper()
	g, err := engine.ParsePosition(GameConfig(size, 0), pos)
	if err != nil {
		t.Fatalf("failed to parse position %q: %v", pos, err)
	}
	return g
}

// MustNewGame creates a game in the starting layout.
// It calls t.Fatal if the configuration is invalid.
func MustNewGame(t testing.TB, size, turnLimit int) *engine.Game {
	t.Helper()
	g, err := engine.NewGame(GameConfig(size, turnLimit))
	if err != nil {
		t.Fatalf("failed to create %dx%d game: %v", size, size, err)
	}
	return g
}

// MustResolve applies an action and fails the test if it is rejected.
func MustResolve(t testing.TB, g *engine.Game, action engine.TurnResult) engine.TurnResult {
	t.Helper()
	applied, err := g.ResolveTurn(action)
	if err != nil {
		t.Fatalf("ResolveTurn(%s) failed: %v", action, err)
	}
	return applied
}
