package config

import (
	"fmt"
	"time"

	"github.com/lgbarn/checkers-go/internal/checkers"
	"github.com/lgbarn/checkers-go/internal/errors"
)

// GameConfig holds the rules configuration consumed when a game is set up.
// It never changes mid-game.
type GameConfig struct {
	// BoardSize is the side length in tiles (even, >= 4).
	BoardSize int

	// Invert draws Black at the top of the board. Orientation only.
	Invert bool

	// TurnLimit ends the game as a draw after this many turns (0 = no limit).
	TurnLimit int
}

// NewGameConfig creates a GameConfig with default values.
func NewGameConfig() *GameConfig {
	return &GameConfig{
		BoardSize: checkers.DefaultBoardSize,
	}
}

// Validate checks that the game configuration is valid.
func (g *GameConfig) Validate() error {
	if !checkers.ValidBoardSize(g.BoardSize) {
		return fmt.Errorf("board size %d must be even and between %d and %d: %w",
			g.BoardSize, checkers.MinBoardSize, checkers.MaxBoardSize, errors.ErrInvalidConfig)
	}
	if g.TurnLimit < 0 {
		return fmt.Errorf("turn limit %d is negative: %w", g.TurnLimit, errors.ErrInvalidConfig)
	}
	return nil
}

// Play modes, by number of human players.
const (
	ModeSimulation = 0
	ModeSingle     = 1
	ModeMulti      = 2
)

// PlayConfig holds settings for interactive play.
type PlayConfig struct {
	// Players is 0 for simulated games, 1 against the CPU, 2 for two humans.
	Players int

	// HumanColour is the side a single human player takes.
	HumanColour checkers.Colour

	// CPUDelay is the pause before CPU turns and between chain hops.
	CPUDelay time.Duration
}

// NewPlayConfig creates a PlayConfig with default values.
func NewPlayConfig() *PlayConfig {
	return &PlayConfig{
		Players:     ModeSingle,
		HumanColour: checkers.Black,
		CPUDelay:    500 * time.Millisecond,
	}
}

// Validate checks that the play configuration is valid.
func (p *PlayConfig) Validate() error {
	if p.Players < ModeSimulation || p.Players > ModeMulti {
		return fmt.Errorf("players must be 0, 1, or 2, got %d: %w", p.Players, errors.ErrInvalidConfig)
	}
	if p.CPUDelay < 0 {
		return fmt.Errorf("cpu delay %s is negative: %w", p.CPUDelay, errors.ErrInvalidConfig)
	}
	return nil
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is a zerolog level name (trace, debug, info, warn, error).
	Level string

	// Pretty enables human-readable console output instead of JSON.
	Pretty bool
}

// NewLogConfig creates a LogConfig with default values.
func NewLogConfig() *LogConfig {
	return &LogConfig{
		Level:  "info",
		Pretty: true,
	}
}

// Validate checks that the log level is known.
func (l *LogConfig) Validate() error {
	switch l.Level {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
		return nil
	default:
		return fmt.Errorf("unknown log level %q: %w", l.Level, errors.ErrInvalidConfig)
	}
}
