package config

import (
	"fmt"

	"github.com/lgbarn/checkers-go/internal/errors"
)

// SimConfig holds settings for the random-play simulation driver.
type SimConfig struct {
	// Games is the number of independent games to play.
	Games int

	// Workers is the number of games played concurrently.
	Workers int

	// BufferSize is the worker pool channel buffer size.
	BufferSize int

	// Seed seeds the random agents. Game i uses Seed+i.
	Seed int64
}

// NewSimConfig creates a SimConfig with default values.
func NewSimConfig() *SimConfig {
	return &SimConfig{
		Games:      100,
		Workers:    1,
		BufferSize: 16,
		Seed:       1,
	}
}

// Validate checks that the simulation configuration is valid.
func (s *SimConfig) Validate() error {
	if s.Games < 1 {
		return fmt.Errorf("simulation count %d must be positive: %w", s.Games, errors.ErrInvalidConfig)
	}
	if s.Workers < 1 {
		return fmt.Errorf("worker count %d must be positive: %w", s.Workers, errors.ErrInvalidConfig)
	}
	if s.BufferSize < 1 {
		return fmt.Errorf("buffer size %d must be positive: %w", s.BufferSize, errors.ErrInvalidConfig)
	}
	return nil
}
