// Package sim plays many independent random-vs-random games and tallies the
// results.
package sim

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/lgbarn/checkers-go/internal/checkers"
	"github.com/lgbarn/checkers-go/internal/config"
	"github.com/lgbarn/checkers-go/internal/engine"
	"github.com/lgbarn/checkers-go/internal/hashing"
	"github.com/lgbarn/checkers-go/internal/worker"
)

// Tally is the aggregate result of a simulation run.
type Tally struct {
	Games          int
	Black          int
	Red            int
	Draws          int
	TotalTurns     int
	DistinctFinals int
	RepeatedFinals int // games whose final position an earlier game already reached
}

// String formats the win counts.
func (t Tally) String() string {
	s := fmt.Sprintf("Wins: black=%d red=%d", t.Black, t.Red)
	if t.Draws > 0 {
		s += fmt.Sprintf(" draws=%d", t.Draws)
	}
	return s
}

// AverageTurns returns the mean game length.
func (t Tally) AverageTurns() float64 {
	if t.Games == 0 {
		return 0
	}
	return float64(t.TotalTurns) / float64(t.Games)
}

// add records one finished game.
func (t *Tally) add(out engine.Outcome) {
	t.Games++
	t.TotalTurns += out.Turns
	switch {
	case out.Draw:
		t.Draws++
	case out.Winner == checkers.Black:
		t.Black++
	default:
		t.Red++
	}
}

// Run plays simCfg.Games games. Game i seeds its agents from simCfg.Seed+i,
// so a run is reproducible and does not depend on the worker count.
func Run(ctx context.Context, gameCfg config.GameConfig, simCfg config.SimConfig) (Tally, error) {
	if err := gameCfg.Validate(); err != nil {
		return Tally{}, err
	}
	if err := simCfg.Validate(); err != nil {
		return Tally{}, err
	}

	log.Info().
		Int("games", simCfg.Games).
		Int("workers", simCfg.Workers).
		Int("board_size", gameCfg.BoardSize).
		Int64("seed", simCfg.Seed).
		Msg("starting simulation")

	var (
		tally Tally
		err   error
	)
	if simCfg.Workers == 1 {
		tally, err = runSequential(ctx, gameCfg, simCfg)
	} else {
		tally, err = runParallel(ctx, gameCfg, simCfg)
	}
	if err != nil {
		return tally, err
	}

	log.Info().
		Int("black", tally.Black).
		Int("red", tally.Red).
		Int("draws", tally.Draws).
		Float64("avg_turns", tally.AverageTurns()).
		Int("distinct_finals", tally.DistinctFinals).
		Int("repeated_finals", tally.RepeatedFinals).
		Msg("simulation finished")
	return tally, nil
}

// runSequential reuses one game, resetting the board and both players
// between runs.
func runSequential(ctx context.Context, gameCfg config.GameConfig, simCfg config.SimConfig) (Tally, error) {
	g, err := engine.NewGame(gameCfg)
	if err != nil {
		return Tally{}, err
	}
	finals := hashing.NewDuplicateDetector(false)

	var tally Tally
	for i := 0; i < simCfg.Games; i++ {
		g.Reset()
		bs, rs := worker.AgentSeeds(simCfg.Seed + int64(i))
		out, err := engine.Play(ctx, g, engine.NewRandomStrategy(bs), engine.NewRandomStrategy(rs))
		if err != nil {
			return tally, fmt.Errorf("game %d: %w", i, err)
		}
		tally.add(out)
		repeat := finals.CheckAndAdd(g)
		log.Debug().Int("game", i).Int("turns", out.Turns).Str("result", out.String()).
			Bool("repeat", repeat).Msg("game finished")
	}
	tally.DistinctFinals = finals.UniqueCount()
	tally.RepeatedFinals = finals.DuplicateCount()
	return tally, nil
}

// runParallel plays games on the worker pool, one fresh game per item.
func runParallel(ctx context.Context, gameCfg config.GameConfig, simCfg config.SimConfig) (Tally, error) {
	finals := hashing.NewThreadSafeDuplicateDetector(false)
	pool := worker.NewPoolWithOptions(
		worker.RandomGameFunc(ctx, gameCfg, finals),
		worker.WithWorkers(simCfg.Workers),
		worker.WithBufferSize(simCfg.BufferSize),
	)
	pool.Start()

	go func() {
		for i := 0; i < simCfg.Games; i++ {
			if ctx.Err() != nil {
				pool.Stop()
				break
			}
			pool.Submit(worker.WorkItem{Index: i, Seed: simCfg.Seed + int64(i)})
		}
		pool.Close()
	}()

	var (
		tally    Tally
		firstErr error
	)
	for result := range pool.Results() {
		if result.Error != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("game %d: %w", result.Index, result.Error)
				pool.Stop()
			}
			continue
		}
		tally.add(result.Outcome)
		if result.Duplicate {
			tally.RepeatedFinals++
		}
		log.Debug().Int("game", result.Index).Int("turns", result.Outcome.Turns).
			Str("result", result.Outcome.String()).Bool("repeat", result.Duplicate).Msg("game finished")
	}
	tally.DistinctFinals = finals.UniqueCount()

	if firstErr == nil {
		firstErr = ctx.Err()
	}
	return tally, firstErr
}
