package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/lgbarn/checkers-go/internal/checkers"
	"github.com/lgbarn/checkers-go/internal/config"
	"github.com/lgbarn/checkers-go/internal/engine"
	"github.com/lgbarn/checkers-go/internal/httpserver"
	"github.com/lgbarn/checkers-go/internal/netplay"
	"github.com/lgbarn/checkers-go/internal/output"
	"github.com/lgbarn/checkers-go/internal/processing"
	"github.com/lgbarn/checkers-go/internal/sim"
	"github.com/lgbarn/checkers-go/internal/worker"
)

// runSim plays cfg.Sim.Games games and prints the tally.
func runSim(ctx context.Context, cfg *config.Config) error {
	start := time.Now()
	tally, err := sim.Run(ctx, *cfg.Game, *cfg.Sim)
	if err != nil {
		return err
	}
	fmt.Fprintln(cfg.OutputFile, tally)
	log.Info().
		Int("games", tally.Games).
		Float64("avg_turns", tally.AverageTurns()).
		Dur("elapsed", time.Since(start)).
		Msg("done")
	return nil
}

// playSeed is the CPU seed for interactive play: --seed when given,
// otherwise the clock.
func playSeed(c *cli.Context) int64 {
	if c.IsSet("seed") {
		return c.Int64("seed")
	}
	return time.Now().UnixNano()
}

// runPlay plays one game on this terminal. With no human players the CPU
// plays both sides and every turn is printed.
func runPlay(ctx context.Context, cfg *config.Config, in io.Reader, seed int64, format string) error {
	writer, err := output.NewGameWriter(format, cfg.OutputFile)
	if err != nil {
		return err
	}
	g, err := engine.NewGame(*cfg.Game)
	if err != nil {
		return err
	}

	invert := cfg.Game.Invert
	if cfg.Play.Players == config.ModeSingle && cfg.Play.HumanColour == checkers.Red {
		invert = !invert
	}
	console := NewConsoleStrategy(in, cfg.OutputFile, invert)
	blackSeed, redSeed := worker.AgentSeeds(seed)

	cpu := func(seed int64) engine.Strategy {
		return engine.NewRandomStrategy(seed).WithLogger(log.Logger)
	}
	var black, red engine.Strategy
	switch cfg.Play.Players {
	case config.ModeSimulation:
		black, red = cpu(blackSeed), cpu(redSeed)
	case config.ModeSingle:
		if cfg.Play.HumanColour == checkers.Black {
			black, red = console, cpu(redSeed)
		} else {
			black, red = cpu(blackSeed), console
		}
	default:
		black, red = console, console
	}

	record := output.NewRecord(g)
	watch := cfg.Play.Players == config.ModeSimulation
	opts := []engine.TurnOption{
		engine.WithTurnCallback(func(g *engine.Game, applied engine.TurnResult) {
			record.Add(g, applied)
			fmt.Fprintf(cfg.OutputFile, "%s plays %s\n", g.Turn().Opposite(), applied)
			if watch {
				_ = output.RenderBoard(cfg.OutputFile, g, invert)
			}
		}),
	}
	if cfg.Play.CPUDelay > 0 {
		opts = append(opts, engine.WithHopCallback(pauseHops(ctx, g, black, red, cfg.Play.CPUDelay)))
	}

	log.Info().
		Int("players", cfg.Play.Players).
		Int("board_size", cfg.Game.BoardSize).
		Msg("starting game")
	outcome, err := engine.Play(ctx, g,
		pace(black, cfg.Play.CPUDelay), pace(red, cfg.Play.CPUDelay), opts...)
	if o, ok := resignation(g, outcome, err); ok {
		fmt.Fprintf(cfg.OutputFile, "%s resigns\n", g.Turn())
		outcome, err = o, nil
	}
	if err != nil {
		return err
	}

	return finishGame(cfg, writer, record, outcome)
}

// runNet hosts or joins a network game. The local side is the console
// unless cpu is set.
func runNet(ctx context.Context, cfg *config.Config, in io.Reader, host, cpu bool, format string) error {
	if err := netplay.CheckGameConfig(*cfg.Game); err != nil {
		return err
	}
	writer, err := output.NewGameWriter(format, cfg.OutputFile)
	if err != nil {
		return err
	}
	g, err := engine.NewGame(*cfg.Game)
	if err != nil {
		return err
	}

	var session *netplay.Session
	if host {
		fmt.Fprintf(cfg.OutputFile, "Hosting on %s (local IP %s)\n", cfg.Net.Address(), netplay.LocalIP())
		session, err = netplay.Host(ctx, *cfg.Net)
	} else {
		session, err = netplay.Join(ctx, *cfg.Net)
	}
	if err != nil {
		return err
	}
	defer session.Close()

	// The joiner plays Red and sees the board turned around.
	invert := cfg.Game.Invert
	if session.Local() == checkers.Red {
		invert = !invert
	}

	var local engine.Strategy = NewConsoleStrategy(in, cfg.OutputFile, invert)
	if cpu {
		local = pace(engine.NewRandomStrategy(time.Now().UnixNano()).WithLogger(log.Logger), cfg.Play.CPUDelay)
	}

	record := output.NewRecord(g)
	session.OnTurn = func(g *engine.Game, applied engine.TurnResult, remote bool) {
		record.Add(g, applied)
		who := "You play"
		if remote {
			who = "Opponent plays"
		}
		fmt.Fprintf(cfg.OutputFile, "%s %s\n", who, applied)
	}

	fmt.Fprintf(cfg.OutputFile, "You are %s\n", session.Local())
	outcome, err := session.Run(ctx, g, local)
	if o, ok := resignation(g, outcome, err); ok {
		fmt.Fprintf(cfg.OutputFile, "You resign\n")
		outcome, err = o, nil
	}
	if err != nil {
		return err
	}

	return finishGame(cfg, writer, record, outcome)
}

// finishGame prints the outcome, logs the transcript analysis and writes
// the record.
func finishGame(cfg *config.Config, writer output.GameWriter, record *output.Record, outcome engine.Outcome) error {
	fmt.Fprintf(cfg.OutputFile, "%s\n\n", outcome)

	analysis, err := processing.AnalyzeRecord(*cfg.Game, record)
	if err != nil {
		log.Warn().Err(err).Msg("transcript does not replay")
	} else {
		log.Info().
			Int("turns", len(record.Turns)).
			Int("longest_chain", analysis.LongestChain).
			Bool("repetition", analysis.RepetitionDetected()).
			Msg(analysis.String())
	}

	if err := writer.WriteGame(record); err != nil {
		return err
	}
	return writer.Close()
}

// runServe serves the HTTP API until ctx is cancelled.
func runServe(ctx context.Context, cfg *config.Config) error {
	srv := httpserver.New(httpserver.NewMemoryStore(), *cfg.Server)
	return srv.ListenAndServe(ctx)
}
