// flags.go - Command-line flag definitions and configuration
package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/lgbarn/checkers-go/internal/checkers"
	"github.com/lgbarn/checkers-go/internal/config"
	"github.com/lgbarn/checkers-go/internal/errors"
)

// Flags read by the app itself, before any command runs.
var appFlags = []cli.Flag{
	&cli.StringFlag{Name: "env-file", Value: ".env", Usage: "load CHECKERS_* variables from this file if it exists"},
	&cli.StringFlag{Name: "log-level", Usage: "trace, debug, info, warn or error"},
	&cli.BoolFlag{Name: "log-json", Usage: "log JSON lines instead of console text"},
}

// Rules and display flags shared by every command that runs a game.
var gameFlags = []cli.Flag{
	&cli.IntFlag{Name: "board-size", Aliases: []string{"n"}, Usage: "board side length (even, 4 to 64)"},
	&cli.IntFlag{Name: "turn-limit", Usage: "declare a draw after this many turns (0 = no limit)"},
	&cli.BoolFlag{Name: "invert", Usage: "draw the board with Black at the top"},
}

var simFlags = []cli.Flag{
	&cli.IntFlag{Name: "games", Aliases: []string{"g"}, Usage: "number of games to simulate"},
	&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "games played concurrently"},
	&cli.Int64Flag{Name: "seed", Usage: "random seed; game i uses seed+i"},
}

var playFlags = []cli.Flag{
	&cli.IntFlag{Name: "players", Aliases: []string{"p"}, Usage: "human players: 0 (watch the CPU), 1 (vs CPU) or 2 (local)"},
	&cli.StringFlag{Name: "colour", Aliases: []string{"color"}, Usage: "side a single human plays: black or red"},
	&cli.DurationFlag{Name: "cpu-delay", Usage: "pause before CPU turns and between capture hops"},
	&cli.Int64Flag{Name: "seed", Usage: "random seed for the CPU (default: time based)"},
	&cli.StringFlag{Name: "format", Value: "text", Usage: "game record format: text or json"},
}

var netFlags = []cli.Flag{
	&cli.StringFlag{Name: "host", Usage: "address to listen on (host) or connect to (join)"},
	&cli.IntFlag{Name: "port", Usage: "TCP port"},
	&cli.DurationFlag{Name: "dial-timeout", Usage: "give up connecting after this long"},
	&cli.BoolFlag{Name: "cpu", Usage: "let the random agent play the local side"},
	&cli.DurationFlag{Name: "cpu-delay", Usage: "pause before CPU turns and between capture hops"},
	&cli.StringFlag{Name: "format", Value: "text", Usage: "game record format: text or json"},
}

var serveFlags = []cli.Flag{
	&cli.StringFlag{Name: "addr", Usage: "HTTP listen address"},
	&cli.DurationFlag{Name: "request-timeout", Usage: "per-request handler timeout"},
}

// flagsFor joins flag groups into one command's flag list.
func flagsFor(groups ...[]cli.Flag) []cli.Flag {
	var out []cli.Flag
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// applyFlags copies explicitly set flags over cfg. Flags win over the
// environment, which wins over defaults.
func applyFlags(c *cli.Context, cfg *config.Config) error {
	if c.IsSet("board-size") {
		cfg.Game.BoardSize = c.Int("board-size")
	}
	if c.IsSet("turn-limit") {
		cfg.Game.TurnLimit = c.Int("turn-limit")
	}
	if c.IsSet("invert") {
		cfg.Game.Invert = c.Bool("invert")
	}

	if c.IsSet("games") {
		cfg.Sim.Games = c.Int("games")
	}
	if c.IsSet("workers") {
		cfg.Sim.Workers = c.Int("workers")
	}
	if c.IsSet("seed") {
		cfg.Sim.Seed = c.Int64("seed")
	}

	if c.IsSet("players") {
		cfg.Play.Players = c.Int("players")
	}
	if c.IsSet("colour") {
		colour, err := checkers.ParseColour(c.String("colour"))
		if err != nil {
			return fmt.Errorf("--colour: %v: %w", err, errors.ErrInvalidConfig)
		}
		cfg.Play.HumanColour = colour
	}
	if c.IsSet("cpu-delay") {
		cfg.Play.CPUDelay = c.Duration("cpu-delay")
	}

	if c.IsSet("host") {
		cfg.Net.Host = c.String("host")
	}
	if c.IsSet("port") {
		cfg.Net.Port = c.Int("port")
	}
	if c.IsSet("dial-timeout") {
		cfg.Net.DialTimeout = c.Duration("dial-timeout")
	}

	if c.IsSet("addr") {
		cfg.Server.Addr = c.String("addr")
	}
	if c.IsSet("request-timeout") {
		cfg.Server.RequestTimeout = c.Duration("request-timeout")
	}
	return nil
}
