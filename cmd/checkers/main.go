// checkers plays checkers on an N x N board: random-agent simulations,
// games against the CPU or another person, network play, transcript
// checking and an HTTP API.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/lgbarn/checkers-go/internal/config"
	"github.com/lgbarn/checkers-go/internal/logging"
)

const programVersion = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Error().Err(err).Msg("checkers failed")
		stop()
		os.Exit(1)
	}
}

// newApp builds the command tree. Every command gets a fresh Config with
// defaults, then .env and CHECKERS_* overrides, then flags.
func newApp(in io.Reader, out, errOut io.Writer) *cli.App {
	cfg := config.NewConfigBuilder().
		WithOutput(out).
		WithLogOutput(errOut).
		Build()

	// setup runs before each command's action.
	setup := func(c *cli.Context) error {
		if err := applyFlags(c, cfg); err != nil {
			return err
		}
		return cfg.Validate()
	}

	return &cli.App{
		Name:      "checkers",
		Usage:     "play checkers on an N x N board",
		Version:   programVersion,
		Reader:    in,
		Writer:    out,
		ErrWriter: errOut,
		Flags:     appFlags,
		Before: func(c *cli.Context) error {
			if err := cfg.LoadEnv(c.String("env-file")); err != nil {
				return err
			}
			if c.IsSet("log-level") {
				cfg.Log.Level = c.String("log-level")
			}
			if c.IsSet("log-json") {
				cfg.Log.Pretty = !c.Bool("log-json")
			}
			return logging.Configure(cfg.Log, cfg.LogFile)
		},
		Commands: []*cli.Command{
			{
				Name:  "sim",
				Usage: "play random-vs-random games and print the win tally",
				Flags: flagsFor(gameFlags, simFlags),
				Action: func(c *cli.Context) error {
					if err := setup(c); err != nil {
						return err
					}
					return runSim(c.Context, cfg)
				},
			},
			{
				Name:  "play",
				Usage: "play on this terminal against the CPU or another person",
				Flags: flagsFor(gameFlags, playFlags),
				Action: func(c *cli.Context) error {
					if err := setup(c); err != nil {
						return err
					}
					return runPlay(c.Context, cfg, in, playSeed(c), c.String("format"))
				},
			},
			{
				Name:  "host",
				Usage: "wait for a player to join over TCP; the host plays Black",
				Flags: flagsFor(gameFlags, netFlags),
				Action: func(c *cli.Context) error {
					if err := setup(c); err != nil {
						return err
					}
					return runNet(c.Context, cfg, in, true, c.Bool("cpu"), c.String("format"))
				},
			},
			{
				Name:  "join",
				Usage: "join a hosted game over TCP; the joiner plays Red",
				Flags: flagsFor(gameFlags, netFlags),
				Action: func(c *cli.Context) error {
					if err := setup(c); err != nil {
						return err
					}
					return runNet(c.Context, cfg, in, false, c.Bool("cpu"), c.String("format"))
				},
			},
			{
				Name:      "check",
				Usage:     "replay game transcripts and report illegal turns",
				ArgsUsage: "[FILE...]",
				Flags:     gameFlags,
				Action: func(c *cli.Context) error {
					if err := setup(c); err != nil {
						return err
					}
					return runCheck(cfg, in, c.Args().Slice())
				},
			},
			{
				Name:  "serve",
				Usage: "serve the JSON HTTP API",
				Flags: serveFlags,
				Action: func(c *cli.Context) error {
					if err := setup(c); err != nil {
						return err
					}
					return runServe(c.Context, cfg)
				},
			},
		},
		Action: func(c *cli.Context) error {
			fmt.Fprintln(out, "--help for more information.")
			return nil
		},
	}
}
