// check.go - Transcript checking
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/lgbarn/checkers-go/internal/config"
	"github.com/lgbarn/checkers-go/internal/errors"
	"github.com/lgbarn/checkers-go/internal/output"
	"github.com/lgbarn/checkers-go/internal/parser"
	"github.com/lgbarn/checkers-go/internal/processing"
)

// checkStats counts the games seen by the check command.
type checkStats struct {
	games    int
	valid    int
	problems int
}

// runCheck replays every transcript in files ("-" or no files reads in)
// and prints one line per game. It fails if any game does not replay.
func runCheck(cfg *config.Config, in io.Reader, files []string) error {
	if len(files) == 0 {
		files = []string{"-"}
	}

	var stats checkStats
	for _, name := range files {
		if err := checkFile(cfg, in, name, &stats); err != nil {
			fmt.Fprintf(cfg.OutputFile, "%s: %v\n", name, err)
			stats.problems++
		}
	}

	fmt.Fprintf(cfg.OutputFile, "checked %d games: %d valid\n", stats.games, stats.valid)
	if stats.problems > 0 {
		return errors.Wrapf(errors.ErrTranscript, "%d problems in %d games", stats.problems, stats.games)
	}
	return nil
}

// checkFile parses and checks the games in one file.
func checkFile(cfg *config.Config, in io.Reader, name string, stats *checkStats) error {
	r := in
	if name != "-" {
		f, err := os.Open(name) //nolint:gosec // G304: path is a user-supplied transcript
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	games, err := parser.NewParser(r).ParseAllGames()
	for i, t := range games {
		stats.games++
		if checkTranscript(cfg, fmt.Sprintf("%s game %d (line %d)", name, i+1, t.StartLine), t) {
			stats.valid++
		} else {
			stats.problems++
		}
	}
	return err
}

// checkTranscript replays one game and reports it. A recorded result that
// differs from the replayed one makes the game invalid.
func checkTranscript(cfg *config.Config, label string, t *parser.Transcript) bool {
	for _, w := range t.Warnings {
		log.Warn().Str("game", label).Msg(w)
	}

	r, err := t.Record(*cfg.Game)
	if err != nil {
		fmt.Fprintf(cfg.OutputFile, "%s: %v\n", label, err)
		return false
	}

	if v := processing.ValidateRecord(r.Game.Config(), r); !v.Valid {
		fmt.Fprintf(cfg.OutputFile, "%s: %s\n", label, v.ErrorMsg)
		return false
	}

	got := output.Result(r.Game)
	for _, want := range []string{t.Result, t.GetTag("Result")} {
		if want != "" && want != got {
			fmt.Fprintf(cfg.OutputFile, "%s: recorded result %s, replay gives %s\n", label, want, got)
			return false
		}
	}

	analysis, err := processing.AnalyzeRecord(r.Game.Config(), r)
	if err != nil {
		fmt.Fprintf(cfg.OutputFile, "%s: %v\n", label, err)
		return false
	}
	fmt.Fprintf(cfg.OutputFile, "%s: ok, %s after %d turns; %s\n", label, got, len(r.Turns), analysis)
	return true
}
