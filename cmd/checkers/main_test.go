package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lgbarn/checkers-go/internal/config"
	"github.com/lgbarn/checkers-go/internal/errors"
	"github.com/lgbarn/checkers-go/internal/sim"
	"github.com/lgbarn/checkers-go/internal/testutil"
)

// runApp runs the CLI with args and returns its standard output.
func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp(strings.NewReader(stdin), &out, &errOut)

	argv := []string{"checkers",
		"--env-file", filepath.Join(t.TempDir(), "missing.env"),
		"--log-level", "error",
		"--log-json",
	}
	argv = append(argv, args...)
	err := app.RunContext(context.Background(), argv)
	return out.String(), err
}

// expectedTally runs the simulation directly for comparison.
func expectedTally(t *testing.T, size, turnLimit, games int, seed int64) string {
	t.Helper()
	simCfg := config.NewSimConfig()
	simCfg.Games = games
	simCfg.Seed = seed
	tally, err := sim.Run(context.Background(), testutil.GameConfig(size, turnLimit), *simCfg)
	testutil.AssertNoError(t, err)
	return tally.String()
}

func TestSimCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"sequential", nil},
		{"parallel", []string{"--workers", "3"}},
	}

	want := expectedTally(t, 6, 200, 6, 3)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"sim", "-n", "6", "--turn-limit", "200", "--games", "6", "--seed", "3"}, tt.args...)
			out, err := runApp(t, "", args...)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, strings.TrimSpace(out), want)
			testutil.AssertContains(t, out, "Wins: black=")
		})
	}
}

func TestSimCommand_EnvAndFlags(t *testing.T) {
	t.Setenv(config.EnvSimGames, "3")
	t.Setenv(config.EnvBoardSize, "6")
	t.Setenv(config.EnvTurnLimit, "200")

	out, err := runApp(t, "", "sim", "--seed", "5")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, strings.TrimSpace(out), expectedTally(t, 6, 200, 3, 5))

	// Flags win over the environment.
	out, err = runApp(t, "", "sim", "--seed", "5", "--games", "4")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, strings.TrimSpace(out), expectedTally(t, 6, 200, 4, 5))
}

func TestSimCommand_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"odd board", []string{"sim", "--board-size", "7"}},
		{"no games", []string{"sim", "--games", "0"}},
		{"bad colour", []string{"play", "--colour", "green"}},
		{"host with turn limit", []string{"host", "--turn-limit", "40"}},
		{"join with turn limit", []string{"join", "--turn-limit", "40"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runApp(t, "", tt.args...)
			testutil.AssertTrue(t, errors.Is(err, errors.ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestPlayCommand_Watch(t *testing.T) {
	out, err := runApp(t, "", "play", "--players", "0", "-n", "6", "--turn-limit", "30",
		"--seed", "1", "--cpu-delay", "0s", "--format", "json")
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, out, "Black plays ")
	testutil.AssertContains(t, out, `"result"`)
	testutil.AssertContains(t, out, `"moves"`)
}

func TestPlayCommand_HumanVsCPU(t *testing.T) {
	out, err := runApp(t, "9-14\n9-13\n", "play", "--players", "1", "--colour", "black",
		"--turn-limit", "2", "--seed", "1", "--cpu-delay", "0s")
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, out, "not among the legal actions")
	testutil.AssertContains(t, out, "Black plays 9-13")
	testutil.AssertContains(t, out, "Red plays ")
	testutil.AssertContains(t, out, "draw")
	testutil.AssertContains(t, out, `[Result "1-1"]`)
}

func TestPlayCommand_Resign(t *testing.T) {
	out, err := runApp(t, "9-13\nresign\n", "play", "--players", "2")
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, out, "Black plays 9-13")
	testutil.AssertContains(t, out, "Red resigns\nBlack wins")
	testutil.AssertContains(t, out, "1. 9-13 *")
}

func TestPlayCommand_ResignVsCPU(t *testing.T) {
	out, err := runApp(t, "resign\n", "play", "--players", "1", "--colour", "red", "--seed", "4", "--cpu-delay", "0s")
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, out, "Red resigns\nBlack wins")
}

func TestPlayCommand_BadFormat(t *testing.T) {
	_, err := runApp(t, "", "play", "--players", "0", "--format", "pdn")
	testutil.AssertError(t, err)
}

func TestCommandFlagsUnique(t *testing.T) {
	app := newApp(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	for _, cmd := range app.Commands {
		seen := make(map[string]bool)
		for _, f := range cmd.Flags {
			for _, name := range f.Names() {
				if seen[name] {
					t.Errorf("command %s: flag %q defined twice", cmd.Name, name)
				}
				seen[name] = true
			}
		}
	}
}
