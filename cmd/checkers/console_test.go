package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/lgbarn/checkers-go/internal/checkers"
	"github.com/lgbarn/checkers-go/internal/engine"
	"github.com/lgbarn/checkers-go/internal/errors"
	"github.com/lgbarn/checkers-go/internal/testutil"
)

func TestConsoleStrategy(t *testing.T) {
	tests := []struct {
		name     string
		pos      string
		input    string
		want     engine.TurnResult
		wantText string
	}{
		{
			name:     "move after help",
			pos:      "",
			input:    "\n?\n9-13\n",
			want:     engine.Move(9, 13),
			wantText: "legal: 8-12 9-12 9-13",
		},
		{
			name:     "bad notation re-prompts",
			pos:      "B:B9:R13",
			input:    "abc\n9x18\n",
			want:     engine.Capture(9, checkers.Chain{{Captured: 13, Landing: 18}}),
			wantText: "invalid action",
		},
		{
			name:     "simple move refused while a capture exists",
			pos:      "B:B9:R13",
			input:    "9-12\n9-18\n",
			want:     engine.Capture(9, checkers.Chain{{Captured: 13, Landing: 18}}),
			wantText: "not among the legal actions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testutil.MustNewGame(t, 8, 0)
			if tt.pos != "" {
				g = testutil.MustPosition(t, 8, tt.pos)
			}
			var out bytes.Buffer
			c := NewConsoleStrategy(strings.NewReader(tt.input), &out, false)

			got, err := c.ChooseTurn(context.Background(), g)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, got, tt.want)
			testutil.AssertContains(t, out.String(), tt.wantText)
			testutil.AssertContains(t, out.String(), "Black> ")
		})
	}
}

func TestConsoleStrategy_EndOfInput(t *testing.T) {
	c := NewConsoleStrategy(strings.NewReader("9-14\n"), io.Discard, false)
	_, err := c.ChooseTurn(context.Background(), testutil.MustNewGame(t, 8, 0))
	testutil.AssertTrue(t, errors.Is(err, io.ErrUnexpectedEOF), "got %v", err)
}

func TestConsoleStrategy_Resign(t *testing.T) {
	c := NewConsoleStrategy(strings.NewReader("quit\n"), io.Discard, false)
	_, err := c.ChooseTurn(context.Background(), testutil.MustNewGame(t, 8, 0))
	testutil.AssertTrue(t, errors.Is(err, errors.ErrGameOver))
	testutil.AssertFalse(t, c.Automated())
}

func TestPace(t *testing.T) {
	console := NewConsoleStrategy(strings.NewReader(""), io.Discard, false)
	random := engine.NewRandomStrategy(1)

	testutil.AssertTrue(t, pace(console, time.Second) == engine.Strategy(console), "humans are not paced")
	testutil.AssertTrue(t, pace(random, 0) == engine.Strategy(random), "zero delay is a no-op")

	paced := pace(random, time.Millisecond)
	if _, ok := paced.(pacedStrategy); !ok {
		t.Fatalf("pace() = %T, want pacedStrategy", paced)
	}
	got, err := paced.ChooseTurn(context.Background(), testutil.MustPosition(t, 8, "B:B9:R13"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got.Kind, engine.ActionChain)
}

func TestSleep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := sleep(ctx, time.Hour)
	testutil.AssertTrue(t, errors.Is(err, context.Canceled))
	testutil.AssertNoError(t, sleep(context.Background(), 0))
}

func TestResignation(t *testing.T) {
	g := testutil.MustPosition(t, 8, "R:B9:R22")
	out, ok := resignation(g, g.Outcome(), fmt.Errorf("Red turn 1: %w", errResigned))
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, out, engine.Outcome{Winner: checkers.Black, Over: true})

	boom := io.ErrUnexpectedEOF
	out, ok = resignation(g, g.Outcome(), boom)
	testutil.AssertFalse(t, ok)
	testutil.AssertEqual(t, out, g.Outcome())

	_, ok = resignation(g, g.Outcome(), nil)
	testutil.AssertFalse(t, ok)
}

func TestPauseHops(t *testing.T) {
	console := NewConsoleStrategy(strings.NewReader(""), io.Discard, false)
	random := engine.NewRandomStrategy(1)
	hop := checkers.Jump{Captured: 13, Landing: 18}

	// Black is the human here: its own chain is never held up.
	g := testutil.MustPosition(t, 8, "B:B9:R13")
	start := time.Now()
	pauseHops(context.Background(), g, console, random, time.Hour)(hop)
	testutil.AssertTrue(t, time.Since(start) < time.Second, "human chain paused for %v", time.Since(start))

	// An automated side waits, unless ctx is cancelled.
	start = time.Now()
	pauseHops(context.Background(), g, random, console, 20*time.Millisecond)(hop)
	testutil.AssertTrue(t, time.Since(start) >= 20*time.Millisecond, "automated chain not paused")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start = time.Now()
	pauseHops(ctx, g, random, console, time.Hour)(hop)
	testutil.AssertTrue(t, time.Since(start) < time.Second, "cancelled pause took %v", time.Since(start))

	// The side to move picks the strategy.
	red := testutil.MustPosition(t, 8, "R:B9:R13")
	start = time.Now()
	pauseHops(context.Background(), red, random, console, time.Hour)(hop)
	testutil.AssertTrue(t, time.Since(start) < time.Second, "red human chain paused")
}
