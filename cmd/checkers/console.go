package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/lgbarn/checkers-go/internal/checkers"
	"github.com/lgbarn/checkers-go/internal/engine"
	"github.com/lgbarn/checkers-go/internal/errors"
	"github.com/lgbarn/checkers-go/internal/output"
)

// errResigned is returned when a human types "resign".
var errResigned = errors.Wrap(errors.ErrGameOver, "resigned")

// resignation turns a resignation by the side to move into a win for the
// other side. Any other error is passed through.
func resignation(g *engine.Game, outcome engine.Outcome, err error) (engine.Outcome, bool) {
	if !errors.Is(err, errResigned) {
		return outcome, false
	}
	return engine.Outcome{Winner: g.Turn().Opposite(), Over: true, Turns: g.TurnCount()}, true
}

// ConsoleStrategy reads a human's turns from a text stream. Moves are
// typed as "9-13" and captures as "9x18x27"; a bad entry is reported and
// the prompt repeats.
type ConsoleStrategy struct {
	in     *bufio.Scanner
	out    io.Writer
	invert bool
}

// NewConsoleStrategy creates a console player. invert draws the board with
// Black at the top.
func NewConsoleStrategy(in io.Reader, out io.Writer, invert bool) *ConsoleStrategy {
	return &ConsoleStrategy{in: bufio.NewScanner(in), out: out, invert: invert}
}

// Automated returns false.
func (c *ConsoleStrategy) Automated() bool { return false }

// ChooseTurn prompts until the player enters a legal action.
func (c *ConsoleStrategy) ChooseTurn(ctx context.Context, g *engine.Game) (engine.TurnResult, error) {
	if g.IsOver() {
		return engine.Loss(), nil
	}
	if err := output.RenderBoard(c.out, g, c.invert); err != nil {
		return engine.TurnResult{}, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return engine.TurnResult{}, err
		}
		fmt.Fprintf(c.out, "%s> ", g.Turn())
		if !c.in.Scan() {
			if err := c.in.Err(); err != nil {
				return engine.TurnResult{}, err
			}
			return engine.TurnResult{}, io.ErrUnexpectedEOF
		}

		line := strings.TrimSpace(c.in.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "?", "help":
			c.listActions(g)
			continue
		case "board":
			if err := output.RenderBoard(c.out, g, c.invert); err != nil {
				return engine.TurnResult{}, err
			}
			continue
		case "resign", "quit":
			return engine.TurnResult{}, errResigned
		}

		n, err := engine.ParseNotation(line)
		if err != nil {
			fmt.Fprintf(c.out, "%v (type ? for the legal moves)\n", err)
			continue
		}
		action, err := g.FindAction(n)
		if err != nil {
			fmt.Fprintf(c.out, "%v\n", err)
			continue
		}
		return action, nil
	}
}

func (c *ConsoleStrategy) listActions(g *engine.Game) {
	actions := g.LegalActions()
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = a.String()
	}
	fmt.Fprintf(c.out, "legal: %s\n", strings.Join(names, " "))
}

// pacedStrategy delays an automated strategy so a person can follow it.
type pacedStrategy struct {
	engine.Strategy
	delay time.Duration
}

func (p pacedStrategy) ChooseTurn(ctx context.Context, g *engine.Game) (engine.TurnResult, error) {
	if err := sleep(ctx, p.delay); err != nil {
		return engine.TurnResult{}, err
	}
	return p.Strategy.ChooseTurn(ctx, g)
}

// pace wraps s with a delay when it is automated and delay is positive.
func pace(s engine.Strategy, delay time.Duration) engine.Strategy {
	if delay <= 0 || !s.Automated() {
		return s
	}
	return pacedStrategy{Strategy: s, delay: delay}
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// pauseHops returns a hop callback that waits delay between the hops of a
// capture chain played by an automated side. A human's own chain is not
// slowed down, and cancelling ctx ends the wait.
func pauseHops(ctx context.Context, g *engine.Game, black, red engine.Strategy, delay time.Duration) func(checkers.Jump) {
	return func(checkers.Jump) {
		s := black
		if g.Turn() == checkers.Red {
			s = red
		}
		if s.Automated() {
			_ = sleep(ctx, delay)
		}
	}
}
