package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/checkers-go/internal/checkers"
	"github.com/lgbarn/checkers-go/internal/errors"
)

// ActionKind identifies the shape of a turn result.
type ActionKind int

const (
	// ActionLoss is sent by a side that has no legal action.
	ActionLoss ActionKind = iota
	// ActionMove is a simple one-step move.
	ActionMove
	// ActionChain is a capture chain by one piece.
	ActionChain
)

// String returns the lower-case name of the kind.
func (k ActionKind) String() string {
	switch k {
	case ActionLoss:
		return "loss"
	case ActionMove:
		return "move"
	case ActionChain:
		return "chain"
	default:
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
}

// TurnResult is one side's action for a turn. It is what gets recorded and
// sent to a network peer.
type TurnResult struct {
	Kind  ActionKind
	From  checkers.TileIndex
	To    checkers.TileIndex // ActionMove only
	Jumps checkers.Chain     // ActionChain only
}

// Loss returns the "no legal action" result.
func Loss() TurnResult {
	return TurnResult{Kind: ActionLoss}
}

// Move returns a simple move result.
func Move(from, to checkers.TileIndex) TurnResult {
	return TurnResult{Kind: ActionMove, From: from, To: to}
}

// Capture returns a capture chain result.
func Capture(from checkers.TileIndex, chain checkers.Chain) TurnResult {
	return TurnResult{Kind: ActionChain, From: from, Jumps: chain}
}

// Landing returns the tile the moving piece finishes on.
func (t TurnResult) Landing() checkers.TileIndex {
	if t.Kind == ActionChain && len(t.Jumps) > 0 {
		return t.Jumps.Landing()
	}
	return t.To
}

// Landings returns every tile the moving piece stops on, in order.
func (t TurnResult) Landings() []checkers.TileIndex {
	switch t.Kind {
	case ActionMove:
		return []checkers.TileIndex{t.To}
	case ActionChain:
		out := make([]checkers.TileIndex, len(t.Jumps))
		for i, j := range t.Jumps {
			out[i] = j.Landing
		}
		return out
	default:
		return nil
	}
}

// String formats the result as "9-13" for a move, "9x18x27" for a chain
// and "loss" for a loss.
func (t TurnResult) String() string {
	switch t.Kind {
	case ActionMove:
		return fmt.Sprintf("%d-%d", t.From, t.To)
	case ActionChain:
		var sb strings.Builder
		sb.WriteString(t.From.String())
		for _, j := range t.Jumps {
			sb.WriteByte('x')
			sb.WriteString(j.Landing.String())
		}
		return sb.String()
	default:
		return t.Kind.String()
	}
}

// Notation is a parsed action as typed by a player: a source tile and the
// tiles the piece lands on.
type Notation struct {
	From     checkers.TileIndex
	Landings []checkers.TileIndex
	Capture  bool
}

// ParseNotation parses "9-13" (move) or "9x18x27" (capture). Whitespace is
// ignored.
func ParseNotation(s string) (Notation, error) {
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return Notation{}, fmt.Errorf("empty action: %w", errors.ErrInvalidAction)
	}

	sep := "-"
	capture := false
	if strings.ContainsAny(s, "xX") {
		sep = "x"
		capture = true
		s = strings.ReplaceAll(s, "X", "x")
	}
	parts := strings.Split(s, sep)
	if len(parts) < 2 || (!capture && len(parts) != 2) {
		return Notation{}, fmt.Errorf("malformed action %q: %w", s, errors.ErrInvalidAction)
	}

	tiles := make([]checkers.TileIndex, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Notation{}, fmt.Errorf("bad tile %q in %q: %w", part, s, errors.ErrInvalidAction)
		}
		tiles[i] = checkers.TileIndex(n)
	}
	return Notation{From: tiles[0], Landings: tiles[1:], Capture: capture}, nil
}
