package engine

import (
	"fmt"
	"slices"
	"sort"

	"github.com/lgbarn/checkers-go/internal/checkers"
	"github.com/lgbarn/checkers-go/internal/config"
	"github.com/lgbarn/checkers-go/internal/errors"
)

// State is the state of the turn machine.
type State int

const (
	BlackToMove State = iota
	RedToMove
	Terminal
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case BlackToMove:
		return "BlackToMove"
	case RedToMove:
		return "RedToMove"
	case Terminal:
		return "Terminal"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Game is a board, two players and the turn machine driving them.
// A Game is not safe for concurrent use.
type Game struct {
	cfg     config.GameConfig
	board   *checkers.Board
	players [2]*Player
	turn    checkers.Colour
	turns   int

	over   bool
	draw   bool
	winner checkers.Colour
}

// NewGame creates a game in the starting layout with Black to move.
func NewGame(cfg config.GameConfig) (*Game, error) {
	g, err := newEmptyGame(cfg)
	if err != nil {
		return nil, err
	}
	g.Reset()
	return g, nil
}

// newEmptyGame creates a validated game with no pieces.
func newEmptyGame(cfg config.GameConfig) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	board, err := checkers.NewBoard(cfg.BoardSize)
	if err != nil {
		return nil, err
	}
	return &Game{
		cfg:     cfg,
		board:   board,
		players: [2]*Player{NewPlayer(checkers.Black), NewPlayer(checkers.Red)},
	}, nil
}

// Reset restores the starting layout with Black to move.
func (g *Game) Reset() {
	g.board.Clear()
	for _, c := range []checkers.Colour{checkers.Black, checkers.Red} {
		p := NewPlayer(c)
		for _, tile := range g.board.StartingTiles(c) {
			p.addPiece(tile, false)
			g.board.SetOccupied(tile, true)
		}
		g.players[c] = p
	}
	g.turn = checkers.Black
	g.turns = 0
	g.over, g.draw = false, false
	g.evaluate()
}

// evaluate applies the turn-start check: the side to move loses when it has
// nothing to play, and a game over its turn limit is drawn.
func (g *Game) evaluate() {
	active, opponent := g.players[g.turn], g.players[g.turn.Opposite()]
	if !active.HasAnyMove(g.board, opponent) {
		g.over = true
		g.winner = g.turn.Opposite()
		return
	}
	if g.cfg.TurnLimit > 0 && g.turns >= g.cfg.TurnLimit {
		g.over = true
		g.draw = true
	}
}

// Config returns the configuration the game was created with.
func (g *Game) Config() config.GameConfig { return g.cfg }

// Board returns the game's board. Callers must not mutate it.
func (g *Game) Board() *checkers.Board { return g.board }

// Player returns the player for colour c.
func (g *Game) Player(c checkers.Colour) *Player { return g.players[c] }

// Turn returns the side to move. Once the game is over it is the side that
// had no move (or the side to move when a draw was declared).
func (g *Game) Turn() checkers.Colour { return g.turn }

// TurnCount returns the number of completed turns.
func (g *Game) TurnCount() int { return g.turns }

// IsOver reports whether the game has reached Terminal.
func (g *Game) IsOver() bool { return g.over }

// Winner returns the winning side. ok is false while the game is running or
// when it ended in a draw.
func (g *Game) Winner() (winner checkers.Colour, ok bool) {
	if !g.over || g.draw {
		return checkers.Black, false
	}
	return g.winner, true
}

// IsDraw reports whether the game ended on its turn limit.
func (g *Game) IsDraw() bool { return g.over && g.draw }

// State returns the current state of the turn machine.
func (g *Game) State() State {
	switch {
	case g.over:
		return Terminal
	case g.turn == checkers.Red:
		return RedToMove
	default:
		return BlackToMove
	}
}

// Outcome summarises the game result so far.
func (g *Game) Outcome() Outcome {
	w, _ := g.Winner()
	return Outcome{Winner: w, Draw: g.IsDraw(), Over: g.over, Turns: g.turns}
}

// Clone creates a deep copy of the game.
func (g *Game) Clone() *Game {
	c := *g
	c.board = g.board.Clone()
	c.players = [2]*Player{g.players[0].Clone(), g.players[1].Clone()}
	return &c
}

// TurnOption configures ResolveTurn and Play.
type TurnOption func(*turnOptions)

type turnOptions struct {
	onHop  func(checkers.Jump)
	onTurn func(*Game, TurnResult)
}

// WithHopCallback sets a function called between the hops of a capture
// chain.
func WithHopCallback(fn func(checkers.Jump)) TurnOption {
	return func(o *turnOptions) { o.onHop = fn }
}

// WithTurnCallback sets a function Play calls after each resolved turn.
func WithTurnCallback(fn func(*Game, TurnResult)) TurnOption {
	return func(o *turnOptions) { o.onTurn = fn }
}

func buildTurnOptions(opts []TurnOption) turnOptions {
	var o turnOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// reject builds the error returned for an action that is not legal now.
func (g *Game) reject(action TurnResult, err error, reason string) error {
	return &errors.ActionError{
		Err:    err,
		Colour: g.turn.String(),
		Turn:   g.turns + 1,
		Action: action.String(),
		Reason: reason,
	}
}

// ResolveTurn validates action for the side to move and applies it. On
// success the turn passes to the other side and the applied action is
// returned. A rejected action leaves the game unchanged.
//
// A loss action is only accepted from the side that has already lost.
func (g *Game) ResolveTurn(action TurnResult, opts ...TurnOption) (TurnResult, error) {
	if action.Kind == ActionLoss {
		if g.over && !g.draw && g.winner != g.turn {
			return action, nil
		}
		return TurnResult{}, g.reject(action, errors.ErrInvalidAction, "side still has a legal action")
	}
	if g.over {
		return TurnResult{}, g.reject(action, errors.ErrGameOver, "")
	}

	active, opponent := g.players[g.turn], g.players[g.turn.Opposite()]
	piece := active.PieceAt(action.From)
	if piece == nil {
		return TurnResult{}, g.reject(action, errors.ErrInvalidAction,
			fmt.Sprintf("no %s piece on tile %d", g.turn, action.From))
	}

	o := buildTurnOptions(opts)
	switch action.Kind {
	case ActionMove:
		if active.CanCapture(g.board, opponent) {
			return TurnResult{}, g.reject(action, errors.ErrInvalidAction, "a capture is available")
		}
		if !slices.Contains(LegalMoves(g.board, piece), action.To) {
			return TurnResult{}, g.reject(action, errors.ErrInvalidAction, "not a legal move")
		}
		ApplyMove(g.board, piece, action.To)
		action.Jumps = nil

	case ActionChain:
		if err := g.validateChain(action); err != nil {
			return TurnResult{}, err
		}
		action.Jumps = action.Jumps.Clone()
		ApplyChain(g.board, piece, opponent, action.Jumps, o.onHop)
		action.To = 0

	default:
		return TurnResult{}, g.reject(action, errors.ErrInvalidAction, "unknown action kind")
	}

	g.turns++
	g.turn = g.turn.Opposite()
	g.evaluate()
	return action, nil
}

// validateChain replays a chain on a scratch copy, checking every hop and
// the continuation rule.
func (g *Game) validateChain(action TurnResult) error {
	if len(action.Jumps) == 0 {
		return g.reject(action, errors.ErrInvalidAction, "empty capture chain")
	}

	scratch := g.Clone()
	active, opponent := scratch.players[scratch.turn], scratch.players[scratch.turn.Opposite()]
	piece := active.PieceAt(action.From)

	crowned := false
	for i, j := range action.Jumps {
		if crowned {
			return g.reject(action, errors.ErrInvalidAction,
				fmt.Sprintf("hop %d follows a crowning hop", i+1))
		}
		if !containsJump(LegalJumps(scratch.board, piece, opponent.Tiles()), j) {
			return g.reject(action, errors.ErrInvalidAction,
				fmt.Sprintf("hop %d over %d to %d is not a legal jump", i+1, j.Captured, j.Landing))
		}
		crowned = ApplyJump(scratch.board, piece, opponent, j)
	}
	if !crowned && len(LegalJumps(scratch.board, piece, opponent.Tiles())) > 0 {
		return g.reject(action, errors.ErrInvalidAction, "capture chain stops while a jump remains")
	}
	return nil
}

// LegalActions returns every complete action for the side to move: maximal
// capture chains when a capture is available, simple moves otherwise.
// The result is empty once the game is over.
func (g *Game) LegalActions() []TurnResult {
	if g.over {
		return nil
	}
	active, opponent := g.players[g.turn], g.players[g.turn.Opposite()]

	var actions []TurnResult
	if active.CanCapture(g.board, opponent) {
		for _, piece := range active.pieces {
			for _, chain := range g.chainsFrom(piece.Position) {
				actions = append(actions, Capture(piece.Position, chain))
			}
		}
		return actions
	}
	for _, piece := range active.pieces {
		for _, to := range LegalMoves(g.board, piece) {
			actions = append(actions, Move(piece.Position, to))
		}
	}
	return actions
}

// chainsFrom enumerates every maximal capture chain for the active piece on
// tile, branching on scratch copies of the game.
func (g *Game) chainsFrom(tile checkers.TileIndex) []checkers.Chain {
	var chains []checkers.Chain
	var walk func(s *Game, pos checkers.TileIndex, prefix checkers.Chain)
	walk = func(s *Game, pos checkers.TileIndex, prefix checkers.Chain) {
		piece := s.players[s.turn].PieceAt(pos)
		jumps := LegalJumps(s.board, piece, s.players[s.turn.Opposite()].Tiles())
		if len(jumps) == 0 {
			if len(prefix) > 0 {
				chains = append(chains, prefix)
			}
			return
		}
		for _, j := range jumps {
			next := append(prefix.Clone(), j)
			branch := s.Clone()
			bp := branch.players[branch.turn].PieceAt(pos)
			if ApplyJump(branch.board, bp, branch.players[branch.turn.Opposite()], j) {
				chains = append(chains, next)
				continue
			}
			walk(branch, j.Landing, next)
		}
	}
	walk(g, tile, nil)
	return chains
}

// FindAction returns the legal action matching a parsed notation.
func (g *Game) FindAction(n Notation) (TurnResult, error) {
	for _, a := range g.LegalActions() {
		if a.From != n.From || !slices.Equal(a.Landings(), n.Landings) {
			continue
		}
		if n.Capture && a.Kind != ActionChain {
			continue
		}
		return a, nil
	}
	probe := TurnResult{Kind: ActionMove, From: n.From}
	if len(n.Landings) > 0 {
		probe.To = n.Landings[0]
	}
	if n.Capture {
		probe = TurnResult{Kind: ActionChain, From: n.From}
		for _, l := range n.Landings {
			probe.Jumps = append(probe.Jumps, checkers.Jump{Landing: l})
		}
	}
	if g.over {
		return TurnResult{}, g.reject(probe, errors.ErrGameOver, "")
	}
	return TurnResult{}, g.reject(probe, errors.ErrInvalidAction, "not among the legal actions")
}

// Snapshot is a comparable view of the full game state.
type Snapshot struct {
	Turn     checkers.Colour
	Turns    int
	Occupied []bool
	Pieces   []checkers.Piece
	Over     bool
	Draw     bool
	Winner   checkers.Colour
}

// Snapshot captures the game state. Pieces are sorted by position.
func (g *Game) Snapshot() Snapshot {
	var pieces []checkers.Piece
	for _, p := range g.players {
		for _, piece := range p.pieces {
			pieces = append(pieces, *piece)
		}
	}
	sort.Slice(pieces, func(i, j int) bool { return pieces[i].Position < pieces[j].Position })

	w, _ := g.Winner()
	return Snapshot{
		Turn:     g.turn,
		Turns:    g.turns,
		Occupied: g.board.Occupancy(),
		Pieces:   pieces,
		Over:     g.over,
		Draw:     g.IsDraw(),
		Winner:   w,
	}
}
