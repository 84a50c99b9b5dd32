// Package netplay runs a game between a local strategy and a remote peer
// over a stream connection, one newline-delimited JSON message per turn.
//
// Both ends keep a full copy of the game. Every message carries the
// sender's position hash after the turn, and a receiver whose own hash
// disagrees aborts the session.
package netplay

import (
	"context"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/lgbarn/checkers-go/internal/checkers"
	"github.com/lgbarn/checkers-go/internal/config"
	"github.com/lgbarn/checkers-go/internal/engine"
	"github.com/lgbarn/checkers-go/internal/errors"
	"github.com/lgbarn/checkers-go/internal/hashing"
	"github.com/lgbarn/checkers-go/internal/wire"
)

// PeerStrategy supplies the remote side's turns by reading them off the
// connection. It remembers the hash each message carried so the session
// can check it once the turn is applied.
type PeerStrategy struct {
	dec *wire.Decoder

	hash    uint64
	hasHash bool
}

// NewPeerStrategy creates a strategy reading messages from r.
func NewPeerStrategy(r io.Reader) *PeerStrategy {
	return &PeerStrategy{dec: wire.NewDecoder(r)}
}

// Automated returns true; the peer is not prompted locally.
func (p *PeerStrategy) Automated() bool { return true }

// ChooseTurn blocks until the peer's next message arrives.
func (p *PeerStrategy) ChooseTurn(ctx context.Context, g *engine.Game) (engine.TurnResult, error) {
	msg, err := p.next()
	if err != nil {
		return engine.TurnResult{}, err
	}
	action, err := msg.TurnResult()
	if err != nil {
		return engine.TurnResult{}, err
	}
	p.hash, p.hasHash, err = msg.HashValue()
	if err != nil {
		return engine.TurnResult{}, err
	}
	return action, nil
}

// next reads one message, turning a clean close into an unexpected EOF.
func (p *PeerStrategy) next() (wire.Message, error) {
	msg, err := p.dec.Decode()
	if err == io.EOF {
		return wire.Message{}, fmt.Errorf("peer disconnected: %w", io.ErrUnexpectedEOF)
	}
	return msg, err
}

// verify compares the hash the peer sent for its last turn with g.
func (p *PeerStrategy) verify(g *engine.Game) error {
	if !p.hasHash {
		return nil
	}
	if got := hashing.GenerateZobristHash(g); got != p.hash {
		return errors.Wrapf(errors.ErrInvariant, "position hash %016x, peer has %016x", got, p.hash)
	}
	return nil
}

// Session is one connection to a peer. The local side plays one colour and
// the peer the other.
type Session struct {
	conn  io.ReadWriteCloser
	enc   *wire.Encoder
	peer  *PeerStrategy
	local checkers.Colour

	// OnTurn, if set, is called after every applied turn. remote reports
	// whether the peer played it.
	OnTurn func(g *engine.Game, applied engine.TurnResult, remote bool)
}

// NewSession wraps an established connection. local is the colour this
// end plays.
func NewSession(conn io.ReadWriteCloser, local checkers.Colour) *Session {
	return &Session{
		conn:  conn,
		enc:   wire.NewEncoder(conn),
		peer:  NewPeerStrategy(conn),
		local: local,
	}
}

// Local returns the colour this end plays.
func (s *Session) Local() checkers.Colour { return s.local }

// Close closes the connection.
func (s *Session) Close() error { return s.conn.Close() }

// CheckGameConfig rejects settings two independently configured peers
// cannot agree on. The protocol carries only turns, so a turn limit set at
// one end would draw the game there and not at the other.
func CheckGameConfig(cfg config.GameConfig) error {
	if cfg.TurnLimit != 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "turn limit %d: net games are played without one", cfg.TurnLimit)
	}
	return nil
}

// Run plays g to the end. Turns for the local colour come from strategy and
// are sent to the peer; the peer's turns are read, validated and applied.
// An illegal peer action, a hash mismatch or a malformed message aborts the
// session with an error. When the local side loses it sends a loss message
// so the peer learns the result; when the peer loses, Run waits for that
// message. Both ends must start from the same game configuration; nothing
// on the wire checks it.
//
// Cancelling ctx closes the connection.
func (s *Session) Run(ctx context.Context, g *engine.Game, strategy engine.Strategy, opts ...engine.TurnOption) (engine.Outcome, error) {
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
			s.conn.Close()
		case <-stop:
		}
	}()
	defer func() {
		close(stop)
		wg.Wait()
	}()

	outcome, err := s.run(ctx, g, strategy, opts)
	if err != nil && ctx.Err() != nil {
		return outcome, ctx.Err()
	}
	return outcome, err
}

func (s *Session) run(ctx context.Context, g *engine.Game, strategy engine.Strategy, opts []engine.TurnOption) (engine.Outcome, error) {
	for !g.IsOver() {
		if err := ctx.Err(); err != nil {
			return g.Outcome(), err
		}

		remote := g.Turn() != s.local
		applied, err := s.turn(ctx, g, strategy, remote, opts)
		if err != nil {
			return g.Outcome(), fmt.Errorf("%s turn %d: %w", g.Turn(), g.TurnCount()+1, err)
		}

		log.Debug().
			Str("colour", g.Turn().Opposite().String()).
			Bool("remote", remote).
			Str("action", applied.String()).
			Msg("net turn")
		if s.OnTurn != nil {
			s.OnTurn(g, applied, remote)
		}
	}

	if err := s.finish(g); err != nil {
		return g.Outcome(), err
	}
	return g.Outcome(), nil
}

// turn plays one turn for the side to move.
func (s *Session) turn(ctx context.Context, g *engine.Game, strategy engine.Strategy, remote bool, opts []engine.TurnOption) (engine.TurnResult, error) {
	if remote {
		action, err := s.peer.ChooseTurn(ctx, g)
		if err != nil {
			return engine.TurnResult{}, err
		}
		applied, err := g.ResolveTurn(action, opts...)
		if err != nil {
			return engine.TurnResult{}, errors.Wrap(err, "peer action")
		}
		if err := s.peer.verify(g); err != nil {
			return engine.TurnResult{}, err
		}
		return applied, nil
	}

	action, err := strategy.ChooseTurn(ctx, g)
	if err != nil {
		return engine.TurnResult{}, err
	}
	applied, err := g.ResolveTurn(action, opts...)
	if err != nil {
		return engine.TurnResult{}, err
	}
	msg := wire.FromTurnResult(applied).WithHash(hashing.GenerateZobristHash(g))
	if err := s.enc.Encode(msg); err != nil {
		return engine.TurnResult{}, err
	}
	return applied, nil
}

// finish exchanges the loss message once g is over. Nothing is sent for a
// draw.
func (s *Session) finish(g *engine.Game) error {
	if g.IsDraw() {
		return nil
	}
	if g.Turn() == s.local {
		log.Info().Str("colour", s.local.String()).Msg("no legal action, sending loss")
		return s.enc.Encode(wire.FromTurnResult(engine.Loss()))
	}

	msg, err := s.peer.dec.Decode()
	switch {
	case err == io.EOF:
		// The peer may hang up without conceding; the result stands.
		return nil
	case err != nil:
		return err
	case msg.Type != wire.TypeLoss:
		return errors.Wrapf(errors.ErrProtocol, "expected loss from peer, got %s", msg.Type)
	}
	log.Info().Str("colour", s.local.String()).Msg("peer conceded")
	return nil
}

// closedConn reports whether err comes from using a closed connection.
func closedConn(err error) bool {
	return errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrClosedPipe)
}
