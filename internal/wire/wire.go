// Package wire encodes turn results as newline-delimited JSON messages for
// network play and the HTTP API.
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/lgbarn/checkers-go/internal/checkers"
	"github.com/lgbarn/checkers-go/internal/engine"
	"github.com/lgbarn/checkers-go/internal/errors"
)

// Message types.
const (
	TypeLoss  = "loss"
	TypeMove  = "move"
	TypeChain = "chain"
)

// Jump is one hop of a capture chain.
type Jump struct {
	Captured int `json:"captured"`
	Landing  int `json:"landing"`
}

// Message is the JSON form of a turn result.
//
//	{"type":"loss"}
//	{"type":"move","from":9,"to":13}
//	{"type":"chain","from":9,"jumps":[{"captured":13,"landing":18}]}
//
// Hash optionally carries the sender's position fingerprint after the turn,
// as 16 hex digits.
type Message struct {
	Type  string `json:"type"`
	From  *int   `json:"from,omitempty"`
	To    *int   `json:"to,omitempty"`
	Jumps []Jump `json:"jumps,omitempty"`
	Hash  string `json:"hash,omitempty"`
}

func intPtr(n int) *int { return &n }

// FromTurnResult converts a turn result to a message.
func FromTurnResult(r engine.TurnResult) Message {
	switch r.Kind {
	case engine.ActionMove:
		return Message{Type: TypeMove, From: intPtr(int(r.From)), To: intPtr(int(r.To))}
	case engine.ActionChain:
		m := Message{Type: TypeChain, From: intPtr(int(r.From)), Jumps: make([]Jump, len(r.Jumps))}
		for i, j := range r.Jumps {
			m.Jumps[i] = Jump{Captured: int(j.Captured), Landing: int(j.Landing)}
		}
		return m
	default:
		return Message{Type: TypeLoss}
	}
}

// protocolError wraps ErrProtocol with a description of the bad message.
func protocolError(format string, args ...interface{}) error {
	return errors.Wrapf(errors.ErrProtocol, format, args...)
}

// TurnResult converts a message back to a turn result. Structurally
// malformed messages return an error wrapping ErrProtocol; whether the
// action is legal is for the engine to decide.
func (m Message) TurnResult() (engine.TurnResult, error) {
	switch m.Type {
	case TypeLoss:
		if m.From != nil || m.To != nil || len(m.Jumps) > 0 {
			return engine.TurnResult{}, protocolError("loss message carries a move")
		}
		return engine.Loss(), nil

	case TypeMove:
		if m.From == nil || m.To == nil {
			return engine.TurnResult{}, protocolError("move message needs from and to")
		}
		if len(m.Jumps) > 0 {
			return engine.TurnResult{}, protocolError("move message carries jumps")
		}
		if *m.From < 0 || *m.To < 0 {
			return engine.TurnResult{}, protocolError("negative tile in move %d-%d", *m.From, *m.To)
		}
		return engine.Move(checkers.TileIndex(*m.From), checkers.TileIndex(*m.To)), nil

	case TypeChain:
		if m.From == nil || len(m.Jumps) == 0 {
			return engine.TurnResult{}, protocolError("chain message needs from and at least one jump")
		}
		if m.To != nil {
			return engine.TurnResult{}, protocolError("chain message carries a destination")
		}
		if *m.From < 0 {
			return engine.TurnResult{}, protocolError("negative source tile %d", *m.From)
		}
		chain := make(checkers.Chain, len(m.Jumps))
		for i, j := range m.Jumps {
			if j.Captured < 0 || j.Landing < 0 {
				return engine.TurnResult{}, protocolError("negative tile in hop %d", i+1)
			}
			chain[i] = checkers.Jump{Captured: checkers.TileIndex(j.Captured), Landing: checkers.TileIndex(j.Landing)}
		}
		return engine.Capture(checkers.TileIndex(*m.From), chain), nil

	default:
		return engine.TurnResult{}, protocolError("unknown message type %q", m.Type)
	}
}

// WithHash returns a copy of m carrying a position fingerprint.
func (m Message) WithHash(h uint64) Message {
	m.Hash = fmt.Sprintf("%016x", h)
	return m
}

// HashValue returns the fingerprint carried by m. ok is false when m has
// none.
func (m Message) HashValue() (h uint64, ok bool, err error) {
	if m.Hash == "" {
		return 0, false, nil
	}
	h, err = strconv.ParseUint(m.Hash, 16, 64)
	if err != nil {
		return 0, false, protocolError("bad hash %q", m.Hash)
	}
	return h, true, nil
}

// Marshal encodes a turn result as JSON.
func Marshal(r engine.TurnResult) ([]byte, error) {
	return json.Marshal(FromTurnResult(r))
}

// Unmarshal decodes a JSON message into a turn result.
func Unmarshal(data []byte) (engine.TurnResult, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return engine.TurnResult{}, protocolError("decode: %v", err)
	}
	return m.TurnResult()
}

// Encoder writes messages, one JSON object per line.
type Encoder struct {
	enc *json.Encoder
}

// NewEncoder creates an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{enc: json.NewEncoder(w)}
}

// Encode writes one message followed by a newline.
func (e *Encoder) Encode(m Message) error {
	if err := e.enc.Encode(m); err != nil {
		return fmt.Errorf("encode %s message: %w", m.Type, err)
	}
	return nil
}

// Decoder reads newline-delimited messages.
type Decoder struct {
	dec *json.Decoder
}

// NewDecoder creates a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{dec: json.NewDecoder(r)}
}

// Decode reads the next message. io.EOF is returned unwrapped when the peer
// closes the stream between messages. Malformed JSON, unknown fields and
// truncated messages wrap ErrProtocol; other read errors are returned as
// they are.
func (d *Decoder) Decode() (Message, error) {
	var raw json.RawMessage
	if err := d.dec.Decode(&raw); err != nil {
		var syntaxErr *json.SyntaxError
		switch {
		case err == io.EOF:
			return Message{}, io.EOF
		case err == io.ErrUnexpectedEOF, errors.As(err, &syntaxErr):
			return Message{}, protocolError("decode: %v", err)
		default:
			return Message{}, errors.Wrap(err, "read message")
		}
	}

	strict := json.NewDecoder(bytes.NewReader(raw))
	strict.DisallowUnknownFields()
	var m Message
	if err := strict.Decode(&m); err != nil {
		return Message{}, protocolError("decode: %v", err)
	}
	return m, nil
}
