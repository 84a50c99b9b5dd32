package wire

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/lgbarn/checkers-go/internal/checkers"
	"github.com/lgbarn/checkers-go/internal/engine"
	"github.com/lgbarn/checkers-go/internal/errors"
	"github.com/lgbarn/checkers-go/internal/hashing"
	"github.com/lgbarn/checkers-go/internal/testutil"
)

func TestMarshal(t *testing.T) {
	tests := []struct {
		name   string
		action engine.TurnResult
		want   string
	}{
		{"loss", engine.Loss(), `{"type":"loss"}`},
		{"move", engine.Move(9, 13), `{"type":"move","from":9,"to":13}`},
		{"move from tile zero", engine.Move(0, 4), `{"type":"move","from":0,"to":4}`},
		{"chain", engine.Capture(9, checkers.Chain{{Captured: 13, Landing: 18}}),
			`{"type":"chain","from":9,"jumps":[{"captured":13,"landing":18}]}`},
		{"double chain", engine.Capture(1, checkers.Chain{{Captured: 5, Landing: 10}, {Captured: 14, Landing: 19}}),
			`{"type":"chain","from":1,"jumps":[{"captured":5,"landing":10},{"captured":14,"landing":19}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Marshal(tt.action)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, string(data), tt.want)

			back, err := Unmarshal(data)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, back, tt.action)
		})
	}
}

func TestUnmarshal_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `loss`},
		{"unknown type", `{"type":"resign"}`},
		{"missing type", `{"from":9,"to":13}`},
		{"move without to", `{"type":"move","from":9}`},
		{"move without from", `{"type":"move","to":13}`},
		{"move with jumps", `{"type":"move","from":9,"to":13,"jumps":[{"captured":13,"landing":18}]}`},
		{"negative tile", `{"type":"move","from":-1,"to":3}`},
		{"chain without jumps", `{"type":"chain","from":9}`},
		{"chain with to", `{"type":"chain","from":9,"to":18,"jumps":[{"captured":13,"landing":18}]}`},
		{"chain negative landing", `{"type":"chain","from":9,"jumps":[{"captured":13,"landing":-2}]}`},
		{"loss with move", `{"type":"loss","from":9}`},
		{"wrong field type", `{"type":"move","from":"nine","to":13}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.data))
			if !errors.Is(err, errors.ErrProtocol) {
				t.Errorf("Unmarshal(%s) error = %v, want ErrProtocol", tt.data, err)
			}
		})
	}
}

func TestHash(t *testing.T) {
	m := FromTurnResult(engine.Move(9, 13)).WithHash(0xdeadbeef)
	testutil.AssertEqual(t, m.Hash, "00000000deadbeef")

	h, ok, err := m.HashValue()
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, h, uint64(0xdeadbeef))

	_, ok, err = FromTurnResult(engine.Loss()).HashValue()
	testutil.AssertNoError(t, err)
	testutil.AssertFalse(t, ok)

	_, _, err = Message{Type: TypeLoss, Hash: "xyz"}.HashValue()
	testutil.AssertTrue(t, errors.Is(err, errors.ErrProtocol))
}

func TestDecoder(t *testing.T) {
	in := `{"type":"move","from":9,"to":13}` + "\n" +
		`{"type":"loss"}` + "\n"
	dec := NewDecoder(strings.NewReader(in))

	m, err := dec.Decode()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, m.Type, TypeMove)

	m, err = dec.Decode()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, m.Type, TypeLoss)

	_, err = dec.Decode()
	testutil.AssertTrue(t, err == io.EOF, "want io.EOF at end of stream, got %v", err)
}

func TestDecoder_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"syntax", "{\"type\":\n}"},
		{"truncated", `{"type":"mo`},
		{"unknown field", `{"type":"loss","colour":"red"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDecoder(strings.NewReader(tt.in)).Decode()
			if !errors.Is(err, errors.ErrProtocol) {
				t.Errorf("Decode(%q) error = %v, want ErrProtocol", tt.in, err)
			}
		})
	}
}

// TestReplayOnMirror plays a random game, streams every applied turn
// through the codec and replays the stream on a second game.
func TestReplayOnMirror(t *testing.T) {
	for _, size := range []int{6, 8, 10} {
		size := size
		t.Run(checkers.TileIndex(size).String(), func(t *testing.T) {
			local := testutil.MustNewGame(t, size, 300)
			mirror := testutil.MustNewGame(t, size, 300)

			var stream bytes.Buffer
			enc := NewEncoder(&stream)
			black, red := engine.NewRandomStrategy(7), engine.NewRandomStrategy(11)
			_, err := engine.Play(context.Background(), local, black, red,
				engine.WithTurnCallback(func(g *engine.Game, applied engine.TurnResult) {
					if err := enc.Encode(FromTurnResult(applied).WithHash(hashing.GenerateZobristHash(g))); err != nil {
						t.Fatalf("Encode: %v", err)
					}
				}))
			testutil.AssertNoError(t, err)

			dec := NewDecoder(&stream)
			for {
				m, err := dec.Decode()
				if err == io.EOF {
					break
				}
				testutil.AssertNoError(t, err)

				action, err := m.TurnResult()
				testutil.AssertNoError(t, err)
				testutil.MustResolve(t, mirror, action)

				want, ok, err := m.HashValue()
				testutil.AssertNoError(t, err)
				testutil.AssertTrue(t, ok)
				testutil.AssertEqual(t, hashing.GenerateZobristHash(mirror), want)
			}

			testutil.AssertSameGame(t, mirror, local)
		})
	}
}
