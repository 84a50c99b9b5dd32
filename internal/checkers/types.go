// Package checkers provides core checkers types and board geometry.
package checkers

import (
	"fmt"
	"strconv"
	"strings"
)

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	Red
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == Red {
		return "Red"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == Red {
		return Black
	}
	return Red
}

// Letter returns the single letter used for the colour in position strings.
func (c Colour) Letter() byte {
	if c == Red {
		return 'R'
	}
	return 'B'
}

// ParseColour converts "black"/"red" (any case, or the first letter) to a Colour.
func ParseColour(s string) (Colour, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "b", "black":
		return Black, nil
	case "r", "red":
		return Red, nil
	default:
		return Black, fmt.Errorf("unknown colour %q", s)
	}
}

// TileIndex is the packed index of a playable (dark) tile.
type TileIndex int

// String returns the decimal index.
func (t TileIndex) String() string {
	return strconv.Itoa(int(t))
}

// Board size limits.
const (
	MinBoardSize     = 4
	MaxBoardSize     = 64
	DefaultBoardSize = 8
)

// ValidBoardSize reports whether n is an even side length between
// MinBoardSize and MaxBoardSize.
func ValidBoardSize(n int) bool {
	return n >= MinBoardSize && n <= MaxBoardSize && n%2 == 0
}

// Piece is a single man or king.
type Piece struct {
	Owner    Colour
	Position TileIndex
	King     bool
}

// Value is the material weight of the piece: kings 2, men 1.
func (p Piece) Value() int {
	if p.King {
		return 2
	}
	return 1
}

// Letter returns b/r for men and B/R for kings.
func (p Piece) Letter() byte {
	l := byte('b')
	if p.Owner == Red {
		l = 'r'
	}
	if p.King {
		l -= 'a' - 'A'
	}
	return l
}

// Jump is a single-hop capture: the opponent piece on Captured is removed
// and the moving piece ends on Landing.
type Jump struct {
	Captured TileIndex
	Landing  TileIndex
}

// Chain is an ordered sequence of jumps made by one piece in one turn.
type Chain []Jump

// Landing returns the tile the piece finishes the chain on.
func (c Chain) Landing() TileIndex {
	return c[len(c)-1].Landing
}

// CapturedTiles returns the captured tiles in hop order.
func (c Chain) CapturedTiles() []TileIndex {
	tiles := make([]TileIndex, len(c))
	for i, j := range c {
		tiles[i] = j.Captured
	}
	return tiles
}

// Clone returns an independent copy of the chain.
func (c Chain) Clone() Chain {
	if c == nil {
		return nil
	}
	out := make(Chain, len(c))
	copy(out, c)
	return out
}
