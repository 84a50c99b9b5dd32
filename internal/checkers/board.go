package checkers

import (
	"fmt"

	"github.com/lgbarn/checkers-go/internal/errors"
)

// Board holds the occupancy of every playable tile.
//
// Tiles are numbered row by row starting at Black's home row. Each row holds
// size/2 tiles; even rows start on board column 0 and odd rows on column 1,
// which gives the zig-zag diagonal adjacency of the packed index:
//
//	|  |28|  |29|  |30|  |31|
//	|24|  |25|  |26|  |27|  |
//	|  |20|  |21|  |22|  |23|
//	|16|  |17|  |18|  |19|  |
//	|  |12|  |13|  |14|  |15|
//	| 8|  | 9|  |10|  |11|  |
//	|  | 4|  | 5|  | 6|  | 7|
//	| 0|  | 1|  | 2|  | 3|  |
type Board struct {
	size  int
	half  int
	tiles []bool
}

// NewBoard creates an empty board with the given side length.
func NewBoard(size int) (*Board, error) {
	if !ValidBoardSize(size) {
		return nil, fmt.Errorf("board size %d must be even and between %d and %d: %w",
			size, MinBoardSize, MaxBoardSize, errors.ErrInvalidConfig)
	}
	return &Board{
		size:  size,
		half:  size / 2,
		tiles: make([]bool, size*size/2),
	}, nil
}

// Size returns the side length in tiles.
func (b *Board) Size() int { return b.size }

// Half returns the number of playable tiles per row.
func (b *Board) Half() int { return b.half }

// NumTiles returns the number of playable tiles.
func (b *Board) NumTiles() int { return len(b.tiles) }

// TileExists reports whether i is a valid packed index.
func (b *Board) TileExists(i TileIndex) bool {
	return i >= 0 && int(i) < len(b.tiles)
}

// mustExist panics on an out-of-range index. Move generation only ever
// produces in-range indices, so reaching this is a programming error.
func (b *Board) mustExist(i TileIndex) {
	if !b.TileExists(i) {
		panic(errors.Wrapf(errors.ErrInvariant, "tile %d outside board of %d tiles", i, len(b.tiles)))
	}
}

// IsOccupied reports whether a piece sits on tile i.
func (b *Board) IsOccupied(i TileIndex) bool {
	b.mustExist(i)
	return b.tiles[i]
}

// SetOccupied sets the occupancy flag of tile i.
func (b *Board) SetOccupied(i TileIndex, occupied bool) {
	b.mustExist(i)
	b.tiles[i] = occupied
}

// Row returns the row of tile i, 0 being Black's home row.
func (b *Board) Row(i TileIndex) int {
	b.mustExist(i)
	return int(i) / b.half
}

// Column returns the board column (0..size-1) of tile i.
func (b *Board) Column(i TileIndex) int {
	b.mustExist(i)
	c := 2 * (int(i) % b.half)
	if b.Row(i)%2 == 1 {
		c++
	}
	return c
}

// TileAt returns the tile at the given board row and column, or false when
// the square is light or off the board.
func (b *Board) TileAt(row, col int) (TileIndex, bool) {
	if row < 0 || row >= b.size || col < 0 || col >= b.size {
		return 0, false
	}
	if (row+col)%2 != 0 {
		return 0, false
	}
	return TileIndex(row*b.half + col/2), true
}

// onSideEdge reports whether tile i is in the leftmost or rightmost column.
func (b *Board) onSideEdge(i TileIndex) bool {
	m := int(i) % b.size
	return m == 0 || m == b.size-1
}

// IsEdgeTile reports whether tile i lies in the first or last row or the
// leftmost or rightmost column.
func (b *Board) IsEdgeTile(i TileIndex) bool {
	b.mustExist(i)
	return !(int(i) > b.half-1 &&
		int(i) < (b.size-1)*b.half &&
		!b.onSideEdge(i))
}

// Diagonals returns the in-range diagonal neighbours of tile i in the next
// row up (towards Red's home row) or the next row down.
func (b *Board) Diagonals(i TileIndex, up bool) []TileIndex {
	b.mustExist(i)
	step := TileIndex(b.half)
	if !up {
		step = -step
	}

	var candidates []TileIndex
	switch {
	case b.onSideEdge(i):
		candidates = []TileIndex{i + step}
	case b.Row(i)%2 == 1:
		candidates = []TileIndex{i + step, i + step + 1}
	default:
		candidates = []TileIndex{i + step - 1, i + step}
	}

	out := candidates[:0]
	for _, c := range candidates {
		if b.TileExists(c) {
			out = append(out, c)
		}
	}
	return out
}

// JumpLanding returns the tile two steps from `from` continuing through the
// diagonal neighbour `over`. The result is only guaranteed to exist when
// `over` is not an edge tile.
func (b *Board) JumpLanding(from, over TileIndex) TileIndex {
	dr := 1
	if b.Row(over) < b.Row(from) {
		dr = -1
	}
	dc := 1
	if b.Column(over) < b.Column(from) {
		dc = -1
	}
	return from + TileIndex(dr*b.size+dc)
}

// CrownRow returns the row on which a man of colour c is crowned.
func (b *Board) CrownRow(c Colour) int {
	if c == Black {
		return b.size - 1
	}
	return 0
}

// IsCrownTile reports whether a man of colour c is crowned on reaching tile i.
func (b *Board) IsCrownTile(c Colour, i TileIndex) bool {
	return b.Row(i) == b.CrownRow(c)
}

// StartingTiles returns the tiles holding colour c's men in the standard
// layout: each side fills the size/2-1 rows nearest its home row.
func (b *Board) StartingTiles(c Colour) []TileIndex {
	count := b.half * (b.half - 1)
	start := 0
	if c == Red {
		start = b.half * (b.half + 1)
	}
	tiles := make([]TileIndex, count)
	for i := range tiles {
		tiles[i] = TileIndex(start + i)
	}
	return tiles
}

// Clear marks every tile unoccupied.
func (b *Board) Clear() {
	for i := range b.tiles {
		b.tiles[i] = false
	}
}

// Occupancy returns a copy of the occupancy flags indexed by tile.
func (b *Board) Occupancy() []bool {
	out := make([]bool, len(b.tiles))
	copy(out, b.tiles)
	return out
}

// OccupiedCount returns the number of occupied tiles.
func (b *Board) OccupiedCount() int {
	n := 0
	for _, occ := range b.tiles {
		if occ {
			n++
		}
	}
	return n
}

// Clone creates a deep copy of the board.
func (b *Board) Clone() *Board {
	return &Board{
		size:  b.size,
		half:  b.half,
		tiles: b.Occupancy(),
	}
}
