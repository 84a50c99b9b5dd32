package engine

import (
	"github.com/lgbarn/checkers-go/internal/checkers"
	"github.com/lgbarn/checkers-go/internal/errors"
)

// Player holds the pieces owned by one side.
type Player struct {
	colour checkers.Colour
	pieces []*checkers.Piece
}

// NewPlayer creates a player with no pieces.
func NewPlayer(colour checkers.Colour) *Player {
	return &Player{colour: colour}
}

// Colour returns the side this player plays.
func (p *Player) Colour() checkers.Colour {
	return p.colour
}

// addPiece places a new piece for this player. Occupancy is the caller's job.
func (p *Player) addPiece(tile checkers.TileIndex, king bool) *checkers.Piece {
	piece := &checkers.Piece{Owner: p.colour, Position: tile, King: king}
	p.pieces = append(p.pieces, piece)
	return piece
}

// Pieces returns the player's pieces. The slice is a copy; the pieces are not.
func (p *Player) Pieces() []*checkers.Piece {
	out := make([]*checkers.Piece, len(p.pieces))
	copy(out, p.pieces)
	return out
}

// Len returns the number of pieces left.
func (p *Player) Len() int {
	return len(p.pieces)
}

// PieceAt returns the player's piece on tile, or nil.
func (p *Player) PieceAt(tile checkers.TileIndex) *checkers.Piece {
	for _, piece := range p.pieces {
		if piece.Position == tile {
			return piece
		}
	}
	return nil
}

// Tiles returns the positions of all owned pieces.
func (p *Player) Tiles() []checkers.TileIndex {
	tiles := make([]checkers.TileIndex, len(p.pieces))
	for i, piece := range p.pieces {
		tiles[i] = piece.Position
	}
	return tiles
}

// RemovePiece deletes the piece on tile. A missing piece means the caller
// and the engine state disagree, which panics.
func (p *Player) RemovePiece(tile checkers.TileIndex) {
	for i, piece := range p.pieces {
		if piece.Position == tile {
			p.pieces = append(p.pieces[:i], p.pieces[i+1:]...)
			return
		}
	}
	panic(errors.Wrapf(errors.ErrInvariant, "%s has no piece on tile %d", p.colour, tile))
}

// CanCapture reports whether any owned piece has a legal jump.
func (p *Player) CanCapture(board *checkers.Board, opponent *Player) bool {
	opp := opponent.Tiles()
	for _, piece := range p.pieces {
		if len(LegalJumps(board, piece, opp)) > 0 {
			return true
		}
	}
	return false
}

// HasAnyMove reports whether any owned piece has a legal move or jump.
// A player with no pieces has no moves.
func (p *Player) HasAnyMove(board *checkers.Board, opponent *Player) bool {
	for _, piece := range p.pieces {
		if len(LegalMoves(board, piece)) > 0 {
			return true
		}
	}
	return p.CanCapture(board, opponent)
}

// Score is the material count: kings 2, men 1.
func (p *Player) Score() int {
	score := 0
	for _, piece := range p.pieces {
		score += piece.Value()
	}
	return score
}

// Clone creates a deep copy of the player and its pieces.
func (p *Player) Clone() *Player {
	c := &Player{colour: p.colour, pieces: make([]*checkers.Piece, len(p.pieces))}
	for i, piece := range p.pieces {
		cp := *piece
		c.pieces[i] = &cp
	}
	return c
}
