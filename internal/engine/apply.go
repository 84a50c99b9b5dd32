package engine

import (
	"github.com/lgbarn/checkers-go/internal/checkers"
	"github.com/lgbarn/checkers-go/internal/errors"
)

// ApplyMove moves a piece to dest and updates occupancy. A man reaching the
// opponent's back row is crowned. Returns true if the piece was crowned by
// this step.
//
// The caller is responsible for legality; moving onto an occupied tile
// panics.
func ApplyMove(board *checkers.Board, piece *checkers.Piece, dest checkers.TileIndex) bool {
	if board.IsOccupied(dest) {
		panic(errors.Wrapf(errors.ErrInvariant, "%s piece on %d cannot move to occupied tile %d",
			piece.Owner, piece.Position, dest))
	}

	board.SetOccupied(piece.Position, false)
	board.SetOccupied(dest, true)
	piece.Position = dest

	if !piece.King && board.IsCrownTile(piece.Owner, dest) {
		piece.King = true
		return true
	}
	return false
}

// ApplyJump performs one hop of a capture: the piece lands on j.Landing, the
// opponent loses the piece on j.Captured and that tile is cleared.
// Returns true if the piece was crowned on landing.
func ApplyJump(board *checkers.Board, piece *checkers.Piece, opponent *Player, j checkers.Jump) bool {
	crowned := ApplyMove(board, piece, j.Landing)
	opponent.RemovePiece(j.Captured)
	board.SetOccupied(j.Captured, false)
	return crowned
}

// ApplyChain applies every hop of a chain back-to-back. onHop, when non-nil,
// is called after each hop except the last with the hop just applied; UIs use
// it to pace the display. Returns true if the piece was crowned.
func ApplyChain(board *checkers.Board, piece *checkers.Piece, opponent *Player, chain checkers.Chain, onHop func(checkers.Jump)) bool {
	crowned := false
	for i, j := range chain {
		if ApplyJump(board, piece, opponent, j) {
			crowned = true
		}
		if onHop != nil && i < len(chain)-1 {
			onHop(j)
		}
	}
	return crowned
}
