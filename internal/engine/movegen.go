// Package engine provides checkers move generation, move application and
// turn sequencing.
package engine

import (
	"slices"

	"github.com/lgbarn/checkers-go/internal/checkers"
)

// PossibleNeighbors returns the diagonal tiles a piece could step to in one
// move. Men look forward only (up for Black, down for Red); kings look both
// ways.
func PossibleNeighbors(board *checkers.Board, piece *checkers.Piece) []checkers.TileIndex {
	if piece.King {
		up := board.Diagonals(piece.Position, true)
		return append(up, board.Diagonals(piece.Position, false)...)
	}
	return board.Diagonals(piece.Position, piece.Owner == checkers.Black)
}

// LegalMoves returns the unoccupied neighbours of a piece.
func LegalMoves(board *checkers.Board, piece *checkers.Piece) []checkers.TileIndex {
	var moves []checkers.TileIndex
	for _, n := range PossibleNeighbors(board, piece) {
		if !board.IsOccupied(n) {
			moves = append(moves, n)
		}
	}
	return moves
}

// LegalJumps returns the single-hop captures available to a piece.
// opponentTiles are the tiles held by the other side.
//
// A neighbour can only be captured when it is not an edge tile, which also
// keeps every landing tile on the board.
func LegalJumps(board *checkers.Board, piece *checkers.Piece, opponentTiles []checkers.TileIndex) []checkers.Jump {
	var jumps []checkers.Jump
	for _, n := range PossibleNeighbors(board, piece) {
		if !slices.Contains(opponentTiles, n) || board.IsEdgeTile(n) {
			continue
		}
		landing := board.JumpLanding(piece.Position, n)
		if board.IsOccupied(landing) {
			continue
		}
		jumps = append(jumps, checkers.Jump{Captured: n, Landing: landing})
	}
	return jumps
}

// containsJump reports whether j is one of jumps.
func containsJump(jumps []checkers.Jump, j checkers.Jump) bool {
	return slices.Contains(jumps, j)
}
