// Package processing replays game transcripts to validate and analyse them.
package processing

import (
	"fmt"

	"github.com/lgbarn/checkers-go/internal/checkers"
	"github.com/lgbarn/checkers-go/internal/config"
	"github.com/lgbarn/checkers-go/internal/engine"
	"github.com/lgbarn/checkers-go/internal/errors"
	"github.com/lgbarn/checkers-go/internal/hashing"
	"github.com/lgbarn/checkers-go/internal/output"
)

// GameAnalysis holds analysis results from replaying a transcript.
type GameAnalysis struct {
	Final        *engine.Game
	Captures     [2]int // pieces taken, indexed by the capturing colour
	Crownings    [2]int // men crowned, indexed by colour
	LongestChain int
	Positions    []uint64 // Zobrist hashes, starting position first

	// HasRepetition is set when some position occurred three times.
	HasRepetition bool
}

// RepetitionDetected returns true if a position occurred three times.
func (ga *GameAnalysis) RepetitionDetected() bool {
	return ga.HasRepetition
}

// String summarises the analysis in one line.
func (ga *GameAnalysis) String() string {
	return fmt.Sprintf("captures: black=%d red=%d, crownings: black=%d red=%d, longest chain: %d",
		ga.Captures[checkers.Black], ga.Captures[checkers.Red],
		ga.Crownings[checkers.Black], ga.Crownings[checkers.Red],
		ga.LongestChain)
}

// ValidationResult holds the result of transcript validation.
type ValidationResult struct {
	Valid     bool
	ErrorTurn int
	ErrorMsg  string
}

// startGame sets up the transcript's starting position.
func startGame(cfg config.GameConfig, r *output.Record) (*engine.Game, error) {
	if r.Start == "" {
		return engine.NewGame(cfg)
	}
	return engine.ParsePosition(cfg, r.Start)
}

// AnalyzeRecord replays a transcript from its starting position and
// analyses it. An illegal turn stops the replay with an error.
func AnalyzeRecord(cfg config.GameConfig, r *output.Record) (*GameAnalysis, error) {
	g, err := startGame(cfg, r)
	if err != nil {
		return nil, err
	}
	analysis := &GameAnalysis{Final: g}

	posHash := hashing.GenerateZobristHash(g)
	analysis.Positions = append(analysis.Positions, posHash)
	positionCount := map[uint64]int{posHash: 1}

	for i, t := range r.Turns {
		mover := g.Turn()
		wasKing := false
		if p := g.Player(mover).PieceAt(t.From); p != nil {
			wasKing = p.King
		}

		applied, err := g.ResolveTurn(t)
		if err != nil {
			return analysis, errors.Wrapf(err, "turn %d", i+1)
		}
		if applied.Kind == engine.ActionLoss {
			break
		}

		analysis.Captures[mover] += len(applied.Jumps)
		if len(applied.Jumps) > analysis.LongestChain {
			analysis.LongestChain = len(applied.Jumps)
		}
		if p := g.Player(mover).PieceAt(applied.Landing()); p != nil && p.King && !wasKing {
			analysis.Crownings[mover]++
		}

		posHash = hashing.GenerateZobristHash(g)
		analysis.Positions = append(analysis.Positions, posHash)
		positionCount[posHash]++

		// 3-fold repetition
		if positionCount[posHash] >= 3 {
			analysis.HasRepetition = true
		}
	}

	return analysis, nil
}

// ValidateRecord checks that every turn in a transcript is legal and that
// the recorded game matches the replay.
func ValidateRecord(cfg config.GameConfig, r *output.Record) *ValidationResult {
	result := &ValidationResult{Valid: true}

	g, err := startGame(cfg, r)
	if err != nil {
		result.Valid = false
		result.ErrorMsg = fmt.Sprintf("invalid start position: %s", r.Start)
		return result
	}

	for i, t := range r.Turns {
		if _, err := g.ResolveTurn(t); err != nil {
			result.Valid = false
			result.ErrorTurn = i + 1
			result.ErrorMsg = fmt.Sprintf("illegal action at turn %d: %s", i+1, t)
			return result
		}
	}

	if r.Game != nil && hashing.GenerateZobristHash(r.Game) != hashing.GenerateZobristHash(g) {
		result.Valid = false
		result.ErrorMsg = "final position differs from the replay"
	}
	return result
}
