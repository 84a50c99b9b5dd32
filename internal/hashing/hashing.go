// Package hashing provides position fingerprints and duplicate detection for
// checkers games.
package hashing

import (
	"sync"

	"github.com/lgbarn/checkers-go/internal/checkers"
	"github.com/lgbarn/checkers-go/internal/engine"
)

// Piece kinds indexing a Zobrist key row.
const (
	blackMan = iota
	blackKing
	redMan
	redKing
	numKinds
)

// ZobristTable holds the random keys for one board size.
type ZobristTable struct {
	size      int
	keys      [][numKinds]uint64
	redToMove uint64
}

// NewZobristTable builds the key table for a board size. Keys are derived
// from a fixed seed so every process computes the same hash for the same
// position, which lets two peers compare fingerprints.
func NewZobristTable(size int) *ZobristTable {
	state := uint64(0x9E3779B97F4A7C15) ^ uint64(size)
	next := func() uint64 {
		// splitmix64
		state += 0x9E3779B97F4A7C15
		z := state
		z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
		z = (z ^ (z >> 27)) * 0x94D049BB133111EB
		return z ^ (z >> 31)
	}

	t := &ZobristTable{size: size, keys: make([][numKinds]uint64, size*size/2)}
	for i := range t.keys {
		for k := 0; k < numKinds; k++ {
			t.keys[i][k] = next()
		}
	}
	t.redToMove = next()
	return t
}

// Size returns the board size the table was built for.
func (t *ZobristTable) Size() int { return t.size }

// Hash returns the Zobrist hash of the game's pieces and side to move.
func (t *ZobristTable) Hash(g *engine.Game) uint64 {
	var h uint64
	for _, c := range []checkers.Colour{checkers.Black, checkers.Red} {
		for _, p := range g.Player(c).Pieces() {
			h ^= t.keys[p.Position][kindOf(p)]
		}
	}
	if g.Turn() == checkers.Red {
		h ^= t.redToMove
	}
	return h
}

func kindOf(p *checkers.Piece) int {
	k := blackMan
	if p.Owner == checkers.Red {
		k = redMan
	}
	if p.King {
		k++
	}
	return k
}

var (
	tablesMu sync.Mutex
	tables   = make(map[int]*ZobristTable)
)

// tableFor returns the shared key table for a board size.
func tableFor(size int) *ZobristTable {
	tablesMu.Lock()
	defer tablesMu.Unlock()
	t, ok := tables[size]
	if !ok {
		t = NewZobristTable(size)
		tables[size] = t
	}
	return t
}

// GenerateZobristHash returns the Zobrist hash of a game position.
func GenerateZobristHash(g *engine.Game) uint64 {
	return tableFor(g.Board().Size()).Hash(g)
}

// WeakHash is a cheap material signature: piece and king counts per side and
// the side to move, packed into one word.
func WeakHash(g *engine.Game) uint32 {
	var counts [numKinds]uint32
	for _, c := range []checkers.Colour{checkers.Black, checkers.Red} {
		for _, p := range g.Player(c).Pieces() {
			counts[kindOf(p)]++
		}
	}
	h := counts[blackMan] | counts[blackKing]<<8 | counts[redMan]<<16 | counts[redKing]<<24
	if g.Turn() == checkers.Red {
		h ^= 0x80808080
	}
	return h
}

// DuplicateDetector tracks final positions seen across many games.
type DuplicateDetector struct {
	// hashTable stores seen signatures by Zobrist hash
	hashTable map[uint64][]GameSignature
	// useExactMatch also requires equal turn counts
	useExactMatch bool
	// duplicateCount tracks number of duplicates found
	duplicateCount int
}

// GameSignature stores identifying information about a finished game.
type GameSignature struct {
	// Hash is the Zobrist hash of the final position
	Hash uint64
	// Turns is the number of completed turns
	Turns int
	// WeakHash is the material signature for a second check
	WeakHash uint32
}

// NewDuplicateDetector creates a new duplicate detector.
func NewDuplicateDetector(exactMatch bool) *DuplicateDetector {
	return &DuplicateDetector{
		hashTable:     make(map[uint64][]GameSignature),
		useExactMatch: exactMatch,
	}
}

// Signature computes the signature of a game's current position.
func Signature(g *engine.Game) GameSignature {
	return GameSignature{
		Hash:     GenerateZobristHash(g),
		Turns:    g.TurnCount(),
		WeakHash: WeakHash(g),
	}
}

// CheckAndAdd checks if a game's position was seen before and records it.
// Returns true if it is a duplicate.
func (d *DuplicateDetector) CheckAndAdd(g *engine.Game) bool {
	if g == nil {
		return false
	}
	return d.CheckAndAddSignature(Signature(g))
}

// CheckAndAddSignature is CheckAndAdd for a precomputed signature.
func (d *DuplicateDetector) CheckAndAddSignature(sig GameSignature) bool {
	for _, existing := range d.hashTable[sig.Hash] {
		if d.signaturesMatch(sig, existing) {
			d.duplicateCount++
			return true
		}
	}
	d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
	return false
}

// signaturesMatch checks if two signatures match.
func (d *DuplicateDetector) signaturesMatch(a, b GameSignature) bool {
	if a.Hash != b.Hash || a.WeakHash != b.WeakHash {
		return false
	}
	if d.useExactMatch && a.Turns != b.Turns {
		return false
	}
	return true
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of unique positions.
func (d *DuplicateDetector) UniqueCount() int {
	count := 0
	for _, sigs := range d.hashTable {
		count += len(sigs)
	}
	return count
}
