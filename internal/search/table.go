package search

import (
	"encoding/binary"

	"lukechampine.com/frand"

	"github.com/WhosKhoaHoang/oth-gui-and-ai/internal/othello"
)

// Bound tells how a stored value relates to the true value of its node.
type Bound int8

const (
	Exact Bound = iota // Transposition table flags
	LowerBound
	UpperBound
)

// zobrist keys per cell and color, plus one for white to move. The generator
// is seeded with a fixed value so hashes are stable across runs.
var (
	zobristCells [othello.MaxSize * othello.MaxSize][2]uint64
	zobristTurn  uint64
)

func init() {
	seed := make([]byte, 32)
	copy(seed, "othello-zobrist")
	rng := frand.NewCustom(seed, 1024, 12)

	for i := range zobristCells {
		zobristCells[i][0] = binary.LittleEndian.Uint64(rng.Bytes(8))
		zobristCells[i][1] = binary.LittleEndian.Uint64(rng.Bytes(8))
	}
	zobristTurn = binary.LittleEndian.Uint64(rng.Bytes(8))
}

// Hash returns the Zobrist key of the board and the side to move.
func Hash(g *othello.Game) uint64 {
	var h uint64
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			idx := r*othello.MaxSize + c
			switch g.At(othello.Position{Row: r, Col: c}) {
			case othello.Black:
				h ^= zobristCells[idx][0]
			case othello.White:
				h ^= zobristCells[idx][1]
			}
		}
	}

	if g.Turn() == othello.White {
		h ^= zobristTurn
	}

	return h
}

// ttEntry represents an entry in the transposition table
type ttEntry struct {
	depth int
	value float64
	bound Bound
}

// Table caches node values for a single search from a single AI perspective.
// It is not safe for concurrent use; parallel searches give every worker its
// own table.
type Table struct {
	entries map[uint64]ttEntry
	hits    int
}

func NewTable() *Table {
	return &Table{entries: make(map[uint64]ttEntry)}
}

func (t *Table) Len() int  { return len(t.entries) }
func (t *Table) Hits() int { return t.hits }

// probe returns a value usable in place of searching the node. Entries only
// match at the same remaining depth, and bound entries only when they already
// fall outside the (alpha, beta) window.
func (t *Table) probe(key uint64, depth int, alpha, beta float64) (float64, bool) {
	e, ok := t.entries[key]
	if !ok || e.depth != depth {
		return 0, false
	}

	switch e.bound {
	case Exact:
	case LowerBound:
		if e.value < beta {
			return 0, false
		}
	case UpperBound:
		if e.value > alpha {
			return 0, false
		}
	}
	t.hits++

	return e.value, true
}

// store classifies value against the window the node was searched with.
func (t *Table) store(key uint64, depth int, value, alpha, beta float64) {
	bound := Exact
	if value <= alpha {
		bound = UpperBound
	} else if value >= beta {
		bound = LowerBound
	}

	t.entries[key] = ttEntry{depth: depth, value: value, bound: bound}
}
