package search

import (
	"context"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/WhosKhoaHoang/oth-gui-and-ai/internal/othello"
)

// Result is the value of a searched node and the move that achieves it.
// HasMove is false when the node was terminal or its side to move had no
// legal move; such a result must be treated as a pass.
type Result struct {
	Value   float64
	Move    othello.Position
	HasMove bool
}

// Minimax is the unpruned depth-limited search. It visits every node and is
// kept as the reference AlphaBeta must agree with.
func Minimax(g *othello.Game, ai othello.Cell, depth int) Result {
	if depth <= 0 || g.Over() {
		return Result{Value: Evaluate(g, ai)}
	}

	maximizing := g.Turn() == ai
	best := Result{Value: math.Inf(1)}
	if maximizing {
		best.Value = math.Inf(-1)
	}

	for _, mv := range g.LegalMoves(g.Turn()) {
		child := g.Clone()
		child.Play(mv)

		r := Minimax(child, ai, depth-1)
		if maximizing && r.Value > best.Value || !maximizing && r.Value < best.Value {
			best = Result{Value: r.Value, Move: mv, HasMove: true}
		}
	}

	return best
}

// AlphaBeta searches g to the given depth inside the (alpha, beta) window.
// The side to move maximizes when it is ai and minimizes otherwise.
func AlphaBeta(g *othello.Game, ai othello.Cell, alpha, beta float64, depth int) Result {
	s := searcher{ctx: context.Background(), ai: ai}
	r, _ := s.alphaBeta(g, alpha, beta, depth, true)

	return r
}

// Search runs AlphaBeta with a full window.
func Search(g *othello.Game, ai othello.Cell, depth int) Result {
	return SearchTable(g, ai, depth, nil)
}

// SearchTable is Search backed by a transposition table. A nil table searches
// without one. The table must not be reused for another ai color.
func SearchTable(g *othello.Game, ai othello.Cell, depth int, table *Table) Result {
	s := searcher{ctx: context.Background(), ai: ai, table: table}
	r, _ := s.alphaBeta(g, math.Inf(-1), math.Inf(1), depth, true)

	ev := log.Debug().
		Int("depth", depth).
		Int("nodes", s.nodes)
	if table != nil {
		ev = ev.Int("table-hits", table.Hits()).Int("table-size", table.Len())
	}
	ev.Float64("value", r.Value).
		Bool("has-move", r.HasMove).
		Msg("search-done")

	return r
}

// MinimaxStep is the driving loop for a minimax AI: search, apply the move,
// and repeat while it is still ai's turn. It stops when the game is decided or
// the search finds no move, and returns the moves applied to g.
func MinimaxStep(g *othello.Game, ai othello.Cell, depth int) []othello.Position {
	var played []othello.Position
	for !g.Over() && g.Turn() == ai {
		r := Search(g, ai, depth)
		if !r.HasMove {
			break
		}
		g.Play(r.Move)
		played = append(played, r.Move)
	}

	return played
}

type searcher struct {
	ctx   context.Context
	ai    othello.Cell
	table *Table
	nodes int
}

func (s *searcher) alphaBeta(g *othello.Game, alpha, beta float64, depth int, root bool) (Result, error) {
	if err := s.ctx.Err(); err != nil {
		return Result{}, err
	}
	s.nodes++

	if depth <= 0 || g.Over() {
		return Result{Value: Evaluate(g, s.ai)}, nil
	}

	var key uint64
	if s.table != nil && !root {
		key = Hash(g)
		if v, ok := s.table.probe(key, depth, alpha, beta); ok {
			return Result{Value: v}, nil
		}
	}
	alphaOrig, betaOrig := alpha, beta

	maximizing := g.Turn() == s.ai
	best := Result{Value: math.Inf(1)}
	if maximizing {
		best.Value = math.Inf(-1)
	}

	for _, mv := range g.LegalMoves(g.Turn()) {
		child := g.Clone()
		child.Play(mv)

		r, err := s.alphaBeta(child, alpha, beta, depth-1, false)
		if err != nil {
			return Result{}, err
		}

		if maximizing {
			if r.Value > best.Value {
				best = Result{Value: r.Value, Move: mv, HasMove: true}
			}
			alpha = math.Max(alpha, best.Value)
		} else {
			if r.Value < best.Value {
				best = Result{Value: r.Value, Move: mv, HasMove: true}
			}
			beta = math.Min(beta, best.Value)
		}

		if beta <= alpha {
			break
		}
	}

	if s.table != nil && !root {
		s.table.store(key, depth, best.Value, alphaOrig, betaOrig)
	}

	return best, nil
}
