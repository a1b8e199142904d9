package search

import (
	"context"
	"math"
	"runtime"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/WhosKhoaHoang/oth-gui-and-ai/internal/othello"
)

// Options tune SearchParallel.
type Options struct {
	// Workers bounds the number of root moves searched at once. Zero or less
	// means GOMAXPROCS.
	Workers int
	// UseTable gives every worker its own transposition table.
	UseTable bool
}

// SearchParallel searches every root move of g on its own clone and combines
// the results. The value matches Search at the same depth and the move is the
// first best one in LegalMoves order. Cancelling ctx aborts the search and
// returns ctx's error.
func SearchParallel(ctx context.Context, g *othello.Game, ai othello.Cell, depth int, opts Options) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if depth <= 0 || g.Over() {
		return Result{Value: Evaluate(g, ai)}, nil
	}

	maximizing := g.Turn() == ai
	best := Result{Value: math.Inf(1)}
	if maximizing {
		best.Value = math.Inf(-1)
	}

	moves := g.LegalMoves(g.Turn())
	if len(moves) == 0 {
		return best, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	values := make([]float64, len(moves))
	nodes := make([]int, len(moves))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, mv := range moves {
		i, mv := i, mv
		child := g.Clone()
		child.Play(mv)

		eg.Go(func() error {
			s := searcher{ctx: egCtx, ai: ai}
			if opts.UseTable {
				s.table = NewTable()
			}

			r, err := s.alphaBeta(child, math.Inf(-1), math.Inf(1), depth-1, false)
			if err != nil {
				return err
			}
			values[i] = r.Value
			nodes[i] = s.nodes

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		log.Debug().Err(err).Int("depth", depth).Msg("parallel-search-aborted")
		return Result{}, err
	}

	total := 1
	for i, mv := range moves {
		total += nodes[i]
		if maximizing && values[i] > best.Value || !maximizing && values[i] < best.Value {
			best = Result{Value: values[i], Move: mv, HasMove: true}
		}
	}

	log.Debug().
		Int("depth", depth).
		Int("workers", workers).
		Int("root-moves", len(moves)).
		Int("nodes", total).
		Float64("value", best.Value).
		Msg("parallel-search-done")

	return best, nil
}
