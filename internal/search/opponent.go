package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/WhosKhoaHoang/oth-gui-and-ai/internal/othello"
)

var ErrUnknownOpponent = errors.New("unknown opponent")

// Opponent is a computer player. Play makes every move owed by ai on g, that
// is, it keeps moving while the turn comes back to ai, and returns the moves in
// order.
type Opponent interface {
	Name() string
	Play(ctx context.Context, g *othello.Game, ai othello.Cell) ([]othello.Position, error)
}

// Greedy always grabs the most tiles right now.
type Greedy struct {
	Rand Rand
	// Delay is waited before every move so a human can follow along.
	Delay time.Duration
}

func (Greedy) Name() string { return "Greedy Gary" }

func (p Greedy) Play(ctx context.Context, g *othello.Game, ai othello.Cell) ([]othello.Position, error) {
	var played []othello.Position
	for !g.Over() && g.Turn() == ai {
		if err := sleep(ctx, p.Delay); err != nil {
			return played, err
		}

		mv, ok := greedyMove(g, ai, p.Rand)
		if !ok {
			break
		}
		g.Play(mv)
		played = append(played, mv)
	}

	return played, nil
}

// MiniMax looks Depth plies ahead with alpha-beta pruning, searching the root
// moves in parallel.
type MiniMax struct {
	Depth    int
	Workers  int
	UseTable bool
}

func (MiniMax) Name() string { return "Mini Max" }

func (p MiniMax) Play(ctx context.Context, g *othello.Game, ai othello.Cell) ([]othello.Position, error) {
	opts := Options{Workers: p.Workers, UseTable: p.UseTable}

	var played []othello.Position
	for !g.Over() && g.Turn() == ai {
		r, err := SearchParallel(ctx, g, ai, p.Depth, opts)
		if err != nil {
			return played, err
		}
		if !r.HasMove {
			break
		}
		g.Play(r.Move)
		played = append(played, r.Move)
	}

	return played, nil
}

// NewOpponent resolves an opponent by its short name ("greedy", "minimax") or
// its display name.
func NewOpponent(name string, depth int) (Opponent, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "greedy", "greedy gary":
		return Greedy{Rand: DefaultRand}, nil
	case "minimax", "mini max":
		if depth < 1 {
			return nil, fmt.Errorf("minimax depth %d: must be at least 1", depth)
		}
		return MiniMax{Depth: depth, UseTable: true}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownOpponent, name)
}

// OpponentNames lists the names accepted by NewOpponent, for menus.
func OpponentNames() []string {
	return []string{"greedy", "minimax"}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
