package search

import (
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/WhosKhoaHoang/oth-gui-and-ai/internal/othello"
)

// Rand picks the greedy tie-break. *frand.RNG satisfies it.
type Rand interface {
	Intn(n int) int
}

type globalRand struct{}

func (globalRand) Intn(n int) int { return frand.Intn(n) }

// DefaultRand draws from frand's process-wide generator.
var DefaultRand Rand = globalRand{}

// GreedyStep plays greedy moves on g for as long as it is ai's turn and
// returns the moves it applied. Each move maximizes ai's tile count after the
// placement; ties are broken uniformly at random. Nothing is played when ai has
// no legal move.
func GreedyStep(g *othello.Game, ai othello.Cell, rng Rand) []othello.Position {
	var played []othello.Position
	for !g.Over() && g.Turn() == ai {
		mv, ok := greedyMove(g, ai, rng)
		if !ok {
			break
		}
		g.Play(mv)
		played = append(played, mv)
	}

	return played
}

func greedyMove(g *othello.Game, ai othello.Cell, rng Rand) (othello.Position, bool) {
	if rng == nil {
		rng = DefaultRand
	}

	moves := g.LegalMoves(ai)
	if len(moves) == 0 {
		return othello.Position{}, false
	}

	best := -1
	var candidates []othello.Position
	for _, mv := range moves {
		sim := g.Clone()
		sim.Play(mv)

		score := sim.Count(ai)
		switch {
		case score > best:
			best = score
			candidates = append(candidates[:0], mv)
		case score == best:
			candidates = append(candidates, mv)
		}
	}

	mv := candidates[rng.Intn(len(candidates))]
	log.Debug().
		Int("score", best).
		Int("candidates", len(candidates)).
		Int("row", mv.Row+1).
		Int("col", mv.Col+1).
		Msg("greedy-move")

	return mv, true
}
