package search

import (
	"github.com/WhosKhoaHoang/oth-gui-and-ai/internal/othello"
)

// CornerBonus is added once per corner held by the AI.
const CornerBonus = 10.0

// Evaluate scores g from the point of view of ai. Higher is better for ai.
//
// The tile differential is negated under FewestWins so that the maximizing
// side is still the one heading for a win.
func Evaluate(g *othello.Game, ai othello.Cell) float64 {
	own := g.Count(ai)
	opp := g.Count(ai.Opponent())

	score := float64(own - opp)
	if g.WinMethod() == othello.FewestWins {
		score = -score
	}

	for _, corner := range g.Corners() {
		if g.At(corner) == ai {
			score += CornerBonus
		}
	}

	return score
}
