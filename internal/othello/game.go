package othello

import (
	"github.com/rs/zerolog/log"
)

// MoveStatus is the outcome of ApplyMove.
type MoveStatus int8

const (
	Accepted MoveStatus = iota
	RejectedInvalid
	RejectedGameOver
	// TerminalNoMovesLeft means the placement was made but afterwards neither
	// player can move, so the game ended.
	TerminalNoMovesLeft
)

func (s MoveStatus) String() string {
	switch s {
	case Accepted:
		return "accepted"
	case RejectedInvalid:
		return "rejected-invalid"
	case RejectedGameOver:
		return "rejected-game-over"
	case TerminalNoMovesLeft:
		return "terminal-no-moves-left"
	default:
		return "unknown"
	}
}

// MoveResult describes what ApplyMove did.
type MoveResult struct {
	Status  MoveStatus
	Placed  Position
	Flipped []Position
	// Skipped is set when the player after the mover had no legal move and
	// the turn went back to the mover.
	Skipped bool
}

// Ok reports whether the move was placed and the game continues.
func (r MoveResult) Ok() bool {
	return r.Status == Accepted
}

// Err maps the status to a sentinel error, nil for Accepted.
func (r MoveResult) Err() error {
	switch r.Status {
	case RejectedInvalid:
		return ErrInvalidMove
	case RejectedGameOver:
		return ErrGameOver
	case TerminalNoMovesLeft:
		return ErrNoMovesLeft
	default:
		return nil
	}
}

// Game represents the game state
type Game struct {
	settings Settings
	board    Board
	turn     Cell
	over     bool
	winner   Winner
}

// New creates a game with the canonical center layout.
func New(s Settings) (*Game, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &Game{
		settings: s,
		board:    NewBoard(s.Rows, s.Cols, s.TopLeft),
		turn:     s.FirstMover,
	}, nil
}

// NewFromSnapshot creates a game whose board is a deep copy of grid. Only the
// dimensions of grid are checked.
func NewFromSnapshot(s Settings, grid [][]Cell) (*Game, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if len(grid) != s.Rows {
		return nil, configErr("board", len(grid), "row count does not match settings")
	}
	for _, line := range grid {
		if len(line) != s.Cols {
			return nil, configErr("board", len(line), "column count does not match settings")
		}
	}

	return &Game{
		settings: s,
		board:    BoardFromGrid(grid),
		turn:     s.FirstMover,
	}, nil
}

// Clone returns an independent copy of the game. The board storage is never
// shared with the original.
func (g *Game) Clone() *Game {
	return &Game{
		settings: g.settings,
		board:    g.board.Clone(),
		turn:     g.turn,
		over:     g.over,
		winner:   g.winner,
	}
}

func (g *Game) Settings() Settings   { return g.settings }
func (g *Game) Rows() int            { return g.board.rows }
func (g *Game) Cols() int            { return g.board.cols }
func (g *Game) Turn() Cell           { return g.turn }
func (g *Game) Winner() Winner       { return g.winner }
func (g *Game) Over() bool           { return g.over }
func (g *Game) WinMethod() WinMethod { return g.settings.WinMethod }
func (g *Game) TopLeft() Cell        { return g.settings.TopLeft }
func (g *Game) FirstMover() Cell     { return g.settings.FirstMover }
func (g *Game) Corners() [4]Position { return g.board.Corners() }
func (g *Game) String() string       { return g.board.String() }

// Board returns a deep copy of the grid.
func (g *Game) Board() [][]Cell {
	return g.board.Grid()
}

// At returns the cell at the 0-based position p, Empty when out of bounds.
func (g *Game) At(p Position) Cell {
	if !g.board.InBounds(p) {
		return Empty
	}

	return g.board.At(p)
}

// Counts returns the black and white tile counts.
func (g *Game) Counts() (int, int) {
	return g.board.Counts()
}

// Count returns the number of tiles of color c.
func (g *Game) Count(c Cell) int {
	blackCount, whiteCount := g.board.Counts()
	if c == Black {
		return blackCount
	}
	if c == White {
		return whiteCount
	}

	return g.board.rows*g.board.cols - blackCount - whiteCount
}

// Classify returns the border class of p.
func (g *Game) Classify(p Position) BorderClass {
	return g.board.Classify(p)
}

// Flips returns the cells that would be flipped if player placed a tile at p.
// The result is empty when p is occupied, off the board, or captures nothing.
func (g *Game) Flips(p Position, player Cell) []Position {
	if !g.board.InBounds(p) || g.board.At(p) != Empty {
		return nil
	}
	var totalFlips []Position
	opponent := player.Opponent()

	for _, dir := range Directions(g.board.Classify(p)) {
		var flips []Position
		next := p.add(dir)

		for g.board.InBounds(next) && g.board.At(next) == opponent {
			flips = append(flips, next)
			next = next.add(dir)
		}

		if len(flips) > 0 && g.board.InBounds(next) && g.board.At(next) == player {
			totalFlips = append(totalFlips, flips...)
		}
	}

	return totalFlips
}

// LegalMoves returns the placements available to player in row-major order.
func (g *Game) LegalMoves(player Cell) []Position {
	var moves []Position
	for r := 0; r < g.board.rows; r++ {
		for c := 0; c < g.board.cols; c++ {
			p := Position{r, c}
			if g.board.At(p) != Empty {
				continue
			}
			if g.captures(p, player) {
				moves = append(moves, p)
			}
		}
	}

	return moves
}

// HasLegalMove reports whether player can place anywhere.
func (g *Game) HasLegalMove(player Cell) bool {
	for r := 0; r < g.board.rows; r++ {
		for c := 0; c < g.board.cols; c++ {
			p := Position{r, c}
			if g.board.At(p) == Empty && g.captures(p, player) {
				return true
			}
		}
	}

	return false
}

// captures is Flips without collecting the cells.
func (g *Game) captures(p Position, player Cell) bool {
	opponent := player.Opponent()
	for _, dir := range Directions(g.board.Classify(p)) {
		next := p.add(dir)
		run := 0
		for g.board.InBounds(next) && g.board.At(next) == opponent {
			run++
			next = next.add(dir)
		}
		if run > 0 && g.board.InBounds(next) && g.board.At(next) == player {
			return true
		}
	}

	return false
}

// ApplyMove places a tile for the player to move at the 1-based (row, col).
// Rejections leave the game untouched.
func (g *Game) ApplyMove(row, col int) MoveResult {
	p := Position{Row: row - 1, Col: col - 1}
	result := MoveResult{Placed: p}

	if g.over {
		result.Status = RejectedGameOver
		return result
	}

	flips := g.Flips(p, g.turn)
	if len(flips) == 0 {
		log.Debug().Str("player", g.turn.String()).Int("row", row).Int("col", col).Msg("invalid-move")
		result.Status = RejectedInvalid
		return result
	}

	g.board.set(p, g.turn)
	for _, f := range flips {
		g.board.set(f, g.turn)
	}
	result.Flipped = flips

	if g.board.Full() {
		g.finish()
		return result
	}

	mover := g.turn
	g.turn = mover.Opponent()

	if !g.HasLegalMove(g.turn) {
		log.Debug().Str("player", g.turn.String()).Msg("turn-skipped")
		g.turn = mover
		result.Skipped = true

		if !g.HasLegalMove(mover) {
			g.finish()
			result.Status = TerminalNoMovesLeft
			return result
		}
	}

	return result
}

// Play applies a 0-based position.
func (g *Game) Play(p Position) MoveResult {
	return g.ApplyMove(p.OneBased())
}

func (g *Game) finish() {
	g.over = true
	g.winner = g.computeWinner()

	blackCount, whiteCount := g.board.Counts()
	log.Debug().
		Int("black", blackCount).
		Int("white", whiteCount).
		Str("winner", g.winner.String()).
		Msg("game-over")
}

func (g *Game) computeWinner() Winner {
	blackCount, whiteCount := g.board.Counts()

	switch {
	case blackCount == whiteCount:
		return Draw
	case g.settings.WinMethod == FewestWins:
		if blackCount < whiteCount {
			return WinnerBlack
		}
		return WinnerWhite
	default:
		if blackCount > whiteCount {
			return WinnerBlack
		}
		return WinnerWhite
	}
}

// PlayerName is the upper-case label used in status lines.
func PlayerName(c Cell) string {
	switch c {
	case Black:
		return "BLACK"
	case White:
		return "WHITE"
	}

	return "NONE"
}
