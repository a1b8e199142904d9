package othello

import (
	"strings"
)

// WinMethod decides whether the most or the fewest tiles win.
type WinMethod int8

const (
	MostWins WinMethod = iota + 1
	FewestWins
)

// Winner is the outcome of a game. It stays Undetermined until the game is over.
type Winner int8

const (
	Undetermined Winner = iota
	WinnerBlack
	WinnerWhite
	Draw
)

// Settings are the construction parameters of a game.
type Settings struct {
	Rows       int
	Cols       int
	FirstMover Cell
	TopLeft    Cell
	WinMethod  WinMethod
}

// DefaultSettings mirrors the classic 8x8 game: black moves first, white on
// the top-left of the center square, most tiles win.
func DefaultSettings() Settings {
	return Settings{
		Rows:       8,
		Cols:       8,
		FirstMover: Black,
		TopLeft:    White,
		WinMethod:  MostWins,
	}
}

// Validate checks dimensions and enum values.
func (s Settings) Validate() error {
	if err := validateSize("rows", s.Rows); err != nil {
		return err
	}
	if err := validateSize("cols", s.Cols); err != nil {
		return err
	}
	if !s.FirstMover.IsPlayer() {
		return configErr("first_mover", s.FirstMover, "must be black or white")
	}
	if !s.TopLeft.IsPlayer() {
		return configErr("top_left", s.TopLeft, "must be black or white")
	}
	if s.WinMethod != MostWins && s.WinMethod != FewestWins {
		return configErr("win_method", s.WinMethod, "must be most or fewest")
	}

	return nil
}

func validateSize(field string, n int) error {
	if n < MinSize || n > MaxSize {
		return configErr(field, n, "must be between 4 and 16")
	}
	if n%2 != 0 {
		return configErr(field, n, "must be even")
	}

	return nil
}

// IsPlayer reports whether c is Black or White.
func (c Cell) IsPlayer() bool {
	return c == Black || c == White
}

// Opponent returns the opponent of the given player
func (c Cell) Opponent() Cell {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

func (c Cell) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return "Empty"
	}
}

// Symbol is the single-letter console form of a cell.
func (c Cell) Symbol() string {
	switch c {
	case Black:
		return "B"
	case White:
		return "W"
	default:
		return "."
	}
}

// ParseColor accepts "B"/"W" and the full color names, case-insensitively.
func ParseColor(s string) (Cell, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "b", "black":
		return Black, nil
	case "w", "white":
		return White, nil
	}

	return Empty, configErr("color", s, "must be black or white")
}

// ParseWinMethod accepts ">"/"<" and "most"/"fewest".
func ParseWinMethod(s string) (WinMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case ">", "most", "mostwins":
		return MostWins, nil
	case "<", "fewest", "fewestwins":
		return FewestWins, nil
	}

	return 0, configErr("win_method", s, "must be most or fewest")
}

func (w WinMethod) String() string {
	switch w {
	case MostWins:
		return "most"
	case FewestWins:
		return "fewest"
	default:
		return "unknown"
	}
}

func (w Winner) String() string {
	switch w {
	case WinnerBlack:
		return "Black"
	case WinnerWhite:
		return "White"
	case Draw:
		return "Draw"
	default:
		return "Undetermined"
	}
}

// Color returns the winning color, or Empty for a draw or an unfinished game.
func (w Winner) Color() Cell {
	switch w {
	case WinnerBlack:
		return Black
	case WinnerWhite:
		return White
	default:
		return Empty
	}
}
