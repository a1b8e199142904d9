// board.go
package othello

import "strings"

// Position is a 0-based board coordinate.
type Position struct {
	Row, Col int
}

// OneBased returns the coordinates accepted by Game.ApplyMove.
func (p Position) OneBased() (int, int) {
	return p.Row + 1, p.Col + 1
}

func (p Position) add(d Direction) Position {
	return Position{Row: p.Row + d.DRow, Col: p.Col + d.DCol}
}

// Board is a rows x cols grid stored row-major.
type Board struct {
	rows  int
	cols  int
	cells []Cell
}

// NewBoard initializes the board with starting positions: topLeft on the
// top-left and bottom-right of the center square, its opponent on the other
// diagonal.
func NewBoard(rows, cols int, topLeft Cell) Board {
	b := emptyBoard(rows, cols)
	midRow, midCol := rows/2, cols/2
	other := topLeft.Opponent()
	b.set(Position{midRow - 1, midCol - 1}, topLeft)
	b.set(Position{midRow - 1, midCol}, other)
	b.set(Position{midRow, midCol - 1}, other)
	b.set(Position{midRow, midCol}, topLeft)

	return b
}

// BoardFromGrid deep-copies a snapshot. Contents are taken verbatim.
func BoardFromGrid(grid [][]Cell) Board {
	rows := len(grid)
	cols := 0
	if rows > 0 {
		cols = len(grid[0])
	}
	b := emptyBoard(rows, cols)
	for r, line := range grid {
		copy(b.cells[r*cols:(r+1)*cols], line)
	}

	return b
}

func emptyBoard(rows, cols int) Board {
	return Board{rows: rows, cols: cols, cells: make([]Cell, rows*cols)}
}

// Clone creates a deep copy of the board (used in AI to simulate moves)
func (b Board) Clone() Board {
	clone := Board{rows: b.rows, cols: b.cols}
	clone.cells = make([]Cell, len(b.cells))
	copy(clone.cells, b.cells)

	return clone
}

func (b Board) Rows() int { return b.rows }
func (b Board) Cols() int { return b.cols }

// InBounds reports whether p lies on the board.
func (b Board) InBounds(p Position) bool {
	return p.Row >= 0 && p.Col >= 0 && p.Row < b.rows && p.Col < b.cols
}

// At returns the cell at p. p must be in bounds.
func (b Board) At(p Position) Cell {
	return b.cells[p.Row*b.cols+p.Col]
}

func (b *Board) set(p Position, c Cell) {
	b.cells[p.Row*b.cols+p.Col] = c
}

// Grid returns a deep copy of the cells as a 2D slice.
func (b Board) Grid() [][]Cell {
	grid := make([][]Cell, b.rows)
	for r := range grid {
		grid[r] = make([]Cell, b.cols)
		copy(grid[r], b.cells[r*b.cols:(r+1)*b.cols])
	}

	return grid
}

// Counts returns the number of black and white tiles.
func (b Board) Counts() (int, int) {
	blackCount, whiteCount := 0, 0

	for _, c := range b.cells {
		if c == Black {
			blackCount++
		} else if c == White {
			whiteCount++
		}
	}

	return blackCount, whiteCount
}

// Full reports whether no empty cell remains.
func (b Board) Full() bool {
	blackCount, whiteCount := b.Counts()

	return blackCount+whiteCount == len(b.cells)
}

// Classify returns the border class of p.
func (b Board) Classify(p Position) BorderClass {
	var class BorderClass
	if p.Row == 0 {
		class |= edgeTop
	}
	if p.Row == b.rows-1 {
		class |= edgeBottom
	}
	if p.Col == 0 {
		class |= edgeLeft
	}
	if p.Col == b.cols-1 {
		class |= edgeRight
	}

	return class
}

// Corners returns the four corner cells: top-left, top-right, bottom-left,
// bottom-right.
func (b Board) Corners() [4]Position {
	return [4]Position{
		{0, 0},
		{0, b.cols - 1},
		{b.rows - 1, 0},
		{b.rows - 1, b.cols - 1},
	}
}

func (b Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(b.At(Position{r, c}).Symbol())
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
