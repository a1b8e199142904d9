package othello

// Cell is the content of a single board square.
type Cell int8

const (
	Empty Cell = iota
	Black
	White
)

const (
	MinSize = 4
	MaxSize = 16
)

// Direction is a (row, col) step on the board.
type Direction struct {
	DRow, DCol int
}

// Directions for checking valid moves
var (
	North     = Direction{-1, 0}
	NorthEast = Direction{-1, 1}
	East      = Direction{0, 1}
	SouthEast = Direction{1, 1}
	South     = Direction{1, 0}
	SouthWest = Direction{1, -1}
	West      = Direction{0, -1}
	NorthWest = Direction{-1, -1}
)

var directions = [8]Direction{
	North, NorthEast, East, SouthEast,
	South, SouthWest, West, NorthWest,
}

// BorderClass records which board edges a cell touches.
type BorderClass uint8

const (
	edgeTop BorderClass = 1 << iota
	edgeBottom
	edgeLeft
	edgeRight
)

const (
	Interior    BorderClass = 0
	TopEdge                 = edgeTop
	BottomEdge              = edgeBottom
	LeftEdge                = edgeLeft
	RightEdge               = edgeRight
	TopLeft                 = edgeTop | edgeLeft
	TopRight                = edgeTop | edgeRight
	BottomLeft              = edgeBottom | edgeLeft
	BottomRight             = edgeBottom | edgeRight
)

// admissible holds, per border class, the directions that do not leave the
// board on the first step.
var admissible [16][]Direction

func init() {
	for class := range admissible {
		c := BorderClass(class)
		for _, d := range directions {
			if c&edgeTop != 0 && d.DRow < 0 ||
				c&edgeBottom != 0 && d.DRow > 0 ||
				c&edgeLeft != 0 && d.DCol < 0 ||
				c&edgeRight != 0 && d.DCol > 0 {
				continue
			}
			admissible[class] = append(admissible[class], d)
		}
	}
}

// Directions returns the capture directions scanned from a cell of the given
// class. The returned slice must not be modified.
func Directions(class BorderClass) []Direction {
	return admissible[class&0xf]
}

// IsCorner reports whether the class is one of the four corners.
func (c BorderClass) IsCorner() bool {
	return c == TopLeft || c == TopRight || c == BottomLeft || c == BottomRight
}

func (c BorderClass) String() string {
	switch c {
	case Interior:
		return "interior"
	case TopEdge:
		return "top"
	case BottomEdge:
		return "bottom"
	case LeftEdge:
		return "left"
	case RightEdge:
		return "right"
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	default:
		return "invalid"
	}
}
