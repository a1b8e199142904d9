package othello

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

const (
	E = Empty
	B = Black
	W = White
)

func smallSettings() Settings {
	return Settings{
		Rows:       4,
		Cols:       4,
		FirstMover: White,
		TopLeft:    Black,
		WinMethod:  MostWins,
	}
}

func mustNew(t *testing.T, s Settings) *Game {
	t.Helper()
	g, err := New(s)
	if err != nil {
		t.Fatalf("New(%+v): %v", s, err)
	}
	return g
}

func mustSnapshot(t *testing.T, s Settings, grid [][]Cell) *Game {
	t.Helper()
	g, err := NewFromSnapshot(s, grid)
	if err != nil {
		t.Fatalf("NewFromSnapshot: %v", err)
	}
	return g
}

func TestNewRejectsBadDimensions(t *testing.T) {
	cases := []struct{ rows, cols int }{
		{2, 8}, {3, 8}, {5, 8}, {18, 8}, {8, 7}, {8, 0}, {8, 17}, {8, 18},
	}
	for _, tc := range cases {
		s := DefaultSettings()
		s.Rows, s.Cols = tc.rows, tc.cols
		_, err := New(s)
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("rows=%d cols=%d: expected ConfigError, got %v", tc.rows, tc.cols, err)
		}
		if !errors.Is(err, ErrConfig) {
			t.Fatalf("rows=%d cols=%d: expected error to wrap ErrConfig", tc.rows, tc.cols)
		}
	}
}

func TestNewRejectsUnknownEnums(t *testing.T) {
	base := DefaultSettings()

	s := base
	s.FirstMover = Empty
	if _, err := New(s); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected first mover Empty to be rejected, got %v", err)
	}

	s = base
	s.TopLeft = Cell(7)
	if _, err := New(s); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected unknown top-left color to be rejected, got %v", err)
	}

	s = base
	s.WinMethod = 0
	if _, err := New(s); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected zero win method to be rejected, got %v", err)
	}
}

func TestInitialLayoutAllSizes(t *testing.T) {
	for rows := MinSize; rows <= MaxSize; rows += 2 {
		for cols := MinSize; cols <= MaxSize; cols += 2 {
			for _, topLeft := range []Cell{Black, White} {
				s := Settings{Rows: rows, Cols: cols, FirstMover: Black, TopLeft: topLeft, WinMethod: MostWins}
				g := mustNew(t, s)

				blackCount, whiteCount := g.Counts()
				if blackCount != 2 || whiteCount != 2 {
					t.Fatalf("%dx%d: expected 2/2 tiles, got %d/%d", rows, cols, blackCount, whiteCount)
				}
				mr, mc := rows/2, cols/2
				other := topLeft.Opponent()
				want := map[Position]Cell{
					{mr - 1, mc - 1}: topLeft,
					{mr - 1, mc}:     other,
					{mr, mc - 1}:     other,
					{mr, mc}:         topLeft,
				}
				for p, c := range want {
					if got := g.At(p); got != c {
						t.Fatalf("%dx%d top-left=%s: cell %v = %s, want %s", rows, cols, topLeft, p, got, c)
					}
				}
				if g.Count(Empty) != rows*cols-4 {
					t.Fatalf("%dx%d: expected %d empty cells", rows, cols, rows*cols-4)
				}
			}
		}
	}
}

func TestSmallBoardScenario(t *testing.T) {
	g := mustNew(t, smallSettings())

	want := [][]Cell{
		{E, E, E, E},
		{E, B, W, E},
		{E, W, B, E},
		{E, E, E, E},
	}
	if !reflect.DeepEqual(g.Board(), want) {
		t.Fatalf("unexpected initial board:\n%s", g)
	}

	legal := g.LegalMoves(White)
	wantLegal := []Position{{0, 1}, {1, 0}, {2, 3}, {3, 2}}
	if !reflect.DeepEqual(legal, wantLegal) {
		t.Fatalf("white legal moves = %v, want %v", legal, wantLegal)
	}

	for _, mv := range [][2]int{{2, 4}, {3, 1}, {1, 1}, {4, 4}} {
		res := g.ApplyMove(mv[0], mv[1])
		if res.Status != RejectedInvalid {
			t.Fatalf("move %v: expected rejection, got %s", mv, res.Status)
		}
		if !errors.Is(res.Err(), ErrInvalidMove) {
			t.Fatalf("move %v: expected ErrInvalidMove", mv)
		}
		if !reflect.DeepEqual(g.Board(), want) || g.Turn() != White {
			t.Fatalf("move %v: rejected move changed the game", mv)
		}
	}

	res := g.ApplyMove(1, 2)
	if res.Status != Accepted || res.Skipped {
		t.Fatalf("expected (1,2) to be accepted without skip, got %+v", res)
	}
	if !reflect.DeepEqual(res.Flipped, []Position{{1, 1}}) {
		t.Fatalf("expected exactly (1,1) flipped, got %v", res.Flipped)
	}
	after := [][]Cell{
		{E, W, E, E},
		{E, W, W, E},
		{E, W, B, E},
		{E, E, E, E},
	}
	if !reflect.DeepEqual(g.Board(), after) {
		t.Fatalf("unexpected board after move:\n%s", g)
	}
	if g.Turn() != Black {
		t.Fatalf("expected black to move, got %s", g.Turn())
	}
}

func TestOutOfRangeMoveRejected(t *testing.T) {
	g := mustNew(t, smallSettings())
	for _, mv := range [][2]int{{0, 1}, {1, 0}, {5, 1}, {1, 5}, {-3, 2}} {
		if res := g.ApplyMove(mv[0], mv[1]); res.Status != RejectedInvalid {
			t.Fatalf("move %v: expected rejection, got %s", mv, res.Status)
		}
	}
}

func TestRejectedMovesAreNoOps(t *testing.T) {
	g := mustNew(t, DefaultSettings())
	before := g.Board()
	turn := g.Turn()
	legal := map[Position]bool{}
	for _, p := range g.LegalMoves(turn) {
		legal[p] = true
	}

	for r := 1; r <= g.Rows(); r++ {
		for c := 1; c <= g.Cols(); c++ {
			if legal[Position{r - 1, c - 1}] {
				continue
			}
			if res := g.ApplyMove(r, c); res.Status != RejectedInvalid {
				t.Fatalf("(%d,%d): expected rejection, got %s", r, c, res.Status)
			}
			if !reflect.DeepEqual(g.Board(), before) || g.Turn() != turn {
				t.Fatalf("(%d,%d): rejected move mutated the game", r, c)
			}
		}
	}
}

func TestLegalMoveEnumerationIsIdempotent(t *testing.T) {
	g := mustNew(t, Settings{Rows: 6, Cols: 10, FirstMover: Black, TopLeft: White, WinMethod: MostWins})
	g.ApplyMove(g.LegalMoves(Black)[0].OneBased())

	first := g.LegalMoves(g.Turn())
	second := g.LegalMoves(g.Turn())
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("enumeration changed between calls: %v vs %v", first, second)
	}
	if len(first) == 0 {
		t.Fatalf("expected legal moves after the opening move")
	}
}

func TestCornerDirectionsNeverLeaveBoard(t *testing.T) {
	cases := []struct {
		class     BorderClass
		forbidden []Direction
		count     int
	}{
		{TopLeft, []Direction{North, NorthWest, West, NorthEast, SouthWest}, 3},
		{TopRight, []Direction{North, NorthEast, East, NorthWest, SouthEast}, 3},
		{BottomLeft, []Direction{South, SouthWest, West, SouthEast, NorthWest}, 3},
		{BottomRight, []Direction{South, SouthEast, East, SouthWest, NorthEast}, 3},
		{TopEdge, []Direction{North, NorthEast, NorthWest}, 5},
		{BottomEdge, []Direction{South, SouthEast, SouthWest}, 5},
		{LeftEdge, []Direction{West, NorthWest, SouthWest}, 5},
		{RightEdge, []Direction{East, NorthEast, SouthEast}, 5},
		{Interior, nil, 8},
	}
	for _, tc := range cases {
		dirs := Directions(tc.class)
		if len(dirs) != tc.count {
			t.Fatalf("%s: expected %d directions, got %d", tc.class, tc.count, len(dirs))
		}
		for _, d := range dirs {
			for _, f := range tc.forbidden {
				if d == f {
					t.Fatalf("%s: direction %+v points off the board", tc.class, d)
				}
			}
		}
	}

	g := mustNew(t, smallSettings())
	corners := g.Corners()
	wantClasses := [4]BorderClass{TopLeft, TopRight, BottomLeft, BottomRight}
	for i, p := range corners {
		if got := g.Classify(p); got != wantClasses[i] || !got.IsCorner() {
			t.Fatalf("corner %v classified as %s", p, got)
		}
	}
	if got := g.Classify(Position{0, 2}); got != TopEdge {
		t.Fatalf("(0,2) classified as %s", got)
	}
	if got := g.Classify(Position{2, 2}); got != Interior {
		t.Fatalf("(2,2) classified as %s", got)
	}
}

func TestCornerCapture(t *testing.T) {
	s := smallSettings()
	s.FirstMover = Black
	g := mustSnapshot(t, s, [][]Cell{
		{E, W, B, E},
		{W, W, E, E},
		{B, E, B, E},
		{E, E, B, W},
	})

	res := g.ApplyMove(1, 1)
	if !res.Ok() {
		t.Fatalf("expected corner move to be accepted, got %s", res.Status)
	}
	if g.Turn() != White {
		t.Fatalf("expected white to move after the capture, got %s", g.Turn())
	}
	want := map[Position]bool{{0, 1}: true, {1, 0}: true, {1, 1}: true}
	if len(res.Flipped) != len(want) {
		t.Fatalf("expected %d flips, got %v", len(want), res.Flipped)
	}
	for _, p := range res.Flipped {
		if !want[p] {
			t.Fatalf("unexpected flip %v", p)
		}
	}
}

func TestRunEndingAtEdgeCapturesNothing(t *testing.T) {
	s := smallSettings()
	s.FirstMover = Black
	g := mustSnapshot(t, s, [][]Cell{
		{E, W, W, W},
		{E, E, E, E},
		{E, E, E, E},
		{E, E, E, B},
	})
	if flips := g.Flips(Position{0, 0}, Black); len(flips) != 0 {
		t.Fatalf("run to the edge must not capture, got %v", flips)
	}
	if res := g.ApplyMove(1, 1); res.Status != RejectedInvalid {
		t.Fatalf("expected rejection, got %s", res.Status)
	}
}

func TestAcceptedMoveTileAccounting(t *testing.T) {
	g := mustNew(t, Settings{Rows: 6, Cols: 8, FirstMover: Black, TopLeft: White, WinMethod: MostWins})
	rng := rand.New(rand.NewSource(7))
	total := g.Rows() * g.Cols()

	for !g.Over() {
		mover := g.Turn()
		moves := g.LegalMoves(mover)
		if len(moves) == 0 {
			t.Fatalf("player %s to move without legal moves while game is running", mover)
		}
		blackBefore, whiteBefore := g.Counts()
		moverBefore := g.Count(mover)

		res := g.Play(moves[rng.Intn(len(moves))])
		if res.Status != Accepted && res.Status != TerminalNoMovesLeft {
			t.Fatalf("legal move rejected: %s", res.Status)
		}
		blackAfter, whiteAfter := g.Counts()
		if blackAfter+whiteAfter != blackBefore+whiteBefore+1 {
			t.Fatalf("expected exactly one new tile")
		}
		if g.Count(mover) != moverBefore+1+len(res.Flipped) {
			t.Fatalf("mover gained %d tiles, want %d", g.Count(mover)-moverBefore, 1+len(res.Flipped))
		}
		if blackAfter+whiteAfter+g.Count(Empty) != total {
			t.Fatalf("cell count drifted")
		}
		if (g.Winner() != Undetermined) != g.Over() {
			t.Fatalf("winner must be set iff the game is over")
		}
		if !g.Over() && !g.Turn().IsPlayer() {
			t.Fatalf("turn must be a color while the game runs")
		}
	}
}

func TestBoardFullEndsGame(t *testing.T) {
	grid := [][]Cell{
		{E, B, W, W},
		{B, B, B, B},
		{B, B, B, B},
		{B, B, B, B},
	}
	for _, tc := range []struct {
		method WinMethod
		want   Winner
	}{
		{MostWins, WinnerBlack},
		{FewestWins, WinnerWhite},
	} {
		s := smallSettings()
		s.WinMethod = tc.method
		g := mustSnapshot(t, s, grid)

		res := g.ApplyMove(1, 1)
		if res.Status != Accepted {
			t.Fatalf("%s: expected accepted, got %s", tc.method, res.Status)
		}
		if !g.Over() {
			t.Fatalf("%s: expected game over on a full board", tc.method)
		}
		if g.Winner() != tc.want {
			t.Fatalf("%s: winner = %s, want %s", tc.method, g.Winner(), tc.want)
		}
		if res := g.ApplyMove(1, 1); res.Status != RejectedGameOver || !errors.Is(res.Err(), ErrGameOver) {
			t.Fatalf("%s: expected moves after game over to be rejected", tc.method)
		}
	}
}

func TestMutualStalemateEndsGame(t *testing.T) {
	s := smallSettings()
	s.FirstMover = Black
	g := mustSnapshot(t, s, [][]Cell{
		{E, W, B, E},
		{E, E, E, E},
		{E, E, E, E},
		{E, E, E, E},
	})

	res := g.ApplyMove(1, 1)
	if res.Status != TerminalNoMovesLeft {
		t.Fatalf("expected terminal status, got %s", res.Status)
	}
	if !errors.Is(res.Err(), ErrNoMovesLeft) {
		t.Fatalf("expected ErrNoMovesLeft")
	}
	if !res.Skipped {
		t.Fatalf("expected the opponent's turn to be reported as skipped")
	}
	if !g.Over() || g.Winner() != WinnerBlack {
		t.Fatalf("expected black win, got over=%v winner=%s", g.Over(), g.Winner())
	}
	if g.Count(Empty) == 0 {
		t.Fatalf("board should not be full in this scenario")
	}
	if got := g.Board()[0]; !reflect.DeepEqual(got, []Cell{B, B, B, E}) {
		t.Fatalf("placement should still be applied, got %v", got)
	}
}

func TestSkipReturnsTurnToMover(t *testing.T) {
	s := smallSettings()
	s.FirstMover = Black
	g := mustSnapshot(t, s, [][]Cell{
		{E, W, B, E},
		{E, E, E, E},
		{E, E, E, E},
		{B, W, E, E},
	})

	res := g.ApplyMove(1, 1)
	if res.Status != Accepted || !res.Skipped {
		t.Fatalf("expected accepted move with skip, got %+v", res)
	}
	if g.Turn() != Black {
		t.Fatalf("expected turn to return to black, got %s", g.Turn())
	}
	if g.Over() {
		t.Fatalf("game should continue")
	}
	if res := g.ApplyMove(4, 3); res.Status != TerminalNoMovesLeft {
		t.Fatalf("expected black's last capture to end the game, got %s", res.Status)
	}
}

func TestComputeWinner(t *testing.T) {
	cases := []struct {
		name   string
		method WinMethod
		grid   [][]Cell
		want   Winner
	}{
		{"draw", MostWins, [][]Cell{{B, B, W, W}, {E, E, E, E}, {E, E, E, E}, {E, E, E, E}}, Draw},
		{"draw fewest", FewestWins, [][]Cell{{B, W, E, E}, {E, E, E, E}, {E, E, E, E}, {E, E, E, E}}, Draw},
		{"most black", MostWins, [][]Cell{{B, B, W, E}, {E, E, E, E}, {E, E, E, E}, {E, E, E, E}}, WinnerBlack},
		{"most white", MostWins, [][]Cell{{B, W, W, E}, {E, E, E, E}, {E, E, E, E}, {E, E, E, E}}, WinnerWhite},
		{"fewest black", FewestWins, [][]Cell{{B, W, W, E}, {E, E, E, E}, {E, E, E, E}, {E, E, E, E}}, WinnerBlack},
		{"fewest white", FewestWins, [][]Cell{{B, B, W, E}, {E, E, E, E}, {E, E, E, E}, {E, E, E, E}}, WinnerWhite},
	}
	for _, tc := range cases {
		s := smallSettings()
		s.WinMethod = tc.method
		g := mustSnapshot(t, s, tc.grid)
		if got := g.computeWinner(); got != tc.want {
			t.Fatalf("%s: winner = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestSnapshotIsDeepCopied(t *testing.T) {
	grid := NewBoard(4, 4, Black).Grid()
	g := mustSnapshot(t, smallSettings(), grid)

	grid[0][0] = White
	if g.At(Position{0, 0}) != Empty {
		t.Fatalf("mutating the source grid changed the game")
	}

	view := g.Board()
	view[1][1] = White
	if g.At(Position{1, 1}) != Black {
		t.Fatalf("mutating Board() output changed the game")
	}

	if _, err := NewFromSnapshot(smallSettings(), grid[:3]); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected row mismatch to be rejected, got %v", err)
	}
	bad := NewBoard(4, 4, Black).Grid()
	bad[2] = bad[2][:3]
	if _, err := NewFromSnapshot(smallSettings(), bad); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected column mismatch to be rejected, got %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := mustNew(t, smallSettings())
	clone := g.Clone()

	if res := clone.ApplyMove(1, 2); res.Status != Accepted {
		t.Fatalf("expected clone move to be accepted, got %s", res.Status)
	}
	if g.At(Position{0, 1}) != Empty || g.Turn() != White {
		t.Fatalf("move on clone leaked into original")
	}
	if clone.Turn() != Black {
		t.Fatalf("clone turn should have advanced")
	}
}

func TestParseHelpers(t *testing.T) {
	for in, want := range map[string]Cell{"B": Black, "w": White, " black ": Black, "WHITE": White} {
		got, err := ParseColor(in)
		if err != nil || got != want {
			t.Fatalf("ParseColor(%q) = %s, %v", in, got, err)
		}
	}
	if _, err := ParseColor("red"); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ParseColor to reject red")
	}
	for in, want := range map[string]WinMethod{">": MostWins, "<": FewestWins, "most": MostWins, "Fewest": FewestWins} {
		got, err := ParseWinMethod(in)
		if err != nil || got != want {
			t.Fatalf("ParseWinMethod(%q) = %s, %v", in, got, err)
		}
	}
	if _, err := ParseWinMethod("="); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ParseWinMethod to reject =")
	}
}

func TestStringRendering(t *testing.T) {
	g := mustNew(t, smallSettings())
	want := ". . . .\n. B W .\n. W B .\n. . . .\n"
	if got := g.String(); got != want {
		t.Fatalf("String() =\n%s\nwant\n%s", got, want)
	}
}
