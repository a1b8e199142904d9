package ui

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"github.com/WhosKhoaHoang/oth-gui-and-ai/internal/config"
	"github.com/WhosKhoaHoang/oth-gui-and-ai/internal/othello"
	"github.com/WhosKhoaHoang/oth-gui-and-ai/internal/search"
)

var (
	sizeOptions      = []string{"4", "6", "8", "10", "12", "14", "16"}
	colorOptions     = []string{"Black", "White"}
	winMethodOptions = []string{"Most tiles", "Fewest tiles"}
	spinners         = []string{"|", "/", "-", "\\"}
)

// UI is the terminal front end. It owns the tview application and the game
// being played; the computer opponent only ever sees clones.
type UI struct {
	app *tview.Application
	cfg config.Config

	game     *othello.Game
	human    othello.Cell
	opponent search.Opponent
	session  string

	thinking atomic.Bool
	cancel   context.CancelFunc
}

func New(cfg config.Config) *UI {
	return &UI{
		app: tview.NewApplication(),
		cfg: cfg,
	}
}

// Run blocks until the user quits.
func (u *UI) Run() error {
	u.showStartScreen()
	defer u.stopAI()

	return u.app.Run()
}

func (u *UI) showStartScreen() {
	u.stopAI()
	cfg := u.cfg

	form := tview.NewForm()
	form.
		AddDropDown("Rows", sizeOptions, indexOf(sizeOptions, strconv.Itoa(cfg.Rows)), func(option string, index int) {
			cfg.Rows, _ = strconv.Atoi(option)
		}).
		AddDropDown("Columns", sizeOptions, indexOf(sizeOptions, strconv.Itoa(cfg.Cols)), func(option string, index int) {
			cfg.Cols, _ = strconv.Atoi(option)
		}).
		AddDropDown("Choose your color", colorOptions, colorIndex(cfg.HumanColor), func(option string, index int) {
			cfg.HumanColor = option
		}).
		AddDropDown("Opponent", opponentLabels(), opponentIndex(cfg.Opponent), func(option string, index int) {
			cfg.Opponent = search.OpponentNames()[index]
		}).
		AddDropDown("Moves first", colorOptions, colorIndex(cfg.FirstMover), func(option string, index int) {
			cfg.FirstMover = option
		}).
		AddDropDown("Top-left center tile", colorOptions, colorIndex(cfg.TopLeft), func(option string, index int) {
			cfg.TopLeft = option
		}).
		AddDropDown("Winner has", winMethodOptions, winMethodIndex(cfg.WinMethod), func(option string, index int) {
			if index == 0 {
				cfg.WinMethod = "most"
			} else {
				cfg.WinMethod = "fewest"
			}
		}).
		AddInputField("Search depth", strconv.Itoa(cfg.Depth), 4, tview.InputFieldInteger, func(text string) {
			cfg.Depth, _ = strconv.Atoi(text)
		}).
		AddCheckbox("Show valid moves", cfg.ShowValidMoves, func(checked bool) {
			cfg.ShowValidMoves = checked
		})

	form.
		AddButton("Start Game", func() {
			if err := cfg.Validate(); err != nil {
				u.showError(err)
				return
			}
			u.cfg = cfg
			if err := u.startGame(); err != nil {
				u.showError(err)
			}
		}).
		AddButton("Quit", func() {
			u.app.Stop()
		})
	form.SetBorder(true).SetTitle(" Othello ").SetTitleAlign(tview.AlignCenter)

	u.app.SetRoot(form, true).SetFocus(form)
}

func (u *UI) showError(err error) {
	log.Warn().Err(err).Msg("invalid-settings")

	modal := tview.NewModal().
		SetText(err.Error()).
		AddButtons([]string{"Back"}).
		SetDoneFunc(func(int, string) {
			u.showStartScreen()
		})
	u.app.SetRoot(modal, false).SetFocus(modal)
}

func (u *UI) startGame() error {
	settings, err := u.cfg.GameSettings()
	if err != nil {
		return err
	}
	human, err := othello.ParseColor(u.cfg.HumanColor)
	if err != nil {
		return err
	}
	opponent, err := u.cfg.NewOpponent()
	if err != nil {
		return err
	}
	game, err := othello.New(settings)
	if err != nil {
		return err
	}

	u.game = game
	u.human = human
	u.opponent = opponent
	u.session = uuid.NewString()

	log.Info().
		Str("session", u.session).
		Int("rows", settings.Rows).
		Int("cols", settings.Cols).
		Str("human", human.String()).
		Str("opponent", opponent.Name()).
		Str("win-method", settings.WinMethod.String()).
		Msg("game-started")

	v := newBoardView(u)
	u.app.SetRoot(v.layout, true).SetFocus(v.table)
	v.processNextTurn()

	return nil
}

// stopAI cancels a running opponent search, if any.
func (u *UI) stopAI() {
	if u.cancel != nil {
		u.cancel()
		u.cancel = nil
	}
}

type boardView struct {
	u        *UI
	table    *tview.Table
	scoreBox *tview.TextView
	status   *tview.TextView
	layout   *tview.Flex
}

func newBoardView(u *UI) *boardView {
	v := &boardView{u: u}

	v.table = tview.NewTable()
	v.table.SetSelectable(true, true)
	v.table.SetBorder(true)
	v.table.SetTitleAlign(tview.AlignLeft)
	v.table.SetTitleColor(tcell.ColorGreen)
	v.table.SetBorderColor(tcell.ColorGreen)
	v.table.SetBorders(true)
	v.table.SetFixed(1, 1)
	v.table.SetSelectedFunc(v.onSelect)

	v.scoreBox = tview.NewTextView()
	v.scoreBox.SetBorder(true)
	v.scoreBox.SetTitle("Score")

	v.status = tview.NewTextView().SetDynamicColors(true)
	v.status.SetBorder(true)

	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(v.scoreBox, 0, 1, false).
		AddItem(v.status, 5, 0, false)

	v.layout = tview.NewFlex().
		AddItem(v.table, 0, 1, true).
		AddItem(right, 40, 1, false)

	v.table.Select(1, 1)
	v.updateBoard()

	return v
}

func (v *boardView) updateBoard() {
	g := v.u.game

	for c := 0; c < g.Cols(); c++ {
		v.table.SetCell(0, c+1, header(strconv.Itoa(c+1)))
	}
	for r := 0; r < g.Rows(); r++ {
		v.table.SetCell(r+1, 0, header(strconv.Itoa(r+1)))

		for c := 0; c < g.Cols(); c++ {
			p := othello.Position{Row: r, Col: c}
			cell := tview.NewTableCell(pieceSymbol(g.At(p)))
			cell.SetAlign(tview.AlignCenter)

			if g.At(p) == othello.Empty && v.u.cfg.ShowValidMoves && g.Turn() == v.u.human && !g.Over() {
				if flips := g.Flips(p, g.Turn()); len(flips) > 0 {
					cell.SetText(" · ")
					cell.SetTextColor(tcell.ColorGreen)
				}
			}
			v.table.SetCell(r+1, c+1, cell)
		}
	}

	v.setTitle("")

	blackCount, whiteCount := g.Counts()
	v.scoreBox.SetText(fmt.Sprintf(
		"Black: %d\nWhite: %d\n\nYou: %s\nOpponent: %s\nWinner has the %s tiles\n\nSession %s",
		blackCount, whiteCount,
		v.u.human, v.u.opponent.Name(),
		g.WinMethod(), v.u.session[:8],
	))
}

func (v *boardView) setTitle(spinner string) {
	v.table.SetTitle(fmt.Sprintf(" Othello - %s's turn %s", othello.PlayerName(v.u.game.Turn()), spinner))
}

func (v *boardView) setStatus(format string, args ...any) {
	v.status.SetText(fmt.Sprintf(format, args...))
}

func (v *boardView) onSelect(row, column int) {
	// Block input if AI is thinking
	if v.u.thinking.Load() {
		return
	}
	g := v.u.game
	if g.Over() || g.Turn() != v.u.human || row == 0 || column == 0 {
		return
	}

	res := g.ApplyMove(row, column)
	switch res.Status {
	case othello.RejectedInvalid:
		v.setStatus("[red]Invalid move[-] at (%d, %d)", row, column)
		return
	case othello.RejectedGameOver:
		return
	}

	v.setStatus("You played (%d, %d), %d flipped", row, column, len(res.Flipped))
	if res.Ok() && res.Skipped {
		v.setStatus("%s has no move, your turn again", v.u.opponent.Name())
	}
	v.updateBoard()
	v.processNextTurn()
}

func (v *boardView) processNextTurn() {
	u := v.u
	g := u.game

	if g.Over() {
		v.showGameOver()
		return
	}
	if g.Turn() == u.human {
		v.updateBoard()
		return
	}

	ai := g.Turn()
	ctx, cancel := context.WithCancel(context.Background())
	u.cancel = cancel
	u.thinking.Store(true)

	// Start the spinner goroutine
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				spinner := spinners[i%len(spinners)]
				u.app.QueueUpdateDraw(func() {
					v.setTitle(spinner)
				})
			}
		}
	}()

	sim := g.Clone()
	go func() {
		played, err := u.opponent.Play(ctx, sim, ai)
		cancel()

		u.app.QueueUpdateDraw(func() {
			u.thinking.Store(false)
			if err != nil {
				log.Debug().Err(err).Str("session", u.session).Msg("opponent-stopped")
				return
			}
			if u.game != g {
				return
			}

			for _, mv := range played {
				res := g.Play(mv)
				row, col := mv.OneBased()
				v.setStatus("%s played (%d, %d), %d flipped", u.opponent.Name(), row, col, len(res.Flipped))
				if res.Skipped && !g.Over() && g.Turn() == ai {
					v.setStatus("You have no move, %s plays again", u.opponent.Name())
				}
			}
			v.updateBoard()
			v.processNextTurn()
		})
	}()
}

func (v *boardView) showGameOver() {
	u := v.u
	g := u.game
	blackCount, whiteCount := g.Counts()

	log.Info().
		Str("session", u.session).
		Int("black", blackCount).
		Int("white", whiteCount).
		Str("winner", g.Winner().String()).
		Msg("game-finished")

	headline := "It's a draw!"
	if c := g.Winner().Color(); c.IsPlayer() {
		headline = fmt.Sprintf("%s wins!", othello.PlayerName(c))
		if c == u.human {
			headline += " Well played."
		}
	}

	modal := tview.NewModal().
		SetText(fmt.Sprintf("Game Over!\n%s\nBlack score: %d\nWhite score: %d", headline, blackCount, whiteCount)).
		AddButtons([]string{"Play Again", "Quit"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			if buttonLabel == "Play Again" {
				u.showStartScreen()
			} else {
				u.app.Stop()
			}
		})

	u.app.SetRoot(modal, false).SetFocus(modal)
}

func header(text string) *tview.TableCell {
	return tview.NewTableCell(text).
		SetAlign(tview.AlignCenter).
		SetTextColor(tcell.ColorYellow).
		SetSelectable(false)
}

func pieceSymbol(piece othello.Cell) string {
	switch piece {
	case othello.Black:
		return " ⚫ "
	case othello.White:
		return " ⚪ "
	default:
		return "    "
	}
}

func indexOf(options []string, value string) int {
	for i, o := range options {
		if o == value {
			return i
		}
	}
	return 0
}

func colorIndex(value string) int {
	if c, err := othello.ParseColor(value); err == nil && c == othello.White {
		return 1
	}
	return 0
}

func winMethodIndex(value string) int {
	if m, err := othello.ParseWinMethod(value); err == nil && m == othello.FewestWins {
		return 1
	}
	return 0
}

func opponentLabels() []string {
	names := search.OpponentNames()
	labels := make([]string, len(names))
	for i, name := range names {
		opp, err := search.NewOpponent(name, 1)
		if err != nil {
			labels[i] = name
			continue
		}
		labels[i] = opp.Name()
	}
	return labels
}

func opponentIndex(value string) int {
	want, err := search.NewOpponent(value, 1)
	if err != nil {
		return 0
	}
	for i, name := range search.OpponentNames() {
		if opp, err := search.NewOpponent(name, 1); err == nil && opp.Name() == want.Name() {
			return i
		}
	}
	return 0
}
