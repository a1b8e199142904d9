package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/WhosKhoaHoang/oth-gui-and-ai/internal/config"
	"github.com/WhosKhoaHoang/oth-gui-and-ai/internal/othello"
	"github.com/WhosKhoaHoang/oth-gui-and-ai/internal/search"
	"github.com/WhosKhoaHoang/oth-gui-and-ai/internal/ui"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a JSON config file")
		depth      = flag.Int("depth", 0, "search depth for the minimax opponent (overrides config)")
		opponent   = flag.String("opponent", "", "computer opponent: greedy or minimax (overrides config)")
		versus     = flag.String("versus", "greedy", "headless only: player taking the human's color")
		headless   = flag.Bool("headless", false, "play computer against computer without the terminal UI")
		logPath    = flag.String("log", "", "write logs to this file")
		logLevel   = flag.String("log-level", "", "log level (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		fatal(err)
	}
	if *depth > 0 {
		cfg.Depth = *depth
	}
	if *opponent != "" {
		cfg.Opponent = *opponent
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}

	closeLog, err := setupLogging(cfg, *logPath, *headless)
	if err != nil {
		fatal(err)
	}
	defer closeLog()

	if *headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := selfPlay(ctx, cfg, *versus); err != nil {
			log.Error().Err(err).Msg("self-play-failed")
			closeLog()
			os.Exit(1)
		}
		return
	}

	if err := runUI(cfg); err != nil {
		log.Error().Err(err).Msg("ui-failed")
		closeLog()
		os.Exit(1)
	}
}

// setupLogging points the global logger at a file, or at stderr in headless
// mode. The terminal UI owns stdout and stderr, so without a file it logs
// nothing.
func setupLogging(cfg config.Config, path string, headless bool) (func(), error) {
	zerolog.SetGlobalLevel(cfg.Level())
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var out io.Writer = io.Discard
	closer := func() {}

	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return closer, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closer = func() { _ = f.Close() }
	case headless:
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()

	return closer, nil
}

func selfPlay(ctx context.Context, cfg config.Config, versus string) error {
	cfg.GreedyDelayMs = 0

	settings, err := cfg.GameSettings()
	if err != nil {
		return err
	}
	human, err := othello.ParseColor(cfg.HumanColor)
	if err != nil {
		return err
	}

	computer, err := cfg.NewOpponent()
	if err != nil {
		return err
	}
	stand, err := search.NewOpponent(versus, cfg.Depth)
	if err != nil {
		return err
	}
	players := map[othello.Cell]search.Opponent{
		human:            stand,
		human.Opponent(): computer,
	}

	g, err := othello.New(settings)
	if err != nil {
		return err
	}

	session := uuid.NewString()
	log.Info().
		Str("session", session).
		Str("black", players[othello.Black].Name()).
		Str("white", players[othello.White].Name()).
		Int("rows", settings.Rows).
		Int("cols", settings.Cols).
		Str("win-method", settings.WinMethod.String()).
		Msg("game-started")

	start := time.Now()
	for !g.Over() {
		mover := g.Turn()
		played, err := players[mover].Play(ctx, g, mover)
		if err != nil {
			return err
		}
		if len(played) == 0 {
			return fmt.Errorf("%s passed on a running game", players[mover].Name())
		}
		for _, mv := range played {
			row, col := mv.OneBased()
			log.Debug().Str("session", session).Str("player", mover.String()).Int("row", row).Int("col", col).Msg("move")
		}
	}

	blackCount, whiteCount := g.Counts()
	log.Info().
		Str("session", session).
		Int("black", blackCount).
		Int("white", whiteCount).
		Str("winner", g.Winner().String()).
		Dur("elapsed", time.Since(start)).
		Msg("game-finished")

	fmt.Print(g)

	return nil
}

func runUI(cfg config.Config) error {
	return ui.New(cfg).Run()
}

// fatal is used before logging is configured, so it goes through the default
// stderr logger.
func fatal(err error) {
	log.Fatal().Err(err).Msg("startup-failed")
}
