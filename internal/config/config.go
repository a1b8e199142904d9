package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/WhosKhoaHoang/oth-gui-and-ai/internal/othello"
	"github.com/WhosKhoaHoang/oth-gui-and-ai/internal/search"
)

// Config holds everything the shell needs to set up a game. Colors and the
// win method are kept as strings so the file stays readable.
type Config struct {
	Rows       int    `json:"rows"`
	Cols       int    `json:"cols"`
	FirstMover string `json:"first_mover"`
	TopLeft    string `json:"top_left"`
	WinMethod  string `json:"win_method"`

	HumanColor string `json:"human_color"`
	Opponent   string `json:"opponent"`
	Depth      int    `json:"depth"`
	Workers    int    `json:"workers"`
	UseTable   bool   `json:"use_table"`
	// GreedyDelayMs is the pause before each greedy move.
	GreedyDelayMs int `json:"greedy_delay_ms"`

	ShowValidMoves bool   `json:"show_valid_moves"`
	LogLevel       string `json:"log_level"`
}

func Default() Config {
	return Config{
		Rows:       8,
		Cols:       8,
		FirstMover: "black",
		TopLeft:    "white",
		WinMethod:  "most",

		HumanColor:    "black",
		Opponent:      "minimax",
		Depth:         3,
		UseTable:      true,
		GreedyDelayMs: 500,

		ShowValidMoves: true,
		LogLevel:       "info",
	}
}

// Load reads a JSON file over the defaults. An empty path returns the
// defaults; fields missing from the file keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv overrides fields from OTHELLO_* environment variables.
func (c *Config) ApplyEnv() error {
	var err error
	if c.Rows, err = intEnv("OTHELLO_ROWS", c.Rows); err != nil {
		return err
	}
	if c.Cols, err = intEnv("OTHELLO_COLS", c.Cols); err != nil {
		return err
	}
	if c.Depth, err = intEnv("OTHELLO_DEPTH", c.Depth); err != nil {
		return err
	}
	if c.Workers, err = intEnv("OTHELLO_WORKERS", c.Workers); err != nil {
		return err
	}
	c.Opponent = getEnv("OTHELLO_OPPONENT", c.Opponent)
	c.WinMethod = getEnv("OTHELLO_WIN_METHOD", c.WinMethod)
	c.LogLevel = getEnv("OTHELLO_LOG_LEVEL", c.LogLevel)

	return nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error

	if _, err := c.GameSettings(); err != nil {
		errs = append(errs, err)
	}
	if _, err := othello.ParseColor(c.HumanColor); err != nil {
		errs = append(errs, fmt.Errorf("human_color: %w", err))
	}
	if _, err := search.NewOpponent(c.Opponent, c.Depth); err != nil {
		errs = append(errs, err)
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers %d: must not be negative", c.Workers))
	}
	if c.GreedyDelayMs < 0 {
		errs = append(errs, fmt.Errorf("greedy_delay_ms %d: must not be negative", c.GreedyDelayMs))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}

	return errors.Join(errs...)
}

// GameSettings converts the game fields into engine settings.
func (c Config) GameSettings() (othello.Settings, error) {
	first, err := othello.ParseColor(c.FirstMover)
	if err != nil {
		return othello.Settings{}, fmt.Errorf("first_mover: %w", err)
	}
	topLeft, err := othello.ParseColor(c.TopLeft)
	if err != nil {
		return othello.Settings{}, fmt.Errorf("top_left: %w", err)
	}
	method, err := othello.ParseWinMethod(c.WinMethod)
	if err != nil {
		return othello.Settings{}, err
	}

	s := othello.Settings{
		Rows:       c.Rows,
		Cols:       c.Cols,
		FirstMover: first,
		TopLeft:    topLeft,
		WinMethod:  method,
	}

	return s, s.Validate()
}

// NewOpponent builds the configured computer player.
func (c Config) NewOpponent() (search.Opponent, error) {
	opp, err := search.NewOpponent(c.Opponent, c.Depth)
	if err != nil {
		return nil, err
	}

	switch p := opp.(type) {
	case search.Greedy:
		p.Delay = time.Duration(c.GreedyDelayMs) * time.Millisecond
		return p, nil
	case search.MiniMax:
		p.Workers = c.Workers
		p.UseTable = c.UseTable
		return p, nil
	}

	return opp, nil
}

// Level returns the parsed log level, info when it does not parse.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}

	return lvl
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, fmt.Errorf("%s=%q: %w", key, v, err)
	}
	return n, nil
}
