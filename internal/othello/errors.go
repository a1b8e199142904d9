package othello

import (
	"errors"
	"fmt"
)

var (
	ErrConfig      = errors.New("invalid game configuration")
	ErrInvalidMove = errors.New("invalid move")
	ErrGameOver    = errors.New("game already finished")
	ErrNoMovesLeft = errors.New("no moves left for either player")
)

// ConfigError reports a construction parameter that was rejected.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s=%v: %s", ErrConfig, e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfig
}

func configErr(field string, value any, reason string) error {
	return &ConfigError{Field: field, Value: value, Reason: reason}
}
