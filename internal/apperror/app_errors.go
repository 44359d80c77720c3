package apperror

import "errors"

var (
	ErrColumnFull    = errors.New("column is full")
	ErrGameOver      = errors.New("game is already over")
	ErrInvalidTeam   = errors.New("invalid team")
	ErrInvalidColumn = errors.New("invalid column")
)

// IsRejectedMove - reports whether err is a domain error that still carries a board for rendering.
func IsRejectedMove(err error) bool {
	return errors.Is(err, ErrColumnFull) || errors.Is(err, ErrGameOver)
}
