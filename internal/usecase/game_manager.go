package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/cookiemilk-backend/internal/apperror"
	"github.com/rocketscienceinc/cookiemilk-backend/internal/entity"
)

const publishTimeout = 2 * time.Second

// BoardMirror receives every board produced by a state-changing command, tagged with the
// session revision. Boards may arrive out of order; a mirror must drop any revision older
// than the one it already holds.
type BoardMirror interface {
	Publish(ctx context.Context, board entity.Board, revision uint64) error
}

type gameSession interface {
	Snapshot() entity.Board
	Reset() (entity.Board, uint64)
	Place(team entity.Tile, column int) (entity.Board, uint64, error)
	RandomBoard() (entity.Board, uint64)
}

type GameManager struct {
	logger  *slog.Logger
	session gameSession

	// mirror is optional
	mirror BoardMirror
}

func NewGameManager(logger *slog.Logger, session gameSession, mirror BoardMirror) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		session: session,
		mirror:  mirror,
	}
}

// GetBoard - returns the current board.
func (that *GameManager) GetBoard(_ context.Context) entity.Board {
	return that.session.Snapshot()
}

// Reset - starts over with an empty board and a rewound random stream.
func (that *GameManager) Reset(ctx context.Context) entity.Board {
	board, revision := that.session.Reset()
	that.logger.Info("board reset", "revision", revision)

	that.publish(ctx, board, revision)

	return board
}

// Place - drops a token for team ("cookie" or "milk") into column 1..4.
// Invalid input returns an empty board and a validation error without touching the session.
// A rejected move returns the current board together with ErrColumnFull or ErrGameOver.
func (that *GameManager) Place(ctx context.Context, team string, column int) (entity.Board, error) {
	log := that.logger.With("method", "Place", "team", team, "column", column)

	tile, err := entity.ParseTeam(team)
	if err != nil {
		return entity.Board{}, err
	}

	if column < 1 || column > entity.Columns {
		return entity.Board{}, fmt.Errorf("%w: %d", apperror.ErrInvalidColumn, column)
	}

	board, revision, err := that.session.Place(tile, column-1)
	if err != nil {
		if apperror.IsRejectedMove(err) {
			log.Info("move rejected", "reason", err)
		}
		return board, err
	}

	if winner, over := board.Winner(); over {
		if winner.IsTeam() {
			log.Info("game over", "winner", winner.String())
		} else {
			log.Info("game over", "winner", "draw")
		}
	}

	that.publish(ctx, board, revision)

	return board, nil
}

// RandomBoard - replaces the board with a randomly dealt, finished one.
func (that *GameManager) RandomBoard(ctx context.Context) entity.Board {
	board, revision := that.session.RandomBoard()

	that.publish(ctx, board, revision)

	return board
}

// publish - runs after the session lock is released and outlives the caller's request.
func (that *GameManager) publish(ctx context.Context, board entity.Board, revision uint64) {
	if that.mirror == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := that.mirror.Publish(ctx, board, revision); err != nil {
		that.logger.Error("failed to publish board", "revision", revision, "error", err)
	}
}
