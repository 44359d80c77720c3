package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/cookiemilk-backend/internal/apperror"
	"github.com/rocketscienceinc/cookiemilk-backend/internal/entity"
)

type gameManager interface {
	GetBoard(ctx context.Context) entity.Board
	Reset(ctx context.Context) entity.Board
	Place(ctx context.Context, team string, column int) (entity.Board, error)
	RandomBoard(ctx context.Context) entity.Board
}

type BoardHandler struct {
	logger *slog.Logger
	games  gameManager
}

func NewBoardHandler(logger *slog.Logger, games gameManager) *BoardHandler {
	return &BoardHandler{
		logger: logger.With("component", "board_handler"),
		games:  games,
	}
}

func (that *BoardHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	that.writeBoard(w, r, http.StatusOK, that.games.GetBoard(r.Context()))
}

func (that *BoardHandler) Reset(w http.ResponseWriter, r *http.Request) {
	that.writeBoard(w, r, http.StatusOK, that.games.Reset(r.Context()))
}

func (that *BoardHandler) RandomBoard(w http.ResponseWriter, r *http.Request) {
	that.writeBoard(w, r, http.StatusOK, that.games.RandomBoard(r.Context()))
}

// Place - POST /12/place/{team}/{column}, column is 1-indexed.
func (that *BoardHandler) Place(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	column, err := strconv.Atoi(vars["column"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	board, err := that.games.Place(r.Context(), vars["team"], column)
	switch {
	case err == nil:
		that.writeBoard(w, r, http.StatusOK, board)
	case apperror.IsRejectedMove(err):
		that.writeBoard(w, r, http.StatusServiceUnavailable, board)
	case errors.Is(err, apperror.ErrInvalidTeam), errors.Is(err, apperror.ErrInvalidColumn):
		w.WriteHeader(http.StatusBadRequest)
	default:
		that.logger.Error("failed to place", "request_id", requestIDFrom(r.Context()), "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (that *BoardHandler) writeBoard(w http.ResponseWriter, r *http.Request, status int, board entity.Board) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)

	if _, err := w.Write([]byte(board.String())); err != nil {
		that.logger.Error("failed to write board", "request_id", requestIDFrom(r.Context()), "error", err)
	}
}
