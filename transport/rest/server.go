package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

type Server struct {
	logger *slog.Logger
	srv    *http.Server
}

// NewRouter - registers the board commands and the liveness check.
func NewRouter(logger *slog.Logger, games gameManager) *mux.Router {
	boards := NewBoardHandler(logger, games)

	router := mux.NewRouter()
	router.Use(requestIDMiddleware(logger))

	router.HandleFunc("/ping", pingHandler).Methods(http.MethodGet)

	router.HandleFunc("/12/board", boards.GetBoard).Methods(http.MethodGet)
	router.HandleFunc("/12/reset", boards.Reset).Methods(http.MethodPost)
	router.HandleFunc("/12/place/{team}/{column}", boards.Place).Methods(http.MethodPost)
	router.HandleFunc("/12/random-board", boards.RandomBoard).Methods(http.MethodGet)

	return router
}

func New(logger *slog.Logger, port string, games gameManager) *Server {
	return &Server{
		logger: logger.With("component", "http"),
		srv: &http.Server{
			Addr:         ":" + port,
			Handler:      NewRouter(logger, games),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  30 * time.Second,
		},
	}
}

// Start - serves until Shutdown is called.
func (that *Server) Start() error {
	if err := that.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) Shutdown(ctx context.Context) error {
	if err := that.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

func pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
