package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/cookiemilk-backend/internal/config"
	"github.com/rocketscienceinc/cookiemilk-backend/internal/repository"
	"github.com/rocketscienceinc/cookiemilk-backend/internal/repository/storage"
	"github.com/rocketscienceinc/cookiemilk-backend/internal/session"
	"github.com/rocketscienceinc/cookiemilk-backend/internal/usecase"
	"github.com/rocketscienceinc/cookiemilk-backend/transport/rest"
)

const shutdownTimeout = 5 * time.Second

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var mirror usecase.BoardMirror
	if conf.Redis.Enabled {
		redisStorage, err := connectRedis(ctx, conf.Redis)
		if err != nil {
			return err
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		boardMirror := repository.NewBoardMirror(redisStorage.Connection, conf.Redis.Channel)
		if err = boardMirror.Clear(ctx); err != nil {
			return fmt.Errorf("could not prepare board mirror: %w", err)
		}

		mirror = boardMirror
		log.Info("Board mirror enabled", "addr", conf.Redis.GetRedisAddr(), "channel", conf.Redis.Channel)
	}

	gameSession := session.New(conf.RNGSeed)
	gameManager := usecase.NewGameManager(logger, gameSession, mirror)

	httpServer := rest.New(logger, conf.HTTPPort, gameManager)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := httpServer.Start(); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err := <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		stop()
		log.Info("Received signal, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}

	return nil
}

func connectRedis(ctx context.Context, conf config.Redis) (*storage.RedisStorage, error) {
	redisAddrString := conf.GetRedisAddr()
	if redisAddrString == "" {
		return nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return redisStorage, nil
}
