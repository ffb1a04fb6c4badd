package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/pegsolitaire-backend/internal/config"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/history"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/repository"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/repository/storage"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/usecase"
	"github.com/rocketscienceinc/pegsolitaire-backend/transport/rest"
	"github.com/rocketscienceinc/pegsolitaire-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	historyRepo, closer, err := newHistoryRepository(ctx, conf)
	if err != nil {
		return fmt.Errorf("could not open history storage: %w", err)
	}

	defer func() {
		if err = closer.Close(); err != nil {
			log.Error("could not close history storage", "error", err)
		}
	}()

	gameManager := usecase.NewGameManager(logger, history.NewStore(), historyRepo)
	gameManager.LoadHistory(ctx)

	wsServer := websocket.New(logger, gameManager)

	restServer := rest.New(logger, gameManager)
	restServer.Mount("/ws", wsServer)

	go func() {
		<-ctx.Done()
		wsServer.Shutdown()
	}()

	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort, "history", conf.History.Backend)
		if httpErr := restServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func newHistoryRepository(ctx context.Context, conf *config.Config) (repository.HistoryRepository, io.Closer, error) {
	switch conf.History.Backend {
	case config.HistoryBackendRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewHistoryRedisRepository(redisStorage.Connection, conf.History.Key), redisStorage, nil

	case config.HistoryBackendSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return repository.NewHistorySQLiteRepository(sqliteStorage.Connection, conf.History.Key), sqliteStorage, nil

	default:
		return repository.NewHistoryFileRepository(conf.History.FilePath), io.NopCloser(nil), nil
	}
}
