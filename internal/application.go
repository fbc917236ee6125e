package application

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/config"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/service"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-rooms/transport/rest"
	"github.com/rocketscienceinc/tictactoe-rooms/transport/websocket"
)

const resultQueueSize = 64

// RunApp - runs the application until SIGINT/SIGTERM or a server error.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := repository.NewRoomRegistry()
	conns := service.NewConnections()

	var (
		results  repository.ResultRepository
		recorder service.ResultRecorder = service.NopRecorder{}
		wg       sync.WaitGroup
	)

	// stops the recorder on every return path
	recorderCtx, cancelRecorder := context.WithCancel(ctx)

	if conf.Redis.Enabled {
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			cancelRecorder()
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		results = repository.NewResultRepository(redisStorage.Connection, conf.Redis.ResultsLimit)

		asyncRecorder := service.NewResultRecorder(logger, results, resultQueueSize)
		recorder = asyncRecorder

		wg.Add(1)
		go func() {
			defer wg.Done()
			asyncRecorder.Run(recorderCtx)
		}()

		log.Info("Recording results to redis", "addr", conf.Redis.GetRedisAddr())
	}

	// the recorder drains before redis is closed
	defer wg.Wait()
	defer cancelRecorder()

	manager := usecase.NewRoomManager(logger, registry, conns, service.NewBroadcaster(logger, conns), recorder)
	wsServer := websocket.New(logger, manager, conf.WebSocket)

	stats := service.NewStatsService(registry, conns, results)
	router := rest.NewRouter(logger, wsServer, stats, conf.StaticDir)

	log.Info("Starting HTTP server", "port", conf.HTTPPort)
	if err := rest.Start(ctx, conf.HTTPPort, router, wsServer.CloseAll); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}
