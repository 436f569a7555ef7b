package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-table/internal/config"
	"github.com/rocketscienceinc/tictactoe-table/internal/storage"
	"github.com/rocketscienceinc/tictactoe-table/internal/tictactoe"
	redispub "github.com/rocketscienceinc/tictactoe-table/internal/transport/redis"
	"github.com/rocketscienceinc/tictactoe-table/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-table/transport/rest"
	"github.com/rocketscienceinc/tictactoe-table/transport/websocket"
)

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

	tableUseCase := usecase.NewTableUseCase(logger, tictactoe.NewGameController())

	if conf.Redis.Enabled() {
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		tableUseCase.Subscribe(redispub.NewPublisher(logger, redisStorage.Connection, conf.Redis.Channel))
		log.Info("Publishing table updates to redis", "channel", conf.Redis.Channel)
	}

	wsServer := websocket.New(logger, tableUseCase)
	tableUseCase.Subscribe(wsServer)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(ctx, logger, conf.HTTPPort, tableUseCase); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err := <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err := <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
