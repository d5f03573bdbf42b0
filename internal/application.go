package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/solvedgames/tictactoe/internal/config"
	"github.com/solvedgames/tictactoe/internal/engine"
	"github.com/solvedgames/tictactoe/internal/repository"
	"github.com/solvedgames/tictactoe/internal/repository/storage"
	"github.com/solvedgames/tictactoe/internal/service"
	"github.com/solvedgames/tictactoe/internal/terminal"
	"github.com/solvedgames/tictactoe/internal/usecase"
)

var (
	ErrAddrNotFound       = errors.New("redis address string is empty")
	ErrUnknownStorageType = errors.New("unknown storage type")
)

// RunApp - wires the game together and runs the interactive session.
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

	var gameRepo repository.GameRepository

	switch conf.Storage.Type {
	case config.StorageRedis:
		addr := conf.Storage.Redis.GetRedisAddr()
		if addr == "" {
			return ErrAddrNotFound
		}

		client, err := storage.New(ctx, addr)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = client.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		gameRepo = repository.NewGameRepository(client)
	case config.StorageMemory:
		// saves last for the process lifetime only
		gameRepo = repository.NewMemoryGameRepository()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownStorageType, conf.Storage.Type)
	}

	searchEngine := engine.New()
	botService := service.NewBotService(logger, searchEngine)
	gamePlayService := service.NewGamePlayService(logger, gameRepo, botService, searchEngine)

	console := terminal.New(os.Stdin, os.Stdout)
	gameManager := usecase.NewGameManager(logger, gamePlayService, console)

	if err := gameManager.Run(ctx); err != nil {
		return fmt.Errorf("game session failed: %w", err)
	}

	return nil
}
