package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/playpick/numtactoe/internal/config"
	"github.com/playpick/numtactoe/internal/entity"
	"github.com/playpick/numtactoe/internal/repository"
	"github.com/playpick/numtactoe/internal/repository/storage"
	"github.com/playpick/numtactoe/internal/service"
	"github.com/playpick/numtactoe/internal/usecase"
	"github.com/playpick/numtactoe/transport/console"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

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

	snapshots, cleanup, err := buildSnapshotRepository(ctx, conf)
	if err != nil {
		return fmt.Errorf("could not build snapshot storage: %w", err)
	}
	defer func() {
		if err = cleanup(); err != nil {
			log.Error("could not close snapshot storage", "error", err)
		}
	}()

	game, err := buildGame(conf)
	if err != nil {
		return fmt.Errorf("could not build game: %w", err)
	}

	gameSession, err := usecase.NewSession(logger, game, snapshots)
	if err != nil {
		return fmt.Errorf("could not build session: %w", err)
	}

	consoleServer := console.New(logger, gameSession, service.NewBotService(), os.Stdin, os.Stdout)

	log.Info("Starting game session", "mode", conf.Game.Mode, "backend", conf.Storage.Backend)

	if err = consoleServer.Start(ctx); err != nil {
		return fmt.Errorf("session ended with error: %w", err)
	}

	return nil
}

func buildGame(conf *config.Config) (*entity.Game, error) {
	kindTwo := entity.KindHuman
	if conf.Game.Mode == entity.ModePlayerVsBot {
		kindTwo = entity.KindBot
	}

	players := []*entity.Player{
		entity.NewPlayer(entity.PlayerOneID, conf.Game.PlayerOneName, entity.KindHuman),
		entity.NewPlayer(entity.PlayerTwoID, conf.Game.PlayerTwoName, kindTwo),
	}

	return entity.NewGame(conf.Game.Mode, entity.NewBoard(), players)
}

func buildSnapshotRepository(ctx context.Context, conf *config.Config) (repository.SnapshotRepository, func() error, error) {
	noop := func() error { return nil }

	switch conf.Storage.Backend {
	case config.BackendFile:
		repo, err := repository.NewFileSnapshotRepository(conf.Storage.GetSaveDir())
		if err != nil {
			return nil, nil, err
		}
		return repo, noop, nil

	case config.BackendRedis:
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Storage.Redis.GetRedisAddr())
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}
		return repository.NewRedisSnapshotRepository(redisStorage.Connection), redisStorage.Close, nil

	case config.BackendSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(conf.Storage.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}
		if err = sqliteStorage.Init(ctx); err != nil {
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}
		return repository.NewSQLiteSnapshotRepository(sqliteStorage.Connection), sqliteStorage.Close, nil

	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownBackend, conf.Storage.Backend)
	}
}
