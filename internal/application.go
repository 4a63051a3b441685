package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/blackstories-backend/internal/config"
	"github.com/rocketscienceinc/blackstories-backend/internal/repository"
	"github.com/rocketscienceinc/blackstories-backend/internal/repository/storage"
	"github.com/rocketscienceinc/blackstories-backend/internal/storyteller"
	"github.com/rocketscienceinc/blackstories-backend/internal/usecase"
	"github.com/rocketscienceinc/blackstories-backend/internal/view"
	"github.com/rocketscienceinc/blackstories-backend/transport/rest"
)

var (
	ErrAddrNotFound   = errors.New("redis address string is empty")
	ErrUnknownStorage = errors.New("unknown storage backend")
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

	roomRepo, closeStorage, err := initRoomRepository(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeStorage()

	if conf.Gemini.APIKey == "" {
		log.Info("No server-side Gemini key configured, narrators must bring their own")
	}

	generator := storyteller.NewGenerator(logger, storyteller.NewGeminiCompleter(conf.Gemini.Model))
	gameManager := usecase.NewGameManager(logger, roomRepo, generator, conf.Gemini.APIKey)

	renderer, err := view.NewRenderer()
	if err != nil {
		return fmt.Errorf("could not load templates: %w", err)
	}

	router := rest.NewRouter(logger, gameManager, renderer)

	log.Info("Starting HTTP server", "port", conf.HTTPPort)

	return serve(ctx, log, func(ctx context.Context) error {
		return rest.Start(ctx, logger, conf.HTTPPort, router)
	})
}

// serve - runs start until it returns. After ctx is canceled it still waits for start,
// so the deferred storage close only happens once the server has drained.
func serve(ctx context.Context, log *slog.Logger, start func(ctx context.Context) error) error {
	httpErrCh := make(chan error, 1)
	go func() {
		httpErrCh <- start(ctx)
	}()

	select {
	case err := <-httpErrCh:
		if err != nil {
			log.Error("HTTP server error", "error", err)
			return fmt.Errorf("HTTP server error: %w", err)
		}

		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")

		if err := <-httpErrCh; err != nil {
			log.Error("HTTP server shutdown error", "error", err)
			return fmt.Errorf("HTTP server shutdown error: %w", err)
		}

		log.Info("HTTP server stopped")

		return nil
	}
}

// initRoomRepository - picks the room store named in config; the returned func releases it.
func initRoomRepository(ctx context.Context, logger *slog.Logger, conf *config.Config) (repository.RoomRepository, func(), error) {
	log := logger.With("component", "app")

	switch conf.Storage {
	case config.StorageMemory:
		log.Info("Using in-memory room storage", "room_ttl", conf.RoomTTL)
		return repository.NewMemoryRoomRepository(conf.RoomTTL), func() {}, nil

	case config.StorageRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		log.Info("Using redis room storage", "addr", redisAddrString, "room_ttl", conf.RoomTTL)

		closeStorage := func() {
			if err := redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}

		return repository.NewRoomRepository(redisStorage.Connection, conf.RoomTTL), closeStorage, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStorage, conf.Storage)
	}
}
