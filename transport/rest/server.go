package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "blackstories_http_requests_total",
		Help: "HTTP requests served, by method and status code.",
	},
	[]string{"code", "method"},
)

// NewRouter - every user action is one request; pages are re-rendered after each redirect.
func NewRouter(logger *slog.Logger, game gameManager, renderer renderer) http.Handler {
	rooms := newRoomHandler(logger, game, renderer)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", ping)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /{$}", rooms.Index)
	mux.HandleFunc("POST /rooms", rooms.CreateRoom)
	mux.HandleFunc("GET /rooms/join", rooms.JoinByCode)
	mux.HandleFunc("GET /rooms/{id}", rooms.ShowRoom)
	mux.HandleFunc("POST /rooms/{id}/session", rooms.SaveSession)
	mux.HandleFunc("POST /rooms/{id}/leave", rooms.Leave)
	mux.HandleFunc("POST /rooms/{id}/questions", rooms.AskQuestion)
	mux.HandleFunc("POST /rooms/{id}/answers", rooms.AnswerQuestion)
	mux.HandleFunc("POST /rooms/{id}/story", rooms.GenerateStory)
	mux.HandleFunc("GET /rooms/{id}/transcript.pdf", rooms.Transcript)

	return promhttp.InstrumentHandlerCounter(requestsTotal, mux)
}

// Start - serves until ctx is canceled, then shuts down gracefully.
func Start(ctx context.Context, logger *slog.Logger, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     handler,
		ReadTimeout: 10 * time.Second,
		// story generation holds the request open for the whole provider call
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}

		return nil
	case <-ctx.Done():
		logger.Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}

		return nil
	}
}
