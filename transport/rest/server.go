package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/pegsolitaire-backend/internal/entity"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/solitaire"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/usecase"
)

const (
	requestTimeout  = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

type uGame interface {
	StartGame(ctx context.Context, withHints bool) *usecase.Outcome
	ResetGame(ctx context.Context) *usecase.Outcome
	SelectOrMove(ctx context.Context, coord entity.Coordinate) (*usecase.Outcome, error)
	State(ctx context.Context) solitaire.Session

	PastGames(ctx context.Context) []entity.PastGame
	ViewPastGame(ctx context.Context, index int) (entity.PastGame, error)
}

type Server struct {
	logger *slog.Logger
	uGame  uGame
	router *chi.Mux
}

func New(logger *slog.Logger, uGame uGame) *Server {
	server := &Server{
		logger: logger.With("component", "rest"),
		uGame:  uGame,
		router: chi.NewRouter(),
	}

	server.router.Use(chimw.RequestID)
	server.router.Use(chimw.Recoverer)

	server.router.Get("/ping", pingHandler)

	server.router.Route("/game", func(r chi.Router) {
		r.Use(chimw.Timeout(requestTimeout))
		r.Use(jsonContentType)
		r.Get("/", server.handleGetGame)
		r.Post("/start", server.handleStartGame)
		r.Post("/reset", server.handleResetGame)
		r.Post("/cells", server.handleSelectOrMove)
	})

	server.router.Route("/history", func(r chi.Router) {
		r.Use(chimw.Timeout(requestTimeout))
		r.Use(jsonContentType)
		r.Get("/", server.handleListHistory)
		r.Get("/{index}", server.handleViewPastGame)
	})

	return server
}

// Mount attaches a long-lived handler, such as the websocket endpoint, outside the request timeout.
func (that *Server) Mount(pattern string, handler http.Handler) {
	that.router.Mount(pattern, handler)
}

func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	that.router.ServeHTTP(w, r)
}

// Start - serves HTTP until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}
