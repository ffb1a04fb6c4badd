package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/pegsolitaire-backend/internal/apperror"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/entity"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/history"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/solitaire"
)

type historyRepo interface {
	Load(ctx context.Context) ([]entity.PastGame, error)
	Save(ctx context.Context, games []entity.PastGame) error
}

// Outcome is the session after an intent together with what the intent produced.
// HistoryError is set when the past-games list could not be saved; the list in memory stays as it is.
type Outcome struct {
	Game         solitaire.Session `json:"game"`
	Result       *solitaire.Result `json:"result,omitempty"`
	HistoryError string            `json:"history_error,omitempty"`
}

// GameManager owns the single live game and the past-games list, and processes one intent at a time.
type GameManager struct {
	logger *slog.Logger

	mu          sync.Mutex
	engine      *solitaire.Engine
	history     *history.Store
	historyRepo historyRepo
}

func NewGameManager(logger *slog.Logger, store *history.Store, historyRepo historyRepo) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		engine:      solitaire.NewEngine(store),
		history:     store,
		historyRepo: historyRepo,
	}
}

// LoadHistory restores persisted past games. Any failure leaves the list empty and is only logged.
func (that *GameManager) LoadHistory(ctx context.Context) int {
	log := that.logger.With("method", "LoadHistory")

	games, err := that.historyRepo.Load(ctx)
	switch {
	case errors.Is(err, apperror.ErrHistoryNotFound):
		log.Info("no saved history yet")
		games = nil
	case err != nil:
		log.Error("failed to load history, starting empty", "error", err)
		games = nil
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.history.Restore(games)
	log.Info("history loaded", "games", that.history.Len())

	return that.history.Len()
}

// StartGame starts a new game, archiving the current one if it has moves.
func (that *GameManager) StartGame(ctx context.Context, withHints bool) *Outcome {
	that.mu.Lock()
	defer that.mu.Unlock()

	result := that.engine.Reset(withHints)
	outcome := &Outcome{Result: result}
	that.afterIntent(ctx, outcome)
	outcome.Game = that.engine.Session()

	that.logger.Debug("game started", "hints", withHints)

	return outcome
}

// ResetGame restarts without hints.
func (that *GameManager) ResetGame(ctx context.Context) *Outcome {
	return that.StartGame(ctx, false)
}

// SelectOrMove handles a click on a cell. User input errors come back together with the outcome.
func (that *GameManager) SelectOrMove(ctx context.Context, coord entity.Coordinate) (*Outcome, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	result, err := that.engine.SelectOrMove(coord)
	outcome := &Outcome{Result: result}
	that.afterIntent(ctx, outcome)
	outcome.Game = that.engine.Session()

	if err != nil {
		return outcome, fmt.Errorf("failed to select or move at %s: %w", coord, err)
	}

	return outcome, nil
}

func (that *GameManager) State(_ context.Context) solitaire.Session {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.engine.Session()
}

func (that *GameManager) PastGames(_ context.Context) []entity.PastGame {
	return that.history.List()
}

func (that *GameManager) ViewPastGame(_ context.Context, index int) (entity.PastGame, error) {
	game, err := that.history.Get(index)
	if err != nil {
		return entity.PastGame{}, fmt.Errorf("failed to view past game: %w", err)
	}

	return game, nil
}

func (that *GameManager) afterIntent(ctx context.Context, outcome *Outcome) {
	result := outcome.Result
	if result == nil {
		return
	}

	if result.HintErr != nil {
		that.logger.Error("hint sequence disabled", "error", result.HintErr)
	}

	if result.Archived {
		if err := that.persistHistory(ctx); err != nil {
			outcome.HistoryError = err.Error()
		}
	}
}

// persistHistory saves the whole list. A failure never rolls back the in-memory list.
func (that *GameManager) persistHistory(ctx context.Context) error {
	log := that.logger.With("method", "persistHistory")

	games := that.history.List()
	if err := that.historyRepo.Save(ctx, games); err != nil {
		log.Error("failed to save history", "error", err)
		return fmt.Errorf("failed to save history: %w", err)
	}

	log.Info("history saved", "games", len(games))

	return nil
}
