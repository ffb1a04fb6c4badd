// Package history keeps the most recent finished or abandoned games, newest first.
package history

import (
	"fmt"
	"sync"
	"time"

	"github.com/rocketscienceinc/pegsolitaire-backend/internal/apperror"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/entity"
)

const MaxPastGames = 5

// Store is the bounded past-games list. Archive and the read queries are serialized by a mutex.
type Store struct {
	mu    sync.RWMutex
	games []entity.PastGame
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

// Archive stores a copy of moves at the front and drops the oldest entry past MaxPastGames.
// An empty move log is not archived.
func (that *Store) Archive(moves []entity.MoveRecord, finalPegs int) (entity.PastGame, bool) {
	if len(moves) == 0 {
		return entity.PastGame{}, false
	}

	game := entity.NewPastGame(that.now(), moves, finalPegs)

	that.mu.Lock()
	defer that.mu.Unlock()

	that.games = append([]entity.PastGame{game}, that.games...)
	if len(that.games) > MaxPastGames {
		that.games = that.games[:MaxPastGames]
	}

	return game.Clone(), true
}

// Restore replaces the list with previously persisted games, keeping at most MaxPastGames.
func (that *Store) Restore(games []entity.PastGame) {
	if len(games) > MaxPastGames {
		games = games[:MaxPastGames]
	}

	restored := make([]entity.PastGame, 0, len(games))
	for _, game := range games {
		restored = append(restored, game.Clone())
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.games = restored
}

// List returns copies of the archived games, newest first.
func (that *Store) List() []entity.PastGame {
	that.mu.RLock()
	defer that.mu.RUnlock()

	games := make([]entity.PastGame, 0, len(that.games))
	for _, game := range that.games {
		games = append(games, game.Clone())
	}

	return games
}

// Get returns the game at index, 0 being the newest.
func (that *Store) Get(index int) (entity.PastGame, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	if index < 0 || index >= len(that.games) {
		return entity.PastGame{}, fmt.Errorf("%w: index %d", apperror.ErrPastGameNotFound, index)
	}

	return that.games[index].Clone(), nil
}

func (that *Store) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.games)
}
