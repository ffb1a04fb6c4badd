package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/pegsolitaire-backend/internal/apperror"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/entity"
)

var startedAt = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func newTestStore() *Store {
	store := NewStore()

	tick := 0
	store.now = func() time.Time {
		tick++
		return startedAt.Add(time.Duration(tick) * time.Minute)
	}

	return store
}

func movesOf(count int) []entity.MoveRecord {
	moves := make([]entity.MoveRecord, 0, count)
	for i := 0; i < count; i++ {
		moves = append(moves, entity.MoveRecord{
			Move:          entity.NewMove(entity.Coordinate{Row: 5, Col: 3}, entity.Center),
			PegsRemaining: entity.InitialPegs - (i + 1),
		})
	}

	return moves
}

func TestStore_Archive(t *testing.T) {
	t.Run("Empty move log is not archived", func(t *testing.T) {
		store := newTestStore()

		_, ok := store.Archive(nil, 32)

		assert.False(t, ok)
		assert.Zero(t, store.Len())
	})

	t.Run("Newest game comes first", func(t *testing.T) {
		// Given: an empty store
		store := newTestStore()

		// When: two games are archived
		_, ok := store.Archive(movesOf(1), 31)
		require.True(t, ok)
		second, ok := store.Archive(movesOf(2), 30)
		require.True(t, ok)

		// Then: the second one is at index 0
		games := store.List()
		require.Len(t, games, 2)
		assert.Equal(t, second, games[0])
		assert.Equal(t, 30, games[0].FinalPegs)
		assert.Equal(t, 31, games[1].FinalPegs)
		assert.True(t, games[0].Timestamp.After(games[1].Timestamp))
	})

	t.Run("Sixth game evicts the oldest", func(t *testing.T) {
		// Given: a full store
		store := newTestStore()
		for i := 1; i <= MaxPastGames; i++ {
			store.Archive(movesOf(i), entity.InitialPegs-i)
		}

		// When: one more game is archived
		store.Archive(movesOf(6), entity.InitialPegs-6)

		// Then: the game with a single move is gone
		games := store.List()
		require.Len(t, games, MaxPastGames)
		for i, game := range games {
			assert.Len(t, game.Moves, 6-i)
		}
	})

	t.Run("Archived moves are a snapshot", func(t *testing.T) {
		store := newTestStore()
		moves := movesOf(2)

		store.Archive(moves, 30)
		moves[0].PegsRemaining = 0

		game, err := store.Get(0)
		require.NoError(t, err)
		assert.Equal(t, 31, game.Moves[0].PegsRemaining)
	})
}

func TestStore_ListReturnsCopies(t *testing.T) {
	store := newTestStore()
	store.Archive(movesOf(1), 31)

	games := store.List()
	games[0].Moves[0].PegsRemaining = 0
	games[0].FinalPegs = 0

	game, err := store.Get(0)
	require.NoError(t, err)
	assert.Equal(t, 31, game.FinalPegs)
	assert.Equal(t, 31, game.Moves[0].PegsRemaining)
}

func TestStore_Get(t *testing.T) {
	store := newTestStore()
	store.Archive(movesOf(1), 31)

	for _, index := range []int{-1, 1, 5} {
		_, err := store.Get(index)
		require.ErrorIs(t, err, apperror.ErrPastGameNotFound, "index %d", index)
	}
}

func TestStore_Restore(t *testing.T) {
	// Given: seven persisted games
	persisted := make([]entity.PastGame, 0, 7)
	for i := 0; i < 7; i++ {
		persisted = append(persisted, entity.NewPastGame(startedAt, movesOf(i+1), entity.InitialPegs-(i+1)))
	}

	store := newTestStore()

	// When: they are restored
	store.Restore(persisted)

	// Then: only the newest five are kept, in order
	games := store.List()
	require.Len(t, games, MaxPastGames)
	assert.Equal(t, persisted[:MaxPastGames], games)

	// Then: restoring nothing empties the store
	store.Restore(nil)
	assert.Zero(t, store.Len())
}

func TestSummarize(t *testing.T) {
	// Given: three games, newest first
	games := []entity.PastGame{
		entity.NewPastGame(startedAt.Add(2*time.Hour), movesOf(3), 29),
		entity.NewPastGame(startedAt.Add(time.Hour), movesOf(2), 30),
		entity.NewPastGame(startedAt, movesOf(1), 31),
	}

	// When: they are summarized
	summaries := Summarize(games)

	// Then: numbering counts down so the oldest game is Game 1
	require.Len(t, summaries, 3)
	assert.Equal(t, 3, summaries[0].Number)
	assert.Equal(t, 0, summaries[0].Index)
	assert.Equal(t, 1, summaries[2].Number)
	assert.Equal(t, 2, summaries[2].Index)
	assert.Equal(t, "Game 3 (2024-03-01 14:00:00) - 3 moves - 29 pegs", summaries[0].Text)
	assert.Equal(t, "2024-03-01 14:00:00", summaries[0].PlayedAt)
	assert.Equal(t, 31, summaries[2].FinalPegs)
	assert.Empty(t, Summarize(nil))
}
