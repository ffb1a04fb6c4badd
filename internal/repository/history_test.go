package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/pegsolitaire-backend/internal/apperror"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/entity"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/repository/storage"
	"github.com/rocketscienceinc/pegsolitaire-backend/testing/suite"
)

func pastGames() []entity.PastGame {
	first := []entity.MoveRecord{
		{Move: entity.NewMove(entity.Coordinate{Row: 5, Col: 3}, entity.Center), PegsRemaining: 31},
		{Move: entity.NewMove(entity.Coordinate{Row: 4, Col: 1}, entity.Coordinate{Row: 4, Col: 3}), PegsRemaining: 30},
	}
	second := []entity.MoveRecord{
		{Move: entity.NewMove(entity.Coordinate{Row: 3, Col: 1}, entity.Center), PegsRemaining: 31},
	}

	return []entity.PastGame{
		entity.NewPastGame(time.Date(2024, time.March, 1, 12, 30, 0, 0, time.UTC), first, 30),
		entity.NewPastGame(time.Date(2024, time.February, 28, 9, 0, 5, 0, time.UTC), second, 31),
	}
}

func assertSameGames(t *testing.T, expected, actual []entity.PastGame) {
	t.Helper()

	require.Len(t, actual, len(expected))

	for i := range expected {
		assert.True(t, expected[i].Timestamp.Equal(actual[i].Timestamp), "game %d timestamp", i)
		assert.Equal(t, expected[i].Moves, actual[i].Moves, "game %d moves", i)
		assert.Equal(t, expected[i].FinalPegs, actual[i].FinalPegs, "game %d final pegs", i)
	}
}

func TestHistoryCodec(t *testing.T) {
	t.Run("Stored games come back with jumped cells and peg counts", func(t *testing.T) {
		// Given: two archived games
		games := pastGames()

		// When: they are encoded and decoded
		data, err := encodeHistory(games)
		require.NoError(t, err)
		decoded, err := decodeHistory(data)

		// Then: the midpoint and remaining pegs are rebuilt from the endpoints
		require.NoError(t, err)
		assertSameGames(t, games, decoded)
	})

	t.Run("Only endpoints are stored", func(t *testing.T) {
		data, err := encodeHistory(pastGames()[1:])
		require.NoError(t, err)

		assert.JSONEq(t, `[{"timestamp":"2024-02-28T09:00:05Z","moves":[{"from":[3,1],"to":[3,3]}],"finalPegs":31}]`, string(data))
	})

	t.Run("Empty list", func(t *testing.T) {
		data, err := encodeHistory(nil)
		require.NoError(t, err)

		decoded, err := decodeHistory(data)

		require.NoError(t, err)
		assert.Empty(t, decoded)
	})

	t.Run("Timestamps in another format are kept as text", func(t *testing.T) {
		// Given: a document mixing a locale-formatted and an RFC 3339 timestamp
		document := `[
			{"timestamp":"19/10/2026, 10:00:00","moves":[{"from":[5,3],"to":[3,3]}],"finalPegs":31},
			{"timestamp":"2026-10-19T10:00:00Z","moves":[],"finalPegs":32}
		]`

		// When: it is decoded
		decoded, err := decodeHistory([]byte(document))

		// Then: both games survive and the foreign timestamp is shown as written
		require.NoError(t, err)
		require.Len(t, decoded, 2)

		assert.True(t, decoded[0].Timestamp.IsZero())
		assert.Equal(t, "19/10/2026, 10:00:00", decoded[0].TimestampText)
		assert.Equal(t, "Game 2 (19/10/2026, 10:00:00) - 1 moves - 31 pegs", decoded[0].Summary(2))
		assert.Equal(t, entity.Coordinate{Row: 4, Col: 3}, decoded[0].Moves[0].Over)

		assert.True(t, decoded[1].Timestamp.Equal(time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)))
		assert.Empty(t, decoded[1].TimestampText)

		// and saving writes the foreign timestamp back unchanged
		data, err := encodeHistory(decoded[:1])
		require.NoError(t, err)
		assert.JSONEq(t, `[{"timestamp":"19/10/2026, 10:00:00","moves":[{"from":[5,3],"to":[3,3]}],"finalPegs":31}]`, string(data))
	})

	malformed := []struct {
		name     string
		document string
	}{
		{name: "not json", document: `{`},
		{name: "not a list", document: `{"timestamp":"2024-02-28T09:00:05Z"}`},
		{name: "missing final pegs", document: `[{"timestamp":"2024-02-28T09:00:05Z","moves":[]}]`},
		{name: "negative final pegs", document: `[{"timestamp":"2024-02-28T09:00:05Z","moves":[],"finalPegs":-1}]`},
		{name: "coordinate off the board", document: `[{"timestamp":"2024-02-28T09:00:05Z","moves":[{"from":[7,3],"to":[5,3]}],"finalPegs":31}]`},
		{name: "coordinate with three parts", document: `[{"timestamp":"2024-02-28T09:00:05Z","moves":[{"from":[1,3,0],"to":[3,3]}],"finalPegs":31}]`},
		{name: "empty timestamp", document: `[{"timestamp":"","moves":[],"finalPegs":32}]`},
	}

	for _, tc := range malformed {
		t.Run("Malformed document: "+tc.name, func(t *testing.T) {
			_, err := decodeHistory([]byte(tc.document))

			require.ErrorIs(t, err, apperror.ErrHistoryMalformed)
		})
	}
}

func TestHistoryFileRepository(t *testing.T) {
	t.Run("Missing file is reported as not found", func(t *testing.T) {
		repo := NewHistoryFileRepository(filepath.Join(t.TempDir(), "history.json"))

		_, err := repo.Load(context.Background())

		require.ErrorIs(t, err, apperror.ErrHistoryNotFound)
	})

	t.Run("Save then load", func(t *testing.T) {
		// Given: a repository in a directory that does not exist yet
		path := filepath.Join(t.TempDir(), "nested", "history.json")
		repo := NewHistoryFileRepository(path)

		// When: the list is saved twice and loaded
		require.NoError(t, repo.Save(context.Background(), pastGames()[1:]))
		require.NoError(t, repo.Save(context.Background(), pastGames()))
		loaded, err := repo.Load(context.Background())

		// Then: the last save wins and no temporary file is left behind
		require.NoError(t, err)
		assertSameGames(t, pastGames(), loaded)
		assert.NoFileExists(t, path+".tmp")
	})

	t.Run("Corrupted file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.json")
		require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

		_, err := NewHistoryFileRepository(path).Load(context.Background())

		require.ErrorIs(t, err, apperror.ErrHistoryMalformed)
	})
}

func TestHistorySQLiteRepository(t *testing.T) {
	ctx := context.Background()

	st, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "db", "solitaire.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.Init(ctx))

	t.Run("Unknown profile is reported as not found", func(t *testing.T) {
		_, err := NewHistorySQLiteRepository(st.Connection, "nobody").Load(ctx)

		require.ErrorIs(t, err, apperror.ErrHistoryNotFound)
	})

	t.Run("Save replaces the profile document", func(t *testing.T) {
		repo := NewHistorySQLiteRepository(st.Connection, "default")

		require.NoError(t, repo.Save(ctx, pastGames()[1:]))
		require.NoError(t, repo.Save(ctx, pastGames()))
		loaded, err := repo.Load(ctx)

		require.NoError(t, err)
		assertSameGames(t, pastGames(), loaded)

		var rows int
		require.NoError(t, st.Connection.QueryRowContext(ctx, `SELECT COUNT(*) FROM history WHERE profile = ?`, "default").Scan(&rows))
		assert.Equal(t, 1, rows)
	})

	t.Run("Profiles are independent", func(t *testing.T) {
		require.NoError(t, NewHistorySQLiteRepository(st.Connection, "alice").Save(ctx, pastGames()[:1]))
		require.NoError(t, NewHistorySQLiteRepository(st.Connection, "bob").Save(ctx, pastGames()[1:]))

		alice, err := NewHistorySQLiteRepository(st.Connection, "alice").Load(ctx)
		require.NoError(t, err)

		assertSameGames(t, pastGames()[:1], alice)
	})
}

func TestHistoryRedisRepository(t *testing.T) {
	t.Run("Missing key is reported as not found", func(t *testing.T) {
		ctx, st := suite.New(t)

		_, err := NewHistoryRedisRepository(st.Storage, "default").Load(ctx)

		require.ErrorIs(t, err, apperror.ErrHistoryNotFound)
	})

	t.Run("Save then load", func(t *testing.T) {
		ctx, st := suite.New(t)

		repo := NewHistoryRedisRepository(st.Storage, "default")

		// When: the list is saved
		err := repo.Save(ctx, pastGames())
		require.NoError(t, err)

		// Then: it is stored under the profile key and loads back
		exists, err := st.Storage.Exists(ctx, "history:default").Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), exists)

		loaded, err := repo.Load(ctx)
		require.NoError(t, err)
		assertSameGames(t, pastGames(), loaded)
	})

	t.Run("Corrupted value", func(t *testing.T) {
		ctx, st := suite.New(t)

		require.NoError(t, st.Storage.Set(ctx, "history:default", "[1,2,3]", 0).Err())

		_, err := NewHistoryRedisRepository(st.Storage, "default").Load(ctx)

		require.ErrorIs(t, err, apperror.ErrHistoryMalformed)
	})
}
