package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewMove(t *testing.T) {
	move := NewMove(Coordinate{Row: 3, Col: 1}, Coordinate{Row: 3, Col: 3})

	assert.Equal(t, Coordinate{Row: 3, Col: 2}, move.Over)
	assert.Equal(t, "(3,1) -> (3,3)", move.String())
	assert.True(t, move.SameJump(Move{From: move.From, To: move.To}))
}

func TestPastGame(t *testing.T) {
	timestamp := time.Date(2026, 10, 19, 14, 30, 0, 0, time.UTC)
	moves := []MoveRecord{
		{Move: NewMove(Coordinate{Row: 5, Col: 3}, Coordinate{Row: 3, Col: 3}), PegsRemaining: 31},
		{Move: NewMove(Coordinate{Row: 4, Col: 1}, Coordinate{Row: 4, Col: 3}), PegsRemaining: 30},
	}

	t.Run("Snapshot is independent of the source slice", func(t *testing.T) {
		// Given: a past game built from a live move log
		live := append([]MoveRecord(nil), moves...)
		game := NewPastGame(timestamp, live, 30)

		// When: the live log changes
		live[0].PegsRemaining = 0

		// Then: the archived moves keep their values
		assert.Len(t, game.Moves, 2)
		assert.Equal(t, 31, game.Moves[0].PegsRemaining)
	})

	t.Run("Transcript lists numbered moves", func(t *testing.T) {
		game := NewPastGame(timestamp, moves, 30)

		expected := "Game of 2026-10-19 14:30:00\n" +
			"(2 moves, 30 pegs remaining)\n" +
			"----------------------------------\n" +
			" 1. (5,3) -> (3,3)\n" +
			" 2. (4,1) -> (4,3)"

		assert.Equal(t, expected, game.Transcript())
	})

	t.Run("Summary shows the game number", func(t *testing.T) {
		game := NewPastGame(timestamp, moves, 30)

		assert.Equal(t, "Game 3 (2026-10-19 14:30:00) - 2 moves - 30 pegs", game.Summary(3))
	})
	t.Run("Unparsed timestamp text is shown as written", func(t *testing.T) {
		// Given: a game loaded with a timestamp that is not RFC 3339
		game := PastGame{TimestampText: "19/10/2026, 14:30:00", Moves: moves, FinalPegs: 30}

		// When: it is cloned
		clone := game.Clone()

		// Then: the text survives and is used for display
		assert.Equal(t, "19/10/2026, 14:30:00", clone.PlayedAt())
		assert.Equal(t, "Game 1 (19/10/2026, 14:30:00) - 2 moves - 30 pegs", clone.Summary(1))
		assert.Contains(t, clone.Transcript(), "Game of 19/10/2026, 14:30:00\n")
	})
}
