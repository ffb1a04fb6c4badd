package entity

import (
	"fmt"
	"strings"
	"time"
)

// PastGame is an archived game: a snapshot of its move log and the pegs left when it was archived.
// TimestampText keeps a stored timestamp that could not be parsed, verbatim, for display.
type PastGame struct {
	Timestamp     time.Time    `json:"timestamp"`
	TimestampText string       `json:"timestamp_text,omitempty"`
	Moves         []MoveRecord `json:"moves"`
	FinalPegs     int          `json:"final_pegs"`
}

func NewPastGame(timestamp time.Time, moves []MoveRecord, finalPegs int) PastGame {
	return PastGame{
		Timestamp: timestamp,
		Moves:     append([]MoveRecord(nil), moves...),
		FinalPegs: finalPegs,
	}
}

// Clone returns a copy that shares no memory with the receiver.
func (that PastGame) Clone() PastGame {
	clone := NewPastGame(that.Timestamp, that.Moves, that.FinalPegs)
	clone.TimestampText = that.TimestampText

	return clone
}

// PlayedAt is the display form of the timestamp.
func (that PastGame) PlayedAt() string {
	if that.TimestampText != "" {
		return that.TimestampText
	}

	return that.Timestamp.Format(time.DateTime)
}

// Summary is the one-line listing entry; number counts down from the newest game.
func (that PastGame) Summary(number int) string {
	return fmt.Sprintf("Game %d (%s) - %d moves - %d pegs",
		number, that.PlayedAt(), len(that.Moves), that.FinalPegs)
}

// Transcript renders the game as numbered "(r,c) -> (r,c)" lines under a short header.
func (that PastGame) Transcript() string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "Game of %s\n", that.PlayedAt())
	fmt.Fprintf(&builder, "(%d moves, %d pegs remaining)\n", len(that.Moves), that.FinalPegs)
	builder.WriteString(strings.Repeat("-", 34))

	for i, record := range that.Moves {
		fmt.Fprintf(&builder, "\n%2d. %s", i+1, record.Move)
	}

	return builder.String()
}
