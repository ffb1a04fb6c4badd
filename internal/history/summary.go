package history

import (
	"time"

	"github.com/rocketscienceinc/pegsolitaire-backend/internal/entity"
)

// Summary is one line of the past-games listing.
type Summary struct {
	Index     int       `json:"index"`
	Number    int       `json:"number"`
	Timestamp time.Time `json:"timestamp"`
	PlayedAt  string    `json:"played_at"`
	Moves     int       `json:"moves"`
	FinalPegs int       `json:"final_pegs"`
	Text      string    `json:"summary"`
}

// Summarize numbers games newest first, so the oldest listed game is Game 1.
func Summarize(games []entity.PastGame) []Summary {
	summaries := make([]Summary, 0, len(games))

	for i, game := range games {
		number := len(games) - i

		summaries = append(summaries, Summary{
			Index:     i,
			Number:    number,
			Timestamp: game.Timestamp,
			PlayedAt:  game.PlayedAt(),
			Moves:     len(game.Moves),
			FinalPegs: game.FinalPegs,
			Text:      game.Summary(number),
		})
	}

	return summaries
}
