package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/rocketscienceinc/pegsolitaire-backend/internal/apperror"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/entity"
)

// HistoryRepository persists the past-games list as a single document.
type HistoryRepository interface {
	Load(ctx context.Context) ([]entity.PastGame, error)
	Save(ctx context.Context, games []entity.PastGame) error
}

// The stored shape only keeps jump endpoints; it is replayed for display and never re-validated.
const historySchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "array",
	"items": {
		"type": "object",
		"required": ["timestamp", "moves", "finalPegs"],
		"properties": {
			"timestamp": {"type": "string", "minLength": 1},
			"moves": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["from", "to"],
					"properties": {
						"from": {"$ref": "#/$defs/coordinate"},
						"to": {"$ref": "#/$defs/coordinate"}
					}
				}
			},
			"finalPegs": {"type": "integer", "minimum": 0}
		}
	},
	"$defs": {
		"coordinate": {
			"type": "array",
			"items": {"type": "integer", "minimum": 0, "maximum": 6},
			"minItems": 2,
			"maxItems": 2
		}
	}
}`

var historyDocument = jsonschema.MustCompileString("history.schema.json", historySchema)

type dbPastGame struct {
	Timestamp string   `json:"timestamp"`
	Moves     []dbMove `json:"moves"`
	FinalPegs int      `json:"finalPegs"`
}

type dbMove struct {
	From [2]int `json:"from"`
	To   [2]int `json:"to"`
}

func encodeHistory(games []entity.PastGame) ([]byte, error) {
	document := make([]dbPastGame, 0, len(games))

	for _, game := range games {
		moves := make([]dbMove, 0, len(game.Moves))
		for _, record := range game.Moves {
			moves = append(moves, dbMove{
				From: [2]int{record.From.Row, record.From.Col},
				To:   [2]int{record.To.Row, record.To.Col},
			})
		}

		timestamp := game.TimestampText
		if timestamp == "" {
			timestamp = game.Timestamp.Format(time.RFC3339)
		}

		document = append(document, dbPastGame{
			Timestamp: timestamp,
			Moves:     moves,
			FinalPegs: game.FinalPegs,
		})
	}

	data, err := json.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal history: %w", err)
	}

	return data, nil
}

func decodeHistory(data []byte) ([]entity.PastGame, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var instance any
	if err := decoder.Decode(&instance); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrHistoryMalformed, err)
	}

	if err := historyDocument.Validate(instance); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrHistoryMalformed, err)
	}

	var document []dbPastGame
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrHistoryMalformed, err)
	}

	games := make([]entity.PastGame, 0, len(document))

	for _, stored := range document {
		game := entity.PastGame{FinalPegs: stored.FinalPegs}

		// other writers store locale-formatted timestamps; those are kept as text for display
		timestamp, err := time.Parse(time.RFC3339, stored.Timestamp)
		if err != nil {
			game.TimestampText = stored.Timestamp
		} else {
			game.Timestamp = timestamp
		}

		moves := make([]entity.MoveRecord, 0, len(stored.Moves))
		for i, move := range stored.Moves {
			from := entity.Coordinate{Row: move.From[0], Col: move.From[1]}
			to := entity.Coordinate{Row: move.To[0], Col: move.To[1]}

			// every jump removes exactly one peg from the starting board
			moves = append(moves, entity.MoveRecord{
				Move:          entity.NewMove(from, to),
				PegsRemaining: entity.InitialPegs - (i + 1),
			})
		}

		game.Moves = moves
		games = append(games, game)
	}

	return games, nil
}
