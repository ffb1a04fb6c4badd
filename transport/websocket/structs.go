package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/pegsolitaire-backend/internal/entity"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/history"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/solitaire"
)

const (
	actionGameState   = "game:state"
	actionGameStart   = "game:start"
	actionGameReset   = "game:reset"
	actionCellClick   = "cell:click"
	actionHistoryList = "history:list"
	actionHistoryView = "history:view"
	actionError       = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type startRequest struct {
	Hints bool `json:"hints"`
}

type cellRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type viewRequest struct {
	Index *int `json:"index"`
}

type Payload struct {
	Game     *solitaire.Session `json:"game,omitempty"`
	Events   []solitaire.Event  `json:"events,omitempty"`
	Status   *solitaire.Status  `json:"status,omitempty"`
	History  []history.Summary  `json:"history,omitempty"`
	PastGame *pastGameDetails   `json:"past_game,omitempty"`
	Error    string             `json:"error,omitempty"`

	HistoryError string `json:"history_error,omitempty"`
}

type pastGameDetails struct {
	entity.PastGame
	Transcript string `json:"transcript"`
}
