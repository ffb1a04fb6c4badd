package rest

import (
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/entity"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/solitaire"
)

type startRequest struct {
	Hints bool `json:"hints"`
}

type cellRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

// ResponsePayload is the envelope of every game endpoint.
type ResponsePayload struct {
	Game   *solitaire.Session `json:"game,omitempty"`
	Events []solitaire.Event  `json:"events,omitempty"`
	Status *solitaire.Status  `json:"status,omitempty"`
	Error  string             `json:"error,omitempty"`

	HistoryError string `json:"history_error,omitempty"`
}

type pastGameDetails struct {
	entity.PastGame
	Transcript string `json:"transcript"`
}
