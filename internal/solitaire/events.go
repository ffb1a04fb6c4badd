package solitaire

import (
	"fmt"

	"github.com/rocketscienceinc/pegsolitaire-backend/internal/entity"
)

type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateWon        State = "won"
	StateLost       State = "lost"
)

// LossReason only changes how a loss is worded; both reasons are the same terminal state.
type LossReason string

const (
	LossSinglePegOffCenter LossReason = "single_peg_off_center"
	LossNoMovesLeft        LossReason = "no_moves_left"
)

type EventKind string

const (
	EventGameStarted      EventKind = "game:started"
	EventGameEnded        EventKind = "game:ended"
	EventGameArchived     EventKind = "game:archived"
	EventCellUpdated      EventKind = "cell:updated"
	EventSelectionChanged EventKind = "selection:changed"
	EventMoveApplied      EventKind = "move:applied"
	EventHintNext         EventKind = "hint:next"
	EventHintDeviated     EventKind = "hint:deviated"
	EventHintCompleted    EventKind = "hint:completed"
	EventHintDisabled     EventKind = "hint:disabled"
)

// Event is a state change for the presentation layer to render.
type Event struct {
	Kind         EventKind           `json:"kind"`
	Cell         *entity.Coordinate  `json:"cell,omitempty"`
	State        entity.CellState    `json:"state,omitempty"`
	Selection    *entity.Coordinate  `json:"selection,omitempty"`
	Destinations []entity.Coordinate `json:"destinations,omitempty"`
	Move         *entity.MoveRecord  `json:"move,omitempty"`
	Hint         *entity.Move        `json:"hint,omitempty"`
	HintStep     int                 `json:"hint_step,omitempty"`
	Outcome      State               `json:"outcome,omitempty"`
	Reason       LossReason          `json:"reason,omitempty"`
	Pegs         int                 `json:"pegs,omitempty"`
}

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
	SeverityFinal   Severity = "final"
)

// Status is the transient message shown after an intent.
type Status struct {
	Text     string   `json:"text"`
	Severity Severity `json:"severity"`
}

// Result is everything one intent produced.
type Result struct {
	Events   []Event `json:"events"`
	Status   Status  `json:"status"`
	Archived bool    `json:"archived,omitempty"`

	// HintErr is set when the hint sequence was disabled for being out of sync with the board.
	HintErr error `json:"-"`
}

func (that *Result) emit(event Event) {
	that.Events = append(that.Events, event)
}

func (that *Result) setStatus(severity Severity, format string, args ...any) {
	that.Status = Status{Text: fmt.Sprintf(format, args...), Severity: severity}
}

// Has reports whether an event of the given kind was emitted.
func (that *Result) Has(kind EventKind) bool {
	for _, event := range that.Events {
		if event.Kind == kind {
			return true
		}
	}

	return false
}

func cellUpdated(coord entity.Coordinate, state entity.CellState) Event {
	return Event{Kind: EventCellUpdated, Cell: &coord, State: state}
}
