package solitaire

import (
	"fmt"

	"github.com/rocketscienceinc/pegsolitaire-backend/internal/apperror"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/entity"
)

type archiver interface {
	Archive(moves []entity.MoveRecord, finalPegs int) (entity.PastGame, bool)
}

// Engine owns the live board and session and turns intents into results.
// It is not safe for concurrent use; callers serialize intents.
type Engine struct {
	history archiver

	board      *entity.Board
	state      State
	lossReason LossReason
	selection  *entity.Coordinate
	moves      []entity.MoveRecord
	hints      *HintSequencer
	archived   bool
}

// Session is a read-only snapshot of the engine.
type Session struct {
	Board        [entity.BoardSize][entity.BoardSize]entity.CellState `json:"board"`
	State        State                                                `json:"state"`
	Started      bool                                                 `json:"started"`
	Ended        bool                                                 `json:"ended"`
	LossReason   LossReason                                           `json:"loss_reason,omitempty"`
	Selection    *entity.Coordinate                                   `json:"selection,omitempty"`
	Destinations []entity.Coordinate                                  `json:"destinations,omitempty"`
	Moves        []entity.MoveRecord                                  `json:"moves"`
	Hint         HintState                                            `json:"hint"`
	NextHint     *entity.Move                                         `json:"next_hint,omitempty"`
	Pegs         int                                                  `json:"pegs"`
}

// NewEngine returns an engine showing a fresh board that waits for Reset.
func NewEngine(history archiver) *Engine {
	return &Engine{
		history: history,
		board:   entity.NewBoard(),
		state:   StateNotStarted,
		hints:   NewHintSequencer(false),
	}
}

// Reset archives the current game if it has moves and was not archived yet, then starts a new one.
func (that *Engine) Reset(withHints bool) *Result {
	result := &Result{}

	that.archive(result)

	that.board = entity.NewBoard()
	that.state = StateInProgress
	that.lossReason = ""
	that.selection = nil
	that.moves = nil
	that.hints = NewHintSequencer(withHints)
	that.archived = false

	result.emit(Event{Kind: EventGameStarted, Pegs: that.board.CountOccupied()})

	if withHints {
		that.showNextHint(result)
	} else {
		result.setStatus(SeverityInfo, "Select a peg to move.")
	}

	return result
}

// SelectCell selects, switches or toggles off the selected peg.
func (that *Engine) SelectCell(coord entity.Coordinate) (*Result, error) {
	result := &Result{}

	if err := that.confirmInProgress(result); err != nil {
		return result, err
	}

	if !coord.InBounds() || coord.IsCorner() {
		result.setStatus(SeverityError, "Invalid cell.")
		return result, fmt.Errorf("%w: %s", apperror.ErrInvalidCell, coord)
	}

	if that.selection != nil && *that.selection == coord {
		that.selection = nil
		result.emit(Event{Kind: EventSelectionChanged})
		result.setStatus(SeverityInfo, "Selection cleared. Choose a peg.")

		return result, nil
	}

	if that.board.CellState(coord) != entity.CellOccupied {
		result.setStatus(SeverityError, "Select a peg first.")
		return result, fmt.Errorf("%w: %s", apperror.ErrCellNotOccupied, coord)
	}

	switched := that.selection != nil
	that.selection = &coord

	result.emit(Event{
		Kind:         EventSelectionChanged,
		Selection:    &coord,
		Destinations: Destinations(that.board, coord),
	})

	if switched {
		result.setStatus(SeverityInfo, "New peg %s selected. Choose an empty destination.", coord)
	} else {
		result.setStatus(SeverityInfo, "Peg %s selected. Choose an empty destination.", coord)
	}

	return result, nil
}

// AttemptMove jumps the selected peg into to. A rejected move keeps the selection.
func (that *Engine) AttemptMove(to entity.Coordinate) (*Result, error) {
	result := &Result{}

	if err := that.confirmInProgress(result); err != nil {
		return result, err
	}

	if that.selection == nil {
		result.setStatus(SeverityError, "Select a peg first.")
		return result, apperror.ErrNoSelection
	}

	from := *that.selection

	move, err := Validate(that.board, from, to)
	if err != nil {
		result.setStatus(SeverityError, "Illegal move from %s to %s. Try again.", from, to)
		return result, err
	}

	if err = Apply(that.board, move); err != nil {
		return result, fmt.Errorf("failed to apply move: %w", err)
	}

	record := entity.MoveRecord{Move: move, PegsRemaining: that.board.CountOccupied()}
	that.moves = append(that.moves, record)
	that.selection = nil

	result.emit(cellUpdated(move.From, entity.CellEmpty))
	result.emit(cellUpdated(move.Over, entity.CellEmpty))
	result.emit(cellUpdated(move.To, entity.CellOccupied))
	result.emit(Event{Kind: EventMoveApplied, Move: &record, Pegs: record.PegsRemaining})
	result.emit(Event{Kind: EventSelectionChanged})

	deviated := that.hints.OnMoveApplied(move) == HintDeviated
	if deviated {
		result.emit(Event{Kind: EventHintDeviated})
	}

	if that.evaluate(result) {
		return result, nil
	}

	switch {
	case deviated:
		result.setStatus(SeverityWarning, "You left the hint sequence! Hints disabled.")
	case that.hints.Active():
		that.showNextHint(result)
	default:
		result.setStatus(SeverityInfo, "Move made. Select the next peg.")
	}

	return result, nil
}

// SelectOrMove is the single click intent: it selects pegs and jumps into empty holes.
func (that *Engine) SelectOrMove(coord entity.Coordinate) (*Result, error) {
	if that.state != StateInProgress || that.selection == nil {
		return that.SelectCell(coord)
	}

	if that.board.CellState(coord) == entity.CellEmpty {
		return that.AttemptMove(coord)
	}

	return that.SelectCell(coord)
}

func (that *Engine) Session() Session {
	session := Session{
		Board:      that.board.Rows(),
		State:      that.state,
		Started:    that.state != StateNotStarted,
		Ended:      that.state == StateWon || that.state == StateLost,
		LossReason: that.lossReason,
		Moves:      append([]entity.MoveRecord{}, that.moves...),
		Hint:       that.hints.State(),
		Pegs:       that.board.CountOccupied(),
	}

	if that.selection != nil {
		selection := *that.selection
		session.Selection = &selection
		session.Destinations = Destinations(that.board, selection)
	}

	if hint, ok := that.hints.PeekExpected(); ok {
		session.NextHint = &hint
	}

	return session
}

func (that *Engine) confirmInProgress(result *Result) error {
	switch that.state {
	case StateInProgress:
		return nil
	case StateNotStarted:
		result.setStatus(SeverityWarning, "The game has not started. Start a game with or without hints.")
		return apperror.ErrGameIsNotStarted
	default:
		result.setStatus(SeverityWarning, "The game is over. Start a new game.")
		return apperror.ErrGameFinished
	}
}

// evaluate ends the game when it is won or no jump is left, and reports whether it ended.
func (that *Engine) evaluate(result *Result) bool {
	state, reason := Evaluate(that.board)
	if state == StateInProgress {
		return false
	}

	pegs := that.board.CountOccupied()
	that.state = state
	that.lossReason = reason

	result.emit(Event{Kind: EventGameEnded, Outcome: state, Reason: reason, Pegs: pegs})

	switch reason {
	case LossSinglePegOffCenter:
		result.setStatus(SeverityFinal, "Game over! One peg left, off the center.")
	case LossNoMovesLeft:
		result.setStatus(SeverityFinal, "Game over! No moves left. %d pegs remain.", pegs)
	default:
		result.setStatus(SeveritySuccess, "Congratulations! You won!")
	}

	that.archive(result)

	return true
}

func (that *Engine) archive(result *Result) {
	if that.archived || that.state == StateNotStarted || len(that.moves) == 0 {
		return
	}

	if _, ok := that.history.Archive(that.moves, that.board.CountOccupied()); !ok {
		return
	}

	that.archived = true
	result.Archived = true
	result.emit(Event{Kind: EventGameArchived, Pegs: that.board.CountOccupied()})
}

func (that *Engine) showNextHint(result *Result) {
	if that.hints.Completed() {
		result.emit(Event{Kind: EventHintCompleted})
		result.setStatus(SeverityInfo, "Hint sequence complete! Keep playing.")

		return
	}

	hint, ok, err := that.hints.Next(that.board)
	if err != nil {
		result.HintErr = err
		result.emit(Event{Kind: EventHintDisabled})
		result.setStatus(SeverityError, "Internal error in the hint sequence. Hints disabled.")

		return
	}

	if !ok {
		return
	}

	step := that.hints.State().NextIndex + 1
	result.emit(Event{Kind: EventHintNext, Hint: &hint, HintStep: step})
	result.setStatus(SeverityInfo, "Hint %d/%d: move %s to %s.", step, SolutionLength, hint.From, hint.To)
}

// Evaluate classifies a board: won with a single peg in the center, lost when no jump is left.
func Evaluate(board *entity.Board) (State, LossReason) {
	pegs := board.CountOccupied()

	if pegs == 1 && board.CellState(entity.Center) == entity.CellOccupied {
		return StateWon, ""
	}

	if HasLegalMove(board) {
		return StateInProgress, ""
	}

	if pegs == 1 {
		return StateLost, LossSinglePegOffCenter
	}

	return StateLost, LossNoMovesLeft
}
