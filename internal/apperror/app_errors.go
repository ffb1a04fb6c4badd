package apperror

import "errors"

// user input errors.
var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrNoSelection      = errors.New("no peg is selected")
	ErrCellNotOccupied  = errors.New("cell has no peg")
	ErrInvalidCell      = errors.New("invalid cell")
	ErrIllegalMove      = errors.New("illegal move")
	ErrPastGameNotFound = errors.New("past game not found")
)

// internal consistency errors.
var ErrHintDesync = errors.New("hint sequence does not match the board")

// persistence errors.
var (
	ErrHistoryNotFound    = errors.New("history not found")
	ErrHistoryUnavailable = errors.New("history storage is unavailable")
	ErrHistoryMalformed   = errors.New("history document is malformed")
)
