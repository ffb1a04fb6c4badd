package solitaire

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/pegsolitaire-backend/internal/apperror"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/entity"
)

var (
	ErrOriginNotOccupied   = errors.New("origin has no peg")
	ErrDestinationNotEmpty = errors.New("destination is not an empty hole")
	ErrNotStraightJump     = errors.New("move must be exactly two holes along a row or column")
	ErrNothingToJump       = errors.New("no peg to jump over")
)

// jump offsets: up, down, left, right.
var directions = [4][2]int{{-2, 0}, {2, 0}, {0, -2}, {0, 2}}

// Validate checks a jump against the board without changing it.
// Rejections wrap apperror.ErrIllegalMove and one of the reason errors above.
func Validate(board *entity.Board, from, to entity.Coordinate) (entity.Move, error) {
	if board.CellState(from) != entity.CellOccupied {
		return entity.Move{}, reject(ErrOriginNotOccupied, from, to)
	}

	if board.CellState(to) != entity.CellEmpty {
		return entity.Move{}, reject(ErrDestinationNotEmpty, from, to)
	}

	dRow, dCol := abs(to.Row-from.Row), abs(to.Col-from.Col)
	if !(dRow == 2 && dCol == 0) && !(dRow == 0 && dCol == 2) {
		return entity.Move{}, reject(ErrNotStraightJump, from, to)
	}

	move := entity.NewMove(from, to)
	if !move.Over.InBounds() || board.CellState(move.Over) != entity.CellOccupied {
		return entity.Move{}, reject(ErrNothingToJump, from, to)
	}

	return move, nil
}

// Destinations lists the holes the peg at origin can legally jump into.
func Destinations(board *entity.Board, origin entity.Coordinate) []entity.Coordinate {
	var result []entity.Coordinate

	for _, dir := range directions {
		to := origin.Add(dir[0], dir[1])
		if _, err := Validate(board, origin, to); err == nil {
			result = append(result, to)
		}
	}

	return result
}

// HasLegalMove reports whether any peg on the board can still jump.
func HasLegalMove(board *entity.Board) bool {
	for _, peg := range board.Occupied() {
		if len(Destinations(board, peg)) > 0 {
			return true
		}
	}

	return false
}

// Apply executes an already validated move.
func Apply(board *entity.Board, move entity.Move) error {
	if err := board.SetState(move.From, entity.CellEmpty); err != nil {
		return fmt.Errorf("failed to clear origin: %w", err)
	}

	if err := board.SetState(move.Over, entity.CellEmpty); err != nil {
		return fmt.Errorf("failed to remove jumped peg: %w", err)
	}

	if err := board.SetState(move.To, entity.CellOccupied); err != nil {
		return fmt.Errorf("failed to place peg: %w", err)
	}

	return nil
}

func reject(reason error, from, to entity.Coordinate) error {
	return fmt.Errorf("%w from %s to %s: %w", apperror.ErrIllegalMove, from, to, reason)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
