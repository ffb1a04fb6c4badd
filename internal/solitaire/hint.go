package solitaire

import (
	"fmt"

	"github.com/rocketscienceinc/pegsolitaire-backend/internal/apperror"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/entity"
)

// solutionSteps is a 31-jump solution from the starting board ending with one peg in the center.
// Format: fromRow, fromCol, toRow, toCol.
var solutionSteps = [...][4]int{
	{5, 3, 3, 3}, {4, 1, 4, 3}, {2, 1, 4, 1}, {4, 0, 4, 2}, {2, 0, 4, 0},
	{4, 3, 4, 1}, {4, 0, 4, 2}, {2, 3, 2, 1}, {0, 2, 2, 2}, {0, 4, 0, 2},
	{1, 4, 1, 2}, {2, 1, 2, 3}, {0, 2, 2, 2}, {4, 5, 4, 3}, {6, 4, 4, 4},
	{6, 2, 6, 4}, {3, 4, 5, 4}, {6, 4, 4, 4}, {4, 3, 4, 5}, {4, 6, 4, 4},
	{3, 6, 3, 4}, {3, 4, 1, 4}, {2, 6, 2, 4}, {1, 4, 3, 4}, {3, 2, 1, 2},
	{5, 2, 3, 2}, {4, 4, 2, 4}, {2, 4, 2, 2}, {3, 3, 3, 1}, {1, 2, 3, 2},
	{3, 1, 3, 3},
}

// SolutionLength is the number of scripted hint steps.
const SolutionLength = len(solutionSteps)

// Solution returns the scripted hint sequence.
func Solution() []entity.Move {
	moves := make([]entity.Move, 0, SolutionLength)

	for _, step := range solutionSteps {
		from := entity.Coordinate{Row: step[0], Col: step[1]}
		to := entity.Coordinate{Row: step[2], Col: step[3]}
		moves = append(moves, entity.NewMove(from, to))
	}

	return moves
}

// HintState is the assisted-mode bookkeeping of one session.
type HintState struct {
	Enabled   bool `json:"enabled"`
	NextIndex int  `json:"next_index"`
	Deviated  bool `json:"deviated"`
}

type HintOutcome int

const (
	// HintInactive means hints were off, already deviated or already exhausted.
	HintInactive HintOutcome = iota
	HintAdvanced
	HintDeviated
)

// HintSequencer walks the scripted solution and stops for good once the player leaves it.
type HintSequencer struct {
	solution []entity.Move
	state    HintState
}

func NewHintSequencer(enabled bool) *HintSequencer {
	return &HintSequencer{
		solution: Solution(),
		state:    HintState{Enabled: enabled},
	}
}

func (that *HintSequencer) State() HintState {
	return that.state
}

// Active reports whether hints are still being offered.
func (that *HintSequencer) Active() bool {
	return that.state.Enabled && !that.state.Deviated
}

// Completed reports whether the player followed every scripted step.
func (that *HintSequencer) Completed() bool {
	return that.Active() && that.state.NextIndex >= len(that.solution)
}

// PeekExpected returns the next scripted move, or false when the sequence is exhausted or hints are off.
func (that *HintSequencer) PeekExpected() (entity.Move, bool) {
	if !that.Active() || that.state.NextIndex >= len(that.solution) {
		return entity.Move{}, false
	}

	return that.solution[that.state.NextIndex], true
}

// OnMoveApplied advances on a matching jump; any other jump marks the session as deviated.
func (that *HintSequencer) OnMoveApplied(actual entity.Move) HintOutcome {
	expected, ok := that.PeekExpected()
	if !ok {
		return HintInactive
	}

	if !expected.SameJump(actual) {
		that.state.Deviated = true
		return HintDeviated
	}

	that.state.NextIndex++

	return HintAdvanced
}

// Next returns the hint to show against the live board. A scripted step that is not
// legal on the board disables hints for the rest of the session and returns apperror.ErrHintDesync.
func (that *HintSequencer) Next(board *entity.Board) (entity.Move, bool, error) {
	expected, ok := that.PeekExpected()
	if !ok {
		return entity.Move{}, false, nil
	}

	if _, err := Validate(board, expected.From, expected.To); err != nil {
		that.state.Enabled = false
		that.state.Deviated = true

		return entity.Move{}, false, fmt.Errorf("%w: step %d %s: %w", apperror.ErrHintDesync, that.state.NextIndex+1, expected, err)
	}

	return expected, true, nil
}
