package entity

import (
	"errors"
	"fmt"
)

const BoardSize = 7

var (
	ErrCornerCell = errors.New("corner cells never change")
	ErrOutOfBoard = errors.New("coordinate is outside the board")
)

// CellState is the content of a single hole on the board.
type CellState int

const (
	CellInvalid CellState = iota
	CellEmpty
	CellOccupied
)

func (that CellState) String() string {
	switch that {
	case CellEmpty:
		return "empty"
	case CellOccupied:
		return "peg"
	default:
		return "invalid"
	}
}

func (that CellState) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

// Coordinate addresses a cell by row and column, both in [0, BoardSize).
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Center is the only empty hole of a fresh board and the winning peg position.
var Center = Coordinate{Row: 3, Col: 3}

// the four 2x2 corner blocks that fall outside the cross.
var cornerCells = [16]Coordinate{
	{0, 0}, {0, 1}, {1, 0}, {1, 1},
	{0, 5}, {0, 6}, {1, 5}, {1, 6},
	{5, 0}, {5, 1}, {6, 0}, {6, 1},
	{5, 5}, {5, 6}, {6, 5}, {6, 6},
}

func (that Coordinate) InBounds() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

// IsCorner reports whether the coordinate belongs to the fixed invalid corner set.
func (that Coordinate) IsCorner() bool {
	for _, corner := range cornerCells {
		if corner == that {
			return true
		}
	}

	return false
}

// Add returns the coordinate shifted by the given row and column offsets.
func (that Coordinate) Add(dRow, dCol int) Coordinate {
	return Coordinate{Row: that.Row + dRow, Col: that.Col + dCol}
}

func (that Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

type Board struct {
	cells [BoardSize][BoardSize]CellState
}

// NewBoard returns the starting position: every playable hole holds a peg except the center.
func NewBoard() *Board {
	board := &Board{}

	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			board.cells[row][col] = CellOccupied
		}
	}

	for _, corner := range cornerCells {
		board.cells[corner.Row][corner.Col] = CellInvalid
	}

	board.cells[Center.Row][Center.Col] = CellEmpty

	return board
}

// CellState returns CellInvalid for coordinates outside the board.
func (that *Board) CellState(coord Coordinate) CellState {
	if !coord.InBounds() {
		return CellInvalid
	}

	return that.cells[coord.Row][coord.Col]
}

// SetState changes a playable cell. Corners and out-of-range coordinates are rejected,
// and no playable cell may become invalid.
func (that *Board) SetState(coord Coordinate, state CellState) error {
	if !coord.InBounds() {
		return fmt.Errorf("%w: %s", ErrOutOfBoard, coord)
	}

	if coord.IsCorner() || state == CellInvalid {
		return fmt.Errorf("%w: %s", ErrCornerCell, coord)
	}

	that.cells[coord.Row][coord.Col] = state

	return nil
}

func (that *Board) CountOccupied() int {
	count := 0

	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if that.cells[row][col] == CellOccupied {
				count++
			}
		}
	}

	return count
}

// Occupied lists every peg in row-major order.
func (that *Board) Occupied() []Coordinate {
	pegs := make([]Coordinate, 0, that.CountOccupied())

	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if that.cells[row][col] == CellOccupied {
				pegs = append(pegs, Coordinate{Row: row, Col: col})
			}
		}
	}

	return pegs
}

// Rows returns a copy of the grid, row by row.
func (that *Board) Rows() [BoardSize][BoardSize]CellState {
	return that.cells
}
