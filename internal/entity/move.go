package entity

// InitialPegs is the peg count of a fresh board: 49 cells, 16 corners, one empty center.
const InitialPegs = BoardSize*BoardSize - len(cornerCells) - 1

// Move is a jump from From over Over into To. Over is always the midpoint of From and To.
type Move struct {
	From Coordinate `json:"from"`
	Over Coordinate `json:"over"`
	To   Coordinate `json:"to"`
}

// NewMove builds a move from its endpoints, deriving the jumped cell.
func NewMove(from, to Coordinate) Move {
	return Move{
		From: from,
		Over: Coordinate{Row: (from.Row + to.Row) / 2, Col: (from.Col + to.Col) / 2},
		To:   to,
	}
}

// SameJump compares endpoints only; the jumped cell follows from them.
func (that Move) SameJump(other Move) bool {
	return that.From == other.From && that.To == other.To
}

func (that Move) String() string {
	return that.From.String() + " -> " + that.To.String()
}

// MoveRecord is one entry of a game's move log.
type MoveRecord struct {
	Move
	PegsRemaining int `json:"pegs_remaining"`
}
