package entity

// Move is a candidate placement. Row and Col are 0-based. Sequence is
// zero until the move is committed to history, where it is assigned
// exactly once.
type Move struct {
	Row      int
	Col      int
	Value    int
	PlayerID int
	Sequence int
}

func NewMove(row, col, value, playerID int) *Move {
	return &Move{
		Row:      row,
		Col:      col,
		Value:    value,
		PlayerID: playerID,
	}
}

func (that *Move) Clone() *Move {
	clone := *that
	return &clone
}
