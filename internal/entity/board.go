package entity

import (
	"errors"
	"fmt"

	"github.com/playpick/numtactoe/internal/apperror"
)

// BoardSize is fixed: the game is played on a 3x3 grid.
const BoardSize = 3

var ErrInvalidSquare = errors.New("invalid square coordinates")

// Piece is a digit placed on the board. Value is 1..9 and Owner is the
// id of the player the digit belongs to.
type Piece struct {
	Value int
	Owner int
}

// Square is a single board cell. Piece is nil while the square is free.
type Square struct {
	Row   int
	Col   int
	Piece *Piece
}

func (that *Square) IsOccupied() bool {
	return that.Piece != nil
}

// Board holds the squares in row-major order. Coordinates are 0-based
// everywhere inside the package; callers converting user input use
// ToIndex at the boundary.
type Board struct {
	squares [BoardSize * BoardSize]Square
}

func NewBoard() *Board {
	board := &Board{}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			board.squares[row*BoardSize+col] = Square{Row: row, Col: col}
		}
	}

	return board
}

// ToIndex converts a 1-based user coordinate to the 0-based internal
// one. The same conversion is applied to rows and columns alike.
func ToIndex(n int) int {
	return n - 1
}

func (that *Board) SquareAt(row, col int) (*Square, error) {
	if row < 0 || row >= BoardSize || col < 0 || col >= BoardSize {
		return nil, fmt.Errorf("%w: row %d col %d", ErrInvalidSquare, row, col)
	}

	return &that.squares[row*BoardSize+col], nil
}

// Place puts a piece on the square at (row, col).
func (that *Board) Place(row, col int, piece *Piece) error {
	square, err := that.SquareAt(row, col)
	if err != nil {
		return err
	}

	if square.IsOccupied() {
		return fmt.Errorf("%w: row %d col %d", apperror.ErrSquareOccupied, row, col)
	}

	square.Piece = piece

	return nil
}

// HasValue reports whether the value is already placed anywhere on the board.
func (that *Board) HasValue(value int) bool {
	for i := range that.squares {
		if that.squares[i].Piece != nil && that.squares[i].Piece.Value == value {
			return true
		}
	}

	return false
}

func (that *Board) IsFull() bool {
	for i := range that.squares {
		if that.squares[i].Piece == nil {
			return false
		}
	}

	return true
}

func (that *Board) OccupiedCount() int {
	count := 0
	for i := range that.squares {
		if that.squares[i].Piece != nil {
			count++
		}
	}

	return count
}

// ResetAll clears every square.
func (that *Board) ResetAll() {
	for i := range that.squares {
		that.squares[i].Piece = nil
	}
}

// Clone returns a fully independent copy: new squares, new pieces,
// same values and owners. Mutating the clone never touches the original.
func (that *Board) Clone() *Board {
	clone := &Board{}
	for i := range that.squares {
		clone.squares[i] = Square{Row: that.squares[i].Row, Col: that.squares[i].Col}
		if that.squares[i].Piece != nil {
			clone.squares[i].Piece = &Piece{
				Value: that.squares[i].Piece.Value,
				Owner: that.squares[i].Piece.Owner,
			}
		}
	}

	return clone
}
