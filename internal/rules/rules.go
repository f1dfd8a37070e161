package rules

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/playpick/numtactoe/internal/apperror"
	"github.com/playpick/numtactoe/internal/entity"
)

// TargetSum is the total a row, column or diagonal must reach to win.
const TargetSum = 15

const (
	// MoveCommandLiteral leads a textual move command: "m <row> <col> <value>".
	MoveCommandLiteral = "m"

	moveCommandTokens = 4

	MinValue = 1
	MaxValue = 9
)

var (
	ErrTokenCount   = errors.New("move command needs exactly 4 tokens")
	ErrNotMove      = errors.New("not a move command")
	ErrRowOutOfBand = errors.New("row must be between 1 and 3")
	ErrColOutOfBand = errors.New("column must be between 1 and 3")
	ErrBadValue     = errors.New("value must be between 1 and 9")
)

// Lines holds every winning line as board indexes in the fixed scan
// order: rows 0..2, columns 0..2, main diagonal, anti-diagonal. Winner
// returns the first match, so this order is a contract.
var Lines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// ValidateMove checks a candidate placement against the board. The
// check order is part of the contract: occupied square first, then
// parity, then value reuse; the first failure wins so rejection
// reasons stay deterministic.
func ValidateMove(board *entity.Board, move *entity.Move) error {
	square, err := board.SquareAt(move.Row, move.Col)
	if err != nil {
		return err
	}

	if square.IsOccupied() {
		return fmt.Errorf("%w: row %d col %d", apperror.ErrSquareOccupied, move.Row+1, move.Col+1)
	}

	if entity.OwnerOf(move.Value) != move.PlayerID {
		return fmt.Errorf("%w: value %d", apperror.ErrWrongParity, move.Value)
	}

	if board.HasValue(move.Value) {
		return fmt.Errorf("%w: value %d", apperror.ErrValueAlreadyUsed, move.Value)
	}

	return nil
}

// Winner scans the lines for a sum of TargetSum and returns the owning
// player id, or 0 when no line matches. Empty squares count as 0; the
// sum alone decides, occupancy of the full line is deliberately not
// required. The first matching line wins regardless of who moved last,
// and its owner is the owner of the line's first occupied square.
func Winner(board *entity.Board) int {
	for _, line := range Lines {
		sum := 0
		owner := 0
		for _, idx := range line {
			square, err := board.SquareAt(idx/entity.BoardSize, idx%entity.BoardSize)
			if err != nil {
				continue
			}
			if square.Piece == nil {
				continue
			}
			sum += square.Piece.Value
			if owner == 0 {
				owner = square.Piece.Owner
			}
		}

		if sum == TargetSum {
			return owner
		}
	}

	return 0
}

// IsStalemate reports a draw: every square occupied and no winner.
func IsStalemate(board *entity.Board) bool {
	return board.IsFull() && Winner(board) == 0
}

// ValidateMoveCommand checks the shape of a tokenized move command
// before it becomes a Move: exactly 4 tokens, the literal "m" first,
// then 1-based row, column and value within bounds.
func ValidateMoveCommand(tokens []string) error {
	if len(tokens) != moveCommandTokens {
		return fmt.Errorf("%w: %w, got %d", apperror.ErrBadMoveCommand, ErrTokenCount, len(tokens))
	}

	if tokens[0] != MoveCommandLiteral {
		return fmt.Errorf("%w: %w: %q", apperror.ErrBadMoveCommand, ErrNotMove, tokens[0])
	}

	row, err := strconv.Atoi(tokens[1])
	if err != nil || row < 1 || row > entity.BoardSize {
		return fmt.Errorf("%w: %w", apperror.ErrBadMoveCommand, ErrRowOutOfBand)
	}

	col, err := strconv.Atoi(tokens[2])
	if err != nil || col < 1 || col > entity.BoardSize {
		return fmt.Errorf("%w: %w", apperror.ErrBadMoveCommand, ErrColOutOfBand)
	}

	value, err := strconv.Atoi(tokens[3])
	if err != nil || value < MinValue || value > MaxValue {
		return fmt.Errorf("%w: %w", apperror.ErrBadMoveCommand, ErrBadValue)
	}

	return nil
}

// ParseMoveCommand turns validated tokens into a 0-based move for the
// given player. Row and column go through the same index conversion.
func ParseMoveCommand(tokens []string, playerID int) (*entity.Move, error) {
	if err := ValidateMoveCommand(tokens); err != nil {
		return nil, err
	}

	row, _ := strconv.Atoi(tokens[1])
	col, _ := strconv.Atoi(tokens[2])
	value, _ := strconv.Atoi(tokens[3])

	return entity.NewMove(entity.ToIndex(row), entity.ToIndex(col), value, playerID), nil
}
