package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playpick/numtactoe/internal/apperror"
	"github.com/playpick/numtactoe/internal/entity"
)

type placement struct {
	row, col, value int
}

func boardWith(t *testing.T, placements ...placement) *entity.Board {
	t.Helper()

	board := entity.NewBoard()
	for _, p := range placements {
		piece := &entity.Piece{Value: p.value, Owner: entity.OwnerOf(p.value)}
		require.NoError(t, board.Place(p.row, p.col, piece))
	}

	return board
}

func TestValidateMove(t *testing.T) {
	t.Run("Accepts a legal move", func(t *testing.T) {
		board := boardWith(t)

		err := ValidateMove(board, entity.NewMove(0, 0, 5, entity.PlayerOneID))

		assert.NoError(t, err)
	})

	t.Run("Rejects an occupied square", func(t *testing.T) {
		board := boardWith(t, placement{0, 0, 1})

		err := ValidateMove(board, entity.NewMove(0, 0, 5, entity.PlayerOneID))

		require.ErrorIs(t, err, apperror.ErrSquareOccupied)
	})

	t.Run("Rejects an even value from player one", func(t *testing.T) {
		board := boardWith(t)

		err := ValidateMove(board, entity.NewMove(0, 0, 4, entity.PlayerOneID))

		require.ErrorIs(t, err, apperror.ErrWrongParity)
		assert.Equal(t, 0, board.OccupiedCount())
	})

	t.Run("Rejects a reused value regardless of target square", func(t *testing.T) {
		// Given: a 5 already placed at (1, 1)
		board := boardWith(t, placement{1, 1, 5})

		// When: player one plays 5 again at a different free square
		err := ValidateMove(board, entity.NewMove(2, 2, 5, entity.PlayerOneID))

		// Then: the move is rejected as already used
		require.ErrorIs(t, err, apperror.ErrValueAlreadyUsed)
		assert.Contains(t, err.Error(), "already used")
	})

	t.Run("Occupied square wins over wrong parity", func(t *testing.T) {
		// Given: a move that is wrong in every way, an occupied target
		// and a value the mover does not own
		board := boardWith(t, placement{0, 0, 1})

		// When: validating
		err := ValidateMove(board, entity.NewMove(0, 0, 2, entity.PlayerOneID))

		// Then: the occupied-square check fires first
		require.ErrorIs(t, err, apperror.ErrSquareOccupied)
	})

	t.Run("Wrong parity wins over value reuse", func(t *testing.T) {
		// Given: a 2 already on the board
		board := boardWith(t, placement{0, 0, 2})

		// When: player one replays the 2 on a free square
		err := ValidateMove(board, entity.NewMove(1, 1, 2, entity.PlayerOneID))

		// Then: the parity check fires before the reuse check
		require.ErrorIs(t, err, apperror.ErrWrongParity)
	})
}

func TestWinner(t *testing.T) {
	t.Run("No winner on an empty board", func(t *testing.T) {
		assert.Equal(t, 0, Winner(boardWith(t)))
	})

	t.Run("Detects a row summing to 15", func(t *testing.T) {
		board := boardWith(t, placement{0, 0, 8}, placement{0, 1, 3}, placement{0, 2, 4})

		assert.Equal(t, entity.PlayerTwoID, Winner(board))
	})

	t.Run("Detects a column summing to 15", func(t *testing.T) {
		board := boardWith(t, placement{0, 1, 1}, placement{1, 1, 5}, placement{2, 1, 9})

		assert.Equal(t, entity.PlayerOneID, Winner(board))
	})

	t.Run("Detects the anti-diagonal", func(t *testing.T) {
		board := boardWith(t, placement{0, 2, 6}, placement{1, 1, 2}, placement{2, 0, 7})

		// Owner of the line's first occupied square in scan order.
		assert.Equal(t, entity.PlayerTwoID, Winner(board))
	})

	t.Run("A partially filled line can win on sum alone", func(t *testing.T) {
		// Empty squares count as zero; the sum is all that is checked.
		board := boardWith(t, placement{0, 0, 9}, placement{0, 2, 6})

		assert.Equal(t, entity.PlayerOneID, Winner(board))
	})

	t.Run("Rows are scanned before columns and diagonals", func(t *testing.T) {
		// Given: row 1 (head owned by player two) and the main diagonal
		// (head owned by player one) both sum to 15
		board := boardWith(t,
			placement{0, 0, 9},
			placement{1, 0, 4}, placement{1, 1, 5}, placement{1, 2, 6},
			placement{2, 2, 1},
		)

		// Then: the row match is reported, not the diagonal
		assert.Equal(t, entity.PlayerTwoID, Winner(board))
	})

	t.Run("No winner when no line reaches 15", func(t *testing.T) {
		board := boardWith(t, placement{0, 0, 9}, placement{0, 1, 2})

		assert.Equal(t, 0, Winner(board))
	})
}

func TestIsStalemate(t *testing.T) {
	t.Run("Full board with no 15 line is a stalemate", func(t *testing.T) {
		board := boardWith(t,
			placement{0, 0, 2}, placement{0, 1, 9}, placement{0, 2, 7},
			placement{1, 0, 4}, placement{1, 1, 3}, placement{1, 2, 1},
			placement{2, 0, 8}, placement{2, 1, 6}, placement{2, 2, 5},
		)

		require.Equal(t, 0, Winner(board))
		assert.True(t, IsStalemate(board))
	})

	t.Run("A board with free squares is not a stalemate", func(t *testing.T) {
		board := boardWith(t, placement{0, 0, 1})

		assert.False(t, IsStalemate(board))
	})

	t.Run("A won full board is not a stalemate", func(t *testing.T) {
		board := boardWith(t,
			placement{0, 0, 8}, placement{0, 1, 3}, placement{0, 2, 4},
			placement{1, 0, 1}, placement{1, 1, 5}, placement{1, 2, 2},
			placement{2, 0, 6}, placement{2, 1, 7}, placement{2, 2, 9},
		)

		require.NotEqual(t, 0, Winner(board))
		assert.False(t, IsStalemate(board))
	})
}

func TestValidateMoveCommand(t *testing.T) {
	t.Run("Accepts a well-formed command", func(t *testing.T) {
		assert.NoError(t, ValidateMoveCommand([]string{"m", "1", "3", "9"}))
	})

	cases := []struct {
		name   string
		tokens []string
	}{
		{"too few tokens", []string{"m", "1", "2"}},
		{"too many tokens", []string{"m", "1", "2", "3", "4"}},
		{"wrong literal", []string{"x", "1", "2", "3"}},
		{"row out of range", []string{"m", "4", "1", "3"}},
		{"row not a number", []string{"m", "a", "1", "3"}},
		{"column out of range", []string{"m", "1", "0", "3"}},
		{"value out of range", []string{"m", "1", "1", "10"}},
	}

	for _, tc := range cases {
		t.Run("Rejects "+tc.name, func(t *testing.T) {
			err := ValidateMoveCommand(tc.tokens)

			require.ErrorIs(t, err, apperror.ErrBadMoveCommand)
		})
	}
}

func TestParseMoveCommand(t *testing.T) {
	t.Run("Converts 1-based coordinates to 0-based", func(t *testing.T) {
		move, err := ParseMoveCommand([]string{"m", "2", "3", "5"}, entity.PlayerOneID)

		require.NoError(t, err)
		assert.Equal(t, 1, move.Row)
		assert.Equal(t, 2, move.Col)
		assert.Equal(t, 5, move.Value)
		assert.Equal(t, entity.PlayerOneID, move.PlayerID)
	})

	t.Run("Row and column use the same conversion", func(t *testing.T) {
		// The conversion helper is shared: coordinate n maps to n-1 no
		// matter whether it arrived as a row or a column.
		move, err := ParseMoveCommand([]string{"m", "3", "3", "7"}, entity.PlayerOneID)

		require.NoError(t, err)
		assert.Equal(t, move.Row, move.Col)
	})

	t.Run("Propagates format errors", func(t *testing.T) {
		_, err := ParseMoveCommand([]string{"undo"}, entity.PlayerOneID)

		require.ErrorIs(t, err, apperror.ErrBadMoveCommand)
	})
}
