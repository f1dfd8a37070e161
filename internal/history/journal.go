package history

import (
	"errors"

	"github.com/playpick/numtactoe/internal/apperror"
	"github.com/playpick/numtactoe/internal/entity"
)

var ErrMissingInitialState = errors.New("journal requires an initial state")

// Entry pairs a committed move with the game state snapshot taken
// right after the move was applied.
type Entry struct {
	Move  *entity.Move
	State *entity.Game
}

// Journal is the append-only move log with an undo/redo cursor. The
// cursor points at the entry whose snapshot matches the live session;
// -1 means the board is back at its initial state. The sentinel
// snapshot captured at construction serves the rewound-past-the-first-
// move case and is never mutated.
type Journal struct {
	entries  []Entry
	cursor   int
	sentinel *entity.Game
}

func NewJournal(initial *entity.Game) (*Journal, error) {
	if initial == nil {
		return nil, ErrMissingInitialState
	}

	return &Journal{
		cursor:   -1,
		sentinel: initial.Clone(),
	}, nil
}

// Commit records a move and its post-move state. When the cursor sits
// before the last entry, the abandoned redo branch is truncated first;
// a new move after an undo permanently discards the undone entries.
// The move's sequence number is assigned here, once, as the log length
// after truncation plus one.
func (that *Journal) Commit(move *entity.Move, state *entity.Game) {
	if that.cursor < len(that.entries)-1 {
		that.entries = that.entries[:that.cursor+1]
	}

	move.Sequence = len(that.entries) + 1

	that.entries = append(that.entries, Entry{
		Move:  move,
		State: state.Clone(),
	})
	that.cursor = len(that.entries) - 1
}

// Undo steps the cursor back and returns a clone of the state to
// restore. Stepping back past the first move returns the sentinel.
func (that *Journal) Undo() (*entity.Game, error) {
	if that.cursor < 0 {
		return nil, apperror.ErrNothingToUndo
	}

	if that.cursor == 0 {
		that.cursor = -1
		return that.sentinel.Clone(), nil
	}

	that.cursor--

	return that.entries[that.cursor].State.Clone(), nil
}

// Redo steps the cursor forward and returns a clone of the state to
// restore.
func (that *Journal) Redo() (*entity.Game, error) {
	if that.cursor >= len(that.entries)-1 {
		return nil, apperror.ErrNothingToRedo
	}

	that.cursor++

	return that.entries[that.cursor].State.Clone(), nil
}

// Clear drops every entry and rewinds the cursor; used after loading a
// snapshot or restarting a round. The sentinel is replaced so undo
// bottoms out at the freshly loaded state.
func (that *Journal) Clear(initial *entity.Game) {
	that.entries = nil
	that.cursor = -1
	if initial != nil {
		that.sentinel = initial.Clone()
	}
}

func (that *Journal) Len() int {
	return len(that.entries)
}

func (that *Journal) Cursor() int {
	return that.cursor
}

// Moves returns the committed moves up to the cursor, oldest first.
func (that *Journal) Moves() []*entity.Move {
	moves := make([]*entity.Move, 0, that.cursor+1)
	for i := 0; i <= that.cursor; i++ {
		moves = append(moves, that.entries[i].Move.Clone())
	}

	return moves
}
