package apperror

import "errors"

var (
	ErrSquareOccupied   = errors.New("square is already occupied")
	ErrWrongParity      = errors.New("value is not in your piece set")
	ErrValueAlreadyUsed = errors.New("value already used")
	ErrBadMoveCommand   = errors.New("malformed move command")

	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")

	ErrGameFinished = errors.New("game is already finished")

	ErrSnapshotNotFound = errors.New("snapshot not found")
)
