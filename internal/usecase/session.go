package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/playpick/numtactoe/internal/entity"
	"github.com/playpick/numtactoe/internal/history"
	"github.com/playpick/numtactoe/internal/repository"
	"github.com/playpick/numtactoe/internal/rules"
	"github.com/playpick/numtactoe/internal/serializer"
)

var (
	ErrMissingLogger    = errors.New("session requires a logger")
	ErrMissingGame      = errors.New("session requires a game")
	ErrMissingSnapshots = errors.New("session requires a snapshot repository")
)

// Session drives a single active game: it validates candidate moves,
// applies them, keeps the undo/redo journal in step, and saves or
// restores the snapshot. One session is active at a time; there is no
// locking inside.
type Session struct {
	logger *slog.Logger

	game      *entity.Game
	journal   *history.Journal
	codec     *serializer.Serializer
	snapshots repository.SnapshotRepository
}

func NewSession(logger *slog.Logger, game *entity.Game, snapshots repository.SnapshotRepository) (*Session, error) {
	if logger == nil {
		return nil, ErrMissingLogger
	}

	if game == nil {
		return nil, ErrMissingGame
	}

	if snapshots == nil {
		return nil, ErrMissingSnapshots
	}

	journal, err := history.NewJournal(game)
	if err != nil {
		return nil, fmt.Errorf("failed to create journal: %w", err)
	}

	return &Session{
		logger:    logger.With("component", "session"),
		game:      game,
		journal:   journal,
		codec:     serializer.New(logger),
		snapshots: snapshots,
	}, nil
}

// Game exposes the live state to collaborators. Rendering reads it;
// nothing outside the session should mutate it.
func (that *Session) Game() *entity.Game {
	return that.game
}

func (that *Session) Journal() *history.Journal {
	return that.journal
}

// ParseMove turns a textual move command into a candidate move for the
// active player, converting the 1-based coordinates.
func (that *Session) ParseMove(text string) (*entity.Move, error) {
	return rules.ParseMoveCommand(strings.Fields(text), that.game.ActivePlayer().ID)
}

// Apply validates and applies a candidate move. A rejected move leaves
// every piece of state untouched. An accepted move places the piece,
// spends it from the mover's pool, re-evaluates win/draw, advances the
// turn and commits the (move, snapshot) pair to the journal.
func (that *Session) Apply(move *entity.Move) error {
	if err := that.game.ConfirmInProgress(); err != nil {
		return err
	}

	if err := rules.ValidateMove(that.game.Board, move); err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	piece := &entity.Piece{Value: move.Value, Owner: move.PlayerID}
	if err := that.game.Board.Place(move.Row, move.Col, piece); err != nil {
		return fmt.Errorf("failed to place piece: %w", err)
	}

	if mover := that.game.PlayerByID(move.PlayerID); mover != nil {
		mover.TakePiece(move.Value)
	}

	switch winner := rules.Winner(that.game.Board); {
	case winner != 0:
		that.game.MarkWon(winner)
		that.logger.Info("game won", "winner", winner, "turn", that.game.Turn)
	case rules.IsStalemate(that.game.Board):
		that.game.MarkDraw()
		that.logger.Info("game drawn", "turn", that.game.Turn)
	default:
		that.game.AdvanceTurn()
	}

	that.journal.Commit(move, that.game)

	return nil
}

// Undo rewinds one move and returns the restored state.
func (that *Session) Undo() (*entity.Game, error) {
	state, err := that.journal.Undo()
	if err != nil {
		return nil, err
	}

	that.game = state

	return state, nil
}

// Redo replays one previously undone move and returns the restored state.
func (that *Session) Redo() (*entity.Game, error) {
	state, err := that.journal.Redo()
	if err != nil {
		return nil, err
	}

	that.game = state

	return state, nil
}

// Quit aborts the session; only an in-progress game can be quit.
func (that *Session) Quit() error {
	if err := that.game.Quit(); err != nil {
		return err
	}

	that.logger.Info("game quit", "turn", that.game.Turn)

	return nil
}

// Save overwrites the single snapshot for this game type.
func (that *Session) Save(ctx context.Context) error {
	payload := that.codec.Encode(that.game)

	if err := that.snapshots.Save(ctx, entity.GameTypeName, payload); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	that.logger.Info("snapshot saved", "turn", that.game.Turn)

	return nil
}

// Load replaces the live state with the stored snapshot. Players are
// rebuilt with fresh pools before decoding so the serializer can
// reconcile them against the board. History never survives a load.
func (that *Session) Load(ctx context.Context) error {
	payload, err := that.snapshots.Load(ctx, entity.GameTypeName)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	players := make([]*entity.Player, len(that.game.Players))
	for i, player := range that.game.Players {
		players[i] = entity.NewPlayer(player.ID, player.Name, player.Kind)
	}

	game, err := that.codec.Decode(payload, players)
	if err != nil {
		return fmt.Errorf("failed to decode snapshot: %w", err)
	}

	that.game = game
	that.journal.Clear(game)

	that.logger.Info("snapshot loaded", "turn", game.Turn)

	return nil
}

// Restart begins a fresh round with the same players and mode.
func (that *Session) Restart() error {
	players := make([]*entity.Player, len(that.game.Players))
	for i, player := range that.game.Players {
		players[i] = entity.NewPlayer(player.ID, player.Name, player.Kind)
	}

	game, err := entity.NewGame(that.game.Mode, entity.NewBoard(), players)
	if err != nil {
		return fmt.Errorf("failed to restart game: %w", err)
	}

	that.game = game
	that.journal.Clear(game)

	return nil
}
