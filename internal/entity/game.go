package entity

import (
	"errors"
	"fmt"

	"github.com/playpick/numtactoe/internal/apperror"
)

const (
	StatusInProgress = "in_progress"
	StatusWon        = "won"
	StatusDraw       = "draw"
	StatusQuit       = "quit"
)

const (
	ModePlayerVsPlayer = "pvp"
	ModePlayerVsBot    = "bot"

	DefaultMode = ModePlayerVsPlayer

	// GameTypeName names the snapshot file: <GameTypeName>-GameSnapshot.txt.
	GameTypeName = "Numtactoe"
)

var (
	ErrUnknownGameStatus = errors.New("unknown game status")
	ErrMissingPlayers    = errors.New("game requires exactly two players")
	ErrMissingBoard      = errors.New("game requires a board")
)

// Game is the mutable session snapshot: status, turn counter, active
// player index, the board and both players. It is the unit of undo/redo
// and of persistence, so Clone must be a true deep copy.
type Game struct {
	Status  string
	Turn    int
	Current int
	Winner  int
	Mode    string
	Board   *Board
	Players []*Player
}

func NewGame(mode string, board *Board, players []*Player) (*Game, error) {
	if board == nil {
		return nil, ErrMissingBoard
	}

	if len(players) != 2 || players[0] == nil || players[1] == nil {
		return nil, ErrMissingPlayers
	}

	if mode == "" {
		mode = DefaultMode
	}

	return &Game{
		Status:  StatusInProgress,
		Mode:    mode,
		Board:   board,
		Players: players,
	}, nil
}

func (that *Game) ActivePlayer() *Player {
	return that.Players[that.Current]
}

// PlayerByID returns nil when no player carries the id.
func (that *Game) PlayerByID(id int) *Player {
	for _, player := range that.Players {
		if player.ID == id {
			return player
		}
	}

	return nil
}

// PlayerByName resolves a player by display name, falling back to the
// first player when the name is unknown.
func (that *Game) PlayerByName(name string) *Player {
	for _, player := range that.Players {
		if player.Name == name {
			return player
		}
	}

	return that.Players[0]
}

// AdvanceTurn bumps the turn counter and flips the active player index.
func (that *Game) AdvanceTurn() {
	that.Turn++
	that.Current = (that.Current + 1) % len(that.Players)
}

func (that *Game) MarkWon(winnerID int) {
	that.Status = StatusWon
	that.Winner = winnerID
}

func (that *Game) MarkDraw() {
	that.Status = StatusDraw
}

// Quit aborts an in-progress session. Finished games stay finished.
func (that *Game) Quit() error {
	if !that.IsInProgress() {
		return apperror.ErrGameFinished
	}

	that.Status = StatusQuit

	return nil
}

func (that *Game) IsInProgress() bool {
	return that.Status == StatusInProgress
}

func (that *Game) IsWon() bool {
	return that.Status == StatusWon
}

func (that *Game) IsDraw() bool {
	return that.Status == StatusDraw
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusDraw || that.Status == StatusQuit
}

func (that *Game) ConfirmInProgress() error {
	switch {
	case that.IsInProgress():
		return nil
	case that.IsFinished():
		return apperror.ErrGameFinished
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

// Clone returns an independent deep copy: new board, new pieces, new
// player pools. History snapshots rely on this never aliasing the live
// session objects.
func (that *Game) Clone() *Game {
	players := make([]*Player, len(that.Players))
	for i, player := range that.Players {
		players[i] = player.Clone()
	}

	return &Game{
		Status:  that.Status,
		Turn:    that.Turn,
		Current: that.Current,
		Winner:  that.Winner,
		Mode:    that.Mode,
		Board:   that.Board.Clone(),
		Players: players,
	}
}
