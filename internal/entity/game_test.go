package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playpick/numtactoe/internal/apperror"
)

func newTestPlayers() []*Player {
	return []*Player{
		NewPlayer(PlayerOneID, "Alice", KindHuman),
		NewPlayer(PlayerTwoID, "Bob", KindHuman),
	}
}

func TestNewGame(t *testing.T) {
	t.Run("Creates an in-progress game at turn 0", func(t *testing.T) {
		// When: creating a game with a board and two players
		game, err := NewGame(DefaultMode, NewBoard(), newTestPlayers())

		// Then: the game starts in progress with player one active
		require.NoError(t, err)
		assert.Equal(t, StatusInProgress, game.Status)
		assert.Equal(t, 0, game.Turn)
		assert.Equal(t, PlayerOneID, game.ActivePlayer().ID)
	})

	t.Run("Fails without a board", func(t *testing.T) {
		_, err := NewGame(DefaultMode, nil, newTestPlayers())

		require.ErrorIs(t, err, ErrMissingBoard)
	})

	t.Run("Fails without two players", func(t *testing.T) {
		_, err := NewGame(DefaultMode, NewBoard(), []*Player{NewPlayer(PlayerOneID, "Alice", KindHuman)})

		require.ErrorIs(t, err, ErrMissingPlayers)
	})
}

func TestGame_AdvanceTurn(t *testing.T) {
	// Given: a fresh game
	game, err := NewGame(DefaultMode, NewBoard(), newTestPlayers())
	require.NoError(t, err)

	// When: advancing twice
	game.AdvanceTurn()
	assert.Equal(t, PlayerTwoID, game.ActivePlayer().ID)
	game.AdvanceTurn()

	// Then: the counter grew and the active player wrapped around
	assert.Equal(t, 2, game.Turn)
	assert.Equal(t, PlayerOneID, game.ActivePlayer().ID)
}

func TestGame_Quit(t *testing.T) {
	t.Run("Quits an in-progress game", func(t *testing.T) {
		game, err := NewGame(DefaultMode, NewBoard(), newTestPlayers())
		require.NoError(t, err)

		require.NoError(t, game.Quit())

		assert.Equal(t, StatusQuit, game.Status)
		assert.True(t, game.IsFinished())
	})

	t.Run("Cannot quit a won game", func(t *testing.T) {
		game, err := NewGame(DefaultMode, NewBoard(), newTestPlayers())
		require.NoError(t, err)
		game.MarkWon(PlayerOneID)

		err = game.Quit()

		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, StatusWon, game.Status)
	})

	t.Run("Cannot quit a drawn game", func(t *testing.T) {
		game, err := NewGame(DefaultMode, NewBoard(), newTestPlayers())
		require.NoError(t, err)
		game.MarkDraw()

		err = game.Quit()

		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestGame_ConfirmInProgress(t *testing.T) {
	t.Run("Returns nil while in progress", func(t *testing.T) {
		game, err := NewGame(DefaultMode, NewBoard(), newTestPlayers())
		require.NoError(t, err)

		assert.NoError(t, game.ConfirmInProgress())
	})

	t.Run("Returns ErrGameFinished after a win", func(t *testing.T) {
		game, err := NewGame(DefaultMode, NewBoard(), newTestPlayers())
		require.NoError(t, err)
		game.MarkWon(PlayerTwoID)

		assert.ErrorIs(t, game.ConfirmInProgress(), apperror.ErrGameFinished)
	})

	t.Run("Returns an error for an unknown status", func(t *testing.T) {
		game, err := NewGame(DefaultMode, NewBoard(), newTestPlayers())
		require.NoError(t, err)
		game.Status = "unknown"

		err = game.ConfirmInProgress()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown game status")
	})
}

func TestGame_Clone(t *testing.T) {
	// Given: a game with a placed piece and a spent pool value
	game, err := NewGame(DefaultMode, NewBoard(), newTestPlayers())
	require.NoError(t, err)
	require.NoError(t, game.Board.Place(0, 0, &Piece{Value: 5, Owner: PlayerOneID}))
	game.Players[0].TakePiece(5)
	game.AdvanceTurn()

	// When: cloning and mutating the clone
	clone := game.Clone()
	clone.Status = StatusQuit
	require.NoError(t, clone.Board.Place(1, 1, &Piece{Value: 2, Owner: PlayerTwoID}))
	clone.Players[0].TakePiece(7)

	// Then: the live game is unaffected
	assert.Equal(t, StatusInProgress, game.Status)
	assert.Equal(t, 1, game.Board.OccupiedCount())
	assert.True(t, game.Players[0].HasPiece(7))
	assert.False(t, game.Players[0].HasPiece(5))
	assert.Equal(t, 1, game.Turn)
	assert.Equal(t, clone.Turn, game.Turn)
}

func TestPlayer_Pools(t *testing.T) {
	t.Run("Player one starts with the odd values", func(t *testing.T) {
		player := NewPlayer(PlayerOneID, "Alice", KindHuman)

		assert.Equal(t, []int{1, 3, 5, 7, 9}, player.Pieces)
	})

	t.Run("Player two starts with the even values", func(t *testing.T) {
		player := NewPlayer(PlayerTwoID, "Bob", KindBot)

		assert.Equal(t, []int{2, 4, 6, 8}, player.Pieces)
		assert.True(t, player.IsBot())
	})

	t.Run("TakePiece removes a value once", func(t *testing.T) {
		player := NewPlayer(PlayerOneID, "Alice", KindHuman)

		player.TakePiece(3)
		player.TakePiece(3)

		assert.Equal(t, []int{1, 5, 7, 9}, player.Pieces)
	})
}

func TestOwnerOf(t *testing.T) {
	// Parity rule: odd values belong to player one, even to player two.
	assert.Equal(t, PlayerOneID, OwnerOf(9))
	assert.Equal(t, PlayerTwoID, OwnerOf(4))
}
