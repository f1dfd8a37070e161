package service

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/playpick/numtactoe/internal/entity"
)

var (
	ErrBotNotFound      = errors.New("bot player not found")
	ErrNoAvailableMoves = errors.New("no available moves")
)

// BotService produces a candidate move for the bot player. The move
// goes through the exact same validation path as a human one.
type BotService interface {
	PickMove(game *entity.Game) (*entity.Move, error)
}

type botService struct{}

func NewBotService() BotService {
	return &botService{}
}

// PickMove chooses a free square and one of the bot's remaining values
// uniformly at random.
func (that *botService) PickMove(game *entity.Game) (*entity.Move, error) {
	var botPlayer *entity.Player
	for _, player := range game.Players {
		if player.IsBot() {
			botPlayer = player
			break
		}
	}

	if botPlayer == nil {
		return nil, ErrBotNotFound
	}

	free := make([]*entity.Square, 0, entity.BoardSize*entity.BoardSize)
	for row := 0; row < entity.BoardSize; row++ {
		for col := 0; col < entity.BoardSize; col++ {
			square, err := game.Board.SquareAt(row, col)
			if err != nil {
				return nil, fmt.Errorf("failed to read square: %w", err)
			}
			if !square.IsOccupied() {
				free = append(free, square)
			}
		}
	}

	if len(free) == 0 || len(botPlayer.Pieces) == 0 {
		return nil, ErrNoAvailableMoves
	}

	square := free[rand.Intn(len(free))]                        //nolint: gosec // it's ok
	value := botPlayer.Pieces[rand.Intn(len(botPlayer.Pieces))] //nolint: gosec // it's ok

	return entity.NewMove(square.Row, square.Col, value, botPlayer.ID), nil
}
