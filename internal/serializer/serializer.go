package serializer

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/playpick/numtactoe/internal/entity"
)

const (
	// Delimiter separates every field of the snapshot blob and is
	// reserved: it may not appear in player names.
	Delimiter = "|"

	// EmptyMarker stands in for an unoccupied square.
	EmptyMarker = "-"
)

var ErrMissingPlayers = errors.New("decode requires the session players")

// Serializer encodes a game into the delimited snapshot text and back.
// Decoding is lenient: every missing or malformed field is reported
// through the logger and replaced with its documented default, never
// aborting the whole load.
type Serializer struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Serializer {
	return &Serializer{logger: logger.With("component", "serializer")}
}

// Encode writes the board squares in row-major order, then the current
// player name, the turn number, the current player name again, and the
// game mode. The duplicated name is part of the on-disk format.
func (that *Serializer) Encode(game *entity.Game) string {
	fields := make([]string, 0, entity.BoardSize*entity.BoardSize+4)

	for row := 0; row < entity.BoardSize; row++ {
		for col := 0; col < entity.BoardSize; col++ {
			square, _ := game.Board.SquareAt(row, col)
			if square.IsOccupied() {
				fields = append(fields, strconv.Itoa(square.Piece.Value))
			} else {
				fields = append(fields, EmptyMarker)
			}
		}
	}

	name := game.ActivePlayer().Name
	fields = append(fields, name, strconv.Itoa(game.Turn), name, game.Mode)

	return strings.Join(fields, Delimiter)
}

// Decode rebuilds a game from a snapshot blob against the given live
// players. Board squares with an unparsable value are skipped and
// logged, piece owners come from the parity rule, the current player
// falls back to the first player when the stored name is unknown, and
// turn/mode fall back to 0 and the default mode.
func (that *Serializer) Decode(blob string, players []*entity.Player) (*entity.Game, error) {
	if len(players) != 2 || players[0] == nil || players[1] == nil {
		return nil, ErrMissingPlayers
	}

	fields := strings.Split(blob, Delimiter)

	board := entity.NewBoard()
	boardFields := entity.BoardSize * entity.BoardSize

	for i := 0; i < boardFields; i++ {
		token := that.fieldAt(fields, i)
		if token == "" || token == EmptyMarker {
			continue
		}

		value, err := strconv.Atoi(token)
		if err != nil {
			that.logger.Warn("skipping unparsable board value", "field", i, "token", token)
			continue
		}

		row, col := i/entity.BoardSize, i%entity.BoardSize
		piece := &entity.Piece{Value: value, Owner: entity.OwnerOf(value)}
		if err = board.Place(row, col, piece); err != nil {
			that.logger.Warn("skipping board value", "field", i, "error", err)
		}
	}

	game, err := entity.NewGame(entity.DefaultMode, board, players)
	if err != nil {
		return nil, err
	}

	name := that.fieldAt(fields, boardFields)
	current := game.PlayerByName(name)
	if current.Name != name {
		that.logger.Warn("unknown current player name, using first player", "name", name)
	}
	for i, player := range players {
		if player == current {
			game.Current = i
		}
	}

	turnToken := that.fieldAt(fields, boardFields+1)
	turn, err := strconv.Atoi(turnToken)
	if err != nil {
		that.logger.Warn("unparsable turn number, defaulting to 0", "token", turnToken)
		turn = 0
	}
	game.Turn = turn

	// boardFields+2 repeats the current player name; skip it.

	mode := that.fieldAt(fields, boardFields+3)
	if mode != entity.ModePlayerVsPlayer && mode != entity.ModePlayerVsBot {
		that.logger.Warn("unknown game mode, using default", "mode", mode)
		mode = entity.DefaultMode
	}
	game.Mode = mode

	that.reconcilePools(game)

	return game, nil
}

func (that *Serializer) fieldAt(fields []string, i int) string {
	if i >= len(fields) {
		that.logger.Warn("snapshot field missing", "field", i)
		return ""
	}

	return fields[i]
}

// reconcilePools removes every placed value from its owner's remaining
// pool so a resumed game cannot replay a digit already on the board.
func (that *Serializer) reconcilePools(game *entity.Game) {
	for row := 0; row < entity.BoardSize; row++ {
		for col := 0; col < entity.BoardSize; col++ {
			square, _ := game.Board.SquareAt(row, col)
			if !square.IsOccupied() {
				continue
			}

			if owner := game.PlayerByID(square.Piece.Owner); owner != nil {
				owner.TakePiece(square.Piece.Value)
			}
		}
	}
}
