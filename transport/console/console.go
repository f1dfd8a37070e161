package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/muesli/termenv"

	"github.com/playpick/numtactoe/internal/entity"
	"github.com/playpick/numtactoe/internal/rules"
	"github.com/playpick/numtactoe/internal/service"
)

// session is the slice of the usecase surface the console needs.
type session interface {
	Game() *entity.Game
	ParseMove(text string) (*entity.Move, error)
	Apply(move *entity.Move) error
	Undo() (*entity.Game, error)
	Redo() (*entity.Game, error)
	Quit() error
	Save(ctx context.Context) error
	Load(ctx context.Context) error
	Restart() error
}

// Server runs the interactive loop over stdin/stdout. It is a thin
// collaborator: every game decision goes through the session.
type Server struct {
	logger  *slog.Logger
	session session
	bot     service.BotService
	output  *termenv.Output
	input   *bufio.Scanner

	handlers map[string]func(ctx context.Context) error
}

func New(logger *slog.Logger, gameSession session, bot service.BotService, in io.Reader, out io.Writer) *Server {
	server := &Server{
		logger:  logger.With("component", "console"),
		session: gameSession,
		bot:     bot,
		output:  termenv.NewOutput(out),
		input:   bufio.NewScanner(in),

		handlers: make(map[string]func(context.Context) error),
	}

	server.handlers["undo"] = server.handleUndo
	server.handlers["redo"] = server.handleRedo
	server.handlers["save"] = server.handleSave
	server.handlers["load"] = server.handleLoad
	server.handlers["help"] = server.handleHelp
	server.handlers["finish"] = server.handleFinish

	return server
}

// Start runs the command loop until the game ends, the user quits, or
// the context is cancelled.
func (that *Server) Start(ctx context.Context) error {
	that.printHelp()
	that.printBoard()

	for that.session.Game().IsInProgress() {
		select {
		case <-ctx.Done():
			return that.session.Quit()
		default:
		}

		if that.session.Game().ActivePlayer().IsBot() {
			if err := that.playBotTurn(); err != nil {
				return err
			}
			continue
		}

		line, ok := that.readLine()
		if !ok {
			return that.session.Quit()
		}

		if err := that.dispatch(ctx, line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			that.printErr(err)
		}
	}

	that.printOutcome()

	return nil
}

var errQuit = errors.New("quit requested")

func (that *Server) dispatch(ctx context.Context, line string) error {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil
	}

	that.logger.Debug("dispatching command", "command", tokens[0])

	if tokens[0] == rules.MoveCommandLiteral {
		return that.handleMove(line)
	}

	if tokens[0] == "quit" {
		if err := that.session.Quit(); err != nil {
			return err
		}
		return errQuit
	}

	handler, ok := that.handlers[tokens[0]]
	if !ok {
		return fmt.Errorf("unknown command %q, type help", tokens[0])
	}

	return handler(ctx)
}

func (that *Server) handleMove(line string) error {
	move, err := that.session.ParseMove(line)
	if err != nil {
		return err
	}

	if err = that.session.Apply(move); err != nil {
		return err
	}

	that.printBoard()

	return nil
}

func (that *Server) playBotTurn() error {
	move, err := that.bot.PickMove(that.session.Game())
	if err != nil {
		return fmt.Errorf("bot turn failed: %w", err)
	}

	if err = that.session.Apply(move); err != nil {
		return fmt.Errorf("bot turn failed: %w", err)
	}

	fmt.Fprintf(that.output, "bot plays %d at (%d, %d)\n", move.Value, move.Row+1, move.Col+1)
	that.printBoard()

	return nil
}

func (that *Server) handleUndo(context.Context) error {
	if _, err := that.session.Undo(); err != nil {
		return err
	}

	that.printBoard()

	return nil
}

func (that *Server) handleRedo(context.Context) error {
	if _, err := that.session.Redo(); err != nil {
		return err
	}

	that.printBoard()

	return nil
}

func (that *Server) handleSave(ctx context.Context) error {
	return that.session.Save(ctx)
}

func (that *Server) handleLoad(ctx context.Context) error {
	if err := that.session.Load(ctx); err != nil {
		return err
	}

	that.printBoard()

	return nil
}

func (that *Server) handleHelp(context.Context) error {
	that.printHelp()
	return nil
}

func (that *Server) handleFinish(context.Context) error {
	if err := that.session.Restart(); err != nil {
		return err
	}

	that.printBoard()

	return nil
}

func (that *Server) readLine() (string, bool) {
	player := that.session.Game().ActivePlayer()
	prompt := that.output.String(fmt.Sprintf("%s> ", player.Name)).Bold()
	fmt.Fprint(that.output, prompt)

	if !that.input.Scan() {
		return "", false
	}

	return that.input.Text(), true
}

func (that *Server) printBoard() {
	game := that.session.Game()

	for row := 0; row < entity.BoardSize; row++ {
		cells := make([]string, 0, entity.BoardSize)
		for col := 0; col < entity.BoardSize; col++ {
			square, _ := game.Board.SquareAt(row, col)
			cells = append(cells, that.renderSquare(square))
		}
		fmt.Fprintln(that.output, " "+strings.Join(cells, " | "))
		if row < entity.BoardSize-1 {
			fmt.Fprintln(that.output, strings.Repeat("-", 4*entity.BoardSize-1))
		}
	}

	if game.IsInProgress() {
		fmt.Fprintf(that.output, "turn %d, %s to move\n", game.Turn, game.ActivePlayer().Name)
	}
}

func (that *Server) renderSquare(square *entity.Square) string {
	if !square.IsOccupied() {
		return " "
	}

	cell := that.output.String(fmt.Sprintf("%d", square.Piece.Value))
	if square.Piece.Owner == entity.PlayerOneID {
		return cell.Foreground(termenv.ANSIBrightCyan).String()
	}

	return cell.Foreground(termenv.ANSIBrightYellow).String()
}

func (that *Server) printOutcome() {
	game := that.session.Game()

	switch {
	case game.IsWon():
		winner := game.PlayerByID(game.Winner)
		banner := that.output.String(fmt.Sprintf("%s wins!", winner.Name)).Bold()
		fmt.Fprintln(that.output, banner)
	case game.IsDraw():
		fmt.Fprintln(that.output, "it's a draw")
	}
}

func (that *Server) printErr(err error) {
	msg := that.output.String(err.Error()).Foreground(termenv.ANSIRed)
	fmt.Fprintln(that.output, msg)
}

func (that *Server) printHelp() {
	fmt.Fprintln(that.output, "commands:")
	fmt.Fprintln(that.output, "  m <row> <col> <value>  place a value (1-based row/col)")
	fmt.Fprintln(that.output, "  undo | redo            step through move history")
	fmt.Fprintln(that.output, "  save | load            snapshot to storage and back")
	fmt.Fprintln(that.output, "  finish                 restart the round")
	fmt.Fprintln(that.output, "  quit                   abandon the game")
}
