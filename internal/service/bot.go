package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/solvedgames/tictactoe/internal/engine"
	"github.com/solvedgames/tictactoe/internal/entity"
)

var (
	ErrBotNotFound      = errors.New("bot player not found")
	ErrNoAvailableMoves = errors.New("no available moves")
)

type BotService interface {
	MakeTurn(game *entity.Game) (int, error)
}

type botService struct {
	logger *slog.Logger
	engine *engine.Engine
}

func NewBotService(logger *slog.Logger, searchEngine *engine.Engine) BotService {
	return &botService{
		logger: logger.With("component", "bot"),
		engine: searchEngine,
	}
}

// MakeTurn - plays one optimal move for the bot side and returns the
// chosen cell.
func (that *botService) MakeTurn(game *entity.Game) (int, error) {
	botPlayer := game.BotPlayer()
	if botPlayer == nil {
		return engine.NoMove, ErrBotNotFound
	}

	availableCells := game.AvailableCells()
	if len(availableCells) == 0 {
		return engine.NoMove, ErrNoAvailableMoves
	}

	opponentMark := game.OpponentMark(botPlayer.Mark)

	cell, ok := that.engine.BestMove(game.Board, botPlayer.Mark, opponentMark)
	if !ok {
		// only reachable on a board that is already decided; any empty
		// cell keeps the turn legal
		cell = availableCells[0]
		that.logger.Warn("search found no move, falling back to first empty cell", "cell", cell)
	}

	if err := game.MakeTurn(botPlayer.Mark, cell); err != nil {
		return engine.NoMove, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return cell, nil
}
