package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/solvedgames/tictactoe/internal/engine"
	"github.com/solvedgames/tictactoe/internal/entity"
)

var ErrHumanNotFound = errors.New("human player not found")

type gameRepo interface {
	Save(ctx context.Context, game *entity.Game) error
	GetCurrent(ctx context.Context) (*entity.Game, error)
	Delete(ctx context.Context) error
}

type GamePlayService interface {
	NewGame(humanMark string, humanStarts bool) *entity.Game
	ResumeGame(ctx context.Context) (*entity.Game, error)

	HumanTurn(game *entity.Game, cell int) error
	BotTurn(game *entity.Game) (int, error)

	SaveGame(ctx context.Context, game *entity.Game) error
	FinishGame(ctx context.Context, game *entity.Game) error
}

type gamePlayService struct {
	logger *slog.Logger

	gameRepo   gameRepo
	botService BotService
	engine     *engine.Engine
}

func NewGamePlayService(logger *slog.Logger, repo gameRepo, botService BotService, searchEngine *engine.Engine) GamePlayService {
	return &gamePlayService{
		logger:     logger.With("component", "gameplay"),
		gameRepo:   repo,
		botService: botService,
		engine:     searchEngine,
	}
}

// NewGame - builds a fresh human-vs-bot game. The bot takes whichever
// mark the human did not pick; whoever starts plays their own mark first.
func (that *gamePlayService) NewGame(humanMark string, humanStarts bool) *entity.Game {
	botMark := entity.PlayerO
	if humanMark == entity.PlayerO {
		botMark = entity.PlayerX
	}

	human := &entity.Player{Name: "you", Mark: humanMark}
	bot := &entity.Player{Name: "ai", Mark: botMark, Bot: true}

	firstTurn := humanMark
	if !humanStarts {
		firstTurn = botMark
	}

	// cached search results from a previous game may map the maximizer
	// to the other mark
	that.engine.Reset()

	game := entity.NewGame(newGameID(), firstTurn, human, bot)
	that.logger.Debug("new game", "id", game.ID, "human", humanMark, "first_turn", firstTurn)

	return game
}

// ResumeGame - loads the saved unfinished game, if any. The search cache
// is reset because the saved game's mark assignment may differ from the
// last one played in this process.
func (that *gamePlayService) ResumeGame(ctx context.Context) (*entity.Game, error) {
	game, err := that.gameRepo.GetCurrent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get saved game: %w", err)
	}

	that.engine.Reset()
	that.logger.Debug("resumed game", "id", game.ID, "turn", game.Turn)

	return game, nil
}

func (that *gamePlayService) HumanTurn(game *entity.Game, cell int) error {
	humanPlayer := game.HumanPlayer()
	if humanPlayer == nil {
		return ErrHumanNotFound
	}

	if err := game.MakeTurn(humanPlayer.Mark, cell); err != nil {
		return fmt.Errorf("failed to make turn: %w", err)
	}

	return nil
}

func (that *gamePlayService) BotTurn(game *entity.Game) (int, error) {
	cell, err := that.botService.MakeTurn(game)
	if err != nil {
		return cell, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return cell, nil
}

func (that *gamePlayService) SaveGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.Save(ctx, game); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	return nil
}

// FinishGame - removes the saved copy of a game that reached a terminal
// state; finished games are never kept around.
func (that *gamePlayService) FinishGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete saved game: %w", err)
	}

	that.logger.Debug("game finished", "id", game.ID, "winner", game.Winner)

	return nil
}

// newGameID - generates a short numeric identifier for a game.
func newGameID() string {
	n, err := rand.Int(rand.Reader, big.NewInt(99999999))
	if err != nil {
		return "0"
	}

	return n.String()
}
