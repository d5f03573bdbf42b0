package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/solvedgames/tictactoe/internal/apperror"
	"github.com/solvedgames/tictactoe/internal/engine"
	"github.com/solvedgames/tictactoe/internal/entity"
)

var ErrNoTurnHolder = errors.New("no player holds the current turn")

type gamePlay interface {
	NewGame(humanMark string, humanStarts bool) *entity.Game
	ResumeGame(ctx context.Context) (*entity.Game, error)

	HumanTurn(game *entity.Game, cell int) error
	BotTurn(game *entity.Game) (int, error)

	SaveGame(ctx context.Context, game *entity.Game) error
	FinishGame(ctx context.Context, game *entity.Game) error
}

type console interface {
	Render(board engine.Board)
	PromptMark() (string, error)
	PromptFirstMover() (bool, error)
	PromptMove(game *entity.Game) (int, error)
	PromptResume() (bool, error)
	PromptPlayAgain() (bool, error)
	Printf(format string, args ...any)
}

// GameManager owns the interactive session: one iteration of the outer
// loop per game, no recursion however many rematches are played.
type GameManager struct {
	logger   *slog.Logger
	gamePlay gamePlay
	console  console
}

func NewGameManager(logger *slog.Logger, gamePlay gamePlay, console console) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		gamePlay: gamePlay,
		console:  console,
	}
}

// Run - plays games until the player declines a rematch, quits, or the
// context is canceled.
func (that *GameManager) Run(ctx context.Context) error {
	that.console.Printf("Welcome to Tic-Tac-Toe (Unbeatable AI)\n\n")

	for {
		game, err := that.setupGame(ctx)
		if errors.Is(err, apperror.ErrPlayerQuit) {
			that.console.Printf("Goodbye.\n")
			return nil
		}

		if err != nil {
			return err
		}

		quit, err := that.playGame(ctx, game)
		if err != nil {
			return err
		}

		if quit {
			return nil
		}

		again, err := that.console.PromptPlayAgain()
		if err != nil && !errors.Is(err, apperror.ErrPlayerQuit) {
			return err
		}

		if err != nil || !again {
			that.console.Printf("Thanks for playing!\n")
			return nil
		}
	}
}

// setupGame - offers to resume a saved game, otherwise walks through the
// setup prompts for a fresh one.
func (that *GameManager) setupGame(ctx context.Context) (*entity.Game, error) {
	saved, err := that.gamePlay.ResumeGame(ctx)

	switch {
	case err == nil:
		resume, promptErr := that.console.PromptResume()
		if promptErr != nil {
			return nil, promptErr
		}

		if resume {
			return saved, nil
		}

		// a declined save is stale
		if err = that.gamePlay.FinishGame(ctx, saved); err != nil {
			return nil, fmt.Errorf("failed to discard saved game: %w", err)
		}
	case errors.Is(err, apperror.ErrGameNotFound):
	default:
		return nil, fmt.Errorf("failed to look up saved game: %w", err)
	}

	humanMark, err := that.console.PromptMark()
	if err != nil {
		return nil, err
	}

	humanStarts, err := that.console.PromptFirstMover()
	if err != nil {
		return nil, err
	}

	return that.gamePlay.NewGame(humanMark, humanStarts), nil
}

// playGame - alternates turns until the game finishes or the player
// leaves. quit reports that the whole session should end.
func (that *GameManager) playGame(ctx context.Context, game *entity.Game) (bool, error) {
	log := that.logger.With("game_id", game.ID)

	that.console.Render(game.Board)

	for {
		if ctx.Err() != nil {
			that.saveOnExit(context.WithoutCancel(ctx), game, log)
			return true, nil
		}

		if game.IsFinished() {
			that.announceResult(game)
			that.console.Render(game.Board)

			if err := that.gamePlay.FinishGame(ctx, game); err != nil {
				return false, fmt.Errorf("failed to clean up finished game: %w", err)
			}

			return false, nil
		}

		currentPlayer := game.PlayerByMark(game.Turn)
		if currentPlayer == nil {
			return false, fmt.Errorf("%w: %q", ErrNoTurnHolder, game.Turn)
		}

		if currentPlayer.IsBot() {
			that.console.Printf("AI thinking...\n")

			cell, err := that.gamePlay.BotTurn(game)
			if err != nil {
				return false, fmt.Errorf("bot turn failed: %w", err)
			}

			that.console.Printf("AI played at position %d.\n", cell+1)
		} else {
			that.console.Printf("Your turn.\n")

			cell, err := that.console.PromptMove(game)
			if errors.Is(err, apperror.ErrPlayerQuit) {
				that.saveOnExit(ctx, game, log)
				that.console.Printf("Goodbye.\n")
				return true, nil
			}

			if err != nil {
				return false, err
			}

			// the prompt already validated the cell, anything left is fatal
			if err = that.gamePlay.HumanTurn(game, cell); err != nil {
				return false, fmt.Errorf("human turn failed: %w", err)
			}
		}

		that.console.Render(game.Board)
	}
}

func (that *GameManager) saveOnExit(ctx context.Context, game *entity.Game, log *slog.Logger) {
	if err := that.gamePlay.SaveGame(ctx, game); err != nil {
		log.Error("could not save game on exit", "error", err)
		return
	}

	that.console.Printf("Game saved - run again to continue it.\n")
}

func (that *GameManager) announceResult(game *entity.Game) {
	if game.IsTie() {
		that.console.Printf("It's a draw!\n")
		return
	}

	that.console.Printf("%s wins!\n", game.Winner)
}
