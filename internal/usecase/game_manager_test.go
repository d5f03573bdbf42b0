package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solvedgames/tictactoe/internal/apperror"
	"github.com/solvedgames/tictactoe/internal/engine"
	"github.com/solvedgames/tictactoe/internal/entity"
	"github.com/solvedgames/tictactoe/internal/repository"
	"github.com/solvedgames/tictactoe/internal/service"
)

// scriptedConsole drives the session loop in tests. Human moves come
// from its own search engine, so "the human" also plays perfectly.
type scriptedConsole struct {
	mark        string
	humanStarts bool
	resume      bool
	again       []bool

	moveEngine *engine.Engine
	quitAfter  int // quit on the n-th move prompt; -1 plays on
	moves      int

	out bytes.Buffer
}

func newScriptedConsole() *scriptedConsole {
	return &scriptedConsole{
		mark:        entity.PlayerX,
		humanStarts: true,
		moveEngine:  engine.New(),
		quitAfter:   -1,
	}
}

func (that *scriptedConsole) Render(engine.Board) {}

func (that *scriptedConsole) PromptMark() (string, error) {
	return that.mark, nil
}

func (that *scriptedConsole) PromptFirstMover() (bool, error) {
	return that.humanStarts, nil
}

func (that *scriptedConsole) PromptResume() (bool, error) {
	return that.resume, nil
}

func (that *scriptedConsole) PromptPlayAgain() (bool, error) {
	if len(that.again) == 0 {
		return false, nil
	}

	again := that.again[0]
	that.again = that.again[1:]

	return again, nil
}

func (that *scriptedConsole) PromptMove(game *entity.Game) (int, error) {
	if that.quitAfter >= 0 && that.moves >= that.quitAfter {
		return 0, apperror.ErrPlayerQuit
	}

	humanPlayer := game.HumanPlayer()
	cell, ok := that.moveEngine.BestMove(game.Board, humanPlayer.Mark, game.OpponentMark(humanPlayer.Mark))
	if !ok {
		return 0, apperror.ErrPlayerQuit
	}

	that.moves++

	return cell, nil
}

func (that *scriptedConsole) Printf(format string, args ...any) {
	fmt.Fprintf(&that.out, format, args...)
}

func newTestManager(console *scriptedConsole) (*GameManager, service.GamePlayService) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	searchEngine := engine.New()

	gamePlay := service.NewGamePlayService(
		logger,
		repository.NewMemoryGameRepository(),
		service.NewBotService(logger, searchEngine),
		searchEngine,
	)

	return NewGameManager(logger, gamePlay, console), gamePlay
}

func TestGameManager_PerfectPlayDraws(t *testing.T) {
	// Given: a perfect human playing X first against the perfect bot
	console := newScriptedConsole()
	manager, gamePlay := newTestManager(console)

	// When: one full game is played
	err := manager.Run(context.Background())

	// Then: the session ends cleanly in a draw and leaves no save behind
	require.NoError(t, err)
	assert.Contains(t, console.out.String(), "It's a draw!")
	assert.Contains(t, console.out.String(), "Thanks for playing!")

	_, err = gamePlay.ResumeGame(context.Background())
	assert.ErrorIs(t, err, apperror.ErrGameNotFound)
}

func TestGameManager_BotFirstStillDraws(t *testing.T) {
	// Given: the human takes O and lets the bot open
	console := newScriptedConsole()
	console.mark = entity.PlayerO
	console.humanStarts = false
	manager, _ := newTestManager(console)

	// When: one full game is played
	err := manager.Run(context.Background())

	// Then: perfect play on both sides still draws
	require.NoError(t, err)
	assert.Contains(t, console.out.String(), "It's a draw!")
}

func TestGameManager_QuitSavesGame(t *testing.T) {
	// Given: the human plays one move and quits at the second prompt
	console := newScriptedConsole()
	console.quitAfter = 1
	manager, gamePlay := newTestManager(console)

	// When: the session runs
	err := manager.Run(context.Background())

	// Then: the unfinished position was saved for the next launch
	require.NoError(t, err)
	assert.Contains(t, console.out.String(), "Game saved")
	assert.Contains(t, console.out.String(), "Goodbye.")

	saved, err := gamePlay.ResumeGame(context.Background())
	require.NoError(t, err)
	require.True(t, saved.IsOngoing())
	require.NotEmpty(t, saved.AvailableCells())
}

func TestGameManager_ResumeFinishesSavedGame(t *testing.T) {
	// Given: a saved game where the human has a forced win
	console := newScriptedConsole()
	console.resume = true
	manager, gamePlay := newTestManager(console)

	human := &entity.Player{Name: "you", Mark: entity.PlayerX}
	bot := &entity.Player{Name: "ai", Mark: entity.PlayerO, Bot: true}
	saved := entity.NewGame("42", entity.PlayerX, human, bot)
	saved.Board = engine.Board{
		"X", "O", "O",
		"", "X", "",
		"", "", "",
	}
	require.NoError(t, gamePlay.SaveGame(context.Background(), saved))

	// When: the session resumes it
	err := manager.Run(context.Background())

	// Then: the human converts the win and the save is cleaned up
	require.NoError(t, err)
	assert.Contains(t, console.out.String(), "X wins!")

	_, err = gamePlay.ResumeGame(context.Background())
	assert.ErrorIs(t, err, apperror.ErrGameNotFound)
}

func TestGameManager_DeclinedSaveIsDiscarded(t *testing.T) {
	// Given: a saved game the player does not want back
	console := newScriptedConsole()
	console.resume = false
	manager, gamePlay := newTestManager(console)

	stale := entity.NewGame("42", entity.PlayerX,
		&entity.Player{Name: "you", Mark: entity.PlayerX},
		&entity.Player{Name: "ai", Mark: entity.PlayerO, Bot: true},
	)
	require.NoError(t, gamePlay.SaveGame(context.Background(), stale))

	// When: the player declines and plays a fresh game instead
	err := manager.Run(context.Background())

	// Then: the fresh game runs to a draw and the stale save is gone
	require.NoError(t, err)
	assert.Contains(t, console.out.String(), "It's a draw!")

	_, err = gamePlay.ResumeGame(context.Background())
	assert.ErrorIs(t, err, apperror.ErrGameNotFound)
}

func TestGameManager_PlayAgainLoopsWithoutRecursion(t *testing.T) {
	// Given: the player accepts exactly one rematch
	console := newScriptedConsole()
	console.again = []bool{true, false}
	manager, _ := newTestManager(console)

	// When: the session runs
	err := manager.Run(context.Background())

	// Then: two full games were played, both draws
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(console.out.String(), "It's a draw!"))
	assert.Contains(t, console.out.String(), "Thanks for playing!")
}

func TestGameManager_CanceledContextSavesAndStops(t *testing.T) {
	// Given: a context that is already canceled
	console := newScriptedConsole()
	manager, gamePlay := newTestManager(console)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// When: the session runs
	err := manager.Run(ctx)

	// Then: it stops before any prompt and keeps the position
	require.NoError(t, err)

	saved, err := gamePlay.ResumeGame(context.Background())
	require.NoError(t, err)
	require.True(t, saved.IsOngoing())
}
