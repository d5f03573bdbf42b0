package service

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solvedgames/tictactoe/internal/engine"
	"github.com/solvedgames/tictactoe/internal/entity"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBotService_MakeTurn(t *testing.T) {
	t.Run("takes the winning cell", func(t *testing.T) {
		// Given: the bot plays X and can complete the top row
		bot := &entity.Player{Name: "ai", Mark: entity.PlayerX, Bot: true}
		human := &entity.Player{Name: "you", Mark: entity.PlayerO}
		game := entity.NewGame("000", entity.PlayerX, human, bot)
		game.Board = engine.Board{
			"X", "X", "",
			"O", "O", "",
			"", "", "",
		}

		botService := NewBotService(testLogger(), engine.New())

		// When: the bot takes its turn
		cell, err := botService.MakeTurn(game)

		// Then: it wins on the spot
		require.NoError(t, err)
		require.Equal(t, 2, cell)
		require.True(t, game.IsFinished())
		require.Equal(t, entity.PlayerX, game.Winner)
	})

	t.Run("blocks the opponent's threat", func(t *testing.T) {
		// Given: the human threatens the left column at cell 6
		bot := &entity.Player{Name: "ai", Mark: entity.PlayerO, Bot: true}
		human := &entity.Player{Name: "you", Mark: entity.PlayerX}
		game := entity.NewGame("000", entity.PlayerO, human, bot)
		game.Board = engine.Board{
			"X", "", "",
			"X", "O", "",
			"", "", "",
		}

		botService := NewBotService(testLogger(), engine.New())

		// When: the bot takes its turn
		cell, err := botService.MakeTurn(game)

		// Then: it blocks
		require.NoError(t, err)
		require.Equal(t, 6, cell)
		require.Equal(t, entity.PlayerO, game.Board[6])
	})

	t.Run("error when no bot player", func(t *testing.T) {
		// Given: a game between two humans
		a := &entity.Player{Name: "a", Mark: entity.PlayerX}
		b := &entity.Player{Name: "b", Mark: entity.PlayerO}
		game := entity.NewGame("000", entity.PlayerX, a, b)

		botService := NewBotService(testLogger(), engine.New())

		_, err := botService.MakeTurn(game)

		assert.ErrorIs(t, err, ErrBotNotFound)
	})

	t.Run("error when the board is full", func(t *testing.T) {
		// Given: no empty cell is left
		bot := &entity.Player{Name: "ai", Mark: entity.PlayerO, Bot: true}
		human := &entity.Player{Name: "you", Mark: entity.PlayerX}
		game := entity.NewGame("000", entity.PlayerO, human, bot)
		game.Board = engine.Board{
			"X", "O", "X",
			"X", "O", "O",
			"O", "X", "X",
		}

		botService := NewBotService(testLogger(), engine.New())

		_, err := botService.MakeTurn(game)

		assert.ErrorIs(t, err, ErrNoAvailableMoves)
	})
}
