package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/solvedgames/tictactoe/internal/apperror"
	"github.com/solvedgames/tictactoe/internal/entity"
)

// There is at most one resumable game per installation, kept under a
// fixed key. Finished games are deleted, never archived.
const currentGameKey = "game:current"

type GameRepository interface {
	Save(ctx context.Context, game *entity.Game) error
	GetCurrent(ctx context.Context) (*entity.Game, error)
	Delete(ctx context.Context) error
}

type dbGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

func (that *dbGame) Save(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	if err = that.client.Set(ctx, currentGameKey, gameJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) GetCurrent(ctx context.Context) (*entity.Game, error) {
	response, err := that.client.Get(ctx, currentGameKey).Result()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get saved game: %w", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal([]byte(response), &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func (that *dbGame) Delete(ctx context.Context) error {
	if err := that.client.Del(ctx, currentGameKey).Err(); err != nil {
		return fmt.Errorf("failed to delete saved game: %w", err)
	}

	return nil
}
