package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/solvedgames/tictactoe/internal/apperror"
	"github.com/solvedgames/tictactoe/internal/entity"
)

// memoryGame keeps the saved game in process memory. It stores the same
// JSON payload the redis backend would, so the two are interchangeable.
type memoryGame struct {
	mu   sync.RWMutex
	data []byte
}

func NewMemoryGameRepository() GameRepository {
	return &memoryGame{}
}

func (that *memoryGame) Save(_ context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	that.mu.Lock()
	that.data = gameJSON
	that.mu.Unlock()

	return nil
}

func (that *memoryGame) GetCurrent(_ context.Context) (*entity.Game, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	if that.data == nil {
		return nil, apperror.ErrGameNotFound
	}

	var existingGame entity.Game
	if err := json.Unmarshal(that.data, &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func (that *memoryGame) Delete(_ context.Context) error {
	that.mu.Lock()
	that.data = nil
	that.mu.Unlock()

	return nil
}
