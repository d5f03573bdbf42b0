package entity

import (
	"fmt"

	"github.com/solvedgames/tictactoe/internal/apperror"
	"github.com/solvedgames/tictactoe/internal/engine"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerX = "X"
	PlayerO = "O"

	PlayerTie = engine.TieMark
	EmptyCell = engine.EmptyCell
)

type Game struct {
	ID      string       `json:"id"`
	Board   engine.Board `json:"board"`
	Winner  string       `json:"winner,omitempty"`
	Status  string       `json:"status"`
	Turn    string       `json:"player_turn"`
	Players []*Player    `json:"players,omitempty"`
}

// NewGame - creates an ongoing game on an empty board. firstTurn is the
// mark of whichever player moves first; players alternate from there.
func NewGame(id, firstTurn string, players ...*Player) *Game {
	return &Game{
		ID:      id,
		Board:   engine.Board{},
		Turn:    firstTurn,
		Status:  StatusOngoing,
		Players: players,
	}
}

// MakeTurn - places playerMark on the given cell, flips the turn and
// updates the game state.
func (that *Game) MakeTurn(playerMark string, cell int) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if cell < 0 || cell >= len(that.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.Turn != playerMark {
		return apperror.ErrNotYourTurn
	}

	if that.Board[cell] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	that.Board[cell] = playerMark
	that.Turn = that.OpponentMark(playerMark)

	that.UpdateGameState()

	return nil
}

// UpdateGameState - derives winner and status from the board.
func (that *Game) UpdateGameState() {
	switch winner := engine.Evaluate(that.Board); winner {
	case EmptyCell:
		that.Status = StatusOngoing
	default:
		// a mark won, or PlayerTie on a full board
		that.Winner = winner
		that.Status = StatusFinished
		that.Turn = ""
	}
}

// OpponentMark - returns the mark of the other player, or the given mark
// back if there is no other player.
func (that *Game) OpponentMark(mark string) string {
	for _, player := range that.Players {
		if player.Mark != mark {
			return player.Mark
		}
	}

	return mark
}

// BotPlayer - returns the bot side, or nil for a game between two humans.
func (that *Game) BotPlayer() *Player {
	for _, player := range that.Players {
		if player.IsBot() {
			return player
		}
	}

	return nil
}

// HumanPlayer - returns the first human side, or nil.
func (that *Game) HumanPlayer() *Player {
	for _, player := range that.Players {
		if !player.IsBot() {
			return player
		}
	}

	return nil
}

// PlayerByMark - returns the player holding the given mark, or nil.
func (that *Game) PlayerByMark(mark string) *Player {
	for _, player := range that.Players {
		if player.Mark == mark {
			return player
		}
	}

	return nil
}

func (that *Game) AvailableCells() []int {
	return engine.AvailableCells(that.Board)
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsTie() bool {
	return that.Winner == PlayerTie
}
