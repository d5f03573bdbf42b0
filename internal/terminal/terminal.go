package terminal

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/solvedgames/tictactoe/internal/apperror"
	"github.com/solvedgames/tictactoe/internal/engine"
	"github.com/solvedgames/tictactoe/internal/entity"
)

// Terminal is the interactive surface of the game: it renders the board
// and reads the human's answers. All prompts return ErrPlayerQuit when
// the player types a quit command or input ends.
type Terminal struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Render - draws the board. Cells are shown 1-9 to the human but stored 0-8.
func (that *Terminal) Render(board engine.Board) {
	var cells [9]string
	for i, mark := range board {
		if mark == engine.EmptyCell {
			cells[i] = " "
		} else {
			cells[i] = mark
		}
	}

	fmt.Fprintln(that.out)
	fmt.Fprintf(that.out, " %s | %s | %s \n", cells[0], cells[1], cells[2])
	fmt.Fprintln(that.out, "---+---+---")
	fmt.Fprintf(that.out, " %s | %s | %s \n", cells[3], cells[4], cells[5])
	fmt.Fprintln(that.out, "---+---+---")
	fmt.Fprintf(that.out, " %s | %s | %s \n", cells[6], cells[7], cells[8])
	fmt.Fprintln(that.out)
}

// PromptMark - asks which mark the human wants to play; empty input
// defaults to X.
func (that *Terminal) PromptMark() (string, error) {
	for {
		fmt.Fprint(that.out, "Choose your mark (X/O) [X]: ")

		line, err := that.readLine()
		if err != nil {
			return "", err
		}

		switch strings.ToUpper(line) {
		case "":
			return entity.PlayerX, nil
		case entity.PlayerX:
			return entity.PlayerX, nil
		case entity.PlayerO:
			return entity.PlayerO, nil
		}

		fmt.Fprintln(that.out, "Enter X or O.")
	}
}

// PromptFirstMover - asks who makes the first move; empty input defaults
// to the human.
func (that *Terminal) PromptFirstMover() (bool, error) {
	for {
		fmt.Fprint(that.out, "Who starts? (me/ai) [me]: ")

		line, err := that.readLine()
		if err != nil {
			return false, err
		}

		switch strings.ToLower(line) {
		case "", "me":
			return true, nil
		case "ai":
			return false, nil
		}

		fmt.Fprintln(that.out, "Enter 'me' or 'ai'.")
	}
}

// PromptMove - reads a move for the current position, retrying until the
// cell is free and in range. Accepts q/quit/exit to leave the game.
func (that *Terminal) PromptMove(game *entity.Game) (int, error) {
	for {
		fmt.Fprint(that.out, "Enter your move (1-9), positions:\n1 2 3\n4 5 6\n7 8 9\n> ")

		line, err := that.readLine()
		if err != nil {
			return 0, err
		}

		switch strings.ToLower(line) {
		case "q", "quit", "exit":
			return 0, apperror.ErrPlayerQuit
		}

		pos, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(that.out, "Please enter a number 1-9.")
			continue
		}

		cell := pos - 1
		if cell < 0 || cell >= len(game.Board) || game.Board[cell] != entity.EmptyCell {
			fmt.Fprintln(that.out, "Invalid move or already taken. Try again.")
			continue
		}

		return cell, nil
	}
}

// PromptResume - offers to continue a found saved game; empty input
// defaults to yes.
func (that *Terminal) PromptResume() (bool, error) {
	fmt.Fprint(that.out, "Found an unfinished game. Continue it? (y/n) [y]: ")

	return that.readYes()
}

// PromptPlayAgain - asks for another round; empty input defaults to yes.
func (that *Terminal) PromptPlayAgain() (bool, error) {
	fmt.Fprint(that.out, "Play again? (y/n) [y]: ")

	return that.readYes()
}

func (that *Terminal) Printf(format string, args ...any) {
	fmt.Fprintf(that.out, format, args...)
}

func (that *Terminal) readYes() (bool, error) {
	line, err := that.readLine()
	if err != nil {
		return false, err
	}

	switch strings.ToLower(line) {
	case "", "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// readLine - reads one trimmed line; end of input counts as quitting.
func (that *Terminal) readLine() (string, error) {
	if !that.in.Scan() {
		if err := that.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}

		return "", apperror.ErrPlayerQuit
	}

	return strings.TrimSpace(that.in.Text()), nil
}
