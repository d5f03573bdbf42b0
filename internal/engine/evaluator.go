package engine

const (
	// EmptyCell marks a free cell; Evaluate also returns it while the game is in progress.
	EmptyCell = ""
	// TieMark is the outcome of a full board with no winner.
	TieMark = "-"
)

// Board is a tic-tac-toe position in row-major order: cells 0,1,2 are the
// top row, 3,4,5 the middle, 6,7,8 the bottom. Each cell holds a player's
// mark or EmptyCell. Marks are any two distinct single-character strings
// chosen by the caller.
type Board [9]string

var winLines = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Evaluate - reports the outcome of a position: the winning mark if some
// line holds three of it, TieMark if the board is full with no winner,
// and EmptyCell while the game is still in progress. It does not check
// that the position is reachable by legal alternating play.
func Evaluate(board Board) string {
	for _, line := range winLines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	for _, cell := range board {
		if cell == EmptyCell {
			return EmptyCell
		}
	}

	return TieMark
}

// AvailableCells - returns the indices of all empty cells in ascending order.
func AvailableCells(board Board) []int {
	cells := make([]int, 0, len(board))
	for i, cell := range board {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}
