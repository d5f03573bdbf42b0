package engine

// Game values are only ever -1, 0 or 1, so anything outside that range
// serves as an infinite alpha-beta bound.
const (
	lossBound = -999
	winBound  = 999
)

// NoMove is returned in place of a cell index when a position is already terminal.
const NoMove = -1

type cacheKey struct {
	board      Board
	aiMark     string
	opponent   string
	maximizing bool
}

type cacheEntry struct {
	value int
	move  int
}

// Engine finds optimal moves by exhaustive minimax search with alpha-beta
// pruning. Results are memoized per position. The cache is only valid
// within a single game: which mark plays as the maximizer can change
// between games, so Reset must be called whenever a new game starts.
//
// The alpha-beta window is deliberately not part of the cache key. That
// is sound here because BestMove, the only entry point, always opens the
// full window, so no cached value was computed under narrower bounds
// than a later lookup needs.
type Engine struct {
	cache map[cacheKey]cacheEntry
}

func New() *Engine {
	return &Engine{
		cache: make(map[cacheKey]cacheEntry),
	}
}

// Reset - drops every memoized result. Call it at the start of each game.
func (that *Engine) Reset() {
	that.cache = make(map[cacheKey]cacheEntry)
}

// BestMove - returns an optimal cell for aiMark to play on the given
// board. ok is false only when the board is already terminal; otherwise
// the returned cell is empty and in range.
func (that *Engine) BestMove(board Board, aiMark, opponentMark string) (int, bool) {
	_, move := that.minimax(&board, aiMark, opponentMark, true, lossBound, winBound)
	if move == NoMove {
		return NoMove, false
	}

	return move, true
}

// minimax - explores every continuation of the position, placing and
// undoing marks on the shared board in place. It returns the game value
// for aiMark (-1 loss, 0 draw, 1 win) and the first cell, in ascending
// order, that achieves it among the children explored before a cutoff.
func (that *Engine) minimax(board *Board, aiMark, opponentMark string, maximizing bool, alpha, beta int) (int, int) {
	key := cacheKey{board: *board, aiMark: aiMark, opponent: opponentMark, maximizing: maximizing}
	if entry, ok := that.cache[key]; ok {
		return entry.value, entry.move
	}

	switch Evaluate(*board) {
	case aiMark:
		return 1, NoMove
	case opponentMark:
		return -1, NoMove
	case TieMark:
		return 0, NoMove
	}

	value := lossBound
	mark := aiMark
	if !maximizing {
		value = winBound
		mark = opponentMark
	}

	bestMove := NoMove
	for cell := range board {
		if board[cell] != EmptyCell {
			continue
		}

		board[cell] = mark
		childValue, _ := that.minimax(board, aiMark, opponentMark, !maximizing, alpha, beta)
		board[cell] = EmptyCell

		// strict comparisons keep the lowest-index move on ties
		if maximizing {
			if childValue > value {
				value = childValue
				bestMove = cell
			}
			alpha = max(alpha, value)
		} else {
			if childValue < value {
				value = childValue
				bestMove = cell
			}
			beta = min(beta, value)
		}

		if alpha >= beta {
			break
		}
	}

	that.cache[key] = cacheEntry{value: value, move: bestMove}

	return value, bestMove
}
