// Package game implements ChessGame: a starting position plus the
// ordered history of moves played from it, with status detection that
// layers threefold repetition on top of the board's own terminal-status
// detection. Grounded on original_source/cozy-matches/src/game.rs.
package game

import "github.com/chess-backend/uci-arbiter/pkg/board"

type ply struct {
	move  board.Move
	after *board.Board
}

// HistoryEntry is one played move and the board it produced.
type HistoryEntry struct {
	Move  board.Move
	After *board.Board
}

// ChessGame is an initial position plus an ordered sequence of
// (move, resulting board) pairs. It is mutated only by Play; there is
// no way to remove a move from the history.
type ChessGame struct {
	initPos *board.Board
	stack   []ply
}

// New creates a game starting from initPos with no moves played.
func New(initPos *board.Board) *ChessGame {
	return &ChessGame{initPos: initPos}
}

// InitPos returns the game's starting position.
func (g *ChessGame) InitPos() *board.Board {
	return g.initPos
}

// Stack returns the ordered (move, resulting board) history.
func (g *ChessGame) Stack() []HistoryEntry {
	out := make([]HistoryEntry, len(g.stack))
	for i, p := range g.stack {
		out[i] = HistoryEntry{Move: p.move, After: p.after}
	}
	return out
}

// Len returns the number of moves played.
func (g *ChessGame) Len() int {
	return len(g.stack)
}

// MoveAt and BoardAt give indexed access into the history without the
// allocation Stack() incurs.
func (g *ChessGame) MoveAt(i int) board.Move {
	return g.stack[i].move
}

func (g *ChessGame) BoardAt(i int) *board.Board {
	return g.stack[i].after
}

// Board returns the current position: the last resulting board, or the
// initial position if no moves have been played.
func (g *ChessGame) Board() *board.Board {
	if len(g.stack) == 0 {
		return g.initPos
	}
	return g.stack[len(g.stack)-1].after
}

// NeedsChess960 reports whether the starting position's castle rights
// require Chess960-mode UCI communication: true iff either side's
// long-castle file is present and not A, or short-castle file is
// present and not H.
func (g *ChessGame) NeedsChess960() bool {
	standard := func(c board.Color) bool {
		rights := g.initPos.CastleRights(c)
		if rights.Long != nil && *rights.Long != board.FileA {
			return false
		}
		if rights.Short != nil && *rights.Short != board.FileH {
			return false
		}
		return true
	}
	return !standard(board.White) || !standard(board.Black)
}

// Status returns the board's status, except it returns Drawn when the
// current position has occurred three or more times in the history
// (threefold repetition): the current position itself counts as one
// occurrence, so Drawn triggers once two prior occurrences are found in
// the stack.
func (g *ChessGame) Status() (board.GameStatus, error) {
	cur := g.Board()
	status, err := cur.Status()
	if err != nil {
		return board.Ongoing, err
	}
	if status != board.Ongoing {
		return status, nil
	}
	repetitions := 0
	for _, p := range g.stack {
		if p.after.SamePosition(cur) {
			repetitions++
		}
	}
	if repetitions >= 3 {
		return board.Drawn, nil
	}
	return board.Ongoing, nil
}

// Play applies mv (internal king-takes-rook encoding) to the current
// board and appends the result to the history. mv must be legal in the
// current position.
func (g *ChessGame) Play(mv board.Move) error {
	next, err := g.Board().Play(mv)
	if err != nil {
		return err
	}
	g.stack = append(g.stack, ply{move: mv, after: next})
	return nil
}
