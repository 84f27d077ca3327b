package uci

import (
	"fmt"

	"github.com/chess-backend/uci-arbiter/pkg/board"
)

// ParseMove parses a UCI move token such as "e2e4" or "e7e8q".
func ParseMove(s string) (board.Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return board.Move{}, fmt.Errorf("uci: invalid move %q", s)
	}
	from, err := board.ParseSquare(s[0:2])
	if err != nil {
		return board.Move{}, fmt.Errorf("uci: invalid move %q: %w", s, err)
	}
	to, err := board.ParseSquare(s[2:4])
	if err != nil {
		return board.Move{}, fmt.Errorf("uci: invalid move %q: %w", s, err)
	}
	promo := board.NoPieceType
	if len(s) == 5 {
		promo, err = board.PromotionFromLetter(s[4])
		if err != nil {
			return board.Move{}, fmt.Errorf("uci: invalid move %q: %w", s, err)
		}
	}
	return board.Move{From: from, To: to, Promotion: promo}, nil
}

// FormatMove formats a move as a UCI move token.
func FormatMove(m board.Move) string {
	return m.String()
}
