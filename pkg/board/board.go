package board

import (
	"fmt"

	"github.com/notnil/chess"
)

// Board is an immutable chess position. Piece placement, castle rights,
// side to move and en passant target are parsed directly from FEN;
// move legality and terminal-status detection are delegated to
// notnil/chess, which is authoritative for "is this a legal chess
// position" but knows nothing of Chess960 rook files.
type Board struct {
	pos *fenPosition
	fen string
}

// NewBoard parses a FEN string into a Board.
func NewBoard(fen string) (*Board, error) {
	pos, err := parseFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Board{pos: pos, fen: fen}, nil
}

// StartingBoard returns the standard chess starting position.
func StartingBoard() *Board {
	b, err := NewBoard(StartingFEN)
	if err != nil {
		panic(err) // StartingFEN is a constant and always valid
	}
	return b
}

// FEN returns the board's FEN representation.
func (b *Board) FEN() string {
	return b.pos.String()
}

func (b *Board) String() string {
	return b.FEN()
}

// SideToMove returns the color to move.
func (b *Board) SideToMove() Color {
	return b.pos.turn
}

// PieceOn returns the piece on sq, or NoPiece if empty.
func (b *Board) PieceOn(sq Square) Piece {
	if !sq.IsValid() {
		return NoPiece
	}
	return b.pos.placement[sq.Index()]
}

// ColorOn returns the color of the piece on sq and whether a piece is present.
func (b *Board) ColorOn(sq Square) (Color, bool) {
	p := b.PieceOn(sq)
	if p.IsEmpty() {
		return 0, false
	}
	return p.Color, true
}

// CastleRights returns the castling rights for a side.
func (b *Board) CastleRights(c Color) CastleRights {
	return b.pos.rights[c]
}

// EnPassantSquare returns the en passant target square, or NoSquare.
func (b *Board) EnPassantSquare() Square {
	return b.pos.epSquare
}

// SamePosition reports whether two boards are the same position for the
// purposes of threefold repetition: same placement, side to move,
// castling rights and en passant target.
func (b *Board) SamePosition(other *Board) bool {
	return b.pos.positionKey() == other.pos.positionKey()
}

// toNotnilGame re-derives a notnil/chess Game at this position, used for
// legal move application and terminal status detection. Only called for
// boards reachable from real play (standard KQkq castling); synthetic
// Chess960 test boards never invoke Play or Status.
func (b *Board) toNotnilGame() (*chess.Game, error) {
	fn, err := chess.FEN(b.FEN())
	if err != nil {
		return nil, fmt.Errorf("board: position not understood by rules engine: %w", err)
	}
	return chess.NewGame(fn), nil
}

// findNotnilMove locates the notnil/chess Move matching mv among the
// current position's legal moves, matching by from/to/promotion only
// (tags like castling/en-passant are filled in by the engine itself).
// notnil/chess has no king-takes-rook concept, so a castling mv is
// translated to the king-to-G/C square it actually generates before
// the candidates are scanned; every other mv is matched as-is.
func findNotnilMove(g *chess.Game, b *Board, mv Move) (*chess.Move, error) {
	wire := mv
	if b.IsCastle(mv) {
		wire = Decanonicalize(b, mv, false)
	}
	for _, cand := range g.ValidMoves() {
		if cand.S1().String() == wire.From.String() &&
			cand.S2().String() == wire.To.String() &&
			promoMatches(cand.Promo(), mv.Promotion) {
			return cand, nil
		}
	}
	return nil, fmt.Errorf("board: %s is not a legal move in position %s", mv, b.FEN())
}

// promoMatches compares a notnil PieceType against our PieceType by UCI
// promotion letter so the two enums never need to line up numerically.
func promoMatches(notnilPromo chess.PieceType, ours PieceType) bool {
	letter := ours.PromotionLetter()
	if letter == "" {
		return notnilPromo == chess.NoPieceType
	}
	switch notnilPromo {
	case chess.Queen:
		return letter == "q"
	case chess.Rook:
		return letter == "r"
	case chess.Bishop:
		return letter == "b"
	case chess.Knight:
		return letter == "n"
	default:
		return false
	}
}

// Play applies mv, given in the core's internal king-takes-rook
// encoding, and returns the resulting board. Play itself translates a
// castling mv into the king-to-G/C form notnil/chess understands; the
// caller never needs to decanonicalize before calling Play. It fails
// if mv is not legal in this position.
func (b *Board) Play(mv Move) (*Board, error) {
	g, err := b.toNotnilGame()
	if err != nil {
		return nil, err
	}
	nmv, err := findNotnilMove(g, b, mv)
	if err != nil {
		return nil, err
	}
	if err := g.Move(nmv); err != nil {
		return nil, fmt.Errorf("board: failed to apply %s: %w", mv, err)
	}
	return NewBoard(g.Position().String())
}

// Status reports the terminal status of this single position, ignoring
// threefold repetition (which requires game history and is computed one
// layer up by ChessGame).
func (b *Board) Status() (GameStatus, error) {
	g, err := b.toNotnilGame()
	if err != nil {
		return Ongoing, err
	}
	switch g.Outcome() {
	case chess.WhiteWon, chess.BlackWon:
		return Won, nil
	case chess.Draw:
		return Drawn, nil
	default:
		return Ongoing, nil
	}
}

// IsCastle reports whether mv (from/to only, internal encoding) moves a
// piece onto a square held by a piece of the same color — the "king-
// takes-own-rook" shape used to recognize castling. Piece types are not
// checked; in a legal position only castling has this shape.
func (b *Board) IsCastle(mv Move) bool {
	fromColor, fromOK := b.ColorOn(mv.From)
	toColor, toOK := b.ColorOn(mv.To)
	return fromOK && toOK && fromColor == toColor
}
