// Package board provides the chess primitives the rest of the arbiter
// treats as an external collaborator: board state, moves, castle rights
// and game status. Legal move application and status detection are
// delegated to github.com/notnil/chess; everything else (in particular
// the file-based castle rights model Chess960 canonicalization needs)
// is implemented directly against FEN so that synthetic boards can
// exercise non-standard rook files in tests even though the underlying
// rules engine only ever produces standard ones.
package board

import "fmt"

// Color is the side to move or the owner of a piece.
type Color int8

const (
	White Color = iota
	Black
)

// Other returns the opposing color.
func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// File is a board file, A through H.
type File int8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

func (f File) String() string {
	return string(rune('a' + int(f)))
}

// FileFromByte parses a lowercase file letter ('a'-'h').
func FileFromByte(b byte) (File, error) {
	if b < 'a' || b > 'h' {
		return 0, fmt.Errorf("board: invalid file %q", b)
	}
	return File(b - 'a'), nil
}

// Rank is a board rank, 1 through 8, stored zero-indexed.
type Rank int8

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

func (r Rank) String() string {
	return string(rune('1' + int(r)))
}

// RankFromByte parses a rank digit ('1'-'8').
func RankFromByte(b byte) (Rank, error) {
	if b < '1' || b > '8' {
		return 0, fmt.Errorf("board: invalid rank %q", b)
	}
	return Rank(b - '1'), nil
}

// Square is a single board square.
type Square struct {
	File File
	Rank Rank
}

// NoSquare is returned where a square is not present (e.g. no en passant target).
var NoSquare = Square{File: -1, Rank: -1}

func (s Square) IsValid() bool {
	return s.File >= FileA && s.File <= FileH && s.Rank >= Rank1 && s.Rank <= Rank8
}

func (s Square) String() string {
	if !s.IsValid() {
		return "-"
	}
	return s.File.String() + s.Rank.String()
}

// Index returns the 0..63 index into a rank-major placement array (a1=0, h8=63).
func (s Square) Index() int {
	return int(s.Rank)*8 + int(s.File)
}

// ParseSquare parses algebraic notation such as "e4".
func ParseSquare(s string) (Square, error) {
	if s == "-" {
		return NoSquare, nil
	}
	if len(s) != 2 {
		return Square{}, fmt.Errorf("board: invalid square %q", s)
	}
	f, err := FileFromByte(s[0])
	if err != nil {
		return Square{}, err
	}
	r, err := RankFromByte(s[1])
	if err != nil {
		return Square{}, err
	}
	return Square{File: f, Rank: r}, nil
}

// PieceType is the kind of a piece, independent of color.
type PieceType int8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

// PromotionLetter returns the lowercase UCI promotion letter, or "" for NoPieceType.
func (pt PieceType) PromotionLetter() string {
	switch pt {
	case Knight:
		return "n"
	case Bishop:
		return "b"
	case Rook:
		return "r"
	case Queen:
		return "q"
	default:
		return ""
	}
}

// PromotionFromLetter parses a UCI promotion letter.
func PromotionFromLetter(b byte) (PieceType, error) {
	switch b {
	case 'n':
		return Knight, nil
	case 'b':
		return Bishop, nil
	case 'r':
		return Rook, nil
	case 'q':
		return Queen, nil
	default:
		return NoPieceType, fmt.Errorf("board: invalid promotion letter %q", b)
	}
}

// Piece is a colored piece occupying a square, or the empty piece.
type Piece struct {
	Type  PieceType
	Color Color
}

// NoPiece represents an empty square.
var NoPiece = Piece{Type: NoPieceType}

func (p Piece) IsEmpty() bool {
	return p.Type == NoPieceType
}

// CastleRights records, per side, which rook file (if any) still carries
// castling rights. A nil pointer means that side has no rights on that
// wing. In standard chess the files are always A (long) and H (short);
// Chess960 allows any file, which is why canonicalization must consult
// this rather than assuming standard squares.
type CastleRights struct {
	Long  *File
	Short *File
}

func fileRef(f File) *File {
	v := f
	return &v
}

// GameStatus is the outcome of a single board position, ignoring any
// history-dependent rule (threefold repetition lives one layer up, in
// ChessGame).
type GameStatus int8

const (
	Ongoing GameStatus = iota
	Won
	Drawn
)

func (s GameStatus) String() string {
	switch s {
	case Won:
		return "won"
	case Drawn:
		return "drawn"
	default:
		return "ongoing"
	}
}

// Move is a chess move in the core's internal (king-takes-rook castling)
// encoding. See canon.go for conversion to/from the UCI wire encoding.
type Move struct {
	From      Square
	To        Square
	Promotion PieceType
}

func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if letter := m.Promotion.PromotionLetter(); letter != "" {
		s += letter
	}
	return s
}
