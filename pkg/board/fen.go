package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartingFEN is the standard chess starting position.
const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

type fenPosition struct {
	placement [64]Piece
	turn      Color
	rights    [2]CastleRights
	epSquare  Square
	halfmove  int
	fullmove  int
}

func pieceFromFENLetter(b byte) (Piece, error) {
	color := White
	lower := b
	if b >= 'a' && b <= 'z' {
		color = Black
	} else {
		lower = b + ('a' - 'A')
	}
	var pt PieceType
	switch lower {
	case 'p':
		pt = Pawn
	case 'n':
		pt = Knight
	case 'b':
		pt = Bishop
	case 'r':
		pt = Rook
	case 'q':
		pt = Queen
	case 'k':
		pt = King
	default:
		return NoPiece, fmt.Errorf("board: invalid FEN piece letter %q", b)
	}
	return Piece{Type: pt, Color: color}, nil
}

func pieceToFENLetter(p Piece) byte {
	var letter byte
	switch p.Type {
	case Pawn:
		letter = 'p'
	case Knight:
		letter = 'n'
	case Bishop:
		letter = 'b'
	case Rook:
		letter = 'r'
	case Queen:
		letter = 'q'
	case King:
		letter = 'k'
	}
	if p.Color == White {
		letter -= 'a' - 'A'
	}
	return letter
}

func parsePlacement(field string) ([64]Piece, error) {
	var placement [64]Piece
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return placement, fmt.Errorf("board: FEN placement must have 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := Rank(7 - i)
		file := FileA
		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if c >= '1' && c <= '8' {
				file += File(c - '0')
				continue
			}
			p, err := pieceFromFENLetter(c)
			if err != nil {
				return placement, err
			}
			if file > FileH {
				return placement, fmt.Errorf("board: FEN rank %d overflows", i)
			}
			placement[Square{File: file, Rank: rank}.Index()] = p
			file++
		}
		if file != FileH+1 {
			return placement, fmt.Errorf("board: FEN rank %d does not fill 8 files", i)
		}
	}
	return placement, nil
}

func formatPlacement(placement [64]Piece) string {
	var ranks []string
	for r := int(Rank8); r >= int(Rank1); r-- {
		var sb strings.Builder
		empty := 0
		for f := FileA; f <= FileH; f++ {
			p := placement[(Square{File: f, Rank: Rank(r)}).Index()]
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(pieceToFENLetter(p))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		ranks = append(ranks, sb.String())
	}
	return strings.Join(ranks, "/")
}

// parseCastling understands both standard "KQkq" notation and Shredder-FEN
// file-letter notation ("HAha"), storing whichever file each letter names.
// This is what lets a synthetic Board carry Chess960 rook files even though
// the notnil/chess engine underneath never produces them.
func parseCastling(field string, placement [64]Piece) ([2]CastleRights, error) {
	var rights [2]CastleRights
	if field == "-" {
		return rights, nil
	}
	kingFile := func(c Color) (File, bool) {
		rank := Rank1
		if c == Black {
			rank = Rank8
		}
		for f := FileA; f <= FileH; f++ {
			p := placement[(Square{File: f, Rank: rank}).Index()]
			if p.Type == King && p.Color == c {
				return f, true
			}
		}
		return 0, false
	}
	assign := func(c Color, f File) {
		kf, ok := kingFile(c)
		side := &rights[c]
		if ok && f > kf {
			side.Short = fileRef(f)
		} else if ok && f < kf {
			side.Long = fileRef(f)
		} else if !ok {
			// No king of that color on its back rank (synthetic test
			// case): the castling letter is ignored.
		}
	}
	for i := 0; i < len(field); i++ {
		c := field[i]
		switch c {
		case 'K':
			assign(White, FileH)
		case 'Q':
			assign(White, FileA)
		case 'k':
			assign(Black, FileH)
		case 'q':
			assign(Black, FileA)
		default:
			var color Color
			var file File
			var err error
			if c >= 'A' && c <= 'H' {
				color = White
				file, err = FileFromByte(c + ('a' - 'A'))
			} else if c >= 'a' && c <= 'h' {
				color = Black
				file, err = FileFromByte(c)
			} else {
				return rights, fmt.Errorf("board: invalid FEN castling letter %q", c)
			}
			if err != nil {
				return rights, err
			}
			assign(color, file)
		}
	}
	return rights, nil
}

func formatCastling(rights [2]CastleRights) string {
	var sb strings.Builder
	if rights[White].Short != nil && *rights[White].Short == FileH {
		sb.WriteByte('K')
	} else if rights[White].Short != nil {
		sb.WriteByte(byte('A' + *rights[White].Short))
	}
	if rights[White].Long != nil && *rights[White].Long == FileA {
		sb.WriteByte('Q')
	} else if rights[White].Long != nil {
		sb.WriteByte(byte('A' + *rights[White].Long))
	}
	if rights[Black].Short != nil && *rights[Black].Short == FileH {
		sb.WriteByte('k')
	} else if rights[Black].Short != nil {
		sb.WriteByte(byte('a' + *rights[Black].Short))
	}
	if rights[Black].Long != nil && *rights[Black].Long == FileA {
		sb.WriteByte('q')
	} else if rights[Black].Long != nil {
		sb.WriteByte(byte('a' + *rights[Black].Long))
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

func parseFEN(fen string) (*fenPosition, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("board: invalid FEN %q", fen)
	}
	placement, err := parsePlacement(fields[0])
	if err != nil {
		return nil, err
	}
	var turn Color
	switch fields[1] {
	case "w":
		turn = White
	case "b":
		turn = Black
	default:
		return nil, fmt.Errorf("board: invalid FEN turn field %q", fields[1])
	}
	rights, err := parseCastling(fields[2], placement)
	if err != nil {
		return nil, err
	}
	epSquare := NoSquare
	if len(fields) > 3 {
		epSquare, err = ParseSquare(fields[3])
		if err != nil {
			return nil, err
		}
	}
	halfmove, fullmove := 0, 1
	if len(fields) > 4 {
		halfmove, _ = strconv.Atoi(fields[4])
	}
	if len(fields) > 5 {
		fullmove, _ = strconv.Atoi(fields[5])
	}
	return &fenPosition{
		placement: placement,
		turn:      turn,
		rights:    rights,
		epSquare:  epSquare,
		halfmove:  halfmove,
		fullmove:  fullmove,
	}, nil
}

func (p *fenPosition) String() string {
	turn := "w"
	if p.turn == Black {
		turn = "b"
	}
	return fmt.Sprintf("%s %s %s %s %d %d",
		formatPlacement(p.placement), turn, formatCastling(p.rights), p.epSquare.String(),
		p.halfmove, p.fullmove)
}

// positionKey is the subset of a FEN that determines whether two positions
// are "the same" for threefold repetition: placement, side to move,
// castling rights and en passant target, but not the move counters.
func (p *fenPosition) positionKey() string {
	turn := "w"
	if p.turn == Black {
		turn = "b"
	}
	return fmt.Sprintf("%s %s %s %s", formatPlacement(p.placement), turn, formatCastling(p.rights), p.epSquare.String())
}
