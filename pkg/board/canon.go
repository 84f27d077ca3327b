package board

// Canonicalize and Decanonicalize bridge the two castling notations UCI
// engines may speak: king-to-G/C in standard mode, king-takes-rook in
// Chess960 mode. Internally the core always uses the king-takes-rook
// encoding; these are the only two places that ever convert away from
// it, grounded on cozy-matches/src/engine/uci_convert.rs.

// Canonicalize converts a move from the wire encoding (king-to-G/C in
// standard mode) into the core's internal king-takes-rook encoding. In
// Chess960 mode, or for any non-castling move, it is the identity.
func Canonicalize(b *Board, mv Move, chess960 bool) Move {
	if chess960 {
		return mv
	}
	piece := b.PieceOn(mv.From)
	if piece.Type != King || mv.From.File != FileE {
		return mv
	}
	var file File
	switch mv.To.File {
	case FileC:
		file = FileA
	case FileG:
		file = FileH
	default:
		return mv
	}
	return Move{From: mv.From, To: Square{File: file, Rank: mv.To.Rank}, Promotion: mv.Promotion}
}

// Decanonicalize converts a move from the core's internal king-takes-rook
// encoding into the wire encoding (king-to-G/C in standard mode). In
// Chess960 mode, or for any move that is not a king landing on a square
// held by a friendly rook (king-takes-own-rook), it is the identity.
func Decanonicalize(b *Board, mv Move, chess960 bool) Move {
	if chess960 {
		return mv
	}
	fromColor, fromOK := b.ColorOn(mv.From)
	toColor, toOK := b.ColorOn(mv.To)
	if !fromOK || !toOK || fromColor != toColor {
		return mv
	}
	// The "same color from/to" heuristic is correct for all legal
	// positions; assert it really is a king for robustness (§9c).
	if b.PieceOn(mv.From).Type != King {
		return mv
	}
	rights := b.CastleRights(b.SideToMove())
	var file File
	if rights.Short != nil && mv.To.File == *rights.Short {
		file = FileG
	} else {
		file = FileC
	}
	return Move{From: mv.From, To: Square{File: file, Rank: mv.To.Rank}, Promotion: mv.Promotion}
}
