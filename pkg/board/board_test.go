package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartingBoardCastleRights(t *testing.T) {
	b := StartingBoard()
	wr := b.CastleRights(White)
	require.NotNil(t, wr.Long)
	require.NotNil(t, wr.Short)
	assert.Equal(t, FileA, *wr.Long)
	assert.Equal(t, FileH, *wr.Short)

	br := b.CastleRights(Black)
	require.NotNil(t, br.Long)
	require.NotNil(t, br.Short)
	assert.Equal(t, FileA, *br.Long)
	assert.Equal(t, FileH, *br.Short)
}

func TestFENRoundTrip(t *testing.T) {
	b := StartingBoard()
	assert.Equal(t, StartingFEN, b.FEN())
}

func TestChess960CastleRightsFromShredderFEN(t *testing.T) {
	b := mustBoard(t, "1rkr3b/8/8/8/8/8/8/1RKR3B w BDbd - 0 1")
	wr := b.CastleRights(White)
	require.NotNil(t, wr.Short)
	require.NotNil(t, wr.Long)
	assert.Equal(t, FileD, *wr.Short)
	assert.Equal(t, FileB, *wr.Long)
}

func TestSamePositionIgnoresMoveCounters(t *testing.T) {
	a := mustBoard(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	b := mustBoard(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 5 12")
	assert.True(t, a.SamePosition(b))
}

func TestSamePositionDiffersOnSideToMove(t *testing.T) {
	a := mustBoard(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	b := mustBoard(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1")
	assert.False(t, a.SamePosition(b))
}

func TestPlayAppliesLegalMove(t *testing.T) {
	b := StartingBoard()
	next, err := b.Play(Move{From: Square{File: FileE, Rank: Rank2}, To: Square{File: FileE, Rank: Rank4}})
	require.NoError(t, err)
	assert.Equal(t, Black, next.SideToMove())
	p := next.PieceOn(Square{File: FileE, Rank: Rank4})
	assert.Equal(t, Pawn, p.Type)
	assert.Equal(t, White, p.Color)
}

func TestPlayRejectsIllegalMove(t *testing.T) {
	b := StartingBoard()
	_, err := b.Play(Move{From: Square{File: FileE, Rank: Rank2}, To: Square{File: FileE, Rank: Rank5}})
	assert.Error(t, err)
}

func TestStatusOngoingAtStart(t *testing.T) {
	b := StartingBoard()
	status, err := b.Status()
	require.NoError(t, err)
	assert.Equal(t, Ongoing, status)
}

func TestPlayAppliesKingsideCastle(t *testing.T) {
	b := StartingBoard()
	moves := []Move{
		{From: Square{File: FileE, Rank: Rank2}, To: Square{File: FileE, Rank: Rank4}},
		{From: Square{File: FileE, Rank: Rank7}, To: Square{File: FileE, Rank: Rank5}},
		{From: Square{File: FileG, Rank: Rank1}, To: Square{File: FileF, Rank: Rank3}},
		{From: Square{File: FileB, Rank: Rank8}, To: Square{File: FileC, Rank: Rank6}},
		{From: Square{File: FileF, Rank: Rank1}, To: Square{File: FileC, Rank: Rank4}},
		{From: Square{File: FileF, Rank: Rank8}, To: Square{File: FileC, Rank: Rank5}},
	}
	var err error
	for _, mv := range moves {
		b, err = b.Play(mv)
		require.NoError(t, err)
	}

	// White castles kingside in the core's king-takes-rook encoding.
	next, err := b.Play(Move{From: Square{File: FileE, Rank: Rank1}, To: Square{File: FileH, Rank: Rank1}})
	require.NoError(t, err)

	king := next.PieceOn(Square{File: FileG, Rank: Rank1})
	assert.Equal(t, King, king.Type)
	assert.Equal(t, White, king.Color)
	rook := next.PieceOn(Square{File: FileF, Rank: Rank1})
	assert.Equal(t, Rook, rook.Type)
	assert.Equal(t, White, rook.Color)
	assert.True(t, next.PieceOn(Square{File: FileE, Rank: Rank1}).IsEmpty())
	assert.True(t, next.PieceOn(Square{File: FileH, Rank: Rank1}).IsEmpty())
}

func TestStatusCheckmate(t *testing.T) {
	// Fool's mate.
	b := StartingBoard()
	moves := []Move{
		{From: Square{File: FileF, Rank: Rank2}, To: Square{File: FileF, Rank: Rank3}},
		{From: Square{File: FileE, Rank: Rank7}, To: Square{File: FileE, Rank: Rank5}},
		{From: Square{File: FileG, Rank: Rank2}, To: Square{File: FileG, Rank: Rank4}},
		{From: Square{File: FileD, Rank: Rank8}, To: Square{File: FileH, Rank: Rank4}},
	}
	var err error
	for _, mv := range moves {
		b, err = b.Play(mv)
		require.NoError(t, err)
	}
	status, err := b.Status()
	require.NoError(t, err)
	assert.Equal(t, Won, status)
}
