package uci

import (
	"testing"
	"time"

	"github.com/chess-backend/uci-arbiter/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDName(t *testing.T) {
	rem, err := ParseLine("id name Stockfish 16")
	require.NoError(t, err)
	assert.Equal(t, IDName{Name: "Stockfish 16"}, rem)
}

func TestParseIDAuthor(t *testing.T) {
	rem, err := ParseLine("id author the Stockfish developers")
	require.NoError(t, err)
	assert.Equal(t, IDAuthor{Author: "the Stockfish developers"}, rem)
}

func TestParseUciOk(t *testing.T) {
	rem, err := ParseLine("uciok")
	require.NoError(t, err)
	assert.Equal(t, UciOk{}, rem)
}

func TestParseSpinOption(t *testing.T) {
	rem, err := ParseLine("option name Hash type spin default 16 min 1 max 64")
	require.NoError(t, err)
	opt, ok := rem.(OptionRemark)
	require.True(t, ok)
	assert.Equal(t, "Hash", opt.Name)
	assert.Equal(t, OptionSpin, opt.Info.Type)
	assert.Equal(t, "16", opt.Info.Default)
	assert.Equal(t, int64(1), opt.Info.Min)
	assert.Equal(t, int64(64), opt.Info.Max)
}

func TestParseComboOption(t *testing.T) {
	rem, err := ParseLine("option name Style type combo default Normal var Solid var Normal var Risky")
	require.NoError(t, err)
	opt := rem.(OptionRemark)
	assert.Equal(t, OptionCombo, opt.Info.Type)
	assert.Equal(t, "Normal", opt.Info.Default)
	assert.Equal(t, []string{"Solid", "Normal", "Risky"}, opt.Info.Vars)
}

func TestParseCheckOption(t *testing.T) {
	rem, err := ParseLine("option name UCI_Chess960 type check default false")
	require.NoError(t, err)
	opt := rem.(OptionRemark)
	assert.Equal(t, OptionCheck, opt.Info.Type)
	assert.Equal(t, "false", opt.Info.Default)
}

func TestParseInfoLine(t *testing.T) {
	rem, err := ParseLine("info depth 10 seldepth 14 score cp 34 nodes 12345 nps 500000 pv e2e4 e7e5")
	require.NoError(t, err)
	info := rem.(InfoRemark).Info
	require.NotNil(t, info.Depth)
	assert.Equal(t, 10, *info.Depth)
	require.NotNil(t, info.SelDepth)
	assert.Equal(t, 14, *info.SelDepth)
	require.NotNil(t, info.Score)
	assert.Equal(t, ScoreCentipawn, info.Score.Kind)
	assert.Equal(t, 34, info.Score.Value)
	require.NotNil(t, info.Nodes)
	assert.Equal(t, uint64(12345), *info.Nodes)
	require.Len(t, info.PV, 2)
	assert.Equal(t, "e2e4", info.PV[0].String())
}

func TestParseMateScore(t *testing.T) {
	rem, err := ParseLine("info depth 5 score mate 3")
	require.NoError(t, err)
	info := rem.(InfoRemark).Info
	require.NotNil(t, info.Score)
	assert.Equal(t, ScoreMate, info.Score.Kind)
	assert.Equal(t, 3, info.Score.Value)
}

func TestParseBestMove(t *testing.T) {
	rem, err := ParseLine("bestmove e2e4 ponder e7e5")
	require.NoError(t, err)
	bm := rem.(BestMoveRemark)
	assert.Equal(t, "e2e4", bm.Move.String())
	require.NotNil(t, bm.Ponder)
	assert.Equal(t, "e7e5", bm.Ponder.String())
}

func TestParseBestMovePromotion(t *testing.T) {
	rem, err := ParseLine("bestmove e7e8q")
	require.NoError(t, err)
	bm := rem.(BestMoveRemark)
	assert.Equal(t, board.Queen, bm.Move.Promotion)
}

func TestParseUnknownLine(t *testing.T) {
	rem, err := ParseLine("Stockfish 16 by the Stockfish developers")
	require.NoError(t, err)
	_, ok := rem.(UnknownRemark)
	assert.True(t, ok)
}

func TestFormatSetOption(t *testing.T) {
	v := "64"
	got := FormatCommand(SetOptionCommand{Name: "Hash", Value: &v})
	assert.Equal(t, "setoption name Hash value 64", got)
}

func TestFormatPositionWithMoves(t *testing.T) {
	got := FormatCommand(PositionCommand{
		StartPos: true,
		Moves: []board.Move{
			{From: board.Square{File: board.FileE, Rank: board.Rank2}, To: board.Square{File: board.FileE, Rank: board.Rank4}},
		},
	})
	assert.Equal(t, "position startpos moves e2e4", got)
}

func TestFormatGoDepthAndNodes(t *testing.T) {
	depth := 10
	nodes := uint64(1000)
	got := FormatCommand(GoCommand{Depth: &depth, Nodes: &nodes})
	assert.Equal(t, "go depth 10 nodes 1000", got)
}

func TestFormatGoMoveTime(t *testing.T) {
	mt := 1500 * time.Millisecond
	got := FormatCommand(GoCommand{MoveTime: &mt})
	assert.Equal(t, "go movetime 1500", got)
}

func TestFormatGoInfinite(t *testing.T) {
	got := FormatCommand(GoCommand{Infinite: true})
	assert.Equal(t, "go infinite", got)
}

func TestFormatGoTimeLeft(t *testing.T) {
	wt := 60 * time.Second
	bt := 50 * time.Second
	wi := time.Second
	bi := time.Second
	got := FormatCommand(GoCommand{WTime: &wt, BTime: &bt, WInc: &wi, BInc: &bi})
	assert.Equal(t, "go wtime 60000 btime 50000 winc 1000 binc 1000", got)
}
