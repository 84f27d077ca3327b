package uci

import "github.com/chess-backend/uci-arbiter/pkg/board"

// ScoreKind distinguishes a centipawn score from a mate-in-N score.
type ScoreKind int8

const (
	ScoreCentipawn ScoreKind = iota
	ScoreMate
)

// Score is an `info score cp|mate N` attribute.
type Score struct {
	Kind  ScoreKind
	Value int
}

// UciInfo is the parsed attribute set of one `info` remark. Every field
// is optional, matching the line-by-line nature of UCI's info command.
type UciInfo struct {
	Depth    *int
	SelDepth *int
	Time     *int // milliseconds, as sent on the wire
	Nodes    *uint64
	PV       []board.Move
	Score    *Score
	MultiPV  *int
	NPS      *uint64
	HashFull *int
	TBHits   *uint64
	String   *string
	CurrMove *board.Move
}
