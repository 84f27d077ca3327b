// Package analysis translates between the core's domain types
// (ChessGame, AnalysisLimit) and the UCI wire commands/remarks that
// carry them, grounded on the uci_convert.rs/analysis.rs split in
// original_source/cozy-matches/src/engine/.
package analysis

import (
	"time"

	"github.com/chess-backend/uci-arbiter/pkg/board"
	"github.com/chess-backend/uci-arbiter/pkg/game"
	"github.com/chess-backend/uci-arbiter/pkg/uci"
)

// SearchLimit bounds a search by node count and/or depth.
type SearchLimit struct {
	Nodes *uint64
	Depth *int
}

// TimeLimitKind tags the TimeLimit variant in play.
type TimeLimitKind int8

const (
	TimeInfinite TimeLimitKind = iota
	TimeMoveTime
	TimeLeft
)

// TimeLimit is the AnalysisTimeLimit sum type: exactly one of the three
// shapes below is meaningful, selected by Kind.
type TimeLimit struct {
	Kind TimeLimitKind

	MoveTime time.Duration // valid when Kind == TimeMoveTime

	// valid when Kind == TimeLeft
	WhiteTime      *time.Duration
	BlackTime      *time.Duration
	WhiteIncrement *time.Duration
	BlackIncrement *time.Duration
	MovesToGo      *int
}

// Limit is the AnalysisLimit record: either field may be absent.
type Limit struct {
	Search *SearchLimit
	Time   *TimeLimit
}

// EventKind tags the EngineAnalysisEvent variant.
type EventKind int8

const (
	EventInfo EventKind = iota
	EventBestMove
	EventEngineError
)

// Event is the EngineAnalysisEvent sum type surfaced on an analysis
// stream: Info carries a UciInfo, BestMove a canonicalized Move,
// EngineError either a non-terminal protocol anomaly or a transport
// failure after which the stream ends.
type Event struct {
	Kind      EventKind
	Info      uci.UciInfo
	BestMove  board.Move
	EngineErr error
}

// GameToPositionCommand builds the `position` command that replays a
// game's full move history from its initial board, decanonicalizing
// each move against the board it was played on (not the final board),
// matching uci_convert.rs's per-move board lookback.
func GameToPositionCommand(g *game.ChessGame, chess960 bool) uci.PositionCommand {
	history := g.Stack()
	moves := make([]board.Move, 0, len(history))
	prev := g.InitPos()
	for _, h := range history {
		moves = append(moves, board.Decanonicalize(prev, h.Move, chess960))
		prev = h.After
	}
	return uci.PositionCommand{
		StartPos: false,
		FEN:      g.InitPos().FEN(),
		Moves:    moves,
	}
}

// LimitToGoCommand produces the `go` command for an AnalysisLimit,
// saturating any duration that exceeds the wire format's representable
// range (UCI times are sent as non-negative integer milliseconds).
func LimitToGoCommand(limit Limit) uci.GoCommand {
	var cmd uci.GoCommand
	if limit.Search != nil {
		cmd.Depth = limit.Search.Depth
		cmd.Nodes = limit.Search.Nodes
	}
	if limit.Time != nil {
		switch limit.Time.Kind {
		case TimeInfinite:
			cmd.Infinite = true
		case TimeMoveTime:
			d := saturateDuration(limit.Time.MoveTime)
			cmd.MoveTime = &d
		case TimeLeft:
			cmd.WTime = saturatePtr(limit.Time.WhiteTime)
			cmd.BTime = saturatePtr(limit.Time.BlackTime)
			cmd.WInc = saturatePtr(limit.Time.WhiteIncrement)
			cmd.BInc = saturatePtr(limit.Time.BlackIncrement)
			cmd.MovesToGo = limit.Time.MovesToGo
		}
	}
	return cmd
}

// maxWireDuration is the largest duration representable as a
// milliseconds count that fits the wire's integer field before
// saturating.
const maxWireDuration = time.Duration(1<<63 - 1)

func saturateDuration(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	if d > maxWireDuration {
		return maxWireDuration
	}
	return d
}

func saturatePtr(d *time.Duration) *time.Duration {
	if d == nil {
		return nil
	}
	v := saturateDuration(*d)
	return &v
}
