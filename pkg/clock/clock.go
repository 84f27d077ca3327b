// Package clock implements ChessClockState: the per-side clock a match
// maintains between moves, including Fischer increment accumulation and
// flag-fall detection. Grounded on the clock variant and update rule in
// spec form, mirrored from original_source/cozy-matches/src/engine_match.rs.
package clock

import (
	"time"

	"github.com/chess-backend/uci-arbiter/pkg/timecontrol"
)

// Kind tags the ChessClockState variant in play.
type Kind int8

const (
	Infinite Kind = iota
	MoveTime
	Clock
)

// State is the ChessClockState sum type: exactly one of the shapes
// below is meaningful depending on Kind.
type State struct {
	Kind Kind

	MoveTime time.Duration // valid when Kind == MoveTime

	TimeControl timecontrol.TimeControl // valid when Kind == Clock
}

// NewInfinite, NewMoveTime and NewClock build each State variant.
func NewInfinite() State { return State{Kind: Infinite} }

func NewMoveTime(d time.Duration) State { return State{Kind: MoveTime, MoveTime: d} }

func NewClock(tc timecontrol.TimeControl) State { return State{Kind: Clock, TimeControl: tc} }

// Update applies the effect of an engine having consumed elapsed time on
// its move, returning the new state and whether the side has flagged
// (run out of time).
//
//   - Clock: the increment is credited before elapsed is deducted
//     (Fischer convention): time ← saturating_sub(time + increment,
//     elapsed); flagged iff the new time is zero.
//   - MoveTime: the clock itself is unchanged; flagged iff elapsed
//     exceeds the allotted move time.
//   - Infinite: never flags, never changes.
func (s State) Update(elapsed time.Duration) (State, bool) {
	switch s.Kind {
	case Clock:
		budget := s.TimeControl.Time + s.TimeControl.Increment
		remaining := saturatingSub(budget, elapsed)
		next := s
		next.TimeControl.Time = remaining
		return next, remaining <= 0
	case MoveTime:
		return s, elapsed > s.MoveTime
	default: // Infinite
		return s, false
	}
}

func saturatingSub(a, b time.Duration) time.Duration {
	if b >= a {
		return 0
	}
	return a - b
}
