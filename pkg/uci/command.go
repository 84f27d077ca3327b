// Package uci is the UCI wire codec: parsing one inbound line into a
// Remark, and formatting an outbound Command into one line. The
// specification treats this as an external collaborator; this package
// is the concrete implementation the rest of the core compiles against,
// grounded on the line handling in the teacher's pkg/uci/engine.go and
// on the vampirc_uci-shaped command/remark split in
// original_source/cozy-matches/src/engine/raw_engine.rs.
package uci

import (
	"time"

	"github.com/chess-backend/uci-arbiter/pkg/board"
)

// Command is an outbound message sent to the engine subprocess.
type Command interface {
	isCommand()
}

type UciCommand struct{}

type IsReadyCommand struct{}

type UciNewGameCommand struct{}

type SetOptionCommand struct {
	Name  string
	Value *string // nil for Button options
}

type PositionCommand struct {
	StartPos bool
	FEN      string // ignored when StartPos is true
	Moves    []board.Move
}

// GoCommand mirrors the `go` command's search/time controls. At most one
// of MoveTime, Infinite or the TimeLeft fields (WTime/BTime/...) is
// populated, matching AnalysisTimeLimit's variants.
type GoCommand struct {
	Depth     *int
	Nodes     *uint64
	MoveTime  *time.Duration
	Infinite  bool
	WTime     *time.Duration
	BTime     *time.Duration
	WInc      *time.Duration
	BInc      *time.Duration
	MovesToGo *int
}

type StopCommand struct{}

type QuitCommand struct{}

func (UciCommand) isCommand()        {}
func (IsReadyCommand) isCommand()    {}
func (UciNewGameCommand) isCommand() {}
func (SetOptionCommand) isCommand()  {}
func (PositionCommand) isCommand()   {}
func (GoCommand) isCommand()         {}
func (StopCommand) isCommand()       {}
func (QuitCommand) isCommand()       {}
