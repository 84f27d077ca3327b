package uci

import "github.com/chess-backend/uci-arbiter/pkg/board"

// Remark is an inbound message received from the engine subprocess.
type Remark interface {
	isRemark()
	String() string
}

// OptionType is the type tag of a discovered UCI option.
type OptionType int8

const (
	OptionCheck OptionType = iota
	OptionSpin
	OptionCombo
	OptionString
	OptionButton
)

// OptionInfo is the raw shape of an `option` remark, before the Engine
// Session validates it into a board-agnostic UciOptionField.
type OptionInfo struct {
	Type    OptionType
	Default string
	Min     int64
	Max     int64
	Vars    []string
}

type IDName struct{ Name string }
type IDAuthor struct{ Author string }
type UciOk struct{}
type ReadyOk struct{}

type OptionRemark struct {
	Name string
	Info OptionInfo
}

type InfoRemark struct {
	Info UciInfo
}

type BestMoveRemark struct {
	Move   board.Move
	Ponder *board.Move
}

// UnknownRemark is any line the codec recognized as UCI traffic but that
// does not fit a known remark shape in the current context (e.g. an
// "id" sub-kind we don't parse, or a directive we don't act on). The
// Engine Session turns these into UnexpectedRemark warnings/events.
type UnknownRemark struct {
	Raw string
}

func (IDName) isRemark()         {}
func (IDAuthor) isRemark()       {}
func (UciOk) isRemark()          {}
func (ReadyOk) isRemark()        {}
func (OptionRemark) isRemark()   {}
func (InfoRemark) isRemark()     {}
func (BestMoveRemark) isRemark() {}
func (UnknownRemark) isRemark()  {}

func (r IDName) String() string         { return "id name " + r.Name }
func (r IDAuthor) String() string       { return "id author " + r.Author }
func (UciOk) String() string            { return "uciok" }
func (ReadyOk) String() string          { return "readyok" }
func (r OptionRemark) String() string   { return "option name " + r.Name }
func (r InfoRemark) String() string     { return "info" }
func (r BestMoveRemark) String() string { return "bestmove " + r.Move.String() }
func (r UnknownRemark) String() string  { return r.Raw }
