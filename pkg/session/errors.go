package session

import (
	"errors"
	"fmt"

	"github.com/chess-backend/uci-arbiter/pkg/uci"
)

// ErrUnexpectedTermination is returned when the engine closes its
// stdout while a remark was still expected; the Session is unusable
// after this point.
var ErrUnexpectedTermination = errors.New("session: engine terminated unexpectedly")

// ErrRequires960 is returned by Analyze when the game needs Chess960
// castling but the engine is not in Chess960 mode.
var ErrRequires960 = errors.New("session: game requires chess960 but engine is not in chess960 mode")

// ErrAnalysisInProgress is returned by Analyze when a previous analysis
// stream on this Session has not yet been drained to completion.
var ErrAnalysisInProgress = errors.New("session: an analysis is already in progress on this session")

// UnexpectedRemarkError wraps a remark that arrived somewhere the
// protocol state machine did not expect one (handshake or analysis).
type UnexpectedRemarkError struct {
	Remark uci.Remark
}

func (e *UnexpectedRemarkError) Error() string {
	return fmt.Sprintf("session: unexpected remark: %s", e.Remark.String())
}

// InvalidOptionError reports a malformed option definition discovered
// during handshake (e.g. a spin with min > max).
type InvalidOptionError struct {
	Name   string
	Reason string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("session: invalid option %q: %s", e.Name, e.Reason)
}

// SetOptionError is the rejection reason when SetOption fails a
// validation before touching the wire.
type SetOptionErrorKind int8

const (
	NoSuchOption SetOptionErrorKind = iota
	TypeMismatch
	OutOfRange
)

func (k SetOptionErrorKind) String() string {
	switch k {
	case NoSuchOption:
		return "no such option"
	case TypeMismatch:
		return "type mismatch"
	case OutOfRange:
		return "out of range"
	default:
		return "unknown"
	}
}

type SetOptionError struct {
	Kind SetOptionErrorKind
	Name string
}

func (e *SetOptionError) Error() string {
	return fmt.Sprintf("session: set option %q: %s", e.Name, e.Kind.String())
}
