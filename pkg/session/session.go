// Package session implements the Engine Session: the UCI handshake,
// option table with typed validation, Chess960 mode detection, and the
// cancellable analysis stream, layered on top of pkg/transport and
// pkg/analysis. Grounded on the handshake/analyze algorithm in
// original_source/cozy-matches/src/engine/mod.rs, adapted from Rust's
// async_stream/borrow-based exclusivity to a Go channel plus an
// explicit in-progress flag.
package session

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/chess-backend/uci-arbiter/pkg/analysis"
	"github.com/chess-backend/uci-arbiter/pkg/board"
	"github.com/chess-backend/uci-arbiter/pkg/game"
	"github.com/chess-backend/uci-arbiter/pkg/transport"
	"github.com/chess-backend/uci-arbiter/pkg/uci"
)

const uciChess960OptionName = "UCI_Chess960"

// Session wraps one engine subprocess with protocol state: identity,
// the discovered and validated option table, and whether an analysis
// stream currently owns the transport.
type Session struct {
	tr     *transport.Transport
	log    *logrus.Entry
	name   string
	author string

	mu         sync.Mutex
	options    map[string]OptionField
	analyzing  bool
}

// New spawns the engine at path with args and performs the UCI
// handshake, returning the constructed Session plus any non-fatal
// warnings accumulated along the way (UnexpectedRemarkError,
// ErrMissingName-equivalent conditions, etc). A malformed option
// definition is terminal: handshake returns an error in that case.
func New(ctx context.Context, path string, args []string, log *logrus.Entry) (*Session, []error, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	tr, err := transport.Spawn(ctx, path, args, log)
	if err != nil {
		return nil, nil, fmt.Errorf("session: %w", err)
	}
	s := &Session{
		tr:      tr,
		log:     log,
		options: make(map[string]OptionField),
	}

	warnings, err := s.handshake()
	if err != nil {
		_ = tr.Close()
		return nil, nil, err
	}
	return s, warnings, nil
}

func (s *Session) handshake() ([]error, error) {
	var warnings []error
	var gotName, gotAuthor bool

	if err := s.tr.Send(uci.UciCommand{}); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	for {
		rem, err := s.tr.Recv()
		if err == io.EOF {
			return nil, ErrUnexpectedTermination
		}
		if err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
		switch r := rem.(type) {
		case uci.UciOk:
			if !gotName {
				warnings = append(warnings, errMissingName)
			}
			if !gotAuthor {
				warnings = append(warnings, errMissingAuthor)
			}
			return warnings, nil
		case uci.IDName:
			if gotName {
				warnings = append(warnings, &UnexpectedRemarkError{Remark: rem})
				continue
			}
			s.name = r.Name
			gotName = true
		case uci.IDAuthor:
			if gotAuthor {
				warnings = append(warnings, &UnexpectedRemarkError{Remark: rem})
				continue
			}
			s.author = r.Author
			gotAuthor = true
		case uci.OptionRemark:
			if r.Info.Type == uci.OptionButton {
				continue
			}
			field, err := buildField(r.Name, r.Info)
			if err != nil {
				return nil, err
			}
			s.options[r.Name] = field
		default:
			warnings = append(warnings, &UnexpectedRemarkError{Remark: rem})
		}
	}
}

// errMissingName/errMissingAuthor are sentinel warnings signalling that
// handshake completed without the engine ever sending that id field.
var (
	errMissingName   = fmt.Errorf("session: engine never sent id name")
	errMissingAuthor = fmt.Errorf("session: engine never sent id author")
)

// Name and Author return the identity captured during handshake,
// defaulting to "" if the engine never sent one.
func (s *Session) Name() string   { return s.name }
func (s *Session) Author() string { return s.author }

// Options returns a snapshot of the option table at call time.
func (s *Session) Options() map[string]OptionField {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]OptionField, len(s.options))
	for k, v := range s.options {
		out[k] = v
	}
	return out
}

// SetOption validates value against the named option's current field
// variant and range, sends `setoption`, and updates the stored field.
func (s *Session) SetOption(name string, value OptionValue) error {
	s.mu.Lock()
	field, ok := s.options[name]
	if !ok {
		s.mu.Unlock()
		return &SetOptionError{Kind: NoSuchOption, Name: name}
	}
	updated, err := applyValue(name, field, value)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	text := valueText(updated)
	if err := s.tr.Send(uci.SetOptionCommand{Name: name, Value: &text}); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	s.mu.Lock()
	s.options[name] = updated
	s.mu.Unlock()
	return nil
}

// Chess960Supported reports whether the engine registered UCI_Chess960
// as a Check option.
func (s *Session) Chess960Supported() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.options[uciChess960OptionName].(CheckField)
	return ok
}

// Chess960Enabled reports whether UCI_Chess960 is currently set to true.
func (s *Session) Chess960Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.options[uciChess960OptionName].(CheckField); ok {
		return f.Value
	}
	return false
}

// Analyze starts a search on game under limit and returns a channel of
// analysis events terminating in the engine's BestMove (canonicalized
// against the captured board) or in an EngineError event carrying a
// transport failure or unexpected termination. At most one analysis may be live on a Session at a time;
// cancelling ctx stops the goroutine from forwarding further events but
// does not send Stop — callers wanting a bounded search must encode
// that in limit, or kill the Session's owning context entirely.
func (s *Session) Analyze(ctx context.Context, g *game.ChessGame, limit analysis.Limit) (<-chan analysis.Event, error) {
	s.mu.Lock()
	if s.analyzing {
		s.mu.Unlock()
		return nil, ErrAnalysisInProgress
	}
	chess960 := s.chess960EnabledLocked()
	if g.NeedsChess960() && !chess960 {
		s.mu.Unlock()
		return nil, ErrRequires960
	}
	s.analyzing = true
	s.mu.Unlock()

	capturedBoard := g.Board()
	posCmd := analysis.GameToPositionCommand(g, chess960)
	goCmd := analysis.LimitToGoCommand(limit)

	out := make(chan analysis.Event, 4)
	go func() {
		defer close(out)
		defer func() {
			s.mu.Lock()
			s.analyzing = false
			s.mu.Unlock()
		}()

		if err := s.tr.Send(posCmd); err != nil {
			emit(ctx, out, analysis.Event{Kind: analysis.EventEngineError, EngineErr: fmt.Errorf("session: %w", err)})
			return
		}
		if err := s.tr.Send(goCmd); err != nil {
			emit(ctx, out, analysis.Event{Kind: analysis.EventEngineError, EngineErr: fmt.Errorf("session: %w", err)})
			return
		}

		for {
			rem, err := s.tr.Recv()
			if err == io.EOF {
				emit(ctx, out, analysis.Event{Kind: analysis.EventEngineError, EngineErr: ErrUnexpectedTermination})
				return
			}
			if err != nil {
				emit(ctx, out, analysis.Event{Kind: analysis.EventEngineError, EngineErr: err})
				return
			}
			switch r := rem.(type) {
			case uci.InfoRemark:
				if !emit(ctx, out, analysis.Event{Kind: analysis.EventInfo, Info: r.Info}) {
					return
				}
			case uci.BestMoveRemark:
				mv := board.Canonicalize(capturedBoard, r.Move, chess960)
				emit(ctx, out, analysis.Event{Kind: analysis.EventBestMove, BestMove: mv})
				return
			default:
				if !emit(ctx, out, analysis.Event{Kind: analysis.EventEngineError, EngineErr: &UnexpectedRemarkError{Remark: rem}}) {
					return
				}
			}
		}
	}()
	return out, nil
}

func (s *Session) chess960EnabledLocked() bool {
	if f, ok := s.options[uciChess960OptionName].(CheckField); ok {
		return f.Value
	}
	return false
}

// emit sends ev on out unless ctx is already cancelled, returning false
// when the caller has abandoned the stream so the goroutine can stop
// reading further remarks.
func emit(ctx context.Context, out chan<- analysis.Event, ev analysis.Event) bool {
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// Close shuts down the underlying transport, killing the subprocess if
// it has not already exited.
func (s *Session) Close() error {
	return s.tr.Close()
}
