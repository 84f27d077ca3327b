package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chess-backend/uci-arbiter/pkg/analysis"
	"github.com/chess-backend/uci-arbiter/pkg/board"
	"github.com/chess-backend/uci-arbiter/pkg/game"
)

const stubEngineScript = `
while read -r line; do
  case "$line" in
    uci)
      printf 'id name Stub Engine\n'
      printf 'id author Stub Author\n'
      printf 'option name Hash type spin default 16 min 1 max 1024\n'
      printf 'option name UCI_Chess960 type check default false\n'
      printf 'option name Style type combo default Normal var Solid var Normal var Risky\n'
      printf 'uciok\n'
      ;;
    setoption*) : ;;
    position*) : ;;
    "go"*) printf 'info depth 1 score cp 10\nbestmove e2e4\n' ;;
    quit) exit 0 ;;
  esac
done
`

func newStubSession(t *testing.T) (*Session, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	s, warnings, err := New(ctx, "/bin/sh", []string{"-c", stubEngineScript}, nil)
	require.NoError(t, err)
	require.Empty(t, warnings)
	return s, cancel
}

func TestHandshakeCapturesIdentity(t *testing.T) {
	s, cancel := newStubSession(t)
	defer cancel()
	defer s.Close()

	assert.Equal(t, "Stub Engine", s.Name())
	assert.Equal(t, "Stub Author", s.Author())
}

func TestHandshakeBuildsOptionTable(t *testing.T) {
	s, cancel := newStubSession(t)
	defer cancel()
	defer s.Close()

	opts := s.Options()
	hash, ok := opts["Hash"].(SpinField)
	require.True(t, ok)
	assert.Equal(t, int64(16), hash.Value)
	assert.Equal(t, int64(1), hash.Min)
	assert.Equal(t, int64(1024), hash.Max)

	style, ok := opts["Style"].(ComboField)
	require.True(t, ok)
	assert.Equal(t, []string{"Solid", "Normal", "Risky"}, style.Labels)
	assert.Equal(t, 1, style.Value)
}

func TestChess960SupportedAndDisabledByDefault(t *testing.T) {
	s, cancel := newStubSession(t)
	defer cancel()
	defer s.Close()

	assert.True(t, s.Chess960Supported())
	assert.False(t, s.Chess960Enabled())
}

func TestSetOptionNoSuchOption(t *testing.T) {
	s, cancel := newStubSession(t)
	defer cancel()
	defer s.Close()

	err := s.SetOption("Nonexistent", BoolValue{Value: true})
	var soErr *SetOptionError
	require.ErrorAs(t, err, &soErr)
	assert.Equal(t, NoSuchOption, soErr.Kind)
}

func TestSetOptionTypeMismatch(t *testing.T) {
	s, cancel := newStubSession(t)
	defer cancel()
	defer s.Close()

	err := s.SetOption("Hash", BoolValue{Value: true})
	var soErr *SetOptionError
	require.ErrorAs(t, err, &soErr)
	assert.Equal(t, TypeMismatch, soErr.Kind)
}

func TestSetOptionOutOfRange(t *testing.T) {
	s, cancel := newStubSession(t)
	defer cancel()
	defer s.Close()

	err := s.SetOption("Hash", IntValue{Value: 99999})
	var soErr *SetOptionError
	require.ErrorAs(t, err, &soErr)
	assert.Equal(t, OutOfRange, soErr.Kind)
}

func TestSetOptionUpdatesStoredValue(t *testing.T) {
	s, cancel := newStubSession(t)
	defer cancel()
	defer s.Close()

	require.NoError(t, s.SetOption("Hash", IntValue{Value: 512}))
	opts := s.Options()
	assert.Equal(t, int64(512), opts["Hash"].(SpinField).Value)
}

func TestSetOptionChess960Enables(t *testing.T) {
	s, cancel := newStubSession(t)
	defer cancel()
	defer s.Close()

	require.NoError(t, s.SetOption("UCI_Chess960", BoolValue{Value: true}))
	assert.True(t, s.Chess960Enabled())
}

func TestAnalyzeYieldsInfoThenBestMove(t *testing.T) {
	s, cancel := newStubSession(t)
	defer cancel()
	defer s.Close()

	g := game.New(board.StartingBoard())
	ctx, analyzeCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer analyzeCancel()
	ch, err := s.Analyze(ctx, g, analysis.Limit{Time: &analysis.TimeLimit{Kind: analysis.TimeInfinite}})
	require.NoError(t, err)

	var events []analysis.Event
	for ev := range ch {
		events = append(events, ev)
	}
	require.Len(t, events, 2)
	assert.Equal(t, analysis.EventInfo, events[0].Kind)
	assert.Equal(t, analysis.EventBestMove, events[1].Kind)
	assert.Equal(t, "e2e4", events[1].BestMove.String())
}

func TestAnalyzeRejectsConcurrentAnalysis(t *testing.T) {
	s, cancel := newStubSession(t)
	defer cancel()
	defer s.Close()

	g := game.New(board.StartingBoard())
	ctx := context.Background()

	s.mu.Lock()
	s.analyzing = true
	s.mu.Unlock()

	_, err := s.Analyze(ctx, g, analysis.Limit{})
	assert.ErrorIs(t, err, ErrAnalysisInProgress)
}

func TestAnalyzeRequires960WhenGameNeedsItButEngineDoesNot(t *testing.T) {
	s, cancel := newStubSession(t)
	defer cancel()
	defer s.Close()

	shredder, err := board.NewBoard("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w BFbf - 0 1")
	require.NoError(t, err)
	g := game.New(shredder)
	require.True(t, g.NeedsChess960())

	_, err = s.Analyze(context.Background(), g, analysis.Limit{})
	assert.ErrorIs(t, err, ErrRequires960)
}
