package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/chess-backend/uci-arbiter/configs"
	"github.com/chess-backend/uci-arbiter/internal/rosterengine"
	"github.com/chess-backend/uci-arbiter/pkg/analysis"
	"github.com/chess-backend/uci-arbiter/pkg/board"
	"github.com/chess-backend/uci-arbiter/pkg/clock"
	"github.com/chess-backend/uci-arbiter/pkg/game"
	"github.com/chess-backend/uci-arbiter/pkg/match"
	"github.com/chess-backend/uci-arbiter/pkg/session"
	"github.com/chess-backend/uci-arbiter/pkg/timecontrol"
	"github.com/chess-backend/uci-arbiter/pkg/uci"
)

// StartMatchRequest is the POST /api/matches request body: two roster
// nicknames and an optional clock/search-depth override applied to both
// sides. At most one of TimeControl or MoveTime may be set; neither set
// means an untimed (infinite) search per side.
type StartMatchRequest struct {
	White       string `json:"white"`
	Black       string `json:"black"`
	TimeControl string `json:"time_control,omitempty"`
	MoveTime    string `json:"move_time,omitempty"`
	Depth       *int   `json:"depth,omitempty"`
}

// MatchRecord is a started match's mutable public state: its status,
// its eventual winner, and the event log replayed to new subscribers
// before they receive live events.
type MatchRecord struct {
	ID    string
	White string
	Black string

	mu          sync.Mutex
	status      string
	winner      string
	events      []json.RawMessage
	subscribers map[chan json.RawMessage]struct{}
}

func newMatchRecord(id, white, black string) *MatchRecord {
	return &MatchRecord{
		ID:          id,
		White:       white,
		Black:       black,
		status:      "running",
		subscribers: make(map[chan json.RawMessage]struct{}),
	}
}

func (r *MatchRecord) publish(payload gin.H) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	r.mu.Lock()
	r.events = append(r.events, data)
	subs := make([]chan json.RawMessage, 0, len(r.subscribers))
	for ch := range r.subscribers {
		subs = append(subs, ch)
	}
	r.mu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- data:
		default:
		}
	}
}

func (r *MatchRecord) finish(status, winner string) {
	r.mu.Lock()
	r.status = status
	r.winner = winner
	r.mu.Unlock()
}

// Snapshot reports the record's status, winner ("white"/"black"/"draw",
// empty while running) and the events published so far.
func (r *MatchRecord) Snapshot() (status, winner string, events []json.RawMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status, r.winner, append([]json.RawMessage(nil), r.events...)
}

// Subscribe registers a channel that receives every event published
// from this point on. The returned function must be called to
// unregister when the subscriber stops listening.
func (r *MatchRecord) Subscribe() (<-chan json.RawMessage, func()) {
	ch := make(chan json.RawMessage, 16)
	r.mu.Lock()
	r.subscribers[ch] = struct{}{}
	r.mu.Unlock()
	return ch, func() {
		r.mu.Lock()
		delete(r.subscribers, ch)
		r.mu.Unlock()
	}
}

// Manager owns the engine roster and the set of matches started against
// it, spawning a fresh pair of Sessions per match.
type Manager struct {
	roster configs.EngineRoster
	cfg    configs.MatchConfig
	log    *logrus.Entry

	mu      sync.Mutex
	matches map[string]*MatchRecord
	nextID  int64
}

// NewManager builds a Manager over roster, using cfg for match-wide
// defaults (default search depth when a request omits one).
func NewManager(roster configs.EngineRoster, cfg configs.MatchConfig, log *logrus.Entry) *Manager {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Manager{roster: roster, cfg: cfg, log: log, matches: make(map[string]*MatchRecord)}
}

// EngineNicknames lists the roster's registered nicknames.
func (m *Manager) EngineNicknames() []string {
	out := make([]string, 0, len(m.roster))
	for nick := range m.roster {
		out = append(out, nick)
	}
	return out
}

// Get returns the match record for id, if it exists.
func (m *Manager) Get(id string) (*MatchRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.matches[id]
	return rec, ok
}

// StartMatch spawns both engines, validates the request's clock spec,
// and launches the match driver in the background, returning
// immediately with a record callers can poll or subscribe to. ctx
// governs only the engine-spawn handshake; the match itself runs to
// completion independently of the originating request.
func (m *Manager) StartMatch(ctx context.Context, req StartMatchRequest) (*MatchRecord, error) {
	whiteClock, blackClock, err := buildClocks(req)
	if err != nil {
		return nil, err
	}

	// The engine processes live as long as engineCtx; ctx is linked to it
	// only until both handshakes are done.
	engineCtx, engineCancel := context.WithCancel(context.Background())
	unlink := context.AfterFunc(ctx, engineCancel)

	whiteEngine, err := rosterengine.Spawn(engineCtx, m.roster, req.White, m.log.WithField("side", "white"))
	if err != nil {
		unlink()
		engineCancel()
		return nil, err
	}
	blackEngine, err := rosterengine.Spawn(engineCtx, m.roster, req.Black, m.log.WithField("side", "black"))
	if err != nil {
		_ = whiteEngine.Close()
		unlink()
		engineCancel()
		return nil, err
	}
	unlink()

	depth := m.cfg.DefaultDepth
	if req.Depth != nil {
		depth = *req.Depth
	}
	var searchLimit *analysis.SearchLimit
	if depth > 0 {
		d := depth
		searchLimit = &analysis.SearchLimit{Depth: &d}
	}

	matchCfg := match.Config{
		White: match.SideConfig{SearchLimit: searchLimit, Clock: whiteClock},
		Black: match.SideConfig{SearchLimit: searchLimit, Clock: blackClock},
	}
	mtch := match.New(matchCfg, game.New(board.StartingBoard()), whiteEngine, blackEngine)

	id := fmt.Sprintf("m%d", atomic.AddInt64(&m.nextID, 1))
	rec := newMatchRecord(id, req.White, req.Black)

	m.mu.Lock()
	m.matches[id] = rec
	m.mu.Unlock()

	go func() {
		defer engineCancel()
		m.run(rec, mtch, whiteEngine, blackEngine)
	}()

	return rec, nil
}

func buildClocks(req StartMatchRequest) (clock.State, clock.State, error) {
	switch {
	case req.TimeControl != "" && req.MoveTime != "":
		return clock.State{}, clock.State{}, fmt.Errorf("httpapi: time_control and move_time are mutually exclusive")
	case req.TimeControl != "":
		tc, err := timecontrol.Parse(req.TimeControl)
		if err != nil {
			return clock.State{}, clock.State{}, fmt.Errorf("httpapi: %w", err)
		}
		return clock.NewClock(tc), clock.NewClock(tc), nil
	case req.MoveTime != "":
		tc, err := timecontrol.Parse(req.MoveTime + "+0")
		if err != nil {
			return clock.State{}, clock.State{}, fmt.Errorf("httpapi: %w", err)
		}
		return clock.NewMoveTime(tc.Time), clock.NewMoveTime(tc.Time), nil
	default:
		return clock.NewInfinite(), clock.NewInfinite(), nil
	}
}

func (m *Manager) run(rec *MatchRecord, mtch *match.Match, white, black *session.Session) {
	defer white.Close()
	defer black.Close()

	seq := 0
	for raw := range mtch.Run(context.Background()) {
		seq++
		switch ev := raw.(type) {
		case match.Event:
			rec.publish(renderEvent(seq, ev))
			if ev.Kind == match.EventGameOver {
				winner := "draw"
				if ev.Winner != nil {
					winner = colorName(*ev.Winner)
				}
				rec.finish("finished", winner)
			}
		case *match.Error:
			rec.publish(gin.H{"seq": seq, "kind": "match_error", "message": ev.Error()})
			rec.finish("errored", "")
		}
	}
}

func colorName(c board.Color) string {
	if c == board.White {
		return "white"
	}
	return "black"
}

func renderEvent(seq int, ev match.Event) gin.H {
	payload := gin.H{"seq": seq, "engine": colorName(ev.Engine)}
	switch ev.Kind {
	case match.EventAnalysis:
		payload["kind"] = "analysis"
		ae := ev.AnalysisEvent
		switch ae.Kind {
		case analysis.EventInfo:
			info := gin.H{}
			if ae.Info.Depth != nil {
				info["depth"] = *ae.Info.Depth
			}
			if ae.Info.Score != nil {
				info["score_kind"] = scoreKindName(ae.Info.Score.Kind)
				info["score_value"] = ae.Info.Score.Value
			}
			if len(ae.Info.PV) > 0 {
				pv := make([]string, len(ae.Info.PV))
				for i, mv := range ae.Info.PV {
					pv[i] = mv.String()
				}
				info["pv"] = pv
			}
			payload["info"] = info
		case analysis.EventBestMove:
			payload["best_move"] = ae.BestMove.String()
		case analysis.EventEngineError:
			payload["engine_error"] = ae.EngineErr.Error()
		}
	case match.EventGameOver:
		payload["kind"] = "game_over"
		if ev.Winner != nil {
			payload["winner"] = colorName(*ev.Winner)
		} else {
			payload["winner"] = "draw"
		}
	}
	return payload
}

func scoreKindName(k uci.ScoreKind) string {
	if k == uci.ScoreMate {
		return "mate"
	}
	return "cp"
}
