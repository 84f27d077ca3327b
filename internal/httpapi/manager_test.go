package httpapi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chess-backend/uci-arbiter/configs"
)

const whiteStubScript = `
n=0
while read -r line; do
  case "$line" in
    uci) printf 'id name White Stub\nuciok\n' ;;
    isready) printf 'readyok\n' ;;
    setoption*) : ;;
    position*) : ;;
    "go"*)
      n=$((n+1))
      if [ "$n" -eq 1 ]; then printf 'bestmove f2f3\n'; else printf 'bestmove g2g4\n'; fi
      ;;
    quit) exit 0 ;;
  esac
done
`

const blackStubScript = `
n=0
while read -r line; do
  case "$line" in
    uci) printf 'id name Black Stub\nuciok\n' ;;
    isready) printf 'readyok\n' ;;
    setoption*) : ;;
    position*) : ;;
    "go"*)
      n=$((n+1))
      if [ "$n" -eq 1 ]; then printf 'bestmove e7e5\n'; else printf 'bestmove d8h4\n'; fi
      ;;
    quit) exit 0 ;;
  esac
done
`

func stubRoster() configs.EngineRoster {
	return configs.EngineRoster{
		"white-stub": configs.EngineProfile{Path: "/bin/sh", Args: []string{"-c", whiteStubScript}},
		"black-stub": configs.EngineProfile{Path: "/bin/sh", Args: []string{"-c", blackStubScript}},
	}
}

func TestStartMatchReachesFoolsMate(t *testing.T) {
	mgr := NewManager(stubRoster(), configs.MatchConfig{}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rec, err := mgr.StartMatch(ctx, StartMatchRequest{White: "white-stub", Black: "black-stub"})
	require.NoError(t, err)

	status, winner := waitForFinish(t, rec)
	assert.Equal(t, "finished", status)
	assert.Equal(t, "black", winner)
}

func TestStartMatchUnknownEngine(t *testing.T) {
	mgr := NewManager(stubRoster(), configs.MatchConfig{}, nil)

	_, err := mgr.StartMatch(context.Background(), StartMatchRequest{White: "nope", Black: "black-stub"})
	assert.Error(t, err)
}

func TestStartMatchRejectsConflictingClockSpec(t *testing.T) {
	mgr := NewManager(stubRoster(), configs.MatchConfig{}, nil)

	_, err := mgr.StartMatch(context.Background(), StartMatchRequest{
		White: "white-stub", Black: "black-stub",
		TimeControl: "60+0", MoveTime: "100ms",
	})
	assert.Error(t, err)
}

func TestMatchRecordKeepsEventBacklog(t *testing.T) {
	mgr := NewManager(stubRoster(), configs.MatchConfig{}, nil)

	rec, err := mgr.StartMatch(context.Background(), StartMatchRequest{White: "white-stub", Black: "black-stub"})
	require.NoError(t, err)

	waitForFinish(t, rec)

	_, _, events := rec.Snapshot()
	assert.NotEmpty(t, events)
}

func waitForFinish(t *testing.T, rec *MatchRecord) (status, winner string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		status, winner, _ = rec.Snapshot()
		if status != "running" {
			return status, winner
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("match did not finish in time")
	return "", ""
}
