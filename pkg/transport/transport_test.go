package transport

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chess-backend/uci-arbiter/pkg/uci"
)

// stubScript is a tiny shell "engine" used to exercise Transport without
// depending on a real chess engine binary being present. It echoes a
// minimal but faithful UCI handshake, answers isready and go, and exits
// on quit.
const stubScript = `
while read -r line; do
  case "$line" in
    uci) printf 'id name Stub\nid author Stub Author\nuciok\n' ;;
    isready) printf 'readyok\n' ;;
    "go"*) printf 'bestmove e2e4\n' ;;
    quit) exit 0 ;;
  esac
done
`

func spawnStub(t *testing.T) (*Transport, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	tr, err := Spawn(ctx, "/bin/sh", []string{"-c", stubScript}, nil)
	require.NoError(t, err)
	return tr, cancel
}

func TestTransportHandshake(t *testing.T) {
	tr, cancel := spawnStub(t)
	defer cancel()
	defer tr.Close()

	require.NoError(t, tr.Send(uci.UciCommand{}))

	rem, err := tr.Recv()
	require.NoError(t, err)
	assert.Equal(t, uci.IDName{Name: "Stub"}, rem)

	rem, err = tr.Recv()
	require.NoError(t, err)
	assert.Equal(t, uci.IDAuthor{Author: "Stub Author"}, rem)

	rem, err = tr.Recv()
	require.NoError(t, err)
	assert.Equal(t, uci.UciOk{}, rem)
}

func TestTransportIsReady(t *testing.T) {
	tr, cancel := spawnStub(t)
	defer cancel()
	defer tr.Close()

	require.NoError(t, tr.Send(uci.IsReadyCommand{}))
	rem, err := tr.Recv()
	require.NoError(t, err)
	assert.Equal(t, uci.ReadyOk{}, rem)
}

func TestTransportBestMove(t *testing.T) {
	tr, cancel := spawnStub(t)
	defer cancel()
	defer tr.Close()

	depth := 1
	require.NoError(t, tr.Send(uci.GoCommand{Depth: &depth}))
	rem, err := tr.Recv()
	require.NoError(t, err)
	bm, ok := rem.(uci.BestMoveRemark)
	require.True(t, ok)
	assert.Equal(t, "e2e4", bm.Move.String())
}

func TestTransportEOFAfterQuit(t *testing.T) {
	tr, cancel := spawnStub(t)
	defer cancel()
	defer tr.Close()

	require.NoError(t, tr.Send(uci.QuitCommand{}))
	_, err := tr.Recv()
	assert.ErrorIs(t, err, io.EOF)
}

func TestTransportKillOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	tr, err := Spawn(ctx, "/bin/sh", []string{"-c", "sleep 30"}, nil)
	require.NoError(t, err)
	cancel()
	_, err = tr.Recv()
	assert.Error(t, err)
}
