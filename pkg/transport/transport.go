// Package transport owns the engine subprocess: spawning it with piped
// stdio, writing outbound UCI lines, and reading back parsed remarks one
// line at a time. It is the Go counterpart of RawEngine in
// original_source/cozy-matches/src/engine/raw_engine.rs, adapted from
// Tokio's kill_on_drop child process to the teacher's bufio.Scanner +
// os/exec style (backend/pkg/uci/engine.go) plus explicit context
// cancellation in place of Rust's Drop.
package transport

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/chess-backend/uci-arbiter/pkg/uci"
)

// Transport owns one engine subprocess's stdio. It is not safe for
// concurrent Send/Recv calls from multiple goroutines; the Engine
// Session built on top of it serializes access.
type Transport struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Scanner
	stderr *bufio.Scanner

	log *logrus.Entry

	closeOnce sync.Once
	closeErr  error
}

// Spawn starts the engine binary at path with args, piping stdin/stdout/
// stderr. The subprocess is killed when ctx is cancelled, mirroring
// kill_on_drop(true): callers should derive ctx from a scope that ends
// no later than the match or analysis session using this engine.
func Spawn(ctx context.Context, path string, args []string, log *logrus.Entry) (*Transport, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	cmd := exec.CommandContext(ctx, path, args...)
	// exec.CommandContext only sends Kill on ctx cancellation; that is
	// exactly the kill_on_drop behavior we want and nothing more.

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("transport: stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("transport: stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("transport: stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("transport: start %s: %w", path, err)
	}

	t := &Transport{
		cmd:    cmd,
		stdin:  stdin,
		stdout: bufio.NewScanner(stdout),
		stderr: bufio.NewScanner(stderr),
		log:    log.WithField("engine", path),
	}
	t.stdout.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return t, nil
}

// Send formats and writes one command line, terminated with "\n".
func (t *Transport) Send(cmd uci.Command) error {
	line := uci.FormatCommand(cmd)
	t.log.WithField("direction", "send").Debug(line)
	if _, err := io.WriteString(t.stdin, line+"\n"); err != nil {
		return fmt.Errorf("transport: write: %w", err)
	}
	return nil
}

// Recv blocks for the next non-blank line on stdout and parses it into a
// Remark. It returns io.EOF when the engine has closed stdout (typically
// because the process exited).
func (t *Transport) Recv() (uci.Remark, error) {
	for t.stdout.Scan() {
		line := t.stdout.Text()
		if line == "" {
			continue
		}
		t.log.WithField("direction", "recv").Debug(line)
		rem, err := uci.ParseLine(line)
		if err != nil {
			return nil, err
		}
		return rem, nil
	}
	if err := t.stdout.Err(); err != nil {
		return nil, fmt.Errorf("transport: read: %w", err)
	}
	return nil, io.EOF
}

// DrainStderr returns a channel of the engine's stderr lines, read in a
// background goroutine until stderr closes. Callers who do not care
// about engine diagnostics may ignore the channel entirely.
func (t *Transport) DrainStderr() <-chan string {
	out := make(chan string, 16)
	go func() {
		defer close(out)
		for t.stderr.Scan() {
			out <- t.stderr.Text()
		}
	}()
	return out
}

// Close closes the engine's stdin, kills the process if it is still
// running, and waits for it to exit. It is idempotent.
func (t *Transport) Close() error {
	t.closeOnce.Do(func() {
		_ = t.stdin.Close()
		_ = t.cmd.Process.Kill()
		t.closeErr = t.cmd.Wait()
	})
	return t.closeErr
}
