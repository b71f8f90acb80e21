package mcp

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"

	globalconfig "noa/config"
)

// Transport is the line-oriented byte channel the RPC client speaks over.
// Implementations frame each message as a single line.
type Transport interface {
	// Send transmits one message. The payload must not contain newlines.
	// The context is checked before writing, not during.
	Send(ctx context.Context, payload []byte) error

	// ReceiveLine blocks until one full message line arrives and returns it
	// without the trailing newline. The context is a pre-check only: a
	// cancellation after the read has started does not interrupt it, the
	// pending line is still read and returned. Aborting mid-read would
	// leave a half-consumed line on the stream and desynchronize the
	// request/response pairing for the rest of the session.
	ReceiveLine(ctx context.Context) ([]byte, error)

	// Shutdown tears the channel down. It is idempotent.
	Shutdown() error
}

// shutdownGrace is how long Shutdown waits for the child to exit on its own
// after stdin closes before killing it.
const shutdownGrace = 3 * time.Second

// StdioTransport owns an MCP server child process and exchanges
// newline-delimited messages over its stdin/stdout. Its stderr is drained to
// the debug log so server diagnostics never corrupt the protocol stream.
type StdioTransport struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader

	writeMu sync.Mutex
	down    sync.Once
	closed  chan struct{}
}

// StartStdio launches the server process and wires up the pipes. env is the
// complete environment for the child; pass nil to inherit the parent's.
func StartStdio(path string, args []string, env []string) (*StdioTransport, error) {
	cmd := exec.Command(path, args...)
	if env != nil {
		cmd.Env = env
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", path, err)
	}

	go drainStderr(path, stderr)

	return &StdioTransport{
		cmd:    cmd,
		stdin:  stdin,
		stdout: bufio.NewReader(stdout),
		closed: make(chan struct{}),
	}, nil
}

// drainStderr forwards server diagnostics to the debug log until the pipe
// closes.
func drainStderr(path string, r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if globalconfig.DebugLog != nil {
			globalconfig.DebugLog.Printf("[mcp-server %s] %s", path, scanner.Text())
		}
	}
}

func (t *StdioTransport) Send(ctx context.Context, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-t.closed:
		return ErrTransportClosed
	default:
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	buf := make([]byte, 0, len(payload)+1)
	buf = append(buf, payload...)
	buf = append(buf, '\n')
	if _, err := t.stdin.Write(buf); err != nil {
		return fmt.Errorf("%w: %v", ErrTransportClosed, err)
	}
	return nil
}

func (t *StdioTransport) ReceiveLine(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	select {
	case <-t.closed:
		return nil, ErrTransportClosed
	default:
	}

	line, err := t.stdout.ReadBytes('\n')
	if err != nil {
		if err == io.EOF && len(bytes.TrimSpace(line)) > 0 {
			// Final message without trailing newline, deliver it.
			return bytes.TrimRight(line, "\r\n"), nil
		}
		return nil, fmt.Errorf("%w: %v", ErrTransportClosed, err)
	}
	return bytes.TrimRight(line, "\r\n"), nil
}

// Shutdown closes stdin so a well-behaved server exits, waits briefly, and
// kills the process if it lingers. Safe to call multiple times.
func (t *StdioTransport) Shutdown() error {
	t.down.Do(func() {
		close(t.closed)
		_ = t.stdin.Close()

		done := make(chan error, 1)
		go func() { done <- t.cmd.Wait() }()

		select {
		case <-done:
		case <-time.After(shutdownGrace):
			if t.cmd.Process != nil {
				_ = t.cmd.Process.Kill()
			}
			<-done
		}
	})
	return nil
}
