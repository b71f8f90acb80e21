package mcp

import (
	"context"
	"errors"
	"testing"
	"time"
)

// startCat launches `cat` as a stand-in server: every line sent comes
// straight back.
func startCat(t *testing.T) *StdioTransport {
	t.Helper()
	transport, err := StartStdio("cat", nil, nil)
	if err != nil {
		t.Fatalf("StartStdio: %v", err)
	}
	t.Cleanup(func() { _ = transport.Shutdown() })
	return transport
}

func TestStdioTransportRoundTrip(t *testing.T) {
	transport := startCat(t)
	ctx := context.Background()

	payload := []byte(`{"jsonrpc":"2.0","id":1,"method":"initialize"}`)
	if err := transport.Send(ctx, payload); err != nil {
		t.Fatalf("Send: %v", err)
	}

	line, err := transport.ReceiveLine(ctx)
	if err != nil {
		t.Fatalf("ReceiveLine: %v", err)
	}
	if string(line) != string(payload) {
		t.Errorf("echoed line = %q", line)
	}
}

func TestReceiveLineChecksContextOnEntryOnly(t *testing.T) {
	transport := startCat(t)

	// Already-cancelled context never reaches the stream.
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := transport.ReceiveLine(cancelled); !errors.Is(err, context.Canceled) {
		t.Fatalf("ReceiveLine error = %v, want context.Canceled", err)
	}

	// Cancelling after the read has started does not interrupt it: the line
	// is still delivered once it arrives.
	ctx, cancel := context.WithCancel(context.Background())
	type received struct {
		line []byte
		err  error
	}
	got := make(chan received, 1)
	go func() {
		line, err := transport.ReceiveLine(ctx)
		got <- received{line, err}
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()
	if err := transport.Send(context.Background(), []byte("pending line")); err != nil {
		t.Fatalf("Send: %v", err)
	}

	select {
	case r := <-got:
		if r.err != nil {
			t.Fatalf("ReceiveLine: %v", r.err)
		}
		if string(r.line) != "pending line" {
			t.Errorf("line = %q", r.line)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ReceiveLine did not return")
	}
}

func TestStdioTransportShutdownIsIdempotent(t *testing.T) {
	transport := startCat(t)

	if err := transport.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if err := transport.Shutdown(); err != nil {
		t.Fatalf("second Shutdown: %v", err)
	}
}

func TestStdioTransportSendAfterShutdown(t *testing.T) {
	transport := startCat(t)
	_ = transport.Shutdown()

	err := transport.Send(context.Background(), []byte("late"))
	if !errors.Is(err, ErrTransportClosed) {
		t.Fatalf("Send error = %v, want ErrTransportClosed", err)
	}
	if _, err := transport.ReceiveLine(context.Background()); !errors.Is(err, ErrTransportClosed) {
		t.Fatalf("ReceiveLine error = %v, want ErrTransportClosed", err)
	}
}

func TestStdioTransportEOF(t *testing.T) {
	transport, err := StartStdio("true", nil, nil)
	if err != nil {
		t.Fatalf("StartStdio: %v", err)
	}
	defer transport.Shutdown()

	if _, err := transport.ReceiveLine(context.Background()); !errors.Is(err, ErrTransportClosed) {
		t.Fatalf("ReceiveLine error = %v, want ErrTransportClosed", err)
	}
}

func TestStartStdioMissingExecutable(t *testing.T) {
	if _, err := StartStdio("/nonexistent/mcp-server", nil, nil); err == nil {
		t.Fatal("expected error for missing executable")
	}
}
