package modem

import (
	"context"
	"io"
	"sync"
	"time"
)

// TestTransport is a test helper that simulates a serial port using channels.
// Reads wait briefly for queued data and then return (0, nil), like a port
// opened with a read timeout. Replies can be queued up front with SendData
// or scripted per command with Respond.
type TestTransport struct {
	mu       sync.Mutex
	readChan chan []byte
	leftover []byte
	written  []string
	replies  map[string][]string
	closed   bool

	// ReadTimeout is how long a Read waits for data.
	ReadTimeout time.Duration
}

// NewTestTransport creates a new test transport for testing.
// Exported for use in tests.
func NewTestTransport() *TestTransport {
	return &TestTransport{
		readChan:    make(chan []byte, 64),
		replies:     make(map[string][]string),
		ReadTimeout: 5 * time.Millisecond,
	}
}

// Respond scripts the replies the module sends each time cmd (including its
// terminating CR) is written. Every reply becomes a separate chunk.
func (t *TestTransport) Respond(cmd string, replies ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.replies[cmd] = replies
}

func (t *TestTransport) Write(p []byte) (n int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0, io.ErrClosedPipe
	}

	cmd := string(p)
	t.written = append(t.written, cmd)
	for _, reply := range t.replies[cmd] {
		t.readChan <- []byte(reply)
	}
	return len(p), nil
}

func (t *TestTransport) Read(p []byte) (n int, err error) {
	t.mu.Lock()
	if len(t.leftover) > 0 {
		n = copy(p, t.leftover)
		t.leftover = t.leftover[n:]
		t.mu.Unlock()
		return n, nil
	}
	t.mu.Unlock()

	timer := time.NewTimer(t.ReadTimeout)
	defer timer.Stop()

	select {
	case data, ok := <-t.readChan:
		if !ok {
			return 0, io.EOF
		}
		n = copy(p, data)
		if n < len(data) {
			t.mu.Lock()
			t.leftover = append(t.leftover, data[n:]...)
			t.mu.Unlock()
		}
		return n, nil
	case <-timer.C:
		return 0, nil
	}
}

func (t *TestTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	close(t.readChan)
	return nil
}

// SendData queues data to be read by the transport.
// This simulates receiving data from the modem.
func (t *TestTransport) SendData(data string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.closed {
		t.readChan <- []byte(data)
	}
}

// Written returns every command written so far.
func (t *TestTransport) Written() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.written...)
}

// TestDialer hands out the same Transport on every Dial.
type TestDialer struct {
	Transport Transport
}

// Dial implements Dialer.
func (d TestDialer) Dial(ctx context.Context, socket Socket, baudRate int) (Transport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return d.Transport, nil
}
