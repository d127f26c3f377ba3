package modem

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"i4.energy/across/sigfoxgw/at"
)

// Modem represents a LYNX-Bee Sigfox module that communicates via AT
// commands. Operations are strictly sequential: concurrent callers are
// serialized, and every operation runs to completion, embedded waits
// included, before the next one starts.
type Modem struct {
	mu sync.Mutex

	// config contains the modem configuration settings
	config Config
	// transport provides the serial link; nil while the module is off
	transport Transport
	// matcher scans the transport for response patterns
	matcher *at.Matcher
	// closed indicates if the modem has been shut down
	closed bool
	// state caches the last values read from or written to the module
	state State
}

// State holds the last known values of the module. Each field is only
// updated by a successful query or setter and is never invalidated.
type State struct {
	ID        uint32 `json:"id"`
	PAC       uint64 `json:"pac"`
	Power     uint8  `json:"power_dbm"`
	Frequency uint32 `json:"frequency_hz"`
	Firmware  string `json:"firmware,omitempty"`
	Downlink  string `json:"downlink,omitempty"`
	Socket    Socket `json:"socket"`
	BaudRate  int    `json:"baud_rate"`
}

// New creates a new Modem with the given configuration. No I/O happens
// until On is called.
func New(config Config) (*Modem, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	config.setDefaults()

	return &Modem{
		config: config,
		state:  State{BaudRate: config.baudRate},
	}, nil
}

// State returns a copy of the cached device state.
func (m *Modem) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Close releases the transport. After calling Close(), the modem cannot be
// reused. Close does not cut power; call Off first for that.
func (m *Modem) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrAlreadyClosed
	}
	m.closed = true

	if m.transport != nil {
		t := m.transport
		m.transport = nil
		m.matcher = nil
		return t.Close()
	}
	return nil
}

// SendCommand writes a raw command line and waits once for either pattern.
// It is the building block of every operation and is exported for commands
// the driver has no dedicated method for.
func (m *Modem) SendCommand(ctx context.Context, cmd []byte, success, failure string, timeout time.Duration) (outcome at.Outcome, err error) {
	err = m.run("send_command", func() error {
		outcome, err = m.exchange(ctx, cmd, success, failure, timeout)
		return m.result(outcome, err, strings.TrimSpace(string(cmd)))
	})
	return outcome, err
}

// run serializes an operation, then logs and reports its outcome.
func (m *Modem) run(op string, fn func() error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrAlreadyClosed
	}

	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	status := StatusOf(err)

	if err != nil {
		m.config.logger.Debug("operation failed", "op", op, "status", status, "elapsed", elapsed, "error", err)
	} else {
		m.config.logger.Debug("operation succeeded", "op", op, "elapsed", elapsed)
	}
	if m.config.observer != nil {
		m.config.observer(op, status, elapsed)
	}
	return err
}

// build assembles a command, reporting local failures as protocol errors.
func (m *Modem) build(typ at.CommandType, verb string, args ...string) ([]byte, error) {
	cmd, err := at.Build(typ, verb, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: build %s command %q: %w", ErrProtocol, typ, verb, err)
	}
	return cmd, nil
}

// exchange writes cmd and waits for success or failure. Bytes left over
// from earlier exchanges are dropped first so they cannot satisfy the wait.
func (m *Modem) exchange(ctx context.Context, cmd []byte, success, failure string, timeout time.Duration) (at.Outcome, error) {
	if m.transport == nil {
		return at.OutcomeTimeout, ErrNotInitialized
	}

	m.matcher.Discard()
	line := strings.TrimSpace(string(cmd))
	m.config.logger.Debug("sending command", "command", line)

	if _, err := m.transport.Write(cmd); err != nil {
		return at.OutcomeTimeout, fmt.Errorf("write command %q: %w", line, err)
	}

	return m.waitFor(ctx, success, failure, timeout)
}

// waitFor waits for a further pattern of the current exchange.
func (m *Modem) waitFor(ctx context.Context, primary, alternate string, timeout time.Duration) (at.Outcome, error) {
	if m.transport == nil {
		return at.OutcomeTimeout, ErrNotInitialized
	}

	outcome, err := m.matcher.WaitFor(ctx, timeout, primary, alternate)
	m.config.logger.Debug("response",
		"expect", primary,
		"outcome", outcome,
		"data", string(m.matcher.Bytes()),
	)
	return outcome, err
}

// result maps a matcher outcome to the error convention of the package.
func (m *Modem) result(outcome at.Outcome, err error, stage string) error {
	switch {
	case err != nil:
		return fmt.Errorf("%w: %s: %w", ErrNoAnswer, stage, err)
	case outcome == at.OutcomeMatched:
		return nil
	case outcome == at.OutcomeAlternate:
		return fmt.Errorf("%w: %s: module answered %q", ErrProtocol, stage, strings.TrimSpace(string(m.matcher.Bytes())))
	default:
		return fmt.Errorf("%w: %s: timeout", ErrNoAnswer, stage)
	}
}

// sleep pauses for d unless ctx ends first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrNoAnswer, ctx.Err())
	case <-timer.C:
		return nil
	}
}

func (m *Modem) println(line string) {
	if m.config.console != nil {
		m.config.console.Println(line)
	}
}
