package at

import (
	"bytes"
	"context"
	"io"
	"time"
)

// Outcome is the result of waiting for a response pattern.
type Outcome int

const (
	OutcomeTimeout   Outcome = iota // neither pattern arrived in time
	OutcomeMatched                  // primary pattern arrived
	OutcomeAlternate                // alternate pattern arrived
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMatched:
		return "matched"
	case OutcomeAlternate:
		return "alternate"
	default:
		return "timeout"
	}
}

// DefaultPollInterval is how long the Matcher sleeps after a read returned
// no data.
const DefaultPollInterval = 10 * time.Millisecond

// Matcher scans a modem's output for response patterns.
//
// The underlying reader must not block indefinitely: a serial port opened
// with a read timeout returns (0, nil) when no data is available, which is
// what the Matcher expects. A Matcher is not safe for concurrent use.
type Matcher struct {
	// PollInterval is the sleep between reads that returned no data.
	PollInterval time.Duration

	r     io.Reader
	buf   []byte // response buffer, overwritten by every WaitFor
	chunk []byte
	// pending holds bytes read past the last match. They belong to
	// whatever the modem sends next and are consumed by the next WaitFor.
	pending []byte
}

// NewMatcher returns a Matcher reading from r.
func NewMatcher(r io.Reader) *Matcher {
	return &Matcher{
		PollInterval: DefaultPollInterval,
		r:            r,
		buf:          make([]byte, 0, ResponseCapacity),
		chunk:        make([]byte, ResponseCapacity),
	}
}

// WaitFor reads until the tail of the response buffer equals primary or
// alternate, or until timeout elapses. An empty alternate waits for
// primary only.
//
// Matching is re-evaluated after every received byte, so a pattern is
// reported as soon as it completes even if more data follows. On timeout
// the partially received bytes remain available through Bytes.
//
// A read error or context cancellation ends the wait with OutcomeTimeout
// and the error.
func (m *Matcher) WaitFor(ctx context.Context, timeout time.Duration, primary, alternate string) (Outcome, error) {
	m.buf = m.buf[:0]
	deadline := time.Now().Add(timeout)

	if o, ok := m.consume(primary, alternate); ok {
		return o, nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return OutcomeTimeout, err
		}
		if !time.Now().Before(deadline) {
			return OutcomeTimeout, nil
		}

		n, err := m.r.Read(m.chunk)
		if n > 0 {
			m.pending = append(m.pending, m.chunk[:n]...)
			if o, ok := m.consume(primary, alternate); ok {
				return o, nil
			}
		}
		if err != nil {
			return OutcomeTimeout, err
		}
		if n > 0 {
			continue
		}

		// Nothing available yet; don't spin on the transport.
		wait := m.PollInterval
		if remaining := time.Until(deadline); remaining < wait {
			wait = remaining
		}
		if wait <= 0 {
			continue
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return OutcomeTimeout, ctx.Err()
		case <-timer.C:
		}
	}
}

// consume moves pending bytes into the response buffer one at a time,
// stopping at the first byte that completes a pattern.
func (m *Matcher) consume(primary, alternate string) (Outcome, bool) {
	for i, c := range m.pending {
		m.push(c)

		outcome := OutcomeTimeout
		switch {
		case primary != "" && bytes.HasSuffix(m.buf, []byte(primary)):
			outcome = OutcomeMatched
		case alternate != "" && bytes.HasSuffix(m.buf, []byte(alternate)):
			outcome = OutcomeAlternate
		default:
			continue
		}

		m.pending = m.pending[i+1:]
		return outcome, true
	}

	m.pending = m.pending[:0]
	return OutcomeTimeout, false
}

// push appends c to the response buffer, dropping the oldest byte when the
// buffer is full so the tail stays matchable.
func (m *Matcher) push(c byte) {
	if len(m.buf) == ResponseCapacity {
		copy(m.buf, m.buf[1:])
		m.buf = m.buf[:ResponseCapacity-1]
	}
	m.buf = append(m.buf, c)
}

// Bytes returns the response captured by the last WaitFor. The slice is
// only valid until the next call.
func (m *Matcher) Bytes() []byte {
	return m.buf
}

// Len returns the number of bytes captured by the last WaitFor.
func (m *Matcher) Len() int {
	return len(m.buf)
}

// Discard drops bytes that were read but not yet consumed by a WaitFor.
func (m *Matcher) Discard() {
	m.pending = m.pending[:0]
}
