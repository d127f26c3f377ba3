package modem

import (
	"context"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"i4.energy/across/sigfoxgw/at"
)

const (
	// MaxPayloadBytes is the largest Sigfox uplink frame.
	MaxPayloadBytes = 12
	// MaxPayloadDigits is MaxPayloadBytes in hexadecimal digits.
	MaxPayloadDigits = 2 * MaxPayloadBytes

	// KeepAliveDefault is the keep-alive period of a fresh module, in hours.
	KeepAliveDefault = 24
	// MaxKeepAlive is the longest keep-alive period, in hours.
	MaxKeepAlive = 127

	// continuousWavePower is the carrier power in dBm used for RCZ4 tests.
	continuousWavePower = "24"
)

// Send transmits an uplink frame. The payload is a string of hexadecimal
// digits, two per byte, e.g. "12A435" for the bytes 0x12 0xA4 0x35.
//
// Payloads longer than MaxPayloadDigits are rejected with ErrPayloadTooLarge
// without contacting the module.
func (m *Modem) Send(ctx context.Context, payload string) error {
	return m.run("send", func() error {
		return m.send(ctx, payload)
	})
}

// SendBytes transmits data as an uplink frame. Data beyond MaxPayloadBytes
// is dropped.
func (m *Modem) SendBytes(ctx context.Context, data []byte) error {
	return m.run("send", func() error {
		return m.send(ctx, encodePayload(data))
	})
}

func (m *Modem) send(ctx context.Context, payload string) error {
	if err := m.validatePayload(payload); err != nil {
		return err
	}

	cmd, err := m.build(at.TypeSet, "$SF", payload)
	if err != nil {
		return err
	}

	outcome, err := m.exchange(ctx, cmd, at.OK, at.ERROR, m.config.timeouts.Send)
	return m.result(outcome, err, "AT$SF")
}

// SendACK transmits an uplink frame and requests a downlink reply. It
// returns the downlink payload as hexadecimal digits.
//
// The exchange succeeds only once the module confirmed the uplink, announced
// the downlink and delivered it completely. A failure at any stage ends the
// exchange; nothing is retried.
func (m *Modem) SendACK(ctx context.Context, payload string) (string, error) {
	var downlink string
	err := m.run("send_ack", func() error {
		var err error
		downlink, err = m.sendACK(ctx, payload)
		return err
	})
	return downlink, err
}

// SendACKBytes is SendACK for binary data. Data beyond MaxPayloadBytes is
// dropped.
func (m *Modem) SendACKBytes(ctx context.Context, data []byte) (string, error) {
	var downlink string
	err := m.run("send_ack", func() error {
		var err error
		downlink, err = m.sendACK(ctx, encodePayload(data))
		return err
	})
	return downlink, err
}

func (m *Modem) sendACK(ctx context.Context, payload string) (string, error) {
	if err := m.validatePayload(payload); err != nil {
		return "", err
	}

	cmd, err := m.build(at.TypeSet, "$SF", payload, "1")
	if err != nil {
		return "", err
	}

	x := &ackExchange{m: m, ctx: ctx, cmd: cmd}
	if err := x.run(); err != nil {
		return "", err
	}

	m.state.Downlink = x.downlink
	return x.downlink, nil
}

func (m *Modem) validatePayload(payload string) error {
	if len(payload) > MaxPayloadDigits {
		m.println("ERROR: Sigfox packet too large")
		return fmt.Errorf("%w: %d digits, at most %d allowed", ErrPayloadTooLarge, len(payload), MaxPayloadDigits)
	}
	return nil
}

func encodePayload(data []byte) string {
	if len(data) > MaxPayloadBytes {
		data = data[:MaxPayloadBytes]
	}
	return strings.ToUpper(hex.EncodeToString(data))
}

// ackState is a stage of an acknowledged uplink.
type ackState int

const (
	ackAwaitOK         ackState = iota // uplink written, waiting for OK
	ackAwaitMarker                     // waiting for the downlink marker
	ackAwaitTerminator                 // waiting for the end of the downlink
	ackDone
	ackFailed
)

// ackExchange drives an acknowledged uplink through its stages. Each stage
// has its own deadline and moves either forward or to ackFailed.
type ackExchange struct {
	m   *Modem
	ctx context.Context
	cmd []byte

	state    ackState
	err      error
	downlink string
}

func (x *ackExchange) run() error {
	for {
		switch x.state {
		case ackAwaitOK:
			x.state = x.awaitOK()
		case ackAwaitMarker:
			x.state = x.awaitMarker()
		case ackAwaitTerminator:
			x.state = x.awaitTerminator()
		case ackDone:
			return nil
		default:
			return x.err
		}
	}
}

func (x *ackExchange) awaitOK() ackState {
	outcome, err := x.m.exchange(x.ctx, x.cmd, at.OK, at.ERROR, x.m.config.timeouts.SendACK)
	return x.advance(outcome, err, "AT$SF", ackAwaitMarker)
}

func (x *ackExchange) awaitMarker() ackState {
	outcome, err := x.m.waitFor(x.ctx, at.RxMarker, at.ERROR, x.m.config.timeouts.Downlink)
	return x.advance(outcome, err, "downlink marker", ackAwaitTerminator)
}

func (x *ackExchange) awaitTerminator() ackState {
	outcome, err := x.m.waitFor(x.ctx, at.CRLF, at.ERROR, x.m.config.timeouts.DownlinkEnd)
	next := x.advance(outcome, err, "downlink payload", ackDone)
	if next == ackDone {
		x.downlink = cleanDownlink(x.m.matcher.Bytes())
	}
	return next
}

func (x *ackExchange) advance(outcome at.Outcome, err error, stage string, next ackState) ackState {
	if x.err = x.m.result(outcome, err, stage); x.err != nil {
		return ackFailed
	}
	return next
}

// cleanDownlink turns "01 02 0A\r\n" into "01020A".
func cleanDownlink(buf []byte) string {
	s := strings.TrimSuffix(string(buf), at.CRLF)
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}

// SetKeepAlive sets the period of the automatic keep-alive uplink in hours.
// 0 disables it. See KeepAliveDefault.
func (m *Modem) SetKeepAlive(ctx context.Context, hours int) error {
	return m.run("set_keep_alive", func() error {
		if hours < 0 || hours > MaxKeepAlive {
			return fmt.Errorf("%w: %d hours", ErrKeepAliveOutOfRange, hours)
		}

		cmd, err := m.build(at.TypeSet, "S300", strconv.Itoa(hours))
		if err != nil {
			return err
		}
		outcome, err := m.exchange(ctx, cmd, at.OK, at.ERROR, m.config.timeouts.KeepAlive)
		return m.result(outcome, err, "ATS300")
	})
}

// ContinuousWave starts or stops an unmodulated carrier on freq Hz.
func (m *Modem) ContinuousWave(ctx context.Context, freq uint32, enable bool) error {
	return m.run("continuous_wave", func() error {
		flag := "0"
		if enable {
			flag = "1"
		}

		cmd, err := m.build(at.TypeSet, "$CW", strconv.FormatUint(uint64(freq), 10), flag, continuousWavePower)
		if err != nil {
			return err
		}
		outcome, err := m.exchange(ctx, cmd, at.OK, at.ERROR, m.config.timeouts.ContinuousWave)
		return m.result(outcome, err, "AT$CW")
	})
}

// TestTransmit would send count test frames every period seconds on
// channel (-1 for automatic selection). The LYNX-Bee firmware has no test
// mode: the module is probed for the whole test duration and, once it
// answers, ErrNotSupported is returned.
func (m *Modem) TestTransmit(ctx context.Context, count, period uint16, channel int) error {
	return m.run("test_transmit", func() error {
		timeout := m.config.timeouts.TestTransmitUnit * time.Duration(count) * time.Duration(period)
		if timeout <= 0 {
			timeout = m.config.timeouts.TestTransmitUnit
		}

		if err := m.check(ctx, timeout); err != nil {
			return err
		}
		return fmt.Errorf("%w: test transmission of %d frames every %ds on channel %d",
			ErrNotSupported, count, period, channel)
	})
}
